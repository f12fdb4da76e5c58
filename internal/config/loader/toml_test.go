package loader

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"time"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) Open(name string) (fs.File, error) {
	return nil, fs.ErrNotExist
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (m *MemFS) Stat(path string) (fs.FileInfo, error) {
	if _, ok := m.files[path]; ok {
		return &memFileInfo{name: path}, nil
	}
	return nil, fs.ErrNotExist
}

type memFileInfo struct {
	name string
}

func (f *memFileInfo) Name() string       { return f.name }
func (f *memFileInfo) Size() int64        { return 0 }
func (f *memFileInfo) Mode() fs.FileMode  { return 0644 }
func (f *memFileInfo) ModTime() time.Time { return time.Now() }
func (f *memFileInfo) IsDir() bool        { return false }
func (f *memFileInfo) Sys() any           { return nil }

func TestTOMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/config.toml", `
[editor]
tabWidth = 8

[document]
sessionGuard = true
recoveryInterval = "5s"

[logging]
level = "debug"
`)

	loader := NewTOMLLoaderWithFS(memfs, "/config.toml")
	config, err := loader.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	editor, ok := config["editor"].(map[string]any)
	if !ok {
		t.Fatal("expected editor to be a map")
	}
	if editor["tabWidth"] != int64(8) {
		t.Errorf("tabWidth = %v (%T), want 8", editor["tabWidth"], editor["tabWidth"])
	}

	if val, ok := Lookup(config, "document.sessionGuard"); !ok || val != true {
		t.Errorf("document.sessionGuard = %v, want true", val)
	}
	if val, ok := Lookup(config, "document.recoveryInterval"); !ok || val != "5s" {
		t.Errorf("document.recoveryInterval = %v, want '5s'", val)
	}
	if val, ok := Lookup(config, "logging.level"); !ok || val != "debug" {
		t.Errorf("logging.level = %v, want 'debug'", val)
	}
}

func TestTOMLLoader_LoadNonExistent(t *testing.T) {
	memfs := NewMemFS()
	loader := NewTOMLLoaderWithFS(memfs, "/nonexistent.toml")

	config, err := loader.Load()
	if err != nil {
		t.Fatalf("expected no error for non-existent file, got: %v", err)
	}
	if config != nil {
		t.Error("expected nil config for non-existent file")
	}
}

func TestTOMLLoader_LoadEmpty(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/empty.toml", "")

	config, err := NewTOMLLoaderWithFS(memfs, "/empty.toml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if config == nil || len(config) != 0 {
		t.Errorf("config = %v, want empty map", config)
	}
}

func TestTOMLLoader_LoadInvalid(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/invalid.toml", `
[editor
tabWidth = 4
`)

	loader := NewTOMLLoaderWithFS(memfs, "/invalid.toml")
	_, err := loader.Load()
	if err == nil {
		t.Fatal("expected parse error")
	}

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if parseErr.Path != "/invalid.toml" {
		t.Errorf("Path = %q, want '/invalid.toml'", parseErr.Path)
	}
	if parseErr.Line == 0 {
		t.Error("Line should be reported for decode errors")
	}
	if !strings.Contains(err.Error(), "/invalid.toml") {
		t.Errorf("Error() = %q, want path", err.Error())
	}
}

func TestTOMLLoader_LoadFromReader(t *testing.T) {
	loader := &TOMLLoader{}

	config, err := loader.LoadFromReader(strings.NewReader(`
[logging]
file = "/tmp/linedit.log"
`))
	if err != nil {
		t.Fatalf("LoadFromReader failed: %v", err)
	}
	if val, ok := Lookup(config, "logging.file"); !ok || val != "/tmp/linedit.log" {
		t.Errorf("logging.file = %v, want '/tmp/linedit.log'", val)
	}
}

func TestForPath(t *testing.T) {
	memfs := NewMemFS()

	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"/c.toml", "*loader.TOMLLoader", false},
		{"/c.TOML", "*loader.TOMLLoader", false},
		{"/c.yaml", "*loader.YAMLLoader", false},
		{"/c.yml", "*loader.YAMLLoader", false},
		{"/c.json", "", true},
		{"/config", "", true},
	}

	for _, tt := range tests {
		l, err := ForPath(memfs, tt.path)
		if tt.wantErr {
			if !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("ForPath(%q) error = %v, want ErrUnsupportedFormat", tt.path, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ForPath(%q) failed: %v", tt.path, err)
			continue
		}
		switch l.(type) {
		case *TOMLLoader:
			if tt.want != "*loader.TOMLLoader" {
				t.Errorf("ForPath(%q) = TOML loader, want %s", tt.path, tt.want)
			}
		case *YAMLLoader:
			if tt.want != "*loader.YAMLLoader" {
				t.Errorf("ForPath(%q) = YAML loader, want %s", tt.path, tt.want)
			}
		}
	}
}
