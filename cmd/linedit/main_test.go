package main

import (
	"bytes"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/linedit/internal/app"
	"github.com/dshills/linedit/internal/config"
	"github.com/dshills/linedit/internal/project/document"
	perrors "github.com/dshills/linedit/internal/project/errors"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    options
		wantErr bool
	}{
		{
			name: "file",
			args: []string{"-config", "c.toml", "notes.txt"},
			want: options{configPath: "c.toml", file: "notes.txt"},
		},
		{
			name: "overrides",
			args: []string{"-config", "", "-log-level", "debug", "-guard"},
			want: options{logLevel: "debug", guard: true, guardSet: true},
		},
		{
			name: "guard off",
			args: []string{"-config", "", "-guard=false"},
			want: options{guardSet: true},
		},
		{
			name: "recover",
			args: []string{"-config", "", "-recover", ".notes.txt.swp"},
			want: options{recoverPath: ".notes.txt.swp"},
		},
		{name: "two files", args: []string{"a", "b"}, wantErr: true},
		{name: "recover with file", args: []string{"-recover", "x.swp", "a"}, wantErr: true},
		{name: "unknown flag", args: []string{"-bogus"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFlags(tt.args, &bytes.Buffer{})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFlagsHelp(t *testing.T) {
	var stderr bytes.Buffer
	_, err := parseFlags([]string{"-h"}, &stderr)

	assert.True(t, errors.Is(err, flag.ErrHelp))
	assert.Contains(t, stderr.String(), "Usage: linedit")
}

func TestLoadConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[logging]\nlevel = \"warn\"\n[document]\nsessionGuard = true\n"), 0644))

	cfg, err := loadConfig(options{configPath: path})
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.True(t, cfg.Document.SessionGuard)

	cfg, err = loadConfig(options{configPath: path, logLevel: "debug", guardSet: true})
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.False(t, cfg.Document.SessionGuard)

	_, err = loadConfig(options{configPath: path, logLevel: "loud"})
	assert.ErrorIs(t, err, config.ErrInvalidValue)
}

func TestOpenDocument(t *testing.T) {
	cfg := config.Default()
	dir := t.TempDir()

	t.Run("existing", func(t *testing.T) {
		path := filepath.Join(dir, "a.txt")
		require.NoError(t, os.WriteFile(path, []byte("one\ntwo"), 0644))

		opened, err := openDocument(options{file: path}, cfg, app.NullLogger)
		require.NoError(t, err)
		defer opened.doc.Close()

		assert.Equal(t, []string{"one", "two"}, opened.doc.Lines())
		assert.Empty(t, opened.message)
	})

	t.Run("missing creates", func(t *testing.T) {
		path := filepath.Join(dir, "new.txt")

		opened, err := openDocument(options{file: path}, cfg, app.NullLogger)
		require.NoError(t, err)
		defer opened.doc.Close()

		assert.Equal(t, path, opened.doc.Path())
		assert.Equal(t, []string{""}, opened.doc.Lines())
		assert.Equal(t, "new file", opened.message)
		assert.NoFileExists(t, path)
	})

	t.Run("unnamed", func(t *testing.T) {
		opened, err := openDocument(options{}, cfg, app.NullLogger)
		require.NoError(t, err)
		defer opened.doc.Close()

		assert.Empty(t, opened.doc.Path())
	})

	t.Run("directory", func(t *testing.T) {
		_, err := openDocument(options{file: dir}, cfg, app.NullLogger)
		assert.Error(t, err)
	})

	t.Run("claimed", func(t *testing.T) {
		guarded := config.Default()
		guarded.Document.SessionGuard = true
		path := filepath.Join(dir, "shared.txt")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

		first, err := openDocument(options{file: path}, guarded, app.NullLogger)
		require.NoError(t, err)
		defer first.doc.Close()

		_, err = openDocument(options{file: path}, guarded, app.NullLogger)
		require.ErrorIs(t, err, perrors.ErrSessionActive)
		assert.Contains(t, err.Error(), "-recover")
	})
}

func TestOpenDocumentRecover(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("abc"), 0644))

	doc, err := document.Open(path)
	require.NoError(t, err)
	require.NoError(t, doc.InsertText(0, 3, "de"))
	require.NoError(t, doc.WriteRecoverySnapshot(document.Position{Row: 0, Col: 5}))
	artifact := doc.ArtifactPath()

	// Copy the artifact aside: closing the crashed session's document
	// would remove it.
	data, err := os.ReadFile(artifact)
	require.NoError(t, err)
	require.NoError(t, doc.Close())
	saved := filepath.Join(t.TempDir(), "saved.swp")
	require.NoError(t, os.WriteFile(saved, data, 0600))

	opened, err := openDocument(options{recoverPath: saved}, config.Default(), app.NullLogger)
	require.NoError(t, err)
	defer opened.doc.Close()

	assert.Equal(t, []string{"abcde"}, opened.doc.Lines())
	assert.True(t, opened.doc.IsDirty())
	assert.Equal(t, document.Position{Row: 0, Col: 5}, opened.cursor)
	assert.Equal(t, "recovered 1 lines (+2 -0 vs disk)", opened.message)
}
