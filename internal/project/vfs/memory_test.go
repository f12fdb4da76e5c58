package vfs

import (
	"errors"
	"io/fs"
	"syscall"
	"testing"
)

func TestMemFS_AddFile(t *testing.T) {
	fs := NewMemFS()

	// AddFile should create parent directories
	err := fs.AddFile("/a/b/c/file.txt", "content")
	if err != nil {
		t.Fatalf("AddFile failed: %v", err)
	}

	if !fs.Exists("/a/b/c/file.txt") {
		t.Error("file should exist")
	}
	if !fs.IsDir("/a/b/c") {
		t.Error("parent directory should exist")
	}
	if !fs.IsDir("/a/b") {
		t.Error("grandparent directory should exist")
	}
}

func TestMemFS_ReadFileModification(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/test.txt", "original")

	content, _ := memfs.ReadFile("/test.txt")
	content[0] = 'X'

	content2, _ := memfs.ReadFile("/test.txt")
	if string(content2) != "original" {
		t.Errorf("file content was modified: got %q", content2)
	}
}

func TestMemFS_WriteFileModification(t *testing.T) {
	memfs := NewMemFS()

	data := []byte("original")
	memfs.WriteFile("/test.txt", data, 0644)
	data[0] = 'X'

	content, _ := memfs.ReadFile("/test.txt")
	if string(content) != "original" {
		t.Errorf("file content was modified: got %q", content)
	}
}

func TestMemFS_WriteKeepsMode(t *testing.T) {
	memfs := NewMemFS()
	memfs.WriteFile("/script.sh", []byte("#!/bin/sh"), 0755)
	memfs.WriteFile("/script.sh", []byte("#!/bin/bash"), 0644)

	info, err := memfs.Stat("/script.sh")
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Mode() != 0755 {
		t.Errorf("Mode: got %v, want %v", info.Mode(), fs.FileMode(0755))
	}
}

func TestMemFS_Syncs(t *testing.T) {
	memfs := NewMemFS()
	memfs.WriteFile("/a.txt", []byte("a"), 0644)
	if memfs.Syncs() != 0 {
		t.Errorf("Syncs after WriteFile: got %d, want 0", memfs.Syncs())
	}
	memfs.WriteFileSync("/a.txt", []byte("b"), 0644)
	if memfs.Syncs() != 1 {
		t.Errorf("Syncs after WriteFileSync: got %d, want 1", memfs.Syncs())
	}
}

func TestMemFS_Files(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/b.txt", "")
	memfs.AddFile("/a.txt", "")
	memfs.AddFile("/dir/c.txt", "")

	files := memfs.Files()
	want := []string{"/a.txt", "/b.txt", "/dir/c.txt"}
	if len(files) != len(want) {
		t.Fatalf("Files: got %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("Files[%d]: got %q, want %q", i, files[i], want[i])
		}
	}
}

func TestMemFS_RemoveNonEmptyDir(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/dir/file.txt", "content")

	err := memfs.Remove("/dir")
	if !errors.Is(err, syscall.ENOTEMPTY) {
		t.Errorf("Remove non-empty dir: got %v, want ENOTEMPTY", err)
	}
}

func TestMemFS_MkdirAllExistingFile(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/file.txt", "content")

	if err := memfs.MkdirAll("/file.txt/sub", 0755); err == nil {
		t.Error("expected error when creating dir under file")
	}
}

func TestMemFS_RenameDirectory(t *testing.T) {
	memfs := NewMemFS()
	memfs.MkdirAll("/dir", 0755)

	if err := memfs.Rename("/dir", "/other"); !errors.Is(err, syscall.EISDIR) {
		t.Errorf("Rename directory: got %v, want EISDIR", err)
	}
}

func TestMemFS_RenameParentNotExist(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/a.txt", "a")

	if err := memfs.Rename("/a.txt", "/missing/a.txt"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("got %v, want fs.ErrNotExist", err)
	}
	if !memfs.Exists("/a.txt") {
		t.Error("source must survive a failed rename")
	}
}

func TestMemFS_ConcurrentAccess(t *testing.T) {
	fs := NewMemFS()

	done := make(chan bool)

	go func() {
		for i := 0; i < 100; i++ {
			fs.WriteFileSync("/concurrent.txt", []byte("data"), 0644)
		}
		done <- true
	}()

	go func() {
		for i := 0; i < 100; i++ {
			fs.ReadFile("/concurrent.txt")
		}
		done <- true
	}()

	go func() {
		for i := 0; i < 100; i++ {
			fs.Stat("/concurrent.txt")
		}
		done <- true
	}()

	<-done
	<-done
	<-done
}

func TestMemFS_WriteParentNotExist(t *testing.T) {
	fs := NewMemFS()

	err := fs.WriteFile("/nonexistent/file.txt", []byte("data"), 0644)
	if err == nil {
		t.Error("expected error when parent doesn't exist")
	}
}
