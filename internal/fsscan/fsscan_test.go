package fsscan

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"testing/fstest"
)

func TestWalkDirectory_BasicStructure(t *testing.T) {
	// Create a temporary directory structure
	tmpDir := t.TempDir()

	// Create test structure:
	// tmpDir/
	//   file1.txt
	//   subdir/
	//     file2.txt
	//     README
	if err := os.WriteFile(filepath.Join(tmpDir, "file1.txt"), []byte("content1"), 0644); err != nil {
		t.Fatalf("failed to create file1.txt: %v", err)
	}
	subdir := filepath.Join(tmpDir, "subdir")
	if err := os.Mkdir(subdir, 0755); err != nil {
		t.Fatalf("failed to create subdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(subdir, "file2.txt"), []byte("content2"), 0644); err != nil {
		t.Fatalf("failed to create file2.txt: %v", err)
	}
	if err := os.WriteFile(filepath.Join(subdir, "README"), []byte("readme"), 0644); err != nil {
		t.Fatalf("failed to create README: %v", err)
	}

	var results []FileMetadata
	for metadata := range WalkDirectory(tmpDir) {
		results = append(results, metadata)
	}

	// root, file1.txt, subdir, subdir/README, subdir/file2.txt
	if len(results) != 5 {
		t.Errorf("expected 5 items, got %d", len(results))
		for i, r := range results {
			t.Logf("  [%d] %s (err: %v)", i, r.Path, r.Error)
		}
	}

	for _, r := range results {
		if filepath.IsAbs(r.Path) {
			t.Errorf("expected relative path, got absolute: %s", r.Path)
		}
		if r.Error != nil {
			t.Errorf("unexpected error for %s: %v", r.Path, r.Error)
		}
	}

	for _, r := range results {
		switch r.Path {
		case ".", "subdir":
			if !r.IsDir() {
				t.Errorf("directory %s does not have IsDir mode, mode: %v", r.Path, r.Mode)
			}
		default:
			if !r.Mode.IsRegular() {
				t.Errorf("file %s is not a regular file, mode: %v", r.Path, r.Mode)
			}
		}
	}
}

func TestWalkDirectory_NonExistentDirectory(t *testing.T) {
	nonExistentDir := filepath.Join(t.TempDir(), "does-not-exist")

	var results []FileMetadata
	for metadata := range WalkDirectory(nonExistentDir) {
		results = append(results, metadata)
	}

	if len(results) == 0 {
		t.Fatal("expected at least one result with error")
	}
	if !slices.ContainsFunc(results, func(m FileMetadata) bool { return m.Error != nil }) {
		t.Error("expected error result for non-existent directory")
	}
}

func TestWalkDirectory_EarlyCancellation(t *testing.T) {
	tmpDir := t.TempDir()

	for i := 0; i < 10; i++ {
		filename := filepath.Join(tmpDir, string(rune('a'+i))+".txt")
		if err := os.WriteFile(filename, []byte("content"), 0644); err != nil {
			t.Fatalf("failed to create file: %v", err)
		}
	}

	var results []FileMetadata
	for metadata := range WalkDirectory(tmpDir) {
		results = append(results, metadata)
		if len(results) >= 3 {
			break
		}
	}

	if len(results) != 3 {
		t.Errorf("expected 3 items due to early cancellation, got %d", len(results))
	}
}

func TestWalkDirectory_EmptyDirectory(t *testing.T) {
	tmpDir := t.TempDir()

	var results []FileMetadata
	for metadata := range WalkDirectory(tmpDir) {
		results = append(results, metadata)
	}

	// Only the root directory itself.
	if len(results) != 1 {
		t.Fatalf("expected 1 item for empty directory, got %d", len(results))
	}
	if results[0].Error != nil {
		t.Errorf("unexpected error for empty directory: %v", results[0].Error)
	}
	if !results[0].IsDir() {
		t.Errorf("root should be a directory, got mode: %v", results[0].Mode)
	}
	if results[0].Path != "." {
		t.Errorf("expected root path to be '.', got %q", results[0].Path)
	}
}

func TestWalkDirectory_Symlink(t *testing.T) {
	tmpDir := t.TempDir()

	if err := os.WriteFile(filepath.Join(tmpDir, "target.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("failed to create target: %v", err)
	}
	if err := os.Symlink("target.txt", filepath.Join(tmpDir, "link")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	var link *FileMetadata
	for metadata := range WalkDirectory(tmpDir) {
		if metadata.Path == "link" {
			m := metadata
			link = &m
		}
	}

	if link == nil {
		t.Fatal("link not found in results")
	}
	if !link.IsSymlink() {
		t.Errorf("expected symlink mode, got %v", link.Mode)
	}
}

func TestWalkDirectory_UnreadableSubdirectory(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks are bypassed when running as root")
	}
	tmpDir := t.TempDir()

	locked := filepath.Join(tmpDir, "locked")
	if err := os.Mkdir(locked, 0755); err != nil {
		t.Fatalf("failed to create locked: %v", err)
	}
	if err := os.WriteFile(filepath.Join(locked, "hidden.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("failed to create hidden.txt: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, "visible.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("failed to create visible.txt: %v", err)
	}
	if err := os.Chmod(locked, 0); err != nil {
		t.Fatalf("failed to chmod: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(locked, 0755) })

	var errored, visible bool
	for metadata := range WalkDirectory(tmpDir) {
		if metadata.Path == "locked" && metadata.Error != nil {
			errored = true
		}
		if metadata.Path == "visible.txt" {
			visible = true
		}
		if strings.HasSuffix(metadata.Path, "hidden.txt") {
			t.Errorf("walk should not descend into unreadable directory")
		}
	}

	if !errored {
		t.Error("expected an error entry for the unreadable directory")
	}
	if !visible {
		t.Error("walk stopped before visiting visible.txt")
	}
}

func TestWalkFS_MapFS(t *testing.T) {
	fsys := fstest.MapFS{
		"a/b/c/file.txt": &fstest.MapFile{Data: []byte("deep")},
		"top.md":         &fstest.MapFile{Data: []byte("top")},
	}

	var paths []string
	for metadata := range WalkFS(fsys) {
		if metadata.Error != nil {
			t.Fatalf("unexpected error for %s: %v", metadata.Path, metadata.Error)
		}
		paths = append(paths, metadata.Path)
	}

	want := []string{".", "a", "a/b", "a/b/c", "a/b/c/file.txt", "top.md"}
	if !slices.Equal(paths, want) {
		t.Errorf("got %v, want %v", paths, want)
	}
}

func TestFileMetadata_Name(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{".", "."},
		{"file.txt", "file.txt"},
		{"a/b/README", "README"},
	}
	for _, tt := range tests {
		m := FileMetadata{Path: tt.path, Mode: fs.ModeDir}
		if got := m.Name(); got != tt.want {
			t.Errorf("Name(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
