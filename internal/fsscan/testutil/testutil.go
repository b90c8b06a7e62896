// Package testutil builds synthetic directory trees with a known extension mix.
package testutil

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing/fstest"
	"time"
)

// NoExtension is the key Counts uses for generated files without an extension.
const NoExtension = "no_extension"

// TreeConfig defines the structure of a generated filesystem tree.
type TreeConfig struct {
	// Depth is the maximum depth of the directory tree (0 = root only).
	Depth int

	// BreadthPerDir is the number of subdirectories to create at each level.
	BreadthPerDir int

	// FilesPerDir is the number of files to create in each directory.
	FilesPerDir int

	// LeafFilesOnly, if true, only creates files at the maximum depth (leaf directories).
	// If false, creates files at every directory level.
	LeafFilesOnly bool

	// Extensions is cycled through for the files of each directory. An empty
	// string produces a file without an extension. Case is kept as given, so
	// "TXT" and "txt" both appear on disk.
	Extensions []string

	// ModTime is the modification time for all files and directories.
	// If zero, uses the current time.
	ModTime time.Time
}

// DefaultTreeConfig returns a reasonable default configuration for testing.
func DefaultTreeConfig() TreeConfig {
	return TreeConfig{
		Depth:         3,
		BreadthPerDir: 2,
		FilesPerDir:   5,
		LeafFilesOnly: false,
		Extensions:    []string{"go", "md", "TXT", "", "txt"},
		ModTime:       time.Unix(1234567890, 0),
	}
}

// Tree is a generated tree together with the tally a correct scan must produce.
type Tree struct {
	FS fstest.MapFS

	// Counts maps lowercase extension (or NoExtension) to file count.
	Counts map[string]int

	// NoExtension lists slash separated paths of extension-less files in
	// lexical walk order.
	NoExtension []string
}

// Files returns the number of generated files.
func (t Tree) Files() int {
	total := 0
	for _, n := range t.Counts {
		total += n
	}
	return total
}

// GenerateTree creates a testing/fstest.MapFS with a tree structure
// defined by the given configuration.
func GenerateTree(config TreeConfig) Tree {
	if config.ModTime.IsZero() {
		config.ModTime = time.Now()
	}
	if len(config.Extensions) == 0 {
		config.Extensions = []string{"txt"}
	}

	tree := Tree{
		FS:     make(fstest.MapFS),
		Counts: make(map[string]int),
	}
	generateTree(&tree, "", 0, config)

	// MapFS walks in lexical order; recompute the no-extension order the same way.
	_ = fs.WalkDir(tree.FS, ".", func(p string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() && path.Ext(p) == "" {
			tree.NoExtension = append(tree.NoExtension, p)
		}
		return err
	})
	return tree
}

// generateTree recursively generates the directory tree.
func generateTree(tree *Tree, currentPath string, currentDepth int, config TreeConfig) {
	shouldCreateFiles := !config.LeafFilesOnly || currentDepth == config.Depth
	if shouldCreateFiles {
		for i := 0; i < config.FilesPerDir; i++ {
			ext := config.Extensions[i%len(config.Extensions)]
			fileName := fmt.Sprintf("file%d", i)
			key := NoExtension
			if ext != "" {
				fileName += "." + ext
				key = strings.ToLower(ext)
			}
			filePath := fileName
			if currentPath != "" {
				filePath = path.Join(currentPath, fileName)
			}

			tree.FS[filePath] = &fstest.MapFile{
				Data:    []byte("Content for " + filePath + "\n"),
				Mode:    0644,
				ModTime: config.ModTime,
			}
			tree.Counts[key]++
		}
	}

	if currentDepth < config.Depth {
		for i := 0; i < config.BreadthPerDir; i++ {
			dirName := fmt.Sprintf("dir%d", i)
			dirPath := dirName
			if currentPath != "" {
				dirPath = path.Join(currentPath, dirName)
			}

			tree.FS[dirPath] = &fstest.MapFile{
				Mode:    fs.ModeDir | 0755,
				ModTime: config.ModTime,
			}

			generateTree(tree, dirPath, currentDepth+1, config)
		}
	}
}

// Materialize writes every entry of fsys below dir on the OS filesystem.
func Materialize(dir string, fsys fstest.MapFS) error {
	for name, f := range fsys {
		target := filepath.Join(dir, filepath.FromSlash(name))
		if f.Mode.IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(target, f.Data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	return nil
}

// CountExpectedFiles calculates how many files will be generated with the given config.
func CountExpectedFiles(config TreeConfig) int {
	return countFilesAtDepth(0, config)
}

func countFilesAtDepth(depth int, config TreeConfig) int {
	dirsAtDepth := 1
	for i := 0; i < depth; i++ {
		dirsAtDepth *= config.BreadthPerDir
	}

	var filesAtDepth int
	if !config.LeafFilesOnly || depth == config.Depth {
		filesAtDepth = dirsAtDepth * config.FilesPerDir
	}

	if depth < config.Depth {
		filesAtDepth += countFilesAtDepth(depth+1, config)
	}

	return filesAtDepth
}
