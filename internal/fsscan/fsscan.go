// Package fsscan walks a directory tree and yields one FileMetadata per entry.
//
// Only directory listings are read. Entries are not stat'ed and file contents
// are never opened, so callers that need the target of a symlink must resolve
// it themselves.
package fsscan

import (
	"io/fs"
	"iter"
	"os"
)

// WalkFS walks fsys starting from its root in lexical order.
// This is useful for testing with custom filesystems.
//
// Errors do not stop the walk: an entry that cannot be read is yielded with
// Error set and, for directories, its children are skipped.
func WalkFS(fsys fs.FS) iter.Seq[FileMetadata] {
	return func(yield func(FileMetadata) bool) {
		if err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if !yield(FileMetadata{
					Path:  path,
					Error: err,
				}) {
					return fs.SkipAll
				}
				return nil
			}

			if !yield(FileMetadata{
				Path: path,
				Mode: d.Type(),
			}) {
				return fs.SkipAll
			}
			return nil
		}); err != nil {
			yield(FileMetadata{
				Path:  "",
				Error: err,
			})
		}
	}
}

// WalkDirectory walks a directory on the OS filesystem.
// For testing with custom filesystems, use WalkFS instead.
func WalkDirectory(dir string) iter.Seq[FileMetadata] {
	return WalkFS(os.DirFS(dir))
}
