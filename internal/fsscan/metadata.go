package fsscan

import (
	"io/fs"
	"path"
)

// FileMetadata describes one entry produced by a walk.
type FileMetadata struct {
	// Path is slash separated and relative to the walk root. The root itself is ".".
	Path string

	// Mode holds only the type bits of the entry, as reported by the directory listing.
	Mode  fs.FileMode
	Error error
}

// Name returns the final element of Path.
func (m FileMetadata) Name() string {
	return path.Base(m.Path)
}

func (m FileMetadata) IsDir() bool {
	return m.Mode.IsDir()
}

func (m FileMetadata) IsSymlink() bool {
	return m.Mode&fs.ModeSymlink != 0
}
