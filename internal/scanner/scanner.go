// Package scanner walks a directory tree once and tallies its regular files by
// extension.
package scanner

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/garethgeorge/exttally/internal/fsscan"
	"github.com/garethgeorge/exttally/internal/progress"
	"github.com/garethgeorge/exttally/internal/tally"
	"github.com/jmgilman/go/errors"
	"go.uber.org/zap"
)

// CodeInvalidDirectory marks a scan root that is missing, unreadable or not a directory.
const CodeInvalidDirectory errors.ErrorCode = "INVALID_DIRECTORY"

// Skipped is an entry below the root that could not be read.
type Skipped struct {
	Path string
	Err  error
}

// Result is the outcome of a single scan.
type Result struct {
	// Root is the directory as it was passed to Scan.
	Root    string
	Tally   *tally.Tally
	Skipped []Skipped
}

type options struct {
	log      *zap.Logger
	progress progress.SpinnerProgressTracker
}

type Option func(*options)

func WithLogger(log *zap.Logger) Option {
	return func(o *options) { o.log = log }
}

func WithProgress(p progress.SpinnerProgressTracker) Option {
	return func(o *options) { o.progress = p }
}

// Scan checks that root is a directory and then walks it on the OS filesystem.
// Recorded paths are root joined with the entry's relative path, so they are
// relative or absolute the same way root is.
func Scan(ctx context.Context, root string, opts ...Option) (*Result, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, invalidDirectory(root, err)
	}
	if !info.IsDir() {
		return nil, invalidDirectory(root, nil)
	}
	return ScanFS(ctx, os.DirFS(root), root, opts...)
}

// ScanFS walks fsys, which must be rooted at root. root is only used to build
// the paths recorded in the result.
func ScanFS(ctx context.Context, fsys fs.FS, root string, opts ...Option) (*Result, error) {
	o := options{
		log:      zap.NewNop(),
		progress: progress.NoopSpinnerProgressTracker{},
	}
	for _, opt := range opts {
		opt(&o)
	}

	res := &Result{Root: root, Tally: tally.New()}
	o.progress.SetMessage("scanning " + root)
	defer o.progress.MarkFinished()

	files := 0
	for m := range fsscan.WalkFS(fsys) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if m.Error != nil {
			if m.Path == "." || m.Path == "" {
				return nil, invalidDirectory(root, m.Error)
			}
			o.log.Warn("skipping unreadable entry", zap.String("path", m.Path), zap.Error(m.Error))
			o.progress.SetError(m.Error)
			res.Skipped = append(res.Skipped, Skipped{
				Path: filepath.Join(root, filepath.FromSlash(m.Path)),
				Err:  m.Error,
			})
			continue
		}

		if !isRegular(fsys, m, o.log) {
			continue
		}

		res.Tally.Add(filepath.Join(root, filepath.FromSlash(m.Path)))
		files++
		o.progress.SetDone(files)
	}

	if err := res.Tally.Check(); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "tally is inconsistent")
	}
	o.log.Debug("scan complete",
		zap.String("root", root),
		zap.Int("files", files),
		zap.Int("extensions", res.Tally.Distinct()),
		zap.Int("skipped", len(res.Skipped)))
	return res, nil
}

// isRegular reports whether m should be counted as a file. Symlinks count when
// their target is a regular file.
func isRegular(fsys fs.FS, m fsscan.FileMetadata, log *zap.Logger) bool {
	switch {
	case m.IsDir():
		return false
	case m.Mode.IsRegular():
		return true
	case m.IsSymlink():
		info, err := fs.Stat(fsys, m.Path)
		if err != nil {
			log.Debug("ignoring dangling symlink", zap.String("path", m.Path), zap.Error(err))
			return false
		}
		return info.Mode().IsRegular()
	default:
		log.Debug("ignoring special file", zap.String("path", m.Path), zap.Stringer("mode", m.Mode))
		return false
	}
}

func invalidDirectory(root string, cause error) errors.PlatformError {
	var err errors.PlatformError
	if cause != nil {
		err = errors.Wrapf(cause, CodeInvalidDirectory, "'%s' is not a valid directory", root)
	} else {
		err = errors.Newf(CodeInvalidDirectory, "'%s' is not a valid directory", root)
	}
	return errors.WithContext(err, "path", root)
}

// IsInvalidDirectory reports whether err came from a failed root check.
func IsInvalidDirectory(err error) bool {
	return errors.GetCode(err) == CodeInvalidDirectory
}
