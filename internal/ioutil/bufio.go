// Package ioutil holds small io helpers shared by the report writers.
package ioutil

import (
	"bufio"
	"io"
)

const DefaultBufioSize = 4 * 1024

type bufferedWriteCloser struct {
	*bufio.Writer
}

var _ io.WriteCloser = bufferedWriteCloser{}

// Close flushes the buffer. It does not close the underlying writer.
func (b bufferedWriteCloser) Close() error {
	return b.Flush()
}

// WithBufferedWrites buffers writes to w until Close. After the first failed
// write every later write and the final Close return that same error, so
// callers may write freely and check once at Close.
func WithBufferedWrites(w io.Writer) io.WriteCloser {
	return bufferedWriteCloser{bufio.NewWriterSize(w, DefaultBufioSize)}
}
