// Package progress reports how far a long-running walk has got.
package progress

import "go.uber.org/zap"

// SpinnerProgressTracker follows work whose total is not known up front.
type SpinnerProgressTracker interface {
	SetMessage(msg string)
	SetDone(n int)
	SetError(err error)
	MarkFinished()
}

type NoopSpinnerProgressTracker struct{}

var _ SpinnerProgressTracker = NoopSpinnerProgressTracker{}

func (n NoopSpinnerProgressTracker) SetMessage(msg string) {}
func (n NoopSpinnerProgressTracker) SetDone(n2 int)        {}
func (n NoopSpinnerProgressTracker) SetError(err error)    {}
func (n NoopSpinnerProgressTracker) MarkFinished()         {}

// LogSpinnerProgressTracker writes progress to a logger at debug level,
// once every Every completed items.
type LogSpinnerProgressTracker struct {
	log   *zap.Logger
	every int

	msg      string
	done     int
	lastLog  int
	errCount int
}

var _ SpinnerProgressTracker = (*LogSpinnerProgressTracker)(nil)

func NewLogSpinnerProgressTracker(log *zap.Logger, every int) *LogSpinnerProgressTracker {
	if every <= 0 {
		every = 1000
	}
	return &LogSpinnerProgressTracker{log: log, every: every}
}

func (l *LogSpinnerProgressTracker) SetMessage(msg string) {
	l.msg = msg
	l.log.Debug(msg)
}

func (l *LogSpinnerProgressTracker) SetDone(n int) {
	l.done = n
	if l.done-l.lastLog >= l.every {
		l.lastLog = l.done
		l.log.Debug("progress", zap.String("task", l.msg), zap.Int("done", l.done))
	}
}

func (l *LogSpinnerProgressTracker) SetError(err error) {
	l.errCount++
	l.log.Debug("progress error", zap.String("task", l.msg), zap.Error(err))
}

func (l *LogSpinnerProgressTracker) MarkFinished() {
	l.log.Debug("finished",
		zap.String("task", l.msg),
		zap.Int("done", l.done),
		zap.Int("errors", l.errCount))
}

// Done returns the last value passed to SetDone.
func (l *LogSpinnerProgressTracker) Done() int {
	return l.done
}

// Errors returns how many times SetError was called.
func (l *LogSpinnerProgressTracker) Errors() int {
	return l.errCount
}
