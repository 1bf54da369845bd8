package logger

import (
	"bufio"
	"errors"
	"io"
	"sync"
)

// writeOp is either a payload or a flush request carrying its ack channel.
type writeOp struct {
	data []byte
	ack  chan error
}

// asyncWriter fans log lines out to several sinks from a single goroutine.
type asyncWriter struct {
	ops    chan writeOp
	done   chan struct{}
	closed sync.Once
	sinks  []*bufio.Writer

	mu  sync.Mutex
	err error
}

func newAsyncWriter(writers []io.Writer, bufSize int) *asyncWriter {
	if bufSize <= 0 {
		bufSize = 64 * 1024
	}
	w := &asyncWriter{
		ops:  make(chan writeOp, 256),
		done: make(chan struct{}),
	}
	for _, out := range writers {
		if out != nil {
			w.sinks = append(w.sinks, bufio.NewWriterSize(out, bufSize))
		}
	}
	go w.run()
	return w
}

func (w *asyncWriter) run() {
	defer close(w.done)
	for op := range w.ops {
		if op.ack != nil {
			op.ack <- w.flushSinks()
			continue
		}
		for _, s := range w.sinks {
			if _, err := s.Write(op.data); err != nil {
				w.fail(err)
				break
			}
			if err := s.Flush(); err != nil {
				w.fail(err)
				break
			}
		}
	}
	w.fail(w.flushSinks())
}

// Write copies p and queues it. It blocks when the queue is full rather than dropping lines.
func (w *asyncWriter) Write(p []byte) error {
	if err := w.lastErr(); err != nil {
		return err
	}
	if len(p) == 0 {
		return nil
	}
	w.ops <- writeOp{data: append([]byte(nil), p...)}
	return nil
}

// Flush blocks until every line queued before the call reached the sinks.
func (w *asyncWriter) Flush() error {
	if err := w.lastErr(); err != nil {
		return err
	}
	ack := make(chan error, 1)
	w.ops <- writeOp{ack: ack}
	return <-ack
}

// Close drains the queue and returns the first write error seen.
func (w *asyncWriter) Close() error {
	w.closed.Do(func() { close(w.ops) })
	<-w.done
	return w.lastErr()
}

func (w *asyncWriter) flushSinks() error {
	var errs []error
	for _, s := range w.sinks {
		errs = append(errs, s.Flush())
	}
	return errors.Join(errs...)
}

func (w *asyncWriter) lastErr() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

func (w *asyncWriter) fail(err error) {
	if err == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err == nil {
		w.err = err
	}
}
