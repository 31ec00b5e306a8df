package delaywriter

import (
	"bufio"
	"errors"
	"io"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultDelay   = time.Millisecond * 1
	defaultBufSize = 4096
)

var ErrClosedDelayWriter = errors.New("closed delay writer")

// DelayWriter buffers writes and flushes them shortly after,
// so bursts of small log lines become few syscalls.
type DelayWriter struct {
	l                   sync.Mutex
	w                   io.Writer
	bw                  *bufio.Writer
	directW             *rate.Limiter // maybe nil
	latestAsyncFlushErr error
	flushNotify         chan struct{}
	closeNotify         chan struct{}
	closed              bool
}

type Opts struct {
	BufSize int           // Default is 4096.
	Delay   time.Duration // Default is 1ms.

	// If > 0, a write bypasses the buffer when the limiter allows it.
	// Useful when writes are rare and should show up immediately.
	DirectWriteRateLimit rate.Limit
	DirectWriteBursts    int
}

func New(w io.Writer, opts Opts) *DelayWriter {
	if opts.BufSize <= 0 {
		opts.BufSize = defaultBufSize
	}
	if opts.Delay <= 0 {
		opts.Delay = defaultDelay
	}
	dw := &DelayWriter{
		w:           w,
		bw:          bufio.NewWriterSize(w, opts.BufSize),
		flushNotify: make(chan struct{}, 1),
		closeNotify: make(chan struct{}),
	}
	if opts.DirectWriteRateLimit > 0 {
		dw.directW = rate.NewLimiter(opts.DirectWriteRateLimit, opts.DirectWriteBursts)
	}
	go dw.flushLoop(opts.Delay)
	return dw
}

func (c *DelayWriter) Write(b []byte) (n int, err error) {
	c.l.Lock()
	defer c.l.Unlock()

	if c.closed {
		return 0, ErrClosedDelayWriter
	}

	// Report the latest failed async flush to the caller.
	if err = c.latestAsyncFlushErr; err != nil {
		c.latestAsyncFlushErr = nil
		return 0, err
	}

	if c.directW != nil && c.directW.Allow() {
		if err := c.bw.Flush(); err != nil {
			return 0, err
		}
		return c.w.Write(b)
	}

	n, err = c.bw.Write(b)
	if err != nil {
		return n, err
	}
	if c.bw.Buffered() > 0 {
		select {
		case c.flushNotify <- struct{}{}:
		default:
		}
	}
	return n, nil
}

func (c *DelayWriter) Flush() error {
	c.l.Lock()
	defer c.l.Unlock()

	if c.closed {
		return ErrClosedDelayWriter
	}
	return c.bw.Flush()
}

func (c *DelayWriter) flushLoop(delay time.Duration) {
	t := time.NewTimer(delay)
	t.Stop()
	defer t.Stop()

	for {
		select {
		case <-c.closeNotify:
			return
		case <-c.flushNotify:
		}

		t.Reset(delay)
		select {
		case <-c.closeNotify:
			return
		case <-t.C:
		}

		c.l.Lock()
		if !c.closed {
			c.latestAsyncFlushErr = c.bw.Flush()
		}
		c.l.Unlock()
	}
}

// Close flushes the buffer and stops the flush loop.
func (c *DelayWriter) Close() error {
	c.l.Lock()
	defer c.l.Unlock()

	if c.closed {
		return ErrClosedDelayWriter
	}
	c.closed = true
	close(c.closeNotify)
	return c.bw.Flush()
}
