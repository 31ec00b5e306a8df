package delaywriter

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

type lockedBuf struct {
	m sync.Mutex
	b bytes.Buffer
}

func (b *lockedBuf) Write(p []byte) (int, error) {
	b.m.Lock()
	defer b.m.Unlock()
	return b.b.Write(p)
}

func (b *lockedBuf) String() string {
	b.m.Lock()
	defer b.m.Unlock()
	return b.b.String()
}

func Test_DelayWriter(t *testing.T) {
	r := require.New(t)

	out := new(lockedBuf)
	w := New(out, Opts{Delay: time.Millisecond * 5})
	n, err := w.Write([]byte("hello"))
	r.NoError(err)
	r.Equal(5, n)

	r.Eventually(func() bool { return out.String() == "hello" }, time.Second, time.Millisecond)

	_, err = w.Write([]byte(" world"))
	r.NoError(err)
	r.NoError(w.Close())
	r.Equal("hello world", out.String())

	_, err = w.Write([]byte("x"))
	r.ErrorIs(err, ErrClosedDelayWriter)
	r.ErrorIs(w.Close(), ErrClosedDelayWriter)
	r.ErrorIs(w.Flush(), ErrClosedDelayWriter)
}

func Test_DelayWriter_direct(t *testing.T) {
	r := require.New(t)

	out := new(lockedBuf)
	w := New(out, Opts{Delay: time.Hour, DirectWriteRateLimit: rate.Inf})
	defer w.Close()

	_, err := w.Write([]byte("now"))
	r.NoError(err)
	r.Equal("now", out.String())
}
