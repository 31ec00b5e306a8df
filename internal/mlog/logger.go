package mlog

import (
	"bytes"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/IrineSistiana/seqlist/internal/delaywriter"
	"github.com/rs/zerolog"
)

var (
	l   = initLogger()
	nop = zerolog.Nop()
)

func initLogger() *zerolog.Logger {
	var out io.Writer = os.Stderr
	if ok, _ := strconv.ParseBool(os.Getenv("SEQLIST_BUFFERLOGGER")); ok {
		out = delaywriter.New(os.Stderr, delaywriter.Opts{
			BufSize: 4096,
			Delay:   time.Millisecond * 10,
		})
	}

	if ok, _ := strconv.ParseBool(os.Getenv("SEQLIST_JSONLOGGER")); !ok {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.DateTime}
	}
	logger := zerolog.New(out).With().Timestamp().Logger()

	// Redirect std log
	log.SetFlags(0) // disable time/date
	log.SetPrefix("")
	log.SetOutput(WriteToLogger(&logger, zerolog.InfoLevel, "redirect std log"))
	return &logger
}

func L() *zerolog.Logger {
	return l
}

// SetLvl sets the global level, it affects all loggers.
func SetLvl(lvl zerolog.Level) {
	zerolog.SetGlobalLevel(lvl)
}

func Lvl() zerolog.Level {
	return zerolog.GlobalLevel()
}

func Nop() *zerolog.Logger {
	return &nop
}

// Sub returns a child of L() tagged with module name.
func Sub(mod string) *zerolog.Logger {
	sl := l.With().Str("module", mod).Logger()
	return &sl
}

func WriteToLogger(to *zerolog.Logger, lvl zerolog.Level, msg string) io.Writer {
	return &logCatcher{logger: to, lvl: lvl, msg: msg}
}

type logCatcher struct {
	logger *zerolog.Logger
	lvl    zerolog.Level
	msg    string
}

func (w *logCatcher) Write(b []byte) (int, error) {
	w.logger.WithLevel(w.lvl).Bytes("data", bytes.TrimSpace(b)).Msg(w.msg)
	return len(b), nil
}
