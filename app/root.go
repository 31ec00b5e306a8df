package app

import (
	"fmt"
	"net"
	"net/http"
	_ "net/http/pprof"
	"runtime"

	"github.com/IrineSistiana/seqlist/internal/mlog"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var rootCmd = newRootCmd()

type rootOpts struct {
	logLvl      string
	gomaxprocs  int
	pprofServer string
}

func newRootCmd() *cobra.Command {
	opts := new(rootOpts)
	c := &cobra.Command{
		Use:          "seqlist",
		Short:        "Replay scenarios against seqlist containers",
		SilenceUsage: true,
	}
	fs := c.PersistentFlags()
	fs.StringVar(&opts.logLvl, "log-lvl", "info", "log level [trace|debug|info|warn|error|fatal|disabled]")
	fs.IntVar(&opts.gomaxprocs, "gomaxprocs", 0, "set runtime.GOMAXPROCS()")
	fs.StringVar(&opts.pprofServer, "pprof", "", "start golang pprof endpoint at this address")
	c.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return opts.apply()
	}
	return c
}

func (o *rootOpts) apply() error {
	if o.gomaxprocs > 0 {
		runtime.GOMAXPROCS(o.gomaxprocs)
	}
	lvl, err := zerolog.ParseLevel(o.logLvl)
	if err != nil {
		return fmt.Errorf("invalid log lvl [%s]. %w", o.logLvl, err)
	}
	mlog.SetLvl(lvl)

	if len(o.pprofServer) > 0 {
		if err := startPprof(o.pprofServer); err != nil {
			return fmt.Errorf("failed to start pprof server, %w", err)
		}
	}
	return nil
}

// startPprof serves net/http/pprof on the default mux in the background.
func startPprof(addr string) error {
	logger := mlog.L()
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	logger.Info().Stringer("addr", l.Addr()).Msg("pprof server started")
	go func() {
		defer l.Close()
		err := http.Serve(l, nil)
		logger.Error().Err(err).Msg("pprof server exited")
	}()
	return nil
}

func RootCmd() *cobra.Command {
	return rootCmd
}
