package replay

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/IrineSistiana/seqlist/app"
	"github.com/IrineSistiana/seqlist/internal/mlog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func init() {
	app.RootCmd().AddCommand(newReplayCmd())
}

func newReplayCmd() *cobra.Command {
	var cfgPath string
	c := &cobra.Command{
		Use:   "replay",
		Short: "Run a scenario file against named lists",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			logger := mlog.L()
			cfg, err := loadConfigFile(cfgPath)
			if err != nil {
				logger.Fatal().Err(err).Str("file", cfgPath).Msg("failed to load config file")
			}
			logger.Info().Str("file", cfgPath).Int("steps", len(cfg.Steps)).Msg("config file loaded")
			if err := run(cmd.Context(), cfg, logger); err != nil {
				logger.Fatal().Err(err).Msg("replay failed")
			}
		},
	}
	c.Flags().StringVarP(&cfgPath, "config", "c", "scenario.yaml", "path of the scenario file")

	genConfigCmd := &cobra.Command{
		Use:   "gen-config",
		Short: "Generate a scenario template",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := genConfigTemplate(args[0]); err != nil {
				mlog.L().Fatal().Err(err).Msg("failed to generate config template")
			}
		},
	}
	c.AddCommand(genConfigCmd)
	return c
}

func run(ctx context.Context, cfg *Config, logger *zerolog.Logger) error {
	reg := newMetricsReg()

	if addr := cfg.Metrics.Addr; len(addr) > 0 {
		l, err := net.Listen("tcp", addr)
		if err != nil {
			return err
		}
		defer l.Close()
		logger.Info().Stringer("addr", l.Addr()).Msg("metrics endpoint started")
		go serveMetrics(l, reg, logger)
	}

	r, err := NewRunner(RunnerOpts{
		LogSteps:   cfg.Log.Steps,
		Logger:     logger,
		Registerer: reg,
	})
	if err != nil {
		return err
	}
	defer r.Close()

	err = r.Run(ctx, cfg.Steps, cfg.Repeat)
	logMetrics(logger, reg)
	if err != nil {
		return err
	}
	logger.Info().Int("rounds", cfg.Repeat).Msg("replay finished")
	return nil
}

func serveMetrics(l net.Listener, reg *prometheus.Registry, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	err := http.Serve(l, mux)
	if !errors.Is(err, net.ErrClosed) {
		logger.Error().Err(err).Msg("metrics endpoint exited")
	}
}
