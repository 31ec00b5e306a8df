package replay

import (
	"strings"

	"github.com/IrineSistiana/seqlist/list"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
)

const metricsNamespace = "seqlist"

func newMetricsReg() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	reg.MustRegister(collectors.NewGoCollector())
	return reg
}

func regMetrics(r prometheus.Registerer, cs ...prometheus.Collector) error {
	for _, c := range cs {
		if err := r.Register(c); err != nil {
			return err
		}
	}
	return nil
}

type runnerMetrics struct {
	steps          *prometheus.CounterVec
	expectFailures prometheus.Counter
	listLen        *prometheus.GaugeVec
	nodesInUse     prometheus.GaugeFunc
}

func newRunnerMetrics() *runnerMetrics {
	return &runnerMetrics{
		steps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "steps_total",
			Help:      "The total number of executed steps",
		}, []string{"op"}),
		expectFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "expectation_failures_total",
			Help:      "The total number of failed step expectations",
		}),
		listLen: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "list_len",
			Help:      "Current length of a named list",
		}, []string{"list"}),
		nodesInUse: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "nodes_in_use",
			Help:      "Nodes currently linked into any list of this process",
		}, func() float64 { return float64(list.NodePoolStats().InUse()) }),
	}
}

func (m *runnerMetrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{m.steps, m.expectFailures, m.listLen, m.nodesInUse}
}

// logMetrics logs every sample of this package's metric families.
func logMetrics(logger *zerolog.Logger, g prometheus.Gatherer) {
	mfs, err := g.Gather()
	if err != nil {
		logger.Error().Err(err).Msg("failed to gather metrics")
		return
	}
	for _, mf := range mfs {
		if !strings.HasPrefix(mf.GetName(), metricsNamespace+"_") {
			continue
		}
		for _, m := range mf.GetMetric() {
			e := logger.Info().Str("name", mf.GetName())
			for _, lp := range m.GetLabel() {
				e.Str(lp.GetName(), lp.GetValue())
			}
			switch {
			case m.GetCounter() != nil:
				e.Float64("value", m.GetCounter().GetValue())
			case m.GetGauge() != nil:
				e.Float64("value", m.GetGauge().GetValue())
			}
			e.Msg("metric")
		}
	}
}
