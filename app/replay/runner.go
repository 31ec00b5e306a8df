package replay

import (
	"context"
	"slices"
	"strings"

	"github.com/IrineSistiana/seqlist/internal/mlog"
	"github.com/IrineSistiana/seqlist/list"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

type RunnerOpts struct {
	LogSteps bool

	Logger     *zerolog.Logger      // If nil, no log.
	Registerer prometheus.Registerer // If nil, metrics are not registered.
}

// Runner executes scenario steps against named lists.
// Lists are created on first reference. A Runner is not safe for concurrent use.
type Runner struct {
	opts    RunnerOpts
	logger  *zerolog.Logger // not nil
	lists   map[string]*list.List[string]
	metrics *runnerMetrics
}

func NewRunner(opts RunnerOpts) (*Runner, error) {
	logger := opts.Logger
	if logger == nil {
		logger = mlog.Nop()
	}
	r := &Runner{
		opts:    opts,
		logger:  logger,
		lists:   make(map[string]*list.List[string]),
		metrics: newRunnerMetrics(),
	}
	if opts.Registerer != nil {
		if err := regMetrics(opts.Registerer, r.metrics.collectors()...); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// List returns the list with name, creating it if needed.
func (r *Runner) List(name string) *list.List[string] {
	l := r.lists[name]
	if l == nil {
		l = list.New[string]()
		r.lists[name] = l
	}
	return l
}

// Run runs steps repeat times and stops at the first error.
// ctx is checked between steps.
func (r *Runner) Run(ctx context.Context, steps []StepConfig, repeat int) error {
	for round := 0; round < repeat; round++ {
		for i, s := range steps {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := r.Step(i, s); err != nil {
				return err
			}
		}
		r.logger.Debug().Int("round", round).Msg("round finished")
	}
	return nil
}

// Step runs one step. idx is only used for error reporting.
func (r *Runner) Step(idx int, s StepConfig) error {
	if err := s.validate(); err != nil {
		return &StepError{Index: idx, Op: s.Op, Err: err}
	}
	err := r.exec(s)
	r.metrics.steps.WithLabelValues(s.Op).Inc()
	r.updateLen(s.List)
	if len(s.From) > 0 {
		r.updateLen(s.From)
	}
	if err != nil {
		r.metrics.expectFailures.Inc()
		return &StepError{Index: idx, Op: s.Op, Err: err}
	}
	return nil
}

func (r *Runner) exec(s StepConfig) error {
	l := r.List(s.List)
	e := s.Expect
	if e == nil {
		e = new(ExpectConfig)
	}

	switch s.Op {
	case opPushBack:
		for _, v := range s.Values {
			l.PushBack(v)
		}
		r.logStep(s, l)
	case opPushFront:
		for _, v := range s.Values {
			l.PushFront(v)
		}
		r.logStep(s, l)
	case opPopFront, opPopBack, opFront, opBack:
		var v string
		var ok bool
		switch s.Op {
		case opPopFront:
			v, ok = l.PopFront()
		case opPopBack:
			v, ok = l.PopBack()
		case opFront:
			v, ok = l.Front()
		case opBack:
			v, ok = l.Back()
		}
		if r.opts.LogSteps {
			r.logger.Info().Str("op", s.Op).Str("list", s.List).Str("value", v).Bool("ok", ok).Int("len", l.Len()).Msg("step")
		}
		if err := checkValue(e, v, ok); err != nil {
			return err
		}
	case opAppend:
		l.Append(r.List(s.From))
		r.logStep(s, l)
	case opClear:
		l.Clear()
		r.logStep(s, l)
	case opLen:
		r.logStep(s, l)
	case opDump, opDrain:
		var vs []string
		if s.Op == opDump {
			vs = l.Values()
		} else {
			vs = slices.Collect(l.Drain())
		}
		if r.opts.LogSteps {
			r.logger.Info().Str("op", s.Op).Str("list", s.List).Strs("values", vs).Int("len", l.Len()).Msg("step")
		}
		if e.Values != nil && !slices.Equal(e.Values, vs) {
			return expectationf("want values [%s], got [%s]", strings.Join(e.Values, ", "), strings.Join(vs, ", "))
		}
	default:
		return ErrUnknownOp
	}

	if e.Len != nil && *e.Len != l.Len() {
		return expectationf("want len %d, got %d", *e.Len, l.Len())
	}
	return nil
}

func checkValue(e *ExpectConfig, v string, ok bool) error {
	switch {
	case e.Absent && ok:
		return expectationf("want no value, got %q", v)
	case e.Value != nil && !ok:
		return expectationf("want %q, got no value", *e.Value)
	case e.Value != nil && *e.Value != v:
		return expectationf("want %q, got %q", *e.Value, v)
	}
	return nil
}

func (r *Runner) logStep(s StepConfig, l *list.List[string]) {
	if !r.opts.LogSteps {
		return
	}
	r.logger.Info().Str("op", s.Op).Str("list", s.List).Int("len", l.Len()).Msg("step")
}

func (r *Runner) updateLen(name string) {
	if l := r.lists[name]; l != nil {
		r.metrics.listLen.WithLabelValues(name).Set(float64(l.Len()))
	}
}

// Close releases all lists.
func (r *Runner) Close() {
	for name, l := range r.lists {
		l.Clear()
		r.updateLen(name)
	}
}
