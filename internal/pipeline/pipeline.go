package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/skelgen-labs/skelgen/internal/answers"
	"github.com/skelgen-labs/skelgen/internal/runtime"
	"go.uber.org/zap"
)

// Env is what step actions operate on.
type Env struct {
	// Dir is the root of the materialized project.
	Dir string

	Answers *answers.Context
	Runner  runtime.Runner

	// Out receives user-facing output such as the final message.
	Out io.Writer

	Log *zap.Logger

	// Report is the run in progress; steps may consult earlier results.
	Report *Report
}

// Pipeline is an ordered list of steps.
type Pipeline struct {
	steps    []Step
	notifier Notifier
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithNotifier reports step progress to n.
func WithNotifier(n Notifier) Option {
	return func(p *Pipeline) { p.notifier = n }
}

// New returns a pipeline over steps. Step names must be unique.
func New(steps []Step, opts ...Option) (*Pipeline, error) {
	seen := make(map[string]bool, len(steps))
	for _, s := range steps {
		if s.Name == "" {
			return nil, fmt.Errorf("pipeline step without a name")
		}
		if seen[s.Name] {
			return nil, fmt.Errorf("duplicate pipeline step %q", s.Name)
		}
		for _, req := range s.Requires {
			if !seen[req] {
				return nil, fmt.Errorf("step %q requires %q, which does not run before it", s.Name, req)
			}
		}
		seen[s.Name] = true
	}

	p := &Pipeline{steps: steps, notifier: NopNotifier{}}
	for _, o := range opts {
		o(p)
	}
	return p, nil
}

// Steps returns the steps in run order.
func (p *Pipeline) Steps() []Step { return p.steps }

// Run executes the steps in order and stops at the first failure. The
// returned report is complete even when err is non-nil; steps after a
// failure remain pending. A failed step's error is a *StepError.
func (p *Pipeline) Run(ctx context.Context, env *Env) (*Report, error) {
	if env.Log == nil {
		env.Log = zap.NewNop()
	}
	if env.Out == nil {
		env.Out = io.Discard
	}

	report := &Report{RunID: uuid.NewString(), State: RunRunning}
	for _, s := range p.steps {
		report.Steps = append(report.Steps, StepResult{Name: s.Name, State: StatePending})
	}
	env.Report = report
	log := env.Log.With(zap.String("run_id", report.RunID))

	for i, s := range p.steps {
		res := &report.Steps[i]

		if reason, ok := p.enabled(s, env); !ok {
			res.State = StateSucceeded
			res.Skipped = true
			res.Reason = reason
			log.Debug("step skipped", zap.String("step", s.Name), zap.String("reason", reason))
			p.notifier.StepFinished(*res)
			continue
		}

		if err := ctx.Err(); err != nil {
			return p.abort(report, res, err, log)
		}

		res.State = StateRunning
		p.notifier.StepStarted(s.Name)
		log.Debug("step started", zap.String("step", s.Name))

		start := time.Now()
		err := s.Action(ctx, env)
		res.Duration = time.Since(start)

		if err != nil {
			return p.abort(report, res, err, log)
		}
		res.State = StateSucceeded
		log.Debug("step succeeded", zap.String("step", s.Name), zap.Duration("took", res.Duration))
		p.notifier.StepFinished(*res)
	}

	report.State = RunCompleted
	return report, nil
}

func (p *Pipeline) abort(report *Report, res *StepResult, err error, log *zap.Logger) (*Report, error) {
	res.State = StateFailed
	res.Err = err
	report.State = RunAborted
	log.Warn("step failed", zap.String("step", res.Name), zap.Error(err))
	p.notifier.StepFinished(*res)
	return report, &StepError{Step: res.Name, Err: err}
}

// enabled checks the gate and requirements of s.
func (p *Pipeline) enabled(s Step, env *Env) (string, bool) {
	if s.Disabled != "" {
		return s.Disabled, false
	}
	if s.Gate != nil && !s.Gate.Eval(env.Answers) {
		return "disabled by " + s.Gate.Source(), false
	}
	for _, req := range s.Requires {
		if !env.Report.Executed(req) {
			return req + " did not run", false
		}
	}
	return "", true
}
