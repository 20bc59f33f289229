package scenario

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/zjrosen/portal/internal/log"
	"github.com/zjrosen/portal/internal/portal"
)

const viewColumn = 40

// Failure describes one failed expectation.
type Failure struct {
	Step    int
	Target  string
	Message string
}

func (f Failure) String() string {
	return fmt.Sprintf("step %d: target %s: %s", f.Step, f.Target, f.Message)
}

// Report summarizes a run.
type Report struct {
	Name        string
	Steps       int
	Transitions int
	Checks      int
	Failures    []Failure
}

// Passed reports whether every expectation held.
func (r Report) Passed() bool { return len(r.Failures) == 0 }

// Runner replays a Script against a fresh portal scope.
type Runner struct {
	script    *Script
	diff      bool
	storeOpts []portal.StoreOption
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithDiff toggles the registry diff printed after each mutating step.
func WithDiff(enabled bool) RunnerOption {
	return func(r *Runner) { r.diff = enabled }
}

// WithStoreOptions passes options to the scope's store, e.g. a tracer.
func WithStoreOptions(opts ...portal.StoreOption) RunnerOption {
	return func(r *Runner) { r.storeOpts = append(r.storeOpts, opts...) }
}

// NewRunner creates a runner for script. Diffs are on by default.
func NewRunner(script *Script, opts ...RunnerOption) *Runner {
	r := &Runner{script: script, diff: true}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// session is the live state of one run.
type session struct {
	portal    *portal.Portal
	provider  *portal.Provider
	ctx       context.Context
	targets   map[string]*portal.Target
	order     []string
	injectors map[string]*portal.Injector
}

// Run executes every step, writing a transcript to w. Failed expectations
// do not stop the run; they are collected and reported through
// ErrExpectationFailed at the end. Usage errors from the portal abort it.
func (r *Runner) Run(ctx context.Context, w io.Writer) (Report, error) {
	report := Report{Name: r.script.Name}

	names := make([]portal.Name, len(r.script.Channels))
	for i, c := range r.script.Channels {
		names[i] = portal.Name(c)
	}
	p := portal.New(names...)
	pr := p.NewProvider(r.storeOpts...)
	defer pr.Close()

	s := &session{
		portal:    p,
		provider:  pr,
		ctx:       pr.Context(ctx),
		targets:   map[string]*portal.Target{},
		injectors: map[string]*portal.Injector{},
	}

	if r.script.Name != "" {
		fmt.Fprintf(w, "# %s\n", r.script.Name)
	}
	log.Info(log.CatScenario, "Running scenario", "name", r.script.Name, "steps", len(r.script.Steps))

	for i, step := range r.script.Steps {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		n := i + 1
		report.Steps++

		if step.Op == OpExpect {
			report.Checks++
			if f, ok := s.check(n, step); !ok {
				report.Failures = append(report.Failures, f)
				fmt.Fprintf(w, "✗ %s\n", f)
			} else {
				fmt.Fprintf(w, "✓ step %d: %s\n", n, describe(step))
			}
			continue
		}

		before := pr.Snapshot()
		if err := s.apply(step); err != nil {
			return report, fmt.Errorf("step %d (%s): %w", n, step.Op, err)
		}
		after := pr.Snapshot()
		if before != after {
			report.Transitions++
		}

		fmt.Fprintf(w, "── step %d: %s\n", n, describe(step))
		s.writeTargets(w)
		if r.diff {
			if d := lineDiff(before.Dump(), after.Dump()); d != "" {
				fmt.Fprint(w, d)
			}
		}
	}

	log.Info(log.CatScenario, "Scenario finished", "name", r.script.Name,
		"checks", report.Checks, "failures", len(report.Failures))

	if !report.Passed() {
		return report, fmt.Errorf("%w: %d of %d checks", ErrExpectationFailed, len(report.Failures), report.Checks)
	}
	return report, nil
}

func (s *session) apply(step Step) error {
	switch step.Op {
	case OpMountTarget:
		t, ok := s.targets[step.ID]
		if !ok {
			opts := []portal.TargetOption{}
			if step.Fallback != "" {
				opts = append(opts, portal.WithFallback(portal.Text(step.Fallback)))
			}
			if step.Wrap > 0 {
				opts = append(opts, portal.WithWrap(step.Wrap))
			}
			var err error
			t, err = s.portal.Target(s.ctx, portal.Name(step.Channel), opts...)
			if err != nil {
				return err
			}
			s.targets[step.ID] = t
			s.order = append(s.order, step.ID)
		}
		t.Attach()

	case OpUnmountTarget:
		if t, ok := s.targets[step.ID]; ok {
			t.Detach()
		}

	case OpAttach:
		inj, ok := s.injectors[step.ID]
		if !ok {
			var err error
			inj, err = s.portal.Injector(s.ctx, portal.Name(step.Channel), content(step.Content))
			if err != nil {
				return err
			}
			s.injectors[step.ID] = inj
		} else if step.Channel != "" || step.Content != nil {
			if err := inj.Update(s.channelOr(step.Channel, inj), s.contentOr(step.Content, inj)); err != nil {
				return err
			}
		}
		inj.Attach()

	case OpDetach:
		if inj, ok := s.injectors[step.ID]; ok {
			inj.Detach()
		}

	case OpUpdate:
		inj, ok := s.injectors[step.ID]
		if !ok {
			return fmt.Errorf("unknown injector %q", step.ID)
		}
		return inj.Update(s.channelOr(step.Channel, inj), s.contentOr(step.Content, inj))

	default:
		return fmt.Errorf("unknown op %q", step.Op)
	}
	return nil
}

func (s *session) channelOr(channel string, inj *portal.Injector) portal.Name {
	if channel == "" {
		return inj.Name()
	}
	return portal.Name(channel)
}

func (s *session) contentOr(c *string, inj *portal.Injector) portal.Content {
	if c == nil {
		return inj.Content()
	}
	return portal.Text(*c)
}

func content(c *string) portal.Content {
	if c == nil {
		return nil
	}
	return portal.Text(*c)
}

func (s *session) check(n int, step Step) (Failure, bool) {
	t, ok := s.targets[step.Target]
	if !ok {
		return Failure{Step: n, Target: step.Target, Message: "not mounted"}, false
	}
	view := t.View()
	fail := func(format string, args ...any) (Failure, bool) {
		return Failure{Step: n, Target: step.Target, Message: fmt.Sprintf(format, args...)}, false
	}

	if step.Absent != nil && *step.Absent == t.Attached() {
		if *step.Absent {
			return fail("expected unmounted, is mounted")
		}
		return fail("expected mounted, is unmounted")
	}
	if step.Empty != nil && *step.Empty != t.Empty() {
		if *step.Empty {
			return fail("expected empty, renders %q", strings.TrimSpace(view))
		}
		return fail("expected content, channel is empty")
	}
	if step.Contains != "" && !strings.Contains(view, step.Contains) {
		return fail("expected view to contain %q, got %q", step.Contains, view)
	}
	if step.Equals != nil && strings.TrimSpace(view) != *step.Equals {
		return fail("expected %q, got %q", *step.Equals, strings.TrimSpace(view))
	}
	return Failure{}, true
}

func (s *session) writeTargets(w io.Writer) {
	for _, id := range s.order {
		t := s.targets[id]
		state := "mounted"
		if !t.Attached() {
			state = "unmounted"
		}
		fmt.Fprintf(w, "   %s %s %s │%s│\n",
			cell(id, 12), cell(string(t.Name()), 12), cell(state, 9), cell(t.View(), viewColumn))
	}
}

func describe(step Step) string {
	switch step.Op {
	case OpExpect:
		var parts []string
		if step.Absent != nil {
			parts = append(parts, fmt.Sprintf("absent=%t", *step.Absent))
		}
		if step.Empty != nil {
			parts = append(parts, fmt.Sprintf("empty=%t", *step.Empty))
		}
		if step.Contains != "" {
			parts = append(parts, fmt.Sprintf("contains %q", step.Contains))
		}
		if step.Equals != nil {
			parts = append(parts, fmt.Sprintf("equals %q", *step.Equals))
		}
		return fmt.Sprintf("expect %s %s", step.Target, strings.Join(parts, ", "))
	case OpAttach, OpUpdate:
		out := fmt.Sprintf("%s %s", step.Op, step.ID)
		if step.Channel != "" {
			out += " → " + step.Channel
		}
		if step.Content != nil {
			out += fmt.Sprintf(" %q", *step.Content)
		}
		return out
	default:
		out := fmt.Sprintf("%s %s", step.Op, step.ID)
		if step.Op == OpMountTarget && step.Channel != "" {
			out += " ← " + step.Channel
		}
		return out
	}
}
