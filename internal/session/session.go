package session

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"loom/internal/decl"
	"loom/internal/diag"
	"loom/internal/expand"
	"loom/internal/macro"
	"loom/internal/observ"
	"loom/internal/program"
	"loom/internal/registry"
	"loom/internal/trace"
)

// Options configures one expansion session.
type Options struct {
	// Registry resolves application macro names. Required.
	Registry *registry.Registry

	// Jobs caps concurrent executions within a phase.
	// Defaults to GOMAXPROCS.
	Jobs int

	// MaxDiagnostics caps the outcome bag. Defaults to 100.
	MaxDiagnostics int

	// Phases restricts which phases run. Empty means all three. The
	// canonical order (types, declarations, definitions) is enforced
	// regardless of the order given here.
	Phases []macro.Phase

	// Cache, when non-nil, replays previous successful executions.
	Cache *Cache

	// Digest identifies the snapshot content in cache keys. Executions
	// are only replayed for the exact same program content.
	Digest string

	// Events receives progress events. Executions within a phase run
	// concurrently, so implementations must tolerate concurrent OnEvent
	// calls. Optional.
	Events EventSink

	// Logger receives operational logs. The zero value discards them.
	Logger zerolog.Logger

	// Tracer receives spans. Falls back to the context tracer.
	Tracer trace.Tracer
}

// Expansion is the per-application record of an outcome: one result per
// phase the application executed in, in phase order.
type Expansion struct {
	Application program.Application
	Results     []*expand.Result
}

// Outcome aggregates everything one session produced.
type Outcome struct {
	// Expansions holds one record per application, in application order.
	Expansions []Expansion
	// Bag collects every diagnostic the session and its macros produced.
	Bag *diag.Bag
	// Timings reports per-phase wall time.
	Timings observ.Report

	Executed  int // executions that actually ran
	CacheHits int // executions replayed from the cache
	Skipped   int // (application, phase) pairs without the capability
	Failed    int // applications that failed to resolve or produced failures
}

// runner carries the state of one Run call.
type runner struct {
	prog   *program.Program
	apps   []program.Application
	opts   Options
	jobs   int
	tracer trace.Tracer
	log    zerolog.Logger
	bag    *diag.Bag
	timer  *observ.Timer

	// Indexed by application; nil entries failed to resolve and are
	// already diagnosed.
	targets []decl.Decl
	macros  []macro.Macro

	expansions []Expansion
	executed   int
	cacheHits  int
	skipped    int
	failed     int
}

// Run executes every application against the program, phase by phase.
// Within a phase executions run concurrently; results are committed in
// application order, so outcomes are deterministic for the same inputs.
// The returned error is reserved for framework-fatal conditions: macro
// misbehavior ends up in the outcome, not here.
func Run(ctx context.Context, prog *program.Program, apps []program.Application, opts Options) (*Outcome, error) {
	if prog == nil {
		return nil, errors.New("session: program must not be nil")
	}
	if opts.Registry == nil {
		return nil, errors.New("session: options require a registry")
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	maxDiag := opts.MaxDiagnostics
	if maxDiag <= 0 {
		maxDiag = 100
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.FromContext(ctx)
	}

	r := &runner{
		prog:   prog,
		apps:   apps,
		opts:   opts,
		jobs:   jobs,
		tracer: tracer,
		log:    opts.Logger,
		bag:    diag.NewBag(maxDiag),
		timer:  observ.NewTimer(),
	}
	r.resolve()

	span := trace.Begin(tracer, trace.ScopeSession, "expand", 0)
	defer span.End("")

	for _, phase := range normalizePhases(opts.Phases) {
		if err := r.runPhase(ctx, phase, span.ID()); err != nil {
			return nil, err
		}
	}

	return &Outcome{
		Expansions: r.expansions,
		Bag:        r.bag,
		Timings:    r.timer.Report(),
		Executed:   r.executed,
		CacheHits:  r.cacheHits,
		Skipped:    r.skipped,
		Failed:     r.failed,
	}, nil
}

// normalizePhases filters the canonical phase order down to the requested
// set.
func normalizePhases(requested []macro.Phase) []macro.Phase {
	if len(requested) == 0 {
		return macro.Phases()
	}
	want := make(map[macro.Phase]bool, len(requested))
	for _, p := range requested {
		want[p] = true
	}
	out := make([]macro.Phase, 0, len(requested))
	for _, p := range macro.Phases() {
		if want[p] {
			out = append(out, p)
		}
	}
	return out
}

// resolve maps every application to its macro and target declaration.
// Unresolvable applications are diagnosed once, here, and excluded from
// every phase.
func (r *runner) resolve() {
	r.targets = make([]decl.Decl, len(r.apps))
	r.macros = make([]macro.Macro, len(r.apps))
	r.expansions = make([]Expansion, len(r.apps))

	for i, app := range r.apps {
		r.expansions[i].Application = app

		d, ok := r.prog.Decl(app.Target)
		if !ok {
			r.bag.Add(diag.NewError(fmt.Sprintf("application target %s is not part of the program", app.Target)).
				WithContext("requested by macro " + app.MacroName))
			r.failed++
			continue
		}
		r.targets[i] = d

		m, ok := r.opts.Registry.Lookup(app.MacroName)
		if !ok {
			r.bag.Add(diag.NewError(fmt.Sprintf("no macro named %q is registered", app.MacroName)).
				WithTarget(d.Ident()).
				WithCorrection("check the macro name in the snapshot's applications"))
			r.failed++
			continue
		}
		r.macros[i] = m
	}
}

// phaseTask is one (application, phase) execution.
type phaseTask struct {
	app    int
	m      macro.Macro
	target decl.Decl
}

func (r *runner) runPhase(ctx context.Context, phase macro.Phase, parentSpan uint64) error {
	span := trace.Begin(r.tracer, trace.ScopePhase, phase.String(), parentSpan)
	tIdx := r.timer.Begin(phase.String())
	started := time.Now()
	r.emit(Event{Phase: phase, Status: StatusRunning})

	var tasks []phaseTask
	for i := range r.apps {
		m, d := r.macros[i], r.targets[i]
		if m == nil || d == nil {
			continue
		}
		if !macro.Supports(m, phase, d.Kind()) {
			r.skipped++
			r.emit(Event{Target: r.label(d), Macro: r.apps[i].MacroName, Phase: phase, Status: StatusSkipped})
			continue
		}
		tasks = append(tasks, phaseTask{app: i, m: m, target: d})
	}

	// Результаты индексируются по задаче, мьютекс не нужен.
	results := make([]*expand.Result, len(tasks))
	hits := make([]bool, len(tasks))

	if len(tasks) > 0 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(min(r.jobs, len(tasks)))

		for i, tk := range tasks {
			g.Go(func(i int, tk phaseTask) func() error {
				return func() error {
					select {
					case <-gctx.Done():
						return gctx.Err()
					default:
					}

					name := r.apps[tk.app].MacroName
					label := r.label(tk.target)

					var key string
					if r.opts.Cache != nil {
						key = cacheKey(r.opts.Digest, name, tk.target.Ref(), phase)
						cached, ok, err := r.opts.Cache.Get(key)
						if err != nil {
							r.log.Warn().Err(err).Str("macro", name).Str("target", label).Msg("cache read failed")
						} else if ok {
							results[i] = cached
							hits[i] = true
							r.emit(Event{Target: label, Macro: name, Phase: phase, Status: StatusCached})
							r.log.Debug().Str("macro", name).Str("target", label).Str("phase", phase.String()).Msg("cache hit")
							return nil
						}
					}

					r.emit(Event{Target: label, Macro: name, Phase: phase, Status: StatusRunning})
					execSpan := trace.Begin(r.tracer, trace.ScopeApply, name+"@"+label, 0)
					execStart := time.Now()
					res, err := expand.Execute(gctx, phase, tk.m, tk.target, r.prog)
					elapsed := time.Since(execStart)
					if err != nil {
						execSpan.End("fatal")
						r.emit(Event{Target: label, Macro: name, Phase: phase, Status: StatusFailed, Err: err, Elapsed: elapsed})
						return fmt.Errorf("%s on %s: %w", name, label, err)
					}
					execSpan.End("")
					results[i] = res

					if r.opts.Cache != nil && res.Failure == nil {
						if err := r.opts.Cache.Put(key, res); err != nil {
							r.log.Warn().Err(err).Str("macro", name).Str("target", label).Msg("cache write failed")
						}
					}

					status := StatusDone
					if res.Failed() {
						status = StatusFailed
					}
					r.emit(Event{Target: label, Macro: name, Phase: phase, Status: status, Elapsed: elapsed})
					return nil
				}
			}(i, tk))
		}

		if err := g.Wait(); err != nil {
			r.timer.End(tIdx, "aborted")
			span.End("aborted")
			return err
		}
	}

	// Commit in application order so the outcome is deterministic no
	// matter how the executions interleaved.
	var hitCount, failCount int
	for i, tk := range tasks {
		res := results[i]
		r.expansions[tk.app].Results = append(r.expansions[tk.app].Results, res)

		if hits[i] {
			r.cacheHits++
			hitCount++
		} else {
			r.executed++
		}
		if res.Failed() {
			r.failed++
			failCount++
		}
		if res.Failure != nil {
			r.bag.Add(diag.NewError(res.Failure.Error()).
				WithTarget(tk.target.Ident()).
				WithContext(fmt.Sprintf("while expanding %s in the %s phase", res.MacroName, phase)))
		}
		r.bag.AddAll(res.Diagnostics)

		// Types-phase output becomes visible to later phases.
		if phase == macro.PhaseTypes {
			for _, nt := range res.NewTypes {
				r.prog.RegisterType(tk.target.Library(), nt.Name)
			}
		}
	}

	elapsed := time.Since(started)
	r.emit(Event{Phase: phase, Status: StatusDone, Elapsed: elapsed})
	r.timer.End(tIdx, fmt.Sprintf("%d applications", len(tasks)))
	span.WithExtra("applications", strconv.Itoa(len(tasks))).End("")
	r.log.Info().
		Str("phase", phase.String()).
		Int("applications", len(tasks)).
		Int("cache_hits", hitCount).
		Int("failed", failCount).
		Dur("elapsed", elapsed).
		Msg("phase complete")
	return nil
}

// label renders a target the way snapshots address it: "Owner.name" for
// members, the plain name otherwise.
func (r *runner) label(d decl.Decl) string {
	return declLabel(r.prog, d)
}

func (r *runner) emit(ev Event) {
	if r.opts.Events != nil {
		r.opts.Events.OnEvent(ev)
	}
}
