package harness

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/roach88/stylec/internal/compiler"
	"github.com/roach88/stylec/internal/config"
	"github.com/roach88/stylec/internal/engine"
	"github.com/roach88/stylec/internal/ir"
	"github.com/roach88/stylec/internal/store"
	"github.com/roach88/stylec/internal/testutil"
)

// Harness is the test execution engine.
// It runs the cases of one scenario against one engine and records every
// compilation in a private registry under a fixed run token.
type Harness struct {
	store  *store.Store
	engine *engine.Engine
	runID  string
	digest string
	log    *zap.Logger
}

// Option configures a scenario run.
type Option func(*options)

type options struct {
	log *zap.Logger
}

// WithLogger sets the logger for case outcomes and the engine built for a
// scenario preset.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation, with a
// fixed run token so reports are reproducible. A scenario preset replaces
// eng; a nil eng with no scenario preset uses the default preset.
//
// Case mismatches are reported in the result; the error return is for
// scenarios that cannot run at all (bad preset, store failure).
func Run(scenario *Scenario, eng *engine.Engine, opts ...Option) (*Result, error) {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	eng, err := engineFor(scenario, eng, o.log)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(store.Memory)
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	runGen := testutil.NewFixedRunGenerator(scenario.RunToken)
	h := &Harness{
		store:  st,
		engine: eng,
		runID:  runGen.Generate(),
		digest: eng.Tables().Digest(),
		log:    o.log.With(zap.String("scenario", scenario.Name)),
	}

	ctx := context.Background()
	if err := st.WriteRun(ctx, store.NewRun(h.runID, h.digest)); err != nil {
		return nil, err
	}

	result := NewResult(scenario.Name)
	for i := range scenario.Cases {
		if err := h.runCase(ctx, &scenario.Cases[i], result); err != nil {
			return nil, err
		}
	}

	rules, err := st.ReadRunRules(ctx, h.runID)
	if err != nil {
		return nil, err
	}
	for _, r := range rules {
		result.Rules = append(result.Rules, RuleLine{
			ClassName:  r.ClassName,
			Conditions: r.Decl.Conditions,
			Property:   r.Decl.Property,
			Value:      r.Decl.Value,
		})
	}

	return result, nil
}

func engineFor(s *Scenario, eng *engine.Engine, log *zap.Logger) (*engine.Engine, error) {
	var preset *config.Preset
	switch {
	case s.Preset != "":
		p, err := config.Load(s.Preset)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
		}
		preset = p
	case eng != nil:
		return eng, nil
	default:
		preset = config.Default()
	}

	tables, err := config.NewTables(preset)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
	}
	return engine.New(tables, engine.WithLogger(log.Named("engine"))), nil
}

// runCase compiles one case and checks its expectations. Only store
// failures are returned; mismatches go to the result.
func (h *Harness) runCase(ctx context.Context, c *Case, result *Result) error {
	cr := CaseResult{Name: c.Name, Pass: true}
	fail := func(format string, args ...any) {
		cr.Pass = false
		result.AddError(fmt.Sprintf("case %q: ", c.Name) + fmt.Sprintf(format, args...))
	}

	partials := make([]ir.Value, 0, len(c.Partials))
	for i := range c.Partials {
		v, err := compiler.FromYAML(&c.Partials[i])
		if err != nil {
			fail("partial %d: %v", i, err)
			result.Cases = append(result.Cases, cr)
			return nil
		}
		partials = append(partials, v)
	}

	tree := h.engine.Raw(partials...)
	decls := h.engine.Expand(tree)
	opts := h.engine.EmitOptions()
	cr.ClassName = engine.Emit(decls, opts)
	cr.Declarations = len(decls)

	if c.Expect != nil && cr.ClassName != *c.Expect {
		fail("class name mismatch:\n  got:  %q\n  want: %q", cr.ClassName, *c.Expect)
	}
	if c.Declarations != nil && cr.Declarations != *c.Declarations {
		fail("expected %d declarations, got %d", *c.Declarations, cr.Declarations)
	}
	if c.HasRaw() {
		h.checkRaw(c, tree, fail)
	}

	comp, err := store.NewCompilation(h.runID, h.digest, tree, decls, opts)
	if err != nil {
		return err
	}
	if err := h.store.WriteCompilation(ctx, comp); err != nil {
		return err
	}

	h.log.Debug("case compiled",
		zap.String("case", c.Name),
		zap.String("class_name", cr.ClassName),
		zap.Bool("pass", cr.Pass))
	result.Cases = append(result.Cases, cr)
	return nil
}

func (h *Harness) checkRaw(c *Case, tree *ir.Object, fail func(string, ...any)) {
	want, err := compiler.FromYAML(&c.Raw)
	if err != nil {
		fail("raw: %v", err)
		return
	}
	if ir.Equal(tree, want) {
		return
	}
	got, _ := ir.MarshalValue(tree)
	exp, _ := ir.MarshalValue(want)
	fail("raw tree mismatch:\n  got:  %s\n  want: %s", got, exp)
}

// Report renders a result as the plain text stored in golden files.
func Report(r *Result) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "scenario: %s\n", r.Scenario)
	fmt.Fprintf(&b, "pass: %t\n", r.Pass)

	b.WriteString("cases:\n")
	for _, c := range r.Cases {
		status := "ok"
		if !c.Pass {
			status = "FAIL"
		}
		fmt.Fprintf(&b, "  %s [%s] %q\n", c.Name, status, c.ClassName)
	}

	b.WriteString("rules:\n")
	for _, rule := range r.Rules {
		fmt.Fprintf(&b, "  %s -> ", rule.ClassName)
		if len(rule.Conditions) > 0 {
			fmt.Fprintf(&b, "[%s] ", strings.Join(rule.Conditions, " "))
		}
		fmt.Fprintf(&b, "%s: %s\n", rule.Property, rule.Value)
	}

	if len(r.Errors) > 0 {
		b.WriteString("errors:\n")
		for _, e := range r.Errors {
			fmt.Fprintf(&b, "  %s\n", e)
		}
	}
	return []byte(b.String())
}
