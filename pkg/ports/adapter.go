package ports

import (
	"context"
	"io"
	"log/slog"

	"github.com/aretw0/espalier/pkg/dom"
	"github.com/aretw0/espalier/pkg/domain"
)

// RecurseFunc continues traversal into a child node sequence at the given
// scope. Adapters receive it from the engine and must not reorder or filter
// the sequence themselves.
type RecurseFunc func(ctx context.Context, nodes []domain.Node, fragment any, index int) error

// DispatchFunc registers the node it was built for against one resolved
// sub-fragment. The engine supplies it to CreateFragmentSuite with condition
// gating and hook suppression already baked in.
type DispatchFunc func(ctx context.Context, fragment any, index int) error

// Adapter is the capability set a framework-specific back end must supply.
// The engine owns classification, condition gating and leaf validation; the
// adapter owns scheduling: mapping scopes and leaves onto its runner's
// primitives.
type Adapter interface {
	// CreateSuite opens a scope named by the suite and recurses into its
	// children via recurse(ctx, s.Tests, fragment, index). When withHooks is
	// true the adapter runs BeforeAll once before the children and AfterAll
	// once after, and applies BeforeEach/AfterEach around each descendant
	// leaf. withHooks is false when a fragment set already owns the hooks,
	// so nested setup/cleanup is not double-applied.
	CreateSuite(ctx context.Context, s *domain.Suite, fragment any, index int, withHooks bool, recurse RecurseFunc) error

	// CreateFragmentSuite evaluates the node's GetFragmentSet against the
	// given fragment exactly once and calls each(ctx, sub, i) for every
	// sub-fragment in order, with zero-based i. For suite nodes, set-level
	// setup runs once before the loop and cleanup once after — never per
	// element.
	CreateFragmentSuite(ctx context.Context, node domain.Node, fragment any, index int, each DispatchFunc) error

	// CreateInheritedSuite opens a scope named by the test and recurses into
	// recurse(ctx, t.InheritedTests, fragment, index) without altering the
	// fragment resolution already applied.
	CreateInheritedSuite(ctx context.Context, t *domain.Test, fragment any, index int, recurse RecurseFunc) error

	// CreateTest schedules a terminal test that invokes GetActual, awaits
	// its result and feeds it to RunComparison. A collection or comparison
	// error is a per-test failure reported through the adapter's own runner;
	// it must not abort sibling traversal.
	CreateTest(ctx context.Context, t *domain.Test, fragment any, index int) error
}

// Host exposes the per-run context to adapters that need it.
type Host interface {
	// Window returns the browsing context for this run, or nil when the run
	// was constructed from a bare fragment.
	Window() *dom.Window
	// Fragment returns the root fragment for this run.
	Fragment() any
}

// Binder is an optional adapter capability. The engine binds itself as Host
// before the first traversal step.
type Binder interface {
	Bind(Host)
}

// Unimplemented is an Adapter whose operations warn and do nothing. It is
// the "must be overridden by a concrete adapter" default: embed it to build
// partial adapters, or use it alone to dry-run classification.
type Unimplemented struct {
	// Logger receives the warnings. Defaults to a discard logger.
	Logger *slog.Logger
}

func (u *Unimplemented) warn(op, name string) {
	logger := u.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logger.Warn("adapter operation not implemented", "op", op, "node", name)
}

func (u *Unimplemented) CreateSuite(_ context.Context, s *domain.Suite, _ any, _ int, _ bool, _ RecurseFunc) error {
	u.warn("createSuite", s.Name)
	return nil
}

func (u *Unimplemented) CreateFragmentSuite(_ context.Context, node domain.Node, _ any, _ int, _ DispatchFunc) error {
	name := ""
	switch n := node.(type) {
	case *domain.Suite:
		name = n.Name
	case *domain.Test:
		name = n.Name
	}
	u.warn("createFragmentSuite", name)
	return nil
}

func (u *Unimplemented) CreateInheritedSuite(_ context.Context, t *domain.Test, _ any, _ int, _ RecurseFunc) error {
	u.warn("createInheritedSuite", t.Name)
	return nil
}

func (u *Unimplemented) CreateTest(_ context.Context, t *domain.Test, _ any, _ int) error {
	u.warn("createTest", t.Name)
	return nil
}
