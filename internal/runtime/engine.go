// Package runtime implements the traversal engine: the per-run controller
// that walks a declarative test tree, classifies each node, evaluates enable
// conditions, resolves the fragment each node operates on, and dispatches
// into the bound adapter.
package runtime

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/espalier/internal/classify"
	"github.com/aretw0/espalier/internal/logging"
	"github.com/aretw0/espalier/pkg/dom"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/ports"
)

// Engine walks a declarative tree against a fixed browsing context. The
// window and fragment are set once at construction and never reassigned; an
// engine is meant to serve a single top-level run.
type Engine struct {
	adapter  ports.Adapter
	window   *dom.Window
	fragment any
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets a structured logger for traversal decisions.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// NewEngine creates an engine bound to an adapter and a resolved context.
// Adapters implementing ports.Binder are handed the engine as their Host.
func NewEngine(adapter ports.Adapter, fragment any, win *dom.Window, opts ...EngineOption) *Engine {
	e := &Engine{
		adapter:  adapter,
		window:   win,
		fragment: fragment,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if b, ok := adapter.(ports.Binder); ok {
		b.Bind(e)
	}
	return e
}

// Window returns the browsing context for this run, or nil.
func (e *Engine) Window() *dom.Window { return e.window }

// Fragment returns the root fragment for this run.
func (e *Engine) Fragment() any { return e.fragment }

// Run performs one full traversal of the node sequence against the root
// fragment.
func (e *Engine) Run(ctx context.Context, nodes []domain.Node) error {
	return e.traverse(ctx, nodes, e.fragment, 0)
}

// traverse walks nodes in order, depth-first. Structural errors abort at the
// offending node; condition gates prune silently.
func (e *Engine) traverse(ctx context.Context, nodes []domain.Node, fragment any, index int) error {
	if nodes == nil {
		return &domain.FormatError{Reason: "test suites must include an array of tests"}
	}

	for _, node := range nodes {
		kind, err := classify.Classify(node)
		if err != nil {
			return err
		}

		switch kind {
		case domain.KindSuite:
			s := node.(*domain.Suite)
			if !e.EvalConditions(s.CheckConditions, fragment, index) {
				e.emitSkip(ctx, s.Name, kind, index)
				continue
			}
			e.emit(ctx, e.hooks.OnSuiteEnter, s.Name, kind, index)
			if err := e.adapter.CreateSuite(ctx, s, fragment, index, true, e.traverse); err != nil {
				return err
			}
			e.emit(ctx, e.hooks.OnSuiteLeave, s.Name, kind, index)

		case domain.KindFragmentSuite:
			s := node.(*domain.Suite)
			e.emit(ctx, e.hooks.OnSuiteEnter, s.Name, kind, index)
			if err := e.adapter.CreateFragmentSuite(ctx, s, fragment, index, e.suiteDispatch(s)); err != nil {
				return err
			}
			e.emit(ctx, e.hooks.OnSuiteLeave, s.Name, kind, index)

		case domain.KindFragmentTest:
			t := node.(*domain.Test)
			resolved := classify.ResolveFragment(t, fragment)
			if err := e.adapter.CreateFragmentSuite(ctx, t, resolved, index, e.testDispatch(t)); err != nil {
				return err
			}

		case domain.KindInheritedTest:
			t := node.(*domain.Test)
			resolved := classify.ResolveFragment(t, fragment)
			if !e.EvalConditions(t.CheckConditions, resolved, index) {
				e.emitSkip(ctx, t.Name, kind, index)
				continue
			}
			e.emit(ctx, e.hooks.OnSuiteEnter, t.Name, kind, index)
			if err := e.adapter.CreateInheritedSuite(ctx, t, resolved, index, e.traverse); err != nil {
				return err
			}
			e.emit(ctx, e.hooks.OnSuiteLeave, t.Name, kind, index)

		case domain.KindPlainTest:
			t := node.(*domain.Test)
			resolved := classify.ResolveFragment(t, fragment)
			if err := e.dispatchTest(ctx, t, resolved, index); err != nil {
				return err
			}
		}
	}
	return nil
}

// suiteDispatch builds the per-sub-fragment dispatch for a fragment-set
// suite. The suite's conditions gate each sub-fragment independently, and
// hooks are suppressed because the set scope owns them.
func (e *Engine) suiteDispatch(s *domain.Suite) ports.DispatchFunc {
	return func(ctx context.Context, fragment any, index int) error {
		if !e.EvalConditions(s.CheckConditions, fragment, index) {
			e.emitSkip(ctx, s.Name, domain.KindSuite, index)
			return nil
		}
		return e.adapter.CreateSuite(ctx, s, fragment, index, false, e.traverse)
	}
}

// testDispatch builds the per-sub-fragment dispatch for a fragment-set test.
func (e *Engine) testDispatch(t *domain.Test) ports.DispatchFunc {
	return func(ctx context.Context, fragment any, index int) error {
		return e.dispatchTest(ctx, t, fragment, index)
	}
}

// dispatchTest gates, validates and registers a terminal test. This is the
// sole point where control crosses into the adapter for a leaf.
func (e *Engine) dispatchTest(ctx context.Context, t *domain.Test, fragment any, index int) error {
	if !e.EvalConditions(t.CheckConditions, fragment, index) {
		e.emitSkip(ctx, t.Name, domain.KindPlainTest, index)
		return nil
	}
	if t.GetActual == nil || t.RunComparison == nil {
		return &domain.FormatError{
			Node:   t.Name,
			Reason: "exported tests must define getActual and runComparison",
		}
	}
	e.logger.Debug("registering test", "name", t.Name, "index", index)
	e.emit(ctx, e.hooks.OnTestRegister, t.Name, domain.KindPlainTest, index)
	return e.adapter.CreateTest(ctx, t, fragment, index)
}

func (e *Engine) emit(ctx context.Context, hook func(context.Context, *domain.NodeEvent), name string, kind domain.Kind, index int) {
	if hook == nil {
		return
	}
	hook(ctx, &domain.NodeEvent{
		Timestamp: time.Now(),
		Name:      name,
		Kind:      kind,
		Index:     index,
	})
}

func (e *Engine) emitSkip(ctx context.Context, name string, kind domain.Kind, index int) {
	e.logger.Debug("conditions not met, skipping node", "name", name, "kind", kind.String(), "index", index)
	e.emit(ctx, e.hooks.OnNodeSkip, name, kind, index)
}
