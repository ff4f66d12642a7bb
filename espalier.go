package espalier

import (
	"context"
	"log/slog"

	"github.com/aretw0/espalier/internal/logging"
	"github.com/aretw0/espalier/internal/runtime"
	"github.com/aretw0/espalier/pkg/dom"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/ports"
)

// Engine is the high-level entry point for the Espalier library. It wraps
// the internal traversal runtime and fixes the browsing context for its
// lifetime: construct one engine per top-level test invocation.
type Engine struct {
	runtime *runtime.Engine
	logger  *slog.Logger
	hooks   domain.LifecycleHooks
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithVerbose routes traversal diagnostics to stderr at debug level, so
// collection decisions stay visible without touching test output.
func WithVerbose() Option {
	return func(e *Engine) {
		e.logger = logging.New(slog.LevelDebug)
	}
}

// New initializes an Engine against a root context and an adapter.
//
// root must be one of: a *dom.Window with a document, a document-fragment
// *html.Node, or an element *html.Node (wrapped into a fragment). Anything
// else fails with a dom.ContextError before any traversal begins.
func New(root any, adapter ports.Adapter, opts ...Option) (*Engine, error) {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	// Ensure logger is initialized (so we don't pass nil to runtime, which
	// would overwrite its default).
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}

	fragment, win, err := dom.Resolve(root)
	if err != nil {
		return nil, err
	}

	eng.runtime = runtime.NewEngine(adapter, fragment, win,
		runtime.WithLogger(eng.logger),
		runtime.WithLifecycleHooks(eng.hooks),
	)
	return eng, nil
}

// Run performs one full traversal of the node sequence against the engine's
// root fragment. Structural errors (malformed nodes) abort at the offending
// node; per-test failures are reported through the adapter's runner and do
// not surface here.
func (e *Engine) Run(ctx context.Context, nodes []domain.Node) error {
	return e.runtime.Run(ctx, nodes)
}

// Window returns the browsing context for this run, or nil when the engine
// was constructed from a bare fragment.
func (e *Engine) Window() *dom.Window { return e.runtime.Window() }

// Fragment returns the root fragment the traversal is scoped to.
func (e *Engine) Fragment() any { return e.runtime.Fragment() }

// Run constructs an engine and immediately performs one full traversal, the
// common single-shot path.
func Run(ctx context.Context, root any, nodes []domain.Node, adapter ports.Adapter, opts ...Option) error {
	eng, err := New(root, adapter, opts...)
	if err != nil {
		return err
	}
	return eng.Run(ctx, nodes)
}
