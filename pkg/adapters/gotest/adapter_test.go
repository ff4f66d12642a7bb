package gotest_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/pkg/adapters/gotest"
	"github.com/aretw0/espalier/pkg/dom"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdapter_Contract(t *testing.T) {
	ports.RunAdapterContract(t, func(t *testing.T) ports.Adapter {
		return gotest.New(t)
	})
}

// Scenario: one suite, one passing leaf — the comparison receives the
// awaited actual exactly once.
func TestRun_SinglePassingLeaf(t *testing.T) {
	frag, err := dom.ParseFragment(`<p>fixture</p>`)
	require.NoError(t, err)

	compared := 0
	tree := []domain.Node{
		&domain.Suite{
			Name: "S",
			Tests: []domain.Node{
				&domain.Test{
					Name: "t1",
					GetActual: func(context.Context, any, *dom.Window, int) (any, error) {
						return map[string]int{"v": 1}, nil
					},
					RunComparison: func(actual any) error {
						compared++
						got, ok := actual.(map[string]int)
						if !ok || got["v"] != 1 {
							return fmt.Errorf("unexpected actual: %v", actual)
						}
						return nil
					},
				},
			},
		},
	}

	require.NoError(t, espalier.Run(context.Background(), frag, tree, gotest.New(t)))
	assert.Equal(t, 1, compared)
}

// Scenario: a fragment-set test over ['x','y'] yields two leaf invocations
// with indices 0 and 1 and the matching fragments.
func TestRun_FragmentSetLeaves(t *testing.T) {
	frag, err := dom.ParseFragment(`<p>fixture</p>`)
	require.NoError(t, err)

	var fragments []any
	var indices []int
	tree := []domain.Node{
		&domain.Test{
			Name:           "per-value",
			GetFragmentSet: func(any) []any { return []any{"x", "y"} },
			GetActual: func(_ context.Context, fragment any, _ *dom.Window, index int) (any, error) {
				fragments = append(fragments, fragment)
				indices = append(indices, index)
				return fragment, nil
			},
			RunComparison: func(any) error { return nil },
		},
	}

	require.NoError(t, espalier.Run(context.Background(), frag, tree, gotest.New(t)))
	assert.Equal(t, []any{"x", "y"}, fragments)
	assert.Equal(t, []int{0, 1}, indices)
}

// Scenario: a leaf missing RunComparison aborts collection with a format
// error before anything reaches the runner.
func TestRun_MalformedLeaf(t *testing.T) {
	frag, err := dom.ParseFragment(`<p>fixture</p>`)
	require.NoError(t, err)

	collected := 0
	tree := []domain.Node{
		&domain.Test{
			Name: "broken",
			GetActual: func(context.Context, any, *dom.Window, int) (any, error) {
				collected++
				return nil, nil
			},
		},
	}

	err = espalier.Run(context.Background(), frag, tree, gotest.New(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFormat)
	assert.Zero(t, collected, "a malformed leaf must never run")
}

func TestRun_HookOrdering(t *testing.T) {
	frag, err := dom.ParseFragment(`<p>fixture</p>`)
	require.NoError(t, err)

	var trace []string
	step := func(name string) domain.HookFunc {
		return func(context.Context) error {
			trace = append(trace, name)
			return nil
		}
	}
	leaf := func(name string) *domain.Test {
		return &domain.Test{
			Name: name,
			GetActual: func(context.Context, any, *dom.Window, int) (any, error) {
				trace = append(trace, name)
				return nil, nil
			},
			RunComparison: func(any) error { return nil },
		}
	}

	tree := []domain.Node{
		&domain.Suite{
			Name:       "outer",
			BeforeAll:  step("beforeAll"),
			AfterAll:   step("afterAll"),
			BeforeEach: step("beforeEach"),
			AfterEach:  step("afterEach"),
			Tests: []domain.Node{
				leaf("t1"),
				leaf("t2"),
			},
		},
	}

	require.NoError(t, espalier.Run(context.Background(), frag, tree, gotest.New(t)))
	assert.Equal(t, []string{
		"beforeAll",
		"beforeEach", "t1", "afterEach",
		"beforeEach", "t2", "afterEach",
		"afterAll",
	}, trace)
}

// Set-level hooks run once for the whole fragment set, per-leaf hooks run
// once per expanded leaf.
func TestRun_FragmentSetHooksOnce(t *testing.T) {
	frag, err := dom.ParseFragment(`<p>fixture</p>`)
	require.NoError(t, err)

	counts := map[string]int{}
	count := func(name string) domain.HookFunc {
		return func(context.Context) error {
			counts[name]++
			return nil
		}
	}

	tree := []domain.Node{
		&domain.Suite{
			Name:               "set",
			FragmentSetMessage: "runs once per item",
			GetFragmentSet:     func(any) []any { return []any{"a", "b", "c"} },
			BeforeAll:          count("beforeAll"),
			AfterAll:           count("afterAll"),
			BeforeEach:         count("beforeEach"),
			AfterEach:          count("afterEach"),
			Tests: []domain.Node{
				&domain.Test{
					Name: "leaf",
					GetActual: func(_ context.Context, fragment any, _ *dom.Window, _ int) (any, error) {
						return fragment, nil
					},
					RunComparison: func(any) error { return nil },
				},
			},
		},
	}

	require.NoError(t, espalier.Run(context.Background(), frag, tree, gotest.New(t)))
	assert.Equal(t, 1, counts["beforeAll"], "set setup must run once for the whole set")
	assert.Equal(t, 1, counts["afterAll"], "set cleanup must run once for the whole set")
	assert.Equal(t, 3, counts["beforeEach"], "per-leaf setup must run once per expanded leaf")
	assert.Equal(t, 3, counts["afterEach"], "per-leaf cleanup must run once per expanded leaf")
}

func TestRun_InheritedTestsScopedUnderMount(t *testing.T) {
	frag, err := dom.ParseFragment(`<p>fixture</p>`)
	require.NoError(t, err)

	var names []string
	shared := []domain.Node{
		&domain.Test{
			Name: "reused",
			GetActual: func(_ context.Context, fragment any, _ *dom.Window, _ int) (any, error) {
				return fragment, nil
			},
			RunComparison: func(any) error { return nil },
		},
	}

	tree := []domain.Node{
		&domain.Suite{Name: "S", Tests: []domain.Node{
			&domain.Test{Name: "mount", InheritedTests: shared},
		}},
	}

	hooks := domain.LifecycleHooks{
		OnTestRegister: func(_ context.Context, ev *domain.NodeEvent) {
			names = append(names, ev.Name)
		},
	}
	require.NoError(t, espalier.Run(context.Background(), frag, tree, gotest.New(t),
		espalier.WithLifecycleHooks(hooks)))
	assert.Equal(t, []string{"reused"}, names)
}

// The window provided at construction reaches GetActual through the bound
// host.
func TestRun_WindowReachesGetActual(t *testing.T) {
	doc, err := dom.ParseFragment(`<p>fixture</p>`)
	require.NoError(t, err)
	win := &dom.Window{Document: doc}

	var seen *dom.Window
	tree := []domain.Node{
		&domain.Test{
			Name: "windowed",
			GetActual: func(_ context.Context, _ any, w *dom.Window, _ int) (any, error) {
				seen = w
				return nil, nil
			},
			RunComparison: func(any) error { return nil },
		},
	}

	require.NoError(t, espalier.Run(context.Background(), win, tree, gotest.New(t)))
	assert.Same(t, win, seen)
}
