package ports

import (
	"context"
	"testing"

	"github.com/aretw0/espalier/pkg/dom"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunAdapterContract runs a suite of tests to verify that an executing
// Adapter implementation adheres to the scheduling contract. Collection-only
// adapters (which record instead of executing hooks and leaves) are out of
// scope here.
//
// build is called per sub-test so each check gets a fresh adapter bound to
// the sub-test's *testing.T.
func RunAdapterContract(t *testing.T, build func(t *testing.T) Adapter) {
	ctx := context.Background()

	t.Run("CreateSuite runs hooks around recursion", func(t *testing.T) {
		adapter := build(t)

		var trace []string
		suite := &domain.Suite{
			Name:  "scope",
			Tests: []domain.Node{},
			BeforeAll: func(context.Context) error {
				trace = append(trace, "beforeAll")
				return nil
			},
			AfterAll: func(context.Context) error {
				trace = append(trace, "afterAll")
				return nil
			},
		}

		err := adapter.CreateSuite(ctx, suite, "frag", 0, true,
			func(_ context.Context, nodes []domain.Node, fragment any, index int) error {
				trace = append(trace, "recurse")
				assert.Equal(t, suite.Tests, nodes)
				assert.Equal(t, "frag", fragment)
				assert.Equal(t, 0, index)
				return nil
			})
		require.NoError(t, err)
		assert.Equal(t, []string{"beforeAll", "recurse", "afterAll"}, trace)
	})

	t.Run("CreateSuite without hooks still recurses", func(t *testing.T) {
		adapter := build(t)

		hooks := 0
		recursed := 0
		suite := &domain.Suite{
			Name:      "scope",
			Tests:     []domain.Node{},
			BeforeAll: func(context.Context) error { hooks++; return nil },
			AfterAll:  func(context.Context) error { hooks++; return nil },
		}

		err := adapter.CreateSuite(ctx, suite, nil, 2, false,
			func(context.Context, []domain.Node, any, int) error {
				recursed++
				return nil
			})
		require.NoError(t, err)
		assert.Equal(t, 1, recursed, "children must be traversed exactly once")
		assert.Zero(t, hooks, "set-owned hooks must not be double-applied")
	})

	t.Run("CreateFragmentSuite expands in order with set hooks once", func(t *testing.T) {
		adapter := build(t)

		setHooks := []string{}
		suite := &domain.Suite{
			Name:               "per-region",
			FragmentSetMessage: "runs once per region",
			Tests:              []domain.Node{},
			GetFragmentSet: func(fragment any) []any {
				assert.Equal(t, "root", fragment)
				return []any{"x", "y", "z"}
			},
			BeforeAll: func(context.Context) error {
				setHooks = append(setHooks, "beforeAll")
				return nil
			},
			AfterAll: func(context.Context) error {
				setHooks = append(setHooks, "afterAll")
				return nil
			},
		}

		var fragments []any
		var indices []int
		err := adapter.CreateFragmentSuite(ctx, suite, "root", 0,
			func(_ context.Context, fragment any, index int) error {
				fragments = append(fragments, fragment)
				indices = append(indices, index)
				return nil
			})
		require.NoError(t, err)
		assert.Equal(t, []any{"x", "y", "z"}, fragments)
		assert.Equal(t, []int{0, 1, 2}, indices)
		assert.Equal(t, []string{"beforeAll", "afterAll"}, setHooks,
			"set hooks must run once for the whole set, not per element")
	})

	t.Run("CreateInheritedSuite recurses with fragment untouched", func(t *testing.T) {
		adapter := build(t)

		inherited := []domain.Node{&domain.Test{Name: "reused"}}
		test := &domain.Test{Name: "mount", InheritedTests: inherited}

		recursed := 0
		err := adapter.CreateInheritedSuite(ctx, test, "resolved", 3,
			func(_ context.Context, nodes []domain.Node, fragment any, index int) error {
				recursed++
				assert.Equal(t, inherited, nodes)
				assert.Equal(t, "resolved", fragment)
				assert.Equal(t, 3, index)
				return nil
			})
		require.NoError(t, err)
		assert.Equal(t, 1, recursed)
	})

	t.Run("CreateTest collects then compares", func(t *testing.T) {
		adapter := build(t)

		var compared any
		test := &domain.Test{
			Name: "leaf",
			GetActual: func(_ context.Context, fragment any, _ *dom.Window, index int) (any, error) {
				assert.Equal(t, "frag", fragment)
				assert.Equal(t, 1, index)
				return 42, nil
			},
			RunComparison: func(actual any) error {
				compared = actual
				return nil
			},
		}

		err := adapter.CreateTest(ctx, test, "frag", 1)
		require.NoError(t, err)
		assert.Equal(t, 42, compared, "comparison must receive the awaited actual")
	})
}
