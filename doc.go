/*
Package espalier translates declarative, framework-agnostic UI test suites
into the imperative calls of a concrete test runner.

Test authors describe what to verify once — nested Suite and Test nodes over
a DOM fragment — and an Adapter decides how those descriptions become real
describe/it/before/after calls. Swapping runners means swapping adapters,
not rewriting assertions.

# Concept

A test tree is ordinary Go data: domain.Suite groups children and carries
setup/cleanup hooks, domain.Test collects a value (GetActual) and asserts on
it (RunComparison). Nodes may gate themselves on runtime conditions, narrow
the fragment they operate on, replicate themselves over a fragment set, or
mount a reused subtree under their own name.

The engine walks the tree depth-first, left-to-right, classifies every node,
evaluates its enable condition, resolves its fragment, and dispatches into
the bound ports.Adapter. Classification is a closed union — there is no
duck-typed fallthrough; malformed nodes fail collection immediately with a
domain.FormatError.

# Usage

	package checkout_test

	import (
		"context"
		"testing"

		"github.com/aretw0/espalier"
		"github.com/aretw0/espalier/pkg/adapters/gotest"
		"github.com/aretw0/espalier/pkg/dom"
		"github.com/aretw0/espalier/pkg/domain"
	)

	func TestCheckout(t *testing.T) {
		frag, err := dom.ParseFragment(`<div class="cart"><span>2 items</span></div>`)
		if err != nil {
			t.Fatal(err)
		}

		tree := []domain.Node{
			&domain.Suite{
				Name: "cart summary",
				Tests: []domain.Node{
					&domain.Test{
						Name: "shows the item count",
						GetActual: func(ctx context.Context, fragment any, win *dom.Window, index int) (any, error) {
							return textOf(fragment), nil
						},
						RunComparison: func(actual any) error {
							return expectEqual(actual, "2 items")
						},
					},
				},
			},
		}

		if err := espalier.Run(context.Background(), frag, tree, gotest.New(t)); err != nil {
			t.Fatal(err)
		}
	}

The root context may be a parsed fragment as above, a single element (it is
cloned into a fresh fragment), or a *dom.Window when tests need the global
browsing context.

# Adapters

pkg/adapters/gotest schedules trees onto Go's own runner via t.Run.
pkg/outline records the dispatch plan without executing anything, for
previews and structural assertions. Any other back end implements
ports.Adapter; ports.RunAdapterContract verifies the obligations.
*/
package espalier
