// Package gotest schedules declarative test trees onto Go's own runner.
// Suite scopes become t.Run groups, terminal tests become t.Run leaves, and
// suite hooks map onto the surrounding scope: BeforeAll/AfterAll bracket the
// children, BeforeEach/AfterEach bracket every descendant leaf.
package gotest

import (
	"context"
	"testing"

	"github.com/aretw0/espalier/pkg/dom"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/ports"
)

// Adapter implements ports.Adapter over a *testing.T. It is not safe for
// concurrent use: traversal is synchronous and the adapter tracks the
// current subtest scope as it descends.
type Adapter struct {
	t      *testing.T
	host   ports.Host
	scopes []scope
}

// scope carries the per-leaf hooks registered by an enclosing suite.
type scope struct {
	beforeEach domain.HookFunc
	afterEach  domain.HookFunc
}

// New creates an adapter rooted at t.
func New(t *testing.T) *Adapter {
	return &Adapter{t: t}
}

// Bind receives the engine's per-run context before traversal starts.
func (a *Adapter) Bind(host ports.Host) { a.host = host }

func (a *Adapter) window() *dom.Window {
	if a.host == nil {
		return nil
	}
	return a.host.Window()
}

// enter makes t the current scope and returns the restore func.
func (a *Adapter) enter(t *testing.T) func() {
	prev := a.t
	a.t = t
	return func() { a.t = prev }
}

func (a *Adapter) push(s scope) { a.scopes = append(a.scopes, s) }
func (a *Adapter) pop()         { a.scopes = a.scopes[:len(a.scopes)-1] }

// CreateSuite opens a named subtest and traverses the suite's children
// inside it. Hooks only apply when withHooks is set; a fragment set that
// already owns them passes false.
func (a *Adapter) CreateSuite(ctx context.Context, s *domain.Suite, fragment any, index int, withHooks bool, recurse ports.RecurseFunc) error {
	var err error
	a.t.Run(s.Name, func(t *testing.T) {
		defer a.enter(t)()

		if withHooks {
			if s.BeforeAll != nil {
				if herr := s.BeforeAll(ctx); herr != nil {
					t.Fatalf("beforeAll: %v", herr)
				}
			}
			a.push(scope{beforeEach: s.BeforeEach, afterEach: s.AfterEach})
			defer a.pop()
			if s.AfterAll != nil {
				defer func() {
					if herr := s.AfterAll(ctx); herr != nil {
						t.Errorf("afterAll: %v", herr)
					}
				}()
			}
		}

		err = recurse(ctx, s.Tests, fragment, index)
	})
	return err
}

// CreateFragmentSuite expands the node's fragment set inside one named
// subtest. Suite-level setup and cleanup run once for the whole set; the
// per-element work is delegated back to the engine through each.
func (a *Adapter) CreateFragmentSuite(ctx context.Context, node domain.Node, fragment any, index int, each ports.DispatchFunc) error {
	var err error
	switch n := node.(type) {
	case *domain.Suite:
		label := n.FragmentSetMessage
		if label == "" {
			label = n.Name
		}
		a.t.Run(label, func(t *testing.T) {
			defer a.enter(t)()

			if n.BeforeAll != nil {
				if herr := n.BeforeAll(ctx); herr != nil {
					t.Fatalf("beforeAll: %v", herr)
				}
			}
			a.push(scope{beforeEach: n.BeforeEach, afterEach: n.AfterEach})
			defer a.pop()
			if n.AfterAll != nil {
				defer func() {
					if herr := n.AfterAll(ctx); herr != nil {
						t.Errorf("afterAll: %v", herr)
					}
				}()
			}

			for i, sub := range n.GetFragmentSet(fragment) {
				if err = each(ctx, sub, i); err != nil {
					return
				}
			}
		})
	case *domain.Test:
		a.t.Run(n.Name, func(t *testing.T) {
			defer a.enter(t)()
			for i, sub := range n.GetFragmentSet(fragment) {
				if err = each(ctx, sub, i); err != nil {
					return
				}
			}
		})
	default:
		return &domain.FormatError{Reason: "fragment sets require a suite or an exported test"}
	}
	return err
}

// CreateInheritedSuite mounts a reused subtree under the test's name.
func (a *Adapter) CreateInheritedSuite(ctx context.Context, test *domain.Test, fragment any, index int, recurse ports.RecurseFunc) error {
	var err error
	a.t.Run(test.Name, func(t *testing.T) {
		defer a.enter(t)()
		err = recurse(ctx, test.InheritedTests, fragment, index)
	})
	return err
}

// CreateTest schedules one leaf. Collection and comparison failures are
// reported against the leaf's own subtest and never abort the traversal.
func (a *Adapter) CreateTest(ctx context.Context, test *domain.Test, fragment any, index int) error {
	// Snapshot the hook chain now; the adapter's stack keeps moving while
	// the traversal descends.
	chain := make([]scope, len(a.scopes))
	copy(chain, a.scopes)

	a.t.Run(test.Name, func(t *testing.T) {
		for _, sc := range chain {
			if sc.beforeEach != nil {
				if err := sc.beforeEach(ctx); err != nil {
					t.Fatalf("beforeEach: %v", err)
				}
			}
		}
		defer func() {
			for i := len(chain) - 1; i >= 0; i-- {
				if chain[i].afterEach != nil {
					if err := chain[i].afterEach(ctx); err != nil {
						t.Errorf("afterEach: %v", err)
					}
				}
			}
		}()

		actual, err := test.GetActual(ctx, fragment, a.window(), index)
		if err != nil {
			t.Errorf("getActual: %v", err)
			return
		}
		if err := test.RunComparison(actual); err != nil {
			t.Error(err)
		}
	})
	return nil
}
