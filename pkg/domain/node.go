package domain

import (
	"context"

	"github.com/aretw0/espalier/pkg/dom"
)

// Node is a single entry in a declarative test tree. It is a closed union:
// only *Suite and *Test satisfy it. The tree is owned by the test author;
// the engine only reads it.
type Node interface {
	node()
}

// ConditionFunc gates creation of a node. A nil ConditionFunc means the node
// is always enabled. Returning false prunes the node (and, for suites, every
// descendant) silently — pruning is a control signal, not a failure.
type ConditionFunc func(fragment any, win *dom.Window, index int) bool

// FragmentSetFunc expands a parent fragment into an ordered set of
// sub-fragments. The node it belongs to is replicated once per element.
type FragmentSetFunc func(fragment any) []any

// SubFragmentFunc narrows the fragment a test operates on. A nil
// SubFragmentFunc leaves the parent fragment untouched.
type SubFragmentFunc func(fragment any) any

// HookFunc is a suite-level setup or cleanup step. Hooks may do asynchronous
// work internally; they signal completion (or failure) through the returned
// error.
type HookFunc func(ctx context.Context) error

// ActualFunc collects the value under test from a fragment. The returned
// error is the rejection path: it is reported as a failure of the enclosing
// test, never as a traversal abort.
type ActualFunc func(ctx context.Context, fragment any, win *dom.Window, index int) (any, error)

// CompareFunc asserts on the collected value. A non-nil error fails the test.
type CompareFunc func(actual any) error

// Suite is a named grouping of tests and nested suites sharing setup,
// cleanup and an optional enable condition.
type Suite struct {
	// Name is the suite's display identity. It is not required to be unique.
	Name string

	// Tests is the ordered child sequence. It must be non-nil; an empty
	// slice is valid and traverses to nothing.
	Tests []Node

	// CheckConditions, when set, gates the whole subtree.
	CheckConditions ConditionFunc

	BeforeAll  HookFunc
	BeforeEach HookFunc
	AfterAll   HookFunc
	AfterEach  HookFunc

	// GetFragmentSet replicates this suite once per returned sub-fragment.
	// Setup/cleanup hooks still run once for the whole set.
	GetFragmentSet FragmentSetFunc

	// FragmentSetMessage labels the scope wrapping a fragment set.
	FragmentSetMessage string
}

func (*Suite) node() {}

// Test is a leaf unit: value collection plus assertion. When InheritedTests
// is set the node instead mounts a reused subtree under its own name.
type Test struct {
	// Name is required.
	Name string

	// CheckConditions, when set, gates this test.
	CheckConditions ConditionFunc

	// InheritedTests mounts another component's test tree under this node's
	// naming scope. Ignored when GetFragmentSet is set (set wins).
	InheritedTests []Node

	// GetFragmentSet replicates this test once per returned sub-fragment.
	GetFragmentSet FragmentSetFunc

	// GetSubFragment narrows the fragment before dispatch.
	GetSubFragment SubFragmentFunc

	// GetActual and RunComparison are both required when the node is
	// dispatched as a terminal test.
	GetActual     ActualFunc
	RunComparison CompareFunc
}

func (*Test) node() {}
