// Package classify derives the dispatch kind of a declarative node. All
// functions are pure: they inspect shape, never state, and fail with a
// domain.FormatError on malformed input.
package classify

import (
	"github.com/aretw0/espalier/pkg/domain"
)

// Type is the secondary flavor of a node within its category.
type Type string

const (
	// TypeSet marks a node replicated over a fragment set. Set always wins:
	// a test that declares both GetFragmentSet and InheritedTests is a set.
	TypeSet Type = "set"
	// TypeInherit marks a test that mounts a reused subtree.
	TypeInherit Type = "inherit"
	// TypeDefault is everything else.
	TypeDefault Type = "default"
)

// TestType derives the flavor of a node. GetFragmentSet is checked first and
// takes precedence over inheritance; inherit is only reachable for tests.
func TestType(node domain.Node) Type {
	switch n := node.(type) {
	case *domain.Suite:
		if n.GetFragmentSet != nil {
			return TypeSet
		}
	case *domain.Test:
		if n.GetFragmentSet != nil {
			return TypeSet
		}
		if n.InheritedTests != nil {
			return TypeInherit
		}
	}
	return TypeDefault
}

// Classify validates a node's shape and returns its dispatch kind.
//
// A *Suite must carry a non-nil Tests sequence (empty is fine). A *Test must
// carry a name. Anything else — including a nil node — is malformed. Suite
// names are display identity only and are not validated here.
func Classify(node domain.Node) (domain.Kind, error) {
	switch n := node.(type) {
	case *domain.Suite:
		if n == nil || n.Tests == nil {
			return domain.KindInvalid, &domain.FormatError{
				Node:   suiteName(n),
				Reason: "test suites must include an array of tests",
			}
		}
		if TestType(n) == TypeSet {
			return domain.KindFragmentSuite, nil
		}
		return domain.KindSuite, nil
	case *domain.Test:
		if n == nil || n.Name == "" {
			return domain.KindInvalid, &domain.FormatError{
				Reason: "exported tests are missing a name",
			}
		}
		switch TestType(n) {
		case TypeSet:
			return domain.KindFragmentTest, nil
		case TypeInherit:
			return domain.KindInheritedTest, nil
		}
		return domain.KindPlainTest, nil
	default:
		return domain.KindInvalid, &domain.FormatError{
			Reason: "nodes must be a test suite or an exported test",
		}
	}
}

// ResolveFragment narrows the fragment a test operates on. Suites never
// narrow; they pass their fragment through to children untouched.
func ResolveFragment(test *domain.Test, parent any) any {
	if test.GetSubFragment != nil {
		return test.GetSubFragment(parent)
	}
	return parent
}

func suiteName(s *domain.Suite) string {
	if s == nil {
		return ""
	}
	return s.Name
}
