package domain

// Kind is the classification the traversal assigns to a node before
// dispatching it to an adapter operation.
type Kind int

const (
	KindInvalid Kind = iota
	KindSuite
	KindFragmentSuite
	KindPlainTest
	KindFragmentTest
	KindInheritedTest
)

func (k Kind) String() string {
	switch k {
	case KindSuite:
		return "suite"
	case KindFragmentSuite:
		return "fragment-suite"
	case KindPlainTest:
		return "test"
	case KindFragmentTest:
		return "fragment-test"
	case KindInheritedTest:
		return "inherited-test"
	default:
		return "invalid"
	}
}
