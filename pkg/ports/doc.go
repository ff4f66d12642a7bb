// Package ports defines the boundary between the traversal engine and the
// framework-specific back ends that schedule real test work.
//
// An Adapter translates suite scopes and terminal tests into a concrete
// runner's primitives (describe/it equivalents). The engine walks the
// declarative tree, decides what gets created, and calls back into the
// adapter through this capability set.
package ports
