// Package domain holds the declarative test tree model: the Suite/Test node
// union, the hook function signatures a tree author implements, the Kind
// classification, and the lifecycle events emitted while a tree is walked.
//
// The types here are pure data; classification lives in internal/classify
// and scheduling lives in adapters.
package domain
