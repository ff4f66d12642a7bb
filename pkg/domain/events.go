package domain

import (
	"context"
	"time"
)

// NodeEvent describes a traversal decision about one node.
type NodeEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Name      string    `json:"name"`
	Kind      Kind      `json:"kind"`
	Index     int       `json:"index"`
}

// LifecycleHooks defines callbacks for engine observability. All fields are
// optional; nil hooks are skipped. Hooks observe, they cannot alter the
// traversal.
type LifecycleHooks struct {
	// OnSuiteEnter fires before a suite scope is handed to the adapter.
	OnSuiteEnter func(context.Context, *NodeEvent)
	// OnSuiteLeave fires after the adapter returns from a suite scope.
	OnSuiteLeave func(context.Context, *NodeEvent)
	// OnTestRegister fires when a terminal test is handed to the adapter.
	OnTestRegister func(context.Context, *NodeEvent)
	// OnNodeSkip fires when a condition gate prunes a node.
	OnNodeSkip func(context.Context, *NodeEvent)
}
