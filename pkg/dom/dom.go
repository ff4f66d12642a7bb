// Package dom resolves the browsing context a test run operates on. The
// engine accepts a window-like value, a document-fragment node, or a single
// element node; everything else is rejected with a ContextError before any
// traversal begins.
//
// Fragments are plain *html.Node trees from golang.org/x/net/html. The
// engine borrows them read-only; only user-supplied hooks may mutate.
package dom

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrContext is the sentinel for construction-time arguments that are not a
// recognized window, fragment or element shape.
var ErrContext = errors.New("unrecognized document context")

// ContextError reports the rejected construction argument.
type ContextError struct {
	Value any
}

func (e *ContextError) Error() string {
	return fmt.Sprintf("unrecognized document context: %T", e.Value)
}

func (e *ContextError) Unwrap() error { return ErrContext }

// Window pairs a document with the global browsing context handed to user
// hooks. It stands in for a browser window: Self returns the window itself,
// mirroring the window.window identity tests rely on.
type Window struct {
	Document *html.Node
}

// Self returns the window itself.
func (w *Window) Self() *Window { return w }

// Resolve normalizes a run's root context into the fragment the traversal
// scopes to, plus the window when one was provided.
//
// Accepted shapes:
//   - *Window with a document: the document is the root fragment.
//   - *html.Node of type DocumentNode: used as the fragment directly.
//   - *html.Node of type ElementNode: wrapped into a fresh fragment via
//     WrapElement (the element itself is never adopted or mutated).
func Resolve(root any) (*html.Node, *Window, error) {
	switch v := root.(type) {
	case *Window:
		if v == nil || v.Document == nil {
			return nil, nil, &ContextError{Value: root}
		}
		return v.Document, v, nil
	case *html.Node:
		if v == nil {
			return nil, nil, &ContextError{Value: root}
		}
		switch v.Type {
		case html.DocumentNode:
			return v, nil, nil
		case html.ElementNode:
			return WrapElement(v), nil, nil
		}
		return nil, nil, &ContextError{Value: root}
	default:
		return nil, nil, &ContextError{Value: root}
	}
}

// WrapElement clones an element subtree into a fresh document-fragment
// scope. This is the templating step for element roots: the source element
// stays attached to (and untouched in) its original tree.
func WrapElement(el *html.Node) *html.Node {
	frag := &html.Node{Type: html.DocumentNode}
	frag.AppendChild(clone(el))
	return frag
}

// clone deep-copies a node subtree, detached from any parent.
func clone(n *html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
	}
	if n.Attr != nil {
		c.Attr = make([]html.Attribute, len(n.Attr))
		copy(c.Attr, n.Attr)
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.AppendChild(clone(child))
	}
	return c
}

// ParseFragment builds a document-fragment scope from markup, parsed in a
// body context. Intended for fixtures and examples.
func ParseFragment(markup string) (*html.Node, error) {
	body := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fragment: %w", err)
	}
	frag := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		frag.AppendChild(n)
	}
	return frag, nil
}
