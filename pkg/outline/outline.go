// Package outline records the dispatch plan of a test tree without
// executing anything. The Recorder is a collection-only ports.Adapter: it
// expands fragment sets and walks every scope the engine would create, but
// never runs hooks, GetActual or RunComparison. Use it to preview a tree,
// assert on traversal structure, or export a plan.
package outline

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/ports"
	"gopkg.in/yaml.v3"
)

// Entry is one node of the recorded plan.
type Entry struct {
	Name     string   `yaml:"name" json:"name"`
	Kind     string   `yaml:"kind" json:"kind"`
	Index    int      `yaml:"index" json:"index"`
	Children []*Entry `yaml:"children,omitempty" json:"children,omitempty"`
}

// Recorder implements ports.Adapter by recording scopes and leaves in
// dispatch order. Not safe for concurrent use.
type Recorder struct {
	entries []*Entry
	stack   []*Entry
}

// NewRecorder creates an empty plan recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Entries returns the recorded plan, one root entry per top-level node that
// survived its condition gate.
func (r *Recorder) Entries() []*Entry { return r.entries }

func (r *Recorder) add(e *Entry) {
	if len(r.stack) > 0 {
		parent := r.stack[len(r.stack)-1]
		parent.Children = append(parent.Children, e)
		return
	}
	r.entries = append(r.entries, e)
}

func (r *Recorder) open(e *Entry, body func() error) error {
	r.add(e)
	r.stack = append(r.stack, e)
	defer func() { r.stack = r.stack[:len(r.stack)-1] }()
	return body()
}

// CreateSuite records the suite scope and traverses its children.
func (r *Recorder) CreateSuite(ctx context.Context, s *domain.Suite, fragment any, index int, _ bool, recurse ports.RecurseFunc) error {
	entry := &Entry{Name: s.Name, Kind: domain.KindSuite.String(), Index: index}
	return r.open(entry, func() error {
		return recurse(ctx, s.Tests, fragment, index)
	})
}

// CreateFragmentSuite expands the fragment set and records one child scope
// per element. Hooks are not executed; this adapter only collects.
func (r *Recorder) CreateFragmentSuite(ctx context.Context, node domain.Node, fragment any, index int, each ports.DispatchFunc) error {
	var label string
	var set domain.FragmentSetFunc
	switch n := node.(type) {
	case *domain.Suite:
		label = n.FragmentSetMessage
		if label == "" {
			label = n.Name
		}
		set = n.GetFragmentSet
	case *domain.Test:
		label = n.Name
		set = n.GetFragmentSet
	default:
		return &domain.FormatError{Reason: "fragment sets require a suite or an exported test"}
	}

	entry := &Entry{Name: label, Kind: domain.KindFragmentSuite.String(), Index: index}
	return r.open(entry, func() error {
		for i, sub := range set(fragment) {
			if err := each(ctx, sub, i); err != nil {
				return err
			}
		}
		return nil
	})
}

// CreateInheritedSuite records the mount point and traverses the reused
// subtree under it.
func (r *Recorder) CreateInheritedSuite(ctx context.Context, test *domain.Test, fragment any, index int, recurse ports.RecurseFunc) error {
	entry := &Entry{Name: test.Name, Kind: domain.KindInheritedTest.String(), Index: index}
	return r.open(entry, func() error {
		return recurse(ctx, test.InheritedTests, fragment, index)
	})
}

// CreateTest records a leaf without running it.
func (r *Recorder) CreateTest(_ context.Context, test *domain.Test, _ any, index int) error {
	r.add(&Entry{Name: test.Name, Kind: domain.KindPlainTest.String(), Index: index})
	return nil
}

// Render writes the plan as an indented listing.
func Render(w io.Writer, entries []*Entry) error {
	for _, e := range entries {
		if err := renderEntry(w, e, 0); err != nil {
			return err
		}
	}
	return nil
}

func renderEntry(w io.Writer, e *Entry, depth int) error {
	indent := strings.Repeat("  ", depth)
	if _, err := fmt.Fprintf(w, "%s%s %q (index %d)\n", indent, e.Kind, e.Name, e.Index); err != nil {
		return err
	}
	for _, child := range e.Children {
		if err := renderEntry(w, child, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// Markdown renders the plan as a nested bullet list.
func Markdown(entries []*Entry) string {
	var sb strings.Builder
	for _, e := range entries {
		markdownEntry(&sb, e, 0)
	}
	return sb.String()
}

func markdownEntry(sb *strings.Builder, e *Entry, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(sb, "%s- **%s** `%s`\n", indent, e.Name, e.Kind)
	for _, child := range e.Children {
		markdownEntry(sb, child, depth+1)
	}
}

// Mermaid produces a Mermaid flowchart of the plan. Scopes get rectangles,
// fragment sets subroutine boxes, leaves rounded boxes.
func Mermaid(entries []*Entry) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	id := 0
	for _, e := range entries {
		mermaidEntry(&sb, e, "", &id)
	}
	return sb.String()
}

func mermaidEntry(sb *strings.Builder, e *Entry, parentID string, id *int) {
	nodeID := fmt.Sprintf("n%d", *id)
	*id++

	opener, closer := "[", "]"
	switch e.Kind {
	case domain.KindFragmentSuite.String():
		opener, closer = "[[", "]]"
	case domain.KindPlainTest.String():
		opener, closer = "(", ")"
	case domain.KindInheritedTest.String():
		opener, closer = "[/", "/]"
	}

	// Escape double quotes for Mermaid labels
	label := strings.ReplaceAll(e.Name, "\"", "'")
	fmt.Fprintf(sb, "    %s%s\"%s\"%s\n", nodeID, opener, label, closer)
	if parentID != "" {
		fmt.Fprintf(sb, "    %s --> %s\n", parentID, nodeID)
	}
	for _, child := range e.Children {
		mermaidEntry(sb, child, nodeID, id)
	}
}

// EncodeYAML writes the plan as YAML, for snapshots or external tooling.
func EncodeYAML(w io.Writer, entries []*Entry) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(entries)
}
