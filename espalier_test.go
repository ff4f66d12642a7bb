package espalier_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/pkg/dom"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/outline"
)

func TestFacade_Integration(t *testing.T) {
	frag, err := dom.ParseFragment(`<section><h1>Title</h1><p>Body</p></section>`)
	if err != nil {
		t.Fatal(err)
	}

	tree := []domain.Node{
		&domain.Suite{
			Name: "article",
			Tests: []domain.Node{
				&domain.Test{
					Name: "has a title",
					GetActual: func(_ context.Context, fragment any, _ *dom.Window, _ int) (any, error) {
						return fragment, nil
					},
					RunComparison: func(any) error { return nil },
				},
			},
		},
	}

	rec := outline.NewRecorder()
	eng, err := espalier.New(frag, rec)
	if err != nil {
		t.Fatalf("Failed to initialize engine: %v", err)
	}
	if eng.Fragment() != frag {
		t.Error("engine must scope to the resolved fragment")
	}
	if eng.Window() != nil {
		t.Error("no window was provided, expected nil")
	}

	if err := eng.Run(context.Background(), tree); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	entries := rec.Entries()
	if len(entries) != 1 || entries[0].Name != "article" {
		t.Fatalf("unexpected plan: %+v", entries)
	}
	if len(entries[0].Children) != 1 || entries[0].Children[0].Name != "has a title" {
		t.Errorf("unexpected leaf plan: %+v", entries[0].Children)
	}
}

func TestFacade_RejectsUnknownContext(t *testing.T) {
	_, err := espalier.New(42, outline.NewRecorder())
	if err == nil {
		t.Fatal("expected a context error for an unrecognized root")
	}
	if !errors.Is(err, dom.ErrContext) {
		t.Errorf("expected ErrContext, got %v", err)
	}
}

func TestFacade_RunAbortsOnMalformedNode(t *testing.T) {
	frag, err := dom.ParseFragment(`<p>x</p>`)
	if err != nil {
		t.Fatal(err)
	}

	// A suite without a tests sequence is malformed, not a leaf.
	tree := []domain.Node{&domain.Suite{Name: "broken"}}
	err = espalier.Run(context.Background(), frag, tree, outline.NewRecorder())
	if !errors.Is(err, domain.ErrFormat) {
		t.Fatalf("expected ErrFormat, got %v", err)
	}
}

func TestFacade_VerboseOption(t *testing.T) {
	frag, err := dom.ParseFragment(`<p>x</p>`)
	if err != nil {
		t.Fatal(err)
	}

	tree := []domain.Node{
		&domain.Test{
			Name: "logged",
			GetActual: func(_ context.Context, fragment any, _ *dom.Window, _ int) (any, error) {
				return fragment, nil
			},
			RunComparison: func(any) error { return nil },
		},
	}

	rec := outline.NewRecorder()
	if err := espalier.Run(context.Background(), frag, tree, rec, espalier.WithVerbose()); err != nil {
		t.Fatalf("verbose run failed: %v", err)
	}
	if len(rec.Entries()) != 1 {
		t.Errorf("unexpected plan: %+v", rec.Entries())
	}
}

func TestFacade_ElementRootIsWrapped(t *testing.T) {
	frag, err := dom.ParseFragment(`<div id="root">x</div>`)
	if err != nil {
		t.Fatal(err)
	}
	el := frag.FirstChild

	eng, err := espalier.New(el, outline.NewRecorder())
	if err != nil {
		t.Fatalf("element root must be accepted: %v", err)
	}
	if eng.Fragment() == nil {
		t.Fatal("expected a wrapped fragment")
	}
}
