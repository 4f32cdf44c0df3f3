package render

import (
	"context"
	"testing"

	"github.com/goliatone/go-ticketkit/pkg/cards"
	"github.com/goliatone/go-ticketkit/pkg/forms"
)

type stubRenderer struct {
	name string
}

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return "text/plain" }
func (s stubRenderer) RenderForm(context.Context, forms.Schema, Options) ([]byte, error) {
	return []byte(s.name), nil
}
func (s stubRenderer) RenderCard(context.Context, cards.View, Options) ([]byte, error) {
	return []byte(s.name), nil
}
func (s stubRenderer) RenderList(context.Context, cards.ListView, Options) ([]byte, error) {
	return []byte(s.name), nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(stubRenderer{name: "vanilla"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register(stubRenderer{name: "tui"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := reg.Register(stubRenderer{name: "vanilla"}); err == nil {
		t.Fatal("duplicate registration must fail")
	}

	got, err := reg.Get("tui")
	if err != nil || got.Name() != "tui" {
		t.Fatalf("get tui: %v %v", got, err)
	}

	// Empty name resolves to the first registration.
	got, err = reg.Get("")
	if err != nil || got.Name() != "vanilla" {
		t.Fatalf("default lookup: %v %v", got, err)
	}

	if _, err := reg.Get("preact"); err == nil {
		t.Fatal("unknown renderer must fail")
	}
}

func TestRegistry_SetDefault(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(stubRenderer{name: "vanilla"})
	reg.MustRegister(stubRenderer{name: "tui"})

	if err := reg.SetDefault("tui"); err != nil {
		t.Fatalf("set default: %v", err)
	}
	got, err := reg.Get("")
	if err != nil || got.Name() != "tui" {
		t.Fatalf("default lookup after SetDefault: %v %v", got, err)
	}

	if err := reg.SetDefault("missing"); err == nil {
		t.Fatal("set default to unknown renderer must fail")
	}
}

func TestRegistry_List(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(stubRenderer{name: "tui"})
	reg.MustRegister(stubRenderer{name: "vanilla"})

	names := reg.List()
	if len(names) != 2 || names[0] != "tui" || names[1] != "vanilla" {
		t.Fatalf("unexpected list: %v", names)
	}
	if !reg.Has("vanilla") || reg.Has("preact") {
		t.Fatal("Has reports wrong membership")
	}
}
