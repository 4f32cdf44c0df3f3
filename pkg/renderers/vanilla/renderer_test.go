package vanilla_test

import (
	"context"
	"io"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-ticketkit/pkg/cards"
	"github.com/goliatone/go-ticketkit/pkg/entity"
	"github.com/goliatone/go-ticketkit/pkg/forms"
	"github.com/goliatone/go-ticketkit/pkg/render"
	"github.com/goliatone/go-ticketkit/pkg/renderers/vanilla"
)

func testSchema() forms.Schema {
	return forms.Schema{
		Name:  "ticket",
		Title: "Ticket",
		Fields: []forms.FieldSpec{
			{Name: "title", Type: forms.FieldTypeString, Label: "Title", Required: true, MinLength: 3, Placeholder: "Short summary"},
			{Name: "description", Type: forms.FieldTypeString, Label: "Description", Multiline: true},
			{Name: "priority", Type: forms.FieldTypeEnum, Label: "Priority", Options: []string{"low", "high"}},
			{Name: "notify", Type: forms.FieldTypeBoolean, Label: "Notify assignee"},
		},
	}
}

type ticketStub struct {
	id    string
	title string
}

func (t ticketStub) EntityID() string        { return t.id }
func (t ticketStub) EntityKind() entity.Kind { return entity.KindTicket }
func (t ticketStub) DisplayName() string     { return t.title }

func ticketRegions() cards.Regions[ticketStub] {
	return cards.Regions[ticketStub]{
		Header: func(t ticketStub) cards.Region {
			return cards.Region{
				Title:  t.title,
				Badges: []cards.Badge{{Label: "open", Tone: "info"}},
			}
		},
		Content: func(t ticketStub) cards.Region {
			return cards.Region{
				Fields: []cards.FieldLine{{Label: "Priority", Value: "high"}},
			}
		},
	}
}

func newRenderer(t *testing.T, options ...vanilla.Option) *vanilla.Renderer {
	t.Helper()
	renderer, err := vanilla.New(options...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return renderer
}

func mustContain(t *testing.T, output, want string) {
	t.Helper()
	if !strings.Contains(output, want) {
		t.Fatalf("output missing %q:\n%s", want, output)
	}
}

func mustNotContain(t *testing.T, output, unwanted string) {
	t.Helper()
	if strings.Contains(output, unwanted) {
		t.Fatalf("output unexpectedly contains %q:\n%s", unwanted, output)
	}
}

func TestRenderForm_ReadMode(t *testing.T) {
	renderer := newRenderer(t)

	output, err := renderer.RenderForm(context.Background(), testSchema(), render.Options{
		Mode: render.ModeRead,
		Values: forms.Record{
			"title":    "Fix login flow",
			"priority": "high",
			"notify":   true,
		},
	})
	if err != nil {
		t.Fatalf("render form: %v", err)
	}

	html := string(output)
	mustContain(t, html, `class="tk-form"`)
	mustContain(t, html, "Fix login flow")
	mustContain(t, html, `<span class="tk-badge" data-value="high">high</span>`)
	mustContain(t, html, "Yes")
	// description holds no value, so the sentinel shows
	mustContain(t, html, forms.NotProvided)
	mustNotContain(t, html, "<input")
}

func TestRenderForm_EditMode(t *testing.T) {
	renderer := newRenderer(t)

	output, err := renderer.RenderForm(context.Background(), testSchema(), render.Options{
		Mode: render.ModeEdit,
		Values: forms.Record{
			"title":       "Fix login flow",
			"description": "Steps to reproduce",
			"priority":    "high",
			"notify":      true,
		},
		Errors: map[string]string{"title": "Title is too short"},
	})
	if err != nil {
		t.Fatalf("render form: %v", err)
	}

	html := string(output)
	mustContain(t, html, `value="Fix login flow"`)
	mustContain(t, html, `minlength="3"`)
	mustContain(t, html, `placeholder="Short summary"`)
	mustContain(t, html, ">Steps to reproduce</textarea>")
	mustContain(t, html, `<option value="high" selected>`)
	mustContain(t, html, `type="checkbox"`)
	mustContain(t, html, " checked")
	mustContain(t, html, `<p class="tk-field-error" role="alert">Title is too short</p>`)
	mustContain(t, html, `data-invalid="true"`)
	mustContain(t, html, ">Save</button>")
}

func TestRenderForm_SubmittingDisablesControls(t *testing.T) {
	renderer := newRenderer(t)

	output, err := renderer.RenderForm(context.Background(), testSchema(), render.Options{
		Mode:       render.ModeEdit,
		Submitting: true,
	})
	if err != nil {
		t.Fatalf("render form: %v", err)
	}

	html := string(output)
	mustContain(t, html, "disabled>Saving…</button>")
	mustNotContain(t, html, ">Save</button>")
}

func TestRenderForm_EscapesValues(t *testing.T) {
	renderer := newRenderer(t)

	output, err := renderer.RenderForm(context.Background(), testSchema(), render.Options{
		Mode:   render.ModeEdit,
		Values: forms.Record{"title": `<script>alert("x")</script>`},
	})
	if err != nil {
		t.Fatalf("render form: %v", err)
	}
	mustNotContain(t, string(output), "<script>")
}

func TestRenderCard_Regions(t *testing.T) {
	renderer := newRenderer(t)
	card := cards.New(ticketStub{id: "t-1", title: "Fix login flow"}, ticketRegions())

	output, err := renderer.RenderCard(context.Background(), card.View(), render.Options{})
	if err != nil {
		t.Fatalf("render card: %v", err)
	}

	html := string(output)
	mustContain(t, html, `data-entity-kind="ticket"`)
	mustContain(t, html, `data-entity-id="t-1"`)
	mustContain(t, html, `<h3 class="tk-region-title">Fix login flow</h3>`)
	mustContain(t, html, "tk-badge-info")
	mustContain(t, html, `<span class="tk-field-line-value">high</span>`)
	mustContain(t, html, `data-action="edit"`)
	mustContain(t, html, `data-action="delete"`)
	mustNotContain(t, html, "tk-confirm")
}

func TestRenderCard_ConfirmDialog(t *testing.T) {
	renderer := newRenderer(t)
	card := cards.New(ticketStub{id: "t-1", title: "Fix login flow"}, ticketRegions())
	card.RequestDelete()

	output, err := renderer.RenderCard(context.Background(), card.View(), render.Options{})
	if err != nil {
		t.Fatalf("render card: %v", err)
	}

	html := string(output)
	mustContain(t, html, `role="dialog"`)
	mustContain(t, html, "Delete Ticket")
	mustContain(t, html, "Fix login flow")
	mustContain(t, html, `data-action="confirm-delete"`)
	mustContain(t, html, `data-action="cancel-delete"`)
}

func TestRenderCard_SanitizesBodyHTML(t *testing.T) {
	renderer := newRenderer(t)
	regions := cards.Regions[ticketStub]{
		Content: func(t ticketStub) cards.Region {
			return cards.Region{BodyHTML: `<em>important</em><script>alert("x")</script>`}
		},
	}
	card := cards.New(ticketStub{id: "t-1", title: "Fix login flow"}, regions)

	output, err := renderer.RenderCard(context.Background(), card.View(), render.Options{})
	if err != nil {
		t.Fatalf("render card: %v", err)
	}

	html := string(output)
	mustContain(t, html, "<em>important</em>")
	mustNotContain(t, html, "<script>")
}

func TestRenderCard_HiddenAffordances(t *testing.T) {
	renderer := newRenderer(t)
	card := cards.New(ticketStub{id: "t-1", title: "Fix login flow"}, ticketRegions(),
		cards.WithConfig[ticketStub](cards.Config{ShowFooter: true}))

	output, err := renderer.RenderCard(context.Background(), card.View(), render.Options{})
	if err != nil {
		t.Fatalf("render card: %v", err)
	}

	html := string(output)
	mustNotContain(t, html, `data-action="edit"`)
	mustNotContain(t, html, `data-action="delete"`)
}

func TestRenderList_EmptyState(t *testing.T) {
	renderer := newRenderer(t)
	list := cards.NewList(entity.KindTicket, ticketRegions(),
		cards.WithSync[ticketStub]("Sync tickets", func() {}))

	output, err := renderer.RenderList(context.Background(), list.View(nil), render.Options{})
	if err != nil {
		t.Fatalf("render list: %v", err)
	}

	html := string(output)
	mustContain(t, html, `<p class="tk-list-empty">No tickets yet.</p>`)
	mustContain(t, html, `data-action="sync">Sync tickets</button>`)
	mustNotContain(t, html, "tk-list-cards")
}

func TestRenderList_CardsInOrder(t *testing.T) {
	renderer := newRenderer(t)
	list := cards.NewList(entity.KindTicket, ticketRegions())

	output, err := renderer.RenderList(context.Background(), list.View([]ticketStub{
		{id: "t-1", title: "First"},
		{id: "t-2", title: "Second"},
	}), render.Options{})
	if err != nil {
		t.Fatalf("render list: %v", err)
	}

	html := string(output)
	mustContain(t, html, "tk-list-cards")
	first := strings.Index(html, `data-entity-id="t-1"`)
	second := strings.Index(html, `data-entity-id="t-2"`)
	if first < 0 || second < 0 || first > second {
		t.Fatalf("cards missing or out of order (first=%d second=%d):\n%s", first, second, html)
	}
}

func TestRenderer_ThemeStyle(t *testing.T) {
	renderer := newRenderer(t, vanilla.WithTheme(&theme.RendererConfig{
		Theme: "acme",
		CSSVars: map[string]string{
			"--brand":   "#123456",
			"--surface": "#ffffff",
		},
	}))

	output, err := renderer.RenderForm(context.Background(), testSchema(), render.Options{Mode: render.ModeRead})
	if err != nil {
		t.Fatalf("render form: %v", err)
	}
	mustContain(t, string(output), `style="--brand: #123456; --surface: #ffffff"`)
}

func TestRenderer_WithTemplateRenderer(t *testing.T) {
	stub := &stubTemplateRenderer{
		renderTemplateFunc: func(name string, data any, out ...io.Writer) (string, error) {
			return "custom-output", nil
		},
	}

	renderer := newRenderer(t, vanilla.WithTemplateRenderer(stub))

	output, err := renderer.RenderForm(context.Background(), testSchema(), render.Options{})
	if err != nil {
		t.Fatalf("render form: %v", err)
	}
	if string(output) != "custom-output" {
		t.Fatalf("unexpected output: %s", output)
	}
	if !stub.called {
		t.Fatal("expected render template to be called")
	}
}

type stubTemplateRenderer struct {
	called             bool
	renderTemplateFunc func(name string, data any, out ...io.Writer) (string, error)
}

func (s *stubTemplateRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	return s.RenderTemplate(name, data, out...)
}

func (s *stubTemplateRenderer) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	s.called = true
	if s.renderTemplateFunc != nil {
		return s.renderTemplateFunc(name, data, out...)
	}
	return "", nil
}

func (s *stubTemplateRenderer) RenderString(templateContent string, data any, out ...io.Writer) (string, error) {
	return "", nil
}

func (s *stubTemplateRenderer) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	return nil
}

func (s *stubTemplateRenderer) GlobalContext(data any) error {
	return nil
}
