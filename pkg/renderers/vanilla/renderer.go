package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-ticketkit/pkg/cards"
	"github.com/goliatone/go-ticketkit/pkg/forms"
	"github.com/goliatone/go-ticketkit/pkg/render"
	rendertemplate "github.com/goliatone/go-ticketkit/pkg/render/template"
	gotemplate "github.com/goliatone/go-ticketkit/pkg/render/template/gotemplate"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	theme            *theme.RendererConfig
	sanitizer        *bluemonday.Policy
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithTheme applies a resolved theme configuration. Its CSS variables land on
// the outermost element of every rendered surface.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(c *config) {
		c.theme = cfg
	}
}

// WithSanitizer overrides the policy applied to entity-authored HTML bodies.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.sanitizer = policy
		}
	}
}

// Renderer emits framework-free HTML for forms, cards, and lists.
type Renderer struct {
	templates  rendertemplate.TemplateRenderer
	themeStyle string
	sanitizer  *bluemonday.Policy
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	sanitizer := cfg.sanitizer
	if sanitizer == nil {
		sanitizer = bluemonday.UGCPolicy()
	}

	return &Renderer{
		templates:  renderer,
		themeStyle: cssVarsStyle(cfg.theme),
		sanitizer:  sanitizer,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// RenderForm renders a schema as a read-mode detail block or an edit-mode
// form, depending on options.Mode.
func (r *Renderer) RenderForm(_ context.Context, schema forms.Schema, options render.Options) ([]byte, error) {
	if r == nil || r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	result, err := r.templates.RenderTemplate("templates/form.tmpl", map[string]any{
		"name":        schema.Name,
		"title":       schema.Title,
		"description": schema.Description,
		"content":     buildFormMarkup(schema, options),
		"theme_style": r.themeStyle,
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render form: %w", err)
	}
	return []byte(result), nil
}

// RenderCard renders a single card snapshot, including the delete
// confirmation dialog when it is open.
func (r *Renderer) RenderCard(_ context.Context, view cards.View, options render.Options) ([]byte, error) {
	if r == nil || r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	return r.renderCard(view, r.themeStyle)
}

func (r *Renderer) renderCard(view cards.View, themeStyle string) ([]byte, error) {
	result, err := r.templates.RenderTemplate("templates/card.tmpl", map[string]any{
		"kind":        string(view.Kind),
		"id":          view.ID,
		"clickable":   true,
		"content":     buildCardMarkup(view, r.sanitizer),
		"theme_style": themeStyle,
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render card: %w", err)
	}
	return []byte(result), nil
}

// RenderList renders a collection snapshot. An empty collection renders the
// empty-state message instead of a card grid.
func (r *Renderer) RenderList(_ context.Context, view cards.ListView, options render.Options) ([]byte, error) {
	if r == nil || r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	var content strings.Builder
	for _, card := range view.Cards {
		// Theme style lives on the list root; cards inside inherit it.
		rendered, err := r.renderCard(card, "")
		if err != nil {
			return nil, err
		}
		content.Write(rendered)
	}

	result, err := r.templates.RenderTemplate("templates/list.tmpl", map[string]any{
		"kind":          string(view.Kind),
		"title":         view.Title,
		"empty":         view.Empty(),
		"empty_message": view.EmptyMessage,
		"sync_label":    view.SyncLabel,
		"content":       content.String(),
		"theme_style":   r.themeStyle,
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render list: %w", err)
	}
	return []byte(result), nil
}

// cssVarsStyle flattens the theme's CSS variables into an inline style
// attribute value, keys sorted for stable output.
func cssVarsStyle(cfg *theme.RendererConfig) string {
	if cfg == nil || len(cfg.CSSVars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(cfg.CSSVars))
	for key := range cfg.CSSVars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, key := range keys {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(cfg.CSSVars[key])
	}
	return b.String()
}
