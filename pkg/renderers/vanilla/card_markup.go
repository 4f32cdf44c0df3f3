package vanilla

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-ticketkit/pkg/cards"
)

// buildCardMarkup emits the inner markup for one card view: the three
// regions, the action row, and the delete confirmation dialog when open.
func buildCardMarkup(view cards.View, sanitizer *bluemonday.Policy) string {
	var b strings.Builder
	b.Grow(512)

	if markup := buildRegionMarkup("header", view.Header, sanitizer); markup != "" {
		b.WriteString("    <header class=\"tk-card-header\">\n")
		b.WriteString(markup)
		b.WriteString(buildActionsMarkup(view))
		b.WriteString("    </header>\n")
	} else if actions := buildActionsMarkup(view); actions != "" {
		b.WriteString("    <header class=\"tk-card-header\">\n")
		b.WriteString(actions)
		b.WriteString("    </header>\n")
	}

	if markup := buildRegionMarkup("content", view.Content, sanitizer); markup != "" {
		b.WriteString("    <div class=\"tk-card-content\">\n")
		b.WriteString(markup)
		b.WriteString("    </div>\n")
	}

	if view.ShowFooter {
		if markup := buildRegionMarkup("footer", view.Footer, sanitizer); markup != "" {
			b.WriteString("    <footer class=\"tk-card-footer\">\n")
			b.WriteString(markup)
			b.WriteString("    </footer>\n")
		}
	}

	if view.ConfirmOpen {
		b.WriteString(buildConfirmMarkup(view))
	}
	return b.String()
}

func buildRegionMarkup(area string, region cards.Region, sanitizer *bluemonday.Policy) string {
	if regionEmpty(region) {
		return ""
	}

	var b strings.Builder
	b.Grow(256)

	if region.Title != "" || len(region.Badges) > 0 {
		b.WriteString(`        <div class="tk-region-title-row">` + "\n")
		if region.Title != "" {
			b.WriteString(`            <h3 class="tk-region-title">`)
			b.WriteString(html.EscapeString(region.Title))
			b.WriteString("</h3>\n")
		}
		for _, badge := range region.Badges {
			b.WriteString(`            <span class="tk-badge`)
			if badge.Tone != "" {
				b.WriteString(" tk-badge-")
				b.WriteString(html.EscapeString(badge.Tone))
			}
			b.WriteString(`">`)
			b.WriteString(html.EscapeString(badge.Label))
			b.WriteString("</span>\n")
		}
		b.WriteString("        </div>\n")
	}

	if region.Subtitle != "" {
		b.WriteString(`        <p class="tk-region-subtitle">`)
		b.WriteString(html.EscapeString(region.Subtitle))
		b.WriteString("</p>\n")
	}

	if region.BodyHTML != "" && sanitizer != nil {
		clean := strings.TrimSpace(sanitizer.Sanitize(region.BodyHTML))
		if clean != "" {
			b.WriteString(`        <div class="tk-region-body" data-area="`)
			b.WriteString(html.EscapeString(area))
			b.WriteString(`">`)
			b.WriteString(clean)
			b.WriteString("</div>\n")
		}
	} else if region.Body != "" {
		b.WriteString(`        <p class="tk-region-body" data-area="`)
		b.WriteString(html.EscapeString(area))
		b.WriteString(`">`)
		b.WriteString(html.EscapeString(region.Body))
		b.WriteString("</p>\n")
	}

	for _, line := range region.Fields {
		b.WriteString(`        <div class="tk-field-line"><span class="tk-field-line-label">`)
		b.WriteString(html.EscapeString(line.Label))
		b.WriteString(`</span><span class="tk-field-line-value">`)
		b.WriteString(html.EscapeString(line.Value))
		b.WriteString("</span></div>\n")
	}
	return b.String()
}

func buildActionsMarkup(view cards.View) string {
	if !view.ShowEdit && !view.ShowDelete {
		return ""
	}

	var b strings.Builder
	b.WriteString("        <div class=\"tk-card-actions\">\n")
	if view.ShowEdit {
		b.WriteString(`            <button type="button" class="tk-icon-button" data-action="edit" aria-label="Edit">✎</button>` + "\n")
	}
	if view.ShowDelete {
		b.WriteString(`            <button type="button" class="tk-icon-button" data-action="delete" aria-label="Delete">✕</button>` + "\n")
	}
	b.WriteString("        </div>\n")
	return b.String()
}

func buildConfirmMarkup(view cards.View) string {
	var b strings.Builder
	b.Grow(256)

	b.WriteString("    <div class=\"tk-confirm\" role=\"dialog\" aria-modal=\"true\">\n")
	b.WriteString(`        <h4 class="tk-confirm-title">`)
	b.WriteString(html.EscapeString(view.ConfirmTitle))
	b.WriteString("</h4>\n")
	b.WriteString(`        <p class="tk-confirm-body">`)
	b.WriteString(html.EscapeString(view.ConfirmBody))
	b.WriteString("</p>\n")
	b.WriteString("        <div class=\"tk-confirm-actions\">\n")
	b.WriteString("            <button type=\"button\" class=\"tk-button tk-button-danger\" data-action=\"confirm-delete\">Delete</button>\n")
	b.WriteString("            <button type=\"button\" class=\"tk-button\" data-action=\"cancel-delete\">Cancel</button>\n")
	b.WriteString("        </div>\n")
	b.WriteString("    </div>\n")
	return b.String()
}

func regionEmpty(region cards.Region) bool {
	return region.Title == "" && region.Subtitle == "" && region.Body == "" &&
		region.BodyHTML == "" && len(region.Badges) == 0 && len(region.Fields) == 0
}
