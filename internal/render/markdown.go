package render

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"

	"lesson-deck/internal/models"
)

// Renderer turns authored workspace blocks into exportable HTML. Text blocks
// are markdown; image and module blocks pass through.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer creates a block renderer. Authored content is trusted local
// input, so raw HTML inside markdown is allowed through.
func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
		),
		goldmark.WithRendererOptions(
			goldmarkhtml.WithUnsafe(),
		),
	)
	return &Renderer{md: md}
}

// RenderState renders every block of one slide's authored state in order
func (r *Renderer) RenderState(state models.SlideState) (string, error) {
	var out strings.Builder
	for _, block := range state.Blocks {
		rendered, err := r.renderBlock(block)
		if err != nil {
			return "", err
		}
		out.WriteString(rendered)
	}
	return out.String(), nil
}

func (r *Renderer) renderBlock(block models.Block) (string, error) {
	var body string
	switch block.Type {
	case "text":
		var buf bytes.Buffer
		if err := r.md.Convert([]byte(block.Content), &buf); err != nil {
			return "", fmt.Errorf("failed to render text block %s: %w", block.ID, err)
		}
		body = buf.String()
	case "image":
		body = fmt.Sprintf(`<figure><img src="%s" alt="%s"></figure>`,
			html.EscapeString(block.Content), html.EscapeString(block.Alt))
	case "module":
		// Module blocks already carry ready markup from the template layer.
		body = block.Content
	default:
		body = "<p>" + html.EscapeString(block.Content) + "</p>"
	}

	return fmt.Sprintf("<div class=\"block block-%s\" data-block-id=%q>%s</div>\n",
		block.Type, block.ID, body), nil
}
