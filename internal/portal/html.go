package portal

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/microcosm-cc/bluemonday"
)

// htmlToText sanitizes and flattens a posting section's rich-text HTML into
// markdown-ish plain text, preserving list/paragraph structure that a bare
// InnerText() call would collapse into one run-on line — structure the
// requirement extractor's line-based segmentation depends on.
type htmlToText struct {
	sanitizer *bluemonday.Policy
	converter *converter.Converter
}

func newHTMLToText() *htmlToText {
	return &htmlToText{
		sanitizer: bluemonday.UGCPolicy(),
		converter: converter.NewConverter(
			converter.WithPlugins(base.NewBasePlugin(), commonmark.NewCommonmarkPlugin()),
		),
	}
}

// Convert renders sanitized rawHTML to markdown, falling back to fallback
// (typically an InnerText() read of the same element) on any failure.
func (h *htmlToText) Convert(rawHTML, fallback string) string {
	if strings.TrimSpace(rawHTML) == "" {
		return fallback
	}
	clean := h.sanitizer.Sanitize(rawHTML)
	md, err := h.converter.ConvertString(clean)
	if err != nil || strings.TrimSpace(md) == "" {
		return fallback
	}
	return strings.TrimSpace(md)
}
