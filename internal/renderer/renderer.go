// Package renderer implements the Renderer collaborator contract:
// render_cover_letter(template_path, body) -> output_path, turning a
// generated cover-letter body into a rendered PDF file via an HTML
// template and a headless Playwright page.
package renderer

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/playwright-community/playwright-go"
)

//go:embed templates/cover_letter.html
var defaultCoverLetterTemplate string

// Renderer is the collaborator contract.
type Renderer interface {
	RenderCoverLetter(templatePath, body, outputPath string) (string, error)
}

// PlaywrightRenderer renders HTML through a headless Chromium page into a
// PDF file, reusing one Playwright process across calls.
type PlaywrightRenderer struct {
	pw      *playwright.Playwright
	browser playwright.Browser
}

// NewPlaywrightRenderer starts a headless Chromium instance for rendering.
func NewPlaywrightRenderer() (*PlaywrightRenderer, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("renderer: starting playwright: %w", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("renderer: launching chromium: %w", err)
	}
	return &PlaywrightRenderer{pw: pw, browser: browser}, nil
}

type coverLetterDoc struct {
	Body       string
	Paragraphs []string
}

// RenderCoverLetter fills templatePath with body (split into paragraphs
// on blank lines) and renders the result to a PDF at outputPath. An empty
// templatePath uses the built-in default template.
func (r *PlaywrightRenderer) RenderCoverLetter(templatePath, body, outputPath string) (string, error) {
	funcMap := template.FuncMap{"join": strings.Join}
	var tmpl *template.Template
	var err error
	if templatePath == "" {
		tmpl, err = template.New("cover_letter.html").Funcs(funcMap).Parse(defaultCoverLetterTemplate)
	} else {
		tmpl, err = template.New(filepath.Base(templatePath)).Funcs(funcMap).ParseFiles(templatePath)
	}
	if err != nil {
		return "", fmt.Errorf("renderer: parsing template: %w", err)
	}

	doc := coverLetterDoc{
		Body:       body,
		Paragraphs: splitParagraphs(body),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("renderer: executing template: %w", err)
	}

	page, err := r.browser.NewPage()
	if err != nil {
		return "", fmt.Errorf("renderer: opening page: %w", err)
	}
	defer page.Close()

	if err := page.SetContent(buf.String(), playwright.PageSetContentOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
	}); err != nil {
		return "", fmt.Errorf("renderer: setting page content: %w", err)
	}

	pdfBytes, err := page.PDF(playwright.PagePdfOptions{
		Format:          playwright.String("Letter"),
		PrintBackground: playwright.Bool(true),
		Margin: &playwright.Margin{
			Top:    playwright.String("0.75in"),
			Bottom: playwright.String("0.75in"),
			Left:   playwright.String("0.75in"),
			Right:  playwright.String("0.75in"),
		},
	})
	if err != nil {
		return "", fmt.Errorf("renderer: generating pdf: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return "", fmt.Errorf("renderer: creating output dir: %w", err)
	}
	if err := os.WriteFile(outputPath, pdfBytes, 0o644); err != nil {
		return "", fmt.Errorf("renderer: writing pdf: %w", err)
	}
	return outputPath, nil
}

func splitParagraphs(body string) []string {
	var out []string
	for _, p := range strings.Split(body, "\n\n") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Close stops the underlying browser and Playwright process.
func (r *PlaywrightRenderer) Close() {
	if r.browser != nil {
		_ = r.browser.Close()
	}
	if r.pw != nil {
		_ = r.pw.Stop()
	}
}
