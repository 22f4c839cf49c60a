package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed *.md
var templates embed.FS

// funcs are available in every template.
var funcs = template.FuncMap{
	// cell escapes text so it can sit inside a markdown table cell.
	"cell": func(s string) string {
		s = strings.ReplaceAll(s, "|", `\|`)
		return strings.ReplaceAll(s, "\n", " ")
	},
}

// RenderBook renders the asset list with its total as markdown.
func RenderBook(b *Book) string {
	partials := map[string]string{
		"book_total":  "book_total.md",
		"book_assets": "book_assets.md",
	}
	return renderTemplate("book", "book.md", partials, b)
}

// RenderTotal renders only the total banner.
func RenderTotal(b *Book) string {
	return renderTemplate("book_total", "book_total.md", nil, b)
}

// RenderIcons renders the table of preset icons.
func RenderIcons(icons []Icon) string {
	return renderTemplate("icons", "icons.md", nil, icons)
}

// RenderCard renders the caption printed after a summary card was exported.
func RenderCard(c *Card) string {
	return renderTemplate("card", "card.md", nil, c)
}

func newTemplate(name string) *template.Template { return template.New(name).Funcs(funcs) }

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := newTemplate(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		// An empty file name is a valid case, resulting in an empty template.
		if file != "" {
			content, err = fs.ReadFile(templates, file)
			if err != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, err)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
