package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var files embed.FS

// views renders the embedded html templates.
type views struct {
	t *template.Template
}

var funcs = template.FuncMap{
	// image trusts data URIs only, so that a stored icon cannot inject a link.
	"image": func(uri string) template.URL {
		if !strings.HasPrefix(uri, "data:") {
			return "#"
		}
		return template.URL(uri)
	},
}

func parseViews() (*views, error) {
	t, err := template.New("").Funcs(funcs).ParseFS(files, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("cannot parse web templates: %w", err)
	}
	return &views{t: t}, nil
}

func (v *views) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return v.t.ExecuteTemplate(w, name, data)
}
