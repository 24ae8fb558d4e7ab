package handler

import (
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/researchnotes/portal-api/web"
)

// TemplateRenderer serves the embedded HTML pages through Echo's Renderer
// interface.
type TemplateRenderer struct {
	templates *template.Template
}

func NewRenderer() (*TemplateRenderer, error) {
	templates, err := template.ParseFS(web.Templates, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &TemplateRenderer{templates: templates}, nil
}

func (r *TemplateRenderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
