// Package views owns the embedded page templates and the view models they
// render. Templates are parsed once at startup by LoadTemplates.
package views

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
)

//go:embed templates
var viewsFS embed.FS

// Template names defined by the embedded files.
const (
	TemplateIndex        = "index"
	TemplateWeather      = "weather"
	TemplateBeaches      = "beaches"
	TemplateCrews        = "crews"
	TemplateStats        = "stats"
	TemplateToast        = "toast"
	TemplateMap          = "map"
	TemplatePopupBeach   = "popup-beach"
	TemplatePopupCleanup = "popup-cleanup"
)

var errNotLoaded = errors.New("templates not loaded: call views.LoadTemplates during startup")

var pageTmpl *template.Template

// loadTemplatesFromFS parses the page and partial templates found in dir.
// Tests use it to simulate broken or incomplete template sets.
func loadTemplatesFromFS(fsys fs.FS, dir string) error {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return err
	}
	t, err := template.ParseFS(sub, "*.html", "partials/*.html")
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}
	pageTmpl = t
	return nil
}

// LoadTemplates parses the embedded templates. If it fails the server must not
// start.
func LoadTemplates() error {
	return loadTemplatesFromFS(viewsFS, "templates")
}

// Has reports whether a template block is defined. A missing block is how a
// page without a given container is expressed; renderers check it and skip.
func Has(name string) bool {
	return pageTmpl != nil && pageTmpl.Lookup(name) != nil
}

// Render executes the named block into w.
func Render(w io.Writer, name string, data any) error {
	if pageTmpl == nil {
		return errNotLoaded
	}
	if pageTmpl.Lookup(name) == nil {
		return fmt.Errorf("template %q is not defined", name)
	}
	return pageTmpl.ExecuteTemplate(w, name, data)
}

// Renderer is the subset of the template set other packages depend on.
type Renderer interface {
	Has(name string) bool
	Render(w io.Writer, name string, data any) error
}

type loadedTemplates struct{}

func (loadedTemplates) Has(name string) bool { return Has(name) }

func (loadedTemplates) Render(w io.Writer, name string, data any) error {
	return Render(w, name, data)
}

// Templates returns a Renderer backed by the templates loaded at startup.
func Templates() Renderer {
	return loadedTemplates{}
}

func RenderIndex(w io.Writer, data *IndexData) error {
	return Render(w, TemplateIndex, data)
}

// RenderWeather executes only the weather panel. Used for htmx refreshes.
func RenderWeather(w io.Writer, data WeatherData) error {
	return Render(w, TemplateWeather, data)
}

func RenderBeaches(w io.Writer, data BeachesData) error {
	return Render(w, TemplateBeaches, data)
}

func RenderCrews(w io.Writer, data CrewsData) error {
	return Render(w, TemplateCrews, data)
}

func RenderStats(w io.Writer, data StatsData) error {
	return Render(w, TemplateStats, data)
}

func RenderToast(w io.Writer, data ToastData) error {
	return Render(w, TemplateToast, data)
}
