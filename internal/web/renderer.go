package web

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"portfolio.dev/internal/models"
)

// ProjectsOnHome is how many projects the home page lists before linking to /projects
const ProjectsOnHome = 6

// pages are rendered inside layout.html; each defines "title" and "content"
var pages = []string{"index", "projects"}

// PageData is passed to every full page template
type PageData struct {
	Theme         string
	Site          *models.Site
	Projects      []models.Project
	Categories    []string
	Category      string
	TotalProjects int
	MoreProjects  bool
	Backdrop      Backdrop
	Contact       ContactResult
	Year          int
}

// ContactResult drives the contact form fragment
type ContactResult struct {
	Submitted bool
	Success   bool
	Message   string
	Fields    map[string]string
	Form      models.ContactFormData
}

// Renderer executes the embedded templates
type Renderer struct {
	pages     map[string]*template.Template
	fragments *template.Template
}

var funcs = template.FuncMap{
	"join": strings.Join,
	"year": func() int { return time.Now().Year() },
	"pct": func(level int) string {
		if level < 0 {
			level = 0
		}
		if level > 100 {
			level = 100
		}
		return fmt.Sprintf("%d%%", level)
	},
}

// NewRenderer parses the embedded templates. Each page gets its own clone of
// the shared layout so their "content" blocks do not collide.
func NewRenderer() (*Renderer, error) {
	base, err := template.New("base").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/_*.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	r := &Renderer{pages: make(map[string]*template.Template), fragments: base}
	for _, name := range pages {
		clone, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := clone.ParseFS(templateFS, "templates/"+name+".html"); err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		r.pages[name] = clone
	}
	return r, nil
}

// Page renders a full page. Output is buffered so a template error never
// leaves a half written response.
func (r *Renderer) Page(w io.Writer, name string, data PageData) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	return execute(w, t, "layout", data)
}

// Fragment renders a named partial, for form posts that swap part of the page
func (r *Renderer) Fragment(w io.Writer, name string, data any) error {
	return execute(w, r.fragments, name, data)
}

func execute(w io.Writer, t *template.Template, name string, data any) error {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// Static serves the embedded css/js under the router's /static/ prefix
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
