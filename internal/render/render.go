// Package render provides HTML template rendering for the admin
// interface and the public site. It supports full-page and HTMX partial
// rendering, automatically detecting the request type via the HX-Request
// header.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"path"
	"strings"

	"folio/internal/markdown"
	"folio/internal/middleware"
	"folio/internal/models"
	"folio/internal/session"
)

//go:embed templates
var templateFS embed.FS

// PageData holds all data passed to templates.
type PageData struct {
	Title     string         // Page title for <title> tag
	Section   string         // Active sidebar section (e.g., "dashboard", "projects")
	Session   *session.Data  // Current user session (nil if unauthenticated)
	CSRFToken string         // CSRF token for forms and HTMX headers
	Data      map[string]any // Page-specific data
	Flashes   []Flash        // One-time notification messages
}

// Flash represents a one-time notification message displayed to the user.
type Flash struct {
	Type    string // "success", "error", "warning", "info"
	Message string
}

// Renderer handles template parsing and execution for all pages.
type Renderer struct {
	admin  map[string]*template.Template
	public map[string]*template.Template
}

// standaloneTemplates lists admin templates that render as full HTML
// pages without the base layout (they have their own <html>, <head>, etc.).
var standaloneTemplates = map[string]bool{
	"login":      true,
	"2fa_setup":  true,
	"2fa_verify": true,
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"activeClass": func(current, target string) string {
			if current == target {
				return "bg-gray-900 text-white"
			}
			return "text-gray-300 hover:bg-gray-700 hover:text-white"
		},
		// deref safely dereferences a string pointer for use in templates.
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		// markdown renders a text block's content to HTML.
		"markdown": func(source string) template.HTML {
			html, err := markdown.ToHTML(source)
			if err != nil {
				return template.HTML(template.HTMLEscapeString(source))
			}
			return template.HTML(html)
		},
		// hasField reports whether a block type carries a given field,
		// so the editor only surfaces fields valid for the current type.
		"hasField": func(t models.BlockType, field string) bool {
			for _, f := range models.FieldsFor(t) {
				if f == models.BlockField(field) {
					return true
				}
			}
			return false
		},
		"blockTypes": func() []models.BlockType { return models.BlockTypes },
	}
}

// New creates a Renderer by parsing all templates from the embedded
// filesystem. Admin page templates are paired with the admin base
// layout, public pages with the public one.
func New(devMode bool) (*Renderer, error) {
	funcs := funcMap()
	funcs["isDev"] = func() bool { return devMode }

	admin, err := parseDir(funcs, "templates/admin", "base.html", standaloneTemplates)
	if err != nil {
		return nil, err
	}
	public, err := parseDir(funcs, "templates/public", "base.html", nil)
	if err != nil {
		return nil, err
	}

	return &Renderer{admin: admin, public: public}, nil
}

func parseDir(funcs template.FuncMap, dir, layout string, standalone map[string]bool) (map[string]*template.Template, error) {
	entries, err := templateFS.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read templates %s: %w", dir, err)
	}

	templates := make(map[string]*template.Template)
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == layout || !strings.HasSuffix(name, ".html") {
			continue
		}
		tmplName := strings.TrimSuffix(name, ".html")

		var tmpl *template.Template
		var parseErr error
		if standalone[tmplName] {
			tmpl, parseErr = template.New(name).Funcs(funcs).ParseFS(
				templateFS, path.Join(dir, name),
			)
		} else {
			tmpl, parseErr = template.New(layout).Funcs(funcs).ParseFS(
				templateFS, path.Join(dir, layout), path.Join(dir, name),
			)
		}
		if parseErr != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, parseErr)
		}

		templates[tmplName] = tmpl
	}
	return templates, nil
}

// Page renders a full admin page or an HTMX partial, depending on the
// request headers. For HTMX requests, only the "content" block is sent.
// For full page loads, the entire base layout is rendered.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	tmpl, ok := rn.admin[name]
	if !ok {
		http.Error(w, fmt.Sprintf("template %q not found", name), http.StatusInternalServerError)
		return
	}

	// Inject CSRF token from the request cookie (set by CSRF middleware).
	data.CSRFToken = middleware.GetCSRFToken(r)

	// Inject session from context.
	if data.Session == nil {
		data.Session = middleware.SessionFromCtx(r.Context())
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	// HTMX request: render only the content fragment.
	if isHTMX(r) {
		if err := executeTemplate(w, tmpl, "content", data); err != nil {
			http.Error(w, "template error", http.StatusInternalServerError)
		}
		return
	}

	// Full page request: render the complete layout.
	execName := "base.html"
	// Standalone pages use their own root template (not base.html).
	if standaloneTemplates[name] {
		execName = name + ".html"
	}

	if err := executeTemplate(w, tmpl, execName, data); err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

// Public renders a public site page into a byte slice so callers can
// store the result in the page cache before writing it out.
func (rn *Renderer) Public(name string, data *PageData) ([]byte, error) {
	tmpl, ok := rn.public[name]
	if !ok {
		return nil, fmt.Errorf("public template %q not found", name)
	}

	var buf bytes.Buffer
	if err := executeTemplate(&buf, tmpl, "base.html", data); err != nil {
		return nil, fmt.Errorf("render public %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// executeTemplate wraps template execution with error handling.
func executeTemplate(w io.Writer, tmpl *template.Template, name string, data any) error {
	return tmpl.ExecuteTemplate(w, name, data)
}

// isHTMX returns true if the request was made by HTMX (has HX-Request header).
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
