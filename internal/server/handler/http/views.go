package http

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/yuin/goldmark"
	"go.uber.org/zap"

	"github.com/atinyakov/docstore/internal/middleware"
)

//go:embed templates/*.html
var templateFS embed.FS

// pages are rendered inside templates/layout.html.
var pages = []string{"index", "new", "edit", "document", "signin", "signup"}

// viewData is the data passed to every page template.
type viewData struct {
	// Flash is the session message, consumed by this render.
	Flash string
	// Username is the signed-in user, empty for anonymous clients.
	Username string

	Files        []string
	Name         string
	Content      string
	HTML         template.HTML
	FormUsername string
}

// Views renders the HTML pages and markdown documents.
type Views struct {
	pages    map[string]*template.Template
	markdown goldmark.Markdown
	log      *zap.Logger
}

// NewViews parses the embedded templates.
func NewViews(log *zap.Logger) (*Views, error) {
	v := &Views{
		pages:    make(map[string]*template.Template, len(pages)),
		markdown: goldmark.New(),
		log:      log,
	}
	for _, name := range pages {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		v.pages[name] = t
	}
	return v, nil
}

// Render writes page with status. The session's flash message is shown
// and cleared.
func (v *Views) Render(w http.ResponseWriter, r *http.Request, status int, page string, data viewData) {
	t, ok := v.pages[page]
	if !ok {
		v.log.Error("unknown page", zap.String("page", page))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	sess := middleware.GetSession(r.Context())
	data.Flash = sess.PopFlash()
	data.Username = sess.Username

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		v.log.Error("failed to render page", zap.String("page", page), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// Markdown converts markdown source to HTML.
func (v *Views) Markdown(src []byte) (template.HTML, error) {
	var buf bytes.Buffer
	if err := v.markdown.Convert(src, &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}
