package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/atinyakov/docstore/internal/middleware"
	"github.com/atinyakov/docstore/internal/models"
)

// MsgInvalidDocumentName is shown when a new document name is rejected.
const MsgInvalidDocumentName = "Your document must have a name and be a .md or .txt document"

// DocumentService defines the document operations required by the handlers.
type DocumentService interface {
	List(ctx context.Context) ([]string, error)
	Read(ctx context.Context, name string) (models.Document, error)
	Create(ctx context.Context, name string) error
	Write(ctx context.Context, name string, content []byte) error
	Delete(ctx context.Context, name string) error
	Duplicate(ctx context.Context, name string) (string, error)
}

// DocumentHandler serves the document index, views and mutations.
type DocumentHandler struct {
	Documents DocumentService
	Views     *Views
	Log       *zap.Logger
}

// fileParam returns the {file} route parameter as a plain name.
func fileParam(r *http.Request) string {
	name := chi.URLParam(r, "file")
	if r.URL.RawPath != "" {
		if unescaped, err := url.PathUnescape(name); err == nil {
			return unescaped
		}
	}
	return name
}

// Index lists all documents.
func (h *DocumentHandler) Index(w http.ResponseWriter, r *http.Request) {
	files, err := h.Documents.List(r.Context())
	if err != nil {
		h.internalError(w, "list documents", err)
		return
	}
	h.Views.Render(w, r, http.StatusOK, "index", viewData{Files: files})
}

// Show renders a markdown document as HTML and serves a text document as-is.
// Anything else redirects to the index.
func (h *DocumentHandler) Show(w http.ResponseWriter, r *http.Request) {
	name := fileParam(r)
	if models.Kind(name) == models.KindUnknown {
		h.missing(w, r, name)
		return
	}

	doc, err := h.Documents.Read(r.Context(), name)
	if err != nil {
		h.fail(w, r, name, "read document", err)
		return
	}

	switch doc.Kind() {
	case models.KindText:
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(doc.Content)
	case models.KindMarkdown:
		html, err := h.Views.Markdown(doc.Content)
		if err != nil {
			h.internalError(w, "render markdown", err)
			return
		}
		h.Views.Render(w, r, http.StatusOK, "document", viewData{Name: name, HTML: html})
	}
}

// NewForm shows the new document form.
func (h *DocumentHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.Views.Render(w, r, http.StatusOK, "new", viewData{})
}

// Create makes a new empty document from the "new_doc" form field.
func (h *DocumentHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	name := r.FormValue("new_doc")

	err := h.Documents.Create(r.Context(), name)
	switch {
	case err == nil:
		sess.Flash(fmt.Sprintf("%s was created", name))
		http.Redirect(w, r, "/", http.StatusFound)
	case errors.Is(err, models.ErrInvalidName):
		sess.Flash(MsgInvalidDocumentName)
		h.Views.Render(w, r, http.StatusUnprocessableEntity, "new", viewData{Name: name})
	case errors.Is(err, models.ErrAlreadyExists):
		sess.Flash(fmt.Sprintf("%s already exists.", name))
		h.Views.Render(w, r, http.StatusUnprocessableEntity, "new", viewData{Name: name})
	default:
		h.internalError(w, "create document", err)
	}
}

// EditForm shows the document content in an editable form.
func (h *DocumentHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	name := fileParam(r)
	doc, err := h.Documents.Read(r.Context(), name)
	if err != nil {
		h.fail(w, r, name, "read document", err)
		return
	}
	h.Views.Render(w, r, http.StatusOK, "edit", viewData{Name: name, Content: string(doc.Content)})
}

// Update overwrites the document with the "content" form field.
func (h *DocumentHandler) Update(w http.ResponseWriter, r *http.Request) {
	name := fileParam(r)
	content := r.FormValue("content")

	if err := h.Documents.Write(r.Context(), name, []byte(content)); err != nil {
		h.fail(w, r, name, "write document", err)
		return
	}
	middleware.GetSession(r.Context()).Flash(fmt.Sprintf("%s has been updated.", name))
	http.Redirect(w, r, "/", http.StatusFound)
}

// Destroy deletes the document.
func (h *DocumentHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	name := fileParam(r)
	if err := h.Documents.Delete(r.Context(), name); err != nil {
		h.fail(w, r, name, "delete document", err)
		return
	}
	middleware.GetSession(r.Context()).Flash(fmt.Sprintf("%s was deleted", name))
	http.Redirect(w, r, "/", http.StatusFound)
}

// Duplicate copies the document under the next free numbered name.
func (h *DocumentHandler) Duplicate(w http.ResponseWriter, r *http.Request) {
	name := fileParam(r)
	copyName, err := h.Documents.Duplicate(r.Context(), name)
	if err != nil {
		h.fail(w, r, name, "duplicate document", err)
		return
	}
	middleware.GetSession(r.Context()).Flash(fmt.Sprintf("%s was copied to %s", name, copyName))
	http.Redirect(w, r, "/", http.StatusFound)
}

// fail redirects for missing documents and answers 500 otherwise.
func (h *DocumentHandler) fail(w http.ResponseWriter, r *http.Request, name, op string, err error) {
	if errors.Is(err, models.ErrNotFound) {
		h.missing(w, r, name)
		return
	}
	h.internalError(w, op, err)
}

func (h *DocumentHandler) missing(w http.ResponseWriter, r *http.Request, name string) {
	middleware.GetSession(r.Context()).Flash(fmt.Sprintf("%s does not exist.", name))
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *DocumentHandler) internalError(w http.ResponseWriter, op string, err error) {
	h.Log.Error("failed to "+op, zap.Error(err))
	http.Error(w, "internal error", http.StatusInternalServerError)
}
