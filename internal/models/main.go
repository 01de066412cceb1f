// Package models defines the core data structures for users, documents and sessions.
package models

import (
	"path/filepath"
	"strings"
)

// User represents an account able to sign in and mutate documents.
type User struct {
	// Username is the unique login name.
	Username string
	// PasswordHash is the salted bcrypt hash of the user's password.
	PasswordHash string
}

// Document is a single named file under the managed directory.
// Its name, extension included, is its only identity.
type Document struct {
	Name    string
	Content []byte
}

// Kind returns the content kind of the document.
func (d Document) Kind() DocumentKind {
	return Kind(d.Name)
}

// DocumentKind identifies how a document's content is rendered.
type DocumentKind string

const (
	// KindMarkdown is a .md document rendered to HTML.
	KindMarkdown DocumentKind = "markdown"
	// KindText is a .txt document served as plain text.
	KindText DocumentKind = "text"
	// KindUnknown is any other extension; such documents are never served.
	KindUnknown DocumentKind = ""
)

// Kind classifies a document name by its extension.
func Kind(name string) DocumentKind {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md":
		return KindMarkdown
	case ".txt":
		return KindText
	default:
		return KindUnknown
	}
}

// Session is the per-client state carried between requests.
type Session struct {
	// ID is the opaque identifier stored in the client cookie.
	ID string `json:"-"`
	// Username is set once the client signs in; empty means anonymous.
	Username string `json:"username,omitempty"`
	// Message is a one-shot flash shown on the next rendered page.
	Message string `json:"message,omitempty"`
}

// SignedIn reports whether the session carries an authenticated user.
func (s *Session) SignedIn() bool {
	return s != nil && s.Username != ""
}

// Flash stores msg to be shown on the next rendered page.
func (s *Session) Flash(msg string) {
	s.Message = msg
}

// PopFlash returns the pending flash message and clears it.
func (s *Session) PopFlash() string {
	msg := s.Message
	s.Message = ""
	return msg
}
