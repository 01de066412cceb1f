package models

import "testing"

func TestKind(t *testing.T) {
	cases := map[string]DocumentKind{
		"about.md":      KindMarkdown,
		"changes.txt":   KindText,
		"NOTES.MD":      KindMarkdown,
		"about(2).md":   KindMarkdown,
		"image.png":     KindUnknown,
		"noextension":   KindUnknown,
		"archive.md.gz": KindUnknown,
	}
	for name, want := range cases {
		if got := Kind(name); got != want {
			t.Errorf("Kind(%q) = %q; want %q", name, got, want)
		}
	}
}

func TestSession_Flash(t *testing.T) {
	s := &Session{}
	if s.SignedIn() {
		t.Fatal("empty session must be anonymous")
	}

	s.Flash("Welcome!")
	if got := s.PopFlash(); got != "Welcome!" {
		t.Errorf("PopFlash = %q; want %q", got, "Welcome!")
	}
	if got := s.PopFlash(); got != "" {
		t.Errorf("second PopFlash = %q; want empty", got)
	}

	s.Username = "admin"
	if !s.SignedIn() {
		t.Error("session with username must be signed in")
	}

	var nilSession *Session
	if nilSession.SignedIn() {
		t.Error("nil session must be anonymous")
	}
}
