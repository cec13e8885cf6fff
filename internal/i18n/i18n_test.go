package i18n

import (
	"os"
	"path/filepath"
	"testing"
)

func TestT(t *testing.T) {
	if got := T(English, "Laws", "قوانین"); got != "Laws" {
		t.Errorf("en: got %q", got)
	}
	if got := T(Urdu, "Laws", "قوانین"); got != "قوانین" {
		t.Errorf("ur: got %q", got)
	}
	if got := (Text{En: "Lahore", Ur: "لاہور"}).In(Urdu); got != "لاہور" {
		t.Errorf("Text.In: got %q", got)
	}
}

func TestParseAndDirection(t *testing.T) {
	tests := []struct {
		in     string
		want   Language
		wantOK bool
		dir    string
	}{
		{"ur", Urdu, true, "rtl"},
		{" UR ", Urdu, true, "rtl"},
		{"en", English, true, "ltr"},
		{"fr", English, false, "ltr"},
		{"", English, false, "ltr"},
	}
	for _, tt := range tests {
		got, ok := Parse(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Parse(%q) = %q, %v", tt.in, got, ok)
		}
		if d := Direction(got); d != tt.dir {
			t.Errorf("Direction(%q) = %q, want %q", got, d, tt.dir)
		}
	}
}

func TestSelector_PersistsToggle(t *testing.T) {
	dir := t.TempDir()
	s := NewSelector(dir)
	if s.Language() != English {
		t.Fatalf("default language = %q", s.Language())
	}
	lang, err := s.Toggle()
	if err != nil {
		t.Fatal(err)
	}
	if lang != Urdu {
		t.Errorf("toggle = %q, want ur", lang)
	}
	data, err := os.ReadFile(filepath.Join(dir, StateFile))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "ur" {
		t.Errorf("saved %q", data)
	}

	if got := NewSelector(dir).Language(); got != Urdu {
		t.Errorf("reloaded language = %q, want ur", got)
	}
	if err := s.Set(English); err != nil {
		t.Fatal(err)
	}
	if got := NewSelector(dir).Language(); got != English {
		t.Errorf("after Set = %q", got)
	}
}

func TestSelector_CorruptStateIsEnglish(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, StateFile), []byte("klingon"), 0644); err != nil {
		t.Fatal(err)
	}
	if got := NewSelector(dir).Language(); got != English {
		t.Errorf("got %q", got)
	}
}

func TestSelector_MemoryOnly(t *testing.T) {
	s := NewSelector("")
	if _, err := s.Toggle(); err != nil {
		t.Fatal(err)
	}
	if s.Language() != Urdu {
		t.Errorf("got %q", s.Language())
	}
}
