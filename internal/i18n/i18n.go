// Package i18n selects between the English and Urdu forms of user-facing strings.
package i18n

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Language is a supported interface language.
type Language string

const (
	English Language = "en"
	Urdu    Language = "ur"
)

// StateFile is the name of the file holding the persisted language choice.
const StateFile = "saharah-language"

// Parse returns the language named by s. Anything other than "ur" is English, as with a
// missing or corrupt saved choice; ok reports whether s named a language exactly.
func Parse(s string) (lang Language, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(Urdu):
		return Urdu, true
	case string(English):
		return English, true
	}
	return English, false
}

// T returns en or ur for lang.
func T(lang Language, en, ur string) string {
	if lang == Urdu {
		return ur
	}
	return en
}

// Direction is the text direction of lang: "rtl" for Urdu, "ltr" otherwise.
func Direction(lang Language) string {
	if lang == Urdu {
		return "rtl"
	}
	return "ltr"
}

// Text is a string in both languages.
type Text struct {
	En string `json:"en"`
	Ur string `json:"ur"`
}

// In returns the form of t for lang.
func (t Text) In(lang Language) string {
	return T(lang, t.En, t.Ur)
}

// Selector holds the process-wide current language. When it has a state
// directory the choice is read from and written to StateFile inside it.
type Selector struct {
	mu   sync.RWMutex
	lang Language
	path string
}

// NewSelector returns a selector whose initial language is read from stateDir.
// An empty stateDir keeps the choice in memory only.
func NewSelector(stateDir string) *Selector {
	s := &Selector{lang: English}
	if stateDir == "" {
		return s
	}
	s.path = filepath.Join(stateDir, StateFile)
	if data, err := os.ReadFile(s.path); err == nil {
		s.lang, _ = Parse(string(data))
	}
	return s
}

// Language returns the current language.
func (s *Selector) Language() Language {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lang
}

// Set switches to lang and persists it.
func (s *Selector) Set(lang Language) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lang = lang
	return s.persist()
}

// Toggle flips between English and Urdu and returns the new language.
func (s *Selector) Toggle() (Language, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lang == English {
		s.lang = Urdu
	} else {
		s.lang = English
	}
	return s.lang, s.persist()
}

func (s *Selector) persist() error {
	if s.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(s.lang), 0644); err != nil {
		return fmt.Errorf("save language: %w", err)
	}
	return nil
}
