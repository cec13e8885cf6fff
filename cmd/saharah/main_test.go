package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/saharah/saharah/internal/chat"
	"github.com/saharah/saharah/internal/config"
	"github.com/saharah/saharah/internal/models"
)

func TestArgsReorder(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "flags after query are moved first",
			args:     []string{"harassment at work", "-format", "json"},
			expected: []string{"-format", "json", "harassment at work"},
		},
		{
			name:     "flags first returns unchanged",
			args:     []string{"-format", "json", "harassment"},
			expected: []string{"-format", "json", "harassment"},
		},
		{
			name:     "query only returns unchanged",
			args:     []string{"inheritance"},
			expected: []string{"inheritance"},
		},
		{
			name:     "empty args returns unchanged",
			args:     []string{},
			expected: []string{},
		},
		{
			name:     "multiple positionals then flags",
			args:     []string{"one", "two", "-limit", "5"},
			expected: []string{"-limit", "5", "one", "two"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := argsReorder(tt.args)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("argsReorder() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestJoinArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"single word", []string{"khula"}, "khula"},
		{"multiple words", []string{"dower", "rights"}, "dower rights"},
		{"quoted phrase", []string{"dower rights"}, "dower rights"},
		{"surrounding space trimmed", []string{" ", "dower", " "}, "dower"},
		{"empty", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := joinArgs(tt.args); got != tt.expected {
				t.Errorf("joinArgs() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestNewResponder(t *testing.T) {
	logger := zap.NewNop()

	r := newResponder(&config.ChatConfig{BaseURL: "https://assistant.example", Timeout: time.Second}, logger)
	remote, ok := r.(*chat.RemoteClient)
	if !ok {
		t.Fatalf("expected remote client, got %T", r)
	}
	if remote.BaseURL() != "https://assistant.example" {
		t.Errorf("BaseURL() = %q", remote.BaseURL())
	}

	r = newResponder(&config.ChatConfig{ReplyDelay: -1}, logger)
	if _, ok := r.(*chat.ScriptedResponder); !ok {
		t.Fatalf("expected scripted responder, got %T", r)
	}
}

// writeFixture creates a data source with the penal code dataset and a config file
// pointing at it, and returns the config path.
func writeFixture(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	legal := filepath.Join(root, "data", "legal")
	if err := os.MkdirAll(legal, 0755); err != nil {
		t.Fatal(err)
	}
	sections := []models.ReferenceSection{
		{SourceName: "Pakistan Penal Code", SourceType: "Act", Reference: "Section 354", Text: "Assault or criminal force to woman with intent to outrage her modesty", ThemeTags: []string{"assault"}},
		{SourceName: "Pakistan Penal Code", SourceType: "Act", Reference: "Section 509", Text: "Word, gesture or act intended to insult the modesty of a woman", ThemeTags: []string{"harassment"}},
	}
	b, err := json.Marshal(sections)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(legal, "dataset_penal_code.json"), b, 0644); err != nil {
		t.Fatal(err)
	}

	cfgPath := filepath.Join(root, "config.yaml")
	cfgYAML := "data:\n  source: " + root + "\n  watch: false\nstate:\n  dir: " + filepath.Join(root, "state") + "\n"
	if err := os.WriteFile(cfgPath, []byte(cfgYAML), 0644); err != nil {
		t.Fatal(err)
	}
	return cfgPath
}

func TestLoadConfig_ExplicitPath(t *testing.T) {
	cfgPath := writeFixture(t)
	cfg, loaded, err := loadConfig(cfgPath)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if loaded != cfgPath {
		t.Errorf("loaded path = %q, want %q", loaded, cfgPath)
	}
	if cfg.Data.WatchOrDefault() {
		t.Error("watch should be disabled by the config file")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("default port not applied: %d", cfg.Server.Port)
	}
}

func TestLoadConfig_DefaultPathMissing(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, loaded, err := loadConfig(defaultConfigPath)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if loaded != "" {
		t.Errorf("expected built-in defaults, loaded %q", loaded)
	}
	if cfg.Storage.DatabasePath != config.MemoryDatabase {
		t.Errorf("DatabasePath = %q", cfg.Storage.DatabasePath)
	}
}

func TestLoadConfig_WorkingDirectoryWins(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server:\n  port: 9191\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, loaded, err := loadConfig(defaultConfigPath)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if filepath.Base(loaded) != "config.yaml" {
		t.Errorf("loaded = %q", loaded)
	}
	if cfg.Server.Port != 9191 {
		t.Errorf("Port = %d, want 9191", cfg.Server.Port)
	}
}

func TestRunLaws(t *testing.T) {
	cfgPath := writeFixture(t)

	var out bytes.Buffer
	if err := runLaws([]string{"--config", cfgPath, "--format", "json"}, &out); err != nil {
		t.Fatalf("runLaws: %v", err)
	}
	var summaries []models.CollectionSummary
	if err := json.Unmarshal(out.Bytes(), &summaries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(summaries) != 1 || summaries[0].ID != "pakistan-penal-code" {
		t.Fatalf("unexpected summaries: %+v", summaries)
	}

	out.Reset()
	if err := runLaws([]string{"--config", cfgPath, "--category", "Islamic Laws"}, &out); err != nil {
		t.Fatalf("runLaws: %v", err)
	}
	if !strings.Contains(out.String(), "0 collections") {
		t.Errorf("expected no Islamic collections, got %q", out.String())
	}
}

func TestRunLaw(t *testing.T) {
	cfgPath := writeFixture(t)

	var out bytes.Buffer
	if err := runLaw([]string{"pakistan-penal-code", "--config", cfgPath}, &out); err != nil {
		t.Fatalf("runLaw: %v", err)
	}
	if !strings.Contains(out.String(), "Section 354") {
		t.Errorf("missing section in output: %q", out.String())
	}

	if err := runLaw([]string{"--config", cfgPath, "nope"}, &out); err == nil {
		t.Error("expected error for unknown law")
	}
	if err := runLaw([]string{"--config", cfgPath}, &out); err == nil {
		t.Error("expected usage error without id")
	}
}

func TestRunCategories(t *testing.T) {
	cfgPath := writeFixture(t)

	var out bytes.Buffer
	if err := runCategories([]string{"--config", cfgPath, "--format", "json"}, &out); err != nil {
		t.Fatalf("runCategories: %v", err)
	}
	var menu []string
	if err := json.Unmarshal(out.Bytes(), &menu); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []string{models.AllCategories, string(models.LegalLaws), string(models.IslamicLaws), "Criminal Law"}
	if !reflect.DeepEqual(menu, want) {
		t.Errorf("menu = %v, want %v", menu, want)
	}

	if err := runCategories([]string{"--config", cfgPath, "--main", "Other"}, &out); err == nil {
		t.Error("expected error for unknown main category")
	}
}

func TestRunSearch(t *testing.T) {
	cfgPath := writeFixture(t)

	var out bytes.Buffer
	if err := runSearch([]string{"modesty", "--config", cfgPath, "--format", "json"}, &out); err != nil {
		t.Fatalf("runSearch: %v", err)
	}
	var resp models.SearchResponse
	if err := json.Unmarshal(out.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Results) == 0 {
		t.Fatal("expected results")
	}

	if err := runSearch([]string{"--config", cfgPath}, &out); err == nil {
		t.Error("expected usage error for empty query")
	}
}

func TestRunLawyers(t *testing.T) {
	cfgPath := writeFixture(t)

	var out bytes.Buffer
	if err := runLawyers([]string{"--config", cfgPath, "--format", "json", "--city", "lahore"}, &out); err != nil {
		t.Fatalf("runLawyers: %v", err)
	}
	var lawyers []models.Lawyer
	if err := json.Unmarshal(out.Bytes(), &lawyers); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(lawyers) == 0 {
		t.Fatal("expected lawyers in lahore")
	}
	for _, l := range lawyers {
		if l.City != "lahore" {
			t.Errorf("lawyer %s city = %q", l.ID, l.City)
		}
	}
}

func TestRunDiag_NoURL(t *testing.T) {
	cfgPath := writeFixture(t)
	var out bytes.Buffer
	if err := runDiag([]string{"--config", cfgPath}, &out); err == nil {
		t.Error("expected error without an assistant URL")
	}
}
