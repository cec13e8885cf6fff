package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// clearEnv blanks the override variables for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvDataSource, EnvChatBaseURL, EnvPort, EnvDebug} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
server:
  host: "127.0.0.1"
  port: 9000
data:
  source: "https://saharah.example.org/"
  cache: false
  fetch_timeout: 5s
  load_timeout: 45s
chat:
  base_url: "https://fb410d356bb4.ngrok-free.app"
  reply_delay: 250ms
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9000 {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Data.Source != "https://saharah.example.org/" {
		t.Errorf("url source should not be expanded: %s", cfg.Data.Source)
	}
	if !cfg.Data.IsRemote() {
		t.Error("source should be remote")
	}
	if cfg.Data.CacheOrDefault() {
		t.Error("cache should be false when set false")
	}
	if !cfg.Data.WatchOrDefault() {
		t.Error("watch should default to true")
	}
	if cfg.Data.FetchTimeout != 5*time.Second {
		t.Errorf("fetch_timeout = %v", cfg.Data.FetchTimeout)
	}
	if cfg.Data.LoadTimeout != 45*time.Second {
		t.Errorf("load_timeout = %v", cfg.Data.LoadTimeout)
	}
	if cfg.Chat.ReplyDelay != 250*time.Millisecond || cfg.Chat.Timeout != 30*time.Second {
		t.Errorf("chat = %+v", cfg.Chat)
	}
	if cfg.Storage.DatabasePath != MemoryDatabase {
		t.Errorf("database_path = %s, want in-memory", cfg.Storage.DatabasePath)
	}
	if cfg.Storage.BleveIndexPath != "" {
		t.Errorf("bleve_index_path = %s, want empty", cfg.Storage.BleveIndexPath)
	}
	if cfg.Debug {
		t.Error("debug should default to false when unset")
	}
}

func TestLoad_parseError(t *testing.T) {
	clearEnv(t)
	if _, err := Load(writeConfig(t, "server: [")); err == nil {
		t.Error("expected parse error")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected read error")
	}
}

func TestLoad_expandPathDotSlashRelativeToConfigDir(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
data:
  source: "./public"
storage:
  database_path: "./state/session.db"
  bleve_index_path: "./state/sections.bleve"
state:
  dir: "./state"
`)
	dir := filepath.Dir(path)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct{ name, got, want string }{
		{"source", cfg.Data.Source, filepath.Join(dir, "public")},
		{"database_path", cfg.Storage.DatabasePath, filepath.Join(dir, "state", "session.db")},
		{"bleve_index_path", cfg.Storage.BleveIndexPath, filepath.Join(dir, "state", "sections.bleve")},
		{"state dir", cfg.State.Dir, filepath.Join(dir, "state")},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %s, want %s", tt.name, tt.got, tt.want)
		}
	}
	if cfg.Data.IsRemote() {
		t.Error("directory source is not remote")
	}
}

func TestApplyEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvDataSource, "http://localhost:5173")
	t.Setenv(EnvChatBaseURL, "http://localhost:8000")
	t.Setenv(EnvPort, "9999")
	t.Setenv(EnvDebug, "true")

	cfg, err := Load(writeConfig(t, "server:\n  port: 9000\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Data.Source != "http://localhost:5173" || cfg.Chat.BaseURL != "http://localhost:8000" {
		t.Errorf("env overrides not applied: %+v %+v", cfg.Data, cfg.Chat)
	}
	if cfg.Server.Port != 9999 || !cfg.Debug {
		t.Errorf("port = %d, debug = %v", cfg.Server.Port, cfg.Debug)
	}
}

func TestApplyEnv_invalid(t *testing.T) {
	tests := []struct{ key, value string }{
		{EnvPort, "eighty"},
		{EnvPort, "70000"},
		{EnvDebug, "maybe"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			if err := ApplyEnv(&Config{}); err == nil {
				t.Errorf("expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	if err := LoadEnvFile(filepath.Join(dir, ".env")); err != nil {
		t.Errorf("missing .env should not be an error: %v", err)
	}

	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("SAHARAH_TEST_ONLY=from-dotenv\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("SAHARAH_TEST_ONLY") })
	if err := LoadEnvFile(envPath); err != nil {
		t.Fatal(err)
	}
	if got := os.Getenv("SAHARAH_TEST_ONLY"); got != "from-dotenv" {
		t.Errorf("got %q", got)
	}
}

func TestDefault(t *testing.T) {
	clearEnv(t)
	cfg, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	wd, _ := os.Getwd()
	if cfg.Data.Source != filepath.Join(wd, "public") {
		t.Errorf("source = %s", cfg.Data.Source)
	}
	if cfg.Storage.DatabasePath != MemoryDatabase {
		t.Errorf("database_path = %s", cfg.Storage.DatabasePath)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	if cfg.Server.Host != "localhost" {
		t.Errorf("default host: got %s", cfg.Server.Host)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("default port: got %d", cfg.Server.Port)
	}
	if cfg.Data.Source != "./public" {
		t.Errorf("default source: got %s", cfg.Data.Source)
	}
	if !cfg.Data.CacheOrDefault() || !cfg.Data.WatchOrDefault() {
		t.Error("cache and watch should default to true")
	}
	if cfg.Data.FetchTimeout != 0 {
		t.Errorf("fetch timeout should default to none, got %v", cfg.Data.FetchTimeout)
	}
	if cfg.Chat.ReplyDelay != 1500*time.Millisecond {
		t.Errorf("default reply delay: got %v", cfg.Chat.ReplyDelay)
	}
	if cfg.State.Dir != ".saharah" {
		t.Errorf("default state dir: got %s", cfg.State.Dir)
	}
}

func TestDataConfig_OrDefault(t *testing.T) {
	f := false
	d := &DataConfig{}
	if !d.CacheOrDefault() || !d.WatchOrDefault() {
		t.Error("nil should mean true")
	}
	d = &DataConfig{Cache: &f, Watch: &f}
	if d.CacheOrDefault() || d.WatchOrDefault() {
		t.Error("false should stay false")
	}
}

func TestSave(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "saved.yaml")
	cfg := &Config{
		Server: ServerConfig{Host: "localhost", Port: 9090},
		Data:   DataConfig{Source: "https://saharah.example.org", FetchTimeout: 3 * time.Second},
	}
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Server.Port != 9090 {
		t.Errorf("loaded port: got %d", loaded.Server.Port)
	}
	if loaded.Data.FetchTimeout != 3*time.Second {
		t.Errorf("loaded fetch timeout: got %v", loaded.Data.FetchTimeout)
	}
}
