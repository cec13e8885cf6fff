package config

import "time"

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Data.Source == "" {
		cfg.Data.Source = "./public"
	}
	if cfg.Data.Cache == nil {
		t := true
		cfg.Data.Cache = &t
	}
	if cfg.Data.Watch == nil {
		t := true
		cfg.Data.Watch = &t
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = MemoryDatabase
	}
	// A zero delay means the default; set a negative delay to answer immediately.
	if cfg.Chat.ReplyDelay == 0 {
		cfg.Chat.ReplyDelay = 1500 * time.Millisecond
	}
	if cfg.Chat.Timeout == 0 {
		cfg.Chat.Timeout = 30 * time.Second
	}
	if cfg.State.Dir == "" {
		cfg.State.Dir = ".saharah"
	}
}
