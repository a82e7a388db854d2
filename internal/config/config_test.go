package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
calendar:
  type: remote
  api_url: https://date.nager.at/api/v3/PublicHolidays/{year}/{country}
  cache_ttl: 1h
planner:
  country: IE
  weekend_days: [5, 6]
  budget: 12
storage:
  type: sqlite
  path: /tmp/stretch.db
server:
  addr: 127.0.0.1:9000
  allowed_origins: [https://example.com]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Calendar.Type != CalendarRemote {
		t.Errorf("Calendar.Type = %q, want %q", cfg.Calendar.Type, CalendarRemote)
	}
	if cfg.Calendar.APIURL != "https://date.nager.at/api/v3/PublicHolidays/{year}/{country}" {
		t.Errorf("Calendar.APIURL = %q, placeholders must survive", cfg.Calendar.APIURL)
	}
	if got := cfg.Calendar.GetCacheTTL(); got != time.Hour {
		t.Errorf("GetCacheTTL() = %v, want 1h", got)
	}
	if cfg.Planner.Country != "IE" || cfg.Planner.Budget != 12 {
		t.Errorf("Planner = %+v", cfg.Planner)
	}
	if !reflect.DeepEqual(cfg.Planner.WeekendDays, []int{5, 6}) {
		t.Errorf("Planner.WeekendDays = %v, want [5 6]", cfg.Planner.WeekendDays)
	}
	if cfg.Storage.Type != StorageSQLite || cfg.Storage.Path != "/tmp/stretch.db" {
		t.Errorf("Storage = %+v", cfg.Storage)
	}
	if cfg.Server.GetAddr() != "127.0.0.1:9000" {
		t.Errorf("GetAddr() = %q", cfg.Server.GetAddr())
	}
	if got := cfg.Server.GetShutdownTimeout(); got != 10*time.Second {
		t.Errorf("GetShutdownTimeout() = %v, want default 10s", got)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want default info", cfg.Log.Level)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "{}\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Calendar.Type != CalendarBuiltin {
		t.Errorf("Calendar.Type = %q, want builtin", cfg.Calendar.Type)
	}
	if cfg.Planner.Budget != -1 {
		t.Errorf("Planner.Budget = %d, want -1", cfg.Planner.Budget)
	}
	if !reflect.DeepEqual(cfg.Planner.WeekendDays, []int{6, 0}) {
		t.Errorf("Planner.WeekendDays = %v, want [6 0]", cfg.Planner.WeekendDays)
	}
	if cfg.Storage.Type != StorageFile || cfg.Storage.Path == "" {
		t.Errorf("Storage = %+v", cfg.Storage)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("STRETCH_PLANNER_COUNTRY", "DE")
	t.Setenv("STRETCH_STORAGE_TYPE", "sqlite")

	cfg, err := Load(writeConfig(t, "planner:\n  country: IE\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Planner.Country != "DE" {
		t.Errorf("Planner.Country = %q, want DE from env", cfg.Planner.Country)
	}
	if cfg.Storage.Type != StorageSQLite {
		t.Errorf("Storage.Type = %q, want sqlite from env", cfg.Storage.Type)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() expected error for explicit missing file")
	}
	if _, err := Load(writeConfig(t, "calendar:\n  type: isdayoff\n")); err == nil {
		t.Error("Load() expected validation error")
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Calendar: CalendarConfig{Type: CalendarBuiltin},
			Planner:  PlannerConfig{WeekendDays: []int{6, 0}, Budget: -1},
			Storage:  StorageConfig{Type: StorageFile, Path: "prefs.json"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "unknown calendar", mutate: func(c *Config) { c.Calendar.Type = "ical" }, wantErr: true},
		{name: "file calendar without file", mutate: func(c *Config) { c.Calendar.Type = CalendarFile }, wantErr: true},
		{name: "file calendar", mutate: func(c *Config) {
			c.Calendar.Type = CalendarFile
			c.Calendar.FallbackFile = "holidays.txt"
		}},
		{name: "weekday out of range", mutate: func(c *Config) { c.Planner.WeekendDays = []int{7} }, wantErr: true},
		{name: "negative budget", mutate: func(c *Config) { c.Planner.Budget = -2 }, wantErr: true},
		{name: "unknown storage", mutate: func(c *Config) { c.Storage.Type = "redis" }, wantErr: true},
		{name: "empty storage path", mutate: func(c *Config) { c.Storage.Path = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetters_InvalidDurationsFallBack(t *testing.T) {
	cal := CalendarConfig{CacheTTL: "soon"}
	if got := cal.GetCacheTTL(); got != 24*time.Hour {
		t.Errorf("GetCacheTTL() = %v, want 24h", got)
	}
	srv := ServerConfig{ShutdownTimeout: "later"}
	if got := srv.GetShutdownTimeout(); got != 10*time.Second {
		t.Errorf("GetShutdownTimeout() = %v, want 10s", got)
	}
	if got := srv.GetAddr(); got != ":8080" {
		t.Errorf("GetAddr() = %q, want :8080", got)
	}
}
