package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "environment: test\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("server port default = %d", cfg.Server.Port)
	}
	if cfg.Cache.TTL != 15*time.Minute {
		t.Errorf("cache ttl default = %v", cfg.Cache.TTL)
	}
	if cfg.Schedule.Time != "10:00" || cfg.Schedule.Timezone != "Europe/Moscow" {
		t.Errorf("schedule defaults = %q %q", cfg.Schedule.Time, cfg.Schedule.Timezone)
	}
	if len(cfg.Schedule.Classes) != 3 {
		t.Errorf("expected all classes by default, got %v", cfg.Schedule.Classes)
	}
	if len(cfg.Providers.Stocks.Symbols) == 0 {
		t.Error("expected a default stock universe")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"missing environment": "server:\n  port: 9999\n",
		"unknown class":       "environment: test\nschedule:\n  classes: [crypto, forex]\n",
		"bad time":            "environment: test\nschedule:\n  time: \"25:99\"\n",
		"telegram no token":   "environment: test\ndelivery:\n  telegram:\n    enabled: true\n",
		"finnhub no key":      "environment: test\nproviders:\n  finnhub:\n    enabled: true\n",
		"queue without redis": "environment: test\nqueue:\n  enabled: true\n",
	}
	for name, content := range cases {
		if _, err := Load(writeConfig(t, content)); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("FINNHUB_API_KEY", "env-key")
	t.Setenv("STOCK_SYMBOLS", "SIRI,NOK")

	cfg, err := LoadWithEnv(writeConfig(t, "environment: test\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Providers.Finnhub.APIKey != "env-key" {
		t.Errorf("finnhub key = %q", cfg.Providers.Finnhub.APIKey)
	}
	if strings.Join(cfg.Providers.Stocks.Symbols, ",") != "SIRI,NOK" {
		t.Errorf("symbols = %v", cfg.Providers.Stocks.Symbols)
	}
}
