package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestHelpersReturnSetValues(t *testing.T) {
	v := viper.New()
	v.Set("port", 9090)
	v.Set("name", "custom")
	v.Set("ttl", "90s")

	if got := getIntOrDefault(v, "port", 8080); got != 9090 {
		t.Errorf("getIntOrDefault = %d, want 9090", got)
	}
	if got := getStringOrDefault(v, "name", "fallback"); got != "custom" {
		t.Errorf("getStringOrDefault = %q, want %q", got, "custom")
	}
	if got := getDurationOrDefault(v, "ttl", time.Minute); got != 90*time.Second {
		t.Errorf("getDurationOrDefault = %v, want 90s", got)
	}
}

func TestHelpersFallBackWhenUnset(t *testing.T) {
	v := viper.New()

	if got := getIntOrDefault(v, "port", 8080); got != 8080 {
		t.Errorf("getIntOrDefault = %d, want default 8080", got)
	}
	if got := getStringOrDefault(v, "name", "fallback"); got != "fallback" {
		t.Errorf("getStringOrDefault = %q, want default", got)
	}
	if got := getDurationOrDefault(v, "ttl", time.Minute); got != time.Minute {
		t.Errorf("getDurationOrDefault = %v, want default 1m", got)
	}
}

func TestReadConfigDefaults(t *testing.T) {
	cfg := readConfig(viper.New())

	if cfg.AppName != "taskdesk" {
		t.Errorf("app name = %q, want taskdesk", cfg.AppName)
	}
	if cfg.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Port)
	}
	if cfg.Data == nil || cfg.Data.Database == nil || cfg.Data.Database.Driver != "postgres" {
		t.Errorf("database defaults wrong: %+v", cfg.Data)
	}
	if cfg.Data.Redis.CacheTTL != 5*time.Minute {
		t.Errorf("cache ttl = %v, want 5m", cfg.Data.Redis.CacheTTL)
	}
}
