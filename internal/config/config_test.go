package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.RequestTimeout != 15*time.Second {
		t.Errorf("expected default request timeout 15s, got %v", cfg.RequestTimeout)
	}
	if cfg.ScanTimeout != 60*time.Second {
		t.Errorf("expected default scan timeout 60s, got %v", cfg.ScanTimeout)
	}
	if cfg.MaxScripts != 15 {
		t.Errorf("expected default max scripts 15, got %d", cfg.MaxScripts)
	}
	if cfg.DefaultUserAgent == "" {
		t.Error("expected a default user agent")
	}
	if cfg.SignaturesFile != "" {
		t.Errorf("expected no default signatures file, got %s", cfg.SignaturesFile)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("REQUEST_TIMEOUT", "5000")
	t.Setenv("MAX_SCRIPTS", "5")
	t.Setenv("DEFAULT_USER_AGENT", "test-agent/1.0")

	cfg := Load()

	if cfg.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Port)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("expected request timeout 5s, got %v", cfg.RequestTimeout)
	}
	if cfg.MaxScripts != 5 {
		t.Errorf("expected max scripts 5, got %d", cfg.MaxScripts)
	}
	if cfg.DefaultUserAgent != "test-agent/1.0" {
		t.Errorf("expected overridden user agent, got %s", cfg.DefaultUserAgent)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	t.Setenv("REQUEST_TIMEOUT", "soon")

	cfg := Load()

	if cfg.Port != 8080 {
		t.Errorf("expected fallback port 8080, got %d", cfg.Port)
	}
	if cfg.RequestTimeout != 15*time.Second {
		t.Errorf("expected fallback request timeout, got %v", cfg.RequestTimeout)
	}
}
