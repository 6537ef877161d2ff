package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
stride:
  baseURL: https://example.com
  pageSize: 50
analysis:
  lineRef: "7020"
  lookbackMinutes: 60
  referenceLat: 32.1
  referenceLon: 34.8
`)
	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Stride.BaseURL != "https://example.com" {
		t.Errorf("baseURL = %s", cfg.Stride.BaseURL)
	}
	if cfg.Stride.PageSize != 50 {
		t.Errorf("pageSize = %d, want 50", cfg.Stride.PageSize)
	}
	if cfg.Analysis.LineRef != "7020" {
		t.Errorf("lineRef = %s, want 7020", cfg.Analysis.LineRef)
	}
	if cfg.Analysis.ReferenceLat != 32.1 || cfg.Analysis.ReferenceLon != 34.8 {
		t.Errorf("reference = (%v, %v)", cfg.Analysis.ReferenceLat, cfg.Analysis.ReferenceLon)
	}
	// Unset fields fall back to defaults.
	if cfg.Stride.TimeoutMS != DefaultTimeoutMS {
		t.Errorf("timeoutMS = %d, want default %d", cfg.Stride.TimeoutMS, DefaultTimeoutMS)
	}
	if cfg.Analysis.MaxRecords != DefaultMaxRecords {
		t.Errorf("maxRecords = %d, want default %d", cfg.Analysis.MaxRecords, DefaultMaxRecords)
	}
}

func TestLoadAppConfigDefaults(t *testing.T) {
	path := writeConfig(t, "{}\n")
	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig: %v", err)
	}
	if cfg.Server.Port != DefaultPort {
		t.Errorf("port = %d, want default %d", cfg.Server.Port, DefaultPort)
	}
	if cfg.Stride.BaseURL != DefaultBaseURL {
		t.Errorf("baseURL = %s, want default", cfg.Stride.BaseURL)
	}
	if cfg.Analysis.ReferenceLat != DefaultReferenceLat || cfg.Analysis.ReferenceLon != DefaultReferenceLon {
		t.Errorf("reference = (%v, %v), want Reading terminal default",
			cfg.Analysis.ReferenceLat, cfg.Analysis.ReferenceLon)
	}
}

func TestLoadAppConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "negative port", content: "server:\n  port: -1\n"},
		{name: "bad base url", content: "stride:\n  baseURL: not-a-url\n"},
		{name: "negative lookback", content: "analysis:\n  lookbackMinutes: -5\n"},
		{name: "malformed yaml", content: "server: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			if _, err := LoadAppConfig(path); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	if _, err := LoadAppConfig(filepath.Join(t.TempDir(), "absent.yml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
