package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_TYPE", "SESSION_DURATION", "CORS_ORIGINS", "RATE_LIMIT_PER_MINUTE", "DEBUG"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q, want %q", cfg.ServerPort, "8080")
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("DatabaseType = %q, want %q", cfg.DatabaseType, "sqlite")
	}
	if cfg.SessionDuration != 30*time.Minute {
		t.Errorf("SessionDuration = %v, want %v", cfg.SessionDuration, 30*time.Minute)
	}
	if cfg.RateLimitPerMinute != 10 {
		t.Errorf("RateLimitPerMinute = %d, want 10", cfg.RateLimitPerMinute)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SESSION_DURATION", "2h")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "not-a-number")
	t.Setenv("DEBUG", "true")

	cfg := Load()
	if cfg.SessionDuration != 2*time.Hour {
		t.Errorf("SessionDuration = %v, want 2h", cfg.SessionDuration)
	}
	if diff := cmp.Diff([]string{"https://a.example", "https://b.example"}, cfg.CORSOrigins); diff != "" {
		t.Errorf("CORSOrigins mismatch (-want +got):\n%s", diff)
	}
	if cfg.RateLimitPerMinute != 10 {
		t.Errorf("RateLimitPerMinute = %d, want default 10", cfg.RateLimitPerMinute)
	}
	if !cfg.Debug {
		t.Error("Debug = false, want true")
	}
}

func TestLoadClient(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantURL string
		wantSet string
	}{
		{
			name:    "production default",
			env:     map[string]string{"HUE_ENV": "", "HUE_API_BASE_URL": "", "HUE_WORD_SET": ""},
			wantURL: ProductionAPIBaseURL,
			wantSet: "full",
		},
		{
			name:    "dev default",
			env:     map[string]string{"HUE_ENV": "dev", "HUE_API_BASE_URL": "", "HUE_WORD_SET": ""},
			wantURL: DevAPIBaseURL,
			wantSet: "dev",
		},
		{
			name:    "explicit url gains trailing slash",
			env:     map[string]string{"HUE_ENV": "", "HUE_API_BASE_URL": "http://127.0.0.1:9000/api", "HUE_WORD_SET": "dev"},
			wantURL: "http://127.0.0.1:9000/api/",
			wantSet: "dev",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg := LoadClient()
			if cfg.APIBaseURL != tt.wantURL {
				t.Errorf("APIBaseURL = %q, want %q", cfg.APIBaseURL, tt.wantURL)
			}
			if cfg.WordSet != tt.wantSet {
				t.Errorf("WordSet = %q, want %q", cfg.WordSet, tt.wantSet)
			}
		})
	}
}
