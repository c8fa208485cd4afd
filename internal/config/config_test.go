package config

import (
	"strings"
	"testing"
)

func TestLoadReadsAgentSettings(t *testing.T) {
	t.Setenv("AGENT_ENDPOINT", "https://agent.example.test")
	t.Setenv("AGENT_ACCESS_KEY", "sekret-token")
	t.Setenv("AGENT_TIMEOUT_SECONDS", " 7 ")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.test, ,https://b.test")
	t.Setenv("PROMPT_LOG_LIMIT", "not-a-number")

	cfg := Load()
	if cfg.AgentEndpoint != "https://agent.example.test" {
		t.Fatalf("unexpected endpoint: %q", cfg.AgentEndpoint)
	}
	if cfg.AgentAccessKey != "sekret-token" {
		t.Fatalf("unexpected access key: %q", cfg.AgentAccessKey)
	}
	if cfg.AgentTimeoutSeconds != 7 {
		t.Fatalf("expected timeout 7, got %d", cfg.AgentTimeoutSeconds)
	}
	if strings.Join(cfg.CORSAllowOrigins, "|") != "https://a.test|https://b.test" {
		t.Fatalf("unexpected origins: %v", cfg.CORSAllowOrigins)
	}
	if cfg.PromptLogLimit != 50 {
		t.Fatalf("expected fallback prompt limit 50, got %d", cfg.PromptLogLimit)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AGENT_TIMEOUT_SECONDS", "")
	t.Setenv("RECENT_LOG_LIMIT", "")
	t.Setenv("APP_ENV", "")

	cfg := Load()
	if cfg.AgentTimeoutSeconds != 10 {
		t.Fatalf("expected default timeout 10, got %d", cfg.AgentTimeoutSeconds)
	}
	if cfg.RecentLogLimit != 100 {
		t.Fatalf("expected default recent limit 100, got %d", cfg.RecentLogLimit)
	}
	if cfg.AppEnv != "local" {
		t.Fatalf("expected default env local, got %q", cfg.AppEnv)
	}
}

func TestValidate(t *testing.T) {
	valid := Config{
		AppEnv:         "production",
		DatabaseURL:    "postgres://localhost/dogfood",
		AgentEndpoint:  "https://agent.example.test",
		AgentAccessKey: "sekret-token",
		RecentLogLimit: 100,
		PromptLogLimit: 50,
	}

	cases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing database", mutate: func(c *Config) { c.DatabaseURL = " " }, wantErr: "DATABASE_URL is required"},
		{name: "missing endpoint", mutate: func(c *Config) { c.AgentEndpoint = "" }, wantErr: "AGENT_ENDPOINT is required"},
		{name: "relative endpoint", mutate: func(c *Config) { c.AgentEndpoint = "agent" }, wantErr: "AGENT_ENDPOINT is not a valid URL"},
		{name: "missing key", mutate: func(c *Config) { c.AgentAccessKey = "" }, wantErr: "AGENT_ACCESS_KEY is required"},
		{name: "bad prompt limit", mutate: func(c *Config) { c.PromptLogLimit = 0 }, wantErr: "PROMPT_LOG_LIMIT must be positive"},
		{
			name:   "mock skips agent settings",
			mutate: func(c *Config) { c.AgentEndpoint, c.AgentAccessKey, c.AgentUseMock = "", "", true },
		},
		{
			name:   "local skips agent settings",
			mutate: func(c *Config) { c.AgentEndpoint, c.AgentAccessKey, c.AppEnv = "", "", "local" },
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("expected valid config, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}
