package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_PATH", path)
}

func TestLoadConfig_Defaults(t *testing.T) {
	writeConfig(t, `
http:
  addr: ":8082"
jwt:
  publicKeyPath: "/keys/pub.pem"
  issuer: "geonote-auth"
postgres:
  dsn: "postgres://localhost/geonote"
`)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Logging.Service != "chat-service" {
		t.Fatalf("service default: %q", cfg.Logging.Service)
	}
	if cfg.Logging.Env != "dev" || cfg.Logging.Backend != "std" {
		t.Fatalf("logging defaults: %+v", cfg.Logging)
	}
	if cfg.HTTP.ShutdownTimeout != 10*time.Second {
		t.Fatalf("shutdown timeout default: %v", cfg.HTTP.ShutdownTimeout)
	}
}

func TestLoadConfig_RequiredFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "missing http addr",
			body: "jwt:\n  publicKeyPath: \"/k.pem\"\n  issuer: \"i\"\npostgres:\n  dsn: \"d\"\n",
		},
		{
			name: "missing dsn",
			body: "http:\n  addr: \":8082\"\njwt:\n  publicKeyPath: \"/k.pem\"\n  issuer: \"i\"\n",
		},
		{
			name: "missing jwt key",
			body: "http:\n  addr: \":8082\"\njwt:\n  issuer: \"i\"\npostgres:\n  dsn: \"d\"\n",
		},
		{
			name: "missing issuer",
			body: "http:\n  addr: \":8082\"\njwt:\n  publicKeyPath: \"/k.pem\"\npostgres:\n  dsn: \"d\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writeConfig(t, tt.body)
			if _, err := LoadConfig(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestLoadConfig_ClockSkewBounds(t *testing.T) {
	writeConfig(t, `
http:
  addr: ":8082"
jwt:
  publicKeyPath: "/k.pem"
  issuer: "i"
  clockSkew: 5m
postgres:
  dsn: "d"
`)
	if _, err := LoadConfig(); err == nil {
		t.Fatal("clockSkew above 1m must be rejected")
	}
}
