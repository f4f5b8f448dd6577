package internal

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
phoenixd:
  url: "http://127.0.0.1:9740"
  password: "yaml-secret"
  webhook_url: "https://app.example.com/webhook"
network:
  socks_proxy:
    host: "127.0.0.1:9050"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Phoenixd.Url != "http://127.0.0.1:9740" || cfg.Phoenixd.Password != "yaml-secret" {
		t.Errorf("unexpected phoenixd config %+v", cfg.Phoenixd)
	}
	if cfg.Webhook.Listen != "127.0.0.1:8081" || cfg.Webhook.Path != "/webhook" || cfg.Webhook.QueueSize != 100 {
		t.Errorf("webhook defaults not applied: %+v", cfg.Webhook)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("log level = %q", cfg.Log.Level)
	}
	if cfg.Network.SocksProxy == nil || cfg.Network.SocksProxy.Host != "127.0.0.1:9050" {
		t.Errorf("socks proxy = %+v", cfg.Network.SocksProxy)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
phoenixd:
  url: "http://127.0.0.1:9740"
  password: "yaml-secret"
`)
	t.Setenv("API_PASSWORD", "env-secret")
	t.Setenv("WEBHOOK_QUEUE_SIZE", "7")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Phoenixd.Password != "env-secret" {
		t.Errorf("password = %q, want env-secret", cfg.Phoenixd.Password)
	}
	if cfg.Webhook.QueueSize != 7 {
		t.Errorf("queue size = %d, want 7", cfg.Webhook.QueueSize)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing password", "phoenixd:\n  url: \"http://127.0.0.1:9740\"\n"},
		{"relative url", "phoenixd:\n  url: \"not a url\"\n  password: \"x\"\n"},
		{"bad webhook url", "phoenixd:\n  url: \"http://127.0.0.1:9740\"\n  password: \"x\"\n  webhook_url: \"/webhook\"\n"},
		{"bad log level", "phoenixd:\n  url: \"http://127.0.0.1:9740\"\n  password: \"x\"\nlog:\n  level: \"loud\"\n"},
		{"negative queue", "phoenixd:\n  url: \"http://127.0.0.1:9740\"\n  password: \"x\"\nwebhook:\n  queue_size: -1\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tc.content)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
