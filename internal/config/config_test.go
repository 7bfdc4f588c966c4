package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadReadsFileDefaultsAndEnv(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`server:
  port: "9000"
cart:
  max_quantity_per_line: 20
reconcile:
  async: false
`)
	if err := os.WriteFile(filepath.Join(dir, "config.yml"), content, 0o644); err != nil {
		t.Fatalf("write config failed: %v", err)
	}
	t.Chdir(dir)
	t.Setenv("USER_JWT_SECRET", "env-secret-value")

	cfg := Load()
	if cfg.Server.Port != "9000" {
		t.Fatalf("port from file want 9000 got %s", cfg.Server.Port)
	}
	if cfg.Cart.MaxQuantityPerLine != 20 || cfg.Reconcile.Async {
		t.Fatalf("unexpected cart/reconcile config: %+v %+v", cfg.Cart, cfg.Reconcile)
	}
	if cfg.UserJWT.SecretKey != "env-secret-value" {
		t.Fatalf("env override not applied, got %s", cfg.UserJWT.SecretKey)
	}
	if cfg.Reconcile.MaxItems != 200 || cfg.Security.LoginRateLimit.MaxAttempts != 5 {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if cfg.Queue.Queues["critical"] != 6 {
		t.Fatalf("queue weights default missing: %+v", cfg.Queue.Queues)
	}
}

func TestToLoggerOptions(t *testing.T) {
	opts := LogConfig{Level: "warn", Stdout: true, Dir: "/tmp/x", Filename: "a.log", MaxSizeMB: 5}.ToLoggerOptions()
	if opts.Level != "warn" || !opts.Stdout || opts.Dir != "/tmp/x" || opts.Filename != "a.log" || opts.MaxSizeMB != 5 {
		t.Fatalf("unexpected logger options: %+v", opts)
	}
}
