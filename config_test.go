package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()
	if cfg.Port != 8000 {
		t.Fatalf("default port got=%d want=8000", cfg.Port)
	}
	if cfg.Index != "index.html" {
		t.Fatalf("default index got=%q want=%q", cfg.Index, "index.html")
	}
	if cfg.DrainSeconds != 10 {
		t.Fatalf("default drain got=%d want=10", cfg.DrainSeconds)
	}
}

func TestConfigPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := []byte("port = 9000\nroot = \"/srv/site\"\nindex = \"home.html\"\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := defaultConfig()
	if err := loadConfigFile(path, &cfg); err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Port != 9000 || cfg.Root != "/srv/site" || cfg.Index != "home.html" {
		t.Fatalf("file values not applied: %+v", cfg)
	}

	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("PORT", "9100")
	t.Setenv("DOCROOT", "")
	if err := applyEnv(&cfg); err != nil {
		t.Fatalf("apply env: %v", err)
	}
	if cfg.Host != "127.0.0.1" {
		t.Fatalf("env host not applied: %q", cfg.Host)
	}
	if cfg.Port != 9100 {
		t.Fatalf("env port not applied: %d", cfg.Port)
	}
	if cfg.Root != "/srv/site" {
		t.Fatalf("empty DOCROOT must not clobber root: %q", cfg.Root)
	}

	t.Setenv("PORT", "not-a-port")
	if err := applyEnv(&cfg); err == nil {
		t.Fatalf("expected error for bad PORT")
	}
}
