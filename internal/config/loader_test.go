package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml", "endpoint: https://llm.internal/v1/generate\nauth_token: s3cret\ntemperature: 0.4\ninsecure_tls: true\ntimeout_sec: 30\nmock_addr: :9999\n")
	cfg, err := Load(p)
	if err != nil { t.Fatalf("load: %v", err) }
	if cfg.Endpoint != "https://llm.internal/v1/generate" || cfg.AuthToken != "s3cret" || cfg.Temperature != 0.4 || !cfg.InsecureTLS || cfg.TimeoutSec != 30 || cfg.MockAddr != ":9999" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadJSON(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.json", `{"endpoint":"http://e","auth_token":"tok","temperature":0.9,"timeout_sec":5}`)
	cfg, err := Load(p)
	if err != nil { t.Fatalf("load: %v", err) }
	if cfg.Endpoint != "http://e" || cfg.AuthToken != "tok" || cfg.Temperature != 0.9 || cfg.InsecureTLS || cfg.TimeoutSec != 5 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.toml", "endpoint=\"http://t\"\nauth_token=\"x\"\ntemperature=0.1\ninsecure_tls=false\nmock_addr=\":8089\"\n")
	cfg, err := Load(p)
	if err != nil { t.Fatalf("load: %v", err) }
	if cfg.Endpoint != "http://t" || cfg.AuthToken != "x" || cfg.Temperature != 0.1 || cfg.InsecureTLS || cfg.MockAddr != ":8089" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(""); err == nil { t.Fatalf("expected error on empty path") }
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.txt", "not supported")
	if _, err := Load(p); err == nil { t.Fatalf("expected unsupported extension error") }
	if _, err := Load(filepath.Join(d, "missing.yaml")); err == nil { t.Fatalf("expected error on missing file") }
}
