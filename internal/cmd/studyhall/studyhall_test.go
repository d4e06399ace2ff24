package studyhall

import (
	"flag"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("studyhall", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.DBPath != "" {
		t.Fatalf("expected empty db path by default, got %q", cfg.DBPath)
	}
	if cfg.Transport != "stdio" {
		t.Fatalf("expected stdio transport by default, got %q", cfg.Transport)
	}
	if cfg.HTTPAddr != "localhost:8081" {
		t.Fatalf("expected localhost:8081 by default, got %q", cfg.HTTPAddr)
	}
}

func TestParseConfigEnv(t *testing.T) {
	t.Setenv("STUDYHALL_DB_PATH", "/tmp/studyhall.db")
	t.Setenv("STUDYHALL_MCP_TRANSPORT", "http")

	fs := flag.NewFlagSet("studyhall", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.DBPath != "/tmp/studyhall.db" {
		t.Fatalf("expected env db path, got %q", cfg.DBPath)
	}
	if cfg.Transport != "http" {
		t.Fatalf("expected env transport, got %q", cfg.Transport)
	}
}

func TestParseConfigFlagsOverrideEnv(t *testing.T) {
	t.Setenv("STUDYHALL_MCP_TRANSPORT", "http")

	fs := flag.NewFlagSet("studyhall", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-transport", "stdio", "-db", "progress.db"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Transport != "stdio" {
		t.Fatalf("expected flag to override env, got %q", cfg.Transport)
	}
	if cfg.DBPath != "progress.db" {
		t.Fatalf("expected flag db path, got %q", cfg.DBPath)
	}
}
