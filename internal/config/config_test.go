package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("FISCAL_SKIP_ROWS", "")
	t.Setenv("FISCAL_VERBOSE", "")
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.SkipRows != 3 {
		t.Fatalf("skipRows=%d", cfg.SkipRows)
	}
	if cfg.Verbose {
		t.Fatalf("verbose should default to false")
	}
	if cfg.CurrencySymbol == "" {
		t.Fatalf("currency symbol empty")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("FISCAL_SKIP_ROWS", "5")
	t.Setenv("FISCAL_VERBOSE", "yes")
	t.Setenv("REPORT_TOP_N", "not-a-number")
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.SkipRows != 5 || !cfg.Verbose {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if cfg.ReportTopN != 10 {
		t.Fatalf("invalid int should fall back, got %d", cfg.ReportTopN)
	}
}

func TestRequire(t *testing.T) {
	var cfg Config
	if err := cfg.Require("FISCAL_INPUT", "  "); err == nil {
		t.Fatal("expected error for blank value")
	}
	if err := cfg.Require("FISCAL_INPUT", "x.csv"); err != nil {
		t.Fatal(err)
	}
}
