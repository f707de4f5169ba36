package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rftidy/internal/align"
	"rftidy/internal/ast"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, FileName), "")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path, ok, err := Find(nested)
	if err != nil || !ok {
		t.Fatalf("Find: ok=%v err=%v", ok, err)
	}
	want, _ := filepath.Abs(filepath.Join(root, FileName))
	if path != want {
		t.Fatalf("path = %q, want %q", path, want)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	writeFile(t, path, `
[format]
separator = 2

[align]
widths = "16,8"
alignment_type = "auto"
sections = ["keywords"]
skip_keyword_call = ["Log"]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Format.Indent != 4 || cfg.Format.Separator != 2 || cfg.Format.LineLength != 120 {
		t.Fatalf("format = %+v", cfg.Format)
	}
	if !cfg.Align.SkipDocumentation {
		t.Fatal("skip_documentation default lost")
	}
	p, err := cfg.Policy()
	if err != nil {
		t.Fatalf("Policy: %v", err)
	}
	if p.Mode != align.ModeAuto || p.MinSeparator != 2 || p.Widths.String() != "16,8" {
		t.Fatalf("policy = %+v", p)
	}
	opt, err := cfg.Options()
	if err != nil {
		t.Fatalf("Options: %v", err)
	}
	if len(opt.Sections) != 1 || opt.Sections[0] != ast.SectionKeywords {
		t.Fatalf("sections = %v", opt.Sections)
	}
	if !opt.Skip.KeywordCall("log") || !opt.Skip.Documentation() {
		t.Fatal("skip rules not applied")
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	writeFile(t, path, "[align]\nwidth = \"24\"\n")
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "align.width") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestLoadSyntaxError(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	writeFile(t, path, "[align\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestDiscoverFallsBackToDefaults(t *testing.T) {
	cfg, path, err := Discover("", t.TempDir())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if path != "" && !strings.HasSuffix(path, FileName) {
		t.Fatalf("unexpected path %q", path)
	}
	if path == "" && cfg.Fingerprint() != Default().Fingerprint() {
		t.Fatal("defaults expected")
	}
}

func TestValidateNamesBadParameter(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Config)
		param string
	}{
		{"widths", func(c *Config) { c.Align.Widths = "a" }, "widths"},
		{"handle too long", func(c *Config) { c.Align.HandleTooLong = "wrap" }, "handle_too_long"},
		{"sections", func(c *Config) { c.Align.Sections = []string{"tests"} }, "sections"},
		{"pattern", func(c *Config) { c.Align.SkipKeywordCallPattern = []string{"["} }, "skip_keyword_call_pattern"},
		{"separator", func(c *Config) { c.Format.Separator = 1 }, "separator"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.edit(&cfg)
			var pe *align.ParamError
			if err := cfg.Validate(); !errors.As(err, &pe) || pe.Param != tt.param {
				t.Fatalf("Validate = %v, want ParamError on %s", err, tt.param)
			}
		})
	}
}

func TestFingerprintChangesWithSettings(t *testing.T) {
	a := Default()
	b := Default()
	b.Align.Widths = "30"
	if a.Fingerprint() == b.Fingerprint() {
		t.Fatal("fingerprint must reflect settings")
	}
	if a.Fingerprint() != Default().Fingerprint() {
		t.Fatal("fingerprint must be stable")
	}
}
