package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestColoredWithoutColor(t *testing.T) {
	orig, origNoColor := Version, color.NoColor
	defer func() { Version, color.NoColor = orig, origNoColor }()
	color.NoColor = true

	tests := []struct {
		version string
		want    string
	}{
		{"1.2.3", "1.2.3"},
		{"0.1.0-dev", "0.1.0-dev"},
		{"1.2.3-rc.1+build.123", "1.2.3-rc.1+build.123"},
		{"weird", "weird"},
		{"  ", "dev"},
	}
	for _, tt := range tests {
		Version = tt.version
		if got := Colored(); got != tt.want {
			t.Errorf("Colored() with %q = %q, want %q", tt.version, got, tt.want)
		}
	}
}

func TestColoredWithColor(t *testing.T) {
	orig, origNoColor := Version, color.NoColor
	defer func() { Version, color.NoColor = orig, origNoColor }()
	color.NoColor = false

	Version = "1.2.3"
	if got := Colored(); got == "1.2.3" {
		t.Fatal("expected escape sequences")
	}
}

func TestInfoDefault(t *testing.T) {
	if Info() == "" {
		t.Fatal("Version should have a default value")
	}
}
