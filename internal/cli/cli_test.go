package cli

import (
	"path/filepath"
	"testing"
)

func TestParseFormats(t *testing.T) {
	formats := parseFormats("")
	if len(formats) != 1 || formats[0] != "svg" {
		t.Errorf("parseFormats(\"\") = %v, want [svg]", formats)
	}

	formats = parseFormats("svg,json,dot")
	if len(formats) != 3 {
		t.Errorf("parseFormats(\"svg,json,dot\") = %v, want 3 formats", formats)
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{"derived from input", "", "quarterly.plan.json", "quarterly.plan"},
		{"output without extension", "out", "ignored.json", "out"},
		{"output with format extension", "out.svg", "ignored.json", "out"},
		{"output with unrelated extension", "report.final", "ignored.json", "report.final"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := basePath(tt.output, tt.input); got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeBase(t *testing.T) {
	tests := []struct {
		topic string
		want  string
	}{
		{"Q3 Results", "q3-results"},
		{"Intro to Go!", "intro-to-go"},
		{"", "deck"},
		{"!!!", "deck"},
	}

	for _, tt := range tests {
		if got := sanitizeBase(tt.topic); got != tt.want {
			t.Errorf("sanitizeBase(%q) = %q, want %q", tt.topic, got, tt.want)
		}
	}
}

func TestCacheDirRespectsXDG(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", base)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(base, appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}
