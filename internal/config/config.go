// Package config loads rftidy.toml and turns it into validated runtime values.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"rftidy/internal/align"
	"rftidy/internal/ast"
	"rftidy/internal/skip"
)

// FileName is the configuration file looked up from the working directory upwards.
const FileName = "rftidy.toml"

// Config mirrors the layout of rftidy.toml.
type Config struct {
	Format Format `toml:"format"`
	Align  Align  `toml:"align"`
}

// Format holds layout settings shared by every pass.
type Format struct {
	Indent     int `toml:"indent"`
	Separator  int `toml:"separator"`
	LineLength int `toml:"line_length"`
}

// Align holds column alignment settings.
type Align struct {
	Widths                 string   `toml:"widths"`
	AlignmentType          string   `toml:"alignment_type"`
	HandleTooLong          string   `toml:"handle_too_long"`
	Sections               []string `toml:"sections"`
	SkipDocumentation      bool     `toml:"skip_documentation"`
	SkipReturnValues       bool     `toml:"skip_return_values"`
	SkipKeywordCall        []string `toml:"skip_keyword_call"`
	SkipKeywordCallPattern []string `toml:"skip_keyword_call_pattern"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Format: Format{
			Indent:     align.DefaultIndent,
			Separator:  align.DefaultMinSeparator,
			LineLength: 120,
		},
		Align: Align{
			AlignmentType:     "fixed",
			HandleTooLong:     "overflow",
			Sections:          []string{"test_cases", "tasks", "keywords"},
			SkipDocumentation: true,
		},
	}
}

// Find walks from startDir up to the file system root looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes path on top of Default. Unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// Discover loads the file at explicit, or the nearest FileName above startDir,
// or Default when there is none. It returns the path that was used ("" for defaults).
func Discover(explicit, startDir string) (Config, string, error) {
	if explicit != "" {
		cfg, err := Load(explicit)
		return cfg, explicit, err
	}
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return Default(), "", err
	}
	cfg, err := Load(path)
	return cfg, path, err
}

// Policy validates the alignment settings.
func (c Config) Policy() (align.Policy, error) {
	return align.NewPolicy(align.PolicyConfig{
		Widths:        c.Align.Widths,
		AlignmentType: c.Align.AlignmentType,
		HandleTooLong: c.Align.HandleTooLong,
		MinSeparator:  c.Format.Separator,
	})
}

// Formatting returns the shared layout settings.
func (c Config) Formatting() align.FormattingConfig {
	return align.FormattingConfig{Indent: c.Format.Indent, LineLength: c.Format.LineLength}
}

// Skip compiles the skip rules.
func (c Config) Skip() (*skip.Policy, error) {
	return skip.New(skip.Rules{
		Documentation:       c.Align.SkipDocumentation,
		ReturnValues:        c.Align.SkipReturnValues,
		KeywordCalls:        c.Align.SkipKeywordCall,
		KeywordCallPatterns: c.Align.SkipKeywordCallPattern,
	})
}

// SectionKinds maps the configured section names to kinds.
func (c Config) SectionKinds() ([]ast.SectionKind, error) {
	kinds := make([]ast.SectionKind, 0, len(c.Align.Sections))
	for _, name := range c.Align.Sections {
		name = strings.TrimSpace(name)
		k, ok := ast.ParseSectionKind(name)
		if !ok {
			return nil, &align.ParamError{
				Param:   "sections",
				Value:   name,
				Allowed: "any of: settings, variables, test_cases, tasks, keywords, comments",
			}
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

// Options builds the aligner options, validating skip rules and sections.
func (c Config) Options() (align.Options, error) {
	sk, err := c.Skip()
	if err != nil {
		return align.Options{}, err
	}
	sections, err := c.SectionKinds()
	if err != nil {
		return align.Options{}, err
	}
	if c.Format.Indent < 0 {
		return align.Options{}, &align.ParamError{Param: "indent", Value: fmt.Sprint(c.Format.Indent), Allowed: "a non-negative integer"}
	}
	return align.Options{Formatting: c.Formatting(), Skip: sk, Sections: sections}, nil
}

// Validate checks every setting eagerly so configuration errors surface before any file is read.
func (c Config) Validate() error {
	if _, err := c.Policy(); err != nil {
		return err
	}
	_, err := c.Options()
	return err
}

// Fingerprint is a stable textual form of every setting that affects output.
func (c Config) Fingerprint() string {
	var b strings.Builder
	_ = c.Encode(&b)
	return b.String()
}

// Encode writes c as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
