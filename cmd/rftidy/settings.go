package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"rftidy/internal/config"
)

// registerSettingFlags adds the flags that override rftidy.toml values.
func registerSettingFlags(fs *pflag.FlagSet) {
	def := config.Default()
	fs.String("widths", def.Align.Widths, "comma separated column widths, 0 = unlimited (e.g. 24,28,0)")
	fs.String("alignment-type", def.Align.AlignmentType, "column width source (fixed|auto)")
	fs.String("handle-too-long", def.Align.HandleTooLong, "overlong cells (overflow|compact_overflow|ignore_line|ignore_rest)")
	fs.StringSlice("sections", def.Align.Sections, "sections to align (test_cases,tasks,keywords)")
	fs.Bool("skip-documentation", def.Align.SkipDocumentation, "leave [Documentation] untouched")
	fs.Bool("skip-return-values", def.Align.SkipReturnValues, "keep assignments out of the columns")
	fs.StringSlice("skip-keyword-call", nil, "keyword names whose calls are left untouched")
	fs.StringSlice("skip-keyword-call-pattern", nil, "regular expressions of keyword names whose calls are left untouched")
	fs.Int("indent", def.Format.Indent, "spaces per indentation level")
	fs.Int("separator", def.Format.Separator, "minimal spaces between cells")
	fs.Int("line-length", def.Format.LineLength, "warn about aligned lines longer than this")
}

// loadSettings reads the configuration file and applies flags the user set explicitly.
func loadSettings(cmd *cobra.Command) (config.Config, string, error) {
	explicit, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return config.Config{}, "", err
	}
	cfg, path, err := config.Discover(explicit, ".")
	if err != nil {
		return config.Config{}, "", err
	}
	if err := applyFlags(cmd.Flags(), &cfg); err != nil {
		return config.Config{}, "", err
	}
	return cfg, path, nil
}

func applyFlags(fs *pflag.FlagSet, cfg *config.Config) error {
	strs := map[string]*string{
		"widths":          &cfg.Align.Widths,
		"alignment-type":  &cfg.Align.AlignmentType,
		"handle-too-long": &cfg.Align.HandleTooLong,
	}
	for name, dst := range strs {
		if err := override(fs, name, dst, fs.GetString); err != nil {
			return err
		}
	}
	slices := map[string]*[]string{
		"sections":                  &cfg.Align.Sections,
		"skip-keyword-call":         &cfg.Align.SkipKeywordCall,
		"skip-keyword-call-pattern": &cfg.Align.SkipKeywordCallPattern,
	}
	for name, dst := range slices {
		if err := override(fs, name, dst, fs.GetStringSlice); err != nil {
			return err
		}
	}
	bools := map[string]*bool{
		"skip-documentation": &cfg.Align.SkipDocumentation,
		"skip-return-values": &cfg.Align.SkipReturnValues,
	}
	for name, dst := range bools {
		if err := override(fs, name, dst, fs.GetBool); err != nil {
			return err
		}
	}
	ints := map[string]*int{
		"indent":      &cfg.Format.Indent,
		"separator":   &cfg.Format.Separator,
		"line-length": &cfg.Format.LineLength,
	}
	for name, dst := range ints {
		if err := override(fs, name, dst, fs.GetInt); err != nil {
			return err
		}
	}
	return nil
}

// override copies flag name into dst when the user set it.
func override[T any](fs *pflag.FlagSet, name string, dst *T, get func(string) (T, error)) error {
	if fs.Lookup(name) == nil || !fs.Changed(name) {
		return nil
	}
	v, err := get(name)
	if err != nil {
		return fmt.Errorf("--%s: %w", name, err)
	}
	*dst = v
	return nil
}
