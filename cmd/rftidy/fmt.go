package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"rftidy/internal/align"
	"rftidy/internal/config"
	"rftidy/internal/disabler"
	"rftidy/internal/driver"
	"rftidy/internal/logx"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] <path> [path...]",
	Short: "Align Robot Framework test data files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFmt,
}

func init() {
	registerFmtFlags(fmtCmd.Flags())
}

func registerFmtFlags(fs *pflag.FlagSet) {
	fs.Bool("check", false, "report files that need formatting without changing them")
	fs.String("format", "text", "output format (text|json)")
	fs.Bool("stdout", false, "print formatted data to stdout instead of rewriting files")
	fs.Int("jobs", 0, "max parallel workers (0=auto)")
	fs.Bool("no-cache", false, "do not read or write the formatted-files cache")
	fs.String("progress", "auto", "progress view (auto|on|off)")
	fs.Bool("watch", false, "keep running and reformat files when they change")
	fs.Int("startline", 0, "first line to format (1-based, 0 = file start)")
	fs.Int("endline", 0, "last line to format (1-based, 0 = file end)")
	registerSettingFlags(fs)
}

type fmtFlags struct {
	check    bool
	format   string
	stdout   bool
	jobs     int
	noCache  bool
	progress string
	watch    bool
	window   disabler.Window
	quiet    bool
}

func readFmtFlags(cmd *cobra.Command) (fmtFlags, error) {
	var (
		f   fmtFlags
		err error
	)
	fs := cmd.Flags()
	if f.check, err = fs.GetBool("check"); err != nil {
		return f, err
	}
	if f.format, err = fs.GetString("format"); err != nil {
		return f, err
	}
	if f.stdout, err = fs.GetBool("stdout"); err != nil {
		return f, err
	}
	if f.jobs, err = fs.GetInt("jobs"); err != nil {
		return f, err
	}
	if f.noCache, err = fs.GetBool("no-cache"); err != nil {
		return f, err
	}
	if f.progress, err = fs.GetString("progress"); err != nil {
		return f, err
	}
	if f.watch, err = fs.GetBool("watch"); err != nil {
		return f, err
	}
	if f.window.Start, err = fs.GetInt("startline"); err != nil {
		return f, err
	}
	if f.window.End, err = fs.GetInt("endline"); err != nil {
		return f, err
	}
	if f.quiet, err = cmd.Root().PersistentFlags().GetBool("quiet"); err != nil {
		return f, err
	}

	switch {
	case f.stdout && f.check:
		return f, errors.New("fmt: --stdout cannot be used with --check")
	case f.stdout && f.format != "text":
		return f, errors.New("fmt: --stdout is only supported with text output")
	case f.watch && (f.stdout || f.check):
		return f, errors.New("fmt: --watch rewrites files and cannot be combined with --stdout or --check")
	case f.format != "text" && f.format != "json":
		return f, fmt.Errorf("fmt: unsupported output format %q", f.format)
	case f.window.Start < 0 || f.window.End < 0 || (f.window.End > 0 && f.window.End < f.window.Start):
		return f, fmt.Errorf("fmt: invalid line range %d-%d", f.window.Start, f.window.End)
	}
	return f, nil
}

func runFmt(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	flags, err := readFmtFlags(cmd)
	if err != nil {
		return reportErr(cmd, err)
	}
	cfg, cfgPath, err := loadSettings(cmd)
	if err != nil {
		return reportErr(cmd, err)
	}
	opts, err := buildFormatOptions(cfg, flags)
	if err != nil {
		return reportErr(cmd, err)
	}

	ctx := cmd.Context()
	log := logx.FromContext(ctx)
	if cfgPath != "" {
		log.Debug("using configuration", "path", cfgPath)
	}
	if !flags.noCache {
		cache, err := driver.OpenCache("rftidy")
		if err != nil {
			log.Warn("cache disabled", "err", err)
		} else {
			opts.Cache = cache
		}
	}

	var results []driver.FormatResult
	if shouldShowProgress(flags) {
		files, err := driver.CollectFiles(ctx, args)
		if err != nil {
			return reportErr(cmd, err)
		}
		results, err = runFormatWithUI(ctx, "formatting", files, args, opts)
		if err != nil {
			return reportErr(cmd, err)
		}
	} else {
		results, err = driver.FormatPaths(ctx, args, opts)
		if err != nil {
			return reportErr(cmd, err)
		}
	}

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	var hasErrors, hasChanges bool
	switch {
	case flags.stdout:
		hasErrors = renderFmtStdout(out, errOut, results)
	case flags.format == "json":
		if err := renderFmtJSON(out, results, flags.check); err != nil {
			return reportErr(cmd, err)
		}
		hasErrors, hasChanges = summarize(results)
	default:
		hasErrors, hasChanges = renderFmtText(out, errOut, results, flags.check, flags.quiet)
	}

	if flags.watch {
		return driver.Watch(ctx, args, opts, func(batch []driver.FormatResult) {
			renderFmtText(out, errOut, batch, false, flags.quiet)
		})
	}

	if hasErrors {
		return errors.New("fmt: failed to format some files")
	}
	if flags.check && hasChanges {
		return errors.New("fmt: formatting changes required")
	}
	return nil
}

// buildFormatOptions validates every setting before any file is touched.
func buildFormatOptions(cfg config.Config, flags fmtFlags) (driver.FormatOptions, error) {
	policy, err := cfg.Policy()
	if err != nil {
		return driver.FormatOptions{}, err
	}
	alignOpts, err := cfg.Options()
	if err != nil {
		return driver.FormatOptions{}, err
	}
	return driver.FormatOptions{
		Check:       flags.check,
		Stdout:      flags.stdout,
		Jobs:        flags.jobs,
		Aligner:     align.New(policy, alignOpts),
		Window:      flags.window,
		Fingerprint: fingerprint(cfg, flags.window),
	}, nil
}

// fingerprint covers everything that changes the output of a file.
func fingerprint(cfg config.Config, w disabler.Window) string {
	return fmt.Sprintf("%s\nwindow=%d-%d", cfg.Fingerprint(), w.Start, w.End)
}

func shouldShowProgress(flags fmtFlags) bool {
	if flags.stdout || flags.format != "text" || flags.quiet || flags.watch {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(flags.progress)) {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(os.Stderr)
	}
}

func reportErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), color.RedString("error:"), err)
	return err
}

func summarize(results []driver.FormatResult) (hasErrors, hasChanges bool) {
	for _, res := range results {
		hasErrors = hasErrors || res.Err != nil
		hasChanges = hasChanges || res.Changed
	}
	return hasErrors, hasChanges
}

func renderFmtStdout(out, errOut io.Writer, results []driver.FormatResult) (hasErrors bool) {
	for _, res := range results {
		if res.Err != nil {
			hasErrors = true
			fmt.Fprintf(errOut, "fmt: %s: %v\n", res.Path, res.Err)
			continue
		}
		_, _ = out.Write(res.Formatted)
	}
	return hasErrors
}

func renderFmtText(out, errOut io.Writer, results []driver.FormatResult, check, quiet bool) (hasErrors, hasChanges bool) {
	changed := 0
	for _, res := range results {
		if res.Err != nil {
			hasErrors = true
			fmt.Fprintf(errOut, "fmt: %s: %v\n", res.Path, res.Err)
			continue
		}
		if !res.Changed {
			continue
		}
		hasChanges = true
		changed++
		if quiet {
			continue
		}
		if check {
			fmt.Fprintln(out, res.Path)
		} else {
			fmt.Fprintf(out, "%s %s\n", color.GreenString("reformatted"), res.Path)
		}
	}
	if !quiet && !check {
		fmt.Fprintf(out, "%d file(s) reformatted, %d left unchanged\n", changed, len(results)-changed)
	}
	return hasErrors, hasChanges
}

func renderFmtJSON(out io.Writer, results []driver.FormatResult, check bool) error {
	type jsonResult struct {
		Path      string `json:"path"`
		Changed   bool   `json:"changed"`
		Error     string `json:"error,omitempty"`
		CheckRun  bool   `json:"check"`
		Cached    bool   `json:"cached,omitempty"`
		Skipped   string `json:"skipped,omitempty"`
		Aligned   int    `json:"aligned"`
		Dropped   int    `json:"dropped,omitempty"`
		LongLines []int  `json:"long_lines,omitempty"`
	}

	payload := make([]jsonResult, 0, len(results))
	for _, res := range results {
		jr := jsonResult{
			Path:      res.Path,
			Changed:   res.Changed,
			CheckRun:  check,
			Cached:    res.Cached,
			Aligned:   res.Stats.Aligned,
			Dropped:   res.Stats.Dropped,
			LongLines: res.LongLines,
		}
		switch {
		case res.Pipe:
			jr.Skipped = "pipe format"
		case res.Disabled:
			jr.Skipped = "disabled"
		}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		}
		payload = append(payload, jr)
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
