package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"rftidy/internal/logx"
	"rftidy/internal/prof"
	"rftidy/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "rftidy",
	Short: "Column aligner for Robot Framework test data",
	Long: `rftidy aligns the cells of test cases, tasks and keywords into columns.
Settings come from the nearest rftidy.toml and can be overridden by flags.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupGlobals,
}

// profiling is started by setupGlobals and stopped by main after the command returns.
var profiling *prof.Session

// main registers subcommands and persistent flags, then executes the root command.
// If command execution returns an error, the process exits with status code 1.
func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Info()

	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().String("config", "", "path to rftidy.toml (default: nearest one above the working directory)")
	rootCmd.PersistentFlags().String("cpuprofile", "", "write CPU profile to file")
	rootCmd.PersistentFlags().String("memprofile", "", "write heap profile to file on exit")
	rootCmd.PersistentFlags().String("trace", "", "write runtime execution trace to file")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if perr := profiling.Stop(); perr != nil {
		fmt.Fprintf(os.Stderr, "profiling: %v\n", perr)
	}
	if err != nil {
		os.Exit(1)
	}
}

// setupGlobals applies --color and attaches the logger to the command context.
func setupGlobals(cmd *cobra.Command, _ []string) error {
	flags := cmd.Root().PersistentFlags()
	colorFlag, err := flags.GetString("color")
	if err != nil {
		return err
	}
	useColor, err := resolveColor(colorFlag, isTerminal(os.Stdout))
	if err != nil {
		return err
	}
	color.NoColor = !useColor

	verbose, err := flags.GetBool("verbose")
	if err != nil {
		return err
	}
	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return err
	}
	logger := logx.New(os.Stderr, logx.Level(verbose, quiet))
	cmd.SetContext(logx.WithLogger(cmd.Context(), logger))

	pcfg, err := profileConfig(flags)
	if err != nil {
		return err
	}
	if pcfg.Enabled() {
		profiling, err = prof.Start(pcfg)
		if err != nil {
			return err
		}
		logger.Debug("profiling started", "cpu", pcfg.CPU, "mem", pcfg.Mem, "trace", pcfg.Trace)
	}
	return nil
}

func profileConfig(flags *pflag.FlagSet) (prof.Config, error) {
	var cfg prof.Config
	var err error
	if cfg.CPU, err = flags.GetString("cpuprofile"); err != nil {
		return cfg, err
	}
	if cfg.Mem, err = flags.GetString("memprofile"); err != nil {
		return cfg, err
	}
	if cfg.Trace, err = flags.GetString("trace"); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func resolveColor(value string, tty bool) (bool, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return tty, nil
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return false, &flagError{flag: "color", value: value, allowed: "auto|on|off"}
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
