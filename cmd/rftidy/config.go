package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as TOML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, path, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if path != "" {
			fmt.Fprintf(out, "# loaded from %s\n", path)
		} else {
			fmt.Fprintln(out, "# built-in defaults")
		}
		return cfg.Encode(out)
	},
}

func init() {
	registerSettingFlags(configCmd.Flags())
}
