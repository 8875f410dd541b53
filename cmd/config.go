package cmd

import (
	"fmt"

	cfgpkg "github.com/KaramelBytes/statsctl/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set statsctl configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfg == nil {
			fmt.Fprintln(out, "No config loaded")
			return nil
		}
		for _, key := range cfgpkg.Keys {
			val, err := cfg.Get(key)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s: %s\n", key, val)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Long: `Set a config value and save to disk. List keys (bool_true, bool_false,
missing_tokens) take comma separated values; missing_tokens keeps empty items
so "" can be listed as a missing marker.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		// Start from the stored file, not the flag-adjusted cfg
		c, err := cfgpkg.Load(cfgFile)
		if err != nil {
			c = cfgpkg.Default()
		}
		if err := c.Set(key, val); err != nil {
			return err
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		cfg = c
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
