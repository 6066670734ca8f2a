package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/selectmenu/internal/config"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Create or edit the selectmenu config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented default config file",
	Long: `Write a commented default config to --config, or to
.selectmenu/config.yaml when no path is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path := configTarget(false)
		if _, err := os.Stat(path); err == nil && !configForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := config.WriteDefaultConfig(path); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set one config value, keeping comments",
	Long: `Set a dotted key in the active config file.

Examples:
  selectmenu config set page ./menus.yaml
  selectmenu config set ui.show_counts false
  selectmenu config set theme.accent "#FF6B6B"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configTarget(true)
		if err := config.SetValue(path, args[0], args[1]); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s = %s (%s)\n", args[0], args[1], path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd, configSetCmd)
	rootCmd.AddCommand(configCmd)
}

// configTarget picks the file to write: --config, then (when useLoaded) the
// file viper read, then the project default.
func configTarget(useLoaded bool) string {
	if cfgFile != "" {
		return cfgFile
	}
	if useLoaded {
		if used := viper.ConfigFileUsed(); used != "" {
			return used
		}
	}
	return defaultConfigPath
}
