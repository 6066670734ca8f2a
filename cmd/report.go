package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zjrosen/selectmenu/internal/app"
	"github.com/zjrosen/selectmenu/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report [page.yaml]",
	Short: "Print the initial selection of every menu without opening the UI",
	Long: `Load a page and print each menu's preselected options, the same report
the interactive UI prints on exit.

Examples:
  # Text summary of the demo page
  selectmenu report

  # YAML, one key per menu in page order
  selectmenu report page.yaml --format yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	if configErr != nil {
		return configErr
	}
	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	cleanup, err := startLogging("selectmenu-report")
	if err != nil {
		return err
	}
	defer cleanup()

	widgets, shutdown, err := buildWidgets(cmd.Context(), args)
	if err != nil {
		return err
	}
	defer shutdown()

	dir, err := app.NewDirectory(widgets)
	if err != nil {
		return err
	}
	return report.Write(cmd.OutOrStdout(), format, dir.Report())
}
