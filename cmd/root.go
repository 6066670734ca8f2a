package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/selectmenu/internal/app"
	"github.com/zjrosen/selectmenu/internal/config"
	"github.com/zjrosen/selectmenu/internal/log"
	"github.com/zjrosen/selectmenu/internal/page"
	"github.com/zjrosen/selectmenu/internal/report"
	"github.com/zjrosen/selectmenu/internal/tracing"
	"github.com/zjrosen/selectmenu/internal/ui/styles"
	"github.com/zjrosen/selectmenu/internal/widget"
)

func init() {
	// Query the terminal background before Bubble Tea owns stdin so the
	// OSC 11 reply cannot leak into the search box.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

const defaultConfigPath = ".selectmenu/config.yaml"

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config
	// configErr is reported by commands that need the config, so that
	// `config init` still works next to a broken file.
	configErr error
)

var rootCmd = &cobra.Command{
	Use:   "selectmenu [page.yaml]",
	Short: "A terminal multi-select menu with search, tags, and inline option creation",
	Long: `Open one or more multi-select menus described by a YAML page file.

Each menu shows a searchable checklist, a box of selected tags, and bulk
Select All / Deselect All buttons. Menus with a form can create new options.
When you quit, a summary of every menu's selection is printed to stdout.

Without a page file the built-in demo page is shown.`,
	Version: version,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .selectmenu/config.yaml or ~/.config/selectmenu/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write debug logs to debug.log (or $SELECTMENU_LOG)")
	rootCmd.PersistentFlags().StringP("format", "f", "",
		"report format printed on exit: text or yaml")

	_ = viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("format", defaults.Format)
	viper.SetDefault("ui.search_placeholder", defaults.UI.SearchPlaceholder)
	viper.SetDefault("ui.show_counts", defaults.UI.ShowCounts)
	viper.SetDefault("ui.tag_max_width", defaults.UI.TagMaxWidth)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	viper.SetDefault("tracing.service_name", defaults.Tracing.ServiceName)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .selectmenu/config.yaml (current directory)
		// 2. ~/.config/selectmenu/config.yaml (user config)
		if _, err := os.Stat(defaultConfigPath); err == nil {
			viper.SetConfigFile(defaultConfigPath)
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "selectmenu"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	configErr = readConfig()
}

// readConfig loads the selected config into cfg. A config that is not found
// on the search path is fine and leaves the defaults in place.
func readConfig() error {
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.ErrorErr(log.CatConfig, "Failed to read config", err, "path", viper.ConfigFileUsed())
			return fmt.Errorf("reading config: %w", err)
		}
	}
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}
	return nil
}

// startLogging enables the file logger when --debug or SELECTMENU_DEBUG is set.
func startLogging(prefix string) (func(), error) {
	if os.Getenv("SELECTMENU_DEBUG") == "" && !debugFlag {
		return func() {}, nil
	}
	logPath := os.Getenv("SELECTMENU_LOG")
	if logPath == "" {
		logPath = "debug.log"
	}
	cleanup, err := log.InitWithTeaLog(logPath, prefix)
	if err != nil {
		return nil, fmt.Errorf("initializing logging: %w", err)
	}
	log.Info(log.CatConfig, "selectmenu starting", "version", version, "config", viper.ConfigFileUsed())
	return cleanup, nil
}

// newTracer builds the tracing provider described by the config.
func newTracer(tc tracing.Config) (*tracing.Provider, error) {
	if tc.Enabled && tc.Exporter == "file" && tc.FilePath == "" {
		tc.FilePath = config.DefaultTracesFilePath()
	}
	return tracing.NewProvider(tc)
}

// loadPage resolves the page from the argument, the config, or the demo.
func loadPage(args []string) (*page.Page, error) {
	path := cfg.Page
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		log.Debug(log.CatPage, "No page given, using demo")
		return page.Demo()
	}
	return page.Load(path)
}

// buildWidgets validates the config, applies the theme, and bootstraps every
// menu. The returned shutdown flushes pending spans.
func buildWidgets(ctx context.Context, args []string) ([]widget.Model, func(), error) {
	if err := config.Validate(cfg); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := styles.ApplyTheme(cfg.Theme.Styles()); err != nil {
		return nil, nil, fmt.Errorf("invalid theme: %w", err)
	}

	provider, err := newTracer(cfg.Tracing)
	if err != nil {
		return nil, nil, fmt.Errorf("setting up tracing: %w", err)
	}
	shutdown := func() {
		sctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := provider.Shutdown(sctx); err != nil {
			log.ErrorErr(log.CatConfig, "Tracing shutdown failed", err)
		}
	}

	p, err := loadPage(args)
	if err != nil {
		shutdown()
		return nil, nil, err
	}

	widgets, err := page.Build(ctx, p, page.Defaults{
		SearchPlaceholder: cfg.UI.SearchPlaceholder,
		ShowCounts:        cfg.UI.ShowCounts,
		TagMaxWidth:       cfg.UI.TagMaxWidth,
		Tracer:            provider.Tracer(),
	})
	if err != nil {
		shutdown()
		return nil, nil, err
	}
	return widgets, shutdown, nil
}

func runApp(cmd *cobra.Command, args []string) error {
	if configErr != nil {
		return configErr
	}
	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	cleanup, err := startLogging("selectmenu")
	if err != nil {
		return err
	}
	defer cleanup()

	widgets, shutdown, err := buildWidgets(cmd.Context(), args)
	if err != nil {
		return err
	}
	defer shutdown()

	model, err := app.New(widgets)
	if err != nil {
		return err
	}

	zone.NewGlobal()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}

	result, ok := final.(app.Model)
	if !ok {
		return fmt.Errorf("unexpected final model %T", final)
	}
	return report.Write(cmd.OutOrStdout(), format, result.Directory().Report())
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
