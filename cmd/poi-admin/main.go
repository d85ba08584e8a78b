package main

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/altinukshini/poi-admin/internal/bookmarks"
	"github.com/altinukshini/poi-admin/internal/config"
	"github.com/altinukshini/poi-admin/internal/logging"
	"github.com/altinukshini/poi-admin/internal/tui"
)

var version = "dev"

func init() {
	if version != "dev" {
		return
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		version = info.Main.Version
	}
}

type rootOptions struct {
	envFile   string
	location  string
	baseURL   string
	logFile   string
	configDir string
	bookmark  string
	debug     bool
}

func newRootCmd() *cobra.Command {
	var opts rootOptions

	cmd := &cobra.Command{
		Use:   "poi-admin",
		Short: "Search console for points of interest",
		Long: `poi-admin is a terminal console for building POI searches.

The search lives in the location shown in the header, so it can be copied,
opened in the web console, saved as a bookmark, or passed back with
--location (or --bookmark) to pick up where you left off. The final location is printed
on exit.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			return runConsole(cmd, cfg, opts.debug)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.envFile, "env-file", ".env", "File with POI_ADMIN_* defaults")
	f.StringVarP(&opts.location, "location", "l", "", "Location to open, e.g. \"/?search-query=...\"")
	f.StringVar(&opts.baseURL, "base-url", "", "Web console URL used by open-in-browser")
	f.StringVar(&opts.logFile, "log-file", "", "Log file path, - for stderr")
	f.StringVar(&opts.configDir, "config-dir", "", "Directory holding bookmarks")
	f.StringVarP(&opts.bookmark, "bookmark", "b", "", "Open the saved search with this name")
	cmd.MarkFlagsMutuallyExclusive("location", "bookmark")
	f.BoolVar(&opts.debug, "debug", false, "Log debug records")

	cmd.AddCommand(newEncodeCmd(), newDecodeCmd(), newHashPasswordCmd())
	return cmd
}

// loadConfig layers flags over the environment and the env file.
func loadConfig(cmd *cobra.Command, opts rootOptions) (config.Config, error) {
	cfg, err := config.Load(opts.envFile)
	if err != nil {
		return cfg, err
	}
	f := cmd.Flags()
	if f.Changed("location") {
		cfg.Location = opts.location
	}
	if f.Changed("base-url") {
		cfg.BaseURL = opts.baseURL
	}
	if f.Changed("log-file") {
		cfg.LogFile = opts.logFile
	}
	if f.Changed("config-dir") {
		cfg.ConfigDir = opts.configDir
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	if opts.bookmark == "" {
		return cfg, nil
	}

	store, err := bookmarks.NewStore(cfg.ConfigDir)
	if err != nil {
		return cfg, err
	}
	b, err := store.Get(opts.bookmark)
	if err != nil {
		return cfg, fmt.Errorf("open bookmark: %w", err)
	}
	cfg.Location = b.Location
	return cfg, cfg.Validate()
}

func runConsole(cmd *cobra.Command, cfg config.Config, debugLog bool) error {
	log, closeLog, err := logging.Open(cfg.LogFile, debugLog)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := bookmarks.NewStore(cfg.ConfigDir)
	if err != nil {
		return err
	}

	app, err := tui.NewApp(cfg, store, log)
	if err != nil {
		return err
	}
	log.Info().Str("location", cfg.Location).Str("version", version).Msg("console started")

	final, err := tea.NewProgram(app, tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("run console: %w", err)
	}
	if a, ok := final.(*tui.App); ok {
		fmt.Fprintln(cmd.OutOrStdout(), a.Location())
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
