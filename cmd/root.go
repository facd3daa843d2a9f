package cmd

import (
	"log/slog"
	"os"

	"github.com/Advait-MD/Conductor/cmd/commands/action"
	cfgcmd "github.com/Advait-MD/Conductor/cmd/commands/config"
	"github.com/Advait-MD/Conductor/cmd/commands/doctor"
	"github.com/Advait-MD/Conductor/cmd/commands/history"
	"github.com/Advait-MD/Conductor/cmd/commands/lineup"
	"github.com/Advait-MD/Conductor/internal/catalog"
	"github.com/Advait-MD/Conductor/internal/config"
	runsvc "github.com/Advait-MD/Conductor/internal/services/run"
	"github.com/Advait-MD/Conductor/internal/tui"
	"github.com/Advait-MD/Conductor/internal/util"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// rootCmd represents the base command when called without any subcommands.
func rootCmd() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "conductor",
		Short: "A launcher for the small actions you run every day",
		Long: `conductor is a command-line launcher for the small actions you run
every day: open a project, toggle wifi, start your usual tools. Actions
live in a catalog, can be grouped into lineups, and every run is kept
in a local history.

Quick start:
  conductor                          # Interactive TUI
  conductor action list              # List available actions
  conductor action run open_notepad  # Run a single action
  conductor lineup run dev-start     # Fire a whole lineup at once
  conductor history list             # See what ran recently`,
		PersistentPreRunE: setup,
		RunE:              runRoot,
		SilenceUsage:      true,
	}

	cmd.AddCommand(action.NewCommand())
	cmd.AddCommand(lineup.NewCommand())
	cmd.AddCommand(history.NewCommand())
	cmd.AddCommand(cfgcmd.NewCommand())
	cmd.AddCommand(doctor.NewCommand())

	cmd.PersistentFlags().String("catalog", "", "Extra catalog file merged over the built-in actions (overrides config)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	return cmd
}

// setup runs before every subcommand: it configures logging and
// backfills flags and tunables from the persistent config.
func setup(cmd *cobra.Command, args []string) error {
	level := slog.LevelWarn
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if flag := cmd.Flag("catalog"); flag != nil && !flag.Changed && cfg.CatalogPath != "" {
		if err := flag.Value.Set(cfg.CatalogPath); err != nil {
			return err
		}
	}

	if cfg.HistoryRetention != "" {
		if d, err := util.ParseDuration(cfg.HistoryRetention); err == nil {
			runsvc.RetentionPeriod = d
		}
	}

	return nil
}

// runRoot handles a bare invocation: open the TUI on a terminal,
// otherwise print help.
func runRoot(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return cmd.Help()
	}

	catalogPath := cmd.Flag("catalog").Value.String()
	registry, err := catalog.Load(catalogPath)
	if err != nil {
		return err
	}

	return tui.Run(registry, catalogPath)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	var root = rootCmd()
	err := root.Execute()
	if err != nil {
		os.Exit(1)
	}
}
