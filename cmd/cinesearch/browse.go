package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/vmunix/cinesearch/internal/config"
	"github.com/vmunix/cinesearch/internal/logging"
	"github.com/vmunix/cinesearch/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Open the interactive search screen",
	Long: `Open the interactive search screen.

Type to search; results appear after a short pause. Use tab or the
arrow keys to move into the results, enter for details, m to load
more, / to filter, s to change sort order and esc to clear.`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cfg, _, err := config.Resolve(configPath)
	if err != nil {
		return err
	}

	// The screen owns the terminal, so logs go to the configured file
	logger, closer, err := logging.OpenFile(cfg.Log.File, effectiveLogLevel(cfg))
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v, logging disabled\n", err)
		logger = logging.Null()
	} else {
		defer closer.Close()
	}

	a := newApp(cfg, logger)
	model := tui.NewModel(a.svc, tui.Options{
		Debounce:       cfg.Search.Debounce,
		GridColumns:    cfg.UI.GridColumns,
		RequestTimeout: 2 * cfg.OMDB.Timeout,
	}, a.log)

	a.log.Info("starting search screen", "version", version)
	if err := tui.Run(model, tea.WithAltScreen()); err != nil {
		a.log.Error("search screen error", "error", err)
		return fmt.Errorf("search screen: %w", err)
	}
	return nil
}
