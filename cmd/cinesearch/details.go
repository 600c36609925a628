package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vmunix/cinesearch/internal/search"
)

var detailsCmd = &cobra.Command{
	Use:   "details <imdb-id>",
	Short: "Show the full record for one movie",
	Long: `Show the full record for one movie, including plot, cast and ratings.

Example:
  cinesearch details tt1375666`,
	Args: cobra.ExactArgs(1),
	RunE: runDetailsCmd,
}

func init() {
	rootCmd.AddCommand(detailsCmd)
}

func runDetailsCmd(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}

	details, err := a.svc.Details(cmd.Context(), strings.TrimSpace(args[0]))
	if err != nil {
		return errors.New(search.Describe(search.Classify(err), search.OpDetails))
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), details)
	}
	printDetails(cmd.OutOrStdout(), details)
	return nil
}
