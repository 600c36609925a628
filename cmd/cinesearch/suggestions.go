package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vmunix/cinesearch/internal/search"
)

var suggestionsCmd = &cobra.Command{
	Use:   "suggestions",
	Short: "List popular movies",
	Long: `List popular movies: the first match for each configured well-known
title, fetched concurrently. Titles that fail to load are skipped.`,
	Args: cobra.NoArgs,
	RunE: runSuggestionsCmd,
}

func init() {
	rootCmd.AddCommand(suggestionsCmd)
}

func runSuggestionsCmd(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}

	results, err := a.svc.Suggestions(cmd.Context())
	if err != nil {
		return errors.New(search.Describe(search.Classify(err), search.OpSuggestions))
	}

	w := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(w, results)
	}

	if len(results) == 0 {
		fmt.Fprintln(w, "No suggestions could be loaded")
		return nil
	}

	fmt.Fprintf(w, "Popular movies (%s):\n\n", strings.Join(a.svc.SuggestionTitles(), ", "))
	printResults(w, results)
	return nil
}
