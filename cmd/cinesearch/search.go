package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vmunix/cinesearch/internal/search"
	"github.com/vmunix/cinesearch/pkg/omdb"
)

var (
	searchPage  int
	searchPages int
	searchSort  string
)

var searchCmd = &cobra.Command{
	Use:   "search [flags] <query>...",
	Short: "Search movies by title",
	Long: `Search movies by title.

Results are deduplicated by IMDb id. --pages keeps loading further pages
while the API reports more results.

Examples:
  cinesearch search "The Matrix"
  cinesearch search batman --pages 3 --sort year
  cinesearch search alien --page 2 --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearchCmd,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().IntVar(&searchPage, "page", 1, "Fetch only this page")
	searchCmd.Flags().IntVar(&searchPages, "pages", 1, "Number of pages to accumulate from page 1")
	searchCmd.Flags().StringVar(&searchSort, "sort", "", "Sort order: upstream, relevance, year, title")
}

// searchOutput is the --json shape of a search
type searchOutput struct {
	Query   string              `json:"query"`
	Page    int                 `json:"page"`
	Total   int                 `json:"total"`
	HasMore bool                `json:"has_more"`
	Results []omdb.SearchResult `json:"results"`
}

func runSearchCmd(cmd *cobra.Command, args []string) error {
	query := search.NormalizeQuery(strings.Join(args, " "))
	mode, err := search.ParseSortMode(searchSort)
	if err != nil {
		return err
	}
	if searchPage < 1 || searchPages < 1 {
		return errors.New("--page and --pages must be at least 1")
	}
	if searchPage > 1 && searchPages > 1 {
		return errors.New("--page and --pages cannot be combined")
	}

	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	var out searchOutput
	if searchPage > 1 {
		page, err := a.svc.Search(ctx, query, searchPage)
		if err != nil {
			return describeSearchErr(cmd, a, query, err)
		}
		out = searchOutput{
			Query:   query,
			Page:    searchPage,
			Total:   page.Total,
			HasMore: omdb.HasMore(searchPage, a.svc.PageSize(), page.Total),
			Results: page.Results,
		}
	} else {
		session, err := accumulate(cmd, a, query, searchPages)
		if err != nil {
			return err
		}
		out = searchOutput{
			Query:   session.Query(),
			Page:    session.Page(),
			Total:   session.Total(),
			HasMore: session.HasMore(),
			Results: session.Results(),
		}
	}
	out.Results = search.SortResults(out.Results, mode, query)

	w := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(w, out)
	}

	if len(out.Results) == 0 {
		fmt.Fprintf(w, "No movies found for %q\n", query)
		printHint(cmd, a, query)
		return nil
	}

	fmt.Fprintf(w, "Found %s for %q (showing %d):\n\n", pluralize(out.Total, "result"), query, len(out.Results))
	printResults(w, out.Results)
	if out.HasMore {
		fmt.Fprintf(w, "\nMore results available: --pages %d\n", out.Page+1)
	}
	return nil
}

// accumulate drives a session through page 1 and up to pages-1 load-more
// requests, the same way the interactive screen does
func accumulate(cmd *cobra.Command, a *app, query string, pages int) (*search.Session, error) {
	ctx := cmd.Context()
	session := search.NewSession(a.svc.PageSize())

	req := session.BeginSearch(query)
	for {
		page, err := a.svc.Search(ctx, req.Query, req.Page)
		session.ApplySearch(req, page, search.Classify(err))
		if err != nil {
			if req.Page == 1 {
				return nil, describeSearchErr(cmd, a, query, err)
			}
			// Keep what was loaded and report the failed page
			a.log.Warn("stopped loading pages", "page", req.Page, "error", err)
			session.DismissError()
			return session, nil
		}
		if req.Page >= pages {
			return session, nil
		}

		next, ok := session.BeginLoadMore()
		if !ok {
			return session, nil
		}
		req = next
	}
}

// describeSearchErr turns err into the user-facing message, printing a
// did-you-mean hint for not-found searches
func describeSearchErr(cmd *cobra.Command, a *app, query string, err error) error {
	if omdb.IsNotFound(err) {
		printHint(cmd, a, query)
	}
	return errors.New(search.Describe(search.Classify(err), search.OpSearch))
}

func printHint(cmd *cobra.Command, a *app, query string) {
	if title, ok := search.DidYouMean(query, a.svc.SuggestionTitles()); ok {
		fmt.Fprintf(cmd.ErrOrStderr(), "Did you mean %q?\n", title)
	}
}
