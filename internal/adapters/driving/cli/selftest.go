package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docrag/internal/config"
	"github.com/custodia-labs/docrag/internal/core/domain"
)

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Run the sample queries against the index",
	Long: `Runs a fixed set of sample queries against the stored index and prints
the top matches of each, for a quick manual check of retrieval quality.

The queries are read from test.queries in the config file.`,
	Args: cobra.NoArgs,
	RunE: runTest,
}

func init() {
	rootCmd.AddCommand(testCmd)
}

func runTest(cmd *cobra.Command, _ []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	queries := config.DefaultTestQueries
	topK := 3
	if appConfig != nil {
		if len(appConfig.Test.Queries) > 0 {
			queries = appConfig.Test.Queries
		}
		if appConfig.Test.TopK > 0 {
			topK = appConfig.Test.TopK
		}
	}

	st := newStyles(cmd.OutOrStdout())
	ctx := commandContext(cmd)
	opts := searchDefaults()
	opts.TopK = topK

	cmd.Println(st.Title.Render("Search test"))
	for _, q := range queries {
		cmd.Println()
		cmd.Printf("Query: %s\n", q)

		resp, err := searchService.Search(ctx, q, opts)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		outputSearchResults(cmd, resp, testPreviewRunes)
		// Every remaining query would report the same
		if resp.Status == domain.SearchNoIndex {
			return nil
		}
	}
	return nil
}
