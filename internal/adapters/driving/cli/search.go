package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docrag/internal/core/domain"
)

var (
	searchLimit    int
	searchMinScore float64
	searchJSON     bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the documentation index",
	Long: `Embeds the query and ranks every indexed window by cosine similarity.
Prints the best matches with their score, source and a short preview.

Multiple arguments are joined into one query.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (default from config, 5)")
	searchCmd.Flags().Float64Var(&searchMinScore, "min-score", domain.MinCosineScore,
		"drop results scoring below this cosine similarity")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	if searchService == nil {
		return errors.New("search service not configured")
	}

	opts := searchDefaults()
	if cmd.Flags().Changed("limit") {
		opts.TopK = searchLimit
	}
	if cmd.Flags().Changed("min-score") {
		opts = opts.WithMinScore(searchMinScore)
	}

	resp, err := searchService.Search(commandContext(cmd), query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, resp)
	}

	outputSearchResults(cmd, resp, searchPreviewRunes)
	return nil
}

// searchJSONOutput is the --json shape of a response.
type searchJSONOutput struct {
	Query   string             `json:"query"`
	Status  string             `json:"status"`
	Scanned int                `json:"scanned"`
	Results []searchJSONResult `json:"results"`
}

type searchJSONResult struct {
	Rank       int     `json:"rank"`
	Score      float64 `json:"score"`
	Source     string  `json:"source"`
	ChunkIndex int     `json:"chunk_index"`
	Content    string  `json:"content"`
}

func outputSearchJSON(cmd *cobra.Command, resp *domain.SearchResponse) error {
	out := searchJSONOutput{
		Query:   resp.Query,
		Status:  string(resp.Status),
		Scanned: resp.Scanned,
		Results: make([]searchJSONResult, len(resp.Results)),
	}
	for i, r := range resp.Results {
		out.Results[i] = searchJSONResult{
			Rank:       i + 1,
			Score:      r.Score,
			Source:     r.Source,
			ChunkIndex: r.ChunkIndex,
			Content:    r.Content,
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// outputSearchResults prints a ranked list, or why it is empty.
func outputSearchResults(cmd *cobra.Command, resp *domain.SearchResponse, previewRunes int) {
	st := newStyles(cmd.OutOrStdout())

	switch resp.Status {
	case domain.SearchNoIndex:
		cmd.Println(st.Warning.Render("No index found. Run 'docrag index' first."))
		return
	case domain.SearchEmbeddingUnavailable:
		cmd.Println(st.Error.Render("Could not embed the query. Is the embedding provider running? Try 'docrag ping'."))
		return
	}

	if len(resp.Results) == 0 {
		cmd.Println("No results found.")
		return
	}

	for i, r := range resp.Results {
		// Format: [N] Score: 0.873 | Source: name
		cmd.Printf("  [%d] %s | %s\n",
			i+1,
			st.Score.Render(fmt.Sprintf("Score: %.3f", r.Score)),
			st.Source.Render("Source: "+r.Source))
		cmd.Printf("      %s\n", st.Muted.Render(preview(r.Content, previewRunes)))
		cmd.Println()
	}
}
