package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docrag/internal/core/domain"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show information about the stored index",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	summary, err := indexService.Summary(commandContext(cmd))
	if errors.Is(err, domain.ErrIndexNotFound) {
		cmd.Println("No index found. Run 'docrag index' first.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading index: %w", err)
	}

	if statsJSON {
		return outputStatsJSON(cmd, summary)
	}

	st := newStyles(cmd.OutOrStdout())
	meta := summary.Metadata

	cmd.Println(st.Title.Render("Index"))
	cmd.Printf("  Location:  %s\n", summary.Location)
	if meta.IndexID != "" {
		cmd.Printf("  Run:       %s\n", meta.IndexID)
	}
	if !meta.CreatedAt.IsZero() {
		cmd.Printf("  Created:   %s\n", meta.CreatedAt.Local().Format(time.DateTime))
	}
	cmd.Printf("  Model:     %s\n", meta.EmbeddingModel)
	cmd.Printf("  Chunking:  %d chars, %d overlap\n", meta.ChunkSize, meta.ChunkOverlap)
	cmd.Printf("  Chunks:    %d\n", meta.TotalChunks)
	if meta.Dimensions > 0 {
		cmd.Printf("  Dims:      %d\n", meta.Dimensions)
	}

	if len(summary.Sources) > 0 {
		cmd.Println()
		cmd.Println(st.Title.Render("Sources"))
		for _, s := range summary.Sources {
			cmd.Printf("  %-40s %d\n", s.Source, s.Chunks)
		}
	}
	return nil
}

func outputStatsJSON(cmd *cobra.Command, summary *domain.IndexSummary) error {
	type source struct {
		Source string `json:"source"`
		Chunks int    `json:"chunks"`
	}
	out := struct {
		Location       string    `json:"location"`
		IndexID        string    `json:"index_id,omitempty"`
		CreatedAt      time.Time `json:"created_at"`
		EmbeddingModel string    `json:"embedding_model"`
		ChunkSize      int       `json:"chunk_size"`
		ChunkOverlap   int       `json:"chunk_overlap"`
		TotalChunks    int       `json:"total_chunks"`
		Dimensions     int       `json:"dimensions"`
		Sources        []source  `json:"sources"`
	}{
		Location:       summary.Location,
		IndexID:        summary.Metadata.IndexID,
		CreatedAt:      summary.Metadata.CreatedAt,
		EmbeddingModel: summary.Metadata.EmbeddingModel,
		ChunkSize:      summary.Metadata.ChunkSize,
		ChunkOverlap:   summary.Metadata.ChunkOverlap,
		TotalChunks:    summary.Metadata.TotalChunks,
		Dimensions:     summary.Metadata.Dimensions,
		Sources:        make([]source, len(summary.Sources)),
	}
	for i, s := range summary.Sources {
		out.Sources[i] = source{Source: s.Source, Chunks: s.Chunks}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
