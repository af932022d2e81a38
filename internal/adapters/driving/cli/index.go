package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docrag/internal/core/domain"
)

var indexWatch bool

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the documentation index",
	Long: `Loads the overview, the docs directory and the guides, splits them into
overlapping windows, embeds every window and replaces the stored index.

Windows whose embedding fails are skipped and listed. If no window can be
embedded the existing index is left untouched.

With --watch the index is rebuilt whenever a source file changes.`,
	Args: cobra.NoArgs,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().BoolVarP(&indexWatch, "watch", "w", false, "rebuild when documentation changes")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	ctx := commandContext(cmd)

	if err := buildIndex(cmd); err != nil {
		return err
	}
	if !indexWatch {
		return nil
	}

	if sourceWatcher == nil {
		return errors.New("watching is not supported by the configured loader")
	}

	cmd.Println("Watching for changes (Ctrl+C to stop)...")
	err := sourceWatcher.Watch(ctx, func() {
		cmd.Println()
		cmd.Println("Change detected, rebuilding...")
		// A failed rebuild keeps the previous index and the watch running
		if err := buildIndex(cmd); err != nil {
			cmd.PrintErrf("Rebuild failed: %v\n", err)
		}
	})
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// buildIndex runs one indexing pass and prints its report.
func buildIndex(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	st := newStyles(out)
	interactive := isTerminal(out)

	report, err := indexService.Build(commandContext(cmd), domain.BuildOptions{
		Progress: func(p domain.IndexProgress) { printProgress(out, st, interactive, p) },
	})
	if report != nil {
		printReport(cmd, st, report)
	}
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}
	return nil
}

func printProgress(out io.Writer, st *styles, interactive bool, p domain.IndexProgress) {
	switch p.Stage {
	case domain.StageMissing:
		fmt.Fprintf(out, "%s %s (%s)\n", st.Warning.Render("skip"), p.Source, p.Detail)
	case domain.StageLoaded:
		fmt.Fprintf(out, "%s %s (%d chars)\n", st.Success.Render("load"), p.Source, p.Count)
	case domain.StageChunked:
		fmt.Fprintf(out, "     %s: %d chunks\n", p.Source, p.Count)
	case domain.StageSkipped:
		if interactive {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "%s %s #%d: %s\n", st.Error.Render("fail"), p.Source, p.Count, p.Detail)
	case domain.StageEmbedded:
		if interactive {
			// Overwrite the same line on terminals
			fmt.Fprintf(out, "\rEmbedding... %d/%d", p.Count, p.Total)
			if p.Count == p.Total {
				fmt.Fprintln(out)
			}
			return
		}
		fmt.Fprintf(out, "Embedded %d/%d\n", p.Count, p.Total)
	case domain.StageSaved:
		fmt.Fprintf(out, "%s %s\n", st.Success.Render("save"), p.Detail)
	}
}

func printReport(cmd *cobra.Command, st *styles, r *domain.IndexReport) {
	cmd.Println()
	cmd.Println(st.Title.Render("Index summary"))
	cmd.Printf("  Documents: %d (%d missing)\n", r.Documents, len(r.Missing))
	cmd.Printf("  Chunks:    %d generated, %d indexed, %d skipped\n",
		r.ChunksGenerated, r.ChunksIndexed, len(r.Skipped))
	if r.Dimensions > 0 {
		cmd.Printf("  Dims:      %d\n", r.Dimensions)
	}
	if r.Saved {
		cmd.Printf("  Saved to:  %s in %s\n", r.Location, r.Duration.Round(time.Millisecond))
	} else {
		cmd.Println(st.Warning.Render("  Index not saved"))
	}
}
