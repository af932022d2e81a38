// Package cli provides the docrag command line interface.
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docrag/internal/config"
	"github.com/custodia-labs/docrag/internal/core/domain"
	"github.com/custodia-labs/docrag/internal/core/ports/driven"
	"github.com/custodia-labs/docrag/internal/core/ports/driving"
	"github.com/custodia-labs/docrag/internal/logger"
	"github.com/custodia-labs/docrag/internal/telemetry"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verbose bool
	quiet   bool
)

// Services are injected by main before Execute.
var (
	indexService  driving.IndexService
	searchService driving.SearchService
	sourceWatcher driven.SourceWatcher
	appConfig     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "docrag",
	Short: "Semantic search over project documentation",
	Long: `docrag indexes a project's markdown documentation into overlapping text
windows, embeds each window with a local or hosted embedding model and answers
questions by ranking the stored windows by cosine similarity.

Run 'docrag index' once, then 'docrag search "your question"'.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		telemetry.AddBreadcrumb(commandContext(cmd), "command", cmd.CommandPath())
		switch {
		case quiet:
			logger.SetLevel(logger.LevelQuiet)
		case verbose:
			logger.SetLevel(logger.LevelVerbose)
		default:
			logger.SetLevel(logger.LevelNormal)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only print results and errors")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}

// Services bundles what the commands need.
type Services struct {
	Index   driving.IndexService
	Search  driving.SearchService
	Watcher driven.SourceWatcher
	Config  *config.Config
}

// SetServices injects the services used by every command.
func SetServices(s Services) {
	indexService = s.Index
	searchService = s.Search
	sourceWatcher = s.Watcher
	appConfig = s.Config
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command with ctx. Command output goes to stdout,
// diagnostics to stderr.
func Execute(ctx context.Context) error {
	rootCmd.SetOut(os.Stdout)
	rootCmd.SetErr(os.Stderr)
	return rootCmd.ExecuteContext(ctx)
}

// searchDefaults returns the configured query options.
func searchDefaults() domain.SearchOptions {
	if appConfig == nil {
		return domain.DefaultSearchOptions()
	}
	return appConfig.SearchOptions()
}

// commandContext returns the command's context, or Background when the
// command was executed without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
