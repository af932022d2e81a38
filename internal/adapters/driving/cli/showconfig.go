package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Prints the configuration after applying defaults, the config file and
DOCRAG_* environment variables. Secrets are masked.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	if appConfig == nil {
		return errors.New("configuration not loaded")
	}
	c := appConfig
	st := newStyles(cmd.OutOrStdout())

	cmd.Println(st.Title.Render("[Sources]"))
	cmd.Printf("  Root:      %s\n", c.Root)
	cmd.Printf("  Overview:  %s\n", c.Sources.Overview)
	cmd.Printf("  Docs:      %s/%s\n", c.Sources.DocsDir, c.Sources.DocsPattern)
	cmd.Printf("  Guides:    %v\n", c.Sources.Guides)
	cmd.Println()

	cmd.Println(st.Title.Render("[Chunking]"))
	cmd.Printf("  Size:      %d\n", c.Chunking.Size)
	cmd.Printf("  Overlap:   %d\n", c.Chunking.Overlap)
	cmd.Println()

	cmd.Println(st.Title.Render("[Embedding]"))
	cmd.Printf("  Provider:  %s\n", c.Embedding.Provider)
	cmd.Printf("  Model:     %s\n", c.Embedding.Model)
	cmd.Printf("  Base URL:  %s\n", c.Embedding.BaseURL)
	cmd.Printf("  Timeout:   %s\n", c.Embedding.Timeout)
	if c.Embedding.APIKey != "" {
		cmd.Printf("  API Key:   %s\n", maskAPIKey(c.Embedding.APIKey))
	}
	if c.Embedding.Rate > 0 {
		cmd.Printf("  Rate:      %g/s\n", c.Embedding.Rate)
	}
	cmd.Println()

	cmd.Println(st.Title.Render("[Store]"))
	cmd.Printf("  Backend:   %s\n", c.Store.Backend)
	switch c.Store.Backend {
	case "sqlite":
		cmd.Printf("  Path:      %s\n", c.ResolvePath(c.Store.SQLite.Path))
	case "s3":
		cmd.Printf("  Object:    s3://%s/%s\n", c.Store.S3.Bucket, c.Store.S3.Key)
		if c.Store.S3.SecretAccessKey != "" {
			cmd.Printf("  Secret:    %s\n", maskAPIKey(c.Store.S3.SecretAccessKey))
		}
	case "file":
		cmd.Printf("  Path:      %s\n", c.ResolvePath(c.Store.Path))
	}
	cmd.Println()

	cmd.Println(st.Title.Render("[Search]"))
	cmd.Printf("  Top K:     %d\n", c.Search.TopK)
	cmd.Printf("  Min score: %g\n", c.Search.MinScore)
	return nil
}
