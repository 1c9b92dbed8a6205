package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/benefind/internal/ingestion"
	"github.com/jonathan/benefind/internal/knowledge"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Fetch SNAP policy pages into the knowledge store",
	Long:  "Fetch one policy page (--url) or the default federal and state pages (--all), extract the main text, and store the documents for chat answers.",
	RunE:  runIngest,
}

var (
	ingestURL        string
	ingestState      string
	ingestAll        bool
	ingestUseBrowser bool
	ingestVerbose    bool
)

func init() {
	ingestCmd.Flags().StringVar(&ingestURL, "url", "", "Policy page URL to ingest")
	ingestCmd.Flags().StringVar(&ingestState, "state", "", "State the page applies to (empty for national)")
	ingestCmd.Flags().BoolVar(&ingestAll, "all", false, "Ingest the default set of policy pages")
	ingestCmd.Flags().BoolVar(&ingestUseBrowser, "use-browser", false, "Fall back to a headless browser for thin pages")
	ingestCmd.Flags().BoolVar(&ingestVerbose, "verbose", false, "Print detailed progress")

	rootCmd.AddCommand(ingestCmd)
}

func runIngest(_ *cobra.Command, _ []string) error {
	if ingestURL == "" && !ingestAll {
		return fmt.Errorf("must provide either --url or --all")
	}
	if ingestURL != "" && ingestAll {
		return fmt.Errorf("cannot use --url with --all")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	ctx := context.Background()
	store, err := knowledge.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer store.Close()

	ingester := ingestion.NewIngester(store, ingestUseBrowser, ingestVerbose)

	if ingestAll {
		count, err := ingester.IngestDefaults(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Ingested %d policy pages\n", count)
		return nil
	}

	doc, err := ingester.IngestPolicyPage(ctx, ingestState, ingestURL)
	if err != nil {
		return err
	}
	fmt.Printf("Ingested %q (%d characters)\n", doc.Title, len(doc.Content))
	return nil
}
