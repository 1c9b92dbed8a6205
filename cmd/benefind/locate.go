package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/benefind/internal/geocode"
	"github.com/jonathan/benefind/internal/observability"
	"github.com/jonathan/benefind/internal/resources"
)

var locateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Find food pantries and food drives near a ZIP code",
	RunE:  runLocate,
}

var (
	locateZip    string
	locateState  string
	locateRadius float64
	locateJSON   bool
)

func init() {
	locateCmd.Flags().StringVar(&locateZip, "zip", "", "5-digit ZIP code (required)")
	locateCmd.Flags().StringVar(&locateState, "state", "", "US state, used to cross-check the ZIP code")
	locateCmd.Flags().Float64Var(&locateRadius, "radius", 0, "Search radius in miles (default 10)")
	locateCmd.Flags().BoolVar(&locateJSON, "json", false, "Print results as JSON")

	_ = locateCmd.MarkFlagRequired("zip")

	rootCmd.AddCommand(locateCmd)
}

func runLocate(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	geocoder := geocode.NewClient()
	loc, err := geocoder.Resolve(ctx, locateZip, locateState)
	if err != nil {
		return err
	}

	httpClient := &http.Client{Timeout: 20 * time.Second}
	pantries := resources.NewOverpassClient(httpClient)
	events := resources.NewEventbriteClient(os.Getenv("EVENTBRITE_TOKEN"), httpClient)
	finder := resources.NewFinder(pantries, events, nil)

	results, err := finder.Search(ctx, loc, locateRadius)
	if err != nil {
		return err
	}

	if locateJSON {
		out, err := json.MarshalIndent(map[string]any{
			"location":  loc,
			"resources": results,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	if loc.City != "" {
		fmt.Printf("Results near %s, %s %s\n\n", loc.City, loc.State, loc.ZipCode)
	}
	printer := observability.NewPrinter(os.Stdout)
	printer.PrintResources(results)
	return nil
}
