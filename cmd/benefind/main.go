// Package main provides the entry point for the Benefind CLI and API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "benefind",
	Short: "SNAP eligibility estimates and food resource lookup",
	Long:  "Benefind estimates SNAP eligibility from household facts, locates nearby food pantries and food drives, and answers benefit questions over a REST API with optional voice output.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
