// Package main provides the entry point for the CV anonymizer.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cv_agent",
	Short: "CV anonymizer",
	Long:  "cv_agent extracts the content of a candidate CV (PDF or Word), anonymizes the identity fields, and renders a branded, anonymous CV ready to send to clients.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
