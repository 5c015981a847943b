package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmartel/cv-anonymizer/internal/server"
)

var (
	servePort      int
	serveUploadDir string
	serveVerbose   bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes REST endpoints for converting CVs into anonymized documents.

Set JWT_SECRET to require bearer authentication; mint tokens with the token command.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveUploadDir, "upload-dir", "", "Directory for uploads and generated documents (default: a temp directory)")
	serveCmd.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fmt.Println("Warning: GEMINI_API_KEY is not set")
		fmt.Println("Continuing with regex-only CV structuring...")
	}

	// Persistence and assets are optional; the pipeline degrades without them.
	cfg := server.Config{
		Port:        servePort,
		APIKey:      apiKey,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		AssetsDir:   os.Getenv("CV_ASSETS_DIR"),
		UploadDir:   serveUploadDir,
		Verbose:     serveVerbose,
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
