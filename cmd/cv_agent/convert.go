package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmartel/cv-anonymizer/internal/config"
	"github.com/jmartel/cv-anonymizer/internal/pipeline"
)

var convertCommand = &cobra.Command{
	Use:   "convert",
	Short: "Convert a candidate CV into an anonymized document",
	Long: `Runs the full anonymization pipeline: extraction -> structuring -> anonymization -> rendering.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runConvertCmd,
}

var (
	convertConfigPath  string
	convertInput       string
	convertOutput      string
	convertStyle       string
	convertFormat      string
	convertAssetsDir   string
	convertAPIKey      string
	convertDatabaseURL string
	convertVerbose     bool
)

func init() {
	// Config file flag (processed first)
	convertCommand.Flags().StringVar(&convertConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	convertCommand.Flags().StringVarP(&convertInput, "input", "i", "", "Path to the candidate CV (.pdf, .docx or .doc)")
	convertCommand.Flags().StringVarP(&convertOutput, "output", "o", "", "Output path (default cv_anonyme_<timestamp>.<ext>)")
	convertCommand.Flags().StringVarP(&convertStyle, "style", "s", "", "Rendering style: advanced or fastorgie (default advanced)")
	convertCommand.Flags().StringVarP(&convertFormat, "format", "f", "", "Output format: pdf or word (default pdf)")
	convertCommand.Flags().StringVar(&convertAssetsDir, "assets-dir", "", "Directory holding logo and footer images (optional, defaults to CV_ASSETS_DIR env var)")
	convertCommand.Flags().BoolVarP(&convertVerbose, "verbose", "v", false, "Print detailed debug information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	convertCommand.Flags().StringVar(&convertAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	// Database URL for artifact persistence
	convertCommand.Flags().StringVar(&convertDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(convertCommand)
}

func runConvertCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if convertConfigPath != "" {
		loadedCfg, err := config.LoadConfig(convertConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if err := loadedCfg.Validate(); err != nil {
			return err
		}

		cfg = *loadedCfg
		if convertVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", convertConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("input") {
		cfg.Input = convertInput
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = convertOutput
	}
	if cmd.Flags().Changed("style") {
		cfg.Style = convertStyle
	}
	if cmd.Flags().Changed("format") {
		cfg.Format = convertFormat
	}
	if cmd.Flags().Changed("assets-dir") {
		cfg.AssetsDir = convertAssetsDir
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = convertAPIKey
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = convertDatabaseURL
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = convertVerbose
	}

	// Step 3: Apply defaults for unset values
	defaults := config.Config{
		Style:  "advanced",
		Format: "pdf",
	}
	cfg = cfg.MergeWithDefaults(defaults)

	// Step 4: Validate required fields
	if cfg.Input == "" {
		return fmt.Errorf("--input is required (via flag or config)")
	}

	// Step 5: Environment fallbacks
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.AssetsDir == "" {
		cfg.AssetsDir = os.Getenv("CV_ASSETS_DIR")
	}

	opts := pipeline.Options{
		InputPath:   cfg.Input,
		OutputPath:  cfg.Output,
		Style:       cfg.Style,
		Format:      cfg.Format,
		APIKey:      cfg.APIKey,
		DatabaseURL: cfg.DatabaseURL,
		AssetsDir:   cfg.AssetsDir,
		Verbose:     cfg.Verbose,
	}

	_, err := pipeline.Run(ctx, opts)
	return err
}
