package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jmartel/cv-anonymizer/internal/config"
	"github.com/jmartel/cv-anonymizer/internal/server"
)

var tokenClientID string

var tokenCommand = &cobra.Command{
	Use:   "token",
	Short: "Mint a JWT for calling the REST API",
	Long: `Mint a signed JWT accepted by the serve command when JWT_SECRET is set.

The token is signed with JWT_SECRET and expires after JWT_EXPIRATION_HOURS
(default 24). Pass --client-id to reuse an existing client identity; by
default a fresh one is generated.`,
	RunE: runToken,
}

func init() {
	tokenCommand.Flags().StringVar(&tokenClientID, "client-id", "", "Client UUID to embed in the token (default: a new UUID)")
	rootCmd.AddCommand(tokenCommand)
}

func runToken(cmd *cobra.Command, _ []string) error {
	cfg, err := config.NewJWTConfig()
	if err != nil {
		return err
	}

	clientID := uuid.New()
	if tokenClientID != "" {
		clientID, err = uuid.Parse(tokenClientID)
		if err != nil {
			return fmt.Errorf("invalid --client-id: %w", err)
		}
	}

	token, err := server.NewJWTService(cfg).GenerateToken(clientID)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Client ID: %s\n", clientID)
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
