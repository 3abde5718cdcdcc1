package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/application-tracker/internal/config"
	"github.com/jonathan/application-tracker/internal/server"
	"github.com/jonathan/application-tracker/internal/store/backend"
	"github.com/spf13/cobra"
)

var (
	tokenEmail       string
	tokenDatabaseURL string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for an existing account",
	Long:  `Look up an account by email and print a signed bearer token for it. Requires JWT_SECRET.`,
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "Email of the account")
	tokenCmd.Flags().StringVar(&tokenDatabaseURL, "db-url", "", "Database URL (optional, defaults to DATABASE_URL env var)")
	_ = tokenCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	databaseURL, err := databaseURLFrom(tokenDatabaseURL)
	if err != nil {
		return err
	}
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return fmt.Errorf("failed to create JWT config: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := backend.Open(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	user, err := st.GetUserByEmail(ctx, tokenEmail)
	if err != nil {
		return fmt.Errorf("failed to find user %s: %w", tokenEmail, err)
	}

	token, err := server.NewJWTService(jwtConfig).GenerateToken(user.ID)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}

// databaseURLFrom prefers an explicit flag value over DATABASE_URL.
func databaseURLFrom(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if env := os.Getenv("DATABASE_URL"); env != "" {
		return env, nil
	}
	return "", fmt.Errorf("DATABASE_URL environment variable or --db-url is required")
}
