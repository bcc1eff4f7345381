package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vaultpass/batpass-go/internal/config"
	"github.com/vaultpass/batpass-go/internal/token"
)

func newTokenCmd() *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the stats API",
		Long:  "Signs a token with JWT_SECRET. The token authorizes GET /api/v1/stats and /api/v1/stats/recent.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("ttl") {
				ttl = cfg.JWTExpiry
			}

			tok, err := token.Generate(subject, cfg.JWTSecret, ttl)
			if err != nil {
				return fmt.Errorf("issuing token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}

	cmd.Flags().StringVarP(&subject, "subject", "s", "", "Operator name carried in the token (required)")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime (default JWT_EXPIRY)")
	if err := cmd.MarkFlagRequired("subject"); err != nil {
		panic(fmt.Sprintf("failed to mark subject flag as required: %v", err))
	}
	return cmd
}
