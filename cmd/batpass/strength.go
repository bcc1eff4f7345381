package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vaultpass/batpass-go/internal/generator"
	"github.com/vaultpass/batpass-go/internal/session"
)

func newStrengthCmd() *cobra.Command {
	var flags classFlags

	cmd := &cobra.Command{
		Use:   "strength",
		Short: "Score a password configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := session.New(nil)
			if err := flags.apply(s); err != nil {
				return err
			}

			score := s.Strength()
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d/%d %s\n",
				generator.Bar(score), score, generator.MaxScore, generator.Label(score))
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
