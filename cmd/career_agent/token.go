package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-roadmap/internal/config"
	"github.com/jonathan/career-roadmap/internal/server"
)

var tokenSubject string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a JWT bearer token for the API",
	Long:  `Generates a signed bearer token for use against a server started with --auth. Reads JWT_SECRET and JWT_EXPIRATION_HOURS from the environment.`,
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "cli", "Token subject (who the token is issued to)")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return err
	}

	token, err := server.NewJWTService(jwtConfig).GenerateToken(tokenSubject)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
