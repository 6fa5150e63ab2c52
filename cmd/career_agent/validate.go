package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-roadmap/internal/schemas"
)

var validateSchemaName string

var validateCmd = &cobra.Command{
	Use:   "validate <file.json>",
	Short: "Validate a JSON document against a handoff schema",
	Long:  `Validates a JSON file against one of the embedded handoff schemas (user_profile, market_analysis). Useful for checking stage artifacts by hand.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateSchemaName, "schema", "", fmt.Sprintf("Schema name, one of: %s", strings.Join(schemas.Names(), ", ")))
	_ = validateCmd.MarkFlagRequired("schema")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	schemaContent, err := schemas.Get(validateSchemaName)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	if err := schemas.ValidateJSONString(schemaContent, string(data)); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s is valid against schema %q\n", args[0], validateSchemaName)
	return nil
}
