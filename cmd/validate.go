/*
Copyright © 2026 Scriptdex Authors
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scriptdex/scriptdex/pkg/config"
	"github.com/scriptdex/scriptdex/pkg/exitcode"
	"github.com/scriptdex/scriptdex/pkg/schema"
)

// newValidateCommand creates a fresh validate command instance.
func newValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [manifest]",
		Short: "Validate a manifest against the format-v1 schema",
		Long: `Validate checks a manifest document against the embedded JSON schema.
Without an argument the configured output.path is checked. YAML input is
accepted alongside JSON.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runValidate,
	}
	cmd.Flags().Bool("json", false, "Output the validation result as JSON")
	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	} else {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		path = cfg.Output.Path
	}

	data, err := os.ReadFile(path) // #nosec G304 -- operator-chosen manifest path
	if err != nil {
		return fmt.Errorf("failed to read manifest: %w", err)
	}

	result, err := schema.ValidateManifest(data)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		encoded, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(encoded))
	} else if result.Valid {
		fmt.Fprintf(out, "%s is valid\n", path)
	} else {
		fmt.Fprintf(out, "%s is invalid:\n", path)
		for _, e := range result.Errors {
			if e.Path != "" {
				fmt.Fprintf(out, " - %s: %s\n", e.Path, e.Message)
			} else {
				fmt.Fprintf(out, " - %s\n", e.Message)
			}
		}
	}

	if !result.Valid {
		return &exitError{code: exitcode.ValidationError,
			msg: fmt.Sprintf("%s failed validation", path)}
	}
	return nil
}
