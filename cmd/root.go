/*
Copyright © 2026 Scriptdex Authors
*/
package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/scriptdex/scriptdex/pkg/buildinfo"
	"github.com/scriptdex/scriptdex/pkg/exitcode"
	"github.com/scriptdex/scriptdex/pkg/logger"
)

// exitError carries a specific process exit code up to Execute. RunE
// implementations return it instead of calling os.Exit, so command
// trees built in tests terminate normally.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }

// newRootCommand creates a fresh root command instance.
// The factory pattern lets tests build isolated command trees without
// shared state.
func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scriptdex",
		Short: "Index directive-annotated scripts into a JSON manifest",
		Long: `Scriptdex scans a directory of scripts whose leading comment blocks carry
@directive annotations (@name, @description, @arg, ...) and aggregates the
extracted metadata into a single manifest.json consumed by downstream tooling.

Examples:
   scriptdex              # Scan the configured root and write the manifest
   scriptdex build --check  # Fail when the manifest is out of date
   scriptdex validate     # Check an existing manifest against the schema
   scriptdex new deploy   # Scaffold a new annotated script`,
		Args: cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			initializeLogger(cmd)
		},
		// Running without a subcommand builds the manifest, the one
		// operation most invocations want.
		RunE:          runBuild,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("log-level", "info", "Set log level (trace|debug|info|warn|error)")
	cmd.PersistentFlags().Bool("json-logs", false, "Output logs in JSON format")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	addBuildFlags(cmd)

	cmd.Version = buildinfo.BinaryVersion
	cmd.SetVersionTemplate("scriptdex {{.Version}}\n")

	return cmd
}

// registerSubcommands adds all subcommands to the root command. Each
// subcommand comes from its own factory so every tree carries fresh
// flag sets.
func registerSubcommands(cmd *cobra.Command) {
	cmd.AddCommand(newBuildCommand())
	cmd.AddCommand(newValidateCommand())
	cmd.AddCommand(newNewCommand())
	cmd.AddCommand(newVersionCommand())
}

// Execute runs the CLI. Called by main.main().
func Execute() {
	cmd := newRootCommand()
	registerSubcommands(cmd)
	if err := cmd.Execute(); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			logger.Error(ee.msg)
			os.Exit(ee.code)
		}
		logger.Error("Command execution failed", logger.Err(err))
		os.Exit(exitcode.GeneralError)
	}
}

// initializeLogger sets up the logger based on command flags
func initializeLogger(cmd *cobra.Command) {
	levelStr, _ := cmd.Flags().GetString("log-level")
	jsonLogs, _ := cmd.Flags().GetBool("json-logs")
	noColor, _ := cmd.Flags().GetBool("no-color")

	logger.Initialize(logger.Config{
		Level:    logger.ParseLevel(levelStr),
		UseColor: !noColor,
		JSON:     jsonLogs,
	})
}
