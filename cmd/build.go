/*
Copyright © 2026 Scriptdex Authors
*/
package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/scriptdex/scriptdex/internal/manifest"
	"github.com/scriptdex/scriptdex/pkg/buildinfo"
	"github.com/scriptdex/scriptdex/pkg/config"
	"github.com/scriptdex/scriptdex/pkg/exitcode"
	"github.com/scriptdex/scriptdex/pkg/logger"
)

// newBuildCommand creates a fresh build command instance.
func newBuildCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Scan the script tree and write the manifest",
		Long: `Build walks the configured scan root, parses the directive block of every
eligible script, and writes the aggregated manifest. Files missing @name or
@description are reported and skipped; the run still succeeds. Only
filesystem-level failures are fatal.`,
		Args: cobra.NoArgs,
		RunE: runBuild,
	}
	addBuildFlags(cmd)
	return cmd
}

// addBuildFlags registers the build flag set. The root command carries
// the same flags so a bare `scriptdex` invocation behaves like
// `scriptdex build`.
func addBuildFlags(cmd *cobra.Command) {
	cmd.Flags().String("root", "", "Scan root directory (overrides scan.root)")
	cmd.Flags().String("output", "", "Manifest output path (overrides output.path)")
	cmd.Flags().String("format", "", "Summary format: concise|markdown|json (overrides output.format)")
	cmd.Flags().Int("concurrency", 0, "Parallel file parsing limit (overrides scan.concurrency)")
	cmd.Flags().Bool("check", false, "Verify the manifest is up to date without rewriting it")
}

func runBuild(cmd *cobra.Command, _ []string) error {
	start := time.Now()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if v, _ := cmd.Flags().GetString("root"); v != "" {
		cfg.Scan.Root = v
	}
	if v, _ := cmd.Flags().GetString("output"); v != "" {
		cfg.Output.Path = v
	}
	if v, _ := cmd.Flags().GetString("format"); v != "" {
		cfg.Output.Format = v
	}
	if v, _ := cmd.Flags().GetInt("concurrency"); v > 0 {
		cfg.Scan.Concurrency = v
	}
	check, _ := cmd.Flags().GetBool("check")

	builder := manifest.NewBuilder(manifest.Options{
		Extensions:      cfg.Scan.Extensions,
		CommentPrefixes: cfg.Scan.CommentPrefixes,
		Include:         cfg.Scan.Include,
		Exclude:         cfg.Scan.Exclude,
		Concurrency:     cfg.Scan.Concurrency,
		Collisions:      manifest.CollisionPolicy(cfg.Scan.Collisions),
		UseIgnoreFiles:  cfg.Scan.UseIgnoreFiles,
	})

	m, warnings, err := builder.Build(cmd.Context(), cfg.Scan.Root)
	if err != nil {
		return err
	}

	if check {
		existing, err := manifest.Load(cfg.Output.Path)
		if err != nil {
			// A missing artifact is staleness; anything else is a
			// read failure the operator has to resolve first.
			if errors.Is(err, os.ErrNotExist) {
				return &exitError{code: exitcode.StaleManifest,
					msg: fmt.Sprintf("no manifest at %s, run `scriptdex build`", cfg.Output.Path)}
			}
			return fmt.Errorf("failed to read manifest %s: %w", cfg.Output.Path, err)
		}
		if !m.SameScripts(existing) {
			return &exitError{code: exitcode.StaleManifest,
				msg: fmt.Sprintf("manifest %s is out of date, run `scriptdex build`", cfg.Output.Path)}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "manifest up to date (%d scripts)\n", len(m.Scripts))
		return nil
	}

	if err := m.Write(cfg.Output.Path); err != nil {
		return err
	}
	logger.Debug("manifest written",
		logger.String("path", cfg.Output.Path),
		logger.Int("scripts", len(m.Scripts)))

	report := manifest.NewReport(m, warnings, buildinfo.Version(), cfg.Scan.Root, time.Since(start))
	out, err := manifest.NewFormatter(manifest.OutputFormat(cfg.Output.Format)).Format(report)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
