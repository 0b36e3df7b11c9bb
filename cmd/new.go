/*
Copyright © 2026 Scriptdex Authors
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/aymerick/raymond"
	"github.com/spf13/cobra"

	"github.com/scriptdex/scriptdex/internal/assets"
	"github.com/scriptdex/scriptdex/pkg/config"
	"github.com/scriptdex/scriptdex/pkg/logger"
)

var scriptNameRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// newNewCommand creates a fresh new command instance.
func newNewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Scaffold a new annotated script from a template",
		Long: `New renders a script template into the scan root with the directive block
already filled in, so the result indexes cleanly on the next build.
Available templates: task (default), report, filter.`,
		Args: cobra.ExactArgs(1),
		RunE: runNew,
	}
	cmd.Flags().String("template", "task", "Template name from the embedded catalog")
	cmd.Flags().String("description", "", "Value for the @description directive")
	cmd.Flags().String("author", "", "Value for the @author directive (omitted when empty)")
	cmd.Flags().String("dir", "", "Target directory (defaults to scan.root)")
	return cmd
}

func runNew(cmd *cobra.Command, args []string) error {
	name := args[0]
	if !scriptNameRe.MatchString(name) {
		return fmt.Errorf("script name %q must match %s", name, scriptNameRe.String())
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	templateName, _ := cmd.Flags().GetString("template")
	description, _ := cmd.Flags().GetString("description")
	author, _ := cmd.Flags().GetString("author")
	dir, _ := cmd.Flags().GetString("dir")
	if dir == "" {
		dir = cfg.Scan.Root
	}
	if description == "" {
		description = "TODO: describe " + name
	}

	tpl, err := assets.FindTemplate(templateName)
	if err != nil {
		return err
	}
	rendered, err := raymond.Render(tpl.Body, map[string]interface{}{
		"name":        name,
		"description": description,
		"author":      author,
	})
	if err != nil {
		return fmt.Errorf("failed to render template %q: %w", templateName, err)
	}

	path := filepath.Join(dir, name+cfg.Scan.Extensions[0])
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists, refusing to overwrite", path)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	// Scripts are meant to be executable.
	if err := os.WriteFile(path, []byte(rendered), 0o755); err != nil { // #nosec G306
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	logger.Info("script scaffolded", logger.String("path", path), logger.String("template", templateName))
	fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", path)
	return nil
}
