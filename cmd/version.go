/*
Copyright © 2026 Scriptdex Authors
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/scriptdex/scriptdex/pkg/buildinfo"
)

// newVersionCommand creates a fresh version command instance.
func newVersionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show scriptdex version and build information",
		RunE:  runVersion,
	}
	cmd.Flags().Bool("json", false, "Output version information in JSON format")
	return cmd
}

func runVersion(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		info := map[string]interface{}{
			"version":        buildinfo.Version(),
			"manifestFormat": 1,
			"goVersion":      runtime.Version(),
			"platform":       runtime.GOOS,
			"arch":           runtime.GOARCH,
		}
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}
	fmt.Fprintf(out, "scriptdex %s (%s %s/%s)\n",
		buildinfo.Version(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
	return nil
}
