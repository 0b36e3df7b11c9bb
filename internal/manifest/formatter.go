/*
Copyright © 2026 Scriptdex Authors
*/
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/aymerick/raymond"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// OutputFormat selects how a build report is rendered for the operator.
type OutputFormat string

const (
	FormatConcise  OutputFormat = "concise"
	FormatMarkdown OutputFormat = "markdown"
	FormatJSON     OutputFormat = "json"
)

// Report is the operator-facing result of one build run. It travels on
// the diagnostic stream; the manifest artifact itself is separate.
type Report struct {
	Metadata ReportMetadata `json:"metadata"`
	Summary  ReportSummary  `json:"summary"`
	Scripts  []ScriptLine   `json:"scripts"`
	Warnings []string       `json:"warnings,omitempty"`
}

// ReportMetadata records how and when the report was produced.
type ReportMetadata struct {
	GeneratedAt   time.Time     `json:"generated_at"`
	Tool          string        `json:"tool"`
	Version       string        `json:"version"`
	Target        string        `json:"target"`
	ExecutionTime time.Duration `json:"execution_time"`
}

// ReportSummary carries the headline counts.
type ReportSummary struct {
	Scripts  int `json:"scripts"`
	Warnings int `json:"warnings"`
}

// ScriptLine is one accepted script in the report listing.
type ScriptLine struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
	Path        string `json:"path"`
}

// NewReport flattens a manifest and its warnings into a Report. Scripts
// are listed in name order.
func NewReport(m *Manifest, warnings []string, toolVersion, target string, took time.Duration) *Report {
	lines := make([]ScriptLine, 0, len(m.Scripts))
	for _, meta := range m.Scripts {
		lines = append(lines, ScriptLine{
			Name:        meta.Name,
			Description: meta.Description,
			Category:    meta.Category,
			Path:        meta.Path,
		})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].Name < lines[j].Name })

	return &Report{
		Metadata: ReportMetadata{
			GeneratedAt:   m.Updated,
			Tool:          "scriptdex",
			Version:       toolVersion,
			Target:        target,
			ExecutionTime: took,
		},
		Summary:  ReportSummary{Scripts: len(lines), Warnings: len(warnings)},
		Scripts:  lines,
		Warnings: warnings,
	}
}

// Formatter renders build reports.
type Formatter struct {
	format OutputFormat
}

// NewFormatter creates a formatter for the given output format.
func NewFormatter(format OutputFormat) *Formatter {
	return &Formatter{format: format}
}

// Format renders the report.
func (f *Formatter) Format(report *Report) (string, error) {
	switch f.format {
	case FormatMarkdown:
		return f.formatMarkdown(report)
	case FormatJSON:
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode report: %w", err)
		}
		return string(data) + "\n", nil
	case FormatConcise, "":
		return f.formatConcise(report), nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", f.format)
	}
}

// formatConcise prints a short summary suitable for terminals and hook
// logs: one aligned line per script, then the warnings block.
func (f *Formatter) formatConcise(report *Report) string {
	color := func(code string, s string) string {
		if os.Getenv("NO_COLOR") != "" {
			return s
		}
		return "\x1b[" + code + "m" + s + "\x1b[0m"
	}
	bold := func(s string) string { return color("1", s) }
	green := func(s string) string { return color("32", s) }
	yellow := func(s string) string { return color("33", s) }

	var sb strings.Builder

	countStr := fmt.Sprintf("%d script(s)", report.Summary.Scripts)
	if report.Summary.Scripts > 0 {
		countStr = green(countStr)
	}
	fmt.Fprintf(&sb, "%s indexed %s from %s in %s\n",
		bold("scriptdex"), countStr, report.Metadata.Target, report.Metadata.ExecutionTime.Round(time.Millisecond))

	nameWidth := 0
	for _, s := range report.Scripts {
		if w := runewidth.StringWidth(s.Name); w > nameWidth {
			nameWidth = w
		}
	}
	for _, s := range report.Scripts {
		fmt.Fprintf(&sb, " - %s  %s\n", runewidth.FillRight(s.Name, nameWidth), s.Description)
	}

	if len(report.Warnings) > 0 {
		fmt.Fprintf(&sb, "%s\n", yellow(fmt.Sprintf("%d file(s) rejected:", len(report.Warnings))))
		for _, w := range report.Warnings {
			fmt.Fprintf(&sb, " ! %s\n", w)
		}
	}
	return sb.String()
}

// markdownTemplate renders the full report grouped by category.
const markdownTemplate = `# Script Index

Generated {{metadata.generatedAt}} by {{metadata.tool}} {{metadata.version}} for ` + "`{{metadata.target}}`" + `.

**{{summary.scripts}}** script(s) indexed, **{{summary.warnings}}** file(s) rejected.

{{#each categories}}
## {{title}}

| Script | Description | Path |
|--------|-------------|------|
{{#each scripts}}| {{name}} | {{description}} | {{path}} |
{{/each}}
{{/each}}
{{#if warnings}}
## Rejected files

{{#each warnings}}- {{this}}
{{/each}}
{{/if}}`

// formatMarkdown renders the report through the handlebars template,
// grouping scripts by category with title-cased headings.
func (f *Formatter) formatMarkdown(report *Report) (string, error) {
	titler := cases.Title(language.Und)
	byCategory := make(map[string][]map[string]interface{})
	for _, s := range report.Scripts {
		cat := s.Category
		if cat == "" {
			cat = "uncategorized"
		}
		byCategory[cat] = append(byCategory[cat], map[string]interface{}{
			"name":        s.Name,
			"description": s.Description,
			"path":        s.Path,
		})
	}
	names := make([]string, 0, len(byCategory))
	for cat := range byCategory {
		names = append(names, cat)
	}
	sort.Strings(names)
	groups := make([]map[string]interface{}, 0, len(names))
	for _, cat := range names {
		groups = append(groups, map[string]interface{}{
			"title":   titler.String(cat),
			"scripts": byCategory[cat],
		})
	}

	data := map[string]interface{}{
		"metadata": map[string]interface{}{
			"generatedAt": report.Metadata.GeneratedAt.Format(time.RFC3339),
			"tool":        report.Metadata.Tool,
			"version":     report.Metadata.Version,
			"target":      report.Metadata.Target,
		},
		"summary": map[string]interface{}{
			"scripts":  report.Summary.Scripts,
			"warnings": report.Summary.Warnings,
		},
		"categories": groups,
		"warnings":   report.Warnings,
	}

	out, err := raymond.Render(markdownTemplate, data)
	if err != nil {
		return "", fmt.Errorf("failed to render report template: %w", err)
	}
	return out, nil
}
