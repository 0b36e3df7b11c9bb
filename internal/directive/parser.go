/*
Copyright © 2026 Scriptdex Authors
*/

// Package directive extracts structured metadata from the leading comment
// block of a script file. Directives are @tag annotations embedded in line
// comments, e.g.:
//
//	#!/usr/bin/env bash
//	# @name disk-usage
//	# @description Report disk usage per mount point
//	# @arg mount string "mount point to inspect" ?
//	# @output tsv
//
// The block is contiguous: scanning stops at the first non-blank,
// non-comment line after a directive has been seen. The parser is
// shape-only — it never validates that a value makes semantic sense, and
// it never fails; absent fields keep their defaults and the caller decides
// what is required.
package directive

import (
	"regexp"
	"strings"
)

// DefaultPrefixes are the line-comment markers recognized out of the box.
// Both are accepted in the same file so the directive grammar works across
// shell-style and C-style scripting languages.
var DefaultPrefixes = []string{"#", "//"}

var (
	argRe = regexp.MustCompile(`^([A-Za-z0-9_-]+)\s+(string|number|boolean)\s+"([^"]*)"(?:\s+(\?|\.\.\.|=.*))?$`)
	envRe = regexp.MustCompile(`^(\w+)(?:\s+"([^"]*)")?$`)
)

// Parser recognizes directive lines behind a configurable set of
// line-comment prefixes. The zero value is not usable; construct with
// NewParser.
type Parser struct {
	prefixes []string
	lineRe   *regexp.Regexp
}

// NewParser returns a parser accepting the given comment prefixes, or
// DefaultPrefixes when none are given.
func NewParser(prefixes ...string) *Parser {
	if len(prefixes) == 0 {
		prefixes = DefaultPrefixes
	}
	quoted := make([]string, len(prefixes))
	for i, p := range prefixes {
		quoted[i] = regexp.QuoteMeta(p)
	}
	return &Parser{
		prefixes: prefixes,
		lineRe:   regexp.MustCompile(`^(?:` + strings.Join(quoted, "|") + `)\s*@(\w+)\s+(.*)$`),
	}
}

// Parse is a convenience wrapper using DefaultPrefixes.
func Parse(content string) *ScriptMetadata {
	return NewParser().Parse(content)
}

// Parse scans content's leading directive block into a ScriptMetadata.
// It always returns a record; a file without directives yields one that
// is all defaults.
func (p *Parser) Parse(content string) *ScriptMetadata {
	meta := &ScriptMetadata{
		Output:   DefaultOutput,
		Platform: "all",
	}

	lines := strings.Split(content, "\n")
	start := 0
	if len(lines) > 0 && strings.HasPrefix(lines[0], "#!") {
		start = 1
	}

	seen := false
	for _, raw := range lines[start:] {
		line := strings.TrimSpace(raw)
		if m := p.lineRe.FindStringSubmatch(line); m != nil {
			if p.apply(meta, m[1], strings.TrimSpace(m[2])) {
				seen = true
			}
			continue
		}
		if line == "" || p.isComment(line) {
			continue
		}
		// First code line after the directive block ends the scan.
		if seen {
			break
		}
	}
	return meta
}

func (p *Parser) isComment(line string) bool {
	for _, prefix := range p.prefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// apply dispatches one recognized directive line. It reports whether the
// tag was a known one; unknown @tags are ignored and do not anchor the
// directive block.
func (p *Parser) apply(meta *ScriptMetadata, tag, rest string) bool {
	switch tag {
	case "name":
		meta.Name = rest
	case "description":
		meta.Description = rest
	case "arg":
		if spec, ok := parseArg(rest); ok {
			meta.Args = append(meta.Args, spec)
		} else {
			meta.SkippedLines++
		}
	case "dep":
		meta.Deps = append(meta.Deps, rest)
	case "env":
		if spec, ok := parseEnv(rest); ok {
			meta.Envs = append(meta.Envs, spec)
		} else {
			meta.SkippedLines++
		}
	case "output":
		meta.Output = OutputFormat(rest)
	case "header":
		meta.Header = strings.Fields(rest)
	case "category":
		meta.Category = rest
	case "tag":
		meta.Tags = append(meta.Tags, rest)
	case "author":
		meta.Author = rest
	case "platform":
		meta.Platform = rest
	case "example":
		meta.Examples = append(meta.Examples, rest)
	case "stdin":
		meta.Stdin = rest == "true"
	case "version":
		meta.Version = rest
	default:
		return false
	}
	return true
}

// parseArg matches the @arg value grammar:
//
//	<name> <string|number|boolean> "<description>" [? | ... | =default]
//
// The default captures everything after '=' to end of line, embedded
// spaces included. Descriptions cannot contain quote characters; the
// grammar has no escaping on purpose.
func parseArg(rest string) (ArgSpec, bool) {
	m := argRe.FindStringSubmatch(rest)
	if m == nil {
		return ArgSpec{}, false
	}
	spec := ArgSpec{
		Name:        m[1],
		Type:        ArgType(m[2]),
		Description: m[3],
		Required:    true,
	}
	switch mod := m[4]; {
	case mod == "":
	case mod == "?":
		spec.Required = false
	case mod == "...":
		spec.Required = false
		spec.Variadic = true
	case strings.HasPrefix(mod, "="):
		spec.Required = false
		def := mod[1:]
		spec.Default = &def
	}
	return spec, true
}

// parseEnv matches the @env value grammar: a variable name optionally
// followed by a quoted hint.
func parseEnv(rest string) (EnvSpec, bool) {
	m := envRe.FindStringSubmatch(rest)
	if m == nil {
		return EnvSpec{}, false
	}
	return EnvSpec{Name: m[1], Hint: m[2]}, true
}
