/*
Copyright © 2026 Scriptdex Authors
*/
package directive

import "encoding/json"

// OutputFormat identifies how a script formats what it prints to stdout.
type OutputFormat string

const (
	OutputText    OutputFormat = "text"
	OutputTSV     OutputFormat = "tsv"
	OutputCSV     OutputFormat = "csv"
	OutputJSON    OutputFormat = "json"
	OutputNDJSON  OutputFormat = "ndjson"
	DefaultOutput              = OutputText
)

// ArgType is the declared type of a positional argument.
type ArgType string

const (
	ArgString  ArgType = "string"
	ArgNumber  ArgType = "number"
	ArgBoolean ArgType = "boolean"
)

// ArgSpec describes one positional argument declared with @arg.
// Arg order in the directive block determines positional binding order.
type ArgSpec struct {
	Name        string  `json:"name"`
	Type        ArgType `json:"type"`
	Description string  `json:"description"`
	Required    bool    `json:"required"`
	Variadic    bool    `json:"variadic,omitempty"`
	Default     *string `json:"default,omitempty"`
}

// EnvSpec describes one environment variable declared with @env. The hint
// is operator-facing help text; only the name travels in the manifest, so
// EnvSpec marshals to and from a bare string.
type EnvSpec struct {
	Name string
	Hint string
}

func (e EnvSpec) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Name)
}

func (e *EnvSpec) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &e.Name)
}

// ScriptMetadata is the structured record extracted from one script's
// leading directive block. Zero values stand in for absent directives;
// required-field enforcement belongs to the caller, not the parser.
//
// The list-valued fields marshal with omitempty: an absent key and an
// empty list mean the same thing on the wire, and readers must treat
// them as equivalent.
type ScriptMetadata struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Args        []ArgSpec    `json:"args,omitempty"`
	Deps        []string     `json:"deps,omitempty"`
	Envs        []EnvSpec    `json:"envs,omitempty"`
	Output      OutputFormat `json:"output"`
	Header      []string     `json:"header,omitempty"`
	Category    string       `json:"category,omitempty"`
	Tags        []string     `json:"tags,omitempty"`
	Author      string       `json:"author,omitempty"`
	Platform    string       `json:"platform"`
	Examples    []string     `json:"examples,omitempty"`
	Stdin       bool         `json:"stdin,omitempty"`
	Version     string       `json:"version,omitempty"`

	// Path is the script's location relative to the scan root. The
	// manifest builder fills it in; the parser leaves it empty.
	Path string `json:"path,omitempty"`

	// SkippedLines counts directive lines that matched a recognized tag
	// but failed that tag's value grammar and were dropped. Diagnostic
	// only; never serialized.
	SkippedLines int `json:"-"`
}
