// Package schema validates manifest documents against the embedded
// manifest JSON schema. YAML input is accepted and converted to JSON
// before validation, so hand-edited manifests can be checked too.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/scriptdex/scriptdex/internal/assets"
)

// ValidationError is a single schema violation.
type ValidationError struct {
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

// Result holds the outcome of validating one manifest document.
type Result struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// ValidateManifest checks a manifest document (JSON or YAML) against the
// format-v1 schema. A schema violation is reported in the Result; only
// unreadable input or a broken embedded schema returns an error.
func ValidateManifest(data []byte) (*Result, error) {
	doc, err := normalizeToJSON(data)
	if err != nil {
		return nil, err
	}

	schemaBytes, ok := assets.ManifestSchema(1)
	if !ok {
		return nil, fmt.Errorf("embedded manifest schema unavailable")
	}

	res, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaBytes),
		gojsonschema.NewBytesLoader(doc),
	)
	if err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	result := &Result{Valid: res.Valid()}
	for _, e := range res.Errors() {
		result.Errors = append(result.Errors, ValidationError{
			Path:    e.Field(),
			Message: e.Description(),
		})
	}
	return result, nil
}

// normalizeToJSON passes JSON through untouched and re-encodes YAML as
// JSON.
func normalizeToJSON(data []byte) ([]byte, error) {
	if json.Valid(data) {
		return data, nil
	}
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("input is neither valid JSON nor valid YAML: %w", err)
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to re-encode YAML input: %w", err)
	}
	return out, nil
}
