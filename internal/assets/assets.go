// Package assets holds the artifacts compiled into the scriptdex binary:
// the manifest JSON schema and the script template catalog.
package assets

import (
	_ "embed"
)

//go:embed embedded_schemas/manifest-v1.json
var manifestSchemaV1 []byte

// ManifestSchema returns the JSON schema for the given manifest format
// version. The second return is false for unknown versions; there is no
// implicit fallback.
func ManifestSchema(version int) ([]byte, bool) {
	switch version {
	case 1:
		return manifestSchemaV1, len(manifestSchemaV1) > 0
	default:
		return nil, false
	}
}
