package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validManifest = `{
  "version": 1,
  "updated": "2026-08-30T12:00:00Z",
  "scripts": {
    "disk-usage": {
      "name": "disk-usage",
      "description": "Report disk usage",
      "args": [
        {"name": "mount", "type": "string", "description": "mount point", "required": false}
      ],
      "deps": ["df"],
      "envs": ["DU_FORMAT"],
      "output": "tsv",
      "header": ["mount", "used", "avail"],
      "platform": "all",
      "path": "disk-usage.sh"
    }
  }
}`

func TestValidateManifestAccepts(t *testing.T) {
	res, err := ValidateManifest([]byte(validManifest))
	require.NoError(t, err)
	assert.True(t, res.Valid, "errors: %v", res.Errors)
}

func TestValidateManifestAcceptsYAML(t *testing.T) {
	doc := `version: 1
updated: "2026-08-30T12:00:00Z"
scripts:
  hello:
    name: hello
    description: Say hello
    output: text
    platform: all
    path: hello.sh
`
	res, err := ValidateManifest([]byte(doc))
	require.NoError(t, err)
	assert.True(t, res.Valid, "errors: %v", res.Errors)
}

func TestValidateManifestRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "missing scripts",
			doc:  `{"version": 1, "updated": "2026-08-30T12:00:00Z"}`,
		},
		{
			name: "wrong format version",
			doc:  `{"version": 2, "updated": "2026-08-30T12:00:00Z", "scripts": {}}`,
		},
		{
			name: "entry without description",
			doc: `{"version": 1, "updated": "2026-08-30T12:00:00Z", "scripts": {
				"x": {"name": "x", "output": "text", "platform": "all"}}}`,
		},
		{
			name: "unknown output format",
			doc: `{"version": 1, "updated": "2026-08-30T12:00:00Z", "scripts": {
				"x": {"name": "x", "description": "y", "output": "xml", "platform": "all"}}}`,
		},
		{
			name: "env entries must be strings",
			doc: `{"version": 1, "updated": "2026-08-30T12:00:00Z", "scripts": {
				"x": {"name": "x", "description": "y", "output": "text", "platform": "all",
				"envs": [{"name": "HOME"}]}}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ValidateManifest([]byte(tt.doc))
			require.NoError(t, err)
			assert.False(t, res.Valid)
			assert.NotEmpty(t, res.Errors)
		})
	}
}

func TestValidateManifestGarbageInput(t *testing.T) {
	_, err := ValidateManifest([]byte("{not json, not yaml: ["))
	require.Error(t, err)
}
