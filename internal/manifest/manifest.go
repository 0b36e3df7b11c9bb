/*
Copyright © 2026 Scriptdex Authors
*/

// Package manifest discovers directive-annotated scripts under a root
// directory and aggregates their metadata into a single JSON artifact.
package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/scriptdex/scriptdex/internal/directive"
	"github.com/scriptdex/scriptdex/pkg/safeio"
)

// FormatVersion is the manifest format tag. Bump only with a schema
// change in internal/assets.
const FormatVersion = 1

// Manifest is the persisted artifact: every valid discovered script,
// keyed by its declared @name.
type Manifest struct {
	Version int                                  `json:"version"`
	Updated time.Time                            `json:"updated"`
	Scripts map[string]*directive.ScriptMetadata `json:"scripts"`
}

// Encode renders the manifest as indented JSON with a trailing newline.
func (m *Manifest) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}
	return append(data, '\n'), nil
}

// Write persists the manifest to path, replacing any previous artifact in
// full. There is no merging between runs.
func (m *Manifest) Write(path string) error {
	data, err := m.Encode()
	if err != nil {
		return err
	}
	if err := safeio.WriteFilePreservePerms(path, data); err != nil {
		return fmt.Errorf("failed to write manifest to %s: %w", path, err)
	}
	return nil
}

// Load reads a previously written manifest.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- operator-chosen artifact path
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	return &m, nil
}

// SameScripts reports whether two manifests carry identical content aside
// from their Updated timestamps. Used by --check to detect a stale
// artifact.
func (m *Manifest) SameScripts(other *Manifest) bool {
	if other == nil || m.Version != other.Version {
		return false
	}
	a, err := json.Marshal(m.Scripts)
	if err != nil {
		return false
	}
	b, err := json.Marshal(other.Scripts)
	if err != nil {
		return false
	}
	return bytes.Equal(a, b)
}
