/*
Copyright © 2026 Scriptdex Authors
*/
package manifest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeScript(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
		t.Fatal(err)
	}
}

func script(name, description string, extra ...string) string {
	lines := []string{"#!/usr/bin/env bash"}
	if name != "" {
		lines = append(lines, "# @name "+name)
	}
	if description != "" {
		lines = append(lines, "# @description "+description)
	}
	lines = append(lines, extra...)
	lines = append(lines, "", "echo done")
	return strings.Join(lines, "\n") + "\n"
}

func TestBuildRoundTrip(t *testing.T) {
	root := t.TempDir()
	writeScript(t, root, "alpha.sh", script("alpha", "first script"))
	writeScript(t, root, "beta.sh", script("beta", "second script"))
	writeScript(t, root, "nested/gamma.sh", script("gamma", "third script"))

	m, warnings, err := NewBuilder(Options{}).Build(context.Background(), root)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if m.Version != FormatVersion {
		t.Errorf("version = %d, want %d", m.Version, FormatVersion)
	}
	if m.Updated.IsZero() {
		t.Error("updated timestamp not set")
	}
	if len(m.Scripts) != 3 {
		t.Fatalf("got %d scripts, want 3", len(m.Scripts))
	}
	if got := m.Scripts["gamma"].Path; got != "nested/gamma.sh" {
		t.Errorf("gamma path = %q, want %q", got, "nested/gamma.sh")
	}
	if got := m.Scripts["alpha"].Description; got != "first script" {
		t.Errorf("alpha description = %q", got)
	}
}

func TestBuildRejectsMissingRequiredFields(t *testing.T) {
	root := t.TempDir()
	writeScript(t, root, "noname.sh", script("", "described but nameless"))
	writeScript(t, root, "nodesc.sh", script("nodesc", ""))
	writeScript(t, root, "prose.sh", "This is just prose.\nNo directives anywhere.\n")

	m, warnings, err := NewBuilder(Options{}).Build(context.Background(), root)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(m.Scripts) != 0 {
		t.Errorf("invalid files entered the manifest: %v", m.Scripts)
	}
	if len(warnings) != 3 {
		t.Fatalf("got %d warnings, want 3: %v", len(warnings), warnings)
	}
	joined := strings.Join(warnings, "\n")
	for _, want := range []string{
		"noname.sh: missing @name",
		"nodesc.sh: missing @description",
		"prose.sh: missing @name",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("warnings missing %q: %v", want, warnings)
		}
	}
}

func TestBuildEligibility(t *testing.T) {
	root := t.TempDir()
	writeScript(t, root, "foo.sh", script("foo", "eligible"))
	writeScript(t, root, "_template.sh", script("template", "underscore prefix"))
	writeScript(t, root, "readme.md", script("readme", "wrong extension"))
	writeScript(t, root, "sub/_draft.sh", script("draft", "nested underscore"))

	m, warnings, err := NewBuilder(Options{}).Build(context.Background(), root)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if len(m.Scripts) != 1 {
		t.Fatalf("got %d scripts, want only foo: %v", len(m.Scripts), m.Scripts)
	}
	if _, ok := m.Scripts["foo"]; !ok {
		t.Error("foo.sh missing from manifest")
	}
}

func TestBuildIncludeExcludePatterns(t *testing.T) {
	root := t.TempDir()
	writeScript(t, root, "ops/deploy.sh", script("deploy", "kept"))
	writeScript(t, root, "ops/vendor/tool.sh", script("tool", "excluded"))
	writeScript(t, root, "misc/other.sh", script("other", "not included"))

	m, _, err := NewBuilder(Options{
		Include: []string{"ops/**"},
		Exclude: []string{"**/vendor/**"},
	}).Build(context.Background(), root)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(m.Scripts) != 1 {
		t.Fatalf("got %v, want only deploy", m.Scripts)
	}
	if _, ok := m.Scripts["deploy"]; !ok {
		t.Error("deploy missing")
	}
}

func TestBuildCollisionReplace(t *testing.T) {
	root := t.TempDir()
	writeScript(t, root, "a.sh", script("shared", "from a"))
	writeScript(t, root, "b.sh", script("shared", "from b"))

	m, warnings, err := NewBuilder(Options{}).Build(context.Background(), root)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("replace policy must not emit warning strings: %v", warnings)
	}
	if len(m.Scripts) != 1 {
		t.Fatalf("got %d entries, want 1", len(m.Scripts))
	}
	// WalkDir visits lexically, so b.sh is processed later and wins.
	if got := m.Scripts["shared"].Description; got != "from b" {
		t.Errorf("kept %q, want the later file's record", got)
	}
}

func TestBuildCollisionError(t *testing.T) {
	root := t.TempDir()
	writeScript(t, root, "a.sh", script("shared", "from a"))
	writeScript(t, root, "b.sh", script("shared", "from b"))

	m, warnings, err := NewBuilder(Options{Collisions: CollisionError}).Build(context.Background(), root)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "duplicate @name") {
		t.Fatalf("warnings = %v", warnings)
	}
	if got := m.Scripts["shared"].Description; got != "from a" {
		t.Errorf("error policy must keep the first file, got %q", got)
	}
}

func TestBuildIdempotent(t *testing.T) {
	root := t.TempDir()
	writeScript(t, root, "x.sh", script("x", "stable", `# @arg n number "count" =3`, "# @tag batch"))

	b := NewBuilder(Options{})
	first, _, err := b.Build(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}
	second, _, err := b.Build(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}
	if !first.SameScripts(second) {
		t.Error("unchanged tree produced different script maps")
	}
}

func TestBuildConcurrentMatchesSequential(t *testing.T) {
	root := t.TempDir()
	for _, n := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		writeScript(t, root, n+".sh", script(n, "script "+n, `# @arg v string "value" ?`))
	}
	writeScript(t, root, "bad.sh", "no directives\n")

	seq, seqWarn, err := NewBuilder(Options{}).Build(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}
	par, parWarn, err := NewBuilder(Options{Concurrency: 4}).Build(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}
	if !seq.SameScripts(par) {
		t.Error("concurrent build diverged from sequential build")
	}
	if len(seqWarn) != len(parWarn) {
		t.Errorf("warning counts differ: %v vs %v", seqWarn, parWarn)
	}
}

func TestBuildHonorsIgnoreFiles(t *testing.T) {
	root := t.TempDir()
	writeScript(t, root, "keep.sh", script("keep", "kept"))
	writeScript(t, root, "wip/skip.sh", script("skip", "ignored"))
	if err := os.WriteFile(filepath.Join(root, ".scriptdexignore"), []byte("wip/\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	m, _, err := NewBuilder(Options{UseIgnoreFiles: true}).Build(context.Background(), root)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, ok := m.Scripts["skip"]; ok {
		t.Error("ignored directory was scanned")
	}
	if _, ok := m.Scripts["keep"]; !ok {
		t.Error("keep.sh missing")
	}
}

func TestBuildMissingRootFatal(t *testing.T) {
	_, _, err := NewBuilder(Options{}).Build(context.Background(), filepath.Join(t.TempDir(), "absent"))
	if err == nil {
		t.Fatal("unreadable root must be fatal")
	}
}

func TestManifestWriteLoad(t *testing.T) {
	root := t.TempDir()
	writeScript(t, root, "x.sh", script("x", "round trip", `# @env TOKEN "auth token"`, "# @dep jq"))

	m, _, err := NewBuilder(Options{}).Build(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(root, "manifest.json")
	if err := m.Write(out); err != nil {
		t.Fatalf("Write: %v", err)
	}

	loaded, err := Load(out)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !m.SameScripts(loaded) {
		t.Error("loaded manifest differs from written one")
	}
	if got := loaded.Scripts["x"].Envs[0].Name; got != "TOKEN" {
		t.Errorf("env round trip broke: %q", got)
	}

	data, err := m.Encode()
	if err != nil {
		t.Fatal(err)
	}
	if data[len(data)-1] != '\n' {
		t.Error("encoded manifest must end with a newline")
	}
	if strings.Contains(string(data), "Hint") || strings.Contains(string(data), "auth token") {
		t.Error("env hint leaked into the artifact")
	}
}
