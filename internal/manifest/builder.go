/*
Copyright © 2026 Scriptdex Authors
*/
package manifest

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/scriptdex/scriptdex/internal/directive"
	"github.com/scriptdex/scriptdex/pkg/ignore"
	"github.com/scriptdex/scriptdex/pkg/logger"
	"github.com/scriptdex/scriptdex/pkg/safeio"
)

// CollisionPolicy decides what happens when two files declare the same
// @name.
type CollisionPolicy string

const (
	// CollisionReplace keeps the later file's record and logs a warning.
	CollisionReplace CollisionPolicy = "replace"
	// CollisionError rejects the later file with a per-file warning.
	CollisionError CollisionPolicy = "error"
)

// Options tunes discovery and parsing. The zero value is completed by
// NewBuilder with working defaults.
type Options struct {
	// Extensions a file must carry to be eligible. Default: [".sh"].
	Extensions []string
	// CommentPrefixes accepted by the directive grammar. Default: #, //.
	CommentPrefixes []string
	// Include and Exclude are doublestar patterns matched against
	// root-relative paths. An empty Include list admits everything the
	// extension rule admits.
	Include []string
	Exclude []string
	// Concurrency bounds parallel file parsing. Values below 2 keep the
	// build fully sequential.
	Concurrency int
	// Collisions defaults to CollisionReplace, the historical behavior.
	Collisions CollisionPolicy
	// UseIgnoreFiles layers .gitignore and .scriptdexignore filtering
	// into discovery.
	UseIgnoreFiles bool
}

// Builder produces a Manifest from a directory tree. A Builder is
// stateless across runs; every Build starts from an empty accumulator.
type Builder struct {
	opts   Options
	parser *directive.Parser
}

// NewBuilder returns a Builder with defaults filled in.
func NewBuilder(opts Options) *Builder {
	if len(opts.Extensions) == 0 {
		opts.Extensions = []string{".sh"}
	}
	if opts.Collisions == "" {
		opts.Collisions = CollisionReplace
	}
	return &Builder{
		opts:   opts,
		parser: directive.NewParser(opts.CommentPrefixes...),
	}
}

// parsed pairs one discovered file with its extracted record. Slots are
// filled independently, so parallel parsing needs no locking around the
// scripts map: the merge happens on a single goroutine afterwards.
type parsed struct {
	relPath string
	meta    *directive.ScriptMetadata
}

// Build walks root, parses every eligible script, and aggregates the
// valid records. Per-file validation failures come back as warning
// strings and never abort the run; only filesystem-level failures are
// fatal, in which case no partial manifest is returned.
func (b *Builder) Build(ctx context.Context, root string) (*Manifest, []string, error) {
	files, err := b.discover(root)
	if err != nil {
		return nil, nil, err
	}

	results := make([]parsed, len(files))
	if b.opts.Concurrency > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(b.opts.Concurrency)
		for i, rel := range files {
			i, rel := i, rel
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				meta, err := b.parseFile(root, rel)
				if err != nil {
					return err
				}
				results[i] = parsed{relPath: rel, meta: meta}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, nil, err
		}
	} else {
		for i, rel := range files {
			if err := ctx.Err(); err != nil {
				return nil, nil, err
			}
			meta, err := b.parseFile(root, rel)
			if err != nil {
				return nil, nil, err
			}
			results[i] = parsed{relPath: rel, meta: meta}
		}
	}

	scripts := make(map[string]*directive.ScriptMetadata)
	sources := make(map[string]string) // script name -> declaring file
	var warnings []string
	for _, r := range results {
		switch {
		case r.meta.Name == "":
			warnings = append(warnings, fmt.Sprintf("%s: missing @name", r.relPath))
			continue
		case r.meta.Description == "":
			warnings = append(warnings, fmt.Sprintf("%s: missing @description", r.relPath))
			continue
		}
		if prev, exists := sources[r.meta.Name]; exists {
			if b.opts.Collisions == CollisionError {
				warnings = append(warnings, fmt.Sprintf("%s: duplicate @name %q (already defined by %s)",
					r.relPath, r.meta.Name, prev))
				continue
			}
			logger.Warn("duplicate script name, later file wins",
				logger.String("name", r.meta.Name),
				logger.String("kept", r.relPath),
				logger.String("replaced", prev))
		}
		r.meta.Path = r.relPath
		scripts[r.meta.Name] = r.meta
		sources[r.meta.Name] = r.relPath
	}

	return &Manifest{
		Version: FormatVersion,
		Updated: time.Now().UTC(),
		Scripts: scripts,
	}, warnings, nil
}

// discover returns the root-relative paths of all eligible files, in walk
// order. The walk never follows symlinks, so filesystem cycles cannot
// trap it.
func (b *Builder) discover(root string) ([]string, error) {
	var matcher *ignore.Matcher
	if b.opts.UseIgnoreFiles {
		m, err := ignore.NewMatcher(root)
		if err != nil {
			return nil, fmt.Errorf("failed to load ignore patterns: %w", err)
		}
		matcher = m
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.Type()&fs.ModeSymlink != 0 {
			logger.Debug("skipping symlink", logger.String("path", rel))
			return nil
		}
		if d.IsDir() {
			if matcher != nil && matcher.Match(rel, true) {
				return filepath.SkipDir
			}
			return nil
		}
		if matcher != nil && matcher.Match(rel, false) {
			return nil
		}
		if b.eligible(rel) {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	return files, nil
}

// eligible applies the extension rule, the underscore convention for
// template files, and the include/exclude patterns.
func (b *Builder) eligible(rel string) bool {
	if strings.HasPrefix(filepath.Base(rel), "_") {
		return false
	}
	ext := filepath.Ext(rel)
	found := false
	for _, e := range b.opts.Extensions {
		if ext == e {
			found = true
			break
		}
	}
	if !found {
		return false
	}
	for _, pattern := range b.opts.Exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return false
		}
	}
	if len(b.opts.Include) == 0 {
		return true
	}
	for _, pattern := range b.opts.Include {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// parseFile reads one script and extracts its record. Read failures are
// fatal to the whole build.
func (b *Builder) parseFile(root, rel string) (*directive.ScriptMetadata, error) {
	content, err := safeio.ReadFileContained(root, filepath.Join(root, rel))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", rel, err)
	}
	meta := b.parser.Parse(string(content))
	if meta.SkippedLines > 0 {
		logger.Debug("dropped malformed directive lines",
			logger.String("path", rel),
			logger.Int("count", meta.SkippedLines))
	}
	return meta, nil
}
