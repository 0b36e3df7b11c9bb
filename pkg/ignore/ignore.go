// Package ignore provides gitignore-based file filtering for the scan,
// built on go-git's gitignore plumbing.
package ignore

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	gitignore "github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// IgnoreFileName is the scan-specific override file, honored at the scan
// root and under the user's home directory.
const IgnoreFileName = ".scriptdexignore"

// Matcher decides which paths the walk must skip. Patterns layer in
// priority order:
//  1. built-in defaults (.git, node_modules)
//  2. .gitignore and related git ignore files
//  3. <root>/.scriptdexignore
//  4. ~/.scriptdex/.scriptdexignore
type Matcher struct {
	matcher gitignore.Matcher
}

// NewMatcher builds the layered matcher for a scan root. Missing ignore
// files are not an error; every layer is best-effort.
func NewMatcher(root string) (*Matcher, error) {
	fs := osfs.New(root)

	patterns := []gitignore.Pattern{
		gitignore.ParsePattern(".git/**", nil),
		gitignore.ParsePattern("node_modules/**", nil),
	}

	// ReadPatterns with nil reads .gitignore files, global excludes, and
	// .git/info/exclude.
	if gitPatterns, err := gitignore.ReadPatterns(fs, nil); err == nil {
		patterns = append(patterns, gitPatterns...)
	}

	for _, line := range readIgnoreFile(filepath.Join(root, IgnoreFileName)) {
		patterns = append(patterns, gitignore.ParsePattern(line, nil))
	}

	if home, err := os.UserHomeDir(); err == nil {
		for _, line := range readIgnoreFile(filepath.Join(home, ".scriptdex", IgnoreFileName)) {
			patterns = append(patterns, gitignore.ParsePattern(line, nil))
		}
	}

	return &Matcher{matcher: gitignore.NewMatcher(patterns)}, nil
}

// readIgnoreFile returns the non-blank, non-comment lines of an ignore
// file, or nothing when the file is absent or unreadable.
func readIgnoreFile(path string) []string {
	cleaned := filepath.Clean(path)
	if !strings.HasSuffix(cleaned, string(os.PathSeparator)+IgnoreFileName) {
		return nil
	}
	content, err := os.ReadFile(cleaned) // #nosec G304 -- suffix-restricted ignore file
	if err != nil {
		return nil
	}
	var lines []string
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// Match reports whether the path, given relative to the scan root, is
// ignored. isDir selects directory semantics so whole subtrees can be
// pruned during the walk.
func (m *Matcher) Match(relPath string, isDir bool) bool {
	relPath = filepath.ToSlash(relPath)
	if relPath == "" || relPath == "." {
		return false
	}
	parts := strings.Split(relPath, "/")
	return m.matcher.Match(parts, isDir)
}
