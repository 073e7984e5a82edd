package git

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Cyclone1070/llmx/internal/tool/helper/content"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// maxIgnoreFileSize bounds how much of a .gitignore is read.
const maxIgnoreFileSize = 256 * 1024

// DefaultPatterns are skipped by file searches even without a .gitignore.
var DefaultPatterns = []string{
	".git/",
	"node_modules/",
	".cache/",
	"__pycache__/",
	".local/share/Trash/",
}

// GitignoreReadError is returned when .gitignore cannot be read.
type GitignoreReadError struct {
	Path  string
	Cause error
}

func (e *GitignoreReadError) Error() string {
	return fmt.Sprintf("failed to read .gitignore at %s: %v", e.Path, e.Cause)
}
func (e *GitignoreReadError) Unwrap() error { return e.Cause }

// fileSystem defines the minimal filesystem interface needed by the matcher.
type fileSystem interface {
	Stat(path string) (os.FileInfo, error)
	ReadFileLimit(path string, limit int64) ([]byte, error)
}

// IgnoreMatcher implements gitignore pattern matching using go-git's gitignore matcher.
type IgnoreMatcher struct {
	matcher gitignore.Matcher
}

// NewIgnoreMatcher builds a matcher from base patterns plus the .gitignore
// found in root, if any.
func NewIgnoreMatcher(root string, fs fileSystem, base ...string) (*IgnoreMatcher, error) {
	if root == "" {
		panic("root is required")
	}
	if fs == nil {
		panic("fs is required")
	}

	lines := append([]string(nil), base...)

	gitignorePath := filepath.Join(root, ".gitignore")
	if _, err := fs.Stat(gitignorePath); err == nil {
		data, err := fs.ReadFileLimit(gitignorePath, maxIgnoreFileSize)
		if err != nil {
			return nil, &GitignoreReadError{Path: gitignorePath, Cause: err}
		}
		lines = append(lines, content.SplitLines(string(data))...)
	}

	return NewPatternMatcher(lines), nil
}

// NewPatternMatcher compiles gitignore-syntax lines. Blank lines and
// comments are skipped.
func NewPatternMatcher(lines []string) *IgnoreMatcher {
	var patterns []gitignore.Pattern
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(line, nil))
	}
	if len(patterns) == 0 {
		return &IgnoreMatcher{}
	}
	return &IgnoreMatcher{matcher: gitignore.NewMatcher(patterns)}
}

// ShouldIgnore checks a path relative to the matcher root.
func (m *IgnoreMatcher) ShouldIgnore(relativePath string, isDir bool) bool {
	if m == nil || m.matcher == nil {
		return false
	}
	segments := splitPath(relativePath)
	if len(segments) == 0 {
		return false
	}
	return m.matcher.Match(segments, isDir)
}

// splitPath splits a path into segments, dropping empty and "." parts.
func splitPath(path string) []string {
	var segments []string
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part != "" && part != "." {
			segments = append(segments, part)
		}
	}
	return segments
}
