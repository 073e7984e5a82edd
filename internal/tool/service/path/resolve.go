package path

import (
	"os"
	"path/filepath"
	"strings"
)

// Expander turns user-supplied paths into clean absolute paths: "~" becomes
// the home directory, $VARS are expanded and relative paths are joined to
// the working directory.
type Expander struct {
	home    string
	workDir string
	getenv  func(string) string
}

// NewExpander creates an Expander. getenv defaults to os.Getenv.
func NewExpander(home, workDir string, getenv func(string) string) *Expander {
	if home == "" {
		panic("home is required")
	}
	if workDir == "" {
		panic("workDir is required")
	}
	if getenv == nil {
		getenv = os.Getenv
	}
	return &Expander{home: home, workDir: workDir, getenv: getenv}
}

// NewOSExpander builds an Expander from the process environment.
func NewOSExpander() (*Expander, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return NewExpander(home, wd, os.Getenv), nil
}

// Home returns the home directory used for "~".
func (e *Expander) Home() string {
	return e.home
}

// Expand resolves p. An empty path means the working directory.
func (e *Expander) Expand(p string) string {
	p = strings.TrimSpace(p)
	p = os.Expand(p, func(key string) string {
		if key == "HOME" {
			return e.home
		}
		return e.getenv(key)
	})

	switch {
	case p == "":
		return e.workDir
	case p == "~":
		return e.home
	case strings.HasPrefix(p, "~/"):
		p = filepath.Join(e.home, p[2:])
	case !filepath.IsAbs(p):
		p = filepath.Join(e.workDir, p)
	}
	return filepath.Clean(p)
}
