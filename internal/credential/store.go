// Package credential keeps API keys per provider, backed by a key file
// with environment variables as a fallback.
package credential

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/Cyclone1070/llmx/internal/config"
)

// ErrInvalidIndex is returned by Delete for an out-of-range key index.
var ErrInvalidIndex = errors.New("invalid key index")

// FileName is the key file under ~/.llmx.
const FileName = "api_keys.txt"

// fileSystem is the subset of file operations the store needs.
type fileSystem interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm os.FileMode) error
	MkdirAll(path string, perm os.FileMode) error
}

type osFileSystem struct{}

func (osFileSystem) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }
func (osFileSystem) WriteFile(path string, data []byte, perm os.FileMode) error {
	return os.WriteFile(path, data, perm)
}
func (osFileSystem) MkdirAll(path string, perm os.FileMode) error { return os.MkdirAll(path, perm) }

// Store holds the ordered key list of every provider.
// File entries take precedence; a provider without any file entry uses
// the environment variables listed in the provider catalog.
type Store struct {
	path   string
	fs     fileSystem
	getenv func(string) string

	mu   sync.RWMutex
	file map[string][]string
	keys map[string][]string
}

// DefaultPath returns ~/.llmx/api_keys.txt.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".llmx", FileName), nil
}

// NewStore creates a store backed by the key file at path.
func NewStore(path string, getenv func(string) string) *Store {
	return newStore(path, osFileSystem{}, getenv)
}

func newStore(path string, fs fileSystem, getenv func(string) string) *Store {
	if path == "" {
		panic("path is required")
	}
	if getenv == nil {
		getenv = os.Getenv
	}
	return &Store{
		path:   path,
		fs:     fs,
		getenv: getenv,
		file:   map[string][]string{},
		keys:   map[string][]string{},
	}
}

// Load re-reads the key file and the environment. A missing file is not
// an error.
func (s *Store) Load() error {
	file := map[string][]string{}
	data, err := s.fs.ReadFile(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("read %s: %w", s.path, err)
	}
	if err == nil {
		file = parse(data)
	}

	keys := map[string][]string{}
	for p, k := range file {
		keys[p] = slices.Clone(k)
	}
	for _, p := range config.Providers() {
		if len(keys[p.Name]) > 0 {
			continue
		}
		for _, env := range p.EnvKeys {
			if v := strings.TrimSpace(s.getenv(env)); v != "" && !slices.Contains(keys[p.Name], v) {
				keys[p.Name] = append(keys[p.Name], v)
			}
		}
	}

	s.mu.Lock()
	s.file = file
	s.keys = keys
	s.mu.Unlock()
	return nil
}

// Credential returns the key at index for provider.
func (s *Store) Credential(provider string, index int) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := s.keys[provider]
	if index < 0 || index >= len(keys) {
		return "", false
	}
	return keys[index], true
}

// Count returns how many keys provider has.
func (s *Store) Count(provider string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.keys[provider])
}

// Save appends a key to the key file. It returns false when the key is
// already stored for that provider.
func (s *Store) Save(provider, key string) (bool, error) {
	provider = strings.ToLower(strings.TrimSpace(provider))
	key = strings.TrimSpace(key)
	if provider == "" || key == "" {
		return false, errors.New("provider and key are required")
	}
	if _, ok := config.LookupProvider(provider); !ok {
		return false, fmt.Errorf("unknown provider %q", provider)
	}
	if err := s.Load(); err != nil {
		return false, err
	}

	s.mu.RLock()
	exists := slices.Contains(s.file[provider], key)
	file := cloneMap(s.file)
	s.mu.RUnlock()
	if exists {
		return false, nil
	}

	file[provider] = append(file[provider], key)
	if err := s.write(file); err != nil {
		return false, err
	}
	return true, s.Load()
}

// Delete removes the index-th key stored in the file for provider.
func (s *Store) Delete(provider string, index int) error {
	if err := s.Load(); err != nil {
		return err
	}
	s.mu.RLock()
	file := cloneMap(s.file)
	s.mu.RUnlock()

	keys := file[provider]
	if index < 0 || index >= len(keys) {
		return ErrInvalidIndex
	}
	file[provider] = slices.Delete(keys, index, index+1)
	if len(file[provider]) == 0 {
		delete(file, provider)
	}
	if err := s.write(file); err != nil {
		return err
	}
	return s.Load()
}

// MaskedKey is a displayable key entry.
type MaskedKey struct {
	Provider string
	Index    int
	Masked   string
}

// Masked lists every active key with its secret hidden, grouped by
// provider in catalog order.
func (s *Store) Masked() []MaskedKey {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []MaskedKey
	for _, p := range config.Providers() {
		for i, k := range s.keys[p.Name] {
			out = append(out, MaskedKey{Provider: p.Name, Index: i, Masked: Mask(k)})
		}
	}
	return out
}

// Mask hides the middle of a key.
func Mask(key string) string {
	if len(key) > 12 {
		return key[:8] + "..." + key[len(key)-4:]
	}
	if len(key) > 4 {
		return key[:4] + "..."
	}
	return key + "..."
}

func (s *Store) write(file map[string][]string) error {
	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create key dir: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString("# llmx api keys (provider:key)\n")
	names := make([]string, 0, len(file))
	for p := range file {
		names = append(names, p)
	}
	slices.Sort(names)
	for _, p := range names {
		for _, k := range file[p] {
			fmt.Fprintf(&buf, "%s:%s\n", p, k)
		}
	}
	if err := s.fs.WriteFile(s.path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

// parse reads "provider:key" lines. Comments, blank lines, malformed lines
// and duplicates are skipped.
func parse(data []byte) map[string][]string {
	out := map[string][]string{}
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		provider, key, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		provider = strings.ToLower(strings.TrimSpace(provider))
		key = strings.TrimSpace(key)
		if provider == "" || key == "" || slices.Contains(out[provider], key) {
			continue
		}
		out[provider] = append(out[provider], key)
	}
	return out
}

func cloneMap(m map[string][]string) map[string][]string {
	out := make(map[string][]string, len(m))
	for k, v := range m {
		out[k] = slices.Clone(v)
	}
	return out
}
