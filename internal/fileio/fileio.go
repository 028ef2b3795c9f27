// Package fileio implements the open, save and save-as operations that move
// text between tabs and UTF-8 files on disk.
package fileio

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/dshills/pyide/internal/document"
	"github.com/dshills/pyide/internal/tabs"
)

// FileSystem abstracts the file operations used by Service.
// This allows for easy testing with in-memory or failing file systems.
type FileSystem interface {
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
	// WriteFile replaces the file at path with data.
	WriteFile(path string, data []byte, perm os.FileMode) error
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile implements FileSystem.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile implements FileSystem.
func (OSFS) WriteFile(path string, data []byte, perm os.FileMode) error {
	return os.WriteFile(path, data, perm)
}

// Filter restricts the files offered when the user picks a path.
type Filter struct {
	Name     string
	Patterns []string
}

// PythonFiles is the filter used by open and save prompts.
var PythonFiles = Filter{Name: "Python Files", Patterns: []string{"*.py"}}

// Match reports whether the base name of path matches one of the patterns.
// A filter without patterns matches everything.
func (f Filter) Match(path string) bool {
	if len(f.Patterns) == 0 {
		return true
	}
	base := filepath.Base(path)
	for _, p := range f.Patterns {
		if ok, _ := filepath.Match(p, base); ok {
			return true
		}
	}
	return false
}

// String returns a label such as "Python Files (*.py)".
func (f Filter) String() string {
	return f.Name + " (" + strings.Join(f.Patterns, ", ") + ")"
}

// PathPrompter asks the user where to save a tab that has no path yet.
// Returning "" means the user cancelled.
type PathPrompter interface {
	PromptSavePath(tab *document.Tab) (string, error)
}

// FixedPath is a PathPrompter that always answers with itself.
type FixedPath string

// PromptSavePath implements PathPrompter.
func (p FixedPath) PromptSavePath(*document.Tab) (string, error) {
	return string(p), nil
}

// Service performs file operations on the tabs of a controller.
type Service struct {
	tabs *tabs.Controller
	fs   FileSystem
	perm os.FileMode
}

// Option configures a Service.
type Option func(*Service)

// WithFileSystem replaces the OS file system.
func WithFileSystem(fs FileSystem) Option {
	return func(s *Service) {
		s.fs = fs
	}
}

// New creates a file service operating on the tabs of c.
func New(c *tabs.Controller, opts ...Option) *Service {
	s := &Service{
		tabs: c,
		fs:   OSFS{},
		perm: 0o644,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open reads each path as UTF-8 and opens one tab per readable file, in
// order. Failing paths are skipped; their errors (EncodingError or IOError)
// are joined into the returned error while the remaining paths still open.
func (s *Service) Open(paths []string) ([]*document.Tab, error) {
	var (
		opened []*document.Tab
		errs   []error
	)
	for _, path := range paths {
		if path == "" {
			continue
		}
		content, err := s.read(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		opened = append(opened, s.tabs.NewTab(content, path))
	}
	return opened, errors.Join(errs...)
}

func (s *Service) read(path string) (string, error) {
	data, err := s.fs.ReadFile(path)
	if err != nil {
		return "", &IOError{Op: "read", Path: path, Err: err}
	}
	if !utf8.Valid(data) {
		return "", &EncodingError{Path: path, Offset: firstInvalid(data)}
	}
	return string(data), nil
}

// firstInvalid returns the offset of the first invalid UTF-8 sequence.
func firstInvalid(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return len(data)
}

// SaveAs writes tab to path, registers path for the tab and relabels it.
// An empty path means the user cancelled and nothing happens.
func (s *Service) SaveAs(tab *document.Tab, path string) error {
	if path == "" {
		return nil
	}
	if err := s.write(tab, path); err != nil {
		return err
	}
	s.tabs.SetPath(tab, path)
	return nil
}

// Save writes tab to its registered path. A tab that was never saved is
// handed to SaveAs with the path returned by prompt; without a prompt it
// fails with ErrNoPath.
func (s *Service) Save(tab *document.Tab, prompt PathPrompter) error {
	path := s.tabs.Path(tab)
	if path == "" {
		if prompt == nil {
			return ErrNoPath
		}
		chosen, err := prompt.PromptSavePath(tab)
		if err != nil {
			return err
		}
		return s.SaveAs(tab, chosen)
	}
	return s.write(tab, path)
}

func (s *Service) write(tab *document.Tab, path string) error {
	if err := s.fs.WriteFile(path, []byte(tab.Text()), s.perm); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	tab.MarkSaved()
	return nil
}
