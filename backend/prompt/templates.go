package prompt

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

const TemplateFileName = "PROMPT.txt"

var ErrTemplateNotFound = errors.New("template not found")

// Library gives access to prompt templates stored as <dir>/<name>/PROMPT.txt.
type Library struct {
	fs  *afero.Afero
	dir string
}

func NewLibrary(fs *afero.Afero, dir string) *Library {
	return &Library{fs: fs, dir: dir}
}

func (l *Library) Dir() string {
	return l.dir
}

// Names lists the templates in alphabetical order. A missing directory is an
// empty library.
func (l *Library) Names() ([]string, error) {
	exists, err := l.fs.DirExists(l.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to check template directory %s: %w", l.dir, err)
	}
	if !exists {
		return nil, nil
	}

	entries, err := l.fs.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read template directory %s: %w", l.dir, err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		found, err := l.fs.Exists(filepath.Join(l.dir, entry.Name(), TemplateFileName))
		if err != nil {
			return nil, err
		}
		if found {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	return names, nil
}

func (l *Library) Load(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}

	content, err := l.fs.ReadFile(filepath.Join(l.dir, name, TemplateFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
		}
		return "", fmt.Errorf("failed to load template %q: %w", name, err)
	}

	return string(content), nil
}
