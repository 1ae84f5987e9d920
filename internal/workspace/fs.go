package workspace

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/0muji4/jellyref/internal/markup"
)

var (
	_ FileReader = (*FS)(nil)
	_ Locator    = (*FS)(nil)
	_ Directory  = (*dir)(nil)
)

// NameMatch selects how FindFile compares a requested name with directory
// entries.
type NameMatch string

const (
	// MatchHost defers to the filesystem: whatever opens, matches.
	MatchHost NameMatch = "host"
	// MatchExact requires a byte-identical entry name, even on
	// case-insensitive filesystems.
	MatchExact NameMatch = "exact"
	// MatchFold compares names under Unicode case folding.
	MatchFold NameMatch = "fold"
)

// ParseNameMatch validates a configured match mode.
func ParseNameMatch(s string) (NameMatch, error) {
	switch m := NameMatch(strings.ToLower(strings.TrimSpace(s))); m {
	case MatchHost, MatchExact, MatchFold:
		return m, nil
	case "":
		return MatchHost, nil
	}
	return "", fmt.Errorf("unknown name match %q (want host, exact or fold)", s)
}

// FS is a workspace rooted at a directory.
type FS struct {
	rootPath string
	fsys     fs.FS
	match    NameMatch
}

// NewFS opens the workspace at rootPath on the local filesystem.
func NewFS(rootPath string, match NameMatch) *FS {
	return NewFSFrom(rootPath, os.DirFS(rootPath), match)
}

// NewFSFrom wraps an arbitrary fs.FS. rootPath is only used to build
// absolute paths for callers.
func NewFSFrom(rootPath string, fsys fs.FS, match NameMatch) *FS {
	if match == "" {
		match = MatchHost
	}
	return &FS{rootPath: rootPath, fsys: fsys, match: match}
}

// Root returns the workspace root directory.
func (w *FS) Root() string { return w.rootPath }

// Rel converts a path given by a user (absolute, or relative to the root)
// into a slash-separated workspace path.
func (w *FS) Rel(p string) (string, error) {
	if filepath.IsAbs(p) {
		rel, err := filepath.Rel(w.rootPath, p)
		if err != nil {
			return "", fmt.Errorf("path %q: %w", p, err)
		}
		p = rel
	}
	p = path.Clean(filepath.ToSlash(p))
	// パストラバーサル防止
	if !fs.ValidPath(p) {
		return "", fmt.Errorf("path %q is outside project root", p)
	}
	return p, nil
}

// Abs returns the absolute OS path of a workspace file.
func (w *FS) Abs(f File) string {
	return filepath.Join(w.rootPath, filepath.FromSlash(f.Path))
}

func (w *FS) ReadFile(relPath string) (string, error) {
	p, err := w.Rel(relPath)
	if err != nil {
		return "", err
	}
	data, err := fs.ReadFile(w.fsys, p)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Parent returns the directory containing doc. In-memory documents and
// documents whose directory is gone have no parent.
func (w *FS) Parent(doc *markup.Document) (Directory, bool) {
	if doc == nil || doc.InMemory() {
		return nil, false
	}
	p, err := w.Rel(doc.Path)
	if err != nil {
		return nil, false
	}
	d := path.Dir(p)
	info, err := fs.Stat(w.fsys, d)
	if err != nil || !info.IsDir() {
		return nil, false
	}
	return &dir{w: w, path: d}, true
}

type dir struct {
	w    *FS
	path string
}

func (d *dir) Path() string { return d.path }

// FindFile looks up a plain file name in the directory. Names with path
// separators never match: the lookup is confined to this one directory.
func (d *dir) FindFile(name string) (File, bool) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return File{}, false
	}

	switch d.w.match {
	case MatchExact, MatchFold:
		entries, err := fs.ReadDir(d.w.fsys, d.path)
		if err != nil {
			return File{}, false
		}
		var folded *File
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if e.Name() == name {
				return d.file(name), true
			}
			if folded == nil && d.w.match == MatchFold && strings.EqualFold(e.Name(), name) {
				f := d.file(e.Name())
				folded = &f
			}
		}
		if folded != nil {
			return *folded, true
		}
		return File{}, false
	default:
		info, err := fs.Stat(d.w.fsys, path.Join(d.path, name))
		if err != nil || info.IsDir() {
			return File{}, false
		}
		return d.file(name), true
	}
}

func (d *dir) file(name string) File {
	return File{Name: name, Path: path.Join(d.path, name)}
}
