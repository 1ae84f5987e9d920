// Package navigator answers editor questions about Jelly pages in a
// workspace: which include links a page has, and where a link points.
package navigator

import (
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"

	"github.com/0muji4/jellyref/internal/include"
	"github.com/0muji4/jellyref/internal/lsp"
	"github.com/0muji4/jellyref/internal/markup"
	"github.com/0muji4/jellyref/internal/workspace"
)

// Link is one include reference in a page.
type Link struct {
	Page   string        `json:"page"`
	Range  lsp.Range     `json:"range"`
	Target *lsp.Location `json:"target,omitempty"` // nil when the page does not exist
}

// Navigator reads pages from a workspace and resolves their includes.
type Navigator struct {
	fs       *workspace.FS
	provider *include.Provider
	log      *slog.Logger
}

func New(fs *workspace.FS, classifier include.Classifier, log *slog.Logger) *Navigator {
	if log == nil {
		log = slog.Default()
	}
	return &Navigator{
		fs:       fs,
		provider: include.NewProvider(classifier, fs),
		log:      log,
	}
}

// Open reads and parses a page.
func (n *Navigator) Open(path string) (*markup.Document, error) {
	rel, err := n.fs.Rel(path)
	if err != nil {
		return nil, err
	}
	content, err := n.fs.ReadFile(rel)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", rel, err)
	}
	return markup.Parse(rel, content)
}

// Links lists every include reference in the page at path.
func (n *Navigator) Links(path string) ([]Link, error) {
	doc, err := n.Open(path)
	if err != nil {
		return nil, err
	}

	refs := n.provider.Collect(doc)
	links := make([]Link, 0, len(refs))
	for _, r := range refs {
		span := r.DocumentSpan()
		links = append(links, Link{
			Page:   r.Value().Value,
			Range:  lsp.RangeOf(doc.Content, span.Start, span.End()),
			Target: n.locate(r),
		})
	}
	n.log.Debug("collected include links", "path", doc.Path, "count", len(links))
	return links, nil
}

// Definition returns where the include under pos points, or nil when pos is
// not on an include or the included page does not exist.
func (n *Navigator) Definition(path string, pos lsp.Position) (*lsp.Location, error) {
	doc, err := n.Open(path)
	if err != nil {
		return nil, err
	}

	offset := lsp.OffsetAt(doc.Content, pos)
	for _, r := range n.provider.Collect(doc) {
		if !r.DocumentSpan().Contains(offset) {
			continue
		}
		loc := n.locate(r)
		if loc == nil {
			n.log.Debug("include target not found", "path", doc.Path, "page", r.Value().Value)
		}
		return loc, nil
	}
	return nil, nil
}

func (n *Navigator) locate(r include.Reference) *lsp.Location {
	f, ok := r.Resolve()
	if !ok {
		return nil
	}
	return &lsp.Location{URI: fileURI(n.fs.Abs(f))}
}

func fileURI(path string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}
