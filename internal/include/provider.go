package include

import (
	"github.com/0muji4/jellyref/internal/markup"
	"github.com/0muji4/jellyref/internal/workspace"
)

// Provider turns classified nodes into references.
type Provider struct {
	classifier Classifier
	locator    workspace.Locator
}

func NewProvider(classifier Classifier, locator workspace.Locator) *Provider {
	return &Provider{classifier: classifier, locator: locator}
}

// References returns the references n carries: none, or exactly one.
func (p *Provider) References(n markup.Node, tree Tree) []Reference {
	values := p.classifier.Classify(n, tree)
	refs := make([]Reference, 0, len(values))
	for _, v := range values {
		refs = append(refs, newReference(v, tree, p.locator))
	}
	return refs
}

// Collect walks doc and returns every reference in document order.
func (p *Provider) Collect(doc *markup.Document) []Reference {
	var refs []Reference
	doc.Walk(func(n markup.Node) bool {
		refs = append(refs, p.References(n, doc)...)
		return true
	})
	return refs
}
