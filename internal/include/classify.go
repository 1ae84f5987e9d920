// Package include finds <st:include page="..."> attributes in Jelly pages
// and resolves them to the page file they name.
package include

import "github.com/0muji4/jellyref/internal/markup"

// Namespace is the Stapler tag library namespace.
const Namespace = "jelly:stapler"

const (
	tagInclude = "include"
	attrPage   = "page"
	attrIt     = "it"
	attrFrom   = "from"
)

// Tree answers ancestry questions about nodes of one parsed page.
// *markup.Document implements it.
type Tree interface {
	OwningAttribute(v *markup.AttributeValue) (*markup.Attribute, bool)
	OwningElement(a *markup.Attribute) (*markup.Element, bool)
	ContainingDocument(n markup.Node) (*markup.Document, bool)
}

var _ Tree = (*markup.Document)(nil)

// Classifier decides whether a node is the value of an include's page
// attribute.
type Classifier struct {
	namespace string
}

// NewClassifier returns a classifier for include tags in namespace. An empty
// namespace selects Namespace.
func NewClassifier(namespace string) Classifier {
	if namespace == "" {
		namespace = Namespace
	}
	return Classifier{namespace: namespace}
}

// Classify returns the page attribute value held by n, or nothing when n is
// not one.
func (c Classifier) Classify(n markup.Node, tree Tree) []*markup.AttributeValue {
	switch v := n.(type) {
	case *markup.AttributeValue:
		if c.eligible(v, tree) {
			return []*markup.AttributeValue{v}
		}
	}
	return []*markup.AttributeValue{}
}

func (c Classifier) eligible(v *markup.AttributeValue, tree Tree) bool {
	if v == nil || tree == nil {
		return false
	}
	a, ok := tree.OwningAttribute(v)
	if !ok || a.Name != attrPage {
		return false
	}
	e, ok := tree.OwningElement(a)
	if !ok || e.Local != tagInclude || e.Namespace != c.namespace {
		return false
	}
	// it= and from= make the page relative to another object, not to this
	// file's directory.
	if _, ok := e.Attribute(attrIt); ok {
		return false
	}
	if _, ok := e.Attribute(attrFrom); ok {
		return false
	}
	return true
}
