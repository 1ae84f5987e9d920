package include

import (
	"github.com/0muji4/jellyref/internal/markup"
	"github.com/0muji4/jellyref/internal/workspace"
)

// Reference binds the text of a page attribute to the file it names.
// The target is looked up on each Resolve call.
type Reference struct {
	value   *markup.AttributeValue
	span    markup.Span
	resolve func() (workspace.File, bool)
}

// newReference covers the characters between the quotes of v.
func newReference(v *markup.AttributeValue, tree Tree, locator workspace.Locator) Reference {
	return Reference{
		value: v,
		span:  markup.Span{Start: 1, Length: max(v.TextLength()-2, 0)},
		resolve: func() (workspace.File, bool) {
			doc, ok := tree.ContainingDocument(v)
			if !ok || locator == nil {
				return workspace.File{}, false
			}
			dir, ok := locator.Parent(doc)
			if !ok {
				return workspace.File{}, false
			}
			return dir.FindFile(v.Value)
		},
	}
}

// Value returns the attribute value node the reference sits on.
func (r Reference) Value() *markup.AttributeValue { return r.value }

// Span is relative to the start of the quoted value text.
func (r Reference) Span() markup.Span { return r.span }

// DocumentSpan is Span in document offsets.
func (r Reference) DocumentSpan() markup.Span {
	return r.span.Shift(r.value.Span().Start)
}

// Resolve returns the target file, or false when it does not exist.
func (r Reference) Resolve() (workspace.File, bool) {
	if r.resolve == nil {
		return workspace.File{}, false
	}
	return r.resolve()
}

// Variants lists completion candidates. None are offered yet.
// TODO: suggest sibling *.jelly files of the containing page.
func (r Reference) Variants() []string {
	return []string{}
}
