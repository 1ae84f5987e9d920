package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<?jelly escape-by-default='true'?>
<j:jelly xmlns:j="jelly:core" xmlns:st="jelly:stapler">
  <st:include page="other.jelly" optional="true"/>
  <st:include it="${app}" page='sidepanel.jelly'>body</st:include>
</j:jelly>
`

func TestParse_Elements(t *testing.T) {
	doc, err := Parse("views/index.jelly", page)
	require.NoError(t, err)

	require.NotNil(t, doc.Root)
	assert.Equal(t, "j:jelly", doc.Root.Name)
	assert.Equal(t, "jelly", doc.Root.Local)
	assert.Equal(t, "jelly:core", doc.Root.Namespace)

	var includes []*Element
	for _, c := range doc.Root.Children {
		if e, ok := c.(*Element); ok {
			includes = append(includes, e)
		}
	}
	require.Len(t, includes, 2)
	for _, e := range includes {
		assert.Equal(t, "include", e.Local)
		assert.Equal(t, "jelly:stapler", e.Namespace)
	}

	second := includes[1]
	assert.Equal(t, `<st:include it="${app}" page='sidepanel.jelly'>body</st:include>`,
		page[second.Span().Start:second.Span().End()])
}

func TestParse_AttributeValueSpans(t *testing.T) {
	doc, err := Parse("index.jelly", page)
	require.NoError(t, err)

	var values []*AttributeValue
	doc.Walk(func(n Node) bool {
		if v, ok := n.(*AttributeValue); ok {
			values = append(values, v)
		}
		return true
	})

	byRaw := map[string]*AttributeValue{}
	for _, v := range values {
		byRaw[v.Raw] = v
		assert.Equal(t, v.Raw, page[v.Span().Start:v.Span().End()], "span must cover the quoted text")
	}

	v, ok := byRaw[`"other.jelly"`]
	require.True(t, ok)
	assert.Equal(t, "other.jelly", v.Value)
	assert.Equal(t, 13, v.TextLength())

	v, ok = byRaw[`'sidepanel.jelly'`]
	require.True(t, ok)
	assert.Equal(t, "sidepanel.jelly", v.Value)
}

func TestParse_Ancestry(t *testing.T) {
	doc, err := Parse("index.jelly", page)
	require.NoError(t, err)

	include := doc.Root.Children[1].(*Element)
	attr, ok := include.Attribute("page")
	require.True(t, ok)

	owner, ok := doc.OwningAttribute(attr.Value)
	require.True(t, ok)
	assert.Same(t, attr, owner)

	elem, ok := doc.OwningElement(attr)
	require.True(t, ok)
	assert.Same(t, include, elem)

	got, ok := doc.ContainingDocument(attr.Value)
	require.True(t, ok)
	assert.Same(t, doc, got)

	_, ok = doc.ContainingDocument(&AttributeValue{Raw: `""`})
	assert.False(t, ok)
}

func TestParse_DecodesEntities(t *testing.T) {
	doc, err := Parse("", `<a title="x &amp; y&nbsp;z"/>`)
	require.NoError(t, err)

	a, ok := doc.Root.Attribute("title")
	require.True(t, ok)
	assert.Equal(t, `"x &amp; y&nbsp;z"`, a.Value.Raw)
	assert.Equal(t, "x & y\u00a0z", a.Value.Value)
	assert.True(t, doc.InMemory())
}

func TestParse_EmptyValue(t *testing.T) {
	doc, err := Parse("a.jelly", `<a page=""/>`)
	require.NoError(t, err)

	a, ok := doc.Root.Attribute("page")
	require.True(t, ok)
	assert.Equal(t, `""`, a.Value.Raw)
	assert.Equal(t, "", a.Value.Value)
	assert.Equal(t, Span{Start: 8, Length: 2}, a.Value.Span())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "unclosed element", content: `<a>`},
		{name: "mismatched end", content: `<a></b>`},
		{name: "no root", content: `<!-- nothing -->`},
		{name: "unquoted attribute", content: `<a page=x/>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("bad.jelly", tt.content)
			assert.Error(t, err)
		})
	}
}

func TestScanStartTag(t *testing.T) {
	name, attrs, err := scanStartTag(`<st:include  page = "a>b.jelly"	from='x' />`)
	require.NoError(t, err)
	assert.Equal(t, "st:include", name)
	require.Len(t, attrs, 2)
	assert.Equal(t, "page", attrs[0].name)
	assert.Equal(t, "from", attrs[1].name)

	raw := `<st:include  page = "a>b.jelly"	from='x' />`
	assert.Equal(t, `"a>b.jelly"`, raw[attrs[0].valStart:attrs[0].valEnd])
	assert.Equal(t, `'x'`, raw[attrs[1].valStart:attrs[1].valEnd])
}

func TestSpan_Contains(t *testing.T) {
	s := Span{Start: 4, Length: 3}
	assert.False(t, s.Contains(3))
	assert.True(t, s.Contains(4))
	assert.True(t, s.Contains(7))
	assert.False(t, s.Contains(8))
	assert.Equal(t, Span{Start: 9, Length: 3}, s.Shift(5))
}
