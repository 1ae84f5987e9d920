package markup

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Parse reads a Jelly page. Offsets in the resulting tree are byte offsets
// into content.
func Parse(path, content string) (*Document, error) {
	doc := NewDocument(path, content)

	d := xml.NewDecoder(strings.NewReader(content))
	d.Strict = true
	d.Entity = xml.HTMLEntity

	var stack []*Element
	top := func() *Element {
		if len(stack) == 0 {
			return nil
		}
		return stack[len(stack)-1]
	}

	for {
		start := int(d.InputOffset())
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", describe(path), err)
		}
		end := int(d.InputOffset())

		switch t := tok.(type) {
		case xml.StartElement:
			e, err := newElement(content, start, end, t)
			if err != nil {
				return nil, fmt.Errorf("parse %s: %w", describe(path), err)
			}
			doc.Add(top(), e)
			stack = append(stack, e)
		case xml.EndElement:
			e := top()
			if e == nil {
				return nil, fmt.Errorf("parse %s: unexpected end element %s", describe(path), t.Name.Local)
			}
			e.span.Length = end - e.span.Start
			stack = stack[:len(stack)-1]
		default:
			doc.AddOther(top(), &Other{Text: content[start:end], span: Span{Start: start, Length: end - start}})
		}
	}

	if doc.Root == nil {
		return nil, fmt.Errorf("parse %s: no root element", describe(path))
	}
	return doc, nil
}

func describe(path string) string {
	if path == "" {
		return "<in-memory>"
	}
	return path
}

type rawAttr struct {
	name      string
	nameStart int
	valStart  int
	valEnd    int
}

func newElement(content string, start, end int, t xml.StartElement) (*Element, error) {
	raw := content[start:end]
	name, attrs, err := scanStartTag(raw)
	if err != nil {
		return nil, err
	}
	// The decoder reports attributes in source order, xmlns declarations
	// included, so the i-th scanned attribute carries the i-th decoded value.
	if len(attrs) != len(t.Attr) {
		return nil, fmt.Errorf("element %s: found %d attributes, decoder reported %d", name, len(attrs), len(t.Attr))
	}

	e := &Element{
		Name:      name,
		Local:     t.Name.Local,
		Namespace: t.Name.Space,
		span:      Span{Start: start, Length: end - start},
	}
	for i, ra := range attrs {
		v := &AttributeValue{
			Raw:   raw[ra.valStart:ra.valEnd],
			Value: t.Attr[i].Value,
			span:  Span{Start: start + ra.valStart, Length: ra.valEnd - ra.valStart},
		}
		e.Attrs = append(e.Attrs, &Attribute{
			Name:  ra.name,
			Value: v,
			span:  Span{Start: start + ra.nameStart, Length: ra.valEnd - ra.nameStart},
		})
	}
	return e, nil
}

// scanStartTag splits a raw start tag ("<st:include page='a.jelly'/>")
// into its written name and the offsets of each attribute within raw.
func scanStartTag(raw string) (string, []rawAttr, error) {
	if !strings.HasPrefix(raw, "<") {
		return "", nil, fmt.Errorf("start tag %q does not begin with '<'", raw)
	}
	i := 1
	for i < len(raw) && !isSpace(raw[i]) && raw[i] != '/' && raw[i] != '>' {
		i++
	}
	name := raw[1:i]

	var attrs []rawAttr
	for {
		for i < len(raw) && isSpace(raw[i]) {
			i++
		}
		if i >= len(raw) || raw[i] == '/' || raw[i] == '>' {
			return name, attrs, nil
		}

		ra := rawAttr{nameStart: i}
		for i < len(raw) && raw[i] != '=' && !isSpace(raw[i]) && raw[i] != '/' && raw[i] != '>' {
			i++
		}
		ra.name = raw[ra.nameStart:i]

		for i < len(raw) && isSpace(raw[i]) {
			i++
		}
		if i >= len(raw) || raw[i] != '=' {
			return "", nil, fmt.Errorf("attribute %s on %s has no value", ra.name, name)
		}
		i++
		for i < len(raw) && isSpace(raw[i]) {
			i++
		}
		if i >= len(raw) || (raw[i] != '"' && raw[i] != '\'') {
			return "", nil, fmt.Errorf("attribute %s on %s is not quoted", ra.name, name)
		}
		quote := raw[i]
		closing := strings.IndexByte(raw[i+1:], quote)
		if closing < 0 {
			return "", nil, fmt.Errorf("attribute %s on %s is not terminated", ra.name, name)
		}
		ra.valStart = i
		ra.valEnd = i + 1 + closing + 1
		attrs = append(attrs, ra)
		i = ra.valEnd
	}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
