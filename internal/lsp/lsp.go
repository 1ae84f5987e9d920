// Package lsp holds the editor-facing position types and the conversions
// between them and byte offsets.
package lsp

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// PositionAt converts a byte offset in content to a Position. Offsets past
// the end are clamped.
func PositionAt(content string, offset int) Position {
	offset = min(max(offset, 0), len(content))

	line := strings.Count(content[:offset], "\n")
	lineStart := strings.LastIndexByte(content[:offset], '\n') + 1

	return Position{Line: line, Character: utf16Len(content[lineStart:offset])}
}

// OffsetAt converts a Position to a byte offset in content. Characters past
// the end of the line land on the line end; lines past the end of content
// land on len(content).
func OffsetAt(content string, pos Position) int {
	if pos.Line < 0 || pos.Character < 0 {
		return 0
	}
	start := 0
	for i := 0; i < pos.Line; i++ {
		nl := strings.IndexByte(content[start:], '\n')
		if nl < 0 {
			return len(content)
		}
		start += nl + 1
	}

	units := 0
	for i, r := range content[start:] {
		if r == '\n' || units >= pos.Character {
			return start + i
		}
		units += utf16.RuneLen(r)
	}
	return len(content)
}

// RangeOf converts the byte range [start, end) to a Range.
func RangeOf(content string, start, end int) Range {
	return Range{Start: PositionAt(content, start), End: PositionAt(content, end)}
}

func utf16Len(s string) int {
	n := 0
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError && size == 1 {
			n++
		} else {
			n += utf16.RuneLen(r)
		}
		s = s[size:]
	}
	return n
}
