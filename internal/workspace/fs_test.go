package workspace

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0muji4/jellyref/internal/markup"
)

func testFS(match NameMatch) *FS {
	return NewFSFrom("/project", fstest.MapFS{
		"views/index.jelly":     {Data: []byte(`<a/>`)},
		"views/Other.jelly":     {Data: []byte(`<b/>`)},
		"views/sub/inner.jelly": {Data: []byte(`<c/>`)},
		"top.jelly":             {Data: []byte(`<d/>`)},
	}, match)
}

func TestFS_ReadFile(t *testing.T) {
	w := testFS(MatchHost)

	got, err := w.ReadFile("views/index.jelly")
	require.NoError(t, err)
	assert.Equal(t, `<a/>`, got)

	got, err = w.ReadFile("/project/top.jelly")
	require.NoError(t, err)
	assert.Equal(t, `<d/>`, got)

	_, err = w.ReadFile("../etc/passwd")
	assert.ErrorContains(t, err, "outside project root")

	_, err = w.ReadFile("missing.jelly")
	assert.Error(t, err)
}

func TestFS_Parent(t *testing.T) {
	w := testFS(MatchHost)

	d, ok := w.Parent(markup.NewDocument("views/index.jelly", ""))
	require.True(t, ok)
	assert.Equal(t, "views", d.Path())

	d, ok = w.Parent(markup.NewDocument("top.jelly", ""))
	require.True(t, ok)
	assert.Equal(t, ".", d.Path())

	_, ok = w.Parent(markup.NewDocument("", "<a/>"))
	assert.False(t, ok, "in-memory documents have no parent")

	_, ok = w.Parent(markup.NewDocument("gone/page.jelly", ""))
	assert.False(t, ok)

	_, ok = w.Parent(nil)
	assert.False(t, ok)
}

func TestDir_FindFile(t *testing.T) {
	tests := []struct {
		name   string
		match  NameMatch
		lookup string
		want   string
		found  bool
	}{
		{name: "exact hit", match: MatchExact, lookup: "index.jelly", want: "views/index.jelly", found: true},
		{name: "exact rejects case", match: MatchExact, lookup: "other.jelly"},
		{name: "fold accepts case", match: MatchFold, lookup: "other.jelly", want: "views/Other.jelly", found: true},
		{name: "host map fs is case sensitive", match: MatchHost, lookup: "other.jelly"},
		{name: "host hit", match: MatchHost, lookup: "Other.jelly", want: "views/Other.jelly", found: true},
		{name: "directory is not a file", match: MatchHost, lookup: "sub"},
		{name: "directory is not a file exact", match: MatchExact, lookup: "sub"},
		{name: "nested path", match: MatchHost, lookup: "sub/inner.jelly"},
		{name: "parent escape", match: MatchHost, lookup: "../top.jelly"},
		{name: "empty", match: MatchExact, lookup: ""},
		{name: "missing", match: MatchFold, lookup: "nope.jelly"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := testFS(tt.match)
			d, ok := w.Parent(markup.NewDocument("views/index.jelly", ""))
			require.True(t, ok)

			f, found := d.FindFile(tt.lookup)
			assert.Equal(t, tt.found, found)
			if tt.found {
				assert.Equal(t, tt.want, f.Path)
				assert.Equal(t, filepath.Base(tt.want), f.Name)
			}
		})
	}
}

func TestFS_OnDisk(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "page.jelly"), []byte(`<a/>`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "other.jelly"), []byte(`<b/>`), 0o644))

	w := NewFS(root, MatchExact)
	d, ok := w.Parent(markup.NewDocument("page.jelly", ""))
	require.True(t, ok)

	f, ok := d.FindFile("other.jelly")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "other.jelly"), w.Abs(f))
}

func TestParseNameMatch(t *testing.T) {
	m, err := ParseNameMatch("")
	require.NoError(t, err)
	assert.Equal(t, MatchHost, m)

	m, err = ParseNameMatch(" Fold ")
	require.NoError(t, err)
	assert.Equal(t, MatchFold, m)

	_, err = ParseNameMatch("glob")
	assert.Error(t, err)
}
