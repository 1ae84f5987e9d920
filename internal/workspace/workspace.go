package workspace

import "github.com/0muji4/jellyref/internal/markup"

// FileReader defines operations for reading source files.
type FileReader interface {
	ReadFile(path string) (string, error)
}

// File is a file located inside the workspace.
type File struct {
	Name string // base name
	Path string // slash-separated, relative to the workspace root
}

// Directory looks up files by name.
type Directory interface {
	Path() string
	FindFile(name string) (File, bool)
}

// Locator gives access to the directory a document lives in.
type Locator interface {
	Parent(doc *markup.Document) (Directory, bool)
}
