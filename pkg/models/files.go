package models

// FileRecord holds one source file loaded for a single analysis run.
type FileRecord struct {
	Path    string `json:"path"` // relative to the repository root, slash separated
	Content string `json:"-"`
	Size    int64  `json:"size"`
	Lines   int    `json:"lines"`
	Ext     string `json:"ext"` // lowercased, with leading dot
}

// KeyDocument is a markdown file whose name matches one of the onboarding patterns.
type KeyDocument struct {
	Path    string `json:"path"`
	Name    string `json:"name"`
	Summary string `json:"summary,omitempty"`
}

// ElementKind classifies an extracted code element.
type ElementKind string

const (
	ElementClass         ElementKind = "class"
	ElementFunction      ElementKind = "function"
	ElementArrowFunction ElementKind = "arrow_function"
	ElementInterface     ElementKind = "interface"
	ElementType          ElementKind = "type"
)

// ElementKinds returns the element kinds in report order.
func ElementKinds() []ElementKind {
	return []ElementKind{ElementClass, ElementFunction, ElementArrowFunction, ElementInterface, ElementType}
}

// CodeElement is a declaration carved out of a file by pattern matching.
// Elements are recorded once per match and are never de-duplicated.
type CodeElement struct {
	Kind     ElementKind `json:"kind"`
	Name     string      `json:"name"`
	File     string      `json:"file"`
	Methods  []string    `json:"methods,omitempty"`
	Async    bool        `json:"async,omitempty"`
	Exported bool        `json:"exported,omitempty"`
}
