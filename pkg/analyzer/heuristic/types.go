package heuristic

import "github.com/panbanda/waypoint/pkg/models"

// FileInsight is everything the heuristic passes learned about one file.
type FileInsight struct {
	Path         string               `json:"path"`
	Language     string               `json:"language,omitempty"`
	Dependencies []string             `json:"dependencies,omitempty"`
	LocalImports []string             `json:"local_imports,omitempty"`
	EntryPoint   bool                 `json:"entry_point"`
	Idioms       []string             `json:"idioms,omitempty"`
	Architecture []string             `json:"architecture,omitempty"`
	Elements     []models.CodeElement `json:"elements,omitempty"`
}

// Result aggregates FileInsights across a run. Dependency, entry point
// and tag lists are de-duplicated in first-seen order; Elements keeps
// every match, duplicates included.
type Result struct {
	Files        []FileInsight        `json:"files"`
	ExternalDeps []string             `json:"external_dependencies"`
	InternalDeps []string             `json:"internal_dependencies"`
	EntryPoints  []string             `json:"entry_points"`
	Idioms       []string             `json:"idioms"`
	Architecture []string             `json:"architecture"`
	Elements     []models.CodeElement `json:"elements"`
}

// HasIdiom reports whether tag was found in any file.
func (r *Result) HasIdiom(tag string) bool {
	for _, t := range r.Idioms {
		if t == tag {
			return true
		}
	}
	return false
}

// ElementsByKind groups elements by kind, keeping encounter order.
func (r *Result) ElementsByKind() map[models.ElementKind][]models.CodeElement {
	out := make(map[models.ElementKind][]models.CodeElement)
	for _, e := range r.Elements {
		out[e.Kind] = append(out[e.Kind], e)
	}
	return out
}
