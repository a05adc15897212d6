package report

import "github.com/panbanda/waypoint/pkg/models"

// Signals is the structured summary a phase renderer produces alongside
// its text. The comprehensive report is derived from Signals only.
type Signals struct {
	KeyDocuments   int               `json:"key_documents"`
	HasSrcDir      bool              `json:"has_src_dir"`
	HasPackageJSON bool              `json:"has_package_json"`
	HasPython      bool              `json:"has_python"`
	HasCargo       bool              `json:"has_cargo"`
	HasJVMBuild    bool              `json:"has_jvm_build"`
	TotalFiles     int               `json:"total_files"`
	TotalLines     int               `json:"total_lines"`
	Complexity     models.Complexity `json:"complexity,omitempty"`
	ExternalDeps   int               `json:"external_deps"`
	EntryPoints    int               `json:"entry_points"`
	HasTesting     bool              `json:"has_testing"`
	Idioms         []string          `json:"idioms,omitempty"`
	Architecture   []string          `json:"architecture,omitempty"`
}

// Merge combines o into s. Counts and lists from o replace empty values
// in s; booleans are OR-ed.
func (s Signals) Merge(o Signals) Signals {
	if o.KeyDocuments != 0 {
		s.KeyDocuments = o.KeyDocuments
	}
	s.HasSrcDir = s.HasSrcDir || o.HasSrcDir
	s.HasPackageJSON = s.HasPackageJSON || o.HasPackageJSON
	s.HasPython = s.HasPython || o.HasPython
	s.HasCargo = s.HasCargo || o.HasCargo
	s.HasJVMBuild = s.HasJVMBuild || o.HasJVMBuild
	if o.TotalFiles != 0 {
		s.TotalFiles = o.TotalFiles
	}
	if o.TotalLines != 0 {
		s.TotalLines = o.TotalLines
	}
	if o.Complexity != "" {
		s.Complexity = o.Complexity
	}
	if o.ExternalDeps != 0 {
		s.ExternalDeps = o.ExternalDeps
	}
	if o.EntryPoints != 0 {
		s.EntryPoints = o.EntryPoints
	}
	s.HasTesting = s.HasTesting || o.HasTesting
	if len(o.Idioms) > 0 {
		s.Idioms = o.Idioms
	}
	if len(o.Architecture) > 0 {
		s.Architecture = o.Architecture
	}
	return s
}

// Phase is the output of one phase renderer.
type Phase struct {
	Name    models.Phase `json:"phase"`
	Text    string       `json:"text"`
	Signals Signals      `json:"signals"`
}
