// Package report renders the text of each analysis phase together with
// the structured Signals the comprehensive report is derived from.
package report

import (
	"bytes"
	"embed"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/panbanda/waypoint/internal/vcs"
	"github.com/panbanda/waypoint/pkg/analyzer/heuristic"
	"github.com/panbanda/waypoint/pkg/analyzer/structure"
	"github.com/panbanda/waypoint/pkg/config"
	"github.com/panbanda/waypoint/pkg/models"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Renderer renders phase reports.
type Renderer struct {
	cfg  config.ReportConfig
	tmpl *template.Template
}

// New creates a Renderer with the given section limits.
func New(cfg config.ReportConfig) (*Renderer, error) {
	printer := message.NewPrinter(language.English)
	funcs := template.FuncMap{
		"num": func(n interface{}) string {
			switch v := n.(type) {
			case int:
				return printer.Sprintf("%d", v)
			case int64:
				return printer.Sprintf("%d", v)
			case float64:
				return printer.Sprintf("%.1f", v)
			default:
				return fmt.Sprint(v)
			}
		},
		"title": func(s string) string {
			return cases.Title(language.English).String(s)
		},
		"bytes": humanBytes,
	}

	tmpl, err := template.New("report").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse report templates: %w", err)
	}
	return &Renderer{cfg: cfg, tmpl: tmpl}, nil
}

func (r *Renderer) execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return strings.TrimRight(buf.String(), "\n") + "\n", nil
}

func projectName(path string) string {
	name := filepath.Base(path)
	if name == "." || name == string(filepath.Separator) {
		return path
	}
	return name
}

// ConceptualInput is what the conceptual phase reads.
type ConceptualInput struct {
	ProjectPath string
	Documents   []models.KeyDocument
}

type conceptualView struct {
	ProjectName string
	ProjectPath string
	Count       int
	Shown       []models.KeyDocument
	Hidden      int
}

// Conceptual renders the key documents found in the project.
func (r *Renderer) Conceptual(in ConceptualInput) (Phase, error) {
	shown, hidden := capList(in.Documents, r.cfg.MaxDocSummaries)
	text, err := r.execute("conceptual.tmpl", conceptualView{
		ProjectName: projectName(in.ProjectPath),
		ProjectPath: in.ProjectPath,
		Count:       len(in.Documents),
		Shown:       shown,
		Hidden:      hidden,
	})
	if err != nil {
		return Phase{}, err
	}
	return Phase{
		Name:    models.PhaseConceptual,
		Text:    text,
		Signals: Signals{KeyDocuments: len(in.Documents)},
	}, nil
}

// StructuralInput is what the structural phase reads.
type StructuralInput struct {
	ProjectPath string
	Marker      string
	Listing     string
	Git         *vcs.Info
}

type structuralView struct {
	ProjectName  string
	ProjectPath  string
	Marker       string
	Git          *vcs.Info
	Listing      string
	Observations []string
}

// Structural renders the directory listing and layout observations.
// Observations come from plain substring tests over the listing.
func (r *Renderer) Structural(in StructuralInput) (Phase, error) {
	sig := Signals{
		HasSrcDir:      strings.Contains(in.Listing, "src/"),
		HasPackageJSON: strings.Contains(in.Listing, "package.json"),
		HasPython:      strings.Contains(in.Listing, ".py"),
		HasCargo:       strings.Contains(in.Listing, "Cargo.toml"),
		HasJVMBuild:    strings.Contains(in.Listing, "pom.xml") || strings.Contains(in.Listing, "build.gradle"),
	}

	var obs []string
	if sig.HasSrcDir {
		obs = append(obs, "Source code is organized under a src/ directory")
	}
	if sig.HasPackageJSON {
		obs = append(obs, "Node.js/JavaScript project (package.json present)")
	}
	if sig.HasPython {
		obs = append(obs, "Python source files present")
	}
	if sig.HasCargo {
		obs = append(obs, "Rust project (Cargo.toml present)")
	}
	if sig.HasJVMBuild {
		obs = append(obs, "JVM project built with Maven or Gradle")
	}

	text, err := r.execute("structural.tmpl", structuralView{
		ProjectName:  projectName(in.ProjectPath),
		ProjectPath:  in.ProjectPath,
		Marker:       in.Marker,
		Git:          in.Git,
		Listing:      strings.TrimRight(in.Listing, "\n"),
		Observations: obs,
	})
	if err != nil {
		return Phase{}, err
	}
	return Phase{Name: models.PhaseStructural, Text: text, Signals: sig}, nil
}

// AnalysisInput is what the analysis phase reads.
type AnalysisInput struct {
	ProjectPath string
	Records     []models.FileRecord
	Summary     models.CodeStructureSummary
	Result      *heuristic.Result
}

type extensionRow struct {
	Ext   string
	Count int
	Lines int
}

type listView struct {
	Total  int
	Shown  []string
	Hidden int
}

type elementView struct {
	Name    string
	File    string
	Methods string
}

type elementGroup struct {
	Title  string
	Total  int
	Shown  []elementView
	Hidden int
}

type preview struct {
	Path  string
	Lines int
	Text  string
}

type analysisView struct {
	ProjectName  string
	ProjectPath  string
	Summary      models.CodeStructureSummary
	Extensions   []extensionRow
	External     listView
	Internal     listView
	EntryPoints  listView
	Elements     []elementGroup
	Idioms       []string
	Architecture []string
	Previews     []preview
}

var kindTitles = map[models.ElementKind]string{
	models.ElementClass:         "Classes",
	models.ElementFunction:      "Functions",
	models.ElementArrowFunction: "Arrow Functions",
	models.ElementInterface:     "Interfaces",
	models.ElementType:          "Types",
}

// Analysis renders the structure summary and heuristic findings.
func (r *Renderer) Analysis(in AnalysisInput) (Phase, error) {
	res := in.Result
	if res == nil {
		res = heuristic.Aggregate(nil)
	}

	view := analysisView{
		ProjectName:  projectName(in.ProjectPath),
		ProjectPath:  in.ProjectPath,
		Summary:      in.Summary,
		External:     r.list(res.ExternalDeps),
		Internal:     r.list(res.InternalDeps),
		EntryPoints:  r.list(res.EntryPoints),
		Idioms:       res.Idioms,
		Architecture: res.Architecture,
	}
	for _, ext := range structure.Extensions(in.Summary) {
		es := in.Summary.ByExtension[ext]
		view.Extensions = append(view.Extensions, extensionRow{Ext: ext, Count: es.Count, Lines: es.Lines})
	}

	byKind := res.ElementsByKind()
	for _, kind := range models.ElementKinds() {
		elems := byKind[kind]
		if len(elems) == 0 {
			continue
		}
		shown, hidden := capList(elems, r.cfg.MaxListedItems)
		g := elementGroup{Title: kindTitles[kind], Total: len(elems), Hidden: hidden}
		for _, e := range shown {
			g.Shown = append(g.Shown, elementView{Name: e.Name, File: e.File, Methods: r.methods(e.Methods)})
		}
		view.Elements = append(view.Elements, g)
	}

	for _, rec := range in.Records {
		if len(view.Previews) >= r.cfg.MaxPreviews {
			break
		}
		if rec.Lines <= r.cfg.PreviewMinLines {
			continue
		}
		lines := PreviewLines(rec.Content, r.cfg.PreviewLines)
		if len(lines) == 0 {
			continue
		}
		view.Previews = append(view.Previews, preview{Path: rec.Path, Lines: rec.Lines, Text: strings.Join(lines, "\n")})
	}

	text, err := r.execute("analysis.tmpl", view)
	if err != nil {
		return Phase{}, err
	}
	return Phase{
		Name: models.PhaseAnalysis,
		Text: text,
		Signals: Signals{
			TotalFiles:   in.Summary.TotalFiles,
			TotalLines:   in.Summary.TotalLines,
			Complexity:   in.Summary.Complexity,
			ExternalDeps: len(res.ExternalDeps),
			EntryPoints:  len(res.EntryPoints),
			HasTesting:   res.HasIdiom("Testing"),
			Idioms:       res.Idioms,
			Architecture: res.Architecture,
		},
	}, nil
}

func (r *Renderer) list(items []string) listView {
	shown, hidden := capList(items, r.cfg.MaxListedItems)
	return listView{Total: len(items), Shown: shown, Hidden: hidden}
}

func (r *Renderer) methods(names []string) string {
	if len(names) == 0 {
		return ""
	}
	shown, hidden := capList(names, r.cfg.MaxMethodPreview)
	s := strings.Join(shown, ", ")
	if hidden > 0 {
		s += fmt.Sprintf(" (+%d more)", hidden)
	}
	return s
}

// SynthesisInput is what the synthesis phase reads.
type SynthesisInput struct {
	ProjectPath string
	History     []models.PhaseRecord
}

type historyEntry struct {
	Phase     string
	Timestamp string
	Excerpt   string
}

type synthesisView struct {
	ProjectName string
	ProjectPath string
	Entries     []historyEntry
}

// Synthesis summarizes the given history entries. It reads only
// history, so an empty history renders a valid report.
func (r *Renderer) Synthesis(in SynthesisInput) (Phase, error) {
	view := synthesisView{ProjectName: projectName(in.ProjectPath), ProjectPath: in.ProjectPath}
	for _, rec := range in.History {
		view.Entries = append(view.Entries, historyEntry{
			Phase:     string(rec.Phase),
			Timestamp: rec.Timestamp.UTC().Format("2006-01-02 15:04:05Z"),
			Excerpt:   Excerpt(strings.TrimSpace(rec.Findings), r.cfg.HistoryExcerpt),
		})
	}

	text, err := r.execute("synthesis.tmpl", view)
	if err != nil {
		return Phase{}, err
	}
	return Phase{Name: models.PhaseSynthesis, Text: text}, nil
}

func capList[T any](items []T, max int) ([]T, int) {
	if max <= 0 || len(items) <= max {
		return items, 0
	}
	return items[:max], len(items) - max
}

func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
