package heuristic

import (
	"regexp"
	"strings"
)

// depExtractor returns the raw import specifiers found in content.
type depExtractor func(content string) []string

var (
	esImport      = regexp.MustCompile(`\b(?:import|export)\s+(?:type\s+)?[\w*{}\s,$]+?\s+from\s+['"]([^'"]+)['"]`)
	esSideEffect  = regexp.MustCompile(`(?m)^\s*import\s+['"]([^'"]+)['"]`)
	requireCall   = regexp.MustCompile(`\brequire\s*\(\s*['"]([^'"]+)['"]\s*\)`)
	dynamicImport = regexp.MustCompile(`\bimport\s*\(\s*['"]([^'"]+)['"]\s*\)`)

	pyFromImport = regexp.MustCompile(`(?m)^\s*from\s+([\w.]+)\s+import\b`)
	pyImport     = regexp.MustCompile(`(?m)^\s*import\s+([\w.]+(?:\s+as\s+\w+)?(?:\s*,\s*[\w.]+(?:\s+as\s+\w+)?)*)`)

	goSingleImport = regexp.MustCompile(`(?m)^import\s+(?:[\w.]+\s+)?"([^"]+)"`)
	goImportBlock  = regexp.MustCompile(`(?ms)^import\s*\((.*?)\)`)
	goImportSpec   = regexp.MustCompile(`(?m)^\s*(?:[\w.]+\s+)?"([^"]+)"`)

	rustUse         = regexp.MustCompile(`(?m)^\s*(?:pub(?:\([^)]*\))?\s+)?use\s+(\w+(?:::\w+)*)`)
	rustExternCrate = regexp.MustCompile(`(?m)^\s*extern\s+crate\s+(\w+)`)

	cInclude = regexp.MustCompile(`(?m)^\s*#\s*include\s*[<"]([^>"]+)[>"]`)

	jvmImport = regexp.MustCompile(`(?m)^\s*import\s+(?:static\s+)?(\w+(?:\.\w+)*(?:\.[*_])?)`)
	csUsing   = regexp.MustCompile(`(?m)^\s*using\s+(?:static\s+)?([\w.]+)\s*;`)

	phpUse     = regexp.MustCompile(`(?m)^\s*use\s+([\w\\]+)`)
	phpRequire = regexp.MustCompile(`\b(?:require|include)(?:_once)?\s*\(?\s*['"]([^'"]+)['"]`)

	rubyRequire    = regexp.MustCompile(`(?m)^\s*require\s+['"]([^'"]+)['"]`)
	rubyRelativeRe = regexp.MustCompile(`(?m)^\s*require_relative\s+['"]([^'"]+)['"]`)

	swiftImport    = regexp.MustCompile(`(?m)^\s*import\s+(\w+)`)
	dartImport     = regexp.MustCompile(`(?m)^\s*import\s+['"]([^'"]+)['"]`)
	elixirUse      = regexp.MustCompile(`(?m)^\s*(?:alias|import|use|require)\s+([A-Z][\w.]*)`)
	haskellImport  = regexp.MustCompile(`(?m)^import\s+(?:qualified\s+)?([A-Z][\w.]*)`)
	clojureRequire = regexp.MustCompile(`\(:require\s+\[([\w.\-]+)`)
	luaRequire     = regexp.MustCompile(`\brequire\s*\(?\s*['"]([^'"]+)['"]`)
	rLibrary       = regexp.MustCompile(`\b(?:library|require)\(\s*['"]?([\w.]+)['"]?\s*\)`)
)

// capture returns an extractor yielding the first group of every match of re.
func capture(re *regexp.Regexp) depExtractor {
	return func(content string) []string {
		var out []string
		for _, m := range re.FindAllStringSubmatch(content, -1) {
			if spec := strings.TrimSpace(m[1]); spec != "" {
				out = append(out, spec)
			}
		}
		return out
	}
}

func pyImports(content string) []string {
	var out []string
	for _, m := range pyImport.FindAllStringSubmatch(content, -1) {
		for _, part := range strings.Split(m[1], ",") {
			name, _, _ := strings.Cut(strings.TrimSpace(part), " ")
			if name != "" {
				out = append(out, name)
			}
		}
	}
	return out
}

func goGroupedImports(content string) []string {
	var out []string
	for _, block := range goImportBlock.FindAllStringSubmatch(content, -1) {
		for _, m := range goImportSpec.FindAllStringSubmatch(block[1], -1) {
			out = append(out, m[1])
		}
	}
	return out
}

// rubyRequireRelative marks its targets as relative so they are never
// reported as external dependencies.
func rubyRequireRelative(content string) []string {
	var out []string
	for _, m := range rubyRelativeRe.FindAllStringSubmatch(content, -1) {
		spec := m[1]
		if !strings.HasPrefix(spec, ".") {
			spec = "./" + spec
		}
		out = append(out, spec)
	}
	return out
}

// IsRelative reports whether an import specifier refers to a local path.
func IsRelative(spec string) bool {
	return strings.HasPrefix(spec, ".")
}

// Dependencies returns the external and relative import specifiers of a
// file, each de-duplicated in first-seen order. Unknown extensions yield
// nothing.
func Dependencies(path, content string) (external, relative []string) {
	lang, ok := LookupLanguage(path)
	if !ok {
		return nil, nil
	}
	seen := make(map[string]bool)
	for _, extract := range lang.deps {
		for _, spec := range extract(content) {
			if seen[spec] {
				continue
			}
			seen[spec] = true
			if IsRelative(spec) {
				relative = append(relative, spec)
			} else {
				external = append(external, spec)
			}
		}
	}
	return external, relative
}
