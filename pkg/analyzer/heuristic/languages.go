package heuristic

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/panbanda/waypoint/pkg/models"
)

// exportStyle decides how an element's exported flag is derived.
type exportStyle int

const (
	exportNone         exportStyle = iota
	exportKeyword                  // an "export" (or pub/public) capture group is present
	exportCapitalized              // Go: upper-case initial
	exportNoUnderscore             // Python: no leading underscore
)

// bodyStyle decides how a class body is located for method harvesting.
type bodyStyle int

const (
	bodyNone bodyStyle = iota
	bodyBraces
	bodyIndent
)

// elementRule carves one kind of declaration out of file content.
// The regex must define a "name" group and may define "export" and "async" groups.
type elementRule struct {
	kind   models.ElementKind
	re     *regexp.Regexp
	export exportStyle
	body   bodyStyle
}

// Language groups the patterns used for one family of file extensions.
type Language struct {
	Name        string
	Extensions  []string
	TypeScript  bool
	deps        []depExtractor
	entryPoints []*regexp.Regexp
	elements    []elementRule
}

var registry = map[string]*Language{}

func register(lang *Language) {
	for _, ext := range lang.Extensions {
		registry[ext] = lang
	}
}

// LookupLanguage returns the language registered for the extension of path.
func LookupLanguage(path string) (*Language, bool) {
	lang, ok := registry[strings.ToLower(filepath.Ext(path))]
	return lang, ok
}

var (
	jsClass = elementRule{
		kind:   models.ElementClass,
		re:     regexp.MustCompile(`(?m)^[ \t]*(?P<export>export\s+)?(?:default\s+)?(?:abstract\s+)?class\s+(?P<name>[A-Za-z_$][\w$]*)`),
		export: exportKeyword,
		body:   bodyBraces,
	}
	jsFunction = elementRule{
		kind:   models.ElementFunction,
		re:     regexp.MustCompile(`(?m)^[ \t]*(?P<export>export\s+)?(?:default\s+)?(?P<async>async\s+)?function\s*\*?\s*(?P<name>[A-Za-z_$][\w$]*)\s*\(`),
		export: exportKeyword,
	}
	jsArrow = elementRule{
		kind:   models.ElementArrowFunction,
		re:     regexp.MustCompile(`(?m)^[ \t]*(?P<export>export\s+)?(?:const|let|var)\s+(?P<name>[A-Za-z_$][\w$]*)\s*(?::[^=\n]+)?=\s*(?P<async>async\s+)?(?:\([^)\n]*\)|[A-Za-z_$][\w$]*)\s*(?::\s*[^=\n]+)?=>`),
		export: exportKeyword,
	}
	tsInterface = elementRule{
		kind:   models.ElementInterface,
		re:     regexp.MustCompile(`(?m)^[ \t]*(?P<export>export\s+)?(?:declare\s+)?interface\s+(?P<name>[A-Za-z_$][\w$]*)`),
		export: exportKeyword,
	}
	tsType = elementRule{
		kind:   models.ElementType,
		re:     regexp.MustCompile(`(?m)^[ \t]*(?P<export>export\s+)?(?:declare\s+)?type\s+(?P<name>[A-Za-z_$][\w$]*)\s*(?:<[^>\n]*>)?\s*=`),
		export: exportKeyword,
	}
	jvmClass = elementRule{
		kind:   models.ElementClass,
		re:     regexp.MustCompile(`(?m)^[ \t]*(?P<export>public\s+)?(?:(?:private|protected|internal|abstract|final|static|sealed|partial|open|data)\s+)*class\s+(?P<name>\w+)`),
		export: exportKeyword,
		body:   bodyBraces,
	}
	jvmInterface = elementRule{
		kind:   models.ElementInterface,
		re:     regexp.MustCompile(`(?m)^[ \t]*(?P<export>public\s+)?(?:(?:private|protected|internal|sealed)\s+)*interface\s+(?P<name>\w+)`),
		export: exportKeyword,
	}
)

func init() {
	register(&Language{
		Name:       "JavaScript",
		Extensions: []string{".js", ".jsx", ".mjs", ".cjs", ".vue", ".svelte"},
		deps:       []depExtractor{capture(esImport), capture(esSideEffect), capture(requireCall), capture(dynamicImport)},
		entryPoints: signatures(
			`express\(\)`, `new Server\(`, `app\.listen\(`, `createServer\(`,
		),
		elements: []elementRule{jsClass, jsFunction, jsArrow},
	})
	register(&Language{
		Name:       "TypeScript",
		Extensions: []string{".ts", ".tsx"},
		TypeScript: true,
		deps:       []depExtractor{capture(esImport), capture(esSideEffect), capture(requireCall), capture(dynamicImport)},
		entryPoints: signatures(
			`express\(\)`, `new Server\(`, `app\.listen\(`, `createServer\(`,
		),
		elements: []elementRule{jsClass, jsFunction, jsArrow, tsInterface, tsType},
	})
	register(&Language{
		Name:       "Python",
		Extensions: []string{".py"},
		deps:       []depExtractor{capture(pyFromImport), pyImports},
		entryPoints: signatures(
			`if\s+__name__\s*==\s*["']__main__["']`, `FastAPI\(`, `Flask\(__name__\)`,
		),
		elements: []elementRule{
			{kind: models.ElementClass, re: regexp.MustCompile(`(?m)^class\s+(?P<name>\w+)`), export: exportNoUnderscore, body: bodyIndent},
			{kind: models.ElementFunction, re: regexp.MustCompile(`(?m)^(?P<async>async\s+)?def\s+(?P<name>\w+)\s*\(`), export: exportNoUnderscore},
		},
	})
	register(&Language{
		Name:        "Go",
		Extensions:  []string{".go"},
		deps:        []depExtractor{capture(goSingleImport), goGroupedImports},
		entryPoints: signatures(`func main\(\)`),
		elements: []elementRule{
			{kind: models.ElementClass, re: regexp.MustCompile(`(?m)^type\s+(?P<name>\w+)\s+struct\b`), export: exportCapitalized},
			{kind: models.ElementInterface, re: regexp.MustCompile(`(?m)^type\s+(?P<name>\w+)\s+interface\b`), export: exportCapitalized},
			{kind: models.ElementFunction, re: regexp.MustCompile(`(?m)^func\s+(?:\([^)]*\)\s*)?(?P<name>\w+)\s*[\[(]`), export: exportCapitalized},
		},
	})
	register(&Language{
		Name:        "Rust",
		Extensions:  []string{".rs"},
		deps:        []depExtractor{capture(rustUse), capture(rustExternCrate)},
		entryPoints: signatures(`fn main\(\)`),
		elements: []elementRule{
			{kind: models.ElementClass, re: regexp.MustCompile(`(?m)^[ \t]*(?P<export>pub(?:\([^)]*\))?\s+)?struct\s+(?P<name>\w+)`), export: exportKeyword},
			{kind: models.ElementInterface, re: regexp.MustCompile(`(?m)^[ \t]*(?P<export>pub(?:\([^)]*\))?\s+)?trait\s+(?P<name>\w+)`), export: exportKeyword},
			{kind: models.ElementFunction, re: regexp.MustCompile(`(?m)^[ \t]*(?P<export>pub(?:\([^)]*\))?\s+)?(?P<async>async\s+)?fn\s+(?P<name>\w+)`), export: exportKeyword},
		},
	})
	register(&Language{
		Name:        "C/C++",
		Extensions:  []string{".c", ".cc", ".cpp", ".cxx", ".h", ".hpp"},
		deps:        []depExtractor{capture(cInclude)},
		entryPoints: signatures(`int\s+main\s*\(`),
		elements: []elementRule{
			{kind: models.ElementClass, re: regexp.MustCompile(`(?m)^[ \t]*(?:template\s*<[^>]*>\s*)?class\s+(?P<name>\w+)\s*(?::[^{;]*)?\{`), body: bodyBraces},
		},
	})
	register(&Language{
		Name:        "Java",
		Extensions:  []string{".java"},
		deps:        []depExtractor{capture(jvmImport)},
		entryPoints: signatures(`public\s+static\s+void\s+main\s*\(`, `@SpringBootApplication`),
		elements:    []elementRule{jvmClass, jvmInterface},
	})
	register(&Language{
		Name:        "Kotlin",
		Extensions:  []string{".kt", ".kts"},
		deps:        []depExtractor{capture(jvmImport)},
		entryPoints: signatures(`fun\s+main\s*\(`, `@SpringBootApplication`),
		elements:    []elementRule{jvmClass, jvmInterface},
	})
	register(&Language{
		Name:        "Scala",
		Extensions:  []string{".scala"},
		deps:        []depExtractor{capture(jvmImport)},
		entryPoints: signatures(`def\s+main\s*\(`, `extends\s+App\b`),
		elements:    []elementRule{jvmClass},
	})
	register(&Language{
		Name:        "C#",
		Extensions:  []string{".cs"},
		deps:        []depExtractor{capture(csUsing)},
		entryPoints: signatures(`static\s+(?:async\s+)?(?:void|int|Task)\s+Main\s*\(`),
		elements:    []elementRule{jvmClass, jvmInterface},
	})
	register(&Language{
		Name:       "PHP",
		Extensions: []string{".php"},
		deps:       []depExtractor{capture(phpUse), capture(phpRequire)},
		elements:   []elementRule{jvmClass},
	})
	register(&Language{
		Name:       "Ruby",
		Extensions: []string{".rb"},
		deps:       []depExtractor{capture(rubyRequire), rubyRequireRelative},
		elements: []elementRule{
			{kind: models.ElementClass, re: regexp.MustCompile(`(?m)^[ \t]*class\s+(?P<name>[A-Z]\w*)`)},
			{kind: models.ElementFunction, re: regexp.MustCompile(`(?m)^[ \t]*def\s+(?:self\.)?(?P<name>\w+[?!]?)`)},
		},
	})
	register(&Language{
		Name:        "Swift",
		Extensions:  []string{".swift"},
		deps:        []depExtractor{capture(swiftImport)},
		entryPoints: signatures(`@main\b`),
		elements: []elementRule{
			{kind: models.ElementClass, re: regexp.MustCompile(`(?m)^[ \t]*(?P<export>public\s+)?(?:final\s+)?(?:class|struct)\s+(?P<name>\w+)`), export: exportKeyword, body: bodyBraces},
			{kind: models.ElementInterface, re: regexp.MustCompile(`(?m)^[ \t]*(?P<export>public\s+)?protocol\s+(?P<name>\w+)`), export: exportKeyword},
		},
	})
	register(&Language{
		Name:        "Dart",
		Extensions:  []string{".dart"},
		deps:        []depExtractor{capture(dartImport)},
		entryPoints: signatures(`runApp\(`, `void\s+main\s*\(`),
		elements: []elementRule{
			{kind: models.ElementClass, re: regexp.MustCompile(`(?m)^[ \t]*(?:abstract\s+)?class\s+(?P<name>\w+)`), body: bodyBraces},
		},
	})
	register(&Language{
		Name:        "Elixir",
		Extensions:  []string{".ex", ".exs"},
		deps:        []depExtractor{capture(elixirUse)},
		entryPoints: signatures(`Application\.start`, `use\s+Application\b`),
		elements: []elementRule{
			{kind: models.ElementClass, re: regexp.MustCompile(`(?m)^[ \t]*defmodule\s+(?P<name>[\w.]+)`)},
			{kind: models.ElementFunction, re: regexp.MustCompile(`(?m)^[ \t]*def\s+(?P<name>\w+[?!]?)`)},
		},
	})
	register(&Language{
		Name:        "Haskell",
		Extensions:  []string{".hs"},
		deps:        []depExtractor{capture(haskellImport)},
		entryPoints: signatures(`(?m)^main\s*::`),
	})
	register(&Language{
		Name:       "Clojure",
		Extensions: []string{".clj"},
		deps:       []depExtractor{capture(clojureRequire)},
		elements: []elementRule{
			{kind: models.ElementFunction, re: regexp.MustCompile(`\(defn-?\s+(?P<name>[\w\-?!*]+)`)},
		},
	})
	register(&Language{
		Name:       "Lua",
		Extensions: []string{".lua"},
		deps:       []depExtractor{capture(luaRequire)},
		elements: []elementRule{
			{kind: models.ElementFunction, re: regexp.MustCompile(`(?m)^[ \t]*(?:local\s+)?function\s+(?P<name>[\w.:]+)`)},
		},
	})
	register(&Language{
		Name:       "R",
		Extensions: []string{".r"},
		deps:       []depExtractor{capture(rLibrary)},
	})
	register(&Language{
		Name:       "Shell",
		Extensions: []string{".sh", ".bash"},
		elements: []elementRule{
			{kind: models.ElementFunction, re: regexp.MustCompile(`(?m)^[ \t]*(?:function\s+)?(?P<name>[\w\-]+)\s*\(\)\s*\{`)},
		},
	})
	register(&Language{Name: "SQL", Extensions: []string{".sql"}})
	register(&Language{Name: "YAML", Extensions: []string{".yaml", ".yml"}})
	register(&Language{Name: "TOML", Extensions: []string{".toml"}})
	register(&Language{Name: "JSON", Extensions: []string{".json"}})
}

func signatures(exprs ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		res[i] = regexp.MustCompile(e)
	}
	return res
}
