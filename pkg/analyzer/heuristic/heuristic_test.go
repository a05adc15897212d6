package heuristic

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panbanda/waypoint/pkg/models"
)

func TestLookupLanguage(t *testing.T) {
	tests := []struct {
		path string
		want string
		ok   bool
	}{
		{"src/index.js", "JavaScript", true},
		{"App.TSX", "TypeScript", true},
		{"main.go", "Go", true},
		{"lib.rs", "Rust", true},
		{"include/util.hpp", "C/C++", true},
		{"build.gradle.kts", "Kotlin", true},
		{"values.yml", "YAML", true},
		{"README.md", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			lang, ok := LookupLanguage(tt.path)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, lang.Name)
			}
		})
	}
}

func TestLookupLanguageTypeScriptFlag(t *testing.T) {
	ts, _ := LookupLanguage("a.ts")
	js, _ := LookupLanguage("a.js")
	assert.True(t, ts.TypeScript)
	assert.False(t, js.TypeScript)
}

func TestIsEntryPoint(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		content string
		want    bool
	}{
		{"index path", "src/index.js", "", true},
		{"main path", "cmd/tool/main.go", "", true},
		{"server path", "lib/Server.ts", "", true},
		{"path only false positive", "docs/appendix.json", "{}", true},
		{"go main signature", "cmd/run.go", "package x\nfunc main() {}\n", true},
		{"python dunder double quotes", "tool.py", "if __name__ == \"__main__\":\n    run()\n", true},
		{"python dunder single quotes", "tool.py", "if __name__ == '__main__':\n    run()\n", true},
		{"java main", "Tool.java", "public static void main(String[] args) {}", true},
		{"spring boot", "Boot.java", "@SpringBootApplication\nclass Boot {}", true},
		{"rust main", "cli.rs", "fn main() {}", true},
		{"c main", "tool.c", "int main(void) { return 0; }", true},
		{"express call", "http.js", "const x = express()", true},
		{"csharp main", "Tool.cs", "static void Main(string[] args) {}", true},
		{"dart run app", "ui.dart", "void start() { runApp(MyApp()); }", true},
		{"plain helper", "lib/util.js", "module.exports = {}", false},
		{"signature in other language ignored", "notes.yaml", "func main()", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsEntryPoint(tt.path, tt.content))
		})
	}
}

func TestIdioms(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		content string
		want    []string
		absent  []string
	}{
		{
			name:    "express server",
			path:    "src/index.js",
			content: "const express = require('express')\nconst app = express()\napp.get('/', (req, res) => res.send('ok'))\n",
			want:    []string{"Express.js", "REST API"},
			absent:  []string{"React Hooks", "Go Concurrency"},
		},
		{
			name:    "react component",
			path:    "src/App.tsx",
			content: "import React, { useState } from 'react'\nexport function App(): JSX.Element {\n  const [n, setN] = useState(0)\n  return (<div>{n}</div>)\n}\n",
			want:    []string{"Functions", "ES6 Modules", "React Components", "React Hooks"},
		},
		{
			name:    "go concurrency and errors",
			path:    "worker.go",
			content: "package w\n\nfunc Run(ch chan int) error {\n\tgo func() { ch <- 1 }()\n\tif err != nil {\n\t\treturn err\n\t}\n\treturn nil\n}\n",
			want:    []string{"Functions", "Go Concurrency", "Go Error Handling"},
		},
		{
			name:    "go tags need go files",
			path:    "notes.py",
			content: "if err != nil:\n    pass\n",
			absent:  []string{"Go Error Handling"},
		},
		{
			name:    "rust",
			path:    "lib.rs",
			content: "trait Shape {}\nimpl Shape for Circle {}\nfn area(c: &mut Circle) -> Result<f64, String> { Ok(1.0) }\n",
			want:    []string{"Functions", "Rust Ownership/Borrowing", "Rust Traits", "Rust Error Handling"},
		},
		{
			name:    "kubernetes manifest",
			path:    "deploy.yaml",
			content: "apiVersion: apps/v1\nkind: Deployment\nspec:\n  template:\n    spec:\n      containers:\n        - image: nginx:1.25\n",
			want:    []string{"Docker/Containers", "Kubernetes"},
		},
		{
			name:    "python fastapi",
			path:    "api.py",
			content: "from fastapi import FastAPI\napp = FastAPI()\n\n@app.get('/')\nasync def root() -> dict:\n    return {}\n",
			want:    []string{"Functions", "Async/Promises", "FastAPI", "REST API", "Decorators"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Idioms(tt.path, tt.content)
			for _, w := range tt.want {
				assert.Contains(t, got, w)
			}
			for _, a := range tt.absent {
				assert.NotContains(t, got, a)
			}
		})
	}
}

func TestIdiomsFollowRuleOrder(t *testing.T) {
	got := Idioms("a.js", "async function load() { class A {} }")
	require.Len(t, got, 3)
	assert.Equal(t, []string{"OOP/Classes", "Functions", "Async/Promises"}, got)
}

func TestArchitecture(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		content string
		want    []string
	}{
		{
			name:    "express routing",
			path:    "src/index.js",
			content: "const app = require('express')()\napp.use(cors())\napp.get('/', handler)\napp.listen(3000)\n",
			want:    []string{"Server Bootstrap", "Routing", "Middleware"},
		},
		{
			name:    "layered naming",
			path:    "UserService.ts",
			content: "export class UserService {}\nexport class UserRepository {}\nclass UserController {}\n",
			want:    []string{"MVC Controller", "Service Layer", "Repository Pattern"},
		},
		{
			name:    "go http server",
			path:    "main.go",
			content: "func main() {\n\tslog.Info(\"start\")\n\tport := os.Getenv(\"PORT\")\n\thttp.ListenAndServe(port, nil)\n}\n",
			want:    []string{"Server Bootstrap", "Logging", "Configuration"},
		},
		{
			name:    "mcp tool server",
			path:    "server.ts",
			content: "import { McpServer } from '@modelcontextprotocol/sdk/server/mcp.js'\nserver.tool('analyze', schema, handler)\n",
			want:    []string{"MCP Server"},
		},
		{
			name:    "events and errors",
			path:    "bus.js",
			content: "try { emitter.emit('done') } catch (e) { console.error(e) }\n",
			want:    []string{"Error Handling", "Logging", "Event-Driven"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Architecture(tt.path, tt.content)
			for _, w := range tt.want {
				assert.Contains(t, got, w)
			}
		})
	}
}

func TestRuleTagsAreUnique(t *testing.T) {
	for _, rules := range [][]tagRule{idiomRules, architectureRules} {
		seen := map[string]bool{}
		for _, r := range rules {
			assert.False(t, seen[r.Tag], "duplicate tag %q", r.Tag)
			seen[r.Tag] = true
		}
	}
	assert.Len(t, idiomRules, 29)
	assert.Len(t, architectureRules, 14)
}

func TestAnalyzeFile(t *testing.T) {
	a := New()
	fi := a.AnalyzeFile(models.FileRecord{
		Path:    "src/index.js",
		Content: "const express = require('express')\nconst util = require('./util')\nconst app = express()\napp.get('/', (req, res) => res.send('hi'))\n",
	})

	assert.Equal(t, "JavaScript", fi.Language)
	assert.Equal(t, []string{"express"}, fi.Dependencies)
	assert.Equal(t, []string{"./util"}, fi.LocalImports)
	assert.True(t, fi.EntryPoint)
	assert.Contains(t, fi.Idioms, "Express.js")
	assert.Contains(t, fi.Architecture, "Server Bootstrap")
	assert.Contains(t, fi.Architecture, "Routing")
}

func TestAnalyzeFileUnknownExtension(t *testing.T) {
	fi := New().AnalyzeFile(models.FileRecord{Path: "notes.txt", Content: "import x from 'y'"})
	assert.Empty(t, fi.Language)
	assert.Empty(t, fi.Dependencies)
	assert.Empty(t, fi.Elements)
}

func TestGuardRecoversPanics(t *testing.T) {
	var buf bytes.Buffer
	a := New(WithLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))))

	ran := false
	a.guard("boom", "x.js", func() { panic("bad pattern") })
	a.guard("next", "x.js", func() { ran = true })

	assert.True(t, ran)
	assert.Contains(t, buf.String(), "heuristic pass failed")
	assert.Contains(t, buf.String(), "bad pattern")
}

func TestAggregateDeduplicatesListsButNotElements(t *testing.T) {
	a := New()
	src := "import lib from 'lib'\nexport function helper() {}\n"
	res := a.Analyze([]models.FileRecord{
		{Path: "src/a.js", Content: src},
		{Path: "src/b.js", Content: src},
		{Path: "src/main.js", Content: "import lib from 'lib'\nimport other from 'other'\n"},
	})

	assert.Equal(t, []string{"lib", "other"}, res.ExternalDeps)
	assert.Equal(t, []string{"src/main.js"}, res.EntryPoints)
	assert.Equal(t, 1, strings.Count(strings.Join(res.Idioms, ","), "Functions"))

	var helpers int
	for _, e := range res.Elements {
		if e.Name == "helper" {
			helpers++
		}
	}
	assert.Equal(t, 2, helpers, "identical declarations in two files are both kept")
	assert.Len(t, res.Files, 3)
}

func TestAggregateEmpty(t *testing.T) {
	res := Aggregate(nil)
	assert.Empty(t, res.ExternalDeps)
	assert.Empty(t, res.Elements)
	assert.NotNil(t, res.Elements)
	assert.False(t, res.HasIdiom("Testing"))
}

func TestResultElementsByKind(t *testing.T) {
	res := Aggregate([]FileInsight{{Elements: []models.CodeElement{
		{Kind: models.ElementClass, Name: "A"},
		{Kind: models.ElementFunction, Name: "f"},
		{Kind: models.ElementClass, Name: "B"},
	}}})
	byKind := res.ElementsByKind()
	require.Len(t, byKind[models.ElementClass], 2)
	assert.Equal(t, "A", byKind[models.ElementClass][0].Name)
	assert.Equal(t, "B", byKind[models.ElementClass][1].Name)
	assert.Len(t, byKind[models.ElementFunction], 1)
}
