package heuristic

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/panbanda/waypoint/pkg/models"
)

// methodSignature matches a method header inside a class body, optionally
// prefixed by access or storage modifiers.
var methodSignature = regexp.MustCompile(`(?m)^[ \t]*(?:(?:public|private|protected|internal|static|async|override|virtual|abstract|final|readonly|get|set|suspend)\s+)*(?:[\w<>\[\],?]+\s+)??(\w+)\s*\([^)\n]*\)\s*(?::\s*[^{\n;]+|throws\s+[\w., ]+)?\s*\{`)

var pyMethod = regexp.MustCompile(`(?m)^[ \t]+(?:async\s+)?def\s+(\w+)\s*\(`)

// notMethods are control keywords the signature scan would otherwise pick up.
var notMethods = map[string]bool{
	"if": true, "for": true, "while": true, "switch": true, "catch": true,
	"return": true, "function": true, "foreach": true, "using": true, "lock": true,
	"synchronized": true, "else": true, "do": true, "try": true, "with": true,
}

// Elements carves declarations out of content using the patterns
// registered for the file's language. Every match yields one element.
func Elements(filePath, content string) []models.CodeElement {
	lang, ok := LookupLanguage(filePath)
	if !ok {
		return nil
	}

	var elems []models.CodeElement
	for _, r := range lang.elements {
		nameIdx := r.re.SubexpIndex("name")
		exportIdx := r.re.SubexpIndex("export")
		asyncIdx := r.re.SubexpIndex("async")

		for _, loc := range r.re.FindAllStringSubmatchIndex(content, -1) {
			name := group(content, loc, nameIdx)
			if name == "" {
				continue
			}
			el := models.CodeElement{
				Kind:     r.kind,
				Name:     name,
				File:     filePath,
				Async:    group(content, loc, asyncIdx) != "",
				Exported: exported(r.export, name, group(content, loc, exportIdx)),
			}
			switch r.body {
			case bodyBraces:
				el.Methods = harvestMethods(braceBody(content, loc[1]))
			case bodyIndent:
				el.Methods = harvestPyMethods(indentBody(content, loc[1]))
			}
			elems = append(elems, el)
		}
	}
	return elems
}

func group(s string, loc []int, idx int) string {
	if idx < 0 || 2*idx+1 >= len(loc) || loc[2*idx] < 0 {
		return ""
	}
	return s[loc[2*idx]:loc[2*idx+1]]
}

func exported(style exportStyle, name, exportGroup string) bool {
	switch style {
	case exportKeyword:
		return exportGroup != ""
	case exportCapitalized:
		for _, r := range name {
			return unicode.IsUpper(r)
		}
	case exportNoUnderscore:
		return !strings.HasPrefix(name, "_")
	}
	return false
}

// braceBody returns the text between the first '{' at or after from and
// its matching '}'. An unbalanced body runs to the end of content.
func braceBody(content string, from int) string {
	open := strings.IndexByte(content[from:], '{')
	if open < 0 {
		return ""
	}
	// A ';' before the brace means a forward declaration.
	if semi := strings.IndexByte(content[from:], ';'); semi >= 0 && semi < open {
		return ""
	}
	start := from + open + 1
	depth := 1
	for i := start; i < len(content); i++ {
		switch content[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return content[start:i]
			}
		}
	}
	return content[start:]
}

// indentBody returns the lines following a Python class header that are
// indented or blank.
func indentBody(content string, from int) string {
	nl := strings.IndexByte(content[from:], '\n')
	if nl < 0 {
		return ""
	}
	rest := content[from+nl+1:]
	end := len(rest)
	offset := 0
	for _, line := range strings.SplitAfter(rest, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && !strings.HasPrefix(line, " ") && !strings.HasPrefix(line, "\t") {
			end = offset
			break
		}
		offset += len(line)
	}
	return rest[:end]
}

func harvestMethods(body string) []string {
	var methods []string
	for _, m := range methodSignature.FindAllStringSubmatch(body, -1) {
		name := m[1]
		if notMethods[name] {
			continue
		}
		methods = append(methods, name)
	}
	return methods
}

func harvestPyMethods(body string) []string {
	var methods []string
	for _, m := range pyMethod.FindAllStringSubmatch(body, -1) {
		methods = append(methods, m[1])
	}
	return methods
}
