package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Document is a markdown body rendered as-is for markdown output, with
// highlighted headings for the console, and as Data for JSON and TOON.
type Document struct {
	Body string
	Data any
}

func (d *Document) RenderData() any {
	if d.Data != nil {
		return d.Data
	}
	return map[string]string{"body": d.Body}
}

func (d *Document) RenderMarkdown(w io.Writer) error {
	_, err := io.WriteString(w, ensureNewline(d.Body))
	return err
}

func (d *Document) RenderText(w io.Writer, colored bool) error {
	if !colored {
		return d.RenderMarkdown(w)
	}
	heading := color.New(color.Bold, color.FgCyan)
	sub := color.New(color.Bold)
	sc := bufio.NewScanner(strings.NewReader(d.Body))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "# "):
			heading.Fprintln(w, line)
		case strings.HasPrefix(line, "#"):
			sub.Fprintln(w, line)
		default:
			if name, status, ok := indicator(line); ok {
				fmt.Fprintf(w, "- %s: %s\n", name, StatusColor(status))
				continue
			}
			fmt.Fprintln(w, line)
		}
	}
	return sc.Err()
}

// indicator splits a "- Name: Status" health indicator line.
func indicator(line string) (string, string, bool) {
	rest, ok := strings.CutPrefix(line, "- ")
	if !ok {
		return "", "", false
	}
	name, status, ok := strings.Cut(rest, ": ")
	if !ok {
		return "", "", false
	}
	switch name {
	case "Documentation", "Testing", "Structure", "Complexity", "Entry Points":
		return name, status, true
	}
	return "", "", false
}

func ensureNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
