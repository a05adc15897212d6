// Package output writes command results to the console or a file.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	toon "github.com/toon-format/toon-go"
)

// Format represents an output format.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatTOON     Format = "toon"
)

// ParseFormat converts a string to Format, defaulting to text.
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON
	case "markdown", "md":
		return FormatMarkdown
	case "toon":
		return FormatTOON
	default:
		return FormatText
	}
}

// Renderable defines data that can render itself in multiple formats.
type Renderable interface {
	RenderText(w io.Writer, colored bool) error
	RenderMarkdown(w io.Writer) error
	// RenderData returns the underlying data for JSON and TOON serialization.
	RenderData() any
}

// Formatter handles output formatting.
type Formatter struct {
	format  Format
	writer  io.Writer
	file    *os.File
	colored bool
}

// NewFormatter creates a formatter writing to stdout, or to the named file
// when output is set. Color is disabled for files.
func NewFormatter(format Format, output string, colored bool) (*Formatter, error) {
	if output == "" {
		return NewWriterFormatter(format, os.Stdout, colored), nil
	}
	f, err := os.Create(output)
	if err != nil {
		return nil, err
	}
	return &Formatter{format: format, writer: f, file: f}, nil
}

// NewWriterFormatter creates a formatter writing to w.
func NewWriterFormatter(format Format, w io.Writer, colored bool) *Formatter {
	return &Formatter{format: format, writer: w, colored: colored}
}

// Close closes the formatter's writer if it's a file.
func (f *Formatter) Close() error {
	if f.file != nil {
		return f.file.Close()
	}
	return nil
}

// Writer returns the underlying writer.
func (f *Formatter) Writer() io.Writer {
	return f.writer
}

// Format returns the configured format.
func (f *Formatter) Format() Format {
	return f.format
}

// Colored returns whether colored output is enabled.
func (f *Formatter) Colored() bool {
	return f.colored
}

// Output writes data in the configured format.
func (f *Formatter) Output(data any) error {
	if r, ok := data.(Renderable); ok {
		switch f.format {
		case FormatJSON, FormatTOON:
			return f.encode(r.RenderData())
		case FormatMarkdown:
			return r.RenderMarkdown(f.writer)
		default:
			return r.RenderText(f.writer, f.colored)
		}
	}

	if f.format == FormatMarkdown {
		fmt.Fprintln(f.writer, "```json")
		if err := f.encodeJSON(data); err != nil {
			return err
		}
		fmt.Fprintln(f.writer, "```")
		return nil
	}
	return f.encode(data)
}

func (f *Formatter) encode(data any) error {
	if f.format == FormatTOON {
		out, err := Marshal(data, FormatTOON)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(f.writer, string(out))
		return err
	}
	return f.encodeJSON(data)
}

func (f *Formatter) encodeJSON(data any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// Marshal serializes data as TOON, or as indented JSON for any other format.
func Marshal(data any, format Format) ([]byte, error) {
	if format == FormatTOON {
		return toon.Marshal(data, toon.WithIndent(2))
	}
	return json.MarshalIndent(data, "", "  ")
}

// Message helpers for colored output

func (f *Formatter) Success(format string, args ...any) {
	if f.colored {
		color.New(color.FgGreen).Fprintf(f.writer, format+"\n", args...)
	} else {
		fmt.Fprintf(f.writer, format+"\n", args...)
	}
}

func (f *Formatter) Warning(format string, args ...any) {
	if f.colored {
		color.New(color.FgYellow).Fprintf(f.writer, format+"\n", args...)
	} else {
		fmt.Fprintf(f.writer, "WARNING: "+format+"\n", args...)
	}
}

func (f *Formatter) Error(format string, args ...any) {
	if f.colored {
		color.New(color.FgRed).Fprintf(f.writer, format+"\n", args...)
	} else {
		fmt.Fprintf(f.writer, "ERROR: "+format+"\n", args...)
	}
}

// StatusColor colors a health indicator status.
func StatusColor(status string) string {
	s := strings.ToLower(status)
	switch {
	case strings.HasPrefix(s, "missing"), strings.HasPrefix(s, "not "), s == "high":
		return color.RedString(status)
	case strings.HasPrefix(s, "minimal"), strings.HasPrefix(s, "flat"), s == "medium":
		return color.YellowString(status)
	case strings.HasPrefix(s, "good"), strings.HasPrefix(s, "present"), strings.HasPrefix(s, "conventional"),
		strings.HasPrefix(s, "identified"), s == "low":
		return color.GreenString(status)
	default:
		return status
	}
}
