// Package diagnostics prints front-end errors as
// `file:line:col: error: message` followed by the offending source line.
package diagnostics

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/ztrue/tracerr"

	"github.com/pontaoski/envyc/errors"
	"github.com/pontaoski/envyc/types"
)

type Reporter struct {
	out     io.Writer
	sources map[string][]byte
	trace   bool

	location *color.Color
	label    *color.Color
	note     *color.Color
	caret    *color.Color
}

func NewReporter(out io.Writer) *Reporter {
	return &Reporter{
		out:      out,
		sources:  make(map[string][]byte),
		location: color.New(color.Bold),
		label:    color.New(color.FgRed, color.Bold),
		note:     color.New(color.FgCyan, color.Bold),
		caret:    color.New(color.FgGreen, color.Bold),
	}
}

// SetColor forces coloured output on or off, overriding color.NoColor.
func (r *Reporter) SetColor(enabled bool) {
	for _, c := range []*color.Color{r.location, r.label, r.note, r.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
}

// SetTrace makes Report print the stack trace of wrapped errors.
func (r *Reporter) SetTrace(trace bool) {
	r.trace = trace
}

// AddSource registers the contents of a file so reports can quote it.
func (r *Reporter) AddSource(name string, src []byte) {
	r.sources[name] = src
}

// ReportAll reports every error and returns how many there were.
func (r *Reporter) ReportAll(errs []error) int {
	for _, err := range errs {
		r.Report(err)
	}
	return len(errs)
}

func (r *Reporter) Report(err error) {
	inner := tracerr.Unwrap(err)

	located, ok := inner.(errors.Located)
	if !ok {
		r.label.Fprint(r.out, "error: ")
		fmt.Fprintln(r.out, inner)
		return
	}

	r.emit(r.label, "error", located.Locate(), located.Message())
	if annotated, ok := inner.(errors.Annotated); ok {
		for _, note := range annotated.Notes() {
			r.emit(r.note, "note", note.Location, note.Message)
		}
	}

	if r.trace {
		if traced, ok := err.(tracerr.Error); ok {
			tracerr.PrintSourceColor(traced, 1)
		}
	}
}

func (r *Reporter) emit(label *color.Color, kind string, span types.Span, message string) {
	r.location.Fprintf(r.out, "%s: ", span.From)
	label.Fprintf(r.out, "%s: ", kind)
	fmt.Fprintln(r.out, message)

	line, ok := r.line(span.From.Filename, span.From.Line)
	if !ok {
		return
	}
	fmt.Fprintf(r.out, "    %s\n", line)
	fmt.Fprintf(r.out, "    %s", padding(line, span.From.Column))
	r.caret.Fprintln(r.out, strings.Repeat("^", underline(line, span)))
}

func (r *Reporter) line(filename string, number int) (string, bool) {
	src, ok := r.sources[filename]
	if !ok || number < 1 {
		return "", false
	}
	lines := bytes.Split(src, []byte("\n"))
	if number > len(lines) {
		return "", false
	}
	return strings.TrimRight(string(lines[number-1]), "\r"), true
}

// padding returns blanks as wide as the text before column, keeping tabs so
// the caret lines up with the quoted line.
func padding(line string, column int) string {
	var b strings.Builder
	col := 1
	for _, r := range line {
		if col >= column {
			break
		}
		if r == '\t' {
			b.WriteRune('\t')
		} else {
			b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
		}
		col++
	}
	return b.String()
}

func underline(line string, span types.Span) int {
	if span.To.Line != span.From.Line {
		return 1
	}
	runes := []rune(line)
	from, to := span.From.Column-1, span.To.Column-1
	if from < 0 || to > len(runes) || to <= from {
		return 1
	}
	if w := runewidth.StringWidth(string(runes[from:to])); w > 0 {
		return w
	}
	return 1
}
