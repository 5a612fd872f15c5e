package diagnostics

import (
	"bytes"
	goerrors "errors"
	"strings"
	"testing"

	"github.com/ztrue/tracerr"

	"github.com/pontaoski/envyc/errors"
	"github.com/pontaoski/envyc/types"
)

func span(line, from, to int) types.Span {
	return types.Span{
		From: types.Position{Filename: "main.envy", Line: line, Column: from},
		To:   types.Position{Filename: "main.envy", Line: line, Column: to},
	}
}

func newReporter(src string) (*Reporter, *bytes.Buffer) {
	var out bytes.Buffer
	r := NewReporter(&out)
	r.SetColor(false)
	r.AddSource("main.envy", []byte(src))
	return r, &out
}

func TestReportQuotesLine(t *testing.T) {
	r, out := newReporter("define f() =\n  1 + foo\n")
	r.Report(tracerr.Wrap(errors.UndefinedVariable{Name: "foo", Location: span(2, 7, 10)}))

	want := "main.envy:2:7: error: undefined variable foo\n" +
		"      1 + foo\n" +
		"          ^^^\n"
	if out.String() != want {
		t.Fatalf("got\n%q\nwant\n%q", out.String(), want)
	}
}

func TestReportKeepsTabs(t *testing.T) {
	r, out := newReporter("\tx")
	r.Report(errors.UndefinedVariable{Name: "x", Location: span(1, 2, 3)})

	lines := strings.Split(out.String(), "\n")
	if lines[2] != "    \t^" {
		t.Fatalf("caret line = %q", lines[2])
	}
}

func TestReportNotes(t *testing.T) {
	r, out := newReporter("if true then 1 else 2.0")
	r.Report(errors.ConflictingType{
		First:          types.Int,
		FirstLocation:  span(1, 14, 15),
		Second:         types.Float,
		SecondLocation: span(1, 21, 24),
	})

	got := out.String()
	for _, want := range []string{
		"main.envy:1:14: error: conflicting types Int and Float\n",
		"main.envy:1:14: note: this has type Int\n",
		"main.envy:1:21: note: this has type Float\n",
		"                        ^^^\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestReportUnknownSource(t *testing.T) {
	var out bytes.Buffer
	r := NewReporter(&out)
	r.SetColor(false)
	r.Report(errors.UndefinedVariable{Name: "x", Location: span(1, 1, 2)})

	if out.String() != "main.envy:1:1: error: undefined variable x\n" {
		t.Fatalf("got %q", out.String())
	}
}

func TestReportUnlocated(t *testing.T) {
	r, out := newReporter("")
	n := r.ReportAll([]error{goerrors.New("boom"), goerrors.New("bang")})

	if n != 2 {
		t.Fatalf("ReportAll = %d, want 2", n)
	}
	if out.String() != "error: boom\nerror: bang\n" {
		t.Fatalf("got %q", out.String())
	}
}
