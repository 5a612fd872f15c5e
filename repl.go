package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/ztrue/tracerr"

	"github.com/pontaoski/envyc/diagnostics"
	"github.com/pontaoski/envyc/driver"
	envyerrors "github.com/pontaoski/envyc/errors"
	"github.com/pontaoski/envyc/interner"
	"github.com/pontaoski/envyc/lexer"
	"github.com/pontaoski/envyc/parser"
	"github.com/pontaoski/envyc/typecheck"
	"github.com/pontaoski/envyc/types"
)

const (
	historyFile = ".envyc_history"
	promptMain  = "envy> "
	promptCont  = "  ... "
)

// session keeps names and bindings alive between inputs.
type session struct {
	names   *interner.Interner[string]
	checker *typecheck.Checker
	inputs  int
}

func newSession() *session {
	names := interner.New[string]()
	return &session{names: names, checker: typecheck.New(names)}
}

// name returns the file name diagnostics use for the next input.
func (s *session) name() string {
	return fmt.Sprintf("<repl:%d>", s.inputs+1)
}

func (s *session) parser(src []byte, name string, names *interner.Interner[string]) (*parser.Parser, []error) {
	tokens, errs := lexer.NewLexer(src, name, names).Tokens()
	return parser.NewParser(driver.FilterWhitespace(tokens), names), errs
}

// eval checks one input. Definitions print their signature, expressions
// their type. let bindings at the top level stay visible to later inputs.
func (s *session) eval(src string) ([]string, []error) {
	name := s.name()
	s.inputs++

	p, errs := s.parser([]byte(src), name, s.names)
	if len(errs) > 0 {
		return nil, errs
	}

	var out []string
	if p.PeekIs(types.Define) {
		program, errs := p.ParseProgram()
		if len(errs) > 0 {
			return nil, errs
		}
		typed, errs := s.checker.CheckProgram(program)
		for _, fn := range typed.Functions {
			out = append(out, fn.Prototype.Signature(s.names))
		}
		return out, errs
	}

	exprs, errs := p.ParseExpressions()
	if len(errs) > 0 {
		return nil, errs
	}
	for _, expr := range exprs {
		typed, err := s.checker.CheckExpression(expr)
		if err != nil {
			return out, []error{err}
		}
		out = append(out, typed.Type.String())
	}
	return out, nil
}

// incomplete reports whether src only failed because input ran out, in which
// case the prompt asks for another line.
func (s *session) incomplete(src string) bool {
	p, errs := s.parser([]byte(src), s.name(), interner.New[string]())
	if len(errs) > 0 {
		return false
	}

	if p.PeekIs(types.Define) {
		_, errs = p.ParseProgram()
	} else {
		_, errs = p.ParseExpressions()
	}
	for _, err := range errs {
		if _, ok := tracerr.Unwrap(err).(envyerrors.UnexpectedEOF); ok {
			return true
		}
	}
	return false
}

func (s *session) read(ln *liner.State) (string, bool) {
	var b strings.Builder

	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		if !s.incomplete(b.String()) {
			return b.String(), true
		}
	}
}

func runRepl(reporter *diagnostics.Reporter) error {
	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		f, err := os.Create(histPath)
		if err != nil {
			plog.Warningf("could not save history: %v", err)
			return
		}
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}()

	s := newSession()
	for {
		src, ok := s.read(ln)
		if !ok {
			fmt.Println()
			return nil
		}

		switch strings.TrimSpace(src) {
		case "":
			continue
		case ":quit":
			return nil
		}

		reporter.AddSource(s.name(), []byte(src))
		out, errs := s.eval(src)
		for _, line := range out {
			fmt.Println(line)
		}
		reporter.ReportAll(errs)
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
	}
}
