package main

import (
	"reflect"
	"testing"

	"github.com/ztrue/tracerr"

	"github.com/pontaoski/envyc/errors"
)

func TestSessionBindingsPersist(t *testing.T) {
	s := newSession()

	out, errs := s.eval("let width = 2.5")
	if len(errs) != 0 || !reflect.DeepEqual(out, []string{"Float"}) {
		t.Fatalf("let: out=%v errs=%v", out, errs)
	}

	out, errs = s.eval("width * 2.0 width")
	if len(errs) != 0 || !reflect.DeepEqual(out, []string{"Float", "Float"}) {
		t.Fatalf("use: out=%v errs=%v", out, errs)
	}
}

func TestSessionDefinitions(t *testing.T) {
	s := newSession()

	out, errs := s.eval("define double(n: Int) = n * 2")
	if len(errs) != 0 || !reflect.DeepEqual(out, []string{"double(n: Int) Int"}) {
		t.Fatalf("out=%v errs=%v", out, errs)
	}

	// parameters do not leak into the session
	_, errs = s.eval("n")
	if len(errs) != 1 {
		t.Fatalf("expected one error, got %v", errs)
	}
	if _, ok := tracerr.Unwrap(errs[0]).(errors.UndefinedVariable); !ok {
		t.Fatalf("got %T, want undefined variable", errs[0])
	}
}

func TestSessionErrorNames(t *testing.T) {
	s := newSession()
	s.eval("1")

	_, errs := s.eval("1 + true")
	if len(errs) != 1 {
		t.Fatalf("expected one error, got %v", errs)
	}
	located, ok := tracerr.Unwrap(errs[0]).(errors.Located)
	if !ok {
		t.Fatalf("got %T", errs[0])
	}
	if got := located.Locate().Filename(); got != "<repl:2>" {
		t.Errorf("filename = %q", got)
	}
}

func TestSessionIncomplete(t *testing.T) {
	s := newSession()
	tests := []struct {
		src  string
		want bool
	}{
		{"1 + 2", false},
		{"1 +", true},
		{"{ let x = 1", true},
		{"define f(a: Int) =", true},
		{"if true then 1 else", true},
		{"1 $", false},
		{") 1", false},
	}
	for _, tt := range tests {
		if got := s.incomplete(tt.src); got != tt.want {
			t.Errorf("incomplete(%q) = %v, want %v", tt.src, got, tt.want)
		}
	}
	if s.inputs != 0 {
		t.Errorf("probing counted as input")
	}
}
