// Package errors holds every diagnostic the front end can produce. Each kind
// is a plain struct carrying the spans it refers to.
package errors

import (
	"fmt"
	"strings"

	"github.com/pontaoski/envyc/types"
)

// Located is implemented by every error in this package.
type Located interface {
	error
	Message() string
	Locate() types.Span
}

// Note points at a secondary span of a diagnostic.
type Note struct {
	Location types.Span
	Message  string
}

// Annotated errors refer to more than one span.
type Annotated interface {
	Located
	Notes() []Note
}

// Lexical errors.

type UnrecognizedCharacter struct {
	Char     rune
	Location types.Span
}

func (e UnrecognizedCharacter) Message() string {
	return fmt.Sprintf("unrecognized character %q", e.Char)
}

func (e UnrecognizedCharacter) Error() string {
	return e.Message() + ". " + e.Location.String()
}

func (e UnrecognizedCharacter) Locate() types.Span { return e.Location }

type UnterminatedLiteral struct {
	Kind     types.TokenKind
	Location types.Span
}

func (e UnterminatedLiteral) Message() string {
	return fmt.Sprintf("unterminated %s", e.Kind)
}

func (e UnterminatedLiteral) Error() string {
	return e.Message() + ". " + e.Location.String()
}

func (e UnterminatedLiteral) Locate() types.Span { return e.Location }

type InvalidLiteral struct {
	Kind     types.TokenKind
	Text     string
	Location types.Span
}

func (e InvalidLiteral) Message() string {
	return fmt.Sprintf("invalid %s %s", e.Kind, e.Text)
}

func (e InvalidLiteral) Error() string {
	return e.Message() + ". " + e.Location.String()
}

func (e InvalidLiteral) Locate() types.Span { return e.Location }

// Structural errors.

type ExpectedKindGotKind struct {
	Expected types.TokenKind
	Got      types.TokenKind
	Location types.Span
}

func (e ExpectedKindGotKind) Message() string {
	return fmt.Sprintf("got %s, expected %s", e.Got, e.Expected)
}

func (e ExpectedKindGotKind) Error() string {
	return e.Message() + ". " + e.Location.String()
}

func (e ExpectedKindGotKind) Locate() types.Span { return e.Location }

type ExpectedOneOfKindGotKind struct {
	Expected []types.TokenKind
	Got      types.TokenKind
	Location types.Span
}

func (e ExpectedOneOfKindGotKind) Message() string {
	names := make([]string, 0, len(e.Expected))
	for _, k := range e.Expected {
		names = append(names, k.String())
	}
	return fmt.Sprintf("got %s, expected one of %s", e.Got, strings.Join(names, ", "))
}

func (e ExpectedOneOfKindGotKind) Error() string {
	return e.Message() + ". " + e.Location.String()
}

func (e ExpectedOneOfKindGotKind) Locate() types.Span { return e.Location }

// UnexpectedToken is reported when no parselet accepts a token in prefix
// position.
type UnexpectedToken struct {
	Got      types.TokenKind
	Location types.Span
}

func (e UnexpectedToken) Message() string {
	return fmt.Sprintf("unexpected %s", e.Got)
}

func (e UnexpectedToken) Error() string {
	return e.Message() + ". " + e.Location.String()
}

func (e UnexpectedToken) Locate() types.Span { return e.Location }

type UnexpectedEOF struct {
	Expected string
	Location types.Span
}

func (e UnexpectedEOF) Message() string {
	return fmt.Sprintf("unexpected end of file, expected %s", e.Expected)
}

func (e UnexpectedEOF) Error() string {
	return e.Message() + ". " + e.Location.String()
}

func (e UnexpectedEOF) Locate() types.Span { return e.Location }

// Semantic errors.

type UndefinedVariable struct {
	Name     string
	Location types.Span
}

func (e UndefinedVariable) Message() string {
	return fmt.Sprintf("undefined variable %s", e.Name)
}

func (e UndefinedVariable) Error() string {
	return e.Message() + ". " + e.Location.String()
}

func (e UndefinedVariable) Locate() types.Span { return e.Location }

// IllegalType is reported for a declaration site given a type values cannot
// have, such as a Void parameter.
type IllegalType struct {
	Type     types.Type
	Location types.Span
}

func (e IllegalType) Message() string {
	return fmt.Sprintf("illegal type %s", e.Type)
}

func (e IllegalType) Error() string {
	return e.Message() + ". " + e.Location.String()
}

func (e IllegalType) Locate() types.Span { return e.Location }

type Operand struct {
	Location types.Span
	Type     types.Type
}

type UnsupportedOperation struct {
	Operation string
	Location  types.Span
	Operands  []Operand
}

func (e UnsupportedOperation) Message() string {
	names := make([]string, 0, len(e.Operands))
	for _, op := range e.Operands {
		names = append(names, op.Type.String())
	}
	return fmt.Sprintf("unsupported operation %s on %s", e.Operation, strings.Join(names, " and "))
}

func (e UnsupportedOperation) Error() string {
	return e.Message() + ". " + e.Location.String()
}

func (e UnsupportedOperation) Locate() types.Span { return e.Location }

func (e UnsupportedOperation) Notes() []Note {
	notes := make([]Note, 0, len(e.Operands))
	for _, op := range e.Operands {
		notes = append(notes, Note{op.Location, "this has type " + op.Type.String()})
	}
	return notes
}

type TypeMismatch struct {
	Expected types.Type
	Actual   types.Type
	Location types.Span
}

func (e TypeMismatch) Message() string {
	return fmt.Sprintf("type mismatch: expected %s, got %s", e.Expected, e.Actual)
}

func (e TypeMismatch) Error() string {
	return e.Message() + ". " + e.Location.String()
}

func (e TypeMismatch) Locate() types.Span { return e.Location }

// ConflictingType is reported when two expressions must agree on a type and
// do not.
type ConflictingType struct {
	First          types.Type
	FirstLocation  types.Span
	Second         types.Type
	SecondLocation types.Span
}

func (e ConflictingType) Message() string {
	return fmt.Sprintf("conflicting types %s and %s", e.First, e.Second)
}

func (e ConflictingType) Error() string {
	return e.Message() + ". " + e.FirstLocation.String()
}

func (e ConflictingType) Locate() types.Span { return e.FirstLocation }

func (e ConflictingType) Notes() []Note {
	return []Note{
		{e.FirstLocation, "this has type " + e.First.String()},
		{e.SecondLocation, "this has type " + e.Second.String()},
	}
}
