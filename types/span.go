package types

import (
	"fmt"
)

// Position is a point in a source file. Line and Column are 1-based, Offset
// is the 0-based byte offset.
type Position struct {
	Line     int
	Column   int
	Offset   int
	Filename string
}

// Span covers the bytes [From.Offset, To.Offset) of one file.
type Span struct {
	From Position
	To   Position
}

func (p Position) String() string {
	if p.Filename == "" {
		p.Filename = "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

func (s Span) String() string {
	return s.From.String()
}

// Len is the number of bytes the span covers.
func (s Span) Len() int {
	return s.To.Offset - s.From.Offset
}

func (s Span) Filename() string {
	return s.From.Filename
}
