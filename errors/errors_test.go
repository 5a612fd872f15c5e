package errors

import (
	"testing"

	"github.com/pontaoski/envyc/types"
)

var (
	_ Located   = UnrecognizedCharacter{}
	_ Located   = UnterminatedLiteral{}
	_ Located   = InvalidLiteral{}
	_ Located   = ExpectedKindGotKind{}
	_ Located   = ExpectedOneOfKindGotKind{}
	_ Located   = UnexpectedToken{}
	_ Located   = UnexpectedEOF{}
	_ Located   = UndefinedVariable{}
	_ Located   = IllegalType{}
	_ Located   = TypeMismatch{}
	_ Annotated = UnsupportedOperation{}
	_ Annotated = ConflictingType{}
)

func at(line, column int) types.Span {
	from := types.Position{Filename: "main.envy", Line: line, Column: column}
	to := from
	to.Column++
	return types.Span{From: from, To: to}
}

func TestErrorStrings(t *testing.T) {
	tests := []struct {
		err  Located
		want string
	}{
		{
			UnrecognizedCharacter{Char: '$', Location: at(1, 3)},
			`unrecognized character '$'. main.envy:1:3`,
		},
		{
			ExpectedOneOfKindGotKind{
				Expected: []types.TokenKind{types.Comma, types.RightParenthesis},
				Got:      types.Identifier,
				Location: at(2, 7),
			},
			"got identifier, expected one of ,, ). main.envy:2:7",
		},
		{
			UnsupportedOperation{
				Operation: "+",
				Location:  at(1, 3),
				Operands:  []Operand{{at(1, 1), types.Int}, {at(1, 5), types.Float}},
			},
			"unsupported operation + on Int and Float. main.envy:1:3",
		},
		{
			TypeMismatch{Expected: types.Boolean, Actual: types.Int, Location: at(4, 4)},
			"type mismatch: expected Boolean, got Int. main.envy:4:4",
		},
		{
			ConflictingType{First: types.Float, FirstLocation: at(1, 5), Second: types.Int, SecondLocation: at(1, 16)},
			"conflicting types Float and Int. main.envy:1:5",
		},
	}

	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestNotesNameEveryOperand(t *testing.T) {
	err := ConflictingType{First: types.Int, FirstLocation: at(1, 1), Second: types.Boolean, SecondLocation: at(1, 9)}
	notes := err.Notes()
	if len(notes) != 2 {
		t.Fatalf("notes = %v", notes)
	}
	if notes[1].Location.From.Column != 9 || notes[1].Message != "this has type Boolean" {
		t.Fatalf("second note = %+v", notes[1])
	}
}
