package artifact

import (
	"bytes"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/pontaoski/envyc/driver"
)

const program = `
define area(w: Float, h: Float) = w * h
define greet() = "hello"
define pick(c: Boolean, n: Int) = {
	let m: Int = -n
	if not c then m else n + 1
}
define nothing(c: Boolean) = if c then 'x'
`

func TestRoundTrip(t *testing.T) {
	r := driver.Compile("main.envy", []byte(program))
	if !r.OK() {
		t.Fatalf("compile: %v", r.Errors())
	}

	var first bytes.Buffer
	if err := Write(&first, "main.envy", *r.Typed, r.Names); err != nil {
		t.Fatal(err)
	}

	source, typed, names, err := Read(bytes.NewReader(first.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if source != "main.envy" {
		t.Errorf("source = %q", source)
	}
	if len(typed.Functions) != len(r.Typed.Functions) {
		t.Fatalf("read %d functions, wrote %d", len(typed.Functions), len(r.Typed.Functions))
	}
	for i, fn := range typed.Functions {
		want := r.Typed.Functions[i].Prototype.Signature(r.Names)
		if got := fn.Prototype.Signature(names); got != want {
			t.Errorf("function %d = %q, want %q", i, got, want)
		}
	}

	var second bytes.Buffer
	if err := Write(&second, source, typed, names); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Error("re-encoding the decoded program changed the payload")
	}
}

func TestSchemaMismatch(t *testing.T) {
	var buf bytes.Buffer
	if err := msgpack.NewEncoder(&buf).Encode(&Payload{Schema: SchemaVersion + 1}); err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := Read(&buf); err == nil {
		t.Fatal("expected a schema error")
	}
}

func TestMalformedNode(t *testing.T) {
	var buf bytes.Buffer
	payload := Payload{
		Schema: SchemaVersion,
		Functions: []Function{{
			Name: "broken",
			Body: Node{Kind: BinaryNode, Children: []Node{{Kind: IntNode}}},
		}},
	}
	if err := msgpack.NewEncoder(&buf).Encode(&payload); err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := Read(&buf); err == nil {
		t.Fatal("expected an error for a binary node with one operand")
	}
}
