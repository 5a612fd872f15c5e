package interner

import "testing"

func TestInsertIsIdempotent(t *testing.T) {
	in := New[string]()

	for _, v := range []string{"x", "y", "", "longer_name", "x"} {
		first := in.Insert(v)
		second := in.Insert(v)
		if first != second {
			t.Fatalf("Insert(%q) returned %d then %d", v, first, second)
		}
		if got := in.Get(first); got != v {
			t.Fatalf("Get(Insert(%q)) = %q", v, got)
		}
	}
}

func TestIdsAreDenseInFirstSeenOrder(t *testing.T) {
	in := New[string]()

	words := []string{"let", "x", "let", "y", "x", "z"}
	var got []ID
	for _, w := range words {
		got = append(got, in.Insert(w))
	}

	want := []ID{0, 1, 0, 2, 1, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ids = %v, want %v", got, want)
		}
	}
	if in.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", in.Len())
	}
}

func TestLookupAndFind(t *testing.T) {
	in := New[int]()
	id := in.Insert(42)

	if v, ok := in.Lookup(id); !ok || v != 42 {
		t.Fatalf("Lookup(%d) = %v, %v", id, v, ok)
	}
	if _, ok := in.Lookup(id + 1); ok {
		t.Fatalf("Lookup of unknown id succeeded")
	}
	if found, ok := in.Find(42); !ok || found != id {
		t.Fatalf("Find(42) = %v, %v", found, ok)
	}
	if _, ok := in.Find(7); ok {
		t.Fatalf("Find(7) succeeded without Insert")
	}
	if in.Len() != 1 {
		t.Fatalf("Find must not insert, Len() = %d", in.Len())
	}
}
