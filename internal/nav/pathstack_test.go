package nav

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/wesm/invc/internal/inventory"
	"github.com/wesm/invc/internal/inventory/inventorytest"
)

func TestPathStack_PushPop(t *testing.T) {
	var p PathStack
	if p.Parent() != inventory.Root || p.String() != "/ (root)" {
		t.Fatalf("empty stack: parent %d, %q", p.Parent(), p.String())
	}

	p.Push(inventory.Entry{ID: 3, Name: "Box"}, 4)
	p.Push(inventory.Entry{ID: 9, Name: "Tray"}, 1)
	if p.Len() != 2 || p.Parent() != 9 {
		t.Fatalf("Len = %d Parent = %d, want 2 and 9", p.Len(), p.Parent())
	}
	if got := p.String(); got != "/Box/Tray/" {
		t.Errorf("String = %q", got)
	}

	off, parent, ok := p.Pop()
	if !ok || off != 1 || parent != 3 {
		t.Errorf("Pop = %d, %d, %v; want 1, 3, true", off, parent, ok)
	}
	off, parent, ok = p.Pop()
	if !ok || off != 4 || parent != inventory.Root {
		t.Errorf("Pop = %d, %d, %v; want 4, root, true", off, parent, ok)
	}
	if _, _, ok := p.Pop(); ok {
		t.Error("Pop on empty stack should report false")
	}
}

func TestReconstruct(t *testing.T) {
	st := inventorytest.New()
	a := st.Add(inventory.Root, "A", 1)
	b := st.Add(a, "B", 1)
	c := st.Add(b, "C", 1)

	path, err := Reconstruct(context.Background(), st, c)
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	want := []Frame{{ID: a}, {ID: b}, {ID: c}}
	if diff := cmp.Diff(want, path.Frames()); diff != "" {
		t.Errorf("frames mismatch (-want +got):\n%s", diff)
	}
	if path.Parent() != c {
		t.Errorf("Parent = %d, want %d", path.Parent(), c)
	}
	if got := path.String(); got != "/#1/#2/#3/" {
		t.Errorf("String = %q, want ids for unnamed frames", got)
	}
	if st.Calls["Parent"] != 3 {
		t.Errorf("Parent lookups = %d, want 3", st.Calls["Parent"])
	}
}

func TestReconstruct_Root(t *testing.T) {
	st := inventorytest.New()
	path, err := Reconstruct(context.Background(), st, inventory.Root)
	if err != nil {
		t.Fatal(err)
	}
	if path.Len() != 0 || st.Calls["Parent"] != 0 {
		t.Errorf("root path len %d with %d lookups", path.Len(), st.Calls["Parent"])
	}
}

func TestReconstruct_MissingAndLooping(t *testing.T) {
	st := inventorytest.New()
	if _, err := Reconstruct(context.Background(), st, 42); !errors.Is(err, inventory.ErrNotFound) {
		t.Errorf("missing id error = %v, want ErrNotFound", err)
	}

	a := st.Add(inventory.Root, "A", 1)
	b := st.Add(a, "B", 1)
	if err := st.SetParent(context.Background(), a, b); err != nil {
		t.Fatal(err)
	}
	if _, err := Reconstruct(context.Background(), st, b); err == nil {
		t.Error("looping parent chain should fail")
	}
}
