package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/wesm/invc/internal/inventory"
)

func TestNewTestStore(t *testing.T) {
	st := NewTestStore(t)

	stats, err := st.GetStats(context.Background())
	if err != nil {
		t.Fatalf("get stats: %v", err)
	}
	if stats.ItemCount != 0 {
		t.Errorf("expected 0 items, got %d", stats.ItemCount)
	}
}

func TestSeedTree(t *testing.T) {
	st := NewTestStore(t)
	ids := SeedTree(t, st, inventory.Root,
		Node{Name: "A", Children: []Node{{Name: "B", Children: []Node{{Name: "C"}}}}},
		Node{Name: "D"},
	)

	if len(ids) != 4 {
		t.Fatalf("seeded %d ids, want 4", len(ids))
	}
	parent, err := st.Parent(context.Background(), ids["C"])
	MustNoErr(t, err, "Parent(C)")
	if parent != ids["B"] {
		t.Errorf("Parent(C) = %d, want %d", parent, ids["B"])
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := WriteFile(t, dir, "sub/config.toml", "x = 1\n")
	MustExist(t, path)

	got, err := os.ReadFile(path)
	MustNoErr(t, err, "ReadFile")
	if string(got) != "x = 1\n" {
		t.Errorf("content = %q", got)
	}
}
