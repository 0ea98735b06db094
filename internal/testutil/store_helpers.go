package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/wesm/invc/internal/inventory"
	"github.com/wesm/invc/internal/store"
)

// NewTestStore creates a temporary database for testing.
// The database is automatically cleaned up when the test completes.
func NewTestStore(t *testing.T) *store.Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := store.Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})

	if err := st.InitSchema(); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return st
}

// Node describes a subtree to seed with SeedTree.
type Node struct {
	Name     string
	Children []Node
}

// SeedTree inserts nodes under parent depth-first and returns the ids
// keyed by name.
func SeedTree(t *testing.T, st inventory.Store, parent int64, nodes ...Node) map[string]int64 {
	t.Helper()
	ids := make(map[string]int64)
	var walk func(parent int64, nodes []Node)
	walk = func(parent int64, nodes []Node) {
		for _, n := range nodes {
			id, err := st.Insert(context.Background(), parent, n.Name)
			MustNoErr(t, err, "seed "+n.Name)
			ids[n.Name] = id
			walk(id, n.Children)
		}
	}
	walk(parent, nodes)
	return ids
}
