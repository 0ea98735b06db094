package nav

import (
	"context"
	"fmt"
	"testing"

	"github.com/wesm/invc/internal/inventory"
	"github.com/wesm/invc/internal/inventory/inventorytest"
	"pgregory.net/rapid"
)

func seedFlat(st *inventorytest.MemStore, parent int64, n int) []int64 {
	ids := make([]int64, n)
	for i := range ids {
		ids[i] = st.Add(parent, fmt.Sprintf("item-%02d", i), 1)
	}
	return ids
}

func TestPageStart_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		w := rapid.IntRange(1, 50).Draw(t, "w")
		count := rapid.IntRange(1, 500).Draw(t, "count")
		offset := rapid.IntRange(0, count-1).Draw(t, "offset")

		start := PageStart(offset, w)
		if start%w != 0 {
			t.Fatalf("PageStart(%d, %d) = %d, not a multiple of %d", offset, w, start, w)
		}
		if start > offset || offset >= start+w {
			t.Fatalf("PageStart(%d, %d) = %d does not cover offset", offset, w, start)
		}
	})
}

func TestPageWindow_ReloadsOnlyAtBoundaries(t *testing.T) {
	st := inventorytest.New()
	seedFlat(st, inventory.Root, 25)
	src := childSource{store: st, parent: inventory.Root}
	w := NewPageWindow(10)
	ctx := context.Background()

	tests := []struct {
		offset  int
		queries int
	}{
		{0, 2},
		{1, 0}, {5, 0}, {8, 0},
		{9, 2},
		{10, 2},
		{11, 0}, {18, 0},
		{19, 2},
		{17, 0},
	}
	for _, tt := range tests {
		st.ResetCalls()
		if _, err := w.Ensure(ctx, src, tt.offset); err != nil {
			t.Fatalf("Ensure(%d): %v", tt.offset, err)
		}
		if got := st.Queries(); got != tt.queries {
			t.Errorf("Ensure(%d) issued %d queries, want %d", tt.offset, got, tt.queries)
		}
		if tt.queries == 2 && (st.Calls["CountChildren"] != 1 || st.Calls["PageChildren"] != 1) {
			t.Errorf("Ensure(%d) reload = %v, want one count and one page query", tt.offset, st.Calls)
		}
	}
}

func TestPageWindow_ReloadsWhenOffsetLeavesWindow(t *testing.T) {
	st := inventorytest.New()
	seedFlat(st, inventory.Root, 40)
	src := childSource{store: st, parent: inventory.Root}
	w := NewPageWindow(10)
	ctx := context.Background()

	if _, err := w.Ensure(ctx, src, 0); err != nil {
		t.Fatal(err)
	}
	st.ResetCalls()
	if _, err := w.Ensure(ctx, src, 25); err != nil {
		t.Fatal(err)
	}
	if st.Queries() != 2 {
		t.Errorf("jump to another window issued %d queries, want 2", st.Queries())
	}
	if w.PageStart() != 20 {
		t.Errorf("PageStart = %d, want 20", w.PageStart())
	}
	e, ok := w.Row(25)
	if !ok || e.Name != "item-25" {
		t.Errorf("Row(25) = %+v, %v", e, ok)
	}
}

func TestPageWindow_SentinelFill(t *testing.T) {
	st := inventorytest.New()
	seedFlat(st, inventory.Root, 3)
	w := NewPageWindow(5)

	if _, err := w.Ensure(context.Background(), childSource{store: st}, 0); err != nil {
		t.Fatal(err)
	}
	rows := w.Rows()
	if len(rows) != 5 {
		t.Fatalf("len(Rows) = %d, want 5", len(rows))
	}
	for i, e := range rows {
		if empty := e.IsZero(); empty != (i >= 3) {
			t.Errorf("row %d empty = %v", i, empty)
		}
	}
	if _, ok := w.Row(3); ok {
		t.Error("Row(3) should be an empty slot")
	}
}

func TestPageWindow_ClampsOffset(t *testing.T) {
	st := inventorytest.New()
	w := NewPageWindow(5)
	ctx := context.Background()

	off, err := w.Ensure(ctx, childSource{store: st}, 7)
	if err != nil {
		t.Fatal(err)
	}
	if off != 0 {
		t.Errorf("empty result offset = %d, want 0", off)
	}

	seedFlat(st, inventory.Root, 12)
	w.Invalidate()
	off, err = w.Ensure(ctx, childSource{store: st}, 30)
	if err != nil {
		t.Fatal(err)
	}
	if off != 11 || w.PageStart() != 10 {
		t.Errorf("offset = %d pageStart = %d, want 11 and 10", off, w.PageStart())
	}
}

func TestPageWindow_InvalidateForcesReload(t *testing.T) {
	st := inventorytest.New()
	seedFlat(st, inventory.Root, 20)
	src := childSource{store: st}
	w := NewPageWindow(10)
	ctx := context.Background()

	if _, err := w.Ensure(ctx, src, 4); err != nil {
		t.Fatal(err)
	}
	st.ResetCalls()
	w.Invalidate()
	if _, err := w.Ensure(ctx, src, 4); err != nil {
		t.Fatal(err)
	}
	if st.Queries() != 2 {
		t.Errorf("forced reload issued %d queries, want 2", st.Queries())
	}

	st.ResetCalls()
	if _, err := w.Ensure(ctx, src, 5); err != nil {
		t.Fatal(err)
	}
	if st.Queries() != 0 {
		t.Errorf("reload flag should clear after reloading, got %d queries", st.Queries())
	}
}

func TestPageWindow_ErrorKeepsCache(t *testing.T) {
	st := inventorytest.New()
	seedFlat(st, inventory.Root, 4)
	src := childSource{store: st}
	w := NewPageWindow(10)
	ctx := context.Background()

	if _, err := w.Ensure(ctx, src, 0); err != nil {
		t.Fatal(err)
	}
	st.Fail["PageChildren"] = fmt.Errorf("disk I/O error")
	w.Invalidate()
	if _, err := w.Ensure(ctx, src, 0); err == nil {
		t.Fatal("expected error")
	}
	if w.Count() != 4 {
		t.Errorf("Count = %d, want cached 4", w.Count())
	}
}

func TestScrollHelpers(t *testing.T) {
	tests := []struct {
		name               string
		offset, delta, cnt int
		line, page         int
	}{
		{"down within", 3, 1, 20, 4, 13},
		{"up at top", 0, -1, 20, 0, 0},
		{"down at end", 19, 1, 20, 19, 19},
		{"page past end clamps", 15, 1, 20, 16, 19},
		{"page up clamps", 4, -1, 20, 3, 0},
		{"empty", 0, 1, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scrollLine(tt.offset, tt.delta, tt.cnt); got != tt.line {
				t.Errorf("scrollLine = %d, want %d", got, tt.line)
			}
			if got := scrollPage(tt.offset, tt.delta, 10, tt.cnt); got != tt.page {
				t.Errorf("scrollPage = %d, want %d", got, tt.page)
			}
		})
	}
}
