package nav

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/wesm/invc/internal/inventory"
	"github.com/wesm/invc/internal/inventory/inventorytest"
)

func TestSearch_GotoSelected(t *testing.T) {
	st := inventorytest.New()
	box := st.Add(inventory.Root, "Box", 1)
	st.Add(inventory.Root, "Bin", 1)
	st.Add(box, "Widget", 1)
	n := openNav(t, st, 10)
	ctx := context.Background()
	st.ResetCalls()

	s, err := NewSearch(ctx, st, inventory.FieldName, "Box", 10)
	mustDo(t, err)
	if st.Calls["CountMatching"] != 1 || st.Calls["PageMatching"] != 1 {
		t.Errorf("search issued %v, want one count and one page query", st.Calls)
	}
	e, ok := s.Selected()
	if !ok || e.ID != box || s.Count() != 1 {
		t.Fatalf("selected %+v (count %d), want Box", e, s.Count())
	}

	mustDo(t, s.GotoSelected(ctx, n))
	p := n.Active()
	if p.Parent() != box || p.Offset() != 0 || p.Count() != 1 {
		t.Errorf("panel parent %d offset %d count %d", p.Parent(), p.Offset(), p.Count())
	}
	want := []Frame{{ID: box}}
	if diff := cmp.Diff(want, p.Path().Frames()); diff != "" {
		t.Errorf("path mismatch (-want +got):\n%s", diff)
	}
}

func TestSearch_GotoParent(t *testing.T) {
	st := inventorytest.New()
	box := st.Add(inventory.Root, "Box", 1)
	tray := st.Add(box, "Tray", 1)
	st.Add(tray, "red widget", 1)
	st.Add(tray, "blue widget", 1)
	n := openNav(t, st, 10)
	n.SwitchFocus()
	ctx := context.Background()

	s, err := NewSearch(ctx, st, inventory.FieldName, "%widget", 10)
	mustDo(t, err)
	mustDo(t, s.ScrollLine(ctx, 1))
	if e, _ := s.Selected(); e.Name != "blue widget" || e.Parent != tray {
		t.Fatalf("selected %+v", e)
	}

	mustDo(t, s.GotoParent(ctx, n))
	p := n.Panel(1)
	if p.Parent() != tray || p.Count() != 2 || p.Path().Len() != 2 {
		t.Errorf("panel 1 parent %d count %d depth %d", p.Parent(), p.Count(), p.Path().Len())
	}
	if n.Panel(0).Parent() != inventory.Root {
		t.Error("unfocused panel should not move")
	}
	if got := p.Path().String(); got != "/#1/#2/" {
		t.Errorf("breadcrumb = %q", got)
	}
}

func TestSearch_ByAbout(t *testing.T) {
	st := inventorytest.New()
	st.AddWithAbout(inventory.Root, "Box", "metal shelf")
	st.Add(inventory.Root, "metal", 1)

	s, err := NewSearch(context.Background(), st, inventory.FieldAbout, "%metal%", 10)
	mustDo(t, err)
	if s.Count() != 1 {
		t.Errorf("about matches = %d, want 1", s.Count())
	}
}

func TestSearch_NoMatches(t *testing.T) {
	st := inventorytest.New()
	st.Add(inventory.Root, "Box", 1)
	n := openNav(t, st, 10)
	ctx := context.Background()

	s, err := NewSearch(ctx, st, inventory.FieldName, "nothing", 10)
	mustDo(t, err)
	if s.Count() != 0 || s.Offset() != 0 {
		t.Errorf("count %d offset %d", s.Count(), s.Offset())
	}
	mustDo(t, s.ScrollPage(ctx, 1))
	st.ResetCalls()
	mustDo(t, s.GotoSelected(ctx, n))
	mustDo(t, s.GotoParent(ctx, n))
	if st.Queries() != 0 || n.Active().Parent() != inventory.Root {
		t.Error("goto without a selection should be a no-op")
	}
}

func TestSearch_Paging(t *testing.T) {
	st := inventorytest.New()
	seedFlat(st, inventory.Root, 25)
	ctx := context.Background()

	s, err := NewSearch(ctx, st, inventory.FieldName, "item%", 10)
	mustDo(t, err)
	mustDo(t, s.ScrollPage(ctx, 2))
	if s.Offset() != 20 || s.PageStart() != 20 {
		t.Errorf("offset %d pageStart %d", s.Offset(), s.PageStart())
	}
	mustDo(t, s.ScrollPage(ctx, 1))
	if s.Offset() != 24 {
		t.Errorf("offset = %d, want clamp to 24", s.Offset())
	}
	st.ResetCalls()
	mustDo(t, s.ScrollLine(ctx, -1))
	if st.Queries() != 0 {
		t.Errorf("scroll inside window issued %d queries", st.Queries())
	}
}

func TestSearch_NoStore(t *testing.T) {
	if _, err := NewSearch(context.Background(), nil, inventory.FieldName, "x", 10); !errors.Is(err, inventory.ErrNotLoaded) {
		t.Errorf("error = %v, want ErrNotLoaded", err)
	}
}
