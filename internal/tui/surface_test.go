package tui

import (
	"strings"
	"testing"
)

func TestSurfacePlaceTextClips(t *testing.T) {
	s := newSurface(1, 5)
	end := s.PlaceText(0, 2, "abcdef", styleNormal)

	if end != 5 {
		t.Errorf("end = %d, want 5", end)
	}
	if got := s.String(); got != "  abc" {
		t.Errorf("String() = %q", got)
	}
}

func TestSurfaceOutOfRangeWritesDropped(t *testing.T) {
	s := newSurface(2, 2)
	s.PlaceChar(-1, 0, 'x', styleNormal)
	s.PlaceChar(0, 2, 'x', styleNormal)
	s.PlaceChar(2, 0, 'x', styleNormal)

	if got := s.String(); got != "  \n  " {
		t.Errorf("String() = %q", got)
	}
	if r := s.ReadChar(5, 5); r != ' ' {
		t.Errorf("ReadChar outside = %q", r)
	}
}

func TestSurfaceWideRunes(t *testing.T) {
	s := newSurface(1, 5)
	end := s.PlaceText(0, 0, "日本語", styleNormal)

	if end != 4 {
		t.Errorf("end = %d, want 4", end)
	}
	if got := s.String(); got != "日本 " {
		t.Errorf("String() = %q", got)
	}
}

func TestSurfaceBox(t *testing.T) {
	s := newSurface(3, 10)
	s.Box(0, 0, 3, 10, "Hi", styleBorder)

	want := strings.Join([]string{
		"┌─ Hi ───┐",
		"│        │",
		"└────────┘",
	}, "\n")
	if got := s.String(); got != want {
		t.Errorf("Box:\n%s\nwant:\n%s", got, want)
	}
}

func TestSurfaceFillAndRead(t *testing.T) {
	s := newSurface(3, 3)
	s.Fill(1, 1, 2, 2, '#', styleDim)

	if s.ReadChar(0, 0) != ' ' || s.ReadChar(1, 1) != '#' || s.ReadChar(2, 2) != '#' {
		t.Errorf("grid = %q", s.String())
	}
}

func TestSurfaceRenderKeepsText(t *testing.T) {
	forceColorProfile(t)
	s := newSurface(1, 6)
	s.PlaceText(0, 0, "ab", styleSelected)
	s.PlaceText(0, 2, "cd", styleNormal)
	s.MoveCursor(0, 4)

	out := s.Render()
	if !strings.Contains(out, ansiStart) {
		t.Error("expected styled output")
	}
	if got := stripANSI(out); got != "abcd  " {
		t.Errorf("stripped = %q", got)
	}
}
