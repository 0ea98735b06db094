// Package inventory defines the hierarchical item model and the store
// contract that the navigator, search and editor code depend on.
package inventory

import "context"

// Root is the parent id of top-level entries. Stores map it to NULL.
const Root int64 = 0

// Entry is one inventory record. An absent description is the empty string.
type Entry struct {
	ID     int64
	Parent int64
	Name   string
	About  string
	Count  int
}

// IsZero reports whether e is an empty page slot.
func (e Entry) IsZero() bool {
	return e.ID == 0
}

// Field selects the column a search pattern is matched against.
type Field int

const (
	FieldName Field = iota
	FieldAbout
)

func (f Field) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldAbout:
		return "about"
	default:
		return "unknown"
	}
}

// ParseField parses "name" or "about" (also "description").
func ParseField(s string) (Field, bool) {
	switch s {
	case "name", "":
		return FieldName, true
	case "about", "description":
		return FieldAbout, true
	}
	return FieldName, false
}

// Store is the backing store consumed by the navigation engine.
// All calls are synchronous; parent ids of Root address top-level entries.
type Store interface {
	CountChildren(ctx context.Context, parent int64) (int, error)
	PageChildren(ctx context.Context, parent int64, limit, offset int) ([]Entry, error)

	Description(ctx context.Context, id int64) (string, error)
	SetDescription(ctx context.Context, id int64, text string) error

	Parent(ctx context.Context, id int64) (int64, error)
	SetParent(ctx context.Context, id, parent int64) error

	Rename(ctx context.Context, id int64, name string) error
	SetCount(ctx context.Context, id int64, n int) error
	Insert(ctx context.Context, parent int64, name string) (int64, error)
	Delete(ctx context.Context, id int64) error

	CountMatching(ctx context.Context, field Field, pattern string) (int, error)
	PageMatching(ctx context.Context, field Field, pattern string, limit, offset int) ([]Entry, error)
}
