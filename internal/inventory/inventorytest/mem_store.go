// Package inventorytest provides an in-memory inventory.Store for tests.
package inventorytest

import (
	"context"
	"sort"
	"strings"
	"unicode"

	"github.com/wesm/invc/internal/inventory"
)

// MemStore is an in-memory inventory.Store. Calls counts invocations per
// method name and Fail injects an error for a method name.
type MemStore struct {
	items  map[int64]inventory.Entry
	nextID int64

	Calls map[string]int
	Fail  map[string]error
}

var _ inventory.Store = (*MemStore)(nil)

// New returns an empty MemStore.
func New() *MemStore {
	return &MemStore{
		items:  make(map[int64]inventory.Entry),
		nextID: 1,
		Calls:  make(map[string]int),
		Fail:   make(map[string]error),
	}
}

// Add inserts an entry directly, bypassing counters, and returns its id.
func (s *MemStore) Add(parent int64, name string, count int) int64 {
	id := s.nextID
	s.nextID++
	s.items[id] = inventory.Entry{ID: id, Parent: parent, Name: name, Count: count}
	return id
}

// AddWithAbout is Add with a description.
func (s *MemStore) AddWithAbout(parent int64, name, about string) int64 {
	id := s.Add(parent, name, 1)
	e := s.items[id]
	e.About = about
	s.items[id] = e
	return id
}

// Get returns the stored entry for id.
func (s *MemStore) Get(id int64) (inventory.Entry, bool) {
	e, ok := s.items[id]
	return e, ok
}

// Len returns the number of stored entries.
func (s *MemStore) Len() int {
	return len(s.items)
}

// ResetCalls clears the call counters.
func (s *MemStore) ResetCalls() {
	s.Calls = make(map[string]int)
}

// Queries returns the total number of count and page queries issued.
func (s *MemStore) Queries() int {
	return s.Calls["CountChildren"] + s.Calls["PageChildren"] +
		s.Calls["CountMatching"] + s.Calls["PageMatching"]
}

// Writes returns the total number of mutating calls issued.
func (s *MemStore) Writes() int {
	return s.Calls["SetDescription"] + s.Calls["SetParent"] + s.Calls["Rename"] +
		s.Calls["SetCount"] + s.Calls["Insert"] + s.Calls["Delete"]
}

func (s *MemStore) call(name string) error {
	s.Calls[name]++
	return s.Fail[name]
}

func (s *MemStore) sorted(keep func(inventory.Entry) bool) []inventory.Entry {
	var out []inventory.Entry
	for _, e := range s.items {
		if keep(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func page(all []inventory.Entry, limit, offset int) []inventory.Entry {
	if offset >= len(all) {
		return nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return append([]inventory.Entry(nil), all[offset:end]...)
}

func (s *MemStore) children(parent int64) []inventory.Entry {
	return s.sorted(func(e inventory.Entry) bool { return e.Parent == parent })
}

func (s *MemStore) CountChildren(_ context.Context, parent int64) (int, error) {
	if err := s.call("CountChildren"); err != nil {
		return 0, err
	}
	return len(s.children(parent)), nil
}

func (s *MemStore) PageChildren(_ context.Context, parent int64, limit, offset int) ([]inventory.Entry, error) {
	if err := s.call("PageChildren"); err != nil {
		return nil, err
	}
	return page(s.children(parent), limit, offset), nil
}

func (s *MemStore) Description(_ context.Context, id int64) (string, error) {
	if err := s.call("Description"); err != nil {
		return "", err
	}
	e, ok := s.items[id]
	if !ok {
		return "", inventory.ErrNotFound
	}
	return e.About, nil
}

func (s *MemStore) update(name string, id int64, fn func(*inventory.Entry)) error {
	if err := s.call(name); err != nil {
		return err
	}
	e, ok := s.items[id]
	if !ok {
		return inventory.ErrNotFound
	}
	fn(&e)
	s.items[id] = e
	return nil
}

func (s *MemStore) SetDescription(_ context.Context, id int64, text string) error {
	return s.update("SetDescription", id, func(e *inventory.Entry) { e.About = text })
}

func (s *MemStore) Parent(_ context.Context, id int64) (int64, error) {
	if err := s.call("Parent"); err != nil {
		return 0, err
	}
	e, ok := s.items[id]
	if !ok {
		return 0, inventory.ErrNotFound
	}
	return e.Parent, nil
}

func (s *MemStore) SetParent(_ context.Context, id, parent int64) error {
	return s.update("SetParent", id, func(e *inventory.Entry) { e.Parent = parent })
}

func (s *MemStore) Rename(_ context.Context, id int64, name string) error {
	return s.update("Rename", id, func(e *inventory.Entry) { e.Name = name })
}

func (s *MemStore) SetCount(_ context.Context, id int64, n int) error {
	if n < 0 {
		s.Calls["SetCount"]++
		return inventory.ErrNegativeCount
	}
	return s.update("SetCount", id, func(e *inventory.Entry) { e.Count = n })
}

func (s *MemStore) Insert(_ context.Context, parent int64, name string) (int64, error) {
	if err := s.call("Insert"); err != nil {
		return 0, err
	}
	id := s.nextID
	s.nextID++
	s.items[id] = inventory.Entry{ID: id, Parent: parent, Name: name, Count: 1}
	return id, nil
}

// Delete removes id and its subtree.
func (s *MemStore) Delete(_ context.Context, id int64) error {
	if err := s.call("Delete"); err != nil {
		return err
	}
	if _, ok := s.items[id]; !ok {
		return inventory.ErrNotFound
	}
	queue := []int64{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, c := range s.children(cur) {
			queue = append(queue, c.ID)
		}
		delete(s.items, cur)
	}
	return nil
}

func (s *MemStore) matching(field inventory.Field, pattern string) []inventory.Entry {
	return s.sorted(func(e inventory.Entry) bool {
		v := e.Name
		if field == inventory.FieldAbout {
			v = e.About
			if v == "" {
				return false
			}
		}
		return Like(v, pattern)
	})
}

func (s *MemStore) CountMatching(_ context.Context, field inventory.Field, pattern string) (int, error) {
	if err := s.call("CountMatching"); err != nil {
		return 0, err
	}
	return len(s.matching(field, pattern)), nil
}

func (s *MemStore) PageMatching(_ context.Context, field inventory.Field, pattern string, limit, offset int) ([]inventory.Entry, error) {
	if err := s.call("PageMatching"); err != nil {
		return nil, err
	}
	return page(s.matching(field, pattern), limit, offset), nil
}

// Like reports whether s matches a SQL LIKE pattern, case-insensitively
// for ASCII letters as SQLite does.
func Like(s, pattern string) bool {
	return like([]rune(s), []rune(pattern))
}

func like(s, p []rune) bool {
	for len(p) > 0 {
		switch p[0] {
		case '%':
			for len(p) > 0 && p[0] == '%' {
				p = p[1:]
			}
			if len(p) == 0 {
				return true
			}
			for i := 0; i <= len(s); i++ {
				if like(s[i:], p) {
					return true
				}
			}
			return false
		case '_':
			if len(s) == 0 {
				return false
			}
		default:
			if len(s) == 0 || !foldEqual(s[0], p[0]) {
				return false
			}
		}
		s, p = s[1:], p[1:]
	}
	return len(s) == 0
}

func foldEqual(a, b rune) bool {
	if a < unicode.MaxASCII && b < unicode.MaxASCII {
		return strings.EqualFold(string(a), string(b))
	}
	return a == b
}
