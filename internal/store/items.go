package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/wesm/invc/internal/inventory"
)

var _ inventory.Store = (*Store)(nil)

// parentArg maps inventory.Root to NULL for "parent IS ?" comparisons.
func parentArg(parent int64) any {
	if parent == inventory.Root {
		return nil
	}
	return parent
}

func fieldColumn(f inventory.Field) (string, error) {
	switch f {
	case inventory.FieldName:
		return "name", nil
	case inventory.FieldAbout:
		return "about", nil
	default:
		return "", fmt.Errorf("unknown search field %d", f)
	}
}

func scanEntries(rows *sql.Rows) ([]inventory.Entry, error) {
	defer rows.Close()
	var out []inventory.Entry
	for rows.Next() {
		var e inventory.Entry
		var parent sql.NullInt64
		var about sql.NullString
		if err := rows.Scan(&e.ID, &parent, &e.Name, &about, &e.Count); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		e.Parent = parent.Int64
		e.About = about.String
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return out, nil
}

// CountChildren returns the number of direct children of parent.
func (s *Store) CountChildren(ctx context.Context, parent int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM item WHERE parent IS ?`, parentArg(parent)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count children of %d: %w", parent, err)
	}
	return n, nil
}

// PageChildren returns up to limit children of parent in id order.
func (s *Store) PageChildren(ctx context.Context, parent int64, limit, offset int) ([]inventory.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, parent, name, about, count FROM item
		WHERE parent IS ?
		ORDER BY id
		LIMIT ? OFFSET ?`, parentArg(parent), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("page children of %d: %w", parent, err)
	}
	return scanEntries(rows)
}

// Description returns the stored description of id, or "" when it has none.
func (s *Store) Description(ctx context.Context, id int64) (string, error) {
	var about sql.NullString
	err := s.db.QueryRowContext(ctx, `SELECT about FROM item WHERE id = ?`, id).Scan(&about)
	if errors.Is(err, sql.ErrNoRows) {
		return "", inventory.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get description of %d: %w", id, err)
	}
	return about.String, nil
}

// Parent returns the parent of id, inventory.Root for top-level entries.
func (s *Store) Parent(ctx context.Context, id int64) (int64, error) {
	var parent sql.NullInt64
	err := s.db.QueryRowContext(ctx, `SELECT parent FROM item WHERE id = ?`, id).Scan(&parent)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, inventory.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("get parent of %d: %w", id, err)
	}
	return parent.Int64, nil
}

// execOne runs a single-row update and reports ErrNotFound when no row matched.
func (s *Store) execOne(ctx context.Context, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return inventory.ErrNotFound
	}
	return nil
}

func (s *Store) SetDescription(ctx context.Context, id int64, text string) error {
	if err := s.execOne(ctx, `UPDATE item SET about = ? WHERE id = ?`, text, id); err != nil {
		return fmt.Errorf("set description of %d: %w", id, err)
	}
	return nil
}

func (s *Store) SetParent(ctx context.Context, id, parent int64) error {
	if err := s.execOne(ctx, `UPDATE item SET parent = ? WHERE id = ?`, parentArg(parent), id); err != nil {
		return fmt.Errorf("set parent of %d: %w", id, err)
	}
	return nil
}

func (s *Store) Rename(ctx context.Context, id int64, name string) error {
	if err := s.execOne(ctx, `UPDATE item SET name = ? WHERE id = ?`, name, id); err != nil {
		return fmt.Errorf("rename %d: %w", id, err)
	}
	return nil
}

func (s *Store) SetCount(ctx context.Context, id int64, n int) error {
	if n < 0 {
		return inventory.ErrNegativeCount
	}
	if err := s.execOne(ctx, `UPDATE item SET count = ? WHERE id = ?`, n, id); err != nil {
		return fmt.Errorf("set count of %d: %w", id, err)
	}
	return nil
}

// Insert creates a child of parent with count 1 and no description.
func (s *Store) Insert(ctx context.Context, parent int64, name string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO item (parent, name, about, count) VALUES (?, ?, NULL, 1)`,
		parentArg(parent), name)
	if err != nil {
		if isSQLiteError(err, "constraint failed") {
			return 0, fmt.Errorf("insert %q under %d: parent does not exist: %w", name, parent, err)
		}
		return 0, fmt.Errorf("insert %q: %w", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert %q: %w", name, err)
	}
	return id, nil
}

// AddItem creates e under e.Parent with its name, count and description
// in one transaction and returns the new id. e.ID is ignored; an empty
// About is stored as NULL.
func (s *Store) AddItem(ctx context.Context, e inventory.Entry) (int64, error) {
	if e.Count < 0 {
		return 0, inventory.ErrNegativeCount
	}
	var about any
	if e.About != "" {
		about = e.About
	}

	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if e.Parent != inventory.Root {
			var one int
			err := tx.QueryRowContext(ctx, `SELECT 1 FROM item WHERE id = ?`, e.Parent).Scan(&one)
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("parent %d: %w", e.Parent, inventory.ErrNotFound)
			}
			if err != nil {
				return fmt.Errorf("look up parent %d: %w", e.Parent, err)
			}
		}
		res, err := tx.ExecContext(ctx,
			`INSERT INTO item (parent, name, about, count) VALUES (?, ?, ?, ?)`,
			parentArg(e.Parent), e.Name, about, e.Count)
		if err != nil {
			return fmt.Errorf("insert %q: %w", e.Name, err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("insert %q: %w", e.Name, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Delete removes id together with its whole subtree in one transaction.
func (s *Store) Delete(ctx context.Context, id int64) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			WITH RECURSIVE subtree(id) AS (
				SELECT id FROM item WHERE id = ?
				UNION ALL
				SELECT item.id FROM item JOIN subtree ON item.parent = subtree.id
			)
			DELETE FROM item WHERE id IN (SELECT id FROM subtree)`, id)
		if err != nil {
			return fmt.Errorf("delete %d: %w", id, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete %d: %w", id, err)
		}
		if n == 0 {
			return fmt.Errorf("delete %d: %w", id, inventory.ErrNotFound)
		}
		return nil
	})
}

// CountMatching counts entries whose field matches a LIKE pattern.
func (s *Store) CountMatching(ctx context.Context, field inventory.Field, pattern string) (int, error) {
	col, err := fieldColumn(field)
	if err != nil {
		return 0, err
	}
	var n int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM item WHERE `+col+` LIKE ?`, pattern).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s matching %q: %w", col, pattern, err)
	}
	return n, nil
}

// PageMatching returns up to limit entries whose field matches a LIKE pattern.
func (s *Store) PageMatching(ctx context.Context, field inventory.Field, pattern string, limit, offset int) ([]inventory.Entry, error) {
	col, err := fieldColumn(field)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, parent, name, about, count FROM item
		WHERE `+col+` LIKE ?
		ORDER BY id
		LIMIT ? OFFSET ?`, pattern, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("search %s matching %q: %w", col, pattern, err)
	}
	return scanEntries(rows)
}
