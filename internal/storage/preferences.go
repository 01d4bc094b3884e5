package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/Veraticus/folio/internal/service"
)

// Get returns the value stored under namespace/key.
func (s *SQLiteStorage) Get(ctx context.Context, namespace, key string) (string, bool, error) {
	if err := validateContext(ctx); err != nil {
		return "", false, err
	}
	if err := validateKey(namespace, key); err != nil {
		return "", false, err
	}

	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM preferences WHERE namespace = ? AND key = ?`,
		namespace, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read preference %s/%s: %w", namespace, key, err)
	}
	return value, true, nil
}

// Set stores value under namespace/key, replacing any previous value.
func (s *SQLiteStorage) Set(ctx context.Context, namespace, key, value string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateKey(namespace, key); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO preferences (namespace, key, value, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(namespace, key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP`,
		namespace, key, value)
	if err != nil {
		return fmt.Errorf("failed to save preference %s/%s: %w", namespace, key, err)
	}
	return nil
}

// Delete removes namespace/key. Deleting a missing key is not an error.
func (s *SQLiteStorage) Delete(ctx context.Context, namespace, key string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateKey(namespace, key); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM preferences WHERE namespace = ? AND key = ?`, namespace, key); err != nil {
		return fmt.Errorf("failed to delete preference %s/%s: %w", namespace, key, err)
	}
	return nil
}

// List returns every key/value in namespace.
func (s *SQLiteStorage) List(ctx context.Context, namespace string) (map[string]string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(namespace, "namespace"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT key, value FROM preferences WHERE namespace = ? ORDER BY key`, namespace)
	if err != nil {
		return nil, fmt.Errorf("failed to list preferences %s: %w", namespace, err)
	}
	defer func() { _ = rows.Close() }()

	prefs := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan preference: %w", err)
		}
		prefs[key] = value
	}
	return prefs, rows.Err()
}

func validateKey(namespace, key string) error {
	if err := validateString(namespace, "namespace"); err != nil {
		return err
	}
	return validateString(key, "key")
}

// ColumnVisibility stores which columns of one table are shown. Columns
// without a stored preference are visible.
type ColumnVisibility struct {
	store     service.PreferenceStore
	namespace string
}

// NewColumnVisibility binds the preferences of table, e.g. "stocks".
func NewColumnVisibility(store service.PreferenceStore, table string) *ColumnVisibility {
	return &ColumnVisibility{store: store, namespace: table + ".columns"}
}

// Namespace is the preference namespace used for the table.
func (c *ColumnVisibility) Namespace() string {
	return c.namespace
}

// Visible resolves the visibility of each of columns.
func (c *ColumnVisibility) Visible(ctx context.Context, columns []string) (map[string]bool, error) {
	stored, err := c.store.List(ctx, c.namespace)
	if err != nil {
		return nil, err
	}
	visible := make(map[string]bool, len(columns))
	for _, col := range columns {
		visible[col] = true
		if raw, ok := stored[col]; ok {
			if v, err := strconv.ParseBool(raw); err == nil {
				visible[col] = v
			}
		}
	}
	return visible, nil
}

// SetVisible stores the visibility of column.
func (c *ColumnVisibility) SetVisible(ctx context.Context, column string, visible bool) error {
	return c.store.Set(ctx, c.namespace, column, strconv.FormatBool(visible))
}

// Reset forgets every stored preference of the table.
func (c *ColumnVisibility) Reset(ctx context.Context) error {
	stored, err := c.store.List(ctx, c.namespace)
	if err != nil {
		return err
	}
	for key := range stored {
		if err := c.store.Delete(ctx, c.namespace, key); err != nil {
			return err
		}
	}
	return nil
}
