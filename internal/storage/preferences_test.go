package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferenceRoundTripPerNamespace(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "stocks.columns", "day_change", "false"))
	require.NoError(t, store.Set(ctx, "stocks.columns", "exchange", "true"))
	require.NoError(t, store.Set(ctx, "fd.columns", "day_change", "true"))

	value, ok, err := store.Get(ctx, "stocks.columns", "day_change")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "false", value)

	value, ok, err = store.Get(ctx, "fd.columns", "day_change")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "true", value)

	stocks, err := store.List(ctx, "stocks.columns")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"day_change": "false", "exchange": "true"}, stocks)

	require.NoError(t, store.Set(ctx, "stocks.columns", "day_change", "true"))
	value, _, err = store.Get(ctx, "stocks.columns", "day_change")
	require.NoError(t, err)
	assert.Equal(t, "true", value)

	require.NoError(t, store.Delete(ctx, "stocks.columns", "day_change"))
	require.NoError(t, store.Delete(ctx, "stocks.columns", "never-set"))
	_, ok, err = store.Get(ctx, "stocks.columns", "day_change")
	require.NoError(t, err)
	assert.False(t, ok)

	empty, err := store.List(ctx, "ppf.columns")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestPreferenceValidation(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
		want error
	}{
		{"empty namespace", func() error { return store.Set(ctx, "", "k", "v") }, ErrEmptyString},
		{"empty key", func() error { return store.Set(ctx, "ns", " ", "v") }, ErrEmptyString},
		{"list without namespace", func() error { _, err := store.List(ctx, ""); return err }, ErrEmptyString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.call(), tt.want)
		})
	}
}

func TestColumnVisibility(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()
	columns := []string{"symbol", "quantity", "day_change"}

	stocks := NewColumnVisibility(store, "stocks")
	assert.Equal(t, "stocks.columns", stocks.Namespace())

	visible, err := stocks.Visible(ctx, columns)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"symbol": true, "quantity": true, "day_change": true}, visible)

	require.NoError(t, stocks.SetVisible(ctx, "day_change", false))
	require.NoError(t, store.Set(ctx, stocks.Namespace(), "quantity", "garbage"))

	visible, err = stocks.Visible(ctx, columns)
	require.NoError(t, err)
	assert.False(t, visible["day_change"])
	assert.True(t, visible["quantity"], "unparseable values fall back to visible")

	fd := NewColumnVisibility(store, "fd")
	fdVisible, err := fd.Visible(ctx, columns)
	require.NoError(t, err)
	assert.True(t, fdVisible["day_change"])

	require.NoError(t, stocks.Reset(ctx))
	remaining, err := store.List(ctx, stocks.Namespace())
	require.NoError(t, err)
	assert.Empty(t, remaining)
}
