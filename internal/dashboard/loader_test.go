package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/folio/internal/common"
)

func TestLoadAllSections(t *testing.T) {
	loader := NewLoader(&fakeBackend{})

	snap, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, snap.Partial())
	assert.NoError(t, snap.Err())
	assert.Len(t, snap.Portfolio, 1)
	assert.NotNil(t, snap.Summary)
	assert.NotNil(t, snap.PPF)
	assert.Len(t, snap.HeldLots(), 1)
	assert.False(t, snap.LoadedAt.IsZero())
}

func TestLoadPartialFailureKeepsSuccessfulSections(t *testing.T) {
	loader := NewLoader(&fakeBackend{failing: map[Section]bool{
		SectionStocks: true,
		SectionFD:     true,
	}})

	snap, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, snap.Partial())
	assert.Equal(t, []Section{SectionStocks, SectionFD}, snap.Failed())
	assert.ErrorIs(t, snap.Err(), common.ErrPartialLoad)
	assert.ErrorIs(t, snap.Err(), errDown)

	assert.Nil(t, snap.Stocks)
	assert.Nil(t, snap.HeldLots())
	assert.Nil(t, snap.FD)
	assert.NotNil(t, snap.Summary)
	assert.NotNil(t, snap.MF)
	assert.Len(t, snap.Transactions, 1)
}

func TestLoadAllFailedIsUnreachable(t *testing.T) {
	failing := make(map[Section]bool)
	for _, s := range Sections {
		failing[s] = true
	}
	loader := NewLoader(&fakeBackend{failing: failing})

	snap, err := loader.Load(context.Background())
	require.Error(t, err)
	assert.Nil(t, snap)
	assert.ErrorIs(t, err, common.ErrBackendUnreachable)
	assert.ErrorIs(t, err, errDown)
}
