package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSnapshot(t *testing.T) {
	t.Parallel()

	s := NewSnapshot([]Listing{
		{ID: "b", ItemsAvailable: 1},
		{ID: "a", ItemsAvailable: 2},
		{ID: "b", ItemsAvailable: 3},
	})

	assert.Equal(t, 2, s.Len())

	listings := s.Listings()
	assert.Equal(t, "b", listings[0].ID, "처음 등장한 위치를 유지해야 합니다")
	assert.Equal(t, 3, listings[0].ItemsAvailable, "마지막 값을 사용해야 합니다")
	assert.Equal(t, "a", listings[1].ID)

	_, ok := s.Get("missing")
	assert.False(t, ok)

	var empty Snapshot
	assert.Zero(t, empty.Len())
	assert.Empty(t, empty.Listings())
	_, ok = empty.Get("a")
	assert.False(t, ok)
}

func TestCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		category Category
		name     string
		label    string
	}{
		{Unchanged, "Unchanged", "unchanged"},
		{DecreaseToZero, "DecreaseToZero", "decrease_to_zero"},
		{Decrease, "Decrease", "decrease"},
		{IncreaseFromZero, "IncreaseFromZero", "increase_from_zero"},
		{Increase, "Increase", "increase"},
		{Category(99), "Unknown", "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.name, tt.category.String())
		assert.Equal(t, tt.label, tt.category.Label())
	}
}

func TestChannelKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "telegram", ChannelTelegram.String())
	assert.Equal(t, "ifttt", ChannelIFTTT.String())
	assert.Equal(t, "unknown", ChannelKind(-1).String())
}

func TestListing_ShareURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://share.toogoodtogo.com/item/123", Listing{ID: "123"}.ShareURL())
}
