package watch

import (
	"testing"

	"github.com/darkkaiser/tgtg-watcher/internal/config"
	"github.com/darkkaiser/tgtg-watcher/internal/service/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var showAll = config.MessageFilterConfig{
	ShowUnchanged:        true,
	ShowDecreaseToZero:   true,
	ShowDecrease:         true,
	ShowIncreaseFromZero: true,
	ShowIncrease:         true,
}

func TestDiffer_FirstDiffComparesAgainstZero(t *testing.T) {
	t.Parallel()

	d := NewDiffer()
	result := d.Diff(snapshotOf(listing("A", 4), listing("B", 0)), showAll)

	assert.False(t, result.HadBaseline)
	require.Len(t, result.Changes, 2)
	assert.Equal(t, contract.IncreaseFromZero, result.Changes[0].Category)
	assert.Equal(t, 0, result.Changes[0].PreviousStock)
	assert.Equal(t, 4, result.Changes[0].CurrentStock)
	assert.Equal(t, contract.Unchanged, result.Changes[1].Category, "재고 0인 신규 상품은 Unchanged입니다")
}

func TestDiffer_Idempotence(t *testing.T) {
	t.Parallel()

	filter := config.MessageFilterConfig{ShowIncreaseFromZero: true}
	s := snapshotOf(listing("A", 4), listing("B", 2))

	d := NewDiffer()
	first := d.Diff(s, filter)
	second := d.Diff(s, filter)

	assert.Len(t, first.Changes, 2)
	assert.Empty(t, second.Changes, "같은 스냅샷을 다시 비교하면 Unchanged만 남아 걸러져야 합니다")
	assert.True(t, second.HadBaseline)

	withUnchanged := d.Diff(s, showAll)
	require.Len(t, withUnchanged.Changes, 2)
	for _, c := range withUnchanged.Changes {
		assert.Equal(t, contract.Unchanged, c.Category)
	}
}

func TestDiffer_RotatesEvenWithoutVisibleChanges(t *testing.T) {
	t.Parallel()

	d := NewDiffer()
	d.Diff(snapshotOf(listing("A", 2)), config.MessageFilterConfig{})
	assert.Equal(t, 1, d.Retained().Len())

	d.Diff(snapshotOf(listing("A", 5)), config.MessageFilterConfig{})
	l, ok := d.Retained().Get("A")
	require.True(t, ok)
	assert.Equal(t, 5, l.ItemsAvailable)

	result := d.Diff(snapshotOf(listing("A", 1)), showAll)
	require.Len(t, result.Changes, 1)
	assert.Equal(t, 5, result.Changes[0].PreviousStock)
	assert.Equal(t, contract.Decrease, result.Changes[0].Category)
}

func TestDiffer_PreservesCurrentOrder(t *testing.T) {
	t.Parallel()

	d := NewDiffer()
	d.Diff(snapshotOf(listing("A", 1), listing("B", 1), listing("C", 1)), showAll)

	result := d.Diff(snapshotOf(listing("C", 3), listing("A", 0), listing("D", 2)), showAll)

	var ids []string
	for _, c := range result.Changes {
		ids = append(ids, c.Listing.ID)
	}
	assert.Equal(t, []string{"C", "A", "D"}, ids)
	assert.Equal(t, []contract.Category{contract.Increase, contract.DecreaseToZero, contract.IncreaseFromZero},
		[]contract.Category{result.Changes[0].Category, result.Changes[1].Category, result.Changes[2].Category})
}

func TestDiffer_EmptySnapshotClearsBaseline(t *testing.T) {
	t.Parallel()

	d := NewDiffer()
	d.Diff(snapshotOf(listing("A", 1)), showAll)
	d.Diff(snapshotOf(), showAll)

	result := d.Diff(snapshotOf(listing("A", 1)), showAll)
	assert.False(t, result.HadBaseline)
}
