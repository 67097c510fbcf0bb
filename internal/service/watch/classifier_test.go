package watch

import (
	"testing"

	"github.com/darkkaiser/tgtg-watcher/internal/config"
	"github.com/darkkaiser/tgtg-watcher/internal/service/contract"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		previous, current int
		want              contract.Category
	}{
		{0, 0, contract.Unchanged},
		{5, 0, contract.DecreaseToZero},
		{5, 3, contract.Decrease},
		{0, 3, contract.IncreaseFromZero},
		{3, 5, contract.Increase},
		{4, 4, contract.Unchanged},
		{1, 0, contract.DecreaseToZero},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.previous, tt.current), "(%d, %d)", tt.previous, tt.current)
	}
}

func TestIsVisible(t *testing.T) {
	t.Parallel()

	only := func(c contract.Category) config.MessageFilterConfig {
		return config.MessageFilterConfig{
			ShowUnchanged:        c == contract.Unchanged,
			ShowDecreaseToZero:   c == contract.DecreaseToZero,
			ShowDecrease:         c == contract.Decrease,
			ShowIncreaseFromZero: c == contract.IncreaseFromZero,
			ShowIncrease:         c == contract.Increase,
		}
	}

	for _, enabled := range contract.Categories {
		filter := only(enabled)
		for _, c := range contract.Categories {
			assert.Equal(t, c == enabled, IsVisible(c, filter), "filter=%s category=%s", enabled, c)
		}
	}

	assert.False(t, IsVisible(contract.Category(42), config.MessageFilterConfig{ShowUnchanged: true}))
}
