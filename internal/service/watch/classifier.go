package watch

import (
	"github.com/darkkaiser/tgtg-watcher/internal/config"
	"github.com/darkkaiser/tgtg-watcher/internal/service/contract"
)

// Classify 직전 재고와 현재 재고만으로 변경 유형을 결정합니다. 먼저 일치하는 규칙이 적용됩니다.
//
// 새로 등장한 상품은 직전 재고를 0으로 간주하므로 재고가 0인 신규 상품은 Unchanged입니다.
func Classify(previousStock, currentStock int) contract.Category {
	switch {
	case currentStock == previousStock:
		return contract.Unchanged
	case currentStock == 0:
		return contract.DecreaseToZero
	case currentStock < previousStock:
		return contract.Decrease
	case previousStock == 0:
		return contract.IncreaseFromZero
	default:
		return contract.Increase
	}
}

// IsVisible 변경 유형이 사용자 설정에 따라 알림 대상인지 판단합니다.
func IsVisible(category contract.Category, filter config.MessageFilterConfig) bool {
	switch category {
	case contract.Unchanged:
		return filter.ShowUnchanged
	case contract.DecreaseToZero:
		return filter.ShowDecreaseToZero
	case contract.Decrease:
		return filter.ShowDecrease
	case contract.IncreaseFromZero:
		return filter.ShowIncreaseFromZero
	case contract.Increase:
		return filter.ShowIncrease
	default:
		return false
	}
}
