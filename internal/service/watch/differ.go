package watch

import (
	"sync"

	"github.com/darkkaiser/tgtg-watcher/internal/config"
	"github.com/darkkaiser/tgtg-watcher/internal/service/contract"
)

// DiffResult 스냅샷 비교 결과
type DiffResult struct {
	// Changes 알림 대상인 변경 목록 (현재 스냅샷의 순서)
	Changes []contract.Change

	// HadBaseline 비교 직전에 보관 중이던 스냅샷이 비어 있지 않았는지 여부
	HadBaseline bool
}

// Differ 마지막으로 조회한 스냅샷을 보관하고 새 스냅샷과 비교합니다.
type Differ struct {
	mu       sync.Mutex
	previous contract.Snapshot
}

// NewDiffer 보관 중인 스냅샷이 없는 Differ를 생성합니다.
func NewDiffer() *Differ {
	return &Differ{}
}

// Diff 현재 스냅샷을 직전 스냅샷과 비교하여 알림 대상 변경 목록을 반환합니다.
// 결과와 무관하게 보관 중인 스냅샷은 호출마다 정확히 한 번 current로 교체됩니다.
func (d *Differ) Diff(current contract.Snapshot, filter config.MessageFilterConfig) DiffResult {
	d.mu.Lock()
	defer d.mu.Unlock()

	result := DiffResult{
		HadBaseline: d.previous.Len() > 0,
	}

	for _, listing := range current.Listings() {
		previousStock := 0
		if prev, ok := d.previous.Get(listing.ID); ok {
			previousStock = prev.ItemsAvailable
		}

		category := Classify(previousStock, listing.ItemsAvailable)
		if !IsVisible(category, filter) {
			continue
		}

		result.Changes = append(result.Changes, contract.Change{
			Listing:       listing,
			PreviousStock: previousStock,
			CurrentStock:  listing.ItemsAvailable,
			Category:      category,
		})
	}

	d.previous = current

	return result
}

// Retained 보관 중인 스냅샷을 반환합니다.
func (d *Differ) Retained() contract.Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.previous
}
