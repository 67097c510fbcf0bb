package contract

import (
	"encoding/json"
	"time"
)

// ShareURLPrefix 상품 공유 링크의 접두사입니다. 뒤에 상품 ID가 붙습니다.
const ShareURLPrefix = "https://share.toogoodtogo.com/item/"

// PickupInterval 픽업 가능 시간대
type PickupInterval struct {
	Start time.Time
	End   time.Time
}

// Listing 찜 목록에 등록된 매장의 상품 하나를 나타냅니다. 생성된 뒤에는 수정하지 않습니다.
type Listing struct {
	ID             string
	DisplayName    string
	ItemsAvailable int

	// PriceMinorUnits 세금 포함 가격 (최소 화폐 단위). 응답에 가격이 없으면 nil입니다.
	PriceMinorUnits *int64

	// Pickup 픽업 시간대. 응답에 없으면 nil입니다.
	Pickup *PickupInterval

	// Raw API 응답의 원본 JSON 객체
	Raw json.RawMessage
}

// ShareURL 상품의 공유 링크를 반환합니다.
func (l Listing) ShareURL() string {
	return ShareURLPrefix + l.ID
}

// Snapshot 한 번의 조회로 얻은 상품 목록입니다.
// ID로 조회할 수 있으며 순회 순서는 조회 결과의 순서를 따릅니다.
type Snapshot struct {
	ids  []string
	byID map[string]Listing
}

// NewSnapshot 상품 목록으로 Snapshot을 생성합니다.
// 같은 ID가 여러 번 나오면 순서는 처음 위치를 유지하고 값은 마지막 것을 사용합니다.
func NewSnapshot(listings []Listing) Snapshot {
	s := Snapshot{
		ids:  make([]string, 0, len(listings)),
		byID: make(map[string]Listing, len(listings)),
	}

	for _, l := range listings {
		if _, exists := s.byID[l.ID]; !exists {
			s.ids = append(s.ids, l.ID)
		}
		s.byID[l.ID] = l
	}

	return s
}

// Len 상품 수를 반환합니다.
func (s Snapshot) Len() int {
	return len(s.ids)
}

// Get ID에 해당하는 상품을 반환합니다.
func (s Snapshot) Get(id string) (Listing, bool) {
	l, ok := s.byID[id]
	return l, ok
}

// Listings 조회 순서대로 상품 목록을 반환합니다.
func (s Snapshot) Listings() []Listing {
	listings := make([]Listing, 0, len(s.ids))
	for _, id := range s.ids {
		listings = append(listings, s.byID[id])
	}
	return listings
}
