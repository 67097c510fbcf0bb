package tgtg

import (
	"encoding/json"
	"time"

	"github.com/darkkaiser/tgtg-watcher/internal/service/contract"
	applog "github.com/darkkaiser/tgtg-watcher/pkg/log"
	"github.com/tidwall/gjson"
)

// parseFavorites 찜 목록 응답의 items 배열을 Listing 목록으로 변환합니다.
// 상품 ID나 재고 수량이 없는 항목은 분류할 수 없으므로 제외합니다.
func parseFavorites(body []byte) ([]contract.Listing, int, error) {
	if !gjson.ValidBytes(body) {
		return nil, 0, newErrInvalidResponse(favoritesEndpoint)
	}

	items := gjson.GetBytes(body, "items").Array()
	listings := make([]contract.Listing, 0, len(items))
	for i, item := range items {
		l, ok := parseListing(item)
		if !ok {
			applog.WithComponentAndFields(component, applog.Fields{
				"index":   i,
				"item_id": item.Get("item.item_id").String(),
			}).Warn("[ParsingFailed] 상품 ID 또는 재고 수량이 없는 항목을 제외합니다")
			continue
		}
		listings = append(listings, l)
	}

	return listings, len(items), nil
}

func parseListing(item gjson.Result) (contract.Listing, bool) {
	id := item.Get("item.item_id")
	available := item.Get("items_available")
	if !id.Exists() || id.String() == "" || !available.Exists() || available.Type != gjson.Number {
		return contract.Listing{}, false
	}

	l := contract.Listing{
		ID:             id.String(),
		DisplayName:    item.Get("display_name").String(),
		ItemsAvailable: int(available.Int()),
		Raw:            json.RawMessage(item.Raw),
	}
	if l.DisplayName == "" {
		l.DisplayName = item.Get("store.store_name").String()
	}

	for _, path := range []string{"item.price_including_taxes.minor_units", "item.item_price.minor_units"} {
		if p := item.Get(path); p.Exists() && p.Type == gjson.Number {
			v := p.Int()
			l.PriceMinorUnits = &v
			break
		}
	}

	if interval := item.Get("pickup_interval"); interval.Exists() {
		start, errStart := time.Parse(time.RFC3339, interval.Get("start").String())
		end, errEnd := time.Parse(time.RFC3339, interval.Get("end").String())
		if errStart == nil && errEnd == nil {
			l.Pickup = &contract.PickupInterval{Start: start, End: end}
		}
	}

	return l, true
}
