package watch

import (
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/darkkaiser/tgtg-watcher/internal/pkg/errors"
	"github.com/darkkaiser/tgtg-watcher/internal/service/contract"
)

// Formatter 변경 목록을 알림 문구로 변환합니다.
type Formatter struct {
	now      func() time.Time
	location *time.Location
}

// NewFormatter 로컬 시간대를 기준으로 픽업 시각을 표시하는 Formatter를 생성합니다.
func NewFormatter() *Formatter {
	return &Formatter{now: time.Now, location: time.Local}
}

// FormatText 변경 목록을 일반 텍스트로 변환합니다. 상품마다 한 문단이며 빈 줄로 구분합니다.
//
// 가격 정보가 없는 등 형식이 잘못된 상품은 문단에서 제외되고 해당 에러가 함께 반환됩니다.
// 변경 목록이 비어 있으면 빈 문자열을 반환합니다.
func (f *Formatter) FormatText(changes []contract.Change) (string, error) {
	return f.render(changes, func(c contract.Change, price, pickup string) string {
		l := c.Listing
		return fmt.Sprintf("%s\nPrice: %s\nQuantity: %d\nPickup: %s\n%s\n", l.DisplayName, price, l.ItemsAvailable, pickup, l.ShareURL())
	})
}

// FormatHTML 변경 목록을 HTML(텔레그램, 메일 등)로 변환합니다.
func (f *Formatter) FormatHTML(changes []contract.Change) (string, error) {
	return f.render(changes, func(c contract.Change, price, pickup string) string {
		l := c.Listing
		return fmt.Sprintf("<a href=\"%s\">🍽 %s</a>\n💰 %s\n🥡 %d\n⏰ %s", l.ShareURL(), html.EscapeString(l.DisplayName), price, l.ItemsAvailable, pickup)
	})
}

func (f *Formatter) render(changes []contract.Change, paragraph func(c contract.Change, price, pickup string) string) (string, error) {
	now := f.now()

	var errs []error
	paragraphs := make([]string, 0, len(changes))
	for _, c := range changes {
		price, err := formatPrice(c.Listing)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		paragraphs = append(paragraphs, paragraph(c, price, f.formatPickup(c.Listing.Pickup, now)))
	}

	return strings.Join(paragraphs, "\n\n"), errors.Join(errs...)
}

// formatPickup 픽업 시간대가 없으면 "?"를 반환합니다.
func (f *Formatter) formatPickup(p *contract.PickupInterval, now time.Time) string {
	if p == nil {
		return "?"
	}
	return formatCalendar(p.Start, now, f.location) + " - " + formatCalendar(p.End, now, f.location)
}

// formatPrice 최소 화폐 단위를 100으로 나눈 값을 불필요한 0 없이 표시합니다. (예: 350 -> "3.5")
func formatPrice(l contract.Listing) (string, error) {
	if l.PriceMinorUnits == nil {
		return "", apperrors.Wrapf(contract.ErrPriceMissing, apperrors.ParsingFailed, "알림 문구 생성 실패 (item_id=%s, name=%s)", l.ID, l.DisplayName)
	}
	return strconv.FormatFloat(float64(*l.PriceMinorUnits)/100, 'f', -1, 64), nil
}
