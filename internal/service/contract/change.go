package contract

import "github.com/iancoleman/strcase"

// Category 재고 변경 유형
type Category int

const (
	Unchanged Category = iota
	DecreaseToZero
	Decrease
	IncreaseFromZero
	Increase
)

// Categories 모든 변경 유형
var Categories = []Category{Unchanged, DecreaseToZero, Decrease, IncreaseFromZero, Increase}

func (c Category) String() string {
	switch c {
	case Unchanged:
		return "Unchanged"
	case DecreaseToZero:
		return "DecreaseToZero"
	case Decrease:
		return "Decrease"
	case IncreaseFromZero:
		return "IncreaseFromZero"
	case Increase:
		return "Increase"
	default:
		return "Unknown"
	}
}

// Label 메트릭 레이블 등에 사용하는 snake_case 이름을 반환합니다. (예: decrease_to_zero)
func (c Category) Label() string {
	return strcase.ToSnake(c.String())
}

// Change 직전 조회 대비 상품 하나의 재고 변경 내역
type Change struct {
	Listing       Listing
	PreviousStock int
	CurrentStock  int
	Category      Category
}
