package contract

import (
	apperrors "github.com/darkkaiser/tgtg-watcher/internal/pkg/errors"
)

// ErrPriceMissing 상품에 가격 정보가 없어 알림 문구를 만들 수 없을 때 반환합니다.
var ErrPriceMissing = apperrors.New(apperrors.ParsingFailed, "상품 가격 정보가 없습니다")
