package tgtg

import (
	apperrors "github.com/darkkaiser/tgtg-watcher/internal/pkg/errors"
)

var (
	// ErrMissingCredentials 인증 토큰 또는 사용자 ID가 설정되지 않았을 때 반환됩니다.
	ErrMissingCredentials = apperrors.New(apperrors.Unauthorized, "TooGoodToGo 인증 정보(api.credentials)가 설정되지 않았습니다. access_token, refresh_token, user_id를 확인해 주세요")

	// ErrRefreshTokenMissing 토큰 갱신 응답에 새 액세스 토큰이 없을 때 반환됩니다.
	ErrRefreshTokenMissing = apperrors.New(apperrors.ParsingFailed, "토큰 갱신 응답에 access_token이 없습니다")
)

func newErrInvalidResponse(endpoint string) error {
	return apperrors.Newf(apperrors.ParsingFailed, "응답 본문이 올바른 JSON 형식이 아닙니다 (endpoint: %s)", endpoint)
}
