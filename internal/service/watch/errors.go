package watch

import (
	apperrors "github.com/darkkaiser/tgtg-watcher/internal/pkg/errors"
)

var (
	// ErrConfigProviderNotInitialized 서비스 시작 시 설정 Provider가 주어지지 않았을 때 반환합니다.
	ErrConfigProviderNotInitialized = apperrors.New(apperrors.Internal, "설정 Provider 객체가 초기화되지 않았습니다")

	// ErrSnapshotSourceNotInitialized 서비스 시작 시 찜 목록 조회 소스가 주어지지 않았을 때 반환합니다.
	ErrSnapshotSourceNotInitialized = apperrors.New(apperrors.Internal, "찜 목록 조회 소스가 초기화되지 않았습니다")
)

// NewErrInvalidPollingSpec 폴링 주기 표현식을 스케줄러에 등록하지 못했을 때 반환하는 에러를 생성합니다.
func NewErrInvalidPollingSpec(timeSpec string, cause error) error {
	return apperrors.Wrapf(cause, apperrors.InvalidInput, "폴링 스케줄 등록 실패: 잘못된 Cron 표현식입니다 (TimeSpec='%s')", timeSpec)
}
