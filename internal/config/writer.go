package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	apperrors "github.com/darkkaiser/tgtg-watcher/internal/pkg/errors"
)

// SaveDefault 기본 설정을 JSON 파일로 저장합니다. 파일이 이미 있으면 덮어씁니다.
func SaveDefault(filename string) error {
	b, err := json.MarshalIndent(NewDefaultConfig(), "", "  ")
	if err != nil {
		return apperrors.Wrap(err, apperrors.Internal, "기본 설정을 JSON으로 변환하는데 실패했습니다")
	}

	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return apperrors.Wrapf(err, apperrors.System, "설정 파일 디렉토리를 생성할 수 없습니다: '%s'", dir)
		}
	}

	// 인증 토큰이 기록되는 파일이므로 소유자만 읽을 수 있게 한다.
	if err := os.WriteFile(filename, append(b, '\n'), 0600); err != nil {
		return apperrors.Wrapf(err, apperrors.System, "설정 파일을 저장할 수 없습니다: '%s'", filename)
	}

	return nil
}

// AbsPath 설정 파일의 절대 경로를 반환합니다.
func AbsPath(filename string) string {
	abs, err := filepath.Abs(filename)
	if err != nil {
		return filename
	}
	return abs
}
