// Package cronx 폴링 주기 표현식을 해석하는 robfig/cron 파서를 제공합니다.
package cronx

import (
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultPollingSpec 폴링 주기가 설정되지 않았을 때 사용하는 기본 표현식입니다.
const DefaultPollingSpec = "@every 30s"

// StandardParser 초 단위를 포함하는 6필드 형식과 Descriptor(@every 등)를 해석하는 파서를 반환합니다.
//
//	"*/30 * * * * *" : 30초마다
//	"@every 1m"      : 1분 간격
func StandardParser() cron.Parser {
	return cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
}

// Parse 표현식을 해석하여 Schedule을 반환합니다. 앞뒤 공백은 무시합니다.
func Parse(spec string) (cron.Schedule, error) {
	schedule, err := StandardParser().Parse(strings.TrimSpace(spec))
	if err != nil {
		return nil, fmt.Errorf("Cron 표현식 파싱 실패(spec=%q): %w", spec, err)
	}

	return schedule, nil
}

// Validate 표현식이 해석 가능한지 검사합니다.
func Validate(spec string) error {
	_, err := Parse(spec)
	return err
}

// NextInterval from 시점 이후 두 번의 실행 시각 사이의 간격을 계산합니다.
// 고정 간격이 아닌 표현식에서는 근사값으로만 사용해야 합니다.
func NextInterval(spec string, from time.Time) (time.Duration, error) {
	schedule, err := Parse(spec)
	if err != nil {
		return 0, err
	}

	first := schedule.Next(from)
	return schedule.Next(first).Sub(first), nil
}
