package log

import (
	"fmt"
	"os"
)

// Options 로깅 시스템 초기화 옵션입니다.
type Options struct {
	Name  string // 로그 파일명에 사용될 애플리케이션 이름
	Dir   string // 로그 디렉토리 (빈 값이면 "logs")
	Level Level  // 최소 로그 레벨 (0이면 InfoLevel)

	MaxAge     int // 로그 파일 보관 일수 (0: 삭제하지 않음)
	MaxSizeMB  int // 로테이션 기준 크기 (0: 기본값 사용)
	MaxBackups int // 보관할 백업 파일 수 (0: 기본값 사용)

	EnableCriticalLog bool // ERROR 이상 로그를 별도 파일에도 기록
	EnableVerboseLog  bool // DEBUG 이하 로그를 메인 로그 대신 별도 파일에 기록
	EnableConsoleLog  bool // 표준 출력에도 기록

	// ReportCaller 로그를 남긴 함수와 라인 번호를 함께 기록합니다.
	ReportCaller bool

	// CallerPathPrefix 호출자 함수명에서 잘라낼 패키지 경로 접두사입니다.
	CallerPathPrefix string
}

// Validate 옵션 값의 유효성을 검사합니다.
func (opts *Options) Validate() error {
	if opts.Name == "" {
		return fmt.Errorf("애플리케이션 식별자(Name)가 설정되지 않았습니다")
	}

	if opts.Dir != "" {
		if info, err := os.Stat(opts.Dir); err == nil && !info.IsDir() {
			return fmt.Errorf("로그 디렉토리 경로(%s)가 이미 파일로 존재합니다", opts.Dir)
		}
	}

	if opts.MaxAge < 0 || opts.MaxSizeMB < 0 || opts.MaxBackups < 0 {
		return fmt.Errorf("로그 보관 설정은 0 이상이어야 합니다 (MaxAge:%d, MaxSizeMB:%d, MaxBackups:%d)", opts.MaxAge, opts.MaxSizeMB, opts.MaxBackups)
	}

	return nil
}

// NewProductionOptions 운영 환경용 로그 옵션을 반환합니다.
func NewProductionOptions(appName string) Options {
	return Options{
		Name:  appName,
		Level: InfoLevel,

		MaxAge:     30,
		MaxSizeMB:  100,
		MaxBackups: 20,

		EnableCriticalLog: true,
		EnableVerboseLog:  true,
		EnableConsoleLog:  false,

		ReportCaller:     true,
		CallerPathPrefix: "github.com/darkkaiser",
	}
}

// NewDevelopmentOptions 개발 환경용 로그 옵션을 반환합니다.
func NewDevelopmentOptions(appName string) Options {
	return Options{
		Name:  appName,
		Level: TraceLevel,

		MaxAge:     1,
		MaxSizeMB:  50,
		MaxBackups: 5,

		EnableConsoleLog: true,

		ReportCaller:     true,
		CallerPathPrefix: "github.com/darkkaiser",
	}
}
