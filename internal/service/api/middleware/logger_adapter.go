// Package middleware 상태 조회 API 서버에서 사용하는 Echo 미들웨어를 제공합니다.
package middleware

import (
	"io"

	applog "github.com/darkkaiser/tgtg-watcher/pkg/log"
	"github.com/labstack/gommon/log"
)

// Logger logrus 로거를 echo.Logger 인터페이스에 맞춘 어댑터입니다.
//
// Print, Debug, Info 등 가변 인자 메서드는 임베딩된 logrus 로거의 것을 그대로 사용합니다.
type Logger struct {
	*applog.Logger
}

func (l Logger) Output() io.Writer { return l.Logger.Out }

func (l Logger) Prefix() string { return "" }

func (l Logger) SetPrefix(string) {}

func (l Logger) SetHeader(string) {}

func (l Logger) Level() log.Lvl {
	switch l.Logger.GetLevel() {
	case applog.TraceLevel, applog.DebugLevel:
		return log.DEBUG
	case applog.InfoLevel:
		return log.INFO
	case applog.WarnLevel:
		return log.WARN
	case applog.ErrorLevel, applog.FatalLevel, applog.PanicLevel:
		return log.ERROR
	default:
		return log.OFF
	}
}

// SetLevel 애플리케이션 전역 로그 레벨은 설정 파일의 debug 값이 결정하므로 Echo의 요청은 무시합니다.
func (l Logger) SetLevel(log.Lvl) {}

func (l Logger) Printj(j log.JSON) { l.Logger.WithFields(applog.Fields(j)).Print() }
func (l Logger) Debugj(j log.JSON) { l.Logger.WithFields(applog.Fields(j)).Debug() }
func (l Logger) Infoj(j log.JSON) { l.Logger.WithFields(applog.Fields(j)).Info() }
func (l Logger) Warnj(j log.JSON) { l.Logger.WithFields(applog.Fields(j)).Warn() }
func (l Logger) Errorj(j log.JSON) { l.Logger.WithFields(applog.Fields(j)).Error() }
func (l Logger) Fatalj(j log.JSON) { l.Logger.WithFields(applog.Fields(j)).Fatal() }
func (l Logger) Panicj(j log.JSON) { l.Logger.WithFields(applog.Fields(j)).Panic() }
