package api

import (
	"time"

	appmiddleware "github.com/darkkaiser/tgtg-watcher/internal/service/api/middleware"
	applog "github.com/darkkaiser/tgtg-watcher/pkg/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 10 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
)

// NewHTTPServer 공통 미들웨어가 적용된 Echo 인스턴스를 생성합니다.
//
// 미들웨어 순서: PanicRecovery → RequestID → HTTPLogger → Secure
func NewHTTPServer(debug bool) *echo.Echo {
	e := echo.New()

	e.Debug = debug
	e.HideBanner = true
	e.HidePort = true

	e.Server.ReadHeaderTimeout = readHeaderTimeout
	e.Server.ReadTimeout = readTimeout
	e.Server.WriteTimeout = writeTimeout
	e.Server.IdleTimeout = idleTimeout

	e.Logger = appmiddleware.Logger{Logger: applog.StandardLogger()}

	e.Use(appmiddleware.PanicRecovery())
	e.Use(middleware.RequestID())
	e.Use(appmiddleware.HTTPLogger())
	e.Use(middleware.Secure())

	return e
}
