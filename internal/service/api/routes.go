package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RegisterRoutes 상태 조회 엔드포인트를 등록합니다. metrics가 nil이면 /metrics는 등록하지 않습니다.
func RegisterRoutes(e *echo.Echo, h *Handler, metrics http.Handler) {
	e.GET("/health", h.Health)
	e.GET("/version", h.Version)

	if metrics != nil {
		e.GET("/metrics", echo.WrapHandler(metrics))
	}
}
