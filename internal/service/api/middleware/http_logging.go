package middleware

import (
	"strconv"
	"time"

	applog "github.com/darkkaiser/tgtg-watcher/pkg/log"
	"github.com/labstack/echo/v4"
)

const component = "api.middleware"

// HTTPLogger 요청마다 메서드, 경로, 상태 코드, 처리 시간을 기록합니다.
// 상태 조회 요청은 주기적으로 들어오므로 Debug 레벨로 기록합니다.
func HTTPLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			if err := next(c); err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			latency := time.Since(start)

			applog.WithComponentAndFields(component, applog.Fields{
				"method":        req.Method,
				"path":          req.URL.Path,
				"remote_ip":     c.RealIP(),
				"user_agent":    req.UserAgent(),
				"status":        res.Status,
				"bytes_out":     strconv.FormatInt(res.Size, 10),
				"latency_human": latency.String(),
				"request_id":    res.Header().Get(echo.HeaderXRequestID),
			}).Debug("HTTP 요청")

			return nil
		}
	}
}
