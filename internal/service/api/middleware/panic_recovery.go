package middleware

import (
	"fmt"
	"runtime"

	apperrors "github.com/darkkaiser/tgtg-watcher/internal/pkg/errors"
	applog "github.com/darkkaiser/tgtg-watcher/pkg/log"
	"github.com/labstack/echo/v4"
)

const stackBufferSize = 4 << 10

// PanicRecovery 핸들러에서 발생한 panic을 복구하여 500 응답으로 바꾸고 스택과 함께 기록합니다.
func PanicRecovery() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				recovered, ok := r.(error)
				if !ok {
					recovered = apperrors.New(apperrors.Internal, fmt.Sprintf("%v", r))
				}

				stack := make([]byte, stackBufferSize)
				length := runtime.Stack(stack, false)

				applog.WithComponentAndFields(component, applog.Fields{
					"error":      recovered,
					"stack":      string(stack[:length]),
					"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
				}).Error("PANIC RECOVERED")

				err = echo.NewHTTPError(500, "내부 서버 오류가 발생했습니다").SetInternal(recovered)
			}()

			return next(c)
		}
	}
}
