package api

import (
	"net/http"
	"time"

	"github.com/darkkaiser/tgtg-watcher/internal/pkg/version"
	"github.com/darkkaiser/tgtg-watcher/internal/service/watch"
	"github.com/labstack/echo/v4"
)

const (
	healthStatusOK       = "ok"
	healthStatusDegraded = "degraded"
)

// WatchStatusProvider 감시 서비스의 최근 상태를 제공합니다.
type WatchStatusProvider interface {
	Status() watch.Status
}

// HealthResponse GET /health 응답
type HealthResponse struct {
	Status string       `json:"status"`
	Uptime int64        `json:"uptime"` // 초 단위
	Watch  watch.Status `json:"watch"`
}

// VersionResponse GET /version 응답
type VersionResponse struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// Handler 상태 조회 API의 핸들러입니다.
type Handler struct {
	watch     WatchStatusProvider
	buildInfo version.Info
	startedAt time.Time
}

// NewHandler Handler를 생성합니다.
func NewHandler(watch WatchStatusProvider, buildInfo version.Info) *Handler {
	if watch == nil {
		panic("WatchStatusProvider는 필수입니다")
	}

	return &Handler{
		watch:     watch,
		buildInfo: buildInfo,
		startedAt: time.Now(),
	}
}

// Health 최근 감시 주기가 실패했으면 degraded를 반환합니다. 응답 코드는 항상 200입니다.
func (h *Handler) Health(c echo.Context) error {
	st := h.watch.Status()

	status := healthStatusOK
	if st.LastError != "" {
		status = healthStatusDegraded
	}

	return c.JSON(http.StatusOK, HealthResponse{
		Status: status,
		Uptime: int64(time.Since(h.startedAt).Seconds()),
		Watch:  st,
	})
}

func (h *Handler) Version(c echo.Context) error {
	return c.JSON(http.StatusOK, VersionResponse{
		Version:   h.buildInfo.Version,
		Commit:    h.buildInfo.Commit,
		BuildDate: h.buildInfo.BuildDate,
		GoVersion: h.buildInfo.GoVersion,
		OS:        h.buildInfo.OS,
		Arch:      h.buildInfo.Arch,
	})
}
