// Package api 감시 상태와 버전, Prometheus 메트릭을 제공하는 상태 조회 HTTP 서버입니다.
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/darkkaiser/tgtg-watcher/internal/config"
	"github.com/darkkaiser/tgtg-watcher/internal/pkg/version"
	applog "github.com/darkkaiser/tgtg-watcher/pkg/log"
	"github.com/labstack/echo/v4"
)

const component = "api.service"

const shutdownTimeout = 5 * time.Second

// Service 상태 조회 API 서버의 생명주기를 관리합니다.
type Service struct {
	cfg       config.StatusAPIConfig
	debug     bool
	watch     WatchStatusProvider
	metrics   http.Handler
	buildInfo version.Info

	// listener 테스트에서 임의 포트를 사용할 때 주입합니다.
	listener net.Listener

	running   bool
	runningMu sync.Mutex
}

// NewService Service를 생성합니다. metrics는 nil일 수 있습니다.
func NewService(appConfig *config.AppConfig, watch WatchStatusProvider, metrics http.Handler, buildInfo version.Info) *Service {
	if appConfig == nil {
		panic("AppConfig는 필수입니다")
	}
	if watch == nil {
		panic("WatchStatusProvider는 필수입니다")
	}

	return &Service{
		cfg:       appConfig.StatusAPI,
		debug:     appConfig.Debug,
		watch:     watch,
		metrics:   metrics,
		buildInfo: buildInfo,
	}
}

// Start 상태 조회 API가 비활성화되어 있으면 아무것도 하지 않습니다.
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if !s.cfg.Enabled {
		serviceStopWG.Done()
		applog.WithComponent(component).Debug("상태 조회 API가 비활성화되어 있어 시작하지 않습니다")
		return nil
	}

	if s.running {
		serviceStopWG.Done()
		applog.WithComponent(component).Warn("상태 조회 API 서비스가 이미 실행 중입니다 (중복 호출)")
		return nil
	}

	e := NewHTTPServer(s.debug)
	RegisterRoutes(e, NewHandler(s.watch, s.buildInfo), s.metrics)

	if s.listener != nil {
		e.Listener = s.listener
	}

	s.running = true

	httpServerDone := make(chan struct{})
	go s.serve(e, httpServerDone)

	go func() {
		defer serviceStopWG.Done()
		s.waitForShutdown(serviceStopCtx, e, httpServerDone)
	}()

	applog.WithComponentAndFields(component, applog.Fields{
		"port": s.cfg.ListenPort,
	}).Info("상태 조회 API 서비스 시작됨")

	return nil
}

func (s *Service) serve(e *echo.Echo, done chan struct{}) {
	defer close(done)

	err := e.Start(fmt.Sprintf(":%d", s.cfg.ListenPort))
	if err == nil || errors.Is(err, http.ErrServerClosed) {
		return
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"port": s.cfg.ListenPort,
	}).WithError(err).Error("상태 조회 API 서버가 비정상적으로 종료되었습니다")
}

func (s *Service) waitForShutdown(serviceStopCtx context.Context, e *echo.Echo, httpServerDone chan struct{}) {
	select {
	case <-serviceStopCtx.Done():
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := e.Shutdown(ctx); err != nil {
			applog.WithComponent(component).WithError(err).Error("상태 조회 API 서버 종료 중 에러가 발생했습니다")
		}
		<-httpServerDone

	case <-httpServerDone:
	}

	s.runningMu.Lock()
	s.running = false
	s.runningMu.Unlock()

	applog.WithComponent(component).Info("상태 조회 API 서비스 종료됨")
}
