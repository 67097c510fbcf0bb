package watch

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/darkkaiser/tgtg-watcher/internal/config"
	"github.com/darkkaiser/tgtg-watcher/internal/pkg/metrics"
	"github.com/darkkaiser/tgtg-watcher/internal/service/contract"
	"github.com/darkkaiser/tgtg-watcher/pkg/cronx"
	applog "github.com/darkkaiser/tgtg-watcher/pkg/log"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// component 감시 서비스의 로깅용 컴포넌트 이름
const component = "watch.service"

// ConfigProvider 매 주기 시작 시 최신 설정을 제공합니다.
type ConfigProvider interface {
	Current() *config.AppConfig
}

// Status 감시 서비스의 최근 상태입니다. 상태 조회 API에서 사용합니다.
type Status struct {
	StartedAt   time.Time `json:"started_at"`
	LastCycleAt time.Time `json:"last_cycle_at"`
	LastCycleID string    `json:"last_cycle_id"`
	LastOutcome string    `json:"last_outcome"`
	LastError   string    `json:"last_error,omitempty"`
	Observing   bool      `json:"observing"`
	Listings    int       `json:"listings"`
	Changes     int       `json:"changes"`
}

// Service 폴링 주기마다 찜 목록을 조회하여 Dispatcher로 전달하는 서비스입니다.
//
// 한 번에 하나의 주기만 실행되며, 이전 주기가 끝나지 않았으면 다음 주기는 건너뜁니다.
type Service struct {
	provider   ConfigProvider
	source     contract.SnapshotSource
	gate       *Gate
	dispatcher *Dispatcher
	recorder   *metrics.Recorder

	cron     *cron.Cron
	entryID  cron.EntryID
	timeSpec string

	status atomic.Pointer[Status]

	// cycleMu 스케줄이 재등록되는 동안에도 주기가 겹치지 않도록 보장한다.
	cycleMu sync.Mutex
	cycles  sync.WaitGroup

	running   bool
	runningMu sync.Mutex
}

// NewService 감시 서비스를 생성합니다.
func NewService(provider ConfigProvider, source contract.SnapshotSource, gate *Gate, dispatcher *Dispatcher, recorder *metrics.Recorder) *Service {
	s := &Service{
		provider:   provider,
		source:     source,
		gate:       gate,
		dispatcher: dispatcher,
		recorder:   recorder,
	}
	s.status.Store(&Status{})

	return s
}

// Start 폴링 스케줄을 등록하고 첫 번째 주기를 즉시 실행합니다.
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(component).Info("서비스 시작 진입: 감시 서비스 초기화 프로세스를 시작합니다")

	if s.provider == nil {
		serviceStopWG.Done()
		return ErrConfigProviderNotInitialized
	}
	if s.source == nil {
		serviceStopWG.Done()
		return ErrSnapshotSourceNotInitialized
	}

	if s.running {
		serviceStopWG.Done()
		applog.WithComponent(component).Warn("감시 서비스가 이미 실행 중입니다 (중복 호출)")
		return nil
	}

	logger := cron.VerbosePrintfLogger(applog.StandardLogger())
	s.cron = cron.New(
		cron.WithParser(cronx.StandardParser()),
		cron.WithLogger(logger),
		cron.WithChain(
			cron.Recover(logger),
			cron.SkipIfStillRunning(logger),
		),
	)

	timeSpec := s.provider.Current().API.Polling.TimeSpec
	if err := s.schedule(serviceStopCtx, timeSpec); err != nil {
		serviceStopWG.Done()
		return err
	}

	s.cron.Start()
	s.running = true
	s.status.Store(&Status{StartedAt: time.Now()})

	applog.WithComponentAndFields(component, applog.Fields{
		"time_spec": timeSpec,
	}).Info("서비스 시작 완료: 감시 서비스가 정상적으로 초기화되었습니다")

	// 첫 번째 주기는 스케줄을 기다리지 않고 바로 실행한다.
	firstJob := s.cron.Entry(s.entryID).WrappedJob
	s.cycles.Add(1)
	go func() {
		defer s.cycles.Done()
		firstJob.Run()
	}()

	go func() {
		defer serviceStopWG.Done()

		<-serviceStopCtx.Done()

		s.Stop()
	}()

	return nil
}

// Reschedule 폴링 주기가 변경되었을 때 스케줄을 다시 등록합니다. 주기가 같으면 아무것도 하지 않습니다.
func (s *Service) Reschedule(serviceStopCtx context.Context, timeSpec string) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if !s.running || timeSpec == s.timeSpec {
		return nil
	}

	previous := s.entryID
	if err := s.schedule(serviceStopCtx, timeSpec); err != nil {
		return err
	}
	s.cron.Remove(previous)

	applog.WithComponentAndFields(component, applog.Fields{
		"time_spec": timeSpec,
	}).Info("폴링 주기가 변경되어 스케줄을 다시 등록하였습니다")

	return nil
}

func (s *Service) schedule(serviceStopCtx context.Context, timeSpec string) error {
	id, err := s.cron.AddFunc(timeSpec, func() {
		s.runCycle(serviceStopCtx)
	})
	if err != nil {
		return NewErrInvalidPollingSpec(timeSpec, err)
	}

	s.entryID = id
	s.timeSpec = timeSpec

	return nil
}

// Stop 스케줄러를 중지하고 진행 중인 주기와 알림 전송이 끝날 때까지 기다립니다.
func (s *Service) Stop() {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if !s.running {
		return
	}

	applog.WithComponent(component).Info("종료 절차 진입: 감시 서비스 중지 시그널을 수신했습니다")

	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
	s.cycles.Wait()
	s.dispatcher.Wait()

	s.cron = nil
	s.running = false

	applog.WithComponent(component).Info("감시 서비스 종료 완료: 모든 리소스가 정리되었습니다")
}

// Status 최근 주기의 상태를 반환합니다.
func (s *Service) Status() Status {
	return *s.status.Load()
}

// runCycle 한 번의 감시 주기를 수행합니다.
//
// 조회에 실패하면 해당 주기만 버려지며 보관 중인 스냅샷은 그대로 유지됩니다.
func (s *Service) runCycle(ctx context.Context) {
	if !s.cycleMu.TryLock() {
		applog.WithComponent(component).Warn("이전 감시 주기가 아직 실행 중이어서 이번 주기를 건너뜁니다")
		return
	}
	defer s.cycleMu.Unlock()

	cycleID := uuid.NewString()
	startedAt := time.Now()
	cfg := s.provider.Current()

	logger := applog.WithComponentAndFields(component, applog.Fields{
		"cycle_id": cycleID,
	})

	status := s.Status()
	status.LastCycleAt = startedAt
	status.LastCycleID = cycleID
	status.LastError = ""
	defer func() {
		s.status.Store(&status)
	}()

	observe, err := s.gate.ShouldObserve(ctx, cfg)
	if err != nil {
		logger.WithError(err).Warn("알림 채널의 세션 상태를 확인하지 못했습니다")
	}
	status.Observing = observe

	if !observe {
		logger.Debug("활성화된 알림 채널이 없어 이번 주기의 조회를 건너뜁니다")
		status.LastOutcome = metrics.OutcomeSkipped
		s.recorder.RecordCycle(metrics.OutcomeSkipped, 0)
		return
	}

	listings, err := s.source.FetchFavorites(ctx, cfg)
	if err != nil {
		logger.WithError(err).Error("찜 목록 조회에 실패하였습니다")
		status.LastOutcome = metrics.OutcomeFailed
		status.LastError = err.Error()
		s.recorder.RecordCycle(metrics.OutcomeFailed, time.Since(startedAt))
		return
	}

	snapshot := contract.NewSnapshot(listings)
	result := s.dispatcher.OnSnapshot(ctx, cfg, snapshot)

	status.LastOutcome = metrics.OutcomeSuccess
	status.Listings = snapshot.Len()
	status.Changes = len(result.Changes)
	s.recorder.SetListings(snapshot.Len())
	s.recorder.RecordCycle(metrics.OutcomeSuccess, time.Since(startedAt))

	logger.WithFields(applog.Fields{
		"listings":     snapshot.Len(),
		"changes":      len(result.Changes),
		"had_baseline": result.HadBaseline,
		"elapsed":      time.Since(startedAt).String(),
	}).Debug("감시 주기 완료")
}
