package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/darkkaiser/tgtg-watcher/internal/config"
	"github.com/darkkaiser/tgtg-watcher/internal/pkg/metrics"
	"github.com/darkkaiser/tgtg-watcher/internal/pkg/version"
	"github.com/darkkaiser/tgtg-watcher/internal/service"
	"github.com/darkkaiser/tgtg-watcher/internal/service/api"
	"github.com/darkkaiser/tgtg-watcher/internal/service/notification"
	"github.com/darkkaiser/tgtg-watcher/internal/service/tgtg"
	"github.com/darkkaiser/tgtg-watcher/internal/service/watch"
	applog "github.com/darkkaiser/tgtg-watcher/pkg/log"
	"github.com/knadh/koanf/maps"
)

const (
	banner = `
  _                _                              _          _
 | |_  __ _  | |_  __ _  ___ __ __ __ __ _ | |_  __ | |_   ___  _ _
 |  _|/ _' | |  _|/ _' ||___|\ V  V // _' ||  _|/ _||   \ / -_)| '_|
  \__|\__, |  \__|\__, |      \_/\_/ \__,_| \__|\__||_||_|\___||_|
      |___/       |___/                                       %s
--------------------------------------------------------------------------------
`

	usage = `Usage: tgtg-watcher <command> [options]

Commands:
  watch          찜 목록의 재고 변화를 감시합니다. (기본값)
  config-path    설정 파일의 경로를 출력합니다.
  config-reset   설정 파일을 기본값으로 초기화합니다.
  version        버전 정보를 출력합니다.
`
)

var errUsage = errors.New("usage")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Getenv); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "[FATAL] %v\n", err)
		}
		os.Exit(1)
	}
}

// run 하위 명령을 해석하여 실행합니다. 명령이 없거나 옵션으로 시작하면 watch로 간주합니다.
func run(args []string, stdout io.Writer, getenv func(string) string) error {
	command := "watch"
	if len(args) > 0 && len(args[0]) > 0 && args[0][0] != '-' {
		command, args = args[0], args[1:]
	}

	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	fs.SetOutput(stdout)
	fs.Usage = func() {
		fmt.Fprint(stdout, usage)
		fmt.Fprintln(stdout, "\nOptions:")
		fs.PrintDefaults()
	}
	filename := fs.String("file", config.DefaultFilename, "설정 파일 경로")
	override := fs.String("config", "", "설정 파일보다 우선하는 사용자 지정 설정(JSON). 파일에는 기록하지 않습니다.")

	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	switch command {
	case "watch":
		overrides, err := collectOverrides(*override, getenv(config.EnvOverride))
		if err != nil {
			return err
		}
		return runWatch(*filename, overrides, stdout)

	case "config-path":
		fmt.Fprintln(stdout, config.AbsPath(*filename))
		return nil

	case "config-reset":
		if err := config.SaveDefault(*filename); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "설정 파일을 기본값으로 초기화했습니다: %s\n", config.AbsPath(*filename))
		return nil

	case "version":
		fmt.Fprintln(stdout, version.Get().String())
		return nil

	default:
		fmt.Fprintf(stdout, "알 수 없는 명령어입니다: %s\n\n", command)
		fs.Usage()
		return errUsage
	}
}

// collectOverrides --config 인자와 TGTG_CONFIG 환경 변수의 JSON을 병합합니다. 환경 변수가 우선합니다.
func collectOverrides(flagValue, envValue string) (map[string]any, error) {
	merged := map[string]any{}
	for _, raw := range []string{flagValue, envValue} {
		m, err := config.ParseOverride(raw)
		if err != nil {
			return nil, err
		}
		if m != nil {
			maps.Merge(m, merged)
		}
	}

	if len(merged) == 0 {
		return nil, nil
	}
	return merged, nil
}

func runWatch(filename string, overrides map[string]any, stdout io.Writer) error {
	provider, err := config.NewProvider(filename, overrides)
	if err != nil {
		return fmt.Errorf("환경설정 로드 실패: %w", err)
	}
	appConfig := provider.Current()

	logOpts := applog.NewProductionOptions(config.AppName)
	if appConfig.Debug {
		logOpts = applog.NewDevelopmentOptions(config.AppName)
	}
	appLogCloser, err := applog.Setup(logOpts)
	if err != nil {
		return fmt.Errorf("로그 시스템 초기화 실패: %w", err)
	}
	defer appLogCloser.Close()

	applog.SetDebugMode(appConfig.Debug)

	buildInfo := version.Get()
	fmt.Fprintf(stdout, banner, buildInfo.Version)

	applog.WithComponentAndFields("main", applog.Fields{
		"version":  buildInfo.String(),
		"config":   config.AbsPath(filename),
		"override": len(overrides) > 0,
	}).Info("감시 서비스 초기화 시작")

	recorder := metrics.New()
	channels := notification.NewDefaultFactory().Create(appConfig)

	dispatcher := watch.NewDispatcher(watch.NewDiffer(), watch.NewFormatter(), channels.All, recorder)
	watchService := watch.NewService(provider, tgtg.NewClient(), watch.NewGate(channels.All), dispatcher, recorder)
	apiService := api.NewService(appConfig, watchService, recorder.Handler(), buildInfo)

	serviceStopCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	serviceStopWG := &sync.WaitGroup{}

	// 텔레그램 세션이 먼저 준비되어야 첫 번째 감시 주기의 채널 판단에 반영된다.
	var services []service.Service
	if channels.Telegram != nil {
		services = append(services, channels.Telegram)
	}
	services = append(services, watchService, apiService)
	for _, s := range services {
		serviceStopWG.Add(1)
		if err := s.Start(serviceStopCtx, serviceStopWG); err != nil {
			cancel()
			serviceStopWG.Wait()

			return fmt.Errorf("서비스 초기화 실패: %w", err)
		}
	}

	provider.OnChange(func(cfg *config.AppConfig) {
		applog.SetDebugMode(cfg.Debug)
		if err := watchService.Reschedule(serviceStopCtx, cfg.API.Polling.TimeSpec); err != nil {
			applog.WithComponent("main").WithError(err).Error("변경된 폴링 주기를 적용하지 못했습니다")
		}
	})
	if err := provider.Watch(serviceStopCtx); err != nil {
		applog.WithComponentAndFields("main", applog.Fields{
			"filename": filename,
		}).WithError(err).Warn("설정 파일을 감시할 수 없어 변경 사항이 자동으로 반영되지 않습니다")
	}

	termC := make(chan os.Signal, 1)
	signal.Notify(termC, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(termC)

	applog.WithComponent("main").Info("감시 서비스 가동 완료")

	<-termC

	applog.WithComponent("main").Info("종료 시그널 수신: 서비스를 정리합니다")
	cancel()
	serviceStopWG.Wait()

	return nil
}
