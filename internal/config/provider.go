package config

import (
	"context"
	"sync"
	"sync/atomic"

	applog "github.com/darkkaiser/tgtg-watcher/pkg/log"
	"github.com/knadh/koanf/providers/file"
)

const component = "config.provider"

// Provider 최신 설정을 제공합니다.
//
// 설정 파일을 감시하여 유효한 변경이 감지되면 설정을 원자적으로 교체하고,
// 잘못된 변경은 경고 로그만 남기고 직전 설정을 유지합니다.
type Provider struct {
	filename string
	override map[string]any

	fp      *file.File
	current atomic.Pointer[AppConfig]

	mu       sync.Mutex
	watching bool
	onChange []func(*AppConfig)
}

// NewProvider 설정을 최초로 로드하여 Provider를 생성합니다.
func NewProvider(filename string, override map[string]any) (*Provider, error) {
	p := &Provider{
		filename: filename,
		override: override,
		fp:       file.Provider(filename),
	}

	cfg, err := load(p.fp, filename, override)
	if err != nil {
		return nil, err
	}
	p.current.Store(cfg)

	return p, nil
}

// Current 가장 최근에 로드된 설정을 반환합니다. 반환된 값은 수정하지 않아야 합니다.
func (p *Provider) Current() *AppConfig {
	return p.current.Load()
}

// Filename 감시 중인 설정 파일 경로를 반환합니다.
func (p *Provider) Filename() string {
	return p.filename
}

// OnChange 설정이 교체될 때 호출될 함수를 등록합니다.
func (p *Provider) OnChange(fn func(*AppConfig)) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.onChange = append(p.onChange, fn)
}

// Reload 설정 파일을 다시 읽습니다. 실패하면 기존 설정을 유지하고 에러를 반환합니다.
func (p *Provider) Reload() error {
	cfg, err := load(p.fp, p.filename, p.override)
	if err != nil {
		return err
	}
	p.current.Store(cfg)

	p.mu.Lock()
	listeners := append([]func(*AppConfig){}, p.onChange...)
	p.mu.Unlock()

	for _, fn := range listeners {
		fn(cfg)
	}

	return nil
}

// Watch ctx가 취소될 때까지 설정 파일의 변경을 감시합니다.
func (p *Provider) Watch(ctx context.Context) error {
	p.mu.Lock()
	if p.watching {
		p.mu.Unlock()
		return nil
	}
	p.watching = true
	p.mu.Unlock()

	err := p.fp.Watch(func(_ any, err error) {
		if err != nil {
			applog.WithComponent(component).WithError(err).Warn("설정 파일 감시 중 오류가 발생하였습니다")
			return
		}

		if err := p.Reload(); err != nil {
			applog.WithComponent(component).WithError(err).Warn("변경된 설정이 유효하지 않아 기존 설정을 유지합니다")
			return
		}

		applog.WithComponentAndFields(component, applog.Fields{
			"filename": p.filename,
		}).Info("설정 파일 변경 사항이 적용되었습니다")
	})
	if err != nil {
		p.mu.Lock()
		p.watching = false
		p.mu.Unlock()
		return err
	}

	go func() {
		<-ctx.Done()
		_ = p.fp.Unwatch()
	}()

	return nil
}
