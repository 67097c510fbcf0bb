// Package notification 설정을 바탕으로 알림 채널을 구성합니다.
package notification

import (
	"time"

	"github.com/darkkaiser/tgtg-watcher/internal/config"
	"github.com/darkkaiser/tgtg-watcher/internal/pkg/fetcher"
	"github.com/darkkaiser/tgtg-watcher/internal/service/contract"
	"github.com/darkkaiser/tgtg-watcher/internal/service/notification/channel/console"
	"github.com/darkkaiser/tgtg-watcher/internal/service/notification/channel/desktop"
	"github.com/darkkaiser/tgtg-watcher/internal/service/notification/channel/gotify"
	"github.com/darkkaiser/tgtg-watcher/internal/service/notification/channel/ifttt"
	"github.com/darkkaiser/tgtg-watcher/internal/service/notification/channel/mail"
	"github.com/darkkaiser/tgtg-watcher/internal/service/notification/channel/telegram"
	"github.com/darkkaiser/tgtg-watcher/internal/service/notification/channel/webhook"
	applog "github.com/darkkaiser/tgtg-watcher/pkg/log"
)

const component = "notification.factory"

// webhookTimeout 웹훅, IFTTT, Gotify 요청의 타임아웃
const webhookTimeout = 15 * time.Second

// Creator 하나의 알림 채널을 생성합니다.
type Creator func(appConfig *config.AppConfig, deps Deps) contract.Channel

// Deps 채널들이 공유하는 의존성입니다.
type Deps struct {
	Fetcher fetcher.Fetcher
}

// Channels 생성된 채널 목록입니다.
type Channels struct {
	All []contract.Channel

	// Telegram 명령어 수신을 위해 별도로 시작해야 하는 텔레그램 채널입니다.
	Telegram *telegram.Channel
}

// Factory 등록된 Creator로 채널 목록을 만듭니다.
type Factory struct {
	creators []Creator
}

// NewFactory 빈 Factory를 생성합니다.
func NewFactory() *Factory {
	return &Factory{}
}

// NewDefaultFactory 모든 기본 채널이 등록된 Factory를 생성합니다.
//
// 채널은 콘솔, 데스크톱, 메일, 텔레그램, IFTTT, Gotify, 웹훅 순서로 등록됩니다.
func NewDefaultFactory() *Factory {
	f := NewFactory()
	f.Register(func(*config.AppConfig, Deps) contract.Channel { return console.New() })
	f.Register(func(*config.AppConfig, Deps) contract.Channel { return desktop.New() })
	f.Register(func(*config.AppConfig, Deps) contract.Channel { return mail.New() })
	f.Register(func(cfg *config.AppConfig, _ Deps) contract.Channel { return telegram.New(cfg) })
	f.Register(func(_ *config.AppConfig, d Deps) contract.Channel { return ifttt.New(d.Fetcher, "") })
	f.Register(func(_ *config.AppConfig, d Deps) contract.Channel { return gotify.New(d.Fetcher) })
	f.Register(func(_ *config.AppConfig, d Deps) contract.Channel { return webhook.New(d.Fetcher) })
	return f
}

// Register nil은 무시합니다.
func (f *Factory) Register(c Creator) {
	if c != nil {
		f.creators = append(f.creators, c)
	}
}

// Create 설정의 활성화 여부와 관계없이 등록된 모든 채널을 생성합니다.
// 활성화 여부는 매 주기마다 최신 설정으로 다시 판단합니다.
func (f *Factory) Create(appConfig *config.AppConfig) Channels {
	deps := Deps{
		Fetcher: fetcher.NewHTTPFetcher(webhookTimeout, config.AppName),
	}

	var result Channels
	for _, create := range f.creators {
		ch := create(appConfig, deps)
		if ch == nil {
			continue
		}
		if tc, ok := ch.(*telegram.Channel); ok {
			result.Telegram = tc
		}
		result.All = append(result.All, ch)

		applog.WithComponentAndFields(component, applog.Fields{
			"channel": ch.Kind().String(),
			"enabled": ch.Enabled(appConfig),
		}).Debug("알림 채널 생성")
	}

	return result
}
