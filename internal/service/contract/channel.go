package contract

import (
	"context"

	"github.com/darkkaiser/tgtg-watcher/internal/config"
)

// ChannelKind 알림 채널의 종류
type ChannelKind int

const (
	ChannelConsole ChannelKind = iota
	ChannelDesktop
	ChannelMail
	ChannelTelegram
	ChannelIFTTT
	ChannelGotify
	ChannelWebhook
)

func (k ChannelKind) String() string {
	switch k {
	case ChannelConsole:
		return "console"
	case ChannelDesktop:
		return "desktop"
	case ChannelMail:
		return "mail"
	case ChannelTelegram:
		return "telegram"
	case ChannelIFTTT:
		return "ifttt"
	case ChannelGotify:
		return "gotify"
	case ChannelWebhook:
		return "webhook"
	default:
		return "unknown"
	}
}

// Message 채널로 전달되는 알림 내용입니다. 채널마다 필요한 형식만 사용합니다.
type Message struct {
	Text    string
	HTML    string
	Changes []Change
}

// Channel 알림 채널 어댑터가 구현하는 인터페이스입니다.
type Channel interface {
	Kind() ChannelKind

	// Enabled 현재 설정에서 채널이 활성화되어 있는지 반환합니다.
	Enabled(cfg *config.AppConfig) bool

	// Send 알림을 전송합니다. 다른 채널의 전송과 동시에 호출될 수 있습니다.
	Send(ctx context.Context, cfg *config.AppConfig, msg Message) error
}

// SessionTracker 수신자가 구독 상태를 관리하는 채널(텔레그램)이 구현합니다.
// 감시 여부를 판단할 때 활성화 플래그 대신 활성 세션 존재 여부가 사용됩니다.
type SessionTracker interface {
	HasActiveSessions(ctx context.Context) (bool, error)
}

// SnapshotSource 찜 목록을 조회하는 외부 데이터 소스
type SnapshotSource interface {
	FetchFavorites(ctx context.Context, cfg *config.AppConfig) ([]Listing, error)
}
