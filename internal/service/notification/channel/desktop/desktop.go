// Package desktop 운영체제의 데스크톱 알림으로 변경 내용을 표시하는 채널을 제공합니다.
package desktop

import (
	"context"

	"github.com/darkkaiser/tgtg-watcher/internal/config"
	apperrors "github.com/darkkaiser/tgtg-watcher/internal/pkg/errors"
	"github.com/darkkaiser/tgtg-watcher/internal/service/contract"
	"github.com/gen2brain/beeep"
)

// Title 데스크톱 알림의 제목
const Title = "TooGoodToGo"

// notifyFunc beeep.Notify와 같은 형태의 알림 함수
type notifyFunc func(title, message string, icon any) error

// Channel 데스크톱 알림 채널
type Channel struct {
	notify notifyFunc
}

// New beeep을 사용하는 데스크톱 채널을 생성합니다.
func New() *Channel {
	return &Channel{notify: beeep.Notify}
}

func (c *Channel) Kind() contract.ChannelKind { return contract.ChannelDesktop }

func (c *Channel) Enabled(cfg *config.AppConfig) bool {
	return cfg.Notifications.Desktop.Enabled
}

func (c *Channel) Send(_ context.Context, _ *config.AppConfig, msg contract.Message) error {
	if err := c.notify(Title, msg.Text, ""); err != nil {
		return apperrors.Wrap(err, apperrors.Unavailable, "데스크톱 알림 표시에 실패했습니다")
	}
	return nil
}
