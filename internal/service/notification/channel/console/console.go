// Package console 알림 문구를 표준 출력으로 출력하는 채널을 제공합니다.
package console

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/darkkaiser/tgtg-watcher/internal/config"
	"github.com/darkkaiser/tgtg-watcher/internal/service/contract"
)

// clearScreen 화면을 지우고 커서를 처음 위치로 옮기는 ANSI 이스케이프 시퀀스
const clearScreen = "\033[2J\033[H"

// Channel 콘솔 채널
type Channel struct {
	mu  sync.Mutex
	out io.Writer
}

// New 표준 출력을 사용하는 콘솔 채널을 생성합니다.
func New() *Channel {
	return NewWithWriter(os.Stdout)
}

// NewWithWriter 지정된 Writer로 출력하는 콘솔 채널을 생성합니다.
func NewWithWriter(out io.Writer) *Channel {
	return &Channel{out: out}
}

func (c *Channel) Kind() contract.ChannelKind { return contract.ChannelConsole }

func (c *Channel) Enabled(cfg *config.AppConfig) bool {
	return cfg.Notifications.Console.Enabled
}

// Send 텍스트 문구가 비어 있지 않을 때만 출력합니다.
func (c *Channel) Send(_ context.Context, cfg *config.AppConfig, msg contract.Message) error {
	if msg.Text == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if cfg.Notifications.Console.Clear {
		if _, err := io.WriteString(c.out, clearScreen); err != nil {
			return err
		}
	}

	_, err := io.WriteString(c.out, msg.Text+"\n")
	return err
}
