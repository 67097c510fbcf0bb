// Package gotify Gotify 서버로 메시지를 전송하는 채널을 제공합니다.
package gotify

import (
	"context"
	"net/http"
	"strings"

	"github.com/darkkaiser/tgtg-watcher/internal/config"
	"github.com/darkkaiser/tgtg-watcher/internal/pkg/fetcher"
	"github.com/darkkaiser/tgtg-watcher/internal/service/contract"
)

// Title Gotify 메시지 제목
const Title = "TooGoodToGo"

type message struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	Priority int    `json:"priority"`
}

// Channel Gotify 채널
type Channel struct {
	fetcher fetcher.Fetcher
}

// New Gotify 채널을 생성합니다.
func New(f fetcher.Fetcher) *Channel {
	return &Channel{fetcher: f}
}

func (c *Channel) Kind() contract.ChannelKind { return contract.ChannelGotify }

func (c *Channel) Enabled(cfg *config.AppConfig) bool {
	return cfg.Notifications.Gotify.Enabled
}

func (c *Channel) Send(ctx context.Context, cfg *config.AppConfig, msg contract.Message) error {
	gc := cfg.Notifications.Gotify

	header := http.Header{}
	header.Set("X-Gotify-Key", gc.APIToken)

	_, err := fetcher.DoJSON(ctx, c.fetcher, http.MethodPost, strings.TrimRight(gc.URL, "/")+"/message", header, message{
		Title:    Title,
		Message:  msg.Text,
		Priority: gc.Priority,
	})
	return err
}
