// Package ifttt IFTTT Webhooks(Maker) 이벤트를 호출하는 채널을 제공합니다.
package ifttt

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/darkkaiser/tgtg-watcher/internal/config"
	"github.com/darkkaiser/tgtg-watcher/internal/pkg/fetcher"
	"github.com/darkkaiser/tgtg-watcher/internal/service/contract"
)

// DefaultBaseURL IFTTT Webhooks 서비스 주소
const DefaultBaseURL = "https://maker.ifttt.com"

type values struct {
	Value1 string `json:"value1"`
	Value2 string `json:"value2"`
}

// Channel IFTTT 채널
type Channel struct {
	fetcher fetcher.Fetcher
	baseURL string
}

// New IFTTT 채널을 생성합니다. baseURL이 비어 있으면 DefaultBaseURL을 사용합니다.
func New(f fetcher.Fetcher, baseURL string) *Channel {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Channel{fetcher: f, baseURL: baseURL}
}

func (c *Channel) Kind() contract.ChannelKind { return contract.ChannelIFTTT }

func (c *Channel) Enabled(cfg *config.AppConfig) bool {
	return cfg.Notifications.IFTTT.Enabled
}

// Send 설정된 웹훅 키마다 이벤트를 호출합니다. 한 키의 실패가 다른 키의 호출을 막지 않습니다.
func (c *Channel) Send(ctx context.Context, cfg *config.AppConfig, msg contract.Message) error {
	event := cfg.Notifications.IFTTT.Event

	var errs error
	for _, key := range cfg.Notifications.IFTTT.WebhookKeys {
		u := c.baseURL + "/trigger/" + url.PathEscape(event) + "/with/key/" + url.PathEscape(key)
		if _, err := fetcher.DoJSON(ctx, c.fetcher, http.MethodPost, u, nil, values{Value1: msg.Text, Value2: msg.HTML}); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	return errs
}
