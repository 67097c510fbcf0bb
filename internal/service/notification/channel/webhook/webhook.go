// Package webhook 변경 내용과 원본 상품 데이터를 사용자 지정 URL로 POST 하는 채널을 제공합니다.
package webhook

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/darkkaiser/tgtg-watcher/internal/config"
	apperrors "github.com/darkkaiser/tgtg-watcher/internal/pkg/errors"
	"github.com/darkkaiser/tgtg-watcher/internal/pkg/fetcher"
	"github.com/darkkaiser/tgtg-watcher/internal/service/contract"
	"github.com/google/uuid"
)

// payload 웹훅 요청 본문
type payload struct {
	TextMessage string            `json:"textMessage"`
	HTMLMessage string            `json:"htmlMessage"`
	Raw         []json.RawMessage `json:"raw"`
}

type changes struct {
	PreviousStock int    `json:"previousStock"`
	CurrentStock  int    `json:"currentStock"`
	Reason        string `json:"reason"`
}

// Channel 웹훅 채널
type Channel struct {
	fetcher fetcher.Fetcher
}

// New 웹훅 채널을 생성합니다.
func New(f fetcher.Fetcher) *Channel {
	return &Channel{fetcher: f}
}

func (c *Channel) Kind() contract.ChannelKind { return contract.ChannelWebhook }

func (c *Channel) Enabled(cfg *config.AppConfig) bool {
	return cfg.Notifications.Webhook.Enabled
}

func (c *Channel) Send(ctx context.Context, cfg *config.AppConfig, msg contract.Message) error {
	raw, err := buildRaw(msg.Changes)
	if err != nil {
		return err
	}

	header := http.Header{}
	header.Set("X-Request-ID", uuid.NewString())
	if key := cfg.Notifications.Webhook.Key; key != "" {
		header.Set("Authorization", key)
	}

	_, err = fetcher.DoJSON(ctx, c.fetcher, http.MethodPost, cfg.Notifications.Webhook.URL, header, payload{
		TextMessage: msg.Text,
		HTMLMessage: msg.HTML,
		Raw:         raw,
	})
	return err
}

// buildRaw 상품의 원본 JSON 객체에 changes 필드를 추가한 목록을 만듭니다.
// 원본 JSON이 없으면 상품 ID, 이름, 재고 수량만 담은 객체를 사용합니다.
func buildRaw(list []contract.Change) ([]json.RawMessage, error) {
	raw := make([]json.RawMessage, 0, len(list))
	for _, c := range list {
		obj := map[string]any{}
		if len(c.Listing.Raw) > 0 {
			if err := json.Unmarshal(c.Listing.Raw, &obj); err != nil {
				return nil, apperrors.Wrapf(err, apperrors.ParsingFailed, "상품의 원본 데이터가 JSON 객체가 아닙니다 (item_id=%s)", c.Listing.ID)
			}
		} else {
			obj["item"] = map[string]any{"item_id": c.Listing.ID}
			obj["display_name"] = c.Listing.DisplayName
			obj["items_available"] = c.Listing.ItemsAvailable
		}

		obj["changes"] = changes{
			PreviousStock: c.PreviousStock,
			CurrentStock:  c.CurrentStock,
			Reason:        c.Category.String(),
		}

		b, err := json.Marshal(obj)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.Internal, "웹훅 본문 생성에 실패했습니다")
		}
		raw = append(raw, b)
	}
	return raw, nil
}
