// Package telegram 텔레그램 봇으로 알림을 전송하는 채널을 제공합니다.
//
// 채팅방은 /start 명령으로 구독하고 /stop 명령으로 구독을 해지합니다.
// 구독 중인 채팅방(세션)이 하나라도 있으면 감시가 계속됩니다.
package telegram

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/darkkaiser/tgtg-watcher/internal/config"
	apperrors "github.com/darkkaiser/tgtg-watcher/internal/pkg/errors"
	"github.com/darkkaiser/tgtg-watcher/internal/pkg/fetcher"
	"github.com/darkkaiser/tgtg-watcher/internal/service/contract"
	applog "github.com/darkkaiser/tgtg-watcher/pkg/log"
	"github.com/darkkaiser/tgtg-watcher/pkg/strutil"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"
)

const component = "notification.channel.telegram"

const (
	// messageMaxLength 텔레그램 메시지 한 건의 최대 길이
	messageMaxLength = 4096

	// pollingTimeout Long Polling 대기 시간(초). HTTP 클라이언트 타임아웃은 이보다 길어야 합니다.
	pollingTimeout    = 60
	httpClientTimeout = 90 * time.Second

	// 텔레그램 API 정책(초당 약 30건)을 넘지 않도록 전송 속도를 제한합니다.
	sendRateLimit = 25
	sendRateBurst = 5
)

// ErrNotStarted 봇이 시작되지 않은 상태에서 전송을 시도할 때 반환됩니다.
var ErrNotStarted = apperrors.New(apperrors.Unavailable, "텔레그램 봇이 시작되지 않았습니다")

// client 텔레그램 봇 API와의 통신을 추상화한 인터페이스입니다.
type client interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	StopReceivingUpdates()
}

type newClientFunc func(botToken string, debug bool) (client, error)

func newBotClient(botToken string, debug bool) (client, error) {
	httpClient := fetcher.NewHTTPFetcher(httpClientTimeout, "").Client()

	bot, err := tgbotapi.NewBotAPIWithClient(botToken, tgbotapi.APIEndpoint, httpClient)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, "텔레그램 봇 API 클라이언트 초기화에 실패했습니다. bot_token이 올바른지 확인해 주세요")
	}
	bot.Debug = debug

	return bot, nil
}

// Channel 텔레그램 채널. 봇 명령어를 수신하는 백그라운드 서비스이기도 합니다.
type Channel struct {
	botToken    string
	seedChatIDs []int64
	debug       bool

	newClient newClientFunc
	limiter   *rate.Limiter

	mu     sync.RWMutex
	client client
	chats  map[int64]struct{}
}

// New 시작 시점의 설정으로 텔레그램 채널을 생성합니다.
// 봇 토큰과 초기 구독 채팅방은 Start 시점에만 반영됩니다.
func New(cfg *config.AppConfig) *Channel {
	return newWithClient(cfg, newBotClient)
}

func newWithClient(cfg *config.AppConfig, newClient newClientFunc) *Channel {
	tc := cfg.Notifications.Telegram
	return &Channel{
		botToken:    tc.BotToken,
		seedChatIDs: slices.Clone(tc.ChatIDs),
		debug:       cfg.Debug,
		newClient:   newClient,
		limiter:     rate.NewLimiter(rate.Limit(sendRateLimit), sendRateBurst),
		chats:       make(map[int64]struct{}),
	}
}

func (c *Channel) Kind() contract.ChannelKind { return contract.ChannelTelegram }

func (c *Channel) Enabled(cfg *config.AppConfig) bool {
	return cfg.Notifications.Telegram.Enabled
}

// HasActiveSessions 봇이 실행 중이고 구독 중인 채팅방이 하나라도 있는지 반환합니다.
func (c *Channel) HasActiveSessions(_ context.Context) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.client != nil && len(c.chats) > 0, nil
}

// Start 봇을 초기화하고 명령어 수신을 시작합니다. 봇 토큰이 없으면 아무것도 하지 않습니다.
func (c *Channel) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	if c.botToken == "" {
		serviceStopWG.Done()
		applog.WithComponent(component).Info("텔레그램 봇 토큰이 설정되지 않아 텔레그램 채널을 시작하지 않습니다")
		return nil
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"bot_token":  strutil.Mask(c.botToken),
		"chat_count": len(c.seedChatIDs),
	}).Info("텔레그램 봇 초기화 시작")

	cl, err := c.newClient(c.botToken, c.debug)
	if err != nil {
		serviceStopWG.Done()
		return err
	}

	c.mu.Lock()
	if c.client != nil {
		c.mu.Unlock()
		serviceStopWG.Done()
		applog.WithComponent(component).Warn("텔레그램 봇이 이미 실행 중입니다 (중복 호출)")
		return nil
	}
	c.client = cl
	for _, id := range c.seedChatIDs {
		c.chats[id] = struct{}{}
	}
	c.mu.Unlock()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = pollingTimeout
	updateC := cl.GetUpdatesChan(u)

	go func() {
		defer serviceStopWG.Done()

		c.receive(serviceStopCtx, updateC)

		cl.StopReceivingUpdates()

		c.mu.Lock()
		c.client = nil
		c.mu.Unlock()

		applog.WithComponent(component).Info("텔레그램 봇 종료 완료")
	}()

	return nil
}

func (c *Channel) receive(ctx context.Context, updateC tgbotapi.UpdatesChannel) {
	for {
		select {
		case update, ok := <-updateC:
			if !ok {
				applog.WithComponent(component).Error("Long Polling 채널이 닫혀 명령어 수신을 종료합니다")
				return
			}
			if update.Message == nil || !update.Message.IsCommand() || update.Message.Chat == nil {
				continue
			}
			c.handleCommand(ctx, update.Message.Chat.ID, update.Message.Command())

		case <-ctx.Done():
			return
		}
	}
}

// Send 구독 중인 모든 채팅방에 HTML 문구를 전송합니다. 길이 제한을 넘으면 나누어 보냅니다.
func (c *Channel) Send(ctx context.Context, _ *config.AppConfig, msg contract.Message) error {
	c.mu.RLock()
	cl := c.client
	chatIDs := make([]int64, 0, len(c.chats))
	for id := range c.chats {
		chatIDs = append(chatIDs, id)
	}
	c.mu.RUnlock()

	if cl == nil {
		return ErrNotStarted
	}
	slices.Sort(chatIDs)

	chunks := strutil.SplitByLength(msg.HTML, messageMaxLength)

	var errs error
	for _, chatID := range chatIDs {
		for _, chunk := range chunks {
			if err := c.sendHTML(ctx, cl, chatID, chunk); err != nil {
				errs = errors.Join(errs, err)
				break
			}
		}
	}
	return errs
}

func (c *Channel) sendHTML(ctx context.Context, cl client, chatID int64, text string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return apperrors.Wrap(err, apperrors.Timeout, "텔레그램 전송 대기 중 Context가 종료되었습니다")
	}

	m := tgbotapi.NewMessage(chatID, text)
	m.ParseMode = tgbotapi.ModeHTML
	m.DisableWebPagePreview = true

	if _, err := cl.Send(m); err != nil {
		return apperrors.Wrapf(err, apperrors.Unavailable, "텔레그램 메시지 전송에 실패했습니다 (chat_id=%d)", chatID)
	}
	return nil
}
