package telegram

import (
	"context"
	"strings"

	applog "github.com/darkkaiser/tgtg-watcher/pkg/log"
)

const (
	commandStart = "start"
	commandStop  = "stop"
	commandHelp  = "help"
)

const (
	replyStart   = "찜 목록의 재고가 바뀌면 알려드립니다.\n구독을 해지하려면 /stop 을 입력하세요."
	replyStop    = "알림 구독을 해지했습니다.\n다시 받으려면 /start 를 입력하세요."
	replyHelp    = "/start - 재고 변경 알림 구독\n/stop - 알림 구독 해지\n/help - 도움말"
	replyUnknown = "알 수 없는 명령어입니다.\n\n" + replyHelp
)

// handleCommand 봇 명령어를 처리하고 결과를 회신합니다.
func (c *Channel) handleCommand(ctx context.Context, chatID int64, command string) {
	var reply string

	switch strings.ToLower(command) {
	case commandStart:
		c.mu.Lock()
		c.chats[chatID] = struct{}{}
		c.mu.Unlock()
		reply = replyStart

	case commandStop:
		c.mu.Lock()
		delete(c.chats, chatID)
		c.mu.Unlock()
		reply = replyStop

	case commandHelp:
		reply = replyHelp

	default:
		reply = replyUnknown
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"chat_id": chatID,
		"command": command,
	}).Info("텔레그램 봇 명령어 수신")

	c.mu.RLock()
	cl := c.client
	c.mu.RUnlock()
	if cl == nil {
		return
	}

	if err := c.sendHTML(ctx, cl, chatID, reply); err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"chat_id": chatID,
		}).WithError(err).Warn("명령어 응답 전송 실패")
	}
}
