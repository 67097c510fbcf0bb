package mail

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/darkkaiser/tgtg-watcher/internal/config"
	apperrors "github.com/darkkaiser/tgtg-watcher/internal/pkg/errors"
	"github.com/darkkaiser/tgtg-watcher/internal/service/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomail "github.com/wneessen/go-mail"
)

func newTestConfig() *config.AppConfig {
	cfg := config.NewDefaultConfig()
	cfg.Notifications.Mail = config.MailConfig{
		Enabled:         true,
		Host:            "smtp.example.com",
		Port:            587,
		SenderAddress:   "watcher@example.com",
		ReceiverAddress: "me@example.com",
		Subject:         "stock changed",
	}
	return cfg
}

func TestChannel_Send(t *testing.T) {
	var sent bytes.Buffer
	var gotHost string

	c := &Channel{send: func(_ context.Context, mc config.MailConfig, m *gomail.Msg) error {
		gotHost = mc.Host
		_, err := m.WriteTo(&sent)
		return err
	}}

	err := c.Send(context.Background(), newTestConfig(), contract.Message{Text: "plain body", HTML: "<b>html body</b>"})
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com", gotHost)
	out := sent.String()
	assert.Contains(t, out, "Subject: stock changed")
	assert.Contains(t, out, "<me@example.com>")
	assert.Contains(t, out, "<watcher@example.com>")
	assert.Contains(t, out, "text/plain")
	assert.Contains(t, out, "text/html")
	assert.Contains(t, out, "plain body")
}

func TestChannel_Send_Errors(t *testing.T) {
	t.Run("잘못된 수신자 주소", func(t *testing.T) {
		cfg := newTestConfig()
		cfg.Notifications.Mail.ReceiverAddress = "not an address"

		c := &Channel{send: func(context.Context, config.MailConfig, *gomail.Msg) error { return nil }}
		err := c.Send(context.Background(), cfg, contract.Message{Text: "x"})
		assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
	})

	t.Run("SMTP 전송 실패", func(t *testing.T) {
		c := &Channel{send: func(context.Context, config.MailConfig, *gomail.Msg) error { return errors.New("connection refused") }}
		err := c.Send(context.Background(), newTestConfig(), contract.Message{Text: "x"})
		assert.True(t, apperrors.Is(err, apperrors.Unavailable))
	})
}

func TestChannel_Enabled(t *testing.T) {
	cfg := newTestConfig()
	c := New()

	assert.Equal(t, contract.ChannelMail, c.Kind())
	assert.True(t, c.Enabled(cfg))

	cfg.Notifications.Mail.Enabled = false
	assert.False(t, c.Enabled(cfg))
}
