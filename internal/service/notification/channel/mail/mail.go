// Package mail SMTP로 텍스트 본문과 HTML 대체 본문을 가진 메일을 보내는 채널을 제공합니다.
package mail

import (
	"context"

	"github.com/darkkaiser/tgtg-watcher/internal/config"
	apperrors "github.com/darkkaiser/tgtg-watcher/internal/pkg/errors"
	"github.com/darkkaiser/tgtg-watcher/internal/service/contract"
	gomail "github.com/wneessen/go-mail"
)

// DefaultSubject 제목이 설정되지 않았을 때 사용하는 메일 제목
const DefaultSubject = "Futterstatus geändert"

// sendFunc 완성된 메시지를 SMTP 서버로 전송합니다.
type sendFunc func(ctx context.Context, cfg config.MailConfig, m *gomail.Msg) error

// Channel 메일 채널
type Channel struct {
	send sendFunc
}

// New go-mail 클라이언트로 전송하는 메일 채널을 생성합니다.
func New() *Channel {
	return &Channel{send: dialAndSend}
}

func (c *Channel) Kind() contract.ChannelKind { return contract.ChannelMail }

func (c *Channel) Enabled(cfg *config.AppConfig) bool {
	return cfg.Notifications.Mail.Enabled
}

func (c *Channel) Send(ctx context.Context, cfg *config.AppConfig, msg contract.Message) error {
	mc := cfg.Notifications.Mail

	m, err := newMessage(mc, msg)
	if err != nil {
		return err
	}

	if err := c.send(ctx, mc, m); err != nil {
		return apperrors.Wrapf(err, apperrors.Unavailable, "메일 전송에 실패했습니다 (host=%s, port=%d)", mc.Host, mc.Port)
	}
	return nil
}

func newMessage(mc config.MailConfig, msg contract.Message) (*gomail.Msg, error) {
	m := gomail.NewMsg()
	if err := m.From(mc.SenderAddress); err != nil {
		return nil, apperrors.Wrapf(err, apperrors.InvalidInput, "발신자 주소가 올바르지 않습니다 (%s)", mc.SenderAddress)
	}
	if err := m.To(mc.ReceiverAddress); err != nil {
		return nil, apperrors.Wrapf(err, apperrors.InvalidInput, "수신자 주소가 올바르지 않습니다 (%s)", mc.ReceiverAddress)
	}

	subject := mc.Subject
	if subject == "" {
		subject = DefaultSubject
	}
	m.Subject(subject)

	m.SetBodyString(gomail.TypeTextPlain, msg.Text)
	if msg.HTML != "" {
		m.AddAlternativeString(gomail.TypeTextHTML, msg.HTML)
	}

	return m, nil
}

func dialAndSend(ctx context.Context, mc config.MailConfig, m *gomail.Msg) error {
	opts := []gomail.Option{gomail.WithPort(mc.Port)}
	if mc.Secure {
		opts = append(opts, gomail.WithSSL())
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSOpportunistic))
	}
	if mc.Auth.User != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(mc.Auth.User),
			gomail.WithPassword(mc.Auth.Pass),
		)
	}

	client, err := gomail.NewClient(mc.Host, opts...)
	if err != nil {
		return err
	}

	return client.DialAndSendWithContext(ctx, m)
}
