package notification

import (
	"testing"

	"github.com/darkkaiser/tgtg-watcher/internal/config"
	"github.com/darkkaiser/tgtg-watcher/internal/service/contract"
	"github.com/darkkaiser/tgtg-watcher/internal/service/contract/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultFactory_CreatesEveryChannel(t *testing.T) {
	channels := NewDefaultFactory().Create(config.NewDefaultConfig())

	var kinds []contract.ChannelKind
	for _, ch := range channels.All {
		kinds = append(kinds, ch.Kind())
	}

	assert.Equal(t, []contract.ChannelKind{
		contract.ChannelConsole,
		contract.ChannelDesktop,
		contract.ChannelMail,
		contract.ChannelTelegram,
		contract.ChannelIFTTT,
		contract.ChannelGotify,
		contract.ChannelWebhook,
	}, kinds)

	require.NotNil(t, channels.Telegram)
	_, ok := any(channels.Telegram).(contract.SessionTracker)
	assert.True(t, ok, "텔레그램 채널은 세션 상태를 제공해야 합니다")
}

func TestFactory_Register(t *testing.T) {
	f := NewFactory()
	f.Register(nil)
	f.Register(func(*config.AppConfig, Deps) contract.Channel { return nil })

	custom := &mocks.MockChannel{KindValue: contract.ChannelWebhook}
	custom.On("Enabled", mock.Anything).Return(true)
	f.Register(func(_ *config.AppConfig, d Deps) contract.Channel {
		assert.NotNil(t, d.Fetcher)
		return custom
	})

	channels := f.Create(config.NewDefaultConfig())

	assert.Equal(t, []contract.Channel{custom}, channels.All)
	assert.Nil(t, channels.Telegram)
}
