package watch

import (
	"context"
	"errors"
	"testing"

	"github.com/darkkaiser/tgtg-watcher/internal/config"
	"github.com/darkkaiser/tgtg-watcher/internal/service/contract"
	"github.com/darkkaiser/tgtg-watcher/internal/service/contract/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func boolPtr(b bool) *bool { return &b }

func TestGate_ShouldObserve(t *testing.T) {
	t.Parallel()

	cfg := config.NewDefaultConfig()

	staticChannels := func(enabled bool) []contract.Channel {
		return []contract.Channel{
			&fakeChannel{kind: contract.ChannelConsole, enabled: enabled},
			&fakeChannel{kind: contract.ChannelDesktop},
			&fakeChannel{kind: contract.ChannelIFTTT},
			&fakeChannel{kind: contract.ChannelGotify},
			&fakeChannel{kind: contract.ChannelMail},
			&fakeChannel{kind: contract.ChannelWebhook},
		}
	}

	tests := []struct {
		name     string
		channels []contract.Channel
		want     bool
		wantErr  bool
	}{
		{
			name:     "All flags false, telegram sessions active",
			channels: append(staticChannels(false), &fakeSessionChannel{fakeChannel{kind: contract.ChannelTelegram, sessions: boolPtr(true)}}),
			want:     true,
		},
		{
			name:     "All flags false, no sessions",
			channels: append(staticChannels(false), &fakeSessionChannel{fakeChannel{kind: contract.ChannelTelegram, sessions: boolPtr(false)}}),
			want:     false,
		},
		{
			name: "Telegram enabled flag alone does not count",
			channels: append(staticChannels(false), &fakeSessionChannel{fakeChannel{
				kind: contract.ChannelTelegram, enabled: true, sessions: boolPtr(false),
			}}),
			want: false,
		},
		{
			name:     "One static flag true",
			channels: append(staticChannels(true), &fakeSessionChannel{fakeChannel{kind: contract.ChannelTelegram}}),
			want:     true,
		},
		{
			name: "Session check failure is treated as inactive",
			channels: append(staticChannels(true), &fakeSessionChannel{fakeChannel{
				kind: contract.ChannelTelegram, sessionsErr: errors.New("bot unavailable"),
			}}),
			want:    true,
			wantErr: true,
		},
		{
			name:     "No channels",
			channels: nil,
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := NewGate(tt.channels).ShouldObserve(context.Background(), cfg)

			assert.Equal(t, tt.want, got)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGate_SessionTrackerIgnoresEnabledFlag(t *testing.T) {
	t.Parallel()

	cfg := config.NewDefaultConfig()
	cfg.Notifications.Console.Enabled = false

	tracker := &mocks.MockSessionChannel{MockChannel: mocks.MockChannel{KindValue: contract.ChannelTelegram}}
	tracker.On("HasActiveSessions", mock.Anything).Return(false, nil).Once()

	observe, err := NewGate([]contract.Channel{tracker}).ShouldObserve(context.Background(), cfg)

	assert.NoError(t, err)
	assert.False(t, observe)
	tracker.AssertExpectations(t)
	tracker.AssertNotCalled(t, "Enabled", mock.Anything)
}
