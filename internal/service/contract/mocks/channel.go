package mocks

import (
	"context"

	"github.com/darkkaiser/tgtg-watcher/internal/config"
	"github.com/darkkaiser/tgtg-watcher/internal/service/contract"
	"github.com/stretchr/testify/mock"
)

// MockChannel contract.Channel의 Mock 구현체입니다.
type MockChannel struct {
	mock.Mock

	KindValue contract.ChannelKind
}

func (m *MockChannel) Kind() contract.ChannelKind {
	return m.KindValue
}

func (m *MockChannel) Enabled(cfg *config.AppConfig) bool {
	args := m.Called(cfg)
	return args.Bool(0)
}

func (m *MockChannel) Send(ctx context.Context, cfg *config.AppConfig, msg contract.Message) error {
	args := m.Called(ctx, cfg, msg)
	return args.Error(0)
}

// MockSessionChannel 세션 상태를 가지는 채널(텔레그램)의 Mock 구현체입니다.
type MockSessionChannel struct {
	MockChannel
}

func (m *MockSessionChannel) HasActiveSessions(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

// MockSnapshotSource contract.SnapshotSource의 Mock 구현체입니다.
type MockSnapshotSource struct {
	mock.Mock
}

func (m *MockSnapshotSource) FetchFavorites(ctx context.Context, cfg *config.AppConfig) ([]contract.Listing, error) {
	args := m.Called(ctx, cfg)
	if v := args.Get(0); v != nil {
		return v.([]contract.Listing), args.Error(1)
	}
	return nil, args.Error(1)
}
