package watch

import (
	"context"
	"sync"

	"github.com/darkkaiser/tgtg-watcher/internal/config"
	"github.com/darkkaiser/tgtg-watcher/internal/service/contract"
)

func price(minor int64) *int64 {
	return &minor
}

func listing(id string, stock int) contract.Listing {
	return contract.Listing{
		ID:              id,
		DisplayName:     "Store " + id,
		ItemsAvailable:  stock,
		PriceMinorUnits: price(350),
	}
}

func snapshotOf(listings ...contract.Listing) contract.Snapshot {
	return contract.NewSnapshot(listings)
}

// fakeChannel 전송 내역을 기록하는 테스트용 채널
type fakeChannel struct {
	kind    contract.ChannelKind
	enabled bool
	err     error
	panics  bool

	sessions    *bool
	sessionsErr error

	mu   sync.Mutex
	sent []contract.Message
}

func (f *fakeChannel) Kind() contract.ChannelKind { return f.kind }

func (f *fakeChannel) Enabled(*config.AppConfig) bool { return f.enabled }

func (f *fakeChannel) Send(_ context.Context, _ *config.AppConfig, msg contract.Message) error {
	if f.panics {
		panic("boom")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.sent = append(f.sent, msg)
	return f.err
}

func (f *fakeChannel) Sent() []contract.Message {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]contract.Message(nil), f.sent...)
}

// fakeSessionChannel 활성 세션 상태를 가지는 테스트용 채널
type fakeSessionChannel struct {
	fakeChannel
}

func (f *fakeSessionChannel) HasActiveSessions(context.Context) (bool, error) {
	if f.sessionsErr != nil {
		return false, f.sessionsErr
	}
	return f.sessions != nil && *f.sessions, nil
}

type staticProvider struct {
	cfg *config.AppConfig
}

func (p staticProvider) Current() *config.AppConfig { return p.cfg }
