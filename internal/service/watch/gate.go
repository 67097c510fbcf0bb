package watch

import (
	"context"

	"github.com/darkkaiser/tgtg-watcher/internal/config"
	"github.com/darkkaiser/tgtg-watcher/internal/service/contract"
	"golang.org/x/sync/errgroup"
)

// Gate 알림을 받을 채널이 하나라도 있는지 판단하여 조회 여부를 결정합니다.
type Gate struct {
	channels []contract.Channel
}

// NewGate 판단 대상 채널 목록으로 Gate를 생성합니다.
func NewGate(channels []contract.Channel) *Gate {
	return &Gate{channels: channels}
}

// ShouldObserve 매 주기마다 다시 계산됩니다.
//
// 일반 채널은 활성화 플래그로, 세션을 관리하는 채널(SessionTracker)은 활성 세션 존재 여부로 판단하며
// 모든 채널을 독립적으로 평가한 뒤 마지막에 OR로 결합합니다.
// 세션 확인이 실패한 채널은 false로 간주하고, 결과와 함께 첫 번째 에러를 반환합니다.
func (g *Gate) ShouldObserve(ctx context.Context, cfg *config.AppConfig) (bool, error) {
	results := make([]bool, len(g.channels))

	var eg errgroup.Group
	for i, ch := range g.channels {
		eg.Go(func() error {
			if tracker, ok := ch.(contract.SessionTracker); ok {
				active, err := tracker.HasActiveSessions(ctx)
				if err != nil {
					return err
				}
				results[i] = active
				return nil
			}

			results[i] = ch.Enabled(cfg)
			return nil
		})
	}
	err := eg.Wait()

	for _, r := range results {
		if r {
			return true, err
		}
	}
	return false, err
}
