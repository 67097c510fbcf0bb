package fetcher

import (
	"net/http"

	apperrors "github.com/darkkaiser/tgtg-watcher/internal/pkg/errors"
	"golang.org/x/time/rate"
)

// RateLimitedFetcher 초당 요청 수를 제한하는 미들웨어입니다.
type RateLimitedFetcher struct {
	delegate Fetcher
	limiter  *rate.Limiter
}

// NewRateLimitedFetcher requestsPerSecond가 0 이하이면 제한하지 않습니다.
func NewRateLimitedFetcher(delegate Fetcher, requestsPerSecond float64) *RateLimitedFetcher {
	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}

	return &RateLimitedFetcher{
		delegate: delegate,
		limiter:  rate.NewLimiter(limit, 1),
	}
}

// Do 요청 Context가 허용하는 범위 안에서 토큰을 기다린 뒤 요청을 수행합니다.
func (f *RateLimitedFetcher) Do(req *http.Request) (*http.Response, error) {
	if err := f.limiter.Wait(req.Context()); err != nil {
		return nil, apperrors.Wrap(err, apperrors.Timeout, "요청 제한 대기 중 Context가 종료되었습니다")
	}
	return f.delegate.Do(req)
}
