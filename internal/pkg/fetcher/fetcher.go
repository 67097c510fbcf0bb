// Package fetcher 외부 API 호출에 사용하는 HTTP 클라이언트와 미들웨어를 제공합니다.
package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	apperrors "github.com/darkkaiser/tgtg-watcher/internal/pkg/errors"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "tgtg-watcher"

	// maxResponseBytes 응답 본문의 최대 크기입니다.
	maxResponseBytes = 10 << 20
)

// Fetcher HTTP 요청을 수행하는 인터페이스입니다.
type Fetcher interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPFetcher 타임아웃과 기본 User-Agent가 적용된 HTTP 클라이언트입니다.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

// NewHTTPFetcher HTTPFetcher를 생성합니다. timeout이 0 이하이면 30초를 사용합니다.
func NewHTTPFetcher(timeout time.Duration, userAgent string) *HTTPFetcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return &HTTPFetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Client 내부 http.Client를 반환합니다. (텔레그램 봇 등 외부 라이브러리에 전달할 때 사용)
func (h *HTTPFetcher) Client() *http.Client {
	return h.client
}

// Do 요청 헤더에 User-Agent가 없으면 기본값을 추가하여 요청을 수행합니다.
func (h *HTTPFetcher) Do(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", h.userAgent)
	}
	return h.client.Do(req)
}

// DoJSON body를 JSON으로 인코딩하여 요청하고, 2xx 응답의 본문을 반환합니다.
// body가 nil이면 본문 없이 요청합니다.
func DoJSON(ctx context.Context, f Fetcher, method, url string, header http.Header, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.Internal, "요청 본문을 JSON으로 변환하는데 실패했습니다")
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.Internal, "HTTP 요청 생성에 실패했습니다 (URL: %s)", redactURL(url))
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}

	resp, err := f.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, apperrors.Wrapf(err, apperrors.Timeout, "HTTP 요청이 취소되었거나 시간이 초과되었습니다 (URL: %s)", redactURL(url))
		}
		return nil, apperrors.Wrapf(err, apperrors.Unavailable, "HTTP 요청 전송 중 에러가 발생했습니다 (URL: %s)", redactURL(url))
	}
	defer resp.Body.Close()

	if err := CheckResponseStatus(resp); err != nil {
		return nil, err
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.Unavailable, "응답 본문을 읽는 중 에러가 발생했습니다 (URL: %s)", redactURL(url))
	}

	return b, nil
}
