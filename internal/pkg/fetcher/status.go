package fetcher

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	apperrors "github.com/darkkaiser/tgtg-watcher/internal/pkg/errors"
)

const maxBodySnippet = 1024

// HTTPStatusError 2xx가 아닌 응답을 받았을 때 반환되는 에러입니다.
//
//	var statusErr *fetcher.HTTPStatusError
//	if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusUnauthorized {
//	    // 토큰 갱신
//	}
type HTTPStatusError struct {
	StatusCode  int
	Status      string
	URL         string // 민감한 쿼리 값은 마스킹됨
	BodySnippet string

	Cause error
}

func (e *HTTPStatusError) Error() string {
	msg := fmt.Sprintf("HTTP %d (%s) URL: %s", e.StatusCode, e.Status, e.URL)
	if e.BodySnippet != "" {
		msg += ", Body: " + e.BodySnippet
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	return msg
}

func (e *HTTPStatusError) Unwrap() error {
	return e.Cause
}

// CheckResponseStatus 2xx 응답이 아니면 상태 코드에 맞는 에러 타입의 HTTPStatusError를 반환합니다.
//
//   - 401, 403: Unauthorized
//   - 404: NotFound
//   - 429, 5xx: Unavailable
//   - 그 외: ExecutionFailed
func CheckResponseStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	errType := apperrors.ExecutionFailed
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		errType = apperrors.Unauthorized
	case resp.StatusCode == http.StatusNotFound:
		errType = apperrors.NotFound
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		errType = apperrors.Unavailable
	}

	url := ""
	if resp.Request != nil && resp.Request.URL != nil {
		url = redactURL(resp.Request.URL.String())
	}

	return &HTTPStatusError{
		StatusCode:  resp.StatusCode,
		Status:      resp.Status,
		URL:         url,
		BodySnippet: readSnippet(resp.Body),
		Cause:       apperrors.New(errType, "HTTP 요청이 실패했습니다"),
	}
}

func readSnippet(body io.Reader) string {
	if body == nil {
		return ""
	}

	b, _ := io.ReadAll(io.LimitReader(body, maxBodySnippet))
	s := strings.TrimSpace(string(b))
	for !utf8.ValidString(s) && len(s) > 0 {
		s = s[:len(s)-1]
	}
	return s
}
