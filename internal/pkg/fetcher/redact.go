package fetcher

import (
	"net/url"
	"slices"
	"strings"

	"github.com/darkkaiser/tgtg-watcher/pkg/strutil"
)

// redactedPassword url.UserPassword가 이스케이프하지 않는 임시 값으로 치환한 뒤, 문자열로 만든 다음 "***"로 바꾼다.
const redactedPassword = "REDACTED"

var sensitiveQueryKeys = []string{"token", "key", "secret", "password", "access_token", "refresh_token", "api_key", "apikey"}

// redactURL 로그와 에러 메시지에 남기기 전에 URL의 비밀번호와 민감한 쿼리 값을 가립니다.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "***"
	}

	if u.User != nil {
		if _, hasPassword := u.User.Password(); hasPassword {
			u.User = url.UserPassword(u.User.Username(), redactedPassword)
		}
	}

	q := u.Query()
	changed := false
	for key, values := range q {
		if slices.Contains(sensitiveQueryKeys, strings.ToLower(key)) {
			for i := range values {
				values[i] = strutil.Mask(values[i])
			}
			changed = true
		}
	}
	if changed {
		u.RawQuery = q.Encode()
	}

	return strings.Replace(u.String(), ":"+redactedPassword+"@", ":***@", 1)
}
