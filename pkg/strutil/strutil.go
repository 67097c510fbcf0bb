// Package strutil 알림 메시지와 설정 값 처리에 사용하는 문자열 유틸리티를 제공합니다.
package strutil

import (
	"strings"
	"unicode/utf8"
)

// SplitAndTrim 구분자로 분리한 뒤 공백을 제거하고 빈 항목을 제외합니다.
// 결과가 없으면 nil을 반환합니다.
//
//	"a, , b,c" -> ["a", "b", "c"]
func SplitAndTrim(s, sep string) []string {
	var result []string
	for token := range strings.SplitSeq(s, sep) {
		if token = strings.TrimSpace(token); token != "" {
			result = append(result, token)
		}
	}

	return result
}

// Mask 토큰, API 키 등 민감한 값을 로그에 남길 수 있도록 가립니다.
func Mask(data string) string {
	switch {
	case data == "":
		return ""
	case len(data) <= 3:
		return "***"
	case len(data) <= 12:
		return data[:4] + "***"
	default:
		return data[:4] + "***" + data[len(data)-4:]
	}
}

// SplitByLength 메시지를 최대 길이(rune 기준) 이하의 조각으로 나눕니다.
// 가능하면 빈 줄(문단) 경계에서 자르고, 한 문단이 한도를 넘으면 줄 단위로, 그래도 넘으면 강제로 자릅니다.
func SplitByLength(message string, limit int) []string {
	if message == "" {
		return nil
	}
	if limit <= 0 || utf8.RuneCountInString(message) <= limit {
		return []string{message}
	}

	var chunks []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
		}
	}

	appendPart := func(part, joiner string) {
		if current.Len() > 0 && utf8.RuneCountInString(current.String())+utf8.RuneCountInString(joiner)+utf8.RuneCountInString(part) > limit {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString(joiner)
		}
		current.WriteString(part)
	}

	for _, paragraph := range strings.Split(message, "\n\n") {
		if utf8.RuneCountInString(paragraph) <= limit {
			appendPart(paragraph, "\n\n")
			continue
		}

		flush()
		for _, line := range strings.Split(paragraph, "\n") {
			for utf8.RuneCountInString(line) > limit {
				flush()
				runes := []rune(line)
				chunks = append(chunks, string(runes[:limit]))
				line = string(runes[limit:])
			}
			appendPart(line, "\n")
		}
		flush()
	}
	flush()

	return chunks
}
