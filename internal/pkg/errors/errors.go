// Package errors 애플리케이션 전용 에러 타입을 제공합니다.
//
// 모든 에러는 ErrorType으로 분류되며 Wrap으로 컨텍스트를 누적할 수 있습니다.
//
//	if err != nil {
//	    return errors.Wrap(err, errors.ExecutionFailed, "찜 목록 조회 실패")
//	}
//
//	if errors.Is(err, errors.Unauthorized) {
//	    // 토큰 갱신 후 재시도
//	}
package errors

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
)

// AppError 애플리케이션에서 발생하는 에러를 표준화하여 표현합니다.
type AppError struct {
	errType ErrorType
	message string
	cause   error
	caller  string // 에러가 생성된 위치 (file:line)
}

// Type 에러의 타입을 반환합니다.
func (e *AppError) Type() ErrorType {
	return e.errType
}

// Message 에러 메시지를 반환합니다.
func (e *AppError) Message() string {
	return e.message
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.errType, e.message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.errType, e.message)
}

func (e *AppError) Unwrap() error {
	return e.cause
}

// Format %+v 사용 시 생성 위치와 원인 체인을 함께 출력합니다.
func (e *AppError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			fmt.Fprintf(s, "[%s] %s", e.errType, e.message)
			if e.caller != "" {
				fmt.Fprintf(s, " (%s)", e.caller)
			}
			if e.cause != nil {
				fmt.Fprint(s, "\nCaused by: ")
				if f, ok := e.cause.(fmt.Formatter); ok {
					f.Format(s, verb)
				} else {
					fmt.Fprintf(s, "%v", e.cause)
				}
			}
			return
		}
		fallthrough
	case 's':
		_, _ = io.WriteString(s, e.Error())
	case 'q':
		fmt.Fprintf(s, "%q", e.Error())
	}
}

func caller() string {
	// 0: caller, 1: New/Wrap 등, 2: 실제 호출 지점
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}

// New 새로운 AppError를 생성합니다.
func New(errType ErrorType, message string) error {
	return &AppError{errType: errType, message: message, caller: caller()}
}

// Newf 포맷 문자열로 새로운 AppError를 생성합니다.
func Newf(errType ErrorType, format string, args ...any) error {
	return &AppError{errType: errType, message: fmt.Sprintf(format, args...), caller: caller()}
}

// Wrap 기존 에러를 감싸 컨텍스트를 추가합니다. err가 nil이면 nil을 반환합니다.
func Wrap(err error, errType ErrorType, message string) error {
	if err == nil {
		return nil
	}
	return &AppError{errType: errType, message: message, cause: err, caller: caller()}
}

// Wrapf 포맷 문자열로 기존 에러를 감쌉니다. err가 nil이면 nil을 반환합니다.
func Wrapf(err error, errType ErrorType, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &AppError{errType: errType, message: fmt.Sprintf(format, args...), cause: err, caller: caller()}
}

// walk 에러 트리를 깊이 우선으로 순회합니다. errors.Join 등으로 결합된 에러는 각 가지를 차례로 방문하며,
// visit이 true를 반환하면 즉시 순회를 멈춥니다.
func walk(err error, visit func(error) bool) bool {
	if err == nil {
		return false
	}
	if visit(err) {
		return true
	}

	switch x := err.(type) {
	case interface{ Unwrap() []error }:
		for _, e := range x.Unwrap() {
			if walk(e, visit) {
				return true
			}
		}
	case interface{ Unwrap() error }:
		return walk(x.Unwrap(), visit)
	}
	return false
}

// Is 에러 체인(결합된 에러 포함)에 특정 ErrorType의 AppError가 포함되어 있는지 확인합니다.
func Is(err error, errType ErrorType) bool {
	return walk(err, func(e error) bool {
		appErr, ok := e.(*AppError)
		return ok && appErr.errType == errType
	})
}

// As errors.As의 별칭입니다.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// RootCause 에러 체인의 가장 안쪽 원인 에러를 반환합니다.
// 결합된 에러는 첫 번째 가지를 따라갑니다.
func RootCause(err error) error {
	for err != nil {
		var next error
		switch x := err.(type) {
		case interface{ Unwrap() []error }:
			for _, e := range x.Unwrap() {
				if e != nil {
					next = e
					break
				}
			}
		case interface{ Unwrap() error }:
			next = x.Unwrap()
		}
		if next == nil {
			return err
		}
		err = next
	}
	return nil
}

// UnderlyingType 체인에서 가장 안쪽에 있는 AppError의 ErrorType을 반환합니다.
// 결합된 에러는 깊이 우선 순회에서 마지막으로 만난 AppError를 기준으로 하며,
// AppError가 없으면 Unknown을 반환합니다.
//
//	err := Wrap(New(Unauthorized, "토큰 만료"), ExecutionFailed, "조회 실패")
//	UnderlyingType(err) // Unauthorized
func UnderlyingType(err error) ErrorType {
	t := Unknown
	walk(err, func(e error) bool {
		if appErr, ok := e.(*AppError); ok {
			t = appErr.errType
		}
		return false
	})
	return t
}
