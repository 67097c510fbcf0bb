package config

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	apperrors "github.com/darkkaiser/tgtg-watcher/internal/pkg/errors"
	"github.com/darkkaiser/tgtg-watcher/pkg/cronx"
	"github.com/go-playground/validator/v10"
)

// 텔레그램 봇 토큰 형식 (예: 123456:ABC-DEF1234ghIkl-zyx57W2v1u123ew11)
var telegramBotTokenRegex = regexp.MustCompile(`^\d{3,20}:[a-zA-Z0-9_-]{30,50}$`)

var validate = newValidator()

// newValidator 커스텀 유효성 검사 함수가 등록된 Validator를 생성합니다.
func newValidator() *validator.Validate {
	v := validator.New()

	// 에러 메시지에 Go 필드명 대신 설정 파일의 키 이름이 표시되도록 한다.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("telegram_bot_token", func(fl validator.FieldLevel) bool {
		return telegramBotTokenRegex.MatchString(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("초기화 치명적 오류: 'telegram_bot_token' 커스텀 유효성 검사 함수 등록에 실패했습니다: %v", err))
	}
	if err := v.RegisterValidation("cron_spec", func(fl validator.FieldLevel) bool {
		return cronx.Validate(fl.Field().String()) == nil
	}); err != nil {
		panic(fmt.Sprintf("초기화 치명적 오류: 'cron_spec' 커스텀 유효성 검사 함수 등록에 실패했습니다: %v", err))
	}
	if err := v.RegisterValidation("duration", func(fl validator.FieldLevel) bool {
		d, err := time.ParseDuration(fl.Field().String())
		return err == nil && d > 0
	}); err != nil {
		panic(fmt.Sprintf("초기화 치명적 오류: 'duration' 커스텀 유효성 검사 함수 등록에 실패했습니다: %v", err))
	}

	return v
}

// Validate 설정 값의 유효성을 검사하고 첫 번째 오류를 사용자 친화적인 메시지로 변환합니다.
func (c *AppConfig) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return apperrors.Wrap(err, apperrors.InvalidInput, "설정 유효성 검증에 실패했습니다")
	}

	fieldErr := validationErrors[0]
	key := configKey(fieldErr.Namespace())

	switch fieldErr.Tag() {
	case "required", "required_if":
		return apperrors.Newf(apperrors.InvalidInput, "필수 설정 값(%s)이 누락되었습니다", key)
	case "telegram_bot_token":
		return apperrors.Newf(apperrors.InvalidInput, "텔레그램 봇 토큰(%s) 형식이 올바르지 않습니다 (올바른 형식: 123456:ABC-DEF...)", key)
	case "cron_spec":
		return apperrors.Newf(apperrors.InvalidInput, "폴링 주기(%s) 표현식이 올바르지 않습니다: '%v' (예: @every 30s, */30 * * * * *)", key, fieldErr.Value())
	case "duration":
		return apperrors.Newf(apperrors.InvalidInput, "시간 간격(%s) 형식이 올바르지 않습니다: '%v' (예: 10s, 500ms)", key, fieldErr.Value())
	case "unique":
		return apperrors.Newf(apperrors.InvalidInput, "%s 내에 중복된 값이 존재합니다", key)
	case "url", "email":
		return apperrors.Newf(apperrors.InvalidInput, "%s 형식이 올바르지 않습니다: '%v'", key, fieldErr.Value())
	}

	return apperrors.Newf(apperrors.InvalidInput, "설정 값이 올바르지 않습니다: %s (조건: %s=%s, 값: '%v')", key, fieldErr.Tag(), fieldErr.Param(), fieldErr.Value())
}

// configKey "AppConfig.notifications.mail.host" 형태의 Namespace에서 설정 키만 남깁니다.
func configKey(namespace string) string {
	if _, after, found := strings.Cut(namespace, "."); found {
		return after
	}
	return namespace
}
