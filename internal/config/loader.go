package config

import (
	"os"
	"reflect"
	"strings"

	apperrors "github.com/darkkaiser/tgtg-watcher/internal/pkg/errors"
	"github.com/darkkaiser/tgtg-watcher/pkg/strutil"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// LoadWithFile 지정된 설정 파일을 읽어 AppConfig를 생성합니다. 파일이 없으면 기본값을 사용합니다.
func LoadWithFile(filename string) (*AppConfig, error) {
	return load(file.Provider(filename), filename, nil)
}

// ParseOverride --config 인자나 TGTG_CONFIG 환경 변수로 전달된 JSON 문자열을 해석합니다.
func ParseOverride(raw string) (map[string]any, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	m, err := json.Parser().Unmarshal([]byte(raw))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, "사용자 지정 설정(JSON)을 해석할 수 없습니다")
	}

	return m, nil
}

// load 설정을 다음 우선순위(낮음 → 높음)로 병합합니다.
//
//  1. 기본값 (NewDefaultConfig)
//  2. JSON 설정 파일
//  3. 사용자 지정 JSON (override)
//  4. TGTG_ 접두사 환경 변수
func load(fp *file.File, filename string, override map[string]any) (*AppConfig, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(NewDefaultConfig(), "json"), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "애플리케이션 기본 설정 로드에 실패했습니다")
	}

	if err := k.Load(fp, json.Parser()); err != nil {
		if !os.IsNotExist(err) {
			return nil, apperrors.Wrapf(err, apperrors.InvalidInput, "설정 파일 로드 중 오류가 발생했습니다: '%s'", filename)
		}
	}

	if len(override) > 0 {
		if err := k.Load(confmap.Provider(override, "."), nil); err != nil {
			return nil, apperrors.Wrap(err, apperrors.InvalidInput, "사용자 지정 설정 적용에 실패했습니다")
		}
	}

	// TGTG_NOTIFICATIONS__TELEGRAM__BOT_TOKEN -> notifications.telegram.bot_token
	if err := k.Load(env.Provider(EnvPrefix, ".", normalizeEnvKey), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "환경 변수 로드에 실패했습니다")
	}

	var appConfig AppConfig
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "json",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				stringToSliceHook(","),
			),
			ErrorUnused:      true, // 구조체에 없는 키가 있으면 오타로 간주한다.
			WeaklyTypedInput: true,
			Result:           &appConfig,
			TagName:          "json",
		},
	}
	if err := k.UnmarshalWithConf("", &appConfig, unmarshalConf); err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, "설정 데이터를 애플리케이션 구조체로 변환하는데 실패했습니다")
	}

	if err := appConfig.Validate(); err != nil {
		return nil, apperrors.Wrapf(err, apperrors.InvalidInput, "설정 파일('%s')의 유효성 검증에 실패했습니다", filename)
	}

	return &appConfig, nil
}

// stringToSliceHook 환경 변수처럼 문자열로 전달된 목록 값을 슬라이스로 분리합니다.
// 대상 슬라이스의 원소 타입과 무관하게 분리하며, 원소 변환은 WeaklyTypedInput이 담당합니다.
//
//	TGTG_NOTIFICATIONS__TELEGRAM__CHAT_IDS="10, 20" -> []int64{10, 20}
func stringToSliceHook(sep string) mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to.Kind() != reflect.Slice {
			return data, nil
		}

		tokens := strutil.SplitAndTrim(data.(string), sep)
		if tokens == nil {
			return []string{}, nil
		}
		return tokens, nil
	}
}

// normalizeEnvKey 환경 변수 이름을 설정 키로 변환합니다.
// 설정 전체를 덮어쓰는 TGTG_CONFIG는 별도로 처리하므로 제외합니다.
func normalizeEnvKey(s string) string {
	if s == EnvOverride {
		return ""
	}

	s = strings.TrimPrefix(s, EnvPrefix)
	s = strings.ToLower(s)
	return strings.ReplaceAll(s, "__", ".")
}
