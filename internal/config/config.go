package config

import (
	"time"

	"github.com/darkkaiser/tgtg-watcher/pkg/cronx"
)

const (
	// AppName 애플리케이션의 전역 고유 식별자입니다.
	AppName = "tgtg-watcher"

	// DefaultFilename 실행 인자로 경로가 주어지지 않았을 때 사용하는 설정 파일명입니다.
	DefaultFilename = AppName + ".json"

	// EnvPrefix 설정을 덮어쓰는 환경 변수의 접두사입니다. (예: TGTG_NOTIFICATIONS__CONSOLE__ENABLED)
	EnvPrefix = "TGTG_"

	// EnvOverride JSON 문자열로 설정 전체를 덮어쓰는 환경 변수입니다.
	EnvOverride = EnvPrefix + "CONFIG"
)

// AppConfig 애플리케이션의 모든 설정을 담는 최상위 구조체
type AppConfig struct {
	Debug         bool                `json:"debug"`
	API           APIConfig           `json:"api"`
	MessageFilter MessageFilterConfig `json:"message_filter"`
	Notifications NotificationsConfig `json:"notifications"`
	StatusAPI     StatusAPIConfig     `json:"status_api"`
}

// APIConfig TooGoodToGo API 접속 및 폴링 설정
type APIConfig struct {
	BaseURL        string            `json:"base_url" validate:"required,url"`
	UserAgent      string            `json:"user_agent"`
	Credentials    CredentialsConfig `json:"credentials"`
	Polling        PollingConfig     `json:"polling"`
	Origin         OriginConfig      `json:"origin"`
	RequestTimeout string            `json:"request_timeout" validate:"duration"`
	RateLimit      float64           `json:"rate_limit" validate:"gte=0"` // 초당 최대 요청 수 (0: 제한 없음)
}

// Timeout 요청 타임아웃을 반환합니다. 형식이 잘못된 경우 기본값을 사용합니다.
func (c APIConfig) Timeout() time.Duration {
	d, err := time.ParseDuration(c.RequestTimeout)
	if err != nil || d <= 0 {
		return defaultRequestTimeout
	}
	return d
}

// CredentialsConfig 로그인 후 발급받은 토큰 정보
type CredentialsConfig struct {
	Email        string `json:"email"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	UserID       string `json:"user_id"`
}

// PollingConfig 찜 목록 조회 주기
type PollingConfig struct {
	TimeSpec string `json:"time_spec" validate:"required,cron_spec"`
}

// OriginConfig 찜 목록 조회 요청에 포함되는 기준 위치
type OriginConfig struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
	Radius    int     `json:"radius" validate:"gte=1"`
}

// MessageFilterConfig 변경 유형별 알림 표시 여부
type MessageFilterConfig struct {
	ShowUnchanged        bool `json:"show_unchanged"`
	ShowDecreaseToZero   bool `json:"show_decrease_to_zero"`
	ShowDecrease         bool `json:"show_decrease"`
	ShowIncreaseFromZero bool `json:"show_increase_from_zero"`
	ShowIncrease         bool `json:"show_increase"`
}

// NotificationsConfig 알림 채널별 설정
type NotificationsConfig struct {
	Console  ConsoleConfig  `json:"console"`
	Desktop  DesktopConfig  `json:"desktop"`
	Mail     MailConfig     `json:"mail"`
	Telegram TelegramConfig `json:"telegram"`
	IFTTT    IFTTTConfig    `json:"ifttt"`
	Gotify   GotifyConfig   `json:"gotify"`
	Webhook  WebhookConfig  `json:"webhook"`
}

type ConsoleConfig struct {
	Enabled bool `json:"enabled"`
	Clear   bool `json:"clear"` // 출력 전에 화면을 지웁니다.
}

type DesktopConfig struct {
	Enabled bool `json:"enabled"`
}

type MailConfig struct {
	Enabled         bool           `json:"enabled"`
	Host            string         `json:"host" validate:"required_if=Enabled true"`
	Port            int            `json:"port" validate:"required_if=Enabled true,omitempty,min=1,max=65535"`
	Secure          bool           `json:"secure"`
	Auth            MailAuthConfig `json:"auth"`
	SenderAddress   string         `json:"sender_address" validate:"required_if=Enabled true,omitempty,email"`
	ReceiverAddress string         `json:"receiver_address" validate:"required_if=Enabled true,omitempty,email"`
	Subject         string         `json:"subject"`
}

type MailAuthConfig struct {
	User string `json:"user"`
	Pass string `json:"pass"`
}

type TelegramConfig struct {
	Enabled  bool    `json:"enabled"`
	BotToken string  `json:"bot_token" validate:"required_if=Enabled true,omitempty,telegram_bot_token"`
	ChatIDs  []int64 `json:"chat_ids" validate:"unique"`
}

type IFTTTConfig struct {
	Enabled     bool     `json:"enabled"`
	Event       string   `json:"event" validate:"required_if=Enabled true"`
	WebhookKeys []string `json:"webhook_keys" validate:"required_if=Enabled true,dive,required"`
}

type GotifyConfig struct {
	Enabled  bool   `json:"enabled"`
	URL      string `json:"url" validate:"required_if=Enabled true,omitempty,url"`
	APIToken string `json:"api_token" validate:"required_if=Enabled true"`
	Priority int    `json:"priority" validate:"gte=0,lte=10"`
}

type WebhookConfig struct {
	Enabled bool   `json:"enabled"`
	URL     string `json:"url" validate:"required_if=Enabled true,omitempty,url"`
	Key     string `json:"key"`
}

// StatusAPIConfig 상태 조회용 HTTP 서버 설정
type StatusAPIConfig struct {
	Enabled    bool `json:"enabled"`
	ListenPort int  `json:"listen_port" validate:"required_if=Enabled true,omitempty,min=1,max=65535"`
}

const (
	defaultBaseURL        = "https://apptoogoodtogo.com/api/"
	defaultUserAgent      = "TGTG/23.12.11 Dalvik/2.1.0 (Linux; U; Android 12)"
	defaultRequestTimeout = 30 * time.Second
)

// NewDefaultConfig 설정 파일이 없는 항목에 적용되는 기본 설정을 반환합니다.
// config-reset 명령이 기록하는 내용이기도 합니다.
func NewDefaultConfig() *AppConfig {
	return &AppConfig{
		API: APIConfig{
			BaseURL:        defaultBaseURL,
			UserAgent:      defaultUserAgent,
			Polling:        PollingConfig{TimeSpec: cronx.DefaultPollingSpec},
			Origin:         OriginConfig{Latitude: 0, Longitude: 0, Radius: 20},
			RequestTimeout: defaultRequestTimeout.String(),
			RateLimit:      1,
		},
		MessageFilter: MessageFilterConfig{
			ShowIncreaseFromZero: true,
		},
		Notifications: NotificationsConfig{
			Console: ConsoleConfig{Enabled: true},
			Mail: MailConfig{
				Port:    587,
				Subject: "Futterstatus geändert",
			},
			Gotify: GotifyConfig{Priority: 8},
		},
		StatusAPI: StatusAPIConfig{ListenPort: 2443},
	}
}
