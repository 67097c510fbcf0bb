package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/darkkaiser/tgtg-watcher/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validBotToken = "123456789:ABCdefGHIjklMNOpqrSTUvwxYZ0123456789"

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	filename := filepath.Join(t.TempDir(), DefaultFilename)
	require.NoError(t, os.WriteFile(filename, []byte(content), 0644))
	return filename
}

func TestLoadWithFile_DefaultsWhenFileMissing(t *testing.T) {
	cfg, err := LoadWithFile(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)

	defaults := NewDefaultConfig()
	assert.Equal(t, defaults.API, cfg.API)
	assert.Equal(t, defaults.MessageFilter, cfg.MessageFilter)
	assert.Equal(t, defaults.Notifications.Mail, cfg.Notifications.Mail)
	assert.True(t, cfg.Notifications.Console.Enabled)
	assert.Equal(t, "@every 30s", cfg.API.Polling.TimeSpec)
	assert.True(t, cfg.MessageFilter.ShowIncreaseFromZero)
	assert.False(t, cfg.MessageFilter.ShowUnchanged)
}

func TestLoadWithFile_FileOverridesDefaults(t *testing.T) {
	filename := writeConfigFile(t, `{
		"api": {
			"credentials": {"access_token": "a", "refresh_token": "r", "user_id": "42"},
			"polling": {"time_spec": "@every 1m"},
			"request_timeout": "5s"
		},
		"message_filter": {"show_unchanged": true},
		"notifications": {
			"console": {"enabled": false},
			"telegram": {"enabled": true, "bot_token": "`+validBotToken+`", "chat_ids": [1, 2]}
		}
	}`)

	cfg, err := LoadWithFile(filename)
	require.NoError(t, err)

	assert.Equal(t, "42", cfg.API.Credentials.UserID)
	assert.Equal(t, "@every 1m", cfg.API.Polling.TimeSpec)
	assert.Equal(t, "5s", cfg.API.Timeout().String())
	assert.True(t, cfg.MessageFilter.ShowUnchanged)
	assert.True(t, cfg.MessageFilter.ShowIncreaseFromZero, "파일에 없는 항목은 기본값을 유지해야 합니다")
	assert.False(t, cfg.Notifications.Console.Enabled)
	assert.Equal(t, []int64{1, 2}, cfg.Notifications.Telegram.ChatIDs)
	assert.Equal(t, defaultBaseURL, cfg.API.BaseURL)
}

func TestLoad_EnvAndOverridePrecedence(t *testing.T) {
	filename := writeConfigFile(t, `{"message_filter": {"show_decrease": false}, "notifications": {"desktop": {"enabled": false}}}`)

	t.Setenv("TGTG_MESSAGE_FILTER__SHOW_DECREASE", "true")
	t.Setenv("TGTG_NOTIFICATIONS__TELEGRAM__CHAT_IDS", "10,20")
	t.Setenv(EnvOverride, `{"this":"is ignored by the env provider"}`)

	override, err := ParseOverride(`{"notifications": {"desktop": {"enabled": true}}, "message_filter": {"show_decrease": false}}`)
	require.NoError(t, err)

	p, err := NewProvider(filename, override)
	require.NoError(t, err)

	cfg := p.Current()
	assert.True(t, cfg.Notifications.Desktop.Enabled, "사용자 지정 설정이 파일보다 우선해야 합니다")
	assert.True(t, cfg.MessageFilter.ShowDecrease, "환경 변수가 가장 우선해야 합니다")
	assert.Equal(t, []int64{10, 20}, cfg.Notifications.Telegram.ChatIDs)
}

func TestLoad_EnvListValues(t *testing.T) {
	tests := []struct {
		name     string
		chatIDs  string
		keys     string
		wantIDs  []int64
		wantKeys []string
	}{
		{"Comma separated", "10,20", "k1,k2", []int64{10, 20}, []string{"k1", "k2"}},
		{"Spaces and empty tokens", " 30 , ,40 ", " k1 , ", []int64{30, 40}, []string{"k1"}},
		{"Single value", "-100123", "only", []int64{-100123}, []string{"only"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TGTG_NOTIFICATIONS__TELEGRAM__CHAT_IDS", tt.chatIDs)
			t.Setenv("TGTG_NOTIFICATIONS__IFTTT__WEBHOOK_KEYS", tt.keys)

			cfg, err := LoadWithFile(filepath.Join(t.TempDir(), "missing.json"))
			require.NoError(t, err)

			assert.Equal(t, tt.wantIDs, cfg.Notifications.Telegram.ChatIDs)
			assert.Equal(t, tt.wantKeys, cfg.Notifications.IFTTT.WebhookKeys)
		})
	}
}

func TestLoadWithFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errType apperrors.ErrorType
		wantErr string
	}{
		{
			name:    "Malformed JSON",
			content: `{"debug": `,
			wantErr: "설정 파일 로드 중 오류",
		},
		{
			name:    "Unknown key",
			content: `{"notifications": {"mail": {"enable": true}}}`,
			wantErr: "변환하는데 실패",
		},
		{
			name:    "Mail enabled without host",
			content: `{"notifications": {"mail": {"enabled": true, "sender_address": "a@b.com", "receiver_address": "c@d.com"}}}`,
			wantErr: "notifications.mail.host",
		},
		{
			name:    "Invalid telegram token",
			content: `{"notifications": {"telegram": {"enabled": true, "bot_token": "invalid"}}}`,
			wantErr: "텔레그램 봇 토큰",
		},
		{
			name:    "Duplicated chat ids",
			content: `{"notifications": {"telegram": {"chat_ids": [1, 1]}}}`,
			wantErr: "notifications.telegram.chat_ids",
		},
		{
			name:    "Invalid polling spec",
			content: `{"api": {"polling": {"time_spec": "*/5 * * * *"}}}`,
			wantErr: "폴링 주기",
		},
		{
			name:    "Invalid request timeout",
			content: `{"api": {"request_timeout": "soon"}}`,
			wantErr: "api.request_timeout",
		},
		{
			name:    "Gotify enabled with invalid url",
			content: `{"notifications": {"gotify": {"enabled": true, "url": "not a url", "api_token": "t"}}}`,
			wantErr: "notifications.gotify.url",
		},
		{
			name:    "IFTTT enabled without keys",
			content: `{"notifications": {"ifttt": {"enabled": true, "event": "tgtg"}}}`,
			wantErr: "notifications.ifttt.webhook_keys",
		},
		{
			name:    "Status API port out of range",
			content: `{"status_api": {"enabled": true, "listen_port": 70000}}`,
			wantErr: "status_api.listen_port",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadWithFile(writeConfigFile(t, tt.content))

			require.Error(t, err)
			assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseOverride(t *testing.T) {
	m, err := ParseOverride("  ")
	assert.NoError(t, err)
	assert.Nil(t, m)

	_, err = ParseOverride("{invalid")
	assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
}

func TestNormalizeEnvKey(t *testing.T) {
	assert.Equal(t, "notifications.telegram.bot_token", normalizeEnvKey("TGTG_NOTIFICATIONS__TELEGRAM__BOT_TOKEN"))
	assert.Equal(t, "debug", normalizeEnvKey("TGTG_DEBUG"))
	assert.Empty(t, normalizeEnvKey(EnvOverride))
}

func TestProvider_Reload(t *testing.T) {
	filename := writeConfigFile(t, `{"message_filter": {"show_unchanged": false}}`)

	p, err := NewProvider(filename, nil)
	require.NoError(t, err)
	assert.Equal(t, filename, p.Filename())

	var notified *AppConfig
	p.OnChange(func(cfg *AppConfig) { notified = cfg })

	t.Run("Valid change is applied", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filename, []byte(`{"message_filter": {"show_unchanged": true}}`), 0644))
		require.NoError(t, p.Reload())

		assert.True(t, p.Current().MessageFilter.ShowUnchanged)
		assert.Same(t, p.Current(), notified)
	})

	t.Run("Invalid change keeps previous config", func(t *testing.T) {
		before := p.Current()
		require.NoError(t, os.WriteFile(filename, []byte(`{"api": {"polling": {"time_spec": "never"}}}`), 0644))

		err := p.Reload()
		require.Error(t, err)
		assert.True(t, strings.Contains(err.Error(), "폴링 주기"))
		assert.Same(t, before, p.Current())
	})
}

func TestAPIConfig_Timeout(t *testing.T) {
	assert.Equal(t, defaultRequestTimeout, APIConfig{RequestTimeout: ""}.Timeout())
	assert.Equal(t, defaultRequestTimeout, APIConfig{RequestTimeout: "-1s"}.Timeout())
	assert.Equal(t, "1.5s", APIConfig{RequestTimeout: "1500ms"}.Timeout().String())
}

func TestSaveDefault_RoundTrip(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "nested", DefaultFilename)
	require.NoError(t, SaveDefault(filename))

	info, err := os.Stat(filename)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	cfg, err := LoadWithFile(filename)
	require.NoError(t, err)

	defaults := NewDefaultConfig()
	assert.Equal(t, defaults.API, cfg.API)
	assert.Equal(t, defaults.MessageFilter, cfg.MessageFilter)
	assert.Equal(t, defaults.StatusAPI, cfg.StatusAPI)
	assert.True(t, filepath.IsAbs(AbsPath(DefaultFilename)))
}
