package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// writeFile — утилита записи временного файла конфигурации.
func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

// chdir — смена текущего рабочего каталога с автоматическим откатом.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

// Полный корректный YAML (не зависит от дефолтов).
const sampleYAML = `
env: "prod"
api:
  app_id: "my-app-id"
  endpoint: "https://svcs.sandbox.ebay.com/services/search/FindingService/v1"
  token_url: "https://api.ebay.com/identity/v1/oauth2/token"
  client_id: "cid"
  client_secret: "secret"
  call_interval: "2s"
  retry_attempts: 5
  retry_pause: "30s"
  entries_per_page: 50
  timeout: "15s"
feed:
  url: "https://feeds.example.com/market.atom"
  author_name: "market-feed"
  author_email: "feed@example.com"
  max_entries: 500
  max_age_days: 30
  require_active: true
crawl:
  time_budget: "45m"
  checkpoint_path: "/var/lib/market-feed/checkpoint"
  lock_path: "/var/lib/market-feed/lock"
`

// Минимально валидный YAML (только обязательные поля, остальное — дефолты).
const minimalYAML = `
api:
  app_id: "my-app-id"
feed:
  url: "https://feeds.example.com/market.atom"
`

// Некорректный YAML — для проверки ошибок парсинга.
const brokenYAML = `
api:
  app_id: "my-app-id"
feed:
  url: ["https://feeds.example.com/market.atom"
`

// TestLoad_WithExplicitPath_OK — явный путь имеет высший приоритет.
func TestLoad_WithExplicitPath_OK(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", sampleYAML)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	require.Equal(t, "prod", cfg.Env)
	require.Equal(t, "my-app-id", cfg.API.AppID)
	require.Equal(t, "https://svcs.sandbox.ebay.com/services/search/FindingService/v1", cfg.API.Endpoint)
	require.Equal(t, "cid", cfg.API.ClientID)
	require.Equal(t, 2*time.Second, cfg.API.CallInterval)
	require.Equal(t, 5, cfg.API.RetryAttempts)
	require.Equal(t, 30*time.Second, cfg.API.RetryPause)
	require.Equal(t, 50, cfg.API.EntriesPerPage)
	require.Equal(t, 15*time.Second, cfg.API.Timeout)

	require.Equal(t, "https://feeds.example.com/market.atom", cfg.Feed.URL)
	require.Equal(t, 500, cfg.Feed.MaxEntries)
	require.Equal(t, 30, cfg.Feed.MaxAgeDays)
	require.True(t, cfg.Feed.RequireActive)

	require.Equal(t, 45*time.Minute, cfg.Crawl.TimeBudget)
	require.Equal(t, "/var/lib/market-feed/checkpoint", cfg.Crawl.CheckpointPath)
	require.Equal(t, "/var/lib/market-feed/lock", cfg.Crawl.LockPath)
}

// TestLoad_Defaults — незаполненные поля получают значения по умолчанию.
func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", minimalYAML)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	require.Equal(t, "local", cfg.Env)
	require.Equal(t, "https://svcs.ebay.com/services/search/FindingService/v1", cfg.API.Endpoint)
	require.Equal(t, time.Second, cfg.API.CallInterval)
	require.Equal(t, 10, cfg.API.RetryAttempts)
	require.Equal(t, 60*time.Second, cfg.API.RetryPause)
	require.Equal(t, 100, cfg.API.EntriesPerPage)
	require.Equal(t, 1000, cfg.Feed.MaxEntries)
	require.Equal(t, 84, cfg.Feed.MaxAgeDays)
	require.False(t, cfg.Feed.RequireActive)
	require.Zero(t, cfg.Crawl.TimeBudget)
	require.Equal(t, "market-feed.checkpoint", cfg.Crawl.CheckpointPath)
	require.Equal(t, "market-feed.lock", cfg.Crawl.LockPath)
}

// TestLoad_WithExplicitPath_NotExists — несуществующий явный путь — ошибка.
func TestLoad_WithExplicitPath_NotExists(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

// TestLoad_BrokenYAML — ошибка парсинга не маскируется.
func TestLoad_BrokenYAML(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", brokenYAML)

	_, err := Load(cfgPath)
	require.Error(t, err)
}

// TestLoad_FromConfigPathEnv — CONFIG_PATH используется при пустом
// явном пути.
func TestLoad_FromConfigPathEnv(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", sampleYAML)
	t.Setenv("CONFIG_PATH", cfgPath)

	// Рабочий каталог без local.yaml, чтобы не сработал следующий приоритет.
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "prod", cfg.Env)
}

// TestLoad_FromLocalYAML — при пустом пути и пустом CONFIG_PATH читается
// ./local.yaml.
func TestLoad_FromLocalYAML(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")

	dir := t.TempDir()
	writeFile(t, dir, "local.yaml", minimalYAML)
	chdir(t, dir)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "my-app-id", cfg.API.AppID)
}

// TestLoad_FromEnvOnly — последний приоритет: только переменные окружения.
func TestLoad_FromEnvOnly(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("EBAY_APP_ID", "env-app-id")
	t.Setenv("FEED_URL", "https://feeds.example.com/env.atom")
	t.Setenv("MAX_FEED_ENTRIES", "42")

	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "env-app-id", cfg.API.AppID)
	require.Equal(t, "https://feeds.example.com/env.atom", cfg.Feed.URL)
	require.Equal(t, 42, cfg.Feed.MaxEntries)
}

// TestValidate — граничные случаи валидации.
func TestValidate(t *testing.T) {
	t.Parallel()

	valid := func() Config {
		return Config{
			API: APIConfig{
				AppID:          "id",
				Endpoint:       "https://svcs.ebay.com/services/search/FindingService/v1",
				CallInterval:   time.Second,
				RetryAttempts:  10,
				EntriesPerPage: 100,
			},
			Feed: FeedConfig{
				URL:        "https://feeds.example.com/market.atom",
				MaxEntries: 1000,
				MaxAgeDays: 84,
			},
			Crawl: CrawlConfig{CheckpointPath: "checkpoint"},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{name: "валидная", mutate: func(c *Config) {}, ok: true},
		{name: "без app_id", mutate: func(c *Config) { c.API.AppID = "" }},
		{name: "без endpoint", mutate: func(c *Config) { c.API.Endpoint = "" }},
		{
			name:   "token_url без кред",
			mutate: func(c *Config) { c.API.TokenURL = "https://api.ebay.com/token" },
		},
		{
			name: "token_url с кредами",
			mutate: func(c *Config) {
				c.API.TokenURL = "https://api.ebay.com/token"
				c.API.ClientID = "cid"
				c.API.ClientSecret = "secret"
			},
			ok: true,
		},
		{name: "нулевой интервал", mutate: func(c *Config) { c.API.CallInterval = 0 }},
		{name: "отрицательные повторы", mutate: func(c *Config) { c.API.RetryAttempts = -1 }},
		{name: "страница больше 100", mutate: func(c *Config) { c.API.EntriesPerPage = 101 }},
		{name: "без url фида", mutate: func(c *Config) { c.Feed.URL = "" }},
		{name: "нулевой потолок", mutate: func(c *Config) { c.Feed.MaxEntries = 0 }},
		{name: "нулевой возраст", mutate: func(c *Config) { c.Feed.MaxAgeDays = 0 }},
		{name: "без чекпоинта", mutate: func(c *Config) { c.Crawl.CheckpointPath = "" }},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid()
			tc.mutate(&cfg)

			err := cfg.validate()
			if tc.ok {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}
