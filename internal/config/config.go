// config предоставляет структуру конфигурации market-feed
// и функции загрузки из YAML/ENV с предсказуемым приоритетом.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config — корневая конфигурация краулера.
// Приоритет источников:
//  1. явный путь, переданный в MustLoad/Load;
//  2. переменная окружения CONFIG_PATH;
//  3. файл ./local.yaml из рабочей директории;
//  4. переменные окружения.
type Config struct {
	Env   string      `yaml:"env"   env:"ENV" env-default:"local"`
	API   APIConfig   `yaml:"api"`
	Feed  FeedConfig  `yaml:"feed"`
	Crawl CrawlConfig `yaml:"crawl"`
}

// APIConfig — настройки клиента Finding API.
type APIConfig struct {
	// AppID — идентификатор приложения (SECURITY-APPNAME).
	AppID string `yaml:"app_id" env:"EBAY_APP_ID" env-required:"true"`
	// Endpoint — адрес Finding API.
	Endpoint string `yaml:"endpoint" env:"EBAY_ENDPOINT" env-default:"https://svcs.ebay.com/services/search/FindingService/v1"`
	// TokenURL — адрес выдачи OAuth-токена. Пустой — bearer-авторизация
	// не используется (достаточно AppID в параметрах запроса).
	TokenURL string `yaml:"token_url" env:"EBAY_TOKEN_URL"`
	// ClientID/ClientSecret — креды client-credentials грантa. Нужны
	// только вместе с TokenURL.
	ClientID     string `yaml:"client_id"     env:"EBAY_CLIENT_ID"`
	ClientSecret string `yaml:"client_secret" env:"EBAY_CLIENT_SECRET"`
	// CallInterval — минимальный интервал между вызовами API.
	CallInterval time.Duration `yaml:"call_interval" env:"API_CALL_INTERVAL" env-default:"1s"`
	// RetryAttempts — предел повторов при сетевой ошибке.
	RetryAttempts int `yaml:"retry_attempts" env:"API_RETRY_ATTEMPTS" env-default:"10"`
	// RetryPause — фиксированная пауза между повторами.
	RetryPause time.Duration `yaml:"retry_pause" env:"API_RETRY_PAUSE" env-default:"60s"`
	// EntriesPerPage — размер страницы пагинации.
	EntriesPerPage int `yaml:"entries_per_page" env:"API_ENTRIES_PER_PAGE" env-default:"100"`
	// Timeout — таймаут одного HTTP-запроса.
	Timeout time.Duration `yaml:"timeout" env:"API_TIMEOUT" env-default:"30s"`
}

// FeedConfig — параметры итогового Atom-фида.
type FeedConfig struct {
	// URL — self-ссылка фида (она же его идентификатор).
	URL string `yaml:"url" env:"FEED_URL" env-required:"true"`
	// AuthorName/AuthorEmail — автор фида.
	AuthorName  string `yaml:"author_name"  env:"FEED_AUTHOR_NAME"`
	AuthorEmail string `yaml:"author_email" env:"FEED_AUTHOR_EMAIL"`
	// MaxEntries — верхняя граница числа записей фида.
	MaxEntries int `yaml:"max_entries" env:"MAX_FEED_ENTRIES" env-default:"1000"`
	// MaxAgeDays — максимальный возраст лота (в полных днях) для включения.
	MaxAgeDays int `yaml:"max_age_days" env:"MAX_LISTING_AGE_DAYS" env-default:"84"`
	// RequireActive — включать только активные лоты. Для новых поколений
	// API избыточно (завершённые лоты не возвращаются), поэтому по
	// умолчанию выключено.
	RequireActive bool `yaml:"require_active" env:"FEED_REQUIRE_ACTIVE" env-default:"false"`
}

// CrawlConfig — параметры обхода.
type CrawlConfig struct {
	// TimeBudget — бюджет времени одного запуска; 0 — без ограничения.
	// Флаг --budget имеет приоритет над значением из конфигурации.
	TimeBudget time.Duration `yaml:"time_budget" env:"CRAWL_TIME_BUDGET" env-default:"0"`
	// CheckpointPath — файл маркера возобновления.
	CheckpointPath string `yaml:"checkpoint_path" env:"CHECKPOINT_PATH" env-default:"market-feed.checkpoint"`
	// LockPath — файл эксклюзивной блокировки запуска.
	LockPath string `yaml:"lock_path" env:"LOCK_PATH" env-default:"market-feed.lock"`
}

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
func Load(path string) (*Config, error) {
	var cfg Config

	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file does not exist: %s", p)
		}
		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		return &cfg, nil
	}

	// 1) Явный путь.
	if path != "" {
		c, err := tryRead(path)
		if err != nil {
			return nil, err
		}
		if err := c.validate(); err != nil {
			return nil, err
		}
		return c, nil
	}

	// 2) CONFIG_PATH.
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		c, err := tryRead(envPath)
		if err != nil {
			return nil, err
		}
		if err := c.validate(); err != nil {
			return nil, err
		}
		return c, nil
	}

	// 3) ./local.yaml.
	if _, err := os.Stat("local.yaml"); err == nil {
		if err := cleanenv.ReadConfig("local.yaml", &cfg); err != nil {
			return nil, fmt.Errorf("failed to read local.yaml: %w", err)
		}
		if err := cfg.validate(); err != nil {
			return nil, err
		}
		return &cfg, nil
	}

	// 4) Только ENV.
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate — базовая валидация значений.
func (c *Config) validate() error {
	if c.API.AppID == "" {
		return fmt.Errorf("api.app_id is required")
	}
	if c.API.Endpoint == "" {
		return fmt.Errorf("api.endpoint is required")
	}
	if c.API.TokenURL != "" && (c.API.ClientID == "" || c.API.ClientSecret == "") {
		return fmt.Errorf("api.client_id and api.client_secret are required with api.token_url")
	}
	if c.API.CallInterval <= 0 {
		return fmt.Errorf("api.call_interval must be > 0")
	}
	if c.API.RetryAttempts < 0 {
		return fmt.Errorf("api.retry_attempts must be >= 0")
	}
	if c.API.EntriesPerPage <= 0 || c.API.EntriesPerPage > 100 {
		return fmt.Errorf("api.entries_per_page must be in (0, 100]")
	}
	if c.Feed.URL == "" {
		return fmt.Errorf("feed.url is required")
	}
	if c.Feed.MaxEntries <= 0 {
		return fmt.Errorf("feed.max_entries must be > 0")
	}
	if c.Feed.MaxAgeDays <= 0 {
		return fmt.Errorf("feed.max_age_days must be > 0")
	}
	if c.Crawl.CheckpointPath == "" {
		return fmt.Errorf("crawl.checkpoint_path is required")
	}
	return nil
}
