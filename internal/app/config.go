package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"macroDash/internal/api/http"
	"macroDash/internal/domain"
	"macroDash/internal/infrastructure/click"
	"macroDash/internal/infrastructure/ibge"
	"macroDash/internal/infrastructure/kafka"
	"macroDash/internal/infrastructure/mongo"
	"macroDash/internal/infrastructure/pg"
	"macroDash/internal/infrastructure/redis"
	"macroDash/internal/infrastructure/sheets"
	"macroDash/internal/infrastructure/source"
	"macroDash/internal/pkg/logger"
	"macroDash/internal/usecase/dashboard"
	"macroDash/internal/usecase/datacache"
)

const AppName = "DASHBOARD"

// Драйверы истории загрузок.
const (
	HistoryNone     = "none"
	HistoryPostgres = "postgres"
	HistoryMongo    = "mongo"
)

// GrpcConfig — настройки gRPC-сервера. Переменные: DASHBOARD_GRPC_ENABLED, DASHBOARD_GRPC_HOST, DASHBOARD_GRPC_PORT.
type GrpcConfig struct {
	Enabled bool   `envconfig:"ENABLED" default:"true"`
	Host    string `envconfig:"HOST" default:"0.0.0.0"`
	Port    string `envconfig:"PORT" default:"9090"`
}

// CacheConfig — сроки жизни наборов и поведение при ошибках. Переменные: DASHBOARD_CACHE_*.
type CacheConfig struct {
	TTL time.Duration `envconfig:"TTL" default:"5m"`
	// TTLOverrides — сроки по наборам: "municipalities:1h,sales:2m". Оценка населения меняется раз в год.
	TTLOverrides  map[string]time.Duration `envconfig:"TTL_OVERRIDES" default:"municipalities:1h,population:168h"`
	MaxStale      time.Duration            `envconfig:"MAX_STALE" default:"24h"`
	ErrorTTL      time.Duration            `envconfig:"ERROR_TTL" default:"30s"`
	RetryAttempts int                      `envconfig:"RETRY_ATTEMPTS" default:"1"`
	RetryBackoff  time.Duration            `envconfig:"RETRY_BACKOFF" default:"500ms"`
	// Warmup — загрузить все наборы при старте, не дожидаясь первого запроса.
	Warmup bool `envconfig:"WARMUP" default:"true"`
}

// HistoryConfig — куда писать историю загрузок. Переменная: DASHBOARD_HISTORY_DRIVER (none|postgres|mongo).
type HistoryConfig struct {
	Driver string `envconfig:"DRIVER" default:"none"`
}

// Config — конфиг приложения. Заполняется через envconfig с префиксом DASHBOARD.
type Config struct {
	Log    logger.Config     `envconfig:"LOG"`
	Server http.ServerConfig `envconfig:"SERVER"`
	Grpc   GrpcConfig        `envconfig:"GRPC"`

	Sheets   sheets.Config `envconfig:"SHEETS"`
	Poles    sheets.Source `envconfig:"POLES"`
	Students sheets.Source `envconfig:"STUDENTS"`
	Sales    sheets.Source `envconfig:"SALES"`
	IBGE     ibge.Config   `envconfig:"IBGE"`

	Cache   CacheConfig   `envconfig:"CACHE"`
	History HistoryConfig `envconfig:"HISTORY"`

	DB         pg.Config    `envconfig:"DB"`
	Mongo      mongo.Config `envconfig:"MONGO"`
	Redis      redis.Config `envconfig:"REDIS"`
	Kafka      kafka.Config `envconfig:"KAFKA"`
	ClickHouse click.Config `envconfig:"CLICKHOUSE"`
}

// LoadCfg загружает конфиг: подтягивает .env (godotenv), затем заполняет структуру из окружения (envconfig).
// Путь к .env можно задать в DASHBOARD_ENV_FILE.
func LoadCfg() (Config, error) {
	envFile := os.Getenv(AppName + "_ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Printf("config: %s не найден, используем окружение: %v", envFile, err)
	}

	var cfg Config
	if err := envconfig.Process(AppName, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate проверяет значения, которые envconfig не может проверить сам.
// Отсутствие ключей таблиц не ошибка: соответствующие разделы покажут сообщение о недоступности.
func (c Config) Validate() error {
	switch c.History.Driver {
	case HistoryNone, HistoryPostgres, HistoryMongo:
	default:
		return fmt.Errorf("config: unknown history driver %q", c.History.Driver)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("config: cache ttl must be positive, got %s", c.Cache.TTL)
	}
	if _, err := c.ttlOverrides(); err != nil {
		return err
	}
	return nil
}

func (c Config) ttlOverrides() (map[domain.DatasetName]time.Duration, error) {
	out := make(map[domain.DatasetName]time.Duration, len(c.Cache.TTLOverrides))
	for k, d := range c.Cache.TTLOverrides {
		name, err := domain.ParseDatasetName(k)
		if err != nil {
			return nil, fmt.Errorf("config: ttl override %q: %w", k, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("config: ttl override %q must be positive", k)
		}
		out[name] = d
	}
	return out, nil
}

// Sources — таблицы наборов для коннектора.
func (c Config) Sources() sheets.Sources {
	return sheets.Sources{Poles: c.Poles, Students: c.Students, Sales: c.Sales}
}

// Connector собирает источник наборов: таблицы читаются из Google Sheets, население из IBGE.
// При выключенном IBGE набор population отвечает domain.ErrNotFound.
func (c Config) Connector(ctx context.Context, log *slog.Logger) (*source.Mux, error) {
	sh, err := sheets.New(ctx, c.Sheets, c.Sources(), log)
	if err != nil {
		return nil, fmt.Errorf("sheets: %w", err)
	}
	mux := source.NewMux(log).Handle(sh,
		domain.DatasetPoles, domain.DatasetMunicipalities, domain.DatasetStudents, domain.DatasetSales)
	if c.IBGE.Enabled {
		mux.Handle(ibge.New(c.IBGE, log), domain.DatasetPopulation)
	}
	return mux, nil
}

// CacheOptions — настройки слоя кэша.
func (c Config) CacheOptions() datacache.Options {
	return datacache.Options{
		MaxStale:      c.Cache.MaxStale,
		ErrorTTL:      c.Cache.ErrorTTL,
		RetryAttempts: c.Cache.RetryAttempts,
		RetryBackoff:  c.Cache.RetryBackoff,
	}
}

// DashboardOptions — настройки оркестратора. Вызывать после Validate.
func (c Config) DashboardOptions() dashboard.Options {
	overrides, _ := c.ttlOverrides()
	return dashboard.Options{TTL: c.Cache.TTL, TTLOverrides: overrides}
}
