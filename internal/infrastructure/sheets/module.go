package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"macroDash/internal/domain"
)

// Вкладки по умолчанию — как в исходных таблицах.
const (
	defaultPolesTab          = "POLOS ATIVOS"
	defaultStudentsTab       = "lista_alunos"
	defaultSalesTab          = "Base de Vendas"
	defaultMunicipalitiesTab = "Sheet3"
)

// Source — доступ к одной таблице. Переменные: DASHBOARD_POLES_API_KEY, DASHBOARD_POLES_SHEET_ID, DASHBOARD_POLES_TAB и т.д.
type Source struct {
	APIKey  string `envconfig:"API_KEY"`
	SheetID string `envconfig:"SHEET_ID"`
	Tab     string `envconfig:"TAB"`
}

// Sources — три таблицы дашборда. Муниципалитеты читаются из таблицы полюсов.
type Sources struct {
	Poles    Source
	Students Source
	Sales    Source
}

// Config — общие настройки клиента. Переменные: DASHBOARD_SHEETS_RPS, DASHBOARD_SHEETS_TIMEOUT, ...
type Config struct {
	RPS               float64       `envconfig:"RPS" default:"5"`
	Timeout           time.Duration `envconfig:"TIMEOUT" default:"15s"`
	MunicipalitiesTab string        `envconfig:"MUNICIPALITIES_TAB" default:"Sheet3"`
	// Endpoint переопределяет адрес API (прокси, тесты). Должен заканчиваться на "/".
	Endpoint string `envconfig:"ENDPOINT"`
}

type source struct {
	svc     *gsheets.Service // nil, если ключ не задан
	sheetID string
	tab     string
}

// Client — клиенты Sheets API по наборам и общий ограничитель запросов.
type Client struct {
	cfg     Config
	sources map[domain.DatasetName]source
	limiter *rate.Limiter
	decoder *decoder
	log     *slog.Logger
}

// New создаёт клиент. Сеть не трогает: запросы идут только в Fetch.
func New(ctx context.Context, cfg Config, src Sources, log *slog.Logger) (*Client, error) {
	limit := rate.Inf
	if cfg.RPS > 0 {
		limit = rate.Limit(cfg.RPS)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	c := &Client{
		cfg:     cfg,
		sources: make(map[domain.DatasetName]source, len(domain.AllDatasets)),
		limiter: rate.NewLimiter(limit, 1),
		decoder: newDecoder(time.Now),
		log:     log,
	}

	municipalities := src.Poles
	municipalities.Tab = cfg.MunicipalitiesTab
	for name, s := range map[domain.DatasetName]Source{
		domain.DatasetPoles:          withDefaultTab(src.Poles, defaultPolesTab),
		domain.DatasetStudents:       withDefaultTab(src.Students, defaultStudentsTab),
		domain.DatasetSales:          withDefaultTab(src.Sales, defaultSalesTab),
		domain.DatasetMunicipalities: withDefaultTab(municipalities, defaultMunicipalitiesTab),
	} {
		svc, err := c.service(ctx, s.APIKey)
		if err != nil {
			return nil, fmt.Errorf("sheets %s: %w", name, err)
		}
		c.sources[name] = source{svc: svc, sheetID: s.SheetID, tab: s.Tab}
	}
	return c, nil
}

func (c *Client) service(ctx context.Context, apiKey string) (*gsheets.Service, error) {
	if apiKey == "" {
		return nil, nil
	}
	opts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if c.cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(c.cfg.Endpoint))
	}
	return gsheets.NewService(ctx, opts...)
}

func withDefaultTab(s Source, tab string) Source {
	if s.Tab == "" {
		s.Tab = tab
	}
	return s
}
