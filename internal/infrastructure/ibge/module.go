package ibge

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config — API агрегатов IBGE. Переменные: DASHBOARD_IBGE_ENABLED, DASHBOARD_IBGE_URLS, DASHBOARD_IBGE_PERIOD, DASHBOARD_IBGE_TIMEOUT.
type Config struct {
	Enabled bool `envconfig:"ENABLED" default:"true"`
	// URLs опрашиваются по порядку до первого удачного ответа: сначала v3, затем v2.
	URLs    []string      `envconfig:"URLS" default:"https://servicodados.ibge.gov.br/api/v3/agregados/6579/periodos/2022/variaveis/9340?localidades=N6[all],https://servicodados.ibge.gov.br/api/v2/agregados/6579/periodos/2022/variaveis/9340?localidades=N6[all]"`
	Period  string        `envconfig:"PERIOD" default:"2022"`
	Timeout time.Duration `envconfig:"TIMEOUT" default:"10s"`
}

// Client — загрузка оценки населения муниципалитетов.
type Client struct {
	cfg      Config
	http     *http.Client
	validate *validator.Validate
	log      *slog.Logger
}

func New(cfg Config, log *slog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		cfg:      cfg,
		http:     &http.Client{Timeout: cfg.Timeout},
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
	}
}
