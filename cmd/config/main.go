// Печатает итоговый конфиг дашборда после godotenv + envconfig: что подхватилось из .env и окружения.
// Секреты (ключи API, пароли) маскируются.
//
//	go run ./cmd/config
//	go run ./cmd/config -usage   # список всех переменных DASHBOARD_*
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/kelseyhightower/envconfig"

	"macroDash/internal/app"
	"macroDash/internal/infrastructure/sheets"
)

func main() {
	usage := flag.Bool("usage", false, "print all DASHBOARD_* variables with defaults")
	flag.Parse()

	if *usage {
		var cfg app.Config
		if err := envconfig.Usage(app.AppName, &cfg); err != nil {
			log.Fatalf("usage: %v", err)
		}
		return
	}

	cfg, err := app.LoadCfg()
	if err != nil {
		log.Fatalf("ошибка конфига: %v", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	row := func(k string, v any) { fmt.Fprintf(w, "%s\t%v\n", k, v) }
	row("log", fmt.Sprintf("level=%s file=%s format=%s", cfg.Log.Level, cfg.Log.File, cfg.Log.Format))
	row("http", cfg.Server.Host+":"+cfg.Server.Port)
	row("grpc", fmt.Sprintf("enabled=%t %s:%s", cfg.Grpc.Enabled, cfg.Grpc.Host, cfg.Grpc.Port))
	for _, src := range []struct {
		name string
		s    sheets.Source
	}{{"poles", cfg.Poles}, {"students", cfg.Students}, {"sales", cfg.Sales}} {
		row("sheets."+src.name, fmt.Sprintf("api_key=%s sheet_id=%s tab=%q", mask(src.s.APIKey), src.s.SheetID, src.s.Tab))
	}
	row("sheets", fmt.Sprintf("rps=%g timeout=%s municipalities_tab=%q", cfg.Sheets.RPS, cfg.Sheets.Timeout, cfg.Sheets.MunicipalitiesTab))
	row("ibge", fmt.Sprintf("enabled=%t period=%s timeout=%s urls=%d", cfg.IBGE.Enabled, cfg.IBGE.Period, cfg.IBGE.Timeout, len(cfg.IBGE.URLs)))
	row("cache", fmt.Sprintf("ttl=%s overrides=%v max_stale=%s error_ttl=%s retries=%d backoff=%s",
		cfg.Cache.TTL, cfg.Cache.TTLOverrides, cfg.Cache.MaxStale, cfg.Cache.ErrorTTL, cfg.Cache.RetryAttempts, cfg.Cache.RetryBackoff))
	row("history", cfg.History.Driver)
	row("db", fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s", cfg.DB.Host, cfg.DB.Port, cfg.DB.User, mask(cfg.DB.Password), cfg.DB.DBName))
	row("mongo", fmt.Sprintf("database=%s collection=%s", cfg.Mongo.Database, cfg.Mongo.Collection))
	row("redis", fmt.Sprintf("enabled=%t addr=%s snapshot_ttl=%s", cfg.Redis.Enabled, cfg.Redis.Addr(), cfg.Redis.SnapshotTTL))
	row("kafka", fmt.Sprintf("enabled=%t brokers=%s topic=%s consume=%t", cfg.Kafka.Enabled, cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.Consume))
	row("clickhouse", fmt.Sprintf("enabled=%t addr=%s", cfg.ClickHouse.Enabled, cfg.ClickHouse.Addr()))
}

// mask оставляет видимыми последние 4 символа секрета.
func mask(s string) string {
	switch {
	case s == "":
		return "<unset>"
	case len(s) <= 4:
		return "****"
	default:
		return "****" + s[len(s)-4:]
	}
}
