package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	apigrpc "macroDash/internal/api/grpc"
	"macroDash/internal/api/grpc/health"
	apihttp "macroDash/internal/api/http"
	dashboardctl "macroDash/internal/api/http/controllers/dashboard"
	"macroDash/internal/api/http/controllers/system"
	"macroDash/internal/infrastructure/click"
	"macroDash/internal/infrastructure/kafka"
	"macroDash/internal/infrastructure/mongo"
	"macroDash/internal/infrastructure/pg"
	"macroDash/internal/infrastructure/redis"
	"macroDash/internal/pkg/logger"
	"macroDash/internal/ports"
	"macroDash/internal/usecase/dashboard"
	"macroDash/internal/usecase/datacache"
	"macroDash/internal/usecase/history"
)

const connectTimeout = 15 * time.Second

// App — приложение, хранит только конфиг.
type App struct {
	cfg Config
}

// New создаёт приложение с конфигом (подключения поднимаются в Run).
func New(cfg Config) *App {
	return &App{cfg: cfg}
}

// infra — необязательные подключения. Закрываются в обратном порядке.
type infra struct {
	repo      ports.IRefreshRepository
	store     ports.ISnapshotStore
	producer  ports.IProducer
	analytics ports.IRefreshAnalytics
	consume   bool
	deps      map[string]system.Pinger
	closers   []func() error
}

func (i *infra) close(log *slog.Logger) {
	for j := len(i.closers) - 1; j >= 0; j-- {
		if err := i.closers[j](); err != nil {
			log.Warn("close failed", "error", err)
		}
	}
}

// Run поднимает подключения, собирает зависимости и запускает HTTP- и gRPC-серверы (блокирующий вызов до SIGINT/SIGTERM).
func (a *App) Run() error {
	log := logger.New(a.cfg.Log)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	inf, err := a.connect(ctx, log)
	if err != nil {
		return err
	}
	defer inf.close(log)

	hist := history.New(inf.repo, inf.producer, inf.analytics, log)
	var sink ports.IRefreshSink
	if inf.repo != nil || inf.producer != nil {
		sink = hist
	}

	src, err := a.cfg.Connector(ctx, log)
	if err != nil {
		return err
	}
	cache := datacache.New(src, inf.store, sink, a.cfg.CacheOptions(), log)

	var (
		observer ports.IStateObserver
		grpcSrv  *apigrpc.Server
		grpcAddr string
	)
	if a.cfg.Grpc.Enabled {
		hs := health.NewObserver(log)
		observer = hs
		grpcAddr = a.cfg.Grpc.Host + ":" + a.cfg.Grpc.Port
		grpcSrv = apigrpc.NewServer(grpcAddr, hs, log)
		go func() {
			if err := grpcSrv.Start(); err != nil {
				slog.Error("grpc server failed", "error", err)
			}
		}()
	}

	uc := dashboard.New(cache, observer, a.cfg.DashboardOptions(), log)
	if a.cfg.Cache.Warmup {
		go uc.Warmup(ctx)
	}

	if inf.consume {
		consumer := kafka.NewConsumer(&a.cfg.Kafka, hist, log)
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				slog.Error("kafka consumer failed", "error", err)
			}
			_ = consumer.Close()
		}()
	}

	srv := apihttp.NewServer(a.cfg.Server, log)
	srv.AddController(
		system.New(inf.deps, log),
		dashboardctl.New(uc, hist, log))

	httpAddr := a.cfg.Server.Host + ":" + a.cfg.Server.Port
	slog.Info("application started", "http", httpAddr, "grpc", grpcAddr,
		"history", a.cfg.History.Driver, "redis", a.cfg.Redis.Enabled,
		"kafka", a.cfg.Kafka.Enabled, "clickhouse", a.cfg.ClickHouse.Enabled)

	if err := srv.Start(ctx); err != nil {
		return err
	}
	if grpcSrv == nil {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return grpcSrv.Stop(shutdownCtx)
}

// connect поднимает включённые в конфиге подключения. Ошибка любого из них останавливает запуск:
// выключенную зависимость нужно выключить явно.
func (a *App) connect(ctx context.Context, log *slog.Logger) (_ *infra, err error) {
	inf := &infra{deps: map[string]system.Pinger{}}
	defer func() {
		if err != nil {
			inf.close(log)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	switch a.cfg.History.Driver {
	case HistoryPostgres:
		db, err := pg.New(ctx, &a.cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("db: %w", err)
		}
		inf.closers = append(inf.closers, db.Close)
		if err := pg.Migrate(ctx, db); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		repo := pg.NewRefreshRepo(db, log)
		inf.repo = repo
		inf.deps["history"] = repo
	case HistoryMongo:
		client, err := mongo.New(ctx, &a.cfg.Mongo)
		if err != nil {
			return nil, fmt.Errorf("mongo: %w", err)
		}
		inf.closers = append(inf.closers, func() error { return client.Disconnect(context.Background()) })
		repo := mongo.NewRefreshRepo(client, log)
		if err := repo.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
		inf.repo = repo
		inf.deps["history"] = repo
	}

	if a.cfg.Redis.Enabled {
		rdb, err := redis.New(ctx, &a.cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
		inf.closers = append(inf.closers, rdb.Close)
		inf.store = redis.NewSnapshotStore(rdb, &a.cfg.Redis, log)
		inf.deps["redis"] = rdb
	}

	if a.cfg.ClickHouse.Enabled {
		ch, err := click.New(ctx, &a.cfg.ClickHouse)
		if err != nil {
			return nil, fmt.Errorf("clickhouse: %w", err)
		}
		inf.closers = append(inf.closers, ch.Close)
		writer := click.NewRefreshWriter(ch)
		if err := writer.EnsureTable(ctx); err != nil {
			return nil, fmt.Errorf("clickhouse table: %w", err)
		}
		inf.analytics = writer
		inf.deps["clickhouse"] = ch
	}

	if a.cfg.Kafka.Enabled {
		producer := kafka.NewProducer(&a.cfg.Kafka)
		inf.closers = append(inf.closers, producer.Close)
		inf.producer = producer
		// Без ClickHouse читать события некуда.
		inf.consume = a.cfg.Kafka.Consume && inf.analytics != nil
	}
	return inf, nil
}
