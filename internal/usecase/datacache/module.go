package datacache

import (
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	"macroDash/internal/domain"
	"macroDash/internal/ports"
)

// Options — настройки кэша. Переменные DASHBOARD_CACHE_*.
type Options struct {
	// MaxStale — сколько устаревший снимок может служить запасным. 0 — без ограничения.
	MaxStale time.Duration
	// ErrorTTL — сколько после неудачной загрузки не обращаться к источнику повторно.
	ErrorTTL time.Duration
	// RetryAttempts — дополнительные попытки при временной ошибке.
	RetryAttempts int
	RetryBackoff  time.Duration
	Clock         clockwork.Clock
}

type entry struct {
	ds          *domain.Dataset
	ttl         time.Duration
	invalidated bool
	lastErr     error
	failedAt    time.Time
}

// Cache — кэш наборов в памяти процесса. Одна загрузка на набор в каждый момент времени.
type Cache struct {
	src   ports.ISourceConnector
	store ports.ISnapshotStore // может быть nil
	sink  ports.IRefreshSink   // может быть nil
	opts  Options
	clock clockwork.Clock
	log   *slog.Logger

	mu      sync.RWMutex
	entries map[domain.DatasetName]*entry
	flights singleflight.Group
}

var _ ports.IDatasetCache = (*Cache)(nil)

// New создаёт кэш. store и sink необязательны.
func New(src ports.ISourceConnector, store ports.ISnapshotStore, sink ports.IRefreshSink, opts Options, log *slog.Logger) *Cache {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if opts.RetryAttempts < 0 {
		opts.RetryAttempts = 0
	}
	return &Cache{
		src:     src,
		store:   store,
		sink:    sink,
		opts:    opts,
		clock:   clock,
		log:     log,
		entries: make(map[domain.DatasetName]*entry, len(domain.AllDatasets)),
	}
}
