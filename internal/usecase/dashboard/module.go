package dashboard

import (
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"macroDash/internal/domain"
	"macroDash/internal/ports"
)

// Options — настройки оркестратора.
type Options struct {
	// TTL — срок действия снимка по умолчанию.
	TTL time.Duration
	// TTLOverrides — отдельные сроки для наборов (например, продажи обновляются чаще).
	TTLOverrides map[domain.DatasetName]time.Duration
	Clock        clockwork.Clock
}

// UseCase — оркестратор дашборда: загружает наборы через кэш, ведёт их состояния и собирает разделы.
type UseCase struct {
	cache    ports.IDatasetCache
	observer ports.IStateObserver // может быть nil
	opts     Options
	clock    clockwork.Clock
	log      *slog.Logger

	mu     sync.Mutex
	states map[domain.DatasetName]*datasetState
}

var _ ports.IDashboardUseCase = (*UseCase)(nil)

// New создаёт оркестратор; все наборы в состоянии Idle.
func New(cache ports.IDatasetCache, observer ports.IStateObserver, opts Options, log *slog.Logger) *UseCase {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	u := &UseCase{
		cache:    cache,
		observer: observer,
		opts:     opts,
		clock:    clock,
		log:      log,
		states:   make(map[domain.DatasetName]*datasetState, len(domain.AllDatasets)),
	}
	now := clock.Now()
	for _, name := range domain.AllDatasets {
		u.states[name] = &datasetState{state: domain.StateIdle, changedAt: now}
	}
	return u
}

// ttl — срок действия снимка набора с учётом переопределений.
func (u *UseCase) ttl(name domain.DatasetName) time.Duration {
	if d, ok := u.opts.TTLOverrides[name]; ok && d > 0 {
		return d
	}
	return u.opts.TTL
}
