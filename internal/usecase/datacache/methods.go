package datacache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"macroDash/internal/domain"
)

// GetOrFetch отдаёт снимок из памяти, если он моложе ttl. Иначе загружает набор из источника
// (одна загрузка на набор, остальные вызывающие ждут её результат). При ошибке источника отдаёт
// прошлый снимок с Stale == true; если снимка нет ни в памяти, ни в общем хранилище, возвращает ошибку источника.
func (c *Cache) GetOrFetch(ctx context.Context, name domain.DatasetName, ttl time.Duration) (*domain.Snapshot, error) {
	if !name.Valid() {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownDataset, name)
	}
	if snap := c.fresh(name, ttl); snap != nil {
		cacheHitsTotal.WithLabelValues(name.String()).Inc()
		return snap, nil
	}

	// Загрузка не зависит от отмены контекста первого вызывающего: её результат нужен всем ожидающим.
	ch := c.flights.DoChan(name.String(), func() (any, error) {
		return c.load(context.WithoutCancel(ctx), name, ttl)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*domain.Snapshot), nil
	}
}

// Invalidate помечает запись устаревшей и сбрасывает паузу после ошибки. Данные остаются запасным снимком.
func (c *Cache) Invalidate(name domain.DatasetName) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[name]; ok {
		e.invalidated = true
		e.lastErr = nil
		e.failedAt = time.Time{}
	}
}

// Entries — состояние записей по всем известным наборам.
func (c *Cache) Entries() []domain.EntryStatus {
	now := c.clock.Now()
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.EntryStatus, 0, len(domain.AllDatasets))
	for _, name := range domain.AllDatasets {
		st := domain.EntryStatus{Dataset: name}
		if e, ok := c.entries[name]; ok {
			if e.ds != nil {
				st.Cached = true
				st.FetchedAt = e.ds.FetchedAt
				st.TTL = e.ttl
				st.Expired = !e.valid(now, e.ttl)
				st.Rows = e.ds.Rows()
			}
			if e.lastErr != nil {
				st.LastError = e.lastErr.Error()
			}
		}
		out = append(out, st)
	}
	return out
}

func (e *entry) valid(now time.Time, ttl time.Duration) bool {
	return e.ds != nil && !e.invalidated && now.Sub(e.ds.FetchedAt) < ttl
}

// fresh возвращает снимок, если он ещё действителен для ttl.
func (c *Cache) fresh(name domain.DatasetName, ttl time.Duration) *domain.Snapshot {
	now := c.clock.Now()
	c.mu.RLock()
	defer c.mu.RUnlock()
	if e, ok := c.entries[name]; ok && e.valid(now, ttl) {
		return &domain.Snapshot{Dataset: e.ds}
	}
	return nil
}

// load выполняется внутри singleflight.
func (c *Cache) load(ctx context.Context, name domain.DatasetName, ttl time.Duration) (*domain.Snapshot, error) {
	// Пока ждали своей очереди, запись мог обновить предыдущий полёт.
	if snap := c.fresh(name, ttl); snap != nil {
		cacheHitsTotal.WithLabelValues(name.String()).Inc()
		return snap, nil
	}
	cacheMissesTotal.WithLabelValues(name.String()).Inc()

	c.mu.RLock()
	var lastErr error
	if e, ok := c.entries[name]; ok && e.lastErr != nil && c.clock.Since(e.failedAt) < c.opts.ErrorTTL {
		lastErr = e.lastErr
	}
	c.mu.RUnlock()
	if lastErr != nil {
		c.log.Debug("dataset fetch suppressed after recent failure", "dataset", name, "error", lastErr)
		return c.fallback(ctx, name, lastErr)
	}

	ds, err := c.fetch(ctx, name)
	if err != nil {
		c.mu.Lock()
		e, ok := c.entries[name]
		if !ok {
			e = &entry{}
			c.entries[name] = e
		}
		e.lastErr = err
		e.failedAt = c.clock.Now()
		c.mu.Unlock()
		return c.fallback(ctx, name, err)
	}

	ds.FetchedAt = c.clock.Now()
	c.mu.Lock()
	c.entries[name] = &entry{ds: ds, ttl: ttl}
	c.mu.Unlock()
	c.log.Info("dataset refreshed", "dataset", name, "rows", ds.Rows(), "quarantined", len(ds.Quarantined))

	if c.store != nil {
		if err := c.store.Save(ctx, ds); err != nil {
			c.log.Warn("snapshot save", "dataset", name, "error", err)
		}
	}
	return &domain.Snapshot{Dataset: ds}, nil
}

// fetch загружает набор, повторяя временные ошибки. Каждая попытка попадает в историю.
func (c *Cache) fetch(ctx context.Context, name domain.DatasetName) (*domain.Dataset, error) {
	var err error
	for attempt := 0; attempt <= c.opts.RetryAttempts; attempt++ {
		if attempt > 0 && c.opts.RetryBackoff > 0 {
			select {
			case <-ctx.Done():
				return nil, err
			case <-c.clock.After(c.opts.RetryBackoff):
			}
		}

		start := c.clock.Now()
		var ds *domain.Dataset
		ds, err = c.src.Fetch(ctx, name)
		elapsed := c.clock.Since(start)
		if err == nil {
			if ds == nil {
				ds = &domain.Dataset{}
			}
			ds.Name = name
		}
		c.record(ctx, name, ds, err, elapsed)

		if err == nil {
			return ds, nil
		}
		c.log.Warn("dataset fetch failed", "dataset", name, "attempt", attempt+1, "error", err)
		if !domain.IsRetryable(err) {
			break
		}
	}
	return nil, err
}

// fallback подбирает запасной снимок после ошибки источника.
func (c *Cache) fallback(ctx context.Context, name domain.DatasetName, cause error) (*domain.Snapshot, error) {
	now := c.clock.Now()
	c.mu.Lock()
	var ds *domain.Dataset
	if e, ok := c.entries[name]; ok && e.ds != nil {
		if c.withinMaxStale(now, e.ds) {
			ds = e.ds
		} else {
			e.ds = nil
		}
	}
	c.mu.Unlock()

	if ds == nil && c.store != nil {
		stored, found, err := c.store.Load(ctx, name)
		switch {
		case err != nil:
			c.log.Warn("snapshot load", "dataset", name, "error", err)
		case found && c.withinMaxStale(now, stored):
			ds = stored
			c.mu.Lock()
			if e, ok := c.entries[name]; ok && e.ds == nil {
				e.ds = stored
			}
			c.mu.Unlock()
		}
	}

	if ds == nil {
		return nil, cause
	}
	cacheStaleTotal.WithLabelValues(name.String()).Inc()
	c.log.Warn("serving stale dataset", "dataset", name, "fetched_at", ds.FetchedAt, "error", cause)
	return &domain.Snapshot{Dataset: ds, Stale: true, Cause: cause}, nil
}

func (c *Cache) withinMaxStale(now time.Time, ds *domain.Dataset) bool {
	return c.opts.MaxStale <= 0 || now.Sub(ds.FetchedAt) <= c.opts.MaxStale
}

func (c *Cache) record(ctx context.Context, name domain.DatasetName, ds *domain.Dataset, err error, elapsed time.Duration) {
	ev := domain.RefreshEvent{
		ID:       uuid.NewString(),
		Dataset:  name,
		Status:   domain.RefreshOK,
		Duration: elapsed,
		At:       c.clock.Now(),
	}
	if err != nil {
		ev.Status = domain.RefreshFailed
		ev.Error = err.Error()
	} else if ds != nil {
		ev.Rows = ds.Rows()
		ev.Quarantined = len(ds.Quarantined)
	}
	fetchDuration.WithLabelValues(name.String(), string(ev.Status)).Observe(elapsed.Seconds())
	if c.sink != nil {
		c.sink.Record(ctx, ev)
	}
}
