package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"macroDash/internal/domain"
)

// Warmup загружает все наборы параллельно. Ошибки только логируются: разделы сообщат о них сами.
func (u *UseCase) Warmup(ctx context.Context) {
	var g errgroup.Group
	for _, name := range domain.AllDatasets {
		g.Go(func() error {
			snap, err := u.load(ctx, name)
			switch {
			case err != nil:
				u.log.Warn("warmup: dataset unavailable", "dataset", name, "error", err)
			case snap.Stale:
				u.log.Warn("warmup: dataset stale", "dataset", name, "error", snap.Cause)
			default:
				u.log.Info("warmup: dataset loaded", "dataset", name, "rows", snap.Dataset.Rows())
			}
			return nil
		})
	}
	_ = g.Wait()
}

// Section собирает данные раздела. Если недоступен один из наборов, возвращает *domain.UnavailableError
// только для этого раздела.
func (u *UseCase) Section(ctx context.Context, req domain.ViewRequest) (*domain.SectionResult, error) {
	snaps, missing, err := u.gather(ctx, req.Section)
	if err != nil {
		return nil, err
	}
	data, warnings := build(req.Section, snaps, req.Filters)

	res := &domain.SectionResult{
		Section:     req.Section,
		GeneratedAt: u.clock.Now(),
		DataAsOf:    make(map[domain.DatasetName]time.Time, len(snaps)),
		Data:        data,
	}
	names := append(req.Section.Datasets(), req.Section.OptionalDatasets()...)
	for _, name := range names {
		snap, ok := snaps[name]
		if !ok {
			continue
		}
		res.DataAsOf[name] = snap.Dataset.FetchedAt
		if snap.Stale {
			res.Warnings = append(res.Warnings, domain.Warning{
				Code:    domain.WarnStaleData,
				Dataset: name,
				Message: staleMessage(name, snap),
			})
		}
		if n := len(snap.Dataset.Quarantined); n > 0 {
			res.Warnings = append(res.Warnings, domain.Warning{
				Code:    domain.WarnQuarantined,
				Dataset: name,
				Message: fmt.Sprintf("%d linhas de %q ignoradas por erro de formato", n, name),
				Count:   n,
			})
		}
	}
	res.Warnings = append(res.Warnings, missing...)
	res.Warnings = append(res.Warnings, warnings...)
	return res, nil
}

// Report собирает раздел в табличном виде для выгрузки.
func (u *UseCase) Report(ctx context.Context, req domain.ViewRequest) (*domain.Report, error) {
	snaps, _, err := u.gather(ctx, req.Section)
	if err != nil {
		return nil, err
	}
	data, _ := build(req.Section, snaps, req.Filters)
	rep := report(req.Section, data)
	return &rep, nil
}

// Datasets — состояние всех наборов: стадия загрузки и запись кэша.
func (u *UseCase) Datasets(ctx context.Context) []domain.DatasetStatus {
	entries := u.cache.Entries()
	out := make([]domain.DatasetStatus, 0, len(entries))
	for _, e := range entries {
		out = append(out, u.status(e.Dataset, e))
	}
	return out
}

// Refresh помечает снимок устаревшим и загружает набор заново. Статус возвращается и при ошибке.
func (u *UseCase) Refresh(ctx context.Context, name domain.DatasetName) (*domain.DatasetStatus, error) {
	if !name.Valid() {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownDataset, name)
	}
	u.cache.Invalidate(name)
	_, err := u.load(ctx, name)

	st := u.status(name, domain.EntryStatus{Dataset: name})
	for _, e := range u.cache.Entries() {
		if e.Dataset == name {
			st = u.status(name, e)
			break
		}
	}
	return &st, err
}

// Invalidate помечает снимок набора устаревшим.
func (u *UseCase) Invalidate(name domain.DatasetName) error {
	if !name.Valid() {
		return fmt.Errorf("%w: %s", domain.ErrUnknownDataset, name)
	}
	u.cache.Invalidate(name)
	u.log.Info("dataset invalidated", "dataset", name)
	return nil
}

// gather загружает наборы раздела параллельно. Отказ обязательного набора делает раздел недоступным,
// отказ дополнительного превращается в предупреждение.
func (u *UseCase) gather(ctx context.Context, section domain.Section) (snapshots, []domain.Warning, error) {
	if !section.Valid() {
		return nil, nil, fmt.Errorf("%w: %s", domain.ErrUnknownSection, section)
	}
	required := section.Datasets()
	optional := section.OptionalDatasets()

	var (
		mu       sync.Mutex
		snaps    = make(snapshots, len(required)+len(optional))
		warnings []domain.Warning
	)
	// Без WithContext: отказ одного набора не должен прерывать загрузку остальных.
	var g errgroup.Group
	for _, name := range required {
		g.Go(func() error {
			snap, err := u.load(ctx, name)
			if err != nil {
				return &domain.UnavailableError{Section: section, Dataset: name, Err: err}
			}
			mu.Lock()
			snaps[name] = snap
			mu.Unlock()
			return nil
		})
	}
	for _, name := range optional {
		g.Go(func() error {
			snap, err := u.load(ctx, name)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				u.log.Warn("optional dataset unavailable", "section", section, "dataset", name, "error", err)
				ue := &domain.UnavailableError{Section: section, Dataset: name, Err: err}
				warnings = append(warnings, domain.Warning{Code: domain.WarnMissingData, Dataset: name, Message: ue.Message()})
				return nil
			}
			snaps[name] = snap
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		u.log.Warn("section unavailable", "section", section, "error", err)
		return nil, nil, err
	}
	return snaps, warnings, nil
}

func staleMessage(name domain.DatasetName, snap *domain.Snapshot) string {
	return fmt.Sprintf("Dados de %q desatualizados (carregados em %s): a fonte não respondeu.",
		name, snap.Dataset.FetchedAt.Format("02/01/2006 15:04"))
}
