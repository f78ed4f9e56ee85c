package history

import (
	"context"
	"encoding/json"

	"macroDash/internal/domain"
)

// Record сохраняет событие в репозиторий и публикует в брокер. Ошибки только логируются:
// история не должна мешать загрузке данных.
func (u *UseCase) Record(ctx context.Context, ev domain.RefreshEvent) {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if u.repo != nil {
		if err := u.repo.SaveRefresh(ctx, ev); err != nil {
			u.log.Warn("refresh save", "dataset", ev.Dataset, "id", ev.ID, "error", err)
		} else {
			u.log.Debug("refresh saved", "dataset", ev.Dataset, "id", ev.ID, "status", ev.Status)
		}
	}

	if u.broker == nil {
		return
	}
	value, err := json.Marshal(ev)
	if err != nil {
		u.log.Warn("refresh encode", "dataset", ev.Dataset, "error", err)
		return
	}
	if err := u.broker.Send(ctx, []byte(ev.Dataset), value); err != nil {
		u.log.Warn("broker send", "dataset", ev.Dataset, "id", ev.ID, "error", err)
	} else {
		u.log.Debug("refresh published", "dataset", ev.Dataset, "id", ev.ID)
	}
}

// History — последние загрузки (обвязка над репозиторием). limit вне (0, MaxLimit] заменяется границей.
func (u *UseCase) History(ctx context.Context, limit int) ([]domain.RefreshEvent, error) {
	if u.repo == nil {
		return nil, domain.ErrHistoryDisabled
	}
	switch {
	case limit <= 0:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}
	return u.repo.ListRefreshes(ctx, limit)
}

// HandleRefreshEvent вызывается консьюмером при получении события из топика загрузок.
func (u *UseCase) HandleRefreshEvent(ctx context.Context, ev domain.RefreshEvent) error {
	if u.analytics == nil {
		return nil
	}
	if err := u.analytics.WriteRefresh(ctx, ev); err != nil {
		u.log.Warn("analytics write", "dataset", ev.Dataset, "id", ev.ID, "error", err)
		return err
	}
	u.log.Info("refresh stored to click", "dataset", ev.Dataset, "status", ev.Status, "rows", ev.Rows, "duration", ev.Duration)
	return nil
}
