package pg

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"macroDash/internal/domain"
	"macroDash/internal/ports"
)

var _ ports.IRefreshRepository = (*RefreshRepo)(nil)

// RefreshRepo реализует ports.IRefreshRepository для PostgreSQL.
type RefreshRepo struct {
	db  *DB
	log *slog.Logger
}

// NewRefreshRepo возвращает репозиторий истории загрузок.
func NewRefreshRepo(db *DB, log *slog.Logger) *RefreshRepo {
	return &RefreshRepo{db: db, log: log}
}

// SaveRefresh сохраняет событие загрузки. Повтор с тем же ID игнорируется.
func (r *RefreshRepo) SaveRefresh(ctx context.Context, ev domain.RefreshEvent) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO dataset_refreshes (id, dataset, status, row_count, quarantined, duration_ms, error, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (id) DO NOTHING`,
		ev.ID, string(ev.Dataset), string(ev.Status), ev.Rows, ev.Quarantined,
		ev.Duration.Milliseconds(), nullString(ev.Error), ev.At)
	if err != nil {
		r.log.Debug("SaveRefresh failed", "error", err)
		return err
	}
	return nil
}

// ListRefreshes возвращает последние limit загрузок (новые сначала).
func (r *RefreshRepo) ListRefreshes(ctx context.Context, limit int) ([]domain.RefreshEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, dataset, status, row_count, quarantined, duration_ms, error, created_at
		 FROM dataset_refreshes ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		r.log.Debug("ListRefreshes failed", "error", err)
		return nil, err
	}
	defer rows.Close()
	var list []domain.RefreshEvent
	for rows.Next() {
		var (
			ev         domain.RefreshEvent
			dataset    string
			status     string
			durationMs int64
			errText    sql.NullString
		)
		if err := rows.Scan(&ev.ID, &dataset, &status, &ev.Rows, &ev.Quarantined, &durationMs, &errText, &ev.At); err != nil {
			return nil, err
		}
		ev.Dataset = domain.DatasetName(dataset)
		ev.Status = domain.RefreshStatus(status)
		ev.Duration = time.Duration(durationMs) * time.Millisecond
		ev.Error = errText.String
		list = append(list, ev)
	}
	return list, rows.Err()
}

// Ping проверяет доступность БД (readiness).
func (r *RefreshRepo) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
