package click

import (
	"context"
	"fmt"

	"macroDash/internal/domain"
	"macroDash/internal/ports"
)

const refreshesTable = "dataset_refreshes_analytics"

var _ ports.IRefreshAnalytics = (*RefreshWriter)(nil)

// RefreshWriter пишет загрузки наборов в ClickHouse для аналитики (длительность и ошибки по наборам, по времени).
type RefreshWriter struct {
	db    *Client
	table string
}

// NewRefreshWriter создаёт писатель загрузок для аналитики.
func NewRefreshWriter(db *Client) *RefreshWriter {
	database := db.database
	if database == "" {
		database = "default"
	}
	return &RefreshWriter{db: db, table: database + "." + refreshesTable}
}

// Table — полное имя таблицы аналитики.
func (w *RefreshWriter) Table() string {
	return w.table
}

// EnsureTable создаёт таблицу загрузок, если её ещё нет. Вызови один раз при старте приложения.
// ReplacingMergeTree по id схлопывает повторную доставку одного события из Kafka.
func (w *RefreshWriter) EnsureTable(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id String,
			dataset LowCardinality(String),
			status LowCardinality(String),
			rows UInt32,
			quarantined UInt32,
			duration_ms UInt64,
			error String,
			created_at DateTime64(3)
		) ENGINE = ReplacingMergeTree()
		ORDER BY (dataset, created_at, id)
		PARTITION BY toYYYYMM(created_at)`,
		w.table,
	)
	_, err := w.db.DB().ExecContext(ctx, query)
	return err
}

// WriteRefresh реализует ports.IRefreshAnalytics: пишет одну загрузку в ClickHouse.
func (w *RefreshWriter) WriteRefresh(ctx context.Context, ev domain.RefreshEvent) error {
	query := fmt.Sprintf(
		"INSERT INTO %s (id, dataset, status, rows, quarantined, duration_ms, error, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		w.table,
	)
	_, err := w.db.DB().ExecContext(ctx, query,
		ev.ID, string(ev.Dataset), string(ev.Status), uint32(max(ev.Rows, 0)), uint32(max(ev.Quarantined, 0)),
		uint64(max(ev.Duration.Milliseconds(), 0)), ev.Error, ev.At)
	if err != nil {
		return fmt.Errorf("insert refresh: %w", err)
	}
	return nil
}
