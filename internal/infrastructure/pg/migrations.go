package pg

import "context"

const createRefreshesTable = `
CREATE TABLE IF NOT EXISTS dataset_refreshes (
	id           UUID PRIMARY KEY,
	dataset      VARCHAR(32) NOT NULL,
	status       VARCHAR(16) NOT NULL,
	row_count    INTEGER NOT NULL DEFAULT 0,
	quarantined  INTEGER NOT NULL DEFAULT 0,
	duration_ms  BIGINT NOT NULL DEFAULT 0,
	error        TEXT,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS dataset_refreshes_created_at_idx ON dataset_refreshes (created_at DESC);
`

// Migrate создаёт таблицу dataset_refreshes, если её ещё нет.
func Migrate(ctx context.Context, db *DB) error {
	_, err := db.ExecContext(ctx, createRefreshesTable)
	return err
}
