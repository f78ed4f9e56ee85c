package integration

import (
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"macroDash/internal/domain"
)

// newTestLogger создаёт логгер для тестов.
func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// newEvent — событие загрузки с новым ID и временем, округлённым до миллисекунд (точность хранилищ).
func newEvent(dataset domain.DatasetName, status domain.RefreshStatus, at time.Time) domain.RefreshEvent {
	ev := domain.RefreshEvent{
		ID:       uuid.NewString(),
		Dataset:  dataset,
		Status:   status,
		Rows:     42,
		Duration: 1250 * time.Millisecond,
		At:       at.UTC().Truncate(time.Millisecond),
	}
	if status == domain.RefreshFailed {
		ev.Rows = 0
		ev.Error = "poles: source temporarily unavailable"
	}
	return ev
}
