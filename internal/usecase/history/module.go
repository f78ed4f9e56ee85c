package history

import (
	"log/slog"
	"time"

	"macroDash/internal/ports"
)

// Границы выборки истории.
const (
	DefaultLimit = 50
	MaxLimit     = 500
)

// writeTimeout — предел на запись одного события в репозиторий и брокер.
const writeTimeout = 3 * time.Second

// UseCase — история загрузок наборов: репозиторий, брокер и аналитика. Любая зависимость может быть nil.
type UseCase struct {
	repo      ports.IRefreshRepository
	broker    ports.IProducer
	analytics ports.IRefreshAnalytics
	log       *slog.Logger
}

var (
	_ ports.IHistoryUseCase = (*UseCase)(nil)
	_ ports.IRefreshSink    = (*UseCase)(nil)
)

// New создаёт юзкейс истории.
func New(repo ports.IRefreshRepository, broker ports.IProducer, analytics ports.IRefreshAnalytics, log *slog.Logger) *UseCase {
	return &UseCase{repo: repo, broker: broker, analytics: analytics, log: log}
}
