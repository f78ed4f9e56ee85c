package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"macroDash/internal/domain"
	"macroDash/internal/ports"
)

// Mux — ISourceConnector, который отправляет каждый набор в свой коннектор:
// таблицы идут в Google Sheets, население в IBGE.
type Mux struct {
	routes map[domain.DatasetName]ports.ISourceConnector
	log    *slog.Logger
}

func NewMux(log *slog.Logger) *Mux {
	return &Mux{routes: make(map[domain.DatasetName]ports.ISourceConnector), log: log}
}

// Handle назначает коннектор наборам. Повторное назначение заменяет прежнее.
func (m *Mux) Handle(conn ports.ISourceConnector, names ...domain.DatasetName) *Mux {
	for _, name := range names {
		m.routes[name] = conn
	}
	return m
}

// Fetch загружает набор через назначенный коннектор. Набор без коннектора — domain.ErrNotFound.
func (m *Mux) Fetch(ctx context.Context, name domain.DatasetName) (*domain.Dataset, error) {
	if !name.Valid() {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownDataset, name)
	}
	conn, ok := m.routes[name]
	if !ok {
		m.log.Debug("no connector for dataset", "dataset", name)
		return nil, domain.NewSourceError(name, domain.ErrNotFound, errors.New("source is not configured"))
	}
	return conn.Fetch(ctx, name)
}
