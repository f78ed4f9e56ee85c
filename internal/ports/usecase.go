package ports

//go:generate mockgen -source=usecase.go -destination=../mocks/usecase_mock.go -package=mocks

import (
	"context"

	"macroDash/internal/domain"
)

// IDashboardUseCase — контракт оркестратора: разделы, выгрузки, состояние наборов.
type IDashboardUseCase interface {
	Section(ctx context.Context, req domain.ViewRequest) (*domain.SectionResult, error)
	Report(ctx context.Context, req domain.ViewRequest) (*domain.Report, error)
	Datasets(ctx context.Context) []domain.DatasetStatus
	Refresh(ctx context.Context, name domain.DatasetName) (*domain.DatasetStatus, error)
	Invalidate(name domain.DatasetName) error
}

// IHistoryUseCase — контракт истории загрузок (запись, чтение, обработка событий из Kafka).
type IHistoryUseCase interface {
	Record(ctx context.Context, ev domain.RefreshEvent)
	History(ctx context.Context, limit int) ([]domain.RefreshEvent, error)
	HandleRefreshEvent(ctx context.Context, ev domain.RefreshEvent) error
}
