package ports

//go:generate mockgen -source=repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"macroDash/internal/domain"
)

// IRefreshRepository — контракт сохранения и чтения истории загрузок.
type IRefreshRepository interface {
	SaveRefresh(ctx context.Context, ev domain.RefreshEvent) error
	ListRefreshes(ctx context.Context, limit int) ([]domain.RefreshEvent, error)
	Ping(ctx context.Context) error
}
