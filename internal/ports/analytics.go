package ports

//go:generate mockgen -source=analytics.go -destination=../mocks/analytics_mock.go -package=mocks

import (
	"context"

	"macroDash/internal/domain"
)

// IRefreshAnalytics — запись загрузок наборов в хранилище для аналитики (например, ClickHouse).
type IRefreshAnalytics interface {
	WriteRefresh(ctx context.Context, ev domain.RefreshEvent) error
}
