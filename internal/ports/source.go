package ports

//go:generate mockgen -source=source.go -destination=../mocks/source_mock.go -package=mocks

import (
	"context"

	"macroDash/internal/domain"
)

// ISourceConnector — загрузка набора из удалённой таблицы. Один сетевой вызов на вызов Fetch, без повторов.
// Ошибки оборачивают domain.ErrAuth, domain.ErrNotFound или domain.ErrTransient.
type ISourceConnector interface {
	Fetch(ctx context.Context, name domain.DatasetName) (*domain.Dataset, error)
}

// IRefreshSink — получатель событий о загрузках (история, брокер).
type IRefreshSink interface {
	Record(ctx context.Context, ev domain.RefreshEvent)
}

// IStateObserver — получает смены состояний загрузки наборов (например gRPC health).
type IStateObserver interface {
	DatasetStateChanged(name domain.DatasetName, state domain.LoadState)
}
