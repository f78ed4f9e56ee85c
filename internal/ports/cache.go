package ports

//go:generate mockgen -source=cache.go -destination=../mocks/cache_mock.go -package=mocks

import (
	"context"
	"time"

	"macroDash/internal/domain"
)

// IDatasetCache — слой кэша наборов. Отдаёт снимок из памяти, пока он моложе ttl, иначе загружает из источника.
// При ошибке источника отдаёт прошлый снимок с Stale == true, если он есть.
type IDatasetCache interface {
	GetOrFetch(ctx context.Context, name domain.DatasetName, ttl time.Duration) (*domain.Snapshot, error)
	Invalidate(name domain.DatasetName)
	Entries() []domain.EntryStatus
}

// ISnapshotStore — общий для реплик уровень снимков (например Redis). Используется как запасной
// источник, когда в памяти процесса снимка нет, а источник недоступен.
type ISnapshotStore interface {
	Save(ctx context.Context, ds *domain.Dataset) error
	Load(ctx context.Context, name domain.DatasetName) (ds *domain.Dataset, found bool, err error)
}
