package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"macroDash/internal/domain"
	"macroDash/internal/ports"
)

var _ ports.IRefreshRepository = (*RefreshRepo)(nil)

// refreshDoc — документ в коллекции истории. _id — ID события, повторная вставка не дублирует запись.
type refreshDoc struct {
	ID          string    `bson:"_id"`
	Dataset     string    `bson:"dataset"`
	Status      string    `bson:"status"`
	Rows        int       `bson:"rows"`
	Quarantined int       `bson:"quarantined"`
	DurationMs  int64     `bson:"duration_ms"`
	Error       string    `bson:"error,omitempty"`
	CreatedAt   time.Time `bson:"created_at"`
}

// RefreshRepo реализует ports.IRefreshRepository для MongoDB.
type RefreshRepo struct {
	client *Client
	log    *slog.Logger
}

// NewRefreshRepo возвращает репозиторий истории загрузок.
func NewRefreshRepo(client *Client, log *slog.Logger) *RefreshRepo {
	return &RefreshRepo{client: client, log: log}
}

// SaveRefresh сохраняет событие загрузки.
func (r *RefreshRepo) SaveRefresh(ctx context.Context, ev domain.RefreshEvent) error {
	doc := refreshDoc{
		ID:          ev.ID,
		Dataset:     string(ev.Dataset),
		Status:      string(ev.Status),
		Rows:        ev.Rows,
		Quarantined: ev.Quarantined,
		DurationMs:  ev.Duration.Milliseconds(),
		Error:       ev.Error,
		CreatedAt:   ev.At,
	}
	_, err := r.client.Coll().InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		r.log.Debug("SaveRefresh failed", "error", err)
		return err
	}
	return nil
}

// ListRefreshes возвращает последние limit загрузок (новые сначала).
func (r *RefreshRepo) ListRefreshes(ctx context.Context, limit int) ([]domain.RefreshEvent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(int64(limit))
	cursor, err := r.client.Coll().Find(ctx, bson.M{}, opts)
	if err != nil {
		r.log.Debug("ListRefreshes failed", "error", err)
		return nil, err
	}
	defer cursor.Close(ctx)
	var docs []refreshDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	list := make([]domain.RefreshEvent, 0, len(docs))
	for _, d := range docs {
		list = append(list, domain.RefreshEvent{
			ID:          d.ID,
			Dataset:     domain.DatasetName(d.Dataset),
			Status:      domain.RefreshStatus(d.Status),
			Rows:        d.Rows,
			Quarantined: d.Quarantined,
			Duration:    time.Duration(d.DurationMs) * time.Millisecond,
			Error:       d.Error,
			At:          d.CreatedAt,
		})
	}
	return list, nil
}

// Ping проверяет доступность БД.
func (r *RefreshRepo) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, nil)
}

// EnsureIndexes создаёт индекс по времени для выборки последних загрузок.
func (r *RefreshRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.client.Coll().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("mongo create index: %w", err)
	}
	return nil
}
