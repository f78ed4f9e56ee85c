package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"macroDash/internal/domain"
	"macroDash/internal/ports"
)

var _ ports.ISnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore хранит последние снимки наборов в Redis как JSON. Общий для всех реплик сервиса.
type SnapshotStore struct {
	cli    *Client
	prefix string
	ttl    time.Duration
	log    *slog.Logger
}

// NewSnapshotStore возвращает хранилище снимков. ttl <= 0 — ключи без срока жизни.
func NewSnapshotStore(cli *Client, cfg *Config, log *slog.Logger) *SnapshotStore {
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = "dashboard:snapshot:"
	}
	return &SnapshotStore{cli: cli, prefix: prefix, ttl: cfg.SnapshotTTL, log: log}
}

func (s *SnapshotStore) key(name domain.DatasetName) string {
	return s.prefix + name.String()
}

// Save перезаписывает снимок набора.
func (s *SnapshotStore) Save(ctx context.Context, ds *domain.Dataset) error {
	if ds == nil {
		return nil
	}
	b, err := json.Marshal(ds)
	if err != nil {
		return fmt.Errorf("snapshot encode: %w", err)
	}
	ttl := s.ttl
	if ttl < 0 {
		ttl = 0
	}
	if err := s.cli.Set(ctx, s.key(ds.Name), b, ttl).Err(); err != nil {
		s.log.Debug("snapshot set failed", "dataset", ds.Name, "error", err)
		return err
	}
	return nil
}

// Load читает снимок. Если ключа нет — found == false.
func (s *SnapshotStore) Load(ctx context.Context, name domain.DatasetName) (*domain.Dataset, bool, error) {
	b, err := s.cli.Get(ctx, s.key(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		s.log.Debug("snapshot get failed", "dataset", name, "error", err)
		return nil, false, err
	}
	var ds domain.Dataset
	if err := json.Unmarshal(b, &ds); err != nil {
		return nil, false, fmt.Errorf("snapshot decode: %w", err)
	}
	if ds.Name != name {
		return nil, false, fmt.Errorf("snapshot decode: key %s holds dataset %q", s.key(name), ds.Name)
	}
	return &ds, true, nil
}
