package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"macroDash/internal/domain"
	"macroDash/internal/infrastructure/pg"
	"macroDash/tests/integration/testutil"
)

// pgContainer — контейнер PostgreSQL, поднимается один раз для всех тестов пакета.
// Инициализируется в TestMain (main_test.go).
var pgContainer *testutil.PostgresContainer

// setupPgDB подключается к тестовой БД, применяет миграцию и очищает таблицу.
func setupPgDB(t *testing.T) *pg.DB {
	t.Helper()
	ctx := context.Background()

	db, err := pg.New(ctx, &pg.Config{
		Host:     pgContainer.Host,
		Port:     pgContainer.Port,
		User:     pgContainer.User,
		Password: pgContainer.Password,
		DBName:   pgContainer.DBName,
		SSLMode:  "disable",
	})
	require.NoError(t, err, "не удалось создать pg.DB")

	// Миграция идемпотентна: повторный вызов не падает
	require.NoError(t, pg.Migrate(ctx, db))
	require.NoError(t, pg.Migrate(ctx, db))

	_, err = db.ExecContext(ctx, "TRUNCATE TABLE dataset_refreshes")
	require.NoError(t, err, "не удалось очистить таблицу dataset_refreshes")

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// =============================================================================
// Тесты PostgreSQL репозитория истории загрузок
// =============================================================================

func TestPgRepo_SaveRefresh(t *testing.T) {
	if testing.Short() {
		t.Skip("пропускаем интеграционный тест в short режиме")
	}

	db := setupPgDB(t)
	repo := pg.NewRefreshRepo(db, newTestLogger())
	ctx := context.Background()

	ev := newEvent(domain.DatasetPoles, domain.RefreshOK, time.Now())
	require.NoError(t, repo.SaveRefresh(ctx, ev))

	// Повторная доставка того же события не дублирует запись
	require.NoError(t, repo.SaveRefresh(ctx, ev))

	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM dataset_refreshes").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "в таблице должна быть 1 запись")
}

func TestPgRepo_ListRefreshes(t *testing.T) {
	if testing.Short() {
		t.Skip("пропускаем интеграционный тест в short режиме")
	}

	db := setupPgDB(t)
	repo := pg.NewRefreshRepo(db, newTestLogger())
	ctx := context.Background()

	now := time.Now()
	events := []domain.RefreshEvent{
		newEvent(domain.DatasetPoles, domain.RefreshOK, now.Add(-2*time.Second)),
		newEvent(domain.DatasetSales, domain.RefreshFailed, now.Add(-1*time.Second)),
		newEvent(domain.DatasetStudents, domain.RefreshOK, now),
	}
	for _, ev := range events {
		require.NoError(t, repo.SaveRefresh(ctx, ev))
	}

	list, err := repo.ListRefreshes(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 3)

	// Последние сначала
	assert.Equal(t, domain.DatasetStudents, list[0].Dataset)
	assert.Equal(t, domain.DatasetPoles, list[2].Dataset)

	// Поля восстанавливаются полностью
	failed := list[1]
	assert.Equal(t, events[1].ID, failed.ID)
	assert.Equal(t, domain.RefreshFailed, failed.Status)
	assert.Equal(t, events[1].Error, failed.Error)
	assert.Equal(t, 1250*time.Millisecond, failed.Duration)
	assert.True(t, events[1].At.Equal(failed.At), "время должно совпадать")

	// Ограничение
	list, err = repo.ListRefreshes(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestPgRepo_ListRefreshes_Empty(t *testing.T) {
	if testing.Short() {
		t.Skip("пропускаем интеграционный тест в short режиме")
	}

	repo := pg.NewRefreshRepo(setupPgDB(t), newTestLogger())

	list, err := repo.ListRefreshes(context.Background(), 10)
	require.NoError(t, err, "ListRefreshes на пустой таблице не должен возвращать ошибку")
	assert.Empty(t, list)
}

func TestPgRepo_Ping(t *testing.T) {
	if testing.Short() {
		t.Skip("пропускаем интеграционный тест в short режиме")
	}

	repo := pg.NewRefreshRepo(setupPgDB(t), newTestLogger())
	assert.NoError(t, repo.Ping(context.Background()), "Ping должен успешно проверить соединение")
}
