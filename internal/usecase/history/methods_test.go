package history

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"macroDash/internal/domain"
	"macroDash/internal/mocks"
)

// newTestLogger создаёт логгер для тестов (выводит только ошибки, чтобы не засорять вывод).
func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testEvent() domain.RefreshEvent {
	return domain.RefreshEvent{
		ID:       "7b0c5d8e-0000-4000-8000-000000000001",
		Dataset:  domain.DatasetPoles,
		Status:   domain.RefreshOK,
		Rows:     12,
		Duration: 250 * time.Millisecond,
		At:       time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

// Запись: сначала репозиторий, потом брокер; ключ сообщения — имя набора, тело — JSON события
func TestRecord_SavesAndPublishes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockIRefreshRepository(ctrl)
	mockBroker := mocks.NewMockIProducer(ctrl)
	ev := testEvent()

	gomock.InOrder(
		mockRepo.EXPECT().SaveRefresh(gomock.Any(), ev).Return(nil),
		mockBroker.EXPECT().Send(gomock.Any(), []byte("poles"), gomock.Any()).
			DoAndReturn(func(_ context.Context, _, value []byte) error {
				var got domain.RefreshEvent
				require.NoError(t, json.Unmarshal(value, &got))
				assert.Equal(t, ev, got)
				return nil
			}),
	)

	uc := New(mockRepo, mockBroker, nil, newTestLogger())
	uc.Record(context.Background(), ev)
}

// Ошибка репозитория не мешает публикации
func TestRecord_RepoErrorStillPublishes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockIRefreshRepository(ctrl)
	mockBroker := mocks.NewMockIProducer(ctrl)

	mockRepo.EXPECT().SaveRefresh(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
	mockBroker.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("kafka down"))

	uc := New(mockRepo, mockBroker, nil, newTestLogger())
	uc.Record(context.Background(), testEvent())
}

// Без зависимостей запись ничего не делает
func TestRecord_NoDependencies(t *testing.T) {
	uc := New(nil, nil, nil, newTestLogger())
	uc.Record(context.Background(), testEvent())
}

// Запись идёт с ограничением по времени
func TestRecord_UsesDeadline(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockIRefreshRepository(ctrl)
	mockRepo.EXPECT().SaveRefresh(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ domain.RefreshEvent) error {
			_, ok := ctx.Deadline()
			assert.True(t, ok, "у контекста записи должен быть дедлайн")
			return nil
		})

	uc := New(mockRepo, nil, nil, newTestLogger())
	uc.Record(context.Background(), testEvent())
}

func TestHistory_Limit(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{name: "ноль — по умолчанию", limit: 0, want: DefaultLimit},
		{name: "отрицательный — по умолчанию", limit: -5, want: DefaultLimit},
		{name: "в пределах", limit: 10, want: 10},
		{name: "больше максимума", limit: 10_000, want: MaxLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := mocks.NewMockIRefreshRepository(ctrl)
			mockRepo.EXPECT().ListRefreshes(gomock.Any(), tt.want).Return([]domain.RefreshEvent{testEvent()}, nil)

			uc := New(mockRepo, nil, nil, newTestLogger())
			list, err := uc.History(context.Background(), tt.limit)
			require.NoError(t, err)
			assert.Len(t, list, 1)
		})
	}
}

// Без репозитория история недоступна
func TestHistory_Disabled(t *testing.T) {
	uc := New(nil, nil, nil, newTestLogger())
	_, err := uc.History(context.Background(), 10)
	assert.ErrorIs(t, err, domain.ErrHistoryDisabled)
}

func TestHandleRefreshEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAnalytics := mocks.NewMockIRefreshAnalytics(ctrl)
	ev := testEvent()

	// Успешная запись
	mockAnalytics.EXPECT().WriteRefresh(gomock.Any(), ev).Return(nil)
	uc := New(nil, nil, mockAnalytics, newTestLogger())
	require.NoError(t, uc.HandleRefreshEvent(context.Background(), ev))

	// Ошибка аналитики возвращается: консьюмер не закоммитит сообщение
	mockAnalytics.EXPECT().WriteRefresh(gomock.Any(), ev).Return(errors.New("click down"))
	assert.Error(t, uc.HandleRefreshEvent(context.Background(), ev))

	// Без аналитики событие просто подтверждается
	assert.NoError(t, New(nil, nil, nil, newTestLogger()).HandleRefreshEvent(context.Background(), ev))
}
