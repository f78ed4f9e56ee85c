package system

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"macroDash/internal/mocks"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func newRouter(c *Controller) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	c.RegisterRoutes(r)
	return r
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestLiveness(t *testing.T) {
	r := newRouter(New(nil, newTestLogger()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/liveness", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"alive"}`, w.Body.String())
}

func TestReadiness(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Репозиторий истории тоже Pinger
	mockRepo := mocks.NewMockIRefreshRepository(ctrl)
	mockRepo.EXPECT().Ping(gomock.Any()).Return(nil).Times(2)

	t.Run("все зависимости доступны", func(t *testing.T) {
		r := newRouter(New(map[string]Pinger{
			"history": mockRepo,
			"redis":   pingFunc(func(context.Context) error { return nil }),
		}, newTestLogger()))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyness", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("одна зависимость недоступна", func(t *testing.T) {
		r := newRouter(New(map[string]Pinger{
			"history": mockRepo,
			"redis":   pingFunc(func(context.Context) error { return errors.New("connection refused") }),
		}, newTestLogger()))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyness", nil))
		require.Equal(t, http.StatusServiceUnavailable, w.Code)

		var body struct {
			Status string            `json:"status"`
			Errors map[string]string `json:"errors"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "not ready", body.Status)
		assert.Equal(t, map[string]string{"redis": "connection refused"}, body.Errors)
	})

	t.Run("без зависимостей сервис готов", func(t *testing.T) {
		r := newRouter(New(nil, newTestLogger()))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyness", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
