package middlewares

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader — ID запроса. Пришедший от клиента (прокси, фронт) сохраняется, иначе генерируется.
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "request_id"

// quietRoutes — служебные маршруты, которые дёргают балансировщик и Prometheus; пишутся на уровне Debug.
var quietRoutes = map[string]bool{
	"/metrics":   true,
	"/liveness":  true,
	"/readyness": true,
}

// RequestID — ID текущего запроса (пусто вне RequestLogger).
func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// RequestLogger логирует запрос: шаблон маршрута, раздел или набор из пути, статус, размер ответа и длительность.
// 4xx и 5xx пишутся как Warn.
func RequestLogger(log *slog.Logger) gin.HandlerFunc {
	if log == nil {
		log = slog.Default()
	}
	return func(c *gin.Context) {
		start := time.Now()
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		attrs := []any{
			"request_id", id,
			"method", c.Request.Method,
			"route", route,
			"status", status,
			"bytes", max(c.Writer.Size(), 0),
			"latency_ms", time.Since(start).Milliseconds(),
			"ip", c.ClientIP(),
		}
		if v := c.Param("section"); v != "" {
			attrs = append(attrs, "section", v)
		}
		if v := c.Param("name"); v != "" {
			attrs = append(attrs, "dataset", v)
		}
		if q := c.Request.URL.RawQuery; q != "" {
			attrs = append(attrs, "query", q)
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "errors", c.Errors.String())
		}

		level := slog.LevelInfo
		switch {
		case status >= 400:
			level = slog.LevelWarn
		case quietRoutes[route]:
			level = slog.LevelDebug
		}
		log.Log(c.Request.Context(), level, "http request", attrs...)
	}
}
