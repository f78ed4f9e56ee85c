package interceptors

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// healthPrefix — методы grpc.health.v1. Их пишем на уровне Debug: балансировщик дёргает их постоянно.
var healthPrefix = "/" + healthpb.Health_ServiceDesc.ServiceName + "/"

// LoggingUnaryInterceptor логирует каждый unary RPC: метод, длительность, код/ошибка (аналог HTTP request logger).
func LoggingUnaryInterceptor(log *slog.Logger) grpc.UnaryServerInterceptor {
	if log == nil {
		log = slog.Default()
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		latency := time.Since(start)

		attrs := []any{"method", info.FullMethod, "latency_ms", latency.Milliseconds()}
		level := slog.LevelInfo
		if strings.HasPrefix(info.FullMethod, healthPrefix) {
			level = slog.LevelDebug
		}
		if err != nil {
			if st, ok := status.FromError(err); ok {
				attrs = append(attrs, "grpc_code", st.Code(), "error", st.Message())
			} else {
				attrs = append(attrs, "error", err.Error())
			}
			if level == slog.LevelInfo {
				level = slog.LevelWarn
			}
			log.Log(ctx, level, "grpc request", attrs...)
			return resp, err
		}
		attrs = append(attrs, "grpc_code", codes.OK)
		log.Log(ctx, level, "grpc request", attrs...)
		return resp, nil
	}
}
