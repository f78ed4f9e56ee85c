// Package health публикует состояние наборов данных через стандартный grpc.health.v1.Health.
package health

import (
	"log/slog"

	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"macroDash/internal/domain"
	"macroDash/internal/ports"
)

// ServicePrefix — префикс имени сервиса набора: "dataset.poles", "dataset.sales" и т.д.
const ServicePrefix = "dataset."

// Observer переводит смены состояний наборов в статусы health-сервера.
// Сервис "" отражает сам процесс и всегда SERVING до Shutdown.
type Observer struct {
	hs  *health.Server
	log *slog.Logger
}

var _ ports.IStateObserver = (*Observer)(nil)

// NewObserver создаёт health-сервер: все наборы NOT_SERVING до первой загрузки.
func NewObserver(log *slog.Logger) *Observer {
	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	for _, name := range domain.AllDatasets {
		hs.SetServingStatus(ServiceName(name), healthpb.HealthCheckResponse_NOT_SERVING)
	}
	return &Observer{hs: hs, log: log}
}

// ServiceName — имя health-сервиса набора.
func ServiceName(name domain.DatasetName) string {
	return ServicePrefix + name.String()
}

// Server — health-сервер для регистрации в gRPC.
func (o *Observer) Server() *health.Server {
	return o.hs
}

// DatasetStateChanged реализует ports.IStateObserver. Loading не меняет статус,
// чтобы фоновые перезагрузки не делали набор временно недоступным.
func (o *Observer) DatasetStateChanged(name domain.DatasetName, state domain.LoadState) {
	var st healthpb.HealthCheckResponse_ServingStatus
	switch state {
	case domain.StateReady:
		st = healthpb.HealthCheckResponse_SERVING
	case domain.StateError, domain.StateIdle:
		st = healthpb.HealthCheckResponse_NOT_SERVING
	default:
		return
	}
	o.hs.SetServingStatus(ServiceName(name), st)
	o.log.Debug("health status changed", "service", ServiceName(name), "status", st.String())
}

// Shutdown переводит все сервисы в NOT_SERVING и больше не принимает изменения.
func (o *Observer) Shutdown() {
	o.hs.Shutdown()
}
