// Package testutil поднимает контейнеры для интеграционных тестов: история загрузок (PostgreSQL, MongoDB),
// снимки наборов (Redis), аналитика (ClickHouse) и шина событий (Kafka).
package testutil

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/clickhouse"
	"github.com/testcontainers/testcontainers-go/modules/kafka"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Образы фиксированы, чтобы тесты не ломались от обновлений latest.
const (
	postgresImage   = "postgres:16-alpine"
	redisImage      = "redis:7-alpine"
	mongoImage      = "mongo:7"
	clickhouseImage = "clickhouse/clickhouse-server:24-alpine"
	kafkaImage      = "confluentinc/confluent-local:7.5.0"
)

// Endpoint — порт сервиса, проброшенный на хост.
type Endpoint struct {
	Host string
	Port string
}

// Addr — "host:port".
func (e Endpoint) Addr() string {
	return net.JoinHostPort(e.Host, e.Port)
}

// mapped — то, что нужно от контейнера, чтобы узнать адрес сервиса.
type mapped interface {
	Host(ctx context.Context) (string, error)
	MappedPort(ctx context.Context, port nat.Port) (nat.Port, error)
}

func endpoint(ctx context.Context, service string, c mapped, port nat.Port) (Endpoint, error) {
	host, err := c.Host(ctx)
	if err != nil {
		return Endpoint{}, fmt.Errorf("%s host: %w", service, err)
	}
	p, err := c.MappedPort(ctx, port)
	if err != nil {
		return Endpoint{}, fmt.Errorf("%s port %s: %w", service, port, err)
	}
	return Endpoint{Host: host, Port: p.Port()}, nil
}

// started завершает запуск: при ошибке адреса контейнер не должен остаться висеть.
func started[C testcontainers.Container](ctx context.Context, service string, c C, runErr error, port nat.Port) (C, Endpoint, error) {
	var zero C
	if runErr != nil {
		_ = testcontainers.TerminateContainer(c)
		return zero, Endpoint{}, fmt.Errorf("%s container: %w", service, runErr)
	}
	ep, err := endpoint(ctx, service, c, port)
	if err != nil {
		_ = testcontainers.TerminateContainer(c)
		return zero, Endpoint{}, err
	}
	return c, ep, nil
}

// PostgresContainer — история загрузок в PostgreSQL.
type PostgresContainer struct {
	*postgres.PostgresContainer
	Endpoint
	User     string
	Password string
	DBName   string
}

func NewPostgresContainer(ctx context.Context) (*PostgresContainer, error) {
	out := &PostgresContainer{User: "dashboard", Password: "dashboard", DBName: "dashboard_test"}
	c, err := postgres.Run(ctx, postgresImage,
		postgres.WithDatabase(out.DBName),
		postgres.WithUsername(out.User),
		postgres.WithPassword(out.Password),
		// сервер перезапускается после init-скриптов, готов только второй раз
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30*time.Second)),
	)
	if out.PostgresContainer, out.Endpoint, err = started(ctx, "postgres", c, err, "5432/tcp"); err != nil {
		return nil, err
	}
	return out, nil
}

// DSN — строка подключения lib/pq.
func (c *PostgresContainer) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Password, c.DBName)
}

// RedisContainer — общий уровень снимков.
type RedisContainer struct {
	*redis.RedisContainer
	Endpoint
}

func NewRedisContainer(ctx context.Context) (*RedisContainer, error) {
	c, err := redis.Run(ctx, redisImage,
		testcontainers.WithWaitStrategy(wait.ForLog("Ready to accept connections").WithStartupTimeout(30*time.Second)),
	)
	out := &RedisContainer{}
	if out.RedisContainer, out.Endpoint, err = started(ctx, "redis", c, err, "6379/tcp"); err != nil {
		return nil, err
	}
	return out, nil
}

// MongoContainer — история загрузок в MongoDB.
type MongoContainer struct {
	*mongodb.MongoDBContainer
	Endpoint
}

func NewMongoContainer(ctx context.Context) (*MongoContainer, error) {
	c, err := mongodb.Run(ctx, mongoImage,
		testcontainers.WithWaitStrategy(wait.ForLog("Waiting for connections").WithStartupTimeout(60*time.Second)),
	)
	out := &MongoContainer{}
	if out.MongoDBContainer, out.Endpoint, err = started(ctx, "mongo", c, err, "27017/tcp"); err != nil {
		return nil, err
	}
	return out, nil
}

// URI — строка подключения mongo-driver.
func (c *MongoContainer) URI() string {
	return "mongodb://" + c.Addr()
}

// ClickHouseContainer — аналитика загрузок. Port — нативный протокол (9000), не HTTP.
type ClickHouseContainer struct {
	*clickhouse.ClickHouseContainer
	Endpoint
	User     string
	Password string
	Database string
}

func NewClickHouseContainer(ctx context.Context) (*ClickHouseContainer, error) {
	out := &ClickHouseContainer{User: "default", Database: "default"}
	c, err := clickhouse.Run(ctx, clickhouseImage,
		clickhouse.WithUsername(out.User),
		clickhouse.WithPassword(out.Password),
		clickhouse.WithDatabase(out.Database),
	)
	if out.ClickHouseContainer, out.Endpoint, err = started(ctx, "clickhouse", c, err, "9000/tcp"); err != nil {
		return nil, err
	}
	return out, nil
}

// KafkaContainer — брокер событий загрузок (KRaft, один узел).
type KafkaContainer struct {
	*kafka.KafkaContainer
	Addrs []string
}

func NewKafkaContainer(ctx context.Context) (*KafkaContainer, error) {
	c, err := kafka.Run(ctx, kafkaImage, kafka.WithClusterID("macrodash-test"))
	if err != nil {
		_ = testcontainers.TerminateContainer(c)
		return nil, fmt.Errorf("kafka container: %w", err)
	}
	addrs, err := c.Brokers(ctx)
	if err != nil {
		_ = testcontainers.TerminateContainer(c)
		return nil, fmt.Errorf("kafka brokers: %w", err)
	}
	return &KafkaContainer{KafkaContainer: c, Addrs: addrs}, nil
}

// BrokerList — брокеры через запятую, как в DASHBOARD_KAFKA_BROKERS.
func (c *KafkaContainer) BrokerList() string {
	return strings.Join(c.Addrs, ",")
}
