// Package integration — интеграционные тесты адаптеров на настоящей инфраструктуре, поднятой через testcontainers:
// PostgreSQL и MongoDB (история загрузок), Redis (снимки), ClickHouse (аналитика), Kafka (события).
//
//	go test ./tests/integration/... -v
//
// С флагом -short контейнеры не поднимаются, а тесты пакета пропускаются.
package integration

import (
	"context"
	"flag"
	"log"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"

	"macroDash/tests/integration/testutil"
)

const startupTimeout = 5 * time.Minute

// service — контейнер пакета: start поднимает его и сохраняет в переменную, которой пользуются тесты.
type service struct {
	name  string
	start func(ctx context.Context) (testcontainers.Container, string, error)
}

var services = []service{
	{name: "postgres", start: func(ctx context.Context) (testcontainers.Container, string, error) {
		c, err := testutil.NewPostgresContainer(ctx)
		if err != nil {
			return nil, "", err
		}
		pgContainer = c
		return c.PostgresContainer, c.Addr(), nil
	}},
	{name: "redis", start: func(ctx context.Context) (testcontainers.Container, string, error) {
		c, err := testutil.NewRedisContainer(ctx)
		if err != nil {
			return nil, "", err
		}
		redisContainer = c
		return c.RedisContainer, c.Addr(), nil
	}},
	{name: "mongo", start: func(ctx context.Context) (testcontainers.Container, string, error) {
		c, err := testutil.NewMongoContainer(ctx)
		if err != nil {
			return nil, "", err
		}
		mongoContainer = c
		return c.MongoDBContainer, c.Addr(), nil
	}},
	{name: "clickhouse", start: func(ctx context.Context) (testcontainers.Container, string, error) {
		c, err := testutil.NewClickHouseContainer(ctx)
		if err != nil {
			return nil, "", err
		}
		clickContainer = c
		return c.ClickHouseContainer, c.Addr(), nil
	}},
	{name: "kafka", start: func(ctx context.Context) (testcontainers.Container, string, error) {
		c, err := testutil.NewKafkaContainer(ctx)
		if err != nil {
			return nil, "", err
		}
		kafkaContainer = c
		return c.KafkaContainer, c.BrokerList(), nil
	}},
}

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}
	os.Exit(run(m))
}

// run поднимает контейнеры по порядку, запускает тесты и останавливает всё, что успело подняться.
func run(m *testing.M) int {
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	var running []testcontainers.Container
	defer func() {
		for i := len(running) - 1; i >= 0; i-- {
			if err := testcontainers.TerminateContainer(running[i]); err != nil {
				log.Printf("integration: terminate: %v", err)
			}
		}
	}()

	for _, s := range services {
		started := time.Now()
		c, addr, err := s.start(ctx)
		if err != nil {
			log.Printf("integration: %s: %v", s.name, err)
			return 1
		}
		running = append(running, c)
		log.Printf("integration: %s ready at %s in %s", s.name, addr, time.Since(started).Round(time.Millisecond))
	}
	return m.Run()
}

// В short режиме TestMain не трогает Docker: ни один контейнер не поднят.
func TestMain_ShortStartsNoContainers(t *testing.T) {
	if !testing.Short() {
		t.Skip("проверяется только в short режиме")
	}
	assert.Nil(t, pgContainer)
	assert.Nil(t, redisContainer)
	assert.Nil(t, mongoContainer)
	assert.Nil(t, clickContainer)
	assert.Nil(t, kafkaContainer)
}
