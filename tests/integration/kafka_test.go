package integration

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"macroDash/internal/domain"
	"macroDash/internal/infrastructure/kafka"
	"macroDash/internal/usecase/history"
	"macroDash/tests/integration/testutil"
)

// kafkaContainer — брокер Kafka, инициализируется в TestMain.
var kafkaContainer *testutil.KafkaContainer

// createTopic создаёт топик с одной партицией через контроллер кластера.
func createTopic(t *testing.T, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", kafkaContainer.Addrs[0])
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)
	cc, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer cc.Close()

	require.NoError(t, cc.CreateTopics(kafkago.TopicConfig{Topic: topic, NumPartitions: 1, ReplicationFactor: 1}))
}

// Событие загрузки проходит весь путь: история -> продюсер -> топик -> консьюмер -> ClickHouse.
// Битое сообщение пропускается и не останавливает консьюмера.
func TestKafka_RefreshEventsReachClickHouse(t *testing.T) {
	if testing.Short() {
		t.Skip("пропускаем интеграционный тест в short режиме")
	}

	writer, client := setupClickWriter(t)
	log := newTestLogger()

	topic := "macrodash.refreshes." + uuid.NewString()[:8]
	createTopic(t, topic)
	cfg := &kafka.Config{
		Enabled: true,
		Brokers: kafkaContainer.BrokerList(),
		Topic:   topic,
		GroupID: "it-" + topic,
		Consume: true,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	producer := kafka.NewProducer(cfg)
	t.Cleanup(func() { _ = producer.Close() })
	// Первая запись заодно получает метаданные топика, поэтому идёт с общим таймаутом теста.
	require.NoError(t, producer.Send(ctx, []byte("broken"), []byte("{not json")))

	publisher := history.New(nil, producer, nil, log)
	events := []domain.RefreshEvent{
		newEvent(domain.DatasetPoles, domain.RefreshOK, time.Now()),
		newEvent(domain.DatasetSales, domain.RefreshFailed, time.Now()),
		newEvent(domain.DatasetPopulation, domain.RefreshOK, time.Now()),
	}
	for _, ev := range events {
		publisher.Record(ctx, ev)
	}

	analytics := history.New(nil, nil, writer, log)
	consumer := kafka.NewConsumer(cfg, analytics, log)
	t.Cleanup(func() { _ = consumer.Close() })

	runCtx, stop := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- consumer.Run(runCtx) }()

	count := func() uint64 {
		var n uint64
		if err := client.DB().QueryRowContext(ctx, "SELECT count() FROM "+writer.Table()).Scan(&n); err != nil {
			return 0
		}
		return n
	}
	require.Eventually(t, func() bool { return count() == uint64(len(events)) }, 60*time.Second, 500*time.Millisecond,
		"события не дошли до ClickHouse")

	stop()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(15 * time.Second):
		t.Fatal("консьюмер не остановился после отмены контекста")
	}

	rows, err := client.DB().QueryContext(ctx, "SELECT id, dataset, status FROM "+writer.Table()+" ORDER BY dataset")
	require.NoError(t, err)
	defer rows.Close()

	got := map[string]string{}
	for rows.Next() {
		var id, dataset, status string
		require.NoError(t, rows.Scan(&id, &dataset, &status))
		got[id] = dataset + "/" + status
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, map[string]string{
		events[0].ID: "poles/ok",
		events[1].ID: "sales/failed",
		events[2].ID: "population/ok",
	}, got)
}
