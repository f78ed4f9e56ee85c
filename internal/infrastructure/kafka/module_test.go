package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_brokersSlice(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
		want []string
	}{
		{name: "nil конфиг", cfg: nil, want: []string{"localhost:9092"}},
		{name: "пустая строка", cfg: &Config{}, want: []string{"localhost:9092"}},
		{name: "один брокер", cfg: &Config{Brokers: "kafka:9092"}, want: []string{"kafka:9092"}},
		{name: "несколько с пробелами", cfg: &Config{Brokers: "k1:9092, k2:9092 ,k3:9092"}, want: []string{"k1:9092", "k2:9092", "k3:9092"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.brokersSlice())
		})
	}
}

func TestClient_Producer(t *testing.T) {
	p := New(&Config{Brokers: "k1:9092", Topic: "macrodash.refreshes"}).Producer()
	defer p.Close()

	assert.Equal(t, "macrodash.refreshes", p.w.Topic)
	assert.True(t, p.w.AllowAutoTopicCreation, "топик создаётся при первой записи")
}
