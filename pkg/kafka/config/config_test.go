package kafka_config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_DisabledByDefault(t *testing.T) {
	t.Setenv(EnvKafkaBrokers, "")

	cfg := Load()
	assert.False(t, cfg.Enabled())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_ParsesBrokers(t *testing.T) {
	t.Setenv(EnvKafkaBrokers, " kafka-1:9092, ,kafka-2:9092 ")
	t.Setenv(EnvKafkaProducerCompression, "GZIP")

	cfg := Load()
	assert.True(t, cfg.Enabled())
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Brokers)
	assert.Equal(t, "gzip", cfg.ProducerCompression)
	assert.NoError(t, cfg.Validate())
}

func TestValidate_AggregatesErrors(t *testing.T) {
	cfg := &Config{
		Brokers:              []string{"localhost:9092"},
		ProducerMaxAttempts:  0,
		ProducerBatchTimeout: DefaultProducerBatchTimeout,
		ProducerWriteTimeout: DefaultProducerWriteTimeout,
		ProducerRequireAcks:  2,
		ProducerCompression:  "brotli",
		PublishTimeout:       DefaultPublishTimeout,
	}

	err := cfg.Validate()
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "1. ProducerMaxAttempts")
		assert.Contains(t, err.Error(), "ProducerCompression")
		assert.Contains(t, err.Error(), "ProducerRequireAcks")
	}
}
