package kafka_config

import "time"

const (
	DefaultKafkaBrokers = ""

	DefaultProducerMaxAttempts    = 3
	DefaultProducerBatchTimeout   = 10 * time.Millisecond
	DefaultProducerWriteTimeout   = 5 * time.Second
	DefaultProducerRequireAcks    = -1 // Require all replicas
	DefaultProducerCompression    = "snappy"
	DefaultAllowAutoTopicCreation = false

	// Upper bound on how long a request waits for an event to be written
	DefaultPublishTimeout = 2 * time.Second
)
