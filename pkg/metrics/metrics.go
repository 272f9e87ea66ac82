package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// OrderOperations — счётчик CRUD-операций над заказами по измерениям op/result.
	OrderOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_operations_total",
			Help: "Количество операций над заказами (op: create/get/list/update/delete, result: ok/error/not_found/conflict).",
		},
		[]string{"op", "result"},
	)

	// KafkaMessagesConsumed — количество прочитанных сообщений по топикам.
	KafkaMessagesConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_consumed_total",
			Help: "Количество сообщений, прочитанных из Kafka.",
		},
		[]string{"topic"},
	)

	// KafkaMessagesProcessed — количество успешно обработанных сообщений.
	KafkaMessagesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_processed_total",
			Help: "Количество успешно обработанных сообщений Kafka.",
		},
		[]string{"topic"},
	)

	// KafkaMessagesFailed — количество сообщений, обработка которых завершилась ошибкой.
	KafkaMessagesFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_failed_total",
			Help: "Количество сообщений Kafka, завершившихся ошибкой обработки.",
		},
		[]string{"topic"},
	)
)

var registerOnce sync.Once

// MustRegister — регистрация метрик в реестре по умолчанию; повторные вызовы безопасны.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			OrderOperations,
			KafkaMessagesConsumed,
			KafkaMessagesProcessed,
			KafkaMessagesFailed,
		)
	})
}
