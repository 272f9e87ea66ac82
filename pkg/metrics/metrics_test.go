package metrics

import "testing"

// TestMustRegister_Idempotent - повторная регистрация не должна паниковать.
func TestMustRegister_Idempotent(t *testing.T) {
	MustRegister()
	MustRegister()
}

// TestCounters_Inc - инкремент счётчиков с метками не паникует.
func TestCounters_Inc(t *testing.T) {
	MustRegister()

	OrderOperations.WithLabelValues("create", "ok").Inc()
	OrderOperations.WithLabelValues("update", "not_found").Inc()
	KafkaMessagesConsumed.WithLabelValues("orders").Inc()
	KafkaMessagesProcessed.WithLabelValues("orders").Inc()
	KafkaMessagesFailed.WithLabelValues("orders").Inc()
}
