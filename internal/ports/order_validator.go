package ports

import (
	"context"

	"github.com/Gunvolt24/orders_api/internal/domain"
)

// OrderValidator — валидация заказа перед записью в хранилище.
type OrderValidator interface {
	// Validate — полный документ (create/инжест): непустые items обязательны.
	Validate(ctx context.Context, order *domain.Order) error

	// ValidateItems — поэлементная проверка позиций без требования непустоты
	// (update допускает пустой список — см. контракт PUT /order/:orderId).
	ValidateItems(ctx context.Context, items []domain.Item) error
}
