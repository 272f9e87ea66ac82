package ports

import (
	"context"

	"github.com/Gunvolt24/orders_api/internal/domain"
)

// OrderService — операции сервиса заказов, потребляемые транспортом.
// Семантика «не найдено» — (nil, nil), как у репозитория.
type OrderService interface {
	CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]*domain.Order, error)
	UpdateOrder(ctx context.Context, orderID string, patch domain.OrderPatch) (*domain.Order, error)
	DeleteOrder(ctx context.Context, orderID string) (*domain.Order, error)
}
