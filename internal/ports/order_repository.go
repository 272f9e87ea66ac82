package ports

import (
	"context"

	"github.com/Gunvolt24/orders_api/internal/domain"
)

// OrderRepository — контракт хранилища заказов.
// Каждая операция — один запрос к хранилищу, атомарный на уровне документа.
// Отсутствие записи — (nil, nil), а не ошибка.
type OrderRepository interface {
	// Insert — вставка нового заказа; занятый orderId → domain.ErrDuplicateOrder.
	Insert(ctx context.Context, order *domain.Order) error

	// GetByID — заказ по идентификатору.
	GetByID(ctx context.Context, orderID string) (*domain.Order, error)

	// ListAll — все заказы, новые первыми (created_at DESC).
	ListAll(ctx context.Context) ([]*domain.Order, error)

	// Update — атомарный find-and-modify по патчу; возвращает обновлённый документ.
	Update(ctx context.Context, orderID string, patch domain.OrderPatch) (*domain.Order, error)

	// DeleteByID — атомарный find-and-delete; возвращает удалённый документ.
	DeleteByID(ctx context.Context, orderID string) (*domain.Order, error)

	// Upsert — идемпотентное сохранение для потокового инжеста (Kafka).
	Upsert(ctx context.Context, order *domain.Order) error
}
