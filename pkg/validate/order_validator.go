package validate

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/Gunvolt24/orders_api/internal/domain"
	"github.com/Gunvolt24/orders_api/internal/ports"
)

// Проверка, что OrderValidator удовлетворяет интерфейсу ports.OrderValidator.
var _ ports.OrderValidator = (*OrderValidator)(nil)

// ErrInvalidOrder — базовая (sentinel error) ошибка валидации.
var ErrInvalidOrder = errors.New("order validation failed")

// OrderValidator — структура для валидации заказа.
// Возвращает ErrInvalidOrder (с обёрнутой причиной) при любой проблеме.
type OrderValidator struct{}

// NewOrderValidator — конструктор OrderValidator.
func NewOrderValidator() *OrderValidator { return &OrderValidator{} }

// Validate — проверяет полный документ заказа (create/инжест).
func (v *OrderValidator) Validate(ctx context.Context, order *domain.Order) error {
	if order == nil {
		return fmt.Errorf("%w: заказ не может быть nil", ErrInvalidOrder)
	}
	if order.OrderID == "" {
		return fmt.Errorf("%w: orderId обязателен", ErrInvalidOrder)
	}
	if order.TotalValue < 0 {
		return fmt.Errorf("%w: totalValue должен быть неотрицательным", ErrInvalidOrder)
	}
	if order.CreatedAt.IsZero() {
		return fmt.Errorf("%w: createdAt некорректен", ErrInvalidOrder)
	}
	if len(order.Items) == 0 {
		return fmt.Errorf("%w: items не должен быть пустым", ErrInvalidOrder)
	}
	return v.ValidateItems(ctx, order.Items)
}

// ValidateItems — поэлементная валидация позиций.
// Пустой список здесь НЕ ошибка: update допускает полную замену items на [].
func (v *OrderValidator) ValidateItems(_ context.Context, items []domain.Item) error {
	for i := range items {
		item := &items[i]
		idx := strconv.Itoa(i)

		if item.ProductID == "" {
			return fmt.Errorf("%w: items[%s].productId обязателен", ErrInvalidOrder, idx)
		}
		if item.Quantity < 1 {
			return fmt.Errorf("%w: items[%s].quantity должен быть не меньше 1", ErrInvalidOrder, idx)
		}
		if item.UnitValue < 0 {
			return fmt.Errorf("%w: items[%s].unitValue должен быть неотрицательным", ErrInvalidOrder, idx)
		}
	}
	return nil
}
