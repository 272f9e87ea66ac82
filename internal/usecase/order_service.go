package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Gunvolt24/orders_api/internal/domain"
	"github.com/Gunvolt24/orders_api/internal/ports"
	"github.com/Gunvolt24/orders_api/pkg/metrics"
	"github.com/Gunvolt24/orders_api/pkg/validate"
)

// Проверка, что OrderService удовлетворяет интерфейсу ports.OrderService.
var _ ports.OrderService = (*OrderService)(nil)

// OrderService — прикладная логика работы с заказами (без знаний о транспорте).
type OrderService struct {
	repo      ports.OrderRepository // прямой доступ к хранилищу
	log       ports.Logger          // прямой доступ к логгеру
	validator ports.OrderValidator  // прямой доступ к валидатору
	now       func() time.Time      // источник времени (подменяется в тестах)
}

// NewOrderService — DI-конструктор.
func NewOrderService(
	repo ports.OrderRepository,
	log ports.Logger,
	validator ports.OrderValidator,
) *OrderService {
	return &OrderService{
		repo:      repo,
		log:       log,
		validator: validator,
		now:       time.Now,
	}
}

// WithClock — подмена источника времени (для тестов).
func (s *OrderService) WithClock(now func() time.Time) *OrderService {
	s.now = now
	return s
}

// CreateOrder — создать заказ.
// Шаги:
//  1. нормализация orderId (обрезаем пробелы по краям);
//  2. createdAt по умолчанию — текущее время (UTC), если не передан;
//  3. доменная валидация (items при создании обязателен и непуст);
//  4. атомарная вставка: конфликт по orderId — ErrDuplicateOrder.
func (s *OrderService) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, fmt.Errorf("%w: заказ не может быть nil", validate.ErrInvalidOrder)
	}

	order.OrderID = strings.TrimSpace(order.OrderID)
	if order.CreatedAt.IsZero() {
		order.CreatedAt = s.now().UTC()
	}

	if err := s.validator.Validate(ctx, order); err != nil {
		s.log.Warnf(ctx, "validation failed order_id=%s err=%v", order.OrderID, err)
		metrics.OrderOperations.WithLabelValues("create", "error").Inc()
		return nil, err
	}

	if err := s.repo.Insert(ctx, order); err != nil {
		if errors.Is(err, domain.ErrDuplicateOrder) {
			s.log.Warnf(ctx, "duplicate order_id=%s", order.OrderID)
			metrics.OrderOperations.WithLabelValues("create", "conflict").Inc()
			return nil, err
		}
		s.log.Errorf(ctx, "repo.Insert failed order_id=%s err=%v", order.OrderID, err)
		metrics.OrderOperations.WithLabelValues("create", "error").Inc()
		return nil, err
	}

	s.log.Infof(ctx, "order created order_id=%s items=%d", order.OrderID, len(order.Items))
	metrics.OrderOperations.WithLabelValues("create", "ok").Inc()
	return order, nil
}

// GetOrder — получить заказ по идентификатору.
// Возвращает (*Order, nil) или (nil, nil), если записи нет.
func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	start := time.Now()
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		s.log.Errorf(ctx, "repo.GetByID failed order_id=%s err=%v", orderID, err)
		metrics.OrderOperations.WithLabelValues("get", "error").Inc()
		return nil, err
	}
	if order == nil {
		metrics.OrderOperations.WithLabelValues("get", "not_found").Inc()
		return nil, nil
	}

	s.log.Infof(ctx, "db fetch order_id=%s took=%s", orderID, time.Since(start))
	metrics.OrderOperations.WithLabelValues("get", "ok").Inc()
	return order, nil
}

// ListOrders — все заказы, новые первыми. Пустая коллекция — это []*Order{}, не nil.
func (s *OrderService) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	orders, err := s.repo.ListAll(ctx)
	if err != nil {
		s.log.Errorf(ctx, "repo.ListAll failed err=%v", err)
		metrics.OrderOperations.WithLabelValues("list", "error").Inc()
		return nil, err
	}
	if orders == nil {
		orders = []*domain.Order{}
	}
	metrics.OrderOperations.WithLabelValues("list", "ok").Inc()
	return orders, nil
}

// UpdateOrder — частичное обновление.
// Оба поля патча опциональны: пустой патч проходит в хранилище как есть
// (запись остаётся прежней, двигается только updated_at).
// items допускает полную замену на []. Возвращает (nil, nil), если заказ не найден.
func (s *OrderService) UpdateOrder(ctx context.Context, orderID string, patch domain.OrderPatch) (*domain.Order, error) {
	if patch.TotalValue != nil && *patch.TotalValue < 0 {
		metrics.OrderOperations.WithLabelValues("update", "error").Inc()
		return nil, fmt.Errorf("%w: totalValue должен быть неотрицательным", validate.ErrInvalidOrder)
	}
	if patch.Items != nil {
		if err := s.validator.ValidateItems(ctx, *patch.Items); err != nil {
			s.log.Warnf(ctx, "items validation failed order_id=%s err=%v", orderID, err)
			metrics.OrderOperations.WithLabelValues("update", "error").Inc()
			return nil, err
		}
	}

	order, err := s.repo.Update(ctx, orderID, patch)
	if err != nil {
		s.log.Errorf(ctx, "repo.Update failed order_id=%s err=%v", orderID, err)
		metrics.OrderOperations.WithLabelValues("update", "error").Inc()
		return nil, err
	}
	if order == nil {
		metrics.OrderOperations.WithLabelValues("update", "not_found").Inc()
		return nil, nil
	}

	s.log.Infof(ctx, "order updated order_id=%s", orderID)
	metrics.OrderOperations.WithLabelValues("update", "ok").Inc()
	return order, nil
}

// DeleteOrder — удалить заказ; удалённая запись возвращается вызывающему.
// Возвращает (nil, nil), если заказ не найден.
func (s *OrderService) DeleteOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.repo.DeleteByID(ctx, orderID)
	if err != nil {
		s.log.Errorf(ctx, "repo.DeleteByID failed order_id=%s err=%v", orderID, err)
		metrics.OrderOperations.WithLabelValues("delete", "error").Inc()
		return nil, err
	}
	if order == nil {
		metrics.OrderOperations.WithLabelValues("delete", "not_found").Inc()
		return nil, nil
	}

	s.log.Infof(ctx, "order deleted order_id=%s", orderID)
	metrics.OrderOperations.WithLabelValues("delete", "ok").Inc()
	return order, nil
}

// SaveFromMessage — сохранить заказ, пришедший из Kafka (raw JSON).
// Шаги:
//  1. строгий парсинг JSON (DisallowUnknownFields); ошибка разбора —
//     validate.ErrInvalidOrder, чтобы консьюмер пропустил сообщение навсегда;
//  2. createdAt по умолчанию — текущее время, если не передан;
//  3. доменная валидация;
//  4. идемпотентный upsert — повторная доставка не дублирует запись.
func (s *OrderService) SaveFromMessage(ctx context.Context, raw []byte) error {
	var order domain.Order
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	// Битый JSON — постоянная ошибка данных, как и провал валидации:
	// повторная доставка сообщения её не исправит.
	if err := dec.Decode(&order); err != nil {
		s.log.Warnf(ctx, "invalid json err=%v", err)
		return fmt.Errorf("%w: invalid json: %v", validate.ErrInvalidOrder, err)
	}

	// Убеждаемся, что после объекта нет лишних данных.
	if err := dec.Decode(new(struct{})); err != io.EOF {
		s.log.Warnf(ctx, "invalid json: trailing data")
		return fmt.Errorf("%w: invalid json: trailing data", validate.ErrInvalidOrder)
	}

	order.OrderID = strings.TrimSpace(order.OrderID)
	if order.CreatedAt.IsZero() {
		order.CreatedAt = s.now().UTC()
	}

	if err := s.validator.Validate(ctx, &order); err != nil {
		s.log.Warnf(ctx, "validation failed order_id=%s err=%v", order.OrderID, err)
		return fmt.Errorf("validation failed: %w", err)
	}

	if err := s.repo.Upsert(ctx, &order); err != nil {
		s.log.Errorf(ctx, "repo.Upsert failed order_id=%s err=%v", order.OrderID, err)
		return fmt.Errorf("failed to save order: %w", err)
	}

	s.log.Infof(ctx, "order saved order_id=%s items=%d", order.OrderID, len(order.Items))
	return nil
}
