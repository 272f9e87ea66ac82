package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Gunvolt24/orders_api/internal/domain"
	"github.com/Gunvolt24/orders_api/internal/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Проверка, что OrderRepository удовлетворяет интерфейсу ports.OrderRepository.
var _ ports.OrderRepository = (*OrderRepository)(nil)

// OrderRepository — реализация репозитория заказов на Postgres (pgxpool).
// Позиции заказа хранятся в JSONB-колонке items, поэтому каждая операция —
// один SQL-оператор и выполняется атомарно, без read-then-write.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository - конструктор OrderRepository.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository { return &OrderRepository{pool: pool} }

// Insert — вставляет новый заказ. Конфликт по order_id не перезаписывает
// существующую запись, а возвращает domain.ErrDuplicateOrder.
func (r *OrderRepository) Insert(ctx context.Context, order *domain.Order) error {
	if order == nil || order.OrderID == "" {
		return errors.New("order is empty or order_id is required")
	}

	itemsJSON, err := marshalItems(order.Items)
	if err != nil {
		return err
	}

	tag, err := r.pool.Exec(ctx, `
		INSERT INTO orders (order_id, items, total_value, created_at, updated_at)
		VALUES ($1, $2::jsonb, $3, $4, now())
		ON CONFLICT (order_id) DO NOTHING
	`, order.OrderID, itemsJSON, order.TotalValue, order.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDuplicateOrder
	}
	return nil
}

// GetByID — получить заказ по идентификатору. Если не нашли, возвращает (nil, nil).
func (r *OrderRepository) GetByID(ctx context.Context, orderID string) (*domain.Order, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT order_id, items, total_value, created_at, updated_at
		FROM orders WHERE order_id = $1
	`, orderID)

	order, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select order: %w", err)
	}
	return order, nil
}

// ListAll — все заказы, новые первыми. Вторичный ключ сортировки order_id
// даёт стабильный порядок при совпадающем created_at.
func (r *OrderRepository) ListAll(ctx context.Context) ([]*domain.Order, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT order_id, items, total_value, created_at, updated_at
		FROM orders
		ORDER BY created_at DESC, order_id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("orders rows: %w", err)
	}
	return orders, nil
}

// Update — частичное обновление одним оператором: COALESCE оставляет
// прежнее значение для не переданных полей, updated_at двигается всегда.
// Если заказ не найден, возвращает (nil, nil).
func (r *OrderRepository) Update(ctx context.Context, orderID string, patch domain.OrderPatch) (*domain.Order, error) {
	var itemsJSON []byte
	if patch.Items != nil {
		var err error
		itemsJSON, err = marshalItems(*patch.Items)
		if err != nil {
			return nil, err
		}
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE orders SET
			total_value = COALESCE($2, total_value),
			items = COALESCE($3::jsonb, items),
			updated_at = now()
		WHERE order_id = $1
		RETURNING order_id, items, total_value, created_at, updated_at
	`, orderID, patch.TotalValue, itemsJSON)

	order, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}
	return order, nil
}

// DeleteByID — удаляет заказ и возвращает удалённую запись.
// Если заказ не найден, возвращает (nil, nil).
func (r *OrderRepository) DeleteByID(ctx context.Context, orderID string) (*domain.Order, error) {
	row := r.pool.QueryRow(ctx, `
		DELETE FROM orders WHERE order_id = $1
		RETURNING order_id, items, total_value, created_at, updated_at
	`, orderID)

	order, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("delete order: %w", err)
	}
	return order, nil
}

// Upsert — идемпотентное сохранение для потокового приёма: повторная
// доставка сообщения перезаписывает items и total_value, created_at
// первой вставки сохраняется.
func (r *OrderRepository) Upsert(ctx context.Context, order *domain.Order) error {
	if order == nil || order.OrderID == "" {
		return errors.New("order is empty or order_id is required")
	}

	itemsJSON, err := marshalItems(order.Items)
	if err != nil {
		return err
	}

	if _, err := r.pool.Exec(ctx, `
		INSERT INTO orders (order_id, items, total_value, created_at, updated_at)
		VALUES ($1, $2::jsonb, $3, $4, now())
		ON CONFLICT (order_id) DO UPDATE SET
			items = EXCLUDED.items,
			total_value = EXCLUDED.total_value,
			updated_at = now()
	`, order.OrderID, itemsJSON, order.TotalValue, order.CreatedAt); err != nil {
		return fmt.Errorf("upsert order: %w", err)
	}
	return nil
}

// marshalItems — сериализация позиций в JSONB; nil-срез пишем как [].
func marshalItems(items []domain.Item) ([]byte, error) {
	if items == nil {
		items = []domain.Item{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("marshal items: %w", err)
	}
	return data, nil
}

// scanOrder — чтение одной строки orders; items разворачиваются из JSONB.
func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		order     domain.Order
		itemsJSON []byte
	)
	if err := row.Scan(&order.OrderID, &itemsJSON, &order.TotalValue, &order.CreatedAt, &order.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
		return nil, fmt.Errorf("unmarshal items: %w", err)
	}
	if order.Items == nil {
		order.Items = []domain.Item{}
	}
	return &order, nil
}
