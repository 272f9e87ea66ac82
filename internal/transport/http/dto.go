package rest

import (
	"encoding/json"
	"time"

	"github.com/Gunvolt24/orders_api/internal/domain"
)

// itemPayload — позиция заказа во входном формате API.
// Входные имена (itemId/itemQuantity/itemValue) отличаются от хранимых
// (productId/quantity/unitValue) — маппинг выполняется на границе транспорта.
type itemPayload struct {
	ItemID       string  `json:"itemId"`
	ItemQuantity int     `json:"itemQuantity"`
	ItemValue    float64 `json:"itemValue"`
}

// createOrderRequest — тело POST /order.
// Указатели отличают отсутствующее поле от нулевого значения.
type createOrderRequest struct {
	OrderID      *string        `json:"orderId"`
	CreationTime *time.Time     `json:"creationTime"`
	TotalValue   *float64       `json:"totalValue"`
	Items        *[]itemPayload `json:"items"`
}

// hasRequired — orderId, totalValue и items обязательны при создании.
func (r *createOrderRequest) hasRequired() bool {
	return r.OrderID != nil && r.TotalValue != nil && r.Items != nil
}

func (r *createOrderRequest) toDomain() *domain.Order {
	order := &domain.Order{
		OrderID:    *r.OrderID,
		Items:      mapItems(*r.Items),
		TotalValue: *r.TotalValue,
	}
	if r.CreationTime != nil {
		order.CreatedAt = *r.CreationTime
	}
	return order
}

// updateOrderRequest — тело PUT /order/:orderId.
// items разбирается отложенно (RawMessage), чтобы отличать отсутствие поля,
// null и значение не-массив.
type updateOrderRequest struct {
	TotalValue *float64        `json:"totalValue"`
	Items      json.RawMessage `json:"items"`
}

func mapItems(in []itemPayload) []domain.Item {
	items := make([]domain.Item, 0, len(in))
	for _, p := range in {
		items = append(items, domain.Item{
			ProductID: p.ItemID,
			Quantity:  p.ItemQuantity,
			UnitValue: p.ItemValue,
		})
	}
	return items
}
