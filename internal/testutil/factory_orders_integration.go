//go:build integration

package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/Gunvolt24/orders_api/internal/domain"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func UniqSuffix() string { return randHex(6) }

// MakeOrder — мини-генератор валидного заказа с уникальным orderId.
func MakeOrder(opts ...func(*domain.Order)) domain.Order {
	now := time.Now().UTC().Truncate(time.Second)

	o := domain.Order{
		OrderID:    "ord-" + UniqSuffix(),
		TotalValue: 100,
		CreatedAt:  now,
		Items: []domain.Item{
			{ProductID: "prod-" + UniqSuffix(), Quantity: 2, UnitValue: 50},
		},
	}

	for _, fn := range opts {
		fn(&o)
	}
	return o
}

func WithOrderID(id string) func(*domain.Order) {
	return func(o *domain.Order) { o.OrderID = id }
}

func WithTotalValue(v float64) func(*domain.Order) {
	return func(o *domain.Order) { o.TotalValue = v }
}

func WithCreatedAt(ts time.Time) func(*domain.Order) {
	return func(o *domain.Order) { o.CreatedAt = ts }
}

func WithItems(n int) func(*domain.Order) {
	return func(o *domain.Order) {
		o.Items = make([]domain.Item, 0, n)
		for i := 0; i < n; i++ {
			o.Items = append(o.Items, domain.Item{
				ProductID: "prod-" + UniqSuffix(),
				Quantity:  i + 1,
				UnitValue: float64(10 * (i + 1)),
			})
		}
	}
}
