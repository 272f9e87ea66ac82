package domain

import "time"

// Order — документ заказа: единица хранения и канонический ответ API.
// UpdatedAt ведёт хранилище (выставляется при insert/update), наружу не отдаём.
type Order struct {
	OrderID    string    `json:"orderId"`
	Items      []Item    `json:"items"`
	TotalValue float64   `json:"totalValue"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"-"`
}

// Item — позиция заказа. Встроена в документ, отдельно не адресуется.
type Item struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	UnitValue float64 `json:"unitValue"`
}

// OrderPatch — частичное обновление заказа: nil-поле означает «не трогать».
// Items заменяются целиком (не merge); пустой срез — валидное значение.
type OrderPatch struct {
	TotalValue *float64
	Items      *[]Item
}
