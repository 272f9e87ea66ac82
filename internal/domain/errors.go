package domain

import "errors"

// ErrDuplicateOrder — попытка создать заказ с уже занятым orderId.
// Уникальность гарантирует хранилище (PRIMARY KEY), а не проверка «прочитал-записал».
var ErrDuplicateOrder = errors.New("order already exists")
