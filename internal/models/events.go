package models

import "time"

// ModerationEvent публикуется в очередь уведомлений после решения модератора,
// воркер-отправитель формирует из него письмо владельцу продукта.
type ModerationEvent struct {
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	OwnerEmail  string    `json:"owner_email"`
	OwnerName   string    `json:"owner_name"`
	Status      string    `json:"status"` // Accepted или Rejected
	DecidedAt   time.Time `json:"decided_at"`
}
