package paymentprovider

import "time"

// Amount представляет денежную сумму.
type Amount struct {
	Value    string `json:"value"`    // сумма, например "50.00"
	Currency string `json:"currency"` // валюта, например "USD"
}

// CreateIntentRequest представляет запрос на создание платёжного намерения.
type CreateIntentRequest struct {
	Amount      Amount            `json:"amount"`
	Description string            `json:"description,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"` // дополнительная инфа: email плательщика, купон
}

// CreateIntentResponse представляет ответ на создание платёжного намерения.
type CreateIntentResponse struct {
	ID           string    `json:"id"`            // ID намерения у процессора
	ClientSecret string    `json:"client_secret"` // секрет для подтверждения оплаты на клиенте
	Status       string    `json:"status"`        // статус намерения, например "requires_confirmation"
	Amount       Amount    `json:"amount"`
	CreatedAt    time.Time `json:"created_at"`
}
