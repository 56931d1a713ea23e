package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Coupon представляет скидочный купон на оплату подписки.
//
// Срок действия ограничен только датой ExpiryDate: купон многоразовый,
// применение его не расходует.
type Coupon struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Code        string             `bson:"code" json:"code"`               // Уникальный код купона
	Discount    float64            `bson:"discount" json:"discount"`       // Скидка в процентах
	Description string             `bson:"description" json:"description"` // Описание акции
	ExpiryDate  time.Time          `bson:"expiryDate" json:"expiryDate"`   // Дата окончания действия
}

// DummyCoupon используется для приёма данных купона из JSON-запроса.
// Дата приходит строкой, чтобы её можно было валидировать и парсить вручную.
type DummyCoupon struct {
	Code        string  `json:"code" validate:"required,alphanum"`               // Код купона
	Discount    float64 `json:"discount" validate:"required,gt=0,lte=100"`       // Скидка в процентах (0-100]
	Description string  `json:"description" validate:"omitempty"`                // Описание
	ExpiryDate  string  `json:"expiryDate" validate:"required,datetime=2006-01-02"` // Дата окончания в формате 2006-01-02
}
