package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review представляет отзыв пользователя о продукте.
type Review struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ProductID     string             `bson:"productId" json:"productId"`         // ID продукта, к которому относится отзыв
	ReviewerName  string             `bson:"reviewerName" json:"reviewerName"`   // Имя автора
	ReviewerEmail string             `bson:"reviewerEmail" json:"reviewerEmail"` // Email автора
	ReviewerImage string             `bson:"reviewerImage" json:"reviewerImage"` // Аватар автора
	Rating        int                `bson:"rating" json:"rating"`               // Оценка от 1 до 5
	Comment       string             `bson:"comment" json:"comment"`             // Текст отзыва
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`         // Дата создания
}

// DummyReview используется для приёма отзыва из JSON-запроса.
// Email автора берётся из контекста авторизации.
type DummyReview struct {
	ReviewerName  string `json:"reviewerName" validate:"required"`          // Имя автора
	ReviewerImage string `json:"reviewerImage" validate:"omitempty,url"`    // Аватар автора
	Rating        int    `json:"rating" validate:"required,gte=1,lte=5"`    // Оценка от 1 до 5
	Comment       string `json:"comment" validate:"required"`               // Текст отзыва
}
