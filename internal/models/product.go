// Package models содержит доменные структуры платформы: продукты, пользователи,
// купоны и отзывы, а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Статусы модерации продукта. Новый продукт всегда создаётся в статусе Pending.
const (
	StatusPending  = "Pending"
	StatusAccepted = "Accepted"
	StatusRejected = "Rejected"
)

// Действия модератора над продуктом. ActionNone (или пустая строка)
// оставляет статус без изменений.
const (
	ActionAccept = "Accept"
	ActionReject = "Reject"
	ActionNone   = "None"
)

// Product представляет продукт, опубликованный пользователем платформы.
//
// Счётчики Upvotes/Reports всегда равны длине соответствующих списков
// Voters/ReportedBy: оба поля меняются только одним атомарным обновлением
// в хранилище.
type Product struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ProductName  string             `bson:"productName" json:"productName"`           // Название продукта
	ProductImage string             `bson:"productImage" json:"productImage"`         // Ссылка на изображение
	Description  string             `bson:"description" json:"description"`           // Описание
	OwnerName    string             `bson:"ownerName" json:"ownerName"`               // Имя владельца
	OwnerEmail   string             `bson:"ownerEmail" json:"ownerEmail"`             // Email владельца, неизменяем после создания
	OwnerImage   string             `bson:"ownerImage" json:"ownerImage"`             // Аватар владельца
	Tags         []string           `bson:"tags" json:"tags"`                         // Теги для поиска
	ExternalLink string             `bson:"externalLink" json:"externalLink"`         // Внешняя ссылка на продукт
	Upvotes      int                `bson:"upvotes" json:"upvotes"`                   // Количество голосов
	Voters       []string           `bson:"voters" json:"voters"`                     // Email проголосовавших, каждый не более одного раза
	Reports      int                `bson:"reports" json:"reports"`                   // Количество жалоб
	ReportedBy   []string           `bson:"reportedBy" json:"reportedBy"`             // Email пожаловавшихся
	Status       string             `bson:"status" json:"status"`                     // Pending, Accepted или Rejected
	IsFeatured   bool               `bson:"isFeatured" json:"isFeatured"`             // Признак избранного продукта
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`               // Дата создания
}

// DummyProduct используется для приёма данных нового продукта из JSON-запроса.
// Email и имя владельца берутся не из тела запроса, а из контекста авторизации.
type DummyProduct struct {
	ProductName  string   `json:"productName" validate:"required"`        // Название продукта
	ProductImage string   `json:"productImage" validate:"omitempty,url"`  // Ссылка на изображение
	Description  string   `json:"description" validate:"omitempty"`       // Описание
	Tags         []string `json:"tags" validate:"omitempty"`              // Теги
	ExternalLink string   `json:"externalLink" validate:"omitempty,url"`  // Внешняя ссылка
}

// DummyProductUpdate используется для приёма изменений описательных полей продукта.
// Статус, счётчики и списки проголосовавших через этот тип не меняются.
type DummyProductUpdate struct {
	ProductName  string   `json:"productName" validate:"required"`
	ProductImage string   `json:"productImage" validate:"omitempty,url"`
	Description  string   `json:"description" validate:"omitempty"`
	Tags         []string `json:"tags" validate:"omitempty"`
	ExternalLink string   `json:"externalLink" validate:"omitempty,url"`
}

// DummyModeration используется для приёма решения модератора из JSON-запроса.
//
// Нераспознанное или отсутствующее действие не меняет статус продукта,
// IsFeatured может быть только установлен в true, снять признак нельзя.
type DummyModeration struct {
	Action     string `json:"action" validate:"omitempty,oneof=Accept Reject None"` // Accept, Reject или None
	IsFeatured bool   `json:"isFeatured"`                                           // Сделать продукт избранным
}

// AcceptedPage представляет страницу одобренных продуктов с общим числом страниц.
type AcceptedPage struct {
	Products   []*Product `json:"products"`
	TotalPages int64      `json:"totalPages"`
}

// Stats содержит агрегированную статистику платформы для панели администратора.
type Stats struct {
	TotalProducts    int64 `json:"totalProducts"`
	PendingProducts  int64 `json:"pendingProducts"`
	AcceptedProducts int64 `json:"acceptedProducts"`
	RejectedProducts int64 `json:"rejectedProducts"`
	TotalUsers       int64 `json:"totalUsers"`
	TotalReviews     int64 `json:"totalReviews"`
}
