package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Роли пользователей платформы.
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// User представляет учётную запись пользователя платформы.
//
// Запись создаётся при первом входе (upsert) и никогда не удаляется ядром.
// Роль и состояние подписки меняются только отдельными операциями,
// повторный вход их не затрагивает.
type User struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name             string             `bson:"name" json:"name"`                 // Отображаемое имя
	Email            string             `bson:"email" json:"email"`               // Уникальный ключ учётной записи
	PhotoURL         string             `bson:"photoURL" json:"photoURL"`         // Аватар
	Role             string             `bson:"role" json:"role"`                 // user, moderator или admin
	IsSubscribed     bool               `bson:"isSubscribed" json:"isSubscribed"` // Признак оплаченной подписки
	SubscriptionDate *time.Time         `bson:"subscriptionDate,omitempty" json:"subscriptionDate,omitempty"` // Дата оформления подписки
}

// DummyUser используется для приёма данных пользователя из JSON-запроса при входе.
type DummyUser struct {
	Name             string `json:"name" validate:"required"`              // Имя пользователя
	Email            string `json:"email" validate:"required,email"`       // Email
	PhotoURL         string `json:"photoURL" validate:"omitempty,url"`     // Аватар
	IsSubscribed     bool   `json:"isSubscribed"`                          // Используется только при создании новой записи
	SubscriptionDate string `json:"subscriptionDate" validate:"omitempty"` // Дата подписки в формате RFC3339, только при создании
}

// UpsertResult описывает исход операции upsert пользователя.
type UpsertResult string

// Возможные исходы upsert: запись создана, обновлена или осталась без изменений.
const (
	UpsertCreated   UpsertResult = "created"
	UpsertUpdated   UpsertResult = "updated"
	UpsertUnchanged UpsertResult = "unchanged"
)

// ValidRole возвращает true, если роль входит в список допустимых.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}
