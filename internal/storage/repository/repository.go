// Package repository реализует хранилище данных на основе MongoDB
// для продуктов, пользователей, купонов и отзывов. Предоставляет методы
// создания, чтения, обновления, удаления и агрегирования записей,
// включая атомарные условные обновления счётчиков голосов и жалоб.
package repository

import (
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/magabrotheeeer/tech-elevate/internal/storage/mongodb"
)

// Storage инкапсулирует коллекции документной базы
// и реализует методы работы с сущностями платформы.
type Storage struct {
	products *mongo.Collection
	users    *mongo.Collection
	coupons  *mongo.Collection
	reviews  *mongo.Collection
}

// New создаёт Storage поверх подключённого клиента MongoDB.
func New(client *mongodb.Client) *Storage {
	return &Storage{
		products: client.DB.Collection(mongodb.ProductsCollection),
		users:    client.DB.Collection(mongodb.UsersCollection),
		coupons:  client.DB.Collection(mongodb.CouponsCollection),
		reviews:  client.DB.Collection(mongodb.ReviewsCollection),
	}
}
