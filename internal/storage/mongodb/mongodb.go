// Package mongodb управляет жизненным циклом подключения к документной базе:
// установка соединения, проверка доступности, создание индексов и закрытие.
// Клиент создаётся один раз на процесс и передаётся компонентам явно.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Имена коллекций платформы.
const (
	ProductsCollection = "products"
	UsersCollection    = "users"
	CouponsCollection  = "coupons"
	ReviewsCollection  = "reviews"
)

// Client инкапсулирует соединение с MongoDB и выбранную базу данных.
type Client struct {
	Mongo *mongo.Client
	DB    *mongo.Database
}

// New подключается к MongoDB, проверяет соединение ping-ом
// и возвращает готовый клиент.
func New(ctx context.Context, uri, database string, connectTimeout time.Duration) (*Client, error) {
	const op = "mongodb.New"

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Client{
		Mongo: client,
		DB:    client.Database(database),
	}, nil
}

// EnsureIndexes создает индексы, необходимые для корректной работы платформы.
// Уникальные индексы на users.email и coupons.code закрепляют инварианты
// уникальности на уровне хранилища, остальные обслуживают выборки.
func (c *Client) EnsureIndexes(ctx context.Context) error {
	const op = "mongodb.EnsureIndexes"

	_, err := c.DB.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("%s: users.email: %w", op, err)
	}

	_, err = c.DB.Collection(CouponsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "code", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("%s: coupons.code: %w", op, err)
	}

	_, err = c.DB.Collection(ProductsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "ownerEmail", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "upvotes", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("%s: products: %w", op, err)
	}

	_, err = c.DB.Collection(ReviewsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "productId", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("%s: reviews.productId: %w", op, err)
	}
	return nil
}

// Close разрывает соединение с базой данных.
func (c *Client) Close(ctx context.Context) error {
	const op = "mongodb.Close"
	if err := c.Mongo.Disconnect(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
