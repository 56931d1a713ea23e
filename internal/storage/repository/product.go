package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/magabrotheeeer/tech-elevate/internal/models"
)

// CreateProduct вставляет новый продукт и возвращает его ID в hex-формате.
func (s *Storage) CreateProduct(ctx context.Context, product models.Product) (string, error) {
	const op = "storage.CreateProduct"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.products.InsertOne(ctx, product)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("%s: unexpected inserted id type", op)
	}
	return oid.Hex(), nil
}

// ReadProduct возвращает продукт по его ID.
func (s *Storage) ReadProduct(ctx context.Context, id string) (*models.Product, error) {
	const op = "storage.ReadProduct"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, models.ErrProductNotFound)
	}

	var result models.Product
	err = s.products.FindOne(ctx, bson.M{"_id": oid}).Decode(&result)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrProductNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// AddVote атомарно добавляет голос: инкремент счётчика и запись email
// в список проголосовавших выполняются одним условным обновлением.
// Условие допуска (продукт существует, голосующий не владелец и ещё
// не голосовал) входит в фильтр, поэтому два одновременных голоса
// одного пользователя не могут задвоить счётчик.
// Возвращает false, если условие не выполнилось и голос не записан.
func (s *Storage) AddVote(ctx context.Context, id, email string) (bool, error) {
	const op = "storage.AddVote"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, models.ErrProductNotFound)
	}

	filter := bson.M{
		"_id":        oid,
		"ownerEmail": bson.M{"$ne": email},
		"voters":     bson.M{"$ne": email},
	}
	update := bson.M{
		"$inc":      bson.M{"upvotes": 1},
		"$addToSet": bson.M{"voters": email},
	}
	res, err := s.products.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return res.MatchedCount == 1, nil
}

// AddReport атомарно добавляет жалобу, симметрично AddVote:
// счётчик reports и список reportedBy меняются одной операцией.
func (s *Storage) AddReport(ctx context.Context, id, email string) (bool, error) {
	const op = "storage.AddReport"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, models.ErrProductNotFound)
	}

	filter := bson.M{
		"_id":        oid,
		"ownerEmail": bson.M{"$ne": email},
		"reportedBy": bson.M{"$ne": email},
	}
	update := bson.M{
		"$inc":      bson.M{"reports": 1},
		"$addToSet": bson.M{"reportedBy": email},
	}
	res, err := s.products.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return res.MatchedCount == 1, nil
}

// ApplyModeration применяет решение модератора: статус и признак избранного
// задаются одним $set. Пустой набор полей не отправляется в базу,
// но существование продукта всё равно проверяется.
func (s *Storage) ApplyModeration(ctx context.Context, id string, status string, makeFeatured bool) error {
	const op = "storage.ApplyModeration"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, models.ErrProductNotFound)
	}

	set := bson.M{}
	if status != "" {
		set["status"] = status
	}
	if makeFeatured {
		set["isFeatured"] = true
	}
	if len(set) == 0 {
		count, err := s.products.CountDocuments(ctx, bson.M{"_id": oid})
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if count == 0 {
			return fmt.Errorf("%s: %w", op, models.ErrProductNotFound)
		}
		return nil
	}

	res, err := s.products.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrProductNotFound)
	}
	return nil
}

// UpdateProduct обновляет описательные поля продукта по его ID.
// Статус, счётчики и списки проголосовавших этим методом не меняются.
func (s *Storage) UpdateProduct(ctx context.Context, id string, req models.DummyProductUpdate) error {
	const op = "storage.UpdateProduct"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, models.ErrProductNotFound)
	}

	update := bson.M{"$set": bson.M{
		"productName":  req.ProductName,
		"productImage": req.ProductImage,
		"description":  req.Description,
		"tags":         req.Tags,
		"externalLink": req.ExternalLink,
	}}
	res, err := s.products.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrProductNotFound)
	}
	return nil
}

// RemoveProduct удаляет продукт по ID.
func (s *Storage) RemoveProduct(ctx context.Context, id string) error {
	const op = "storage.RemoveProduct"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, models.ErrProductNotFound)
	}

	res, err := s.products.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrProductNotFound)
	}
	return nil
}

// ListProductsByOwner возвращает все продукты владельца.
func (s *Storage) ListProductsByOwner(ctx context.Context, ownerEmail string) ([]*models.Product, error) {
	const op = "storage.ListProductsByOwner"
	return s.findProducts(ctx, op, bson.M{"ownerEmail": ownerEmail}, options.Find())
}

// ListAllProducts возвращает все продукты для панели модератора,
// в порядке поступления: ожидающие решения раньше.
func (s *Storage) ListAllProducts(ctx context.Context) ([]*models.Product, error) {
	const op = "storage.ListAllProducts"
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	return s.findProducts(ctx, op, bson.M{}, opts)
}

// ListAcceptedProducts возвращает страницу одобренных продуктов с поиском
// по тегам и общее количество подходящих записей.
func (s *Storage) ListAcceptedProducts(ctx context.Context, search string, limit, offset int64) ([]*models.Product, int64, error) {
	const op = "storage.ListAcceptedProducts"
	select {
	case <-ctx.Done():
		return nil, 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	filter := bson.M{"status": models.StatusAccepted}
	if search != "" {
		filter["tags"] = bson.M{"$regex": search, "$options": "i"}
	}

	total, err := s.products.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(offset).
		SetLimit(limit)
	items, err := s.findProducts(ctx, op, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ListFeaturedProducts возвращает избранные одобренные продукты, новые первыми.
func (s *Storage) ListFeaturedProducts(ctx context.Context, limit int64) ([]*models.Product, error) {
	const op = "storage.ListFeaturedProducts"
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)
	return s.findProducts(ctx, op, bson.M{"isFeatured": true, "status": models.StatusAccepted}, opts)
}

// ListTrendingProducts возвращает одобренные продукты по убыванию голосов.
func (s *Storage) ListTrendingProducts(ctx context.Context, limit int64) ([]*models.Product, error) {
	const op = "storage.ListTrendingProducts"
	opts := options.Find().
		SetSort(bson.D{{Key: "upvotes", Value: -1}}).
		SetLimit(limit)
	return s.findProducts(ctx, op, bson.M{"status": models.StatusAccepted}, opts)
}

// ListReportedProducts возвращает продукты хотя бы с одной жалобой,
// наиболее обжалуемые первыми.
func (s *Storage) ListReportedProducts(ctx context.Context) ([]*models.Product, error) {
	const op = "storage.ListReportedProducts"
	opts := options.Find().SetSort(bson.D{{Key: "reports", Value: -1}})
	return s.findProducts(ctx, op, bson.M{"reports": bson.M{"$gt": 0}}, opts)
}

// CountProductsByOwner подсчитывает количество продуктов владельца.
func (s *Storage) CountProductsByOwner(ctx context.Context, ownerEmail string) (int64, error) {
	const op = "storage.CountProductsByOwner"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	count, err := s.products.CountDocuments(ctx, bson.M{"ownerEmail": ownerEmail})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// CountProductsByStatus возвращает количество продуктов в разрезе статусов.
func (s *Storage) CountProductsByStatus(ctx context.Context) (map[string]int64, error) {
	const op = "storage.CountProductsByStatus"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
		}}},
	}
	cursor, err := s.products.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	result := make(map[string]int64)
	for cursor.Next(ctx) {
		var row struct {
			Status string `bson:"_id"`
			Count  int64  `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result[row.Status] = row.Count
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

func (s *Storage) findProducts(ctx context.Context, op string, filter bson.M, opts *options.FindOptions) ([]*models.Product, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	cursor, err := s.products.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var result []*models.Product
	for cursor.Next(ctx) {
		var item models.Product
		if err := cursor.Decode(&item); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
