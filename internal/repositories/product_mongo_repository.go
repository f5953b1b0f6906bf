package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"katalog/internal/models"
)

const productCollection = "products"

// MongoProductRepository is a MongoDB implementation of ProductRepository.
type MongoProductRepository struct {
	collection *mongo.Collection
}

// NewMongoProductRepository creates a new instance of MongoProductRepository.
func NewMongoProductRepository(db *mongo.Database) *MongoProductRepository {
	return &MongoProductRepository{
		collection: db.Collection(productCollection),
	}
}

// GetAll retrieves all products from the collection.
func (r *MongoProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	defer cursor.Close(ctx)

	products := make([]models.Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *MongoProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrProductNotFound
	}

	var product models.Product
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&product); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product %s: %w", id, err)
	}
	return &product, nil
}

// Create inserts a new product, assigning its ID and creation timestamps.
func (r *MongoProductRepository) Create(ctx context.Context, product *models.Product) (string, error) {
	now := time.Now().UTC()
	product.ID = primitive.NewObjectID()
	product.CreatedAt = now
	product.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, product); err != nil {
		return "", fmt.Errorf("failed to create product: %w", err)
	}
	return product.ID.Hex(), nil
}

// UpdateFields applies the given fields as a $set merge and stamps updatedAt.
// Fields not named in the map are left untouched.
func (r *MongoProductRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (*UpdateResult, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrProductNotFound
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	for k, v := range fields {
		set[k] = v
	}

	res, err := r.collection.UpdateByID(ctx, oid, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("failed to update product %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return nil, models.ErrProductNotFound
	}
	return &UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}

// SellOne performs the atomic conditional decrement. The stock > 0
// condition lives in the filter, so the store guarantees stock never
// goes negative even under concurrent sells.
func (r *MongoProductRepository) SellOne(ctx context.Context, id string) (*UpdateResult, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrProductNotFound
	}

	now := time.Now().UTC()
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": oid, "stock": bson.M{"$gt": 0}},
		bson.M{
			"$inc": bson.M{"stock": -1},
			"$set": bson.M{"lastSold": now, "updatedAt": now},
		})
	if err != nil {
		return nil, fmt.Errorf("failed to sell product %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		// Distinguish a missing product from one that is out of stock.
		if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Err(); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, models.ErrProductNotFound
			}
			return nil, fmt.Errorf("failed to check product %s: %w", id, err)
		}
		return nil, models.ErrOutOfStock
	}
	return &UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}

// Delete removes a product by its ID.
func (r *MongoProductRepository) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, models.ErrProductNotFound
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return 0, models.ErrProductNotFound
	}
	return res.DeletedCount, nil
}
