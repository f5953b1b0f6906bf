package repositories

import (
	"context"

	"katalog/internal/models"
)

// UpdateResult reports how many documents an update matched and modified.
type UpdateResult struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// ProductRepository defines the interface for product data access.
// IDs are hex-encoded ObjectIDs; callers validate the format before
// reaching the repository.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) (string, error)
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (*UpdateResult, error)
	// SellOne decrements stock by one as a single conditional update: the
	// filter requires stock > 0, so concurrent sells can never take stock
	// negative. Returns models.ErrOutOfStock when the product exists with
	// stock 0, models.ErrProductNotFound when it does not exist.
	SellOne(ctx context.Context, id string) (*UpdateResult, error)
	Delete(ctx context.Context, id string) (int64, error)
}
