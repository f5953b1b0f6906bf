package repositories

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"katalog/internal/models"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
// It mirrors the Mongo implementation's semantics, including the atomic
// conditional decrement, so handler and service tests can run without a store.
type MockProductRepository struct {
	products map[string]models.Product
	order    []string
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

// GetAll returns all products in insertion order.
func (r *MockProductRepository) GetAll(_ context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, id := range r.order {
		if p, ok := r.products[id]; ok {
			productList = append(productList, p)
		}
	}
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(_ context.Context, id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, models.ErrProductNotFound
	}
	return &product, nil
}

// Create adds a new product, assigning its ID and creation timestamps.
func (r *MockProductRepository) Create(_ context.Context, product *models.Product) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	product.ID = primitive.NewObjectID()
	product.CreatedAt = now
	product.UpdatedAt = now

	id := product.ID.Hex()
	r.products[id] = *product
	r.order = append(r.order, id)
	return id, nil
}

// UpdateFields merges the given fields into an existing product.
func (r *MockProductRepository) UpdateFields(_ context.Context, id string, fields map[string]interface{}) (*UpdateResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, models.ErrProductNotFound
	}

	for k, v := range fields {
		switch k {
		case "category":
			product.Category = v.(string)
		case "name":
			product.Name = v.(string)
		case "model":
			product.Model = v.(string)
		case "price":
			product.Price = v.(float64)
		case "stock":
			product.Stock = v.(int)
		}
	}
	product.UpdatedAt = time.Now().UTC()
	r.products[id] = product

	return &UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

// SellOne decrements stock by one while holding the write lock, matching
// the conditional-update semantics of the Mongo implementation.
func (r *MockProductRepository) SellOne(_ context.Context, id string) (*UpdateResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, models.ErrProductNotFound
	}
	if product.Stock <= 0 {
		return nil, models.ErrOutOfStock
	}

	now := time.Now().UTC()
	product.Stock--
	product.LastSold = &now
	product.UpdatedAt = now
	r.products[id] = product

	return &UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

// Delete removes a product by its ID.
func (r *MockProductRepository) Delete(_ context.Context, id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return 0, models.ErrProductNotFound
	}
	delete(r.products, id)
	return 1, nil
}
