package services

import (
	"context"

	"github.com/rs/zerolog"

	"katalog/internal/models"
	"katalog/internal/repositories"
)

// EventPublisher publishes product lifecycle events to a message broker.
// Satisfied by *rabbitmq.Client. A nil publisher disables events.
type EventPublisher interface {
	PublishProductEvent(eventType string, data map[string]interface{}) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
	log       zerolog.Logger
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher, log zerolog.Logger) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.GetAll(ctx)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateProduct inserts a new product and returns its generated ID.
func (s *ProductService) CreateProduct(ctx context.Context, product *models.Product) (string, error) {
	id, err := s.repo.Create(ctx, product)
	if err != nil {
		return "", err
	}

	s.publishEvent("product.created", map[string]interface{}{
		"id":       id,
		"category": product.Category,
		"name":     product.Name,
		"model":    product.Model,
		"price":    product.Price,
		"stock":    product.Stock,
	})
	return id, nil
}

// UpdateProduct applies a partial field merge to an existing product.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, fields map[string]interface{}) (*repositories.UpdateResult, error) {
	return s.repo.UpdateFields(ctx, id, fields)
}

// SellProduct decrements a product's stock by one, refusing to go below zero.
func (s *ProductService) SellProduct(ctx context.Context, id string) (*repositories.UpdateResult, error) {
	res, err := s.repo.SellOne(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publishEvent("product.sold", map[string]interface{}{"id": id})
	return res, nil
}

// DeleteProduct removes a product by its ID.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) (int64, error) {
	count, err := s.repo.Delete(ctx, id)
	if err != nil {
		return 0, err
	}

	s.publishEvent("product.deleted", map[string]interface{}{"id": id})
	return count, nil
}

// publishEvent sends a lifecycle event when a broker is configured.
// Publish failures are logged, never surfaced to the caller: the write
// to the store already succeeded.
func (s *ProductService) publishEvent(eventType string, data map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishProductEvent(eventType, data); err != nil {
		s.log.Warn().Err(err).Str("event", eventType).Msg("failed to publish product event")
	}
}
