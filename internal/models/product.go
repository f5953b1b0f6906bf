package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product represents a product document in the store.
// The ID is generated by the repository at creation and immutable afterward.
type Product struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Category  string             `json:"category,omitempty" bson:"category,omitempty"`
	Name      string             `json:"name,omitempty" bson:"name,omitempty"`
	Model     string             `json:"model,omitempty" bson:"model,omitempty"`
	Price     float64            `json:"price" bson:"price"`
	Stock     int                `json:"stock" bson:"stock"`
	CreatedAt time.Time          `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt time.Time          `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
	LastSold  *time.Time         `json:"lastSold,omitempty" bson:"lastSold,omitempty"`
}

// Number is a numeric field that accepts both JSON numbers and numeric
// strings ("199.99"). Clients of the original API sent either form.
type Number float64

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("value %q is not a number", s)
	}
	*n = Number(f)
	return nil
}

// Float64 returns the coerced value.
func (n Number) Float64() float64 {
	return float64(n)
}

// Int returns the coerced value truncated to an integer.
func (n Number) Int() int {
	return int(n)
}

// CreateProductRequest is the payload for creating a product.
// Price and Stock are pointers so that "absent" and "zero" remain
// distinguishable: stock 0 is a valid creation value.
type CreateProductRequest struct {
	Category string  `json:"category" validate:"omitempty,max=100"`
	Name     string  `json:"name" validate:"omitempty,max=100"`
	Model    string  `json:"model" validate:"omitempty,max=100"`
	Price    *Number `json:"price"`
	Stock    *Number `json:"stock"`
}

// Validate checks the presence and range rules that struct tags cannot
// express: a name or model is required, price and stock must be present
// and non-negative.
func (r *CreateProductRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" && strings.TrimSpace(r.Model) == "" {
		return fmt.Errorf("name or model is required")
	}
	if r.Price == nil {
		return fmt.Errorf("price is required")
	}
	if r.Stock == nil {
		return fmt.Errorf("stock is required")
	}
	if r.Price.Float64() < 0 {
		return fmt.Errorf("price must not be negative")
	}
	if r.Stock.Float64() < 0 {
		return fmt.Errorf("stock must not be negative")
	}
	return nil
}

// ToProduct builds the document to insert. Must be called after Validate.
func (r *CreateProductRequest) ToProduct() *Product {
	return &Product{
		Category: strings.TrimSpace(r.Category),
		Name:     strings.TrimSpace(r.Name),
		Model:    strings.TrimSpace(r.Model),
		Price:    r.Price.Float64(),
		Stock:    r.Stock.Int(),
	}
}

// UpdateProductRequest is the payload for a partial update. The struct is
// the allow-list of mutable fields: anything else in the body is dropped
// by the decoder. All fields are optional.
type UpdateProductRequest struct {
	Category *string `json:"category"`
	Name     *string `json:"name"`
	Model    *string `json:"model"`
	Price    *Number `json:"price"`
	Stock    *Number `json:"stock"`
}

// Fields returns the set of fields to apply as a merge, with nil and
// empty-string values stripped. Returns an error for negative numerics.
func (r *UpdateProductRequest) Fields() (map[string]interface{}, error) {
	fields := make(map[string]interface{})
	if r.Category != nil && strings.TrimSpace(*r.Category) != "" {
		fields["category"] = strings.TrimSpace(*r.Category)
	}
	if r.Name != nil && strings.TrimSpace(*r.Name) != "" {
		fields["name"] = strings.TrimSpace(*r.Name)
	}
	if r.Model != nil && strings.TrimSpace(*r.Model) != "" {
		fields["model"] = strings.TrimSpace(*r.Model)
	}
	if r.Price != nil {
		if r.Price.Float64() < 0 {
			return nil, fmt.Errorf("price must not be negative")
		}
		fields["price"] = r.Price.Float64()
	}
	if r.Stock != nil {
		if r.Stock.Float64() < 0 {
			return nil, fmt.Errorf("stock must not be negative")
		}
		fields["stock"] = r.Stock.Int()
	}
	return fields, nil
}
