package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"katalog/internal/models"
)

func TestNumberUnmarshal(t *testing.T) {
	var req models.CreateProductRequest

	// JSON numbers are accepted as-is.
	err := json.Unmarshal([]byte(`{"price": 199.99, "stock": 5}`), &req)
	assert.NoError(t, err)
	assert.Equal(t, 199.99, req.Price.Float64())
	assert.Equal(t, 5, req.Stock.Int())

	// Numeric strings are coerced.
	req = models.CreateProductRequest{}
	err = json.Unmarshal([]byte(`{"price": "199.99", "stock": "5"}`), &req)
	assert.NoError(t, err)
	assert.Equal(t, 199.99, req.Price.Float64())
	assert.Equal(t, 5, req.Stock.Int())

	// Non-numeric strings are rejected.
	req = models.CreateProductRequest{}
	err = json.Unmarshal([]byte(`{"price": "cheap", "stock": 5}`), &req)
	assert.Error(t, err)

	// null leaves the pointer nil, so "absent" stays detectable.
	req = models.CreateProductRequest{}
	err = json.Unmarshal([]byte(`{"price": null, "stock": 5}`), &req)
	assert.NoError(t, err)
	assert.Nil(t, req.Price)
}

func TestCreateProductRequestValidate(t *testing.T) {
	price := models.Number(10)
	stock := models.Number(3)
	zero := models.Number(0)
	negative := models.Number(-1)

	tests := []struct {
		name    string
		req     models.CreateProductRequest
		wantErr string
	}{
		{
			name: "valid with name",
			req:  models.CreateProductRequest{Name: "Laptop", Price: &price, Stock: &stock},
		},
		{
			name: "valid with model only",
			req:  models.CreateProductRequest{Model: "X1", Price: &price, Stock: &stock},
		},
		{
			name: "stock zero is a valid creation value",
			req:  models.CreateProductRequest{Name: "Laptop", Price: &price, Stock: &zero},
		},
		{
			name:    "missing name and model",
			req:     models.CreateProductRequest{Category: "phone", Price: &price, Stock: &stock},
			wantErr: "name or model is required",
		},
		{
			name:    "missing price",
			req:     models.CreateProductRequest{Name: "Laptop", Stock: &stock},
			wantErr: "price is required",
		},
		{
			name:    "missing stock",
			req:     models.CreateProductRequest{Name: "Laptop", Price: &price},
			wantErr: "stock is required",
		},
		{
			name:    "negative price",
			req:     models.CreateProductRequest{Name: "Laptop", Price: &negative, Stock: &stock},
			wantErr: "price must not be negative",
		},
		{
			name:    "negative stock",
			req:     models.CreateProductRequest{Name: "Laptop", Price: &price, Stock: &negative},
			wantErr: "stock must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}

func TestUpdateProductRequestFields(t *testing.T) {
	name := "Laptop Pro"
	empty := "   "
	price := models.Number(899.5)
	stock := models.Number(12)
	negative := models.Number(-5)

	// All fields nil yields an empty map, which the handler rejects.
	fields, err := (&models.UpdateProductRequest{}).Fields()
	assert.NoError(t, err)
	assert.Empty(t, fields)

	// Empty strings are stripped rather than stored.
	fields, err = (&models.UpdateProductRequest{Name: &empty}).Fields()
	assert.NoError(t, err)
	assert.Empty(t, fields)

	// Valid fields come through coerced.
	fields, err = (&models.UpdateProductRequest{Name: &name, Price: &price, Stock: &stock}).Fields()
	assert.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"name":  "Laptop Pro",
		"price": 899.5,
		"stock": 12,
	}, fields)

	// Negative numerics are rejected.
	_, err = (&models.UpdateProductRequest{Price: &negative}).Fields()
	assert.Error(t, err)
	_, err = (&models.UpdateProductRequest{Stock: &negative}).Fields()
	assert.Error(t, err)
}
