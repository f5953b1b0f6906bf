package models

import "errors"

// Domain errors shared between repositories, services and handlers.
// Handlers map these to HTTP status codes with errors.Is.
var (
	// ErrProductNotFound indicates a well-formed ID with no matching document.
	ErrProductNotFound = errors.New("product not found")

	// ErrOutOfStock indicates a sell attempt against a product with stock 0.
	ErrOutOfStock = errors.New("product is out of stock")
)
