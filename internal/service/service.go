// Package service defines the product service the editor talks to and an
// HTTP client for it.
package service

import (
	"context"
	"fmt"

	"github.com/fairyhunter13/product-catalog-editor/internal/model"
)

// ProductService is the external collaborator that owns product persistence.
type ProductService interface {
	// List returns every product.
	List(ctx context.Context) ([]model.Product, error)
	// Save creates p when its id is 0 and updates it otherwise, returning the stored product.
	Save(ctx context.Context, p model.Product) (model.Product, error)
	// Delete removes the product with the given id.
	Delete(ctx context.Context, id int) error
}

// Error is a non-2xx response from the product service.
type Error struct {
	Status  int
	Code    string
	Details string
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Details != "" {
		return fmt.Sprintf("product service: %d %s: %s", e.Status, e.Code, e.Details)
	}
	return fmt.Sprintf("product service: %d %s", e.Status, e.Code)
}
