package catalog

import "github.com/fairyhunter13/product-catalog-editor/internal/model"

// Action is a named event with an optional payload. The set of actions is
// closed: only types in this package implement it.
type Action interface {
	// Type returns the stable action name used in logs and metrics.
	Type() string
	action()
}

// Page actions.
type (
	// ToggleProductCode flips whether product codes are displayed.
	ToggleProductCode struct{}

	// SetCurrentProduct selects the product with the given id.
	SetCurrentProduct struct{ ProductID int }

	// InitializeCurrentProduct starts editing a new, unsaved product.
	InitializeCurrentProduct struct{}

	// ClearCurrentProduct deselects the current product.
	ClearCurrentProduct struct{}
)

// Requests handled by the effects runner. The reducer leaves state unchanged for these.
type (
	LoadProducts  struct{}
	UpdateProduct struct{ Product model.Product }
	CreateProduct struct{ Product model.Product }
	DeleteProduct struct{ ProductID int }
)

// API completions.
type (
	LoadProductsSuccess  struct{ Products []model.Product }
	LoadProductsFailure  struct{ Error string }
	UpdateProductSuccess struct{ Product model.Product }
	UpdateProductFailure struct{ Error string }
	CreateProductSuccess struct{ Product model.Product }
	CreateProductFailure struct{ Error string }
	DeleteProductSuccess struct{ ProductID int }
	DeleteProductFailure struct{ Error string }
)

func (ToggleProductCode) Type() string        { return "[Product Page] Toggle Product Code" }
func (SetCurrentProduct) Type() string        { return "[Product Page] Set Current Product" }
func (InitializeCurrentProduct) Type() string { return "[Product Page] Initialize Current Product" }
func (ClearCurrentProduct) Type() string      { return "[Product Page] Clear Current Product" }
func (LoadProducts) Type() string             { return "[Product Page] Load" }
func (UpdateProduct) Type() string            { return "[Product Page] Update Product" }
func (CreateProduct) Type() string            { return "[Product Page] Create Product" }
func (DeleteProduct) Type() string            { return "[Product Page] Delete Product" }
func (LoadProductsSuccess) Type() string      { return "[Product API] Load Success" }
func (LoadProductsFailure) Type() string      { return "[Product API] Load Fail" }
func (UpdateProductSuccess) Type() string     { return "[Product API] Update Product Success" }
func (UpdateProductFailure) Type() string     { return "[Product API] Update Product Fail" }
func (CreateProductSuccess) Type() string     { return "[Product API] Create Product Success" }
func (CreateProductFailure) Type() string     { return "[Product API] Create Product Fail" }
func (DeleteProductSuccess) Type() string     { return "[Product API] Delete Product Success" }
func (DeleteProductFailure) Type() string     { return "[Product API] Delete Product Fail" }

func (ToggleProductCode) action()        {}
func (SetCurrentProduct) action()        {}
func (InitializeCurrentProduct) action() {}
func (ClearCurrentProduct) action()      {}
func (LoadProducts) action()             {}
func (UpdateProduct) action()            {}
func (CreateProduct) action()            {}
func (DeleteProduct) action()            {}
func (LoadProductsSuccess) action()      {}
func (LoadProductsFailure) action()      {}
func (UpdateProductSuccess) action()     {}
func (UpdateProductFailure) action()     {}
func (CreateProductSuccess) action()     {}
func (CreateProductFailure) action()     {}
func (DeleteProductSuccess) action()     {}
func (DeleteProductFailure) action()     {}

// IsRequest reports whether a asks for an external service call.
func IsRequest(a Action) bool {
	switch a.(type) {
	case LoadProducts, UpdateProduct, CreateProduct, DeleteProduct:
		return true
	}
	return false
}
