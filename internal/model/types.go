// Package model defines domain types shared by the editor and the product service.
package model

// Product is a catalog entry. ID 0 marks a product that has not been saved yet.
//
// Product values are replaced wholesale on edit; nothing mutates one in place
// once it is part of a snapshot.
type Product struct {
	ID          int    `json:"id"`
	ProductName string `json:"productName" validate:"required,min=3,max=50"`
	ProductCode string `json:"productCode" validate:"required"`
	Description string `json:"description"`
	StarRating  int    `json:"starRating" validate:"gte=1,lte=5"`
}

// BlankProduct returns the template used when a new product is being added.
func BlankProduct() Product {
	return Product{ID: 0, StarRating: 5}
}

// IsNew reports whether p has not been persisted yet.
func (p Product) IsNew() bool { return p.ID == 0 }
