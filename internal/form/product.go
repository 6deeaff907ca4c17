package form

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/fairyhunter13/product-catalog-editor/internal/model"
)

// ProductForm holds the editable values of a product. Field names used in
// messages come from the form tag. A nil StarRating is an empty rating
// control; any entered value must be in range.
type ProductForm struct {
	ProductName string `form:"productName" validate:"required,min=3,max=50"`
	ProductCode string `form:"productCode" validate:"required"`
	StarRating  *int   `form:"starRating" validate:"omitnil,range"`
	Description string `form:"description"`
}

// Rating returns n as an entered star rating.
func Rating(n int) *int { return &n }

// Validator tags that report under a different error code.
var tagCodes = map[string]string{
	"min": "minlength",
	"max": "maxlength",
}

var formValidate *validator.Validate

func init() {
	formValidate = validator.New()
	formValidate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = formValidate.RegisterValidation("range", validateRating)
}

// validateRating accepts ratings between 1 and 5.
func validateRating(fl validator.FieldLevel) bool {
	v := fl.Field().Int()
	return v >= 1 && v <= 5
}

// Check validates f and returns the active error codes of the touched fields.
// A nil touched set reports every field.
func Check(f ProductForm, touched map[string]bool) Active {
	active := Active{}
	err := formValidate.Struct(f)
	if err == nil {
		return active
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return active
	}
	for _, fe := range verrs {
		if touched != nil && !touched[fe.Field()] {
			continue
		}
		code, ok := tagCodes[fe.Tag()]
		if !ok {
			code = fe.Tag()
		}
		active.Add(fe.Field(), code)
	}
	return active
}

// Valid reports whether f passes every rule, touched or not.
func Valid(f ProductForm) bool { return formValidate.Struct(f) == nil }

// FormFromProduct fills a form with the editable values of p. A product
// without a rating leaves the rating control empty.
func FormFromProduct(p model.Product) ProductForm {
	f := ProductForm{
		ProductName: p.ProductName,
		ProductCode: p.ProductCode,
		Description: p.Description,
	}
	if p.StarRating != 0 {
		f.StarRating = Rating(p.StarRating)
	}
	return f
}

// Apply returns original with the form values laid over it. An empty rating
// control clears the rating.
func (f ProductForm) Apply(original model.Product) model.Product {
	p := original
	p.ProductName = f.ProductName
	p.ProductCode = f.ProductCode
	p.StarRating = 0
	if f.StarRating != nil {
		p.StarRating = *f.StarRating
	}
	p.Description = f.Description
	return p
}

// PageTitle is the heading of the edit page for p.
func PageTitle(p model.Product) string {
	if p.IsNew() {
		return "Add Product"
	}
	return fmt.Sprintf("Edit Product: %s", p.ProductName)
}
