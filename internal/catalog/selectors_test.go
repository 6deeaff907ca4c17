package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/product-catalog-editor/internal/model"
)

func TestCurrentProduct_ZeroYieldsBlankTemplate(t *testing.T) {
	for _, products := range [][]model.Product{nil, {}, sampleProducts(), {{ID: 0, ProductName: "stored zero"}}} {
		sel := NewSelectors()
		s := &State{CurrentProduct: Current(0), Products: products}
		c := sel.CurrentProduct(s)
		require.True(t, c.Found)
		assert.Equal(t, model.Product{ID: 0, ProductName: "", ProductCode: "", Description: "", StarRating: 5}, c.Product)
	}
}

func TestCurrentProduct_MissingIDIsAbsent(t *testing.T) {
	sel := NewSelectors()
	s := &State{CurrentProduct: Current(7), Products: sampleProducts()}
	assert.Equal(t, Selection{}, sel.CurrentProduct(s))
}

func TestCurrentProduct_NoneSelected(t *testing.T) {
	sel := NewSelectors()
	assert.False(t, sel.CurrentProduct(&State{Products: sampleProducts()}).Found)
}

func TestCurrentProduct_LookupByID(t *testing.T) {
	sel := NewSelectors()
	s := &State{CurrentProduct: Current(5), Products: sampleProducts()}
	c := sel.CurrentProduct(s)
	require.True(t, c.Found)
	assert.Equal(t, "Hammer", c.Product.ProductName)

	c.Product.ProductName = "mutated"
	assert.Equal(t, "Hammer", s.Products[2].ProductName)
	assert.Equal(t, "Hammer", sel.CurrentProduct(s).Product.ProductName)
}

func TestCurrentProduct_WritesToResultDoNotLeak(t *testing.T) {
	sel := NewSelectors()
	start := Reduce(Initial(), InitializeCurrentProduct{})
	c := sel.CurrentProduct(start)
	c.Product.ProductName = "leaked"
	c.Product.StarRating = 1

	again := sel.CurrentProduct(Reduce(start, ToggleProductCode{}))
	assert.Equal(t, Selection{Product: model.BlankProduct(), Found: true}, again)
	assert.Equal(t, 5, sel.CurrentProduct(start).Product.StarRating)
}

func TestSelectors_Projections(t *testing.T) {
	sel := NewSelectors()
	s := &State{ShowProductCode: true, CurrentProduct: Current(1), Products: sampleProducts(), Error: "oops"}
	assert.True(t, sel.ShowProductCode(s))
	assert.Equal(t, Current(1), sel.CurrentID(s))
	assert.Equal(t, s.Products, sel.Products(s))
	assert.Equal(t, "oops", sel.Error(s))
}

func TestSelectors_StableWhenSliceUnchanged(t *testing.T) {
	sel := NewSelectors()
	s := Reduce(Initial(), LoadProductsSuccess{Products: sampleProducts()})
	s = Reduce(s, SetCurrentProduct{ProductID: 2})
	first := sel.CurrentProduct(s)
	require.True(t, first.Found)

	// Toggling the display flag touches neither products nor the current id.
	toggled := Reduce(s, ToggleProductCode{})
	assert.Equal(t, first, sel.CurrentProduct(toggled))
	assert.True(t, SameProducts(sel.Products(s), sel.Products(toggled)))

	updated := Reduce(toggled, UpdateProductSuccess{Product: model.Product{ID: 2, ProductName: "Wheelbarrow"}})
	second := sel.CurrentProduct(updated)
	require.True(t, second.Found)
	assert.NotEqual(t, first, second)
	assert.Equal(t, "Wheelbarrow", second.Product.ProductName)
}

func TestSelectors_BlankTemplateStable(t *testing.T) {
	sel := NewSelectors()
	s := Reduce(Initial(), InitializeCurrentProduct{})
	a := sel.CurrentProduct(s)
	b := sel.CurrentProduct(Reduce(s, ToggleProductCode{}))
	assert.Equal(t, a, b)
}

func TestSameProducts(t *testing.T) {
	p := sampleProducts()
	assert.True(t, SameProducts(p, p))
	assert.True(t, SameProducts(nil, []model.Product{}))
	assert.False(t, SameProducts(p, sampleProducts()))
	assert.False(t, SameProducts(p, p[:1]))
}
