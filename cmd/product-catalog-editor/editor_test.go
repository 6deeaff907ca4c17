package main

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/product-catalog-editor/internal/config"
	httpapi "github.com/fairyhunter13/product-catalog-editor/internal/http"
	"github.com/fairyhunter13/product-catalog-editor/internal/store"
)

func runCLI(t *testing.T, args ...string) (string, *store.Store, error) {
	t.Helper()
	st := store.Seed()
	srv := httptest.NewServer(httpapi.NewRouter(httpapi.NewApp(config.Config{}, st)))
	t.Cleanup(srv.Close)
	t.Setenv("SERVICE_URL", srv.URL)
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), st, err
}

func TestList(t *testing.T) {
	out, _, err := runCLI(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "CODE")
	assert.Contains(t, out, "Leaf Rake")
	assert.Contains(t, out, "GDN-0011")
}

func TestList_HideCode(t *testing.T) {
	out, _, err := runCLI(t, "list", "--hide-code")
	require.NoError(t, err)
	assert.NotContains(t, out, "CODE")
	assert.NotContains(t, out, "GDN-0011")
	assert.Contains(t, out, "Video Game Controller")
}

func TestEdit_UpdatesProduct(t *testing.T) {
	out, st, err := runCLI(t, "edit", "--id", "2", "--name", "Wheelbarrow")
	require.NoError(t, err)
	assert.Contains(t, out, "Edit Product: Garden Cart")
	assert.Contains(t, out, "Edit Product: Wheelbarrow")
	assert.Contains(t, out, `"productName": "Wheelbarrow"`)

	p, ok := st.Get(2)
	require.True(t, ok)
	assert.Equal(t, "Wheelbarrow", p.ProductName)
	assert.Equal(t, "GDN-0023", p.ProductCode)
}

func TestEdit_CreatesProduct(t *testing.T) {
	out, st, err := runCLI(t, "edit", "--new", "--name", "Hand Saw", "--code", "TBX-0099", "--rating", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "Add Product")
	assert.Contains(t, out, `"id": 11`)
	assert.Len(t, st.List(), 6)
}

func TestEdit_InvalidFormIsNotSaved(t *testing.T) {
	out, st, err := runCLI(t, "edit", "--id", "2", "--name", "ab", "--rating", "9")
	require.ErrorIs(t, err, errInvalidForm)
	assert.Contains(t, out, "productName: Product name must be at least three characters.")
	assert.Contains(t, out, "starRating: Rate the product between 1 (lowest) and 5 (highest).")

	p, _ := st.Get(2)
	assert.Equal(t, "Garden Cart", p.ProductName)
}

func TestEdit_ZeroRatingIsRejected(t *testing.T) {
	out, st, err := runCLI(t, "edit", "--id", "2", "--rating", "0")
	require.ErrorIs(t, err, errInvalidForm)
	assert.Contains(t, out, "starRating: Rate the product between 1 (lowest) and 5 (highest).")
	assert.NotContains(t, out, "productName:")

	p, _ := st.Get(2)
	assert.Equal(t, 4, p.StarRating)
}

func TestEdit_NewNeedsRequiredFields(t *testing.T) {
	out, _, err := runCLI(t, "edit", "--new", "--description", "no name yet")
	require.ErrorIs(t, err, errInvalidForm)
	assert.Contains(t, out, "productName: Product name is required.")
	assert.Contains(t, out, "productCode: Product code is required.")
}

func TestEdit_Delete(t *testing.T) {
	out, st, err := runCLI(t, "edit", "--id", "5", "--delete")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted product 5")
	_, ok := st.Get(5)
	assert.False(t, ok)
}

func TestEdit_Errors(t *testing.T) {
	_, _, err := runCLI(t, "edit", "--id", "99", "--name", "Anything")
	assert.EqualError(t, err, "product 99 not found")

	_, _, err = runCLI(t, "edit", "--id", "1")
	assert.EqualError(t, err, "nothing to save: no field changed")

	_, _, err = runCLI(t, "edit", "--name", "Anything")
	assert.EqualError(t, err, "either --id or --new is required")
}
