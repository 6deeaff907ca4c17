package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/product-catalog-editor/internal/config"
	httpapi "github.com/fairyhunter13/product-catalog-editor/internal/http"
	"github.com/fairyhunter13/product-catalog-editor/internal/model"
	"github.com/fairyhunter13/product-catalog-editor/internal/store"
)

func newSimulator(t *testing.T) *httptest.Server {
	t.Helper()
	app := httpapi.NewApp(config.Config{}, store.Seed())
	srv := httptest.NewServer(httpapi.NewRouter(app))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_List(t *testing.T) {
	srv := newSimulator(t)
	c := NewClient(srv.URL+"/", nil)
	list, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 5)
	assert.Equal(t, "Leaf Rake", list[0].ProductName)
}

func TestClient_SaveCreatesAndUpdates(t *testing.T) {
	srv := newSimulator(t)
	c := NewClient(srv.URL, srv.Client())
	ctx := context.Background()

	created, err := c.Save(ctx, model.Product{ProductName: "Hand Saw", ProductCode: "TBX-0099", StarRating: 4})
	require.NoError(t, err)
	assert.Equal(t, 11, created.ID)

	created.Description = "Fine-tooth saw"
	updated, err := c.Save(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, "Fine-tooth saw", updated.Description)
}

func TestClient_SaveValidationError(t *testing.T) {
	srv := newSimulator(t)
	c := NewClient(srv.URL, nil)
	_, err := c.Save(context.Background(), model.Product{ID: 2, ProductName: "ab", ProductCode: "GDN-0023", StarRating: 4})
	require.Error(t, err)

	var se *Error
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadRequest, se.Status)
	assert.Equal(t, "validation_error", se.Code)
	assert.Equal(t, "product service: 400 validation_error: productName failed min", err.Error())
}

func TestClient_Delete(t *testing.T) {
	srv := newSimulator(t)
	c := NewClient(srv.URL, nil)
	require.NoError(t, c.Delete(context.Background(), 1))

	err := c.Delete(context.Background(), 1)
	var se *Error
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.Status)
	assert.Equal(t, "not_found", se.Code)
}

func TestClient_NonJSONErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broke", http.StatusBadGateway)
	}))
	defer srv.Close()
	_, err := NewClient(srv.URL, nil).List(context.Background())
	var se *Error
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "bad_gateway", se.Code)
	assert.Equal(t, "product service: 502 bad_gateway", err.Error())
}

func TestClient_SendsRequestID(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("X-Request-Id")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("null"))
	}))
	defer srv.Close()
	list, err := NewClient(srv.URL, nil).List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
	assert.Len(t, got, 36)
}

func TestClient_ContextCanceled(t *testing.T) {
	srv := newSimulator(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewClient(srv.URL, nil).List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
