package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/fairyhunter13/product-catalog-editor/internal/config"
	httpopenapi "github.com/fairyhunter13/product-catalog-editor/internal/http/openapi"
	"github.com/fairyhunter13/product-catalog-editor/internal/model"
	"github.com/fairyhunter13/product-catalog-editor/internal/obs"
	"github.com/fairyhunter13/product-catalog-editor/internal/store"
)

var productValidate *validator.Validate

func init() {
	productValidate = validator.New()
	productValidate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	})
}

// App serves the product service simulator.
type App struct {
	Cfg   config.Config
	Store *store.Store
}

func NewApp(cfg config.Config, st *store.Store) *App {
	return &App{Cfg: cfg, Store: st}
}

// simulateLatency delays a response by the configured latency, or less if
// the client goes away.
func (a *App) simulateLatency(r *http.Request) {
	if a.Cfg.SimLatency <= 0 {
		return
	}
	select {
	case <-time.After(a.Cfg.SimLatency):
	case <-r.Context().Done():
	}
}

func (a *App) listProductsHandler(w http.ResponseWriter, r *http.Request) {
	a.simulateLatency(r)
	writeJSON(w, http.StatusOK, a.Store.List())
}

func (a *App) getProductHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	a.simulateLatency(r)
	p, found := a.Store.Get(id)
	if !found {
		WriteJSONError(w, http.StatusNotFound, "not_found", "")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (a *App) createProductHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := decodeProduct(w, r)
	if !ok {
		return
	}
	a.simulateLatency(r)
	created := a.Store.Create(p)
	obs.Logger.Info("product_created",
		"request_id", RequestIDFromContext(r.Context()),
		"product_id", created.ID,
	)
	writeJSON(w, http.StatusCreated, created)
}

func (a *App) updateProductHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	p, ok := decodeProduct(w, r)
	if !ok {
		return
	}
	if p.ID != id {
		WriteJSONError(w, http.StatusBadRequest, "id_mismatch", "body id must match path id")
		return
	}
	a.simulateLatency(r)
	updated, err := a.Store.Update(p)
	if errors.Is(err, store.ErrNotFound) {
		WriteJSONError(w, http.StatusNotFound, "not_found", "")
		return
	}
	obs.Logger.Info("product_updated",
		"request_id", RequestIDFromContext(r.Context()),
		"product_id", updated.ID,
	)
	writeJSON(w, http.StatusOK, updated)
}

func (a *App) deleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	a.simulateLatency(r)
	if err := a.Store.Delete(id); errors.Is(err, store.ErrNotFound) {
		WriteJSONError(w, http.StatusNotFound, "not_found", "")
		return
	}
	obs.Logger.Info("product_deleted",
		"request_id", RequestIDFromContext(r.Context()),
		"product_id", id,
	)
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) openapiHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(httpopenapi.YAML)
}

func (a *App) docsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	html := `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>Product Service API Docs</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui'
      });
    </script>
  </body>
</html>`
	_, _ = w.Write([]byte(html))
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		WriteJSONError(w, http.StatusNotFound, "not_found", "")
		return 0, false
	}
	return id, true
}

func decodeProduct(w http.ResponseWriter, r *http.Request) (model.Product, bool) {
	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		WriteJSONError(w, http.StatusUnsupportedMediaType, "unsupported_media_type", "expected application/json")
		return model.Product{}, false
	}
	var p model.Product
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return model.Product{}, false
	}
	if err := productValidate.Struct(p); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "validation_error", validationDetails(err))
		return model.Product{}, false
	}
	return p, true
}

// validationDetails renders validator errors with the JSON field names.
func validationDetails(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fe.Field()+" failed "+fe.Tag())
	}
	return strings.Join(parts, "; ")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
