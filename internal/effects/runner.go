// Package effects runs product service calls for request actions and reports
// their outcome back as success or failure actions.
package effects

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/fairyhunter13/product-catalog-editor/internal/catalog"
	"github.com/fairyhunter13/product-catalog-editor/internal/config"
	"github.com/fairyhunter13/product-catalog-editor/internal/model"
	"github.com/fairyhunter13/product-catalog-editor/internal/obs"
	"github.com/fairyhunter13/product-catalog-editor/internal/service"
)

// Runner executes request actions on a worker pool. Completion actions are
// delivered on Completions and must be dispatched by the goroutine that owns
// the Store, usually through Pump.
type Runner struct {
	cfg     config.Config
	svc     service.ProductService
	q       *Queue
	results chan catalog.Action
	loads   singleflight.Group

	ctx    context.Context
	cancel context.CancelFunc

	mu            sync.Mutex
	workerCancels []context.CancelFunc
}

// NewRunner constructs a Runner calling svc.
func NewRunner(cfg config.Config, svc service.ProductService) *Runner {
	if cfg.WorkerCount < 1 {
		cfg.WorkerCount = 1
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 5 * time.Second
	}
	return &Runner{
		cfg:     cfg,
		svc:     svc,
		q:       NewQueue(cfg.WorkerCount, cfg.QueueHighWatermark),
		results: make(chan catalog.Action, 64),
	}
}

// Start launches the broker and the workers.
func (r *Runner) Start(parent context.Context) {
	r.ctx, r.cancel = context.WithCancel(parent)
	r.q.Start(r.ctx)
	r.addWorkers(r.cfg.WorkerCount)
}

// Stop cancels the broker and the workers. In-flight calls are abandoned.
func (r *Runner) Stop() {
	r.q.CloseIntake()
	if r.cancel != nil {
		r.cancel()
	}
	r.mu.Lock()
	for _, c := range r.workerCancels {
		c()
	}
	r.workerCancels = nil
	r.mu.Unlock()
	st := r.q.Stats()
	obs.Logger.Info("effects_stopped", "accepted", st.Accepted, "settled", st.Settled, "backlog", st.Backlog)
}

// Attach makes the runner observe st's actions and returns the detach function.
func (r *Runner) Attach(st *catalog.Store) func() {
	return st.ObserveActions(r.Handle)
}

// Handle queues a if it is a request action and ignores it otherwise.
func (r *Runner) Handle(a catalog.Action) {
	if !catalog.IsRequest(a) {
		return
	}
	if err := r.q.Enqueue(a); err != nil {
		obs.Logger.Warn("request_dropped", "action", a.Type(), "error", err)
		return
	}
	obs.Logger.Debug("request_queued", "action", a.Type(), "pending", r.q.Pending())
}

// Completions delivers success and failure actions in completion order.
func (r *Runner) Completions() <-chan catalog.Action { return r.results }

// Pump dispatches completions into st until ctx is done. It must run on the
// goroutine that owns st.
func (r *Runner) Pump(ctx context.Context, st *catalog.Store) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case a := <-r.results:
			if err := st.Dispatch(a); err != nil {
				obs.Logger.Error("completion_dispatch_failed", "action", a.Type(), "error", err)
			}
		}
	}
}

// Settle dispatches completions into st until no request is pending. Like
// Pump it must run on the goroutine that owns st.
func (r *Runner) Settle(ctx context.Context, st *catalog.Store) error {
	for r.Pending() > 0 || len(r.results) > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case a := <-r.results:
			if err := st.Dispatch(a); err != nil {
				return err
			}
		case <-time.After(5 * time.Millisecond):
		}
	}
	return nil
}

// Pending returns the number of accepted requests whose completion has not
// been delivered yet.
func (r *Runner) Pending() int { return r.q.Pending() }

// DrainUntil blocks until every accepted request has delivered its completion
// or ctx is done. Completions must be consumed concurrently once more than
// the Completions buffer is outstanding.
func (r *Runner) DrainUntil(ctx context.Context) bool {
	for {
		if r.Pending() == 0 {
			return true
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(10 * time.Millisecond):
		}
	}
}

// WorkerCount returns the current number of workers.
func (r *Runner) WorkerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.workerCancels)
}

func (r *Runner) addWorkers(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := 0; i < n; i++ {
		wctx, cancel := context.WithCancel(r.ctx)
		r.workerCancels = append(r.workerCancels, cancel)
		go r.worker(wctx)
	}
	obs.Logger.Info("workers_started", "worker_count", len(r.workerCancels))
}

// worker executes queued requests and publishes their completions.
func (r *Runner) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case req := <-r.q.Out():
			res := r.execute(ctx, req)
			if res == nil {
				r.q.Settle()
				continue
			}
			select {
			case r.results <- res:
				r.q.Settle()
			case <-ctx.Done():
				return
			}
		}
	}
}

// execute runs req and returns its completion, or nil when req is not a
// request the runner knows how to serve.
func (r *Runner) execute(parent context.Context, req catalog.Action) catalog.Action {
	ctx, cancel := context.WithTimeout(parent, r.cfg.RequestTimeout)
	defer cancel()
	start := time.Now()
	res := r.call(ctx, req)
	if res == nil {
		obs.Logger.Error("request_unsupported", "action", req.Type())
		obs.EffectRequests.WithLabelValues(req.Type(), "unsupported").Inc()
		return nil
	}
	obs.EffectDuration.WithLabelValues(req.Type()).Observe(time.Since(start).Seconds())

	result := "success"
	switch res.(type) {
	case catalog.LoadProductsFailure, catalog.UpdateProductFailure, catalog.CreateProductFailure, catalog.DeleteProductFailure:
		result = "failure"
		obs.Logger.Warn("request_failed", "action", req.Type(), "completion", res.Type())
	}
	obs.EffectRequests.WithLabelValues(req.Type(), result).Inc()
	return res
}

func (r *Runner) call(ctx context.Context, req catalog.Action) catalog.Action {
	switch req := req.(type) {
	case catalog.LoadProducts:
		v, err, shared := r.loads.Do("list", func() (any, error) {
			return r.svc.List(ctx)
		})
		if err != nil {
			return catalog.LoadProductsFailure{Error: err.Error()}
		}
		if shared {
			obs.Logger.Debug("load_shared")
		}
		return catalog.LoadProductsSuccess{Products: v.([]model.Product)}
	case catalog.UpdateProduct:
		if req.Product.IsNew() {
			return r.create(ctx, req.Product)
		}
		p, err := r.svc.Save(ctx, req.Product)
		if err != nil {
			return catalog.UpdateProductFailure{Error: err.Error()}
		}
		return catalog.UpdateProductSuccess{Product: p}
	case catalog.CreateProduct:
		return r.create(ctx, req.Product)
	case catalog.DeleteProduct:
		// An unsaved product has nothing to delete on the service side.
		if req.ProductID == 0 {
			return catalog.DeleteProductSuccess{ProductID: 0}
		}
		if err := r.svc.Delete(ctx, req.ProductID); err != nil {
			return catalog.DeleteProductFailure{Error: err.Error()}
		}
		return catalog.DeleteProductSuccess{ProductID: req.ProductID}
	default:
		return nil
	}
}

func (r *Runner) create(ctx context.Context, p model.Product) catalog.Action {
	p.ID = 0
	saved, err := r.svc.Save(ctx, p)
	if err != nil {
		return catalog.CreateProductFailure{Error: err.Error()}
	}
	return catalog.CreateProductSuccess{Product: saved}
}
