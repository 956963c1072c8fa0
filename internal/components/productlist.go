package components

import (
	"context"
	"strconv"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vcrobe/storefront/internal/catalog"
	"github.com/vcrobe/storefront/runtime"
	"github.com/vcrobe/storefront/vdom"
)

// Catalog is the data source of a ProductList.
type Catalog interface {
	Load(ctx context.Context) catalog.Result
}

// Status is the load state of a ProductList.
type Status string

const (
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusFailed  Status = "failed"
)

// ProductList fetches the catalog once when it mounts and renders one
// ProductCard per product, in catalog order.
type ProductList struct {
	runtime.ComponentBase

	catalog     Catalog
	placeholder string
	logger      *zap.Logger

	mu        sync.Mutex
	products  []catalog.Product
	status    Status
	result    catalog.Result
	cancel    context.CancelFunc
	unmounted bool

	settled    chan struct{}
	settleOnce sync.Once
}

// NewProductList creates a list backed by cat. Products without images show
// placeholder. The logger receives the per-render trace at debug level.
func NewProductList(cat Catalog, placeholder string, logger *zap.Logger) *ProductList {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductList{
		catalog:     cat,
		placeholder: placeholder,
		logger:      logger,
		status:      StatusLoading,
		settled:     make(chan struct{}),
	}
}

// OnMount starts the single catalog fetch for this instance.
func (l *ProductList) OnMount() {
	ctx, cancel := context.WithCancel(context.Background())

	l.mu.Lock()
	l.cancel = cancel
	l.mu.Unlock()

	go l.load(ctx, cancel)
}

func (l *ProductList) load(ctx context.Context, cancel context.CancelFunc) {
	defer l.settle()
	defer cancel()

	result := l.catalog.Load(ctx)

	l.mu.Lock()
	if l.unmounted {
		l.mu.Unlock()
		l.logger.Debug("product list unmounted before catalog load finished; result dropped")
		return
	}
	l.result = result
	if result.OK() {
		l.products = result.Products
		l.status = StatusReady
	} else {
		l.products = nil
		l.status = StatusFailed
	}
	l.mu.Unlock()

	if result.OK() {
		l.logger.Info("catalog loaded", zap.Int("products", len(result.Products)))
	} else {
		l.logger.Error("catalog load failed", zap.Error(result.Err))
	}

	l.StateHasChanged()
}

// OnUnmount cancels an in-flight fetch. Its result will not be committed.
func (l *ProductList) OnUnmount() {
	l.mu.Lock()
	l.unmounted = true
	cancel := l.cancel
	l.mu.Unlock()

	if cancel == nil {
		l.settle()
		return
	}
	cancel()
}

func (l *ProductList) settle() {
	l.settleOnce.Do(func() { close(l.settled) })
}

// Settled is closed once the fetch outcome has been committed and a re-render
// requested, or once the list was unmounted.
func (l *ProductList) Settled() <-chan struct{} {
	return l.settled
}

// Status returns the current load state.
func (l *ProductList) Status() Status {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.status
}

// Products returns a copy of the displayed products.
func (l *ProductList) Products() []catalog.Product {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]catalog.Product(nil), l.products...)
}

// Err returns the reason the load failed, or nil.
func (l *ProductList) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.result.Err
}

func (l *ProductList) Render(r runtime.Renderer) *vdom.VNode {
	l.mu.Lock()
	products := l.products
	status := l.status
	l.mu.Unlock()

	l.trace(products, status)

	cards := make([]*vdom.VNode, 0, len(products))
	for _, p := range products {
		cards = append(cards, r.RenderChild(cardKey(p.ID), &ProductCard{
			Product:     p,
			Placeholder: l.placeholder,
		}))
	}

	return vdom.Article(map[string]any{
		"class":      "products",
		"data-state": string(status),
	}, cards...)
}

// trace logs the list on every render when debug logging is on.
func (l *ProductList) trace(products []catalog.Product, status Status) {
	ce := l.logger.Check(zapcore.DebugLevel, "product list render")
	if ce == nil {
		return
	}
	ids := make([]int64, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	ce.Write(
		zap.String("state", string(status)),
		zap.Int("count", len(products)),
		zap.Int64s("ids", ids),
	)
}

func cardKey(id int64) string {
	return "product-" + strconv.FormatInt(id, 10)
}
