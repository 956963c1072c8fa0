// Package testcomponents holds fixtures shared by the component, prerender
// and server tests: canned catalogs, product builders and VDOM queries.
package testcomponents

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/shopspring/decimal"

	"github.com/vcrobe/storefront/internal/catalog"
)

// StaticCatalog returns the same result on every load and counts the loads.
type StaticCatalog struct {
	Result catalog.Result
	loads  atomic.Int32
}

func (c *StaticCatalog) Load(ctx context.Context) catalog.Result {
	c.loads.Add(1)
	return c.Result
}

// Loads reports how many times Load was called.
func (c *StaticCatalog) Loads() int {
	return int(c.loads.Load())
}

// GatedCatalog blocks each load until Release is called or the load context ends.
type GatedCatalog struct {
	Result  catalog.Result
	started chan struct{}
	release chan struct{}
	loads   atomic.Int32
}

// NewGatedCatalog creates a gated catalog that will return result once released.
func NewGatedCatalog(result catalog.Result) *GatedCatalog {
	return &GatedCatalog{
		Result:  result,
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
}

func (c *GatedCatalog) Load(ctx context.Context) catalog.Result {
	c.loads.Add(1)
	select {
	case c.started <- struct{}{}:
	default:
	}
	select {
	case <-c.release:
		return c.Result
	case <-ctx.Done():
		return catalog.Result{Err: ctx.Err()}
	}
}

// Started is signalled when a load begins.
func (c *GatedCatalog) Started() <-chan struct{} {
	return c.started
}

// Release lets pending and future loads return.
func (c *GatedCatalog) Release() {
	close(c.release)
}

// Loads reports how many times Load was called.
func (c *GatedCatalog) Loads() int {
	return int(c.loads.Load())
}

// Products builds n products with ids 1..n, one image each and a price of id + 0.99.
func Products(n int) []catalog.Product {
	products := make([]catalog.Product, n)
	for i := range products {
		id := int64(i + 1)
		products[i] = catalog.Product{
			ID:          id,
			Title:       fmt.Sprintf("Product %d", id),
			Description: fmt.Sprintf("Description %d", id),
			Images:      []string{fmt.Sprintf("https://img.example/%d.jpg", id)},
			Price:       decimal.NewFromInt(id).Add(decimal.RequireFromString("0.99")),
		}
	}
	return products
}
