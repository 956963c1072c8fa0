// Package catalog fetches product records from the remote catalog endpoint.
package catalog

import "github.com/shopspring/decimal"

// Product is one catalog record. It is read-only input for the view.
type Product struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Images      []string        `json:"images"`
	Price       decimal.Decimal `json:"price"`
}

// FirstImage returns images[0], if there is one.
func (p Product) FirstImage() (string, bool) {
	if len(p.Images) == 0 {
		return "", false
	}
	return p.Images[0], true
}

// PriceText is the price exactly as the catalog sent it, without rounding.
func (p Product) PriceText() string {
	return p.Price.String()
}

// Page is the response body of the catalog endpoint. Products is nil when
// the field is missing and non-nil (possibly empty) when it is present.
type Page struct {
	Products *[]Product `json:"products"`
}

// Result is the outcome of one catalog load: either a list or the reason it failed.
type Result struct {
	Products []Product
	Err      error
}

// OK reports whether the load succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}
