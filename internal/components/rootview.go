// Package components holds the storefront UI: the page shell, the product
// list and the product card.
package components

import (
	"github.com/vcrobe/storefront/runtime"
	"github.com/vcrobe/storefront/vdom"
)

// RootView is the page shell: a heading and the product list.
type RootView struct {
	runtime.ComponentBase

	List *ProductList
}

// NewRootView creates the shell around list.
func NewRootView(list *ProductList) *RootView {
	return &RootView{List: list}
}

func (v *RootView) Render(r runtime.Renderer) *vdom.VNode {
	return vdom.Main(map[string]any{"class": "flow"},
		vdom.Heading(1, "Products", map[string]any{"class": "fs-700 ff-heading"}),
		r.RenderChild("product-list", v.List),
	)
}
