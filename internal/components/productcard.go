package components

import (
	"github.com/vcrobe/storefront/internal/catalog"
	"github.com/vcrobe/storefront/runtime"
	"github.com/vcrobe/storefront/vdom"
)

// ProductCard renders one product: image, title, description, price and a Buy button.
// Output depends only on Product and Placeholder.
type ProductCard struct {
	runtime.ComponentBase

	Product catalog.Product
	// Placeholder is the image source used when the product has no images.
	Placeholder string
}

// ApplyProps takes the props of a freshly built card when the instance is reused.
func (c *ProductCard) ApplyProps(next runtime.Component) {
	if n, ok := next.(*ProductCard); ok {
		c.Product = n.Product
		c.Placeholder = n.Placeholder
	}
}

func (c *ProductCard) Render(r runtime.Renderer) *vdom.VNode {
	p := c.Product

	src, ok := p.FirstImage()
	if !ok {
		src = c.Placeholder
	}

	return vdom.Article(map[string]any{"class": "product"},
		vdom.Image(src, "", map[string]any{"class": "product__image"}),
		vdom.Div(nil,
			vdom.Heading(2, p.Title, map[string]any{"class": "product__name | fs-500 ff-heading"}),
			vdom.Paragraph(p.Description, map[string]any{"class": "product__description"}),
			vdom.Div(nil,
				vdom.Paragraph("$ "+p.PriceText(), map[string]any{"class": "product__price"}),
				// Purchasing is not implemented; the button is inert.
				vdom.Button("Buy", map[string]any{
					"class": "product__cta | bg-accent text-primary",
					"type":  "button",
				}),
			),
		),
	)
}
