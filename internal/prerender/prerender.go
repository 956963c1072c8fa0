// Package prerender renders the storefront page to a complete HTML document
// on the server, using the same components the browser runs.
package prerender

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vcrobe/storefront/internal/components"
	"github.com/vcrobe/storefront/runtime"
	"github.com/vcrobe/storefront/vdom"
)

// Options control the document shell around the rendered page.
type Options struct {
	// Title is the document title.
	Title string
	// Placeholder is the image source for products without images.
	Placeholder string
	// Stylesheets are linked in the head, in order.
	Stylesheets []string
	// Scripts are loaded at the end of the body, in order. The browser build
	// replaces the prerendered markup once it starts.
	Scripts []string
}

// DefaultOptions links the assets served under /static/.
func DefaultOptions(placeholder string) Options {
	return Options{
		Title:       "Products",
		Placeholder: placeholder,
		Stylesheets: []string{"/static/styles.css"},
		Scripts:     []string{"/static/wasm_exec.js", "/static/boot.js"},
	}
}

// browserBuild lists the files under the static directory the scripts need.
var browserBuild = []string{"main.wasm", "wasm_exec.js", "boot.js"}

// ForStaticDir returns o without scripts when dir lacks the browser build, so
// the served page stays static instead of requesting missing files.
func (o Options) ForStaticDir(dir string) (Options, bool) {
	for _, name := range browserBuild {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			o.Scripts = nil
			return o, false
		}
	}
	return o, true
}

// Renderer prerenders the page against a catalog.
type Renderer struct {
	catalog components.Catalog
	opts    Options
	logger  *zap.Logger
}

// New creates a prerenderer.
func New(cat components.Catalog, opts Options, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{catalog: cat, opts: opts, logger: logger}
}

// Page mounts a fresh page, waits for the product list to settle and returns
// the page VDOM. The component tree is unmounted before returning.
func (p *Renderer) Page(ctx context.Context) (*vdom.VNode, error) {
	list := components.NewProductList(p.catalog, p.opts.Placeholder, p.logger)
	renderer := runtime.NewStaticRenderer(components.NewRootView(list))
	defer renderer.Unmount()

	renderer.RenderRoot()

	select {
	case <-list.Settled():
	case <-ctx.Done():
		return nil, fmt.Errorf("prerender: waiting for product list: %w", ctx.Err())
	}
	renderer.Flush()

	return renderer.CurrentVDOM(), nil
}

// Write prerenders the page and writes the full HTML document to w.
func (p *Renderer) Write(ctx context.Context, w io.Writer) error {
	page, err := p.Page(ctx)
	if err != nil {
		return err
	}

	renderID := uuid.NewString()
	p.logger.Debug("page prerendered", zap.String("render_id", renderID))

	if err := html.Render(w, p.document(page, renderID)); err != nil {
		return fmt.Errorf("prerender: write document: %w", err)
	}
	return nil
}

func (p *Renderer) document(page *vdom.VNode, renderID string) *html.Node {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html, html.Attribute{Key: "lang", Val: "en"})
	doc.AppendChild(root)

	head := element(atom.Head)
	root.AppendChild(head)
	head.AppendChild(element(atom.Meta, html.Attribute{Key: "charset", Val: "utf-8"}))
	head.AppendChild(element(atom.Meta,
		html.Attribute{Key: "name", Val: "viewport"},
		html.Attribute{Key: "content", Val: "width=device-width, initial-scale=1"}))
	head.AppendChild(element(atom.Meta,
		html.Attribute{Key: "name", Val: "render-id"},
		html.Attribute{Key: "content", Val: renderID}))
	title := element(atom.Title)
	title.AppendChild(&html.Node{Type: html.TextNode, Data: p.opts.Title})
	head.AppendChild(title)
	for _, href := range p.opts.Stylesheets {
		head.AppendChild(element(atom.Link,
			html.Attribute{Key: "rel", Val: "stylesheet"},
			html.Attribute{Key: "href", Val: href}))
	}

	body := element(atom.Body)
	root.AppendChild(body)
	app := element(atom.Div, html.Attribute{Key: "id", Val: "app"})
	body.AppendChild(app)
	if n := vdom.ToHTMLNode(page); n != nil {
		app.AppendChild(n)
	}
	for _, src := range p.opts.Scripts {
		body.AppendChild(element(atom.Script, html.Attribute{Key: "src", Val: src}))
	}

	return doc
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}
