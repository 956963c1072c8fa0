//go:build js || wasm
// +build js wasm

package runtime

import (
	"go.uber.org/zap"

	"github.com/vcrobe/storefront/vdom"
)

// Compile-time assertion to ensure the concrete RendererImpl implements the Renderer interface.
var _ Renderer = (*RendererImpl)(nil)

// RendererImpl is the browser implementation of the Renderer interface.
// It manages the component instance tree and patches the DOM under mountID.
type RendererImpl struct {
	tree             *instanceTree
	loop             *renderLoop
	currentComponent Component // The root component
	currentKey       string
	mountID          string
	prevVDOM         *vdom.VNode // Previous VDOM tree for patching
	logger           *zap.Logger
}

// NewRenderer creates a new browser renderer that mounts under the element
// matching mountID (a CSS selector such as "#app").
func NewRenderer(mountID string, logger *zap.Logger) *RendererImpl {
	r := &RendererImpl{
		loop:    newRenderLoop(),
		mountID: mountID,
		logger:  logger,
	}
	r.tree = newInstanceTree(r.callHook)
	return r
}

// SetCurrentComponent sets the root component to be rendered.
// A different key replaces the previous root and its whole subtree.
func (r *RendererImpl) SetCurrentComponent(comp Component, key string) {
	if r.currentKey != "" && r.currentKey != key {
		r.tree.unmountAll()
		r.prevVDOM = nil
	}
	r.currentComponent = comp
	r.currentKey = key
}

// RenderRoot starts the rendering process for the entire application.
func (r *RendererImpl) RenderRoot() {
	r.loop.run(r.pass)
}

func (r *RendererImpl) pass() {
	if r.currentComponent == nil {
		return
	}

	r.tree.beginPass()
	newVDOM := r.tree.render(r, rootKey, r.currentComponent)

	if r.prevVDOM == nil {
		// Initial render: clear and render fresh
		vdom.Clear(r.mountID)
		vdom.RenderToSelector(r.mountID, newVDOM)
	} else {
		// Subsequent renders: patch the existing DOM
		vdom.Patch(r.mountID, r.prevVDOM, newVDOM)
	}
	r.prevVDOM = newVDOM

	// Clean up components that were not rendered in this cycle
	r.tree.sweep()
}

// RenderChild renders a keyed child component, reusing the instance from earlier passes.
func (r *RendererImpl) RenderChild(key string, childWithProps Component) *vdom.VNode {
	return r.tree.render(r, key, childWithProps)
}

// ReRender patches the DOM with minimal changes.
func (r *RendererImpl) ReRender() {
	r.RenderRoot()
}
