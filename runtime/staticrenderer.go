package runtime

import (
	"sync"

	"github.com/vcrobe/storefront/vdom"
)

// Compile-time assertion to ensure StaticRenderer implements the Renderer interface.
var _ Renderer = (*StaticRenderer)(nil)

// StaticRenderer renders a component tree in memory, without a browser.
//
// It runs the same lifecycle as the browser renderer (OnMount, OnParametersSet,
// OnUnmount, keyed instance reuse) and keeps the latest VDOM so callers can
// inspect it or serialize it with vdom.RenderHTML. Re-renders requested from
// other goroutines are serialized.
type StaticRenderer struct {
	root  Component
	tree  *instanceTree
	loop  *renderLoop
	mu    sync.Mutex
	vnode *vdom.VNode
	count int
	done  bool
}

// NewStaticRenderer creates a renderer for the given root component.
// Lifecycle hook panics propagate to the caller.
func NewStaticRenderer(root Component) *StaticRenderer {
	return &StaticRenderer{
		root: root,
		tree: newInstanceTree(func(_, _ string, fn func()) { fn() }),
		loop: newRenderLoop(),
	}
}

// RenderRoot performs a render pass and returns the resulting VDOM.
func (r *StaticRenderer) RenderRoot() *vdom.VNode {
	r.ReRender()
	return r.CurrentVDOM()
}

// ReRender runs a render pass. Calls made while a pass is running are folded
// into a single follow-up pass. After Unmount it does nothing.
func (r *StaticRenderer) ReRender() {
	r.mu.Lock()
	done := r.done
	r.mu.Unlock()
	if done {
		return
	}
	r.loop.run(r.pass)
}

func (r *StaticRenderer) pass() {
	r.mu.Lock()
	done := r.done
	r.mu.Unlock()
	if done {
		// Unmount may have torn the tree down after ReRender checked.
		return
	}

	r.tree.beginPass()
	node := r.tree.render(r, rootKey, r.root)
	r.tree.sweep()

	r.mu.Lock()
	r.vnode = node
	r.count++
	r.mu.Unlock()
}

// RenderChild renders a keyed child component, reusing the instance from earlier passes.
func (r *StaticRenderer) RenderChild(key string, childWithProps Component) *vdom.VNode {
	return r.tree.render(r, key, childWithProps)
}

// CurrentVDOM returns the most recently rendered VDOM tree.
func (r *StaticRenderer) CurrentVDOM() *vdom.VNode {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.vnode
}

// RenderCount reports how many render passes have completed.
func (r *StaticRenderer) RenderCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Flush waits until no render pass is running, including passes queued by
// StateHasChanged calls from other goroutines.
func (r *StaticRenderer) Flush() {
	if r.loop.exclusive(func() {}) {
		r.ReRender()
	}
}

// Unmount removes every component from the tree, calling OnUnmount on each.
// The renderer cannot be used afterwards.
func (r *StaticRenderer) Unmount() {
	r.mu.Lock()
	if r.done {
		r.mu.Unlock()
		return
	}
	r.done = true
	r.mu.Unlock()

	r.loop.exclusive(r.tree.unmountAll)
}
