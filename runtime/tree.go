package runtime

import (
	"sync"

	"github.com/vcrobe/storefront/vdom"
)

// rootKey identifies the root component in the instance tree.
const rootKey = "__root__"

// hookInvoker runs a lifecycle hook. Hosts decide whether panics propagate.
type hookInvoker func(hook, key string, fn func())

// instanceTree tracks component instances by key across render passes.
// It is shared by the browser and native renderers; callers serialize access.
type instanceTree struct {
	instances map[string]Component
	mounted   map[string]bool // Track which components have had OnMount called
	active    map[string]bool // Track which components are active in the current render
	order     []string        // Mount order, used to unmount children before parents
	invoke    hookInvoker
}

func newInstanceTree(invoke hookInvoker) *instanceTree {
	return &instanceTree{
		instances: make(map[string]Component),
		mounted:   make(map[string]bool),
		active:    make(map[string]bool),
		invoke:    invoke,
	}
}

// beginPass resets the active set for a new render cycle.
func (t *instanceTree) beginPass() {
	t.active = make(map[string]bool)
}

// render resolves the instance stored under key, runs its lifecycle hooks and renders it.
func (t *instanceTree) render(r Renderer, key string, childWithProps Component) *vdom.VNode {
	t.active[key] = true

	instance, exists := t.instances[key]
	if !exists {
		// First time seeing this component at this location, so store the new instance.
		instance = childWithProps
		t.instances[key] = instance
		t.order = append(t.order, key)
	} else if instance != childWithProps {
		// Preserve the existing instance to keep state; take the new props.
		if updater, ok := instance.(PropUpdater); ok {
			updater.ApplyProps(childWithProps)
		}
	}

	// Ensure the instance knows about the renderer so it can call StateHasChanged.
	instance.SetRenderer(r)

	if !t.mounted[key] {
		t.mounted[key] = true
		if mounter, ok := instance.(Mounter); ok {
			t.invoke("OnMount", key, mounter.OnMount)
		}
	}

	if receiver, ok := instance.(ParameterReceiver); ok {
		t.invoke("OnParametersSet", key, receiver.OnParametersSet)
	}

	node := instance.Render(r)
	if node != nil {
		node.ComponentKey = key
	}
	return node
}

// sweep removes components that were not rendered in this cycle
// and calls their OnUnmount hook.
func (t *instanceTree) sweep() {
	t.unmountWhere(func(key string) bool { return !t.active[key] })
}

// unmountAll tears the whole tree down.
func (t *instanceTree) unmountAll() {
	t.unmountWhere(func(string) bool { return true })
}

func (t *instanceTree) unmountWhere(gone func(key string) bool) {
	kept := t.order[:0]
	var removed []string
	for _, key := range t.order {
		if gone(key) {
			removed = append(removed, key)
		} else {
			kept = append(kept, key)
		}
	}
	t.order = kept

	// Children mount after their parents, so walk backwards.
	for i := len(removed) - 1; i >= 0; i-- {
		key := removed[i]
		if unmounter, ok := t.instances[key].(Unmounter); ok {
			t.invoke("OnUnmount", key, unmounter.OnUnmount)
		}
		delete(t.instances, key)
		delete(t.mounted, key)
	}
}

// renderLoop serializes render passes and coalesces re-render requests that
// arrive while a pass is running into one follow-up pass.
type renderLoop struct {
	mu        sync.Mutex
	idle      *sync.Cond
	rendering bool
	dirty     bool
}

func newRenderLoop() *renderLoop {
	l := &renderLoop{}
	l.idle = sync.NewCond(&l.mu)
	return l
}

// run executes pass, then repeats it while re-renders were requested meanwhile.
// A call made while another goroutine (or the pass itself) is rendering only
// marks the loop dirty and returns.
func (l *renderLoop) run(pass func()) {
	l.mu.Lock()
	if l.rendering {
		l.dirty = true
		l.mu.Unlock()
		return
	}
	l.rendering = true
	l.mu.Unlock()

	for {
		pass()

		l.mu.Lock()
		if !l.dirty {
			l.rendering = false
			l.idle.Broadcast()
			l.mu.Unlock()
			return
		}
		l.dirty = false
		l.mu.Unlock()
	}
}

// exclusive waits for any running pass to finish and runs fn with the loop held.
// It reports whether a re-render was requested while fn ran; that request is
// handed back to the caller instead of being replayed.
// It must not be called from inside a pass.
func (l *renderLoop) exclusive(fn func()) (requested bool) {
	l.mu.Lock()
	for l.rendering {
		l.idle.Wait()
	}
	l.rendering = true
	l.mu.Unlock()

	fn()

	l.mu.Lock()
	requested = l.dirty
	l.rendering = false
	l.dirty = false
	l.idle.Broadcast()
	l.mu.Unlock()
	return requested
}
