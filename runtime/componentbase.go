package runtime

import (
	"sync"

	"github.com/vcrobe/storefront/console"
)

// ComponentBase is a struct that components can embed to gain access to the
// StateHasChanged method, which triggers a UI re-render.
// This type has no build tags and works in both WASM and native environments.
type ComponentBase struct {
	mu       sync.RWMutex
	renderer Renderer // Use interface type, not concrete implementation
}

// SetRenderer is called by the framework's runtime to inject a reference
// to the renderer, enabling StateHasChanged. This method should not be
// called by user code.
func (b *ComponentBase) SetRenderer(r Renderer) {
	b.mu.Lock()
	b.renderer = r
	b.mu.Unlock()
}

// GetRenderer returns the renderer instance associated with this component.
func (b *ComponentBase) GetRenderer() Renderer {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.renderer
}

// StateHasChanged signals to the framework that the component's state has
// been updated and the UI should be re-rendered to reflect the changes.
// It is safe to call from a goroutine.
func (b *ComponentBase) StateHasChanged() {
	r := b.GetRenderer()
	if r == nil {
		console.Error("StateHasChanged called, but renderer is nil (component not mounted?)")
		return
	}
	r.ReRender()
}
