package runtime

import "github.com/vcrobe/storefront/vdom"

// Renderer defines the minimal set of runtime operations used by component Render() code.
// This interface has NO build tags; the browser and native hosts both implement it.
type Renderer interface {
	// RenderChild renders a child component.
	// The key parameter uniquely identifies the component instance for state preservation.
	RenderChild(key string, childWithProps Component) *vdom.VNode

	// ReRender requests that the renderer re-run the render cycle.
	// Used by StateHasChanged() when component state changes.
	ReRender()
}
