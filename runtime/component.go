package runtime

import "github.com/vcrobe/storefront/vdom"

// Component interface defines the structure for all components in the framework.
// This interface has NO build tags, making it available to both WASM and native builds.
type Component interface {
	// Render generates the virtual DOM tree for this component.
	// The renderer parameter provides access to framework services like RenderChild.
	Render(r Renderer) *vdom.VNode

	// SetRenderer is called by the framework to attach the renderer to the component.
	// This enables StateHasChanged() to trigger re-renders.
	SetRenderer(r Renderer)
}

// Mounter is implemented by components that need to run code the first time
// they appear in the rendered tree. OnMount runs once per instance, before its first render.
type Mounter interface {
	OnMount()
}

// ParameterReceiver is implemented by components that react to their props.
// OnParametersSet runs before every render of the instance, including the first.
type ParameterReceiver interface {
	OnParametersSet()
}

// Unmounter is implemented by components that hold resources past a render,
// such as an in-flight request. OnUnmount runs once when the instance leaves the tree.
type Unmounter interface {
	OnUnmount()
}

// PropUpdater lets a retained instance take the props of a freshly built one.
// Without it, a reused child keeps whatever props it was created with.
type PropUpdater interface {
	ApplyProps(next Component)
}
