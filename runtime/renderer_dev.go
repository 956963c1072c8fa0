//go:build (js || wasm) && dev
// +build js wasm
// +build dev

package runtime

// callHook invokes a lifecycle method in development mode.
// In dev mode, panics propagate to aid debugging and fast failure.
func (r *RendererImpl) callHook(hook, key string, fn func()) {
	fn()
}
