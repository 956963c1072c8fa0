//go:build (js || wasm) && !dev
// +build js wasm
// +build !dev

package runtime

import (
	"fmt"

	"go.uber.org/zap"
)

// callHook invokes a lifecycle method in production mode.
// Panics are recovered and logged so one component cannot take the page down.
func (r *RendererImpl) callHook(hook, key string, fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("lifecycle hook panicked",
				zap.String("hook", hook),
				zap.String("component", key),
				zap.String("panic", fmt.Sprint(rec)))
		}
	}()
	fn()
}
