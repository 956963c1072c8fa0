//go:build js || wasm
// +build js wasm

package main

import (
	"net/url"
	"strings"
	"syscall/js"

	"go.uber.org/zap"

	"github.com/vcrobe/storefront/internal/catalog"
	"github.com/vcrobe/storefront/internal/components"
	"github.com/vcrobe/storefront/internal/config"
	"github.com/vcrobe/storefront/internal/logging"
	"github.com/vcrobe/storefront/runtime"
)

func main() {
	cfg := config.Default()

	// ?debug=1 turns on the per-render list trace in the browser console.
	search := js.Global().Get("location").Get("search").String()
	if query, err := url.ParseQuery(strings.TrimPrefix(search, "?")); err == nil && query.Has("debug") {
		cfg.Debug = true
	}

	logger := logging.NewBrowser(cfg.Debug)

	client := catalog.NewClient(cfg.Endpoint, cfg.PageSize,
		catalog.WithTimeout(cfg.Timeout),
		catalog.WithLogger(logger.Named("catalog")))

	list := components.NewProductList(client, cfg.PlaceholderImage, logger.Named("products"))
	root := components.NewRootView(list)

	// Create the renderer and mount the page under #app
	renderer := runtime.NewRenderer("#app", logger)
	renderer.SetCurrentComponent(root, "root")
	renderer.RenderRoot()

	logger.Debug("storefront mounted", zap.String("endpoint", cfg.Endpoint))

	// Keep the Go program running
	select {}
}
