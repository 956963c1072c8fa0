package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vcrobe/storefront/internal/prerender"
	"github.com/vcrobe/storefront/internal/server"
)

var (
	serveAddr   string
	serveStatic string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the prerendered page and the browser build",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if serveAddr != "" {
			cfg.Addr = serveAddr
		}
		if serveStatic != "" {
			cfg.StaticDir = serveStatic
		}

		opts, interactive := prerender.DefaultOptions(cfg.PlaceholderImage).ForStaticDir(cfg.StaticDir)
		if !interactive {
			logger.Warn("browser build not found, serving static pages only",
				zap.String("static_dir", cfg.StaticDir))
		}
		page := prerender.New(newCatalog(), opts, logger.Named("prerender"))
		srv := server.New(server.Config{
			Addr:          cfg.Addr,
			StaticDir:     cfg.StaticDir,
			RenderTimeout: renderBudget(cfg.Timeout),
		}, page, logger.Named("http"))

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return srv.Run(gctx, 10*time.Second)
		})
		g.Go(func() error {
			<-gctx.Done()
			if ctx.Err() != nil {
				logger.Info("Received shutdown signal, stopping gracefully...")
			}
			return nil
		})
		return g.Wait()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
	serveCmd.Flags().StringVar(&serveStatic, "static", "", "directory served under /static/ (overrides config)")
}

// renderBudget leaves room for a timed-out catalog request to settle into the
// failed state, so the page still renders instead of returning 503.
func renderBudget(catalogTimeout time.Duration) time.Duration {
	if catalogTimeout <= 0 {
		return 0
	}
	return catalogTimeout + 2*time.Second
}
