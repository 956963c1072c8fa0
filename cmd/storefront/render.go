package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vcrobe/storefront/internal/prerender"
)

var (
	renderOut     string
	renderTimeout time.Duration
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Prerender the product page to HTML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), renderTimeout)
		defer cancel()

		var w io.Writer = cmd.OutOrStdout()
		if renderOut != "" {
			f, err := os.Create(renderOut)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			defer f.Close()
			w = f
		}

		page := prerender.New(newCatalog(), prerender.DefaultOptions(cfg.PlaceholderImage), logger)
		if err := page.Write(ctx, w); err != nil {
			return err
		}
		if renderOut != "" {
			logger.Info("page written", zap.String("path", renderOut))
		}
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "output file (default stdout)")
	renderCmd.Flags().DurationVar(&renderTimeout, "timeout", 30*time.Second, "maximum time to wait for the catalog")
}
