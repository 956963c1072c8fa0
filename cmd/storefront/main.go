// Builds the browser bundle into web/ next to boot.js and styles.css.
//go:generate sh -c "GOOS=js GOARCH=wasm go build -o ../../web/main.wasm ../.. && cp \"$(go env GOROOT)/lib/wasm/wasm_exec.js\" ../../web/"

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vcrobe/storefront/internal/catalog"
	"github.com/vcrobe/storefront/internal/config"
	"github.com/vcrobe/storefront/internal/logging"
)

var (
	// Global flags
	configPath string
	envFile    string
	debug      bool

	cfg    config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Product listing storefront",
	Long: `storefront renders the product listing page.

The page fetches one page of products from the catalog endpoint and shows
each one as a card. The same components run in the browser (wasm build) and
here, where they are prerendered to HTML.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath, envFile)
		if err != nil {
			return err
		}
		if debug {
			cfg.Debug = true
		}

		logger, err = logging.New(cfg.Debug)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", ".env file to load (ignored when missing)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(renderCmd, serveCmd, versionCmd)
}

// newCatalog builds the catalog client from the loaded config.
func newCatalog() *catalog.Client {
	return catalog.NewClient(cfg.Endpoint, cfg.PageSize,
		catalog.WithTimeout(cfg.Timeout),
		catalog.WithLogger(logger.Named("catalog")))
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
