package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tranvictor/electiongw/api"
	"github.com/tranvictor/electiongw/config"
	"github.com/tranvictor/electiongw/ledger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the election HTTP API",
	Long: `Serve the election HTTP API under the configured prefix (default /api),
plus /healthz and /metrics. The contract binding is initialized in the
background at startup and again on demand if that fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		metrics := api.NewMetrics()
		a, err := buildApp(cfg, metrics.ObserveLedger)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			warmup, cancel := context.WithTimeout(ctx, 30*time.Second)
			defer cancel()
			err := a.service.Ready(warmup)
			switch {
			case errors.Is(err, ledger.ErrNoDeployment):
				a.logger.Warn("contract address unknown, requests will fail until it is configured",
					zap.String("hint", deploymentHint), zap.Error(err))
			case err != nil:
				a.logger.Warn("contract binding not ready yet, will retry on the first request", zap.Error(err))
			}
		}()

		server := api.NewServer(cfg.Server, a.service, a.logger, metrics)
		return server.Run(ctx)
	},
}

func init() {
	AddCommonFlagsToTransactionalCmds(serveCmd)
	serveCmd.Flags().StringVar(&config.Listen, "listen", "", "address to listen on. Default: :5000 or :$PORT.")
	rootCmd.AddCommand(serveCmd)
}
