package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/promptforge/promptforge/pkg/config"
	"github.com/promptforge/promptforge/pkg/observability/logging"
	"github.com/promptforge/promptforge/pkg/runtime"
)

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runConfigPath, "config", "f", "promptforge.yaml", "the path to the server config file")
	runCmd.Flags().StringVarP(&runTransport, "transport", "t", "", "override the configured transport (stdio or streamablehttp)")
}

var runConfigPath string
var runTransport string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a promptforge server",
	Args:  cobra.NoArgs,
	RunE:  executeRunCmd,
}

func executeRunCmd(cobraCmd *cobra.Command, args []string) error {
	// the override is validated before anything starts, never carried as an
	// opaque string into the runtime
	if runTransport != "" {
		if err := config.ValidateTransport(runTransport); err != nil {
			return fmt.Errorf("invalid --transport flag: %w", err)
		}
	}

	// optional .env file for connection strings and the like
	_ = godotenv.Load()

	cfg, err := config.ParseFile(runConfigPath)
	if err != nil {
		return fmt.Errorf("invalid config file %s: %w", runConfigPath, err)
	}
	if runTransport != "" {
		cfg.Server.Transport = runTransport
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config file %s: %w", runConfigPath, err)
	}

	cfg.Storage.Database = os.ExpandEnv(cfg.Storage.Database)

	logger := logging.Base(cfg.Logging)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cobraCmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lifecycle := runtime.NewLifecycle(cfg, logger)
	if err := lifecycle.Run(ctx); err != nil {
		logger.Error("server failed", zap.Error(err))
		return err
	}
	return nil
}
