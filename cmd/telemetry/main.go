package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"telcli/internal/config"
	"telcli/internal/infrastructure"
	"telcli/internal/report"
	"telcli/internal/store"
	"telcli/pkg/contracts"
)

var (
	cfgFile   string
	storeRoot string
	logLevel  string

	cfg *config.Config
	svc *report.Service

	rootCmd = &cobra.Command{
		Use:   "telemetry",
		Short: "Organize and aggregate telemetry spreadsheets",
		Long: `telemetry files incoming spreadsheet exports into a year/month store,
aggregates their per-sheet readings, and assembles annual reports.

Workbooks are grouped by sheet-name prefix so multi-sensor exports from the
same model line land in one combined table.`,
		PersistentPreRunE: initApp,
		SilenceUsage:      true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: telcli.yaml next to the executable)")
	rootCmd.PersistentFlags().StringVar(&storeRoot, "store", "", "store root directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(ingestCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(inspectCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Received interrupt signal, shutting down")
		cancel()
	}()

	err := rootCmd.ExecuteContext(infrastructure.ContextWithTraceID(ctx))
	cancel()
	infrastructure.CloseLogFile()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initApp loads configuration, applies flag overrides, and wires the
// service every subcommand shares.
func initApp(cmd *cobra.Command, _ []string) error {
	// version must work even with a broken config file on disk
	if cmd.Name() == "version" {
		return nil
	}

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	if storeRoot != "" {
		cfg.Store.Root = storeRoot
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	st := store.NewStore(cfg.Store.Root, logger)
	svc = report.NewServiceWithLogger(cfg, st, logger)
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), contracts.GetFullVersionString())
		},
	}
}
