package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/moshehbenavraham/graphmind/internal/config"
	"github.com/moshehbenavraham/graphmind/internal/falkor"
	"github.com/moshehbenavraham/graphmind/internal/verify"
)

var (
	cfgFile string
	envFile string
	verbose bool
	noColor bool

	// exitCode carries the run result out of RunE; cobra errors map to
	// exitError in Execute.
	exitCode = exitSuccess
)

var rootCmd = &cobra.Command{
	Use:   "graphcheck",
	Short: "Verify a FalkorDB deployment end-to-end",
	Long: `graphcheck runs a fixed 20-step verification protocol against a
remote FalkorDB instance: connection and authentication, graph lifecycle,
write and read queries, schema introspection, query-plan inspection, and
cleanup.

Connection details come from the environment (FALKORDB_HOST, FALKORDB_PORT,
FALKORDB_USER, FALKORDB_PASSWORD), a dotenv file, or a YAML config file.
The process exits 0 when every step passes and 1 otherwise.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runVerification,
}

// Execute runs the root command with signal handling and returns the process
// exit code.
func Execute(ctx context.Context) int {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitError
	}
	return exitCode
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "path to a dotenv file (default: .env when present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colorized output")

	rootCmd.AddCommand(versionCmd)
}

func runVerification(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if err := config.LoadEnvFile(envFile); err != nil {
		return err
	}
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	log := newLogger(cfg.Logging, verbose)

	color := !noColor && term.IsTerminal(int(os.Stdout.Fd()))
	reporter := verify.NewConsoleReporter(cmd.OutOrStdout(), color)

	client, err := falkor.NewClient(falkor.Options{
		Addr:           cfg.Addr(),
		Username:       cfg.Username,
		Password:       cfg.Password,
		TLS:            cfg.TLS,
		ConnectTimeout: cfg.ConnectTimeout,
	})
	if err != nil {
		return err
	}
	defer client.Close()

	reporter.Banner("GraphMind FalkorDB Connection Verification")
	reporter.Info("Host: " + cfg.Host)
	reporter.Info(fmt.Sprintf("Port: %d", cfg.Port))
	reporter.Info("Username: " + cfg.Username)
	reporter.Info("Connection protocol: Redis RESP")

	graphName := verify.GraphName(cfg.GraphPrefix, time.Now())
	steps := verify.Protocol(client, graphName)
	result := verify.NewRunner(steps, reporter, log).Run(ctx)

	if result.Passed {
		reporter.Info("FalkorDB connection is fully functional via Redis protocol")
	}
	exitCode = result.ExitCode()
	return nil
}
