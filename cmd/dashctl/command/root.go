package command

import (
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jwalitptl/practice-dashboard/pkg/backend"
	"github.com/jwalitptl/practice-dashboard/pkg/logger"
)

var logLevel string

// deps are the collaborators shared by the subcommands.
type deps struct {
	client *backend.Client
	log    *zap.SugaredLogger
	out    io.Writer
}

// newDeps builds a backend client from BACKEND_* environment variables.
func newDeps(cmd *cobra.Command) (*deps, error) {
	var cfg backend.Config
	if err := cfg.LoadFromEnv(); err != nil {
		return nil, err
	}
	log, err := logger.NewSugared(logger.ParseLevel(logLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return &deps{
		client: backend.NewClient(cfg),
		log:    log,
		out:    cmd.OutOrStdout(),
	}, nil
}

var rootCmd = &cobra.Command{
	Use:           "dashctl",
	Short:         "Operator tool for the practice dashboard",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// .env is optional
		_ = godotenv.Load()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "v", "error", "Log Level")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
