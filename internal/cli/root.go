package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/m04kA/venuebook/internal/config"
)

var (
	Version   = "dev"
	CommitSHA = "none"
	BuildDate = "unknown"
)

const defaultConfigPath = "config.toml"

// NewRootCmd корневая команда venuebook
func NewRootCmd() *cobra.Command {
	var (
		configPath string
		envFile    string
	)

	root := &cobra.Command{
		Use:           "venuebook",
		Short:         "Court booking service: availability, reservations, cancellations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to TOML config file")
	root.PersistentFlags().StringVar(&envFile, "env-file", config.DefaultEnvFile, "optional .env file with VENUEBOOK_* overrides")

	load := func() (*config.Config, error) {
		return config.LoadWithEnvFile(configPath, envFile)
	}

	root.AddCommand(newServeCmd(load))
	root.AddCommand(newMigrateCmd(load))
	root.AddCommand(newTokenCmd(load))
	root.AddCommand(newVersionCmd())

	return root
}

// Execute запускает CLI и завершает процесс при ошибке
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type configLoader func() (*config.Config, error)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version info",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "venuebook %s (commit=%s, built=%s)\n", Version, CommitSHA, BuildDate)
		},
	}
}
