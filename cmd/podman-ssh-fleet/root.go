package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/auto-dns/podman-ssh-fleet/internal/app"
	"github.com/auto-dns/podman-ssh-fleet/internal/config"
	"github.com/auto-dns/podman-ssh-fleet/internal/logger"
)

type contextKey string

const configKey = contextKey("config")

var rootCmd = &cobra.Command{
	Use:   "podman-ssh-fleet",
	Short: "Build and run a fleet of podman containers for ssh testing",
	Long:  "A tool that builds an ssh-enabled image, starts a configurable number of containers from it, and reports their addresses and test credentials.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.InitConfig(); err != nil {
			return err
		}
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		ctx := context.WithValue(cmd.Context(), configKey, cfg)
		cmd.SetContext(ctx)
		return nil
	},
}

// newApplication wires the app for a subcommand from the config stashed in
// the command context.
func newApplication(cmd *cobra.Command) (application, error) {
	cfg := cmd.Context().Value(configKey).(*config.Config)
	logInstance := logger.SetupLogger(&cfg.Logging)
	application, err := app.New(cfg, logInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create app: %w", err)
	}
	return application, nil
}

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Builds the image if requested and starts containers",
	RunE: func(cmd *cobra.Command, args []string) error {
		build, err := cmd.Flags().GetBool("build")
		if err != nil {
			return err
		}
		containers, err := cmd.Flags().GetInt("containers")
		if err != nil {
			return err
		}
		application, err := newApplication(cmd)
		if err != nil {
			return err
		}
		return application.Start(cmd.Context(), build, containers)
	},
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Prints info about currently running containers",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := newApplication(cmd)
		if err != nil {
			return err
		}
		return application.Info(cmd.Context())
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stops all currently running containers",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := newApplication(cmd)
		if err != nil {
			return err
		}
		return application.Stop(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "INFO", "set log level (e.g. INFO, DEBUG, WARN)")
	viper.BindPFlag("log.log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	startCmd.Flags().Bool("build", false, "rebuild the image used for ssh containers")
	startCmd.Flags().Int("containers", 1, "the amount of containers that are going to be created")

	rootCmd.AddCommand(startCmd, infoCmd, stopCmd)

	// Enable automatic environment variable binding.
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Execution error: %v\n", err)
		os.Exit(1)
	}
}
