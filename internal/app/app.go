package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/auto-dns/podman-ssh-fleet/internal/config"
	"github.com/auto-dns/podman-ssh-fleet/internal/fleet"
	"github.com/auto-dns/podman-ssh-fleet/internal/runtime"
	"github.com/rs/zerolog"
)

type App struct {
	controller *fleet.Controller
	logger     zerolog.Logger
}

// New creates a new App by wiring up all dependencies.
func New(cfg *config.Config, logger zerolog.Logger) (*App, error) {
	containerfile := cfg.App.Containerfile
	if containerfile == "" {
		// The build definition ships alongside the binary.
		exe, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve executable path: %w", err)
		}
		containerfile = filepath.Join(filepath.Dir(exe), "Dockerfile")
	}

	runner := runtime.NewCLI(&cfg.Runtime, logger)
	controller := fleet.NewController(&cfg.App, containerfile, runner, logger)

	return &App{
		controller: controller,
		logger:     logger,
	}, nil
}

// Start runs the start command: optionally build the image, start the
// requested number of containers, then report fleet status.
func (a *App) Start(ctx context.Context, build bool, containers int) error {
	a.controller.Start(ctx, build, containers)
	return nil
}

// Info runs the info command: report fleet status.
func (a *App) Info(ctx context.Context) error {
	a.controller.Info(ctx)
	return nil
}

// Stop runs the stop command: stop all containers, then report fleet status.
func (a *App) Stop(ctx context.Context) error {
	a.controller.Stop(ctx)
	return nil
}
