package runtime

import (
	"bytes"
	"context"
	"os"
	"os/exec"

	"github.com/auto-dns/podman-ssh-fleet/internal/config"
	"github.com/rs/zerolog"
)

// CLI invokes the configured container runtime binary as a child process,
// prepending sudo when configured.
type CLI struct {
	logger zerolog.Logger
	binary string
	sudo   bool
}

func NewCLI(cfg *config.RuntimeConfig, logger zerolog.Logger) *CLI {
	return &CLI{
		logger: logger,
		binary: cfg.Binary,
		sudo:   cfg.Sudo,
	}
}

func (c *CLI) command(ctx context.Context, args []string) *exec.Cmd {
	argv := make([]string, 0, len(args)+2)
	if c.sudo {
		argv = append(argv, "sudo")
	}
	argv = append(argv, c.binary)
	argv = append(argv, args...)
	return exec.CommandContext(ctx, argv[0], argv[1:]...)
}

// Run executes the runtime with the given arguments and captures both output
// streams. The returned error reflects process start or exit failure; callers
// decide what a non-empty stderr means.
func (c *CLI) Run(ctx context.Context, args ...string) (string, string, error) {
	cmd := c.command(ctx, args)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	c.logger.Debug().Strs("argv", cmd.Args).Msg("Invoking container runtime")
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// Stream executes the runtime with the child inheriting this process's output
// streams. Used for calls whose output is meant for the user, not for parsing.
func (c *CLI) Stream(ctx context.Context, args ...string) error {
	cmd := c.command(ctx, args)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	c.logger.Debug().Strs("argv", cmd.Args).Msg("Invoking container runtime")
	return cmd.Run()
}
