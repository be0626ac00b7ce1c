package fleet

import (
	"context"
	"strings"

	"github.com/auto-dns/podman-ssh-fleet/internal/config"
	"github.com/auto-dns/podman-ssh-fleet/internal/util"
	"github.com/rs/zerolog"
)

// UnknownAddress is reported for a container whose IP address could not be
// read from the runtime.
const UnknownAddress = "0.0.0.0"

// runner abstracts the container runtime CLI. Run captures output for calls
// that get parsed; Stream passes output through for calls that do not.
type runner interface {
	Run(ctx context.Context, args ...string) (stdout, stderr string, err error)
	Stream(ctx context.Context, args ...string) error
}

// Controller sequences the runtime calls behind the start, info and stop
// commands. It holds no state of its own: every operation re-queries the
// runtime for ground truth, and no failure of a runtime call is ever fatal.
type Controller struct {
	logger        zerolog.Logger
	cfg           *config.AppConfig
	runner        runner
	containerfile string
}

func NewController(cfg *config.AppConfig, containerfile string, r runner, logger zerolog.Logger) *Controller {
	return &Controller{
		logger:        logger,
		cfg:           cfg,
		runner:        r,
		containerfile: containerfile,
	}
}

// ListRunningContainers returns the names of all running containers in the
// runtime's own listing order. A failed call is logged and reported as an
// empty list, indistinguishable to callers from a runtime with no containers.
func (c *Controller) ListRunningContainers(ctx context.Context) []string {
	c.logger.Info().Msg("Fetching all running containers")

	stdout, stderr, err := c.runner.Run(ctx, "ps", "--format", "{{.Names}}")
	if err != nil || stderr != "" {
		c.logger.Error().Err(err).Str("stderr", strings.TrimSpace(stderr)).Msg("Error reading container names")
		return nil
	}

	names := strings.Split(strings.TrimRight(stdout, "\n"), "\n")
	return util.Filter(names, func(name string) bool { return name != "" })
}

// ContainerAddress returns the IP address of the named container on its first
// network, trimmed of surrounding whitespace. On failure it returns
// UnknownAddress rather than an error.
func (c *Controller) ContainerAddress(ctx context.Context, name string) string {
	c.logger.Info().Str("container", name).Msg("Fetching container ip address")

	stdout, stderr, err := c.runner.Run(ctx, "inspect", "--format", "{{range .NetworkSettings.Networks}}{{.IPAddress}}{{end}}", name)
	if err != nil || stderr != "" {
		c.logger.Error().Err(err).Str("container", name).Str("stderr", strings.TrimSpace(stderr)).Msg("Error reading container ip address")
		return UnknownAddress
	}

	return strings.TrimSpace(stdout)
}

// BuildImage builds the fleet image from the containerfile. Build output goes
// straight to the terminal and the result is not inspected.
func (c *Controller) BuildImage(ctx context.Context) {
	c.logger.Info().Str("image", c.cfg.Image).Msg("Building image")
	_ = c.runner.Stream(ctx, "build", "-t", c.cfg.Image, "-f", c.containerfile)
}

// StartContainers starts count detached containers from the fleet image. Each
// start is independent; a failure does not stop the remaining iterations.
func (c *Controller) StartContainers(ctx context.Context, count int) {
	c.logger.Info().Int("count", count).Msg("Starting containers")

	for i := 0; i < count; i++ {
		c.logger.Info().Str("image", c.cfg.Image).Msg("Starting container")
		if err := c.runner.Stream(ctx, "run", "-dt", c.cfg.Image); err != nil {
			c.logger.Error().Err(err).Str("image", c.cfg.Image).Msg("Error starting container")
		}
	}
}

// StopAllContainers stops every container the runtime currently reports, in
// listing order. An empty list means nothing to do.
func (c *Controller) StopAllContainers(ctx context.Context) {
	c.logger.Info().Msg("Stopping containers")

	for _, name := range c.ListRunningContainers(ctx) {
		c.logger.Info().Str("container", name).Msg("Stopping container")
		if err := c.runner.Stream(ctx, "stop", name); err != nil {
			c.logger.Error().Err(err).Str("container", name).Msg("Error stopping container")
		}
	}
}

// ReportStatus logs one record per running container with its address and the
// test credentials. Every top-level command ends with this call.
func (c *Controller) ReportStatus(ctx context.Context) {
	c.logger.Info().Msg("Fetching container info")

	names := c.ListRunningContainers(ctx)
	if len(names) == 0 {
		c.logger.Warn().Msg("No running containers found")
		return
	}

	infos := util.Map(names, func(name string) ContainerInfo {
		return ContainerInfo{
			Name:     name,
			IP:       c.ContainerAddress(ctx, name),
			User:     c.cfg.User,
			Password: c.cfg.Password,
		}
	})
	for _, info := range infos {
		c.logger.Info().
			Str("container", info.Name).
			Str("ip", info.IP).
			Str("user", info.User).
			Str("password", info.Password).
			Msg("Container ready")
	}
}

// Start optionally rebuilds the image, starts count containers, and reports
// fleet status.
func (c *Controller) Start(ctx context.Context, build bool, count int) {
	if build {
		c.BuildImage(ctx)
	}
	c.StartContainers(ctx, count)
	c.ReportStatus(ctx)
}

// Stop stops all running containers and reports fleet status.
func (c *Controller) Stop(ctx context.Context) {
	c.StopAllContainers(ctx)
	c.ReportStatus(ctx)
}

// Info reports fleet status.
func (c *Controller) Info(ctx context.Context) {
	c.ReportStatus(ctx)
}
