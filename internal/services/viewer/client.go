package viewer

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"

	"pano/internal/logging"
	"pano/internal/services"
)

// Opener defines the behaviour the workflow needs from the image viewer.
type Opener interface {
	Open(ctx context.Context, paths ...string) error
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec services.Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// Client launches the configured external image viewer.
type Client struct {
	binary string
	exec   services.Executor
	logger *slog.Logger
}

// New constructs a viewer client.
func New(binary string, logger *slog.Logger, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("viewer binary required")
	}
	client := &Client{
		binary: binary,
		exec:   services.NewExecutor(),
		logger: logging.NewComponentLogger(logger, "viewer"),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Open shows the given files in the viewer, skipping any that do not exist.
// A viewer that exits uncleanly is logged but not treated as a failure;
// having nothing at all to show is.
func (c *Client) Open(ctx context.Context, paths ...string) error {
	existing := make([]string, 0, len(paths))
	for _, path := range paths {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			existing = append(existing, path)
		} else {
			c.logger.Warn("skipping missing file", logging.String("path", path))
		}
	}
	if len(existing) == 0 {
		return services.Wrap(services.ErrNotFound, "viewer", "open", "no existing files to show", nil)
	}

	if err := c.exec.Run(ctx, c.binary, existing, nil); err != nil {
		c.logger.Warn("viewer exited uncleanly", logging.Error(err))
	}
	return nil
}
