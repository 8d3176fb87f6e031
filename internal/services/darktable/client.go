package darktable

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"pano/internal/services"
)

// Converter defines the behaviour the workflow needs from RAW conversion.
type Converter interface {
	Convert(ctx context.Context, src, dst, style string, overwrite bool) error
	Edit(ctx context.Context, path string) error
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

// Client wraps darktable and darktable-cli interactions.
type Client struct {
	binary    string
	cliBinary string
	stylesDir string
	exec      services.Executor
}

// New constructs a darktable client. stylesDir may be empty, in which case
// every style name is rejected.
func New(binary, cliBinary, stylesDir string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	cliBinary = strings.TrimSpace(cliBinary)
	if binary == "" || cliBinary == "" {
		return nil, errors.New("darktable binaries required")
	}
	client := &Client{
		binary:    binary,
		cliBinary: cliBinary,
		stylesDir: strings.TrimSpace(stylesDir),
		exec:      services.NewExecutor(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Styles lists the style names available in the configured styles directory.
func (c *Client) Styles() ([]string, error) {
	if c.stylesDir == "" {
		return nil, nil
	}
	matches, err := filepath.Glob(filepath.Join(c.stylesDir, "*.dtstyle"))
	if err != nil {
		return nil, fmt.Errorf("glob styles: %w", err)
	}
	styles := make([]string, 0, len(matches))
	for _, match := range matches {
		base := filepath.Base(match)
		styles = append(styles, strings.TrimSuffix(base, filepath.Ext(base)))
	}
	sort.Strings(styles)
	return styles, nil
}

// Convert renders src into dst with darktable-cli, optionally applying a
// named style. When overwrite is false and dst already exists the conversion
// is skipped. A conversion that exits cleanly but leaves no target file is
// still a failure.
func (c *Client) Convert(ctx context.Context, src, dst, style string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(dst); err == nil {
			return nil
		}
	}

	args := []string{src, dst}
	if style != "" {
		if err := c.validateStyle(style); err != nil {
			return err
		}
		args = append(args, "--style-overwrite", "--style", style)
	}

	if err := c.exec.Run(ctx, c.cliBinary, args, nil); err != nil {
		return services.Wrap(services.ErrExternalTool, "darktable", "convert", filepath.Base(src), err)
	}
	if _, err := os.Stat(dst); err != nil {
		return services.Wrap(services.ErrExternalTool, "darktable", "convert",
			fmt.Sprintf("%s: no output at %s", filepath.Base(src), dst), nil)
	}
	return nil
}

// Edit opens the interactive darktable editor on a photo and blocks until it
// exits.
func (c *Client) Edit(ctx context.Context, path string) error {
	if err := c.exec.Run(ctx, c.binary, []string{path}, nil); err != nil {
		return services.Wrap(services.ErrExternalTool, "darktable", "edit", filepath.Base(path), err)
	}
	return nil
}

func (c *Client) validateStyle(style string) error {
	styles, err := c.Styles()
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "darktable", "styles", c.stylesDir, err)
	}
	for _, known := range styles {
		if known == style {
			return nil
		}
	}
	return services.Wrap(services.ErrValidation, "darktable", "convert",
		fmt.Sprintf("style %q not found in %s", style, c.stylesDir), nil)
}
