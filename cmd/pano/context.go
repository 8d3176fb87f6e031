package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"pano/internal/catalog"
	"pano/internal/config"
	"pano/internal/logging"
	"pano/internal/project"
	"pano/internal/services/darktable"
	"pano/internal/services/exiv2"
	"pano/internal/services/hugin"
	"pano/internal/services/viewer"
	"pano/internal/workflow"
)

type commandContext struct {
	projectFlag *string
	configFlag  *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(projectFlag, configFlag *string) *commandContext {
	return &commandContext{
		projectFlag: projectFlag,
		configFlag:  configFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) projectRoot() string {
	if c.projectFlag == nil || strings.TrimSpace(*c.projectFlag) == "" {
		return "."
	}
	return strings.TrimSpace(*c.projectFlag)
}

// withProject builds the workflow manager for the project directory and runs
// fn against it. A per-project advisory lock serializes invocations: even
// read-leaning commands may trigger detection and write the artifact.
func (c *commandContext) withProject(fn func(context.Context, *workflow.Manager) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return err
	}

	layout, err := project.NewLayout(c.projectRoot())
	if err != nil {
		return err
	}
	if err := layout.EnsureDirectories(); err != nil {
		return err
	}

	lock := flock.New(layout.LockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire project lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another pano command is already running in %s", layout.Root)
	}
	defer func() { _ = lock.Unlock() }()

	cat, err := catalog.Open(layout.CatalogPath())
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer cat.Close()

	metadata, err := exiv2.New(cfg.Tools.Exiv2)
	if err != nil {
		return err
	}
	converter, err := darktable.New(cfg.Tools.Darktable, cfg.Tools.DarktableCLI, cfg.Paths.StylesDir)
	if err != nil {
		return err
	}
	view, err := viewer.New(cfg.Tools.Viewer, logger)
	if err != nil {
		return err
	}

	manager, err := workflow.New(cfg, layout, cat, workflow.Deps{
		Metadata:  metadata,
		Converter: converter,
		Stitcher:  hugin.New(),
		Viewer:    view,
	}, logger)
	if err != nil {
		return err
	}
	return fn(context.Background(), manager)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
