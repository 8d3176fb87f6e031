package hugin

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"pano/internal/services"
)

// Tool binary names of the hugin suite. These are fixed upstream names, not
// configuration.
const (
	binPtoGen        = "pto_gen"
	binCpfind        = "cpfind"
	binCpclean       = "cpclean"
	binLinefind      = "linefind"
	binAutooptimiser = "autooptimiser"
	binPanoModify    = "pano_modify"
	binHugin         = "hugin"
	binNona          = "nona"
	binEnblend       = "enblend"
)

// Stitcher defines the behaviour the workflow needs from panorama rendering.
type Stitcher interface {
	Stitch(ctx context.Context, frames []string, workDir, outDir string, opts Options) ([]string, error)
}

// Options configures one stitch run.
type Options struct {
	// Prefix names the outputs, e.g. "IMG_0012-IMG_0015-punchy-n".
	Prefix string
	// Projections to render; empty means rectilinear.
	Projections []string
	// Adjust opens the interactive hugin editor before each rendering pass.
	Adjust bool
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

// Client drives the hugin tool chain.
type Client struct {
	exec services.Executor
}

// New constructs a hugin client.
func New(opts ...Option) *Client {
	client := &Client{exec: services.NewExecutor()}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Stitch aligns the given frames and renders one output per requested
// projection into outDir. Outputs that already exist are returned without
// recomputation; when every requested output exists nothing runs at all.
// frames must already be in stitching order and in a format the tool chain
// accepts (TIFF). workDir holds the project file and intermediate tiles.
func (c *Client) Stitch(ctx context.Context, frames []string, workDir, outDir string, opts Options) ([]string, error) {
	if len(frames) < 2 {
		return nil, services.Wrap(services.ErrValidation, "hugin", "stitch",
			fmt.Sprintf("need at least 2 frames, got %d", len(frames)), nil)
	}
	if opts.Prefix == "" {
		return nil, services.Wrap(services.ErrValidation, "hugin", "stitch", "output prefix required", nil)
	}

	wanted := opts.Projections
	if len(wanted) == 0 {
		wanted = []string{projections[0]}
	}

	type target struct {
		name  string
		index int
		out   string
	}
	targets := make([]target, 0, len(wanted))
	outputs := make([]string, 0, len(wanted))
	pending := 0
	for _, name := range wanted {
		index, err := ProjectionIndex(name)
		if err != nil {
			return nil, err
		}
		out := filepath.Join(outDir, opts.Prefix+"-"+name+".tif")
		targets = append(targets, target{name: name, index: index, out: out})
		outputs = append(outputs, out)
		if !fileExists(out) {
			pending++
		}
	}
	if pending == 0 {
		return outputs, nil
	}

	pto := filepath.Join(workDir, opts.Prefix+".pto")
	alignment := [][]string{
		append(append([]string{binPtoGen}, frames...), "-o", pto),
		{binCpfind, "--celeste", "-o", pto, pto},
		{binCpclean, "-o", pto, pto},
		{binLinefind, "--lines", "3", "-o", pto, pto},
		{binAutooptimiser, "-q", "-a", "-l", "-m", "-s", "-o", pto, pto},
	}
	for _, step := range alignment {
		if err := c.run(ctx, opts.Prefix, step); err != nil {
			return nil, err
		}
	}

	for _, tgt := range targets {
		if fileExists(tgt.out) {
			continue
		}

		modify := []string{
			binPanoModify,
			"--projection", strconv.Itoa(tgt.index),
			"--fov", "AUTO",
			"--canvas", "AUTO",
			"--straighten",
			"--center",
			"--crop", "0,100,0,100%",
			"--output-type", "NORMAL",
			"-o", pto, pto,
		}
		if err := c.run(ctx, opts.Prefix, modify); err != nil {
			return nil, err
		}

		if opts.Adjust {
			if err := c.run(ctx, opts.Prefix, []string{binHugin, pto}); err != nil {
				return nil, err
			}
		}

		tilePrefix := filepath.Join(workDir, opts.Prefix)
		nona := []string{binNona, "-g", "-z", "LZW", "-o", tilePrefix, "--bigtiff", "-m", "TIFF_m", pto}
		if err := c.run(ctx, opts.Prefix, nona); err != nil {
			return nil, err
		}

		tiles, err := filepath.Glob(tilePrefix + "*.tif")
		if err != nil {
			return nil, fmt.Errorf("glob tiles: %w", err)
		}
		if len(tiles) == 0 {
			return nil, services.Wrap(services.ErrExternalTool, "hugin", binNona,
				opts.Prefix+": no tiles produced", nil)
		}

		blend := append([]string{binEnblend, "-o", tgt.out}, tiles...)
		if err := c.run(ctx, opts.Prefix, blend); err != nil {
			return nil, err
		}
		if !fileExists(tgt.out) {
			return nil, services.Wrap(services.ErrExternalTool, "hugin", binEnblend,
				fmt.Sprintf("%s: no output at %s", opts.Prefix, tgt.out), nil)
		}
	}

	return outputs, nil
}

func (c *Client) run(ctx context.Context, subject string, command []string) error {
	if err := c.exec.Run(ctx, command[0], command[1:], nil); err != nil {
		return services.Wrap(services.ErrExternalTool, "hugin", command[0], subject, err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
