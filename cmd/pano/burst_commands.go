package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"pano/internal/burst"
	"pano/internal/catalog"
	"pano/internal/workflow"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List detected bursts, detecting them on first run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withProject(func(cctx context.Context, m *workflow.Manager) error {
				collection, err := m.Bursts(cctx)
				if err != nil {
					return err
				}
				return printBursts(cmd, m, cctx, collection)
			})
		},
	}
}

func newScanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Re-run burst detection from scratch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withProject(func(cctx context.Context, m *workflow.Manager) error {
				collection, err := m.Rescan(cctx)
				if err != nil {
					return err
				}
				return printBursts(cmd, m, cctx, collection)
			})
		},
	}
}

func newRejectCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reject <index>...",
		Short: "Remove bursts from the collection by index",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			indices, err := parseIndices(args)
			if err != nil {
				return err
			}
			return ctx.withProject(func(cctx context.Context, m *workflow.Manager) error {
				remaining, err := m.Reject(cctx, indices)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d burst(s) remaining\n", len(remaining))
				return nil
			})
		},
	}
}

func newStitchCommand(ctx *commandContext) *cobra.Command {
	var style string
	var projections []string
	var adjust bool

	cmd := &cobra.Command{
		Use:   "stitch <index>",
		Short: "Stitch one burst into panoramas",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			indices, err := parseIndices(args)
			if err != nil {
				return err
			}
			return ctx.withProject(func(cctx context.Context, m *workflow.Manager) error {
				outputs, err := m.Stitch(cctx, indices[0], workflow.StitchOptions{
					Style:       style,
					Projections: projections,
					Adjust:      adjust,
				})
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				for _, output := range outputs {
					fmt.Fprintln(out, output)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&style, "style", "s", "", "darktable style applied while converting frames")
	cmd.Flags().StringArrayVarP(&projections, "projection", "p", nil, "Projection(s) to render (repeatable)")
	cmd.Flags().BoolVarP(&adjust, "adjust", "a", false, "Open the interactive hugin editor before rendering")
	return cmd
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <index>",
		Short: "Open a burst's panoramas, or its frames, in the viewer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			indices, err := parseIndices(args)
			if err != nil {
				return err
			}
			return ctx.withProject(func(cctx context.Context, m *workflow.Manager) error {
				return m.Show(cctx, indices[0])
			})
		},
	}
}

func newClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Forget the detected bursts without rescanning",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withProject(func(cctx context.Context, m *workflow.Manager) error {
				if err := m.Clear(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Burst collection cleared; the next list or scan re-detects")
				return nil
			})
		},
	}
}

func printBursts(cmd *cobra.Command, m *workflow.Manager, cctx context.Context, collection []burst.Burst) error {
	out := cmd.OutOrStdout()
	if len(collection) == 0 {
		fmt.Fprintln(out, "No bursts detected")
		return nil
	}

	// Capture times come from the catalog; a burst loaded from an older
	// artifact may predate the current catalog and shows blanks.
	photos, err := m.Photos(cctx)
	if err != nil {
		return err
	}
	byName := make(map[string]catalog.Photo, len(photos))
	for _, p := range photos {
		byName[p.Name] = p
	}

	rows := make([][]string, 0, len(collection))
	for i, b := range collection {
		rows = append(rows, []string{
			strconv.Itoa(i),
			b.Name(),
			strconv.Itoa(b.Len()),
			burstStart(b, byName),
			burstSpan(b, byName),
		})
	}
	writeTable(out, []string{"#", "Burst", "Frames", "Start", "Span"}, rows, 0, 2)
	return nil
}

func burstStart(b burst.Burst, byName map[string]catalog.Photo) string {
	first, ok := byName[b.Frames[0].Name]
	if !ok {
		return ""
	}
	return first.CapturedAt.Format("2006-01-02 15:04:05")
}

func burstSpan(b burst.Burst, byName map[string]catalog.Photo) string {
	first, okFirst := byName[b.Frames[0].Name]
	last, okLast := byName[b.Frames[b.Len()-1].Name]
	if !okFirst || !okLast {
		return ""
	}
	return last.CapturedAt.Sub(first.CapturedAt).Truncate(time.Second).String()
}
