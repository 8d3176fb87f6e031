package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"pano/internal/workflow"
)

func newPhotosCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "photos",
		Short: "List catalogued photos and their derived outputs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withProject(func(cctx context.Context, m *workflow.Manager) error {
				photos, err := m.Photos(cctx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(photos) == 0 {
					fmt.Fprintln(out, "No photos catalogued; run pano list or pano scan first")
					return nil
				}
				rows := make([][]string, 0, len(photos))
				for _, p := range photos {
					rows = append(rows, []string{
						p.Name,
						p.CapturedAt.Format("2006-01-02 15:04:05"),
						yesNo(p.HasJpeg),
						yesNo(p.HasPano),
						yesNo(p.HasXmp),
					})
				}
				writeTable(out, []string{"Photo", "Captured", "Jpeg", "Pano", "Xmp"}, rows)
				return nil
			})
		},
	}
}

func newDiscardCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "discard <photo>...",
		Short: "Move photos to the trash and drop them from their bursts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withProject(func(cctx context.Context, m *workflow.Manager) error {
				out := cmd.OutOrStdout()
				for _, name := range args {
					if err := m.Discard(cctx, name); err != nil {
						return err
					}
					fmt.Fprintf(out, "Discarded %s\n", name)
				}
				return nil
			})
		},
	}
}

func newPhotoCommand(ctx *commandContext) *cobra.Command {
	photoCmd := &cobra.Command{
		Use:   "photo",
		Short: "Work with individual photos",
	}

	photoCmd.AddCommand(newPhotoOpenCommand(ctx))
	photoCmd.AddCommand(newPhotoEditCommand(ctx))
	photoCmd.AddCommand(newPhotoJpegCommand(ctx))
	return photoCmd
}

func newPhotoOpenCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "open <photo>",
		Short: "Open a photo in the viewer, preferring its rendered JPEG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withProject(func(cctx context.Context, m *workflow.Manager) error {
				return m.OpenPhoto(cctx, args[0])
			})
		},
	}
}

func newPhotoEditCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <photo>",
		Short: "Open a photo in the darktable editor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withProject(func(cctx context.Context, m *workflow.Manager) error {
				return m.EditPhoto(cctx, args[0])
			})
		},
	}
}

func newPhotoJpegCommand(ctx *commandContext) *cobra.Command {
	var style string
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "jpeg <photo>",
		Short: "Render a photo into the Jpeg folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withProject(func(cctx context.Context, m *workflow.Manager) error {
				dst, err := m.ConvertJpeg(cctx, args[0], style, overwrite)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), dst)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&style, "style", "s", "", "darktable style to apply")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing JPEG")
	return cmd
}
