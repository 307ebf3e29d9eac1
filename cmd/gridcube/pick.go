package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gekko3d/gridcube/cube/core"
	"github.com/gekko3d/gridcube/cube/picking"
)

func pickCmd() *cobra.Command {
	var (
		width, height float64
		dragX, dragY  float64
		wheel         float64
	)
	cmd := &cobra.Command{
		Use:   "pick x y",
		Short: "resolve a pointer position to a face, uv and grid cell",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("x: %w", err)
			}
			y, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("y: %w", err)
			}

			s, closeLog, err := newSession(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeLog()
			s.Resize(core.ElementRect{Width: width, Height: height})
			if dragX != 0 || dragY != 0 {
				s.PointerDown(0, 0)
				s.PointerMove(dragX, dragY)
				s.PointerUp()
			}
			if wheel != 0 {
				s.Wheel(wheel)
			}

			out := cmd.OutOrStdout()
			res, err := s.PickAt(x, y)
			var oob *picking.OutOfBoundsError
			if errors.As(err, &oob) {
				fmt.Fprintln(out, "outside element")
				return nil
			}
			if err != nil {
				return err
			}
			if !res.Hit {
				fmt.Fprintln(out, "no hit")
				return nil
			}
			fmt.Fprintf(out, "face %s uv (%.4f, %.4f) t %.3f\n", res.Face, res.UV.X(), res.UV.Y(), res.T)
			if res.HasCell {
				fmt.Fprintf(out, "cell %s\n", res.Cell)
			} else {
				fmt.Fprintln(out, "no selectable cell")
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&width, "width", 800, "element width")
	cmd.Flags().Float64Var(&height, "height", 600, "element height")
	cmd.Flags().Float64Var(&dragX, "drag-x", 0, "rotate first by dragging this many pixels right")
	cmd.Flags().Float64Var(&dragY, "drag-y", 0, "rotate first by dragging this many pixels down")
	cmd.Flags().Float64Var(&wheel, "wheel", 0, "wheel delta to apply before picking")
	return cmd
}
