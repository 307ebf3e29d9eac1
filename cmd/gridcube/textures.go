package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gekko3d/gridcube/cube/core"
)

func texturesCmd() *cobra.Command {
	var (
		outDir  string
		preview int
	)
	cmd := &cobra.Command{
		Use:   "textures",
		Short: "write the six face textures as png",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, closeLog, err := newSession(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeLog()

			faces := s.Faces()
			paths, err := faces.WritePNGs(outDir)
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			if preview <= 0 {
				return nil
			}
			for i, p := range paths {
				base := filepath.Base(p)
				tex := faces.Texture(core.Face(i))
				big, err := tex.Resample(preview)
				if err != nil {
					return err
				}
				out := filepath.Join(outDir, strings.TrimSuffix(base, ".png")+fmt.Sprintf("_%d.png", preview))
				if err := big.WritePNG(out); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "textures", "output directory")
	cmd.Flags().IntVar(&preview, "preview", 0, "also write nearest-neighbour previews at this size")
	return cmd
}
