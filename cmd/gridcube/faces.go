package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gekko3d/gridcube/cube/core"
	"github.com/gekko3d/gridcube/cube/texture"
)

var (
	header = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	accent = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

func facesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "faces",
		Short: "list the face set with colors, ids and cell labels",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, closeLog, err := newSession(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeLog()

			faces := s.Faces()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, header.Render(fmt.Sprintf("%-4s %-7s %-8s %-36s %s", "face", "color", "hex", "asset", "cells")))
			for f := core.Face(0); f < core.FaceCount; f++ {
				tex := faces.Texture(f)
				swatch := lipgloss.NewStyle().Background(lipgloss.Color(texture.Hex(tex.BaseColor()))).Render("  ")
				cells := dim.Render("-")
				if tex.Interactive() {
					cells = accent.Render(labels(tex))
				}
				fmt.Fprintf(out, "%-4s %s %-5s %-8s %-36s %s\n",
					f, swatch, tex.Color(), texture.Hex(tex.BaseColor()), faces.AssetId(f), cells)
			}
			return nil
		},
	}
}

func labels(tex *texture.FaceTexture) string {
	var rows []string
	for row := 0; row < texture.GridSize; row++ {
		var sb strings.Builder
		for col := 0; col < texture.GridSize; col++ {
			c, _ := tex.Cell(row, col)
			sb.WriteRune(c.Label)
		}
		rows = append(rows, sb.String())
	}
	return strings.Join(rows, "/")
}
