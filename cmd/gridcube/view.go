package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/gekko3d/gridcube/internal/termview"
)

func viewCmd() *cobra.Command {
	var fps int
	cmd := &cobra.Command{
		Use:   "view",
		Short: "interactive terminal viewer (mouse: drag, click, scroll)",
		RunE: func(cmd *cobra.Command, args []string) error {
			// The viewer owns the terminal; logs only go to --log.
			s, closeLog, err := newSession(io.Discard)
			if err != nil {
				return err
			}
			defer closeLog()
			return termview.Run(s, fps)
		},
	}
	cmd.Flags().IntVar(&fps, "fps", 30, "frame rate")
	return cmd
}
