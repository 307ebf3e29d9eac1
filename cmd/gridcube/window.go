package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gekko3d/gridcube"
	"github.com/gekko3d/gridcube/cube/manip"
	"github.com/gekko3d/gridcube/cube/platform"
)

func windowCmd() *cobra.Command {
	var (
		width, height int
		fps           int
	)
	cmd := &cobra.Command{
		Use:   "window",
		Short: "drive a session from a native window's mouse input",
		Long: "Opens a GLFW window and feeds its mouse input to a session. Nothing is drawn;\n" +
			"the title bar shows orientation, zoom and the last selected cell.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, closeLog, err := newSession(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeLog()

			win, err := platform.NewWindow(width, height, "gridcube")
			if err != nil {
				return err
			}
			defer win.Destroy()

			if err := s.Start(platform.NewWindowSource(win)); err != nil {
				return err
			}
			defer s.Stop()

			last := "-"
			s.OnCellSelected(func(e manip.CellSelected) {
				last = string(e.Label)
				fmt.Fprintf(cmd.OutOrStdout(), "selected %s\n", e)
			})

			if fps <= 0 {
				fps = 60
			}
			frame := time.Second / time.Duration(fps)
			clock := gridcube.NewClock(time.Now())
			for !win.ShouldClose() {
				win.PollEvents()
				s.Tick(clock.Advance(time.Now()))

				st := s.State()
				win.SetTitle(fmt.Sprintf("gridcube  rot %.2f %.2f  dist %.2f  selected %s",
					st.AngleX, st.AngleY, st.Distance, last))
				time.Sleep(frame)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", 800, "window width")
	cmd.Flags().IntVar(&height, "height", 600, "window height")
	cmd.Flags().IntVar(&fps, "fps", 60, "tick rate")
	return cmd
}
