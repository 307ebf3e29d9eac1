package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gekko3d/gridcube/internal/replay"
)

func replayCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "replay script.yaml",
		Short: "play a scripted event sequence and print the selections",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := replay.Load(args[0])
			if err != nil {
				return err
			}
			s, closeLog, err := newSession(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeLog()

			res := replay.Run(s, script)
			out := cmd.OutOrStdout()
			for i, step := range res.Steps {
				switch {
				case step.Selected != nil:
					fmt.Fprintf(out, "%3d %-6s selected %s\n", i, step.Event.Type, step.Selected)
				case verbose:
					fmt.Fprintf(out, "%3d %-6s %s\n", i, step.Event.Type, step.State)
				}
			}
			fmt.Fprintf(out, "%d selections, final %s\n", len(res.Selections), res.Final)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print the state after every event")
	return cmd
}
