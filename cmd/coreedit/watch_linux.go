//go:build linux

package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Theo-Muyard/Seed-core/watch"
)

func init() {
	extraCommands = append(extraCommands, newWatchCommand())
}

// newWatchCommand streams semantic events: renames inside the tree are
// reported as single move events instead of a remove/create pair.
func newWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <dir>",
		Short: "print semantic change events with rename correlation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			abs, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			w, err := watch.New(abs)
			if err != nil {
				return err
			}
			defer func() { _ = w.Close() }()
			if err := w.AddRecursive(abs); err != nil {
				return err
			}
			cmd.Printf("watching %s\n", abs)
			for {
				if err := w.Analyze(); err != nil {
					return err
				}
				for ev, ok := w.Pop(); ok; ev, ok = w.Pop() {
					switch ev.Type {
					case watch.EventMove:
						cmd.Printf("move     %s -> %s (%s)\n", ev.Path, ev.NewPath, ev.CorrelationID)
					case watch.EventOverflow:
						cmd.Println("overflow: event queue lost records, resync required")
					default:
						cmd.Printf("%-8s %s\n", ev.Type, ev.Path)
					}
				}
				if w.NeedsResync() {
					return fmt.Errorf("watched tree changed underneath %s, resync required", abs)
				}
			}
		},
	}
}
