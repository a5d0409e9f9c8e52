// Command coreedit is a small driver around the engine: it mounts a
// directory and prints the mirrored tree, or tails filesystem changes
// under a directory. It exists to exercise the manager end to end from
// a shell; the engine itself is the library underneath.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	coreedit "github.com/Theo-Muyard/Seed-core"
	"github.com/Theo-Muyard/Seed-core/command"
	"github.com/Theo-Muyard/Seed-core/corelog"
	"github.com/Theo-Muyard/Seed-core/vfstree"
)

// extraCommands collects platform-specific subcommands registered from
// init functions in the per-OS files.
var extraCommands []*cobra.Command

func main() {
	root := &cobra.Command{
		Use:           "coreedit",
		Short:         "line-structured text buffers plus a mirrored filesystem tree",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	verbose := root.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *verbose {
			corelog.SetLevel(corelog.LevelDebug)
		}
	}
	root.AddCommand(newOpenCommand(), newTailCommand())
	root.AddCommand(extraCommands...)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "coreedit:", err)
		os.Exit(1)
	}
}

// newOpenCommand mounts a directory through the manager and prints the
// mirrored tree.
func newOpenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "open <dir>",
		Short: "mount a directory and print its mirrored tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			abs, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			m, err := coreedit.New()
			if err != nil {
				return err
			}
			defer m.Clean()
			if err := m.Exec(&command.Command{
				ID:      command.OpenRoot,
				Payload: &command.OpenRootPayload{Path: abs},
			}); err != nil {
				return fmt.Errorf("open %s: %w", abs, err)
			}
			printDir(cmd, m.FS().Root(), 0)
			return m.Exec(&command.Command{ID: command.CloseRoot})
		},
	}
}

func printDir(cmd *cobra.Command, d *vfstree.Dir, depth int) {
	indent := strings.Repeat("  ", depth)
	cmd.Printf("%s%s/\n", indent, d.Name())
	for _, sub := range d.Subdirs() {
		printDir(cmd, sub, depth+1)
	}
	for _, f := range d.Files() {
		cmd.Printf("%s  %s\n", indent, f.Name())
	}
}

// newTailCommand streams raw change notifications for a directory
// tree. Unlike the watch subcommand it does not correlate rename
// pairs; it is the portable, lower-fidelity view.
func newTailCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tail <dir>",
		Short: "print raw change notifications for a directory tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			abs, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return fmt.Errorf("creating watcher: %w", err)
			}
			defer func() { _ = watcher.Close() }()

			addTree := func(dir string) error {
				return filepath.WalkDir(dir, func(path string, entry os.DirEntry, err error) error {
					if err != nil {
						return err
					}
					if entry.IsDir() {
						return watcher.Add(path)
					}
					return nil
				})
			}
			if err := addTree(abs); err != nil {
				return err
			}
			cmd.Printf("tailing %s\n", abs)
			for {
				select {
				case event, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					cmd.Printf("%-8s %s\n", strings.ToLower(event.Op.String()), event.Name)
					// new directories need their own watch
					if event.Has(fsnotify.Create) {
						if info, err := os.Lstat(event.Name); err == nil && info.IsDir() {
							if err := addTree(event.Name); err != nil {
								corelog.Errorf(nil, "watching %s: %v", event.Name, err)
							}
						}
					}
				case err, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					corelog.Errorf(nil, "%v", err)
				}
			}
		},
	}
}
