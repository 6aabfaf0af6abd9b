package main

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/boxvm/boxvm/pkg/compile"
	"github.com/boxvm/boxvm/pkg/vm"
)

const debounceDelay = 100 * time.Millisecond

func newExecCmd(a *app) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "exec <file.jbx>",
		Short: "Compile and run a user program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if watch {
				return a.watchLoop(cmd, args[0])
			}
			return a.execFile(cmd, args[0])
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "re-run when the file changes")

	return cmd
}

func (a *app) execFile(cmd *cobra.Command, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	name := strings.TrimSuffix(filepath.Base(path), ".jbx")
	prog, err := compile.CompileSource(name, string(src))
	if err != nil {
		return err
	}
	machine := vm.NewVM(prog)
	machine.Stdout = cmd.OutOrStdout()
	if sink := a.sink(); sink != nil {
		machine.Sink = sink
	}
	return machine.Execute()
}

// watchLoop runs the program, then re-runs it whenever the file changes.
// Compile and runtime errors are logged so editing can continue.
func (a *app) watchLoop(cmd *cobra.Command, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory: editors typically replace the file on save,
	// which would silently drop a watch on the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}
	target := filepath.Clean(path)

	runOnce := func() {
		if err := a.execFile(cmd, path); err != nil {
			log.Errorf("%v", err)
		}
	}
	runOnce()
	log.Infof("Watching %s for changes.", path)

	var debounce <-chan time.Time
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			debounce = time.After(debounceDelay)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Errorf("watcher: %v", err)
		case <-debounce:
			debounce = nil
			runOnce()
		}
	}
}
