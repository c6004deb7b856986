package cli

import (
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/styleguard/styleguard/pkg/console"
	"github.com/styleguard/styleguard/pkg/constants"
)

// WatchAndCheck lints once, then re-lints on every Markdown change under
// the watched tree until interrupted. Rapid save bursts are debounced so
// editors that write twice do not trigger double runs.
func WatchAndCheck(opts CheckOptions) error {
	if opts.Path == "" {
		opts.Path = "."
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watchTree(watcher, opts.Path); err != nil {
		return err
	}

	fmt.Println(console.FormatInfoMessage(fmt.Sprintf("Watching for changes in %s...", opts.Path)))
	if opts.Verbose {
		fmt.Println(console.FormatVerboseMessage("Press Ctrl+C to stop watching"))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	runOnce := func() {
		if _, err := RunCheck(opts); err != nil {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
		}
	}
	runOnce()

	const debounceDelay = 300 * time.Millisecond
	var debounceTimer *time.Timer
	rerun := make(chan struct{}, 1)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher channel closed")
			}

			if event.Has(fsnotify.Create) {
				// New directories need their own watch registration
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watchTree(watcher, event.Name)
					continue
				}
			}

			ext := strings.ToLower(filepath.Ext(event.Name))
			if ext != ".md" && ext != ".markdown" && filepath.Base(event.Name) != constants.ConfigFileName {
				continue
			}

			if opts.Verbose {
				fmt.Println(console.FormatVerboseMessage(fmt.Sprintf("Detected change: %s (%s)", event.Name, event.Op.String())))
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceDelay, func() {
				select {
				case rerun <- struct{}{}:
				default:
				}
			})

		case <-rerun:
			runOnce()

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			if opts.Verbose {
				fmt.Println(console.FormatWarningMessage(fmt.Sprintf("Watcher error: %v", err)))
			}

		case <-sigChan:
			fmt.Println()
			fmt.Println(console.FormatInfoMessage("Stopped watching"))
			return nil
		}
	}
}

// watchTree registers root and every subdirectory with the watcher,
// since fsnotify watches are not recursive.
func watchTree(watcher *fsnotify.Watcher, root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", root, err)
	}
	if !info.IsDir() {
		root = filepath.Dir(root)
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if name := d.Name(); name != "." && strings.HasPrefix(name, ".") && path != root {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", path, err)
		}
		return nil
	})
}
