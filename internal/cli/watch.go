package cli

import (
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/raveheart1/relnotes/internal/config"
	"github.com/raveheart1/relnotes/internal/errors"
	"github.com/raveheart1/relnotes/internal/git"
	"github.com/raveheart1/relnotes/internal/output"
)

// debounceWindow coalesces the burst of filesystem events git emits
// during a single ref update into one regeneration.
const debounceWindow = 500 * time.Millisecond

// watchAndGenerate regenerates the changelog whenever the repository's
// HEAD or refs change. It runs until the command context is cancelled.
func watchAndGenerate(cmd *cobra.Command, cfg *config.Configuration) error {
	if err := generateOnce(cmd, cfg); err != nil {
		if _, ok := err.(*ExitError); !ok {
			return err
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.WrapWithMessage(err, errors.Runtime, "starting filesystem watcher")
	}
	defer watcher.Close()

	for _, path := range watchPaths(repoFlag) {
		if err := watcher.Add(path); err != nil {
			return errors.WrapWithMessage(err, errors.Runtime, "watching "+path)
		}
	}

	banner := "Watching for history changes (Ctrl-C to stop)"
	if branch, err := git.CurrentBranch(repoFlag); err == nil && branch != "" {
		banner = "Watching " + branch + " for history changes (Ctrl-C to stop)"
	}
	output.PrintSuccess(cmd.OutOrStderr(), banner)

	var timer *time.Timer
	pending := make(chan struct{}, 1)
	for {
		select {
		case <-cmd.Context().Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevantEvent(event) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceWindow, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			output.PrintWarning(cmd.ErrOrStderr(), "watch error: "+err.Error())
		case <-pending:
			if err := generateOnce(cmd, cfg); err != nil {
				if _, ok := err.(*ExitError); ok {
					continue
				}
				return err
			}
		}
	}
}

// watchPaths returns the git bookkeeping locations whose changes signal
// new history: HEAD itself, the refs tree, and packed-refs.
func watchPaths(repoPath string) []string {
	gitDir := filepath.Join(repoPath, ".git")
	candidates := []string{
		filepath.Join(gitDir, "HEAD"),
		filepath.Join(gitDir, "refs", "heads"),
		filepath.Join(gitDir, "refs", "tags"),
		filepath.Join(gitDir, "packed-refs"),
	}
	paths := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			paths = append(paths, c)
		}
	}
	return paths
}

func relevantEvent(event fsnotify.Event) bool {
	return event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Rename)
}
