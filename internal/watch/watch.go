// Package watch reports batches of file changes beneath a set of directories.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/temirov/codedigest/internal/discover"
	"github.com/temirov/codedigest/internal/utils"
)

// DefaultDebounce is the quiet period that closes a batch of changes.
const DefaultDebounce = 300 * time.Millisecond

const (
	logMessageWatching     = "watching for changes"
	logMessageAddFailed    = "cannot watch directory"
	logMessageChangesFound = "changes detected"
	logMessageWatchError   = "watcher reported an error"
	logFieldDirectory      = "directory"
	logFieldPaths          = "paths"
	relevantOperations     = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename
)

// Root is a directory watched recursively. Ignore, when set, excludes paths
// beneath it from both watching and change reports.
type Root struct {
	Path   string
	Ignore discover.IgnoreFilter
}

// Watcher delivers debounced change batches for its roots.
type Watcher struct {
	logger   *zap.Logger
	debounce time.Duration
}

// NewWatcher constructs a Watcher. A non-positive debounce selects DefaultDebounce.
func NewWatcher(logger *zap.Logger, debounce time.Duration) Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return Watcher{logger: utils.LoggerOrNop(logger), debounce: debounce}
}

// Run watches roots until ctx is cancelled, calling onChange with the sorted,
// de-duplicated paths of every batch. Directories created while watching are
// added. Errors reported by the notifier, such as a queue overflow, are logged
// and watching continues. Cancellation is not an error.
func (watcher Watcher) Run(ctx context.Context, roots []Root, onChange func(changedPaths []string)) error {
	notifier, notifierError := fsnotify.NewWatcher()
	if notifierError != nil {
		return notifierError
	}
	defer notifier.Close()

	for _, root := range roots {
		watcher.addRecursive(notifier, root, filepath.Clean(root.Path))
	}
	return watcher.consume(ctx, notifier, notifier.Events, notifier.Errors, roots, onChange)
}

// directoryAdder registers a directory with the underlying notifier.
type directoryAdder interface {
	Add(name string) error
}

func (watcher Watcher) consume(ctx context.Context, adder directoryAdder, events <-chan fsnotify.Event, notifierErrors <-chan error, roots []Root, onChange func(changedPaths []string)) error {
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	pendingPaths := map[string]struct{}{}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			eventPath := filepath.Clean(event.Name)
			root, watched := rootFor(roots, eventPath)
			if !watched {
				continue
			}
			info, statError := os.Stat(eventPath)
			isDirectory := statError == nil && info.IsDir()
			if root.Ignore != nil && root.Ignore(eventPath, isDirectory) {
				continue
			}
			if event.Op&fsnotify.Create != 0 && isDirectory {
				watcher.addRecursive(adder, root, eventPath)
			}
			if event.Op&relevantOperations == 0 {
				continue
			}
			pendingPaths[eventPath] = struct{}{}
			timer.Reset(watcher.debounce)
		case <-timer.C:
			if len(pendingPaths) == 0 {
				continue
			}
			changedPaths := make([]string, 0, len(pendingPaths))
			for changedPath := range pendingPaths {
				changedPaths = append(changedPaths, changedPath)
			}
			sort.Strings(changedPaths)
			pendingPaths = map[string]struct{}{}
			watcher.logger.Debug(logMessageChangesFound, zap.Strings(logFieldPaths, changedPaths))
			onChange(changedPaths)
		case watchError, ok := <-notifierErrors:
			if !ok {
				return nil
			}
			watcher.logger.Warn(logMessageWatchError, zap.Error(watchError))
		}
	}
}

func (watcher Watcher) addRecursive(adder directoryAdder, root Root, startPath string) {
	walkError := filepath.WalkDir(startPath, func(walkedPath string, entry fs.DirEntry, accessError error) error {
		if accessError != nil {
			watcher.logger.Warn(logMessageAddFailed, zap.String(logFieldDirectory, walkedPath), zap.Error(accessError))
			if entry == nil || entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !entry.IsDir() {
			return nil
		}
		if root.Ignore != nil && root.Ignore(walkedPath, true) {
			return filepath.SkipDir
		}
		if addError := adder.Add(walkedPath); addError != nil {
			watcher.logger.Warn(logMessageAddFailed, zap.String(logFieldDirectory, walkedPath), zap.Error(addError))
			return nil
		}
		watcher.logger.Debug(logMessageWatching, zap.String(logFieldDirectory, walkedPath))
		return nil
	})
	if walkError != nil {
		watcher.logger.Warn(logMessageAddFailed, zap.String(logFieldDirectory, startPath), zap.Error(walkError))
	}
}

// rootFor returns the deepest root containing absolutePath.
func rootFor(roots []Root, absolutePath string) (Root, bool) {
	var selected Root
	found := false
	for _, root := range roots {
		relativePath := utils.RelativePathOrSelf(absolutePath, root.Path)
		if utils.IsOutsideRoot(relativePath) {
			continue
		}
		if !found || len(root.Path) > len(selected.Path) {
			selected = root
			found = true
		}
	}
	return selected, found
}
