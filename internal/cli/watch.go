package cli

import (
	"context"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/codedigest/internal/discover"
	"github.com/temirov/codedigest/internal/resolve"
	"github.com/temirov/codedigest/internal/types"
	"github.com/temirov/codedigest/internal/watch"
)

const (
	watchStartedMessage  = "watching for changes; press Ctrl+C to stop"
	watchRebuildMessage  = "rebuilding document"
	watchRebuildFailed   = "rebuild failed"
	logFieldChangedPaths = "changed"
	logFieldWatchedRoots = "roots"
)

// watchAndDeliver re-runs digest after every batch of relevant changes until ctx ends.
// Rebuild failures are logged and do not stop watching.
func watchAndDeliver(ctx context.Context, logger *zap.Logger, arguments []string, options types.AnalysisOptions, digest func() error) error {
	roots := watchRoots(resolve.Resolve(arguments, logger), options, logger)
	logger.Info(watchStartedMessage, zap.Int(logFieldWatchedRoots, len(roots)))
	return watch.NewWatcher(logger, watch.DefaultDebounce).Run(ctx, roots, func(changedPaths []string) {
		logger.Info(watchRebuildMessage, zap.Strings(logFieldChangedPaths, changedPaths))
		if digestError := digest(); digestError != nil && ctx.Err() == nil {
			logger.Warn(watchRebuildFailed, zap.Error(digestError))
		}
	})
}

// watchRoots maps the resolved inputs onto watch roots. Directory inputs share the
// ignore rules of discovery. Explicit files are watched through their parent directory,
// limited to the named files. Excluded paths, such as the output document, never
// trigger a rebuild.
func watchRoots(resolution resolve.Resolution, options types.AnalysisOptions, logger *zap.Logger) []watch.Root {
	discoverOptions := discover.Options{
		Exclude:       options.Exclude,
		UseGitignore:  options.UseGitignore,
		UseIgnoreFile: options.UseIgnoreFile,
		ExcludePaths:  options.ExcludePaths,
	}
	excludedFiles := map[string]struct{}{}
	for _, excludedPath := range options.ExcludePaths {
		excludedFiles[filepath.Clean(excludedPath)] = struct{}{}
	}
	roots := make([]watch.Root, 0, len(resolution.Directories)+len(resolution.Files))
	for _, directoryPath := range resolution.Directories {
		roots = append(roots, watch.Root{
			Path:   directoryPath,
			Ignore: discover.NewIgnoreFilter(directoryPath, discoverOptions, logger),
		})
	}

	var parentOrder []string
	filesByParent := map[string]map[string]struct{}{}
	for _, filePath := range resolution.Files {
		if _, excluded := excludedFiles[filePath]; excluded {
			continue
		}
		parentPath := filepath.Dir(filePath)
		if _, seen := filesByParent[parentPath]; !seen {
			filesByParent[parentPath] = map[string]struct{}{}
			parentOrder = append(parentOrder, parentPath)
		}
		filesByParent[parentPath][filePath] = struct{}{}
	}
	for _, parentPath := range parentOrder {
		roots = append(roots, watch.Root{
			Path:   parentPath,
			Ignore: explicitFileFilter(parentPath, filesByParent[parentPath]),
		})
	}
	return roots
}

func explicitFileFilter(parentPath string, watchedFiles map[string]struct{}) discover.IgnoreFilter {
	return func(absolutePath string, isDirectory bool) bool {
		if isDirectory {
			return absolutePath != parentPath
		}
		_, watched := watchedFiles[absolutePath]
		return !watched
	}
}
