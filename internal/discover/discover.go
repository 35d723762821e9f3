// Package discover expands resolved inputs into the ordered list of candidate files.
package discover

import (
	"io/fs"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/temirov/codedigest/internal/config"
	"github.com/temirov/codedigest/internal/resolve"
	"github.com/temirov/codedigest/internal/utils"
)

const (
	logMessageWalkError    = "cannot read directory"
	logMessageIgnoreFile   = "cannot load ignore file"
	logMessageIgnoredPath  = "path ignored"
	logMessageNotIncluded  = "file not matched by include patterns"
	logMessageNotRecent    = "file outside recent window"
	logMessageUnknownTime  = "cannot determine modification time"
	logMessageRulesLoaded  = "ignore rules loaded"
	logMessageWalkComplete = "directory discovered"
	logMessageExcludedPath = "path excluded"
	hoursPerDay            = 24
)

// Options configures candidate discovery.
type Options struct {
	Include       []string
	Exclude       []string
	RecentDays    int
	UseGitignore  bool
	UseIgnoreFile bool
	// ExcludePaths are absolute paths skipped wherever they appear, including
	// explicit inputs.
	ExcludePaths []string
	// Now is the evaluation time of the recency window; zero means time.Now.
	Now time.Time
}

// Candidate is a file selected for admission.
type Candidate struct {
	AbsolutePath string
	DisplayPath  string
	Explicit     bool
}

// Discover walks every directory input in lexical order and then appends the explicit
// file inputs. Explicit files bypass ignore, include and recency filtering.
// Unreadable directories are logged and contribute no candidates.
func Discover(resolution resolve.Resolution, options Options, logger *zap.Logger) []Candidate {
	logger = utils.LoggerOrNop(logger)
	evaluationTime := options.Now
	if evaluationTime.IsZero() {
		evaluationTime = time.Now()
	}
	inclusion := newIncludeMatcher(options.Include, logger)
	excluded := newPathSet(options.ExcludePaths)

	var candidates []Candidate
	for _, directoryPath := range resolution.Directories {
		directoryCandidates := discoverDirectory(resolution, directoryPath, inclusion, excluded, options, logger)
		for _, candidate := range directoryCandidates {
			if options.RecentDays > 0 && !isRecent(candidate.AbsolutePath, options.RecentDays, evaluationTime, logger) {
				continue
			}
			candidates = append(candidates, candidate)
		}
		logger.Debug(logMessageWalkComplete, zap.String(logFieldDirectory, directoryPath), zap.Int(logFieldCandidates, len(directoryCandidates)))
	}
	for _, filePath := range resolution.Files {
		if excluded.contains(filePath) {
			logger.Debug(logMessageExcludedPath, zap.String(logFieldPath, filePath))
			continue
		}
		candidates = append(candidates, Candidate{
			AbsolutePath: filePath,
			DisplayPath:  resolution.DisplayPath(filePath),
			Explicit:     true,
		})
	}
	return candidates
}

// loadIgnoreMatcher combines the built-in table, the ignore files of rootPath and the
// user exclusions into one matcher.
func loadIgnoreMatcher(rootPath string, options Options, logger *zap.Logger) ignoreMatcher {
	projectPatterns, loadError := config.LoadCombinedIgnorePatterns(rootPath, options.Exclude, options.UseGitignore, options.UseIgnoreFile)
	if loadError != nil {
		logger.Warn(logMessageIgnoreFile, zap.String(logFieldDirectory, rootPath), zap.Error(loadError))
		projectPatterns = options.Exclude
	}
	ignorePatterns := make([]string, 0, len(DefaultIgnorePatterns)+len(projectPatterns))
	ignorePatterns = append(ignorePatterns, DefaultIgnorePatterns...)
	ignorePatterns = append(ignorePatterns, projectPatterns...)
	ignoring := newIgnoreMatcher(utils.DeduplicatePatterns(ignorePatterns), logger)
	logger.Debug(logMessageRulesLoaded, zap.String(logFieldDirectory, rootPath), zap.Int(logFieldIgnoreCount, len(ignoring.rules)))
	return ignoring
}

// IgnoreFilter reports whether an absolute path is excluded by the ignore rules of a directory input.
type IgnoreFilter func(absolutePath string, isDirectory bool) bool

// NewIgnoreFilter loads the ignore rules of rootPath the same way Discover does.
// The root itself and paths outside it are never ignored.
func NewIgnoreFilter(rootPath string, options Options, logger *zap.Logger) IgnoreFilter {
	ignoring := loadIgnoreMatcher(rootPath, options, utils.LoggerOrNop(logger))
	excluded := newPathSet(options.ExcludePaths)
	return func(absolutePath string, isDirectory bool) bool {
		if excluded.contains(absolutePath) {
			return true
		}
		relativePath := utils.RelativePathOrSelf(absolutePath, rootPath)
		if relativePath == utils.CurrentDirectory || utils.IsOutsideRoot(relativePath) {
			return false
		}
		return ignoring.Matches(relativePath, isDirectory)
	}
}

func discoverDirectory(resolution resolve.Resolution, rootPath string, inclusion includeMatcher, excluded pathSet, options Options, logger *zap.Logger) []Candidate {
	ignoring := loadIgnoreMatcher(rootPath, options, logger)

	var candidates []Candidate
	walkError := filepath.WalkDir(rootPath, func(walkedPath string, directoryEntry fs.DirEntry, accessError error) error {
		if accessError != nil {
			logger.Warn(logMessageWalkError, zap.String(logFieldPath, walkedPath), zap.Error(accessError))
			if directoryEntry == nil || directoryEntry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		relativePath := utils.RelativePathOrSelf(walkedPath, rootPath)
		if relativePath == utils.CurrentDirectory {
			return nil
		}
		isDirectory := directoryEntry.IsDir()
		if excluded.contains(walkedPath) {
			logger.Debug(logMessageExcludedPath, zap.String(logFieldPath, relativePath))
			if isDirectory {
				return filepath.SkipDir
			}
			return nil
		}
		if ignoring.Matches(relativePath, isDirectory) {
			logger.Debug(logMessageIgnoredPath, zap.String(logFieldPath, relativePath))
			if isDirectory {
				return filepath.SkipDir
			}
			return nil
		}
		if isDirectory {
			return nil
		}
		if !directoryEntry.Type().IsRegular() && directoryEntry.Type()&fs.ModeSymlink == 0 {
			return nil
		}
		if !inclusion.Matches(relativePath) {
			logger.Debug(logMessageNotIncluded, zap.String(logFieldPath, relativePath))
			return nil
		}
		candidates = append(candidates, Candidate{
			AbsolutePath: walkedPath,
			DisplayPath:  resolution.DisplayPath(walkedPath),
		})
		return nil
	})
	if walkError != nil {
		logger.Warn(logMessageWalkError, zap.String(logFieldDirectory, rootPath), zap.Error(walkError))
	}
	return candidates
}

type pathSet map[string]struct{}

func newPathSet(paths []string) pathSet {
	set := make(pathSet, len(paths))
	for _, excludedPath := range paths {
		set[filepath.Clean(excludedPath)] = struct{}{}
	}
	return set
}

func (set pathSet) contains(absolutePath string) bool {
	if len(set) == 0 {
		return false
	}
	_, found := set[filepath.Clean(absolutePath)]
	return found
}

func isRecent(absolutePath string, recentDays int, evaluationTime time.Time, logger *zap.Logger) bool {
	modifiedAt, timeError := lastChangeTime(absolutePath)
	if timeError != nil {
		logger.Debug(logMessageUnknownTime, zap.String(logFieldPath, absolutePath), zap.Error(timeError))
		return false
	}
	windowStart := evaluationTime.Add(-time.Duration(recentDays) * hoursPerDay * time.Hour)
	if modifiedAt.Before(windowStart) {
		logger.Debug(logMessageNotRecent, zap.String(logFieldPath, absolutePath), zap.Time(logFieldModifiedAt, modifiedAt), zap.Int(logFieldRecentDays, recentDays))
		return false
	}
	return true
}
