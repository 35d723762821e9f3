// Package resolve turns user-supplied input paths into the primary path and the
// directory and file inputs of an analysis run.
package resolve

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/codedigest/internal/utils"
)

const (
	logMessageInputMissing    = "input path does not exist"
	logMessageInputUnreadable = "input path is not accessible"
	logMessageInputAbsolute   = "cannot resolve input path"
	logMessageWorkingDir      = "cannot determine working directory"
	logFieldPath              = "path"
)

// Resolution is the outcome of resolving the inputs of one run.
// Every path is absolute and cleaned.
type Resolution struct {
	PrimaryPath string
	Directories []string
	Files       []string
	// DisplayRoot is the deepest directory containing the primary path and every
	// input. Display paths are relative to it; empty means PrimaryPath.
	DisplayRoot string
}

// Resolve classifies inputs into directories and files and chooses the primary path:
// the first existing directory, else the parent of the first existing file, else the
// current working directory. Inputs that cannot be resolved are logged and skipped.
func Resolve(inputs []string, logger *zap.Logger) Resolution {
	logger = utils.LoggerOrNop(logger)
	seen := make(map[string]struct{})
	var resolution Resolution
	var firstFileParent string
	for _, inputPath := range inputs {
		absolutePath, absolutePathError := filepath.Abs(inputPath)
		if absolutePathError != nil {
			logger.Error(logMessageInputAbsolute, zap.String(logFieldPath, inputPath), zap.Error(absolutePathError))
			continue
		}
		cleanPath := filepath.Clean(absolutePath)
		if _, duplicate := seen[cleanPath]; duplicate {
			continue
		}
		info, fileStatusError := os.Stat(cleanPath)
		if fileStatusError != nil {
			if os.IsNotExist(fileStatusError) {
				logger.Error(logMessageInputMissing, zap.String(logFieldPath, inputPath))
			} else {
				logger.Error(logMessageInputUnreadable, zap.String(logFieldPath, inputPath), zap.Error(fileStatusError))
			}
			continue
		}
		seen[cleanPath] = struct{}{}
		if info.IsDir() {
			if resolution.PrimaryPath == "" {
				resolution.PrimaryPath = cleanPath
			}
			resolution.Directories = append(resolution.Directories, cleanPath)
			continue
		}
		if firstFileParent == "" {
			firstFileParent = filepath.Dir(cleanPath)
		}
		resolution.Files = append(resolution.Files, cleanPath)
	}

	if resolution.PrimaryPath == "" {
		resolution.PrimaryPath = firstFileParent
	}
	if resolution.PrimaryPath == "" {
		workingDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			logger.Error(logMessageWorkingDir, zap.Error(workingDirectoryError))
			workingDirectory = utils.CurrentDirectory
		}
		resolution.PrimaryPath = filepath.Clean(workingDirectory)
	}
	resolution.DisplayRoot = resolution.PrimaryPath
	for _, inputPath := range append(append([]string{}, resolution.Directories...), resolution.Files...) {
		resolution.DisplayRoot = utils.CommonAncestor(resolution.DisplayRoot, inputPath)
	}
	return resolution
}

// DisplayPath converts an absolute file path into the forward-slash path shown in the
// document, relative to the display root. Distinct files always get distinct paths;
// a file outside the display root keeps its absolute form.
func (resolution Resolution) DisplayPath(absolutePath string) string {
	displayRoot := resolution.DisplayRoot
	if displayRoot == "" {
		displayRoot = resolution.PrimaryPath
	}
	relativePath := utils.RelativePathOrSelf(absolutePath, displayRoot)
	if utils.IsOutsideRoot(relativePath) {
		return filepath.ToSlash(filepath.Clean(absolutePath))
	}
	return relativePath
}

// Name returns the base name of the primary path, used as the document title.
func (resolution Resolution) Name() string {
	return filepath.Base(resolution.PrimaryPath)
}
