// Package utils contains general helper functions used across codedigest.
package utils

import (
	"path"
	"path/filepath"
	"strings"
)

// Ignore file constants used across the project.
const (
	// IgnoreFileName is the name of the project's tool-neutral ignore file.
	IgnoreFileName = ".ignore"
	// GitIgnoreFileName is the name of the Git ignore file.
	GitIgnoreFileName = ".gitignore"
	// CurrentDirectory is the relative path of a processing root.
	CurrentDirectory = "."
)

// DeduplicatePatterns removes duplicate patterns from a slice while preserving order.
// The first occurrence of each unique pattern is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if _, exists := encounteredPatterns[pattern]; !exists {
			encounteredPatterns[pattern] = struct{}{}
			result = append(result, pattern)
		}
	}
	return result
}

// ContainsString checks if a slice of strings contains a specific target string.
func ContainsString(stringSlice []string, targetString string) bool {
	for _, currentString := range stringSlice {
		if currentString == targetString {
			return true
		}
	}
	return false
}

// RelativePathOrSelf calculates the forward-slash path of fullPath relative to root.
// Returns "." when both resolve to the same directory and the cleaned fullPath
// when no relative form exists.
func RelativePathOrSelf(fullPath, root string) string {
	cleanPath := filepath.Clean(fullPath)
	absoluteRoot, err := filepath.Abs(root)
	if err != nil {
		return filepath.ToSlash(cleanPath)
	}
	cleanAbsoluteRoot := filepath.Clean(absoluteRoot)

	if cleanPath == cleanAbsoluteRoot {
		return CurrentDirectory
	}

	relativePath, relErr := filepath.Rel(cleanAbsoluteRoot, cleanPath)
	if relErr != nil {
		return filepath.ToSlash(cleanPath)
	}
	return filepath.ToSlash(relativePath)
}

// IsOutsideRoot reports whether a path returned by RelativePathOrSelf escapes its root.
func IsOutsideRoot(relativePath string) bool {
	return relativePath == ".." || strings.HasPrefix(relativePath, "../") || path.IsAbs(relativePath)
}

// CommonAncestor returns the deepest directory containing both absolute paths.
func CommonAncestor(firstPath, secondPath string) string {
	ancestor := filepath.Clean(firstPath)
	target := filepath.Clean(secondPath)
	for {
		relativePath, relErr := filepath.Rel(ancestor, target)
		if relErr == nil && !IsOutsideRoot(filepath.ToSlash(relativePath)) {
			return ancestor
		}
		parent := filepath.Dir(ancestor)
		if parent == ancestor {
			return ancestor
		}
		ancestor = parent
	}
}

// Extension returns the lower-cased extension of a slash-separated path, including the dot.
// Dotfiles such as ".gitignore" have no extension.
func Extension(slashPath string) string {
	baseName := path.Base(slashPath)
	trimmed := strings.TrimLeft(baseName, ".")
	if trimmed == "" {
		return ""
	}
	return strings.ToLower(path.Ext(trimmed))
}
