package discover

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
)

const (
	anyDepthPrefix      = "**/"
	patternSeparator    = "/"
	logMessageBadGlob   = "ignoring malformed pattern"
	logFieldPattern     = "pattern"
	logFieldDirectory   = "directory"
	logFieldPath        = "path"
	logFieldRecentDays  = "recent_days"
	logFieldModifiedAt  = "modified_at"
	logFieldCandidates  = "candidates"
	logFieldIgnoreCount = "ignore_patterns"
)

type ignoreRule struct {
	pattern       string
	directoryOnly bool
}

// ignoreMatcher applies gitignore-style placement rules on top of doublestar globs.
type ignoreMatcher struct {
	rules []ignoreRule
}

func newIgnoreMatcher(patterns []string, logger *zap.Logger) ignoreMatcher {
	var rules []ignoreRule
	for _, rawPattern := range patterns {
		rule, ok := compileIgnoreRule(rawPattern)
		if !ok {
			continue
		}
		if !doublestar.ValidatePattern(rule.pattern) {
			logger.Warn(logMessageBadGlob, zap.String(logFieldPattern, rawPattern))
			continue
		}
		rules = append(rules, rule)
	}
	return ignoreMatcher{rules: rules}
}

func compileIgnoreRule(rawPattern string) (ignoreRule, bool) {
	pattern := strings.TrimSpace(rawPattern)
	directoryOnly := strings.HasSuffix(pattern, patternSeparator)
	pattern = strings.TrimSuffix(pattern, patternSeparator)
	anchored := strings.HasPrefix(pattern, patternSeparator)
	pattern = strings.TrimPrefix(pattern, patternSeparator)
	if pattern == "" {
		return ignoreRule{}, false
	}
	if !anchored && !strings.Contains(pattern, patternSeparator) && !strings.HasPrefix(pattern, anyDepthPrefix) {
		pattern = anyDepthPrefix + pattern
	}
	return ignoreRule{pattern: pattern, directoryOnly: directoryOnly}, true
}

// Matches reports whether relativePath, slash-separated and relative to the walk root, is ignored.
func (matcher ignoreMatcher) Matches(relativePath string, isDirectory bool) bool {
	for _, rule := range matcher.rules {
		if rule.directoryOnly && !isDirectory {
			continue
		}
		if matched, _ := doublestar.Match(rule.pattern, relativePath); matched {
			return true
		}
	}
	return false
}

// includeMatcher selects files; an empty pattern list selects everything.
type includeMatcher struct {
	patterns []string
}

func newIncludeMatcher(patterns []string, logger *zap.Logger) includeMatcher {
	var valid []string
	for _, rawPattern := range patterns {
		pattern := strings.TrimPrefix(strings.TrimSpace(rawPattern), "./")
		if pattern == "" {
			continue
		}
		if !doublestar.ValidatePattern(pattern) {
			logger.Warn(logMessageBadGlob, zap.String(logFieldPattern, rawPattern))
			continue
		}
		valid = append(valid, pattern)
	}
	return includeMatcher{patterns: valid}
}

// Matches reports whether a file is selected. Patterns without a slash also match the base name.
func (matcher includeMatcher) Matches(relativePath string) bool {
	if len(matcher.patterns) == 0 {
		return true
	}
	baseName := path.Base(relativePath)
	for _, pattern := range matcher.patterns {
		if matched, _ := doublestar.Match(pattern, relativePath); matched {
			return true
		}
		if !strings.Contains(pattern, patternSeparator) {
			if matched, _ := doublestar.Match(pattern, baseName); matched {
				return true
			}
		}
	}
	return false
}
