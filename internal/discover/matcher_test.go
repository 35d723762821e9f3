package discover

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestCompileIgnoreRule(testingInstance *testing.T) {
	testCases := []struct {
		raw           string
		expected      string
		directoryOnly bool
	}{
		{raw: "*.log", expected: "**/*.log"},
		{raw: "node_modules/", expected: "**/node_modules", directoryOnly: true},
		{raw: "/secret.txt", expected: "secret.txt"},
		{raw: "/build/", expected: "build", directoryOnly: true},
		{raw: "docs/*.md", expected: "docs/*.md"},
		{raw: "**/tmp", expected: "**/tmp"},
	}
	for _, testCase := range testCases {
		rule, ok := compileIgnoreRule(testCase.raw)
		if !ok {
			testingInstance.Fatalf("%s: expected rule to compile", testCase.raw)
		}
		if rule.pattern != testCase.expected || rule.directoryOnly != testCase.directoryOnly {
			testingInstance.Fatalf("%s: got %+v", testCase.raw, rule)
		}
	}
	for _, raw := range []string{"", "/", "   "} {
		if _, ok := compileIgnoreRule(raw); ok {
			testingInstance.Fatalf("expected %q to be rejected", raw)
		}
	}
}

func TestIgnoreMatcher(testingInstance *testing.T) {
	matcher := newIgnoreMatcher([]string{"*.log", "build/", "/root-only.txt", "docs/*.md"}, zap.NewNop())
	testCases := []struct {
		path        string
		isDirectory bool
		expected    bool
	}{
		{path: "debug.log", expected: true},
		{path: "nested/deep/trace.log", expected: true},
		{path: "build", isDirectory: true, expected: true},
		{path: "src/build", isDirectory: true, expected: true},
		{path: "build", isDirectory: false, expected: false},
		{path: "root-only.txt", expected: true},
		{path: "src/root-only.txt", expected: false},
		{path: "docs/intro.md", expected: true},
		{path: "src/docs/intro.md", expected: false},
		{path: "main.go", expected: false},
	}
	for _, testCase := range testCases {
		if actual := matcher.Matches(testCase.path, testCase.isDirectory); actual != testCase.expected {
			testingInstance.Errorf("%s (dir=%t): expected %t, got %t", testCase.path, testCase.isDirectory, testCase.expected, actual)
		}
	}
}

func TestMalformedPatternsAreSkipped(testingInstance *testing.T) {
	core, observedLogs := observer.New(zapcore.WarnLevel)
	logger := zap.New(core)
	ignoring := newIgnoreMatcher([]string{"[unclosed", "*.tmp"}, logger)
	if len(ignoring.rules) != 1 {
		testingInstance.Fatalf("expected one valid ignore rule, got %d", len(ignoring.rules))
	}
	inclusion := newIncludeMatcher([]string{"src/[", "*.go"}, logger)
	if len(inclusion.patterns) != 1 {
		testingInstance.Fatalf("expected one valid include pattern, got %d", len(inclusion.patterns))
	}
	if observedLogs.FilterMessage(logMessageBadGlob).Len() != 2 {
		testingInstance.Fatalf("expected two malformed pattern warnings, got %d", observedLogs.Len())
	}
}

func TestDefaultIgnorePatternsCompile(testingInstance *testing.T) {
	matcher := newIgnoreMatcher(DefaultIgnorePatterns, zap.NewNop())
	if len(matcher.rules) != len(DefaultIgnorePatterns) {
		testingInstance.Fatalf("expected every default pattern to compile, got %d of %d", len(matcher.rules), len(DefaultIgnorePatterns))
	}
	for _, ignoredPath := range []string{"node_modules", "web/node_modules", ".git", "coverage"} {
		if !matcher.Matches(ignoredPath, true) {
			testingInstance.Errorf("expected directory %s to be ignored", ignoredPath)
		}
	}
	for _, ignoredPath := range []string{"yarn.lock", "go.sum", "app.min.js", ".DS_Store", "LICENSE", "notes.swp"} {
		if !matcher.Matches(ignoredPath, false) {
			testingInstance.Errorf("expected file %s to be ignored", ignoredPath)
		}
	}
	for _, keptPath := range []string{"main.go", "README.md", "src/index.ts", "package.json", "go.mod"} {
		if matcher.Matches(keptPath, false) {
			testingInstance.Errorf("expected file %s to be kept", keptPath)
		}
	}
}
