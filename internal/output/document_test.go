package output

import (
	"strings"
	"testing"

	"github.com/temirov/codedigest/internal/types"
)

const plainDocumentExpected = "# Codebase Context: demo\n\n" +
	"## File System Location\n\n" +
	"/work/demo\n\n" +
	"## Git Information\n\n" +
	"Not a git repository\n\n" +
	"## Directory Structure\n\n" +
	"```\n" +
	"demo/\n" +
	"├── src/\n" +
	"│   └── app.ts\n" +
	"└── README.md\n" +
	"```\n\n" +
	"## File Contents\n\n" +
	"### src/app.ts\n\n" +
	"```typescript\n" +
	"export const a = 1;\n" +
	"```\n\n" +
	"### README.md\n\n" +
	"```markdown\n" +
	"# Demo\n" +
	"```\n\n" +
	"## Statistics\n\n" +
	"- Total files: 2\n" +
	"- Total lines: 3\n" +
	"- File types:\n" +
	"  - .md: 1\n" +
	"  - .ts: 1\n" +
	"- Largest file: src/app.ts (2 lines)\n" +
	"- Average file size: 2 lines\n" +
	"- Total characters: 26\n" +
	"- Directories processed: 1\n" +
	"- Estimated tokens: 7\n"

const nestedTreeExpected = "proj/\n" +
	"├── a/\n" +
	"│   ├── b/\n" +
	"│   │   ├── e/\n" +
	"│   │   │   └── f.go\n" +
	"│   │   └── c.go\n" +
	"│   └── d.go\n" +
	"├── m/\n" +
	"│   └── n.go\n" +
	"└── z.go\n"

func sampleResult() types.AnalysisResult {
	return types.AnalysisResult{
		PrimaryPath: "/work/demo",
		Files: []types.FileRecord{
			{Path: "src/app.ts", Size: 20, LineCount: 2, Content: "export const a = 1;\n"},
			{Path: "README.md", Size: 6, LineCount: 1, Content: "# Demo"},
		},
		Statistics: types.Statistics{
			TotalFiles:           2,
			TotalLines:           3,
			TotalTokens:          7,
			TotalCharacters:      26,
			DirectoriesProcessed: 1,
			FileTypes:            map[string]int{".ts": 1, ".md": 1},
			LargestFile:          types.LargestFile{Path: "src/app.ts", Lines: 2},
			AverageFileSize:      2,
		},
		ShowTokens: true,
	}
}

func TestAssemblePlainDocument(testingInstance *testing.T) {
	actual := Assemble(sampleResult())
	if actual != plainDocumentExpected {
		testingInstance.Fatalf("unexpected document:\n%s", actual)
	}
}

func TestAssembleVersionControlSection(testingInstance *testing.T) {
	result := sampleResult()
	withoutRepository := Assemble(result)
	for _, unexpected := range []string{"- Commit:", "- Branch:", "- Author:", "- Date:"} {
		if strings.Contains(withoutRepository, unexpected) {
			testingInstance.Fatalf("document without repository contains %q", unexpected)
		}
	}

	result.VCS = &types.VCSSnapshot{Commit: "9fceb02", Branch: "main", Author: "Ada", Date: "2024-01-02 03:04"}
	withRepository := Assemble(result)
	expectedSection := "## Git Information\n\n" +
		"- Commit: 9fceb02\n" +
		"- Branch: main\n" +
		"- Author: Ada\n" +
		"- Date: 2024-01-02 03:04\n\n" +
		"## Directory Structure"
	if !strings.Contains(withRepository, expectedSection) {
		testingInstance.Fatalf("missing git section:\n%s", withRepository)
	}
	if strings.Contains(withRepository, strings.TrimSpace(notGitRepository)) {
		testingInstance.Fatalf("document with repository contains the missing repository notice")
	}
}

func TestAssembleOptionalSections(testingInstance *testing.T) {
	testCases := []struct {
		name       string
		mutate     func(*types.AnalysisResult)
		present    []string
		notPresent []string
	}{
		{
			name:       "single recent day",
			mutate:     func(result *types.AnalysisResult) { result.RecentDays = 1 },
			present:    []string{"## Recent Changes\n\nShowing only files modified in the last 1 day.\n\n## Directory Structure"},
			notPresent: nil,
		},
		{
			name:       "several recent days",
			mutate:     func(result *types.AnalysisResult) { result.RecentDays = 7 },
			present:    []string{"in the last 7 days."},
			notPresent: nil,
		},
		{
			name:       "tokens hidden",
			mutate:     func(result *types.AnalysisResult) { result.ShowTokens = false },
			present:    []string{"- Directories processed: 1\n"},
			notPresent: []string{"Estimated tokens", "## Recent Changes"},
		},
		{
			name:       "summary mode",
			mutate:     func(result *types.AnalysisResult) { result.Summary = true },
			present:    []string{"## Code Summary\n\n### src/app.ts\n\n- Language: typescript\n- Lines: 2\n- Imports: none\n- Exports: a\n\n### README.md\n\n- Language: text\n- Lines: 1\n\n## Statistics"},
			notPresent: []string{"## File Contents", "```typescript"},
		},
	}
	for _, testCase := range testCases {
		testingInstance.Run(testCase.name, func(testingInstance *testing.T) {
			result := sampleResult()
			testCase.mutate(&result)
			document := Assemble(result)
			for _, expected := range testCase.present {
				if !strings.Contains(document, expected) {
					testingInstance.Fatalf("expected %q in:\n%s", expected, document)
				}
			}
			for _, unexpected := range testCase.notPresent {
				if strings.Contains(document, unexpected) {
					testingInstance.Fatalf("unexpected %q in:\n%s", unexpected, document)
				}
			}
		})
	}
}

func TestAssembleEmptyResult(testingInstance *testing.T) {
	document := Assemble(types.AnalysisResult{PrimaryPath: "/tmp/empty", Statistics: types.Statistics{FileTypes: map[string]int{}}})
	expectedFragments := []string{
		"```\nempty/\n```\n\n## File Contents\n\n## Statistics",
		"- Total files: 0\n- Total lines: 0\n- Largest file: none\n- Average file size: 0 lines\n",
	}
	for _, fragment := range expectedFragments {
		if !strings.Contains(document, fragment) {
			testingInstance.Fatalf("expected %q in:\n%s", fragment, document)
		}
	}
}

func TestRenderTreeNestedConnectors(testingInstance *testing.T) {
	actual := renderTree("proj", []string{"z.go", "a/b/c.go", "m/n.go", "a/d.go", "a/b/e/f.go"})
	if actual != nestedTreeExpected {
		testingInstance.Fatalf("unexpected tree:\n%s", actual)
	}
}

func TestSortedFileTypes(testingInstance *testing.T) {
	fileTypes := map[string]int{".go": 2, ".md": 5, ".ts": 2, types.NoExtensionBucket: 1, ".py": 5}
	actual := strings.Join(sortedFileTypes(fileTypes), " ")
	expected := ".md .py .go .ts " + types.NoExtensionBucket
	if actual != expected {
		testingInstance.Fatalf("expected %q, got %q", expected, actual)
	}
}

func TestFenceFor(testingInstance *testing.T) {
	testCases := []struct {
		name     string
		text     string
		expected string
	}{
		{name: "plain", text: "no backticks", expected: "```"},
		{name: "inline code", text: "use `x` and ``y``", expected: "```"},
		{name: "embedded fence", text: "```go\ncode\n```", expected: "````"},
		{name: "long run", text: "`````", expected: "``````"},
	}
	for _, testCase := range testCases {
		testingInstance.Run(testCase.name, func(testingInstance *testing.T) {
			if actual := fenceFor(testCase.text); actual != testCase.expected {
				testingInstance.Fatalf("expected %q, got %q", testCase.expected, actual)
			}
		})
	}
}
