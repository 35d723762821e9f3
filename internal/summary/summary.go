// Package summary condenses source files into their imports, exports and top-level
// declarations. Extraction is a line and regular expression heuristic over raw
// text: nested declarations, multi-line signatures and unusual formatting can be
// missed or mis-captured.
package summary

import (
	"path"
	"sort"
	"strings"

	"github.com/temirov/codedigest/internal/content"
	"github.com/temirov/codedigest/internal/types"
	"github.com/temirov/codedigest/internal/utils"
)

// Language identifiers reported in FileSummary.Language.
const (
	LanguageTypeScript = "typescript"
	LanguageJavaScript = "javascript"
	LanguagePython     = "python"
	LanguageText       = "text"
)

var languageByExtension = map[string]string{
	".ts":  LanguageTypeScript,
	".tsx": LanguageTypeScript,
	".mts": LanguageTypeScript,
	".cts": LanguageTypeScript,
	".js":  LanguageJavaScript,
	".jsx": LanguageJavaScript,
	".mjs": LanguageJavaScript,
	".cjs": LanguageJavaScript,
	".py":  LanguagePython,
	".pyi": LanguagePython,
}

// DetectLanguage infers the summarizer language of a file from its extension.
func DetectLanguage(slashPath string) string {
	if language, known := languageByExtension[utils.Extension(slashPath)]; known {
		return language
	}
	return LanguageText
}

// Summarize extracts the summary of one file. Unsupported languages yield a summary
// with only the line count.
func Summarize(slashPath string, text string) types.FileSummary {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	summary := types.FileSummary{
		Path:         slashPath,
		Language:     DetectLanguage(path.Base(slashPath)),
		TotalLines:   content.CountLines(text),
		Declarations: []types.DeclarationInfo{},
		Imports:      []string{},
		Exports:      []string{},
	}
	switch summary.Language {
	case LanguageTypeScript, LanguageJavaScript:
		summary.Imports = extractScriptImports(normalized)
		summary.Exports = extractScriptExports(normalized)
		summary.Declarations = extractScriptDeclarations(normalized)
	case LanguagePython:
		summary.Imports = extractPythonImports(normalized)
		summary.Declarations = extractPythonDeclarations(normalized)
		summary.Exports = exportedNames(summary.Declarations)
	}
	return summary
}

// positioned is a match located by its byte offset in the source.
type positioned struct {
	offset int
	value  string
}

// orderedUnique sorts matches by offset and keeps the first occurrence of each value.
func orderedUnique(matches []positioned) []string {
	sort.SliceStable(matches, func(left, right int) bool {
		return matches[left].offset < matches[right].offset
	})
	seen := make(map[string]struct{}, len(matches))
	result := make([]string, 0, len(matches))
	for _, match := range matches {
		if _, duplicate := seen[match.value]; duplicate {
			continue
		}
		seen[match.value] = struct{}{}
		result = append(result, match.value)
	}
	return result
}

// lineAt returns the 1-based line number of offset.
func lineAt(text string, offset int) int {
	return strings.Count(text[:offset], "\n") + 1
}

func exportedNames(declarations []types.DeclarationInfo) []string {
	names := make([]string, 0, len(declarations))
	for _, declaration := range declarations {
		if declaration.IsExported {
			names = append(names, declaration.Name)
		}
	}
	return names
}
