package summary

import (
	"regexp"
	"strings"

	"github.com/temirov/codedigest/internal/types"
)

const (
	pythonCommentPrefix = "#"
	tabIndentWidth      = 4
)

var (
	pythonFunctionPattern   = regexp.MustCompile(`^(async\s+)?def\s+([A-Za-z_]\w*)\s*\(.*\)\s*(?:->\s*[^:]+)?:`)
	pythonClassPattern      = regexp.MustCompile(`^class\s+([A-Za-z_]\w*)\s*(?:\(.*\))?\s*:`)
	pythonImportPattern     = regexp.MustCompile(`^import\s+(.+)$`)
	pythonFromImportPattern = regexp.MustCompile(`^from\s+(\S+)\s+import\b`)
	pythonStringPrefixes    = []string{`"""`, `'''`, `"`, `'`}
)

func extractPythonImports(text string) []string {
	var matches []positioned
	offset := 0
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if match := pythonFromImportPattern.FindStringSubmatch(trimmed); match != nil {
			matches = append(matches, positioned{offset: offset, value: match[1]})
		} else if match := pythonImportPattern.FindStringSubmatch(trimmed); match != nil {
			modules := stripPythonComment(match[1])
			for _, module := range strings.Split(modules, ",") {
				name := strings.TrimSpace(strings.SplitN(strings.TrimSpace(module), " as ", 2)[0])
				if name != "" {
					matches = append(matches, positioned{offset: offset, value: name})
				}
			}
		}
		offset += len(line) + 1
	}
	return orderedUnique(matches)
}

func extractPythonDeclarations(text string) []types.DeclarationInfo {
	lines := strings.Split(text, "\n")
	declarations := make([]types.DeclarationInfo, 0)
	for lineIndex, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, pythonCommentPrefix) {
			continue
		}
		topLevel := countIndentation(line) == 0
		if match := pythonFunctionPattern.FindStringSubmatch(trimmed); match != nil {
			declarations = append(declarations, types.DeclarationInfo{
				Name:        match[2],
				Kind:        types.KindFunction,
				Signature:   match[0],
				Description: pythonDocstring(lines, lineIndex+1),
				Line:        lineIndex + 1,
				IsExported:  topLevel,
				IsAsync:     match[1] != "",
			})
			continue
		}
		if match := pythonClassPattern.FindStringSubmatch(trimmed); match != nil {
			declarations = append(declarations, types.DeclarationInfo{
				Name:        match[1],
				Kind:        types.KindClass,
				Signature:   match[0],
				Description: pythonDocstring(lines, lineIndex+1),
				Line:        lineIndex + 1,
				IsExported:  topLevel,
			})
		}
	}
	return declarations
}

// pythonDocstring returns the first line of a string literal on the first non-blank line at or after startIndex.
func pythonDocstring(lines []string, startIndex int) string {
	for lineIndex := startIndex; lineIndex < len(lines); lineIndex++ {
		trimmed := strings.TrimSpace(lines[lineIndex])
		if trimmed == "" {
			continue
		}
		quote := ""
		for _, candidate := range pythonStringPrefixes {
			if strings.HasPrefix(trimmed, candidate) {
				quote = candidate
				break
			}
		}
		if quote == "" {
			return ""
		}
		remainder := trimmed[len(quote):]
		if closing := strings.Index(remainder, quote); closing >= 0 {
			return strings.TrimSpace(remainder[:closing])
		}
		if firstLine := strings.TrimSpace(remainder); firstLine != "" {
			return firstLine
		}
		if lineIndex+1 < len(lines) {
			nextLine := strings.TrimSpace(lines[lineIndex+1])
			if closing := strings.Index(nextLine, quote); closing >= 0 {
				nextLine = nextLine[:closing]
			}
			return strings.TrimSpace(nextLine)
		}
		return ""
	}
	return ""
}

func stripPythonComment(text string) string {
	if commentIndex := strings.Index(text, pythonCommentPrefix); commentIndex >= 0 {
		return text[:commentIndex]
	}
	return text
}

func countIndentation(line string) int {
	indentation := 0
	for _, runeValue := range line {
		switch runeValue {
		case ' ':
			indentation++
		case '\t':
			indentation += tabIndentWidth
		default:
			return indentation
		}
	}
	return indentation
}
