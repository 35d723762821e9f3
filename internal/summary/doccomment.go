package summary

import (
	"strings"
)

const (
	// docCommentMaxGap is the number of whitespace characters allowed between a doc comment and its declaration.
	docCommentMaxGap = 10

	docCommentOpen    = "/**"
	blockCommentOpen  = "/*"
	blockCommentClose = "*/"
	commentLinePrefix = "*"
)

// precedingDocComment returns the text of the /** */ comment ending just before offset,
// or an empty string when none is close enough.
func precedingDocComment(text string, offset int) string {
	prefix := text[:offset]
	trimmed := strings.TrimRight(prefix, " \t\r\n")
	if len(prefix)-len(trimmed) > docCommentMaxGap {
		return ""
	}
	if !strings.HasSuffix(trimmed, blockCommentClose) {
		return ""
	}
	commentStart := strings.LastIndex(trimmed[:len(trimmed)-len(blockCommentClose)], blockCommentOpen)
	if commentStart < 0 || !strings.HasPrefix(trimmed[commentStart:], docCommentOpen) {
		return ""
	}
	body := trimmed[commentStart+len(docCommentOpen) : len(trimmed)-len(blockCommentClose)]
	return cleanDocComment(body)
}

// cleanDocComment strips leading asterisks from each line and joins the non-empty lines with single spaces.
func cleanDocComment(body string) string {
	var parts []string
	for _, line := range strings.Split(body, "\n") {
		cleaned := strings.TrimSpace(line)
		cleaned = strings.TrimSpace(strings.TrimLeft(cleaned, commentLinePrefix))
		if cleaned == "" {
			continue
		}
		parts = append(parts, cleaned)
	}
	return strings.Join(parts, " ")
}
