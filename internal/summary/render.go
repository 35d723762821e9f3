package summary

import (
	"fmt"
	"strings"

	"github.com/temirov/codedigest/internal/types"
	"github.com/temirov/codedigest/internal/utils"
)

const (
	// MaxSignatureLength is the number of characters of a signature kept in a rendered summary.
	MaxSignatureLength = 160

	listSeparator     = ", "
	flagExported      = "exported"
	flagAsync         = "async"
	emptyListMarker   = "none"
	headingFormat     = "### %s\n\n"
	languageFormat    = "- Language: %s\n"
	linesFormat       = "- Lines: %d\n"
	importsFormat     = "- Imports: %s\n"
	exportsFormat     = "- Exports: %s\n"
	declarationFormat = "- `%s` (%s, line %d%s)\n"
	descriptionFormat = "  %s\n"
)

// Render formats a FileSummary as a Markdown block.
func Render(summary types.FileSummary) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, headingFormat, summary.Path)
	fmt.Fprintf(&builder, languageFormat, summary.Language)
	fmt.Fprintf(&builder, linesFormat, summary.TotalLines)
	if summary.Language == LanguageText {
		return builder.String()
	}
	fmt.Fprintf(&builder, importsFormat, joinOrNone(summary.Imports))
	fmt.Fprintf(&builder, exportsFormat, joinOrNone(summary.Exports))
	if len(summary.Declarations) == 0 {
		return builder.String()
	}
	builder.WriteString("\n")
	for _, declaration := range summary.Declarations {
		var flags []string
		if declaration.IsExported {
			flags = append(flags, flagExported)
		}
		if declaration.IsAsync {
			flags = append(flags, flagAsync)
		}
		flagText := ""
		if len(flags) > 0 {
			flagText = listSeparator + strings.Join(flags, listSeparator)
		}
		signature := utils.Truncate(declaration.Signature, MaxSignatureLength)
		fmt.Fprintf(&builder, declarationFormat, signature, declaration.Kind, declaration.Line, flagText)
		if declaration.Description != "" {
			fmt.Fprintf(&builder, descriptionFormat, declaration.Description)
		}
	}
	return builder.String()
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return emptyListMarker
	}
	return strings.Join(values, listSeparator)
}
