package summary

import (
	"regexp"
	"sort"
	"strings"

	"github.com/temirov/codedigest/internal/types"
)

const (
	exportKeyword = "export"
	aliasKeyword  = " as "
)

var (
	importFromPattern    = regexp.MustCompile(`\bimport\s+(?:type\s+)?[^'";]*?\s*from\s*['"]([^'"\n]+)['"]`)
	bareImportPattern    = regexp.MustCompile(`(?m)^[ \t]*import\s*['"]([^'"\n]+)['"]`)
	dynamicImportPattern = regexp.MustCompile(`\bimport\s*\(\s*['"]([^'"\n]+)['"]\s*\)`)
	requirePattern       = regexp.MustCompile(`\brequire\s*\(\s*['"]([^'"\n]+)['"]\s*\)`)

	exportDeclarationPattern = regexp.MustCompile(`(?m)^[ \t]*export\s+(?:default\s+)?(?:declare\s+)?(?:abstract\s+)?(?:async\s+)?(?:function\*?|class|interface|type|enum|const|let|var)\s+([A-Za-z_$][\w$]*)`)
	exportListPattern        = regexp.MustCompile(`(?m)^[ \t]*export\s*(?:type\s*)?\{([^}]*)\}`)

	functionPattern  = regexp.MustCompile(`(?m)^[ \t]*((?:export[ \t]+)?(?:default[ \t]+)?(?:declare[ \t]+)?(async[ \t]+)?function(?:[ \t]*\*[ \t]*|[ \t]+)([A-Za-z_$][\w$]*)[ \t]*(?:<[^>\n]*>)?[ \t]*\([^)]*\)(?:[ \t]*:[ \t]*[^{;\n]+)?)`)
	arrowPattern     = regexp.MustCompile(`(?m)^[ \t]*((?:export[ \t]+)?(?:const|let|var)[ \t]+([A-Za-z_$][\w$]*)[ \t]*(?::[^=\n]+)?=[ \t]*(async[ \t]+)?(?:<[^>\n]*>)?(?:\([^)]*\)|[A-Za-z_$][\w$]*)(?:[ \t]*:[ \t]*[^=\n]+?)?[ \t]*=>)`)
	classPattern     = regexp.MustCompile(`(?m)^[ \t]*((?:export[ \t]+)?(?:default[ \t]+)?(?:declare[ \t]+)?(?:abstract[ \t]+)?class[ \t]+([A-Za-z_$][\w$]*)[^{\n]*)`)
	interfacePattern = regexp.MustCompile(`(?m)^[ \t]*((?:export[ \t]+)?(?:declare[ \t]+)?interface[ \t]+([A-Za-z_$][\w$]*)[^{\n]*)`)
	typePattern      = regexp.MustCompile(`(?m)^[ \t]*((?:export[ \t]+)?(?:declare[ \t]+)?type[ \t]+([A-Za-z_$][\w$]*)(?:<[^>\n]*>)?[ \t]*=[^;\n]*)`)
)

// declarationScan describes one regular expression scan and the capture groups it fills.
type declarationScan struct {
	pattern        *regexp.Regexp
	kind           types.DeclarationKind
	signatureGroup int
	nameGroup      int
	asyncGroup     int
}

var scriptDeclarationScans = []declarationScan{
	{pattern: functionPattern, kind: types.KindFunction, signatureGroup: 1, nameGroup: 3, asyncGroup: 2},
	{pattern: arrowPattern, kind: types.KindFunction, signatureGroup: 1, nameGroup: 2, asyncGroup: 3},
	{pattern: classPattern, kind: types.KindClass, signatureGroup: 1, nameGroup: 2},
	{pattern: interfacePattern, kind: types.KindInterface, signatureGroup: 1, nameGroup: 2},
	{pattern: typePattern, kind: types.KindType, signatureGroup: 1, nameGroup: 2},
}

func extractScriptImports(text string) []string {
	var matches []positioned
	for _, pattern := range []*regexp.Regexp{importFromPattern, bareImportPattern, dynamicImportPattern, requirePattern} {
		for _, indexes := range pattern.FindAllStringSubmatchIndex(text, -1) {
			matches = append(matches, positioned{offset: indexes[2], value: text[indexes[2]:indexes[3]]})
		}
	}
	return orderedUnique(matches)
}

// extractScriptExports collects exported names independently of the declaration scans.
func extractScriptExports(text string) []string {
	var matches []positioned
	for _, indexes := range exportDeclarationPattern.FindAllStringSubmatchIndex(text, -1) {
		matches = append(matches, positioned{offset: indexes[2], value: text[indexes[2]:indexes[3]]})
	}
	for _, indexes := range exportListPattern.FindAllStringSubmatchIndex(text, -1) {
		offset := indexes[2]
		for _, specifier := range strings.Split(text[indexes[2]:indexes[3]], ",") {
			name := strings.TrimSpace(specifier)
			if aliasIndex := strings.LastIndex(name, aliasKeyword); aliasIndex >= 0 {
				name = strings.TrimSpace(name[aliasIndex+len(aliasKeyword):])
			}
			name = strings.TrimSpace(strings.TrimPrefix(name, "type "))
			if name != "" {
				matches = append(matches, positioned{offset: offset, value: name})
			}
			offset += len(specifier) + 1
		}
	}
	return orderedUnique(matches)
}

func extractScriptDeclarations(text string) []types.DeclarationInfo {
	type locatedDeclaration struct {
		offset      int
		declaration types.DeclarationInfo
	}
	var located []locatedDeclaration
	for _, scan := range scriptDeclarationScans {
		for _, indexes := range scan.pattern.FindAllStringSubmatchIndex(text, -1) {
			signatureStart, signatureEnd := indexes[2*scan.signatureGroup], indexes[2*scan.signatureGroup+1]
			signature := strings.TrimSpace(text[signatureStart:signatureEnd])
			isAsync := false
			if scan.asyncGroup > 0 {
				isAsync = indexes[2*scan.asyncGroup] >= 0
			}
			located = append(located, locatedDeclaration{
				offset: signatureStart,
				declaration: types.DeclarationInfo{
					Name:        text[indexes[2*scan.nameGroup]:indexes[2*scan.nameGroup+1]],
					Kind:        scan.kind,
					Signature:   signature,
					Description: precedingDocComment(text, signatureStart),
					Line:        lineAt(text, signatureStart),
					IsExported:  strings.HasPrefix(signature, exportKeyword),
					IsAsync:     isAsync,
				},
			})
		}
	}
	sort.SliceStable(located, func(left, right int) bool {
		return located[left].offset < located[right].offset
	})
	declarations := make([]types.DeclarationInfo, 0, len(located))
	for _, entry := range located {
		declarations = append(declarations, entry.declaration)
	}
	return declarations
}
