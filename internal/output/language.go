package output

import "github.com/temirov/codedigest/internal/utils"

// fenceLanguages maps lower-cased file extensions to Markdown code fence tags.
var fenceLanguages = map[string]string{
	".bash":       "bash",
	".c":          "c",
	".cc":         "cpp",
	".cjs":        "javascript",
	".cpp":        "cpp",
	".cs":         "csharp",
	".css":        "css",
	".cts":        "typescript",
	".dart":       "dart",
	".dockerfile": "dockerfile",
	".go":         "go",
	".graphql":    "graphql",
	".h":          "c",
	".hpp":        "cpp",
	".html":       "html",
	".java":       "java",
	".js":         "javascript",
	".json":       "json",
	".jsx":        "jsx",
	".kt":         "kotlin",
	".less":       "less",
	".lua":        "lua",
	".md":         "markdown",
	".mjs":        "javascript",
	".mts":        "typescript",
	".php":        "php",
	".proto":      "protobuf",
	".py":         "python",
	".pyi":        "python",
	".rb":         "ruby",
	".rs":         "rust",
	".scala":      "scala",
	".scss":       "scss",
	".sh":         "bash",
	".sql":        "sql",
	".svelte":     "svelte",
	".swift":      "swift",
	".toml":       "toml",
	".ts":         "typescript",
	".tsx":        "tsx",
	".vue":        "vue",
	".xml":        "xml",
	".yaml":       "yaml",
	".yml":        "yaml",
	".zsh":        "bash",
}

// fenceLanguage returns the code fence tag for a file path, empty when unknown.
func fenceLanguage(slashPath string) string {
	return fenceLanguages[utils.Extension(slashPath)]
}
