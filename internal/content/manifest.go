package content

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/mod/modfile"
)

const (
	packageManifestName    = "package.json"
	compilerConfigName     = "tsconfig.json"
	goModuleManifestName   = "go.mod"
	summaryIndentation     = "  "
	indirectRequireComment = " // indirect"
)

// packageManifestSummary keeps the selected top-level keys of package.json in output order.
type packageManifestSummary struct {
	Name             json.RawMessage `json:"name,omitempty"`
	Version          json.RawMessage `json:"version,omitempty"`
	Description      json.RawMessage `json:"description,omitempty"`
	Main             json.RawMessage `json:"main,omitempty"`
	Type             json.RawMessage `json:"type,omitempty"`
	Scripts          json.RawMessage `json:"scripts,omitempty"`
	Dependencies     json.RawMessage `json:"dependencies,omitempty"`
	DevDependencies  json.RawMessage `json:"devDependencies,omitempty"`
	PeerDependencies json.RawMessage `json:"peerDependencies,omitempty"`
}

// compilerConfigSummary keeps the selected top-level keys of tsconfig.json in output order.
type compilerConfigSummary struct {
	Extends         json.RawMessage `json:"extends,omitempty"`
	CompilerOptions json.RawMessage `json:"compilerOptions,omitempty"`
	Include         json.RawMessage `json:"include,omitempty"`
	Exclude         json.RawMessage `json:"exclude,omitempty"`
	Files           json.RawMessage `json:"files,omitempty"`
}

type goModuleSummary struct {
	Module    string   `json:"module,omitempty"`
	Go        string   `json:"go,omitempty"`
	Toolchain string   `json:"toolchain,omitempty"`
	Require   []string `json:"require,omitempty"`
}

// summarizeManifest returns the reduced form of a recognized structured config file.
// The second result is false when the file is not recognized or cannot be parsed.
func summarizeManifest(baseName string, raw []byte) (string, bool) {
	switch baseName {
	case packageManifestName:
		var summary packageManifestSummary
		return summarizeJSON(raw, &summary)
	case compilerConfigName:
		var summary compilerConfigSummary
		return summarizeJSON(raw, &summary)
	case goModuleManifestName:
		return summarizeGoModule(raw)
	default:
		return "", false
	}
}

func summarizeJSON(raw []byte, summary any) (string, bool) {
	if err := json.Unmarshal(raw, summary); err != nil {
		return "", false
	}
	rendered, err := json.MarshalIndent(summary, "", summaryIndentation)
	if err != nil {
		return "", false
	}
	return string(rendered), true
}

func summarizeGoModule(raw []byte) (string, bool) {
	parsed, err := modfile.Parse(goModuleManifestName, raw, nil)
	if err != nil || parsed == nil {
		return "", false
	}
	var summary goModuleSummary
	if parsed.Module != nil {
		summary.Module = parsed.Module.Mod.Path
	}
	if parsed.Go != nil {
		summary.Go = parsed.Go.Version
	}
	if parsed.Toolchain != nil {
		summary.Toolchain = parsed.Toolchain.Name
	}
	for _, requirement := range parsed.Require {
		if requirement == nil {
			continue
		}
		entry := fmt.Sprintf("%s %s", requirement.Mod.Path, requirement.Mod.Version)
		if requirement.Indirect {
			entry += indirectRequireComment
		}
		summary.Require = append(summary.Require, strings.TrimSpace(entry))
	}
	rendered, err := json.MarshalIndent(summary, "", summaryIndentation)
	if err != nil {
		return "", false
	}
	return string(rendered), true
}
