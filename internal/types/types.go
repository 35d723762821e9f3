// Package types defines every cross‑package data structure used by the codedigest CLI.
package types

const (
	KindFunction  DeclarationKind = "function"
	KindClass     DeclarationKind = "class"
	KindInterface DeclarationKind = "interface"
	KindType      DeclarationKind = "type"
	KindVariable  DeclarationKind = "variable"

	// NoExtensionBucket is the histogram key for files without an extension.
	NoExtensionBucket = "(no extension)"
)

// DeclarationKind names the category of a summarized declaration.
type DeclarationKind string

// FileRecord is one admitted file. Path is relative to the display root of the run
// and uses forward slashes. Summary holds the rendered code summary of the full file
// text when the run summarizes.
type FileRecord struct {
	Path      string `json:"path"`
	Size      int64  `json:"size"`
	LineCount int    `json:"lineCount"`
	Content   string `json:"content"`
	Summary   string `json:"summary,omitempty"`
}

// VCSSnapshot describes the checked-out commit of the analyzed repository.
type VCSSnapshot struct {
	Commit string `json:"commit"`
	Branch string `json:"branch"`
	Author string `json:"author"`
	Date   string `json:"date"`
}

// LargestFile identifies the admitted file with the most lines.
type LargestFile struct {
	Path  string `json:"path"`
	Lines int    `json:"lines"`
}

// Statistics is a read-only view of the aggregates collected during a run.
type Statistics struct {
	TotalFiles           int            `json:"totalFiles"`
	TotalLines           int            `json:"totalLines"`
	TotalTokens          int            `json:"totalTokens"`
	TotalCharacters      int            `json:"totalCharacters"`
	DirectoriesProcessed int            `json:"directoriesProcessed"`
	FileTypes            map[string]int `json:"fileTypes"`
	LargestFile          LargestFile    `json:"largestFile"`
	AverageFileSize      int            `json:"averageFileSize"`
}

// AnalysisResult is everything the document assembler needs.
type AnalysisResult struct {
	PrimaryPath string
	VCS         *VCSSnapshot
	Files       []FileRecord
	Statistics  Statistics
	RecentDays  int
	Summary     bool
	ShowTokens  bool
}

// DeclarationInfo is one top-level construct found by the summarizer.
type DeclarationInfo struct {
	Name        string          `json:"name"`
	Kind        DeclarationKind `json:"kind"`
	Signature   string          `json:"signature"`
	Description string          `json:"description,omitempty"`
	Line        int             `json:"line"`
	IsExported  bool            `json:"isExported"`
	IsAsync     bool            `json:"isAsync"`
}

// FileSummary is the condensed representation of a source file.
type FileSummary struct {
	Path         string            `json:"path"`
	Language     string            `json:"language"`
	TotalLines   int               `json:"totalLines"`
	Declarations []DeclarationInfo `json:"declarations"`
	Imports      []string          `json:"imports"`
	Exports      []string          `json:"exports"`
}

// AnalysisOptions holds the merged options a run executes with.
// Zero limits mean "unlimited".
type AnalysisOptions struct {
	Include        []string
	Exclude        []string
	MaxFileSize    int64
	MaxTotalTokens int
	Summary        bool
	Verbose        bool
	ShowTokens     bool
	RecentDays     int
	UseGitignore   bool
	UseIgnoreFile  bool
	Workers        int
	// ExcludePaths are absolute paths never discovered or watched, such as the
	// document being written.
	ExcludePaths []string
}
