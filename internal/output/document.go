// Package output assembles the Markdown document describing an analysis result.
package output

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/temirov/codedigest/internal/summary"
	"github.com/temirov/codedigest/internal/types"
)

const (
	titleFormat            = "# Codebase Context: %s\n\n"
	locationHeading        = "## File System Location\n\n"
	gitHeading             = "## Git Information\n\n"
	notGitRepository       = "Not a git repository\n\n"
	commitFormat           = "- Commit: %s\n"
	branchFormat           = "- Branch: %s\n"
	authorFormat           = "- Author: %s\n"
	dateFormat             = "- Date: %s\n"
	recentHeading          = "## Recent Changes\n\n"
	recentFormat           = "Showing only files modified in the last %d %s.\n\n"
	structureHeading       = "## Directory Structure\n\n"
	contentsHeading        = "## File Contents\n\n"
	summaryHeading         = "## Code Summary\n\n"
	fileHeadingFormat      = "### %s\n\n"
	statisticsHeading      = "## Statistics\n\n"
	totalFilesFormat       = "- Total files: %d\n"
	totalLinesFormat       = "- Total lines: %d\n"
	fileTypesLine          = "- File types:\n"
	fileTypeFormat         = "  - %s: %d\n"
	largestFileFormat      = "- Largest file: %s (%d lines)\n"
	largestFileNone        = "- Largest file: none\n"
	averageFileSizeFormat  = "- Average file size: %d lines\n"
	totalCharactersFormat  = "- Total characters: %d\n"
	directoriesFormat      = "- Directories processed: %d\n"
	estimatedTokensFormat  = "- Estimated tokens: %d\n"
	codeFence              = "```"
	fenceCharacter         = '`'
	dayUnit                = "day"
	daysUnit               = "days"
	sectionSeparator       = "\n"
	minimumFenceCharacters = 3
)

// Assemble renders result as one Markdown document. Sections appear in a fixed
// order: location, version control, recent changes, directory structure, file
// contents or code summary, and statistics.
func Assemble(result types.AnalysisResult) string {
	var builder strings.Builder
	projectName := filepath.Base(result.PrimaryPath)

	fmt.Fprintf(&builder, titleFormat, projectName)
	builder.WriteString(locationHeading)
	builder.WriteString(result.PrimaryPath + "\n\n")

	writeVCS(&builder, result.VCS)
	if result.RecentDays > 0 {
		builder.WriteString(recentHeading)
		unit := daysUnit
		if result.RecentDays == 1 {
			unit = dayUnit
		}
		fmt.Fprintf(&builder, recentFormat, result.RecentDays, unit)
	}

	filePaths := make([]string, 0, len(result.Files))
	for _, record := range result.Files {
		filePaths = append(filePaths, record.Path)
	}
	builder.WriteString(structureHeading)
	builder.WriteString(codeFence + "\n")
	builder.WriteString(renderTree(projectName, filePaths))
	builder.WriteString(codeFence + "\n\n")

	if result.Summary {
		writeSummaries(&builder, result.Files)
	} else {
		writeContents(&builder, result.Files)
	}
	writeStatistics(&builder, result.Statistics, result.ShowTokens)
	return builder.String()
}

func writeVCS(builder *strings.Builder, snapshot *types.VCSSnapshot) {
	builder.WriteString(gitHeading)
	if snapshot == nil {
		builder.WriteString(notGitRepository)
		return
	}
	fmt.Fprintf(builder, commitFormat, snapshot.Commit)
	fmt.Fprintf(builder, branchFormat, snapshot.Branch)
	fmt.Fprintf(builder, authorFormat, snapshot.Author)
	fmt.Fprintf(builder, dateFormat, snapshot.Date)
	builder.WriteString(sectionSeparator)
}

func writeContents(builder *strings.Builder, records []types.FileRecord) {
	builder.WriteString(contentsHeading)
	for _, record := range records {
		fence := fenceFor(record.Content)
		fmt.Fprintf(builder, fileHeadingFormat, record.Path)
		builder.WriteString(fence + fenceLanguage(record.Path) + "\n")
		builder.WriteString(record.Content)
		if !strings.HasSuffix(record.Content, "\n") {
			builder.WriteString("\n")
		}
		builder.WriteString(fence + "\n\n")
	}
}

func writeSummaries(builder *strings.Builder, records []types.FileRecord) {
	builder.WriteString(summaryHeading)
	for _, record := range records {
		rendered := record.Summary
		if rendered == "" {
			rendered = summary.Render(summary.Summarize(record.Path, record.Content))
		}
		builder.WriteString(rendered)
		builder.WriteString(sectionSeparator)
	}
}

func writeStatistics(builder *strings.Builder, statistics types.Statistics, showTokens bool) {
	builder.WriteString(statisticsHeading)
	fmt.Fprintf(builder, totalFilesFormat, statistics.TotalFiles)
	fmt.Fprintf(builder, totalLinesFormat, statistics.TotalLines)
	if len(statistics.FileTypes) > 0 {
		builder.WriteString(fileTypesLine)
		for _, fileType := range sortedFileTypes(statistics.FileTypes) {
			fmt.Fprintf(builder, fileTypeFormat, fileType, statistics.FileTypes[fileType])
		}
	}
	if statistics.LargestFile.Path == "" {
		builder.WriteString(largestFileNone)
	} else {
		fmt.Fprintf(builder, largestFileFormat, statistics.LargestFile.Path, statistics.LargestFile.Lines)
	}
	fmt.Fprintf(builder, averageFileSizeFormat, statistics.AverageFileSize)
	fmt.Fprintf(builder, totalCharactersFormat, statistics.TotalCharacters)
	fmt.Fprintf(builder, directoriesFormat, statistics.DirectoriesProcessed)
	if showTokens {
		fmt.Fprintf(builder, estimatedTokensFormat, statistics.TotalTokens)
	}
}

// sortedFileTypes orders histogram keys by descending count, then by key.
func sortedFileTypes(fileTypes map[string]int) []string {
	keys := make([]string, 0, len(fileTypes))
	for key := range fileTypes {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(left, right int) bool {
		if fileTypes[keys[left]] != fileTypes[keys[right]] {
			return fileTypes[keys[left]] > fileTypes[keys[right]]
		}
		return keys[left] < keys[right]
	})
	return keys
}

// fenceFor returns a backtick fence longer than any backtick run inside text.
func fenceFor(text string) string {
	longestRun, currentRun := 0, 0
	for _, character := range text {
		if character == fenceCharacter {
			currentRun++
			if currentRun > longestRun {
				longestRun = currentRun
			}
			continue
		}
		currentRun = 0
	}
	if longestRun < minimumFenceCharacters {
		return codeFence
	}
	return strings.Repeat(string(fenceCharacter), longestRun+1)
}
