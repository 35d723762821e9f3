// Package stats accumulates the aggregates of one analysis run.
package stats

import (
	"math"
	"path"
	"unicode/utf8"

	"github.com/temirov/codedigest/internal/tokenizer"
	"github.com/temirov/codedigest/internal/types"
	"github.com/temirov/codedigest/internal/utils"
)

// Tracker collects running totals as files are admitted. It is owned by a single
// run and is not safe for concurrent use.
type Tracker struct {
	totalFiles      int
	totalLines      int
	totalTokens     int
	totalCharacters int
	fileTypes       map[string]int
	directories     map[string]struct{}
	largestFile     types.LargestFile
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker {
	tracker := &Tracker{}
	tracker.Reset()
	return tracker
}

// TrackFile records one admitted file.
func (tracker *Tracker) TrackFile(record types.FileRecord) {
	tracker.totalFiles++
	tracker.totalLines += record.LineCount
	tracker.totalCharacters += utf8.RuneCountInString(record.Content)
	tracker.totalTokens += tokenizer.Estimate(record.Content)
	tracker.fileTypes[HistogramKey(record.Path)]++

	directory := path.Dir(record.Path)
	if directory != utils.CurrentDirectory {
		tracker.directories[directory] = struct{}{}
	}
	if record.LineCount > tracker.largestFile.Lines {
		tracker.largestFile = types.LargestFile{Path: record.Path, Lines: record.LineCount}
	}
}

// Reset restores the tracker to its initial empty state.
func (tracker *Tracker) Reset() {
	*tracker = Tracker{
		fileTypes:   make(map[string]int),
		directories: make(map[string]struct{}),
	}
}

// Snapshot returns a copy of the current aggregates.
func (tracker *Tracker) Snapshot() types.Statistics {
	fileTypes := make(map[string]int, len(tracker.fileTypes))
	for extension, count := range tracker.fileTypes {
		fileTypes[extension] = count
	}
	return types.Statistics{
		TotalFiles:           tracker.totalFiles,
		TotalLines:           tracker.totalLines,
		TotalTokens:          tracker.totalTokens,
		TotalCharacters:      tracker.totalCharacters,
		DirectoriesProcessed: len(tracker.directories),
		FileTypes:            fileTypes,
		LargestFile:          tracker.largestFile,
		AverageFileSize:      averageLines(tracker.totalLines, tracker.totalFiles),
	}
}

// HistogramKey returns the lower-cased extension of a file path, or types.NoExtensionBucket.
func HistogramKey(slashPath string) string {
	extension := utils.Extension(slashPath)
	if extension == "" {
		return types.NoExtensionBucket
	}
	return extension
}

// AverageFileSize returns the mean line count of records rounded to the nearest integer, 0 for none.
func AverageFileSize(records []types.FileRecord) int {
	totalLines := 0
	for _, record := range records {
		totalLines += record.LineCount
	}
	return averageLines(totalLines, len(records))
}

func averageLines(totalLines int, totalFiles int) int {
	if totalFiles == 0 {
		return 0
	}
	return int(math.Floor(float64(totalLines)/float64(totalFiles) + 0.5))
}
