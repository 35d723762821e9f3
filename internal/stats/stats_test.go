package stats

import (
	"reflect"
	"strings"
	"testing"

	"github.com/temirov/codedigest/internal/types"
)

func record(path string, lines int, content string) types.FileRecord {
	return types.FileRecord{Path: path, Size: int64(len(content)), LineCount: lines, Content: content}
}

func TestTrackerAggregates(t *testing.T) {
	tracker := NewTracker()
	tracker.TrackFile(record("src/a.ts", 10, "abcd"))
	tracker.TrackFile(record("lib/b.TS", 80, "abcdefgh"))

	snapshot := tracker.Snapshot()
	if snapshot.TotalFiles != 2 {
		t.Fatalf("expected 2 files, got %d", snapshot.TotalFiles)
	}
	if snapshot.DirectoriesProcessed != 2 {
		t.Fatalf("expected 2 directories, got %d", snapshot.DirectoriesProcessed)
	}
	if snapshot.LargestFile.Lines != 80 || snapshot.LargestFile.Path != "lib/b.TS" {
		t.Fatalf("unexpected largest file %+v", snapshot.LargestFile)
	}
	if snapshot.TotalLines != 90 {
		t.Fatalf("expected 90 lines, got %d", snapshot.TotalLines)
	}
	if snapshot.TotalTokens != 3 {
		t.Fatalf("expected 3 tokens, got %d", snapshot.TotalTokens)
	}
	if snapshot.TotalCharacters != 12 {
		t.Fatalf("expected 12 characters, got %d", snapshot.TotalCharacters)
	}
	if !reflect.DeepEqual(snapshot.FileTypes, map[string]int{".ts": 2}) {
		t.Fatalf("unexpected histogram %v", snapshot.FileTypes)
	}
	if snapshot.AverageFileSize != 45 {
		t.Fatalf("expected average 45, got %d", snapshot.AverageFileSize)
	}
}

func TestTrackerLargestFileFirstSeenWinsTies(t *testing.T) {
	tracker := NewTracker()
	tracker.TrackFile(record("first.go", 30, ""))
	tracker.TrackFile(record("second.go", 30, ""))
	if largest := tracker.Snapshot().LargestFile; largest.Path != "first.go" {
		t.Fatalf("expected first file to win the tie, got %s", largest.Path)
	}
}

func TestTrackerIgnoresCurrentDirectoryAndBucketsExtensionless(t *testing.T) {
	tracker := NewTracker()
	tracker.TrackFile(record("Makefile", 3, "all:"))
	tracker.TrackFile(record(".env", 1, "A=1"))
	tracker.TrackFile(record("main.go", 5, "package main"))
	snapshot := tracker.Snapshot()
	if snapshot.DirectoriesProcessed != 0 {
		t.Fatalf("expected no directories for root files, got %d", snapshot.DirectoriesProcessed)
	}
	expected := map[string]int{types.NoExtensionBucket: 2, ".go": 1}
	if !reflect.DeepEqual(snapshot.FileTypes, expected) {
		t.Fatalf("unexpected histogram %v", snapshot.FileTypes)
	}
}

func TestTrackerReset(t *testing.T) {
	tracker := NewTracker()
	empty := tracker.Snapshot()
	tracker.TrackFile(record("pkg/x.py", 12, strings.Repeat("p", 40)))
	tracker.Reset()
	if afterReset := tracker.Snapshot(); !reflect.DeepEqual(afterReset, empty) {
		t.Fatalf("expected reset snapshot %+v, got %+v", empty, afterReset)
	}
}

func TestSnapshotIsIndependentOfTracker(t *testing.T) {
	tracker := NewTracker()
	tracker.TrackFile(record("a.go", 1, "x"))
	snapshot := tracker.Snapshot()
	tracker.TrackFile(record("b.go", 1, "y"))
	if snapshot.FileTypes[".go"] != 1 || snapshot.TotalFiles != 1 {
		t.Fatalf("expected snapshot to be unaffected by later tracking, got %+v", snapshot)
	}
}

func TestAverageFileSize(t *testing.T) {
	testCases := []struct {
		name     string
		lines    []int
		expected int
	}{
		{name: "no files", lines: nil, expected: 0},
		{name: "rounds down", lines: []int{10, 20, 25}, expected: 18},
		{name: "half rounds up", lines: []int{1, 2}, expected: 2},
		{name: "single file", lines: []int{7}, expected: 7},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			records := make([]types.FileRecord, 0, len(testCase.lines))
			for _, lines := range testCase.lines {
				records = append(records, record("f.txt", lines, ""))
			}
			if actual := AverageFileSize(records); actual != testCase.expected {
				t.Fatalf("expected %d, got %d", testCase.expected, actual)
			}
		})
	}
}
