package utils_test

import (
	"strings"
	"testing"
	"time"

	"github.com/temirov/codedigest/internal/utils"
)

func TestFormatFileSize(testingInstance *testing.T) {
	testCases := []struct {
		name     string
		bytes    int64
		expected string
	}{
		{name: "negative", bytes: -1, expected: "0b"},
		{name: "zero", bytes: 0, expected: "0b"},
		{name: "bytes", bytes: 512, expected: "512b"},
		{name: "one kilobyte", bytes: 1024, expected: "1kb"},
		{name: "fractional kilobyte", bytes: 1536, expected: "1.5kb"},
		{name: "ten megabytes", bytes: 10 * 1024 * 1024, expected: "10mb"},
	}
	for _, testCase := range testCases {
		testingInstance.Run(testCase.name, func(testingInstance *testing.T) {
			result := utils.FormatFileSize(testCase.bytes)
			if result != testCase.expected {
				testingInstance.Fatalf("expected %s, got %s", testCase.expected, result)
			}
		})
	}
}

func TestFormatTimestamp(testingInstance *testing.T) {
	if result := utils.FormatTimestamp(time.Time{}); result != "" {
		testingInstance.Fatalf("expected empty string for zero time, got %q", result)
	}
	value := time.Date(2024, time.January, 2, 15, 4, 5, 0, time.Local)
	if result := utils.FormatTimestamp(value); !strings.HasPrefix(result, "2024-01-02 15:04:05 ") {
		testingInstance.Fatalf("unexpected timestamp %q", result)
	}
}

func TestTruncate(testingInstance *testing.T) {
	testCases := []struct {
		name      string
		text      string
		maxLength int
		expected  string
	}{
		{name: "shorter than limit", text: "abc", maxLength: 5, expected: "abc"},
		{name: "equal to limit", text: "abcde", maxLength: 5, expected: "abcde"},
		{name: "longer than limit", text: strings.Repeat("a", 10), maxLength: 5, expected: "aaaaa... [truncated]"},
		{name: "multibyte characters", text: "äöüß", maxLength: 2, expected: "äö... [truncated]"},
	}
	for _, testCase := range testCases {
		testingInstance.Run(testCase.name, func(testingInstance *testing.T) {
			if result := utils.Truncate(testCase.text, testCase.maxLength); result != testCase.expected {
				testingInstance.Fatalf("expected %q, got %q", testCase.expected, result)
			}
		})
	}
}
