// Package content loads file content for admitted files.
package content

import (
	"fmt"
	"os"
	"path"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/temirov/codedigest/internal/utils"
)

const (
	// TruncationCeiling is the number of bytes of text kept per file.
	TruncationCeiling = 16 * 1024

	binaryPlaceholderFormat = "[Binary file: %s (%d bytes)]"
	truncationMarkerFormat  = "\n... [truncated: showing %d of %d bytes]"
	logMessageTruncated     = "content truncated"
	logMessageSummarized    = "structured config summarized"
	logFieldPath            = "path"
	logFieldShownBytes      = "shown_bytes"
	logFieldOriginalBytes   = "original_bytes"
	lineSeparator           = "\n"
)

// File is the loaded content of one file.
type File struct {
	// Text is the content recorded in the document.
	Text string
	// Source is the untruncated text Text was derived from.
	Source string
}

// Reader loads the text recorded for a file.
type Reader struct {
	logger *zap.Logger
}

// NewReader constructs a Reader that reports truncation through logger.
func NewReader(logger *zap.Logger) Reader {
	return Reader{logger: utils.LoggerOrNop(logger)}
}

// Read loads the file at absolutePath. Binary files are never opened and yield a
// placeholder naming the file and its size. Recognized structured configs are
// reduced to their selected keys, and text beyond TruncationCeiling is cut at a
// line boundary; Source keeps the file text untouched. Read errors are returned
// unwrapped so callers can classify them.
func (reader Reader) Read(absolutePath string, displayPath string, size int64) (File, error) {
	if IsBinaryPath(displayPath) {
		placeholder := BinaryPlaceholder(displayPath, size)
		return File{Text: placeholder, Source: placeholder}, nil
	}
	// #nosec G304
	raw, readError := os.ReadFile(absolutePath)
	if readError != nil {
		return File{}, readError
	}
	source := string(raw)
	text := source
	if summary, summarized := summarizeManifest(path.Base(displayPath), raw); summarized {
		reader.logger.Debug(logMessageSummarized, zap.String(logFieldPath, displayPath))
		text = summary
	}
	truncated, wasTruncated := TruncateContent(text)
	if wasTruncated {
		reader.logger.Debug(logMessageTruncated,
			zap.String(logFieldPath, displayPath),
			zap.Int(logFieldShownBytes, shownLength(text)),
			zap.Int(logFieldOriginalBytes, len(text)),
		)
	}
	return File{Text: truncated, Source: source}, nil
}

// BinaryPlaceholder is the content recorded for a binary file.
func BinaryPlaceholder(displayPath string, size int64) string {
	return fmt.Sprintf(binaryPlaceholderFormat, path.Base(displayPath), size)
}

// TruncateContent cuts text longer than TruncationCeiling bytes at the last newline at
// or before the ceiling and appends a marker with the shown and original sizes.
func TruncateContent(text string) (string, bool) {
	if len(text) <= TruncationCeiling {
		return text, false
	}
	shown := text[:shownLength(text)]
	return shown + truncationMarker(len(shown), len(text)), true
}

func shownLength(text string) int {
	if len(text) <= TruncationCeiling {
		return len(text)
	}
	window := text[:TruncationCeiling]
	if lastNewline := strings.LastIndex(window, lineSeparator); lastNewline >= 0 {
		return lastNewline
	}
	cut := TruncationCeiling
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return cut
}

func truncationMarker(shownBytes int, originalBytes int) string {
	return fmt.Sprintf(truncationMarkerFormat, shownBytes, originalBytes)
}

// CountLines returns the number of lines in text; empty text is one line.
func CountLines(text string) int {
	return strings.Count(text, lineSeparator) + 1
}
