package utils

// TruncationSuffix is appended to text shortened by Truncate.
const TruncationSuffix = "... [truncated]"

// Truncate returns text unchanged when it holds at most maxLength characters,
// otherwise its first maxLength characters followed by TruncationSuffix.
func Truncate(text string, maxLength int) string {
	if maxLength < 0 {
		maxLength = 0
	}
	characters := []rune(text)
	if len(characters) <= maxLength {
		return text
	}
	return string(characters[:maxLength]) + TruncationSuffix
}
