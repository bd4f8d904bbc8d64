package slug

import (
	"regexp"
	"strings"
)

var unsafeFileChars = regexp.MustCompile(`[/\\:*?"<>|]+`)

// FileName turns a key into a note file name stem. Path separators and
// characters most filesystems reject become hyphens.
func FileName(input string) string {
	s := strings.TrimSpace(input)
	s = unsafeFileChars.ReplaceAllString(s, "-")
	s = strings.Trim(s, "- .")
	if s == "" {
		return "untitled"
	}
	return s
}
