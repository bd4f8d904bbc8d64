package markdown

import "strings"

// AppendBlock adds block after content, separated by one blank line. Content
// that does not end with a newline gets one first; nothing else changes.
func AppendBlock(content, block string) string {
	if strings.TrimSpace(content) == "" {
		return block
	}
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return content + "\n" + block
}
