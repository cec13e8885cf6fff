package extract

import "strings"

const utf8BOM = "\ufeff"

// extractPlain decodes a text upload: the byte order mark is dropped, line endings become
// "\n" and invalid UTF-8 is replaced.
func extractPlain(content []byte) string {
	s := strings.ToValidUTF8(string(content), "\ufffd")
	s = strings.TrimPrefix(s, utf8BOM)
	return strings.ReplaceAll(s, "\r\n", "\n")
}
