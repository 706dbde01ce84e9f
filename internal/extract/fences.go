package extract

import "strings"

const fenceDelim = "```"

// ScanFences returns the contents of every triple-backtick fenced block in
// text, in order of appearance. Matching is non-overlapping and non-nested:
// the first closing delimiter terminates a block. A language tag on the
// opening line is not part of the content. An unterminated opening fence
// yields no block.
func ScanFences(text string) []string {
	var blocks []string
	rest := text
	for {
		open := strings.Index(rest, fenceDelim)
		if open < 0 {
			break
		}
		rest = rest[open+len(fenceDelim):]
		end := strings.Index(rest, fenceDelim)
		if end < 0 {
			break
		}
		content := rest[:end]
		rest = rest[end+len(fenceDelim):]
		// The opening line is the fence's info string ("python", "", ...),
		// not content. Inline fences have no info string.
		if nl := strings.IndexByte(content, '\n'); nl >= 0 {
			content = content[nl+1:]
		}
		blocks = append(blocks, content)
	}
	return blocks
}
