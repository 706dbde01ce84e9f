package extract

import (
	"regexp"
	"strings"
)

const thinkOpen = "<think>"

var (
	thinkRegion  = regexp.MustCompile(`(?s)<think>.*?</think>`)
	preambleLine = regexp.MustCompile(`(?i)^\s*(thinking|thoughts?|reasoning|analysis)\s*:`)
	codeStart    = regexp.MustCompile(`(?m)^[ \t]*(def |async def |class |import |from |@\w|if __name__)`)
	callStart    = regexp.MustCompile(`\b[A-Za-z_][A-Za-z0-9_]*\(`)
	proseHeader  = regexp.MustCompile(`(?i)^\s*(explanations?|notes?|outputs?|results?|examples?|usage)\s*:`)
	endComment   = regexp.MustCompile(`(?i)^\s*#\s*end\b`)
)

// Extract isolates the intended code from one raw model response. The
// fallback ladder, in strict precedence order:
//
//  1. discard reasoning regions (<think>...</think>) entirely
//  2. drop whole-line reasoning preambles ("Thinking:", "Analysis:", ...)
//  3. prefer fenced blocks, selecting the longest (ties: first occurrence)
//  4. otherwise take from the first code-start marker onward, truncated at
//     the first prose section header or end-marker comment
//  5. otherwise return the empty result; raw prose is never passed through
//
// The returned code is trimmed of surrounding whitespace; an empty string
// means no code was detected.
func Extract(raw string) string {
	text := thinkRegion.ReplaceAllString(raw, "")
	// An unclosed reasoning region extends to end of text. Dropping it is
	// the only way to guarantee deliberation never leaks into code.
	if i := strings.Index(text, thinkOpen); i >= 0 {
		text = text[:i]
	}
	text = dropPreambleLines(text)

	if blocks := ScanFences(text); len(blocks) > 0 {
		return strings.TrimSpace(longestBlock(blocks))
	}

	seg := findCodeStart(text)
	if seg == "" {
		return ""
	}
	return strings.TrimSpace(truncateAtProse(seg))
}

func dropPreambleLines(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if preambleLine.MatchString(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// longestBlock returns the longest block by character count; the first
// occurrence wins ties.
func longestBlock(blocks []string) string {
	best := blocks[0]
	for _, b := range blocks[1:] {
		if len(b) > len(best) {
			best = b
		}
	}
	return best
}

// findCodeStart locates the first recognizable piece of code in unfenced
// text. Statement markers at the start of a line take precedence; a bare
// call expression is the last resort, covering answers like "print(42)"
// embedded in prose.
func findCodeStart(text string) string {
	if loc := codeStart.FindStringIndex(text); loc != nil {
		return text[loc[0]:]
	}
	if loc := callStart.FindStringIndex(text); loc != nil {
		return text[loc[0]:]
	}
	return ""
}

// truncateAtProse cuts the segment at the first line that reads like a prose
// section header ("Explanation:", "Output:", ...) or an explicit end-marker
// comment.
func truncateAtProse(seg string) string {
	lines := strings.Split(seg, "\n")
	for i, line := range lines {
		if i == 0 {
			continue
		}
		if proseHeader.MatchString(line) || endComment.MatchString(line) {
			return strings.Join(lines[:i], "\n")
		}
	}
	return seg
}
