// Package repair applies bounded heuristic fixes to extracted code so that
// superficial artifacts (stray closers, trailing commas, template braces) do
// not cause spurious parse failures. It never attempts semantic correction.
package repair

import (
	"regexp"
	"strings"
)

var (
	fstringPattern = regexp.MustCompile(`f"[^"]*\{[^}]*\}[^"]*"`)
	trailingComma  = regexp.MustCompile(`(?:,\s*)+\)`)
)

// Repair normalizes code for parsing. It strips comments, trims excess
// closing brackets, escapes literal braces inside f-strings, and removes
// trailing commas before a closing parenthesis, consuming a whole run of
// them at once. Repair is idempotent: applying it to its own output changes
// nothing.
//
// Excess opening brackets are deliberately left alone. Guessing insertion
// points for missing closers risks corrupting code that is balanced
// differently than it looks (brackets inside strings), so under-closed code
// surfaces as a parse error instead.
func Repair(code string) string {
	code = stripComments(code)
	code = trimExcessClosers(code, '(', ')')
	code = trimExcessClosers(code, '[', ']')
	code = trimExcessClosers(code, '{', '}')
	code = escapeFStringBraces(code)
	code = trailingComma.ReplaceAllString(code, ")")
	return strings.TrimSpace(code)
}

// stripComments drops blank lines, comment-only lines, and inline trailing
// comments. Comment detection is a line-oriented heuristic with naive quote
// tracking; a # inside a triple-quoted string body is mis-stripped. Known
// limitation, kept deliberately.
func stripComments(code string) string {
	lines := strings.Split(code, "\n")
	var kept []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if cut, ok := cutInlineComment(line); ok {
			if strings.TrimSpace(cut) == "" {
				continue
			}
			line = cut
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// cutInlineComment removes everything from the first # that is not inside a
// single- or double-quoted span on the same line.
func cutInlineComment(line string) (string, bool) {
	inSingle, inDouble := false, false
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case '\'':
			if !inDouble {
				inSingle = !inSingle
			}
		case '"':
			if !inSingle {
				inDouble = !inDouble
			}
		case '#':
			if !inSingle && !inDouble {
				return strings.TrimRight(line[:i], " \t"), true
			}
		}
	}
	return line, false
}

// trimExcessClosers removes surplus closing symbols, rightmost first, until
// the closing count no longer exceeds the opening count. It never inserts
// closers for an excess of openings.
func trimExcessClosers(code string, open, close byte) string {
	excess := strings.Count(code, string(close)) - strings.Count(code, string(open))
	for ; excess > 0; excess-- {
		i := strings.LastIndexByte(code, close)
		code = code[:i] + code[i+1:]
	}
	return code
}

// escapeFStringBraces doubles literal braces inside single-line f-strings
// that contain a balanced brace pair. Strings already carrying doubled
// braces are left untouched, which keeps Repair idempotent.
func escapeFStringBraces(code string) string {
	return fstringPattern.ReplaceAllStringFunc(code, func(s string) string {
		if strings.Contains(s, "{{") || strings.Contains(s, "}}") {
			return s
		}
		s = strings.ReplaceAll(s, "{", "{{")
		return strings.ReplaceAll(s, "}", "}}")
	})
}
