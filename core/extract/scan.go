package extract

import "strings"

// matchingBrace returns the index of the '}' closing the '{' at open, or -1
// when the object is unterminated. The scan tracks double-quoted string and
// escape context so braces inside string values do not disturb the balance.
func matchingBrace(s string, open int) int {
	depth := 0
	inString := false
	escaped := false

	for i := open; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return i
				}
			}
		}
	}
	return -1
}

// braceBalance counts opening and closing braces outside string literals.
func braceBalance(s string) (open, closed int) {
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				open++
			}
		case '}':
			if !inString {
				closed++
			}
		}
	}
	return open, closed
}

// danglingTail reports how the candidate text trails off: the last
// non-whitespace byte, which tells partial completion whether the truncation
// point is mid-field (',' or ':') or after a complete value.
func danglingTail(s string) byte {
	trimmed := strings.TrimRight(s, " \t\r\n")
	if trimmed == "" {
		return 0
	}
	return trimmed[len(trimmed)-1]
}

// lastKey extracts the key of the final "key": pair preceding the truncation
// point, so its dangling value can be completed from the schema. Works for
// both quoted and bare keys; returns "" when no key can be identified.
func lastKey(s string) string {
	trimmed := strings.TrimRight(s, " \t\r\n")
	trimmed = strings.TrimSuffix(trimmed, ":")
	trimmed = strings.TrimRight(trimmed, " \t\r\n")
	if trimmed == "" {
		return ""
	}

	if strings.HasSuffix(trimmed, "\"") {
		// Quoted key: scan back to the opening quote.
		end := len(trimmed) - 1
		for i := end - 1; i >= 0; i-- {
			if trimmed[i] == '"' && (i == 0 || trimmed[i-1] != '\\') {
				return trimmed[i+1 : end]
			}
		}
		return ""
	}

	// Bare key: take the trailing identifier run.
	end := len(trimmed)
	start := end
	for start > 0 && isIdentByte(trimmed[start-1]) {
		start--
	}
	return trimmed[start:end]
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
