package sanitize

import (
	"regexp"
	"strconv"
	"strings"
)

// Clean repairs common ways language models deviate from strict JSON. The
// transforms run in a fixed order; later passes assume the earlier ones have
// already run (e.g. bare-key quoting assumes comments are gone and string
// delimiters are double quotes):
//
//  1. strip // line comments and /* */ block comments
//  2. remove trailing commas before } or ]
//  3. convert single-quote string delimiters to double quotes
//  4. quote bare identifier keys ({a: 1} -> {"a": 1})
//  5. normalize non-JSON literals (undefined -> null, True -> true, False -> false)
//  6. evaluate quoted numeric fractions ("3/4" -> 0.75)
//  7. collapse whitespace runs outside strings and trim
//
// Every pass tracks string and escape context, so structural characters
// inside double-quoted values are left alone. Known limitation: an apostrophe
// inside a single-quoted value is indistinguishable from a closing delimiter
// and will corrupt that value ('it''s' territory); real model output rarely
// hits this, and the downstream parse treats it as a normal failure.
func Clean(text string) string {
	s := strings.TrimPrefix(text, "\uFEFF")
	s = stripComments(s)
	s = removeTrailingCommas(s)
	s = normalizeQuotes(s)
	s = quoteBareKeys(s)
	s = normalizeLiterals(s)
	s = evalFractions(s)
	s = collapseWhitespace(s)
	return s
}

// stripComments removes // line comments and /* */ block comments appearing
// outside string literals. Both double- and single-quoted strings are honored
// because this pass runs before quote normalization.
func stripComments(s string) string {
	var out strings.Builder
	out.Grow(len(s))

	var inDouble, inSingle, escaped bool
	for i := 0; i < len(s); i++ {
		c := s[i]

		if inDouble || inSingle {
			out.WriteByte(c)
			if escaped {
				escaped = false
				continue
			}
			switch {
			case c == '\\':
				escaped = true
			case c == '"' && inDouble:
				inDouble = false
			case c == '\'' && inSingle:
				inSingle = false
			}
			continue
		}

		if c == '/' && i+1 < len(s) {
			if s[i+1] == '/' {
				for i < len(s) && s[i] != '\n' {
					i++
				}
				if i < len(s) {
					out.WriteByte('\n')
				}
				continue
			}
			if s[i+1] == '*' {
				end := strings.Index(s[i+2:], "*/")
				if end < 0 {
					break // unterminated block comment swallows the rest
				}
				i += 2 + end + 1
				continue
			}
		}

		switch c {
		case '"':
			inDouble = true
		case '\'':
			inSingle = true
		}
		out.WriteByte(c)
	}
	return out.String()
}

// removeTrailingCommas drops commas that are immediately (modulo whitespace)
// followed by a closing brace or bracket.
func removeTrailingCommas(s string) string {
	var out strings.Builder
	out.Grow(len(s))

	var inDouble, inSingle, escaped bool
	for i := 0; i < len(s); i++ {
		c := s[i]

		if inDouble || inSingle {
			out.WriteByte(c)
			if escaped {
				escaped = false
				continue
			}
			switch {
			case c == '\\':
				escaped = true
			case c == '"' && inDouble:
				inDouble = false
			case c == '\'' && inSingle:
				inSingle = false
			}
			continue
		}

		if c == ',' {
			j := i + 1
			for j < len(s) && isSpace(s[j]) {
				j++
			}
			if j < len(s) && (s[j] == '}' || s[j] == ']') {
				continue // drop the comma, keep the whitespace
			}
		}

		switch c {
		case '"':
			inDouble = true
		case '\'':
			inSingle = true
		}
		out.WriteByte(c)
	}
	return out.String()
}

// normalizeQuotes converts single-quote delimiters to double quotes.
// Apostrophes inside double-quoted strings are preserved.
func normalizeQuotes(s string) string {
	var out strings.Builder
	out.Grow(len(s))

	var inDouble, escaped bool
	for i := 0; i < len(s); i++ {
		c := s[i]

		if inDouble {
			out.WriteByte(c)
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inDouble = false
			}
			continue
		}

		if c == '\'' {
			out.WriteByte('"')
			continue
		}
		if c == '"' {
			inDouble = true
		}
		out.WriteByte(c)
	}
	return out.String()
}

// quoteBareKeys wraps unquoted identifier keys in double quotes. A key is an
// identifier that follows { or , (outside any string) and is itself followed
// by a colon; identifiers in value position are left for the literal pass.
func quoteBareKeys(s string) string {
	var out strings.Builder
	out.Grow(len(s) + 8)

	var inDouble, escaped bool
	lastStructural := byte(0)
	for i := 0; i < len(s); i++ {
		c := s[i]

		if inDouble {
			out.WriteByte(c)
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inDouble = false
			}
			continue
		}

		if isIdentStart(c) && (lastStructural == '{' || lastStructural == ',') {
			j := i
			for j < len(s) && isIdentPart(s[j]) {
				j++
			}
			k := j
			for k < len(s) && isSpace(s[k]) {
				k++
			}
			if k < len(s) && s[k] == ':' {
				out.WriteByte('"')
				out.WriteString(s[i:j])
				out.WriteByte('"')
				i = j - 1
				lastStructural = '"'
				continue
			}
		}

		if c == '"' {
			inDouble = true
		}
		if !isSpace(c) {
			lastStructural = c
		}
		out.WriteByte(c)
	}
	return out.String()
}

// literalReplacements maps non-JSON literals emitted by models onto their
// JSON equivalents. Applied word-wise outside strings only.
var literalReplacements = map[string]string{
	"undefined": "null",
	"True":      "true",
	"False":     "false",
}

// normalizeLiterals rewrites bare words per literalReplacements.
func normalizeLiterals(s string) string {
	var out strings.Builder
	out.Grow(len(s))

	var inDouble, escaped bool
	for i := 0; i < len(s); i++ {
		c := s[i]

		if inDouble {
			out.WriteByte(c)
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inDouble = false
			}
			continue
		}

		if isIdentStart(c) {
			j := i
			for j < len(s) && isIdentPart(s[j]) {
				j++
			}
			word := s[i:j]
			if replacement, ok := literalReplacements[word]; ok {
				out.WriteString(replacement)
			} else {
				out.WriteString(word)
			}
			i = j - 1
			continue
		}

		if c == '"' {
			inDouble = true
		}
		out.WriteByte(c)
	}
	return out.String()
}

var fractionRe = regexp.MustCompile(`^-?\d+/\d+$`)

// evalFractions replaces a double-quoted string whose entire content is a
// numeric fraction ("3/4") with the unquoted decimal quotient (0.75).
// Division by zero leaves the original string untouched.
func evalFractions(s string) string {
	var out strings.Builder
	out.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '"' {
			out.WriteByte(c)
			continue
		}

		// Collect the string literal including both delimiters.
		j := i + 1
		escaped := false
		for j < len(s) {
			if escaped {
				escaped = false
			} else if s[j] == '\\' {
				escaped = true
			} else if s[j] == '"' {
				break
			}
			j++
		}
		if j >= len(s) {
			// Unterminated string: emit the rest verbatim.
			out.WriteString(s[i:])
			break
		}

		content := s[i+1 : j]
		if fractionRe.MatchString(content) {
			if quotient, ok := evalFraction(content); ok {
				out.WriteString(quotient)
				i = j
				continue
			}
		}
		out.WriteString(s[i : j+1])
		i = j
	}
	return out.String()
}

// evalFraction computes "n/d" as a decimal string. Returns false when the
// denominator is zero.
func evalFraction(content string) (string, bool) {
	slash := strings.IndexByte(content, '/')
	numerator, err := strconv.ParseFloat(content[:slash], 64)
	if err != nil {
		return "", false
	}
	denominator, err := strconv.ParseFloat(content[slash+1:], 64)
	if err != nil || denominator == 0 {
		return "", false
	}
	return strconv.FormatFloat(numerator/denominator, 'f', -1, 64), true
}

// collapseWhitespace reduces whitespace runs outside strings to a single
// space and trims the ends. Whitespace inside string values survives intact.
func collapseWhitespace(s string) string {
	var out strings.Builder
	out.Grow(len(s))

	var inDouble, escaped, pendingSpace bool
	for i := 0; i < len(s); i++ {
		c := s[i]

		if inDouble {
			out.WriteByte(c)
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inDouble = false
			}
			continue
		}

		if isSpace(c) {
			pendingSpace = out.Len() > 0
			continue
		}
		if pendingSpace {
			out.WriteByte(' ')
			pendingSpace = false
		}
		if c == '"' {
			inDouble = true
		}
		out.WriteByte(c)
	}
	return out.String()
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
