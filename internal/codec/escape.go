package codec

import "strings"

// Escape prefixes every byte that would end an option token with a
// backslash: space and other control bytes, newline, '=' and the backslash
// itself.
func Escape(s string) string {
	if !strings.ContainsFunc(s, func(r rune) bool { return r <= ' ' || r == '=' || r == '\\' }) {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if needsEscape(c) {
			sb.WriteByte('\\')
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

// Unescape drops each escaping backslash and keeps the byte after it. A
// trailing lone backslash is dropped.
func Unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' {
			i++
			if i >= len(s) {
				break
			}
			c = s[i]
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

func needsEscape(c byte) bool {
	return c <= ' ' || c == '=' || c == '\\'
}
