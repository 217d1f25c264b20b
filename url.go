package aclhelper

import "strings"

// URLDecode reverses the percent-escaping and '+'-for-space encoding
// a proxy applies to a request token before writing it to the
// helper's stdin. If s has no '%' in it at all, it is returned
// unmodified - no allocation, no scan past the check itself - since
// that's the overwhelmingly common case for plain hostnames and IPs.
func URLDecode(s string) string {
	if !strings.ContainsRune(s, '%') {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '%' && i+2 < len(s):
			hi, okHi := hexDigit(s[i+1])
			lo, okLo := hexDigit(s[i+2])
			if okHi && okLo {
				b.WriteByte(hi<<4 | lo)
				i += 2
				continue
			}
			b.WriteByte(c)
		case c == '+':
			b.WriteByte(' ')
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func hexDigit(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// Tokenize splits one protocol line into fields on runs of space and
// '+', discarding empty fields. Both characters are field separators
// at this stage; a literal '+' meaning an encoded space only ever
// shows up inside a field that is itself percent-escaped (%2B), never
// as a raw '+' surviving to URLDecode.
func Tokenize(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == '+'
	})
}
