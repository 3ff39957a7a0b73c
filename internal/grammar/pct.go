package grammar

import (
	"strings"

	"github.com/ghettovoice/uri/internal/util"
)

// SkipPctEncoded validates the pct-encoded triple starting at s[i] == '%'
// and returns the index right after it.
//
//	pct-encoded = "%" HEXDIG HEXDIG
//
// The normalized flag is cleared when the triple uses lowercase hex digits
// or encodes an unreserved octet (RFC 3986 Section 2.1 and 2.3).
// The flag is never set back to true.
func SkipPctEncoded(s string, i int, normalized *bool) (int, error) {
	if i+2 >= len(s) {
		return i, newPctEncodedErr(s, i)
	}
	hi, lo := s[i+1], s[i+2]
	if !IsHexDigit(hi) || !IsHexDigit(lo) {
		return i, newPctEncodedErr(s, i)
	}
	if normalized != nil && *normalized {
		if 'a' <= hi && hi <= 'f' || 'a' <= lo && lo <= 'f' || IsUnreserved(Unhex(hi)<<4|Unhex(lo)) {
			*normalized = false
		}
	}
	return i + 3, nil
}

// DecodePctEncoded decodes the run of consecutive pct-encoded triples starting at s[i] == '%'.
// The decoded octets are interpreted as UTF-8, invalid sequences are replaced with U+FFFD.
// It returns the decoded text and the index right after the last decoded triple.
//
// A malformed triple stops the run. If the very first triple is malformed,
// a literal "%" is returned and the index is advanced by one byte.
func DecodePctEncoded(s string, i int) (string, int) {
	var (
		arr [16]byte
		buf = arr[:0]
		j   = i
	)
	for j+2 < len(s) && s[j] == '%' && IsHexDigit(s[j+1]) && IsHexDigit(s[j+2]) {
		buf = append(buf, Unhex(s[j+1])<<4|Unhex(s[j+2]))
		j += 3
	}
	if j == i {
		return "%", i + 1
	}
	return strings.ToValidUTF8(string(buf), "\uFFFD"), j
}

// Unescape leniently decodes all pct-encoded triples of s.
// Malformed triples are kept as is. If plusAsSpace is true, "+" is decoded as a space.
func Unescape(s string, plusAsSpace bool) string {
	if strings.IndexByte(s, '%') < 0 && (!plusAsSpace || strings.IndexByte(s, '+') < 0) {
		return s
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	sb.Grow(len(s))
	for i := 0; i < len(s); {
		switch c := s[i]; {
		case c == '%':
			var dec string
			dec, i = DecodePctEncoded(s, i)
			sb.WriteString(dec)
		case c == '+' && plusAsSpace:
			sb.WriteByte(' ')
			i++
		default:
			sb.WriteByte(c)
			i++
		}
	}
	return sb.String()
}

func shouldEscapeDefault(c byte) bool { return !IsUnreserved(c) }

// Escape encodes every byte of s matched by the shouldEscape callback to the form "%" HEXDIG HEXDIG
// with uppercase hex digits. A nil callback escapes everything except unreserved characters.
// Unlike the decoder, Escape always encodes "%" itself.
func Escape(s string, shouldEscape func(c byte) bool) string {
	if shouldEscape == nil {
		shouldEscape = shouldEscapeDefault
	}

	var n int
	for i := 0; i < len(s); i++ {
		if shouldEscape(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	buf := make([]byte, 0, len(s)+2*n)
	for i := 0; i < len(s); i++ {
		if c := s[i]; shouldEscape(c) {
			buf = append(buf, '%', upperhex[c>>4], upperhex[c&15])
		} else {
			buf = append(buf, c)
		}
	}
	return string(buf)
}

// EscapeForm encodes s using the form encoding convention: space becomes "+",
// everything else is escaped as by [Escape] with the default callback.
func EscapeForm(s string) string {
	if strings.IndexByte(s, ' ') < 0 {
		return Escape(s, nil)
	}
	return strings.ReplaceAll(Escape(s, func(c byte) bool { return c != ' ' && !IsUnreserved(c) }), " ", "+")
}

// NormalizePctEncoded uppercases hex digits of all pct-encoded triples
// and decodes triples denoting unreserved octets.
func NormalizePctEncoded(s string) string { return normalize(s, false) }

// NormalizeHost does the same as [NormalizePctEncoded] and additionally lowercases ASCII letters.
func NormalizeHost(s string) string { return normalize(s, true) }

func normalize(s string, lowerCase bool) string {
	if !needsNormalize(s, lowerCase) {
		return s
	}

	buf := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '%' && i+2 < len(s) && IsHexDigit(s[i+1]) && IsHexDigit(s[i+2]) {
			b := Unhex(s[i+1])<<4 | Unhex(s[i+2])
			if IsUnreserved(b) {
				if lowerCase {
					b = lower(b)
				}
				buf = append(buf, b)
			} else {
				buf = append(buf, '%', upperhex[b>>4], upperhex[b&15])
			}
			i += 2
			continue
		}
		if lowerCase {
			c = lower(c)
		}
		buf = append(buf, c)
	}
	return string(buf)
}

func needsNormalize(s string, lowerCase bool) bool {
	normalized := true
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '%':
			next, err := SkipPctEncoded(s, i, &normalized)
			if err != nil {
				continue
			}
			if !normalized {
				return true
			}
			i = next - 1
		case lowerCase && IsUpper(c):
			return true
		}
	}
	return false
}
