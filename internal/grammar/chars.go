package grammar

// IsAlpha checks ALPHA rule.
func IsAlpha(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

// IsUpper reports whether c is an uppercase ASCII letter.
func IsUpper(c byte) bool { return 'A' <= c && c <= 'Z' }

// IsDigit checks DIGIT rule.
func IsDigit(c byte) bool { return '0' <= c && c <= '9' }

// IsHexDigit checks HEXDIG rule (case-insensitive).
func IsHexDigit(c byte) bool {
	switch {
	case '0' <= c && c <= '9':
		return true
	case 'a' <= c && c <= 'f':
		return true
	case 'A' <= c && c <= 'F':
		return true
	}
	return false
}

// IsUnreserved checks unreserved rule:
//
//	unreserved = ALPHA / DIGIT / "-" / "." / "_" / "~"
func IsUnreserved(c byte) bool {
	switch c {
	case '-', '.', '_', '~':
		return true
	}
	return IsAlpha(c) || IsDigit(c)
}

// IsSubDelim checks sub-delims rule:
//
//	sub-delims = "!" / "$" / "&" / "'" / "(" / ")" / "*" / "+" / "," / ";" / "="
func IsSubDelim(c byte) bool {
	switch c {
	case '!', '$', '&', '\'', '(', ')', '*', '+', ',', ';', '=':
		return true
	}
	return false
}

// IsSchemeChar checks characters allowed after the first one in a scheme.
func IsSchemeChar(c byte) bool {
	return IsAlpha(c) || IsDigit(c) || c == '+' || c == '-' || c == '.'
}

// isPChar checks pchar rule without the pct-encoded alternative.
func isPChar(c byte) bool {
	return IsUnreserved(c) || IsSubDelim(c) || c == ':' || c == '@'
}

// Unhex returns the value of a hex digit.
// The result is undefined if c is not a hex digit.
func Unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}

const upperhex = "0123456789ABCDEF"

func lower(c byte) byte {
	if IsUpper(c) {
		return c + ('a' - 'A')
	}
	return c
}
