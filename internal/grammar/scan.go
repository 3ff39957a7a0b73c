package grammar

import (
	"braces.dev/errtrace"

	"github.com/ghettovoice/uri/internal/errorutil"
)

// Span is a half-open byte range [Start, End) of a component within the scanned input.
type Span struct {
	Start, End int
}

// Len returns the length of the span.
func (sp Span) Len() int { return sp.End - sp.Start }

// Of returns the spanned substring of s.
func (sp Span) Of(s string) string { return s[sp.Start:sp.End] }

// ScanScheme scans the scheme starting at s[pos]:
//
//	scheme = ALPHA *( ALPHA / DIGIT / "+" / "-" / "." )
//
// It stops at ":" or the end of input and returns the end offset.
// The normalized flag is false if the scheme contains uppercase letters.
func ScanScheme(s string, pos int) (end int, normalized bool, err error) {
	if pos >= len(s) {
		return pos, false, errtrace.Wrap(newUnexpectCharErr(ErrInvalidScheme, s, pos))
	}
	if !IsAlpha(s[pos]) {
		return pos, false, errtrace.Wrap(newUnexpectCharErr(ErrInvalidScheme, s, pos))
	}

	normalized = true
	for end = pos; end < len(s); end++ {
		c := s[end]
		if c == ':' {
			break
		}
		if !IsSchemeChar(c) {
			return end, false, errtrace.Wrap(newUnexpectCharErr(ErrInvalidScheme, s, end))
		}
		if IsUpper(c) {
			normalized = false
		}
	}
	return end, normalized, nil
}

// ScanPath scans the path starting at s[pos] up to "?", "#" or the end of input.
//
//	path = *( pchar / "/" )
func ScanPath(s string, pos int) (end int, normalized bool, err error) {
	return errtrace.Wrap3(scanChars(s, pos, ErrInvalidPath, false, func(c byte) bool { return c == '?' || c == '#' }))
}

// ScanQuery scans the query starting at s[pos] (right after "?") up to "#" or the end of input.
//
//	query = *( pchar / "/" / "?" )
func ScanQuery(s string, pos int) (end int, normalized bool, err error) {
	return errtrace.Wrap3(scanChars(s, pos, ErrInvalidQuery, true, func(c byte) bool { return c == '#' }))
}

// ScanFragment scans the fragment starting at s[pos] (right after "#") up to the end of input.
//
//	fragment = *( pchar / "/" / "?" )
func ScanFragment(s string, pos int) (end int, normalized bool, err error) {
	return errtrace.Wrap3(scanChars(s, pos, ErrInvalidFragment, true, nil))
}

func scanChars(s string, pos int, sentinel Error, allowQMark bool, stop func(c byte) bool) (int, bool, error) {
	normalized := true
	i := pos
	for i < len(s) {
		c := s[i]
		switch {
		case stop != nil && stop(c):
			return i, normalized, nil
		case c == '%':
			next, err := SkipPctEncoded(s, i, &normalized)
			if err != nil {
				return i, false, errtrace.Wrap(err)
			}
			i = next
		case isPChar(c) || c == '/' || allowQMark && c == '?':
			i++
		default:
			return i, false, errtrace.Wrap(newUnexpectCharErr(sentinel, s, i))
		}
	}
	return i, normalized, nil
}

// ValidateScheme checks that s is a complete scheme.
func ValidateScheme(s string) (normalized bool, err error) {
	end, normalized, err := ScanScheme(s, 0)
	if err != nil {
		return false, errtrace.Wrap(err)
	}
	if end != len(s) {
		return false, errtrace.Wrap(newUnexpectCharErr(ErrInvalidScheme, s, end))
	}
	return normalized, nil
}

// ValidateUserinfo checks that s is a complete userinfo:
//
//	userinfo = *( unreserved / pct-encoded / sub-delims / ":" )
func ValidateUserinfo(s string) (normalized bool, err error) {
	normalized = true
	for i := 0; i < len(s); {
		switch c := s[i]; {
		case c == '%':
			next, err := SkipPctEncoded(s, i, &normalized)
			if err != nil {
				return false, errtrace.Wrap(err)
			}
			i = next
		case IsUnreserved(c) || IsSubDelim(c) || c == ':':
			i++
		default:
			return false, errtrace.Wrap(newUnexpectCharErr(ErrInvalidAuthority, s, i))
		}
	}
	return normalized, nil
}

// ValidateHost checks that s is a complete host.
// The normalized flag is false if the host contains uppercase letters
// or non-normalized pct-encoded triples.
func ValidateHost(s string) (normalized bool, err error) {
	if !IsHost(s) {
		//errtrace:skip
		return false, errorutil.NewWrapperError(ErrInvalidAuthority, "invalid host %q", s)
	}
	return !needsNormalize(s, true), nil
}

// ValidatePath checks that s is a complete path.
func ValidatePath(s string) (normalized bool, err error) {
	return errtrace.Wrap2(validate(s, ScanPath, ErrInvalidPath))
}

// ValidateQuery checks that s is a complete query without the leading "?".
func ValidateQuery(s string) (normalized bool, err error) {
	return errtrace.Wrap2(validate(s, ScanQuery, ErrInvalidQuery))
}

// ValidateFragment checks that s is a complete fragment without the leading "#".
func ValidateFragment(s string) (normalized bool, err error) {
	return errtrace.Wrap2(validate(s, ScanFragment, ErrInvalidFragment))
}

func validate(s string, scan func(s string, pos int) (int, bool, error), sentinel Error) (bool, error) {
	end, normalized, err := scan(s, 0)
	if err != nil {
		return false, errtrace.Wrap(err)
	}
	if end != len(s) {
		return false, errtrace.Wrap(newUnexpectCharErr(sentinel, s, end))
	}
	return normalized, nil
}
