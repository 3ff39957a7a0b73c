package uri

import (
	"braces.dev/errtrace"

	"github.com/ghettovoice/uri/internal/grammar"
	"github.com/ghettovoice/uri/internal/util"
)

// Fragment is the fragment identifier, without the leading "#":
//
//	fragment = *( pchar / "/" / "?" )
type Fragment struct {
	text
}

// NewFragment validates s and returns it as a Fragment.
func NewFragment(s string) (Fragment, error) {
	norm, err := grammar.ValidateFragment(s)
	if err != nil {
		return Fragment{}, errtrace.Wrap(err)
	}
	return Fragment{text{s, true, norm}}, nil
}

// MustNewFragment is like [NewFragment] but panics on error.
func MustNewFragment(s string) Fragment { return util.Must2(NewFragment(s)) }

// Decoded returns the fragment with percent-encoded triples decoded.
func (f Fragment) Decoded() string { return grammar.Unescape(f.s, false) }

// Normalize normalizes percent-encoded triples.
func (f Fragment) Normalize() Fragment {
	if f.IsNormalized() {
		return f
	}
	return Fragment{text{grammar.NormalizePctEncoded(f.s), true, true}}
}

// Equal compares normal forms of fragments.
func (f Fragment) Equal(val any) bool {
	other, ok := asValue[Fragment](val)
	if !ok {
		return false
	}
	return f.present == other.present && f.Normalize().s == other.Normalize().s
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (f *Fragment) UnmarshalText(b []byte) error {
	v, err := NewFragment(string(b))
	if err != nil {
		*f = Fragment{}
		return errtrace.Wrap(err)
	}
	*f = v
	return nil
}
