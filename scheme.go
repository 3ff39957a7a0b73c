package uri

import (
	"braces.dev/errtrace"

	"github.com/ghettovoice/uri/internal/grammar"
	"github.com/ghettovoice/uri/internal/util"
)

// Scheme is a URI scheme:
//
//	scheme = ALPHA *( ALPHA / DIGIT / "+" / "-" / "." )
//
// Schemes are case-insensitive, the canonical form is lowercase.
type Scheme struct {
	text
}

// Well-known schemes.
var (
	SchemeFile  = MustNewScheme("file")
	SchemeFTP   = MustNewScheme("ftp")
	SchemeHTTP  = MustNewScheme("http")
	SchemeHTTPS = MustNewScheme("https")
	SchemeWS    = MustNewScheme("ws")
	SchemeWSS   = MustNewScheme("wss")
)

var defaultPorts = map[string]uint16{
	"ftp":   21,
	"http":  80,
	"https": 443,
	"ws":    80,
	"wss":   443,
}

// NewScheme validates s and returns it as a Scheme.
func NewScheme(s string) (Scheme, error) {
	norm, err := grammar.ValidateScheme(s)
	if err != nil {
		return Scheme{}, errtrace.Wrap(err)
	}
	return Scheme{text{s, true, norm}}, nil
}

// MustNewScheme is like [NewScheme] but panics on error.
func MustNewScheme(s string) Scheme { return util.Must2(NewScheme(s)) }

// Normalize returns the lowercase scheme.
func (s Scheme) Normalize() Scheme {
	if s.IsNormalized() {
		return s
	}
	return Scheme{text{util.LCase(s.s), true, true}}
}

// DefaultPort returns the default port of well-known schemes.
func (s Scheme) DefaultPort() (uint16, bool) {
	p, ok := defaultPorts[s.Normalize().s]
	return p, ok
}

// Equal compares schemes case-insensitively.
func (s Scheme) Equal(val any) bool {
	other, ok := asValue[Scheme](val)
	if !ok {
		return false
	}
	return s.present == other.present && util.EqFold(s.s, other.s)
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (s *Scheme) UnmarshalText(b []byte) error {
	v, err := NewScheme(string(b))
	if err != nil {
		*s = Scheme{}
		return errtrace.Wrap(err)
	}
	*s = v
	return nil
}
