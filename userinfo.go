package uri

import (
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/uri/internal/grammar"
	"github.com/ghettovoice/uri/internal/util"
)

// Userinfo is the userinfo subcomponent of the authority:
//
//	userinfo = *( unreserved / pct-encoded / sub-delims / ":" )
//
// The text up to the first ":" is the user name, the rest is the password.
// Note that RFC 3986 Section 3.2.1 deprecates passwords in URIs.
type Userinfo struct {
	text
}

// NewUserinfo validates s and returns it as a Userinfo.
func NewUserinfo(s string) (Userinfo, error) {
	norm, err := grammar.ValidateUserinfo(s)
	if err != nil {
		return Userinfo{}, errtrace.Wrap(err)
	}
	return Userinfo{text{s, true, norm}}, nil
}

// MustNewUserinfo is like [NewUserinfo] but panics on error.
func MustNewUserinfo(s string) Userinfo { return util.Must2(NewUserinfo(s)) }

func shouldEscapeUserChar(c byte) bool { return !grammar.IsUnreserved(c) && !grammar.IsSubDelim(c) }

func shouldEscapePasswdChar(c byte) bool { return shouldEscapeUserChar(c) && c != ':' }

// User returns a Userinfo with the given user name and no password.
// The name is percent-encoded as needed.
func User(name string) Userinfo {
	return Userinfo{text{grammar.Escape(name, shouldEscapeUserChar), true, true}}
}

// UserPassword returns a Userinfo with the given user name and password.
func UserPassword(name, passwd string) Userinfo {
	s := grammar.Escape(name, shouldEscapeUserChar) + ":" + grammar.Escape(passwd, shouldEscapePasswdChar)
	return Userinfo{text{s, true, true}}
}

// Username returns the decoded user name.
func (ui Userinfo) Username() string {
	name, _, _ := strings.Cut(ui.s, ":")
	return grammar.Unescape(name, false)
}

// Password returns the decoded password and whether it is set.
func (ui Userinfo) Password() (string, bool) {
	_, passwd, ok := strings.Cut(ui.s, ":")
	if !ok {
		return "", false
	}
	return grammar.Unescape(passwd, false), true
}

// Normalize normalizes percent-encoded triples.
func (ui Userinfo) Normalize() Userinfo {
	if ui.IsNormalized() {
		return ui
	}
	return Userinfo{text{grammar.NormalizePctEncoded(ui.s), true, true}}
}

// Equal compares normal forms of userinfos.
func (ui Userinfo) Equal(val any) bool {
	other, ok := asValue[Userinfo](val)
	if !ok {
		return false
	}
	return ui.present == other.present && ui.Normalize().s == other.Normalize().s
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (ui *Userinfo) UnmarshalText(b []byte) error {
	v, err := NewUserinfo(string(b))
	if err != nil {
		*ui = Userinfo{}
		return errtrace.Wrap(err)
	}
	*ui = v
	return nil
}
