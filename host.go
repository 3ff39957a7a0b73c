package uri

import (
	"braces.dev/errtrace"

	"github.com/ghettovoice/uri/internal/grammar"
	"github.com/ghettovoice/uri/internal/util"
)

// HostKind classifies hosts.
type HostKind = grammar.HostKind

const (
	// HostRegName is a registered name that is not a valid domain name, including the empty host.
	HostRegName = grammar.HostRegName
	// HostDomain is a registered name that is a valid DNS domain name.
	HostDomain = grammar.HostDomain
	// HostIPv4 is a dotted-decimal IPv4 address.
	HostIPv4 = grammar.HostIPv4
	// HostIPv6 is a bracketed IPv6 address.
	HostIPv6 = grammar.HostIPv6
	// HostIPvFuture is a bracketed address of a future IP version.
	HostIPvFuture = grammar.HostIPvFuture
)

// Host is the host subcomponent of the authority:
//
//	host = IP-literal / IPv4address / reg-name
//
// The empty host is valid, e.g. "file:///etc/hosts".
type Host struct {
	text
	kind HostKind
}

// NewHost validates s and returns it as a Host.
func NewHost(s string) (Host, error) {
	norm, err := grammar.ValidateHost(s)
	if err != nil {
		return Host{}, errtrace.Wrap(err)
	}
	return newHost(s, norm), nil
}

// MustNewHost is like [NewHost] but panics on error.
func MustNewHost(s string) Host { return util.Must2(NewHost(s)) }

func newHost(s string, norm bool) Host {
	return Host{text{s, true, norm}, grammar.ClassifyHost(s)}
}

// Kind returns the host kind.
func (h Host) Kind() HostKind { return h.kind }

// IsIP reports whether the host is an IP address literal.
func (h Host) IsIP() bool { return h.kind == HostIPv4 || h.kind == HostIPv6 }

// Name returns the host without the IP literal brackets, registered names are decoded.
func (h Host) Name() string {
	switch h.kind {
	case HostIPv6, HostIPvFuture:
		return h.s[1 : len(h.s)-1]
	case HostIPv4:
		return h.s
	default:
		return grammar.Unescape(h.s, false)
	}
}

// Normalize lowercases the host and normalizes percent-encoded triples.
func (h Host) Normalize() Host {
	if h.IsNormalized() {
		return h
	}
	return Host{text{grammar.NormalizeHost(h.s), true, true}, h.kind}
}

// Equal compares normal forms of hosts.
func (h Host) Equal(val any) bool {
	other, ok := asValue[Host](val)
	if !ok {
		return false
	}
	return h.present == other.present && h.Normalize().s == other.Normalize().s
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (h *Host) UnmarshalText(b []byte) error {
	v, err := NewHost(string(b))
	if err != nil {
		*h = Host{}
		return errtrace.Wrap(err)
	}
	*h = v
	return nil
}
