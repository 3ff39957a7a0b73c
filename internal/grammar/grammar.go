// Package grammar implements RFC 3986 URI grammar: character classes, percent-encoding codec,
// per-component scanners and the host ABNF rules.
package grammar

//go:generate go tool errtrace -w .

import (
	"github.com/ghettovoice/abnf"
	"github.com/miekg/dns"

	"github.com/ghettovoice/uri/internal/errorutil"
)

func init() {
	abnf.EnableNodeCache(1024)
}

// Error is a grammar error.
type Error string

func (e Error) Error() string { return string(e) }

// Grammar marks the error as a grammar error, see [errorutil.IsGrammarErr].
func (Error) Grammar() bool { return true }

const (
	ErrEmptyInput        Error = "empty input"
	ErrInvalidScheme     Error = "invalid scheme"
	ErrInvalidAuthority  Error = "invalid authority"
	ErrInvalidPath       Error = "invalid path"
	ErrInvalidQuery      Error = "invalid query"
	ErrInvalidFragment   Error = "invalid fragment"
	ErrInvalidPctEncoded Error = "invalid percent-encoding"
)

func newUnexpectCharErr(sentinel Error, s string, i int) error {
	if i >= len(s) {
		return errorutil.NewWrapperError(sentinel, "unexpected end of input at %d", i) //errtrace:skip
	}
	return errorutil.NewWrapperError(sentinel, "unexpected %q at %d", s[i], i) //errtrace:skip
}

func newPctEncodedErr(s string, i int) error {
	end := min(i+3, len(s))
	return errorutil.NewWrapperError(ErrInvalidPctEncoded, "malformed triple %q at %d", s[i:end], i) //errtrace:skip
}

// HostKind classifies a syntactically valid host.
type HostKind uint8

const (
	HostRegName HostKind = iota
	HostDomain
	HostIPv4
	HostIPv6
	HostIPvFuture
)

func (k HostKind) String() string {
	switch k {
	case HostDomain:
		return "domain"
	case HostIPv4:
		return "ipv4"
	case HostIPv6:
		return "ipv6"
	case HostIPvFuture:
		return "ipvfuture"
	default:
		return "reg-name"
	}
}

func match(op abnf.Operator, s string) bool {
	if len(s) == 0 {
		return false
	}

	ns := abnf.NewNodes()
	defer ns.Free()

	if err := op([]byte(s), 0, ns); err != nil {
		return false
	}
	return ns.Best().Len() == len(s)
}

// IsHost checks host rule:
//
//	host = IP-literal / IPv4address / reg-name
//
// The empty string is a valid reg-name.
func IsHost(s string) bool {
	if len(s) == 0 {
		return true
	}
	if s[0] == '[' {
		return IsIPLiteral(s)
	}
	return match(regName, s)
}

// IsIPLiteral checks IP-literal rule:
//
//	IP-literal = "[" ( IPv6address / IPvFuture  ) "]"
func IsIPLiteral(s string) bool { return match(ipLiteral, s) }

// IsIPv6Address checks IPv6address rule.
func IsIPv6Address(s string) bool { return match(ipv6Address, s) }

// IsIPvFuture checks IPvFuture rule.
func IsIPvFuture(s string) bool { return match(ipvFuture, s) }

// IsIPv4Address checks IPv4address rule.
func IsIPv4Address(s string) bool { return match(ipv4Address, s) }

// ClassifyHost returns the kind of a valid host.
func ClassifyHost(s string) HostKind {
	switch {
	case len(s) >= 2 && s[0] == '[' && s[len(s)-1] == ']':
		if IsIPv6Address(s[1 : len(s)-1]) {
			return HostIPv6
		}
		return HostIPvFuture
	case IsIPv4Address(s):
		return HostIPv4
	case isLDH(s):
		if _, ok := dns.IsDomainName(s); ok {
			return HostDomain
		}
	}
	return HostRegName
}

// isLDH reports whether s consists of letters, digits, hyphens and dots only.
func isLDH(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if c := s[i]; !IsAlpha(c) && !IsDigit(c) && c != '-' && c != '.' {
			return false
		}
	}
	return true
}
