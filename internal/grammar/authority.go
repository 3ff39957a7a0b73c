package grammar

import (
	"braces.dev/errtrace"

	"github.com/ghettovoice/uri/internal/errorutil"
)

// Authority holds the spans of the authority parts found by [ScanAuthority].
//
//	authority = [ userinfo "@" ] host [ ":" port ]
type Authority struct {
	Userinfo           Span
	HasUserinfo        bool
	UserinfoNormalized bool

	Host           Span
	HostNormalized bool

	Port    uint16
	HasPort bool

	// End is the offset right after the authority.
	End int
}

type authState uint8

const (
	stUserinfoOrHost authState = iota
	stUserinfoOrPort
	stUserinfo
	stHost
	stHostIPv6
	stHostIPv6Done
	stPort
)

func isAuthorityEnd(c byte) bool { return c == '/' || c == '?' || c == '#' }

// ScanAuthority scans the authority starting at s[pos].
// It returns ok=false without error if the input at pos does not start with "//".
//
// A colon seen before "@" is ambiguous: it is taken as the port separator only if
// everything up to the end of the authority is digits, otherwise the scanned part is userinfo.
func ScanAuthority(s string, pos int) (a Authority, ok bool, err error) {
	if len(s)-pos < 2 || s[pos] != '/' || s[pos+1] != '/' {
		return a, false, nil
	}

	var (
		st         = stUserinfoOrHost
		start      = pos + 2
		hostStart  = start
		portStart  = -1
		normalized = true
		upper      bool
		i          = start
	)
	for i < len(s) {
		c := s[i]
		if isAuthorityEnd(c) {
			break
		}

		switch st {
		case stUserinfoOrPort:
			if IsDigit(c) {
				i++
				continue
			}
			if c != '@' {
				// not a port, the char is scanned again as userinfo
				st = stUserinfo
				portStart = -1
			}
		case stPort:
			if !IsDigit(c) {
				return a, true, errtrace.Wrap(newUnexpectCharErr(ErrInvalidAuthority, s, i))
			}
			i++
			continue
		case stHostIPv6Done:
			if c != ':' {
				return a, true, errtrace.Wrap(newUnexpectCharErr(ErrInvalidAuthority, s, i))
			}
		}

		switch {
		case c == '%':
			next, err := SkipPctEncoded(s, i, &normalized)
			if err != nil {
				return a, true, errtrace.Wrap(err)
			}
			i = next
		case IsUnreserved(c) || IsSubDelim(c):
			if IsUpper(c) {
				upper = true
			}
			i++
		case c == ':':
			switch st {
			case stUserinfoOrHost:
				st = stUserinfoOrPort
				portStart = i + 1
			case stHost, stHostIPv6Done:
				a.Host = Span{hostStart, i}
				st = stPort
				portStart = i + 1
			}
			i++
		case c == '@':
			if st != stUserinfoOrHost && st != stUserinfoOrPort && st != stUserinfo {
				return a, true, errtrace.Wrap(newUnexpectCharErr(ErrInvalidAuthority, s, i))
			}
			a.Userinfo = Span{start, i}
			a.HasUserinfo = true
			a.UserinfoNormalized = normalized
			normalized, upper = true, false
			portStart = -1
			hostStart = i + 1
			st = stHost
			i++
		case c == '[':
			if i != hostStart || st != stUserinfoOrHost && st != stHost {
				return a, true, errtrace.Wrap(newUnexpectCharErr(ErrInvalidAuthority, s, i))
			}
			st = stHostIPv6
			i++
		case c == ']':
			if st != stHostIPv6 {
				return a, true, errtrace.Wrap(newUnexpectCharErr(ErrInvalidAuthority, s, i))
			}
			st = stHostIPv6Done
			i++
		default:
			return a, true, errtrace.Wrap(newUnexpectCharErr(ErrInvalidAuthority, s, i))
		}
	}

	switch st {
	case stUserinfoOrHost, stHost, stHostIPv6Done:
		a.Host = Span{hostStart, i}
	case stUserinfoOrPort:
		a.Host = Span{hostStart, portStart - 1}
	case stPort:
	case stUserinfo:
		// a colon followed by non-digits without "@"
		return a, true, errtrace.Wrap(newUnexpectCharErr(ErrInvalidAuthority, s, i))
	case stHostIPv6:
		return a, true, errtrace.Wrap(newUnexpectCharErr(ErrInvalidAuthority, s, i))
	}
	a.HostNormalized = normalized && !upper
	a.End = i

	if portStart >= 0 && portStart < i {
		port, err := parsePort(s[portStart:i])
		if err != nil {
			return a, true, errtrace.Wrap(err)
		}
		a.Port, a.HasPort = port, true
	}

	if host := a.Host.Of(s); len(host) > 0 && host[0] == '[' && !IsIPLiteral(host) {
		//errtrace:skip
		return a, true, errorutil.NewWrapperError(ErrInvalidAuthority, "invalid IP literal %q at %d", host, a.Host.Start)
	}
	return a, true, nil
}

func parsePort(s string) (uint16, error) {
	var n uint32
	for i := 0; i < len(s); i++ {
		n = n*10 + uint32(s[i]-'0')
		if n > 0xFFFF {
			//errtrace:skip
			return 0, errorutil.NewWrapperError(ErrInvalidAuthority, "port %s out of range", s)
		}
	}
	return uint16(n), nil
}
