package uri

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/uri/internal/constraints"
	"github.com/ghettovoice/uri/internal/errorutil"
	"github.com/ghettovoice/uri/internal/types"
	"github.com/ghettovoice/uri/internal/util"
)

var (
	_ types.Renderer         = (*HTTP)(nil)
	_ types.Equalable        = (*HTTP)(nil)
	_ types.Cloneable[*HTTP] = (*HTTP)(nil)
	_ types.ValidFlag        = (*HTTP)(nil)
)

// HTTP is an http or https URI with a non-empty host (RFC 7230 Section 2.7).
// The default port of the scheme is never stored explicitly by [HTTP.SetPort].
type HTTP struct {
	u *URI
}

// ParseHTTP parses an http or https URI from the given input s (string or []byte).
func ParseHTTP[T constraints.Byteseq](s T) (*HTTP, error) {
	u, err := Parse(s)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	if err := checkHTTP(u); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return &HTTP{u}, nil
}

// MustParseHTTP is like [ParseHTTP] but panics on error.
func MustParseHTTP[T constraints.Byteseq](s T) *HTTP { return util.Must2(ParseHTTP(s)) }

// NewHTTP checks u and returns an HTTP URI holding a clone of it.
func NewHTTP(u *URI) (*HTTP, error) {
	if !types.IsValid(u) {
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError("invalid URI"))
	}
	if err := checkHTTP(u); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return &HTTP{u.Clone()}, nil
}

func checkHTTPScheme(s Scheme) error {
	if !s.Equal(SchemeHTTP) && !s.Equal(SchemeHTTPS) {
		//errtrace:skip
		return errorutil.NewWrapperError(ErrInvalidScheme, "expected http or https, got %q", s.String())
	}
	return nil
}

func checkHTTP(u *URI) error {
	if err := checkHTTPScheme(u.Scheme()); err != nil {
		return errtrace.Wrap(err)
	}
	if h, ok := u.Host(); !ok || h.String() == "" {
		//errtrace:skip
		return errorutil.NewWrapperError(ErrInvalidAuthority, "empty host")
	}
	return nil
}

// URI returns a copy of the underlying generic URI.
func (h *HTTP) URI() *URI {
	if h == nil {
		return nil
	}
	return h.u.Clone()
}

// Scheme returns the scheme.
func (h *HTTP) Scheme() Scheme { return h.u.Scheme() }

// IsSecure reports whether the scheme is https.
func (h *HTTP) IsSecure() bool { return h.u.Scheme().Equal(SchemeHTTPS) }

// Userinfo returns the userinfo and whether it is present.
func (h *HTTP) Userinfo() (Userinfo, bool) { return h.u.Userinfo() }

// Host returns the host, never empty.
func (h *HTTP) Host() Host {
	host, _ := h.u.Host()
	return host
}

// Port returns the explicit port or the default port of the scheme.
func (h *HTTP) Port() uint16 {
	if p, ok := h.u.Port(); ok {
		return p
	}
	p, _ := h.u.Scheme().DefaultPort()
	return p
}

// HasExplicitPort reports whether the port is set in the URI text.
func (h *HTTP) HasExplicitPort() bool {
	_, ok := h.u.Port()
	return ok
}

// Path returns the path.
func (h *HTTP) Path() Path { return h.u.Path() }

// Query returns the query and whether it is present.
func (h *HTTP) Query() (Query, bool) { return h.u.Query() }

// QueryParams returns a copy of decoded query parameters.
func (h *HTTP) QueryParams() *QueryParams { return h.u.QueryParams() }

// Fragment returns the fragment and whether it is present.
func (h *HTTP) Fragment() (Fragment, bool) { return h.u.Fragment() }

// SetScheme sets the scheme, only http and https are accepted.
func (h *HTTP) SetScheme(s string) error {
	v, err := NewScheme(s)
	if err != nil {
		return errtrace.Wrap(err)
	}
	if err := checkHTTPScheme(v); err != nil {
		return errtrace.Wrap(err)
	}
	return errtrace.Wrap(h.u.SetScheme(s))
}

// SetUserinfo sets the userinfo.
func (h *HTTP) SetUserinfo(s string) error { return errtrace.Wrap(h.u.SetUserinfo(s)) }

// RemoveUserinfo removes the userinfo.
func (h *HTTP) RemoveUserinfo() { h.u.RemoveUserinfo() }

// SetHost sets the host, it cannot be empty.
func (h *HTTP) SetHost(s string) error {
	if s == "" {
		//errtrace:skip
		return errorutil.NewWrapperError(ErrInvalidAuthority, "empty host")
	}
	return errtrace.Wrap(h.u.SetHost(s))
}

// SetPort sets the port. The default port of the scheme removes the explicit port.
func (h *HTTP) SetPort(port uint16) error {
	if def, _ := h.u.Scheme().DefaultPort(); port == def {
		h.u.RemovePort()
		return nil
	}
	return errtrace.Wrap(h.u.SetPort(port))
}

// RemovePort removes the explicit port, the default port of the scheme is used.
func (h *HTTP) RemovePort() { h.u.RemovePort() }

// SetPath sets the path.
func (h *HTTP) SetPath(s string) error { return errtrace.Wrap(h.u.SetPath(s)) }

// SetPathSegments sets the rooted path built from decoded segments.
func (h *HTTP) SetPathSegments(segs ...string) error {
	return errtrace.Wrap(h.u.SetPathSegments(segs, false))
}

// SetQuery sets the query.
func (h *HTTP) SetQuery(s string) error { return errtrace.Wrap(h.u.SetQuery(s)) }

// SetQueryParams sets the query encoded from params.
func (h *HTTP) SetQueryParams(params *QueryParams) error {
	return errtrace.Wrap(h.u.SetQueryParams(params))
}

// UpdateQueryParams updates the query, see [URI.UpdateQueryParams].
func (h *HTTP) UpdateQueryParams(fn func(params *QueryParams)) error {
	return errtrace.Wrap(h.u.UpdateQueryParams(fn))
}

// RemoveQuery removes the query.
func (h *HTTP) RemoveQuery() { h.u.RemoveQuery() }

// SetFragment sets the fragment.
func (h *HTTP) SetFragment(s string) error { return errtrace.Wrap(h.u.SetFragment(s)) }

// RemoveFragment removes the fragment.
func (h *HTTP) RemoveFragment() { h.u.RemoveFragment() }

// Normalize returns the normal form, see [URI.Normalize].
// Additionally the explicit default port is removed and the empty path becomes "/".
func (h *HTTP) Normalize() *HTTP {
	if h == nil {
		return nil
	}
	u := h.u.Normalize()
	if p, ok := u.Port(); ok {
		if def, _ := u.Scheme().DefaultPort(); p == def {
			u.RemovePort()
		}
	}
	if u.RawPath() == "" {
		u.SetPath("/") //nolint:errcheck
	}
	return &HTTP{u}
}

// Clone returns a copy of the HTTP URI.
func (h *HTTP) Clone() *HTTP {
	if h == nil {
		return nil
	}
	return &HTTP{h.u.Clone()}
}

// Equal compares normal forms of HTTP URIs.
func (h *HTTP) Equal(val any) bool {
	var other *HTTP
	switch v := val.(type) {
	case HTTP:
		other = &v
	case *HTTP:
		other = v
	default:
		return false
	}

	if h == other {
		return true
	} else if h == nil || other == nil {
		return false
	}
	return h.Normalize().String() == other.Normalize().String()
}

// IsValid reports whether the HTTP URI is initialized.
func (h *HTTP) IsValid() bool { return h != nil && h.u.IsValid() }

// RenderTo writes the URI to w.
func (h *HTTP) RenderTo(w io.Writer, opts *RenderOptions) (int, error) {
	if h == nil {
		return 0, nil
	}
	if opts.IsNormalized() {
		return errtrace.Wrap2(h.Normalize().u.RenderTo(w, nil))
	}
	return errtrace.Wrap2(h.u.RenderTo(w, nil))
}

// Render returns the URI as a string.
func (h *HTTP) Render(opts *RenderOptions) string {
	if h == nil {
		return ""
	}
	if opts.IsNormalized() {
		return h.Normalize().String()
	}
	return h.u.String()
}

// String returns the serialized URI.
func (h *HTTP) String() string {
	if h == nil {
		return ""
	}
	return h.u.String()
}

// Format implements [fmt.Formatter].
func (h *HTTP) Format(f fmt.State, verb rune) {
	switch verb {
	case 'v':
		if f.Flag('#') {
			type hideMethods HTTP
			type HTTP hideMethods
			fmt.Fprintf(f, fmt.FormatString(f, verb), (*HTTP)(h))
			return
		}
		fallthrough
	case 's':
		if f.Flag('+') {
			h.RenderTo(f, nil) //nolint:errcheck
			return
		}
		fmt.Fprint(f, h.String())
	case 'q':
		fmt.Fprint(f, strconv.Quote(h.String()))
	default:
		type hideMethods HTTP
		type HTTP hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*HTTP)(h))
	}
}

// LogValue implements [slog.LogValuer].
func (h *HTTP) LogValue() slog.Value {
	if h == nil {
		return slog.Value{}
	}
	return slog.GroupValue(
		slog.Any("uri", h.u),
		slog.Any("port", h.Port()),
	)
}

// MarshalText implements [encoding.TextMarshaler].
func (h *HTTP) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (h *HTTP) UnmarshalText(text []byte) error {
	h1, err := ParseHTTP(text)
	if err != nil {
		*h = HTTP{}
		return errtrace.Wrap(err)
	}
	*h = *h1
	return nil
}
