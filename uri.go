package uri

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/uri/internal/constraints"
	"github.com/ghettovoice/uri/internal/errorutil"
	"github.com/ghettovoice/uri/internal/ioutil"
	"github.com/ghettovoice/uri/internal/types"
	"github.com/ghettovoice/uri/internal/util"
)

// RenderOptions contains options for rendering URIs.
type RenderOptions = types.RenderOptions

var (
	_ types.Renderer        = (*URI)(nil)
	_ types.Equalable       = (*URI)(nil)
	_ types.Cloneable[*URI] = (*URI)(nil)
	_ types.ValidFlag       = (*URI)(nil)
)

// URI is an RFC 3986 URI:
//
//	URI = scheme ":" hier-part [ "?" query ] [ "#" fragment ]
//
// The zero value is an invalid empty URI, use [Parse] or [Build] to create one.
type URI struct {
	st *storage
}

// Components are the parts of a URI used by [Build].
// Zero values of optional components mean absence.
// The authority is present iff Host is set.
type Components struct {
	Scheme   Scheme
	Userinfo Userinfo
	Host     Host
	Port     uint16
	HasPort  bool
	Path     Path
	Query    Query
	Fragment Fragment
}

// Parse parses the URI from the given input s (string or []byte).
// The parsed URI keeps a copy of s and serializes back to it until it is mutated.
func Parse[T constraints.Byteseq](s T) (*URI, error) {
	f, err := parse(string(s))
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return &URI{st: newStorage(f)}, nil
}

// MustParse is like [Parse] but panics on error.
func MustParse[T constraints.Byteseq](s T) *URI { return util.Must2(Parse(s)) }

// Build composes a URI from validated components.
// Userinfo and port require a host. With the host set the path must be empty or begin with "/",
// without it the path cannot begin with "//".
func Build(c Components) (*URI, error) {
	var f fields
	f.dirty = true
	if !c.Scheme.IsZero() {
		f.scheme.detach(c.Scheme.s, c.Scheme.norm, &c.Scheme)
	}
	if !c.Userinfo.IsZero() {
		f.userinfo.detach(c.Userinfo.s, c.Userinfo.norm, &c.Userinfo)
	}
	if !c.Host.IsZero() {
		f.host.detach(c.Host.s, c.Host.norm, &c.Host)
		f.portNorm = true
	}
	f.port, f.hasPort = c.Port, c.HasPort
	if c.Path.IsZero() {
		c.Path = newPath("", true)
	}
	f.path.detach(c.Path.s, c.Path.norm, &c.Path)
	if !c.Query.IsZero() {
		f.query.detach(c.Query.s, c.Query.norm, &c.Query)
	}
	if !c.Fragment.IsZero() {
		f.fragment.detach(c.Fragment.s, c.Fragment.norm, &c.Fragment)
	}
	if err := f.check(); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return &URI{st: newStorage(f)}, nil
}

// MustBuild is like [Build] but panics on error.
func MustBuild(c Components) *URI { return util.Must2(Build(c)) }

func (u *URI) ok() bool { return u != nil && u.st != nil }

// read runs fn with the storage locked, lazy caches may be filled by fn.
func (u *URI) read(fn func(f *fields)) {
	u.st.mu.Lock()
	defer u.st.mu.Unlock()
	fn(&u.st.fields)
}

// mutate applies fn to a copy of the fields and commits it only if fn and the invariant check succeed.
// Storage shared with clones is copied first.
func (u *URI) mutate(fn func(f *fields) error) error {
	if !u.ok() {
		return errtrace.Wrap(errorutil.NewInvalidArgumentError("uninitialized URI"))
	}

	st := u.st
	st.mu.Lock()
	f := st.fields
	if err := fn(&f); err != nil {
		st.mu.Unlock()
		return errtrace.Wrap(err)
	}
	if err := f.check(); err != nil {
		st.mu.Unlock()
		return errtrace.Wrap(err)
	}
	f.touch()
	if st.refs.Load() > 1 {
		st.mu.Unlock()
		st.refs.Add(-1)
		u.st = newStorage(f)
		return nil
	}
	st.fields = f
	st.mu.Unlock()
	return nil
}

// Scheme returns the scheme.
func (u *URI) Scheme() (s Scheme) {
	if !u.ok() {
		return s
	}
	u.read(func(f *fields) { s = f.scheme.view(f.buf, schemeOf) })
	return s
}

// Opaque returns everything after "scheme:".
func (u *URI) Opaque() (s string) {
	if !u.ok() {
		return s
	}
	u.read(func(f *fields) {
		f.materialize()
		s = f.buf[f.scheme.span.End+1:]
	})
	return s
}

// Authority returns the raw authority and whether it is present.
func (u *URI) Authority() (s string, ok bool) {
	if !u.ok() {
		return s, false
	}
	u.read(func(f *fields) {
		if ok = f.host.present; ok {
			f.materialize()
			s = f.auth.Of(f.buf)
		}
	})
	return s, ok
}

// Userinfo returns the userinfo and whether it is present.
func (u *URI) Userinfo() (ui Userinfo, ok bool) {
	if !u.ok() {
		return ui, false
	}
	u.read(func(f *fields) { ui = f.userinfo.view(f.buf, userinfoOf) })
	return ui, !ui.IsZero()
}

// Host returns the host and whether the authority is present.
// The host of a present authority may be empty, e.g. "file:///etc/hosts".
func (u *URI) Host() (h Host, ok bool) {
	if !u.ok() {
		return h, false
	}
	u.read(func(f *fields) { h = f.host.view(f.buf, hostOf) })
	return h, !h.IsZero()
}

// Port returns the explicit port and whether it is present.
func (u *URI) Port() (port uint16, ok bool) {
	if !u.ok() {
		return 0, false
	}
	u.read(func(f *fields) { port, ok = f.port, f.hasPort })
	return port, ok
}

// Path returns the path.
func (u *URI) Path() (p Path) {
	if !u.ok() {
		return p
	}
	u.read(func(f *fields) { p = f.path.view(f.buf, pathOf) })
	return p
}

// RawPath returns the path text.
func (u *URI) RawPath() (s string) {
	if !u.ok() {
		return s
	}
	u.read(func(f *fields) { s = f.path.str(f.buf) })
	return s
}

// PathSegments returns decoded path segments.
func (u *URI) PathSegments() []string { return u.Path().Segments() }

// Query returns the query and whether it is present.
func (u *URI) Query() (q Query, ok bool) {
	if !u.ok() {
		return q, false
	}
	u.read(func(f *fields) { q = f.query.view(f.buf, queryOf) })
	return q, !q.IsZero()
}

// RawQuery returns the query text and whether it is present.
func (u *URI) RawQuery() (s string, ok bool) {
	if !u.ok() {
		return s, false
	}
	u.read(func(f *fields) { s, ok = f.query.str(f.buf), f.query.present })
	return s, ok
}

// QueryParams returns a copy of decoded query parameters, empty if the query is absent.
func (u *URI) QueryParams() (p *QueryParams) {
	if !u.ok() {
		return &QueryParams{}
	}
	u.read(func(f *fields) {
		if f.params == nil {
			f.params = ParseQueryParams(f.query.str(f.buf))
		}
		p = f.params.Clone()
	})
	return p
}

// Fragment returns the fragment and whether it is present.
func (u *URI) Fragment() (fr Fragment, ok bool) {
	if !u.ok() {
		return fr, false
	}
	u.read(func(f *fields) { fr = f.fragment.view(f.buf, fragmentOf) })
	return fr, !fr.IsZero()
}

// SetScheme sets the scheme.
func (u *URI) SetScheme(s string) error {
	v, err := NewScheme(s)
	if err != nil {
		return errtrace.Wrap(err)
	}
	return errtrace.Wrap(u.mutate(func(f *fields) error {
		f.scheme.detach(v.s, v.norm, &v)
		return nil
	}))
}

// SetUserinfo sets the userinfo. The authority must be present.
func (u *URI) SetUserinfo(s string) error {
	v, err := NewUserinfo(s)
	if err != nil {
		return errtrace.Wrap(err)
	}
	return errtrace.Wrap(u.mutate(func(f *fields) error {
		f.userinfo.detach(v.s, v.norm, &v)
		return nil
	}))
}

// SetHost sets the host, the authority is added if absent.
func (u *URI) SetHost(s string) error {
	v, err := NewHost(s)
	if err != nil {
		return errtrace.Wrap(err)
	}
	return errtrace.Wrap(u.mutate(func(f *fields) error {
		if !f.host.present {
			f.portNorm = true
		}
		f.host.detach(v.s, v.norm, &v)
		return nil
	}))
}

// SetPort sets the port. The authority must be present.
func (u *URI) SetPort(port uint16) error {
	return errtrace.Wrap(u.mutate(func(f *fields) error {
		f.port, f.hasPort, f.portNorm = port, true, true
		return nil
	}))
}

// SetPath sets the path.
func (u *URI) SetPath(s string) error {
	v, err := NewPath(s)
	if err != nil {
		return errtrace.Wrap(err)
	}
	return errtrace.Wrap(u.setPath(v))
}

// SetPathSegments sets the path built from decoded segments, see [PathFromSegments].
func (u *URI) SetPathSegments(segs []string, rootless bool) error {
	v, err := PathFromSegments(segs, rootless)
	if err != nil {
		return errtrace.Wrap(err)
	}
	return errtrace.Wrap(u.setPath(v))
}

func (u *URI) setPath(v Path) error {
	return errtrace.Wrap(u.mutate(func(f *fields) error {
		f.path.detach(v.s, v.norm, &v)
		return nil
	}))
}

// SetQuery sets the query text without the leading "?".
func (u *URI) SetQuery(s string) error {
	v, err := NewQuery(s)
	if err != nil {
		return errtrace.Wrap(err)
	}
	return errtrace.Wrap(u.setQuery(v, nil))
}

// SetQueryParams sets the query encoded from params.
func (u *URI) SetQueryParams(params *QueryParams) error {
	return errtrace.Wrap(u.setQuery(QueryFromParams(params), params.Clone()))
}

// UpdateQueryParams calls fn with the decoded query parameters and sets the query encoded from them.
// The query is left as is if fn changed nothing, and removed if no parameters are left.
func (u *URI) UpdateQueryParams(fn func(params *QueryParams)) error {
	orig := u.QueryParams()
	params := orig.Clone()
	fn(params)
	if params.Equal(orig) {
		return nil
	}
	if params.Len() == 0 {
		return errtrace.Wrap(u.mutate(func(f *fields) error {
			f.query.reset()
			f.params = nil
			return nil
		}))
	}
	return errtrace.Wrap(u.SetQueryParams(params))
}

func (u *URI) setQuery(v Query, params *QueryParams) error {
	return errtrace.Wrap(u.mutate(func(f *fields) error {
		f.query.detach(v.s, v.norm, &v)
		f.params = params
		return nil
	}))
}

// SetFragment sets the fragment text without the leading "#".
func (u *URI) SetFragment(s string) error {
	v, err := NewFragment(s)
	if err != nil {
		return errtrace.Wrap(err)
	}
	return errtrace.Wrap(u.mutate(func(f *fields) error {
		f.fragment.detach(v.s, v.norm, &v)
		return nil
	}))
}

// RemoveUserinfo removes the userinfo.
func (u *URI) RemoveUserinfo() {
	u.mutate(func(f *fields) error { //nolint:errcheck
		f.userinfo.reset()
		return nil
	})
}

// RemovePort removes the explicit port.
func (u *URI) RemovePort() {
	u.mutate(func(f *fields) error { //nolint:errcheck
		f.port, f.hasPort, f.portNorm = 0, false, true
		return nil
	})
}

// RemoveAuthority removes userinfo, host and port.
// It fails if the path begins with "//".
func (u *URI) RemoveAuthority() error {
	return errtrace.Wrap(u.mutate(func(f *fields) error {
		f.userinfo.reset()
		f.host.reset()
		f.port, f.hasPort, f.portNorm = 0, false, false
		return nil
	}))
}

// RemoveQuery removes the query.
func (u *URI) RemoveQuery() {
	u.mutate(func(f *fields) error { //nolint:errcheck
		f.query.reset()
		f.params = nil
		return nil
	})
}

// RemoveFragment removes the fragment.
func (u *URI) RemoveFragment() {
	u.mutate(func(f *fields) error { //nolint:errcheck
		f.fragment.reset()
		return nil
	})
}

// Clone returns a copy of the URI sharing the storage until the first mutation.
func (u *URI) Clone() *URI {
	if u == nil {
		return nil
	}
	if u.st == nil {
		return &URI{}
	}
	u.st.refs.Add(1)
	return &URI{st: u.st}
}

// Normalize returns the URI in normal form, see [Scheme.Normalize], [Host.Normalize] etc.
// An empty port is removed. The receiver is not changed and does not share storage with the result.
func (u *URI) Normalize() *URI {
	if !u.ok() {
		return u.Clone()
	}

	var nf fields
	u.read(func(f *fields) {
		if f.isNormalized() {
			f.materialize()
			nf = *f
			return
		}
		nf = f.normalized()
	})
	return &URI{st: newStorage(nf)}
}

// normalString returns the serialized normal form.
func (u *URI) normalString() (s string) {
	if !u.ok() {
		return s
	}
	u.read(func(f *fields) {
		if f.isNormalized() {
			f.materialize()
			s = f.buf
			return
		}
		nf := f.normalized()
		nf.materialize()
		s = nf.buf
	})
	return s
}

// IsValid reports whether the URI was created by [Parse] or [Build].
func (u *URI) IsValid() bool {
	if !u.ok() {
		return false
	}
	var ok bool
	u.read(func(f *fields) { ok = f.scheme.present })
	return ok
}

// Equal compares normal forms of URIs.
func (u *URI) Equal(val any) bool {
	var other *URI
	switch v := val.(type) {
	case URI:
		other = &v
	case *URI:
		other = v
	default:
		return false
	}

	if u == other {
		return true
	} else if u == nil || other == nil {
		return false
	}
	if u.st == other.st {
		return true
	}
	return u.normalString() == other.normalString()
}

// RenderTo writes the URI to w.
// The normal form is written if opts.Normalized is set.
func (u *URI) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if !u.ok() {
		return 0, nil
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.WriteString(u.Render(opts))
	return errtrace.Wrap2(cw.Result())
}

// Render returns the URI as a string, see [URI.RenderTo].
func (u *URI) Render(opts *RenderOptions) string {
	if !u.ok() {
		return ""
	}
	if opts.IsNormalized() {
		return u.normalString()
	}
	return u.String()
}

// String returns the serialized URI.
// A parsed URI that was not mutated serializes to the input text.
func (u *URI) String() (s string) {
	if !u.ok() {
		return s
	}
	u.read(func(f *fields) {
		f.materialize()
		s = f.buf
	})
	return s
}

// Format implements [fmt.Formatter] for custom formatting of the URI.
func (u *URI) Format(f fmt.State, verb rune) {
	switch verb {
	case 'v':
		if f.Flag('#') {
			type hideMethods URI
			type URI hideMethods
			fmt.Fprintf(f, fmt.FormatString(f, verb), (*URI)(u))
			return
		}
		fallthrough
	case 's':
		if f.Flag('+') {
			u.RenderTo(f, nil) //nolint:errcheck
			return
		}
		fmt.Fprint(f, u.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(u.String()))
		return
	default:
		type hideMethods URI
		type URI hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*URI)(u))
		return
	}
}

// LogValue implements [slog.LogValuer].
// The password of the userinfo is not logged.
func (u *URI) LogValue() slog.Value {
	if !u.ok() {
		return slog.Value{}
	}

	attrs := make([]slog.Attr, 0, 7)
	attrs = append(attrs, slog.String("scheme", u.Scheme().String()))
	if ui, ok := u.Userinfo(); ok {
		attrs = append(attrs, slog.String("user", ui.Username()))
	}
	if h, ok := u.Host(); ok {
		attrs = append(attrs, slog.String("host", h.String()))
	}
	if p, ok := u.Port(); ok {
		attrs = append(attrs, slog.Any("port", p))
	}
	attrs = append(attrs, slog.String("path", u.RawPath()))
	if q, ok := u.RawQuery(); ok {
		attrs = append(attrs, slog.String("query", q))
	}
	if fr, ok := u.Fragment(); ok {
		attrs = append(attrs, slog.String("fragment", fr.String()))
	}
	return slog.GroupValue(attrs...)
}

// MarshalText implements [encoding.TextMarshaler].
func (u *URI) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (u *URI) UnmarshalText(text []byte) error {
	u1, err := Parse(text)
	if err != nil {
		*u = URI{}
		return errtrace.Wrap(err)
	}
	*u = *u1
	return nil
}
