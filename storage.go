package uri

import (
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"braces.dev/errtrace"

	"github.com/ghettovoice/uri/internal/errorutil"
	"github.com/ghettovoice/uri/internal/grammar"
)

// slot holds one component either in place, as a span of the shared buffer,
// or detached, as owned text. The structured value is cached next to it once built.
type slot[T any] struct {
	span    grammar.Span
	text    string
	inPlace bool
	present bool
	norm    bool
	val     *T
}

func (sl *slot[T]) str(buf string) string {
	if sl.inPlace {
		return sl.span.Of(buf)
	}
	return sl.text
}

func (sl *slot[T]) view(buf string, build func(s string, norm bool) T) T {
	if !sl.present {
		var zero T
		return zero
	}
	if sl.val == nil {
		v := build(sl.str(buf), sl.norm)
		sl.val = &v
	}
	return *sl.val
}

func (sl *slot[T]) isNormalized() bool { return !sl.present || sl.norm }

func (sl *slot[T]) attach(sp grammar.Span, norm bool) {
	*sl = slot[T]{span: sp, inPlace: true, present: true, norm: norm}
}

func (sl *slot[T]) detach(s string, norm bool, val *T) {
	*sl = slot[T]{text: s, present: true, norm: norm, val: val}
}

// place re-slices the slot into a new buffer, the cached value survives.
func (sl *slot[T]) place(sp grammar.Span) {
	sl.span, sl.inPlace, sl.text = sp, true, ""
}

func (sl *slot[T]) reset() { *sl = slot[T]{} }

func schemeOf(s string, norm bool) Scheme     { return Scheme{text{s, true, norm}} }
func userinfoOf(s string, norm bool) Userinfo { return Userinfo{text{s, true, norm}} }
func hostOf(s string, norm bool) Host         { return newHost(s, norm) }
func pathOf(s string, norm bool) Path         { return newPath(s, norm) }
func queryOf(s string, norm bool) Query       { return Query{text{s, true, norm}} }
func fragmentOf(s string, norm bool) Fragment { return Fragment{text{s, true, norm}} }

// fields is the copyable part of the storage.
// The authority is present iff the host slot is present.
type fields struct {
	// buf is the serialized URI, valid for spans of in-place slots.
	buf string
	// dirty means buf does not reflect the slots and must be rebuilt before serialization reads.
	dirty bool

	scheme   slot[Scheme]
	userinfo slot[Userinfo]
	host     slot[Host]
	port     uint16
	hasPort  bool
	portNorm bool
	path     slot[Path]
	query    slot[Query]
	fragment slot[Fragment]

	// authority span in buf, valid when not dirty
	auth grammar.Span
	// decoded query cache
	params *QueryParams
}

// storage is shared by clones until one of them is mutated.
type storage struct {
	refs atomic.Int32
	mu   sync.Mutex
	fields
}

func newStorage(f fields) *storage {
	st := &storage{fields: f}
	st.refs.Store(1)
	return st
}

func parse(s string) (fields, error) {
	var f fields
	if len(s) == 0 {
		return f, errtrace.Wrap(ErrEmptyInput)
	}
	f.buf = s

	end, norm, err := grammar.ScanScheme(s, 0)
	if err != nil {
		return f, errtrace.Wrap(err)
	}
	if end == len(s) {
		//errtrace:skip
		return f, errorutil.NewWrapperError(ErrInvalidScheme, "missing \":\" after scheme")
	}
	f.scheme.attach(grammar.Span{Start: 0, End: end}, norm)
	pos := end + 1

	a, ok, err := grammar.ScanAuthority(s, pos)
	if err != nil {
		return f, errtrace.Wrap(err)
	}
	if ok {
		if a.HasUserinfo {
			f.userinfo.attach(a.Userinfo, a.UserinfoNormalized)
		}
		f.host.attach(a.Host, a.HostNormalized)
		f.port, f.hasPort = a.Port, a.HasPort
		f.portNorm = isPortNormalized(s[a.Host.End:a.End])
		f.auth = grammar.Span{Start: pos + 2, End: a.End}
		pos = a.End
	}

	end, norm, err = grammar.ScanPath(s, pos)
	if err != nil {
		return f, errtrace.Wrap(err)
	}
	f.path.attach(grammar.Span{Start: pos, End: end}, norm)
	pos = end

	if pos < len(s) && s[pos] == '?' {
		end, norm, err = grammar.ScanQuery(s, pos+1)
		if err != nil {
			return f, errtrace.Wrap(err)
		}
		f.query.attach(grammar.Span{Start: pos + 1, End: end}, norm)
		pos = end
	}
	if pos < len(s) && s[pos] == '#' {
		end, norm, err = grammar.ScanFragment(s, pos+1)
		if err != nil {
			return f, errtrace.Wrap(err)
		}
		f.fragment.attach(grammar.Span{Start: pos + 1, End: end}, norm)
	}
	return f, nil
}

// isPortNormalized checks the raw ":port" text: an empty port or leading zeros are not normal.
func isPortNormalized(s string) bool {
	if s == "" {
		return true
	}
	return len(s) > 1 && (s[1] != '0' || len(s) == 2)
}

// check enforces the relation of the authority and the path (RFC 3986 Section 3.3).
func (f *fields) check() error {
	if !f.scheme.present {
		//errtrace:skip
		return errorutil.NewWrapperError(ErrInvalidScheme, "missing scheme")
	}
	if !f.host.present && (f.userinfo.present || f.hasPort) {
		//errtrace:skip
		return errorutil.NewWrapperError(ErrInvalidAuthority, "userinfo and port require host")
	}
	p := f.path.str(f.buf)
	if f.host.present {
		if p != "" && p[0] != '/' {
			//errtrace:skip
			return errorutil.NewWrapperError(ErrInvalidPath, "path must be empty or begin with \"/\" when authority is present")
		}
	} else if strings.HasPrefix(p, "//") {
		//errtrace:skip
		return errorutil.NewWrapperError(ErrInvalidPath, "path cannot begin with \"//\" when authority is absent")
	}
	return nil
}

func (f *fields) touch() { f.dirty = true }

func (f *fields) isNormalized() bool {
	return f.scheme.isNormalized() &&
		f.userinfo.isNormalized() &&
		f.host.isNormalized() &&
		(!f.host.present || f.portNorm) &&
		f.path.isNormalized() &&
		f.query.isNormalized() &&
		f.fragment.isNormalized()
}

// materialize rebuilds the buffer from the slots and re-slices every slot into it.
func (f *fields) materialize() {
	if !f.dirty {
		return
	}

	var (
		scheme   = f.scheme.str(f.buf)
		userinfo = f.userinfo.str(f.buf)
		host     = f.host.str(f.buf)
		path     = f.path.str(f.buf)
		query    = f.query.str(f.buf)
		fragment = f.fragment.str(f.buf)
		sb       strings.Builder
	)
	sb.Grow(len(scheme) + len(userinfo) + len(host) + len(path) + len(query) + len(fragment) + 16)
	write := func(s string) grammar.Span {
		start := sb.Len()
		sb.WriteString(s)
		return grammar.Span{Start: start, End: sb.Len()}
	}

	schemeSpan := write(scheme)
	sb.WriteByte(':')
	var userinfoSpan, hostSpan grammar.Span
	if f.host.present {
		sb.WriteString("//")
		authStart := sb.Len()
		if f.userinfo.present {
			userinfoSpan = write(userinfo)
			sb.WriteByte('@')
		}
		hostSpan = write(host)
		if f.hasPort {
			sb.WriteByte(':')
			sb.WriteString(strconv.FormatUint(uint64(f.port), 10))
		}
		f.auth = grammar.Span{Start: authStart, End: sb.Len()}
	}
	pathSpan := write(path)
	var querySpan, fragmentSpan grammar.Span
	if f.query.present {
		sb.WriteByte('?')
		querySpan = write(query)
	}
	if f.fragment.present {
		sb.WriteByte('#')
		fragmentSpan = write(fragment)
	}

	f.buf = sb.String()
	f.scheme.place(schemeSpan)
	if f.userinfo.present {
		f.userinfo.place(userinfoSpan)
	}
	if f.host.present {
		f.host.place(hostSpan)
		f.portNorm = true
	}
	f.path.place(pathSpan)
	if f.query.present {
		f.query.place(querySpan)
	}
	if f.fragment.present {
		f.fragment.place(fragmentSpan)
	}
	f.dirty = false
}

// normalized returns detached fields in normal form.
func (f *fields) normalized() fields {
	var nf fields
	nf.dirty = true

	scheme := f.scheme.view(f.buf, schemeOf).Normalize()
	nf.scheme.detach(scheme.s, true, &scheme)
	if f.host.present {
		if f.userinfo.present {
			userinfo := f.userinfo.view(f.buf, userinfoOf).Normalize()
			nf.userinfo.detach(userinfo.s, true, &userinfo)
		}
		host := f.host.view(f.buf, hostOf).Normalize()
		nf.host.detach(host.s, true, &host)
		nf.port, nf.hasPort, nf.portNorm = f.port, f.hasPort, true
	}
	path := f.path.view(f.buf, pathOf).Normalize()
	nf.path.detach(path.s, true, &path)
	if f.query.present {
		query := f.query.view(f.buf, queryOf).Normalize()
		nf.query.detach(query.s, true, &query)
	}
	if f.fragment.present {
		fragment := f.fragment.view(f.buf, fragmentOf).Normalize()
		nf.fragment.detach(fragment.s, true, &fragment)
	}
	return nf
}
