package uri

import (
	"slices"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/uri/internal/errorutil"
	"github.com/ghettovoice/uri/internal/grammar"
	"github.com/ghettovoice/uri/internal/util"
)

// Path is the hierarchical path of a URI. It is always present, possibly empty.
//
// A path is split into segments on "/". A leading "/" marks a rooted path,
// a non-empty path without it is rootless. The empty path has no segments and is not rootless.
type Path struct {
	text
	segs     []string
	rootless bool
}

// NewPath validates s and returns it as a Path.
func NewPath(s string) (Path, error) {
	norm, err := grammar.ValidatePath(s)
	if err != nil {
		return Path{}, errtrace.Wrap(err)
	}
	return newPath(s, norm), nil
}

// MustNewPath is like [NewPath] but panics on error.
func MustNewPath(s string) Path { return util.Must2(NewPath(s)) }

// PathFromSegments builds a path from decoded segments, every segment is percent-encoded.
// The rooted path gets a leading "/". No segments make the empty path.
func PathFromSegments(segs []string, rootless bool) (Path, error) {
	if len(segs) == 0 {
		return newPath("", true), nil
	}
	if rootless && segs[0] == "" {
		//errtrace:skip
		return Path{}, errorutil.NewWrapperError(ErrInvalidPath, "rootless path must start with a non-empty segment")
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	for i, seg := range segs {
		if i > 0 || !rootless {
			sb.WriteByte('/')
		}
		sb.WriteString(grammar.Escape(seg, nil))
	}
	return Path{text{sb.String(), true, true}, slices.Clone(segs), rootless}, nil
}

// MustPathFromSegments is like [PathFromSegments] but panics on error.
func MustPathFromSegments(segs []string, rootless bool) Path {
	return util.Must2(PathFromSegments(segs, rootless))
}

func newPath(s string, norm bool) Path {
	p := Path{text: text{s, true, norm}}
	if s == "" {
		return p
	}
	if s[0] == '/' {
		s = s[1:]
	} else {
		p.rootless = true
	}
	p.segs = make([]string, 0, strings.Count(s, "/")+1)
	for seg := range strings.SplitSeq(s, "/") {
		p.segs = append(p.segs, grammar.Unescape(seg, false))
	}
	return p
}

// Segments returns a copy of the decoded segments.
func (p Path) Segments() []string { return slices.Clone(p.segs) }

// Segment returns the i-th decoded segment.
// It panics if i is out of range.
func (p Path) Segment(i int) string { return p.segs[i] }

// Len returns the number of segments.
func (p Path) Len() int { return len(p.segs) }

// IsRootless reports whether a non-empty path lacks the leading "/".
func (p Path) IsRootless() bool { return p.rootless }

// IsEmpty reports whether the path is the empty string.
func (p Path) IsEmpty() bool { return p.s == "" }

// WithSegments returns a path with the same rootless flag and the given segments.
func (p Path) WithSegments(segs ...string) (Path, error) {
	return errtrace.Wrap2(PathFromSegments(segs, p.rootless))
}

// Append returns a path with segs appended.
func (p Path) Append(segs ...string) Path {
	if len(segs) == 0 {
		return p
	}
	all := make([]string, 0, len(p.segs)+len(segs))
	all = append(all, p.segs...)
	all = append(all, segs...)
	// rootless paths always start with a non-empty segment
	np, _ := PathFromSegments(all, p.rootless)
	return np
}

// WithRootless returns a path with the same segments and the given rootless flag.
func (p Path) WithRootless(rootless bool) (Path, error) {
	if rootless == p.rootless {
		return p, nil
	}
	return errtrace.Wrap2(PathFromSegments(p.segs, rootless))
}

// Normalize normalizes percent-encoded triples.
// Dot segments are kept as is.
func (p Path) Normalize() Path {
	if p.IsNormalized() {
		return p
	}
	np := p
	np.text = text{grammar.NormalizePctEncoded(p.s), true, true}
	return np
}

// Equal compares normal forms of paths.
func (p Path) Equal(val any) bool {
	other, ok := asValue[Path](val)
	if !ok {
		return false
	}
	return p.Normalize().s == other.Normalize().s
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (p *Path) UnmarshalText(b []byte) error {
	v, err := NewPath(string(b))
	if err != nil {
		*p = Path{}
		return errtrace.Wrap(err)
	}
	*p = v
	return nil
}
