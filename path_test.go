package uri_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ghettovoice/uri"
)

func TestNewPath(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name         string
		input        string
		wantSegs     []string
		wantRootless bool
		wantErr      error
	}{
		{"empty", "", nil, false, nil},
		{"root", "/", []string{""}, false, nil},
		{"rooted", "/a/b", []string{"a", "b"}, false, nil},
		{"rootless", "a/b", []string{"a", "b"}, true, nil},
		{"trailing slash", "/a/", []string{"a", ""}, false, nil},
		{"empty segments", "//a", []string{"", "a"}, false, nil},
		{"decoded", "/a/%20b/c%2Fd", []string{"a", " b", "c/d"}, false, nil},
		{"plus kept", "/a+b", []string{"a+b"}, false, nil},
		{"colon segment", "a:b", []string{"a:b"}, true, nil},
		{"query char", "/a?b", nil, false, uri.ErrInvalidPath},
		{"space", "/a b", nil, false, uri.ErrInvalidPath},
		{"bad triple", "/%zz", nil, false, uri.ErrInvalidPctEncoded},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			p, err := uri.NewPath(c.input)
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Fatalf("uri.NewPath(%q) error = %v, want %v\ndiff (-got +want):\n%v", c.input, err, c.wantErr, diff)
			}
			if err != nil {
				return
			}
			if diff := cmp.Diff(p.Segments(), c.wantSegs, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("uri.NewPath(%q).Segments() mismatch\ndiff (-got +want):\n%v", c.input, diff)
			}
			if p.Len() != len(c.wantSegs) {
				t.Errorf("uri.NewPath(%q).Len() = %d, want %d", c.input, p.Len(), len(c.wantSegs))
			}
			if p.IsRootless() != c.wantRootless {
				t.Errorf("uri.NewPath(%q).IsRootless() = %v, want %v", c.input, p.IsRootless(), c.wantRootless)
			}
			if p.IsEmpty() != (c.input == "") {
				t.Errorf("uri.NewPath(%q).IsEmpty() = %v, want %v", c.input, p.IsEmpty(), c.input == "")
			}
			if got := p.String(); got != c.input {
				t.Errorf("uri.NewPath(%q).String() = %q, want %q", c.input, got, c.input)
			}
		})
	}
}

func TestPathFromSegments(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		segs     []string
		rootless bool
		want     string
		wantErr  error
	}{
		{"none", nil, false, "", nil},
		{"none rootless", nil, true, "", nil},
		{"rooted", []string{"a", "b"}, false, "/a/b", nil},
		{"rootless", []string{"a", "b"}, true, "a/b", nil},
		{"escaped", []string{"a b", "c/d", "é"}, false, "/a%20b/c%2Fd/%C3%A9", nil},
		{"single empty", []string{""}, false, "/", nil},
		{"empty segments", []string{"", "a", ""}, false, "//a/", nil},
		{"rootless empty first", []string{"", "a"}, true, "", uri.ErrInvalidPath},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			p, err := uri.PathFromSegments(c.segs, c.rootless)
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Fatalf("uri.PathFromSegments(%q, %v) error = %v, want %v\ndiff (-got +want):\n%v", c.segs, c.rootless, err, c.wantErr, diff)
			}
			if err != nil {
				return
			}
			if got := p.String(); got != c.want {
				t.Errorf("uri.PathFromSegments(%q, %v) = %q, want %q", c.segs, c.rootless, got, c.want)
			}
			if diff := cmp.Diff(p.Segments(), c.segs, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("uri.PathFromSegments(%q, %v).Segments() mismatch\ndiff (-got +want):\n%v", c.segs, c.rootless, diff)
			}
			if _, err := uri.NewPath(p.String()); err != nil {
				t.Errorf("uri.NewPath(%q) error = %v, want nil", p, err)
			}
		})
	}
}

func TestPath_Ops(t *testing.T) {
	t.Parallel()

	p := uri.MustNewPath("/a/b")

	if got := p.Segment(1); got != "b" {
		t.Errorf("p.Segment(1) = %q, want %q", got, "b")
	}

	segs := p.Segments()
	segs[0] = "x"
	if got := p.Segment(0); got != "a" {
		t.Errorf("p.Segment(0) = %q after changing a copy of segments, want %q", got, "a")
	}

	if got := p.Append("c d").String(); got != "/a/b/c%20d" {
		t.Errorf("p.Append(\"c d\") = %q, want %q", got, "/a/b/c%20d")
	}
	if got := p.Append().String(); got != "/a/b" {
		t.Errorf("p.Append() = %q, want %q", got, "/a/b")
	}
	if got := uri.MustNewPath("").Append("a").String(); got != "/a" {
		t.Errorf("empty.Append(\"a\") = %q, want %q", got, "/a")
	}
	if got := uri.MustNewPath("x").Append("y").String(); got != "x/y" {
		t.Errorf("rootless.Append(\"y\") = %q, want %q", got, "x/y")
	}

	np, err := p.WithSegments("x", "y")
	if err != nil || np.String() != "/x/y" {
		t.Errorf("p.WithSegments(x, y) = (%q, %v), want (%q, nil)", np, err, "/x/y")
	}

	rl, err := p.WithRootless(true)
	if err != nil || rl.String() != "a/b" || !rl.IsRootless() {
		t.Errorf("p.WithRootless(true) = (%q, %v), want (%q, nil)", rl, err, "a/b")
	}
	if _, err := uri.MustNewPath("//a").WithRootless(true); err == nil {
		t.Error("WithRootless(true) on a path with an empty first segment error = nil, want error")
	}
	same, err := p.WithRootless(false)
	if err != nil || same.String() != p.String() {
		t.Errorf("p.WithRootless(false) = (%q, %v), want (%q, nil)", same, err, p)
	}
}

func TestPath_Normalize(t *testing.T) {
	t.Parallel()

	cases := []struct{ in, want string }{
		{"/%7euser/%2f", "/~user/%2F"},
		{"/a/./b/../c", "/a/./b/../c"},
		{"/A%20b", "/A%20b"},
	}
	for _, c := range cases {
		p := uri.MustNewPath(c.in)
		n := p.Normalize()
		if got := n.String(); got != c.want {
			t.Errorf("uri.MustNewPath(%q).Normalize() = %q, want %q", c.in, got, c.want)
		}
		if !n.IsNormalized() {
			t.Errorf("uri.MustNewPath(%q).Normalize().IsNormalized() = false", c.in)
		}
		if !p.Equal(n) {
			t.Errorf("path %q is not equal to its normal form %q", p, n)
		}
	}
}

func TestPath_Equal(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		path uri.Path
		val  any
		want bool
	}{
		{"zero to empty", uri.Path{}, uri.MustNewPath(""), true},
		{"value", uri.MustNewPath("/a"), uri.MustNewPath("/a"), true},
		{"pointer", uri.MustNewPath("/a"), ptr(uri.MustNewPath("/%61")), true},
		{"nil pointer", uri.MustNewPath("/a"), (*uri.Path)(nil), false},
		{"case sensitive", uri.MustNewPath("/a"), uri.MustNewPath("/A"), false},
		{"type mismatch", uri.MustNewPath("/a"), "/a", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.path.Equal(c.val); got != c.want {
				t.Errorf("path.Equal(%v) = %v, want %v", c.val, got, c.want)
			}
		})
	}
}

func ptr[T any](v T) *T { return &v }
