package grammar_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ghettovoice/uri/internal/grammar"
)

func TestSkipPctEncoded(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		in       string
		i        int
		wantNext int
		wantNorm bool
		wantErr  error
	}{
		{"uppercase reserved", "a%2Fb", 1, 4, true, nil},
		{"lowercase hex", "%2f", 0, 3, false, nil},
		{"unreserved octet", "%7E", 0, 3, false, nil},
		{"letter octet", "%41", 0, 3, false, nil},
		{"non-ascii octet", "%C3%A9", 3, 6, true, nil},
		{"truncated", "%2", 0, 0, false, grammar.ErrInvalidPctEncoded},
		{"lone percent", "abc%", 3, 3, false, grammar.ErrInvalidPctEncoded},
		{"not hex", "%zz", 0, 0, false, grammar.ErrInvalidPctEncoded},
		{"second not hex", "%2g", 0, 0, false, grammar.ErrInvalidPctEncoded},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			norm := true
			next, err := grammar.SkipPctEncoded(c.in, c.i, &norm)
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Fatalf("grammar.SkipPctEncoded(%q, %d) error = %v, want %v\ndiff (-got +want):\n%v", c.in, c.i, err, c.wantErr, diff)
			}
			if err != nil {
				return
			}
			if next != c.wantNext {
				t.Errorf("grammar.SkipPctEncoded(%q, %d) = %d, want %d", c.in, c.i, next, c.wantNext)
			}
			if norm != c.wantNorm {
				t.Errorf("grammar.SkipPctEncoded(%q, %d) normalized = %v, want %v", c.in, c.i, norm, c.wantNorm)
			}
		})
	}
}

func TestSkipPctEncoded_NeverSetsFlag(t *testing.T) {
	t.Parallel()

	norm := false
	if _, err := grammar.SkipPctEncoded("%2F", 0, &norm); err != nil {
		t.Fatalf("grammar.SkipPctEncoded() error = %v, want nil", err)
	}
	if norm {
		t.Error("grammar.SkipPctEncoded() set normalized flag back to true")
	}
	if _, err := grammar.SkipPctEncoded("%2F", 0, nil); err != nil {
		t.Fatalf("grammar.SkipPctEncoded() with nil flag error = %v, want nil", err)
	}
}

func TestDecodePctEncoded(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		in       string
		i        int
		want     string
		wantNext int
	}{
		{"single", "%20x", 0, " ", 3},
		{"utf-8 run", "a%C3%A9b", 1, "é", 7},
		{"invalid utf-8", "%FF", 0, "\uFFFD", 3},
		{"malformed first", "%zz", 0, "%", 1},
		{"truncated", "%2", 0, "%", 1},
		{"stops at malformed", "%41%4", 0, "A", 3},
		{"stops at text", "%41%42c", 0, "AB", 6},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, next := grammar.DecodePctEncoded(c.in, c.i)
			if got != c.want || next != c.wantNext {
				t.Errorf("grammar.DecodePctEncoded(%q, %d) = (%q, %d), want (%q, %d)", c.in, c.i, got, next, c.want, c.wantNext)
			}
		})
	}
}

func TestUnescape(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in          string
		plusAsSpace bool
		want        string
	}{
		{"", false, ""},
		{"plain", false, "plain"},
		{"a%20b", false, "a b"},
		{"a+b", false, "a+b"},
		{"a+b", true, "a b"},
		{"100%", false, "100%"},
		{"%zz%41", false, "%zzA"},
		{"caf%C3%A9", true, "café"},
	}
	for _, c := range cases {
		if got := grammar.Unescape(c.in, c.plusAsSpace); got != c.want {
			t.Errorf("grammar.Unescape(%q, %v) = %q, want %q", c.in, c.plusAsSpace, got, c.want)
		}
	}
}

func TestEscape(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		fn   func(c byte) bool
		want string
	}{
		{"unreserved", "a-b._~", nil, "a-b._~"},
		{"space and slash", "a b/c", nil, "a%20b%2Fc"},
		{"percent", "100%", nil, "100%25"},
		{"utf-8", "é", nil, "%C3%A9"},
		{"custom", "a:b@c", func(c byte) bool { return c == '@' }, "a:b%40c"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := grammar.Escape(c.in, c.fn); got != c.want {
				t.Errorf("grammar.Escape(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}

func TestEscapeForm(t *testing.T) {
	t.Parallel()

	cases := []struct{ in, want string }{
		{"a b", "a+b"},
		{"a+b", "a%2Bb"},
		{"x=1&y", "x%3D1%26y"},
		{"", ""},
	}
	for _, c := range cases {
		if got := grammar.EscapeForm(c.in); got != c.want {
			t.Errorf("grammar.EscapeForm(%q) = %q, want %q", c.in, got, c.want)
		}
		if got := grammar.Unescape(grammar.EscapeForm(c.in), true); got != c.in {
			t.Errorf("grammar.Unescape(grammar.EscapeForm(%q)) = %q, want %q", c.in, got, c.in)
		}
	}
}

func TestNormalizePctEncoded(t *testing.T) {
	t.Parallel()

	cases := []struct{ in, want string }{
		{"/a%2fb", "/a%2Fb"},
		{"%7euser", "~user"},
		{"%41%42", "AB"},
		{"Mixed%20Case", "Mixed%20Case"},
		{"already/normal", "already/normal"},
	}
	for _, c := range cases {
		got := grammar.NormalizePctEncoded(c.in)
		if got != c.want {
			t.Errorf("grammar.NormalizePctEncoded(%q) = %q, want %q", c.in, got, c.want)
		}
		if again := grammar.NormalizePctEncoded(got); again != got {
			t.Errorf("grammar.NormalizePctEncoded(%q) is not idempotent: %q", got, again)
		}
	}
}

func TestNormalizeHost(t *testing.T) {
	t.Parallel()

	cases := []struct{ in, want string }{
		{"Example.COM", "example.com"},
		{"%41bc", "abc"},
		{"a%c3%a9", "a%C3%A9"},
		{"[::ABCD]", "[::abcd]"},
	}
	for _, c := range cases {
		if got := grammar.NormalizeHost(c.in); got != c.want {
			t.Errorf("grammar.NormalizeHost(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
