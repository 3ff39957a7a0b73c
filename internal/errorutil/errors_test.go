package errorutil_test

import (
	"errors"
	"testing"

	"github.com/ghettovoice/uri/internal/errorutil"
)

const errSentinel errorutil.Error = "sentinel"

func TestNewWrapperError(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		format  string
		args    []any
		wantMsg string
	}{
		{"no message", "", nil, "sentinel"},
		{"message", "bad thing", nil, "sentinel: bad thing"},
		{"message with verb", "100% bad", nil, "sentinel: 100% bad"},
		{"format", "bad %q at %d", []any{"x", 3}, `sentinel: bad "x" at 3`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			err := errorutil.NewWrapperError(errSentinel, c.format, c.args...)
			if !errors.Is(err, errSentinel) {
				t.Errorf("errorutil.NewWrapperError() = %v, want wrapping %v", err, errSentinel)
			}
			if got := err.Error(); got != c.wantMsg {
				t.Errorf("errorutil.NewWrapperError().Error() = %q, want %q", got, c.wantMsg)
			}
		})
	}
}

func TestJoinPrefix(t *testing.T) {
	t.Parallel()

	if err := errorutil.JoinPrefix("build:"); err != nil {
		t.Errorf("errorutil.JoinPrefix() = %v, want nil", err)
	}

	one := errorutil.JoinPrefix("build:", errSentinel)
	if got, want := one.Error(), "build: sentinel"; got != want {
		t.Errorf("errorutil.JoinPrefix(one).Error() = %q, want %q", got, want)
	}

	if err := errorutil.JoinPrefix("build:", nil, nil); err != nil {
		t.Errorf("errorutil.JoinPrefix(nil, nil) = %v, want nil", err)
	}

	cause := errors.New("cause")
	nested := errorutil.JoinPrefix("", errors.New("a"), errors.New("b\nc"))
	err := errorutil.JoinPrefix("build:", cause, nil, nested)
	want := "build:\n  - cause\n  - multiple errors\n    - a\n    - b\n      c"
	if got := err.Error(); got != want {
		t.Errorf("errorutil.JoinPrefix(...).Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, cause) {
		t.Errorf("errors.Is(%v, cause) = false, want true", err)
	}
}
