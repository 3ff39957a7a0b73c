package uri_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ghettovoice/uri"
)

func TestNewScheme(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input    string
		wantNorm string
		wantErr  error
	}{
		{"http", "http", nil},
		{"HTTP", "http", nil},
		{"svn+SSH", "svn+ssh", nil},
		{"a1.b-c", "a1.b-c", nil},
		{"", "", uri.ErrInvalidScheme},
		{"1a", "", uri.ErrInvalidScheme},
		{"a:b", "", uri.ErrInvalidScheme},
	}
	for _, c := range cases {
		s, err := uri.NewScheme(c.input)
		if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
			t.Errorf("uri.NewScheme(%q) error = %v, want %v\ndiff (-got +want):\n%v", c.input, err, c.wantErr, diff)
			continue
		}
		if err != nil {
			continue
		}
		if got := s.Normalize().String(); got != c.wantNorm {
			t.Errorf("uri.NewScheme(%q).Normalize() = %q, want %q", c.input, got, c.wantNorm)
		}
		if got := s.String(); got != c.input {
			t.Errorf("uri.NewScheme(%q).String() = %q, want %q", c.input, got, c.input)
		}
	}
}

func TestScheme_DefaultPort(t *testing.T) {
	t.Parallel()

	cases := []struct {
		scheme string
		want   uint16
		wantOK bool
	}{
		{"http", 80, true},
		{"HTTPS", 443, true},
		{"ws", 80, true},
		{"wss", 443, true},
		{"ftp", 21, true},
		{"mailto", 0, false},
	}
	for _, c := range cases {
		got, ok := uri.MustNewScheme(c.scheme).DefaultPort()
		if got != c.want || ok != c.wantOK {
			t.Errorf("uri.MustNewScheme(%q).DefaultPort() = (%d, %v), want (%d, %v)", c.scheme, got, ok, c.want, c.wantOK)
		}
	}
}

func TestScheme_Equal(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		scheme uri.Scheme
		val    any
		want   bool
	}{
		{"case insensitive", uri.SchemeHTTP, uri.MustNewScheme("HTTP"), true},
		{"pointer", uri.SchemeHTTP, &uri.SchemeHTTP, true},
		{"different", uri.SchemeHTTP, uri.SchemeHTTPS, false},
		{"zero", uri.Scheme{}, uri.Scheme{}, true},
		{"zero to present", uri.Scheme{}, uri.SchemeHTTP, false},
		{"string", uri.SchemeHTTP, "http", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.scheme.Equal(c.val); got != c.want {
				t.Errorf("scheme.Equal(%v) = %v, want %v", c.val, got, c.want)
			}
		})
	}
}

func TestUser(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		user     uri.Userinfo
		want     string
		wantName string
		wantPass string
		wantOK   bool
	}{
		{"user", uri.User("root"), "root", "root", "", false},
		{"escaped user", uri.User("a@b:c"), "a%40b%3Ac", "a@b:c", "", false},
		{"user and password", uri.UserPassword("root", "qwe"), "root:qwe", "root", "qwe", true},
		{"empty password", uri.UserPassword("root", ""), "root:", "root", "", true},
		{"escaped password", uri.UserPassword("u", "p@s:s/"), "u:p%40s:s%2F", "u", "p@s:s/", true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.user.String(); got != c.want {
				t.Errorf("userinfo.String() = %q, want %q", got, c.want)
			}
			if got := c.user.Username(); got != c.wantName {
				t.Errorf("userinfo.Username() = %q, want %q", got, c.wantName)
			}
			pass, ok := c.user.Password()
			if pass != c.wantPass || ok != c.wantOK {
				t.Errorf("userinfo.Password() = (%q, %v), want (%q, %v)", pass, ok, c.wantPass, c.wantOK)
			}
			if _, err := uri.NewUserinfo(c.user.String()); err != nil {
				t.Errorf("uri.NewUserinfo(%q) error = %v, want nil", c.user, err)
			}
		})
	}
}

func TestUserinfo_Normalize(t *testing.T) {
	t.Parallel()

	ui := uri.MustNewUserinfo("User%3a%7e")
	if got, want := ui.Normalize().String(), "User%3A~"; got != want {
		t.Errorf("ui.Normalize() = %q, want %q", got, want)
	}
	if !ui.Equal(uri.MustNewUserinfo("User%3A~")) {
		t.Error("userinfos with the same normal form are not equal")
	}
	if ui.Equal(uri.MustNewUserinfo("user%3A~")) {
		t.Error("userinfo comparison is case insensitive")
	}
	if _, err := uri.NewUserinfo("a b"); err == nil {
		t.Error("uri.NewUserinfo(\"a b\") error = nil, want error")
	}
}

func TestNewHost(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input    string
		wantKind uri.HostKind
		wantName string
		wantIP   bool
		wantErr  error
	}{
		{"example.com", uri.HostDomain, "example.com", false, nil},
		{"192.168.0.1", uri.HostIPv4, "192.168.0.1", true, nil},
		{"[::1]", uri.HostIPv6, "::1", true, nil},
		{"[v1.fe]", uri.HostIPvFuture, "v1.fe", false, nil},
		{"my_host", uri.HostRegName, "my_host", false, nil},
		{"caf%C3%A9", uri.HostRegName, "café", false, nil},
		{"", uri.HostRegName, "", false, nil},
		{"[::1", 0, "", false, uri.ErrInvalidAuthority},
		{"a:b", 0, "", false, uri.ErrInvalidAuthority},
		{"a b", 0, "", false, uri.ErrInvalidAuthority},
	}
	for _, c := range cases {
		h, err := uri.NewHost(c.input)
		if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
			t.Errorf("uri.NewHost(%q) error = %v, want %v\ndiff (-got +want):\n%v", c.input, err, c.wantErr, diff)
			continue
		}
		if err != nil {
			continue
		}
		if h.Kind() != c.wantKind {
			t.Errorf("uri.NewHost(%q).Kind() = %v, want %v", c.input, h.Kind(), c.wantKind)
		}
		if got := h.Name(); got != c.wantName {
			t.Errorf("uri.NewHost(%q).Name() = %q, want %q", c.input, got, c.wantName)
		}
		if h.IsIP() != c.wantIP {
			t.Errorf("uri.NewHost(%q).IsIP() = %v, want %v", c.input, h.IsIP(), c.wantIP)
		}
		if h.IsZero() {
			t.Errorf("uri.NewHost(%q).IsZero() = true, want false", c.input)
		}
	}
}

func TestHost_Normalize(t *testing.T) {
	t.Parallel()

	cases := []struct{ in, want string }{
		{"Example.COM", "example.com"},
		{"%41b", "ab"},
		{"[2001:DB8::1]", "[2001:db8::1]"},
		{"example.com", "example.com"},
	}
	for _, c := range cases {
		h := uri.MustNewHost(c.in)
		n := h.Normalize()
		if got := n.String(); got != c.want {
			t.Errorf("uri.MustNewHost(%q).Normalize() = %q, want %q", c.in, got, c.want)
		}
		if n.Kind() != h.Kind() {
			t.Errorf("uri.MustNewHost(%q).Normalize().Kind() = %v, want %v", c.in, n.Kind(), h.Kind())
		}
		if !h.Equal(n) {
			t.Errorf("host %q is not equal to its normal form %q", h, n)
		}
	}
}

func TestFragment(t *testing.T) {
	t.Parallel()

	f := uri.MustNewFragment("sec%201/a?b")
	if got := f.Decoded(); got != "sec 1/a?b" {
		t.Errorf("f.Decoded() = %q, want %q", got, "sec 1/a?b")
	}
	if !uri.MustNewFragment("%7e").Equal(uri.MustNewFragment("~")) {
		t.Error("fragments with the same normal form are not equal")
	}
	if uri.MustNewFragment("").Equal(uri.Fragment{}) {
		t.Error("empty fragment is equal to the absent fragment")
	}
	if _, err := uri.NewFragment("a#b"); err == nil {
		t.Error("uri.NewFragment(\"a#b\") error = nil, want error")
	}
}

func TestComponents_UnmarshalText(t *testing.T) {
	t.Parallel()

	var (
		s  uri.Scheme
		ui uri.Userinfo
		h  uri.Host
		p  uri.Path
		q  uri.Query
		f  uri.Fragment
	)
	cases := []struct {
		name    string
		v       interface{ UnmarshalText([]byte) error }
		text    string
		wantErr error
	}{
		{"scheme", &s, "https", nil},
		{"userinfo", &ui, "u:p", nil},
		{"host", &h, "[::1]", nil},
		{"path", &p, "/a/b", nil},
		{"query", &q, "a=1", nil},
		{"fragment", &f, "top", nil},
		{"invalid scheme", new(uri.Scheme), "1", uri.ErrInvalidScheme},
		{"invalid userinfo", new(uri.Userinfo), "@", uri.ErrInvalidAuthority},
		{"invalid host", new(uri.Host), "[x]", uri.ErrInvalidAuthority},
		{"invalid path", new(uri.Path), "?", uri.ErrInvalidPath},
		{"invalid query", new(uri.Query), "#", uri.ErrInvalidQuery},
		{"invalid fragment", new(uri.Fragment), "#", uri.ErrInvalidFragment},
	}
	for _, c := range cases {
		err := c.v.UnmarshalText([]byte(c.text))
		if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
			t.Errorf("%s.UnmarshalText(%q) error = %v, want %v\ndiff (-got +want):\n%v", c.name, c.text, err, c.wantErr, diff)
		}
	}

	if h.Kind() != uri.HostIPv6 || p.Len() != 2 || s.String() != "https" {
		t.Errorf("unmarshaled values = %q %q %q, want https [::1] /a/b", s, h, p)
	}
	got, err := h.MarshalText()
	if err != nil || string(got) != "[::1]" {
		t.Errorf("h.MarshalText() = (%q, %v), want (%q, nil)", got, err, "[::1]")
	}
}
