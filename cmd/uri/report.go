package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/ghettovoice/uri"
	"github.com/ghettovoice/uri/internal/errorutil"
)

type hostInfo struct {
	Text string `json:"text" yaml:"text"`
	Kind string `json:"kind" yaml:"kind"`
	Name string `json:"name" yaml:"name"`
}

type param struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

type uriReport struct {
	URI        string    `json:"uri" yaml:"uri"`
	Scheme     string    `json:"scheme" yaml:"scheme"`
	Opaque     string    `json:"opaque" yaml:"opaque"`
	Authority  *string   `json:"authority,omitempty" yaml:"authority,omitempty"`
	Userinfo   *string   `json:"userinfo,omitempty" yaml:"userinfo,omitempty"`
	Host       *hostInfo `json:"host,omitempty" yaml:"host,omitempty"`
	Port       *uint16   `json:"port,omitempty" yaml:"port,omitempty"`
	Path       string    `json:"path" yaml:"path"`
	Segments   []string  `json:"segments,omitempty" yaml:"segments,omitempty"`
	Query      *string   `json:"query,omitempty" yaml:"query,omitempty"`
	Params     []param   `json:"params,omitempty" yaml:"params,omitempty"`
	Fragment   *string   `json:"fragment,omitempty" yaml:"fragment,omitempty"`
	Normalized string    `json:"normalized" yaml:"normalized"`
}

func newHostInfo(h uri.Host) *hostInfo {
	return &hostInfo{Text: h.String(), Kind: h.Kind().String(), Name: h.Name()}
}

func newURIReport(u *uri.URI) *uriReport {
	rep := &uriReport{
		URI:        u.String(),
		Scheme:     u.Scheme().String(),
		Opaque:     u.Opaque(),
		Path:       u.RawPath(),
		Segments:   u.PathSegments(),
		Normalized: u.Normalize().String(),
	}
	if a, ok := u.Authority(); ok {
		rep.Authority = &a
	}
	if ui, ok := u.Userinfo(); ok {
		s := ui.String()
		rep.Userinfo = &s
	}
	if h, ok := u.Host(); ok {
		rep.Host = newHostInfo(h)
	}
	if p, ok := u.Port(); ok {
		rep.Port = &p
	}
	if q, ok := u.RawQuery(); ok {
		rep.Query = &q
		for k, v := range u.QueryParams().All() {
			rep.Params = append(rep.Params, param{k, v})
		}
	}
	if f, ok := u.Fragment(); ok {
		s := f.String()
		rep.Fragment = &s
	}
	return rep
}

func parseReport(arg string) (any, error) {
	u, err := uri.Parse(arg)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return newURIReport(u), nil
}

type normReport struct {
	URI        string `json:"uri" yaml:"uri"`
	Normalized string `json:"normalized" yaml:"normalized"`
	Changed    bool   `json:"changed" yaml:"changed"`
}

func normalizeReport(arg string) (any, error) {
	u, err := uri.Parse(arg)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	n := u.Normalize().String()
	return &normReport{URI: u.String(), Normalized: n, Changed: n != u.String()}, nil
}

type httpInfo struct {
	URI          string    `json:"uri" yaml:"uri"`
	Secure       bool      `json:"secure" yaml:"secure"`
	Host         *hostInfo `json:"host" yaml:"host"`
	Port         uint16    `json:"port" yaml:"port"`
	ExplicitPort bool      `json:"explicit_port" yaml:"explicit_port"`
	Path         string    `json:"path" yaml:"path"`
	Params       []param   `json:"params,omitempty" yaml:"params,omitempty"`
	Normalized   string    `json:"normalized" yaml:"normalized"`
}

func httpReport(arg string) (any, error) {
	h, err := uri.ParseHTTP(arg)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	rep := &httpInfo{
		URI:          h.String(),
		Secure:       h.IsSecure(),
		Host:         newHostInfo(h.Host()),
		Port:         h.Port(),
		ExplicitPort: h.HasExplicitPort(),
		Path:         h.Path().String(),
		Normalized:   h.Normalize().String(),
	}
	for k, v := range h.QueryParams().All() {
		rep.Params = append(rep.Params, param{k, v})
	}
	return rep, nil
}

type hostCheck struct {
	hostInfo   `yaml:",inline"`
	Normalized string `json:"normalized" yaml:"normalized"`
}

func hostReport(arg string) (any, error) {
	h, err := uri.NewHost(arg)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &hostCheck{hostInfo: *newHostInfo(h), Normalized: h.Normalize().String()}, nil
}

type encoder interface {
	Encode(v any) error
	Close() error
}

func newEncoder(format string, w io.Writer) (encoder, error) {
	switch strings.ToLower(format) {
	case "text", "":
		return &textEncoder{w: w}, nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return jsonEncoder{enc}, nil
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		return enc, nil
	default:
		return nil, errorutil.Errorf("unknown output format %q", format)
	}
}

type jsonEncoder struct {
	*json.Encoder
}

func (jsonEncoder) Close() error { return nil }

// textEncoder writes reports as "key: value" lines separated by an empty line.
type textEncoder struct {
	w io.Writer
	n int
}

type textLine struct {
	key string
	val any
}

type texter interface {
	textLines() []textLine
}

func (e *textEncoder) Encode(v any) error {
	t, ok := v.(texter)
	if !ok {
		return errorutil.Errorf("unsupported report %T", v)
	}
	if e.n > 0 {
		if _, err := io.WriteString(e.w, "\n"); err != nil {
			return err //nolint:wrapcheck
		}
	}
	e.n++
	for _, l := range t.textLines() {
		if _, err := fmt.Fprintf(e.w, "%s: %s\n", l.key, textValue(l.val)); err != nil {
			return err //nolint:wrapcheck
		}
	}
	return nil
}

func (*textEncoder) Close() error { return nil }

func textValue(v any) string {
	switch v := v.(type) {
	case string:
		return strconv.Quote(v)
	case *string:
		if v == nil {
			return "-"
		}
		return strconv.Quote(*v)
	case *uint16:
		if v == nil {
			return "-"
		}
		return strconv.FormatUint(uint64(*v), 10)
	case []string:
		parts := make([]string, len(v))
		for i := range v {
			parts[i] = strconv.Quote(v[i])
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case []param:
		parts := make([]string, len(v))
		for i := range v {
			parts[i] = strconv.Quote(v[i].Name) + "=" + strconv.Quote(v[i].Value)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *hostInfo:
		if v == nil {
			return "-"
		}
		return strconv.Quote(v.Text) + " (" + v.Kind + ")"
	default:
		return fmt.Sprint(v)
	}
}

func (r *uriReport) textLines() []textLine {
	return []textLine{
		{"uri", r.URI},
		{"scheme", r.Scheme},
		{"opaque", r.Opaque},
		{"authority", r.Authority},
		{"userinfo", r.Userinfo},
		{"host", r.Host},
		{"port", r.Port},
		{"path", r.Path},
		{"segments", r.Segments},
		{"query", r.Query},
		{"params", r.Params},
		{"fragment", r.Fragment},
		{"normalized", r.Normalized},
	}
}

func (r *normReport) textLines() []textLine {
	return []textLine{
		{"uri", r.URI},
		{"normalized", r.Normalized},
		{"changed", r.Changed},
	}
}

func (r *httpInfo) textLines() []textLine {
	return []textLine{
		{"uri", r.URI},
		{"secure", r.Secure},
		{"host", r.Host},
		{"port", r.Port},
		{"explicit_port", r.ExplicitPort},
		{"path", r.Path},
		{"params", r.Params},
		{"normalized", r.Normalized},
	}
}

func (r *hostCheck) textLines() []textLine {
	return []textLine{
		{"host", r.Text},
		{"kind", r.Kind},
		{"name", r.Name},
		{"normalized", r.Normalized},
	}
}
