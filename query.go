package uri

import (
	"iter"
	"slices"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/uri/internal/grammar"
	"github.com/ghettovoice/uri/internal/util"
)

// Query is the query component, without the leading "?":
//
//	query = *( pchar / "/" / "?" )
type Query struct {
	text
}

// NewQuery validates s and returns it as a Query.
func NewQuery(s string) (Query, error) {
	norm, err := grammar.ValidateQuery(s)
	if err != nil {
		return Query{}, errtrace.Wrap(err)
	}
	return Query{text{s, true, norm}}, nil
}

// MustNewQuery is like [NewQuery] but panics on error.
func MustNewQuery(s string) Query { return util.Must2(NewQuery(s)) }

// QueryFromParams encodes params as a query.
func QueryFromParams(params *QueryParams) Query {
	return Query{text{params.Encode(), true, true}}
}

// Params decodes the query as "&"-separated name=value pairs, see [ParseQueryParams].
func (q Query) Params() *QueryParams { return ParseQueryParams(q.s) }

// Normalize normalizes percent-encoded triples.
func (q Query) Normalize() Query {
	if q.IsNormalized() {
		return q
	}
	return Query{text{grammar.NormalizePctEncoded(q.s), true, true}}
}

// Equal compares normal forms of queries.
func (q Query) Equal(val any) bool {
	other, ok := asValue[Query](val)
	if !ok {
		return false
	}
	return q.present == other.present && q.Normalize().s == other.Normalize().s
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (q *Query) UnmarshalText(b []byte) error {
	v, err := NewQuery(string(b))
	if err != nil {
		*q = Query{}
		return errtrace.Wrap(err)
	}
	*q = v
	return nil
}

type queryParam struct {
	name, value string
}

// QueryParams is an ordered multimap of decoded query parameters.
// Names are case-sensitive. The insertion order of pairs is kept.
//
// The zero value is an empty set ready to use.
type QueryParams struct {
	pairs []queryParam
	index map[string][]int
}

// NewQueryParams creates a set from name-value pairs: NewQueryParams("a", "1", "b", "2").
// A trailing name without a value gets the empty value.
func NewQueryParams(kvs ...string) *QueryParams {
	p := &QueryParams{}
	for i := 0; i < len(kvs); i += 2 {
		var v string
		if i+1 < len(kvs) {
			v = kvs[i+1]
		}
		p.Add(kvs[i], v)
	}
	return p
}

// ParseQueryParams decodes the raw query s.
//
// Pairs are separated by "&", empty pairs are skipped. The name is separated from the value
// by the first "=", a pair without "=" has the empty value. "+" is decoded as a space,
// malformed percent-encoded triples are kept literally.
func ParseQueryParams(s string) *QueryParams {
	p := &QueryParams{}
	for pair := range strings.SplitSeq(s, "&") {
		if pair == "" {
			continue
		}
		name, value, _ := strings.Cut(pair, "=")
		p.Add(grammar.Unescape(name, true), grammar.Unescape(value, true))
	}
	return p
}

func (p *QueryParams) reindex() {
	clear(p.index)
	for i, kv := range p.pairs {
		if p.index == nil {
			p.index = make(map[string][]int)
		}
		p.index[kv.name] = append(p.index[kv.name], i)
	}
}

// Len returns the number of pairs.
func (p *QueryParams) Len() int {
	if p == nil {
		return 0
	}
	return len(p.pairs)
}

// Get returns the first value of the name.
func (p *QueryParams) Get(name string) (string, bool) {
	if p == nil {
		return "", false
	}
	idx := p.index[name]
	if len(idx) == 0 {
		return "", false
	}
	return p.pairs[idx[0]].value, true
}

// Values returns all values of the name in insertion order.
func (p *QueryParams) Values(name string) []string {
	if p == nil {
		return nil
	}
	idx := p.index[name]
	if len(idx) == 0 {
		return nil
	}
	vals := make([]string, len(idx))
	for i, j := range idx {
		vals[i] = p.pairs[j].value
	}
	return vals
}

// Has reports whether the name is present.
func (p *QueryParams) Has(name string) bool {
	if p == nil {
		return false
	}
	return len(p.index[name]) > 0
}

// Add appends the name-value pair.
func (p *QueryParams) Add(name, value string) *QueryParams {
	if p.index == nil {
		p.index = make(map[string][]int)
	}
	p.index[name] = append(p.index[name], len(p.pairs))
	p.pairs = append(p.pairs, queryParam{name, value})
	return p
}

// Set replaces all values of the name with the value.
// The pair keeps the position of the first occurrence, or is appended if the name is new.
func (p *QueryParams) Set(name, value string) *QueryParams {
	idx := p.index[name]
	if len(idx) == 0 {
		return p.Add(name, value)
	}
	p.pairs[idx[0]].value = value
	if len(idx) > 1 {
		p.deleteAt(idx[1:])
	}
	return p
}

// Del deletes all pairs of the name.
func (p *QueryParams) Del(name string) *QueryParams {
	if idx := p.index[name]; len(idx) > 0 {
		p.deleteAt(idx)
	}
	return p
}

func (p *QueryParams) deleteAt(idx []int) {
	drop := make(map[int]struct{}, len(idx))
	for _, i := range idx {
		drop[i] = struct{}{}
	}
	var i int
	p.pairs = slices.DeleteFunc(p.pairs, func(queryParam) bool {
		_, ok := drop[i]
		i++
		return ok
	})
	p.reindex()
}

// All iterates over pairs in insertion order.
func (p *QueryParams) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if p == nil {
			return
		}
		for _, kv := range p.pairs {
			if !yield(kv.name, kv.value) {
				return
			}
		}
	}
}

// Names returns distinct names in order of the first occurrence.
func (p *QueryParams) Names() []string {
	if p == nil {
		return nil
	}
	names := make([]string, 0, len(p.index))
	for i, kv := range p.pairs {
		if p.index[kv.name][0] == i {
			names = append(names, kv.name)
		}
	}
	return names
}

// Clone returns a deep copy.
func (p *QueryParams) Clone() *QueryParams {
	if p == nil {
		return nil
	}
	p2 := &QueryParams{pairs: slices.Clone(p.pairs)}
	p2.reindex()
	return p2
}

// Encode encodes pairs as a raw query: names and values are form-encoded
// and joined with "=" and "&".
func (p *QueryParams) Encode() string {
	if p.Len() == 0 {
		return ""
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	for i, kv := range p.pairs {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(grammar.EscapeForm(kv.name))
		sb.WriteByte('=')
		sb.WriteString(grammar.EscapeForm(kv.value))
	}
	return sb.String()
}

// String returns the encoded query.
func (p *QueryParams) String() string { return p.Encode() }

// Equal compares pairs including their order.
func (p *QueryParams) Equal(val any) bool {
	other, ok := asValue[QueryParams](val)
	if !ok {
		return false
	}
	if p == nil {
		return len(other.pairs) == 0
	}
	return slices.Equal(p.pairs, other.pairs)
}
