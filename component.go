package uri

// text is the validated text of a URI component.
type text struct {
	s       string
	present bool
	norm    bool
}

// String returns the component text as it appears in the URI.
func (t text) String() string { return t.s }

// IsZero reports whether the component is absent.
func (t text) IsZero() bool { return !t.present }

// IsNormalized reports whether the component text is already in normal form.
func (t text) IsNormalized() bool { return !t.present || t.norm }

// MarshalText implements [encoding.TextMarshaler].
func (t text) MarshalText() ([]byte, error) { return []byte(t.s), nil }

// asValue accepts both T and *T, used by Equal methods.
func asValue[T any](val any) (T, bool) {
	switch v := val.(type) {
	case T:
		return v, true
	case *T:
		if v != nil {
			return *v, true
		}
	}
	var zero T
	return zero, false
}
