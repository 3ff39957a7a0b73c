package uri

import "github.com/ghettovoice/uri/internal/grammar"

// Error is a URI syntax error. All errors returned by parsing, building and setters
// wrap one of the constants below, use [errors.Is] to check them.
type Error = grammar.Error

const (
	ErrEmptyInput        = grammar.ErrEmptyInput
	ErrInvalidScheme     = grammar.ErrInvalidScheme
	ErrInvalidAuthority  = grammar.ErrInvalidAuthority
	ErrInvalidPath       = grammar.ErrInvalidPath
	ErrInvalidQuery      = grammar.ErrInvalidQuery
	ErrInvalidFragment   = grammar.ErrInvalidFragment
	ErrInvalidPctEncoded = grammar.ErrInvalidPctEncoded
)
