// Package errorutil provides error helpers shared by the URI packages.
package errorutil

//go:generate go tool errtrace -w .

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ghettovoice/uri/internal/util"
)

// Error is a constant error.
type Error string

func (e Error) Error() string { return string(e) }

// Errorf returns a plain error with the formatted message.
func Errorf(format string, args ...any) error {
	return Error(fmt.Sprintf(format, args...)) //errtrace:skip
}

// NewWrapperError returns an error that matches sentinel with [errors.Is]
// and describes the failure with the formatted message.
func NewWrapperError(sentinel error, format string, args ...any) error {
	if format == "" {
		return sentinel //errtrace:skip
	}
	if len(args) > 0 {
		format = fmt.Sprintf(format, args...)
	}
	return fmt.Errorf("%w: %s", sentinel, format) //errtrace:skip
}

// ErrInvalidArgument is returned when a method gets an unusable argument or receiver.
const ErrInvalidArgument Error = "invalid argument"

// NewInvalidArgumentError returns an [ErrInvalidArgument] error with the formatted message.
func NewInvalidArgumentError(format string, args ...any) error {
	return NewWrapperError(ErrInvalidArgument, format, args...) //errtrace:skip
}

// JoinPrefix joins non-nil errors under the prefix.
// A single error reads as "prefix: err", several are listed one per line.
// A nested list without a prefix is labelled "multiple errors".
func JoinPrefix(prefix string, errs ...error) error {
	errs = slices.DeleteFunc(slices.Clone(errs), func(err error) bool { return err == nil })
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return fmt.Errorf("%s: %w", strings.TrimSuffix(prefix, ":"), errs[0]) //errtrace:skip
	}
	return &errorList{prefix: prefix, errs: errs} //errtrace:skip
}

type errorList struct {
	prefix string
	errs   []error
}

func (e *errorList) Error() string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	sb.WriteString(e.prefix)
	e.writeItems(sb, 1)
	return sb.String()
}

func (e *errorList) writeItems(sb *strings.Builder, depth int) {
	pad := strings.Repeat("  ", depth)
	for _, err := range e.errs {
		sb.WriteString("\n")
		sb.WriteString(pad)
		sb.WriteString("- ")
		if l, ok := err.(*errorList); ok { //nolint:errorlint
			if l.prefix == "" {
				sb.WriteString("multiple errors")
			} else {
				sb.WriteString(l.prefix)
			}
			l.writeItems(sb, depth+1)
			continue
		}
		sb.WriteString(strings.ReplaceAll(err.Error(), "\n", "\n"+pad+"  "))
	}
}

func (e *errorList) Unwrap() []error { return e.errs }
