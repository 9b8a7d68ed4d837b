// Package errors derives low-cardinality error labels for metrics and logs.
package errors

import (
	"context"
	goerrors "errors"
	"reflect"
	"strings"

	apperrors "github.com/BeauMercier/drasticClientPortal/internal/errors"
)

// Classify returns a short label for err. Context errors and application
// error codes take precedence; anything else is named after the deepest
// non-wrapper type in its chain, e.g. "gdrive_apierror".
func Classify(err error) string {
	switch {
	case err == nil:
		return ""
	case goerrors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case goerrors.Is(err, context.Canceled):
		return "canceled"
	}
	if code := apperrors.GetCode(err); code != "" {
		return string(code)
	}
	return specificType(err)
}

// genericTypes are wrapper and sentinel types that carry no signal.
var genericTypes = map[string]bool{
	"fmt.wrapError":      true,
	"fmt.wrapErrors":     true,
	"errors.errorString": true,
	"errors.joinError":   true,
}

// specificType names the deepest non-generic error type in the chain.
func specificType(err error) string {
	name := ""
	for e := err; e != nil; e = goerrors.Unwrap(e) {
		if n := rawTypeName(e); !genericTypes[n] {
			name = n
		}
		if name == "" && goerrors.Unwrap(e) == nil {
			name = rawTypeName(e)
		}
	}
	if name == "" {
		return "unknown"
	}
	return strings.ReplaceAll(strings.ToLower(name), ".", "_")
}

func rawTypeName(err error) string {
	t := reflect.TypeOf(err)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	return t.String()
}
