// Package jsonpointer provides JSONPointer an implementation of RFC6901 https://datatracker.ietf.org/doc/html/rfc6901
package jsonpointer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/speakeasy-api/apireader/errors"
)

const (
	// ErrNotFound is returned when the target is not found.
	ErrNotFound = errors.Error("not found")
	// ErrInvalidPath is returned when the path cannot be navigated in the target.
	ErrInvalidPath = errors.Error("invalid path")
	// ErrValidation is returned when the jsonpointer is invalid.
	ErrValidation = errors.Error("validation error")
)

// JSONPointer represents a JSON Pointer value as defined by RFC6901 https://datatracker.ietf.org/doc/html/rfc6901
type JSONPointer string

var tokenRegex = regexp.MustCompile("^(?:[\x00-\x2E\x30-\x7D\x7F-\uffff]|~[01])*$")

// Validate will validate the JSONPointer is valid as per RFC6901.
func (j JSONPointer) Validate() error {
	_, err := j.Parts()
	return err
}

// Parts returns the unescaped reference tokens of the pointer. The empty pointer and "/" both address the root
// and return no parts.
func (j JSONPointer) Parts() ([]string, error) {
	if j == "" || j == "/" {
		return nil, nil
	}

	if !strings.HasPrefix(string(j), "/") {
		return nil, ErrValidation.Wrapf("jsonpointer must start with /: %s", string(j))
	}

	raw := strings.Split(strings.TrimPrefix(string(j), "/"), "/")
	parts := make([]string, 0, len(raw))

	for _, part := range raw {
		if !tokenRegex.MatchString(part) {
			return nil, ErrValidation.Wrapf("jsonpointer part must be a valid token: %s", string(j))
		}
		parts = append(parts, Unescape(part))
	}

	return parts, nil
}

// EscapeString escapes a string for use as a reference token in a JSON pointer according to RFC6901.
// It replaces "~" with "~0" and "/" with "~1".
func EscapeString(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "~", "~0"), "/", "~1")
}

// Unescape reverses EscapeString.
func Unescape(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "~1", "/"), "~0", "~")
}

// PartsToJSONPointer will convert the exploded parts of a JSONPointer to a JSONPointer.
func PartsToJSONPointer(parts []string) JSONPointer {
	var sb strings.Builder
	for _, part := range parts {
		sb.WriteByte('/')
		sb.WriteString(EscapeString(part))
	}
	return JSONPointer(sb.String())
}

// FromFragment builds a pointer from the fragment of a reference, with or without its leading "#".
func FromFragment(fragment string) JSONPointer {
	fragment = strings.TrimPrefix(fragment, "#")
	if fragment != "" && !strings.HasPrefix(fragment, "/") {
		fragment = "/" + fragment
	}
	return JSONPointer(fragment)
}

func (j JSONPointer) String() string {
	return string(j)
}

func notFound(format string, args ...any) error {
	return ErrNotFound.Wrap(fmt.Errorf(format, args...))
}
