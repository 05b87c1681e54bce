// Package diagnostics holds the records produced while reading and validating a document.
package diagnostics

import "fmt"

const (
	CodeInvalidNode          = "invalid-node"
	CodeInvalidProperty      = "invalid-property"
	CodeDuplicateKey         = "duplicate-key"
	CodeInvalidReference     = "invalid-reference"
	CodeUnresolvedReference  = "unresolved-reference"
	CodeExternalFetch        = "external-fetch"
	CodeUnsupportedReference = "unsupported-reference"
)

// Error is a single diagnostic. Code may be empty. Pointer locates the problem in the document
// and Line/Column are set when the originating yaml node is known.
type Error struct {
	Code    string
	Message string
	Pointer string
	Line    int
	Column  int
}

var _ error = (*Error)(nil)

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%d:%d] %s", e.Line, e.Column, e.Message)
	}
	return e.Message
}

// List is an append-only, ordered collection of diagnostics belonging to one read or validate call.
type List struct {
	errs []*Error
}

// Add appends err to the list.
func (l *List) Add(err *Error) {
	if l == nil {
		panic("diagnostics: Add called on nil list")
	}
	l.errs = append(l.errs, err)
}

// All returns a copy of the recorded diagnostics in the order they were added.
func (l *List) All() []*Error {
	if l == nil || len(l.errs) == 0 {
		return nil
	}
	out := make([]*Error, len(l.errs))
	copy(out, l.errs)
	return out
}

func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.errs)
}

// Errors returns the diagnostics as plain errors.
func (l *List) Errors() []error {
	all := l.All()
	if all == nil {
		return nil
	}
	out := make([]error, 0, len(all))
	for _, e := range all {
		out = append(out, e)
	}
	return out
}
