package references

import (
	"fmt"
)

// Type is the kind of component a reference points at. The set is closed; the zero value means
// the kind is not specified by the reference itself.
type Type int

const (
	TypeUnspecified Type = iota
	TypeSchema
	TypeResponse
	TypeParameter
	TypeExample
	TypeRequestBody
	TypeHeader
	TypeSecurityScheme
	TypeLink
	TypeCallback
	TypeTag
	TypePathItem
)

var typeNames = map[Type]string{
	TypeSchema:         "schema",
	TypeResponse:       "response",
	TypeParameter:      "parameter",
	TypeExample:        "example",
	TypeRequestBody:    "requestBody",
	TypeHeader:         "header",
	TypeSecurityScheme: "securityScheme",
	TypeLink:           "link",
	TypeCallback:       "callback",
	TypeTag:            "tag",
	TypePathItem:       "pathItem",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unspecified"
}

// Valid reports whether t is one of the declared kinds.
func (t Type) Valid() bool {
	_, ok := typeNames[t]
	return ok
}

// Reference is the structured form of a $ref string.
// A reference with ExternalResource set and an empty ID denotes the whole external document.
type Reference struct {
	Type             Type
	ID               string
	ExternalResource string
}

var _ fmt.Stringer = Reference{}

// IsExternal reports whether the reference points outside the current document.
func (r Reference) IsExternal() bool {
	return r.ExternalResource != ""
}

// IsWholeDocument reports whether the reference targets an entire external document.
func (r Reference) IsWholeDocument() bool {
	return r.ExternalResource != "" && r.ID == ""
}

func (r Reference) String() string {
	switch {
	case r.IsWholeDocument():
		return r.ExternalResource
	case r.IsExternal():
		return r.ExternalResource + "#/" + r.ID
	default:
		return r.Type.String() + ":" + r.ID
	}
}

// Placeholder is implemented by referenceable model objects. A placeholder carries a reference
// and is bound to the live target once resolved.
type Placeholder interface {
	// GetReference returns the reference, nil when the object is inline.
	GetReference() *Reference
	// ReferenceType is the kind of the object holding the reference.
	ReferenceType() Type
	IsResolved() bool
	// ResolvedTarget returns the bound target or nil.
	ResolvedTarget() any
	// Bind binds the placeholder to target, returning false when target is of the wrong kind.
	Bind(target any) bool
}

// Sink receives placeholders discovered while reading a document.
type Sink interface {
	RegisterPending(p Placeholder, location, base string)
}
