// Package model contains the generation independent object model built from API descriptions.
package model

import (
	"strconv"

	"github.com/speakeasy-api/apireader/references"
	"github.com/speakeasy-api/apireader/sequencedmap"
)

// Kind is the type tag of a model object. Validation rules are registered against kinds.
type Kind string

const (
	KindDocument            Kind = "document"
	KindInfo                Kind = "info"
	KindContact             Kind = "contact"
	KindLicense             Kind = "license"
	KindServer              Kind = "server"
	KindServerVariable      Kind = "serverVariable"
	KindPaths               Kind = "paths"
	KindPathItem            Kind = "pathItem"
	KindOperation           Kind = "operation"
	KindParameter           Kind = "parameter"
	KindRequestBody         Kind = "requestBody"
	KindMediaType           Kind = "mediaType"
	KindEncoding            Kind = "encoding"
	KindResponses           Kind = "responses"
	KindResponse            Kind = "response"
	KindHeader              Kind = "header"
	KindExample             Kind = "example"
	KindLink                Kind = "link"
	KindCallback            Kind = "callback"
	KindSchema              Kind = "schema"
	KindXML                 Kind = "xml"
	KindDiscriminator       Kind = "discriminator"
	KindTag                 Kind = "tag"
	KindSecurityScheme      Kind = "securityScheme"
	KindOAuthFlows          Kind = "oauthFlows"
	KindOAuthFlow           Kind = "oauthFlow"
	KindSecurityRequirement Kind = "securityRequirement"
	KindComponents          Kind = "components"
	KindExternalDocs        Kind = "externalDocs"
	// KindExtensions is visited for the extension values of every extensible object.
	KindExtensions Kind = "extensions"
	// KindAny is the kind of extension values read without a registered extension parser.
	KindAny Kind = "any"
	// KindReferenceUse is visited in place of an unresolved or resolved reference.
	KindReferenceUse Kind = "referenceUse"
)

// Object is implemented by every model type. Kind must be callable on a nil receiver.
type Object interface {
	Kind() Kind
}

// Visitor walks the object model. Visit is called for each object before its children and
// Enter/Exit bracket the path segment of every child.
type Visitor interface {
	Visit(obj Object)
	Enter(segment string)
	Exit()
}

// Visitable is an object that knows how to walk its own children.
type Visitable interface {
	Object
	Accept(v Visitor)
}

// Any holds an extension value that was read as plain data.
type Any struct {
	Value any
}

var _ Visitable = (*Any)(nil)

func (*Any) Kind() Kind { return KindAny }

func (a *Any) Accept(v Visitor) {
	if a == nil {
		return
	}
	v.Visit(a)
}

// Extensions holds the x- properties of an extensible object in document order.
type Extensions struct {
	Values *sequencedmap.Map[string, Object]
}

var _ Visitable = (*Extensions)(nil)

func NewExtensions() *Extensions {
	return &Extensions{Values: sequencedmap.New[string, Object]()}
}

func (*Extensions) Kind() Kind { return KindExtensions }

// Set records the value of an extension.
func (e *Extensions) Set(key string, value Object) {
	if e.Values == nil {
		e.Values = sequencedmap.New[string, Object]()
	}
	e.Values.Set(key, value)
}

// Get returns the value of an extension.
func (e *Extensions) Get(key string) (Object, bool) {
	if e == nil {
		return nil, false
	}
	return e.Values.Get(key)
}

func (e *Extensions) Len() int {
	if e == nil {
		return 0
	}
	return e.Values.Len()
}

// Accept visits the extensions container at the owner's path and then each value under its key.
func (e *Extensions) Accept(v Visitor) {
	if e == nil || e.Len() == 0 {
		return
	}
	v.Visit(e)
	for key, value := range e.Values.All() {
		v.Enter(key)
		if visitable, ok := value.(Visitable); ok {
			visitable.Accept(v)
		} else if value != nil {
			v.Visit(value)
		}
		v.Exit()
	}
}

// ReferenceUse is visited for an object that is a reference. Walking stops there so that cyclic
// references never recurse.
type ReferenceUse struct {
	Reference references.Reference
	// Type is the kind of object the reference stands in for.
	Type     references.Type
	Resolved bool
}

var _ Visitable = (*ReferenceUse)(nil)

func (*ReferenceUse) Kind() Kind { return KindReferenceUse }

func (r *ReferenceUse) Accept(v Visitor) {
	if r == nil {
		return
	}
	v.Visit(r)
}

// visitable is satisfied by pointers to model types.
type visitable[T any] interface {
	*T
	Visitable
}

func visitOne[T any, P visitable[T]](v Visitor, segment string, obj P) {
	if obj == nil {
		return
	}
	v.Enter(segment)
	obj.Accept(v)
	v.Exit()
}

func visitList[T any, P visitable[T]](v Visitor, segment string, items []P) {
	if len(items) == 0 {
		return
	}
	v.Enter(segment)
	for i, item := range items {
		visitOne(v, strconv.Itoa(i), item)
	}
	v.Exit()
}

func visitMap[T any, P visitable[T]](v Visitor, segment string, items *sequencedmap.Map[string, P]) {
	if items.Len() == 0 {
		return
	}
	if segment != "" {
		v.Enter(segment)
	}
	for key, item := range items.All() {
		visitOne(v, key, item)
	}
	if segment != "" {
		v.Exit()
	}
}
