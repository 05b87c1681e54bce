package model

import (
	"github.com/speakeasy-api/apireader/references"
	"github.com/speakeasy-api/apireader/sequencedmap"
	"gopkg.in/yaml.v3"
)

// Schema is the data type definition of inputs and outputs. Schemas are modelled as data and are
// never evaluated against instances.
type Schema struct {
	Placeholder[Schema]

	Title            string
	Type             string
	Format           string
	Description      string
	Default          any
	MultipleOf       *float64
	Maximum          *float64
	ExclusiveMaximum bool
	Minimum          *float64
	ExclusiveMinimum bool
	MaxLength        *int64
	MinLength        *int64
	Pattern          string
	MaxItems         *int64
	MinItems         *int64
	UniqueItems      bool
	MaxProperties    *int64
	MinProperties    *int64
	Required         []string
	Enum             []any

	AllOf                []*Schema
	OneOf                []*Schema
	AnyOf                []*Schema
	Not                  *Schema
	Items                *Schema
	Properties           *sequencedmap.Map[string, *Schema]
	AdditionalProperties *Schema
	// AdditionalPropertiesAllowed is set when additionalProperties is a boolean.
	AdditionalPropertiesAllowed *bool

	Nullable      bool
	Discriminator *Discriminator
	ReadOnly      bool
	WriteOnly     bool
	XML           *XML
	ExternalDocs  *ExternalDocs
	Example       any
	Deprecated    bool
	Extensions    *Extensions

	// Raw is the node the schema was read from.
	Raw *yaml.Node
}

var (
	_ Visitable              = (*Schema)(nil)
	_ references.Placeholder = (*Schema)(nil)
)

func (*Schema) Kind() Kind { return KindSchema }
func (*Schema) ReferenceType() references.Type { return references.TypeSchema }

// Resolved follows references to the inline schema, or returns nil when unresolved.
func (s *Schema) Resolved() *Schema { return resolve(s) }

func (s *Schema) Accept(v Visitor) {
	if s == nil {
		return
	}
	if s.IsReference() {
		v.Visit(referenceUse(s))
		return
	}
	v.Visit(s)
	visitList(v, "allOf", s.AllOf)
	visitList(v, "oneOf", s.OneOf)
	visitList(v, "anyOf", s.AnyOf)
	visitOne(v, "not", s.Not)
	visitOne(v, "items", s.Items)
	visitMap(v, "properties", s.Properties)
	visitOne(v, "additionalProperties", s.AdditionalProperties)
	visitOne(v, "discriminator", s.Discriminator)
	visitOne(v, "xml", s.XML)
	visitOne(v, "externalDocs", s.ExternalDocs)
	s.Extensions.Accept(v)
}

// XML describes the XML representation of a property.
type XML struct {
	Name       string
	Namespace  string
	Prefix     string
	Attribute  bool
	Wrapped    bool
	Extensions *Extensions
}

var _ Visitable = (*XML)(nil)

func (*XML) Kind() Kind { return KindXML }

func (x *XML) Accept(v Visitor) {
	if x == nil {
		return
	}
	v.Visit(x)
	x.Extensions.Accept(v)
}

// Discriminator aids polymorphic serialization.
type Discriminator struct {
	PropertyName string
	Mapping      *sequencedmap.Map[string, string]
}

var _ Visitable = (*Discriminator)(nil)

func (*Discriminator) Kind() Kind { return KindDiscriminator }

func (d *Discriminator) Accept(v Visitor) {
	if d == nil {
		return
	}
	v.Visit(d)
}
