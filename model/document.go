package model

import (
	"iter"

	"github.com/speakeasy-api/apireader/references"
	"github.com/speakeasy-api/apireader/sequencedmap"
)

// Document is the root of an API description.
type Document struct {
	// OpenAPI is the generation marker the document was read from, e.g. "2.0" or "3.0.3".
	OpenAPI string
	// Info provides metadata about the API.
	Info *Info
	// Servers are the connectivity information for the API.
	Servers []*Server
	// Paths are the available paths and operations.
	Paths *Paths
	// Components holds the reusable objects of the document.
	Components *Components
	// Security lists the security mechanisms that can be used across the API.
	Security []*SecurityRequirement
	// Tags are the declared tags with additional metadata.
	Tags []*Tag
	// ExternalDocs is additional external documentation.
	ExternalDocs *ExternalDocs
	Extensions   *Extensions
}

var _ Visitable = (*Document)(nil)

func (*Document) Kind() Kind { return KindDocument }

// GetInfo returns the value of the Info field. Returns nil if not set.
func (d *Document) GetInfo() *Info {
	if d == nil {
		return nil
	}
	return d.Info
}

// GetPaths returns the value of the Paths field. Returns nil if not set.
func (d *Document) GetPaths() *Paths {
	if d == nil {
		return nil
	}
	return d.Paths
}

func (d *Document) Accept(v Visitor) {
	if d == nil {
		return
	}
	v.Visit(d)
	visitOne(v, "info", d.Info)
	visitList(v, "servers", d.Servers)
	visitOne(v, "paths", d.Paths)
	visitOne(v, "components", d.Components)
	visitList(v, "security", d.Security)
	visitList(v, "tags", d.Tags)
	visitOne(v, "externalDocs", d.ExternalDocs)
	d.Extensions.Accept(v)
}

// Info provides metadata about the API.
type Info struct {
	// Title is the title of the application.
	Title string
	// Description is a short description of the application.
	Description string
	// TermsOfService is a URL to the Terms of Service for the API.
	TermsOfService string
	Contact        *Contact
	License        *License
	// Version provides the version of the application API (not to be confused with the generation marker).
	Version    string
	Extensions *Extensions
}

var _ Visitable = (*Info)(nil)

func (*Info) Kind() Kind { return KindInfo }

// GetTitle returns the value of the Title field. Returns empty string if not set.
func (i *Info) GetTitle() string {
	if i == nil {
		return ""
	}
	return i.Title
}

// GetVersion returns the value of the Version field. Returns empty string if not set.
func (i *Info) GetVersion() string {
	if i == nil {
		return ""
	}
	return i.Version
}

func (i *Info) Accept(v Visitor) {
	if i == nil {
		return
	}
	v.Visit(i)
	visitOne(v, "contact", i.Contact)
	visitOne(v, "license", i.License)
	i.Extensions.Accept(v)
}

// Contact information for the exposed API.
type Contact struct {
	Name       string
	URL        string
	Email      string
	Extensions *Extensions
}

var _ Visitable = (*Contact)(nil)

func (*Contact) Kind() Kind { return KindContact }

// GetEmail returns the value of the Email field. Returns empty string if not set.
func (c *Contact) GetEmail() string {
	if c == nil {
		return ""
	}
	return c.Email
}

func (c *Contact) Accept(v Visitor) {
	if c == nil {
		return
	}
	v.Visit(c)
	c.Extensions.Accept(v)
}

// License information for the exposed API.
type License struct {
	Name       string
	URL        string
	Extensions *Extensions
}

var _ Visitable = (*License)(nil)

func (*License) Kind() Kind { return KindLicense }

func (l *License) Accept(v Visitor) {
	if l == nil {
		return
	}
	v.Visit(l)
	l.Extensions.Accept(v)
}

// Server represents a server hosting the API.
type Server struct {
	// URL is the URL to the target host. It may contain {variables}.
	URL         string
	Description string
	Variables   *sequencedmap.Map[string, *ServerVariable]
	Extensions  *Extensions
}

var _ Visitable = (*Server)(nil)

func (*Server) Kind() Kind { return KindServer }

func (s *Server) Accept(v Visitor) {
	if s == nil {
		return
	}
	v.Visit(s)
	visitMap(v, "variables", s.Variables)
	s.Extensions.Accept(v)
}

// ServerVariable is a variable for server URL template substitution.
type ServerVariable struct {
	Enum        []string
	Default     string
	Description string
	Extensions  *Extensions
}

var _ Visitable = (*ServerVariable)(nil)

func (*ServerVariable) Kind() Kind { return KindServerVariable }

func (s *ServerVariable) Accept(v Visitor) {
	if s == nil {
		return
	}
	v.Visit(s)
	s.Extensions.Accept(v)
}

// ExternalDocs allows referencing an external resource for extended documentation.
type ExternalDocs struct {
	Description string
	URL         string
	Extensions  *Extensions
}

var _ Visitable = (*ExternalDocs)(nil)

func (*ExternalDocs) Kind() Kind { return KindExternalDocs }

func (e *ExternalDocs) Accept(v Visitor) {
	if e == nil {
		return
	}
	v.Visit(e)
	e.Extensions.Accept(v)
}

// Tag adds metadata to a tag used by operations. Operations refer to tags by name, so a tag used
// by an operation is a placeholder carrying only its Name until bound to the declared tag.
type Tag struct {
	Placeholder[Tag]

	Name         string
	Description  string
	ExternalDocs *ExternalDocs
	Extensions   *Extensions
}

var (
	_ Visitable              = (*Tag)(nil)
	_ references.Placeholder = (*Tag)(nil)
)

func (*Tag) Kind() Kind { return KindTag }
func (*Tag) ReferenceType() references.Type { return references.TypeTag }

// Resolved returns the declared tag the reference is bound to, the tag itself when inline, or nil
// when unresolved.
func (t *Tag) Resolved() *Tag { return resolve(t) }

func (t *Tag) Accept(v Visitor) {
	if t == nil {
		return
	}
	if t.IsReference() {
		v.Visit(referenceUse(t))
		return
	}
	v.Visit(t)
	visitOne(v, "externalDocs", t.ExternalDocs)
	t.Extensions.Accept(v)
}

// Components holds reusable objects for different aspects of the description.
type Components struct {
	Schemas         *sequencedmap.Map[string, *Schema]
	Responses       *sequencedmap.Map[string, *Response]
	Parameters      *sequencedmap.Map[string, *Parameter]
	Examples        *sequencedmap.Map[string, *Example]
	RequestBodies   *sequencedmap.Map[string, *RequestBody]
	Headers         *sequencedmap.Map[string, *Header]
	SecuritySchemes *sequencedmap.Map[string, *SecurityScheme]
	Links           *sequencedmap.Map[string, *Link]
	Callbacks       *sequencedmap.Map[string, *Callback]
	Extensions      *Extensions
}

var _ Visitable = (*Components)(nil)

func (*Components) Kind() Kind { return KindComponents }

// Keys returns the keys of every component map by section name, in declaration order.
func (c *Components) Keys() map[string][]string {
	if c == nil {
		return nil
	}
	out := map[string][]string{}
	add := func(section string, keys iter.Seq[string]) {
		for k := range keys {
			out[section] = append(out[section], k)
		}
	}
	add("schemas", c.Schemas.Keys())
	add("responses", c.Responses.Keys())
	add("parameters", c.Parameters.Keys())
	add("examples", c.Examples.Keys())
	add("requestBodies", c.RequestBodies.Keys())
	add("headers", c.Headers.Keys())
	add("securitySchemes", c.SecuritySchemes.Keys())
	add("links", c.Links.Keys())
	add("callbacks", c.Callbacks.Keys())
	return out
}

func (c *Components) Accept(v Visitor) {
	if c == nil {
		return
	}
	v.Visit(c)
	visitMap(v, "schemas", c.Schemas)
	visitMap(v, "responses", c.Responses)
	visitMap(v, "parameters", c.Parameters)
	visitMap(v, "examples", c.Examples)
	visitMap(v, "requestBodies", c.RequestBodies)
	visitMap(v, "headers", c.Headers)
	visitMap(v, "securitySchemes", c.SecuritySchemes)
	visitMap(v, "links", c.Links)
	visitMap(v, "callbacks", c.Callbacks)
	c.Extensions.Accept(v)
}
