package model

import (
	"github.com/speakeasy-api/apireader/references"
	"github.com/speakeasy-api/apireader/sequencedmap"
)

// Paths holds the relative paths to the individual endpoints.
type Paths struct {
	Items      *sequencedmap.Map[string, *PathItem]
	Extensions *Extensions
}

var _ Visitable = (*Paths)(nil)

func (*Paths) Kind() Kind { return KindPaths }

func (p *Paths) Accept(v Visitor) {
	if p == nil {
		return
	}
	v.Visit(p)
	visitMap(v, "", p.Items)
	p.Extensions.Accept(v)
}

// OperationMethods are the HTTP methods in the order operations are read and visited.
var OperationMethods = []string{"get", "put", "post", "delete", "options", "head", "patch", "trace"}

// PathItem describes the operations available on a single path.
type PathItem struct {
	Placeholder[PathItem]

	Summary     string
	Description string
	// Operations are keyed by lower case HTTP method.
	Operations *sequencedmap.Map[string, *Operation]
	Servers    []*Server
	Parameters []*Parameter
	Extensions *Extensions
}

var (
	_ Visitable              = (*PathItem)(nil)
	_ references.Placeholder = (*PathItem)(nil)
)

func (*PathItem) Kind() Kind { return KindPathItem }
func (*PathItem) ReferenceType() references.Type { return references.TypePathItem }

// Resolved follows references to the inline path item, or returns nil when unresolved.
func (p *PathItem) Resolved() *PathItem { return resolve(p) }

func (p *PathItem) Accept(v Visitor) {
	if p == nil {
		return
	}
	if p.IsReference() {
		v.Visit(referenceUse(p))
		return
	}
	v.Visit(p)
	visitMap(v, "", p.Operations)
	visitList(v, "servers", p.Servers)
	visitList(v, "parameters", p.Parameters)
	p.Extensions.Accept(v)
}

// Operation describes a single API operation on a path.
type Operation struct {
	// Tags are placeholders bound to the declared tags of the document by name.
	Tags         []*Tag
	Summary      string
	Description  string
	ExternalDocs *ExternalDocs
	OperationID  string
	Parameters   []*Parameter
	RequestBody  *RequestBody
	Responses    *Responses
	Callbacks    *sequencedmap.Map[string, *Callback]
	Deprecated   bool
	Security     []*SecurityRequirement
	Servers      []*Server
	Extensions   *Extensions
}

var _ Visitable = (*Operation)(nil)

func (*Operation) Kind() Kind { return KindOperation }

func (o *Operation) Accept(v Visitor) {
	if o == nil {
		return
	}
	v.Visit(o)
	visitList(v, "tags", o.Tags)
	visitOne(v, "externalDocs", o.ExternalDocs)
	visitList(v, "parameters", o.Parameters)
	visitOne(v, "requestBody", o.RequestBody)
	visitOne(v, "responses", o.Responses)
	visitMap(v, "callbacks", o.Callbacks)
	visitList(v, "security", o.Security)
	visitList(v, "servers", o.Servers)
	o.Extensions.Accept(v)
}

// Parameter locations.
const (
	ParameterInQuery  = "query"
	ParameterInHeader = "header"
	ParameterInPath   = "path"
	ParameterInCookie = "cookie"
)

// Parameter describes a single operation parameter.
type Parameter struct {
	Placeholder[Parameter]

	Name string
	// In is the location of the parameter: query, header, path or cookie.
	In              string
	Description     string
	Required        bool
	Deprecated      bool
	AllowEmptyValue bool
	Style           string
	Explode         *bool
	AllowReserved   bool
	Schema          *Schema
	Example         any
	Examples        *sequencedmap.Map[string, *Example]
	Content         *sequencedmap.Map[string, *MediaType]
	Extensions      *Extensions
}

var (
	_ Visitable              = (*Parameter)(nil)
	_ references.Placeholder = (*Parameter)(nil)
)

func (*Parameter) Kind() Kind { return KindParameter }
func (*Parameter) ReferenceType() references.Type { return references.TypeParameter }

// Resolved follows references to the inline parameter, or returns nil when unresolved.
func (p *Parameter) Resolved() *Parameter { return resolve(p) }

func (p *Parameter) Accept(v Visitor) {
	if p == nil {
		return
	}
	if p.IsReference() {
		v.Visit(referenceUse(p))
		return
	}
	v.Visit(p)
	visitOne(v, "schema", p.Schema)
	visitMap(v, "examples", p.Examples)
	visitMap(v, "content", p.Content)
	p.Extensions.Accept(v)
}

// RequestBody describes a single request body.
type RequestBody struct {
	Placeholder[RequestBody]

	Description string
	// Content is keyed by media type.
	Content    *sequencedmap.Map[string, *MediaType]
	Required   bool
	Extensions *Extensions
}

var (
	_ Visitable              = (*RequestBody)(nil)
	_ references.Placeholder = (*RequestBody)(nil)
)

func (*RequestBody) Kind() Kind { return KindRequestBody }
func (*RequestBody) ReferenceType() references.Type { return references.TypeRequestBody }

// Resolved follows references to the inline request body, or returns nil when unresolved.
func (r *RequestBody) Resolved() *RequestBody { return resolve(r) }

func (r *RequestBody) Accept(v Visitor) {
	if r == nil {
		return
	}
	if r.IsReference() {
		v.Visit(referenceUse(r))
		return
	}
	v.Visit(r)
	visitMap(v, "content", r.Content)
	r.Extensions.Accept(v)
}

// MediaType provides the schema and examples for a media type.
type MediaType struct {
	Schema     *Schema
	Example    any
	Examples   *sequencedmap.Map[string, *Example]
	Encoding   *sequencedmap.Map[string, *Encoding]
	Extensions *Extensions
}

var _ Visitable = (*MediaType)(nil)

func (*MediaType) Kind() Kind { return KindMediaType }

func (m *MediaType) Accept(v Visitor) {
	if m == nil {
		return
	}
	v.Visit(m)
	visitOne(v, "schema", m.Schema)
	visitMap(v, "examples", m.Examples)
	visitMap(v, "encoding", m.Encoding)
	m.Extensions.Accept(v)
}

// Encoding is applied to a single schema property of a request body.
type Encoding struct {
	ContentType   string
	Headers       *sequencedmap.Map[string, *Header]
	Style         string
	Explode       *bool
	AllowReserved bool
	Extensions    *Extensions
}

var _ Visitable = (*Encoding)(nil)

func (*Encoding) Kind() Kind { return KindEncoding }

func (e *Encoding) Accept(v Visitor) {
	if e == nil {
		return
	}
	v.Visit(e)
	visitMap(v, "headers", e.Headers)
	e.Extensions.Accept(v)
}

// Responses holds the expected responses of an operation keyed by status code or "default".
type Responses struct {
	Codes      *sequencedmap.Map[string, *Response]
	Extensions *Extensions
}

var _ Visitable = (*Responses)(nil)

func (*Responses) Kind() Kind { return KindResponses }

// Len returns the number of declared responses.
func (r *Responses) Len() int {
	if r == nil {
		return 0
	}
	return r.Codes.Len()
}

func (r *Responses) Accept(v Visitor) {
	if r == nil {
		return
	}
	v.Visit(r)
	visitMap(v, "", r.Codes)
	r.Extensions.Accept(v)
}

// Response describes a single response from an operation.
type Response struct {
	Placeholder[Response]

	Description string
	Headers     *sequencedmap.Map[string, *Header]
	Content     *sequencedmap.Map[string, *MediaType]
	Links       *sequencedmap.Map[string, *Link]
	Extensions  *Extensions
}

var (
	_ Visitable              = (*Response)(nil)
	_ references.Placeholder = (*Response)(nil)
)

func (*Response) Kind() Kind { return KindResponse }
func (*Response) ReferenceType() references.Type { return references.TypeResponse }

// Resolved follows references to the inline response, or returns nil when unresolved.
func (r *Response) Resolved() *Response { return resolve(r) }

func (r *Response) Accept(v Visitor) {
	if r == nil {
		return
	}
	if r.IsReference() {
		v.Visit(referenceUse(r))
		return
	}
	v.Visit(r)
	visitMap(v, "headers", r.Headers)
	visitMap(v, "content", r.Content)
	visitMap(v, "links", r.Links)
	r.Extensions.Accept(v)
}

// Header follows the structure of a Parameter without name and location.
type Header struct {
	Placeholder[Header]

	Description     string
	Required        bool
	Deprecated      bool
	AllowEmptyValue bool
	Style           string
	Explode         *bool
	AllowReserved   bool
	Schema          *Schema
	Example         any
	Examples        *sequencedmap.Map[string, *Example]
	Content         *sequencedmap.Map[string, *MediaType]
	Extensions      *Extensions
}

var (
	_ Visitable              = (*Header)(nil)
	_ references.Placeholder = (*Header)(nil)
)

func (*Header) Kind() Kind { return KindHeader }
func (*Header) ReferenceType() references.Type { return references.TypeHeader }

// Resolved follows references to the inline header, or returns nil when unresolved.
func (h *Header) Resolved() *Header { return resolve(h) }

func (h *Header) Accept(v Visitor) {
	if h == nil {
		return
	}
	if h.IsReference() {
		v.Visit(referenceUse(h))
		return
	}
	v.Visit(h)
	visitOne(v, "schema", h.Schema)
	visitMap(v, "examples", h.Examples)
	visitMap(v, "content", h.Content)
	h.Extensions.Accept(v)
}

// Example holds an example value.
type Example struct {
	Placeholder[Example]

	Summary       string
	Description   string
	Value         any
	ExternalValue string
	Extensions    *Extensions
}

var (
	_ Visitable              = (*Example)(nil)
	_ references.Placeholder = (*Example)(nil)
)

func (*Example) Kind() Kind { return KindExample }
func (*Example) ReferenceType() references.Type { return references.TypeExample }

// Resolved follows references to the inline example, or returns nil when unresolved.
func (e *Example) Resolved() *Example { return resolve(e) }

func (e *Example) Accept(v Visitor) {
	if e == nil {
		return
	}
	if e.IsReference() {
		v.Visit(referenceUse(e))
		return
	}
	v.Visit(e)
	e.Extensions.Accept(v)
}

// Link represents a possible design-time link for a response.
type Link struct {
	Placeholder[Link]

	OperationRef string
	OperationID  string
	Parameters   *sequencedmap.Map[string, any]
	RequestBody  any
	Description  string
	Server       *Server
	Extensions   *Extensions
}

var (
	_ Visitable              = (*Link)(nil)
	_ references.Placeholder = (*Link)(nil)
)

func (*Link) Kind() Kind { return KindLink }
func (*Link) ReferenceType() references.Type { return references.TypeLink }

// Resolved follows references to the inline link, or returns nil when unresolved.
func (l *Link) Resolved() *Link { return resolve(l) }

func (l *Link) Accept(v Visitor) {
	if l == nil {
		return
	}
	if l.IsReference() {
		v.Visit(referenceUse(l))
		return
	}
	v.Visit(l)
	visitOne(v, "server", l.Server)
	l.Extensions.Accept(v)
}

// Callback maps runtime expressions to the path items describing the callback requests.
type Callback struct {
	Placeholder[Callback]

	Expressions *sequencedmap.Map[string, *PathItem]
	Extensions  *Extensions
}

var (
	_ Visitable              = (*Callback)(nil)
	_ references.Placeholder = (*Callback)(nil)
)

func (*Callback) Kind() Kind { return KindCallback }
func (*Callback) ReferenceType() references.Type { return references.TypeCallback }

// Resolved follows references to the inline callback, or returns nil when unresolved.
func (c *Callback) Resolved() *Callback { return resolve(c) }

func (c *Callback) Accept(v Visitor) {
	if c == nil {
		return
	}
	if c.IsReference() {
		v.Visit(referenceUse(c))
		return
	}
	v.Visit(c)
	visitMap(v, "", c.Expressions)
	c.Extensions.Accept(v)
}
