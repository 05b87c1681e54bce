package reader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/speakeasy-api/apireader/diagnostics"
	"github.com/speakeasy-api/apireader/errors"
	"github.com/speakeasy-api/apireader/model"
	"github.com/speakeasy-api/apireader/parsenode"
	"github.com/speakeasy-api/apireader/references"
	"github.com/speakeasy-api/apireader/sequencedmap"
)

const (
	// ErrInvalidReferenceFormat is returned for reference strings that match neither grammar.
	ErrInvalidReferenceFormat = errors.Error("reference has invalid format")
	// ErrUnknownReferenceType is returned when a reference kind has no name in a generation.
	ErrUnknownReferenceType = errors.Error("unknown reference type")
)

// LoadFunc builds the model object of one reference kind from a node.
type LoadFunc func(node parsenode.Node) any

// VersionService reads documents of one generation. The walking helpers are shared and only the
// field names, the reference grammar and the leaf conversions differ between implementations.
type VersionService interface {
	// LoadDocument builds the document from the root node.
	LoadDocument(root parsenode.Node) *model.Document
	// ConvertToReference parses a reference string. expected is the kind required by the field
	// holding the reference and may be nil.
	ConvertToReference(ref string, expected *references.Type) (references.Reference, error)
	// ReferenceTypeName returns the pointer segment naming the kind in this generation.
	ReferenceTypeName(typ references.Type) (string, error)
	// TagLoader returns the function reading a declared tag.
	TagLoader() func(m *parsenode.MapNode) *model.Tag
	// Loader returns the function building objects of kind typ, or nil when the kind cannot be
	// referenced in this generation.
	Loader(typ references.Type) LoadFunc
	// Finish completes the document once its references are resolved.
	Finish()
}

// ExtensionParser builds the value of an x- property. Values read by a parser are visited with
// the Kind the parser's object reports.
type ExtensionParser func(node parsenode.Node) model.Object

// walker holds the conversions shared by both generations.
type walker struct {
	svc        VersionService
	extensions map[string]ExtensionParser
}

// placeholderOf is satisfied by pointers to referenceable model objects.
type placeholderOf[T any] interface {
	*T
	references.Placeholder
	SetReference(ref references.Reference)
}

// loadReferenceable returns a placeholder registered for resolution when m is a $ref and the
// result of load otherwise. A malformed reference records a diagnostic and yields an empty object.
func loadReferenceable[T any, P placeholderOf[T]](w *walker, m *parsenode.MapNode, typ references.Type, load func(*parsenode.MapNode) P) P {
	raw, ok := m.GetReferencePointer()
	if !ok {
		return load(m)
	}

	ctx := m.Context()

	expected := &typ
	if typ == references.TypePathItem {
		expected = nil
	}

	ref, err := w.svc.ConvertToReference(raw, expected)
	if err != nil {
		ctx.AddError(m, diagnostics.CodeInvalidReference, fmt.Sprintf("%s at %s", err.Error(), ctx.GetLocation()))
		return P(new(T))
	}

	p := P(new(T))
	p.SetReference(rebase(ctx, raw, ref))
	ctx.RegisterPending(p)
	return p
}

// rebase turns pointers local to an external document into references to that document.
func rebase(ctx *parsenode.Context, raw string, ref references.Reference) references.Reference {
	if !ctx.External || ref.IsExternal() || !strings.HasPrefix(raw, "#") {
		return ref
	}
	return references.Reference{
		Type:             ref.Type,
		ID:               strings.TrimPrefix(strings.TrimPrefix(raw, "#"), "/"),
		ExternalResource: ctx.BaseLocation,
	}
}

// extensionPatterns routes x- properties into the extensions returned by ext.
func extensionPatterns[T any](w *walker, ext func(T) **model.Extensions) parsenode.PatternFieldMap[T] {
	return parsenode.PatternFieldMap[T]{
		{
			Match: parsenode.IsExtension,
			Handle: func(t T, key string, n parsenode.Node) {
				target := ext(t)
				if *target == nil {
					*target = model.NewExtensions()
				}
				(*target).Set(key, w.loadExtension(key, n))
			},
		},
	}
}

func (w *walker) loadExtension(key string, n parsenode.Node) model.Object {
	if parser, ok := w.extensions[key]; ok {
		if obj := parser(n); obj != nil {
			return obj
		}
	}
	return &model.Any{Value: n.ToValue()}
}

func (w *walker) loadInfo(n parsenode.Node) *model.Info {
	info := &model.Info{}

	m, ok := n.CheckMapNode("info")
	if !ok {
		return info
	}

	parsenode.ParseMap(m, info, parsenode.FixedFieldMap[*model.Info]{
		"title":          func(i *model.Info, n parsenode.Node) { i.Title = n.GetScalarValue() },
		"description":    func(i *model.Info, n parsenode.Node) { i.Description = n.GetScalarValue() },
		"termsOfService": func(i *model.Info, n parsenode.Node) { i.TermsOfService = n.GetScalarValue() },
		"contact":        func(i *model.Info, n parsenode.Node) { i.Contact = w.loadContact(n) },
		"license":        func(i *model.Info, n parsenode.Node) { i.License = w.loadLicense(n) },
		"version":        func(i *model.Info, n parsenode.Node) { i.Version = n.GetScalarValue() },
	}, extensionPatterns(w, func(i *model.Info) **model.Extensions { return &i.Extensions }))

	return info
}

func (w *walker) loadContact(n parsenode.Node) *model.Contact {
	m, ok := n.CheckMapNode("contact")
	if !ok {
		return nil
	}

	contact := &model.Contact{}
	parsenode.ParseMap(m, contact, parsenode.FixedFieldMap[*model.Contact]{
		"name":  func(c *model.Contact, n parsenode.Node) { c.Name = n.GetScalarValue() },
		"url":   func(c *model.Contact, n parsenode.Node) { c.URL = n.GetScalarValue() },
		"email": func(c *model.Contact, n parsenode.Node) { c.Email = n.GetScalarValue() },
	}, extensionPatterns(w, func(c *model.Contact) **model.Extensions { return &c.Extensions }))

	return contact
}

func (w *walker) loadLicense(n parsenode.Node) *model.License {
	m, ok := n.CheckMapNode("license")
	if !ok {
		return nil
	}

	license := &model.License{}
	parsenode.ParseMap(m, license, parsenode.FixedFieldMap[*model.License]{
		"name": func(l *model.License, n parsenode.Node) { l.Name = n.GetScalarValue() },
		"url":  func(l *model.License, n parsenode.Node) { l.URL = n.GetScalarValue() },
	}, extensionPatterns(w, func(l *model.License) **model.Extensions { return &l.Extensions }))

	return license
}

func (w *walker) loadExternalDocs(n parsenode.Node) *model.ExternalDocs {
	m, ok := n.CheckMapNode("externalDocs")
	if !ok {
		return nil
	}

	docs := &model.ExternalDocs{}
	parsenode.ParseMap(m, docs, parsenode.FixedFieldMap[*model.ExternalDocs]{
		"description": func(d *model.ExternalDocs, n parsenode.Node) { d.Description = n.GetScalarValue() },
		"url":         func(d *model.ExternalDocs, n parsenode.Node) { d.URL = n.GetScalarValue() },
	}, extensionPatterns(w, func(d *model.ExternalDocs) **model.Extensions { return &d.Extensions }))

	return docs
}

func (w *walker) loadTag(m *parsenode.MapNode) *model.Tag {
	tag := &model.Tag{}
	parsenode.ParseMap(m, tag, parsenode.FixedFieldMap[*model.Tag]{
		"name":         func(t *model.Tag, n parsenode.Node) { t.Name = n.GetScalarValue() },
		"description":  func(t *model.Tag, n parsenode.Node) { t.Description = n.GetScalarValue() },
		"externalDocs": func(t *model.Tag, n parsenode.Node) { t.ExternalDocs = w.loadExternalDocs(n) },
	}, extensionPatterns(w, func(t *model.Tag) **model.Extensions { return &t.Extensions }))

	return tag
}

// loadTags reads the declared tags and registers each one by name.
func (w *walker) loadTags(n parsenode.Node) []*model.Tag {
	tags := parsenode.CreateList(n, w.svc.TagLoader())
	ctx := n.Context()
	for _, tag := range tags {
		if tag.Name == "" {
			continue
		}
		tag.SetIdentity(references.Reference{Type: references.TypeTag, ID: tag.Name})
		ctx.RegisterComponent(references.TypeTag, tag.Name, tag)
	}
	return tags
}

// loadTagNames reads the tag names of an operation as placeholders for the declared tags.
func (w *walker) loadTagNames(n parsenode.Node) []*model.Tag {
	typ := references.TypeTag
	return parsenode.CreateSimpleList(n, func(v *parsenode.ValueNode) *model.Tag {
		name := v.GetScalarValue()
		tag := &model.Tag{Name: name}

		ref, err := w.svc.ConvertToReference(name, &typ)
		if err != nil {
			v.Context().AddError(v, diagnostics.CodeInvalidReference, fmt.Sprintf("%s at %s", err.Error(), v.Context().GetLocation()))
			return tag
		}
		tag.SetReference(ref)
		v.Context().RegisterPending(tag)
		return tag
	})
}

// loadSecurityRequirement reads a map of scheme names to scopes.
func (w *walker) loadSecurityRequirement(m *parsenode.MapNode) *model.SecurityRequirement {
	typ := references.TypeSecurityScheme
	req := &model.SecurityRequirement{}

	m.Each(func(name string, value parsenode.Node) {
		ctx := value.Context()

		scheme := &model.SecurityScheme{}
		ref, err := w.svc.ConvertToReference(name, &typ)
		if err != nil {
			ctx.AddError(value, diagnostics.CodeInvalidReference, fmt.Sprintf("%s at %s", err.Error(), ctx.GetLocation()))
			return
		}
		scheme.SetReference(ref)
		ctx.RegisterPending(scheme)

		req.Items = append(req.Items, model.SecurityRequirementItem{
			Scheme: scheme,
			Scopes: stringList(value),
		})
	})

	return req
}

func (w *walker) loadXML(n parsenode.Node) *model.XML {
	m, ok := n.CheckMapNode("xml")
	if !ok {
		return nil
	}

	x := &model.XML{}
	parsenode.ParseMap(m, x, parsenode.FixedFieldMap[*model.XML]{
		"name":      func(x *model.XML, n parsenode.Node) { x.Name = n.GetScalarValue() },
		"namespace": func(x *model.XML, n parsenode.Node) { x.Namespace = n.GetScalarValue() },
		"prefix":    func(x *model.XML, n parsenode.Node) { x.Prefix = n.GetScalarValue() },
		"attribute": func(x *model.XML, n parsenode.Node) { x.Attribute = boolean(n) },
		"wrapped":   func(x *model.XML, n parsenode.Node) { x.Wrapped = boolean(n) },
	}, extensionPatterns(w, func(x *model.XML) **model.Extensions { return &x.Extensions }))

	return x
}

// schemaFields are the schema properties common to both generations.
func (w *walker) schemaFields(loadSchema func(*parsenode.MapNode) *model.Schema) parsenode.FixedFieldMap[*model.Schema] {
	subschema := func(name string, n parsenode.Node) *model.Schema {
		m, ok := n.CheckMapNode(name)
		if !ok {
			return nil
		}
		return loadSchema(m)
	}

	return parsenode.FixedFieldMap[*model.Schema]{
		"title":            func(s *model.Schema, n parsenode.Node) { s.Title = n.GetScalarValue() },
		"type":             func(s *model.Schema, n parsenode.Node) { s.Type = n.GetScalarValue() },
		"format":           func(s *model.Schema, n parsenode.Node) { s.Format = n.GetScalarValue() },
		"description":      func(s *model.Schema, n parsenode.Node) { s.Description = n.GetScalarValue() },
		"default":          func(s *model.Schema, n parsenode.Node) { s.Default = n.ToValue() },
		"multipleOf":       func(s *model.Schema, n parsenode.Node) { s.MultipleOf = float(n) },
		"maximum":          func(s *model.Schema, n parsenode.Node) { s.Maximum = float(n) },
		"exclusiveMaximum": func(s *model.Schema, n parsenode.Node) { s.ExclusiveMaximum = boolean(n) },
		"minimum":          func(s *model.Schema, n parsenode.Node) { s.Minimum = float(n) },
		"exclusiveMinimum": func(s *model.Schema, n parsenode.Node) { s.ExclusiveMinimum = boolean(n) },
		"maxLength":        func(s *model.Schema, n parsenode.Node) { s.MaxLength = integer(n) },
		"minLength":        func(s *model.Schema, n parsenode.Node) { s.MinLength = integer(n) },
		"pattern":          func(s *model.Schema, n parsenode.Node) { s.Pattern = n.GetScalarValue() },
		"maxItems":         func(s *model.Schema, n parsenode.Node) { s.MaxItems = integer(n) },
		"minItems":         func(s *model.Schema, n parsenode.Node) { s.MinItems = integer(n) },
		"uniqueItems":      func(s *model.Schema, n parsenode.Node) { s.UniqueItems = boolean(n) },
		"maxProperties":    func(s *model.Schema, n parsenode.Node) { s.MaxProperties = integer(n) },
		"minProperties":    func(s *model.Schema, n parsenode.Node) { s.MinProperties = integer(n) },
		"required":         func(s *model.Schema, n parsenode.Node) { s.Required = stringList(n) },
		"enum":             func(s *model.Schema, n parsenode.Node) { s.Enum = valueList(n) },
		"allOf": func(s *model.Schema, n parsenode.Node) {
			s.AllOf = parsenode.CreateList(n, loadSchema)
		},
		"items": func(s *model.Schema, n parsenode.Node) { s.Items = subschema("items", n) },
		"properties": func(s *model.Schema, n parsenode.Node) {
			s.Properties = parsenode.CreateMap(n, loadSchema)
		},
		"additionalProperties": func(s *model.Schema, n parsenode.Node) {
			if v, ok := n.(*parsenode.ValueNode); ok {
				allowed := boolean(v)
				s.AdditionalPropertiesAllowed = &allowed
				return
			}
			s.AdditionalProperties = subschema("additionalProperties", n)
		},
		"readOnly":     func(s *model.Schema, n parsenode.Node) { s.ReadOnly = boolean(n) },
		"xml":          func(s *model.Schema, n parsenode.Node) { s.XML = w.loadXML(n) },
		"externalDocs": func(s *model.Schema, n parsenode.Node) { s.ExternalDocs = w.loadExternalDocs(n) },
		"example":      func(s *model.Schema, n parsenode.Node) { s.Example = n.ToValue() },
	}
}

// parseSchema reads an inline schema with the given fields.
func (w *walker) parseSchema(m *parsenode.MapNode, fields parsenode.FixedFieldMap[*model.Schema]) *model.Schema {
	schema := &model.Schema{Raw: m.YAML()}
	parsenode.ParseMap(m, schema, fields, extensionPatterns(w, func(s *model.Schema) **model.Extensions { return &s.Extensions }))
	return schema
}

// stringList reads a list of scalars.
func stringList(n parsenode.Node) []string {
	return parsenode.CreateSimpleList(n, func(v *parsenode.ValueNode) string { return v.GetScalarValue() })
}

// valueList reads a list of arbitrary values.
func valueList(n parsenode.Node) []any {
	l, ok := n.(*parsenode.ListNode)
	if !ok {
		n.Context().AddError(n, diagnostics.CodeInvalidNode, fmt.Sprintf("expected list at %s", n.Context().GetLocation()))
		return nil
	}
	out := make([]any, 0, l.Len())
	l.Each(func(_ int, item parsenode.Node) {
		out = append(out, item.ToValue())
	})
	return out
}

func boolean(n parsenode.Node) bool {
	s := n.GetScalarValue()
	b, err := strconv.ParseBool(s)
	if err != nil {
		n.Context().AddError(n, diagnostics.CodeInvalidNode, fmt.Sprintf("expected boolean, got %q at %s", s, n.Context().GetLocation()))
		return false
	}
	return b
}

func float(n parsenode.Node) *float64 {
	s := n.GetScalarValue()
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		n.Context().AddError(n, diagnostics.CodeInvalidNode, fmt.Sprintf("expected number, got %q at %s", s, n.Context().GetLocation()))
		return nil
	}
	return &f
}

func integer(n parsenode.Node) *int64 {
	s := n.GetScalarValue()
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		n.Context().AddError(n, diagnostics.CodeInvalidNode, fmt.Sprintf("expected integer, got %q at %s", s, n.Context().GetLocation()))
		return nil
	}
	return &i
}

// anyMap reads a map of arbitrary values.
func anyMap(n parsenode.Node) *sequencedmap.Map[string, any] {
	out := sequencedmap.New[string, any]()
	m, ok := n.CheckMapNode("map")
	if !ok {
		return out
	}
	m.Each(func(key string, value parsenode.Node) {
		out.Set(key, value.ToValue())
	})
	return out
}

// scopes reads a map of scope names to descriptions.
func scopes(n parsenode.Node) *sequencedmap.Map[string, string] {
	return parsenode.CreateSimpleMap(n, func(v *parsenode.ValueNode) string { return v.GetScalarValue() })
}

func newPathItems() *sequencedmap.Map[string, *model.PathItem] {
	return sequencedmap.New[string, *model.PathItem]()
}

func newOperations() *sequencedmap.Map[string, *model.Operation] {
	return sequencedmap.New[string, *model.Operation]()
}

func newResponseCodes() *sequencedmap.Map[string, *model.Response] {
	return sequencedmap.New[string, *model.Response]()
}

func (w *walker) loadPaths(n parsenode.Node, loadPathItem func(*parsenode.MapNode) *model.PathItem) *model.Paths {
	paths := &model.Paths{}
	m, ok := n.CheckMapNode("paths")
	if !ok {
		return paths
	}

	patterns := parsenode.PatternFieldMap[*model.Paths]{
		{
			Match: func(key string) bool { return strings.HasPrefix(key, "/") },
			Handle: func(p *model.Paths, key string, n parsenode.Node) {
				pm, ok := n.CheckMapNode(key)
				if !ok {
					return
				}
				if p.Items == nil {
					p.Items = newPathItems()
				}
				p.Items.Set(key, loadPathItem(pm))
			},
		},
	}
	patterns = append(patterns, extensionPatterns(w, func(p *model.Paths) **model.Extensions { return &p.Extensions })...)

	parsenode.ParseMap(m, paths, nil, patterns)
	return paths
}

func (w *walker) loadResponses(n parsenode.Node, loadResponse func(*parsenode.MapNode) *model.Response) *model.Responses {
	responses := &model.Responses{}
	m, ok := n.CheckMapNode("responses")
	if !ok {
		return responses
	}

	patterns := extensionPatterns(w, func(r *model.Responses) **model.Extensions { return &r.Extensions })
	patterns = append(patterns, parsenode.PatternField[*model.Responses]{
		Match: func(string) bool { return true },
		Handle: func(r *model.Responses, key string, n parsenode.Node) {
			rm, ok := n.CheckMapNode(key)
			if !ok {
				return
			}
			if r.Codes == nil {
				r.Codes = newResponseCodes()
			}
			r.Codes.Set(key, loadResponse(rm))
		},
	})

	parsenode.ParseMap(m, responses, nil, patterns)
	return responses
}
