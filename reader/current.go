package reader

import (
	"strings"

	"github.com/speakeasy-api/apireader/model"
	"github.com/speakeasy-api/apireader/parsenode"
	"github.com/speakeasy-api/apireader/pointer"
	"github.com/speakeasy-api/apireader/references"
)

var currentTypeNames = map[references.Type]string{
	references.TypeSchema:         "schemas",
	references.TypeResponse:       "responses",
	references.TypeParameter:      "parameters",
	references.TypeExample:        "examples",
	references.TypeRequestBody:    "requestBodies",
	references.TypeHeader:         "headers",
	references.TypeSecurityScheme: "securitySchemes",
	references.TypeLink:           "links",
	references.TypeCallback:       "callbacks",
	references.TypeTag:            "tags",
}

// currentService reads OpenAPI 3.0 documents.
type currentService struct {
	walker
	schemaFieldMap parsenode.FixedFieldMap[*model.Schema]
}

var _ VersionService = (*currentService)(nil)

func newCurrentService(extensions map[string]ExtensionParser) *currentService {
	s := &currentService{}
	s.svc = s
	s.extensions = extensions

	s.schemaFieldMap = s.schemaFields(s.loadSchemaMap)
	s.schemaFieldMap["nullable"] = func(sc *model.Schema, n parsenode.Node) { sc.Nullable = boolean(n) }
	s.schemaFieldMap["writeOnly"] = func(sc *model.Schema, n parsenode.Node) { sc.WriteOnly = boolean(n) }
	s.schemaFieldMap["deprecated"] = func(sc *model.Schema, n parsenode.Node) { sc.Deprecated = boolean(n) }
	s.schemaFieldMap["oneOf"] = func(sc *model.Schema, n parsenode.Node) { sc.OneOf = parsenode.CreateList(n, s.loadSchemaMap) }
	s.schemaFieldMap["anyOf"] = func(sc *model.Schema, n parsenode.Node) { sc.AnyOf = parsenode.CreateList(n, s.loadSchemaMap) }
	s.schemaFieldMap["not"] = func(sc *model.Schema, n parsenode.Node) {
		if m, ok := n.CheckMapNode("not"); ok {
			sc.Not = s.loadSchemaMap(m)
		}
	}
	s.schemaFieldMap["discriminator"] = func(sc *model.Schema, n parsenode.Node) { sc.Discriminator = s.loadDiscriminator(n) }

	return s
}

// Finish has nothing to convert once references are resolved.
func (s *currentService) Finish() {}

// ConvertToReference parses "#/components/<kind>/<id>", "#/tags/<id>", external references and the
// bare names used for tags and security schemes.
func (s *currentService) ConvertToReference(ref string, expected *references.Type) (references.Reference, error) {
	if ref == "" {
		return references.Reference{}, ErrInvalidReferenceFormat.Wrapf("empty reference")
	}

	segments := strings.Split(ref, "#")
	switch len(segments) {
	case 1:
		if expected != nil && (*expected == references.TypeTag || *expected == references.TypeSecurityScheme) {
			return references.Reference{Type: *expected, ID: ref}, nil
		}
		out := references.Reference{ExternalResource: segments[0]}
		if expected != nil {
			out.Type = *expected
		}
		return out, nil
	case 2:
		if segments[0] == "" {
			return s.parseLocalReference(segments[1], ref)
		}
		out := references.Reference{
			ExternalResource: segments[0],
			ID:               strings.TrimPrefix(segments[1], "/"),
		}
		if expected != nil {
			out.Type = *expected
		}
		return out, nil
	}

	return references.Reference{}, ErrInvalidReferenceFormat.Wrapf("%s", ref)
}

func (s *currentService) parseLocalReference(fragment, ref string) (references.Reference, error) {
	parts := strings.Split(fragment, "/")

	if len(parts) >= 3 && parts[0] == "" && parts[1] == "tags" {
		return references.Reference{Type: references.TypeTag, ID: strings.Join(parts[2:], "/")}, nil
	}

	if len(parts) < 4 || parts[0] != "" || parts[1] != "components" {
		return references.Reference{}, ErrInvalidReferenceFormat.Wrapf("%s", ref)
	}

	for typ, name := range currentTypeNames {
		if name == parts[2] && typ != references.TypeTag {
			return references.Reference{Type: typ, ID: strings.Join(parts[3:], "/")}, nil
		}
	}

	return references.Reference{}, ErrUnknownReferenceType.Wrapf("%s", parts[2])
}

func (s *currentService) ReferenceTypeName(typ references.Type) (string, error) {
	name, ok := currentTypeNames[typ]
	if !ok {
		return "", ErrUnknownReferenceType.Wrapf("%s", typ)
	}
	return name, nil
}

func (s *currentService) TagLoader() func(m *parsenode.MapNode) *model.Tag {
	return s.loadTag
}

func (s *currentService) Loader(typ references.Type) LoadFunc {
	switch typ {
	case references.TypeSchema:
		return mapLoader(s.loadSchemaMap)
	case references.TypeResponse:
		return mapLoader(s.loadResponse)
	case references.TypeParameter:
		return mapLoader(s.loadParameter)
	case references.TypeExample:
		return mapLoader(s.loadExample)
	case references.TypeRequestBody:
		return mapLoader(s.loadRequestBody)
	case references.TypeHeader:
		return mapLoader(s.loadHeader)
	case references.TypeSecurityScheme:
		return mapLoader(s.loadSecurityScheme)
	case references.TypeLink:
		return mapLoader(s.loadLink)
	case references.TypeCallback:
		return mapLoader(s.loadCallback)
	case references.TypeTag:
		return mapLoader(s.loadTag)
	case references.TypePathItem:
		return mapLoader(s.loadPathItem)
	default:
		return nil
	}
}

// mapLoader adapts a typed map loader to a LoadFunc. Nodes that are not maps yield nil.
func mapLoader[T any](load func(*parsenode.MapNode) *T) LoadFunc {
	return func(n parsenode.Node) any {
		m, ok := n.CheckMapNode("referenced object")
		if !ok {
			return nil
		}
		return load(m)
	}
}

func (s *currentService) LoadDocument(root parsenode.Node) *model.Document {
	doc := &model.Document{}

	m, ok := root.CheckMapNode("document")
	if !ok {
		doc.Info = &model.Info{}
		return doc
	}

	parsenode.ParseMap(m, doc, parsenode.FixedFieldMap[*model.Document]{
		"openapi":      func(d *model.Document, n parsenode.Node) { d.OpenAPI = n.GetScalarValue() },
		"info":         func(d *model.Document, n parsenode.Node) { d.Info = s.loadInfo(n) },
		"servers":      func(d *model.Document, n parsenode.Node) { d.Servers = parsenode.CreateList(n, s.loadServer) },
		"paths":        func(d *model.Document, n parsenode.Node) { d.Paths = s.loadPaths(n, s.loadPathItem) },
		"components":   func(d *model.Document, n parsenode.Node) { d.Components = s.loadComponents(n) },
		"security":     func(d *model.Document, n parsenode.Node) { d.Security = parsenode.CreateList(n, s.loadSecurityRequirement) },
		"tags":         func(d *model.Document, n parsenode.Node) { d.Tags = s.loadTags(n) },
		"externalDocs": func(d *model.Document, n parsenode.Node) { d.ExternalDocs = s.loadExternalDocs(n) },
	}, extensionPatterns(&s.walker, func(d *model.Document) **model.Extensions { return &d.Extensions }))

	if doc.Info == nil {
		doc.Info = &model.Info{}
	}

	return doc
}

func (s *currentService) loadServer(m *parsenode.MapNode) *model.Server {
	server := &model.Server{}
	parsenode.ParseMap(m, server, parsenode.FixedFieldMap[*model.Server]{
		"url":         func(sv *model.Server, n parsenode.Node) { sv.URL = n.GetScalarValue() },
		"description": func(sv *model.Server, n parsenode.Node) { sv.Description = n.GetScalarValue() },
		"variables": func(sv *model.Server, n parsenode.Node) {
			sv.Variables = parsenode.CreateMap(n, s.loadServerVariable)
		},
	}, extensionPatterns(&s.walker, func(sv *model.Server) **model.Extensions { return &sv.Extensions }))
	return server
}

func (s *currentService) loadServerVariable(m *parsenode.MapNode) *model.ServerVariable {
	variable := &model.ServerVariable{}
	parsenode.ParseMap(m, variable, parsenode.FixedFieldMap[*model.ServerVariable]{
		"enum":        func(v *model.ServerVariable, n parsenode.Node) { v.Enum = stringList(n) },
		"default":     func(v *model.ServerVariable, n parsenode.Node) { v.Default = n.GetScalarValue() },
		"description": func(v *model.ServerVariable, n parsenode.Node) { v.Description = n.GetScalarValue() },
	}, extensionPatterns(&s.walker, func(v *model.ServerVariable) **model.Extensions { return &v.Extensions }))
	return variable
}

func (s *currentService) loadPathItem(m *parsenode.MapNode) *model.PathItem {
	return loadReferenceable(&s.walker, m, references.TypePathItem, func(m *parsenode.MapNode) *model.PathItem {
		item := &model.PathItem{}
		fields := parsenode.FixedFieldMap[*model.PathItem]{
			"summary":     func(p *model.PathItem, n parsenode.Node) { p.Summary = n.GetScalarValue() },
			"description": func(p *model.PathItem, n parsenode.Node) { p.Description = n.GetScalarValue() },
			"servers":     func(p *model.PathItem, n parsenode.Node) { p.Servers = parsenode.CreateList(n, s.loadServer) },
			"parameters": func(p *model.PathItem, n parsenode.Node) {
				p.Parameters = parsenode.CreateList(n, s.loadParameter)
			},
		}
		for _, method := range model.OperationMethods {
			fields[method] = func(p *model.PathItem, n parsenode.Node) {
				om, ok := n.CheckMapNode(method)
				if !ok {
					return
				}
				if p.Operations == nil {
					p.Operations = newOperations()
				}
				p.Operations.Set(method, s.loadOperation(om))
			}
		}

		parsenode.ParseMap(m, item, fields, extensionPatterns(&s.walker, func(p *model.PathItem) **model.Extensions { return &p.Extensions }))
		return item
	})
}

func (s *currentService) loadOperation(m *parsenode.MapNode) *model.Operation {
	op := &model.Operation{}
	parsenode.ParseMap(m, op, parsenode.FixedFieldMap[*model.Operation]{
		"tags":         func(o *model.Operation, n parsenode.Node) { o.Tags = s.loadTagNames(n) },
		"summary":      func(o *model.Operation, n parsenode.Node) { o.Summary = n.GetScalarValue() },
		"description":  func(o *model.Operation, n parsenode.Node) { o.Description = n.GetScalarValue() },
		"externalDocs": func(o *model.Operation, n parsenode.Node) { o.ExternalDocs = s.loadExternalDocs(n) },
		"operationId":  func(o *model.Operation, n parsenode.Node) { o.OperationID = n.GetScalarValue() },
		"parameters":   func(o *model.Operation, n parsenode.Node) { o.Parameters = parsenode.CreateList(n, s.loadParameter) },
		"requestBody": func(o *model.Operation, n parsenode.Node) {
			if rm, ok := n.CheckMapNode("requestBody"); ok {
				o.RequestBody = s.loadRequestBody(rm)
			}
		},
		"responses":  func(o *model.Operation, n parsenode.Node) { o.Responses = s.loadResponses(n, s.loadResponse) },
		"callbacks":  func(o *model.Operation, n parsenode.Node) { o.Callbacks = parsenode.CreateMap(n, s.loadCallback) },
		"deprecated": func(o *model.Operation, n parsenode.Node) { o.Deprecated = boolean(n) },
		"security": func(o *model.Operation, n parsenode.Node) {
			o.Security = parsenode.CreateList(n, s.loadSecurityRequirement)
		},
		"servers": func(o *model.Operation, n parsenode.Node) { o.Servers = parsenode.CreateList(n, s.loadServer) },
	}, extensionPatterns(&s.walker, func(o *model.Operation) **model.Extensions { return &o.Extensions }))
	return op
}

func (s *currentService) loadParameter(m *parsenode.MapNode) *model.Parameter {
	return loadReferenceable(&s.walker, m, references.TypeParameter, func(m *parsenode.MapNode) *model.Parameter {
		param := &model.Parameter{}
		parsenode.ParseMap(m, param, parsenode.FixedFieldMap[*model.Parameter]{
			"name":            func(p *model.Parameter, n parsenode.Node) { p.Name = n.GetScalarValue() },
			"in":              func(p *model.Parameter, n parsenode.Node) { p.In = n.GetScalarValue() },
			"description":     func(p *model.Parameter, n parsenode.Node) { p.Description = n.GetScalarValue() },
			"required":        func(p *model.Parameter, n parsenode.Node) { p.Required = boolean(n) },
			"deprecated":      func(p *model.Parameter, n parsenode.Node) { p.Deprecated = boolean(n) },
			"allowEmptyValue": func(p *model.Parameter, n parsenode.Node) { p.AllowEmptyValue = boolean(n) },
			"style":           func(p *model.Parameter, n parsenode.Node) { p.Style = n.GetScalarValue() },
			"explode":         func(p *model.Parameter, n parsenode.Node) { p.Explode = pointer.From(boolean(n)) },
			"allowReserved":   func(p *model.Parameter, n parsenode.Node) { p.AllowReserved = boolean(n) },
			"schema":          func(p *model.Parameter, n parsenode.Node) { p.Schema = s.loadSchema(n) },
			"example":         func(p *model.Parameter, n parsenode.Node) { p.Example = n.ToValue() },
			"examples":        func(p *model.Parameter, n parsenode.Node) { p.Examples = parsenode.CreateMap(n, s.loadExample) },
			"content":         func(p *model.Parameter, n parsenode.Node) { p.Content = parsenode.CreateMap(n, s.loadMediaType) },
		}, extensionPatterns(&s.walker, func(p *model.Parameter) **model.Extensions { return &p.Extensions }))
		return param
	})
}

func (s *currentService) loadRequestBody(m *parsenode.MapNode) *model.RequestBody {
	return loadReferenceable(&s.walker, m, references.TypeRequestBody, func(m *parsenode.MapNode) *model.RequestBody {
		body := &model.RequestBody{}
		parsenode.ParseMap(m, body, parsenode.FixedFieldMap[*model.RequestBody]{
			"description": func(b *model.RequestBody, n parsenode.Node) { b.Description = n.GetScalarValue() },
			"content":     func(b *model.RequestBody, n parsenode.Node) { b.Content = parsenode.CreateMap(n, s.loadMediaType) },
			"required":    func(b *model.RequestBody, n parsenode.Node) { b.Required = boolean(n) },
		}, extensionPatterns(&s.walker, func(b *model.RequestBody) **model.Extensions { return &b.Extensions }))
		return body
	})
}

func (s *currentService) loadMediaType(m *parsenode.MapNode) *model.MediaType {
	mt := &model.MediaType{}
	parsenode.ParseMap(m, mt, parsenode.FixedFieldMap[*model.MediaType]{
		"schema":   func(t *model.MediaType, n parsenode.Node) { t.Schema = s.loadSchema(n) },
		"example":  func(t *model.MediaType, n parsenode.Node) { t.Example = n.ToValue() },
		"examples": func(t *model.MediaType, n parsenode.Node) { t.Examples = parsenode.CreateMap(n, s.loadExample) },
		"encoding": func(t *model.MediaType, n parsenode.Node) { t.Encoding = parsenode.CreateMap(n, s.loadEncoding) },
	}, extensionPatterns(&s.walker, func(t *model.MediaType) **model.Extensions { return &t.Extensions }))
	return mt
}

func (s *currentService) loadEncoding(m *parsenode.MapNode) *model.Encoding {
	enc := &model.Encoding{}
	parsenode.ParseMap(m, enc, parsenode.FixedFieldMap[*model.Encoding]{
		"contentType":   func(e *model.Encoding, n parsenode.Node) { e.ContentType = n.GetScalarValue() },
		"headers":       func(e *model.Encoding, n parsenode.Node) { e.Headers = parsenode.CreateMap(n, s.loadHeader) },
		"style":         func(e *model.Encoding, n parsenode.Node) { e.Style = n.GetScalarValue() },
		"explode":       func(e *model.Encoding, n parsenode.Node) { e.Explode = pointer.From(boolean(n)) },
		"allowReserved": func(e *model.Encoding, n parsenode.Node) { e.AllowReserved = boolean(n) },
	}, extensionPatterns(&s.walker, func(e *model.Encoding) **model.Extensions { return &e.Extensions }))
	return enc
}

func (s *currentService) loadResponse(m *parsenode.MapNode) *model.Response {
	return loadReferenceable(&s.walker, m, references.TypeResponse, func(m *parsenode.MapNode) *model.Response {
		resp := &model.Response{}
		parsenode.ParseMap(m, resp, parsenode.FixedFieldMap[*model.Response]{
			"description": func(r *model.Response, n parsenode.Node) { r.Description = n.GetScalarValue() },
			"headers":     func(r *model.Response, n parsenode.Node) { r.Headers = parsenode.CreateMap(n, s.loadHeader) },
			"content":     func(r *model.Response, n parsenode.Node) { r.Content = parsenode.CreateMap(n, s.loadMediaType) },
			"links":       func(r *model.Response, n parsenode.Node) { r.Links = parsenode.CreateMap(n, s.loadLink) },
		}, extensionPatterns(&s.walker, func(r *model.Response) **model.Extensions { return &r.Extensions }))
		return resp
	})
}

func (s *currentService) loadHeader(m *parsenode.MapNode) *model.Header {
	return loadReferenceable(&s.walker, m, references.TypeHeader, func(m *parsenode.MapNode) *model.Header {
		header := &model.Header{}
		parsenode.ParseMap(m, header, parsenode.FixedFieldMap[*model.Header]{
			"description":     func(h *model.Header, n parsenode.Node) { h.Description = n.GetScalarValue() },
			"required":        func(h *model.Header, n parsenode.Node) { h.Required = boolean(n) },
			"deprecated":      func(h *model.Header, n parsenode.Node) { h.Deprecated = boolean(n) },
			"allowEmptyValue": func(h *model.Header, n parsenode.Node) { h.AllowEmptyValue = boolean(n) },
			"style":           func(h *model.Header, n parsenode.Node) { h.Style = n.GetScalarValue() },
			"explode":         func(h *model.Header, n parsenode.Node) { h.Explode = pointer.From(boolean(n)) },
			"allowReserved":   func(h *model.Header, n parsenode.Node) { h.AllowReserved = boolean(n) },
			"schema":          func(h *model.Header, n parsenode.Node) { h.Schema = s.loadSchema(n) },
			"example":         func(h *model.Header, n parsenode.Node) { h.Example = n.ToValue() },
			"examples":        func(h *model.Header, n parsenode.Node) { h.Examples = parsenode.CreateMap(n, s.loadExample) },
			"content":         func(h *model.Header, n parsenode.Node) { h.Content = parsenode.CreateMap(n, s.loadMediaType) },
		}, extensionPatterns(&s.walker, func(h *model.Header) **model.Extensions { return &h.Extensions }))
		return header
	})
}

func (s *currentService) loadExample(m *parsenode.MapNode) *model.Example {
	return loadReferenceable(&s.walker, m, references.TypeExample, func(m *parsenode.MapNode) *model.Example {
		example := &model.Example{}
		parsenode.ParseMap(m, example, parsenode.FixedFieldMap[*model.Example]{
			"summary":       func(e *model.Example, n parsenode.Node) { e.Summary = n.GetScalarValue() },
			"description":   func(e *model.Example, n parsenode.Node) { e.Description = n.GetScalarValue() },
			"value":         func(e *model.Example, n parsenode.Node) { e.Value = n.ToValue() },
			"externalValue": func(e *model.Example, n parsenode.Node) { e.ExternalValue = n.GetScalarValue() },
		}, extensionPatterns(&s.walker, func(e *model.Example) **model.Extensions { return &e.Extensions }))
		return example
	})
}

func (s *currentService) loadLink(m *parsenode.MapNode) *model.Link {
	return loadReferenceable(&s.walker, m, references.TypeLink, func(m *parsenode.MapNode) *model.Link {
		link := &model.Link{}
		parsenode.ParseMap(m, link, parsenode.FixedFieldMap[*model.Link]{
			"operationRef": func(l *model.Link, n parsenode.Node) { l.OperationRef = n.GetScalarValue() },
			"operationId":  func(l *model.Link, n parsenode.Node) { l.OperationID = n.GetScalarValue() },
			"parameters":   func(l *model.Link, n parsenode.Node) { l.Parameters = anyMap(n) },
			"requestBody":  func(l *model.Link, n parsenode.Node) { l.RequestBody = n.ToValue() },
			"description":  func(l *model.Link, n parsenode.Node) { l.Description = n.GetScalarValue() },
			"server": func(l *model.Link, n parsenode.Node) {
				if sm, ok := n.CheckMapNode("server"); ok {
					l.Server = s.loadServer(sm)
				}
			},
		}, extensionPatterns(&s.walker, func(l *model.Link) **model.Extensions { return &l.Extensions }))
		return link
	})
}

func (s *currentService) loadCallback(m *parsenode.MapNode) *model.Callback {
	return loadReferenceable(&s.walker, m, references.TypeCallback, func(m *parsenode.MapNode) *model.Callback {
		callback := &model.Callback{}
		patterns := extensionPatterns(&s.walker, func(c *model.Callback) **model.Extensions { return &c.Extensions })
		patterns = append(patterns, parsenode.PatternField[*model.Callback]{
			Match: func(string) bool { return true },
			Handle: func(c *model.Callback, key string, n parsenode.Node) {
				pm, ok := n.CheckMapNode(key)
				if !ok {
					return
				}
				if c.Expressions == nil {
					c.Expressions = newPathItems()
				}
				c.Expressions.Set(key, s.loadPathItem(pm))
			},
		})
		parsenode.ParseMap(m, callback, nil, patterns)
		return callback
	})
}

func (s *currentService) loadComponents(n parsenode.Node) *model.Components {
	components := &model.Components{}
	m, ok := n.CheckMapNode("components")
	if !ok {
		return components
	}

	parsenode.ParseMap(m, components, parsenode.FixedFieldMap[*model.Components]{
		"schemas": func(c *model.Components, n parsenode.Node) {
			c.Schemas = parsenode.CreateMapWithReference(n, references.TypeSchema, s.loadSchemaMap)
		},
		"responses": func(c *model.Components, n parsenode.Node) {
			c.Responses = parsenode.CreateMapWithReference(n, references.TypeResponse, s.loadResponse)
		},
		"parameters": func(c *model.Components, n parsenode.Node) {
			c.Parameters = parsenode.CreateMapWithReference(n, references.TypeParameter, s.loadParameter)
		},
		"examples": func(c *model.Components, n parsenode.Node) {
			c.Examples = parsenode.CreateMapWithReference(n, references.TypeExample, s.loadExample)
		},
		"requestBodies": func(c *model.Components, n parsenode.Node) {
			c.RequestBodies = parsenode.CreateMapWithReference(n, references.TypeRequestBody, s.loadRequestBody)
		},
		"headers": func(c *model.Components, n parsenode.Node) {
			c.Headers = parsenode.CreateMapWithReference(n, references.TypeHeader, s.loadHeader)
		},
		"securitySchemes": func(c *model.Components, n parsenode.Node) {
			c.SecuritySchemes = parsenode.CreateMapWithReference(n, references.TypeSecurityScheme, s.loadSecurityScheme)
		},
		"links": func(c *model.Components, n parsenode.Node) {
			c.Links = parsenode.CreateMapWithReference(n, references.TypeLink, s.loadLink)
		},
		"callbacks": func(c *model.Components, n parsenode.Node) {
			c.Callbacks = parsenode.CreateMapWithReference(n, references.TypeCallback, s.loadCallback)
		},
	}, extensionPatterns(&s.walker, func(c *model.Components) **model.Extensions { return &c.Extensions }))

	return components
}

func (s *currentService) loadSecurityScheme(m *parsenode.MapNode) *model.SecurityScheme {
	return loadReferenceable(&s.walker, m, references.TypeSecurityScheme, func(m *parsenode.MapNode) *model.SecurityScheme {
		scheme := &model.SecurityScheme{}
		parsenode.ParseMap(m, scheme, parsenode.FixedFieldMap[*model.SecurityScheme]{
			"type":             func(sc *model.SecurityScheme, n parsenode.Node) { sc.Type = n.GetScalarValue() },
			"description":      func(sc *model.SecurityScheme, n parsenode.Node) { sc.Description = n.GetScalarValue() },
			"name":             func(sc *model.SecurityScheme, n parsenode.Node) { sc.Name = n.GetScalarValue() },
			"in":               func(sc *model.SecurityScheme, n parsenode.Node) { sc.In = n.GetScalarValue() },
			"scheme":           func(sc *model.SecurityScheme, n parsenode.Node) { sc.Scheme = n.GetScalarValue() },
			"bearerFormat":     func(sc *model.SecurityScheme, n parsenode.Node) { sc.BearerFormat = n.GetScalarValue() },
			"flows":            func(sc *model.SecurityScheme, n parsenode.Node) { sc.Flows = s.loadOAuthFlows(n) },
			"openIdConnectUrl": func(sc *model.SecurityScheme, n parsenode.Node) { sc.OpenIDConnectURL = n.GetScalarValue() },
		}, extensionPatterns(&s.walker, func(sc *model.SecurityScheme) **model.Extensions { return &sc.Extensions }))
		return scheme
	})
}

func (s *currentService) loadOAuthFlows(n parsenode.Node) *model.OAuthFlows {
	m, ok := n.CheckMapNode("flows")
	if !ok {
		return nil
	}

	flows := &model.OAuthFlows{}
	parsenode.ParseMap(m, flows, parsenode.FixedFieldMap[*model.OAuthFlows]{
		model.OAuthFlowImplicit:          func(f *model.OAuthFlows, n parsenode.Node) { f.Implicit = s.loadOAuthFlow(n) },
		model.OAuthFlowPassword:          func(f *model.OAuthFlows, n parsenode.Node) { f.Password = s.loadOAuthFlow(n) },
		model.OAuthFlowClientCredentials: func(f *model.OAuthFlows, n parsenode.Node) { f.ClientCredentials = s.loadOAuthFlow(n) },
		model.OAuthFlowAuthorizationCode: func(f *model.OAuthFlows, n parsenode.Node) { f.AuthorizationCode = s.loadOAuthFlow(n) },
	}, extensionPatterns(&s.walker, func(f *model.OAuthFlows) **model.Extensions { return &f.Extensions }))
	return flows
}

func (s *currentService) loadOAuthFlow(n parsenode.Node) *model.OAuthFlow {
	m, ok := n.CheckMapNode("flow")
	if !ok {
		return nil
	}

	flow := &model.OAuthFlow{}
	parsenode.ParseMap(m, flow, parsenode.FixedFieldMap[*model.OAuthFlow]{
		"authorizationUrl": func(f *model.OAuthFlow, n parsenode.Node) { f.AuthorizationURL = n.GetScalarValue() },
		"tokenUrl":         func(f *model.OAuthFlow, n parsenode.Node) { f.TokenURL = n.GetScalarValue() },
		"refreshUrl":       func(f *model.OAuthFlow, n parsenode.Node) { f.RefreshURL = n.GetScalarValue() },
		"scopes":           func(f *model.OAuthFlow, n parsenode.Node) { f.Scopes = scopes(n) },
	}, extensionPatterns(&s.walker, func(f *model.OAuthFlow) **model.Extensions { return &f.Extensions }))
	return flow
}

func (s *currentService) loadSchema(n parsenode.Node) *model.Schema {
	m, ok := n.CheckMapNode("schema")
	if !ok {
		return nil
	}
	return s.loadSchemaMap(m)
}

func (s *currentService) loadSchemaMap(m *parsenode.MapNode) *model.Schema {
	return loadReferenceable(&s.walker, m, references.TypeSchema, func(m *parsenode.MapNode) *model.Schema {
		return s.parseSchema(m, s.schemaFieldMap)
	})
}

func (s *currentService) loadDiscriminator(n parsenode.Node) *model.Discriminator {
	m, ok := n.CheckMapNode("discriminator")
	if !ok {
		return nil
	}

	d := &model.Discriminator{}
	parsenode.ParseMap(m, d, parsenode.FixedFieldMap[*model.Discriminator]{
		"propertyName": func(d *model.Discriminator, n parsenode.Node) { d.PropertyName = n.GetScalarValue() },
		"mapping": func(d *model.Discriminator, n parsenode.Node) {
			d.Mapping = parsenode.CreateSimpleMap(n, func(v *parsenode.ValueNode) string { return v.GetScalarValue() })
		},
	}, nil)
	return d
}
