package reader

import (
	"slices"
	"strings"

	"github.com/speakeasy-api/apireader/model"
	"github.com/speakeasy-api/apireader/parsenode"
	"github.com/speakeasy-api/apireader/pointer"
	"github.com/speakeasy-api/apireader/references"
	"github.com/speakeasy-api/apireader/sequencedmap"
)

var legacyTypeNames = map[references.Type]string{
	references.TypeSchema:         "definitions",
	references.TypeParameter:      "parameters",
	references.TypeResponse:       "responses",
	references.TypeHeader:         "headers",
	references.TypeTag:            "tags",
	references.TypeSecurityScheme: "securityDefinitions",
}

// legacyMethods are the operations a 2.0 path item may declare.
var legacyMethods = []string{"get", "put", "post", "delete", "options", "head", "patch"}

const (
	keyGlobalConsumes    = "globalConsumes"
	keyGlobalProduces    = "globalProduces"
	keyOperationProduces = "operationProduces"
	keyHost              = "host"
	keyBasePath          = "basePath"

	defaultBodyMediaType     = "application/json"
	defaultFormMediaType     = "application/x-www-form-urlencoded"
	defaultResponseMediaType = "application/octet-stream"
	multipartFormMediaType   = "multipart/form-data"
)

// legacyService reads Swagger 2.0 documents into the 3.0 shaped model. Body and form parameters
// become request bodies, host, basePath and schemes become servers, and definitions become
// component schemas.
type legacyService struct {
	walker
	schemaFieldMap parsenode.FixedFieldMap[*model.Schema]
	itemsFieldMap  parsenode.FixedFieldMap[*model.Schema]

	// fixups move referenced body and formData parameters once references are resolved.
	fixups []func()
}

var _ VersionService = (*legacyService)(nil)

func newLegacyService(extensions map[string]ExtensionParser) *legacyService {
	s := &legacyService{}
	s.svc = s
	s.extensions = extensions

	s.schemaFieldMap = s.schemaFields(s.loadSchemaMap)
	s.schemaFieldMap["discriminator"] = func(sc *model.Schema, n parsenode.Node) {
		sc.Discriminator = &model.Discriminator{PropertyName: n.GetScalarValue()}
	}

	// items objects and non-body parameters carry a subset of the schema properties
	all := s.schemaFields(s.loadSchemaMap)
	s.itemsFieldMap = parsenode.FixedFieldMap[*model.Schema]{}
	for _, key := range []string{
		"type", "format", "default", "maximum", "exclusiveMaximum", "minimum", "exclusiveMinimum",
		"maxLength", "minLength", "pattern", "maxItems", "minItems", "uniqueItems", "enum", "multipleOf",
	} {
		s.itemsFieldMap[key] = all[key]
	}
	s.itemsFieldMap["items"] = func(sc *model.Schema, n parsenode.Node) { sc.Items = s.loadItems(n) }
	s.itemsFieldMap["collectionFormat"] = func(*model.Schema, parsenode.Node) {}

	return s
}

// ConvertToReference parses "#/<category>/<id>", "<resource>#/<id>", whole-document references
// and the bare names used for tags and security schemes.
func (s *legacyService) ConvertToReference(ref string, expected *references.Type) (references.Reference, error) {
	segments := strings.Split(ref, "#")

	switch len(segments) {
	case 1:
		if expected == nil {
			return references.Reference{ExternalResource: segments[0]}, nil
		}
		if *expected == references.TypeTag || *expected == references.TypeSecurityScheme {
			return references.Reference{Type: *expected, ID: ref}, nil
		}
	case 2:
		if strings.HasPrefix(ref, "#") {
			return s.parseLocalReference(segments[1], ref)
		}
		return references.Reference{
			ExternalResource: segments[0],
			ID:               strings.TrimPrefix(segments[1], "/"),
		}, nil
	}

	return references.Reference{}, ErrInvalidReferenceFormat.Wrapf("%s", ref)
}

func (s *legacyService) parseLocalReference(fragment, ref string) (references.Reference, error) {
	parts := strings.Split(fragment, "/")
	if len(parts) < 3 || parts[0] != "" {
		return references.Reference{}, ErrInvalidReferenceFormat.Wrapf("%s", ref)
	}

	category := parts[1]
	for typ, name := range legacyTypeNames {
		if name == category {
			return references.Reference{Type: typ, ID: fragment[len("/"+category+"/"):]}, nil
		}
	}

	return references.Reference{}, ErrUnknownReferenceType.Wrapf("%s", category)
}

func (s *legacyService) ReferenceTypeName(typ references.Type) (string, error) {
	name, ok := legacyTypeNames[typ]
	if !ok {
		return "", ErrUnknownReferenceType.Wrapf("%s", typ)
	}
	return name, nil
}

func (s *legacyService) TagLoader() func(m *parsenode.MapNode) *model.Tag {
	return s.loadTag
}

func (s *legacyService) Loader(typ references.Type) LoadFunc {
	switch typ {
	case references.TypeSchema:
		return mapLoader(s.loadSchemaMap)
	case references.TypeParameter:
		return mapLoader(s.loadParameter)
	case references.TypeResponse:
		return mapLoader(s.loadResponse)
	case references.TypeHeader:
		return mapLoader(s.loadHeader)
	case references.TypeSecurityScheme:
		return mapLoader(s.loadSecurityScheme)
	case references.TypeTag:
		return mapLoader(s.loadTag)
	case references.TypePathItem:
		return mapLoader(s.loadPathItem)
	default:
		return nil
	}
}

func (s *legacyService) LoadDocument(root parsenode.Node) *model.Document {
	doc := &model.Document{}

	m, ok := root.CheckMapNode("document")
	if !ok {
		doc.Info = &model.Info{}
		return doc
	}

	ctx := m.Context()
	preloadList(m, "consumes", keyGlobalConsumes)
	preloadList(m, "produces", keyGlobalProduces)
	host, _ := m.GetScalar("host")
	basePath, _ := m.GetScalar("basePath")
	ctx.SetTempStorage(keyHost, host)
	ctx.SetTempStorage(keyBasePath, basePath)

	var schemes []string

	parsenode.ParseMap(m, doc, parsenode.FixedFieldMap[*model.Document]{
		"swagger":  func(d *model.Document, n parsenode.Node) { d.OpenAPI = n.GetScalarValue() },
		"info":     func(d *model.Document, n parsenode.Node) { d.Info = s.loadInfo(n) },
		"host":     func(_ *model.Document, n parsenode.Node) { n.GetScalarValue() },
		"basePath": func(_ *model.Document, n parsenode.Node) { n.GetScalarValue() },
		"schemes":  func(_ *model.Document, n parsenode.Node) { schemes = stringList(n) },
		"consumes": func(*model.Document, parsenode.Node) {},
		"produces": func(*model.Document, parsenode.Node) {},
		"paths":    func(d *model.Document, n parsenode.Node) { d.Paths = s.loadPaths(n, s.loadPathItem) },
		"definitions": func(d *model.Document, n parsenode.Node) {
			components(d).Schemas = parsenode.CreateMapWithReference(n, references.TypeSchema, s.loadSchemaMap)
		},
		"parameters": func(d *model.Document, n parsenode.Node) {
			components(d).Parameters = parsenode.CreateMapWithReference(n, references.TypeParameter, s.loadParameter)
		},
		"responses": func(d *model.Document, n parsenode.Node) {
			components(d).Responses = parsenode.CreateMapWithReference(n, references.TypeResponse, s.loadResponse)
		},
		"securityDefinitions": func(d *model.Document, n parsenode.Node) {
			components(d).SecuritySchemes = parsenode.CreateMapWithReference(n, references.TypeSecurityScheme, s.loadSecurityScheme)
		},
		"security":     func(d *model.Document, n parsenode.Node) { d.Security = parsenode.CreateList(n, s.loadSecurityRequirement) },
		"tags":         func(d *model.Document, n parsenode.Node) { d.Tags = s.loadTags(n) },
		"externalDocs": func(d *model.Document, n parsenode.Node) { d.ExternalDocs = s.loadExternalDocs(n) },
	}, extensionPatterns(&s.walker, func(d *model.Document) **model.Extensions { return &d.Extensions }))

	if doc.Info == nil {
		doc.Info = &model.Info{}
	}
	doc.Servers = buildServers(host, basePath, schemes)

	return doc
}

func components(d *model.Document) *model.Components {
	if d.Components == nil {
		d.Components = &model.Components{}
	}
	return d.Components
}

// preloadList reads a list of strings before the map is walked and keeps it in temp storage under
// storageKey when one is given.
func preloadList(m *parsenode.MapNode, key, storageKey string) []string {
	if !m.Has(key) {
		return nil
	}

	ctx := m.Context()
	ctx.Enter(key)
	n, _ := m.Get(key)
	list := stringList(n)
	ctx.Exit()

	if storageKey != "" {
		ctx.SetTempStorage(storageKey, list)
	}
	return list
}

func tempList(ctx *parsenode.Context, keys ...string) []string {
	for _, key := range keys {
		if list, ok := ctx.GetTempStorage(key).([]string); ok && list != nil {
			return list
		}
	}
	return nil
}

func tempString(ctx *parsenode.Context, key string) string {
	s, _ := ctx.GetTempStorage(key).(string)
	return s
}

func buildServers(host, basePath string, schemes []string) []*model.Server {
	if host == "" && basePath == "" && len(schemes) == 0 {
		return nil
	}
	if len(schemes) == 0 {
		return []*model.Server{{URL: buildURL("", host, basePath)}}
	}

	servers := make([]*model.Server, 0, len(schemes))
	for _, scheme := range schemes {
		servers = append(servers, &model.Server{URL: buildURL(scheme, host, basePath)})
	}
	return servers
}

func buildURL(scheme, host, basePath string) string {
	if basePath != "" && !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	switch {
	case host == "":
		return basePath
	case scheme == "":
		return "//" + host + basePath
	default:
		return scheme + "://" + host + basePath
	}
}

// legacyParameters splits the parameters of a path item or operation by their target.
type legacyParameters struct {
	params []*model.Parameter
	body   *model.Parameter
	form   []*model.Parameter
}

func (s *legacyService) loadParameterList(n parsenode.Node) legacyParameters {
	return splitParameters(parsenode.CreateList(n, s.loadParameter))
}

// splitParameters sorts parameters by the location of their resolved target. Unresolved
// references stay with the plain parameters.
func splitParameters(list []*model.Parameter) legacyParameters {
	var out legacyParameters
	for _, p := range list {
		in := p.In
		if target := p.Resolved(); target != nil {
			in = target.In
		}
		switch in {
		case "body":
			out.body = p
		case "formData":
			out.form = append(out.form, p)
		default:
			out.params = append(out.params, p)
		}
	}
	return out
}

// resplit moves body and formData parameters resolved since lp was built out of lp.params.
func (lp legacyParameters) resplit() legacyParameters {
	out := splitParameters(lp.params)
	if out.body == nil {
		out.body = lp.body
	}
	out.form = append(slices.Clone(lp.form), out.form...)
	return out
}

func hasReferences(list []*model.Parameter) bool {
	return slices.ContainsFunc(list, func(p *model.Parameter) bool { return p.IsReference() })
}

// Finish moves body and formData parameters reached through references into request bodies.
// It runs after references are resolved.
func (s *legacyService) Finish() {
	for _, fixup := range s.fixups {
		fixup()
	}
	s.fixups = nil
}

func (s *legacyService) loadPathItem(m *parsenode.MapNode) *model.PathItem {
	return loadReferenceable(&s.walker, m, references.TypePathItem, func(m *parsenode.MapNode) *model.PathItem {
		item := &model.PathItem{}

		var shared legacyParameters
		if m.Has("parameters") {
			m.Context().Enter("parameters")
			n, _ := m.Get("parameters")
			shared = s.loadParameterList(n)
			m.Context().Exit()
		}
		item.Parameters = shared.params
		if hasReferences(shared.params) {
			s.fixups = append(s.fixups, func() { item.Parameters = splitParameters(item.Parameters).params })
		}

		fields := parsenode.FixedFieldMap[*model.PathItem]{
			"parameters": func(*model.PathItem, parsenode.Node) {},
		}
		for _, method := range legacyMethods {
			fields[method] = func(p *model.PathItem, n parsenode.Node) {
				om, ok := n.CheckMapNode(method)
				if !ok {
					return
				}
				if p.Operations == nil {
					p.Operations = newOperations()
				}
				p.Operations.Set(method, s.loadOperation(om, shared))
			}
		}

		parsenode.ParseMap(m, item, fields, extensionPatterns(&s.walker, func(p *model.PathItem) **model.Extensions { return &p.Extensions }))
		return item
	})
}

func (s *legacyService) loadOperation(m *parsenode.MapNode, shared legacyParameters) *model.Operation {
	ctx := m.Context()

	consumes := preloadList(m, "consumes", "")
	if consumes == nil {
		consumes = tempList(ctx, keyGlobalConsumes)
	}
	produces := preloadList(m, "produces", keyOperationProduces)
	if produces == nil {
		ctx.SetTempStorage(keyOperationProduces, nil)
	}

	op := &model.Operation{}
	var params legacyParameters
	var schemes []string

	parsenode.ParseMap(m, op, parsenode.FixedFieldMap[*model.Operation]{
		"tags":         func(o *model.Operation, n parsenode.Node) { o.Tags = s.loadTagNames(n) },
		"summary":      func(o *model.Operation, n parsenode.Node) { o.Summary = n.GetScalarValue() },
		"description":  func(o *model.Operation, n parsenode.Node) { o.Description = n.GetScalarValue() },
		"externalDocs": func(o *model.Operation, n parsenode.Node) { o.ExternalDocs = s.loadExternalDocs(n) },
		"operationId":  func(o *model.Operation, n parsenode.Node) { o.OperationID = n.GetScalarValue() },
		"consumes":     func(*model.Operation, parsenode.Node) {},
		"produces":     func(*model.Operation, parsenode.Node) {},
		"parameters":   func(_ *model.Operation, n parsenode.Node) { params = s.loadParameterList(n) },
		"responses":    func(o *model.Operation, n parsenode.Node) { o.Responses = s.loadResponses(n, s.loadResponse) },
		"schemes":      func(_ *model.Operation, n parsenode.Node) { schemes = stringList(n) },
		"deprecated":   func(o *model.Operation, n parsenode.Node) { o.Deprecated = boolean(n) },
		"security": func(o *model.Operation, n parsenode.Node) {
			o.Security = parsenode.CreateList(n, s.loadSecurityRequirement)
		},
	}, extensionPatterns(&s.walker, func(o *model.Operation) **model.Extensions { return &o.Extensions }))

	ctx.SetTempStorage(keyOperationProduces, nil)

	op.Parameters = params.params
	applyRequestBody(op, params, shared, consumes)

	if hasReferences(params.params) || hasReferences(shared.params) {
		s.fixups = append(s.fixups, func() {
			own := legacyParameters{params: op.Parameters, body: params.body, form: params.form}.resplit()
			op.Parameters = own.params
			applyRequestBody(op, own, shared.resplit(), consumes)
		})
	}

	if len(schemes) > 0 {
		op.Servers = buildServers(tempString(ctx, keyHost), tempString(ctx, keyBasePath), schemes)
	}

	return op
}

// applyRequestBody builds the request body from the operation's body or formData parameters,
// falling back to those of the path item.
func applyRequestBody(op *model.Operation, params, shared legacyParameters, consumes []string) {
	body := params.body
	if body == nil {
		body = shared.body
	}
	form := params.form
	if len(form) == 0 {
		form = shared.form
	}

	switch {
	case body != nil:
		op.RequestBody = requestBodyFromParameter(body, consumes)
	case len(form) > 0:
		op.RequestBody = requestBodyFromForm(form, consumes)
	}
}

func requestBodyFromParameter(p *model.Parameter, consumes []string) *model.RequestBody {
	if target := p.Resolved(); target != nil {
		p = target
	}
	if len(consumes) == 0 {
		consumes = []string{defaultBodyMediaType}
	}

	body := &model.RequestBody{
		Description: p.Description,
		Required:    p.Required,
		Content:     sequencedmap.New[string, *model.MediaType](),
		Extensions:  p.Extensions,
	}
	for _, mediaType := range consumes {
		body.Content.Set(mediaType, &model.MediaType{Schema: p.Schema})
	}
	return body
}

func requestBodyFromForm(form []*model.Parameter, consumes []string) *model.RequestBody {
	schema := &model.Schema{
		Type:       "object",
		Properties: sequencedmap.New[string, *model.Schema](),
	}
	for _, p := range form {
		if target := p.Resolved(); target != nil {
			p = target
		}
		prop := p.Schema
		if prop == nil {
			prop = &model.Schema{}
		}
		if prop.Description == "" {
			prop.Description = p.Description
		}
		schema.Properties.Set(p.Name, prop)
		if p.Required {
			schema.Required = append(schema.Required, p.Name)
		}
	}

	var mediaTypes []string
	for _, mediaType := range consumes {
		if mediaType == defaultFormMediaType || mediaType == multipartFormMediaType {
			mediaTypes = append(mediaTypes, mediaType)
		}
	}
	if len(mediaTypes) == 0 {
		mediaTypes = []string{defaultFormMediaType}
	}

	body := &model.RequestBody{Content: sequencedmap.New[string, *model.MediaType]()}
	for _, mediaType := range mediaTypes {
		body.Content.Set(mediaType, &model.MediaType{Schema: schema})
	}
	return body
}

// legacyParameter collects the schema properties declared directly on a non-body parameter.
type legacyParameter struct {
	param            *model.Parameter
	schema           *model.Schema
	collectionFormat string
}

func (s *legacyService) loadParameter(m *parsenode.MapNode) *model.Parameter {
	return loadReferenceable(&s.walker, m, references.TypeParameter, func(m *parsenode.MapNode) *model.Parameter {
		lp := &legacyParameter{param: &model.Parameter{}}

		fields := parsenode.FixedFieldMap[*legacyParameter]{
			"name":             func(lp *legacyParameter, n parsenode.Node) { lp.param.Name = n.GetScalarValue() },
			"in":               func(lp *legacyParameter, n parsenode.Node) { lp.param.In = n.GetScalarValue() },
			"description":      func(lp *legacyParameter, n parsenode.Node) { lp.param.Description = n.GetScalarValue() },
			"required":         func(lp *legacyParameter, n parsenode.Node) { lp.param.Required = boolean(n) },
			"allowEmptyValue":  func(lp *legacyParameter, n parsenode.Node) { lp.param.AllowEmptyValue = boolean(n) },
			"schema":           func(lp *legacyParameter, n parsenode.Node) { lp.param.Schema = s.loadSchema(n) },
			"collectionFormat": func(lp *legacyParameter, n parsenode.Node) { lp.collectionFormat = n.GetScalarValue() },
		}
		for key, set := range s.itemsFieldMap {
			if _, ok := fields[key]; ok {
				continue
			}
			fields[key] = func(lp *legacyParameter, n parsenode.Node) {
				if lp.schema == nil {
					lp.schema = &model.Schema{}
				}
				set(lp.schema, n)
			}
		}

		parsenode.ParseMap(m, lp, fields, extensionPatterns(&s.walker, func(lp *legacyParameter) **model.Extensions { return &lp.param.Extensions }))

		p := lp.param
		if p.In != "body" && lp.schema != nil {
			p.Schema = lp.schema
			applyCollectionFormat(p, lp.collectionFormat)
		}
		return p
	})
}

func applyCollectionFormat(p *model.Parameter, format string) {
	switch format {
	case "csv":
		if p.In == model.ParameterInQuery || p.In == model.ParameterInCookie {
			p.Style = "form"
			p.Explode = pointer.From(false)
		} else {
			p.Style = "simple"
		}
	case "ssv":
		p.Style = "spaceDelimited"
	case "pipes":
		p.Style = "pipeDelimited"
	case "multi":
		p.Style = "form"
		p.Explode = pointer.From(true)
	}
}

func (s *legacyService) loadItems(n parsenode.Node) *model.Schema {
	m, ok := n.CheckMapNode("items")
	if !ok {
		return nil
	}
	return loadReferenceable(&s.walker, m, references.TypeSchema, func(m *parsenode.MapNode) *model.Schema {
		return s.parseSchema(m, s.itemsFieldMap)
	})
}

// legacyResponse holds the schema and examples of a response until its media types are known.
type legacyResponse struct {
	response *model.Response
	schema   *model.Schema
	examples *sequencedmap.Map[string, any]
}

func (s *legacyService) loadResponse(m *parsenode.MapNode) *model.Response {
	return loadReferenceable(&s.walker, m, references.TypeResponse, func(m *parsenode.MapNode) *model.Response {
		lr := &legacyResponse{response: &model.Response{}}

		parsenode.ParseMap(m, lr, parsenode.FixedFieldMap[*legacyResponse]{
			"description": func(lr *legacyResponse, n parsenode.Node) { lr.response.Description = n.GetScalarValue() },
			"schema":      func(lr *legacyResponse, n parsenode.Node) { lr.schema = s.loadSchema(n) },
			"headers": func(lr *legacyResponse, n parsenode.Node) {
				lr.response.Headers = parsenode.CreateMap(n, s.loadHeader)
			},
			"examples": func(lr *legacyResponse, n parsenode.Node) { lr.examples = anyMap(n) },
		}, extensionPatterns(&s.walker, func(lr *legacyResponse) **model.Extensions { return &lr.response.Extensions }))

		if lr.schema == nil && lr.examples.Len() == 0 {
			return lr.response
		}

		produces := tempList(m.Context(), keyOperationProduces, keyGlobalProduces)
		if len(produces) == 0 {
			produces = []string{defaultResponseMediaType}
		}

		content := sequencedmap.New[string, *model.MediaType]()
		for _, mediaType := range produces {
			content.Set(mediaType, &model.MediaType{Schema: lr.schema, Example: lr.examples.GetOrZero(mediaType)})
		}
		for mediaType, example := range lr.examples.All() {
			if !slices.Contains(produces, mediaType) {
				content.Set(mediaType, &model.MediaType{Schema: lr.schema, Example: example})
			}
		}
		lr.response.Content = content

		return lr.response
	})
}

// legacyHeader collects the schema properties declared directly on a header.
type legacyHeader struct {
	header *model.Header
	schema *model.Schema
}

func (s *legacyService) loadHeader(m *parsenode.MapNode) *model.Header {
	return loadReferenceable(&s.walker, m, references.TypeHeader, func(m *parsenode.MapNode) *model.Header {
		lh := &legacyHeader{header: &model.Header{}}

		fields := parsenode.FixedFieldMap[*legacyHeader]{
			"description": func(lh *legacyHeader, n parsenode.Node) { lh.header.Description = n.GetScalarValue() },
		}
		for key, set := range s.itemsFieldMap {
			fields[key] = func(lh *legacyHeader, n parsenode.Node) {
				if lh.schema == nil {
					lh.schema = &model.Schema{}
				}
				set(lh.schema, n)
			}
		}

		parsenode.ParseMap(m, lh, fields, extensionPatterns(&s.walker, func(lh *legacyHeader) **model.Extensions { return &lh.header.Extensions }))

		lh.header.Schema = lh.schema
		return lh.header
	})
}

// legacyScheme collects the single OAuth flow a 2.0 security definition declares.
type legacyScheme struct {
	scheme *model.SecurityScheme
	flow   string
	oauth  model.OAuthFlow
}

func (s *legacyService) loadSecurityScheme(m *parsenode.MapNode) *model.SecurityScheme {
	return loadReferenceable(&s.walker, m, references.TypeSecurityScheme, func(m *parsenode.MapNode) *model.SecurityScheme {
		ls := &legacyScheme{scheme: &model.SecurityScheme{}}

		parsenode.ParseMap(m, ls, parsenode.FixedFieldMap[*legacyScheme]{
			"type": func(ls *legacyScheme, n parsenode.Node) {
				switch typ := n.GetScalarValue(); typ {
				case "basic":
					ls.scheme.Type = model.SecuritySchemeTypeHTTP
					ls.scheme.Scheme = "basic"
				default:
					ls.scheme.Type = typ
				}
			},
			"description":      func(ls *legacyScheme, n parsenode.Node) { ls.scheme.Description = n.GetScalarValue() },
			"name":             func(ls *legacyScheme, n parsenode.Node) { ls.scheme.Name = n.GetScalarValue() },
			"in":               func(ls *legacyScheme, n parsenode.Node) { ls.scheme.In = n.GetScalarValue() },
			"flow":             func(ls *legacyScheme, n parsenode.Node) { ls.flow = n.GetScalarValue() },
			"authorizationUrl": func(ls *legacyScheme, n parsenode.Node) { ls.oauth.AuthorizationURL = n.GetScalarValue() },
			"tokenUrl":         func(ls *legacyScheme, n parsenode.Node) { ls.oauth.TokenURL = n.GetScalarValue() },
			"scopes":           func(ls *legacyScheme, n parsenode.Node) { ls.oauth.Scopes = scopes(n) },
		}, extensionPatterns(&s.walker, func(ls *legacyScheme) **model.Extensions { return &ls.scheme.Extensions }))

		if ls.scheme.Type == model.SecuritySchemeTypeOAuth2 {
			flow := ls.oauth
			flows := &model.OAuthFlows{}
			switch ls.flow {
			case "implicit":
				flows.Implicit = &flow
			case "password":
				flows.Password = &flow
			case "application":
				flows.ClientCredentials = &flow
			case "accessCode":
				flows.AuthorizationCode = &flow
			}
			ls.scheme.Flows = flows
		}

		return ls.scheme
	})
}

func (s *legacyService) loadSchema(n parsenode.Node) *model.Schema {
	m, ok := n.CheckMapNode("schema")
	if !ok {
		return nil
	}
	return s.loadSchemaMap(m)
}

func (s *legacyService) loadSchemaMap(m *parsenode.MapNode) *model.Schema {
	return loadReferenceable(&s.walker, m, references.TypeSchema, func(m *parsenode.MapNode) *model.Schema {
		return s.parseSchema(m, s.schemaFieldMap)
	})
}
