package validation_test

import (
	"testing"

	"github.com/speakeasy-api/apireader/model"
	"github.com/speakeasy-api/apireader/references"
	"github.com/speakeasy-api/apireader/sequencedmap"
	"github.com/speakeasy-api/apireader/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func pointers(errs []*validation.Error) []string {
	out := make([]string, 0, len(errs))
	for _, err := range errs {
		out = append(out, err.Pointer)
	}
	return out
}

func validDocument() *model.Document {
	return &model.Document{
		OpenAPI: "3.0.3",
		Info:    &model.Info{Title: "Pets", Version: "1.0.0"},
		Paths: &model.Paths{Items: sequencedmap.New(
			sequencedmap.NewElem("/pets/{id}", &model.PathItem{
				Parameters: []*model.Parameter{{Name: "id", In: model.ParameterInPath, Required: true}},
				Operations: sequencedmap.New(
					sequencedmap.NewElem("get", &model.Operation{
						OperationID: "getPet",
						Responses: &model.Responses{Codes: sequencedmap.New(
							sequencedmap.NewElem("200", &model.Response{Description: "ok"}),
						)},
					}),
				),
			}),
		)},
	}
}

func referenceTo(id string) references.Reference {
	return references.Reference{Type: references.TypeResponse, ID: id}
}

func rawSchema(t *testing.T, src string) *yaml.Node {
	t.Helper()

	var node yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(src), &node))
	return node.Content[0]
}

func TestValidate_ContactEmail(t *testing.T) {
	t.Parallel()

	rules := validation.NewRuleSet(validation.ContactEmailFormat)

	tests := []struct {
		name     string
		email    string
		expected []string
	}{
		{
			name:     "invalid email",
			email:    "not-an-email",
			expected: []string{"#/info/contact/email"},
		},
		{
			name:  "valid email",
			email: "support@example.com",
		},
		{
			name:  "missing email",
			email: "",
		},
		{
			name:     "display name is not an email address",
			email:    "Support <support@example.com>",
			expected: []string{"#/info/contact/email"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := &model.Document{Info: &model.Info{Contact: &model.Contact{Email: tt.email}}}
			errs := validation.Validate(doc, rules)

			if len(tt.expected) == 0 {
				assert.Empty(t, errs)
				return
			}
			require.Len(t, errs, len(tt.expected))
			assert.Equal(t, tt.expected, pointers(errs))
			assert.Equal(t, validation.RuleContactEmailFormat, errs[0].Rule)
			assert.Equal(t, "The string '"+tt.email+"' MUST be in the format of an email address.", errs[0].Message)
		})
	}
}

func TestValidator_Depth_ReturnsToZero(t *testing.T) {
	t.Parallel()

	doc := validDocument()
	doc.Info.Contact = &model.Contact{Email: "nope"}
	doc.Components = &model.Components{Schemas: sequencedmap.New(
		sequencedmap.NewElem("Pet", &model.Schema{Raw: rawSchema(t, "type: strin")}),
	)}

	v := validation.NewValidator(validation.StrictRuleSet())
	v.Validate(doc)

	assert.Equal(t, 0, v.Depth())
	assert.NotEmpty(t, v.Errors())
}

func TestValidate_DefaultRules_ValidDocument(t *testing.T) {
	t.Parallel()

	errs := validation.Validate(validDocument(), nil)
	assert.Empty(t, errs)
}

func TestValidate_RequiredFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		modify   func(d *model.Document)
		expected []string
	}{
		{
			name:     "missing paths",
			modify:   func(d *model.Document) { d.Paths = nil },
			expected: []string{"#/paths"},
		},
		{
			name:     "missing info title and version",
			modify:   func(d *model.Document) { d.Info = &model.Info{} },
			expected: []string{"#/info/title", "#/info/version"},
		},
		{
			name:     "license without name",
			modify:   func(d *model.Document) { d.Info.License = &model.License{URL: "https://example.com"} },
			expected: []string{"#/info/license/name"},
		},
		{
			name:     "server without url",
			modify:   func(d *model.Document) { d.Servers = []*model.Server{{URL: "https://a"}, {}} },
			expected: []string{"#/servers/1/url"},
		},
		{
			name:     "tag without name",
			modify:   func(d *model.Document) { d.Tags = []*model.Tag{{Description: "pets"}} },
			expected: []string{"#/tags/0/name"},
		},
		{
			name:     "external docs without url",
			modify:   func(d *model.Document) { d.ExternalDocs = &model.ExternalDocs{Description: "more"} },
			expected: []string{"#/externalDocs/url"},
		},
		{
			name: "response without description",
			modify: func(d *model.Document) {
				op := d.Paths.Items.GetOrZero("/pets/{id}").Operations.GetOrZero("get")
				op.Responses.Codes.Set("404", &model.Response{})
			},
			expected: []string{"#/paths/~1pets~1{id}/get/responses/404/description"},
		},
		{
			name: "empty responses",
			modify: func(d *model.Document) {
				op := d.Paths.Items.GetOrZero("/pets/{id}").Operations.GetOrZero("get")
				op.Responses = &model.Responses{}
			},
			expected: []string{"#/paths/~1pets~1{id}/get/responses"},
		},
		{
			name: "parameter without name or location",
			modify: func(d *model.Document) {
				item := d.Paths.Items.GetOrZero("/pets/{id}")
				item.Parameters = append(item.Parameters, &model.Parameter{})
			},
			expected: []string{"#/paths/~1pets~1{id}/parameters/1/name", "#/paths/~1pets~1{id}/parameters/1/in"},
		},
		{
			name: "optional path parameter",
			modify: func(d *model.Document) {
				d.Paths.Items.GetOrZero("/pets/{id}").Parameters[0].Required = false
			},
			expected: []string{"#/paths/~1pets~1{id}/parameters/0/required"},
		},
		{
			name: "oauth flows missing urls and scopes",
			modify: func(d *model.Document) {
				d.Components = &model.Components{SecuritySchemes: sequencedmap.New(
					sequencedmap.NewElem("oauth", &model.SecurityScheme{
						Type: model.SecuritySchemeTypeOAuth2,
						Flows: &model.OAuthFlows{
							Implicit:          &model.OAuthFlow{Scopes: sequencedmap.New[string, string]()},
							AuthorizationCode: &model.OAuthFlow{AuthorizationURL: "https://a"},
						},
					}),
				)}
			},
			expected: []string{
				"#/components/securitySchemes/oauth/flows/implicit/authorizationUrl",
				"#/components/securitySchemes/oauth/flows/authorizationCode/tokenUrl",
				"#/components/securitySchemes/oauth/flows/authorizationCode/scopes",
			},
		},
		{
			name: "open id connect without url",
			modify: func(d *model.Document) {
				d.Components = &model.Components{SecuritySchemes: sequencedmap.New(
					sequencedmap.NewElem("oidc", &model.SecurityScheme{Type: model.SecuritySchemeTypeOpenIDConnect}),
				)}
			},
			expected: []string{"#/components/securitySchemes/oidc/openIdConnectUrl"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := validDocument()
			tt.modify(doc)

			errs := validation.Validate(doc, validation.DefaultRuleSet())
			assert.Equal(t, tt.expected, pointers(errs))
		})
	}
}

func TestValidate_ReferencesAreNotWalked(t *testing.T) {
	t.Parallel()

	target := &model.Response{}
	ref := &model.Response{}
	ref.SetReference(referenceTo("NotFound"))
	ref.Bind(target)

	doc := validDocument()
	op := doc.Paths.Items.GetOrZero("/pets/{id}").Operations.GetOrZero("get")
	op.Responses.Codes.Set("404", ref)

	errs := validation.Validate(doc, validation.DefaultRuleSet())
	assert.Empty(t, errs)
}

func TestValidate_ComponentKeyFormat(t *testing.T) {
	t.Parallel()

	doc := validDocument()
	doc.Components = &model.Components{
		Schemas: sequencedmap.New(
			sequencedmap.NewElem("Pet", &model.Schema{Type: "object"}),
			sequencedmap.NewElem("Pet Store", &model.Schema{Type: "object"}),
		),
		Parameters: sequencedmap.New(
			sequencedmap.NewElem("page.size-v1_2", &model.Parameter{Name: "size", In: "query"}),
		),
	}

	errs := validation.Validate(doc, validation.NewRuleSet(validation.ComponentKeyFormat))
	require.Len(t, errs, 1)
	assert.Equal(t, "#/components/schemas", errs[0].Pointer)
	assert.Contains(t, errs[0].Message, "'Pet Store'")
}

func TestValidate_ExtensionPrefix(t *testing.T) {
	t.Parallel()

	ext := model.NewExtensions()
	ext.Set("x-logo", &model.Any{Value: "logo.png"})
	ext.Set("logo", &model.Any{Value: "logo.png"})

	doc := validDocument()
	doc.Info.Extensions = ext

	errs := validation.Validate(doc, validation.NewRuleSet(validation.ExtensionPrefix))
	require.Len(t, errs, 1)
	assert.Equal(t, "#/info", errs[0].Pointer)
	assert.Contains(t, errs[0].Message, "'logo'")
}

func TestValidate_OperationIDUnique(t *testing.T) {
	t.Parallel()

	doc := validDocument()
	doc.Paths.Items.Set("/pets", &model.PathItem{Operations: sequencedmap.New(
		sequencedmap.NewElem("get", &model.Operation{OperationID: "listPets"}),
		sequencedmap.NewElem("post", &model.Operation{OperationID: "getPet"}),
	)})

	errs := validation.Validate(doc, validation.NewRuleSet(validation.OperationIDUnique))
	require.Len(t, errs, 1)
	assert.Equal(t, "#/paths/~1pets/post/operationId", errs[0].Pointer)
	assert.Equal(t, "OperationId 'getPet' is already used at #/paths/~1pets~1{id}/get/operationId.", errs[0].Message)
}

func TestValidate_SchemaWellFormed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		schema   string
		expected string
		message  string
	}{
		{
			name:   "valid schema",
			schema: "type: object\nrequired: [name]\nproperties:\n  name:\n    type: string\n",
		},
		{
			name:     "unknown type",
			schema:   "type: strin",
			expected: "#/components/schemas/Pet/type",
			message:  "schema field type matches none of its allowed forms",
		},
		{
			name:     "negative minLength",
			schema:   "type: string\nminLength: -1",
			expected: "#/components/schemas/Pet/minLength",
			message:  "schema field minLength",
		},
		{
			name:   "file type is accepted",
			schema: "type: file",
		},
		{
			name:   "subschemas and extensions are not checked",
			schema: "type: object\nproperties:\n  name:\n    type: 12\nx-type: 12\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := validDocument()
			doc.Components = &model.Components{Schemas: sequencedmap.New(
				sequencedmap.NewElem("Pet", &model.Schema{Raw: rawSchema(t, tt.schema)}),
			)}

			errs := validation.Validate(doc, validation.NewRuleSet(validation.SchemaWellFormed))
			if tt.expected == "" {
				assert.Empty(t, errs)
				return
			}
			require.Len(t, errs, 1, "errors: %v", errs)
			assert.Equal(t, tt.expected, errs[0].Pointer)
			assert.Equal(t, validation.RuleSchemaWellFormed, errs[0].Rule)
			assert.Contains(t, errs[0].Message, tt.message)
		})
	}
}

func TestValidate_StrictURLRules(t *testing.T) {
	t.Parallel()

	doc := validDocument()
	doc.Info.TermsOfService = "terms"
	doc.Info.Contact = &model.Contact{URL: "https://example.com"}
	doc.Info.License = &model.License{Name: "MIT", URL: "not a url"}

	assert.Empty(t, validation.Validate(doc, validation.DefaultRuleSet()))

	errs := validation.Validate(doc, validation.StrictRuleSet())
	assert.Equal(t, []string{"#/info/termsOfService", "#/info/license/url"}, pointers(errs))
}

func TestError_Error(t *testing.T) {
	t.Parallel()

	err := &validation.Error{Rule: "r", Pointer: "#/info", Message: "broken"}
	assert.Equal(t, "[#/info] broken", err.Error())
}
