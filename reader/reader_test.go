package reader_test

import (
	"iter"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/speakeasy-api/apireader/diagnostics"
	"github.com/speakeasy-api/apireader/errors"
	"github.com/speakeasy-api/apireader/model"
	"github.com/speakeasy-api/apireader/parsenode"
	"github.com/speakeasy-api/apireader/reader"
	"github.com/speakeasy-api/apireader/references"
	"github.com/speakeasy-api/apireader/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const petstoreLegacy = `swagger: "2.0"
info:
  title: Petstore
  version: 1.0.0
  contact:
    email: support@example.com
host: petstore.example.com
basePath: /v1
schemes: [https]
consumes: [application/json]
produces: [application/json]
tags:
  - name: pets
    description: Everything about pets
paths:
  /pets:
    get:
      tags: [pets, misc]
      operationId: listPets
      parameters:
        - name: limit
          in: query
          type: array
          items:
            type: integer
          collectionFormat: csv
      responses:
        "200":
          description: A list of pets
          schema:
            type: array
            items:
              $ref: "#/definitions/Pet"
    post:
      operationId: createPet
      consumes: [application/json, application/xml]
      parameters:
        - name: pet
          in: body
          required: true
          schema:
            $ref: "#/definitions/Pet"
      responses:
        "201":
          description: Created
      security:
        - petstore_auth: [write:pets]
  /pets/{id}/photo:
    parameters:
      - name: id
        in: path
        required: true
        type: string
    post:
      operationId: uploadPhoto
      consumes: [multipart/form-data]
      parameters:
        - name: file
          in: formData
          type: file
          required: true
        - name: caption
          in: formData
          type: string
      responses:
        "204":
          description: Uploaded
definitions:
  Pet:
    type: object
    required: [name]
    properties:
      name:
        type: string
      owner:
        $ref: "#/definitions/Owner"
  Owner:
    type: object
    properties:
      name:
        type: string
securityDefinitions:
  petstore_auth:
    type: oauth2
    flow: accessCode
    authorizationUrl: https://petstore.example.com/oauth/authorize
    tokenUrl: https://petstore.example.com/oauth/token
    scopes:
      write:pets: modify pets
  basic:
    type: basic
`

func TestRead_Legacy_Success(t *testing.T) {
	t.Parallel()

	result, err := reader.Read(t.Context(), strings.NewReader(petstoreLegacy))
	require.NoError(t, err)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.ValidationErrors)
	assert.Equal(t, reader.GenerationLegacy, result.Generation)

	doc := result.Document
	require.NotNil(t, doc)
	assert.Equal(t, "2.0", doc.OpenAPI)
	assert.Equal(t, "Petstore", doc.Info.GetTitle())

	require.Len(t, doc.Servers, 1)
	assert.Equal(t, "https://petstore.example.com/v1", doc.Servers[0].URL)

	pet := doc.Components.Schemas.GetOrZero("Pet")
	require.NotNil(t, pet)
	owner := doc.Components.Schemas.GetOrZero("Owner")
	require.NotNil(t, owner)
	assert.Same(t, owner, pet.Properties.GetOrZero("owner").Target())

	pets := doc.Paths.Items.GetOrZero("/pets")
	require.NotNil(t, pets)

	list := pets.Operations.GetOrZero("get")
	require.NotNil(t, list)
	require.Len(t, list.Parameters, 1)
	limit := list.Parameters[0]
	assert.Equal(t, "form", limit.Style)
	require.NotNil(t, limit.Explode)
	assert.False(t, *limit.Explode)
	assert.Equal(t, "array", limit.Schema.Type)
	assert.Equal(t, "integer", limit.Schema.Items.Type)

	listContent := list.Responses.Codes.GetOrZero("200").Content
	require.Equal(t, 1, listContent.Len())
	items := listContent.GetOrZero("application/json").Schema.Items
	assert.Same(t, pet, items.Target())

	require.Len(t, list.Tags, 2)
	assert.Same(t, doc.Tags[0], list.Tags[0].Resolved())
	assert.Equal(t, "misc", list.Tags[1].Name)
	assert.False(t, list.Tags[1].IsResolved())

	create := pets.Operations.GetOrZero("post")
	require.NotNil(t, create)
	assert.Empty(t, create.Parameters)
	require.NotNil(t, create.RequestBody)
	assert.True(t, create.RequestBody.Required)
	assert.Equal(t, []string{"application/json", "application/xml"}, keys(create.RequestBody.Content.Keys()))
	assert.Same(t, pet, create.RequestBody.Content.GetOrZero("application/xml").Schema.Target())

	require.Len(t, create.Security, 1)
	scheme := create.Security[0].Items[0].Scheme
	assert.Same(t, doc.Components.SecuritySchemes.GetOrZero("petstore_auth"), scheme.Resolved())
	assert.Equal(t, []string{"write:pets"}, create.Security[0].Items[0].Scopes)

	oauth := doc.Components.SecuritySchemes.GetOrZero("petstore_auth")
	assert.Equal(t, model.SecuritySchemeTypeOAuth2, oauth.Type)
	require.NotNil(t, oauth.Flows.AuthorizationCode)
	assert.Equal(t, "https://petstore.example.com/oauth/token", oauth.Flows.AuthorizationCode.TokenURL)
	assert.Equal(t, "modify pets", oauth.Flows.AuthorizationCode.Scopes.GetOrZero("write:pets"))

	basic := doc.Components.SecuritySchemes.GetOrZero("basic")
	assert.Equal(t, model.SecuritySchemeTypeHTTP, basic.Type)
	assert.Equal(t, "basic", basic.Scheme)

	photo := doc.Paths.Items.GetOrZero("/pets/{id}/photo")
	require.Len(t, photo.Parameters, 1)
	assert.Equal(t, "id", photo.Parameters[0].Name)

	upload := photo.Operations.GetOrZero("post")
	require.NotNil(t, upload.RequestBody)
	form := upload.RequestBody.Content.GetOrZero("multipart/form-data")
	require.NotNil(t, form)
	assert.Equal(t, "object", form.Schema.Type)
	assert.Equal(t, []string{"file", "caption"}, keys(form.Schema.Properties.Keys()))
	assert.Equal(t, []string{"file"}, form.Schema.Required)
}

func TestRead_Legacy_ResponseMediaTypes(t *testing.T) {
	t.Parallel()

	src := `swagger: "2.0"
info: {title: t, version: "1"}
paths:
  /a:
    get:
      produces: [text/plain]
      responses:
        "200":
          description: ok
          schema: {type: string}
          examples:
            application/json: {"a": 1}
  /b:
    get:
      responses:
        "200":
          description: ok
          schema: {type: string}
`
	result, err := reader.ReadBytes(t.Context(), []byte(src))
	require.NoError(t, err)
	assert.Empty(t, result.Errors)

	a := result.Document.Paths.Items.GetOrZero("/a").Operations.GetOrZero("get").Responses.Codes.GetOrZero("200")
	assert.Equal(t, []string{"text/plain", "application/json"}, keys(a.Content.Keys()))
	assert.Equal(t, map[string]any{"a": int64(1)}, a.Content.GetOrZero("application/json").Example)

	b := result.Document.Paths.Items.GetOrZero("/b").Operations.GetOrZero("get").Responses.Codes.GetOrZero("200")
	assert.Equal(t, []string{"application/octet-stream"}, keys(b.Content.Keys()))
}

func TestRead_Legacy_DuplicateKeysReportedOnce(t *testing.T) {
	t.Parallel()

	src := `swagger: "2.0"
info: {title: t, version: "1"}
consumes: {a: 1, a: 2}
paths:
  /p:
    parameters: {x: 1, x: 2}
    get:
      responses:
        "200": {description: ok}
`
	result, err := reader.ReadBytes(t.Context(), []byte(src), reader.WithSkipValidation())
	require.NoError(t, err)

	var duplicates []*diagnostics.Error
	for _, e := range result.Errors {
		if e.Code == diagnostics.CodeDuplicateKey {
			duplicates = append(duplicates, e)
		}
	}
	require.Len(t, duplicates, 2, "errors: %v", result.Errors)
	assert.Equal(t, "#/consumes", duplicates[0].Pointer)
	assert.Equal(t, 3, duplicates[0].Line)
	assert.Equal(t, "#/paths/~1p/parameters", duplicates[1].Pointer)
	assert.Equal(t, 6, duplicates[1].Line)
}

func TestRead_Legacy_ReferencedBodyParameter(t *testing.T) {
	t.Parallel()

	src := `swagger: "2.0"
info: {title: t, version: "1"}
consumes: [application/xml]
parameters:
  Body:
    name: b
    in: body
    required: true
    schema: {type: object}
  Name:
    name: name
    in: formData
    type: string
  Limit:
    name: limit
    in: query
    type: integer
paths:
  /own:
    post:
      parameters:
        - $ref: '#/parameters/Body'
        - $ref: '#/parameters/Limit'
      responses:
        "200": {description: ok}
  /shared:
    parameters:
      - $ref: '#/parameters/Name'
    post:
      consumes: [multipart/form-data]
      responses:
        "200": {description: ok}
`
	result, err := reader.ReadBytes(t.Context(), []byte(src))
	require.NoError(t, err)
	assert.Empty(t, result.Errors)

	own := result.Document.Paths.Items.GetOrZero("/own").Operations.GetOrZero("post")
	require.Len(t, own.Parameters, 1)
	assert.Equal(t, "limit", own.Parameters[0].Resolved().Name)
	require.NotNil(t, own.RequestBody)
	assert.True(t, own.RequestBody.Required)
	assert.Equal(t, []string{"application/xml"}, keys(own.RequestBody.Content.Keys()))
	assert.Equal(t, "object", own.RequestBody.Content.GetOrZero("application/xml").Schema.Type)

	item := result.Document.Paths.Items.GetOrZero("/shared")
	assert.Empty(t, item.Parameters)
	shared := item.Operations.GetOrZero("post")
	assert.Empty(t, shared.Parameters)
	require.NotNil(t, shared.RequestBody)
	form := shared.RequestBody.Content.GetOrZero("multipart/form-data")
	require.NotNil(t, form)
	assert.Equal(t, []string{"name"}, keys(form.Schema.Properties.Keys()))
}

func TestRead_InfoNotAMap(t *testing.T) {
	t.Parallel()

	for _, src := range []string{
		"swagger: \"2.0\"\ninfo: scalar\npaths: {}\n",
		"openapi: 3.0.3\ninfo: scalar\npaths: {}\n",
	} {
		result, err := reader.ReadBytes(t.Context(), []byte(src), reader.WithSkipValidation())
		require.NoError(t, err)
		require.NotNil(t, result.Document)
		require.NotNil(t, result.Document.Info)
		assert.Empty(t, result.Document.Info.Title)

		require.Len(t, result.Errors, 1)
		assert.Equal(t, diagnostics.CodeInvalidNode, result.Errors[0].Code)
		assert.Equal(t, "#/info", result.Errors[0].Pointer)
		assert.Contains(t, result.Errors[0].Message, "must be a map/object")
		assert.Nil(t, result.ValidationErrors)
	}
}

func TestRead_UnresolvedReference(t *testing.T) {
	t.Parallel()

	src := `swagger: "2.0"
info: {title: t, version: "1"}
paths: {}
definitions:
  Pet:
    type: object
    properties:
      owner:
        $ref: "#/definitions/Ghost"
`
	result, err := reader.ReadBytes(t.Context(), []byte(src))
	require.NoError(t, err)

	require.Len(t, result.Errors, 1)
	assert.Equal(t, diagnostics.CodeUnresolvedReference, result.Errors[0].Code)
	assert.Equal(t, "#/definitions/Pet/properties/owner", result.Errors[0].Pointer)
	assert.Contains(t, result.Errors[0].Message, "Ghost")

	owner := result.Document.Components.Schemas.GetOrZero("Pet").Properties.GetOrZero("owner")
	require.NotNil(t, owner)
	assert.True(t, owner.IsReference())
	assert.False(t, owner.IsResolved())
	assert.Nil(t, owner.Resolved())
}

func TestRead_InvalidReferenceFormat(t *testing.T) {
	t.Parallel()

	src := `swagger: "2.0"
info: {title: t, version: "1"}
paths: {}
definitions:
  Pet:
    $ref: totally invalid
`
	result, err := reader.ReadBytes(t.Context(), []byte(src))
	require.NoError(t, err)

	require.Len(t, result.Errors, 1)
	assert.Equal(t, diagnostics.CodeInvalidReference, result.Errors[0].Code)
	assert.Contains(t, result.Errors[0].Message, "totally invalid")

	pet := result.Document.Components.Schemas.GetOrZero("Pet")
	require.NotNil(t, pet)
	assert.False(t, pet.IsReference())
}

func TestRead_SameReferenceSharesTarget(t *testing.T) {
	t.Parallel()

	src := `openapi: 3.0.3
info: {title: t, version: "1"}
paths: {}
components:
  schemas:
    Pet:
      type: object
    Pair:
      type: object
      properties:
        left: {$ref: "#/components/schemas/Pet"}
        right: {$ref: "#/components/schemas/Pet"}
`
	result, err := reader.ReadBytes(t.Context(), []byte(src))
	require.NoError(t, err)
	assert.Empty(t, result.Errors)

	schemas := result.Document.Components.Schemas
	pair := schemas.GetOrZero("Pair")
	left := pair.Properties.GetOrZero("left").Target()
	right := pair.Properties.GetOrZero("right").Target()
	require.NotNil(t, left)
	assert.Same(t, left, right)
	assert.Same(t, schemas.GetOrZero("Pet"), left)
}

func TestRead_CyclicReferences(t *testing.T) {
	t.Parallel()

	src := `openapi: 3.0.3
info: {title: t, version: "1"}
paths: {}
components:
  schemas:
    Node:
      type: object
      properties:
        next: {$ref: "#/components/schemas/Node"}
    A: {$ref: "#/components/schemas/B"}
    B: {$ref: "#/components/schemas/A"}
`
	result, err := reader.ReadBytes(t.Context(), []byte(src))
	require.NoError(t, err)
	assert.Empty(t, result.Errors)

	schemas := result.Document.Components.Schemas
	node := schemas.GetOrZero("Node")
	assert.Same(t, node, node.Properties.GetOrZero("next").Target())
	assert.Nil(t, schemas.GetOrZero("A").Resolved())
}

const petstoreCurrent = `openapi: 3.0.3
info:
  title: Petstore
  version: 1.0.0
servers:
  - url: https://{region}.example.com/v1
    variables:
      region:
        default: eu
        enum: [eu, us]
tags:
  - name: pets
paths:
  /pets:
    get:
      tags: [pets]
      operationId: listPets
      parameters:
        - $ref: "#/components/parameters/limit"
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                type: array
                items:
                  $ref: "#/components/schemas/Pet"
        default:
          $ref: "#/components/responses/Error"
    post:
      operationId: createPet
      requestBody:
        $ref: "#/components/requestBodies/NewPet"
      responses:
        "201":
          description: created
          links:
            self:
              $ref: "#/components/links/Self"
      callbacks:
        onCreated:
          $ref: "#/components/callbacks/Created"
components:
  schemas:
    Pet:
      type: object
      nullable: true
      discriminator:
        propertyName: kind
      properties:
        kind: {type: string}
  parameters:
    limit:
      name: limit
      in: query
      schema: {type: integer}
  responses:
    Error:
      description: error
  requestBodies:
    NewPet:
      required: true
      content:
        application/json:
          schema: {$ref: "#/components/schemas/Pet"}
  links:
    Self:
      operationId: listPets
  callbacks:
    Created:
      "{$request.body#/callbackUrl}":
        post:
          responses:
            "200": {description: ok}
  securitySchemes:
    bearer:
      type: http
      scheme: bearer
security:
  - bearer: []
`

func TestRead_Current_Success(t *testing.T) {
	t.Parallel()

	result, err := reader.Read(t.Context(), strings.NewReader(petstoreCurrent))
	require.NoError(t, err)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.ValidationErrors)
	assert.Equal(t, reader.GenerationCurrent, result.Generation)

	doc := result.Document
	components := doc.Components

	require.Len(t, doc.Servers, 1)
	assert.Equal(t, []string{"eu", "us"}, doc.Servers[0].Variables.GetOrZero("region").Enum)

	pets := doc.Paths.Items.GetOrZero("/pets")
	list := pets.Operations.GetOrZero("get")
	assert.Same(t, components.Parameters.GetOrZero("limit"), list.Parameters[0].Resolved())
	assert.Same(t, components.Responses.GetOrZero("Error"), list.Responses.Codes.GetOrZero("default").Resolved())
	assert.Same(t, doc.Tags[0], list.Tags[0].Resolved())

	create := pets.Operations.GetOrZero("post")
	body := create.RequestBody.Resolved()
	require.NotNil(t, body)
	assert.True(t, body.Required)
	assert.Same(t, components.Schemas.GetOrZero("Pet"), body.Content.GetOrZero("application/json").Schema.Resolved())

	created := create.Responses.Codes.GetOrZero("201")
	assert.Same(t, components.Links.GetOrZero("Self"), created.Links.GetOrZero("self").Resolved())
	assert.Same(t, components.Callbacks.GetOrZero("Created"), create.Callbacks.GetOrZero("onCreated").Resolved())

	pet := components.Schemas.GetOrZero("Pet")
	assert.True(t, pet.Nullable)
	assert.Equal(t, "kind", pet.Discriminator.PropertyName)

	require.Len(t, doc.Security, 1)
	assert.Same(t, components.SecuritySchemes.GetOrZero("bearer"), doc.Security[0].Items[0].Scheme.Resolved())
}

func TestRead_ExternalReferences(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"specs/api.yaml": {Data: []byte(`openapi: 3.0.3
info: {title: t, version: "1"}
paths:
  /pets:
    get:
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                $ref: "models/pet.yaml#/components/schemas/Pet"
        "404":
          description: missing
          content:
            application/json:
              schema:
                $ref: "models/missing.yaml#/components/schemas/Pet"
`)},
		"specs/models/pet.yaml": {Data: []byte(`components:
  schemas:
    Pet:
      type: object
      properties:
        owner: {$ref: "#/components/schemas/Owner"}
        tag: {$ref: "common.yaml#/components/schemas/Tag"}
    Owner:
      type: object
`)},
		"specs/models/common.yaml": {Data: []byte(`components:
  schemas:
    Tag:
      type: string
`)},
	}

	t.Run("resolve all", func(t *testing.T) {
		t.Parallel()

		result, err := reader.ReadFile(t.Context(), fsys, "specs/api.yaml",
			reader.WithReferenceResolution(references.ResolveAll))
		require.NoError(t, err)

		require.Len(t, result.Errors, 1)
		assert.Equal(t, diagnostics.CodeExternalFetch, result.Errors[0].Code)
		assert.Contains(t, result.Errors[0].Message, "specs/models/missing.yaml")

		responses := result.Document.Paths.Items.GetOrZero("/pets").Operations.GetOrZero("get").Responses
		pet := responses.Codes.GetOrZero("200").Content.GetOrZero("application/json").Schema.Resolved()
		require.NotNil(t, pet)
		assert.Equal(t, "object", pet.Type)

		owner := pet.Properties.GetOrZero("owner")
		require.True(t, owner.IsReference())
		assert.Equal(t, "specs/models/pet.yaml", owner.GetReference().ExternalResource)
		require.NotNil(t, owner.Resolved())
		assert.Equal(t, "object", owner.Resolved().Type)

		tag := pet.Properties.GetOrZero("tag").Resolved()
		require.NotNil(t, tag)
		assert.Equal(t, "string", tag.Type)
	})

	t.Run("local only", func(t *testing.T) {
		t.Parallel()

		result, err := reader.ReadFile(t.Context(), fsys, "specs/api.yaml")
		require.NoError(t, err)

		require.Len(t, result.Errors, 2)
		for _, e := range result.Errors {
			assert.Equal(t, diagnostics.CodeUnsupportedReference, e.Code)
		}
		assert.Contains(t, result.Errors[0].Message, "specs/models/pet.yaml")
		assert.Contains(t, result.Errors[1].Message, "specs/models/missing.yaml")

		schema := result.Document.Paths.Items.GetOrZero("/pets").Operations.GetOrZero("get").
			Responses.Codes.GetOrZero("200").Content.GetOrZero("application/json").Schema
		assert.True(t, schema.IsReference())
		assert.False(t, schema.IsResolved())
	})
}

func TestRead_ValidationErrorsAreSeparate(t *testing.T) {
	t.Parallel()

	src := `swagger: "2.0"
info:
  title: t
  version: "1"
  contact:
    email: not-an-email
paths: {}
`
	result, err := reader.ReadBytes(t.Context(), []byte(src))
	require.NoError(t, err)
	assert.Empty(t, result.Errors)
	require.Len(t, result.ValidationErrors, 1)
	assert.Equal(t, "#/info/contact/email", result.ValidationErrors[0].Pointer)

	result, err = reader.ReadBytes(t.Context(), []byte(src), reader.WithRuleSet(validation.NewRuleSet()))
	require.NoError(t, err)
	assert.Empty(t, result.ValidationErrors)

	result, err = reader.ReadBytes(t.Context(), []byte(src), reader.WithSkipValidation())
	require.NoError(t, err)
	assert.Nil(t, result.ValidationErrors)
}

type logo struct {
	URL string
}

func (*logo) Kind() model.Kind { return "logo" }

func TestRead_ExtensionParser(t *testing.T) {
	t.Parallel()

	src := `openapi: 3.0.0
info:
  title: t
  version: "1"
  x-logo:
    url: https://example.com/logo.png
  x-other: 1
paths: {}
`
	parser := func(n parsenode.Node) model.Object {
		m, ok := n.CheckMapNode("x-logo")
		if !ok {
			return nil
		}
		url, _ := m.GetScalar("url")
		return &logo{URL: url}
	}

	var seen []string
	rules := validation.NewRuleSet(validation.NewRule("logo-url", func(ctx validation.Context, l *logo) {
		seen = append(seen, ctx.PathString()+"="+l.URL)
	}))

	result, err := reader.ReadBytes(t.Context(), []byte(src),
		reader.WithExtensionParser("x-logo", parser), reader.WithRuleSet(rules))
	require.NoError(t, err)
	assert.Empty(t, result.Errors)

	value, ok := result.Document.Info.Extensions.Get("x-logo")
	require.True(t, ok)
	assert.Equal(t, &logo{URL: "https://example.com/logo.png"}, value)

	other, ok := result.Document.Info.Extensions.Get("x-other")
	require.True(t, ok)
	assert.Equal(t, &model.Any{Value: int64(1)}, other)

	assert.Equal(t, []string{"#/info/x-logo=https://example.com/logo.png"}, seen)
}

func TestRead_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     string
		wantErr error
	}{
		{name: "not yaml", src: "openapi: [", wantErr: reader.ErrInvalidDocument},
		{name: "not a mapping", src: "- openapi", wantErr: reader.ErrInvalidDocument},
		{name: "empty", src: "", wantErr: reader.ErrInvalidDocument},
		{name: "no marker", src: "info: {title: t}", wantErr: reader.ErrUnsupportedGeneration},
		{name: "old swagger", src: "swagger: \"1.2\"", wantErr: reader.ErrUnsupportedGeneration},
		{name: "newer openapi", src: "openapi: 3.1.0", wantErr: reader.ErrUnsupportedGeneration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := reader.ReadBytes(t.Context(), []byte(tt.src))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "expected %v, got %v", tt.wantErr, err)
			assert.Nil(t, result)
		})
	}
}

func keys(seq iter.Seq[string]) []string {
	var out []string
	for k := range seq {
		out = append(out, k)
	}
	return out
}
