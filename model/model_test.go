package model_test

import (
	"strings"
	"testing"

	"github.com/speakeasy-api/apireader/model"
	"github.com/speakeasy-api/apireader/references"
	"github.com/speakeasy-api/apireader/sequencedmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	path   []string
	visits []string
}

func (r *recorder) Visit(obj model.Object) {
	r.visits = append(r.visits, string(obj.Kind())+"@/"+strings.Join(r.path, "/"))
}

func (r *recorder) Enter(segment string) { r.path = append(r.path, segment) }

func (r *recorder) Exit() { r.path = r.path[:len(r.path)-1] }

func TestDocument_Accept_Order(t *testing.T) {
	t.Parallel()

	ext := model.NewExtensions()
	ext.Set("x-logo", &model.Any{Value: "logo.png"})

	pet := &model.Schema{Type: "object", Properties: sequencedmap.New(
		sequencedmap.NewElem("name", &model.Schema{Type: "string"}),
	)}

	ref := &model.Schema{}
	ref.Reference = &references.Reference{Type: references.TypeSchema, ID: "Pet"}

	doc := &model.Document{
		Info: &model.Info{Title: "Pets", Contact: &model.Contact{Email: "a@b.c"}, Extensions: ext},
		Paths: &model.Paths{Items: sequencedmap.New(
			sequencedmap.NewElem("/pets", &model.PathItem{Operations: sequencedmap.New(
				sequencedmap.NewElem("get", &model.Operation{
					Responses: &model.Responses{Codes: sequencedmap.New(
						sequencedmap.NewElem("200", &model.Response{Description: "ok"}),
					)},
				}),
			)}),
		)},
		Components: &model.Components{Schemas: sequencedmap.New(
			sequencedmap.NewElem("Pet", pet),
			sequencedmap.NewElem("Alias", ref),
		)},
	}

	r := &recorder{}
	doc.Accept(r)

	assert.Equal(t, []string{
		"document@/",
		"info@/info",
		"contact@/info/contact",
		"extensions@/info",
		"any@/info/x-logo",
		"paths@/paths",
		"pathItem@/paths//pets",
		"operation@/paths//pets/get",
		"responses@/paths//pets/get/responses",
		"response@/paths//pets/get/responses/200",
		"components@/components",
		"schema@/components/schemas/Pet",
		"schema@/components/schemas/Pet/properties/name",
		"referenceUse@/components/schemas/Alias",
	}, r.visits)
	assert.Empty(t, r.path)
}

func TestAccept_NilObjects_NoVisits(t *testing.T) {
	t.Parallel()

	r := &recorder{}
	var doc *model.Document
	doc.Accept(r)

	var info *model.Info
	info.Accept(r)

	assert.Empty(t, r.visits)
	assert.Equal(t, model.KindInfo, info.Kind())
}

func TestPlaceholder_Bind_Success(t *testing.T) {
	t.Parallel()

	target := &model.Schema{Type: "object"}
	p := &model.Schema{}
	p.Reference = &references.Reference{Type: references.TypeSchema, ID: "Pet"}

	assert.True(t, p.IsReference())
	assert.False(t, p.IsResolved())
	assert.Nil(t, p.Resolved())

	assert.False(t, p.Bind(&model.Parameter{}), "wrong kinds are rejected")
	assert.False(t, p.Bind(nil))
	require.True(t, p.Bind(target))

	assert.True(t, p.IsResolved())
	assert.Same(t, target, p.Target())
	assert.Same(t, target, p.Resolved())
	assert.Same(t, target, p.ResolvedTarget())
}

func TestPlaceholder_Resolved_Chain(t *testing.T) {
	t.Parallel()

	inline := &model.Parameter{Name: "limit"}

	middle := &model.Parameter{}
	middle.Reference = &references.Reference{Type: references.TypeParameter, ID: "Limit"}
	middle.Bind(inline)

	outer := &model.Parameter{}
	outer.Reference = &references.Reference{Type: references.TypeParameter, ID: "Alias"}
	outer.Bind(middle)

	assert.Same(t, inline, outer.Resolved())
	assert.Same(t, inline, inline.Resolved())
}

func TestPlaceholder_Resolved_Cycle(t *testing.T) {
	t.Parallel()

	a := &model.Schema{}
	a.Reference = &references.Reference{Type: references.TypeSchema, ID: "B"}
	b := &model.Schema{}
	b.Reference = &references.Reference{Type: references.TypeSchema, ID: "A"}
	a.Bind(b)
	b.Bind(a)

	assert.Nil(t, a.Resolved())
}

func TestPlaceholder_Identity(t *testing.T) {
	t.Parallel()

	s := &model.Schema{}
	assert.Nil(t, s.Identity())

	s.SetIdentity(references.Reference{Type: references.TypeSchema, ID: "Pet"})
	require.NotNil(t, s.Identity())
	assert.Equal(t, "Pet", s.Identity().ID)
	assert.False(t, s.IsReference(), "identity does not make an object a reference")
}

func TestSecurityRequirement_Accept_VisitsSchemeReferences(t *testing.T) {
	t.Parallel()

	scheme := &model.SecurityScheme{}
	scheme.Reference = &references.Reference{Type: references.TypeSecurityScheme, ID: "petstore_auth"}

	req := &model.SecurityRequirement{Items: []model.SecurityRequirementItem{{Scheme: scheme, Scopes: []string{"read:pets"}}}}

	r := &recorder{}
	req.Accept(r)

	assert.Equal(t, []string{"securityRequirement@/", "referenceUse@/petstore_auth"}, r.visits)
}

func TestComponents_Keys(t *testing.T) {
	t.Parallel()

	c := &model.Components{
		Schemas:    sequencedmap.New(sequencedmap.NewElem("Pet", &model.Schema{}), sequencedmap.NewElem("Owner", &model.Schema{})),
		Parameters: sequencedmap.New(sequencedmap.NewElem("limit", &model.Parameter{})),
	}

	keys := c.Keys()
	assert.Equal(t, []string{"Pet", "Owner"}, keys["schemas"])
	assert.Equal(t, []string{"limit"}, keys["parameters"])
	assert.Empty(t, keys["links"])
}
