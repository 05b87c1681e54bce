package model

import (
	"github.com/speakeasy-api/apireader/references"
	"github.com/speakeasy-api/apireader/sequencedmap"
)

// Security scheme types.
const (
	SecuritySchemeTypeAPIKey        = "apiKey"
	SecuritySchemeTypeHTTP          = "http"
	SecuritySchemeTypeOAuth2        = "oauth2"
	SecuritySchemeTypeOpenIDConnect = "openIdConnect"
)

// SecurityScheme defines a security scheme that can be used by the operations.
type SecurityScheme struct {
	Placeholder[SecurityScheme]

	Type             string
	Description      string
	Name             string
	In               string
	Scheme           string
	BearerFormat     string
	Flows            *OAuthFlows
	OpenIDConnectURL string
	Extensions       *Extensions
}

var (
	_ Visitable              = (*SecurityScheme)(nil)
	_ references.Placeholder = (*SecurityScheme)(nil)
)

func (*SecurityScheme) Kind() Kind { return KindSecurityScheme }
func (*SecurityScheme) ReferenceType() references.Type { return references.TypeSecurityScheme }

// Resolved follows references to the inline security scheme, or returns nil when unresolved.
func (s *SecurityScheme) Resolved() *SecurityScheme { return resolve(s) }

func (s *SecurityScheme) Accept(v Visitor) {
	if s == nil {
		return
	}
	if s.IsReference() {
		v.Visit(referenceUse(s))
		return
	}
	v.Visit(s)
	visitOne(v, "flows", s.Flows)
	s.Extensions.Accept(v)
}

// OAuthFlows allows configuration of the supported OAuth flows.
type OAuthFlows struct {
	Implicit          *OAuthFlow
	Password          *OAuthFlow
	ClientCredentials *OAuthFlow
	AuthorizationCode *OAuthFlow
	Extensions        *Extensions
}

var _ Visitable = (*OAuthFlows)(nil)

func (*OAuthFlows) Kind() Kind { return KindOAuthFlows }

func (o *OAuthFlows) Accept(v Visitor) {
	if o == nil {
		return
	}
	v.Visit(o)
	visitOne(v, "implicit", o.Implicit)
	visitOne(v, "password", o.Password)
	visitOne(v, "clientCredentials", o.ClientCredentials)
	visitOne(v, "authorizationCode", o.AuthorizationCode)
	o.Extensions.Accept(v)
}

// OAuth flow types, used as the path segment of each flow.
const (
	OAuthFlowImplicit          = "implicit"
	OAuthFlowPassword          = "password"
	OAuthFlowClientCredentials = "clientCredentials"
	OAuthFlowAuthorizationCode = "authorizationCode"
)

// OAuthFlow configures a single OAuth flow.
type OAuthFlow struct {
	AuthorizationURL string
	TokenURL         string
	RefreshURL       string
	Scopes           *sequencedmap.Map[string, string]
	Extensions       *Extensions
}

var _ Visitable = (*OAuthFlow)(nil)

func (*OAuthFlow) Kind() Kind { return KindOAuthFlow }

func (o *OAuthFlow) Accept(v Visitor) {
	if o == nil {
		return
	}
	v.Visit(o)
	o.Extensions.Accept(v)
}

// SecurityRequirementItem names a security scheme and the scopes required from it.
type SecurityRequirementItem struct {
	// Scheme is a placeholder bound to the declared security scheme by name.
	Scheme *SecurityScheme
	Scopes []string
}

// SecurityRequirement lists the schemes that together satisfy a security requirement.
type SecurityRequirement struct {
	Items []SecurityRequirementItem
}

var _ Visitable = (*SecurityRequirement)(nil)

func (*SecurityRequirement) Kind() Kind { return KindSecurityRequirement }

func (s *SecurityRequirement) Accept(v Visitor) {
	if s == nil {
		return
	}
	v.Visit(s)
	for _, item := range s.Items {
		if item.Scheme == nil || item.Scheme.GetReference() == nil {
			continue
		}
		v.Enter(item.Scheme.GetReference().ID)
		item.Scheme.Accept(v)
		v.Exit()
	}
}
