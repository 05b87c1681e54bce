package validation

import (
	"iter"
	"net/mail"
	"regexp"
	"strings"

	"github.com/speakeasy-api/apireader/model"
)

const (
	RuleDocumentRequiredFields   = "validation-document-required-fields"
	RuleInfoRequiredFields       = "validation-info-required-fields"
	RuleContactEmailFormat       = "validation-contact-email-format"
	RuleLicenseRequiredFields    = "validation-license-required-fields"
	RuleExternalDocsURLRequired  = "validation-external-docs-url-required"
	RuleServerURLRequired        = "validation-server-url-required"
	RuleTagNameRequired          = "validation-tag-name-required"
	RuleResponsesNotEmpty        = "validation-responses-not-empty"
	RuleResponseDescription      = "validation-response-description"
	RuleParameterRequiredFields  = "validation-parameter-required-fields"
	RulePathParameterRequired    = "validation-path-parameter-required"
	RuleOAuthFlowRequiredFields  = "validation-oauth-flow-required-fields"
	RuleComponentKeyFormat       = "validation-component-key-format"
	RuleExtensionPrefix          = "validation-extension-prefix"
	RuleSchemaWellFormed         = "validation-schema-well-formed"
	RuleOperationIDUnique        = "validation-operation-id-unique"
	RuleContactURLFormat         = "validation-contact-url-format"
	RuleLicenseURLFormat         = "validation-license-url-format"
	RuleTermsOfServiceURLFormat  = "validation-terms-of-service-url-format"
	RuleExternalDocsURLFormat    = "validation-external-docs-url-format"
	RuleOAuthFlowURLFormat       = "validation-oauth-flow-url-format"
	RuleOpenIDConnectURLRequired = "validation-open-id-connect-url-required"
)

var componentKeyRegex = regexp.MustCompile(`^[a-zA-Z0-9\.\-_]+$`)

func defaultRules() []*Rule {
	return []*Rule{
		DocumentRequiredFields,
		InfoRequiredFields,
		ContactEmailFormat,
		LicenseRequiredFields,
		ExternalDocsURLRequired,
		ServerURLRequired,
		TagNameRequired,
		ResponsesNotEmpty,
		ResponseDescription,
		ParameterRequiredFields,
		PathParameterRequired,
		OAuthFlowRequiredFields,
		OpenIDConnectURLRequired,
		ComponentKeyFormat,
		ExtensionPrefix,
		SchemaWellFormed,
		OperationIDUnique,
	}
}

// requireField reports field as missing from the object named owner when empty is true.
func requireField(ctx Context, owner, field string, empty bool) {
	if !empty {
		return
	}
	ctx.Enter(field)
	ctx.AddErrorf("The field '%s' in '%s' object is REQUIRED.", field, owner)
	ctx.Exit()
}

var DocumentRequiredFields = NewRule(RuleDocumentRequiredFields, func(ctx Context, d *model.Document) {
	if d == nil {
		return
	}
	requireField(ctx, "document", "info", d.Info == nil)
	requireField(ctx, "document", "paths", d.Paths == nil)
})

var InfoRequiredFields = NewRule(RuleInfoRequiredFields, func(ctx Context, i *model.Info) {
	if i == nil {
		return
	}
	requireField(ctx, "info", "title", i.Title == "")
	requireField(ctx, "info", "version", i.Version == "")
})

var ContactEmailFormat = NewRule(RuleContactEmailFormat, func(ctx Context, c *model.Contact) {
	ctx.Enter("email")
	if email := c.GetEmail(); email != "" && !isEmailAddress(email) {
		ctx.AddErrorf("The string '%s' MUST be in the format of an email address.", email)
	}
	ctx.Exit()
})

// isEmailAddress accepts a bare addr-spec; display names and angle brackets are rejected.
func isEmailAddress(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Name == "" && addr.Address == s
}

var LicenseRequiredFields = NewRule(RuleLicenseRequiredFields, func(ctx Context, l *model.License) {
	if l == nil {
		return
	}
	requireField(ctx, "license", "name", l.Name == "")
})

var ExternalDocsURLRequired = NewRule(RuleExternalDocsURLRequired, func(ctx Context, e *model.ExternalDocs) {
	if e == nil {
		return
	}
	requireField(ctx, "externalDocs", "url", e.URL == "")
})

var ServerURLRequired = NewRule(RuleServerURLRequired, func(ctx Context, s *model.Server) {
	if s == nil {
		return
	}
	requireField(ctx, "server", "url", s.URL == "")
})

var TagNameRequired = NewRule(RuleTagNameRequired, func(ctx Context, t *model.Tag) {
	if t == nil || t.IsReference() {
		return
	}
	requireField(ctx, "tag", "name", t.Name == "")
})

var ResponsesNotEmpty = NewRule(RuleResponsesNotEmpty, func(ctx Context, r *model.Responses) {
	if r == nil {
		return
	}
	if r.Len() == 0 {
		ctx.AddError("Responses must contain at least one response.")
	}
})

var ResponseDescription = NewRule(RuleResponseDescription, func(ctx Context, r *model.Response) {
	if r == nil || r.IsReference() {
		return
	}
	requireField(ctx, "response", "description", r.Description == "")
})

var ParameterRequiredFields = NewRule(RuleParameterRequiredFields, func(ctx Context, p *model.Parameter) {
	if p == nil || p.IsReference() {
		return
	}
	requireField(ctx, "parameter", "name", p.Name == "")
	requireField(ctx, "parameter", "in", p.In == "")
})

var PathParameterRequired = NewRule(RulePathParameterRequired, func(ctx Context, p *model.Parameter) {
	if p == nil || p.IsReference() || p.In != model.ParameterInPath || p.Required {
		return
	}
	ctx.Enter("required")
	ctx.AddErrorf("\"%s\" is a path parameter and MUST be required.", p.Name)
	ctx.Exit()
})

// OAuthFlowRequiredFields checks each flow for the fields its flow type requires.
var OAuthFlowRequiredFields = NewRule(RuleOAuthFlowRequiredFields, func(ctx Context, flows *model.OAuthFlows) {
	if flows == nil {
		return
	}
	check := func(name string, flow *model.OAuthFlow, authorization, token bool) {
		if flow == nil {
			return
		}
		ctx.Enter(name)
		if authorization {
			requireField(ctx, "OAuth Flow", "authorizationUrl", flow.AuthorizationURL == "")
		}
		if token {
			requireField(ctx, "OAuth Flow", "tokenUrl", flow.TokenURL == "")
		}
		requireField(ctx, "OAuth Flow", "scopes", flow.Scopes == nil)
		ctx.Exit()
	}
	check(model.OAuthFlowImplicit, flows.Implicit, true, false)
	check(model.OAuthFlowPassword, flows.Password, false, true)
	check(model.OAuthFlowClientCredentials, flows.ClientCredentials, false, true)
	check(model.OAuthFlowAuthorizationCode, flows.AuthorizationCode, true, true)
})

var OpenIDConnectURLRequired = NewRule(RuleOpenIDConnectURLRequired, func(ctx Context, s *model.SecurityScheme) {
	if s == nil || s.IsReference() || s.Type != model.SecuritySchemeTypeOpenIDConnect {
		return
	}
	requireField(ctx, "security scheme", "openIdConnectUrl", s.OpenIDConnectURL == "")
})

var ComponentKeyFormat = NewRule(RuleComponentKeyFormat, func(ctx Context, c *model.Components) {
	if c == nil {
		return
	}
	for section, keys := range orderedSections(c) {
		for _, key := range keys {
			if componentKeyRegex.MatchString(key) {
				continue
			}
			ctx.Enter(section)
			ctx.AddErrorf("The key '%s' in '%s' of components MUST match the regular expression '%s'.", key, section, componentKeyRegex.String())
			ctx.Exit()
		}
	}
})

// componentSections is the order component sections are checked in.
var componentSections = []string{
	"schemas", "responses", "parameters", "examples", "requestBodies",
	"headers", "securitySchemes", "links", "callbacks",
}

func orderedSections(c *model.Components) iter.Seq2[string, []string] {
	keys := c.Keys()
	return func(yield func(string, []string) bool) {
		for _, section := range componentSections {
			if len(keys[section]) == 0 {
				continue
			}
			if !yield(section, keys[section]) {
				return
			}
		}
	}
}

var ExtensionPrefix = NewRule(RuleExtensionPrefix, func(ctx Context, e *model.Extensions) {
	if e == nil {
		return
	}
	for key := range e.Values.Keys() {
		if strings.HasPrefix(key, "x-") {
			continue
		}
		ctx.AddErrorf("The extension name '%s' in '%s' MUST begin with 'x-'.", key, ctx.PathString())
	}
})

// OperationIDUnique reports every operation whose operationId was already used by an earlier
// operation of the document.
var OperationIDUnique = NewRule(RuleOperationIDUnique, func(ctx Context, d *model.Document) {
	if d == nil || d.Paths == nil {
		return
	}
	seen := map[string]string{}

	ctx.Enter("paths")
	defer ctx.Exit()
	for path, item := range d.Paths.Items.All() {
		item = item.Resolved()
		if item == nil {
			continue
		}
		ctx.Enter(path)
		for method, op := range item.Operations.All() {
			if op == nil || op.OperationID == "" {
				continue
			}
			ctx.Enter(method)
			ctx.Enter("operationId")
			if first, ok := seen[op.OperationID]; ok {
				ctx.AddErrorf("OperationId '%s' is already used at %s.", op.OperationID, first)
			} else {
				seen[op.OperationID] = ctx.PathString()
			}
			ctx.Exit()
			ctx.Exit()
		}
		ctx.Exit()
	}
})
