package validation

import (
	"net/url"

	"github.com/speakeasy-api/apireader/model"
)

// StrictRules are the URL format checks that are not part of the default rule set.
func StrictRules() []*Rule {
	return []*Rule{
		ContactURLFormat,
		LicenseURLFormat,
		TermsOfServiceURLFormat,
		ExternalDocsURLFormat,
		OAuthFlowURLFormat,
	}
}

// StrictRuleSet is the default rule set with the URL format checks added.
func StrictRuleSet() *RuleSet {
	return DefaultRuleSet().With(StrictRules()...)
}

// requireURL reports the value of field when it is set but not an absolute URL.
func requireURL(ctx Context, field, value string) {
	if value == "" || isURL(value) {
		return
	}
	ctx.Enter(field)
	ctx.AddErrorf("The string '%s' MUST be in the format of a URL.", value)
	ctx.Exit()
}

func isURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.IsAbs() && u.Host != ""
}

var ContactURLFormat = NewRule(RuleContactURLFormat, func(ctx Context, c *model.Contact) {
	if c == nil {
		return
	}
	requireURL(ctx, "url", c.URL)
})

var LicenseURLFormat = NewRule(RuleLicenseURLFormat, func(ctx Context, l *model.License) {
	if l == nil {
		return
	}
	requireURL(ctx, "url", l.URL)
})

var TermsOfServiceURLFormat = NewRule(RuleTermsOfServiceURLFormat, func(ctx Context, i *model.Info) {
	if i == nil {
		return
	}
	requireURL(ctx, "termsOfService", i.TermsOfService)
})

var ExternalDocsURLFormat = NewRule(RuleExternalDocsURLFormat, func(ctx Context, e *model.ExternalDocs) {
	if e == nil {
		return
	}
	requireURL(ctx, "url", e.URL)
})

var OAuthFlowURLFormat = NewRule(RuleOAuthFlowURLFormat, func(ctx Context, f *model.OAuthFlow) {
	if f == nil {
		return
	}
	requireURL(ctx, "authorizationUrl", f.AuthorizationURL)
	requireURL(ctx, "tokenUrl", f.TokenURL)
	requireURL(ctx, "refreshUrl", f.RefreshURL)
})
