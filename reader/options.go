package reader

import (
	"log/slog"

	"github.com/speakeasy-api/apireader/references"
	"github.com/speakeasy-api/apireader/system"
	"github.com/speakeasy-api/apireader/validation"
)

// Option configures a read.
type Option func(o *options)

type options struct {
	ruleSet        *validation.RuleSet
	skipValidation bool
	mode           references.ResolutionMode
	baseLocation   string
	fs             system.VirtualFS
	client         system.Client
	fetcher        references.Fetcher
	extensions     map[string]ExtensionParser
	logger         *slog.Logger
}

func newOptions(opts []Option) *options {
	o := &options{
		mode:       references.ResolveLocal,
		extensions: map[string]ExtensionParser{},
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.ruleSet == nil {
		o.ruleSet = validation.DefaultRuleSet()
	}
	if o.fetcher == nil {
		o.fetcher = references.NewFetcher(o.fs, o.client)
	}
	return o
}

// WithRuleSet sets the rules the document is validated with. Defaults to validation.DefaultRuleSet.
func WithRuleSet(ruleSet *validation.RuleSet) Option {
	return func(o *options) {
		o.ruleSet = ruleSet
	}
}

// WithSkipValidation disables the validation pass.
func WithSkipValidation() Option {
	return func(o *options) {
		o.skipValidation = true
	}
}

// WithReferenceResolution sets which references are resolved. Defaults to local references only.
func WithReferenceResolution(mode references.ResolutionMode) Option {
	return func(o *options) {
		o.mode = mode
	}
}

// WithBaseLocation sets the path or URL of the document, used to locate relative external references.
func WithBaseLocation(location string) Option {
	return func(o *options) {
		o.baseLocation = location
	}
}

// WithVirtualFS sets the filesystem external file references are read from.
func WithVirtualFS(fs system.VirtualFS) Option {
	return func(o *options) {
		o.fs = fs
	}
}

// WithHTTPClient sets the client external URL references are fetched with.
func WithHTTPClient(client system.Client) Option {
	return func(o *options) {
		o.client = client
	}
}

// WithFetcher replaces the fetcher of external documents. It takes precedence over WithVirtualFS
// and WithHTTPClient.
func WithFetcher(fetcher references.Fetcher) Option {
	return func(o *options) {
		o.fetcher = fetcher
	}
}

// WithExtensionParser registers a parser for the extension named key.
func WithExtensionParser(key string, parser ExtensionParser) Option {
	return func(o *options) {
		o.extensions[key] = parser
	}
}

// WithLogger sets the logger used for debug output of the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
