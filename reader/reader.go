// Package reader ingests Swagger 2.0 and OpenAPI 3.0 documents into the model, resolving references
// and validating the result. Problems with the document are reported as diagnostics; errors are
// only returned when the input cannot be read at all.
package reader

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"slices"

	"github.com/speakeasy-api/apireader/diagnostics"
	"github.com/speakeasy-api/apireader/errors"
	"github.com/speakeasy-api/apireader/internal/utils"
	"github.com/speakeasy-api/apireader/internal/version"
	"github.com/speakeasy-api/apireader/jsonpointer"
	"github.com/speakeasy-api/apireader/model"
	"github.com/speakeasy-api/apireader/parsenode"
	"github.com/speakeasy-api/apireader/references"
	"github.com/speakeasy-api/apireader/system"
	"github.com/speakeasy-api/apireader/validation"
	"github.com/speakeasy-api/apireader/yml"
	"gopkg.in/yaml.v3"
)

const (
	// ErrInvalidDocument is returned when the input is not a YAML or JSON mapping.
	ErrInvalidDocument = errors.Error("invalid document")
	// ErrUnsupportedGeneration is returned when the document has no swagger or openapi marker, or
	// declares a version that is not supported.
	ErrUnsupportedGeneration = errors.Error("unsupported generation")
)

// Generation identifies the description format a document was written in.
type Generation int

const (
	GenerationUnknown Generation = iota
	// GenerationLegacy is Swagger 2.0.
	GenerationLegacy
	// GenerationCurrent is OpenAPI 3.0.x.
	GenerationCurrent
)

func (g Generation) String() string {
	switch g {
	case GenerationLegacy:
		return "swagger 2.0"
	case GenerationCurrent:
		return "openapi 3.0"
	default:
		return "unknown"
	}
}

// Result is the outcome of reading a document. Parse diagnostics and validation errors are kept apart.
type Result struct {
	Document   *model.Document
	Generation Generation
	// Errors are the diagnostics found while reading and resolving the document.
	Errors []*diagnostics.Error
	// ValidationErrors are the rule violations found in the finished document.
	ValidationErrors []*validation.Error
}

// Read reads a document from r.
func Read(ctx context.Context, r io.Reader, opts ...Option) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrInvalidDocument.Wrap(err)
	}
	return ReadBytes(ctx, data, opts...)
}

// ReadBytes reads a document from data.
func ReadBytes(ctx context.Context, data []byte, opts ...Option) (*Result, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&root); err != nil {
		return nil, ErrInvalidDocument.Wrap(err)
	}
	return ReadNode(ctx, &root, opts...)
}

// ReadFile reads the document at path from fsys. External file references are read from fsys
// relative to path unless WithVirtualFS or WithFetcher says otherwise.
func ReadFile(ctx context.Context, fsys system.VirtualFS, path string, opts ...Option) (*Result, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, ErrInvalidDocument.Wrap(err)
	}
	opts = append([]Option{WithVirtualFS(fsys), WithBaseLocation(path)}, opts...)
	return ReadBytes(ctx, data, opts...)
}

// ReadNode reads a document from an already parsed yaml tree.
func ReadNode(ctx context.Context, root *yaml.Node, opts ...Option) (*Result, error) {
	o := newOptions(opts)

	content := yml.Unwrap(root)
	if content == nil || content.Kind != yaml.MappingNode {
		return nil, ErrInvalidDocument.Wrapf("expected a mapping at the document root")
	}

	generation, marker, err := detectGeneration(content)
	if err != nil {
		return nil, err
	}
	o.logger.Debug("detected generation", slog.String("generation", generation.String()), slog.String("marker", marker))

	var diags diagnostics.List
	index := references.NewIndex()

	svc := newVersionService(generation, o.extensions)
	loader := &externalLoader{svc: svc}

	resolver := references.NewResolver(index, &diags,
		references.WithMode(o.mode),
		references.WithFetcher(o.fetcher),
		references.WithExternalLoader(loader),
		references.WithLogger(o.logger),
	)

	pctx := parsenode.NewContext(root, &diags)
	pctx.Generation = marker
	pctx.BaseLocation = o.baseLocation
	pctx.Index = index
	pctx.Sink = resolver
	loader.parent = pctx

	doc := svc.LoadDocument(parsenode.Create(pctx, root))

	if o.mode == references.ResolveAll {
		resolver.Prefetch(ctx, o.baseLocation, externalResources(content))
	}
	resolver.ResolveAll(ctx)
	svc.Finish()

	result := &Result{
		Document:   doc,
		Generation: generation,
		Errors:     diags.All(),
	}

	if !o.skipValidation {
		result.ValidationErrors = validation.Validate(doc, o.ruleSet)
	}

	o.logger.Debug("read document",
		slog.Int("errors", len(result.Errors)),
		slog.Int("validationErrors", len(result.ValidationErrors)),
	)

	return result, nil
}

func newVersionService(generation Generation, extensions map[string]ExtensionParser) VersionService {
	if generation == GenerationLegacy {
		return newLegacyService(extensions)
	}
	return newCurrentService(extensions)
}

var currentVersion = version.Version{Major: 3, Minor: 0}

// detectGeneration reads the swagger or openapi marker of the root mapping.
func detectGeneration(root *yaml.Node) (Generation, string, error) {
	content := yml.ResolveMergeKeys(root.Content)
	for i := 0; i+1 < len(content); i += 2 {
		key := yml.ResolveAlias(content[i])
		value := yml.ResolveAlias(content[i+1])
		if key == nil || value == nil || value.Kind != yaml.ScalarNode {
			continue
		}

		switch key.Value {
		case "swagger":
			if value.Value == "2.0" {
				return GenerationLegacy, value.Value, nil
			}
			return GenerationUnknown, value.Value, ErrUnsupportedGeneration.Wrapf("swagger %s", value.Value)
		case "openapi":
			if v, err := version.Parse(value.Value); err == nil && v.SameMinor(currentVersion) {
				return GenerationCurrent, value.Value, nil
			}
			return GenerationUnknown, value.Value, ErrUnsupportedGeneration.Wrapf("openapi %s", value.Value)
		}
	}

	return GenerationUnknown, "", ErrUnsupportedGeneration.Wrapf("no swagger or openapi version marker")
}

// externalResources lists the distinct documents referenced by $ref values, in document order.
func externalResources(root *yaml.Node) []string {
	nodes, err := yml.Query(root, "$..['$ref']")
	if err != nil {
		return nil
	}

	var out []string
	for _, n := range nodes {
		if n.Kind != yaml.ScalarNode {
			continue
		}
		resource, _ := utils.SplitReference(n.Value)
		if resource == "" || slices.Contains(out, resource) {
			continue
		}
		out = append(out, resource)
	}
	return out
}

// externalLoader builds objects from fragments of external documents with the loaders of the
// generation being read.
type externalLoader struct {
	svc    VersionService
	parent *parsenode.Context
}

var _ references.ExternalLoader = (*externalLoader)(nil)

func (l *externalLoader) LoadExternal(_ context.Context, resource string, pointer jsonpointer.JSONPointer, typ references.Type, node *yaml.Node) (any, error) {
	load := l.svc.Loader(typ)
	if load == nil {
		return nil, fmt.Errorf("%s references cannot be loaded from %s", typ, resource)
	}

	nested := l.parent.Nested(node, resource, pointer)
	obj := load(parsenode.Create(nested, node))
	if obj == nil {
		return nil, fmt.Errorf("%s%s is not a %s", resource, pointer, typ)
	}
	return obj, nil
}
