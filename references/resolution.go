package references

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/speakeasy-api/apireader/diagnostics"
	"github.com/speakeasy-api/apireader/internal/utils"
	"github.com/speakeasy-api/apireader/jsonpointer"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// ResolutionMode controls which references are resolved.
type ResolutionMode int

const (
	// ResolveLocal resolves references within the document only.
	ResolveLocal ResolutionMode = iota
	// ResolveNone leaves every placeholder unresolved.
	ResolveNone
	// ResolveAll resolves local and external references.
	ResolveAll
)

const prefetchConcurrency = 4

// ExternalLoader builds the model object of kind typ from a node of an external document.
// Placeholders found while building are registered with the resolver against resource.
type ExternalLoader interface {
	LoadExternal(ctx context.Context, resource string, pointer jsonpointer.JSONPointer, typ Type, node *yaml.Node) (any, error)
}

type pendingRef struct {
	placeholder Placeholder
	location    string
	base        string
}

type targetKey struct {
	resource string
	typ      Type
	id       string
}

// Resolver collects placeholders during the read and wires them to their targets afterwards.
type Resolver struct {
	index   *Index
	diags   *diagnostics.List
	mode    ResolutionMode
	fetcher Fetcher
	loader  ExternalLoader
	logger  *slog.Logger

	queue   []*pendingRef
	pending map[Placeholder]*pendingRef
	built   map[targetKey]any
	docs    map[string]*yaml.Node
	skipped map[string]struct{}
}

var _ Sink = (*Resolver)(nil)

type ResolverOption func(r *Resolver)

func WithMode(mode ResolutionMode) ResolverOption {
	return func(r *Resolver) {
		r.mode = mode
	}
}

func WithFetcher(fetcher Fetcher) ResolverOption {
	return func(r *Resolver) {
		r.fetcher = fetcher
	}
}

func WithExternalLoader(loader ExternalLoader) ResolverOption {
	return func(r *Resolver) {
		r.loader = loader
	}
}

func WithLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// NewResolver creates a resolver looking local references up in index and reporting into diags.
func NewResolver(index *Index, diags *diagnostics.List, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		index:   index,
		diags:   diags,
		logger:  slog.New(slog.DiscardHandler),
		pending: make(map[Placeholder]*pendingRef),
		built:   make(map[targetKey]any),
		docs:    make(map[string]*yaml.Node),
		skipped: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.fetcher == nil {
		r.fetcher = NewFetcher(nil, nil)
	}
	return r
}

// RegisterPending queues p for resolution. location is where p was found and base is the location
// of the document containing it, used to resolve relative external resources.
func (r *Resolver) RegisterPending(p Placeholder, location, base string) {
	if p == nil || p.GetReference() == nil {
		return
	}
	if _, ok := r.pending[p]; ok {
		return
	}
	pr := &pendingRef{placeholder: p, location: location, base: base}
	r.pending[p] = pr
	r.queue = append(r.queue, pr)
}

// Pending returns the number of queued placeholders.
func (r *Resolver) Pending() int {
	return len(r.queue)
}

// Prefetch fetches the given external documents concurrently so that ResolveAll does not wait on
// them one at a time. Failures are ignored here and reported when the references are resolved.
func (r *Resolver) Prefetch(ctx context.Context, base string, resources []string) {
	if r.mode != ResolveAll || len(resources) == 0 {
		return
	}

	seen := make(map[string]struct{}, len(resources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(prefetchConcurrency)

	for _, resource := range resources {
		abs, err := utils.JoinReference(base, resource)
		if err != nil {
			continue
		}
		if _, ok := seen[abs]; ok {
			continue
		}
		seen[abs] = struct{}{}

		g.Go(func() error {
			if _, err := r.fetcher.Fetch(gctx, abs); err != nil {
				r.logger.Debug("prefetch failed", slog.String("location", abs), slog.Any("error", err))
			}
			return nil
		})
	}

	_ = g.Wait()
}

// ResolveAll resolves every queued placeholder in registration order. Placeholders registered
// while resolving, such as those inside external fragments, are processed in the same pass.
func (r *Resolver) ResolveAll(ctx context.Context) {
	if r.mode == ResolveNone {
		return
	}

	resolved, unresolved := 0, 0
	for i := 0; i < len(r.queue); i++ {
		if _, ok := r.resolve(ctx, r.queue[i]); ok {
			resolved++
		} else {
			unresolved++
		}
	}

	r.logger.Debug("references resolved", slog.Int("resolved", resolved), slog.Int("unresolved", unresolved))
}

// Resolve resolves a single placeholder and returns its target. Resolving an already resolved
// placeholder returns the same target.
func (r *Resolver) Resolve(ctx context.Context, p Placeholder) (any, bool) {
	if p == nil || p.GetReference() == nil {
		return nil, false
	}
	if p.IsResolved() {
		return p.ResolvedTarget(), true
	}

	pr, ok := r.pending[p]
	if !ok {
		pr = &pendingRef{placeholder: p}
	}
	return r.resolve(ctx, pr)
}

func (r *Resolver) resolve(ctx context.Context, pr *pendingRef) (any, bool) {
	p := pr.placeholder
	if p.IsResolved() {
		return p.ResolvedTarget(), true
	}

	ref := *p.GetReference()
	if ref.Type == TypeUnspecified {
		ref.Type = p.ReferenceType()
	}

	if !ref.IsExternal() {
		return r.resolveLocal(pr, ref)
	}

	if r.mode != ResolveAll {
		if r.mode == ResolveLocal {
			r.skipExternal(pr, ref)
		}
		return nil, false
	}

	return r.resolveExternal(ctx, pr, ref)
}

// skipExternal reports an external resource left unloaded, once per resource.
func (r *Resolver) skipExternal(pr *pendingRef, ref Reference) {
	abs := ref.ExternalResource
	if joined, err := utils.JoinReference(pr.base, ref.ExternalResource); err == nil {
		abs = joined
	}
	if _, ok := r.skipped[abs]; ok {
		return
	}
	r.skipped[abs] = struct{}{}
	r.addError(pr, diagnostics.CodeUnsupportedReference, fmt.Sprintf("external resource %s referenced at %s was not loaded", abs, pr.location))
}

func (r *Resolver) resolveLocal(pr *pendingRef, ref Reference) (any, bool) {
	target, ok := r.index.Lookup(ref.Type, ref.ID)
	if !ok {
		// Undeclared tags are legal and stay as name only placeholders.
		if ref.Type == TypeTag {
			return nil, false
		}
		r.addError(pr, diagnostics.CodeUnresolvedReference, fmt.Sprintf("unresolved reference %s at %s", ref, pr.location))
		return nil, false
	}

	return r.bind(pr, ref, target)
}

func (r *Resolver) resolveExternal(ctx context.Context, pr *pendingRef, ref Reference) (any, bool) {
	// references back into the document being read are already absolute
	abs := ref.ExternalResource
	if abs != pr.base {
		joined, err := utils.JoinReference(pr.base, ref.ExternalResource)
		if err != nil {
			r.addError(pr, diagnostics.CodeInvalidReference, fmt.Sprintf("invalid external resource %s at %s: %s", ref.ExternalResource, pr.location, err.Error()))
			return nil, false
		}
		abs = joined
	}

	key := targetKey{resource: abs, typ: ref.Type, id: ref.ID}
	if target, ok := r.built[key]; ok {
		return r.bind(pr, ref, target)
	}

	if r.loader == nil {
		r.addError(pr, diagnostics.CodeUnsupportedReference, fmt.Sprintf("external reference %s at %s cannot be loaded", ref, pr.location))
		return nil, false
	}

	root, err := r.document(ctx, abs)
	if err != nil {
		r.addError(pr, diagnostics.CodeExternalFetch, fmt.Sprintf("failed to load %s referenced at %s: %s", abs, pr.location, err.Error()))
		return nil, false
	}

	pointer := jsonpointer.JSONPointer("")
	if ref.ID != "" {
		pointer = jsonpointer.JSONPointer("/" + ref.ID)
	}

	node, err := jsonpointer.GetNode(root, pointer)
	if err != nil {
		r.addError(pr, diagnostics.CodeUnresolvedReference, fmt.Sprintf("unresolved reference %s at %s: %s", ref, pr.location, err.Error()))
		return nil, false
	}

	target, err := r.loader.LoadExternal(ctx, abs, pointer, ref.Type, node)
	if err != nil {
		r.addError(pr, diagnostics.CodeUnresolvedReference, fmt.Sprintf("unresolved reference %s at %s: %s", ref, pr.location, err.Error()))
		return nil, false
	}
	r.built[key] = target

	return r.bind(pr, ref, target)
}

func (r *Resolver) bind(pr *pendingRef, ref Reference, target any) (any, bool) {
	if !pr.placeholder.Bind(target) {
		r.addError(pr, diagnostics.CodeUnresolvedReference, fmt.Sprintf("reference %s at %s does not point at a %s", ref, pr.location, pr.placeholder.ReferenceType()))
		return nil, false
	}
	return target, true
}

func (r *Resolver) document(ctx context.Context, location string) (*yaml.Node, error) {
	if root, ok := r.docs[location]; ok {
		return root, nil
	}

	r.logger.Debug("fetching external document", slog.String("location", location))

	data, err := r.fetcher.Fetch(ctx, location)
	if err != nil {
		return nil, err
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	r.docs[location] = &root

	return &root, nil
}

func (r *Resolver) addError(pr *pendingRef, code, msg string) {
	r.diags.Add(&diagnostics.Error{
		Code:    code,
		Message: msg,
		Pointer: pr.location,
	})
}
