// Package parsenode wraps yaml.v3 nodes in a small tree of map, list and value nodes with typed
// extraction helpers that record diagnostics instead of failing.
package parsenode

import (
	"github.com/speakeasy-api/apireader/diagnostics"
	"github.com/speakeasy-api/apireader/jsonpointer"
	"github.com/speakeasy-api/apireader/references"
	"gopkg.in/yaml.v3"
)

// Context is shared by every node created for one document. It tracks where the walk currently is
// and collects the diagnostics found so far.
type Context struct {
	// Root is the raw document the nodes were created from.
	Root *yaml.Node
	// Generation is the detected description generation marker, e.g. "2.0" or "3.0.3".
	Generation string
	// BaseLocation is the location of the document being read, used to resolve relative references.
	BaseLocation string
	// External is set when the context reads a fragment of a referenced document.
	External bool
	// Index receives the components declared in the document. Nil for external fragments.
	Index *references.Index
	// Sink receives every placeholder created while reading.
	Sink references.Sink

	diags     *diagnostics.List
	path      diagnostics.Path
	baseDepth int
	prefix    string
	temp      map[string]any
}

// NewContext creates a context reporting into diags. diags must not be nil.
func NewContext(root *yaml.Node, diags *diagnostics.List) *Context {
	if diags == nil {
		panic("parsenode: diagnostics list is required")
	}
	return &Context{
		Root:  root,
		diags: diags,
		temp:  make(map[string]any),
	}
}

// Nested creates a context for reading a fragment of the external document at location.
// Diagnostics go to the same list and are located relative to location.
func (c *Context) Nested(root *yaml.Node, location string, pointer jsonpointer.JSONPointer) *Context {
	nested := &Context{
		Root:         root,
		Generation:   c.Generation,
		BaseLocation: location,
		External:     true,
		Sink:         c.Sink,
		diags:        c.diags,
		prefix:       location,
		temp:         make(map[string]any),
	}

	parts, _ := pointer.Parts()
	for _, part := range parts {
		nested.path.Enter(part)
	}
	nested.baseDepth = len(parts)

	return nested
}

func (c *Context) Enter(segment string) {
	c.path.Enter(segment)
}

func (c *Context) Exit() {
	c.path.Exit()
}

// Depth returns the number of segments entered since the context was created.
func (c *Context) Depth() int {
	return c.path.Depth() - c.baseDepth
}

// GetLocation renders the current path, prefixed by the document location for external fragments.
func (c *Context) GetLocation() string {
	return c.prefix + c.path.String()
}

// AddError records a diagnostic at the current location. node may be nil.
func (c *Context) AddError(node Node, code, message string) {
	err := &diagnostics.Error{
		Code:    code,
		Message: message,
		Pointer: c.GetLocation(),
	}
	if node != nil && node.YAML() != nil {
		err.Line = node.YAML().Line
		err.Column = node.YAML().Column
	}
	c.diags.Add(err)
}

// Diagnostics returns the list the context reports into.
func (c *Context) Diagnostics() *diagnostics.List {
	return c.diags
}

// SetTempStorage stores a value for later stages of the same walk.
func (c *Context) SetTempStorage(key string, value any) {
	c.temp[key] = value
}

func (c *Context) GetTempStorage(key string) any {
	return c.temp[key]
}

// RegisterPending hands a placeholder to the sink together with the current location.
func (c *Context) RegisterPending(p references.Placeholder) {
	if c.Sink == nil {
		return
	}
	c.Sink.RegisterPending(p, c.GetLocation(), c.BaseLocation)
}

// RegisterComponent records obj in the index. It does nothing for external fragments.
func (c *Context) RegisterComponent(typ references.Type, id string, obj any) {
	if c.Index == nil || c.External {
		return
	}
	c.Index.Register(typ, id, obj)
}
