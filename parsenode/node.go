package parsenode

import (
	"fmt"
	"strings"

	"github.com/speakeasy-api/apireader/diagnostics"
	"github.com/speakeasy-api/apireader/json"
	"github.com/speakeasy-api/apireader/yml"
	"gopkg.in/yaml.v3"
)

// Node is one of *MapNode, *ListNode or *ValueNode.
type Node interface {
	Context() *Context
	// YAML returns the underlying yaml node.
	YAML() *yaml.Node
	// CheckMapNode returns the node as a map. Any other node records a diagnostic naming the
	// expected section and returns false.
	CheckMapNode(name string) (*MapNode, bool)
	// GetRaw returns the scalar text of value nodes and a JSON rendering of maps and lists.
	GetRaw() string
	// GetScalarValue returns the scalar text of value nodes. Other nodes record a diagnostic and return "".
	GetScalarValue() string
	// ToValue converts the node into plain Go values.
	ToValue() any

	isNode()
}

type baseNode struct {
	ctx *Context
	raw *yaml.Node
}

func (n *baseNode) Context() *Context { return n.ctx }
func (n *baseNode) YAML() *yaml.Node { return n.raw }
func (n *baseNode) ToValue() any { return yml.ToValue(n.raw) }
func (n *baseNode) isNode() {}

func (n *baseNode) GetRaw() string {
	data, err := json.Marshal(n.raw)
	if err != nil {
		return ""
	}
	return string(data)
}

// Create wraps raw in the node variant matching its shape. Document and alias nodes are
// unwrapped and merge keys expanded. A nil or empty raw node becomes a null value node.
func Create(ctx *Context, raw *yaml.Node) Node {
	resolved := yml.Unwrap(raw)
	if resolved == nil || resolved.Kind == 0 {
		return &ValueNode{baseNode: baseNode{ctx: ctx, raw: &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null"}}}
	}

	switch resolved.Kind {
	case yaml.MappingNode:
		return newMapNode(ctx, resolved)
	case yaml.SequenceNode:
		return &ListNode{baseNode: baseNode{ctx: ctx, raw: resolved}}
	default:
		return &ValueNode{baseNode: baseNode{ctx: ctx, raw: resolved}}
	}
}

// property is a key/value pair of a MapNode.
type property struct {
	Key     string
	KeyNode *yaml.Node
	raw     *yaml.Node
	node    Node
}

// MapNode is a mapping with its keys in document order.
type MapNode struct {
	baseNode
	properties []property
	byKey      map[string]int
}

var _ Node = (*MapNode)(nil)

func newMapNode(ctx *Context, raw *yaml.Node) *MapNode {
	m := &MapNode{
		baseNode: baseNode{ctx: ctx, raw: raw},
		byKey:    make(map[string]int),
	}

	content := yml.ResolveMergeKeys(raw.Content)
	for i := 0; i+1 < len(content); i += 2 {
		keyNode := yml.ResolveAlias(content[i])
		if keyNode == nil || keyNode.Kind != yaml.ScalarNode {
			ctx.AddError(m, diagnostics.CodeInvalidNode, fmt.Sprintf("map keys must be scalars at %s", ctx.GetLocation()))
			continue
		}

		key := keyNode.Value
		if _, exists := m.byKey[key]; exists {
			ctx.AddError(m, diagnostics.CodeDuplicateKey, fmt.Sprintf("duplicate key %s at %s", key, ctx.GetLocation()))
			continue
		}

		m.byKey[key] = len(m.properties)
		m.properties = append(m.properties, property{Key: key, KeyNode: keyNode, raw: content[i+1]})
	}

	return m
}

func (m *MapNode) CheckMapNode(string) (*MapNode, bool) {
	return m, true
}

func (m *MapNode) GetScalarValue() string {
	m.ctx.AddError(m, diagnostics.CodeInvalidNode, fmt.Sprintf("expected scalar value, found map at %s", m.ctx.GetLocation()))
	return ""
}

// Len returns the number of properties.
func (m *MapNode) Len() int {
	return len(m.properties)
}

// Keys returns the property keys in document order.
func (m *MapNode) Keys() []string {
	keys := make([]string, 0, len(m.properties))
	for _, p := range m.properties {
		keys = append(keys, p.Key)
	}
	return keys
}

// Has reports whether key is present.
func (m *MapNode) Has(key string) bool {
	_, ok := m.byKey[key]
	return ok
}

// Get returns the node for key. A value node is created on first access, so diagnostics raised
// while creating it are located at the caller's current path and recorded once.
func (m *MapNode) Get(key string) (Node, bool) {
	i, ok := m.byKey[key]
	if !ok {
		return nil, false
	}
	return m.child(i), true
}

func (m *MapNode) child(i int) Node {
	p := &m.properties[i]
	if p.node == nil {
		p.node = Create(m.ctx, p.raw)
	}
	return p.node
}

// GetScalar returns the scalar text of key, or "" when the key is missing.
func (m *MapNode) GetScalar(key string) (string, bool) {
	i, ok := m.byKey[key]
	if !ok {
		return "", false
	}
	raw := yml.Unwrap(m.properties[i].raw)
	if raw == nil || raw.Kind != yaml.ScalarNode {
		return "", false
	}
	return raw.Value, true
}

// GetReferencePointer returns the value of a $ref property.
func (m *MapNode) GetReferencePointer() (string, bool) {
	ref, ok := m.GetScalar("$ref")
	if !ok || strings.TrimSpace(ref) == "" {
		return "", false
	}
	return ref, true
}

// Each calls fn for every property in document order with the property key entered on the path.
func (m *MapNode) Each(fn func(key string, value Node)) {
	for i, p := range m.properties {
		m.ctx.Enter(p.Key)
		fn(p.Key, m.child(i))
		m.ctx.Exit()
	}
}

// ListNode is a sequence.
type ListNode struct {
	baseNode
}

var _ Node = (*ListNode)(nil)

func (l *ListNode) CheckMapNode(name string) (*MapNode, bool) {
	l.ctx.AddError(l, diagnostics.CodeInvalidNode, fmt.Sprintf("%s must be a map/object at %s", name, l.ctx.GetLocation()))
	return nil, false
}

func (l *ListNode) GetScalarValue() string {
	l.ctx.AddError(l, diagnostics.CodeInvalidNode, fmt.Sprintf("expected scalar value, found list at %s", l.ctx.GetLocation()))
	return ""
}

// Len returns the number of items.
func (l *ListNode) Len() int {
	return len(l.raw.Content)
}

// Each calls fn for every item with its index entered on the path.
func (l *ListNode) Each(fn func(index int, item Node)) {
	for i, raw := range l.raw.Content {
		l.ctx.Enter(fmt.Sprint(i))
		fn(i, Create(l.ctx, raw))
		l.ctx.Exit()
	}
}

// ValueNode is a scalar. Its yaml tag is kept as the type hint.
type ValueNode struct {
	baseNode
}

var _ Node = (*ValueNode)(nil)

func (v *ValueNode) CheckMapNode(name string) (*MapNode, bool) {
	v.ctx.AddError(v, diagnostics.CodeInvalidNode, fmt.Sprintf("%s must be a map/object at %s", name, v.ctx.GetLocation()))
	return nil, false
}

func (v *ValueNode) GetRaw() string {
	return v.raw.Value
}

func (v *ValueNode) GetScalarValue() string {
	return v.raw.Value
}

// Tag returns the short yaml tag such as !!str or !!int.
func (v *ValueNode) Tag() string {
	return v.raw.ShortTag()
}

// IsNull reports whether the value is an explicit or implicit null.
func (v *ValueNode) IsNull() bool {
	return v.raw.ShortTag() == "!!null"
}
