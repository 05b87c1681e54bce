package parsenode

import (
	"fmt"
	"strings"

	"github.com/speakeasy-api/apireader/diagnostics"
	"github.com/speakeasy-api/apireader/references"
	"github.com/speakeasy-api/apireader/sequencedmap"
)

// CreateList maps every item of a list node with fn. Items that are not maps and nodes that are
// not lists record a diagnostic and are skipped.
func CreateList[T any](n Node, fn func(*MapNode) T) []T {
	l, ok := n.(*ListNode)
	if !ok {
		n.Context().AddError(n, diagnostics.CodeInvalidNode, fmt.Sprintf("cannot create list from this type of node at %s", n.Context().GetLocation()))
		return nil
	}

	out := make([]T, 0, l.Len())
	l.Each(func(_ int, item Node) {
		m, ok := item.CheckMapNode("list item")
		if !ok {
			return
		}
		out = append(out, fn(m))
	})
	return out
}

// CreateSimpleList maps every scalar item of a list node with fn.
func CreateSimpleList[T any](n Node, fn func(*ValueNode) T) []T {
	l, ok := n.(*ListNode)
	if !ok {
		n.Context().AddError(n, diagnostics.CodeInvalidNode, fmt.Sprintf("cannot create simple list from this type of node at %s", n.Context().GetLocation()))
		return nil
	}

	out := make([]T, 0, l.Len())
	l.Each(func(_ int, item Node) {
		v, ok := item.(*ValueNode)
		if !ok {
			item.Context().AddError(item, diagnostics.CodeInvalidNode, fmt.Sprintf("expected scalar value at %s", item.Context().GetLocation()))
			return
		}
		out = append(out, fn(v))
	})
	return out
}

// CreateMap maps every value of a map node with fn, keeping document order.
func CreateMap[T any](n Node, fn func(*MapNode) T) *sequencedmap.Map[string, T] {
	return createMap(n, func(_ string, m *MapNode) T { return fn(m) })
}

// Identifiable is implemented by objects that can carry their component identity.
type Identifiable interface {
	SetIdentity(ref references.Reference)
}

// CreateMapWithReference maps every value of a map node with fn, stamps the result with the
// component identity (typ, key) and registers it in the context index.
func CreateMapWithReference[T any](n Node, typ references.Type, fn func(*MapNode) T) *sequencedmap.Map[string, T] {
	return createMap(n, func(key string, m *MapNode) T {
		v := fn(m)
		if identifiable, ok := any(v).(Identifiable); ok {
			identifiable.SetIdentity(references.Reference{Type: typ, ID: key})
		}
		n.Context().RegisterComponent(typ, key, v)
		return v
	})
}

func createMap[T any](n Node, fn func(key string, m *MapNode) T) *sequencedmap.Map[string, T] {
	out := sequencedmap.New[string, T]()

	m, ok := n.(*MapNode)
	if !ok {
		n.Context().AddError(n, diagnostics.CodeInvalidNode, fmt.Sprintf("cannot create map from this type of node at %s", n.Context().GetLocation()))
		return out
	}

	m.Each(func(key string, value Node) {
		vm, ok := value.CheckMapNode(key)
		if !ok {
			return
		}
		out.Set(key, fn(key, vm))
	})
	return out
}

// CreateSimpleMap maps every scalar value of a map node with fn.
func CreateSimpleMap[T any](n Node, fn func(*ValueNode) T) *sequencedmap.Map[string, T] {
	out := sequencedmap.New[string, T]()

	m, ok := n.(*MapNode)
	if !ok {
		n.Context().AddError(n, diagnostics.CodeInvalidNode, fmt.Sprintf("cannot create simple map from this type of node at %s", n.Context().GetLocation()))
		return out
	}

	m.Each(func(key string, value Node) {
		v, ok := value.(*ValueNode)
		if !ok {
			value.Context().AddError(value, diagnostics.CodeInvalidNode, fmt.Sprintf("expected scalar value at %s", value.Context().GetLocation()))
			return
		}
		out.Set(key, fn(v))
	})
	return out
}

// FixedFieldMap maps property names to the handlers that set them on a target.
type FixedFieldMap[T any] map[string]func(target T, node Node)

// PatternField handles every property whose name matches.
type PatternField[T any] struct {
	Match  func(key string) bool
	Handle func(target T, key string, node Node)
}

// PatternFieldMap is tried in order for properties without a fixed handler.
type PatternFieldMap[T any] []PatternField[T]

// IsExtension matches specification extension keys.
func IsExtension(key string) bool {
	return strings.HasPrefix(key, "x-")
}

// ParseMap walks the properties of m in document order, dispatching each to its fixed handler or
// the first matching pattern handler. Unknown properties record a diagnostic.
func ParseMap[T any](m *MapNode, target T, fixed FixedFieldMap[T], patterns PatternFieldMap[T]) {
	if m == nil {
		return
	}

	m.Each(func(key string, value Node) {
		if handler, ok := fixed[key]; ok {
			handler(target, value)
			return
		}

		for _, p := range patterns {
			if p.Match(key) {
				p.Handle(target, key, value)
				return
			}
		}

		m.ctx.AddError(value, diagnostics.CodeInvalidProperty, fmt.Sprintf("%s is not a valid property at %s", key, m.ctx.GetLocation()))
	})
}
