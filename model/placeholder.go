package model

import (
	"github.com/speakeasy-api/apireader/references"
)

const maxReferenceChain = 64

// Placeholder is embedded in referenceable objects. When Reference is set the object stands in
// for the referenced target, which is bound once the reference is resolved.
type Placeholder[T any] struct {
	// Reference is set when the object was read from a $ref.
	Reference *references.Reference

	identity *references.Reference
	target   *T
}

// GetReference returns the reference or nil for inline objects.
func (p *Placeholder[T]) GetReference() *references.Reference {
	if p == nil {
		return nil
	}
	return p.Reference
}

// IsReference reports whether the object is a reference placeholder.
func (p *Placeholder[T]) IsReference() bool {
	return p != nil && p.Reference != nil
}

// SetReference marks the object as a placeholder for ref.
func (p *Placeholder[T]) SetReference(ref references.Reference) {
	p.Reference = &ref
}

func (p *Placeholder[T]) IsResolved() bool {
	return p != nil && p.target != nil
}

// Target returns the bound target or nil while unresolved.
func (p *Placeholder[T]) Target() *T {
	if p == nil {
		return nil
	}
	return p.target
}

func (p *Placeholder[T]) ResolvedTarget() any {
	if p == nil || p.target == nil {
		return nil
	}
	return p.target
}

// Bind binds the placeholder to target. Targets of another type are rejected.
func (p *Placeholder[T]) Bind(target any) bool {
	t, ok := target.(*T)
	if !ok || t == nil {
		return false
	}
	p.target = t
	return true
}

// SetIdentity records the component identity of an object declared in a components section.
func (p *Placeholder[T]) SetIdentity(ref references.Reference) {
	p.identity = &ref
}

// Identity returns the component identity or nil for objects not declared as components.
func (p *Placeholder[T]) Identity() *references.Reference {
	if p == nil {
		return nil
	}
	return p.identity
}

func (p *Placeholder[T]) placeholder() *Placeholder[T] {
	return p
}

type referenceable[T any] interface {
	*T
	placeholder() *Placeholder[T]
}

// resolve follows a chain of references and returns the inline object it ends at. It returns nil
// when the chain ends at an unresolved reference or is cyclic.
func resolve[T any, P referenceable[T]](obj P) *T {
	for range maxReferenceChain {
		if obj == nil {
			return nil
		}
		ph := obj.placeholder()
		if ph.Reference == nil {
			return (*T)(obj)
		}
		obj = P(ph.target)
	}
	return nil
}

func referenceUse(p references.Placeholder) *ReferenceUse {
	return &ReferenceUse{
		Reference: *p.GetReference(),
		Type:      p.ReferenceType(),
		Resolved:  p.IsResolved(),
	}
}
