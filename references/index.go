package references

// Index maps component identities to the objects declared for them in a document.
type Index struct {
	entries map[Type]map[string]any
}

func NewIndex() *Index {
	return &Index{entries: make(map[Type]map[string]any)}
}

// Register records obj as the component (typ, id). The first registration wins and later
// ones return false.
func (i *Index) Register(typ Type, id string, obj any) bool {
	byID, ok := i.entries[typ]
	if !ok {
		byID = make(map[string]any)
		i.entries[typ] = byID
	}
	if _, exists := byID[id]; exists {
		return false
	}
	byID[id] = obj
	return true
}

func (i *Index) Lookup(typ Type, id string) (any, bool) {
	if i == nil {
		return nil, false
	}
	obj, ok := i.entries[typ][id]
	return obj, ok
}

// Len returns the number of registered components of typ.
func (i *Index) Len(typ Type) int {
	if i == nil {
		return 0
	}
	return len(i.entries[typ])
}
