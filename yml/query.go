package yml

import (
	"fmt"

	"github.com/speakeasy-api/jsonpath/pkg/jsonpath"
	"github.com/speakeasy-api/jsonpath/pkg/jsonpath/config"
	"github.com/vmware-labs/yaml-jsonpath/pkg/yamlpath"
	"gopkg.in/yaml.v3"
)

// Queryable runs a compiled JSONPath expression against a node tree.
type Queryable interface {
	Query(root *yaml.Node) []*yaml.Node
}

type rfcQueryable struct {
	path *jsonpath.JSONPath
}

func (q rfcQueryable) Query(root *yaml.Node) []*yaml.Node {
	return q.path.Query(root)
}

type legacyQueryable struct {
	path *yamlpath.Path
}

func (q legacyQueryable) Query(root *yaml.Node) []*yaml.Node {
	// errors aren't actually possible from yamlpath.
	result, _ := q.path.Find(root)
	return result
}

// NewQuery compiles expr as an RFC 9535 JSONPath. Expressions the RFC implementation rejects are
// retried with the legacy yamlpath dialect.
func NewQuery(expr string) (Queryable, error) {
	path, err := jsonpath.NewPath(expr, config.WithPropertyNameExtension())
	if err == nil {
		return rfcQueryable{path: path}, nil
	}

	legacy, legacyErr := yamlpath.NewPath(expr)
	if legacyErr != nil {
		return nil, fmt.Errorf("invalid jsonpath %q: %w", expr, err)
	}

	return legacyQueryable{path: legacy}, nil
}

// Query compiles and runs expr against root.
func Query(root *yaml.Node, expr string) ([]*yaml.Node, error) {
	q, err := NewQuery(expr)
	if err != nil {
		return nil, err
	}
	return q.Query(root), nil
}
