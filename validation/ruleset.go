package validation

import (
	"slices"
	"sync"

	"github.com/speakeasy-api/apireader/model"
)

// Rule is a check run against every visited object of one kind.
type Rule struct {
	ID   string
	Kind model.Kind

	check func(ctx Context, obj model.Object)
}

// NewRule creates a rule for the objects of type T. T must be a pointer to a model type, the kind
// of the rule is the kind of T. fn may be called with a nil T.
func NewRule[T model.Object](id string, fn func(ctx Context, obj T)) *Rule {
	var zero T
	return &Rule{
		ID:   id,
		Kind: zero.Kind(),
		check: func(ctx Context, obj model.Object) {
			typed, ok := obj.(T)
			if !ok {
				return
			}
			fn(ctx, typed)
		},
	}
}

// RuleSet is an immutable collection of rules indexed by kind. It is safe for concurrent use.
type RuleSet struct {
	rules  []*Rule
	byKind map[model.Kind][]*Rule
}

// NewRuleSet creates a rule set. A rule with the ID of an earlier rule replaces it.
func NewRuleSet(rules ...*Rule) *RuleSet {
	rs := &RuleSet{byKind: map[model.Kind][]*Rule{}}
	for _, rule := range rules {
		if rule == nil {
			continue
		}
		if i := slices.IndexFunc(rs.rules, func(r *Rule) bool { return r.ID == rule.ID }); i >= 0 {
			rs.rules[i] = rule
			continue
		}
		rs.rules = append(rs.rules, rule)
	}
	for _, rule := range rs.rules {
		rs.byKind[rule.Kind] = append(rs.byKind[rule.Kind], rule)
	}
	return rs
}

var defaultRuleSet = sync.OnceValue(func() *RuleSet {
	return NewRuleSet(defaultRules()...)
})

// DefaultRuleSet returns the rules a document is checked with unless configured otherwise. The
// set is built once and shared.
func DefaultRuleSet() *RuleSet {
	return defaultRuleSet()
}

// Rules returns the rules in the order they were added.
func (rs *RuleSet) Rules() []*Rule {
	if rs == nil {
		return nil
	}
	return slices.Clone(rs.rules)
}

// RulesFor returns the rules registered for kind.
func (rs *RuleSet) RulesFor(kind model.Kind) []*Rule {
	if rs == nil {
		return nil
	}
	return rs.byKind[kind]
}

// Rule returns the rule with the given ID.
func (rs *RuleSet) Rule(id string) (*Rule, bool) {
	if rs == nil {
		return nil, false
	}
	for _, rule := range rs.rules {
		if rule.ID == id {
			return rule, true
		}
	}
	return nil, false
}

func (rs *RuleSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.rules)
}

// With returns a new rule set with rules added.
func (rs *RuleSet) With(rules ...*Rule) *RuleSet {
	return NewRuleSet(append(rs.Rules(), rules...)...)
}

// Without returns a new rule set without the rules with the given IDs.
func (rs *RuleSet) Without(ids ...string) *RuleSet {
	kept := slices.DeleteFunc(rs.Rules(), func(r *Rule) bool {
		return slices.Contains(ids, r.ID)
	})
	return NewRuleSet(kept...)
}
