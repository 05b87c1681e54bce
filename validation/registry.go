package validation

import (
	"fmt"
	"slices"
	"sort"
	"sync"
)

// Registry holds registered rules and named rulesets.
type Registry struct {
	rules    map[string]*Rule
	order    []string
	rulesets map[string][]string // ruleset name -> rule IDs
}

// NewRegistry creates a new rule registry
func NewRegistry() *Registry {
	return &Registry{
		rules:    make(map[string]*Rule),
		rulesets: make(map[string][]string),
	}
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	r := NewRegistry()
	for _, rule := range defaultRules() {
		r.Register(rule)
	}
	for _, rule := range StrictRules() {
		r.Register(rule)
	}

	defaults := make([]string, 0, len(defaultRules()))
	for _, rule := range defaultRules() {
		defaults = append(defaults, rule.ID)
	}
	strict := slices.Clone(defaults)
	for _, rule := range StrictRules() {
		strict = append(strict, rule.ID)
	}

	if err := r.RegisterRuleset("default", defaults); err != nil {
		panic(err)
	}
	if err := r.RegisterRuleset("strict", strict); err != nil {
		panic(err)
	}
	return r
})

// DefaultRegistry returns the registry of the built-in rules with the "default" and "strict"
// rulesets.
func DefaultRegistry() *Registry {
	return defaultRegistry()
}

// Register registers a rule, replacing any rule with the same ID.
func (r *Registry) Register(rule *Rule) {
	if _, exists := r.rules[rule.ID]; !exists {
		r.order = append(r.order, rule.ID)
	}
	r.rules[rule.ID] = rule
}

// RegisterRuleset registers a ruleset
func (r *Registry) RegisterRuleset(name string, ruleIDs []string) error {
	if _, exists := r.rulesets[name]; exists || name == "all" {
		return fmt.Errorf("ruleset %q already registered", name)
	}

	for _, id := range ruleIDs {
		if _, exists := r.rules[id]; !exists {
			return fmt.Errorf("rule %q in ruleset %q not found", id, name)
		}
	}

	r.rulesets[name] = ruleIDs
	return nil
}

// GetRule returns a rule by ID
func (r *Registry) GetRule(id string) (*Rule, bool) {
	rule, ok := r.rules[id]
	return rule, ok
}

// GetRuleset returns rule IDs for a ruleset
func (r *Registry) GetRuleset(name string) ([]string, bool) {
	if name == "all" {
		return r.AllRuleIDs(), true
	}
	ids, ok := r.rulesets[name]
	return ids, ok
}

// AllRules returns all registered rules in registration order
func (r *Registry) AllRules() []*Rule {
	rules := make([]*Rule, 0, len(r.order))
	for _, id := range r.order {
		rules = append(rules, r.rules[id])
	}
	return rules
}

// AllRuleIDs returns all registered rule IDs
func (r *Registry) AllRuleIDs() []string {
	ids := slices.Clone(r.order)
	sort.Strings(ids)
	return ids
}

// AllRulesets returns all registered ruleset names
func (r *Registry) AllRulesets() []string {
	names := make([]string, 0, len(r.rulesets)+1)
	names = append(names, "all")
	for name := range r.rulesets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RulesetsContaining returns names of rulesets that contain the given rule ID
func (r *Registry) RulesetsContaining(ruleID string) []string {
	sets := []string{"all"}
	for name, ids := range r.rulesets {
		if slices.Contains(ids, ruleID) {
			sets = append(sets, name)
		}
	}
	sort.Strings(sets)
	return sets
}

// BuildRuleSet builds the rule set described by cfg. The rules of the extended rulesets are
// enabled, then each rule entry turns a rule on or off. Rules keep their registration order.
func (r *Registry) BuildRuleSet(cfg *Config) (*RuleSet, error) {
	if cfg == nil {
		cfg = NewConfig()
	}

	enabled := map[string]bool{}
	for _, name := range cfg.Extends {
		ids, ok := r.GetRuleset(name)
		if !ok {
			return nil, fmt.Errorf("ruleset %q not found", name)
		}
		for _, id := range ids {
			enabled[id] = true
		}
	}

	for id, rc := range cfg.Rules {
		if _, ok := r.rules[id]; !ok {
			return nil, fmt.Errorf("rule %q not found", id)
		}
		enabled[id] = rc.IsEnabled()
	}

	rules := make([]*Rule, 0, len(enabled))
	for _, id := range r.order {
		if enabled[id] {
			rules = append(rules, r.rules[id])
		}
	}
	return NewRuleSet(rules...), nil
}
