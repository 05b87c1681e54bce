// Package validation checks a model document against a set of rules.
//
// Rules are registered against a model.Kind and run for every object of that kind while the
// document is walked. Errors are located by the JSON pointer of the object being checked.
package validation

import (
	"fmt"

	"github.com/speakeasy-api/apireader/diagnostics"
	"github.com/speakeasy-api/apireader/model"
)

// Error is a rule violation found in a document.
type Error struct {
	// Rule is the ID of the rule that reported the error.
	Rule string
	// Pointer is the location of the offending value, e.g. #/info/contact/email.
	Pointer string
	Message string
}

var _ error = (*Error)(nil)

func (e *Error) Error() string {
	return fmt.Sprintf("[%s] %s", e.Pointer, e.Message)
}

// Context is handed to rules. Errors are located at the current path, which rules may extend with
// Enter and Exit to point into the object being checked.
type Context interface {
	AddError(message string)
	AddErrorf(format string, args ...any)
	Enter(segment string)
	Exit()
	PathString() string
}

// Validator walks a document and runs the rules of a rule set against each visited object.
type Validator struct {
	rules  *RuleSet
	path   diagnostics.Path
	errors []*Error

	// current is the rule being run, recorded on the errors it reports.
	current string
}

var (
	_ model.Visitor = (*Validator)(nil)
	_ Context       = (*Validator)(nil)
)

// NewValidator returns a validator for rules. A nil rule set uses DefaultRuleSet.
func NewValidator(rules *RuleSet) *Validator {
	if rules == nil {
		rules = DefaultRuleSet()
	}
	return &Validator{rules: rules}
}

// Validate walks obj and returns the errors found, in the order the objects were visited.
func Validate(obj model.Visitable, rules *RuleSet) []*Error {
	v := NewValidator(rules)
	v.Validate(obj)
	return v.Errors()
}

// Validate walks obj, adding any errors found to those already collected.
func (v *Validator) Validate(obj model.Visitable) {
	if obj == nil {
		return
	}
	obj.Accept(v)
}

// Errors returns the errors collected so far.
func (v *Validator) Errors() []*Error {
	return v.errors
}

// Depth is the number of path segments currently entered. It is zero between walks.
func (v *Validator) Depth() int {
	return v.path.Depth()
}

// Visit runs the rules registered for the kind of obj.
func (v *Validator) Visit(obj model.Object) {
	if obj == nil {
		return
	}
	for _, rule := range v.rules.RulesFor(obj.Kind()) {
		v.current = rule.ID
		rule.check(v, obj)
	}
	v.current = ""
}

func (v *Validator) Enter(segment string) {
	v.path.Enter(segment)
}

func (v *Validator) Exit() {
	v.path.Exit()
}

func (v *Validator) PathString() string {
	return v.path.String()
}

func (v *Validator) AddError(message string) {
	v.errors = append(v.errors, &Error{
		Rule:    v.current,
		Pointer: v.path.String(),
		Message: message,
	})
}

func (v *Validator) AddErrorf(format string, args ...any) {
	v.AddError(fmt.Sprintf(format, args...))
}
