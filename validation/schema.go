package validation

import (
	"bytes"
	"errors"
	"strings"
	"sync"

	jsValidator "github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"github.com/speakeasy-api/apireader/json"
	"github.com/speakeasy-api/apireader/model"
	"github.com/speakeasy-api/apireader/yml"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

const draft04MetaSchema = "http://json-schema.org/draft-04/schema"

var defaultPrinter = message.NewPrinter(language.English)

var metaSchema = sync.OnceValues(func() (*jsValidator.Schema, error) {
	return jsValidator.NewCompiler().Compile(draft04MetaSchema)
})

// subschemaKeywords hold schemas of their own, which are checked when they are visited.
var subschemaKeywords = map[string]bool{
	"allOf":                true,
	"oneOf":                true,
	"anyOf":                true,
	"not":                  true,
	"items":                true,
	"properties":           true,
	"additionalProperties": true,
}

// SchemaWellFormed checks the keywords of each schema against the draft-04 meta-schema. Only the
// schema's own keywords are checked. Schemas are never evaluated against instances.
var SchemaWellFormed = NewRule(RuleSchemaWellFormed, func(ctx Context, s *model.Schema) {
	if s == nil || s.IsReference() || s.Raw == nil {
		return
	}

	validator, err := metaSchema()
	if err != nil {
		ctx.AddErrorf("schema meta-schema unavailable: %s", err.Error())
		return
	}

	data, err := json.Marshal(shallowSchema(s.Raw))
	if err != nil {
		ctx.AddErrorf("schema is not valid json: %s", err.Error())
		return
	}

	instance, err := jsValidator.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		ctx.AddErrorf("schema is not valid json: %s", err.Error())
		return
	}

	err = validator.Validate(instance)
	if err == nil {
		return
	}

	var validationErr *jsValidator.ValidationError
	if !errors.As(err, &validationErr) {
		ctx.AddErrorf("schema invalid: %s", err.Error())
		return
	}
	reportRootCauses(ctx, validationErr)
})

// shallowSchema copies the mapping of a schema without its subschemas, extensions and the file
// type, which draft-04 does not know.
func shallowSchema(raw *yaml.Node) *yaml.Node {
	raw = yml.Unwrap(raw)
	if raw == nil || raw.Kind != yaml.MappingNode {
		return raw
	}

	out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	content := yml.ResolveMergeKeys(raw.Content)
	for i := 0; i+1 < len(content); i += 2 {
		key := yml.ResolveAlias(content[i])
		value := yml.ResolveAlias(content[i+1])
		if key == nil || value == nil {
			continue
		}
		if subschemaKeywords[key.Value] || strings.HasPrefix(key.Value, "x-") {
			continue
		}
		if key.Value == "type" && value.Kind == yaml.ScalarNode && value.Value == "file" {
			continue
		}
		out.Content = append(out.Content, key, value)
	}
	return out
}

// reportRootCauses reports the leaves of the error tree. A failed anyOf or oneOf is reported as a
// whole since each of its branches fails for a reason of its own.
func reportRootCauses(ctx Context, err *jsValidator.ValidationError) {
	switch err.ErrorKind.(type) {
	case *kind.AnyOf, *kind.OneOf:
		reportCause(ctx, err)
		return
	}
	if len(err.Causes) == 0 {
		reportCause(ctx, err)
		return
	}
	for _, cause := range err.Causes {
		reportRootCauses(ctx, cause)
	}
}

func reportCause(ctx Context, cause *jsValidator.ValidationError) {
	for _, segment := range cause.InstanceLocation {
		ctx.Enter(segment)
	}

	field := strings.Join(cause.InstanceLocation, ".")
	switch k := cause.ErrorKind.(type) {
	case *kind.Type:
		ctx.AddErrorf("schema field %s has the wrong type: %s", field, cause.ErrorKind.LocalizedString(defaultPrinter))
	case *kind.Required:
		ctx.AddErrorf("schema field %s is missing: %s", field, cause.ErrorKind.LocalizedString(defaultPrinter))
	case *kind.AnyOf:
		ctx.AddErrorf("schema field %s matches none of its allowed forms", field)
	case *kind.OneOf:
		if len(k.Subschemas) == 0 {
			ctx.AddErrorf("schema field %s matches none of its allowed forms", field)
		} else {
			ctx.AddErrorf("schema field %s matches more than one of its allowed forms", field)
		}
	default:
		ctx.AddErrorf("schema field %s %s", field, cause.ErrorKind.LocalizedString(defaultPrinter))
	}

	for range cause.InstanceLocation {
		ctx.Exit()
	}
}
