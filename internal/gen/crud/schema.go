package crud

import (
	"fmt"
	"strings"

	"github.com/blueprintkit/blueprint/internal/classify"
	"github.com/blueprintkit/blueprint/internal/config"
	"github.com/blueprintkit/blueprint/internal/fragment"
)

const schemaSkeleton = `// Generated by blueprint. DO NOT EDIT.
import { z } from 'zod';

export const {{.Name.Camel}}Schema = z.object({
{{.Rules}}
});

export const create{{.Name.Pascal}}Schema = {{.Name.Camel}}Schema;

export const update{{.Name.Pascal}}Schema = {{.Name.Camel}}Schema.partial();

export type {{.Name.Pascal}}SchemaType = z.infer<typeof {{.Name.Camel}}Schema>;
`

// zodBase returns the base Zod expression for a field's semantic type. The
// switch is exhaustive over config.FieldTypes.
func zodBase(f config.EntityField) (string, error) {
	switch f.Type {
	case config.FieldString, config.FieldText, config.FieldFile, config.FieldImage:
		return "z.string()", nil
	case config.FieldNumber:
		return "z.number()", nil
	case config.FieldBoolean:
		return "z.boolean()", nil
	case config.FieldDate, config.FieldDateTime:
		return "z.coerce.date()", nil
	case config.FieldEmail:
		return "z.string().email()", nil
	case config.FieldURL:
		return "z.string().url()", nil
	case config.FieldJSON:
		return "z.record(z.unknown())", nil
	case config.FieldEnum:
		vals := make([]string, len(f.EnumValues))
		for i, v := range f.EnumValues {
			vals[i] = "'" + v + "'"
		}
		return "z.enum([" + strings.Join(vals, ", ") + "])", nil
	case config.FieldRelation:
		return "z.string().uuid()", nil
	default:
		return "", &classify.UnsupportedTypeError{Field: f.Name, Type: f.Type}
	}
}

// schemaFragment builds the Zod rule line for one field, chaining constraint
// attrs in a fixed order: bounds, pattern, then optionality.
func schemaFragment(f config.EntityField) (fragment.Fragment, error) {
	base, err := zodBase(f)
	if err != nil {
		return fragment.Fragment{}, err
	}

	frag := fragment.Fragment{
		Kind: fragment.KindSchemaRule,
		Name: fragment.Camel(f.Name),
		Expr: base,
	}
	// Constraints chain only onto the types they make sense for; validation
	// rejects mismatched ones before assembly, and this keeps a direct
	// builder call from emitting z.string().min(0.5).
	if v := f.Validation; v != nil {
		if f.Type == config.FieldNumber {
			if v.Min != nil {
				frag.Attrs = append(frag.Attrs, fmt.Sprintf(".min(%s)", trimFloat(*v.Min)))
			}
			if v.Max != nil {
				frag.Attrs = append(frag.Attrs, fmt.Sprintf(".max(%s)", trimFloat(*v.Max)))
			}
		}
		if stringConstrained(f.Type) {
			if v.MinLength != nil {
				frag.Attrs = append(frag.Attrs, fmt.Sprintf(".min(%d)", *v.MinLength))
			}
			if v.MaxLength != nil {
				frag.Attrs = append(frag.Attrs, fmt.Sprintf(".max(%d)", *v.MaxLength))
			}
			if v.Pattern != "" {
				frag.Attrs = append(frag.Attrs, fmt.Sprintf(".regex(/%s/)", v.Pattern))
			}
		}
	}
	if !f.Required {
		frag.Attrs = append(frag.Attrs, ".optional().nullable()")
	}
	return frag, nil
}

// schemaArtifact assembles schema.ts for one entity.
func (g *Generator) schemaArtifact(ent config.EntityDefinition) (string, error) {
	var frags fragment.List
	for _, f := range ent.Fields {
		frag, err := schemaFragment(f)
		if err != nil {
			return "", err
		}
		frags = append(frags, frag)
	}

	lines := make([]string, len(frags))
	for i, f := range frags {
		lines[i] = "  " + f.Render() + ","
	}
	return render("schema", schemaSkeleton, struct {
		Name  names
		Rules string
	}{
		Name:  nameSet(ent),
		Rules: strings.Join(lines, "\n"),
	})
}

// stringConstrained reports whether length and pattern constraints apply to
// the type's Zod expression.
func stringConstrained(t config.FieldType) bool {
	switch t {
	case config.FieldString, config.FieldText, config.FieldEmail, config.FieldURL:
		return true
	}
	return false
}

// trimFloat renders a float without a trailing ".0" so generated bounds read
// like hand-written ones.
func trimFloat(v float64) string {
	return fmt.Sprintf("%g", v)
}
