// Package crud generates the per-entity artifact family: TypeScript types,
// Zod validation schemas, server actions, table and form components, and the
// optional families behind feature flags (API routes, bulk actions,
// export/import helpers, tests).
//
// Every artifact is assembled from per-field fragments in configuration
// order; a field with an unsupported type aborts the whole entity, never
// degrades to a generic fragment.
package crud

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/blueprintkit/blueprint/internal/artifact"
	"github.com/blueprintkit/blueprint/internal/classify"
	"github.com/blueprintkit/blueprint/internal/config"
	"github.com/blueprintkit/blueprint/internal/fragment"
)

// Generator assembles CRUD artifacts for every entity in the configuration.
type Generator struct {
	cfg *config.AppConfig
}

// New returns a CRUD generator over the given (already validated) config.
func New(cfg *config.AppConfig) *Generator {
	return &Generator{cfg: cfg}
}

// Name identifies the generator family in the builder registry.
func (g *Generator) Name() string { return "crud" }

// Generate produces the full CRUD artifact set, entities in configuration
// order, artifacts per entity in a fixed order. Any fragment failure aborts
// the run with no partial output.
func (g *Generator) Generate() (*artifact.Set, error) {
	set := artifact.NewSet()
	if len(g.cfg.Entities) == 0 {
		return set, nil
	}

	for _, ent := range g.cfg.Entities {
		if err := g.entity(set, ent); err != nil {
			return nil, err
		}
	}

	if err := set.Dependency("zod", "^3.23.0"); err != nil {
		return nil, err
	}
	if err := set.Dependency("react-hook-form", "^7.52.0"); err != nil {
		return nil, err
	}
	if err := set.Dependency("@hookform/resolvers", "^3.9.0"); err != nil {
		return nil, err
	}
	if err := set.Dependency("@tanstack/react-table", "^8.19.0"); err != nil {
		return nil, err
	}
	if g.cfg.Options.Tests {
		if err := set.DevDependency("vitest", "^2.0.0"); err != nil {
			return nil, err
		}
	}
	set.Instruct("Run your package manager's install step to pick up the new dependencies.")
	set.Instruct("Generated components assume the entity API routes are mounted under /api.")
	return set, nil
}

// entity emits every artifact for one entity in fixed order.
func (g *Generator) entity(set *artifact.Set, ent config.EntityDefinition) error {
	steps := []struct {
		path  string
		build func(config.EntityDefinition) (string, error)
	}{
		{"types/" + fragment.Kebab(ent.Name) + ".ts", g.typesArtifact},
		{"schemas/" + fragment.Kebab(ent.Name) + ".ts", g.schemaArtifact},
		{"actions/" + fragment.Kebab(ent.Name) + ".ts", g.actionsArtifact},
		{"components/" + fragment.Kebab(ent.Name) + "/" + fragment.Kebab(ent.Name) + "-table.tsx", g.tableArtifact},
		{"components/" + fragment.Kebab(ent.Name) + "/" + fragment.Kebab(ent.Name) + "-form.tsx", g.formArtifact},
	}
	if g.cfg.Options.APIRoutes {
		steps = append(steps, struct {
			path  string
			build func(config.EntityDefinition) (string, error)
		}{"app/api/" + fragment.PluralKebab(ent.Name) + "/route.ts", g.routeArtifact})
	}
	if g.cfg.Options.BulkActions {
		steps = append(steps, struct {
			path  string
			build func(config.EntityDefinition) (string, error)
		}{"components/" + fragment.Kebab(ent.Name) + "/" + fragment.Kebab(ent.Name) + "-bulk-actions.tsx", g.bulkArtifact})
	}
	if g.cfg.Options.Export {
		steps = append(steps, struct {
			path  string
			build func(config.EntityDefinition) (string, error)
		}{"lib/" + fragment.Kebab(ent.Name) + "-export.ts", g.exportArtifact})
	}
	if g.cfg.Options.Import {
		steps = append(steps, struct {
			path  string
			build func(config.EntityDefinition) (string, error)
		}{"lib/" + fragment.Kebab(ent.Name) + "-import.ts", g.importArtifact})
	}
	if g.cfg.Options.Tests {
		steps = append(steps, struct {
			path  string
			build func(config.EntityDefinition) (string, error)
		}{"__tests__/" + fragment.Kebab(ent.Name) + ".test.ts", g.testArtifact})
	}

	for _, step := range steps {
		content, err := step.build(ent)
		if err != nil {
			return fmt.Errorf("entity %s: %w", ent.Name, err)
		}
		if err := set.Add(step.path, content); err != nil {
			return err
		}
	}
	return nil
}

// tsType maps a semantic field type to its TypeScript type expression. The
// switch is exhaustive over config.FieldTypes; anything else is an error.
func tsType(f config.EntityField) (string, error) {
	switch f.Type {
	case config.FieldString, config.FieldEmail, config.FieldURL, config.FieldText:
		return "string", nil
	case config.FieldNumber:
		return "number", nil
	case config.FieldBoolean:
		return "boolean", nil
	case config.FieldDate, config.FieldDateTime:
		return "string", nil
	case config.FieldJSON:
		return "Record<string, unknown>", nil
	case config.FieldEnum:
		return enumUnion(f), nil
	case config.FieldFile, config.FieldImage:
		return "string", nil
	case config.FieldRelation:
		return "string", nil
	default:
		return "", &classify.UnsupportedTypeError{Field: f.Name, Type: f.Type}
	}
}

// enumUnion renders the literal union for an enum field's configured values.
func enumUnion(f config.EntityField) string {
	parts := make([]string, len(f.EnumValues))
	for i, v := range f.EnumValues {
		parts[i] = "'" + v + "'"
	}
	return strings.Join(parts, " | ")
}

// label returns the configured label or one derived from the field name.
func label(f config.EntityField) string {
	if f.Label != "" {
		return f.Label
	}
	return fragment.Label(f.Name)
}

// render executes a template skeleton against data. Skeletons are package
// constants; a parse failure is a programming error.
func render(name, skeleton string, data any) (string, error) {
	tmpl, err := template.New(name).Parse(skeleton)
	if err != nil {
		return "", fmt.Errorf("parsing %s skeleton: %w", name, err)
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return sb.String(), nil
}

// names bundles the casing variants every skeleton needs.
type names struct {
	Pascal      string
	Camel       string
	Kebab       string
	Plural      string
	PluralCamel string
	PluralKebab string
	Label       string
}

func nameSet(ent config.EntityDefinition) names {
	lbl := ent.Label
	if lbl == "" {
		lbl = fragment.Label(ent.Name)
	}
	return names{
		Pascal:      fragment.Pascal(ent.Name),
		Camel:       fragment.Camel(ent.Name),
		Kebab:       fragment.Kebab(ent.Name),
		Plural:      fragment.Plural(fragment.Pascal(ent.Name)),
		PluralCamel: fragment.Camel(fragment.Plural(ent.Name)),
		PluralKebab: fragment.PluralKebab(ent.Name),
		Label:       lbl,
	}
}
