package crud

import (
	"strings"

	"github.com/blueprintkit/blueprint/internal/config"
	"github.com/blueprintkit/blueprint/internal/fragment"
)

const typesSkeleton = `// Generated by blueprint. DO NOT EDIT.

export interface {{.Name.Pascal}} {
  id: string;
{{.Fields}}
{{- if .Timestamps}}
  createdAt: string;
  updatedAt: string;
{{- end}}
{{- if .SoftDelete}}
  deletedAt: string | null;
{{- end}}
}

export interface Create{{.Name.Pascal}}Input {
{{.CreateFields}}
}

export type Update{{.Name.Pascal}}Input = Partial<Create{{.Name.Pascal}}Input>;

export interface {{.Name.Pascal}}ListResult {
  data: {{.Name.Pascal}}[];
  total: number;
  page: number;
  pageSize: number;
}
`

// typeFragment builds the interface member for one field.
func typeFragment(f config.EntityField) (fragment.Fragment, error) {
	expr, err := tsType(f)
	if err != nil {
		return fragment.Fragment{}, err
	}
	name := fragment.Camel(f.Name)
	if !f.Required {
		name += "?"
	}
	frag := fragment.Fragment{
		Kind: fragment.KindTypeField,
		Name: name,
		Expr: expr,
	}
	if !f.Required {
		frag.Attrs = append(frag.Attrs, " | null")
	}
	return frag, nil
}

// typesArtifact assembles types.ts for one entity. Field order mirrors the
// configuration exactly.
func (g *Generator) typesArtifact(ent config.EntityDefinition) (string, error) {
	var frags, createFrags fragment.List
	for _, f := range ent.Fields {
		frag, err := typeFragment(f)
		if err != nil {
			return "", err
		}
		frags = append(frags, frag)
		createFrags = append(createFrags, frag)
	}
	for _, rel := range ent.Relations {
		frags = append(frags, relationFragment(rel))
	}

	return render("types", typesSkeleton, struct {
		Name         names
		Fields       string
		CreateFields string
		Timestamps   bool
		SoftDelete   bool
	}{
		Name:         nameSet(ent),
		Fields:       join(frags),
		CreateFields: join(createFrags),
		Timestamps:   ent.Timestamps,
		SoftDelete:   ent.SoftDelete,
	})
}

// relationFragment renders a relation as an id (to-one) or id list (to-many).
func relationFragment(rel config.EntityRelation) fragment.Fragment {
	expr := "string"
	name := fragment.Camel(rel.Name) + "Id"
	if rel.Kind == config.RelationOneToMany || rel.Kind == config.RelationManyToMany {
		expr = "string[]"
		name = fragment.Camel(rel.Name) + "Ids"
	}
	return fragment.Fragment{
		Kind: fragment.KindTypeField,
		Name: name + "?",
		Expr: expr,
	}
}

func join(l fragment.List) string {
	lines := make([]string, len(l))
	for i, f := range l {
		lines[i] = "  " + f.Render() + ";"
	}
	return strings.Join(lines, "\n")
}
