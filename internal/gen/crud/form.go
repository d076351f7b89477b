package crud

import (
	"fmt"

	"github.com/blueprintkit/blueprint/internal/classify"
	"github.com/blueprintkit/blueprint/internal/config"
	"github.com/blueprintkit/blueprint/internal/fragment"
)

const formSkeleton = `// Generated by blueprint. DO NOT EDIT.
'use client';

import { useForm } from 'react-hook-form';
import { zodResolver } from '@hookform/resolvers/zod';
import { create{{.Name.Pascal}}Schema } from '../../schemas/{{.Name.Kebab}}';
import type { Create{{.Name.Pascal}}Input } from '../../types/{{.Name.Kebab}}';

interface {{.Name.Pascal}}FormProps {
  defaultValues?: Partial<Create{{.Name.Pascal}}Input>;
  onSubmit: (values: Create{{.Name.Pascal}}Input) => Promise<void> | void;
}

export function {{.Name.Pascal}}Form({ defaultValues, onSubmit }: {{.Name.Pascal}}FormProps) {
  const {
    register,
    handleSubmit,
    formState: { errors, isSubmitting },
  } = useForm<Create{{.Name.Pascal}}Input>({
    resolver: zodResolver(create{{.Name.Pascal}}Schema),
    defaultValues,
  });

  return (
    <form onSubmit={handleSubmit(onSubmit)} className="space-y-4">
{{.Controls}}
      <button type="submit" className="btn" disabled={isSubmitting}>
        {isSubmitting ? 'Saving…' : 'Save {{.Name.Label}}'}
      </button>
    </form>
  );
}
`

// controlFragment builds the labelled form control for one field. The input
// element is chosen by the field's classification; enums render their
// configured value set as options.
func controlFragment(f config.EntityField) (fragment.Fragment, error) {
	kind, err := classify.Input(f)
	if err != nil {
		return fragment.Fragment{}, err
	}

	name := fragment.Camel(f.Name)
	req := ""
	if f.Required {
		req = " <span className=\"text-red-500\">*</span>"
	}

	body := []string{
		"      <div className=\"form-field\">",
		fmt.Sprintf("        <label htmlFor=\"%s\">%s%s</label>", name, escapeSingle(label(f)), req),
	}
	switch kind {
	case classify.InputText, classify.InputEmail, classify.InputURL, classify.InputDate, classify.InputFile:
		body = append(body, fmt.Sprintf("        <input id=%q type=%q {...register('%s')} />", name, htmlInputType(kind), name))
	case classify.InputDateTime:
		body = append(body, fmt.Sprintf("        <input id=%q type=\"datetime-local\" {...register('%s')} />", name, name))
	case classify.InputNumber:
		body = append(body, fmt.Sprintf("        <input id=%q type=\"number\" {...register('%s', { valueAsNumber: true })} />", name, name))
	case classify.InputCheckbox:
		body = append(body, fmt.Sprintf("        <input id=%q type=\"checkbox\" {...register('%s')} />", name, name))
	case classify.InputTextarea, classify.InputJSON:
		body = append(body, fmt.Sprintf("        <textarea id=%q rows={4} {...register('%s')} />", name, name))
	case classify.InputSelect:
		body = append(body, fmt.Sprintf("        <select id=%q {...register('%s')}>", name, name))
		if !f.Required {
			body = append(body, "          <option value=\"\">—</option>")
		}
		for _, v := range f.EnumValues {
			body = append(body, fmt.Sprintf("          <option value=%q>%s</option>", v, fragment.Label(v)))
		}
		body = append(body, "        </select>")
	case classify.InputRelation:
		body = append(body, fmt.Sprintf("        <input id=%q type=\"text\" placeholder=\"%s id\" {...register('%s')} />", name, f.RelatedEntity, name))
	}
	body = append(body,
		fmt.Sprintf("        {errors.%s && <p className=\"text-red-500\">{errors.%s.message}</p>}", name, name),
		"      </div>",
	)

	return fragment.Fragment{
		Kind: fragment.KindControl,
		Name: name,
		Body: body,
	}, nil
}

func htmlInputType(k classify.InputKind) string {
	switch k {
	case classify.InputEmail:
		return "email"
	case classify.InputURL:
		return "url"
	case classify.InputDate:
		return "date"
	case classify.InputFile:
		return "file"
	default:
		return "text"
	}
}

// formArtifact assembles the form component from the form-visible fields in
// configuration order.
func (g *Generator) formArtifact(ent config.EntityDefinition) (string, error) {
	var controls fragment.List
	for _, f := range classify.FormFields(ent) {
		frag, err := controlFragment(f)
		if err != nil {
			return "", err
		}
		controls = append(controls, frag)
	}

	return render("form", formSkeleton, struct {
		Name     names
		Controls string
	}{
		Name:     nameSet(ent),
		Controls: controls.Render("", "\n"),
	})
}
