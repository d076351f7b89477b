package crud

import (
	"fmt"
	"strings"

	"github.com/blueprintkit/blueprint/internal/classify"
	"github.com/blueprintkit/blueprint/internal/config"
	"github.com/blueprintkit/blueprint/internal/fragment"
)

const bulkSkeleton = `// Generated by blueprint. DO NOT EDIT.
'use client';

import { useState } from 'react';
import { delete{{.Name.Pascal}} } from '../../actions/{{.Name.Kebab}}';
import type { {{.Name.Pascal}} } from '../../types/{{.Name.Kebab}}';

interface {{.Name.Pascal}}BulkActionsProps {
  selected: {{.Name.Pascal}}[];
  onDone: () => void;
}

export function {{.Name.Pascal}}BulkActions({ selected, onDone }: {{.Name.Pascal}}BulkActionsProps) {
  const [busy, setBusy] = useState(false);

  async function handleDelete() {
    if (!window.confirm('Delete ' + selected.length + ' {{.Name.PluralCamel}}?')) return;
    setBusy(true);
    try {
      await Promise.all(selected.map((row) => delete{{.Name.Pascal}}(row.id)));
      onDone();
    } finally {
      setBusy(false);
    }
  }

  if (selected.length === 0) return null;

  return (
    <div className="flex items-center gap-2">
      <span>{selected.length} selected</span>
      <button className="btn-danger" onClick={handleDelete} disabled={busy}>
        Delete selected
      </button>
    </div>
  );
}
`

// bulkArtifact assembles the bulk-operations component, emitted only when the
// bulk-actions flag is on.
func (g *Generator) bulkArtifact(ent config.EntityDefinition) (string, error) {
	return render("bulk", bulkSkeleton, struct{ Name names }{Name: nameSet(ent)})
}

const exportSkeleton = `// Generated by blueprint. DO NOT EDIT.
import type { {{.Name.Pascal}} } from '../types/{{.Name.Kebab}}';

const columns = [{{.Columns}}] as const;

function csvEscape(value: unknown): string {
  const s = value == null ? '' : String(value);
  if (s.includes(',') || s.includes('"') || s.includes('\n')) {
    return '"' + s.replace(/"/g, '""') + '"';
  }
  return s;
}

export function {{.Name.PluralCamel}}ToCsv(rows: {{.Name.Pascal}}[]): string {
  const header = columns.join(',');
  const lines = rows.map((row) =>
    columns.map((col) => csvEscape(row[col])).join(','),
  );
  return [header, ...lines].join('\n');
}

export function download{{.Name.Plural}}Csv(rows: {{.Name.Pascal}}[], filename = '{{.Name.PluralKebab}}.csv'): void {
  const blob = new Blob([{{.Name.PluralCamel}}ToCsv(rows)], { type: 'text/csv' });
  const url = URL.createObjectURL(blob);
  const a = document.createElement('a');
  a.href = url;
  a.download = filename;
  a.click();
  URL.revokeObjectURL(url);
}
`

// exportArtifact assembles the CSV export helper over the entity's
// exportable fields, in configuration order.
func (g *Generator) exportArtifact(ent config.EntityDefinition) (string, error) {
	var cols []string
	for _, f := range ent.Fields {
		if classify.Exportable(f) {
			cols = append(cols, "'"+fragment.Camel(f.Name)+"'")
		}
	}
	return render("export", exportSkeleton, struct {
		Name    names
		Columns string
	}{
		Name:    nameSet(ent),
		Columns: strings.Join(cols, ", "),
	})
}

const importSkeleton = `// Generated by blueprint. DO NOT EDIT.
import { create{{.Name.Pascal}}Schema } from '../schemas/{{.Name.Kebab}}';
import { create{{.Name.Pascal}} } from '../actions/{{.Name.Kebab}}';

export interface ImportResult {
  imported: number;
  errors: { line: number; message: string }[];
}

export async function import{{.Name.Plural}}Csv(csv: string): Promise<ImportResult> {
  const lines = csv.trim().split('\n');
  if (lines.length < 2) return { imported: 0, errors: [] };
  const header = lines[0].split(',').map((h) => h.trim());

  const result: ImportResult = { imported: 0, errors: [] };
  for (let i = 1; i < lines.length; i++) {
    const cells = lines[i].split(',');
    const raw: Record<string, string> = {};
    header.forEach((col, idx) => {
      raw[col] = (cells[idx] ?? '').trim();
    });
    const parsed = create{{.Name.Pascal}}Schema.safeParse(raw);
    if (!parsed.success) {
      result.errors.push({ line: i + 1, message: parsed.error.message });
      continue;
    }
    await create{{.Name.Pascal}}(parsed.data);
    result.imported += 1;
  }
  return result;
}
`

// importArtifact assembles the CSV import helper.
func (g *Generator) importArtifact(ent config.EntityDefinition) (string, error) {
	return render("import", importSkeleton, struct{ Name names }{Name: nameSet(ent)})
}

const testSkeleton = `// Generated by blueprint. DO NOT EDIT.
import { describe, expect, it } from 'vitest';
import { create{{.Name.Pascal}}Schema } from '../schemas/{{.Name.Kebab}}';

describe('{{.Name.Camel}}Schema', () => {
  it('accepts a valid {{.Name.Camel}}', () => {
    const result = create{{.Name.Pascal}}Schema.safeParse({{.ValidSample}});
    expect(result.success).toBe(true);
  });

  it('rejects missing required fields', () => {
    const result = create{{.Name.Pascal}}Schema.safeParse({});
    expect(result.success).toBe({{.EmptyValid}});
  });
});
`

// testArtifact assembles a vitest smoke test with a sample value derived from
// the field definitions.
func (g *Generator) testArtifact(ent config.EntityDefinition) (string, error) {
	var parts []string
	anyRequired := false
	for _, f := range ent.Fields {
		if !f.Required {
			continue
		}
		anyRequired = true
		sample, err := sampleValue(f)
		if err != nil {
			return "", err
		}
		parts = append(parts, fmt.Sprintf("%s: %s", fragment.Camel(f.Name), sample))
	}
	valid := "{ " + strings.Join(parts, ", ") + " }"
	if len(parts) == 0 {
		valid = "{}"
	}
	return render("test", testSkeleton, struct {
		Name        names
		ValidSample string
		EmptyValid  string
	}{
		Name:        nameSet(ent),
		ValidSample: valid,
		EmptyValid:  fmt.Sprintf("%t", !anyRequired),
	})
}

// sampleValue produces a schema-satisfying literal for one field. Bounds are
// respected so the generated test actually passes.
func sampleValue(f config.EntityField) (string, error) {
	switch f.Type {
	case config.FieldString, config.FieldText:
		return "'" + sampleString(f) + "'", nil
	case config.FieldNumber:
		if v := f.Validation; v != nil && v.Min != nil {
			return trimFloat(*v.Min), nil
		}
		return "1", nil
	case config.FieldBoolean:
		return "true", nil
	case config.FieldDate, config.FieldDateTime:
		return "'2024-01-01T00:00:00Z'", nil
	case config.FieldEmail:
		return "'user@example.com'", nil
	case config.FieldURL:
		return "'https://example.com'", nil
	case config.FieldJSON:
		return "{}", nil
	case config.FieldEnum:
		if len(f.EnumValues) > 0 {
			return "'" + f.EnumValues[0] + "'", nil
		}
		return "''", nil
	case config.FieldFile, config.FieldImage:
		return "'file.png'", nil
	case config.FieldRelation:
		return "'00000000-0000-0000-0000-000000000000'", nil
	default:
		return "", &classify.UnsupportedTypeError{Field: f.Name, Type: f.Type}
	}
}

// sampleString produces a literal within the field's length bounds.
func sampleString(f config.EntityField) string {
	s := "sample"
	v := f.Validation
	if v == nil {
		return s
	}
	if v.MinLength != nil && len(s) < *v.MinLength {
		s += strings.Repeat("a", *v.MinLength-len(s))
	}
	if v.MaxLength != nil && len(s) > *v.MaxLength {
		s = s[:*v.MaxLength]
	}
	return s
}
