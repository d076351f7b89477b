package crud

import (
	"github.com/blueprintkit/blueprint/internal/config"
)

const actionsSkeleton = `// Generated by blueprint. DO NOT EDIT.
'use server';

import { revalidatePath } from 'next/cache';
import { db } from '../lib/db';
import {
  create{{.Name.Pascal}}Schema,
  update{{.Name.Pascal}}Schema,
} from '../schemas/{{.Name.Kebab}}';
import type {
  {{.Name.Pascal}},
  Create{{.Name.Pascal}}Input,
  Update{{.Name.Pascal}}Input,
  {{.Name.Pascal}}ListResult,
} from '../types/{{.Name.Kebab}}';

export async function create{{.Name.Pascal}}(input: Create{{.Name.Pascal}}Input): Promise<{{.Name.Pascal}}> {
  const values = create{{.Name.Pascal}}Schema.parse(input);
  const row = await db.{{.Name.Camel}}.create({ data: values });
  revalidatePath('/{{.Name.PluralKebab}}');
  return row;
}

export async function get{{.Name.Pascal}}(id: string): Promise<{{.Name.Pascal}} | null> {
  return db.{{.Name.Camel}}.findUnique({ where: { id } });
}

export async function list{{.Name.Plural}}(page = 1, pageSize = {{.PageSize}}): Promise<{{.Name.Pascal}}ListResult> {
  const [data, total] = await Promise.all([
    db.{{.Name.Camel}}.findMany({
{{- if .SoftDelete}}
      where: { deletedAt: null },
{{- end}}
      skip: (page - 1) * pageSize,
      take: pageSize,
    }),
    db.{{.Name.Camel}}.count({{if .SoftDelete}}{ where: { deletedAt: null } }{{end}}),
  ]);
  return { data, total, page, pageSize };
}

export async function update{{.Name.Pascal}}(id: string, input: Update{{.Name.Pascal}}Input): Promise<{{.Name.Pascal}}> {
  const values = update{{.Name.Pascal}}Schema.parse(input);
  const row = await db.{{.Name.Camel}}.update({ where: { id }, data: values });
  revalidatePath('/{{.Name.PluralKebab}}');
  return row;
}

export async function delete{{.Name.Pascal}}(id: string): Promise<void> {
{{- if .SoftDelete}}
  await db.{{.Name.Camel}}.update({ where: { id }, data: { deletedAt: new Date() } });
{{- else}}
  await db.{{.Name.Camel}}.delete({ where: { id } });
{{- end}}
  revalidatePath('/{{.Name.PluralKebab}}');
}
`

// actionsArtifact assembles the server-actions module for one entity.
func (g *Generator) actionsArtifact(ent config.EntityDefinition) (string, error) {
	return render("actions", actionsSkeleton, struct {
		Name       names
		SoftDelete bool
		PageSize   int
	}{
		Name:       nameSet(ent),
		SoftDelete: ent.SoftDelete,
		PageSize:   20,
	})
}

const routeSkeleton = `// Generated by blueprint. DO NOT EDIT.
import { NextResponse, type NextRequest } from 'next/server';
import {
  create{{.Name.Pascal}},
  list{{.Name.Plural}},
} from '../../../actions/{{.Name.Kebab}}';

export async function GET(request: NextRequest) {
  const params = request.nextUrl.searchParams;
  const page = Number(params.get('page') ?? '1');
  const pageSize = Number(params.get('page_size') ?? '20');
  const result = await list{{.Name.Plural}}(page, pageSize);
  return NextResponse.json(result);
}

export async function POST(request: NextRequest) {
  const body = await request.json();
  try {
    const row = await create{{.Name.Pascal}}(body);
    return NextResponse.json(row, { status: 201 });
  } catch (err) {
    return NextResponse.json(
      { error: err instanceof Error ? err.message : 'invalid input' },
      { status: 400 },
    );
  }
}
`

// routeArtifact assembles the optional API route handler.
func (g *Generator) routeArtifact(ent config.EntityDefinition) (string, error) {
	return render("route", routeSkeleton, struct{ Name names }{Name: nameSet(ent)})
}
