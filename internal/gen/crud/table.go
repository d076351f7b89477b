package crud

import (
	"fmt"
	"strings"

	"github.com/blueprintkit/blueprint/internal/classify"
	"github.com/blueprintkit/blueprint/internal/config"
	"github.com/blueprintkit/blueprint/internal/fragment"
)

const tableSkeleton = `// Generated by blueprint. DO NOT EDIT.
'use client';

import { useMemo, useState } from 'react';
import {
  type ColumnDef,
  flexRender,
  getCoreRowModel,
{{- if .Sortable}}
  getSortedRowModel,
  type SortingState,
{{- end}}
{{- if .Pagination}}
  getPaginationRowModel,
{{- end}}
  useReactTable,
} from '@tanstack/react-table';
import type { {{.Name.Pascal}} } from '../../types/{{.Name.Kebab}}';

export const columns: ColumnDef<{{.Name.Pascal}}>[] = [
{{- if .Selectable}}
  {
    id: 'select',
    header: ({ table }) => (
      <input
        type="checkbox"
        checked={table.getIsAllRowsSelected()}
        onChange={table.getToggleAllRowsSelectedHandler()}
      />
    ),
    cell: ({ row }) => (
      <input
        type="checkbox"
        checked={row.getIsSelected()}
        onChange={row.getToggleSelectedHandler()}
      />
    ),
  },
{{- end}}
{{.Columns}}
];

interface {{.Name.Pascal}}TableProps {
  data: {{.Name.Pascal}}[];
{{- if .Selectable}}
  onSelectionChange?: (selected: {{.Name.Pascal}}[]) => void;
{{- end}}
}

export function {{.Name.Pascal}}Table({ data{{if .Selectable}}, onSelectionChange{{end}} }: {{.Name.Pascal}}TableProps) {
{{- if .Searchable}}
  const [search, setSearch] = useState('');
{{- end}}
{{- if .Sortable}}
  const [sorting, setSorting] = useState<SortingState>([]);
{{- end}}

{{- if .Searchable}}
  const filtered = useMemo(() => {
    if (!search) return data;
    const q = search.toLowerCase();
    return data.filter((row) =>
{{.SearchClauses}}
    );
  }, [data, search]);
{{- else}}
  const filtered = data;
{{- end}}

  const table = useReactTable({
    data: filtered,
    columns,
    getCoreRowModel: getCoreRowModel(),
{{- if .Sortable}}
    getSortedRowModel: getSortedRowModel(),
    onSortingChange: setSorting,
{{- end}}
{{- if .Pagination}}
    getPaginationRowModel: getPaginationRowModel(),
    initialState: { pagination: { pageSize: {{.PageSize}} } },
{{- end}}
    state: {
{{- if .Sortable}}
      sorting,
{{- end}}
    },
  });

  return (
    <div className="space-y-4">
{{- if .Searchable}}
      <input
        type="search"
        className="input"
        placeholder="Search {{.Name.PluralCamel}}..."
        value={search}
        onChange={(e) => setSearch(e.target.value)}
      />
{{- end}}
      <table className="w-full">
        <thead>
          {table.getHeaderGroups().map((headerGroup) => (
            <tr key={headerGroup.id}>
              {headerGroup.headers.map((header) => (
                <th key={header.id}{{if .Sortable}} onClick={header.column.getToggleSortingHandler()}{{end}}>
                  {flexRender(header.column.columnDef.header, header.getContext())}
                </th>
              ))}
            </tr>
          ))}
        </thead>
        <tbody>
          {table.getRowModel().rows.map((row) => (
            <tr key={row.id}>
              {row.getVisibleCells().map((cell) => (
                <td key={cell.id}>{flexRender(cell.column.columnDef.cell, cell.getContext())}</td>
              ))}
            </tr>
          ))}
        </tbody>
      </table>
{{- if .Pagination}}
      <div className="flex items-center gap-2">
        <button onClick={() => table.previousPage()} disabled={!table.getCanPreviousPage()}>
          Previous
        </button>
        <span>
          Page {table.getState().pagination.pageIndex + 1} of {table.getPageCount()}
        </span>
        <button onClick={() => table.nextPage()} disabled={!table.getCanNextPage()}>
          Next
        </button>
      </div>
{{- end}}
    </div>
  );
}
`

// columnFragment builds one ColumnDef literal for a table-visible field.
func columnFragment(f config.EntityField) (fragment.Fragment, error) {
	if !f.Type.Valid() {
		return fragment.Fragment{}, &classify.UnsupportedTypeError{Field: f.Name, Type: f.Type}
	}
	accessor := fragment.Camel(f.Name)

	body := []string{"  {"}
	body = append(body, fmt.Sprintf("    accessorKey: '%s',", accessor))
	body = append(body, fmt.Sprintf("    header: '%s',", escapeSingle(label(f))))
	switch f.Type {
	case config.FieldBoolean:
		body = append(body, fmt.Sprintf("    cell: ({ row }) => (row.original.%s ? 'Yes' : 'No'),", accessor))
	case config.FieldDate:
		body = append(body, fmt.Sprintf("    cell: ({ row }) => (row.original.%s ? new Date(row.original.%s).toLocaleDateString() : '—'),", accessor, accessor))
	case config.FieldDateTime:
		body = append(body, fmt.Sprintf("    cell: ({ row }) => (row.original.%s ? new Date(row.original.%s).toLocaleString() : '—'),", accessor, accessor))
	case config.FieldImage:
		body = append(body, fmt.Sprintf("    cell: ({ row }) => (row.original.%s ? <img src={row.original.%s} alt=\"\" className=\"h-8 w-8 rounded\" /> : null),", accessor, accessor))
	case config.FieldEnum:
		body = append(body, fmt.Sprintf("    cell: ({ row }) => <span className=\"badge\">{row.original.%s}</span>,", accessor))
	}
	if !classify.Sortable(f) {
		body = append(body, "    enableSorting: false,")
	}
	body = append(body, "  },")

	return fragment.Fragment{
		Kind: fragment.KindColumn,
		Name: accessor,
		Body: body,
	}, nil
}

// tableArtifact assembles the table component. Columns preserve the order of
// table-visible fields in the configuration.
func (g *Generator) tableArtifact(ent config.EntityDefinition) (string, error) {
	tableFields := classify.TableFields(ent)

	var cols fragment.List
	anySortable := false
	for _, f := range tableFields {
		frag, err := columnFragment(f)
		if err != nil {
			return "", err
		}
		cols = append(cols, frag)
		if classify.Sortable(f) {
			anySortable = true
		}
	}

	searchFields := classify.SearchFields(ent)
	var clauses []string
	for _, f := range searchFields {
		clauses = append(clauses, fmt.Sprintf("      (row.%s ?? '').toLowerCase().includes(q)", fragment.Camel(f.Name)))
	}

	return render("table", tableSkeleton, struct {
		Name          names
		Columns       string
		Searchable    bool
		SearchClauses string
		Sortable      bool
		Pagination    bool
		Selectable    bool
		PageSize      int
	}{
		Name:          nameSet(ent),
		Columns:       cols.Render("", "\n"),
		Searchable:    g.cfg.Options.Search && len(searchFields) > 0,
		SearchClauses: strings.Join(clauses, " ||\n"),
		Sortable:      anySortable,
		Pagination:    g.cfg.Options.Pagination,
		Selectable:    g.cfg.Options.BulkActions,
		PageSize:      20,
	})
}

func escapeSingle(s string) string {
	return strings.ReplaceAll(s, "'", "\\'")
}
