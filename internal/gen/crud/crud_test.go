package crud

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blueprintkit/blueprint/internal/classify"
	"github.com/blueprintkit/blueprint/internal/config"
)

func productConfig() *config.AppConfig {
	min := 0.0
	return &config.AppConfig{
		Name: "shop",
		Entities: []config.EntityDefinition{
			{
				Name: "Product",
				Fields: []config.EntityField{
					{Name: "title", Type: config.FieldString, Required: true, ShowInTable: true, ShowInForm: true, Searchable: true, Sortable: true},
					{Name: "price", Type: config.FieldNumber, Required: true, ShowInTable: true, ShowInForm: true, Validation: &config.Validation{Min: &min}},
					{Name: "status", Type: config.FieldEnum, EnumValues: []string{"draft", "live"}, ShowInTable: true, ShowInForm: true, Filterable: true},
				},
			},
		},
		Options: config.Options{Pagination: true},
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	cfg := productConfig()

	first, err := New(cfg).Generate()
	require.NoError(t, err)
	second, err := New(cfg).Generate()
	require.NoError(t, err)

	require.Equal(t, first.Paths(), second.Paths())
	for _, a := range first.Artifacts {
		b, ok := second.Get(a.Path)
		require.True(t, ok, "missing %s on second run", a.Path)
		assert.Equal(t, a.Content, b.Content, "content differs for %s", a.Path)
	}
	assert.Equal(t, first.Dependencies, second.Dependencies)
}

func TestGenerate_BaseArtifactOrder(t *testing.T) {
	set, err := New(productConfig()).Generate()
	require.NoError(t, err)

	assert.Equal(t, []string{
		"types/product.ts",
		"schemas/product.ts",
		"actions/product.ts",
		"components/product/product-table.tsx",
		"components/product/product-form.tsx",
	}, set.Paths())
}

func TestGenerate_SchemaCarriesValidationBounds(t *testing.T) {
	set, err := New(productConfig()).Generate()
	require.NoError(t, err)

	schema, ok := set.Get("schemas/product.ts")
	require.True(t, ok)
	assert.Contains(t, schema.Content, "price: z.number().min(0)")
	assert.Contains(t, schema.Content, "title: z.string()")
	assert.Contains(t, schema.Content, "status: z.enum(['draft', 'live']).optional().nullable()")
}

func TestGenerate_SchemaConstraintsFollowFieldType(t *testing.T) {
	cfg := productConfig()
	minLen := 8
	misplaced := 0.5
	cfg.Entities[0].Fields[0].Validation = &config.Validation{MinLength: &minLen}
	// A numeric bound on a string field is rejected by validation; a direct
	// builder call must still not chain it onto z.string().
	cfg.Entities[0].Fields = append(cfg.Entities[0].Fields, config.EntityField{
		Name: "sku", Type: config.FieldString, Validation: &config.Validation{Min: &misplaced},
	})

	set, err := New(cfg).Generate()
	require.NoError(t, err)

	schema, ok := set.Get("schemas/product.ts")
	require.True(t, ok)
	assert.Contains(t, schema.Content, "title: z.string().min(8)")
	assert.Contains(t, schema.Content, "sku: z.string().optional().nullable()")
	assert.NotContains(t, schema.Content, ".min(0.5)")
}

func TestGenerate_TestSampleSatisfiesLengthBounds(t *testing.T) {
	cfg := productConfig()
	minLen := 10
	cfg.Entities[0].Fields[0].Validation = &config.Validation{MinLength: &minLen}
	cfg.Options.Tests = true

	set, err := New(cfg).Generate()
	require.NoError(t, err)

	spec, ok := set.Get("__tests__/product.test.ts")
	require.True(t, ok)
	assert.Contains(t, spec.Content, "title: 'sampleaaaa'")
}

func TestGenerate_TypesCarryOptionality(t *testing.T) {
	set, err := New(productConfig()).Generate()
	require.NoError(t, err)

	types, ok := set.Get("types/product.ts")
	require.True(t, ok)
	assert.Contains(t, types.Content, "export interface Product")
	assert.Contains(t, types.Content, "title: string")
	assert.Contains(t, types.Content, "status?: 'draft' | 'live' | null")
}

func TestGenerate_UnsupportedTypeAbortsEntity(t *testing.T) {
	cfg := productConfig()
	cfg.Entities[0].Fields = append(cfg.Entities[0].Fields, config.EntityField{
		Name: "cost", Type: config.FieldType("currency"), ShowInForm: true,
	})

	set, err := New(cfg).Generate()
	require.Error(t, err)
	assert.Nil(t, set)

	var ute *classify.UnsupportedTypeError
	require.ErrorAs(t, err, &ute)
	assert.Equal(t, "cost", ute.Field)
	assert.Contains(t, err.Error(), "Product")
}

func TestGenerate_FeatureFlagsAddArtifacts(t *testing.T) {
	cfg := productConfig()
	cfg.Options.APIRoutes = true
	cfg.Options.Export = true
	cfg.Options.Tests = true

	set, err := New(cfg).Generate()
	require.NoError(t, err)

	paths := set.Paths()
	assert.Contains(t, paths, "app/api/products/route.ts")
	assert.Contains(t, paths, "lib/product-export.ts")
	assert.Contains(t, paths, "__tests__/product.test.ts")
	assert.NotContains(t, paths, "lib/product-import.ts")

	// Tests flag pulls in the dev dependency.
	assert.Equal(t, "^2.0.0", set.DevDependencies["vitest"])
}

func TestGenerate_FlagsOffMeansNoExtras(t *testing.T) {
	set, err := New(productConfig()).Generate()
	require.NoError(t, err)

	for _, path := range set.Paths() {
		assert.NotContains(t, path, "route.ts")
		assert.NotContains(t, path, "-export")
		assert.NotContains(t, path, "__tests__")
	}
	assert.Empty(t, set.DevDependencies)
}

func TestGenerate_TableRespectsClassification(t *testing.T) {
	set, err := New(productConfig()).Generate()
	require.NoError(t, err)

	table, ok := set.Get("components/product/product-table.tsx")
	require.True(t, ok)
	// title is sortable, enum status is not flagged sortable.
	assert.Contains(t, table.Content, "accessorKey: 'title'")
	assert.Contains(t, table.Content, "accessorKey: 'status'")
}

func TestGenerate_EmptyConfigYieldsEmptySet(t *testing.T) {
	set, err := New(&config.AppConfig{Name: "empty"}).Generate()
	require.NoError(t, err)
	assert.Empty(t, set.Artifacts)
	assert.Empty(t, set.Dependencies)
}

func TestGenerate_ManifestDependencies(t *testing.T) {
	set, err := New(productConfig()).Generate()
	require.NoError(t, err)

	assert.Equal(t, "^3.23.0", set.Dependencies["zod"])
	assert.Equal(t, "^7.52.0", set.Dependencies["react-hook-form"])
	assert.Equal(t, "^8.19.0", set.Dependencies["@tanstack/react-table"])
	require.Len(t, set.Instructions, 2)
}
