package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolve_OverridesWinFieldByField(t *testing.T) {
	base := Defaults()
	base.Name = "base"

	out := Resolve(base, AppConfig{
		Name: "shop",
		ErrorHandling: ErrorHandlingConfig{
			Logging: LoggingConfig{Enabled: true, Level: "warn", Console: true},
		},
	})

	if out.Name != "shop" {
		t.Errorf("Name = %q, want shop", out.Name)
	}
	if out.ErrorHandling.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", out.ErrorHandling.Logging.Level)
	}
	// Untouched nested blocks keep their defaults.
	if !out.ErrorHandling.Boundaries.Enabled {
		t.Error("Boundaries default was dropped by unrelated override")
	}
}

func TestResolve_LoggingOverrideKeepsConsoleDefault(t *testing.T) {
	out := Resolve(Defaults(), AppConfig{
		ErrorHandling: ErrorHandlingConfig{
			Logging: LoggingConfig{Enabled: true, Level: "debug"},
		},
	})
	if out.ErrorHandling.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", out.ErrorHandling.Logging.Level)
	}
	if !out.ErrorHandling.Logging.Console {
		t.Error("logging.console default dropped by an override that only set the level")
	}
}

func TestResolve_ListsReplaceWholesale(t *testing.T) {
	base := AppConfig{Entities: []EntityDefinition{
		{Name: "Old", Fields: []EntityField{{Name: "a", Type: FieldString}}},
		{Name: "Older", Fields: []EntityField{{Name: "b", Type: FieldString}}},
	}}
	out := Resolve(base, AppConfig{Entities: []EntityDefinition{
		{Name: "New", Fields: []EntityField{{Name: "c", Type: FieldString}}},
	}})
	if len(out.Entities) != 1 || out.Entities[0].Name != "New" {
		t.Errorf("Entities = %v, want wholesale replacement", out.Entities)
	}
}

func TestResolve_NilListKeepsBase(t *testing.T) {
	base := AppConfig{Navigation: []NavigationGroup{{ID: "main"}}}
	out := Resolve(base, AppConfig{})
	if len(out.Navigation) != 1 {
		t.Error("nil overrides list should keep base navigation")
	}
}

func TestResolve_OptionFlagsAccumulate(t *testing.T) {
	base := Defaults()
	out := Resolve(base, AppConfig{Options: Options{Export: true}})
	if !out.Options.Export {
		t.Error("Export flag from overrides was lost")
	}
	if !out.Options.Pagination {
		t.Error("Pagination default was disabled by overrides")
	}
}

func TestResolve_DoesNotMutateBase(t *testing.T) {
	base := Defaults()
	level := base.ErrorHandling.Logging.Level
	_ = Resolve(base, AppConfig{
		ErrorHandling: ErrorHandlingConfig{
			Logging: LoggingConfig{Enabled: true, Level: "debug"},
		},
	})
	if base.ErrorHandling.Logging.Level != level {
		t.Error("Resolve mutated its base argument")
	}
}

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.yaml")
	doc := `
name: shop
entities:
  - name: Product
    fields:
      - name: title
        type: string
        required: true
options:
  export: true
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if cfg.Name != "shop" {
		t.Errorf("Name = %q, want shop", cfg.Name)
	}
	if len(cfg.Entities) != 1 || cfg.Entities[0].Fields[0].Type != FieldString {
		t.Errorf("entities not decoded: %+v", cfg.Entities)
	}
	if !cfg.Options.Export {
		t.Error("options.export not decoded")
	}
	// Defaults applied under the document.
	if !cfg.Options.Pagination {
		t.Error("defaults were not merged under the document")
	}
}

func TestLoad_JSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.json")
	doc := `{"name": "shop", "entities": [{"name": "Product", "fields": [{"name": "title", "type": "string"}]}]}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if cfg.Entities[0].Name != "Product" {
		t.Errorf("entity = %q, want Product", cfg.Entities[0].Name)
	}
}

func TestLoad_UnknownExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.toml")
	if err := os.WriteFile(path, []byte("name = 'shop'"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestFieldType_Valid(t *testing.T) {
	for _, ft := range FieldTypes() {
		if !ft.Valid() {
			t.Errorf("FieldTypes() entry %q reports invalid", ft)
		}
	}
	if FieldType("currency").Valid() {
		t.Error("unknown type reports valid")
	}
}
