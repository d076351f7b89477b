package classify

import (
	"errors"
	"testing"

	"github.com/blueprintkit/blueprint/internal/config"
)

func TestInput_CoversEveryFieldType(t *testing.T) {
	for _, ft := range config.FieldTypes() {
		f := config.EntityField{Name: "f", Type: ft}
		if _, err := Input(f); err != nil {
			t.Errorf("Input(%s) = %v, want classification", ft, err)
		}
	}
}

func TestInput_UnsupportedType(t *testing.T) {
	f := config.EntityField{Name: "price", Type: config.FieldType("currency")}
	_, err := Input(f)
	if err == nil {
		t.Fatal("expected error for unsupported type")
	}
	var ute *UnsupportedTypeError
	if !errors.As(err, &ute) {
		t.Fatalf("error = %T, want *UnsupportedTypeError", err)
	}
	if ute.Field != "price" {
		t.Errorf("Field = %q, want price", ute.Field)
	}
	if ute.Type != "currency" {
		t.Errorf("Type = %q, want currency", ute.Type)
	}
}

func TestSearchable_TextLikeOnly(t *testing.T) {
	cases := []struct {
		typ  config.FieldType
		flag bool
		want bool
	}{
		{config.FieldString, true, true},
		{config.FieldText, true, true},
		{config.FieldEmail, true, true},
		{config.FieldString, false, false},
		{config.FieldNumber, true, false},
		{config.FieldBoolean, true, false},
	}
	for _, c := range cases {
		f := config.EntityField{Name: "f", Type: c.typ, Searchable: c.flag}
		if got := Searchable(f); got != c.want {
			t.Errorf("Searchable(%s, flag=%v) = %v, want %v", c.typ, c.flag, got, c.want)
		}
	}
}

func TestSortable_ExcludesUnorderedTypes(t *testing.T) {
	for _, typ := range []config.FieldType{config.FieldJSON, config.FieldFile, config.FieldImage} {
		f := config.EntityField{Name: "f", Type: typ, Sortable: true}
		if Sortable(f) {
			t.Errorf("Sortable(%s) = true, want false", typ)
		}
	}
	f := config.EntityField{Name: "f", Type: config.FieldNumber, Sortable: true}
	if !Sortable(f) {
		t.Error("Sortable(number) = false, want true")
	}
}

func TestFilterable(t *testing.T) {
	yes := config.EntityField{Name: "f", Type: config.FieldEnum, Filterable: true}
	if !Filterable(yes) {
		t.Error("Filterable(enum) = false, want true")
	}
	no := config.EntityField{Name: "f", Type: config.FieldString, Filterable: true}
	if Filterable(no) {
		t.Error("Filterable(string) = true, want false")
	}
}

func TestTableFields_PreservesConfigOrder(t *testing.T) {
	ent := config.EntityDefinition{
		Name: "Product",
		Fields: []config.EntityField{
			{Name: "c", Type: config.FieldString, ShowInTable: true},
			{Name: "a", Type: config.FieldString},
			{Name: "b", Type: config.FieldString, ShowInTable: true},
		},
	}
	got := TableFields(ent)
	if len(got) != 2 || got[0].Name != "c" || got[1].Name != "b" {
		t.Errorf("TableFields order = %v, want [c b]", names(got))
	}
}

func TestVisibleToRoles(t *testing.T) {
	open := config.NavigationItem{ID: "home"}
	if !VisibleToRoles(open, nil) {
		t.Error("ungated item should be visible to anonymous visitors")
	}
	gated := config.NavigationItem{ID: "admin", Roles: []string{"admin"}}
	if VisibleToRoles(gated, []string{"viewer"}) {
		t.Error("gated item visible to wrong role")
	}
	if !VisibleToRoles(gated, []string{"viewer", "admin"}) {
		t.Error("gated item hidden from matching role")
	}
}

func TestGated(t *testing.T) {
	ungated := []config.NavigationGroup{
		{ID: "main", Items: []config.NavigationItem{{ID: "home", Href: "/"}}},
	}
	if Gated(ungated) {
		t.Error("Gated = true for tree without gates")
	}
	nested := []config.NavigationGroup{
		{ID: "main", Items: []config.NavigationItem{
			{ID: "settings", Children: []config.NavigationItem{
				{ID: "users", Href: "/users", Roles: []string{"admin"}},
			}},
		}},
	}
	if !Gated(nested) {
		t.Error("Gated = false for tree with nested gate")
	}
}

func names(fields []config.EntityField) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Name
	}
	return out
}
