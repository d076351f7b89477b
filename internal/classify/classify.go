// Package classify answers pure, side-effect-free questions about single
// configuration entries: which input control a field needs, whether it
// participates in search, whether a navigation item is visible to a role set.
// Same input always yields the same answer, and absent optional flags default
// to the documented neutral value.
package classify

import (
	"fmt"

	"github.com/blueprintkit/blueprint/internal/config"
)

// UnsupportedTypeError reports a field whose semantic type is outside the
// closed set. Generation aborts on it; there is no fallback fragment.
type UnsupportedTypeError struct {
	Field string
	Type  config.FieldType
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported field type %q on field %q", e.Type, e.Field)
}

// InputKind is the form-control classification of a field.
type InputKind string

const (
	InputText     InputKind = "text"
	InputNumber   InputKind = "number"
	InputCheckbox InputKind = "checkbox"
	InputDate     InputKind = "date"
	InputDateTime InputKind = "datetime"
	InputEmail    InputKind = "email"
	InputURL      InputKind = "url"
	InputTextarea InputKind = "textarea"
	InputJSON     InputKind = "json"
	InputSelect   InputKind = "select"
	InputFile     InputKind = "file"
	InputRelation InputKind = "relation"
)

// inputKinds maps every supported field type to its control. The table is
// exhaustive over config.FieldTypes; coverage is asserted by a package test
// so a new field type cannot ship without a classification.
var inputKinds = map[config.FieldType]InputKind{
	config.FieldString:   InputText,
	config.FieldNumber:   InputNumber,
	config.FieldBoolean:  InputCheckbox,
	config.FieldDate:     InputDate,
	config.FieldDateTime: InputDateTime,
	config.FieldEmail:    InputEmail,
	config.FieldURL:      InputURL,
	config.FieldText:     InputTextarea,
	config.FieldJSON:     InputJSON,
	config.FieldEnum:     InputSelect,
	config.FieldFile:     InputFile,
	config.FieldImage:    InputFile,
	config.FieldRelation: InputRelation,
}

// Input returns the form control for a field, or an UnsupportedTypeError for
// anything outside the supported set.
func Input(f config.EntityField) (InputKind, error) {
	kind, ok := inputKinds[f.Type]
	if !ok {
		return "", &UnsupportedTypeError{Field: f.Name, Type: f.Type}
	}
	return kind, nil
}

// Searchable reports whether a field participates in table search. Only
// text-like fields can be searched, and only when the flag is set.
func Searchable(f config.EntityField) bool {
	if !f.Searchable {
		return false
	}
	switch f.Type {
	case config.FieldString, config.FieldText, config.FieldEmail, config.FieldURL:
		return true
	}
	return false
}

// Sortable reports whether a table column offers sorting. JSON and file
// fields have no meaningful order regardless of the flag.
func Sortable(f config.EntityField) bool {
	if !f.Sortable {
		return false
	}
	switch f.Type {
	case config.FieldJSON, config.FieldFile, config.FieldImage:
		return false
	}
	return true
}

// Filterable reports whether a field gets a table filter control.
func Filterable(f config.EntityField) bool {
	if !f.Filterable {
		return false
	}
	switch f.Type {
	case config.FieldEnum, config.FieldBoolean, config.FieldDate, config.FieldDateTime, config.FieldRelation:
		return true
	}
	return false
}

// TableFields returns the entity's fields shown as table columns, in
// configuration order.
func TableFields(ent config.EntityDefinition) []config.EntityField {
	var out []config.EntityField
	for _, f := range ent.Fields {
		if f.ShowInTable {
			out = append(out, f)
		}
	}
	return out
}

// FormFields returns the entity's fields shown on the form, in configuration
// order.
func FormFields(ent config.EntityDefinition) []config.EntityField {
	var out []config.EntityField
	for _, f := range ent.Fields {
		if f.ShowInForm {
			out = append(out, f)
		}
	}
	return out
}

// DetailFields returns the entity's fields shown on the detail surface, in
// configuration order.
func DetailFields(ent config.EntityDefinition) []config.EntityField {
	var out []config.EntityField
	for _, f := range ent.Fields {
		if f.ShowInDetail {
			out = append(out, f)
		}
	}
	return out
}

// SearchFields returns the fields participating in table search.
func SearchFields(ent config.EntityDefinition) []config.EntityField {
	var out []config.EntityField
	for _, f := range ent.Fields {
		if Searchable(f) {
			out = append(out, f)
		}
	}
	return out
}

// Exportable reports whether the entity's export artifact should carry this
// field. Files and raw JSON blobs are excluded from flat exports.
func Exportable(f config.EntityField) bool {
	switch f.Type {
	case config.FieldFile, config.FieldImage, config.FieldJSON:
		return false
	}
	return true
}

// VisibleToRoles reports whether a navigation item is visible given the
// caller's role set. An item without role gates is visible to everyone,
// including anonymous visitors (empty role set).
func VisibleToRoles(item config.NavigationItem, roles []string) bool {
	if len(item.Roles) == 0 {
		return true
	}
	for _, want := range item.Roles {
		for _, have := range roles {
			if want == have {
				return true
			}
		}
	}
	return false
}

// GroupVisibleToRoles is VisibleToRoles for a navigation group gate.
func GroupVisibleToRoles(group config.NavigationGroup, roles []string) bool {
	if len(group.Roles) == 0 {
		return true
	}
	for _, want := range group.Roles {
		for _, have := range roles {
			if want == have {
				return true
			}
		}
	}
	return false
}

// Gated reports whether any group or item in the tree carries a role or
// permission gate.
func Gated(groups []config.NavigationGroup) bool {
	var anyGate func(items []config.NavigationItem) bool
	anyGate = func(items []config.NavigationItem) bool {
		for _, it := range items {
			if len(it.Roles) > 0 || len(it.Permissions) > 0 {
				return true
			}
			if anyGate(it.Children) {
				return true
			}
		}
		return false
	}
	for _, g := range groups {
		if len(g.Roles) > 0 || anyGate(g.Items) {
			return true
		}
	}
	return false
}
