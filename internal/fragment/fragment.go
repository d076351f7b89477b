// Package fragment provides the structured unit of generated output. Every
// fragment corresponds to exactly one configuration entry (a field, a column,
// a menu item); assemblers join rendered fragments with fixed separators into
// complete artifact bodies. Keeping fragments structured instead of raw
// strings lets builders and assemblers be tested independently of final text
// layout.
package fragment

import "strings"

// Kind tags what a fragment is a piece of.
type Kind string

const (
	KindTypeField  Kind = "type_field"   // one member of a generated interface
	KindSchemaRule Kind = "schema_rule"  // one validation-schema line
	KindColumn     Kind = "column"       // one table column definition
	KindControl    Kind = "control"      // one form control
	KindMenuEntry  Kind = "menu_entry"   // one navigation entry
	KindStatement  Kind = "statement"    // one generic statement
)

// Fragment is one irreducible piece of generated output. Name identifies the
// configuration entry it came from; Expr is its main expression; Attrs are
// modifier chains appended to Expr; Body carries multi-line content for
// block-shaped fragments.
type Fragment struct {
	Kind  Kind
	Name  string
	Expr  string
	Attrs []string
	Body  []string
}

// Render serializes the fragment to text. Single-line fragments become
// "Name: Expr" with attrs chained; block fragments render their body lines
// verbatim.
func (f Fragment) Render() string {
	if len(f.Body) > 0 {
		return strings.Join(f.Body, "\n")
	}
	expr := f.Expr + strings.Join(f.Attrs, "")
	if f.Name == "" {
		return expr
	}
	return f.Name + ": " + expr
}

// List is an ordered collection of fragments. Order always mirrors the order
// of entries in the source configuration.
type List []Fragment

// Render joins the rendered fragments with sep, prefixing each with indent.
func (l List) Render(indent, sep string) string {
	parts := make([]string, len(l))
	for i, f := range l {
		parts[i] = indent + f.Render()
	}
	return strings.Join(parts, sep)
}

// Names returns the source entry name of each fragment, in order.
func (l List) Names() []string {
	names := make([]string, len(l))
	for i, f := range l {
		names[i] = f.Name
	}
	return names
}

// Indent prefixes every line of s with the given prefix. Blank lines are
// left blank.
func Indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
