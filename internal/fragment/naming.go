package fragment

import (
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
)

var rules = ruleset()

func ruleset() *inflect.Ruleset {
	rules := inflect.NewDefaultRuleset()
	for _, w := range []string{
		"API", "CSV", "HTML", "HTTP", "ID", "JSON", "SKU", "SQL", "UI",
		"URL", "UUID",
	} {
		rules.AddAcronym(w)
	}
	return rules
}

// Pascal converts a name to PascalCase: "order_item" -> "OrderItem".
func Pascal(s string) string {
	return rules.Camelize(inflect.Underscore(s))
}

// Camel converts a name to camelCase: "order_item" -> "orderItem".
func Camel(s string) string {
	return rules.CamelizeDownFirst(inflect.Underscore(s))
}

// Snake converts a name to snake_case: "OrderItem" -> "order_item".
func Snake(s string) string {
	return inflect.Underscore(s)
}

// Kebab converts a name to kebab-case: "OrderItem" -> "order-item".
func Kebab(s string) string {
	return strings.ReplaceAll(inflect.Underscore(s), "_", "-")
}

// Plural pluralizes the final word of a name, preserving its casing style:
// "Invoice" -> "Invoices", "order_item" -> "order_items".
func Plural(s string) string {
	return rules.Pluralize(s)
}

// PluralKebab is the kebab-case plural used for route paths:
// "OrderItem" -> "order-items".
func PluralKebab(s string) string {
	return Kebab(rules.Pluralize(inflect.Underscore(s)))
}

// Label produces a human-readable label from an identifier:
// "unit_price" -> "Unit Price". An explicit label in configuration always
// wins over this derivation.
func Label(s string) string {
	parts := strings.FieldsFunc(inflect.Underscore(s), func(r rune) bool {
		return r == '_' || r == '-' || unicode.IsSpace(r)
	})
	for i, p := range parts {
		parts[i] = inflect.Capitalize(p)
	}
	return strings.Join(parts, " ")
}
