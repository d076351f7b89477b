package fragment

import "testing"

func TestPascal(t *testing.T) {
	cases := map[string]string{
		"order_item": "OrderItem",
		"product":    "Product",
		"Product":    "Product",
	}
	for in, want := range cases {
		if got := Pascal(in); got != want {
			t.Errorf("Pascal(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCamel(t *testing.T) {
	cases := map[string]string{
		"order_item": "orderItem",
		"Product":    "product",
		"unit_price": "unitPrice",
	}
	for in, want := range cases {
		if got := Camel(in); got != want {
			t.Errorf("Camel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestKebab(t *testing.T) {
	if got := Kebab("OrderItem"); got != "order-item" {
		t.Errorf("Kebab(OrderItem) = %q, want order-item", got)
	}
}

func TestPluralKebab(t *testing.T) {
	cases := map[string]string{
		"OrderItem": "order-items",
		"Category":  "categories",
		"Product":   "products",
	}
	for in, want := range cases {
		if got := PluralKebab(in); got != want {
			t.Errorf("PluralKebab(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLabel(t *testing.T) {
	cases := map[string]string{
		"unit_price": "Unit Price",
		"title":      "Title",
	}
	for in, want := range cases {
		if got := Label(in); got != want {
			t.Errorf("Label(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFragmentRender(t *testing.T) {
	f := Fragment{Kind: KindTypeField, Name: "title", Expr: "string"}
	if got := f.Render(); got != "title: string" {
		t.Errorf("Render() = %q", got)
	}
}

func TestListRenderPreservesOrder(t *testing.T) {
	l := List{
		{Kind: KindTypeField, Name: "b", Expr: "string"},
		{Kind: KindTypeField, Name: "a", Expr: "number"},
	}
	got := l.Render("  ", "\n")
	want := "  b: string\n  a: number"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}
