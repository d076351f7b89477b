// Package navigation generates the navigation artifact family: the typed
// navigation config module, sidebar/navbar/breadcrumb components, and the
// optional role-gate middleware. It also provides role-based tree filtering
// used both at generation time and in the emitted middleware's semantics.
package navigation

import (
	"github.com/blueprintkit/blueprint/internal/classify"
	"github.com/blueprintkit/blueprint/internal/config"
)

// FilterByRoles returns the navigation groups visible to the given role set.
// Items whose gates do not match are pruned along with their subtrees; a
// parent that survives keeps only its visible children. Filtering is
// idempotent: filtering an already-filtered tree by the same role set is a
// no-op.
func FilterByRoles(groups []config.NavigationGroup, roles []string) []config.NavigationGroup {
	var out []config.NavigationGroup
	for _, g := range groups {
		if !classify.GroupVisibleToRoles(g, roles) {
			continue
		}
		filtered := g
		filtered.Items = filterItems(g.Items, roles)
		if len(filtered.Items) == 0 {
			continue
		}
		out = append(out, filtered)
	}
	return out
}

func filterItems(items []config.NavigationItem, roles []string) []config.NavigationItem {
	var out []config.NavigationItem
	for _, item := range items {
		if !classify.VisibleToRoles(item, roles) {
			continue
		}
		kept := item
		kept.Children = filterItems(item.Children, roles)
		// A pure container with all children pruned has nothing to show.
		if kept.Href == "" && len(item.Children) > 0 && len(kept.Children) == 0 {
			continue
		}
		out = append(out, kept)
	}
	return out
}

// Flatten returns every item in the tree in depth-first configuration order.
func Flatten(groups []config.NavigationGroup) []config.NavigationItem {
	var out []config.NavigationItem
	var walk func(items []config.NavigationItem)
	walk = func(items []config.NavigationItem) {
		for _, it := range items {
			out = append(out, it)
			walk(it.Children)
		}
	}
	for _, g := range groups {
		walk(g.Items)
	}
	return out
}
