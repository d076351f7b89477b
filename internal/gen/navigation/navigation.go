package navigation

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/blueprintkit/blueprint/internal/artifact"
	"github.com/blueprintkit/blueprint/internal/config"
	"github.com/blueprintkit/blueprint/internal/fragment"
)

// Generator assembles navigation artifacts from the configured tree.
type Generator struct {
	cfg *config.AppConfig
}

// New returns a navigation generator over the given (already validated)
// config.
func New(cfg *config.AppConfig) *Generator {
	return &Generator{cfg: cfg}
}

// Name identifies the generator family in the builder registry.
func (g *Generator) Name() string { return "navigation" }

// Generate produces the navigation artifact set in fixed order: config
// module, sidebar, navbar, breadcrumbs, then middleware when enabled and
// something in the tree is actually gated.
func (g *Generator) Generate() (*artifact.Set, error) {
	set := artifact.NewSet()
	if len(g.cfg.Navigation) == 0 {
		return set, nil
	}

	steps := []struct {
		path  string
		build func() (string, error)
	}{
		{"config/navigation.ts", g.configArtifact},
		{"components/navigation/sidebar.tsx", g.sidebarArtifact},
		{"components/navigation/navbar.tsx", g.navbarArtifact},
		{"components/navigation/breadcrumbs.tsx", g.breadcrumbsArtifact},
	}
	emitMiddleware := g.cfg.Options.Middleware && len(protectedRouteRules(g.cfg.Navigation)) > 0
	if emitMiddleware {
		steps = append(steps, struct {
			path  string
			build func() (string, error)
		}{"middleware.ts", g.middlewareArtifact})
	}

	for _, step := range steps {
		content, err := step.build()
		if err != nil {
			return nil, fmt.Errorf("navigation: %w", err)
		}
		if err := set.Add(step.path, content); err != nil {
			return nil, err
		}
	}

	if err := set.Dependency("react", "^18.3.0"); err != nil {
		return nil, err
	}
	if emitMiddleware {
		set.Instruct("middleware.ts expects a session cookie named 'session' carrying the signed role list.")
	}
	return set, nil
}

const configSkeleton = `// Generated by blueprint. DO NOT EDIT.

export interface NavItem {
  id: string;
  label: string;
  href?: string;
  icon?: string;
  roles?: string[];
  disabled?: boolean;
  external?: boolean;
  separator?: boolean;
  badge?: string;
  children?: NavItem[];
}

export interface NavGroup {
  id: string;
  label: string;
  roles?: string[];
  items: NavItem[];
}

export const navigation: NavGroup[] = [
{{.Groups}}
];

// filterByRoles prunes gated entries. Filtering an already-filtered tree by
// the same roles returns an identical tree.
export function filterByRoles(groups: NavGroup[], roles: string[]): NavGroup[] {
  const visible = (gates?: string[]) =>
    !gates || gates.length === 0 || gates.some((g) => roles.includes(g));
  const filterItems = (items: NavItem[]): NavItem[] =>
    items
      .filter((item) => visible(item.roles))
      .map((item) => ({ ...item, children: item.children ? filterItems(item.children) : undefined }))
      .filter((item) => item.href || !item.children || item.children.length > 0);
  return groups
    .filter((group) => visible(group.roles))
    .map((group) => ({ ...group, items: filterItems(group.items) }))
    .filter((group) => group.items.length > 0);
}
`

// itemFragment renders one NavItem literal, recursing into children. Depth
// controls indentation so nested literals stay readable.
func itemFragment(item config.NavigationItem, depth int) fragment.Fragment {
	pad := strings.Repeat("  ", depth)
	if item.Separator {
		return fragment.Fragment{
			Kind: fragment.KindMenuEntry,
			Name: item.ID,
			Body: []string{fmt.Sprintf("%s{ id: '%s', label: '', separator: true },", pad, item.ID)},
		}
	}

	var body []string
	body = append(body, pad+"{")
	body = append(body, fmt.Sprintf("%s  id: '%s',", pad, item.ID))
	body = append(body, fmt.Sprintf("%s  label: '%s',", pad, escape(item.Label)))
	if item.Href != "" {
		body = append(body, fmt.Sprintf("%s  href: '%s',", pad, item.Href))
	}
	if item.Icon != "" {
		body = append(body, fmt.Sprintf("%s  icon: '%s',", pad, item.Icon))
	}
	if len(item.Roles) > 0 {
		body = append(body, fmt.Sprintf("%s  roles: [%s],", pad, quoteList(item.Roles)))
	}
	if item.Disabled {
		body = append(body, pad+"  disabled: true,")
	}
	if item.External {
		body = append(body, pad+"  external: true,")
	}
	if item.Badge != "" {
		body = append(body, fmt.Sprintf("%s  badge: '%s',", pad, escape(item.Badge)))
	}
	if len(item.Children) > 0 {
		body = append(body, pad+"  children: [")
		for _, child := range item.Children {
			body = append(body, itemFragment(child, depth+2).Body...)
		}
		body = append(body, pad+"  ],")
	}
	body = append(body, pad+"},")

	return fragment.Fragment{Kind: fragment.KindMenuEntry, Name: item.ID, Body: body}
}

// configArtifact renders the navigation config module. Group and item order
// mirror the configuration exactly.
func (g *Generator) configArtifact() (string, error) {
	var lines []string
	for _, group := range g.cfg.Navigation {
		lines = append(lines, "  {")
		lines = append(lines, fmt.Sprintf("    id: '%s',", group.ID))
		lines = append(lines, fmt.Sprintf("    label: '%s',", escape(group.Label)))
		if len(group.Roles) > 0 {
			lines = append(lines, fmt.Sprintf("    roles: [%s],", quoteList(group.Roles)))
		}
		lines = append(lines, "    items: [")
		for _, item := range group.Items {
			lines = append(lines, itemFragment(item, 3).Body...)
		}
		lines = append(lines, "    ],")
		lines = append(lines, "  },")
	}

	return renderNav("nav-config", configSkeleton, struct{ Groups string }{
		Groups: strings.Join(lines, "\n"),
	})
}

const sidebarSkeleton = `// Generated by blueprint. DO NOT EDIT.
'use client';

import Link from 'next/link';
import { usePathname } from 'next/navigation';
import { navigation, filterByRoles, type NavItem } from '../../config/navigation';

interface SidebarProps {
  roles?: string[];
}

function SidebarItem({ item, pathname }: { item: NavItem; pathname: string }) {
  if (item.separator) return <hr className="my-2" />;
  const active = item.href != null && pathname.startsWith(item.href);
  return (
    <li>
      {item.href ? (
        <Link
          href={item.href}
          className={active ? 'nav-link active' : 'nav-link'}
          aria-disabled={item.disabled}
          {...(item.external ? { target: '_blank', rel: 'noreferrer' } : {})}
        >
          {item.label}
          {item.badge && <span className="badge">{item.badge}</span>}
        </Link>
      ) : (
        <span className="nav-heading">{item.label}</span>
      )}
      {item.children && item.children.length > 0 && (
        <ul className="pl-4">
          {item.children.map((child) => (
            <SidebarItem key={child.id} item={child} pathname={pathname} />
          ))}
        </ul>
      )}
    </li>
  );
}

export function Sidebar({ roles = [] }: SidebarProps) {
  const pathname = usePathname();
  const groups = filterByRoles(navigation, roles);
  return (
    <nav className="sidebar">
      {groups.map((group) => (
        <div key={group.id}>
          <h3 className="nav-group-label">{group.label}</h3>
          <ul>
            {group.items.map((item) => (
              <SidebarItem key={item.id} item={item} pathname={pathname} />
            ))}
          </ul>
        </div>
      ))}
    </nav>
  );
}
`

func (g *Generator) sidebarArtifact() (string, error) {
	return renderNav("sidebar", sidebarSkeleton, nil)
}

const navbarSkeleton = `// Generated by blueprint. DO NOT EDIT.
'use client';

import Link from 'next/link';
import { navigation, filterByRoles } from '../../config/navigation';

interface NavbarProps {
  appName: string;
  roles?: string[];
}

export function Navbar({ appName, roles = [] }: NavbarProps) {
  const groups = filterByRoles(navigation, roles);
  const topLevel = groups.flatMap((group) => group.items).filter((item) => item.href);
  return (
    <header className="navbar">
      <Link href="/" className="navbar-brand">
        {appName}
      </Link>
      <ul className="navbar-links">
        {topLevel.map((item) => (
          <li key={item.id}>
            <Link href={item.href!}>{item.label}</Link>
          </li>
        ))}
      </ul>
    </header>
  );
}
`

func (g *Generator) navbarArtifact() (string, error) {
	return renderNav("navbar", navbarSkeleton, nil)
}

const breadcrumbsSkeleton = `// Generated by blueprint. DO NOT EDIT.
'use client';

import Link from 'next/link';
import { usePathname } from 'next/navigation';
import { navigation, type NavItem } from '../../config/navigation';

// trail finds the chain of items leading to the given pathname.
function trail(items: NavItem[], pathname: string, acc: NavItem[]): NavItem[] | null {
  for (const item of items) {
    const next = [...acc, item];
    if (item.href === pathname) return next;
    if (item.children) {
      const found = trail(item.children, pathname, next);
      if (found) return found;
    }
  }
  return null;
}

export function Breadcrumbs() {
  const pathname = usePathname();
  const chain =
    navigation
      .map((group) => trail(group.items, pathname, []))
      .find((result) => result != null) ?? [];
  if (chain.length === 0) return null;
  return (
    <nav aria-label="Breadcrumb">
      <ol className="breadcrumbs">
        <li>
          <Link href="/">Home</Link>
        </li>
        {chain.map((item, i) => (
          <li key={item.id} aria-current={i === chain.length - 1 ? 'page' : undefined}>
            {item.href && i < chain.length - 1 ? <Link href={item.href}>{item.label}</Link> : item.label}
          </li>
        ))}
      </ol>
    </nav>
  );
}
`

func (g *Generator) breadcrumbsArtifact() (string, error) {
	return renderNav("breadcrumbs", breadcrumbsSkeleton, nil)
}

const middlewareSkeleton = `// Generated by blueprint. DO NOT EDIT.
import { NextResponse, type NextRequest } from 'next/server';

// Route prefixes and the roles allowed through. Derived from every gated
// navigation item with an href.
const protectedRoutes: { prefix: string; roles: string[] }[] = [
{{.Routes}}
];

function sessionRoles(request: NextRequest): string[] {
  const cookie = request.cookies.get('session');
  if (!cookie) return [];
  try {
    const session = JSON.parse(atob(cookie.value.split('.')[1] ?? ''));
    return Array.isArray(session.roles) ? session.roles : [];
  } catch {
    return [];
  }
}

export function middleware(request: NextRequest) {
  const { pathname } = request.nextUrl;
  const rule = protectedRoutes.find((r) => pathname.startsWith(r.prefix));
  if (!rule) return NextResponse.next();

  const roles = sessionRoles(request);
  if (rule.roles.some((r) => roles.includes(r))) {
    return NextResponse.next();
  }
  const login = request.nextUrl.clone();
  login.pathname = '/login';
  login.searchParams.set('from', pathname);
  return NextResponse.redirect(login);
}

export const config = {
  matcher: [{{.Matchers}}],
};
`

// routeRule pairs one protected href prefix with the roles allowed through.
type routeRule struct {
	prefix string
	roles  []string
}

// protectedRouteRules collects every item with an href that is role-gated,
// directly or through an enclosing group or ancestor item, in depth-first
// configuration order. A group's roles flow down to items that do not
// declare their own.
func protectedRouteRules(groups []config.NavigationGroup) []routeRule {
	var out []routeRule
	var walk func(items []config.NavigationItem, inherited []string)
	walk = func(items []config.NavigationItem, inherited []string) {
		for _, item := range items {
			gates := item.Roles
			if len(gates) == 0 {
				gates = inherited
			}
			if len(gates) > 0 && item.Href != "" {
				out = append(out, routeRule{prefix: item.Href, roles: gates})
			}
			walk(item.Children, gates)
		}
	}
	for _, group := range groups {
		walk(group.Items, group.Roles)
	}
	return out
}

// middlewareArtifact assembles middleware.ts from every role-gated item that
// has an href, in depth-first configuration order.
func (g *Generator) middlewareArtifact() (string, error) {
	var routes, matchers []string
	for _, rule := range protectedRouteRules(g.cfg.Navigation) {
		routes = append(routes, fmt.Sprintf("  { prefix: '%s', roles: [%s] },", rule.prefix, quoteList(rule.roles)))
		matchers = append(matchers, fmt.Sprintf("'%s/:path*'", rule.prefix))
	}
	return renderNav("middleware", middlewareSkeleton, struct {
		Routes   string
		Matchers string
	}{
		Routes:   strings.Join(routes, "\n"),
		Matchers: strings.Join(matchers, ", "),
	})
}

func renderNav(name, skeleton string, data any) (string, error) {
	tmpl, err := template.New(name).Parse(skeleton)
	if err != nil {
		return "", fmt.Errorf("parsing %s skeleton: %w", name, err)
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return sb.String(), nil
}

func escape(s string) string {
	return strings.ReplaceAll(s, "'", "\\'")
}

func quoteList(vals []string) string {
	quoted := make([]string, len(vals))
	for i, v := range vals {
		quoted[i] = "'" + v + "'"
	}
	return strings.Join(quoted, ", ")
}
