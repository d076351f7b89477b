package errorhandling

import (
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/blueprintkit/blueprint/internal/artifact"
	"github.com/blueprintkit/blueprint/internal/config"
)

// Generator assembles error-handling artifacts from the policy tree.
type Generator struct {
	cfg *config.AppConfig
}

func New(cfg *config.AppConfig) *Generator {
	return &Generator{cfg: cfg}
}

// Name identifies the generator family in the builder registry.
func (g *Generator) Name() string { return "errorhandling" }

// monitoringSDKs maps a service to the npm package installed for it. The key
// set matches the service names validation accepts.
var monitoringSDKs = map[string]struct{ pkg, version string }{
	"sentry":      {"@sentry/nextjs", "^8.26.0"},
	"datadog":     {"@datadog/browser-rum", "^5.23.0"},
	"bugsnag":     {"@bugsnag/js", "^7.25.0"},
	"rollbar":     {"rollbar", "^2.26.4"},
	"honeybadger": {"@honeybadger-io/js", "^6.10.0"},
}

// Generate emits boundaries, the logger, monitoring bootstrap, optional
// notification/analytics/recovery helpers, then one config module per
// environment in sorted order.
func (g *Generator) Generate() (*artifact.Set, error) {
	set := artifact.NewSet()
	eh := g.cfg.ErrorHandling

	type step struct {
		enabled bool
		path    string
		build   func() (string, error)
	}
	steps := []step{
		{eh.Logging.Enabled, "lib/error-logger.ts", g.loggerArtifact},
		{eh.Monitoring.Enabled, "lib/monitoring.ts", g.monitoringArtifact},
		{eh.Recovery.Enabled, "lib/error-recovery.ts", g.recoveryArtifact},
		{eh.Notifications.Enabled, "lib/error-notifications.ts", g.notificationsArtifact},
		{eh.Analytics.Enabled, "lib/error-analytics.ts", g.analyticsArtifact},
	}

	if eh.Boundaries.Enabled {
		for _, level := range boundaryLevels(eh.Boundaries) {
			level := level
			steps = append(steps, step{
				enabled: true,
				path:    boundaryPath(level),
				build:   func() (string, error) { return g.boundaryArtifact(level) },
			})
		}
	}

	for _, s := range steps {
		if !s.enabled {
			continue
		}
		content, err := s.build()
		if err != nil {
			return nil, fmt.Errorf("errorhandling: %w", err)
		}
		if err := set.Add(s.path, content); err != nil {
			return nil, err
		}
	}

	// One config module per environment override, sorted by name so the
	// artifact list is stable across runs.
	envs := make([]string, 0, len(eh.Environments))
	for name := range eh.Environments {
		envs = append(envs, name)
	}
	sort.Strings(envs)
	for _, env := range envs {
		content, err := g.environmentArtifact(env, eh.Environments[env])
		if err != nil {
			return nil, fmt.Errorf("errorhandling: %w", err)
		}
		if err := set.Add(fmt.Sprintf("config/error-handling.%s.ts", env), content); err != nil {
			return nil, err
		}
	}

	if eh.Boundaries.Enabled {
		if err := set.Dependency("react", "^18.3.0"); err != nil {
			return nil, err
		}
	}
	if eh.Monitoring.Enabled {
		for _, svc := range eh.Monitoring.Services {
			sdk, ok := monitoringSDKs[svc]
			if !ok {
				// Validation rejects unknown services before assembly runs.
				return nil, &artifact.InternalError{Message: "monitoring: unknown service " + svc}
			}
			if err := set.Dependency(sdk.pkg, sdk.version); err != nil {
				return nil, err
			}
		}
		set.Instruct("Set the monitoring DSN/token environment variables referenced in lib/monitoring.ts before deploying.")
	}
	if eh.Notifications.Enabled {
		if err := set.Dependency("sonner", "^1.5.0"); err != nil {
			return nil, err
		}
	}
	if eh.Logging.Remote {
		set.Instruct(fmt.Sprintf("Remote error logging posts to %s; ensure the endpoint accepts JSON bodies.", eh.Logging.RemoteEndpoint))
	}
	return set, nil
}

// boundaryLevels returns the configured levels in canonical order. An empty
// list means root only.
func boundaryLevels(b config.BoundaryConfig) []string {
	if len(b.Levels) == 0 {
		return []string{"root"}
	}
	var out []string
	for _, level := range []string{"root", "page", "component"} {
		for _, want := range b.Levels {
			if want == level {
				out = append(out, level)
				break
			}
		}
	}
	return out
}

func boundaryPath(level string) string {
	if level == "root" {
		return "components/errors/error-boundary.tsx"
	}
	return fmt.Sprintf("components/errors/%s-error-boundary.tsx", level)
}

const boundarySkeleton = `// Generated by blueprint. DO NOT EDIT.
'use client';

import React from 'react';
{{- if .Logging}}
import { logError } from '../../lib/error-logger';
{{- end}}
{{- if .Monitoring}}
import { captureError } from '../../lib/monitoring';
{{- end}}

interface Props {
  children: React.ReactNode;
  fallback?: React.ReactNode;
}

interface State {
  error: Error | null;
}

export class {{.Component}} extends React.Component<Props, State> {
  state: State = { error: null };

  static getDerivedStateFromError(error: Error): State {
    return { error };
  }

  componentDidCatch(error: Error, info: React.ErrorInfo) {
{{- if .Logging}}
    logError(error, { boundary: '{{.Level}}', componentStack: info.componentStack });
{{- end}}
{{- if .Monitoring}}
    captureError(error, { boundary: '{{.Level}}' });
{{- end}}
  }
{{if .RetryButton}}
  reset = () => this.setState({ error: null });
{{end}}
  render() {
    if (this.state.error) {
      if (this.props.fallback) return this.props.fallback;
      return (
        <div role="alert" className="error-boundary error-boundary-{{.Level}}">
          <h2>Something went wrong</h2>
{{- if .ShowStack}}
          <pre>{this.state.error.stack}</pre>
{{- else}}
          <p>{this.state.error.message}</p>
{{- end}}
{{- if .RetryButton}}
          <button onClick={this.reset}>Try again</button>
{{- end}}
        </div>
      );
    }
    return this.props.children;
  }
}
`

func (g *Generator) boundaryArtifact(level string) (string, error) {
	eh := g.cfg.ErrorHandling
	component := "ErrorBoundary"
	if level != "root" {
		component = strings.ToUpper(level[:1]) + level[1:] + "ErrorBoundary"
	}
	return render("boundary", boundarySkeleton, struct {
		Component   string
		Level       string
		ShowStack   bool
		RetryButton bool
		Logging     bool
		Monitoring  bool
	}{
		Component:   component,
		Level:       level,
		ShowStack:   eh.Boundaries.ShowStack,
		RetryButton: eh.Boundaries.RetryButton,
		Logging:     eh.Logging.Enabled,
		Monitoring:  eh.Monitoring.Enabled,
	})
}

const loggerSkeleton = `// Generated by blueprint. DO NOT EDIT.

export type LogLevel = 'debug' | 'info' | 'warn' | 'error';

const levelOrder: Record<LogLevel, number> = { debug: 0, info: 1, warn: 2, error: 3 };
const minLevel: LogLevel = '{{.Level}}';

export interface LogContext {
  [key: string]: unknown;
}
{{if .Scrub}}
const redactedFields = [{{.RedactFields}}];

function scrub(context: LogContext): LogContext {
  const out: LogContext = {};
  for (const [key, value] of Object.entries(context)) {
    out[key] = redactedFields.includes(key) ? '[REDACTED]' : value;
  }
  return out;
}
{{end}}
export function log(level: LogLevel, message: string, context: LogContext = {}) {
  if (levelOrder[level] < levelOrder[minLevel]) return;
{{- if .Scrub}}
  context = scrub(context);
{{- end}}
  const entry = { level, message, context, timestamp: new Date().toISOString() };
{{- if .Console}}
  const method = level === 'debug' ? 'debug' : level;
  console[method](message, context);
{{- end}}
{{- if .Remote}}
  void fetch('{{.RemoteEndpoint}}', {
    method: 'POST',
    headers: { 'Content-Type': 'application/json' },
    body: JSON.stringify(entry),
    keepalive: true,
  }).catch(() => {
    // Never let log delivery take the app down.
  });
{{- end}}
}

export function logError(error: Error, context: LogContext = {}) {
  log('error', error.message, { ...context, stack: error.stack });
}
`

func (g *Generator) loggerArtifact() (string, error) {
	eh := g.cfg.ErrorHandling
	level := eh.Logging.Level
	if level == "" {
		level = "error"
	}
	var redact []string
	for _, f := range eh.Security.RedactFields {
		redact = append(redact, "'"+f+"'")
	}
	return render("logger", loggerSkeleton, struct {
		Level          string
		Console        bool
		Remote         bool
		RemoteEndpoint string
		Scrub          bool
		RedactFields   string
	}{
		Level:          level,
		Console:        eh.Logging.Console,
		Remote:         eh.Logging.Remote,
		RemoteEndpoint: eh.Logging.RemoteEndpoint,
		Scrub:          eh.Security.ScrubMessages && len(eh.Security.RedactFields) > 0,
		RedactFields:   strings.Join(redact, ", "),
	})
}

const monitoringSkeleton = `// Generated by blueprint. DO NOT EDIT.
{{range .Imports}}
{{.}}
{{- end}}

let initialized = false;

export function initMonitoring() {
  if (initialized) return;
  initialized = true;
{{range .Inits}}
{{.}}
{{- end}}
}

export function captureError(error: Error, context: Record<string, unknown> = {}) {
{{range .Captures}}
{{.}}
{{- end}}
}
`

// serviceSnippets holds the import, init, and capture statements for each
// supported service. Indexed in config order at assembly time.
var serviceSnippets = map[string]struct {
	imports string
	init    string
	capture string
}{
	"sentry": {
		imports: "import * as Sentry from '@sentry/nextjs';",
		init: `  Sentry.init({
    dsn: process.env.NEXT_PUBLIC_SENTRY_DSN,
    tracesSampleRate: %RATE%,
  });`,
		capture: "  Sentry.captureException(error, { extra: context });",
	},
	"datadog": {
		imports: "import { datadogRum } from '@datadog/browser-rum';",
		init: `  datadogRum.init({
    applicationId: process.env.NEXT_PUBLIC_DATADOG_APP_ID!,
    clientToken: process.env.NEXT_PUBLIC_DATADOG_CLIENT_TOKEN!,
    site: 'datadoghq.com',
    sessionSampleRate: %RATE100%,
  });`,
		capture: "  datadogRum.addError(error, context);",
	},
	"bugsnag": {
		imports: "import Bugsnag from '@bugsnag/js';",
		init:    "  Bugsnag.start({ apiKey: process.env.NEXT_PUBLIC_BUGSNAG_API_KEY! });",
		capture: `  Bugsnag.notify(error, (event) => {
    event.addMetadata('context', context);
  });`,
	},
	"rollbar": {
		imports: "import Rollbar from 'rollbar';",
		init: `  rollbar = new Rollbar({
    accessToken: process.env.NEXT_PUBLIC_ROLLBAR_TOKEN,
    captureUncaught: true,
  });`,
		capture: "  rollbar?.error(error, context);",
	},
	"honeybadger": {
		imports: "import Honeybadger from '@honeybadger-io/js';",
		init:    "  Honeybadger.configure({ apiKey: process.env.NEXT_PUBLIC_HONEYBADGER_API_KEY! });",
		capture: "  Honeybadger.notify(error, { context });",
	},
}

func (g *Generator) monitoringArtifact() (string, error) {
	mon := g.cfg.ErrorHandling.Monitoring
	rate := mon.SampleRate
	if rate == 0 {
		rate = 1
	}

	var imports, inits, captures []string
	for _, svc := range mon.Services {
		snip, ok := serviceSnippets[svc]
		if !ok {
			return "", &artifact.InternalError{Message: "monitoring: unknown service " + svc}
		}
		imports = append(imports, snip.imports)
		init := strings.ReplaceAll(snip.init, "%RATE%", trimFloat(rate))
		init = strings.ReplaceAll(init, "%RATE100%", trimFloat(rate*100))
		inits = append(inits, init)
		captures = append(captures, snip.capture)
	}
	for _, svc := range mon.Services {
		if svc == "rollbar" {
			imports = append(imports, "\nlet rollbar: Rollbar | undefined;")
			break
		}
	}

	return render("monitoring", monitoringSkeleton, struct {
		Imports  []string
		Inits    []string
		Captures []string
	}{Imports: imports, Inits: inits, Captures: captures})
}

const recoverySkeleton = `// Generated by blueprint. DO NOT EDIT.

const MAX_RETRIES = {{.MaxRetries}};

// withRetry retries fn with exponential backoff, starting at 250ms.
export async function withRetry<T>(fn: () => Promise<T>, retries = MAX_RETRIES): Promise<T> {
  let lastError: unknown;
  for (let attempt = 0; attempt <= retries; attempt++) {
    try {
      return await fn();
    } catch (error) {
      lastError = error;
      if (attempt < retries) {
        await new Promise((resolve) => setTimeout(resolve, 250 * 2 ** attempt));
      }
    }
  }
  throw lastError;
}
{{if .AutoRefresh}}
// refreshOnChunkError reloads the page once when a stale deployment leaves
// the client asking for chunks that no longer exist.
export function refreshOnChunkError(error: Error) {
  if (/Loading chunk .* failed/.test(error.message) && !sessionStorage.getItem('chunk-reload')) {
    sessionStorage.setItem('chunk-reload', '1');
    window.location.reload();
  }
}
{{end}}`

func (g *Generator) recoveryArtifact() (string, error) {
	rec := g.cfg.ErrorHandling.Recovery
	retries := rec.MaxRetries
	if retries == 0 {
		retries = 3
	}
	return render("recovery", recoverySkeleton, struct {
		MaxRetries  int
		AutoRefresh bool
	}{MaxRetries: retries, AutoRefresh: rec.AutoRefresh})
}

const notificationsSkeleton = `// Generated by blueprint. DO NOT EDIT.
import { toast } from 'sonner';

const DURATION_MS = {{.Duration}};

export function notifyError(message: string) {
{{- if eq .Style "banner"}}
  toast.error(message, { duration: DURATION_MS, position: 'top-center', className: 'error-banner' });
{{- else}}
  toast.error(message, { duration: DURATION_MS });
{{- end}}
}

export function notifySuccess(message: string) {
  toast.success(message, { duration: DURATION_MS });
}
`

func (g *Generator) notificationsArtifact() (string, error) {
	n := g.cfg.ErrorHandling.Notifications
	duration := n.Duration
	if duration == 0 {
		duration = 5000
	}
	style := n.Style
	if style == "" {
		style = "toast"
	}
	return render("notifications", notificationsSkeleton, struct {
		Style    string
		Duration int
	}{Style: style, Duration: duration})
}

const analyticsSkeleton = `// Generated by blueprint. DO NOT EDIT.

const trackers = [{{.Trackers}}];

declare global {
  interface Window {
    gtag?: (...args: unknown[]) => void;
    plausible?: (event: string, options?: { props: Record<string, unknown> }) => void;
  }
}

export function trackError(error: Error, context: Record<string, unknown> = {}) {
  for (const tracker of trackers) {
    if (tracker === 'gtag' && window.gtag) {
      window.gtag('event', 'exception', { description: error.message, fatal: false, ...context });
    }
    if (tracker === 'plausible' && window.plausible) {
      window.plausible('error', { props: { message: error.message, ...context } });
    }
  }
}
`

func (g *Generator) analyticsArtifact() (string, error) {
	var quoted []string
	for _, t := range g.cfg.ErrorHandling.Analytics.Trackers {
		quoted = append(quoted, "'"+t+"'")
	}
	return render("analytics", analyticsSkeleton, struct{ Trackers string }{
		Trackers: strings.Join(quoted, ", "),
	})
}

const environmentSkeleton = `// Generated by blueprint. DO NOT EDIT.

// Error-handling overrides for the {{.Env}} environment.
export const errorHandling = {
  environment: '{{.Env}}',
  showStack: {{.ShowStack}},
  logLevel: '{{.LogLevel}}',
  monitoring: {{.Monitoring}},
} as const;
`

func (g *Generator) environmentArtifact(env string, ov config.EnvironmentOverride) (string, error) {
	eh := g.cfg.ErrorHandling
	logLevel := ov.LogLevel
	if logLevel == "" {
		logLevel = eh.Logging.Level
	}
	if logLevel == "" {
		logLevel = "error"
	}
	monitoring := eh.Monitoring.Enabled
	if ov.Monitoring != nil {
		monitoring = *ov.Monitoring
	}
	return render("environment", environmentSkeleton, struct {
		Env        string
		ShowStack  bool
		LogLevel   string
		Monitoring bool
	}{Env: env, ShowStack: ov.ShowStack, LogLevel: logLevel, Monitoring: monitoring})
}

func render(name, skeleton string, data any) (string, error) {
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

func trimFloat(f float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.4f", f), "0"), ".")
}
