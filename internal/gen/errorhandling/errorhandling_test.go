package errorhandling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blueprintkit/blueprint/internal/config"
)

func policyConfig() *config.AppConfig {
	return &config.AppConfig{
		Name: "shop",
		ErrorHandling: config.ErrorHandlingConfig{
			Boundaries: config.BoundaryConfig{
				Enabled:     true,
				Levels:      []string{"root", "page"},
				RetryButton: true,
			},
			Logging: config.LoggingConfig{Enabled: true, Level: "warn", Console: true},
		},
	}
}

func TestGenerate_BoundariesPerLevel(t *testing.T) {
	set, err := New(policyConfig()).Generate()
	require.NoError(t, err)

	paths := set.Paths()
	assert.Contains(t, paths, "components/errors/error-boundary.tsx")
	assert.Contains(t, paths, "components/errors/page-error-boundary.tsx")
	assert.NotContains(t, paths, "components/errors/component-error-boundary.tsx")

	root, ok := set.Get("components/errors/error-boundary.tsx")
	require.True(t, ok)
	assert.Contains(t, root.Content, "export class ErrorBoundary")
	assert.Contains(t, root.Content, "Try again")
	assert.Contains(t, root.Content, "logError(error")

	page, ok := set.Get("components/errors/page-error-boundary.tsx")
	require.True(t, ok)
	assert.Contains(t, page.Content, "export class PageErrorBoundary")
}

func TestGenerate_BoundaryLevelsCanonicalOrder(t *testing.T) {
	cfg := policyConfig()
	cfg.ErrorHandling.Boundaries.Levels = []string{"component", "root"}

	set, err := New(cfg).Generate()
	require.NoError(t, err)

	paths := set.Paths()
	// root renders before component regardless of config list order.
	rootIdx, compIdx := -1, -1
	for i, p := range paths {
		switch p {
		case "components/errors/error-boundary.tsx":
			rootIdx = i
		case "components/errors/component-error-boundary.tsx":
			compIdx = i
		}
	}
	require.GreaterOrEqual(t, rootIdx, 0)
	require.GreaterOrEqual(t, compIdx, 0)
	assert.Less(t, rootIdx, compIdx)
}

func TestGenerate_LoggerRespectsPolicy(t *testing.T) {
	cfg := policyConfig()
	cfg.ErrorHandling.Logging.Remote = true
	cfg.ErrorHandling.Logging.RemoteEndpoint = "https://logs.example.com/ingest"

	set, err := New(cfg).Generate()
	require.NoError(t, err)

	logger, ok := set.Get("lib/error-logger.ts")
	require.True(t, ok)
	assert.Contains(t, logger.Content, "const minLevel: LogLevel = 'warn'")
	assert.Contains(t, logger.Content, "https://logs.example.com/ingest")
	assert.Contains(t, set.Instructions[len(set.Instructions)-1], "logs.example.com")
}

func TestGenerate_MonitoringAddsServiceSDKs(t *testing.T) {
	cfg := policyConfig()
	cfg.ErrorHandling.Monitoring = config.MonitoringConfig{
		Enabled:    true,
		Services:   []string{"sentry", "datadog"},
		SampleRate: 0.25,
	}

	set, err := New(cfg).Generate()
	require.NoError(t, err)

	mon, ok := set.Get("lib/monitoring.ts")
	require.True(t, ok)
	assert.Contains(t, mon.Content, "Sentry.init")
	assert.Contains(t, mon.Content, "tracesSampleRate: 0.25")
	assert.Contains(t, mon.Content, "datadogRum.init")
	assert.Contains(t, mon.Content, "sessionSampleRate: 25")

	assert.Equal(t, "^8.26.0", set.Dependencies["@sentry/nextjs"])
	assert.Equal(t, "^5.23.0", set.Dependencies["@datadog/browser-rum"])
	assert.NotContains(t, set.Dependencies, "rollbar")
}

func TestGenerate_EnvironmentConfigsSorted(t *testing.T) {
	cfg := policyConfig()
	monOff := false
	cfg.ErrorHandling.Environments = map[string]config.EnvironmentOverride{
		"production":  {LogLevel: "error", Monitoring: &monOff},
		"development": {ShowStack: true, LogLevel: "debug"},
	}

	set, err := New(cfg).Generate()
	require.NoError(t, err)

	paths := set.Paths()
	devIdx, prodIdx := -1, -1
	for i, p := range paths {
		switch p {
		case "config/error-handling.development.ts":
			devIdx = i
		case "config/error-handling.production.ts":
			prodIdx = i
		}
	}
	require.GreaterOrEqual(t, devIdx, 0)
	require.GreaterOrEqual(t, prodIdx, 0)
	assert.Less(t, devIdx, prodIdx, "environments must render in sorted order")

	dev, _ := set.Get("config/error-handling.development.ts")
	assert.Contains(t, dev.Content, "showStack: true")
	assert.Contains(t, dev.Content, "logLevel: 'debug'")

	prod, _ := set.Get("config/error-handling.production.ts")
	assert.Contains(t, prod.Content, "monitoring: false")
}

func TestGenerate_NotificationsAndRecovery(t *testing.T) {
	cfg := policyConfig()
	cfg.ErrorHandling.Notifications = config.NotificationConfig{Enabled: true, Style: "banner", Duration: 8000}
	cfg.ErrorHandling.Recovery = config.RecoveryConfig{Enabled: true, MaxRetries: 5, AutoRefresh: true}

	set, err := New(cfg).Generate()
	require.NoError(t, err)

	notify, ok := set.Get("lib/error-notifications.ts")
	require.True(t, ok)
	assert.Contains(t, notify.Content, "DURATION_MS = 8000")
	assert.Contains(t, notify.Content, "top-center")
	assert.Equal(t, "^1.5.0", set.Dependencies["sonner"])

	rec, ok := set.Get("lib/error-recovery.ts")
	require.True(t, ok)
	assert.Contains(t, rec.Content, "MAX_RETRIES = 5")
	assert.Contains(t, rec.Content, "refreshOnChunkError")
}

func TestGenerate_DisabledBlocksEmitNothing(t *testing.T) {
	set, err := New(&config.AppConfig{Name: "shop"}).Generate()
	require.NoError(t, err)
	assert.Empty(t, set.Artifacts)
	assert.Empty(t, set.Dependencies)
}

func TestGenerate_Deterministic(t *testing.T) {
	cfg := policyConfig()
	cfg.ErrorHandling.Environments = map[string]config.EnvironmentOverride{
		"staging": {}, "production": {}, "development": {},
	}

	first, err := New(cfg).Generate()
	require.NoError(t, err)
	second, err := New(cfg).Generate()
	require.NoError(t, err)
	assert.Equal(t, first.Paths(), second.Paths())
}
