package config

// Defaults returns the baseline configuration applied under caller-supplied
// values. It deliberately enables the safe, boring things (logging to the
// console, root error boundary) and leaves every optional artifact family
// off.
func Defaults() AppConfig {
	return AppConfig{
		ErrorHandling: ErrorHandlingConfig{
			Boundaries: BoundaryConfig{
				Enabled:     true,
				Levels:      []string{"root"},
				RetryButton: true,
			},
			Logging: LoggingConfig{
				Enabled: true,
				Level:   "error",
				Console: true,
			},
		},
		Options: Options{
			Pagination: true,
		},
	}
}

// Resolve merges overrides over base field by field and returns the result.
// Precedence is documented per field rather than relying on whole-object
// replacement: a nested block in overrides only wins for the members it
// actually sets, so overriding logging.level does not silently drop the
// default logging.console.
func Resolve(base, overrides AppConfig) AppConfig {
	out := base

	if overrides.Name != "" {
		out.Name = overrides.Name
	}
	// Entity, navigation, role, and permission lists replace wholesale: they
	// are ordered collections where element-wise merging has no sane meaning.
	if overrides.Entities != nil {
		out.Entities = overrides.Entities
	}
	if overrides.Navigation != nil {
		out.Navigation = overrides.Navigation
	}
	if overrides.Roles != nil {
		out.Roles = overrides.Roles
	}
	if overrides.Permissions != nil {
		out.Permissions = overrides.Permissions
	}

	out.ErrorHandling = resolveErrorHandling(base.ErrorHandling, overrides.ErrorHandling)
	out.Options = resolveOptions(base.Options, overrides.Options)
	return out
}

func resolveErrorHandling(base, o ErrorHandlingConfig) ErrorHandlingConfig {
	out := base

	if o.Boundaries.Enabled || o.Boundaries.Levels != nil {
		out.Boundaries = o.Boundaries
	}
	if o.Logging.Enabled {
		out.Logging.Enabled = true
		if o.Logging.Level != "" {
			out.Logging.Level = o.Logging.Level
		}
		// Booleans accumulate like resolveOptions: an override can add
		// console or remote output, but leaving one unset never disables
		// the default.
		out.Logging.Console = out.Logging.Console || o.Logging.Console
		out.Logging.Remote = out.Logging.Remote || o.Logging.Remote
		if o.Logging.RemoteEndpoint != "" {
			out.Logging.RemoteEndpoint = o.Logging.RemoteEndpoint
		}
	}
	if o.Monitoring.Enabled {
		out.Monitoring = o.Monitoring
	}
	if o.Recovery.Enabled {
		out.Recovery = o.Recovery
	}
	if o.Notifications.Enabled {
		out.Notifications = o.Notifications
	}
	if o.Analytics.Enabled {
		out.Analytics = o.Analytics
	}
	if o.Security.ScrubMessages || o.Security.RedactFields != nil {
		out.Security = o.Security
	}
	if o.Environments != nil {
		// Copy instead of writing through so base is never mutated.
		merged := make(map[string]EnvironmentOverride, len(base.Environments)+len(o.Environments))
		for env, ov := range base.Environments {
			merged[env] = ov
		}
		for env, ov := range o.Environments {
			merged[env] = ov
		}
		out.Environments = merged
	}
	return out
}

// resolveOptions ORs each flag: defaults only ever enable baseline behavior,
// so a caller flag can add families but the absence of one never disables a
// default. Callers that need pagination off set it explicitly on the
// resolved value.
func resolveOptions(base, o Options) Options {
	return Options{
		BulkActions: base.BulkActions || o.BulkActions,
		Export:      base.Export || o.Export,
		Import:      base.Import || o.Import,
		APIRoutes:   base.APIRoutes || o.APIRoutes,
		Tests:       base.Tests || o.Tests,
		Middleware:  base.Middleware || o.Middleware,
		Search:      base.Search || o.Search,
		Pagination:  base.Pagination || o.Pagination,
	}
}
