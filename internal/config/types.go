// Package config defines the declarative configuration that drives artifact
// generation: entity definitions, navigation trees, role/permission sets, and
// error-handling policy. Values are plain data: they carry no behavior and
// are never mutated after construction.
package config

// FieldType is the closed set of semantic field types the generators
// understand. Anything outside this set is rejected at classification time.
type FieldType string

const (
	FieldString   FieldType = "string"
	FieldNumber   FieldType = "number"
	FieldBoolean  FieldType = "boolean"
	FieldDate     FieldType = "date"
	FieldDateTime FieldType = "datetime"
	FieldEmail    FieldType = "email"
	FieldURL      FieldType = "url"
	FieldText     FieldType = "text"
	FieldJSON     FieldType = "json"
	FieldEnum     FieldType = "enum"
	FieldFile     FieldType = "file"
	FieldImage    FieldType = "image"
	FieldRelation FieldType = "relation"
)

// fieldTypes enumerates every supported type exactly once. Order matters for
// deterministic error messages and docs output.
var fieldTypes = []FieldType{
	FieldString, FieldNumber, FieldBoolean, FieldDate, FieldDateTime,
	FieldEmail, FieldURL, FieldText, FieldJSON, FieldEnum,
	FieldFile, FieldImage, FieldRelation,
}

// Valid reports whether t is a member of the supported type set.
func (t FieldType) Valid() bool {
	for _, ft := range fieldTypes {
		if t == ft {
			return true
		}
	}
	return false
}

// FieldTypes returns the supported semantic type set in declaration order.
func FieldTypes() []FieldType {
	out := make([]FieldType, len(fieldTypes))
	copy(out, fieldTypes)
	return out
}

// Validation holds per-field constraint knobs. Zero values mean "no
// constraint"; pointers distinguish "absent" from "zero".
type Validation struct {
	Min       *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max       *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	MinLength *int     `json:"min_length,omitempty" yaml:"min_length,omitempty"`
	MaxLength *int     `json:"max_length,omitempty" yaml:"max_length,omitempty"`
	Pattern   string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Message   string   `json:"message,omitempty" yaml:"message,omitempty"`
}

// EntityField describes one field of an entity: its semantic type, the
// surfaces it appears on, and its behavior flags. Absent booleans are
// neutral: a field that does not declare searchable is not searchable.
type EntityField struct {
	Name       string      `json:"name" yaml:"name"`
	Type       FieldType   `json:"type" yaml:"type"`
	Label      string      `json:"label,omitempty" yaml:"label,omitempty"`
	Required   bool        `json:"required,omitempty" yaml:"required,omitempty"`
	Unique     bool        `json:"unique,omitempty" yaml:"unique,omitempty"`
	Default    any         `json:"default,omitempty" yaml:"default,omitempty"`
	Validation *Validation `json:"validation,omitempty" yaml:"validation,omitempty"`

	// EnumValues is required when Type == FieldEnum. The generated schema,
	// types, and form options are all derived from it.
	EnumValues []string `json:"enum_values,omitempty" yaml:"enum_values,omitempty"`

	// RelatedEntity names the target entity when Type == FieldRelation.
	RelatedEntity string `json:"related_entity,omitempty" yaml:"related_entity,omitempty"`

	ShowInTable  bool `json:"show_in_table,omitempty" yaml:"show_in_table,omitempty"`
	ShowInForm   bool `json:"show_in_form,omitempty" yaml:"show_in_form,omitempty"`
	ShowInDetail bool `json:"show_in_detail,omitempty" yaml:"show_in_detail,omitempty"`
	Searchable   bool `json:"searchable,omitempty" yaml:"searchable,omitempty"`
	Sortable     bool `json:"sortable,omitempty" yaml:"sortable,omitempty"`
	Filterable   bool `json:"filterable,omitempty" yaml:"filterable,omitempty"`
}

// RelationKind is the cardinality of an entity relation.
type RelationKind string

const (
	RelationOneToOne   RelationKind = "one_to_one"
	RelationOneToMany  RelationKind = "one_to_many"
	RelationManyToOne  RelationKind = "many_to_one"
	RelationManyToMany RelationKind = "many_to_many"
)

// EntityRelation links two entities.
type EntityRelation struct {
	Name   string       `json:"name" yaml:"name"`
	Target string       `json:"target" yaml:"target"`
	Kind   RelationKind `json:"kind" yaml:"kind"`
}

// EntityIndex declares a (possibly composite, possibly unique) index.
type EntityIndex struct {
	Fields []string `json:"fields" yaml:"fields"`
	Unique bool     `json:"unique,omitempty" yaml:"unique,omitempty"`
}

// EntityDefinition is the configuration for one entity. Field order is
// significant: generated columns and schema lines preserve it exactly.
type EntityDefinition struct {
	Name      string           `json:"name" yaml:"name"`
	Label     string           `json:"label,omitempty" yaml:"label,omitempty"`
	Fields    []EntityField    `json:"fields" yaml:"fields"`
	Relations []EntityRelation `json:"relations,omitempty" yaml:"relations,omitempty"`
	Indexes   []EntityIndex    `json:"indexes,omitempty" yaml:"indexes,omitempty"`

	// Timestamps adds created_at/updated_at columns to generated types.
	Timestamps bool `json:"timestamps,omitempty" yaml:"timestamps,omitempty"`
	// SoftDelete adds a deleted_at column and filters it in generated queries.
	SoftDelete bool `json:"soft_delete,omitempty" yaml:"soft_delete,omitempty"`
}

// Field returns the field with the given name, or nil.
func (e *EntityDefinition) Field(name string) *EntityField {
	for i := range e.Fields {
		if e.Fields[i].Name == name {
			return &e.Fields[i]
		}
	}
	return nil
}

// NavigationItem is one node of the navigation tree. Children recurse; the
// tree is acyclic by construction because it is literal configuration.
type NavigationItem struct {
	ID          string           `json:"id" yaml:"id"`
	Label       string           `json:"label" yaml:"label"`
	Href        string           `json:"href,omitempty" yaml:"href,omitempty"`
	Icon        string           `json:"icon,omitempty" yaml:"icon,omitempty"`
	Children    []NavigationItem `json:"children,omitempty" yaml:"children,omitempty"`
	Roles       []string         `json:"roles,omitempty" yaml:"roles,omitempty"`
	Permissions []string         `json:"permissions,omitempty" yaml:"permissions,omitempty"`
	Disabled    bool             `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	External    bool             `json:"external,omitempty" yaml:"external,omitempty"`
	Separator   bool             `json:"separator,omitempty" yaml:"separator,omitempty"`
	Badge       string           `json:"badge,omitempty" yaml:"badge,omitempty"`
}

// NavigationGroup is an ordered, labelled collection of items. An absent
// Roles list means the group is visible to everyone.
type NavigationGroup struct {
	ID    string           `json:"id" yaml:"id"`
	Label string           `json:"label" yaml:"label"`
	Items []NavigationItem `json:"items" yaml:"items"`
	Roles []string         `json:"roles,omitempty" yaml:"roles,omitempty"`
}

// Permission names one resource/action pair, e.g. "invoice:read".
type Permission struct {
	Name     string `json:"name" yaml:"name"`
	Label    string `json:"label,omitempty" yaml:"label,omitempty"`
	Resource string `json:"resource" yaml:"resource"`
	Action   string `json:"action" yaml:"action"`
}

// Role groups permissions under a name. Every permission it references must
// exist in the configuration's permission set.
type Role struct {
	Name        string   `json:"name" yaml:"name"`
	Label       string   `json:"label,omitempty" yaml:"label,omitempty"`
	Permissions []string `json:"permissions,omitempty" yaml:"permissions,omitempty"`
}

// BoundaryConfig controls generated error-boundary components.
type BoundaryConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
	// Levels selects which boundaries to emit: "root", "page", "component".
	Levels      []string `json:"levels,omitempty" yaml:"levels,omitempty"`
	ShowStack   bool     `json:"show_stack,omitempty" yaml:"show_stack,omitempty"`
	RetryButton bool     `json:"retry_button,omitempty" yaml:"retry_button,omitempty"`
}

// LoggingConfig controls the generated error logger.
type LoggingConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Level   string `json:"level,omitempty" yaml:"level,omitempty"`
	Console bool   `json:"console,omitempty" yaml:"console,omitempty"`
	Remote  bool   `json:"remote,omitempty" yaml:"remote,omitempty"`
	// RemoteEndpoint is required when Remote is set.
	RemoteEndpoint string `json:"remote_endpoint,omitempty" yaml:"remote_endpoint,omitempty"`
}

// MonitoringConfig selects external error-monitoring services. When Enabled,
// at least one service must be listed.
type MonitoringConfig struct {
	Enabled  bool     `json:"enabled" yaml:"enabled"`
	Services []string `json:"services,omitempty" yaml:"services,omitempty"`
	// SampleRate in [0,1]; zero means the service default.
	SampleRate float64 `json:"sample_rate,omitempty" yaml:"sample_rate,omitempty"`
}

// RecoveryConfig controls generated retry/fallback helpers.
type RecoveryConfig struct {
	Enabled     bool `json:"enabled" yaml:"enabled"`
	MaxRetries  int  `json:"max_retries,omitempty" yaml:"max_retries,omitempty"`
	FallbackUI  bool `json:"fallback_ui,omitempty" yaml:"fallback_ui,omitempty"`
	AutoRefresh bool `json:"auto_refresh,omitempty" yaml:"auto_refresh,omitempty"`
}

// NotificationConfig controls generated user-facing error notifications.
type NotificationConfig struct {
	Enabled  bool   `json:"enabled" yaml:"enabled"`
	Style    string `json:"style,omitempty" yaml:"style,omitempty"` // "toast" or "banner"
	Duration int    `json:"duration_ms,omitempty" yaml:"duration_ms,omitempty"`
}

// AnalyticsConfig controls generated error-analytics hooks.
type AnalyticsConfig struct {
	Enabled  bool     `json:"enabled" yaml:"enabled"`
	Trackers []string `json:"trackers,omitempty" yaml:"trackers,omitempty"`
}

// SecurityConfig controls sanitization of error output.
type SecurityConfig struct {
	ScrubMessages bool     `json:"scrub_messages,omitempty" yaml:"scrub_messages,omitempty"`
	RedactFields  []string `json:"redact_fields,omitempty" yaml:"redact_fields,omitempty"`
}

// EnvironmentOverride adjusts error-handling behavior for one environment.
type EnvironmentOverride struct {
	ShowStack  bool   `json:"show_stack,omitempty" yaml:"show_stack,omitempty"`
	LogLevel   string `json:"log_level,omitempty" yaml:"log_level,omitempty"`
	Monitoring *bool  `json:"monitoring,omitempty" yaml:"monitoring,omitempty"`
}

// ErrorHandlingConfig is the policy tree for generated error-handling
// artifacts. Each nested block is independently togglable.
type ErrorHandlingConfig struct {
	Boundaries    BoundaryConfig                 `json:"boundaries,omitempty" yaml:"boundaries,omitempty"`
	Logging       LoggingConfig                  `json:"logging,omitempty" yaml:"logging,omitempty"`
	Monitoring    MonitoringConfig               `json:"monitoring,omitempty" yaml:"monitoring,omitempty"`
	Recovery      RecoveryConfig                 `json:"recovery,omitempty" yaml:"recovery,omitempty"`
	Notifications NotificationConfig             `json:"notifications,omitempty" yaml:"notifications,omitempty"`
	Analytics     AnalyticsConfig                `json:"analytics,omitempty" yaml:"analytics,omitempty"`
	Security      SecurityConfig                 `json:"security,omitempty" yaml:"security,omitempty"`
	Environments  map[string]EnvironmentOverride `json:"environments,omitempty" yaml:"environments,omitempty"`
}

// Options are the generation feature flags. Enabling a flag adds the
// artifact family documented for it; disabling removes it.
type Options struct {
	BulkActions bool `json:"bulk_actions,omitempty" yaml:"bulk_actions,omitempty"`
	Export      bool `json:"export,omitempty" yaml:"export,omitempty"`
	Import      bool `json:"import,omitempty" yaml:"import,omitempty"`
	APIRoutes   bool `json:"api_routes,omitempty" yaml:"api_routes,omitempty"`
	Tests       bool `json:"tests,omitempty" yaml:"tests,omitempty"`
	Middleware  bool `json:"middleware,omitempty" yaml:"middleware,omitempty"`
	Search      bool `json:"search,omitempty" yaml:"search,omitempty"`
	Pagination  bool `json:"pagination,omitempty" yaml:"pagination,omitempty"`
}

// AppConfig is the root configuration value handed to the builder. It is
// read-only throughout a generation run.
type AppConfig struct {
	Name          string              `json:"name" yaml:"name"`
	Entities      []EntityDefinition  `json:"entities,omitempty" yaml:"entities,omitempty"`
	Navigation    []NavigationGroup   `json:"navigation,omitempty" yaml:"navigation,omitempty"`
	Roles         []Role              `json:"roles,omitempty" yaml:"roles,omitempty"`
	Permissions   []Permission        `json:"permissions,omitempty" yaml:"permissions,omitempty"`
	ErrorHandling ErrorHandlingConfig `json:"error_handling,omitempty" yaml:"error_handling,omitempty"`
	Options       Options             `json:"options,omitempty" yaml:"options,omitempty"`
}

// Entity returns the entity definition with the given name, or nil.
func (c *AppConfig) Entity(name string) *EntityDefinition {
	for i := range c.Entities {
		if c.Entities[i].Name == name {
			return &c.Entities[i]
		}
	}
	return nil
}

// PermissionNames returns the set of declared permission names.
func (c *AppConfig) PermissionNames() map[string]bool {
	names := make(map[string]bool, len(c.Permissions))
	for _, p := range c.Permissions {
		names[p.Name] = true
	}
	return names
}
