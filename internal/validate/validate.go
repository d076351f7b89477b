// Package validate performs structural validation of an AppConfig before any
// generation work begins. Every problem is collected and reported at once;
// the builder never runs an assembler against a configuration that failed
// here.
package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/blueprintkit/blueprint/internal/config"
)

// FieldError locates one problem by configuration path.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (e FieldError) String() string {
	return e.Path + ": " + e.Message
}

// Error aggregates every structural problem found in one pass.
type Error struct {
	Errors []FieldError
}

func (e *Error) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		msgs[i] = fe.String()
	}
	return "invalid configuration: " + strings.Join(msgs, "; ")
}

// identifierRe matches names usable as identifiers in generated code.
var identifierRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// monitoringServices is the closed set of supported monitoring integrations.
var monitoringServices = map[string]bool{
	"sentry":      true,
	"datadog":     true,
	"bugsnag":     true,
	"rollbar":     true,
	"honeybadger": true,
}

// boundaryLevels is the closed set of error-boundary placements.
var boundaryLevels = map[string]bool{
	"root":      true,
	"page":      true,
	"component": true,
}

// lengthConstrained reports whether length and pattern constraints make
// sense for the field type.
func lengthConstrained(t config.FieldType) bool {
	switch t {
	case config.FieldString, config.FieldText, config.FieldEmail, config.FieldURL:
		return true
	}
	return false
}

// Config checks cfg and returns nil or an *Error listing every violation.
func Config(cfg *config.AppConfig) error {
	var errs []FieldError

	if cfg.Name == "" {
		errs = append(errs, FieldError{Path: "name", Message: "application name is required"})
	}

	errs = append(errs, entities(cfg)...)
	errs = append(errs, navigation(cfg)...)
	errs = append(errs, roles(cfg)...)
	errs = append(errs, errorHandling(&cfg.ErrorHandling)...)

	if len(errs) > 0 {
		return &Error{Errors: errs}
	}
	return nil
}

func entities(cfg *config.AppConfig) []FieldError {
	var errs []FieldError
	seenEntities := map[string]bool{}

	for i, ent := range cfg.Entities {
		path := fmt.Sprintf("entities[%d]", i)
		switch {
		case ent.Name == "":
			errs = append(errs, FieldError{Path: path + ".name", Message: "entity name is required"})
		case !identifierRe.MatchString(ent.Name):
			errs = append(errs, FieldError{Path: path + ".name", Message: fmt.Sprintf("%q is not a valid identifier", ent.Name)})
		case seenEntities[ent.Name]:
			errs = append(errs, FieldError{Path: path + ".name", Message: fmt.Sprintf("duplicate entity %q", ent.Name)})
		default:
			seenEntities[ent.Name] = true
		}

		if len(ent.Fields) == 0 {
			errs = append(errs, FieldError{Path: path + ".fields", Message: "entity must declare at least one field"})
		}

		seenFields := map[string]bool{}
		for j, f := range ent.Fields {
			fpath := fmt.Sprintf("%s.fields[%d]", path, j)
			switch {
			case f.Name == "":
				errs = append(errs, FieldError{Path: fpath + ".name", Message: "field name is required"})
			case !identifierRe.MatchString(f.Name):
				errs = append(errs, FieldError{Path: fpath + ".name", Message: fmt.Sprintf("%q is not a valid identifier", f.Name)})
			case seenFields[f.Name]:
				errs = append(errs, FieldError{Path: fpath + ".name", Message: fmt.Sprintf("duplicate field %q", f.Name)})
			default:
				seenFields[f.Name] = true
			}

			if !f.Type.Valid() {
				errs = append(errs, FieldError{
					Path:    fpath + ".type",
					Message: fmt.Sprintf("unsupported field type %q for field %q", f.Type, f.Name),
				})
			}
			if f.Type == config.FieldEnum && len(f.EnumValues) == 0 {
				errs = append(errs, FieldError{
					Path:    fpath + ".enum_values",
					Message: fmt.Sprintf("enum field %q must declare at least one value", f.Name),
				})
			}
			if f.Type == config.FieldRelation {
				if f.RelatedEntity == "" {
					errs = append(errs, FieldError{
						Path:    fpath + ".related_entity",
						Message: fmt.Sprintf("relation field %q must name a target entity", f.Name),
					})
				} else if cfg.Entity(f.RelatedEntity) == nil {
					errs = append(errs, FieldError{
						Path:    fpath + ".related_entity",
						Message: fmt.Sprintf("relation field %q references unknown entity %q", f.Name, f.RelatedEntity),
					})
				}
			}
			if v := f.Validation; v != nil {
				if (v.Min != nil || v.Max != nil) && f.Type != config.FieldNumber {
					errs = append(errs, FieldError{
						Path:    fpath + ".validation",
						Message: fmt.Sprintf("min/max bounds apply to number fields, not %q", f.Type),
					})
				}
				if (v.MinLength != nil || v.MaxLength != nil || v.Pattern != "") && !lengthConstrained(f.Type) {
					errs = append(errs, FieldError{
						Path:    fpath + ".validation",
						Message: fmt.Sprintf("length and pattern constraints apply to text-like fields, not %q", f.Type),
					})
				}
				if v.Min != nil && v.Max != nil && *v.Min > *v.Max {
					errs = append(errs, FieldError{
						Path:    fpath + ".validation",
						Message: fmt.Sprintf("min %v exceeds max %v", *v.Min, *v.Max),
					})
				}
				if v.MinLength != nil && v.MaxLength != nil && *v.MinLength > *v.MaxLength {
					errs = append(errs, FieldError{
						Path:    fpath + ".validation",
						Message: fmt.Sprintf("min_length %d exceeds max_length %d", *v.MinLength, *v.MaxLength),
					})
				}
			}
		}

		for j, rel := range ent.Relations {
			rpath := fmt.Sprintf("%s.relations[%d]", path, j)
			if rel.Target == "" {
				errs = append(errs, FieldError{Path: rpath + ".target", Message: "relation target is required"})
			} else if cfg.Entity(rel.Target) == nil {
				errs = append(errs, FieldError{
					Path:    rpath + ".target",
					Message: fmt.Sprintf("relation %q references unknown entity %q", rel.Name, rel.Target),
				})
			}
		}

		for j, idx := range ent.Indexes {
			for _, fname := range idx.Fields {
				if ent.Field(fname) == nil {
					errs = append(errs, FieldError{
						Path:    fmt.Sprintf("%s.indexes[%d]", path, j),
						Message: fmt.Sprintf("index references unknown field %q", fname),
					})
				}
			}
		}
	}
	return errs
}

func navigation(cfg *config.AppConfig) []FieldError {
	var errs []FieldError
	// Item ids must be unique across the whole tree, not just within a group.
	seen := map[string]bool{}

	var walk func(path string, items []config.NavigationItem)
	walk = func(path string, items []config.NavigationItem) {
		for i, item := range items {
			ipath := fmt.Sprintf("%s[%d]", path, i)
			if item.Separator {
				continue
			}
			switch {
			case item.ID == "":
				errs = append(errs, FieldError{Path: ipath + ".id", Message: "navigation item id is required"})
			case seen[item.ID]:
				errs = append(errs, FieldError{Path: ipath + ".id", Message: fmt.Sprintf("duplicate navigation id %q", item.ID)})
			default:
				seen[item.ID] = true
			}
			if item.Label == "" {
				errs = append(errs, FieldError{Path: ipath + ".label", Message: "navigation item label is required"})
			}
			if item.Href == "" && len(item.Children) == 0 {
				errs = append(errs, FieldError{Path: ipath, Message: fmt.Sprintf("item %q needs an href or children", item.ID)})
			}
			walk(ipath+".children", item.Children)
		}
	}

	for i, group := range cfg.Navigation {
		gpath := fmt.Sprintf("navigation[%d]", i)
		if group.ID == "" {
			errs = append(errs, FieldError{Path: gpath + ".id", Message: "navigation group id is required"})
		}
		walk(gpath+".items", group.Items)
	}
	return errs
}

func roles(cfg *config.AppConfig) []FieldError {
	var errs []FieldError
	known := cfg.PermissionNames()

	seen := map[string]bool{}
	for i, role := range cfg.Roles {
		path := fmt.Sprintf("roles[%d]", i)
		switch {
		case role.Name == "":
			errs = append(errs, FieldError{Path: path + ".name", Message: "role name is required"})
		case seen[role.Name]:
			errs = append(errs, FieldError{Path: path + ".name", Message: fmt.Sprintf("duplicate role %q", role.Name)})
		default:
			seen[role.Name] = true
		}
		for _, p := range role.Permissions {
			if !known[p] {
				errs = append(errs, FieldError{
					Path:    path + ".permissions",
					Message: fmt.Sprintf("role %q references unknown permission %q", role.Name, p),
				})
			}
		}
	}
	return errs
}

func errorHandling(eh *config.ErrorHandlingConfig) []FieldError {
	var errs []FieldError

	if eh.Monitoring.Enabled && len(eh.Monitoring.Services) == 0 {
		errs = append(errs, FieldError{
			Path:    "error_handling.monitoring.services",
			Message: "at least one service required when monitoring is enabled",
		})
	}
	for i, svc := range eh.Monitoring.Services {
		if !monitoringServices[svc] {
			errs = append(errs, FieldError{
				Path:    fmt.Sprintf("error_handling.monitoring.services[%d]", i),
				Message: fmt.Sprintf("unknown monitoring service %q", svc),
			})
		}
	}
	if r := eh.Monitoring.SampleRate; r < 0 || r > 1 {
		errs = append(errs, FieldError{
			Path:    "error_handling.monitoring.sample_rate",
			Message: fmt.Sprintf("sample rate %v outside [0, 1]", r),
		})
	}
	for i, level := range eh.Boundaries.Levels {
		if !boundaryLevels[level] {
			errs = append(errs, FieldError{
				Path:    fmt.Sprintf("error_handling.boundaries.levels[%d]", i),
				Message: fmt.Sprintf("unknown boundary level %q", level),
			})
		}
	}
	if eh.Logging.Remote && eh.Logging.RemoteEndpoint == "" {
		errs = append(errs, FieldError{
			Path:    "error_handling.logging.remote_endpoint",
			Message: "remote logging requires an endpoint",
		})
	}
	return errs
}
