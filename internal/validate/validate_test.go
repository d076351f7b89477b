package validate

import (
	"errors"
	"strings"
	"testing"

	"github.com/blueprintkit/blueprint/internal/config"
)

func validConfig() *config.AppConfig {
	return &config.AppConfig{
		Name: "shop",
		Entities: []config.EntityDefinition{
			{
				Name: "Product",
				Fields: []config.EntityField{
					{Name: "title", Type: config.FieldString, Required: true},
					{Name: "status", Type: config.FieldEnum, EnumValues: []string{"draft", "live"}},
				},
			},
		},
		Navigation: []config.NavigationGroup{
			{ID: "main", Label: "Main", Items: []config.NavigationItem{
				{ID: "home", Label: "Home", Href: "/"},
			}},
		},
	}
}

// pathErr reports whether any collected error sits at a path containing frag.
func pathErr(t *testing.T, err error, frag string) bool {
	t.Helper()
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("error = %T, want *Error", err)
	}
	for _, fe := range verr.Errors {
		if strings.Contains(fe.Path, frag) {
			return true
		}
	}
	return false
}

func TestConfig_Valid(t *testing.T) {
	if err := Config(validConfig()); err != nil {
		t.Fatalf("Config() = %v, want nil", err)
	}
}

func TestConfig_MissingAppName(t *testing.T) {
	cfg := validConfig()
	cfg.Name = ""
	err := Config(cfg)
	if err == nil || !pathErr(t, err, "name") {
		t.Fatalf("expected name error, got %v", err)
	}
}

func TestConfig_DuplicateEntity(t *testing.T) {
	cfg := validConfig()
	cfg.Entities = append(cfg.Entities, cfg.Entities[0])
	err := Config(cfg)
	if err == nil || !pathErr(t, err, "entities[1].name") {
		t.Fatalf("expected duplicate entity error, got %v", err)
	}
}

func TestConfig_UnsupportedFieldType(t *testing.T) {
	cfg := validConfig()
	cfg.Entities[0].Fields = append(cfg.Entities[0].Fields, config.EntityField{
		Name: "price", Type: config.FieldType("currency"),
	})
	err := Config(cfg)
	if err == nil || !pathErr(t, err, "fields[2].type") {
		t.Fatalf("expected field type error, got %v", err)
	}
	if !strings.Contains(err.Error(), "currency") {
		t.Errorf("error should name the offending type: %v", err)
	}
	if !strings.Contains(err.Error(), "price") {
		t.Errorf("error should name the offending field: %v", err)
	}
}

func TestConfig_EnumWithoutValues(t *testing.T) {
	cfg := validConfig()
	cfg.Entities[0].Fields[1].EnumValues = nil
	err := Config(cfg)
	if err == nil || !pathErr(t, err, "enum_values") {
		t.Fatalf("expected enum_values error, got %v", err)
	}
}

func TestConfig_RelationToUnknownEntity(t *testing.T) {
	cfg := validConfig()
	cfg.Entities[0].Fields = append(cfg.Entities[0].Fields, config.EntityField{
		Name: "vendor", Type: config.FieldRelation, RelatedEntity: "Vendor",
	})
	err := Config(cfg)
	if err == nil || !pathErr(t, err, "related_entity") {
		t.Fatalf("expected related_entity error, got %v", err)
	}
}

func TestConfig_MinExceedsMax(t *testing.T) {
	cfg := validConfig()
	min, max := 10.0, 1.0
	cfg.Entities[0].Fields = append(cfg.Entities[0].Fields, config.EntityField{
		Name: "price", Type: config.FieldNumber,
		Validation: &config.Validation{Min: &min, Max: &max},
	})
	err := Config(cfg)
	if err == nil || !pathErr(t, err, "fields[2].validation") {
		t.Fatalf("expected validation bounds error, got %v", err)
	}
}

func TestConfig_NumericBoundsOnStringField(t *testing.T) {
	cfg := validConfig()
	min := 0.5
	cfg.Entities[0].Fields[0].Validation = &config.Validation{Min: &min}
	err := Config(cfg)
	if err == nil || !pathErr(t, err, "fields[0].validation") {
		t.Fatalf("expected constraint/type mismatch error, got %v", err)
	}
	if !strings.Contains(err.Error(), "number fields") {
		t.Errorf("error should say bounds are for number fields: %v", err)
	}
}

func TestConfig_LengthConstraintsOnNumberField(t *testing.T) {
	cfg := validConfig()
	minLen := 3
	cfg.Entities[0].Fields = append(cfg.Entities[0].Fields, config.EntityField{
		Name: "price", Type: config.FieldNumber,
		Validation: &config.Validation{MinLength: &minLen},
	})
	err := Config(cfg)
	if err == nil || !pathErr(t, err, "fields[2].validation") {
		t.Fatalf("expected constraint/type mismatch error, got %v", err)
	}
}

func TestConfig_DuplicateNavigationIDAcrossGroups(t *testing.T) {
	cfg := validConfig()
	cfg.Navigation = append(cfg.Navigation, config.NavigationGroup{
		ID: "extra", Label: "Extra", Items: []config.NavigationItem{
			{ID: "home", Label: "Home again", Href: "/again"},
		},
	})
	err := Config(cfg)
	if err == nil || !pathErr(t, err, "navigation[1].items[0].id") {
		t.Fatalf("expected duplicate nav id error, got %v", err)
	}
}

func TestConfig_ItemNeedsHrefOrChildren(t *testing.T) {
	cfg := validConfig()
	cfg.Navigation[0].Items = append(cfg.Navigation[0].Items, config.NavigationItem{
		ID: "dangling", Label: "Dangling",
	})
	err := Config(cfg)
	if err == nil || !pathErr(t, err, "items[1]") {
		t.Fatalf("expected href-or-children error, got %v", err)
	}
}

func TestConfig_RoleWithUnknownPermission(t *testing.T) {
	cfg := validConfig()
	cfg.Roles = []config.Role{{Name: "editor", Permissions: []string{"product:write"}}}
	err := Config(cfg)
	if err == nil || !pathErr(t, err, "roles[0].permissions") {
		t.Fatalf("expected unknown permission error, got %v", err)
	}
}

func TestConfig_MonitoringEnabledWithoutServices(t *testing.T) {
	cfg := validConfig()
	cfg.ErrorHandling.Monitoring.Enabled = true
	err := Config(cfg)
	if err == nil || !pathErr(t, err, "error_handling.monitoring.services") {
		t.Fatalf("expected monitoring services error, got %v", err)
	}
}

func TestConfig_UnknownMonitoringService(t *testing.T) {
	cfg := validConfig()
	cfg.ErrorHandling.Monitoring.Enabled = true
	cfg.ErrorHandling.Monitoring.Services = []string{"newrelic"}
	err := Config(cfg)
	if err == nil || !pathErr(t, err, "monitoring.services[0]") {
		t.Fatalf("expected unknown service error, got %v", err)
	}
}

func TestConfig_SampleRateBounds(t *testing.T) {
	cfg := validConfig()
	cfg.ErrorHandling.Monitoring.Enabled = true
	cfg.ErrorHandling.Monitoring.Services = []string{"sentry"}
	cfg.ErrorHandling.Monitoring.SampleRate = 1.5
	err := Config(cfg)
	if err == nil || !pathErr(t, err, "sample_rate") {
		t.Fatalf("expected sample rate error, got %v", err)
	}
}

func TestConfig_RemoteLoggingNeedsEndpoint(t *testing.T) {
	cfg := validConfig()
	cfg.ErrorHandling.Logging.Enabled = true
	cfg.ErrorHandling.Logging.Remote = true
	err := Config(cfg)
	if err == nil || !pathErr(t, err, "remote_endpoint") {
		t.Fatalf("expected remote endpoint error, got %v", err)
	}
}

func TestConfig_CollectsAllErrorsAtOnce(t *testing.T) {
	cfg := validConfig()
	cfg.Name = ""
	cfg.Entities[0].Fields[1].EnumValues = nil
	cfg.ErrorHandling.Monitoring.Enabled = true

	err := Config(cfg)
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("error = %T, want *Error", err)
	}
	if len(verr.Errors) < 3 {
		t.Errorf("collected %d errors, want at least 3: %v", len(verr.Errors), verr)
	}
}
