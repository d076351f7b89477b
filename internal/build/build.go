// Package build runs the full generation pipeline: validate the
// configuration, run every registered generator family in order, and merge
// their outputs into a single artifact set. Validation failures stop the run
// before any assembler executes.
package build

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/blueprintkit/blueprint/internal/artifact"
	"github.com/blueprintkit/blueprint/internal/config"
	"github.com/blueprintkit/blueprint/internal/gen/crud"
	"github.com/blueprintkit/blueprint/internal/gen/errorhandling"
	"github.com/blueprintkit/blueprint/internal/gen/navigation"
	"github.com/blueprintkit/blueprint/internal/validate"
)

// Generator is one artifact family. Implementations must be deterministic:
// the same configuration always yields byte-identical output.
type Generator interface {
	Name() string
	Generate() (*artifact.Set, error)
}

// Factory constructs a generator bound to one configuration.
type Factory func(cfg *config.AppConfig) Generator

// Registry holds generator factories in registration order. Construction is
// explicit; nothing registers itself at import time.
type Registry struct {
	order     []string
	factories map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: map[string]Factory{}}
}

// Register adds a factory under name. Registering the same name twice is an
// engine bug and returns an error rather than silently replacing.
func (r *Registry) Register(name string, f Factory) error {
	if _, ok := r.factories[name]; ok {
		return &artifact.InternalError{Message: fmt.Sprintf("generator %q registered twice", name)}
	}
	r.order = append(r.order, name)
	r.factories[name] = f
	return nil
}

// Names returns the registered family names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Default returns the standard registry: crud, navigation, then error
// handling. Output order follows registration order.
func Default() *Registry {
	r := NewRegistry()
	// Registration of distinct literal names cannot fail.
	_ = r.Register("crud", func(cfg *config.AppConfig) Generator { return crud.New(cfg) })
	_ = r.Register("navigation", func(cfg *config.AppConfig) Generator { return navigation.New(cfg) })
	_ = r.Register("errorhandling", func(cfg *config.AppConfig) Generator { return errorhandling.New(cfg) })
	return r
}

// Run validates cfg and, if it is clean, runs every generator in registry
// order and merges the results. On validation failure the returned error is
// a *validate.Error and no generator has run.
func Run(cfg *config.AppConfig, reg *Registry) (*artifact.Set, error) {
	if err := validate.Config(cfg); err != nil {
		return nil, err
	}

	set := artifact.NewSet()
	for _, name := range reg.order {
		gen := reg.factories[name](cfg)
		out, err := gen.Generate()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", gen.Name(), err)
		}
		if err := set.Merge(out); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// Build runs the default registry over cfg.
func Build(cfg *config.AppConfig) (*artifact.Set, error) {
	return Run(cfg, Default())
}

// Result pairs one configuration's output with its source index.
type Result struct {
	Config *config.AppConfig
	Set    *artifact.Set
}

// BuildAll generates every configuration concurrently. Each run is
// independent; the first failure cancels the rest. Results come back in
// input order regardless of completion order.
func BuildAll(ctx context.Context, cfgs []*config.AppConfig) ([]Result, error) {
	results := make([]Result, len(cfgs))
	g, ctx := errgroup.WithContext(ctx)
	for i, cfg := range cfgs {
		i, cfg := i, cfg
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			set, err := Build(cfg)
			if err != nil {
				return fmt.Errorf("%s: %w", cfg.Name, err)
			}
			results[i] = Result{Config: cfg, Set: set}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
