package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"gopkg.in/yaml.v3"
)

// Load reads a configuration file, merges it over Defaults, and returns the
// resolved value. The format is chosen by extension: .cue, .yaml/.yml, or
// .json. Loading performs no validation beyond decoding; structural checks
// belong to the validate package so that every problem is reported at once.
func Load(path string) (AppConfig, error) {
	var overrides AppConfig
	var err error

	switch ext := filepath.Ext(path); ext {
	case ".cue":
		overrides, err = loadCUE(path)
	case ".yaml", ".yml":
		overrides, err = loadYAML(path)
	case ".json":
		overrides, err = loadJSON(path)
	default:
		return AppConfig{}, fmt.Errorf("config: unsupported extension %q (want .cue, .yaml, or .json)", ext)
	}
	if err != nil {
		return AppConfig{}, err
	}
	return Resolve(Defaults(), overrides), nil
}

func loadCUE(path string) (AppConfig, error) {
	ctx := cuecontext.New()

	insts := load.Instances([]string{path}, &load.Config{Dir: filepath.Dir(path)})
	if len(insts) == 0 {
		return AppConfig{}, fmt.Errorf("config: no CUE instances found in %s", path)
	}
	if insts[0].Err != nil {
		return AppConfig{}, fmt.Errorf("config: loading CUE: %w", insts[0].Err)
	}
	val := ctx.BuildInstance(insts[0])
	if val.Err() != nil {
		return AppConfig{}, fmt.Errorf("config: building CUE value: %w", val.Err())
	}

	var cfg AppConfig
	if err := val.Decode(&cfg); err != nil {
		return AppConfig{}, fmt.Errorf("config: decoding CUE value: %w", err)
	}
	return cfg, nil
}

func loadYAML(path string) (AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return AppConfig{}, fmt.Errorf("config: %w", err)
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("config: decoding YAML: %w", err)
	}
	return cfg, nil
}

func loadJSON(path string) (AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return AppConfig{}, fmt.Errorf("config: %w", err)
	}
	var cfg AppConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("config: decoding JSON: %w", err)
	}
	return cfg, nil
}
