// Package artifact defines the output model of a generation run: a list of
// path/content pairs plus the dependency manifest and setup instructions that
// accompany them. A Set enforces the cross-artifact invariant that no two
// artifacts share a path.
package artifact

import "fmt"

// Artifact is one generated file.
type Artifact struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// InternalError reports an invariant violation inside the engine itself,
// such as two assemblers producing the same artifact path. It is always a
// programming error, never a configuration problem.
type InternalError struct {
	Message string
}

func (e *InternalError) Error() string {
	return "internal: " + e.Message
}

// Set is the complete output of one generation run. Artifacts preserve the
// order in which assemblers produced them.
type Set struct {
	Artifacts       []Artifact        `json:"artifacts"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"dev_dependencies"`
	Instructions    []string          `json:"instructions"`

	paths map[string]bool
}

// NewSet returns an empty artifact set.
func NewSet() *Set {
	return &Set{
		Dependencies:    map[string]string{},
		DevDependencies: map[string]string{},
		paths:           map[string]bool{},
	}
}

// Add appends an artifact, rejecting duplicate paths.
func (s *Set) Add(path, content string) error {
	if s.paths[path] {
		return &InternalError{Message: fmt.Sprintf("duplicate artifact path %q", path)}
	}
	s.paths[path] = true
	s.Artifacts = append(s.Artifacts, Artifact{Path: path, Content: content})
	return nil
}

// Dependency records a runtime dependency. Re-recording the same name with a
// different version spec is an engine bug.
func (s *Set) Dependency(name, version string) error {
	if v, ok := s.Dependencies[name]; ok && v != version {
		return &InternalError{Message: fmt.Sprintf("conflicting versions for dependency %q: %s vs %s", name, v, version)}
	}
	s.Dependencies[name] = version
	return nil
}

// DevDependency records a development-only dependency.
func (s *Set) DevDependency(name, version string) error {
	if v, ok := s.DevDependencies[name]; ok && v != version {
		return &InternalError{Message: fmt.Sprintf("conflicting versions for dev dependency %q: %s vs %s", name, v, version)}
	}
	s.DevDependencies[name] = version
	return nil
}

// Instruct appends a human-readable setup instruction.
func (s *Set) Instruct(line string) {
	s.Instructions = append(s.Instructions, line)
}

// Merge appends everything from other into s, preserving other's artifact
// order and enforcing the path-uniqueness and version-consistency invariants.
func (s *Set) Merge(other *Set) error {
	for _, a := range other.Artifacts {
		if err := s.Add(a.Path, a.Content); err != nil {
			return err
		}
	}
	for name, v := range other.Dependencies {
		if err := s.Dependency(name, v); err != nil {
			return err
		}
	}
	for name, v := range other.DevDependencies {
		if err := s.DevDependency(name, v); err != nil {
			return err
		}
	}
	s.Instructions = append(s.Instructions, other.Instructions...)
	return nil
}

// Paths returns every artifact path in output order.
func (s *Set) Paths() []string {
	out := make([]string, len(s.Artifacts))
	for i, a := range s.Artifacts {
		out[i] = a.Path
	}
	return out
}

// Get returns the artifact at path, if present.
func (s *Set) Get(path string) (Artifact, bool) {
	for _, a := range s.Artifacts {
		if a.Path == path {
			return a, true
		}
	}
	return Artifact{}, false
}
