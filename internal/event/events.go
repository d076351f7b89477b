// Package event defines the lifecycle events of a generation run. The
// preview server publishes these so consumers (logging, live-reload
// notifiers) can observe builds without being wired into the pipeline.
package event

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event carries the canonical shape of every generation event.
type Event struct {
	ID         string
	Type       string
	OccurredAt time.Time
	// Config is the path of the configuration the run was built from.
	Config  string
	Summary string
	Payload json.RawMessage
}

func newID() string { return uuid.New().String() }

func mustJSON(v any) json.RawMessage {
	b, _ := json.Marshal(v)
	return b
}

// BuildStartedPayload carries event-specific data for BuildStarted.
type BuildStartedPayload struct {
	Config string `json:"config"`
}

func NewBuildStarted(configPath string) Event {
	return Event{
		ID:         newID(),
		Type:       "build_started",
		OccurredAt: time.Now(),
		Config:     configPath,
		Summary:    fmt.Sprintf("Build started for %s", configPath),
		Payload:    mustJSON(BuildStartedPayload{Config: configPath}),
	}
}

// BuildSucceededPayload carries event-specific data for BuildSucceeded.
type BuildSucceededPayload struct {
	Config        string `json:"config"`
	ArtifactCount int    `json:"artifact_count"`
	Elapsed       string `json:"elapsed"`
}

func NewBuildSucceeded(configPath string, artifactCount int, elapsed time.Duration) Event {
	return Event{
		ID:         newID(),
		Type:       "build_succeeded",
		OccurredAt: time.Now(),
		Config:     configPath,
		Summary:    fmt.Sprintf("Build of %s produced %d artifacts in %s", configPath, artifactCount, elapsed),
		Payload: mustJSON(BuildSucceededPayload{
			Config:        configPath,
			ArtifactCount: artifactCount,
			Elapsed:       elapsed.String(),
		}),
	}
}

// BuildFailedPayload carries event-specific data for BuildFailed.
type BuildFailedPayload struct {
	Config string `json:"config"`
	Error  string `json:"error"`
}

func NewBuildFailed(configPath string, err error) Event {
	return Event{
		ID:         newID(),
		Type:       "build_failed",
		OccurredAt: time.Now(),
		Config:     configPath,
		Summary:    fmt.Sprintf("Build of %s failed: %v", configPath, err),
		Payload:    mustJSON(BuildFailedPayload{Config: configPath, Error: err.Error()}),
	}
}

// ArtifactsWrittenPayload carries event-specific data for ArtifactsWritten.
type ArtifactsWrittenPayload struct {
	Config string `json:"config"`
	Dir    string `json:"dir"`
	Count  int    `json:"count"`
}

func NewArtifactsWritten(configPath, dir string, count int) Event {
	return Event{
		ID:         newID(),
		Type:       "artifacts_written",
		OccurredAt: time.Now(),
		Config:     configPath,
		Summary:    fmt.Sprintf("Wrote %d artifacts from %s under %s", count, configPath, dir),
		Payload:    mustJSON(ArtifactsWrittenPayload{Config: configPath, Dir: dir, Count: count}),
	}
}
