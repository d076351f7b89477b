// Package writer puts an artifact set onto disk. Every run records a
// manifest so a later run can tell generated files apart from hand-edited
// ones and refuse to clobber the latter.
package writer

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/blueprintkit/blueprint/internal/artifact"
)

// ManifestName is the tracking file written into the output root.
const ManifestName = ".blueprint-manifest.json"

// Policy decides what happens when a target file already exists.
type Policy int

const (
	// Refuse aborts on any existing file not tracked by the manifest.
	Refuse Policy = iota
	// Force overwrites unconditionally.
	Force
	// Tracked overwrites files whose on-disk hash matches the previous
	// manifest entry and refuses files changed since the last run.
	Tracked
)

// Manifest records one run's outputs and their content hashes.
type Manifest struct {
	RunID       string            `json:"run_id"`
	GeneratedAt time.Time         `json:"generated_at"`
	Files       map[string]string `json:"files"` // path -> sha256 hex
}

// Writer writes artifact sets under a root directory.
type Writer struct {
	Root   string
	Policy Policy
}

// New returns a writer rooted at dir with the Tracked policy.
func New(dir string) *Writer {
	return &Writer{Root: dir, Policy: Tracked}
}

// Write materializes every artifact under the root, creating directories as
// needed, then writes the manifest. It returns the paths written, relative
// to the root and in artifact order.
func (w *Writer) Write(set *artifact.Set) ([]string, error) {
	prev, err := w.loadManifest()
	if err != nil {
		return nil, err
	}

	// Check the whole set before touching anything so a conflict midway
	// cannot leave a half-written tree.
	for _, a := range set.Artifacts {
		if err := w.check(a, prev); err != nil {
			return nil, err
		}
	}

	manifest := Manifest{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Files:       make(map[string]string, len(set.Artifacts)),
	}
	var written []string
	for _, a := range set.Artifacts {
		target := filepath.Join(w.Root, filepath.FromSlash(a.Path))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", filepath.Dir(target), err)
		}
		if err := os.WriteFile(target, []byte(a.Content), 0o644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", a.Path, err)
		}
		manifest.Files[a.Path] = hash(a.Content)
		written = append(written, a.Path)
	}

	// Carry forward entries from earlier runs into the same root so writing
	// one config's set at a time keeps every previously generated file
	// tracked.
	if prev != nil {
		for path, sum := range prev.Files {
			if _, ok := manifest.Files[path]; !ok {
				manifest.Files[path] = sum
			}
		}
	}

	if err := w.saveManifest(manifest); err != nil {
		return nil, err
	}
	return written, nil
}

func (w *Writer) check(a artifact.Artifact, prev *Manifest) error {
	target := filepath.Join(w.Root, filepath.FromSlash(a.Path))
	existing, err := os.ReadFile(target)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", a.Path, err)
	}

	switch w.Policy {
	case Force:
		return nil
	case Refuse:
		return fmt.Errorf("%s already exists; rerun with --force to overwrite", a.Path)
	case Tracked:
		if prev == nil {
			return fmt.Errorf("%s already exists and no manifest tracks it; rerun with --force to overwrite", a.Path)
		}
		want, tracked := prev.Files[a.Path]
		if !tracked {
			return fmt.Errorf("%s already exists outside the manifest; rerun with --force to overwrite", a.Path)
		}
		if hash(string(existing)) != want {
			return fmt.Errorf("%s was edited since the last run; rerun with --force to overwrite", a.Path)
		}
		return nil
	default:
		return &artifact.InternalError{Message: fmt.Sprintf("unknown write policy %d", w.Policy)}
	}
}

func (w *Writer) loadManifest() (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(w.Root, ManifestName))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return &m, nil
}

func (w *Writer) saveManifest(m Manifest) error {
	if err := os.MkdirAll(w.Root, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", w.Root, err)
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(w.Root, ManifestName), append(data, '\n'), 0o644)
}

func hash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
