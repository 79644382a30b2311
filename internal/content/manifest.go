package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"golang.org/x/mod/semver"
)

// SupportedMajor is the pack format major version this build reads.
const SupportedMajor = "v1"

// ErrIncompatiblePack is returned for packs with an unreadable format.
var ErrIncompatiblePack = errors.New("incompatible content pack")

// Manifest describes a content pack (manifest.json at the pack root).
type Manifest struct {
	Format    string   `json:"format"`
	Name      string   `json:"name"`
	Languages []string `json:"languages"`
}

// Compatible checks Format is a semantic version with the supported major.
func (m Manifest) Compatible() error {
	if !semver.IsValid(m.Format) {
		return fmt.Errorf("%w: format %q is not a semantic version", ErrIncompatiblePack, m.Format)
	}
	if major := semver.Major(m.Format); major != SupportedMajor {
		return fmt.Errorf("%w: format %s, want %s.x", ErrIncompatiblePack, m.Format, SupportedMajor)
	}
	return nil
}

// Manifest returns the pack manifest. Packs without one are treated as
// the oldest supported format.
func (l *Loader) Manifest() (Manifest, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.manifestLocked()
}

func (l *Loader) manifestLocked() (Manifest, error) {
	if l.manifest != nil {
		return *l.manifest, nil
	}
	m := Manifest{Format: SupportedMajor + ".0.0"}
	raw, err := fs.ReadFile(l.fsys, "manifest.json")
	switch {
	case errors.Is(err, fs.ErrNotExist):
		l.logger.Debug("content pack has no manifest", "assumed_format", m.Format)
	case err != nil:
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	default:
		if err := json.Unmarshal(raw, &m); err != nil {
			return Manifest{}, fmt.Errorf("decode manifest: %w", err)
		}
	}
	if err := m.Compatible(); err != nil {
		return Manifest{}, err
	}
	l.manifest = &m
	return m, nil
}
