package phh

import (
	"fmt"
	"os"
	"path/filepath"
)

// Recorder writes every hand of a session into a per-session directory
// of .phh files.
type Recorder struct {
	dir string
}

// NewRecorder creates a recorder rooted at dir.
func NewRecorder(dir string) *Recorder {
	return &Recorder{dir: dir}
}

// ExportHand writes one hand to <dir>/<sessionID>/<num>.phh.
func (r *Recorder) ExportHand(sessionID string, h Hand) error {
	hh, err := FromHand(h)
	if err != nil {
		return err
	}

	dir := filepath.Join(r.dir, sessionID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	f, err := os.Create(filepath.Join(dir, fmt.Sprintf("%d.phh", h.Num)))
	if err != nil {
		return err
	}
	defer f.Close()

	return Encode(f, hh)
}
