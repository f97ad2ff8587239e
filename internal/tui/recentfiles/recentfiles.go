// ABOUTME: Upload history for the TUI file picker
// ABOUTME: Records which local files were uploaded and where they landed, newest first

package recentfiles

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"
)

// MaxRecentFiles caps the history length
const MaxRecentFiles = 5

// FileName is the history file inside the config directory
const FileName = "recent_uploads.json"

// Entry is one successful upload
type Entry struct {
	Path       string    `json:"path"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// History is the on-disk upload history. Entries are loaded lazily.
type History struct {
	dir     string
	entries []Entry
	loaded  bool
	now     func() time.Time
}

// New returns the history kept in configDir
func New(configDir string) *History {
	return &History{dir: configDir, now: time.Now}
}

func (h *History) file() string {
	return filepath.Join(h.dir, FileName)
}

// Load rereads the file. Entries whose local file is gone are dropped;
// an unreadable history counts as empty.
func (h *History) Load() ([]Entry, error) {
	h.entries = nil
	h.loaded = true

	data, err := os.ReadFile(h.file())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var stored []Entry
	if json.Unmarshal(data, &stored) != nil {
		return nil, nil
	}
	for _, e := range stored {
		if e.Path == "" {
			continue
		}
		if _, err := os.Stat(e.Path); err == nil {
			h.entries = append(h.entries, e)
		}
	}
	return h.entries, nil
}

// Record puts path at the front, replacing an older entry for it
func (h *History) Record(path, url string) error {
	h.ensureLoaded()

	next := []Entry{{Path: path, URL: url, UploadedAt: h.now().UTC()}}
	for _, e := range h.entries {
		if e.Path != path {
			next = append(next, e)
		}
	}
	if len(next) > MaxRecentFiles {
		next = next[:MaxRecentFiles]
	}
	h.entries = next
	return h.save()
}

// Entries returns the history, newest first
func (h *History) Entries() []Entry {
	h.ensureLoaded()
	return slices.Clone(h.entries)
}

// Paths lists the local files in history order
func (h *History) Paths() []string {
	h.ensureLoaded()
	paths := make([]string, len(h.entries))
	for i, e := range h.entries {
		paths[i] = e.Path
	}
	return paths
}

func (h *History) ensureLoaded() {
	if !h.loaded {
		h.Load()
	}
}

func (h *History) save() error {
	if err := os.MkdirAll(h.dir, 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(h.entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(h.file(), data, 0600)
}
