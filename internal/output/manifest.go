package output

import (
	"github.com/EthanYidong/rehost/internal/store"
)

// ManifestEntry describes one served file without its content.
type ManifestEntry struct {
	Name         string `json:"name" yaml:"name"`
	Source       string `json:"source" yaml:"source"`
	Size         int    `json:"size" yaml:"size"`
	Replacements int    `json:"replacements" yaml:"replacements"`
}

// Manifest lists the files in s sorted by name.
func Manifest(s *store.Store) []ManifestEntry {
	entries := s.Entries()
	manifest := make([]ManifestEntry, 0, len(entries))
	for _, e := range entries {
		manifest = append(manifest, ManifestEntry{
			Name:         e.Name,
			Source:       e.Source,
			Size:         e.Size(),
			Replacements: e.Replacements,
		})
	}
	return manifest
}
