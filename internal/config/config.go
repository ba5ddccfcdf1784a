// Package config defines the declarative site configuration and decodes it
// from TOML or YAML. A configuration names substitution variables and an
// ordered list of files, each read from a local path or a remote URL.
package config

import (
	"fmt"
	"sort"
)

// Config is the decoded configuration. It is read-only after Load returns.
type Config struct {
	// Vars are the named values available to replacement templates.
	Vars map[string]string

	// Files are processed in declared order; later names win on collision.
	Files []FileDeclaration
}

// FileDeclaration describes one served file.
type FileDeclaration struct {
	// Location is either Local or External.
	Location Location

	// Rename, when non-nil, replaces the name derived from Location.
	Rename *string

	// Replacements are applied to the content in order.
	Replacements []Replacement

	// Headers are sent with the GET for External locations. Values are
	// expanded like replacement targets.
	Headers map[string]string
}

// Replacement substitutes every literal occurrence of From with the
// expanded form of To.
type Replacement struct {
	From string
	To   string
}

// Location is where a file's content comes from. The only
// implementations are Local and External.
type Location interface {
	fmt.Stringer
	isLocation()
}

// Local is a file on the local filesystem.
type Local struct {
	Path string
}

func (Local) isLocation() {}

// String returns the path.
func (l Local) String() string { return l.Path }

// External is a file fetched over HTTP(S).
type External struct {
	URL string
}

func (External) isLocation() {}

// String returns the URL.
func (e External) String() string { return e.URL }

// SortedHeaderNames returns the header names of f in a stable order.
func (f FileDeclaration) SortedHeaderNames() []string {
	names := make([]string, 0, len(f.Headers))
	for name := range f.Headers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
