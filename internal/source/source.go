// Package source resolves file declarations to a served name and text
// content, reading local files through an afero filesystem and remote
// files through the transport client.
package source

import (
	"context"
	"net/url"
	"path"
	"path/filepath"
	"strconv"
	"unicode/utf8"

	"github.com/spf13/afero"

	"github.com/EthanYidong/rehost/internal/config"
	"github.com/EthanYidong/rehost/internal/transport"
	"github.com/EthanYidong/rehost/pkg/errors"
)

// Fetcher retrieves remote text. *transport.Client satisfies it.
type Fetcher interface {
	FetchText(ctx context.Context, url string, decorators ...transport.Decorator) (string, error)
}

// Expander expands placeholders in header values. *interp.Engine satisfies it.
type Expander interface {
	Expand(template string) string
}

// Resolver turns a FileDeclaration into (name, content).
type Resolver struct {
	fs       afero.Fs
	fetcher  Fetcher
	expander Expander
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithFs sets the filesystem used for local paths.
func WithFs(fs afero.Fs) Option {
	return func(r *Resolver) {
		r.fs = fs
	}
}

// WithFetcher sets the client used for remote URLs.
func WithFetcher(f Fetcher) Option {
	return func(r *Resolver) {
		r.fetcher = f
	}
}

// WithExpander sets the expander applied to request header values.
func WithExpander(e Expander) Option {
	return func(r *Resolver) {
		r.expander = e
	}
}

// NewResolver returns a Resolver over the OS filesystem and a default
// transport client.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		fs:      afero.NewOsFs(),
		fetcher: transport.New(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve reads or fetches the declared file. The returned name is derived
// from the location; renaming is left to the caller.
func (r *Resolver) Resolve(ctx context.Context, decl config.FileDeclaration) (name, content string, err error) {
	switch loc := decl.Location.(type) {
	case config.Local:
		return r.resolveLocal(loc)
	case config.External:
		return r.resolveExternal(ctx, loc, decl.Headers)
	case nil:
		return "", "", errors.NewConfigError("", "file", "declaration has no location", nil)
	default:
		return "", "", errors.NewConfigError("", "file", "unsupported location "+loc.String(), nil)
	}
}

func (r *Resolver) resolveLocal(loc config.Local) (string, string, error) {
	name, ok := LocalName(loc.Path)
	if !ok {
		return "", "", &errors.IOError{
			Operation: "resolve",
			Path:      loc.Path,
			Message:   "path has no file name",
		}
	}

	data, err := afero.ReadFile(r.fs, loc.Path)
	if err != nil {
		return "", "", errors.WrapIO("read", loc.Path, err)
	}
	if !utf8.Valid(data) {
		return "", "", &errors.IOError{
			Operation: "read",
			Path:      loc.Path,
			Message:   "content is not valid UTF-8",
		}
	}
	return name, string(data), nil
}

func (r *Resolver) resolveExternal(ctx context.Context, loc config.External, headers map[string]string) (string, string, error) {
	name, err := URLName(loc.URL)
	if err != nil {
		return "", "", err
	}

	var decorators []transport.Decorator
	if len(headers) > 0 {
		expanded := make(transport.Headers, len(headers))
		for k, v := range headers {
			if r.expander != nil {
				v = r.expander.Expand(v)
			}
			expanded[k] = v
		}
		decorators = append(decorators, expanded)
	}

	content, err := r.fetcher.FetchText(ctx, loc.URL, decorators...)
	if err != nil {
		return "", "", err
	}
	return name, content, nil
}

// LocalName returns the final component of p. Paths without one (empty,
// the root, or ending in "..") report false.
func LocalName(p string) (string, bool) {
	if p == "" {
		return "", false
	}
	base := filepath.Base(filepath.Clean(p))
	switch base {
	case ".", "..", string(filepath.Separator), "":
		return "", false
	}
	return base, true
}

// URLName parses raw and returns its last non-empty path segment. Only
// absolute http and https URLs with a host are accepted.
func URLName(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", errors.NewFetchError(raw, 0, "malformed URL", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", errors.NewFetchError(raw, 0, "unsupported scheme "+strconv.Quote(u.Scheme), nil)
	}
	if u.Host == "" {
		return "", errors.NewFetchError(raw, 0, "URL has no host", nil)
	}

	p := u.Path
	for len(p) > 0 && p[len(p)-1] == '/' {
		p = p[:len(p)-1]
	}
	name := path.Base(p)
	if p == "" || name == "/" || name == "." || name == ".." {
		return "", errors.NewFetchError(raw, 0, "URL path has no file name", nil)
	}
	return name, nil
}

