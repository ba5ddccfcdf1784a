// Package assemble builds the content store from a configuration: every
// declared file is resolved, passed through its replacements, optionally
// renamed and inserted in declaration order.
package assemble

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/iter"

	"github.com/EthanYidong/rehost/internal/config"
	"github.com/EthanYidong/rehost/internal/interp"
	"github.com/EthanYidong/rehost/internal/source"
	"github.com/EthanYidong/rehost/internal/store"
	"github.com/EthanYidong/rehost/pkg/constants"
	"github.com/EthanYidong/rehost/pkg/logging"
)

// Resolver turns a declaration into its derived name and raw content.
type Resolver interface {
	Resolve(ctx context.Context, decl config.FileDeclaration) (name, content string, err error)
}

// Options controls an assembly run.
type Options struct {
	// UseEnv lets placeholders resolve from the environment before vars.
	UseEnv bool

	// Lookup reads the environment; nil means os.LookupEnv.
	Lookup interp.LookupFunc

	// Resolver reads or fetches sources; nil means a source.Resolver over
	// the OS filesystem with headers expanded by the same engine.
	Resolver Resolver

	// Concurrency bounds how many sources are resolved at once. Values
	// below 1 mean constants.DefaultConcurrency.
	Concurrency int

	// Logger receives per-file and summary events; nil means the context logger.
	Logger *zerolog.Logger
}

type resolved struct {
	name    string
	content string
	err     error
}

// Assemble resolves every file in cfg and returns the finished store. The
// first failing declaration, in declared order, aborts the run.
func Assemble(ctx context.Context, cfg *config.Config, opts Options) (*store.Store, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.FromContext(ctx)
	}

	engine := &interp.Engine{Vars: cfg.Vars, UseEnv: opts.UseEnv, Lookup: opts.Lookup}
	resolver := opts.Resolver
	if resolver == nil {
		resolver = source.NewResolver(source.WithExpander(engine))
	}

	start := time.Now()
	results, err := resolveAll(ctx, resolver, cfg.Files, concurrency(opts.Concurrency))
	if err != nil {
		return nil, err
	}

	b := store.NewBuilder()
	for i, decl := range cfg.Files {
		r := results[i]
		for j, rep := range decl.Replacements {
			if rep.From == "" {
				logger.Debug().Int("index", i).Int("replacement", j).
					Msg("Empty replacement source inserts the target between every character")
			}
		}
		content := Apply(engine, r.content, decl.Replacements)
		name := r.name
		if decl.Rename != nil {
			name = *decl.Rename
		}

		entry := store.Entry{
			Name:         name,
			Content:      content,
			Source:       decl.Location.String(),
			Replacements: len(decl.Replacements),
		}
		if prev, replaced := b.Put(entry); replaced {
			logger.Warn().
				Str("name", name).
				Str("previous", prev.Source).
				Str("source", entry.Source).
				Msg("Later file replaces earlier file with the same name")
		}

		logger.Debug().
			Int("index", i).
			Str("name", name).
			Str("source", entry.Source).
			Int("bytes", len(content)).
			Int("replacements", entry.Replacements).
			Msg("Assembled file")
	}

	s := b.Build()
	logger.Info().
		Int("declared", len(cfg.Files)).
		Int("served", s.Len()).
		Dur("elapsed", time.Since(start)).
		Msg("Assembly complete")
	return s, nil
}

// Apply runs the replacements over content in order. Each target is
// expanded with engine before it is substituted.
func Apply(engine *interp.Engine, content string, replacements []config.Replacement) string {
	for _, rep := range replacements {
		content = strings.ReplaceAll(content, rep.From, engine.Expand(rep.To))
	}
	return content
}

// resolveAll resolves files with at most n in flight. Results keep the
// declaration order, and the reported error is that of the earliest
// failing declaration.
func resolveAll(ctx context.Context, r Resolver, files []config.FileDeclaration, n int) ([]resolved, error) {
	if n <= 1 || len(files) <= 1 {
		results := make([]resolved, len(files))
		for i, decl := range files {
			name, content, err := r.Resolve(ctx, decl)
			if err != nil {
				return nil, err
			}
			results[i] = resolved{name: name, content: content}
		}
		return results, nil
	}

	mapper := iter.Mapper[config.FileDeclaration, resolved]{MaxGoroutines: n}
	results := mapper.Map(files, func(decl *config.FileDeclaration) resolved {
		name, content, err := r.Resolve(ctx, *decl)
		return resolved{name: name, content: content, err: err}
	})
	for _, res := range results {
		if res.err != nil {
			return nil, res.err
		}
	}
	return results, nil
}

func concurrency(n int) int {
	switch {
	case n < 1:
		return constants.DefaultConcurrency
	case n > constants.MaxConcurrency:
		return constants.MaxConcurrency
	}
	return n
}
