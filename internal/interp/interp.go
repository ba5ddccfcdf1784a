// Package interp expands `{name}` placeholders in replacement templates.
//
// A placeholder is an opening brace, zero or more word characters and a
// closing brace. It is recognised at the start of the template or after any
// character other than a backslash; `\{name}` is left for the unescape pass,
// which finally turns every `\{` into `{` and every `\}` into `}`.
//
// Names resolve first from the environment (upper-cased, only when
// environment lookup is enabled) and then from the configured variables.
// Unresolved placeholders are kept verbatim.
package interp

import (
	"os"
	"strings"
	"unicode"
	"unicode/utf8"
)

// LookupFunc reports the value of an environment variable.
type LookupFunc func(name string) (string, bool)

// Engine expands templates against a fixed set of variables.
type Engine struct {
	// Vars are consulted after the environment.
	Vars map[string]string

	// UseEnv enables environment lookup of the upper-cased name.
	UseEnv bool

	// Lookup reads the environment; nil means os.LookupEnv.
	Lookup LookupFunc
}

// New returns an Engine over vars reading the process environment when useEnv is set.
func New(vars map[string]string, useEnv bool) *Engine {
	return &Engine{Vars: vars, UseEnv: useEnv, Lookup: os.LookupEnv}
}

// Expand is a convenience for New(vars, useEnv).Expand(template).
func Expand(template string, vars map[string]string, useEnv bool) string {
	return New(vars, useEnv).Expand(template)
}

var unescaper = strings.NewReplacer(`\{`, "{", `\}`, "}")

// Expand resolves placeholders in template and then unescapes braces.
func (e *Engine) Expand(template string) string {
	if !strings.ContainsAny(template, `{\`) {
		return template
	}

	var b strings.Builder
	b.Grow(len(template))

	for i := 0; i < len(template); {
		if template[i] != '{' || (i > 0 && template[i-1] == '\\') {
			b.WriteByte(template[i])
			i++
			continue
		}

		name, end, ok := scanName(template, i+1)
		if !ok {
			b.WriteByte('{')
			i++
			continue
		}

		if value, found := e.resolve(name); found {
			b.WriteString(value)
		} else {
			b.WriteString(template[i:end])
		}
		i = end
	}

	return unescaper.Replace(b.String())
}

// scanName reads word characters from start up to a closing brace. It
// returns the name and the index just past the brace.
func scanName(s string, start int) (name string, end int, ok bool) {
	j := start
	for j < len(s) {
		r, size := utf8.DecodeRuneInString(s[j:])
		if !isWord(r) {
			break
		}
		j += size
	}
	if j >= len(s) || s[j] != '}' {
		return "", 0, false
	}
	return s[start:j], j + 1, true
}

// isWord matches the Unicode word-character class: alphabetic characters
// (letters, letter numbers, other alphabetic), marks, decimal digits,
// connector punctuation and the join controls ZWJ and ZWNJ.
func isWord(r rune) bool {
	return unicode.In(r,
		unicode.L,
		unicode.Nl,
		unicode.Other_Alphabetic,
		unicode.M,
		unicode.Nd,
		unicode.Pc,
		unicode.Join_Control,
	)
}

func (e *Engine) resolve(name string) (string, bool) {
	if e.UseEnv {
		lookup := e.Lookup
		if lookup == nil {
			lookup = os.LookupEnv
		}
		if value, ok := lookup(strings.ToUpper(name)); ok {
			return value, true
		}
	}
	value, ok := e.Vars[name]
	return value, ok
}

// MapLookup adapts a map to a LookupFunc, for tests and dry runs.
func MapLookup(env map[string]string) LookupFunc {
	return func(name string) (string, bool) {
		value, ok := env[name]
		return value, ok
	}
}
