// Package rule models AI-assistant rule documents: Markdown files with a
// YAML front-matter block (description, globs, alwaysApply) that an external
// host tool uses to decide when to inject the body into its prompt context.
package rule

import (
	"strings"
)

// Kind classifies how the host tool activates a rule, derived purely from
// front-matter contents. rulekit never evaluates activation itself; the
// classification is metadata for listing, linting, and naming checks.
type Kind string

const (
	// KindAlways is injected into every conversation (alwaysApply: true).
	KindAlways Kind = "always"

	// KindAuto is attached when files matching its globs are in context.
	KindAuto Kind = "auto"

	// KindAgent is selected by the assistant based on its description.
	KindAgent Kind = "agent"

	// KindManual is only used when referenced explicitly.
	KindManual Kind = "manual"
)

// FrontMatter holds the three recognized front-matter keys.
type FrontMatter struct {
	Description string
	Globs       GlobList
	AlwaysApply *bool
}

// KeyError records a front-matter key whose value could not be decoded
// (e.g. alwaysApply: maybe).
type KeyError struct {
	Key string
	Err error
}

// Rule is a parsed rule document. Parse problems are recorded on the Rule
// rather than failing the parse, so the linter can report them with file
// context instead of aborting a whole directory sweep.
type Rule struct {
	// Path is the file path the rule was loaded from.
	Path string

	// Name is the filename stem (without .mdc or stray .md extensions).
	Name string

	Matter FrontMatter

	// Body is the Markdown content after the closing fence, verbatim.
	Body string

	// HasFrontMatter reports whether a leading --- fence was found.
	HasFrontMatter bool

	// UnclosedFence reports a fence that was opened but never closed.
	// When set, Body is empty and the fence content is discarded.
	UnclosedFence bool

	// MatterErr is a YAML decode error for the front-matter block as a
	// whole (malformed document). Per-key type errors go in KeyErrors.
	MatterErr error

	// KeyErrors lists recognized keys whose values had the wrong type.
	KeyErrors []KeyError

	// UnknownKeys lists front-matter keys outside the recognized three,
	// in source order.
	UnknownKeys []string

	// QuotedGlobs reports that the source wrapped glob patterns in
	// quotes. The host tool expects bare scalars.
	QuotedGlobs bool

	// DoubleExt reports a stray .mdc.md double extension, which usually
	// means an editor "helpfully" renamed the file.
	DoubleExt bool
}

// Kind derives the activation kind from the front-matter.
// Precedence follows the host tool: alwaysApply wins, then globs,
// then description, else manual.
func (r *Rule) Kind() Kind {
	if r.Matter.AlwaysApply != nil && *r.Matter.AlwaysApply {
		return KindAlways
	}
	if len(r.Matter.Globs.Patterns) > 0 {
		return KindAuto
	}
	if strings.TrimSpace(r.Matter.Description) != "" {
		return KindAgent
	}
	return KindManual
}

// KindSuffixes maps filename suffixes to the kind they advertise.
// A rule named python-style-auto.mdc is expected to derive KindAuto.
var KindSuffixes = map[string]Kind{
	"-always": KindAlways,
	"-auto":   KindAuto,
	"-agent":  KindAgent,
	"-manual": KindManual,
}

// SuffixKind returns the kind advertised by the rule's filename suffix,
// if any.
func (r *Rule) SuffixKind() (Kind, bool) {
	for suffix, kind := range KindSuffixes {
		if strings.HasSuffix(r.Name, suffix) {
			return kind, true
		}
	}
	return "", false
}
