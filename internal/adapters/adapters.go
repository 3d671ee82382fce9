// Package adapters maps each resort's adapter kind to a parsing strategy.
//
// An adapter consumes the raw conditions page for one resort and produces a
// partial ops/snow result. Adapters are independent: a parse failure in one
// never affects another, and the pipeline substitutes last-known-good data
// for any adapter that fails.
package adapters

import (
	"github.com/pfrederiksen/tahoe-conditions/internal/logger"
	"github.com/pfrederiksen/tahoe-conditions/internal/resort"
)

// Result is the partial record extracted from one conditions page.
type Result struct {
	Ops  resort.Ops
	Snow resort.Snow
}

// Adapter parses one resort's conditions page.
type Adapter interface {
	// Kind returns the registry kind this adapter was selected for.
	Kind() string

	// Available reports whether the adapter can produce data at all.
	// Placeholder kinds return false and the pipeline skips the fetch.
	Available() bool

	// Parse extracts ops and snow data from the raw page content.
	Parse(content string) (*Result, error)
}

// placeholderKinds are sources that require JavaScript rendering, which is
// out of scope. They short-circuit to "not available" without a fetch.
var placeholderKinds = map[string]bool{
	"placeholder":  true,
	"boreal":       true,
	"palisades":    true,
	"tahoe_donner": true,
}

var registry = map[string]func(kind string) Adapter{
	"generic":         func(k string) Adapter { return &Generic{kind: k} },
	"diamond_peak":    func(k string) Adapter { return &DiamondPeak{kind: k} },
	"mt_rose":         func(k string) Adapter { return &MtRose{kind: k} },
	"sierra_at_tahoe": func(k string) Adapter { return &SierraAtTahoe{kind: k} },
	"sugar_bowl":      func(k string) Adapter { return &SugarBowl{kind: k} },
	"homewood":        func(k string) Adapter { return &Homewood{kind: k} },
	"vail_resorts":    func(k string) Adapter { return &VailResorts{kind: k} },
}

// ForKind returns the adapter for a registry kind. Unknown kinds fall back
// to the generic adapter with a warning.
func ForKind(kind string) Adapter {
	if placeholderKinds[kind] {
		return &Placeholder{kind: kind}
	}
	if build, ok := registry[kind]; ok {
		return build(kind)
	}
	logger.Warn("Unknown adapter kind, using generic", logger.Fields{"kind": kind})
	return &Generic{kind: kind}
}
