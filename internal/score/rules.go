package score

import (
	"strings"

	"summon-cli/internal/target"
)

// Rule is one special-case override consulted after general scoring. When
// any trigger appears in the query, an application target whose descriptor
// ends in one of the suffixes is preferred over the scored winner. Rules
// never replace the general algorithm: they only redirect an already
// accepted match.
type Rule struct {
	// Triggers are substrings of the normalized query that arm the rule.
	Triggers []string
	// Suffixes are matched case-insensitively against the end of the
	// target's descriptor value.
	Suffixes []string
	// Binaries are matched by equality against the target's base name, so
	// the rule also covers bare-command descriptors that carry no path.
	Binaries []string
}

// DefaultRules covers queries naming well-known editors whose canonical
// binary otherwise loses to look-alike entries ("visual studio code" vs
// "visual studio installer").
func DefaultRules() []Rule {
	return []Rule{
		{
			Triggers: []string{"code", "visual studio"},
			Suffixes: []string{"code.exe", "/code"},
			Binaries: []string{"code"},
		},
	}
}

// applyRules returns the first rule-preferred target for q, or ok=false.
func applyRules(rules []Rule, q target.Query, targets []target.Target) (MatchResult, bool) {
	for _, rule := range rules {
		if !rule.triggered(q.Text) {
			continue
		}
		for _, t := range targets {
			if t.Kind != target.KindApplication {
				continue
			}
			if rule.matches(t) {
				return MatchResult{Target: t, Signal: SignalOverride, Alias: t.Name}, true
			}
		}
	}
	return MatchResult{}, false
}

func (r Rule) triggered(query string) bool {
	for _, trig := range r.Triggers {
		if trig != "" && strings.Contains(query, trig) {
			return true
		}
	}
	return false
}

func (r Rule) matches(t target.Target) bool {
	lower := strings.ToLower(t.Descriptor.Value)
	for _, suffix := range r.Suffixes {
		if suffix != "" && strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	for _, bin := range r.Binaries {
		if bin != "" && t.BaseName == bin {
			return true
		}
	}
	return false
}
