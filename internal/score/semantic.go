package score

import (
	"strings"

	"summon-cli/internal/target"
)

// Weights of the semantic-mode weighted sum. The embedding similarity
// dominates; lexical signals keep obviously-literal matches from losing to
// a merely related phrase.
const (
	weightSemantic  = 0.65
	weightJaccard   = 0.20
	weightSubstring = 0.10
	weightExact     = 0.05
)

// semanticScore combines the per-target embedding similarity with token
// Jaccard overlap and literal substring/exact checks against the name and
// base name.
func (e *Engine) semanticScore(q target.Query, t target.Target, semMax float64) MatchResult {
	if semMax < 0 {
		semMax = 0
	}

	jaccard := jaccardOverlap(q.Tokens, t.Tokens)

	substring := 0.0
	if strings.Contains(t.Name, q.Text) || (t.BaseName != "" && strings.Contains(t.BaseName, q.Text)) {
		substring = 1.0
	}
	exact := 0.0
	if q.Text == t.Name || (t.BaseName != "" && q.Text == t.BaseName) {
		exact = 1.0
	}

	score := weightSemantic*semMax +
		weightJaccard*jaccard +
		weightSubstring*substring +
		weightExact*exact

	return MatchResult{
		Target: t,
		Score:  score,
		Signal: SignalSemantic,
		Alias:  t.Name,
		Breakdown: Breakdown{
			Semantic:  semMax,
			Jaccard:   jaccard,
			Substring: substring,
			Exact:     exact,
		},
	}
}

// jaccardOverlap is |a ∩ b| / |a ∪ b| over token sets.
func jaccardOverlap(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	set := make(map[string]bool, len(a))
	for _, t := range a {
		set[t] = true
	}
	union := make(map[string]bool, len(a)+len(b))
	for _, t := range a {
		union[t] = true
	}
	inter := 0
	seen := make(map[string]bool, len(b))
	for _, t := range b {
		union[t] = true
		if set[t] && !seen[t] {
			inter++
			seen[t] = true
		}
	}
	if len(union) == 0 {
		return 0
	}
	return float64(inter) / float64(len(union))
}
