// Package score ranks indexed targets against a free-text query.
//
// Two modes share one entry point. Lexical mode walks a priority ladder of
// structural signals per alias (exact, prefix, token, substring, overlap,
// edit-distance fallback) where a higher-priority hit short-circuits the
// rest. Semantic mode combines a per-target embedding similarity with
// lexical signals in a weighted sum. Both end with the same acceptance
// threshold check: below it the engine reports no match, never a guess.
package score

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"summon-cli/internal/target"
)

// Signal names the scoring heuristic that produced a target's score.
type Signal string

const (
	SignalExact            Signal = "exact"
	SignalTokenExact       Signal = "token-exact"
	SignalPrefix           Signal = "prefix"
	SignalTokenPrefix      Signal = "token-prefix"
	SignalReverseSubstring Signal = "reverse-substring"
	SignalSubstring        Signal = "substring"
	SignalOverlap          Signal = "overlap"
	SignalFuzzy            Signal = "fuzzy"
	SignalSemantic         Signal = "semantic"
	SignalOverride         Signal = "override"
)

// Breakdown retains the per-signal contributions for diagnostics and tests.
type Breakdown struct {
	Exact     float64
	Prefix    float64
	Substring float64
	Overlap   float64
	Fuzzy     float64
	Semantic  float64
	Jaccard   float64
}

// MatchResult is the outcome of scoring one query against an index snapshot.
type MatchResult struct {
	Target    target.Target
	Score     float64
	Signal    Signal
	Alias     string // the alias that produced the winning signal
	Breakdown Breakdown
}

// Ladder constants mirror the priority bands of the lexical scorer: each
// structural signal owns a band so a weaker signal can never outrank a
// stronger one regardless of scaling.
const (
	scoreExact            = 1000.0
	scoreTokenExact       = 950.0
	scorePrefix           = 900.0
	scoreTokenPrefix      = 850.0
	scoreReverseSubstring = 800.0
	scoreSubstring        = 700.0
	scoreWordMatchBase    = 600.0
	scorePartialMatchBase = 400.0
	fuzzyAcceptRatio      = 70.0
	fuzzyBoost            = 200.0

	shortAliasMax         = 6  // reverse-substring applies to aliases this short
	minWordLenForPartial  = 3  // alias words shorter than this cannot partial-match
	bonusNameLength       = 15 // names this short get a specificity bonus
	penaltyNameLength     = 30 // names longer than this are discounted
	shortNameBonus        = 10.0
	longNamePenaltyFactor = 0.9
)

// Engine scores targets and applies post-scoring override rules.
type Engine struct {
	// LexicalThreshold is the minimum acceptable lexical-mode score.
	LexicalThreshold float64
	// SemanticThreshold is the minimum acceptable semantic-mode score.
	SemanticThreshold float64
	// Rules are consulted after scoring; see rules.go.
	Rules []Rule
}

// NewEngine returns an Engine with the default thresholds and rules.
func NewEngine() *Engine {
	return &Engine{
		LexicalThreshold:  40,
		SemanticThreshold: 0.30,
		Rules:             DefaultRules(),
	}
}

// Best returns the highest-scoring target for q, or ok=false when nothing
// clears the threshold. semMax, when non-nil, holds the per-target maximum
// embedding similarity aligned with targets and switches the engine into
// semantic mode. Ties break to the shorter winning alias, then to
// discovery order.
func (e *Engine) Best(q target.Query, targets []target.Target, semMax []float64) (MatchResult, bool) {
	if q.Empty() || len(targets) == 0 {
		return MatchResult{}, false
	}

	var best MatchResult
	found := false
	for i, t := range targets {
		var r MatchResult
		if semMax != nil {
			r = e.semanticScore(q, t, semMax[i])
		} else {
			r = lexicalScore(q, t)
		}
		if r.Score <= 0 {
			continue
		}
		if !found || r.Score > best.Score ||
			(r.Score == best.Score && len(r.Alias) < len(best.Alias)) {
			best = r
			found = true
		}
	}

	threshold := e.LexicalThreshold
	if semMax != nil {
		threshold = e.SemanticThreshold
	}
	if !found || best.Score < threshold {
		return MatchResult{}, false
	}

	if override, ok := applyRules(e.Rules, q, targets); ok && override.Target.ID != best.Target.ID {
		override.Score = best.Score
		best = override
	}
	return best, true
}

// lexicalScore evaluates the priority ladder for every alias of t and keeps
// the best alias, then applies the name-length bonus and penalty.
func lexicalScore(q target.Query, t target.Target) MatchResult {
	r := MatchResult{Target: t}
	for _, alias := range t.Aliases {
		s, signal := aliasLadder(q, alias)
		if s > r.Score {
			r.Score = s
			r.Signal = signal
			r.Alias = alias
		}
	}
	if r.Score <= 0 {
		return r
	}

	if len(t.Name) <= bonusNameLength {
		r.Score += shortNameBonus
	}
	if len(t.Name) > penaltyNameLength {
		r.Score *= longNamePenaltyFactor
	}
	recordSignal(&r)
	return r
}

// aliasLadder walks the signal priority order for one alias. The first
// signal that fires decides the score; lower-priority signals are not
// evaluated for that alias.
func aliasLadder(q target.Query, alias string) (float64, Signal) {
	query := q.Text
	aliasWords := strings.Fields(alias)

	switch {
	case query == alias:
		return scoreExact, SignalExact

	case containsWord(aliasWords, query):
		return scoreTokenExact, SignalTokenExact

	case strings.HasPrefix(alias, query):
		// Tighter prefixes cover more of the alias and score higher.
		return scorePrefix + coverage(query, alias)*50, SignalPrefix

	case anyWordHasPrefix(aliasWords, query):
		return scoreTokenPrefix, SignalTokenPrefix

	case len(alias) <= shortAliasMax && strings.Contains(query, alias):
		// Short app names embedded in longer phrases ("open calc please").
		return scoreReverseSubstring, SignalReverseSubstring

	case strings.Contains(alias, query):
		return scoreSubstring + coverage(query, alias)*100, SignalSubstring
	}

	if s, ok := wordOverlapScore(q.Tokens, aliasWords); ok {
		return s, SignalOverlap
	}
	if s, ok := fuzzyScore(query, alias); ok {
		return s, SignalFuzzy
	}
	return 0, ""
}

// wordOverlapScore counts query tokens that match alias words exactly or by
// prefix. Exact word matches dominate; partial matches contribute a smaller
// bonus, and on their own land in a lower band.
func wordOverlapScore(queryTokens, aliasWords []string) (float64, bool) {
	wordMatches := 0
	partialMatches := 0
	for _, qw := range queryTokens {
		switch {
		case containsWord(aliasWords, qw):
			wordMatches++
		case anyWordHasPrefix(aliasWords, qw) || queryWordExtendsAlias(qw, aliasWords):
			partialMatches++
		}
	}
	if wordMatches > 0 {
		return scoreWordMatchBase + float64(wordMatches)*100 + float64(partialMatches)*25, true
	}
	if partialMatches > 0 {
		return scorePartialMatchBase + float64(partialMatches)*50, true
	}
	return 0, false
}

// fuzzyScore is the last-resort signal: normalized edit-distance similarity,
// accepted only above its own sub-threshold and then boosted so a very close
// misspelling can compete with the structural bands.
func fuzzyScore(query, alias string) (float64, bool) {
	ratio := similarityRatio(query, alias)
	if ratio < fuzzyAcceptRatio {
		return 0, false
	}
	return ratio + fuzzyBoost, true
}

// similarityRatio is 100 * (1 - editDistance/maxLen).
func similarityRatio(a, b string) float64 {
	if a == "" && b == "" {
		return 100
	}
	la := len([]rune(a))
	lb := len([]rune(b))
	maxLen := la
	if lb > maxLen {
		maxLen = lb
	}
	if maxLen == 0 {
		return 100
	}
	d := levenshtein.ComputeDistance(a, b)
	return 100 * (1 - float64(d)/float64(maxLen))
}

func coverage(query, alias string) float64 {
	if len(alias) == 0 {
		return 0
	}
	return float64(len(query)) / float64(len(alias))
}

func containsWord(words []string, w string) bool {
	for _, x := range words {
		if x == w {
			return true
		}
	}
	return false
}

func anyWordHasPrefix(words []string, prefix string) bool {
	for _, w := range words {
		if strings.HasPrefix(w, prefix) {
			return true
		}
	}
	return false
}

// queryWordExtendsAlias reports whether a query word starts with an alias
// word of meaningful length, e.g. query "photoshopping" against word
// "photoshop".
func queryWordExtendsAlias(qw string, aliasWords []string) bool {
	for _, aw := range aliasWords {
		if len(aw) >= minWordLenForPartial && strings.HasPrefix(qw, aw) {
			return true
		}
	}
	return false
}

func recordSignal(r *MatchResult) {
	switch r.Signal {
	case SignalExact, SignalTokenExact:
		r.Breakdown.Exact = r.Score
	case SignalPrefix, SignalTokenPrefix:
		r.Breakdown.Prefix = r.Score
	case SignalSubstring, SignalReverseSubstring:
		r.Breakdown.Substring = r.Score
	case SignalOverlap:
		r.Breakdown.Overlap = r.Score
	case SignalFuzzy:
		r.Breakdown.Fuzzy = r.Score
	}
}
