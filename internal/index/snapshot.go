// Package index owns the process-wide collection of discovered targets.
//
// A Snapshot is immutable once published: readers share it without locking
// while a refresh builds and atomically publishes a replacement. The raw
// discovery output can be persisted to a JSON cache so later process starts
// skip the expensive enumeration.
package index

import (
	"strconv"

	"summon-cli/internal/discover"
	"summon-cli/internal/embeddings"
	"summon-cli/internal/target"
)

// AliasRef maps one alias string to the index of its owning target.
type AliasRef struct {
	Alias  string
	Target int
}

// Snapshot is the result of one discovery pass: the target list in stable
// discovery order, the flat alias table, and (when semantic scoring is
// enabled) one unit-normalized embedding per alias.
type Snapshot struct {
	Targets []target.Target
	Aliases []AliasRef

	// Embeddings holds Dim floats per alias, aligned 1:1 with Aliases.
	// Empty when no embedder was configured at build time.
	Embeddings []float32
	Dim        int
}

// Semantic reports whether the snapshot carries alias embeddings.
func (s *Snapshot) Semantic() bool {
	return s.Dim > 0 && len(s.Embeddings) == len(s.Aliases)*s.Dim
}

// SemMax computes, for every target, the maximum similarity between the
// query embedding and that target's alias embeddings. Targets without any
// embedded alias get -1 so the scorer can clamp them to zero.
func (s *Snapshot) SemMax(queryEmb []float32) ([]float64, error) {
	out := make([]float64, len(s.Targets))
	for i := range out {
		out[i] = -1
	}
	for i, ref := range s.Aliases {
		row := s.Embeddings[i*s.Dim : (i+1)*s.Dim]
		sim, err := embeddings.Dot(queryEmb, row)
		if err != nil {
			return nil, err
		}
		if sim > out[ref.Target] {
			out[ref.Target] = sim
		}
	}
	return out, nil
}

// build assembles a snapshot from deduplicated raw discovery output,
// preserving discovery order. Target IDs are made unique with a numeric
// suffix on collision.
func build(raws []discover.Raw) *Snapshot {
	snap := &Snapshot{}
	seenIDs := map[string]int{}

	for _, r := range raws {
		t := target.New(r.Name, r.Kind, r.Descriptor)
		if t.Name == "" {
			continue
		}
		if n := seenIDs[t.ID]; n > 0 {
			seenIDs[t.ID] = n + 1
			t.ID = t.ID + "#" + strconv.Itoa(n+1)
		} else {
			seenIDs[t.ID] = 1
		}
		idx := len(snap.Targets)
		snap.Targets = append(snap.Targets, t)
		for _, a := range t.Aliases {
			snap.Aliases = append(snap.Aliases, AliasRef{Alias: a, Target: idx})
		}
	}
	return snap
}
