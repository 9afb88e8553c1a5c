// Package resolver turns a free-text query into a launched target. It owns
// the pipeline: index snapshot, optional query embedding, scoring, and the
// platform launch chain.
package resolver

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"summon-cli/internal/embeddings"
	"summon-cli/internal/index"
	"summon-cli/internal/launch"
	"summon-cli/internal/score"
	"summon-cli/internal/target"
)

// Resolver resolves queries against a live index and launches the winner.
type Resolver struct {
	index    *index.Service
	engine   *score.Engine
	launcher *launch.Launcher
	embedder embeddings.Provider // nil disables semantic query scoring
	logger   *log.Logger
}

// Options configures a Resolver. Index is required; nil Engine and Launcher
// select defaults, nil Embedder keeps resolution lexical-only.
type Options struct {
	Index    *index.Service
	Engine   *score.Engine
	Launcher *launch.Launcher
	Embedder embeddings.Provider
	Logger   *log.Logger
}

func New(opts Options) *Resolver {
	r := &Resolver{
		index:    opts.Index,
		engine:   opts.Engine,
		launcher: opts.Launcher,
		embedder: opts.Embedder,
		logger:   opts.Logger,
	}
	if r.engine == nil {
		r.engine = score.NewEngine()
	}
	if r.launcher == nil {
		r.launcher = launch.New(launch.Options{Logger: opts.Logger})
	}
	if r.logger == nil {
		r.logger = log.Default()
	}
	return r
}

// Outcome reports a completed Open: the match that won and how it launched.
type Outcome struct {
	Match  score.MatchResult
	Launch *launch.Result
}

// Resolve scores raw against the current snapshot and returns the best
// match. Semantic mode engages only when both the snapshot carries alias
// embeddings and a query embedding can be computed; any failure on that
// path degrades to lexical scoring rather than failing the resolution.
func (r *Resolver) Resolve(ctx context.Context, raw string) (score.MatchResult, error) {
	q := target.NewQuery(raw)
	if q.Empty() {
		return score.MatchResult{}, ErrEmptyQuery
	}

	snap, err := r.index.Snapshot(ctx)
	if err != nil {
		return score.MatchResult{}, fmt.Errorf("cannot load target index: %w", err)
	}

	var semMax []float64
	if r.embedder != nil && snap.Semantic() {
		semMax = r.querySimilarities(ctx, q, snap)
	}

	m, ok := r.engine.Best(q, snap.Targets, semMax)
	if !ok {
		return score.MatchResult{}, &NoMatchError{Query: raw}
	}
	r.logger.Debug("resolved query",
		"query", q.Text, "target", m.Target.Name, "score", m.Score, "signal", m.Signal)
	return m, nil
}

// Open resolves raw and launches the winner. When the winner exists but
// every launch method fails, the returned Outcome still carries the match
// so callers can report what was found.
func (r *Resolver) Open(ctx context.Context, raw string) (*Outcome, error) {
	m, err := r.Resolve(ctx, raw)
	if err != nil {
		return nil, err
	}

	res, err := r.launcher.Launch(ctx, m.Target)
	if err != nil {
		return &Outcome{Match: m}, fmt.Errorf("cannot launch %q: %w", m.Target.Name, err)
	}
	return &Outcome{Match: m, Launch: res}, nil
}

// Refresh forces rediscovery and returns the new target count.
func (r *Resolver) Refresh(ctx context.Context) (int, error) {
	snap, err := r.index.Refresh(ctx)
	if err != nil {
		return 0, fmt.Errorf("cannot refresh target index: %w", err)
	}
	return len(snap.Targets), nil
}

// Targets returns the current snapshot's target list in discovery order.
func (r *Resolver) Targets(ctx context.Context) ([]target.Target, error) {
	snap, err := r.index.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("cannot load target index: %w", err)
	}
	return snap.Targets, nil
}

// querySimilarities embeds the query and computes per-target similarity
// maxima. Any error returns nil, which keeps scoring lexical.
func (r *Resolver) querySimilarities(ctx context.Context, q target.Query, snap *index.Snapshot) []float64 {
	emb, err := r.embedder.Embed(ctx, q.Text)
	if err != nil {
		r.logger.Warn("query embedding failed, scoring lexical-only", "err", err)
		return nil
	}
	semMax, err := snap.SemMax(embeddings.NormalizeL2(emb))
	if err != nil {
		r.logger.Warn("embedding dimension mismatch, scoring lexical-only", "err", err)
		return nil
	}
	return semMax
}
