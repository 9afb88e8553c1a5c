package index

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"summon-cli/internal/discover"
	"summon-cli/internal/embeddings"
)

// Service owns the live snapshot. Reads are lock-free once a snapshot is
// published; builds are serialized so at most one discovery pass runs per
// process, with concurrent callers blocking on the in-flight build and
// reusing its result.
type Service struct {
	provider  discover.Provider
	embedder  embeddings.Provider // nil disables the semantic signal
	cachePath string              // "" disables the on-disk cache
	logger    *log.Logger

	buildMu sync.Mutex
	snap    atomic.Pointer[Snapshot]
}

// NewService wires a Service. embedder may be nil; cachePath may be empty.
func NewService(provider discover.Provider, embedder embeddings.Provider, cachePath string, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		provider:  provider,
		embedder:  embedder,
		cachePath: cachePath,
		logger:    logger,
	}
}

// Snapshot returns the current snapshot, building it on first use. The
// returned snapshot is immutable; callers hold it for the duration of a
// request so a concurrent Refresh cannot change ranking mid-resolution.
func (s *Service) Snapshot(ctx context.Context) (*Snapshot, error) {
	if snap := s.snap.Load(); snap != nil {
		return snap, nil
	}

	s.buildMu.Lock()
	defer s.buildMu.Unlock()
	// Another caller may have finished the build while we waited.
	if snap := s.snap.Load(); snap != nil {
		return snap, nil
	}
	return s.rebuildLocked(ctx, false)
}

// Refresh forces a full rediscovery and cache rewrite, then publishes the
// new snapshot. This is the only way to pick up newly installed targets.
func (s *Service) Refresh(ctx context.Context) (*Snapshot, error) {
	s.buildMu.Lock()
	defer s.buildMu.Unlock()
	return s.rebuildLocked(ctx, true)
}

func (s *Service) rebuildLocked(ctx context.Context, force bool) (*Snapshot, error) {
	apps := s.loadApps(ctx, force)
	folders, folderErrs := s.provider.Folders(ctx)
	for _, e := range folderErrs {
		s.logger.Warn("folder discovery source failed", "source", e.Source, "err", e.Err)
	}

	raws := discover.Dedupe(append(apps, folders...))
	snap := build(raws)

	if s.embedder != nil {
		if err := s.embedAliases(ctx, snap); err != nil {
			// The semantic signal is optional: losing it degrades matching
			// to lexical mode, it does not fail the build.
			s.logger.Warn("alias embedding failed, continuing lexical-only", "err", err)
			snap.Embeddings = nil
			snap.Dim = 0
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.snap.Store(snap)
	return snap, nil
}

// loadApps reads applications from the cache unless force is set or the
// cache is missing/corrupt, in which case it rediscovers and rewrites it.
func (s *Service) loadApps(ctx context.Context, force bool) []discover.Raw {
	if !force && s.cachePath != "" {
		cached, ok, err := LoadCache(s.cachePath)
		if err != nil {
			s.logger.Warn("discovery cache unreadable, rediscovering", "path", s.cachePath, "err", err)
		} else if ok {
			return cached
		}
	}

	apps, errs := s.provider.Applications(ctx)
	for _, e := range errs {
		s.logger.Warn("application discovery source failed", "source", e.Source, "err", e.Err)
	}
	apps = discover.Dedupe(apps)

	if s.cachePath != "" && len(apps) > 0 {
		if err := WriteCache(s.cachePath, apps); err != nil {
			s.logger.Warn("cannot write discovery cache", "path", s.cachePath, "err", err)
		}
	}
	return apps
}

// embedAliases computes one unit-normalized embedding per alias.
func (s *Service) embedAliases(ctx context.Context, snap *Snapshot) error {
	if len(snap.Aliases) == 0 {
		return nil
	}
	var vectors []float32
	dim := 0
	for _, ref := range snap.Aliases {
		emb, err := s.embedder.Embed(ctx, ref.Alias)
		if err != nil {
			return err
		}
		if dim == 0 {
			dim = len(emb)
		}
		if len(emb) != dim {
			return embeddings.ErrVectorLengthMismatch
		}
		vectors = append(vectors, embeddings.NormalizeL2(emb)...)
	}
	snap.Embeddings = vectors
	snap.Dim = dim
	return nil
}
