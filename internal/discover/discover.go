// Package discover enumerates the launchable resources visible on the
// current machine: installed applications and well-known user folders with
// their immediate children. Each enumeration source fails independently;
// a bad source is reported and skipped, never aborting the pass.
package discover

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"summon-cli/internal/target"
)

// Raw is one candidate produced by a discovery source, before indexing.
type Raw struct {
	Name       string
	Kind       target.Kind
	Descriptor target.LaunchDescriptor
}

// SourceError records one enumeration source that failed during a pass.
type SourceError struct {
	Source string
	Err    error
}

func (e SourceError) Error() string {
	return fmt.Sprintf("discovery source %s: %v", e.Source, e.Err)
}

// Provider enumerates raw candidates for one platform. Implementations
// return partial results together with the per-source errors they absorbed.
type Provider interface {
	// Applications lists installed applications.
	Applications(ctx context.Context) ([]Raw, []SourceError)
	// Folders lists well-known user folders and their immediate child
	// directories.
	Folders(ctx context.Context) ([]Raw, []SourceError)
}

// Options tunes a discovery pass.
type Options struct {
	// SkipExecutables disqualifies bin-scanned executables whose name
	// contains any of these fragments.
	SkipExecutables []string
	// BinScanLimit caps the number of bin-scanned executables.
	BinScanLimit int
	// Timeout bounds each subprocess-based enumeration step.
	Timeout time.Duration
	Logger  *log.Logger
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.Default()
}

func (o Options) timeout() time.Duration {
	if o.Timeout <= 0 {
		return 15 * time.Second
	}
	return o.Timeout
}

// ForPlatform returns the Provider for the given GOOS. Unknown platforms get
// a provider that discovers nothing rather than an error.
func ForPlatform(goos string, opts Options) Provider {
	switch goos {
	case "darwin":
		return &darwinProvider{opts: opts}
	case "linux":
		return &linuxProvider{opts: opts}
	case "windows":
		return &windowsProvider{opts: opts}
	default:
		return emptyProvider{}
	}
}

type emptyProvider struct{}

func (emptyProvider) Applications(context.Context) ([]Raw, []SourceError) { return nil, nil }
func (emptyProvider) Folders(context.Context) ([]Raw, []SourceError)     { return nil, nil }

// Dedupe removes candidates whose normalized name was already seen,
// preserving order. First-seen wins, which also gives structured Windows
// enumeration priority over the shortcut fallback since sources run in
// priority order.
func Dedupe(raws []Raw) []Raw {
	seen := make(map[string]bool, len(raws))
	out := raws[:0]
	for _, r := range raws {
		name := target.Normalize(r.Name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, r)
	}
	return out
}
