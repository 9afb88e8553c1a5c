//go:build !windows

package launch

import (
	"context"
)

// shellOpen on non-Windows platforms goes through explorer via the runner
// so the Windows fallback chain stays testable everywhere.
func shellOpen(ctx context.Context, r Runner, ref string) error {
	return r.Start(ctx, "explorer", ref)
}
