//go:build windows

package discover

import (
	"golang.org/x/sys/windows"
)

// knownFolderPaths resolves the well-known folders through the shell's known
// folder IDs. A folder the shell cannot resolve falls back to the
// conventional home-directory location.
func knownFolderPaths() map[string]string {
	ids := map[string]*windows.KNOWNFOLDERID{
		"desktop":   windows.FOLDERID_Desktop,
		"documents": windows.FOLDERID_Documents,
		"downloads": windows.FOLDERID_Downloads,
		"music":     windows.FOLDERID_Music,
		"videos":    windows.FOLDERID_Videos,
		"pictures":  windows.FOLDERID_Pictures,
	}

	fallback := homeFolderPaths()
	out := make(map[string]string, len(ids))
	for name, id := range ids {
		p, err := windows.KnownFolderPath(id, 0)
		if err != nil || p == "" {
			if fb, ok := fallback[name]; ok {
				out[name] = fb
			}
			continue
		}
		out[name] = p
	}
	return out
}
