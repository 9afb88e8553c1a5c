//go:build !windows

package discover

// knownFolderPaths uses the conventional home-directory layout on non-Windows
// platforms.
func knownFolderPaths() map[string]string {
	return homeFolderPaths()
}
