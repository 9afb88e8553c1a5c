package discover

import (
	"os"
	"path/filepath"
	"sort"

	"summon-cli/internal/target"
)

var wellKnownFolderNames = []string{"desktop", "documents", "downloads", "music", "videos", "pictures"}

// wellKnownFolders enumerates the user's well-known folders and their
// immediate child directories. One unreadable folder loses only its own
// children, never the whole pass.
func wellKnownFolders(opts Options) ([]Raw, []SourceError) {
	paths := knownFolderPaths()
	return folderTargets(paths, opts)
}

// folderTargets turns a name → path map into folder candidates: one per
// well-known folder plus one per immediate child directory. Child folders
// are what make "open my thesis folder" resolvable one level deep.
func folderTargets(paths map[string]string, opts Options) ([]Raw, []SourceError) {
	names := make([]string, 0, len(paths))
	for name := range paths {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []Raw
	var errs []SourceError
	for _, name := range names {
		path := paths[name]
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		out = append(out, Raw{
			Name:       name,
			Kind:       target.KindFolder,
			Descriptor: target.LaunchDescriptor{Kind: target.DescPath, Value: path},
		})

		children, err := listChildFolders(path)
		if err != nil {
			opts.logger().Warn("cannot list child folders", "dir", path, "err", err)
			errs = append(errs, SourceError{Source: path, Err: err})
			continue
		}
		for _, child := range children {
			out = append(out, Raw{
				Name:       child,
				Kind:       target.KindFolder,
				Descriptor: target.LaunchDescriptor{Kind: target.DescPath, Value: filepath.Join(path, child)},
			})
		}
	}
	return out, errs
}

// listChildFolders returns the names of the immediate subdirectories of dir.
func listChildFolders(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			out = append(out, e.Name())
		}
	}
	return out, nil
}

// homeFolderPaths is the portable fallback: conventional folder names
// directly under the home directory, kept only if they exist.
func homeFolderPaths() map[string]string {
	home, err := os.UserHomeDir()
	if err != nil {
		return map[string]string{}
	}
	caseNames := []string{"Desktop", "Documents", "Downloads", "Music", "Videos", "Pictures"}
	out := make(map[string]string, len(caseNames))
	for i, cased := range caseNames {
		p := filepath.Join(home, cased)
		if _, err := os.Stat(p); err == nil {
			out[wellKnownFolderNames[i]] = p
		}
	}
	return out
}
