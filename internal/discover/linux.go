package discover

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"summon-cli/internal/target"
)

// linuxProvider scans desktop-entry directories and common bin paths.
type linuxProvider struct {
	opts Options
}

var desktopEntryDirs = []string{
	"/usr/share/applications",
	"/usr/local/share/applications",
}

var binDirs = []string{"/usr/bin", "/usr/local/bin", "/bin"}

func (p *linuxProvider) Applications(ctx context.Context) ([]Raw, []SourceError) {
	var raws []Raw
	var errs []SourceError

	dirs := append([]string{}, desktopEntryDirs...)
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".local", "share", "applications"))
	}
	for _, dir := range dirs {
		found, err := scanDesktopEntries(dir)
		if err != nil {
			if !os.IsNotExist(err) {
				p.opts.logger().Warn("skipping desktop-entry directory", "dir", dir, "err", err)
				errs = append(errs, SourceError{Source: dir, Err: err})
			}
			continue
		}
		raws = append(raws, found...)
	}

	binRaws, binErrs := scanBinDirs(binDirs, p.opts)
	raws = append(raws, binRaws...)
	errs = append(errs, binErrs...)
	return raws, errs
}

func (p *linuxProvider) Folders(ctx context.Context) ([]Raw, []SourceError) {
	return wellKnownFolders(p.opts)
}

// scanDesktopEntries lists *.desktop files in dir. The entry's launch
// identifier is the file stem, which gtk-launch resolves; the display name
// replaces dashes with spaces so "google-chrome" matches "google chrome".
func scanDesktopEntries(dir string) ([]Raw, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []Raw
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".desktop") {
			continue
		}
		stem := strings.TrimSuffix(name, ".desktop")
		out = append(out, Raw{
			Name: strings.ReplaceAll(stem, "-", " "),
			Kind: target.KindApplication,
			Descriptor: target.LaunchDescriptor{
				Kind:  target.DescCommand,
				Value: stem,
			},
		})
	}
	return out, nil
}

// scanBinDirs lists executables in the common bin paths, skipping names that
// contain a deny-listed fragment and capping the total to keep discovery
// bounded on machines with thousands of binaries.
func scanBinDirs(dirs []string, opts Options) ([]Raw, []SourceError) {
	limit := opts.BinScanLimit
	if limit <= 0 {
		limit = 50
	}

	var out []Raw
	var errs []SourceError
	for _, dir := range dirs {
		if len(out) >= limit {
			break
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			if !os.IsNotExist(err) {
				opts.logger().Warn("skipping bin directory", "dir", dir, "err", err)
				errs = append(errs, SourceError{Source: dir, Err: err})
			}
			continue
		}
		for _, e := range entries {
			if len(out) >= limit {
				break
			}
			if e.IsDir() {
				continue
			}
			name := e.Name()
			if skipExecutable(name, opts.SkipExecutables) {
				continue
			}
			info, err := e.Info()
			if err != nil || info.Mode()&0o111 == 0 {
				continue
			}
			out = append(out, Raw{
				Name: name,
				Kind: target.KindApplication,
				Descriptor: target.LaunchDescriptor{
					Kind:  target.DescPath,
					Value: filepath.Join(dir, name),
				},
			})
		}
	}
	return out, errs
}

func skipExecutable(name string, fragments []string) bool {
	lower := strings.ToLower(name)
	for _, frag := range fragments {
		if frag != "" && strings.Contains(lower, frag) {
			return true
		}
	}
	return false
}
