package discover

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"summon-cli/internal/target"
)

// darwinProvider scans the standard application-bundle directories.
type darwinProvider struct {
	opts Options
}

func (p *darwinProvider) Applications(ctx context.Context) ([]Raw, []SourceError) {
	dirs := []string{"/Applications"}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, "Applications"))
	}

	var raws []Raw
	var errs []SourceError
	for _, dir := range dirs {
		found, err := scanAppBundles(dir)
		if err != nil {
			if !os.IsNotExist(err) {
				p.opts.logger().Warn("skipping application directory", "dir", dir, "err", err)
				errs = append(errs, SourceError{Source: dir, Err: err})
			}
			continue
		}
		raws = append(raws, found...)
	}
	return raws, errs
}

func (p *darwinProvider) Folders(ctx context.Context) ([]Raw, []SourceError) {
	return wellKnownFolders(p.opts)
}

// scanAppBundles lists *.app bundles directly inside dir.
func scanAppBundles(dir string) ([]Raw, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []Raw
	for _, e := range entries {
		name := e.Name()
		if !strings.HasSuffix(name, ".app") {
			continue
		}
		out = append(out, Raw{
			Name: strings.TrimSuffix(name, ".app"),
			Kind: target.KindApplication,
			Descriptor: target.LaunchDescriptor{
				Kind:  target.DescPath,
				Value: filepath.Join(dir, name),
			},
		})
	}
	return out, nil
}
