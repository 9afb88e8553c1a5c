package index

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/gofrs/flock"

	"summon-cli/internal/discover"
	"summon-cli/internal/target"
)

// The cache persists the raw application discovery output as a JSON map of
// normalized name → prefixed launch descriptor. Folders are cheap to
// enumerate and are never cached; embeddings are never cached either.
//
// The cache has no staleness detection: a newly installed application stays
// invisible until `summon index` rewrites it or the file is deleted.

// LoadCache reads the discovery cache at path. A missing file returns
// (nil, false, nil); a corrupt file returns false with the parse error so
// the caller can rediscover and overwrite.
func LoadCache(path string) ([]discover.Raw, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cannot read cache %s: %w", path, err)
	}

	var apps map[string]string
	if err := json.Unmarshal(data, &apps); err != nil {
		return nil, false, fmt.Errorf("invalid cache JSON %s: %w", path, err)
	}

	names := make([]string, 0, len(apps))
	for name := range apps {
		names = append(names, name)
	}
	// Map order is random; a deterministic snapshot needs a stable order.
	sort.Strings(names)

	out := make([]discover.Raw, 0, len(apps))
	for _, name := range names {
		out = append(out, discover.Raw{
			Name:       name,
			Kind:       target.KindApplication,
			Descriptor: target.ParseDescriptor(apps[name]),
		})
	}
	return out, true, nil
}

// WriteCache persists the application discovery output to path, guarded by
// a sibling lock file so concurrent summon processes do not interleave
// writes.
func WriteCache(path string, apps []discover.Raw) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create cache dir: %w", err)
	}

	m := make(map[string]string, len(apps))
	for _, r := range apps {
		name := target.Normalize(r.Name)
		if name == "" {
			continue
		}
		if _, exists := m[name]; exists {
			continue
		}
		m[name] = r.Descriptor.String()
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("cannot lock cache %s: %w", path, err)
	}
	defer lock.Unlock()

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("cannot write cache %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("cannot install cache %s: %w", path, err)
	}
	return nil
}
