package index

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"summon-cli/internal/discover"
	"summon-cli/internal/target"
)

func TestCacheRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache", "apps.json")
	apps := []discover.Raw{
		{Name: "Chrome", Kind: target.KindApplication, Descriptor: target.LaunchDescriptor{Kind: target.DescAppID, Value: "Chrome!App"}},
		{Name: "gimp", Kind: target.KindApplication, Descriptor: target.LaunchDescriptor{Kind: target.DescPath, Value: "/usr/bin/gimp"}},
	}

	if err := WriteCache(path, apps); err != nil {
		t.Fatalf("WriteCache: %v", err)
	}

	got, ok, err := LoadCache(path)
	if err != nil || !ok {
		t.Fatalf("LoadCache: ok=%v err=%v", ok, err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 apps, got %d", len(got))
	}
	byName := map[string]discover.Raw{}
	for _, r := range got {
		byName[r.Name] = r
	}
	if byName["chrome"].Descriptor.Kind != target.DescAppID {
		t.Errorf("descriptor kind lost in round trip: %+v", byName["chrome"].Descriptor)
	}
	if byName["gimp"].Descriptor.Value != "/usr/bin/gimp" {
		t.Errorf("descriptor value lost: %+v", byName["gimp"].Descriptor)
	}
}

func TestLoadCache_Missing(t *testing.T) {
	_, ok, err := LoadCache(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("missing cache must not error: %v", err)
	}
	if ok {
		t.Fatal("missing cache must report ok=false")
	}
}

func TestLoadCache_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apps.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, ok, err := LoadCache(path)
	if err == nil {
		t.Fatal("corrupt cache must surface a parse error")
	}
	if ok {
		t.Fatal("corrupt cache must report ok=false")
	}
}

func TestLoadCache_DeterministicOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apps.json")
	if err := WriteCache(path, raws("vlc", "blender", "ark")); err != nil {
		t.Fatal(err)
	}
	first, _, err := LoadCache(path)
	if err != nil {
		t.Fatal(err)
	}
	second, _, err := LoadCache(path)
	if err != nil {
		t.Fatal(err)
	}
	for i := range first {
		if first[i].Name != second[i].Name {
			t.Fatalf("cache load order not deterministic: %v vs %v", first, second)
		}
	}
}

func TestServiceUsesCacheOnSecondStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apps.json")

	p1 := &stubProvider{apps: raws("gimp", "vlc")}
	svc1 := NewService(p1, nil, path, nil)
	if _, err := svc1.Snapshot(context.Background()); err != nil {
		t.Fatal(err)
	}
	if p1.appCalls.Load() != 1 {
		t.Fatalf("first service must discover, got %d calls", p1.appCalls.Load())
	}

	// A fresh service over the same cache path must not rediscover.
	p2 := &stubProvider{apps: raws("never-seen")}
	svc2 := NewService(p2, nil, path, nil)
	snap, err := svc2.Snapshot(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if p2.appCalls.Load() != 0 {
		t.Fatalf("cached start must skip discovery, got %d calls", p2.appCalls.Load())
	}
	names := map[string]bool{}
	for _, tg := range snap.Targets {
		names[tg.Name] = true
	}
	if !names["gimp"] || !names["vlc"] || names["never-seen"] {
		t.Fatalf("snapshot must come from the cache, got %v", names)
	}
}

func TestRefreshBypassesAndRewritesCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apps.json")
	if err := WriteCache(path, raws("stale")); err != nil {
		t.Fatal(err)
	}

	p := &stubProvider{apps: raws("fresh")}
	svc := NewService(p, nil, path, nil)
	snap, err := svc.Refresh(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Targets) != 1 || snap.Targets[0].Name != "fresh" {
		t.Fatalf("refresh must bypass the cache, got %+v", snap.Targets)
	}

	reloaded, _, err := LoadCache(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(reloaded) != 1 || reloaded[0].Name != "fresh" {
		t.Fatalf("refresh must rewrite the cache, got %+v", reloaded)
	}
}
