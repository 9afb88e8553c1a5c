package discover

import (
	"os"
	"path/filepath"
	"testing"

	"summon-cli/internal/target"
)

func TestFolderTargets_IncludesImmediateChildrenOnly(t *testing.T) {
	docs := t.TempDir()
	if err := os.MkdirAll(filepath.Join(docs, "thesis", "chapters"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(docs, "invoices"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(docs, "notes.txt"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	got, errs := folderTargets(map[string]string{"documents": docs}, Options{})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	names := make(map[string]bool)
	for _, r := range got {
		if r.Kind != target.KindFolder {
			t.Errorf("unexpected kind for %q: %v", r.Name, r.Kind)
		}
		names[r.Name] = true
	}
	for _, want := range []string{"documents", "thesis", "invoices"} {
		if !names[want] {
			t.Errorf("missing folder target %q in %v", want, names)
		}
	}
	if names["chapters"] {
		t.Error("grandchild folders must not be indexed")
	}
	if names["notes.txt"] {
		t.Error("plain files must not become folder targets")
	}
}

func TestFolderTargets_MissingFolderIsSkipped(t *testing.T) {
	got, errs := folderTargets(map[string]string{
		"documents": filepath.Join(t.TempDir(), "nope"),
	}, Options{})
	if len(got) != 0 || len(errs) != 0 {
		t.Fatalf("missing folder must be skipped silently, got %v, %v", got, errs)
	}
}

func TestFolderTargets_StableOrder(t *testing.T) {
	a := t.TempDir()
	b := t.TempDir()
	paths := map[string]string{"videos": b, "desktop": a}

	first, _ := folderTargets(paths, Options{})
	second, _ := folderTargets(paths, Options{})
	if len(first) != len(second) {
		t.Fatalf("length mismatch: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Name != second[i].Name {
			t.Fatalf("order not deterministic: %v vs %v", first, second)
		}
	}
	if first[0].Name != "desktop" {
		t.Fatalf("folders must be sorted by name, got %v", first)
	}
}
