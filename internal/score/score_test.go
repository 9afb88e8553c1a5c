package score

import (
	"fmt"
	"math"
	"testing"

	"summon-cli/internal/target"
)

func app(name, desc string) target.Target {
	return target.New(name, target.KindApplication, target.ParseDescriptor(desc))
}

func TestBest_ExactNameAlwaysWins(t *testing.T) {
	targets := []target.Target{
		app("chromium browser", "/usr/bin/chromium"),
		app("chrome remote desktop", "appid:crd"),
		app("chrome", "appid:chrome-app"),
		app("chrome canary", "appid:canary"),
	}
	e := NewEngine()
	e.Rules = nil

	r, ok := e.Best(target.NewQuery("chrome"), targets, nil)
	if !ok {
		t.Fatal("expected a match")
	}
	if r.Target.Name != "chrome" {
		t.Fatalf("exact name must win, got %q via %s", r.Target.Name, r.Signal)
	}
	if r.Signal != SignalExact {
		t.Fatalf("expected exact signal, got %s", r.Signal)
	}
}

func TestBest_TokenPrefixScenario(t *testing.T) {
	targets := []target.Target{
		app("calculator", "/Apps/Calculator"),
	}
	e := NewEngine()

	r, ok := e.Best(target.NewQuery("open calc"), targets, nil)
	if !ok {
		t.Fatal("expected a match for 'open calc'")
	}
	if r.Target.Name != "calculator" {
		t.Fatalf("unexpected winner: %q", r.Target.Name)
	}
}

func TestBest_ExactTokenBeatsSubstring(t *testing.T) {
	targets := []target.Target{
		app("visual studio code", "appid:vsc"),
		app("code", "appid:code-app"),
	}
	e := NewEngine()
	e.Rules = nil

	r, ok := e.Best(target.NewQuery("code"), targets, nil)
	if !ok {
		t.Fatal("expected a match")
	}
	if r.Target.Name != "code" {
		t.Fatalf("short exact target must beat substring match, got %q", r.Target.Name)
	}
}

func TestBest_EmptyIndexNoMatch(t *testing.T) {
	e := NewEngine()
	if _, ok := e.Best(target.NewQuery("anything"), nil, nil); ok {
		t.Fatal("empty index must return no match")
	}
}

func TestBest_BelowThresholdNoMatch(t *testing.T) {
	targets := []target.Target{
		app("blender", "/usr/bin/blender"),
	}
	e := NewEngine()
	if r, ok := e.Best(target.NewQuery("zzqx"), targets, nil); ok {
		t.Fatalf("unrelated query must return no match, got %+v", r)
	}
}

func TestBest_Deterministic(t *testing.T) {
	targets := []target.Target{
		app("gimp", "/usr/bin/gimp"),
		app("gimp image editor", "/usr/share/applications/gimp.desktop"),
		app("imagemagick", "/usr/bin/convert"),
	}
	e := NewEngine()
	q := target.NewQuery("gimp")

	first, ok := e.Best(q, targets, nil)
	if !ok {
		t.Fatal("expected a match")
	}
	for i := 0; i < 10; i++ {
		r, ok := e.Best(q, targets, nil)
		if !ok || r.Target.ID != first.Target.ID || r.Score != first.Score {
			t.Fatalf("scoring not deterministic: run %d got %+v, want %+v", i, r, first)
		}
	}
}

func TestBest_AddingSupersetTargetKeepsSmallerWinner(t *testing.T) {
	small := app("paint", "appid:paint")
	e := NewEngine()
	q := target.NewQuery("paint")

	before, ok := e.Best(q, []target.Target{small}, nil)
	if !ok {
		t.Fatal("expected a match")
	}
	after, ok := e.Best(q, []target.Target{small, app("paint shop pro deluxe", "appid:psp")}, nil)
	if !ok {
		t.Fatal("expected a match")
	}
	if after.Target.ID != small.ID {
		t.Fatalf("smaller exact target must keep winning, got %q", after.Target.Name)
	}
	if after.Score < before.Score {
		t.Fatalf("adding a superset target decreased the score: %v -> %v", before.Score, after.Score)
	}
}

func TestBest_PrefixScalesWithCoverage(t *testing.T) {
	// Both names start with the query; the shorter one is covered more and
	// must score higher.
	long := app("photoshop elements organizer", "appid:pse")
	short := app("photoshop", "appid:ps")
	e := NewEngine()

	r, ok := e.Best(target.NewQuery("photos"), []target.Target{long, short}, nil)
	if !ok {
		t.Fatal("expected a match")
	}
	if r.Target.Name != "photoshop" {
		t.Fatalf("tighter prefix must win, got %q", r.Target.Name)
	}
}

func TestBest_ReverseSubstringForShortNames(t *testing.T) {
	targets := []target.Target{
		app("vlc", "/usr/bin/vlc"),
	}
	e := NewEngine()
	r, ok := e.Best(target.NewQuery("play the video in vlc please"), targets, nil)
	if !ok {
		t.Fatal("expected a match")
	}
	if r.Target.Name != "vlc" {
		t.Fatalf("unexpected winner: %q", r.Target.Name)
	}
}

func TestBest_FuzzyFallbackForMisspellings(t *testing.T) {
	targets := []target.Target{
		app("floorplanner", "appid:fp"),
	}
	e := NewEngine()
	r, ok := e.Best(target.NewQuery("floorplaner"), targets, nil)
	if !ok {
		t.Fatal("expected fuzzy match for close misspelling")
	}
	if r.Signal != SignalFuzzy {
		t.Fatalf("expected fuzzy signal, got %s", r.Signal)
	}
}

func TestSimilarityRatio(t *testing.T) {
	if got := similarityRatio("chrome", "chrome"); got != 100 {
		t.Fatalf("identical strings must have ratio 100, got %v", got)
	}
	got := similarityRatio("firefox", "firefx")
	want := 100 * (1 - 1.0/7.0)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("ratio = %v, want %v", got, want)
	}
}

func TestBest_OverrideRuleRedirects(t *testing.T) {
	codeLike := app("code", "appid:not-the-editor")
	vsc := app("visual studio code", `C:\Program Files\VS Code\Code.exe`)
	e := NewEngine()

	r, ok := e.Best(target.NewQuery("code"), []target.Target{codeLike, vsc}, nil)
	if !ok {
		t.Fatal("expected a match")
	}
	if r.Target.ID != vsc.ID {
		t.Fatalf("override rule must prefer the canonical editor binary, got %q", r.Target.Name)
	}
	if r.Signal != SignalOverride {
		t.Fatalf("expected override signal, got %s", r.Signal)
	}
}

func TestBest_OverrideRuleMatchesBareCommand(t *testing.T) {
	// Desktop-entry descriptors carry a bare binary name with no path, so
	// the rule must match on the base name rather than a path suffix.
	installer := app("visual studio installer", "appid:Microsoft.VisualStudio.Installer")
	editor := app("code oss", "command:code")
	e := NewEngine()

	r, ok := e.Best(target.NewQuery("visual studio"), []target.Target{installer, editor}, nil)
	if !ok {
		t.Fatal("expected a match")
	}
	if r.Target.ID != editor.ID {
		t.Fatalf("override rule must cover command descriptors, got %q", r.Target.Name)
	}
	if r.Signal != SignalOverride {
		t.Fatalf("expected override signal, got %s", r.Signal)
	}
}

func TestBest_LongNamePenalty(t *testing.T) {
	// Identical signal band; the very long name is discounted.
	long := app("super extended professional media toolkit", "appid:long")
	short := app("media toolkit", "appid:short")
	e := NewEngine()

	r, ok := e.Best(target.NewQuery("media toolkit"), []target.Target{long, short}, nil)
	if !ok {
		t.Fatal("expected a match")
	}
	if r.Target.ID != short.ID {
		t.Fatalf("long-name penalty not applied, got %q", r.Target.Name)
	}
}

func TestBest_TieBreakPrefersShorterAlias(t *testing.T) {
	// Both names are short embedded substrings of the phrase, landing in the
	// same flat band with the same bonus. The shorter winning alias must win
	// even though its target was discovered second.
	media := app("media", "appid:media")
	vlc := app("vlc", "appid:vlc")
	e := NewEngine()

	r, ok := e.Best(target.NewQuery("open vlc media"), []target.Target{media, vlc}, nil)
	if !ok {
		t.Fatal("expected a match")
	}
	if r.Target.ID != vlc.ID {
		t.Fatalf("tie must break to the shorter winning alias, got %q", r.Target.Name)
	}
}

func TestBest_FullTieKeepsFirstDiscovered(t *testing.T) {
	a := app("obs studio suite", "appid:first")
	b := app("art studio suite", "appid:second")
	e := NewEngine()

	r, ok := e.Best(target.NewQuery("studio"), []target.Target{a, b}, nil)
	if !ok {
		t.Fatal("expected a match")
	}
	if r.Target.ID != a.ID {
		t.Fatalf("full tie must keep discovery order, got %q", r.Target.Name)
	}
}

func TestWordOverlapScore(t *testing.T) {
	cases := []struct {
		query []string
		alias []string
		want  float64
		ok    bool
	}{
		{[]string{"studio"}, []string{"visual", "studio", "code"}, scoreWordMatchBase + 100, true},
		{[]string{"stud"}, []string{"visual", "studio"}, scorePartialMatchBase + 50, true},
		{[]string{"zq"}, []string{"visual", "studio"}, 0, false},
		{[]string{"visual", "stud"}, []string{"visual", "studio"}, scoreWordMatchBase + 100 + 25, true},
	}
	for i, c := range cases {
		t.Run(fmt.Sprintf("case%d", i), func(t *testing.T) {
			got, ok := wordOverlapScore(c.query, c.alias)
			if ok != c.ok || got != c.want {
				t.Fatalf("wordOverlapScore(%v, %v) = %v, %v; want %v, %v", c.query, c.alias, got, ok, c.want, c.ok)
			}
		})
	}
}
