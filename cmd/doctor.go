package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"

	"summon-cli/internal/config"
	"summon-cli/internal/embeddings"
	"summon-cli/internal/index"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run pre-flight environment checks",
	Long: `Check that summon's environment is correctly configured: the config
file, the discovery cache, the platform launch tools, and (when enabled)
the embeddings provider. Run this when something seems wrong, or before
filing a bug report.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// launchTools lists the external commands each platform's launch chain and
// discovery pass depend on.
var launchTools = map[string][]string{
	"darwin":  {"open"},
	"linux":   {"xdg-open", "gtk-launch"},
	"windows": {"powershell", "explorer", "cmd"},
}

func runDoctor(_ *cobra.Command, _ []string) error {
	allOK := true
	failD := func(format string, args ...any) {
		printErr("", fmt.Sprintf(format, args...))
		allOK = false
	}

	printSection("summon doctor")
	fmt.Println()

	// ── Check 1: summon.yaml parses ───────────────────────────────────────
	fmt.Println("[ config ]")
	cfgPath, _ := config.ConfigPath()
	cfg, loadErr := config.Load()
	switch {
	case loadErr != nil:
		failD("cannot parse %s: %v", cfgPath, loadErr)
		cfg = config.Default()
	default:
		if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
			printInfo("", fmt.Sprintf("no %s — built-in defaults in use (run 'summon init' to write one)", cfgPath))
		} else {
			printOK("", fmt.Sprintf("valid YAML: %s", cfgPath))
		}
		printInfo("", fmt.Sprintf("lexical threshold %.0f, semantic %v", cfg.LexicalThreshold, cfg.Semantic))
	}
	fmt.Println()

	// ── Check 2: discovery cache ──────────────────────────────────────────
	fmt.Println("[ discovery cache ]")
	cachePath, err := config.CachePath()
	if err != nil {
		failD("cannot determine cache path: %v", err)
	} else {
		raws, ok, err := index.LoadCache(cachePath)
		switch {
		case err != nil:
			printWarn("", fmt.Sprintf("cache unreadable, next run rediscovers: %v", err))
		case !ok:
			printMiss("", fmt.Sprintf("no cache yet: %s (run 'summon index')", cachePath))
		default:
			printOK("", fmt.Sprintf("%d cached applications: %s", len(raws), cachePath))
		}
	}
	fmt.Println()

	// ── Check 3: platform launch tools ────────────────────────────────────
	fmt.Println("[ launch tools ]")
	tools := launchTools[runtime.GOOS]
	if len(tools) == 0 {
		printWarn("", fmt.Sprintf("unsupported platform %s — discovery and launch are disabled", runtime.GOOS))
	}
	for _, tool := range tools {
		if _, err := exec.LookPath(tool); err != nil {
			// gtk-launch is one method of several on Linux, so its absence
			// degrades the chain rather than breaking it.
			if tool == "gtk-launch" {
				printWarn("", fmt.Sprintf("%s not on PATH — desktop-entry launch falls back to direct commands", tool))
			} else {
				failD("%s not on PATH", tool)
			}
		} else {
			printOK("", tool)
		}
	}
	fmt.Println()

	// ── Check 4: embeddings provider (only when semantic matching is on) ──
	fmt.Println("[ embeddings ]")
	if !cfg.Semantic {
		printInfo("", "semantic matching disabled — lexical scoring only")
	} else {
		embCfg, err := embeddings.LoadConfig()
		if err != nil {
			failD("cannot load embeddings config: %v", err)
		} else if prov, err := embeddings.NewFromConfig(embCfg); err != nil {
			failD("embeddings provider unavailable: %v\n   Set SUMMON_EMBEDDINGS_* in ~/.summon/.env", err)
		} else {
			printOK("", fmt.Sprintf("provider ready: %s", prov.ModelID()))
		}
	}
	fmt.Println()

	// ── Summary ───────────────────────────────────────────────────────────
	fmt.Println("===================")
	if allOK {
		fmt.Println("✓  All checks passed. Summon is ready to use.")
	} else {
		fmt.Fprintln(os.Stderr, "✗  One or more checks failed. See details above.")
		return fmt.Errorf("doctor found issues")
	}
	return nil
}
