package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"summon-cli/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create ~/.summon with a default config and credentials template",
	Long: `Initialize the summon home directory at ~/.summon/:

  summon.yaml   tunable defaults (thresholds, timeouts, deny-list)
  .env          template for embeddings credentials (semantic matching)
  cache/        discovery cache, filled on first query or 'summon index'

Existing files are left untouched.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

var flagInitDiscover bool

func init() {
	initCmd.Flags().BoolVar(&flagInitDiscover, "discover", false, "Run a full discovery pass after setup")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	summonDir, err := config.SummonDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(summonDir, 0o755); err != nil {
		return fmt.Errorf("cannot create %s: %w", summonDir, err)
	}
	printOK("", fmt.Sprintf("summon directory ready: %s", summonDir))

	cfgPath, err := config.ConfigPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		if err := config.Save(config.Default()); err != nil {
			return err
		}
		printOK("", fmt.Sprintf("config written: %s", cfgPath))
	} else {
		printInfo("", fmt.Sprintf("config already exists: %s", cfgPath))
	}

	if err := config.EnsureDotEnvTemplate(); err != nil {
		return err
	}
	envPath, _ := config.DotEnvPath()
	printOK("", fmt.Sprintf("credentials template ready: %s", envPath))

	cachePath, err := config.CachePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(cachePath), 0o755); err != nil {
		return fmt.Errorf("cannot create cache dir: %w", err)
	}

	if flagInitDiscover {
		r, err := newResolver()
		if err != nil {
			return err
		}
		printInfo("", "running initial discovery")
		n, err := r.Refresh(cmd.Context())
		if err != nil {
			return err
		}
		printOK("", fmt.Sprintf("%d targets discovered", n))
	}

	fmt.Println("\n✓  summon init complete. Try 'summon open <app name>'.")
	return nil
}
