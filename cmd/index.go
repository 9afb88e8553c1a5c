package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Rediscover apps and folders and rewrite the cache",
	Long: `Summon caches application discovery under ~/.summon/cache/ so queries
start fast. The cache has no expiry; run this after installing or removing
applications to pick up the change.`,
	Args: cobra.NoArgs,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	r, err := newResolver()
	if err != nil {
		return err
	}

	printInfo("", "rediscovering applications and folders")
	n, err := r.Refresh(cmd.Context())
	if err != nil {
		return err
	}
	printOK("", fmt.Sprintf("index rebuilt: %d targets", n))
	return nil
}
