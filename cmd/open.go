package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"summon-cli/internal/resolver"
)

var openCmd = &cobra.Command{
	Use:   "open <phrase>",
	Short: "Resolve a phrase and launch the matching app or folder",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runOpen,
}

func init() {
	rootCmd.AddCommand(openCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
	r, err := newResolver()
	if err != nil {
		return err
	}
	query := strings.Join(args, " ")

	out, err := r.Open(cmd.Context(), query)
	if err != nil {
		if resolver.IsNoMatch(err) {
			printMiss("", fmt.Sprintf("nothing on this machine matches %q", query))
			return err
		}
		if out != nil {
			// Resolution succeeded; every launch method failed.
			printWarn(out.Match.Target.Name, "found, but could not be launched")
		}
		return err
	}

	printOK(out.Match.Target.Name, fmt.Sprintf("launched via %s", out.Launch.Method))
	if flagDebug {
		printLaunchTrace(out)
	}
	return nil
}

func printLaunchTrace(out *resolver.Outcome) {
	printInfo("", fmt.Sprintf("score %.1f (%s), descriptor %s",
		out.Match.Score, out.Match.Signal, out.Match.Target.Descriptor))
	for _, a := range out.Launch.Attempts {
		if a.Err != nil {
			printInfo("", fmt.Sprintf("tried %s: %v", a.Method, a.Err))
		}
	}
}
