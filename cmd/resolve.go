package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"summon-cli/internal/resolver"
	"summon-cli/internal/score"
)

var flagResolveBreakdown bool

var resolveCmd = &cobra.Command{
	Use:   "resolve <phrase>",
	Short: "Show what a phrase would launch, without launching it",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runResolve,
}

func init() {
	resolveCmd.Flags().BoolVar(&flagResolveBreakdown, "breakdown", false, "Print per-signal score contributions")
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	r, err := newResolver()
	if err != nil {
		return err
	}
	query := strings.Join(args, " ")

	m, err := r.Resolve(cmd.Context(), query)
	if err != nil {
		if resolver.IsNoMatch(err) {
			printMiss("", fmt.Sprintf("nothing on this machine matches %q", query))
		}
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Target:\t%s\n", m.Target.Name)
	fmt.Fprintf(w, "Kind:\t%s\n", m.Target.Kind)
	fmt.Fprintf(w, "Descriptor:\t%s\n", m.Target.Descriptor)
	fmt.Fprintf(w, "Score:\t%.1f\n", m.Score)
	fmt.Fprintf(w, "Signal:\t%s\n", m.Signal)
	if m.Alias != "" && m.Alias != m.Target.Name {
		fmt.Fprintf(w, "Matched alias:\t%s\n", m.Alias)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if flagResolveBreakdown {
		printBreakdown(m.Breakdown)
	}
	return nil
}

func printBreakdown(b score.Breakdown) {
	printSection("Signal breakdown")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  exact\t%.3f\n", b.Exact)
	fmt.Fprintf(w, "  prefix\t%.3f\n", b.Prefix)
	fmt.Fprintf(w, "  substring\t%.3f\n", b.Substring)
	fmt.Fprintf(w, "  overlap\t%.3f\n", b.Overlap)
	fmt.Fprintf(w, "  fuzzy\t%.3f\n", b.Fuzzy)
	fmt.Fprintf(w, "  semantic\t%.3f\n", b.Semantic)
	fmt.Fprintf(w, "  jaccard\t%.3f\n", b.Jaccard)
	_ = w.Flush()
}
