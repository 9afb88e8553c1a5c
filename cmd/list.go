package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"summon-cli/internal/target"
)

var flagListKind string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every app and folder summon can currently resolve",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&flagListKind, "kind", "", "Only list targets of this kind (app, folder, file)")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	r, err := newResolver()
	if err != nil {
		return err
	}
	targets, err := r.Targets(cmd.Context())
	if err != nil {
		return err
	}

	grouped := map[target.Kind][]target.Target{}
	for _, t := range targets {
		if flagListKind != "" && string(t.Kind) != flagListKind {
			continue
		}
		grouped[t.Kind] = append(grouped[t.Kind], t)
	}

	order := []struct {
		kind  target.Kind
		title string
	}{
		{target.KindApplication, "Applications"},
		{target.KindFolder, "Folders"},
		{target.KindFile, "Files"},
	}

	total := 0
	for _, g := range order {
		items := grouped[g.kind]
		if len(items) == 0 {
			continue
		}
		total += len(items)
		printSection(fmt.Sprintf("%s (%d)", g.title, len(items)))

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, t := range items {
			fmt.Fprintf(w, "  %s\t%s\n", t.Name, t.Descriptor)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	if total == 0 {
		printMiss("", "no targets discovered")
		return nil
	}
	fmt.Printf("\n%d targets\n", total)
	return nil
}
