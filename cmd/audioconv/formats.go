package main

import (
	"fmt"
	"os/exec"
	"text/tabwriter"

	"github.com/handiism/audioconv/internal/convert"
	"github.com/spf13/cobra"
)

func (a *app) formatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the supported conversions and the programs they run.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := convert.NewResolver(a.settings.ToTools())

			w := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "FROM\tTO\tPIPELINE")
			for _, pair := range r.Pairs() {
				p, err := r.Resolve(pair.From, pair.To)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", pair.From, pair.To, p)
			}
			return w.Flush()
		},
	}
}

// checkTools reports whether every configured program can be found.
func (a *app) checkTools() error {
	missing := 0
	w := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	for _, t := range a.settings.ToTools().Named() {
		path, err := exec.LookPath(t.Program)
		if err != nil {
			missing++
			fmt.Fprintf(w, "❌\t%s\t%s\tnot found\n", t.Role, t.Program)
			continue
		}
		fmt.Fprintf(w, "✅\t%s\t%s\t%s\n", t.Role, t.Program, path)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if missing > 0 {
		return fmt.Errorf("%d program(s) not found", missing)
	}
	return nil
}
