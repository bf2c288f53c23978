package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newCorpusCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corpus",
		Short: "Manage stored training corpora",
	}
	cmd.AddCommand(newCorpusAddCmd(a, false))
	cmd.AddCommand(newCorpusAddCmd(a, true))
	cmd.AddCommand(newCorpusListCmd(a))
	cmd.AddCommand(newCorpusRemoveCmd(a))
	return cmd
}

// newCorpusAddCmd builds "add" or, with appendMode, "append". Text is read
// from FILE, or from stdin when FILE is "-" or omitted.
func newCorpusAddCmd(a *app, appendMode bool) *cobra.Command {
	use, short := "add NAME [FILE]", "Store a new corpus"
	if appendMode {
		use, short = "append NAME [FILE]", "Append text to a corpus, creating it if needed"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.RangeArgs(1, 2),
		RunE: a.runE(func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}

			var r io.Reader = cmd.InOrStdin()
			if len(args) == 2 && args[1] != "-" {
				f, err := os.Open(args[1])
				if err != nil {
					return fmt.Errorf("failed to open corpus file: %w", err)
				}
				defer func(f *os.File) {
					_ = f.Close()
				}(f)
				r = f
			}

			ctx := cmd.Context()
			if appendMode {
				info, err := store.AppendCorpus(ctx, args[0], r)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "corpus %s now holds %s characters\n", info.Name, humanize.Comma(int64(info.Chars)))
				return err
			}
			info, err := store.AddCorpus(ctx, args[0], r)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "added corpus %s (%s characters)\n", info.Name, humanize.Comma(int64(info.Chars)))
			return err
		}),
	}
}

func newCorpusListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored corpora",
		Args:  cobra.NoArgs,
		RunE: a.runE(func(cmd *cobra.Command, _ []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			infos, err := store.GetCorpusInfos(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "NAME\tCHARACTERS\tADDED")
			for _, info := range infos {
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", info.Name, humanize.Comma(int64(info.Chars)), humanize.Time(info.AddedAt))
			}
			return tw.Flush()
		}),
	}
}

func newCorpusRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm NAME",
		Aliases: []string{"remove"},
		Short:   "Remove a corpus and its recorded runs",
		Args:    cobra.ExactArgs(1),
		RunE: a.runE(func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			if err = store.RemoveCorpus(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "removed corpus %s\n", args[0])
			return err
		}),
	}
}
