package main

import (
	"fmt"
	"slices"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newDumpCmd(a *app) *cobra.Command {
	var (
		src    corpusSource
		window int
	)

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Train a model and print every window with its (char count p cp) tuples",
		Args:  cobra.NoArgs,
		RunE: a.runE(func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("window") {
				window = a.config.DefaultWindow
			}
			m, err := a.train(cmd.Context(), src, window)
			if err != nil {
				return err
			}
			return m.Dump(cmd.OutOrStdout())
		}),
	}

	src.register(cmd)
	cmd.Flags().IntVarP(&window, "window", "w", 0, "window length (default from config)")
	return cmd
}

func newStatsCmd(a *app) *cobra.Command {
	var (
		src    corpusSource
		window int
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show corpus database statistics, or model statistics with --file/--corpus",
		Args:  cobra.NoArgs,
		RunE: a.runE(func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			if src.file != "" || src.corpus != "" {
				if !cmd.Flags().Changed("window") {
					window = a.config.DefaultWindow
				}
				m, err := a.train(cmd.Context(), src, window)
				if err != nil {
					return err
				}
				stats := m.Stats()
				_, err = fmt.Fprintf(out, "window length: %d\nwindows: %s\ntransitions: %s\nobservations: %s\n",
					m.WindowLength(),
					humanize.Comma(int64(stats.Windows)),
					humanize.Comma(int64(stats.Transitions)),
					humanize.Comma(int64(stats.Observations)))
				return err
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}
			stats, err := store.GetStats(cmd.Context())
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(out, "corpora: %d\ncharacters: %s\nruns: %d\n",
				stats.Corpora, humanize.Comma(stats.TotalChars), stats.Runs)
			if len(stats.RunsPerCorpus) == 0 {
				return nil
			}
			names := make([]string, 0, len(stats.RunsPerCorpus))
			for name := range stats.RunsPerCorpus {
				names = append(names, name)
			}
			slices.Sort(names)
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "CORPUS\tRUNS")
			for _, name := range names {
				_, _ = fmt.Fprintf(tw, "%s\t%d\n", name, stats.RunsPerCorpus[name])
			}
			return tw.Flush()
		}),
	}

	cmd.Flags().StringVar(&src.file, "file", "", "show statistics of a model trained on this file")
	cmd.Flags().StringVar(&src.corpus, "corpus", "", "show statistics of a model trained on this stored corpus")
	cmd.MarkFlagsMutuallyExclusive("file", "corpus")
	cmd.Flags().IntVarP(&window, "window", "w", 0, "window length (default from config)")
	return cmd
}
