package main

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/CTAG07/charkov/pkg/corpus"
	"github.com/CTAG07/charkov/pkg/markov"
)

// errDiverged is returned by replay when regenerated text differs from the record.
var errDiverged = errors.New("replayed output differs from recorded output")

func newGenerateCmd(a *app) *cobra.Command {
	var (
		src      corpusSource
		window   int
		seed     int64
		seedText string
		length   int
		outPath  string
		record   bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Train a model and generate text from a seed",
		Args:  cobra.NoArgs,
		RunE: a.runE(func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("window") {
				window = a.config.DefaultWindow
			}
			if !cmd.Flags().Changed("length") {
				length = a.config.DefaultLength
			}
			if length < 0 {
				return fmt.Errorf("length must not be negative, got %d", length)
			}
			if record && src.corpus == "" {
				return errors.New("--record requires --corpus")
			}
			// Draw the seed here so a recorded run can be replayed.
			if !cmd.Flags().Changed("seed") {
				seed = rand.Int64()
			}

			ctx := cmd.Context()
			m, err := a.train(ctx, src, window, markov.WithSeed(seed))
			if err != nil {
				return err
			}
			text, err := m.GenerateContext(ctx, seedText, length)
			if err != nil {
				return err
			}

			a.logger.InfoContext(ctx, "Text generated",
				slog.Int("window_length", window),
				slog.Int64("seed", seed),
				slog.Int("target_length", length),
			)

			if record {
				store, err := a.openStore()
				if err != nil {
					return err
				}
				run, err := store.RecordRun(ctx, corpus.Run{
					Corpus:       src.corpus,
					WindowLength: window,
					Seed:         seed,
					SeedText:     seedText,
					TargetLength: length,
					Output:       text,
				})
				if err != nil {
					return err
				}
				a.logger.InfoContext(ctx, "Run recorded", slog.String("run_id", run.ID))
			}

			return writeOutput(cmd, outPath, text)
		}),
	}

	src.register(cmd)
	cmd.Flags().IntVarP(&window, "window", "w", 0, "window length (default from config)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (default: random)")
	cmd.Flags().StringVarP(&seedText, "text", "t", "", "seed text; its last WINDOW characters start generation")
	cmd.Flags().IntVarP(&length, "length", "n", 0, "characters to generate (default from config)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write the result to this file instead of stdout")
	cmd.Flags().BoolVar(&record, "record", false, "record the run in the corpus database")

	return cmd
}

func newReplayCmd(a *app) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "replay RUN_ID",
		Short: "Regenerate a recorded run and verify the output is identical",
		Args:  cobra.ExactArgs(1),
		RunE: a.runE(func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			run, err := store.GetRun(ctx, args[0])
			if err != nil {
				return err
			}

			m, err := a.train(ctx, corpusSource{corpus: run.Corpus}, run.WindowLength, markov.WithSeed(run.Seed))
			if err != nil {
				return err
			}
			text, err := m.GenerateContext(ctx, run.SeedText, run.TargetLength)
			if err != nil {
				return err
			}
			if text != run.Output {
				a.logger.WarnContext(ctx, "Replay diverged",
					slog.String("run_id", run.ID),
					slog.String("corpus_name", run.Corpus),
				)
				return fmt.Errorf("run %s: %w", run.ID, errDiverged)
			}

			a.logger.InfoContext(ctx, "Replay matched", slog.String("run_id", run.ID))
			return writeOutput(cmd, outPath, text)
		}),
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write the result to this file instead of stdout")
	return cmd
}
