// Package main provides the CLI entrypoint for charkov, a character-level
// Markov text generator.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"github.com/CTAG07/charkov/pkg/corpus"
	"github.com/CTAG07/charkov/pkg/markov"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// app carries the state shared by every command: flags, loaded config,
// logger and the lazily opened corpus store.
type app struct {
	configPath string
	dbPath     string
	logLevel   string

	config *Config
	logger *slog.Logger
	stderr io.Writer
	db     *sql.DB
	store  *corpus.Store
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "charkov",
		Short:         "Character-level Markov text generator",
		Version:       fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildDate),
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "./charkov.json", "path to the JSON config file")
	rootCmd.PersistentFlags().StringVar(&a.dbPath, "db", "", "corpus database path (overrides config)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error (overrides config)")

	rootCmd.AddCommand(newCorpusCmd(a))
	rootCmd.AddCommand(newGenerateCmd(a))
	rootCmd.AddCommand(newReplayCmd(a))
	rootCmd.AddCommand(newDumpCmd(a))
	rootCmd.AddCommand(newStatsCmd(a))

	return rootCmd
}

func (a *app) init(cmd *cobra.Command) error {
	config, err := LoadConfig(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if a.dbPath != "" {
		config.DatabasePath = a.dbPath
	}
	if a.logLevel != "" {
		config.LogLevel = a.logLevel
	}
	a.config = config
	a.stderr = cmd.ErrOrStderr()
	a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: parseLogLevel(config.LogLevel)}))
	return nil
}

// openStore opens the corpus database on first use.
func (a *app) openStore() (*corpus.Store, error) {
	if a.store != nil {
		return a.store, nil
	}

	db, err := initDB(a.config.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err = corpus.SetupSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to setup corpus schema: %w", err)
	}
	store, err := corpus.NewStore(db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error creating corpus store: %w", err)
	}
	store.SetLogger(a.logger)

	a.logger.Debug("Database opened", "driver", driverName, "path", a.config.DatabasePath)
	a.db = db
	a.store = store
	return store, nil
}

// runE wraps a command body so the store is closed however the command ends.
func (a *app) runE(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		defer a.close()
		return fn(cmd, args)
	}
}

func (a *app) close() {
	if a.store != nil {
		a.store.Close()
		a.store = nil
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error("Failed to close database", "error", err)
		}
		a.db = nil
	}
}

// corpusSource selects where training text comes from: a file or a stored corpus.
type corpusSource struct {
	file   string
	corpus string
}

func (s *corpusSource) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.file, "file", "", "train on the text of this file")
	cmd.Flags().StringVar(&s.corpus, "corpus", "", "train on this stored corpus")
	cmd.MarkFlagsOneRequired("file", "corpus")
	cmd.MarkFlagsMutuallyExclusive("file", "corpus")
}

// train builds a model of the given window length from the selected source.
func (a *app) train(ctx context.Context, src corpusSource, window int, opts ...markov.Option) (*markov.Model, error) {
	opts = append(opts, markov.WithLogger(a.logger))
	m, err := markov.New(window, opts...)
	if err != nil {
		return nil, err
	}

	var r io.Reader
	if src.file != "" {
		f, err := os.Open(src.file)
		if err != nil {
			return nil, fmt.Errorf("failed to open corpus file: %w", err)
		}
		defer func(f *os.File) {
			_ = f.Close()
		}(f)
		r = f
	} else {
		store, err := a.openStore()
		if err != nil {
			return nil, err
		}
		if r, _, err = store.OpenCorpus(ctx, src.corpus); err != nil {
			return nil, err
		}
	}

	if err = m.Train(ctx, r); err != nil {
		return nil, fmt.Errorf("training failed: %w", err)
	}
	return m, nil
}

// writeOutput prints text, or writes it atomically to path when one is given.
func writeOutput(cmd *cobra.Command, path, text string) error {
	if path == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), text)
		return err
	}
	if err := atomic.WriteFile(path, strings.NewReader(text)); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
