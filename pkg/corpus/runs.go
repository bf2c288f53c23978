package corpus

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"
)

// Run records one generation: every parameter needed to reproduce it and
// the text it produced. IDs are ULIDs, so they sort by creation time.
type Run struct {
	ID           string
	Corpus       string
	WindowLength int
	Seed         int64
	SeedText     string
	TargetLength int
	Output       string
	CreatedAt    time.Time
}

// RecordRun stores a run, assigning its ID and creation time. The corpus
// must exist.
func (s *Store) RecordRun(ctx context.Context, run Run) (Run, error) {
	if _, err := s.GetCorpusInfo(ctx, run.Corpus); err != nil {
		return Run{}, err
	}

	now := time.Now().UTC()
	s.entropyMu.Lock()
	id, err := ulid.New(ulid.Timestamp(now), s.entropy)
	s.entropyMu.Unlock()
	if err != nil {
		return Run{}, fmt.Errorf("failed to generate run id: %w", err)
	}
	run.ID = id.String()
	run.CreatedAt = now

	_, err = s.stmtInsertRun.ExecContext(ctx, run.ID, run.Corpus, run.WindowLength, run.Seed,
		run.SeedText, run.TargetLength, run.Output, formatTime(run.CreatedAt))
	if err != nil {
		return Run{}, fmt.Errorf("failed to insert run for corpus '%s': %w", run.Corpus, err)
	}

	s.logger.DebugContext(ctx, "Run recorded",
		slog.String("run_id", run.ID),
		slog.String("corpus_name", run.Corpus),
		slog.Int("window_length", run.WindowLength),
		slog.Int64("seed", run.Seed),
	)
	return run, nil
}

// GetRun retrieves a single run by ID. It returns ErrNotFound if there is
// no such run.
func (s *Store) GetRun(ctx context.Context, id string) (Run, error) {
	run := Run{ID: id}
	var createdAt string
	err := s.stmtGetRun.QueryRowContext(ctx, id).Scan(&run.Corpus, &run.WindowLength, &run.Seed,
		&run.SeedText, &run.TargetLength, &run.Output, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("run '%s': %w", id, ErrNotFound)
	}
	if err != nil {
		return Run{}, err
	}
	if run.CreatedAt, err = parseTime(createdAt); err != nil {
		return Run{}, err
	}
	return run, nil
}

// GetRuns lists runs oldest first. An empty corpus name lists the runs of
// every corpus.
func (s *Store) GetRuns(ctx context.Context, corpusName string) ([]Run, error) {
	query := "SELECT run_id, corpus_name, window_length, seed, seed_text, target_length, output, created_at FROM generation_runs"
	var args []interface{}
	if corpusName != "" {
		query += " WHERE corpus_name = ?"
		args = append(args, corpusName)
	}
	query += " ORDER BY run_id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("could not query runs: %w", err)
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var runs []Run
	for rows.Next() {
		var run Run
		var createdAt string
		if err = rows.Scan(&run.ID, &run.Corpus, &run.WindowLength, &run.Seed,
			&run.SeedText, &run.TargetLength, &run.Output, &createdAt); err != nil {
			return nil, err
		}
		if run.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}
