package corpus

import (
	"crypto/rand"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/oklog/ulid/v2"
)

// SetupSchema initializes the necessary tables in the provided database. It
// is idempotent and safe to call on an already-initialized database.
func SetupSchema(db *sql.DB) error {

	const (
		schemaCorpora = `
CREATE TABLE IF NOT EXISTS corpus_texts (
    corpus_id INTEGER PRIMARY KEY,
    corpus_name TEXT NOT NULL UNIQUE,
    content TEXT NOT NULL,
    char_count INTEGER NOT NULL,
    added_at TEXT NOT NULL
);
`
		schemaRuns = `
CREATE TABLE IF NOT EXISTS generation_runs (
    run_id TEXT PRIMARY KEY,
    corpus_name TEXT NOT NULL,
    window_length INTEGER NOT NULL,
    seed INTEGER NOT NULL,
    seed_text TEXT NOT NULL,
    target_length INTEGER NOT NULL,
    output TEXT NOT NULL,
    created_at TEXT NOT NULL
);
`
		indexRuns = `CREATE INDEX IF NOT EXISTS idx_generation_runs_corpus ON generation_runs (corpus_name);`
	)

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	if _, err = tx.Exec(schemaCorpora); err != nil {
		return fmt.Errorf("could not create corpus schema: %w", err)
	}

	if _, err = tx.Exec(schemaRuns); err != nil {
		return fmt.Errorf("could not create runs schema: %w", err)
	}

	if _, err = tx.Exec(indexRuns); err != nil {
		return fmt.Errorf("could not create runs index: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}

	return nil
}

// Store holds the database connection and prepared SQL statements for
// managing corpora and generation runs.
type Store struct {
	db                *sql.DB
	stmtGetCorpusInfo *sql.Stmt
	stmtGetCorpora    *sql.Stmt
	stmtGetContent    *sql.Stmt
	stmtAppendCorpus  *sql.Stmt
	stmtInsertRun     *sql.Stmt
	stmtGetRun        *sql.Stmt
	stmtCountCorpora  *sql.Stmt
	stmtCountRuns     *sql.Stmt
	stmtRunsPerCorpus *sql.Stmt
	entropyMu         sync.Mutex
	entropy           *ulid.MonotonicEntropy
	logger            *slog.Logger
}

// NewStore creates and returns a new Store. It pre-compiles all necessary
// SQL statements, returning an error if any preparation fails.
func NewStore(db *sql.DB) (*Store, error) {
	stmtGetCorpusInfo, err := db.Prepare(`SELECT corpus_id, char_count, added_at FROM corpus_texts WHERE corpus_name = ?;`)
	if err != nil {
		return nil, err
	}

	stmtGetCorpora, err := db.Prepare(`SELECT corpus_id, corpus_name, char_count, added_at FROM corpus_texts ORDER BY corpus_name;`)
	if err != nil {
		return nil, err
	}

	stmtGetContent, err := db.Prepare(`SELECT corpus_id, content, char_count, added_at FROM corpus_texts WHERE corpus_name = ?;`)
	if err != nil {
		return nil, err
	}

	stmtAppendCorpus, err := db.Prepare(`INSERT INTO corpus_texts (corpus_name, content, char_count, added_at) VALUES (?, ?, ?, ?)
ON CONFLICT(corpus_name) DO UPDATE SET content = content || excluded.content, char_count = char_count + excluded.char_count;`)
	if err != nil {
		return nil, err
	}

	stmtInsertRun, err := db.Prepare(`INSERT INTO generation_runs (run_id, corpus_name, window_length, seed, seed_text, target_length, output, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?);`)
	if err != nil {
		return nil, err
	}

	stmtGetRun, err := db.Prepare(`SELECT corpus_name, window_length, seed, seed_text, target_length, output, created_at FROM generation_runs WHERE run_id = ?;`)
	if err != nil {
		return nil, err
	}

	stmtCountCorpora, err := db.Prepare(`SELECT COUNT(*), coalesce(SUM(char_count), 0) FROM corpus_texts;`)
	if err != nil {
		return nil, err
	}

	stmtCountRuns, err := db.Prepare(`SELECT COUNT(*) FROM generation_runs;`)
	if err != nil {
		return nil, err
	}

	stmtRunsPerCorpus, err := db.Prepare(`SELECT corpus_name, COUNT(*) FROM generation_runs GROUP BY corpus_name;`)
	if err != nil {
		return nil, err
	}

	return &Store{
		db:                db,
		stmtGetCorpusInfo: stmtGetCorpusInfo,
		stmtGetCorpora:    stmtGetCorpora,
		stmtGetContent:    stmtGetContent,
		stmtAppendCorpus:  stmtAppendCorpus,
		stmtInsertRun:     stmtInsertRun,
		stmtGetRun:        stmtGetRun,
		stmtCountCorpora:  stmtCountCorpora,
		stmtCountRuns:     stmtCountRuns,
		stmtRunsPerCorpus: stmtRunsPerCorpus,
		entropy:           ulid.Monotonic(rand.Reader, 0),
		logger:            slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, nil
}

// Close releases all prepared SQL statements held by the Store. The
// database itself is owned by the caller.
func (s *Store) Close() {
	_ = s.stmtGetCorpusInfo.Close()
	_ = s.stmtGetCorpora.Close()
	_ = s.stmtGetContent.Close()
	_ = s.stmtAppendCorpus.Close()
	_ = s.stmtInsertRun.Close()
	_ = s.stmtGetRun.Close()
	_ = s.stmtCountCorpora.Close()
	_ = s.stmtCountRuns.Close()
	_ = s.stmtRunsPerCorpus.Close()
}

// SetLogger sets the logger for the Store. By default, all logs are discarded.
func (s *Store) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}
