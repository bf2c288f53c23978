package corpus

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"
)

// Info holds the metadata for a stored corpus. Chars counts characters
// (Unicode scalar values), not bytes.
type Info struct {
	Id      int
	Name    string
	Chars   int
	AddedAt time.Time
}

// GetCorpusInfos retrieves metadata for all stored corpora, sorted by name.
func (s *Store) GetCorpusInfos(ctx context.Context) ([]Info, error) {
	rows, err := s.stmtGetCorpora.QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var infos []Info
	for rows.Next() {
		var info Info
		var addedAt string
		if err = rows.Scan(&info.Id, &info.Name, &info.Chars, &addedAt); err != nil {
			return nil, err
		}
		if info.AddedAt, err = parseTime(addedAt); err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return infos, nil
}

// GetCorpusInfo retrieves the metadata for a single corpus. It returns
// ErrNotFound if no corpus has that name.
func (s *Store) GetCorpusInfo(ctx context.Context, name string) (Info, error) {
	info := Info{Name: name}
	var addedAt string
	err := s.stmtGetCorpusInfo.QueryRowContext(ctx, name).Scan(&info.Id, &info.Chars, &addedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Info{}, fmt.Errorf("corpus '%s': %w", name, ErrNotFound)
	}
	if err != nil {
		return Info{}, err
	}
	if info.AddedAt, err = parseTime(addedAt); err != nil {
		return Info{}, err
	}
	return info, nil
}

// AddCorpus stores the full content of r under a new name. It returns
// ErrDuplicate if the name is already taken.
func (s *Store) AddCorpus(ctx context.Context, name string, r io.Reader) (Info, error) {
	if name == "" {
		return Info{}, fmt.Errorf("corpus name is empty: %w", ErrInvalidInput)
	}
	content, err := io.ReadAll(r)
	if err != nil {
		return Info{}, fmt.Errorf("failed to read corpus '%s': %w", name, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Info{}, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	var existing int
	err = tx.QueryRowContext(ctx, "SELECT corpus_id FROM corpus_texts WHERE corpus_name = ?", name).Scan(&existing)
	if err == nil {
		return Info{}, fmt.Errorf("corpus '%s': %w", name, ErrDuplicate)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return Info{}, fmt.Errorf("failed to query for corpus '%s': %w", name, err)
	}

	info := Info{
		Name:    name,
		Chars:   utf8.RuneCount(content),
		AddedAt: time.Now().UTC(),
	}
	res, err := tx.ExecContext(ctx, "INSERT INTO corpus_texts (corpus_name, content, char_count, added_at) VALUES (?, ?, ?, ?)",
		name, string(content), info.Chars, formatTime(info.AddedAt))
	if err != nil {
		return Info{}, fmt.Errorf("failed to insert corpus '%s': %w", name, err)
	}
	newID, _ := res.LastInsertId()
	info.Id = int(newID)

	if err = tx.Commit(); err != nil {
		return Info{}, err
	}

	s.logger.InfoContext(ctx, "Corpus added",
		slog.String("corpus_name", name),
		slog.Int("corpus_id", info.Id),
		slog.Int("chars", info.Chars),
	)
	return info, nil
}

// AppendCorpus appends the content of r to a corpus, creating it if needed.
func (s *Store) AppendCorpus(ctx context.Context, name string, r io.Reader) (Info, error) {
	if name == "" {
		return Info{}, fmt.Errorf("corpus name is empty: %w", ErrInvalidInput)
	}
	content, err := io.ReadAll(r)
	if err != nil {
		return Info{}, fmt.Errorf("failed to read corpus '%s': %w", name, err)
	}

	chars := utf8.RuneCount(content)
	_, err = s.stmtAppendCorpus.ExecContext(ctx, name, string(content), chars, formatTime(time.Now().UTC()))
	if err != nil {
		return Info{}, fmt.Errorf("failed to append to corpus '%s': %w", name, err)
	}

	s.logger.InfoContext(ctx, "Corpus appended",
		slog.String("corpus_name", name),
		slog.Int("chars_added", chars),
	)
	return s.GetCorpusInfo(ctx, name)
}

// OpenCorpus returns a reader over the stored content of a corpus along with
// its metadata. It returns ErrNotFound if no corpus has that name.
func (s *Store) OpenCorpus(ctx context.Context, name string) (io.Reader, Info, error) {
	info := Info{Name: name}
	var content, addedAt string
	err := s.stmtGetContent.QueryRowContext(ctx, name).Scan(&info.Id, &content, &info.Chars, &addedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, Info{}, fmt.Errorf("corpus '%s': %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, Info{}, fmt.Errorf("failed to load corpus '%s': %w", name, err)
	}
	if info.AddedAt, err = parseTime(addedAt); err != nil {
		return nil, Info{}, err
	}
	return strings.NewReader(content), info, nil
}

// RemoveCorpus deletes a corpus and every run recorded against it. The
// operation is performed within a transaction.
func (s *Store) RemoveCorpus(ctx context.Context, name string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	res, err := tx.ExecContext(ctx, "DELETE FROM corpus_texts WHERE corpus_name = ?", name)
	if err != nil {
		return fmt.Errorf("failed to remove corpus '%s': %w", name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("corpus '%s': %w", name, ErrNotFound)
	}

	res, err = tx.ExecContext(ctx, "DELETE FROM generation_runs WHERE corpus_name = ?", name)
	if err != nil {
		return fmt.Errorf("failed to remove runs for corpus '%s': %w", name, err)
	}
	runsRemoved, _ := res.RowsAffected()

	s.logger.InfoContext(ctx, "Corpus removed successfully",
		slog.String("corpus_name", name),
		slog.Int64("runs_removed", runsRemoved),
	)

	return tx.Commit()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", value, err)
	}
	return t, nil
}
