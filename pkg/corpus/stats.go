package corpus

import (
	"context"
	"database/sql"
)

// DBStats holds aggregated statistics for the entire store.
type DBStats struct {
	Corpora       int            // The number of stored corpora
	TotalChars    int64          // The number of characters across all corpora
	Runs          int            // The number of recorded generation runs
	RunsPerCorpus map[string]int // A mapping of corpus names to their run counts
}

// GetStats returns a snapshot of statistics for the entire store.
func (s *Store) GetStats(ctx context.Context) (*DBStats, error) {
	stats := &DBStats{RunsPerCorpus: make(map[string]int)}

	err := s.stmtCountCorpora.QueryRowContext(ctx).Scan(&stats.Corpora, &stats.TotalChars)
	if err != nil {
		return nil, err
	}

	err = s.stmtCountRuns.QueryRowContext(ctx).Scan(&stats.Runs)
	if err != nil {
		return nil, err
	}

	rows, err := s.stmtRunsPerCorpus.QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	for rows.Next() {
		var name string
		var count int
		if err = rows.Scan(&name, &count); err != nil {
			return nil, err
		}
		stats.RunsPerCorpus[name] = count
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}
