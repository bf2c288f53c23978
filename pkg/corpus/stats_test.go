package corpus

import (
	"strings"
	"testing"
)

func TestGetStats(t *testing.T) {
	ctx, s, info := setupTestDBWithCorpus(t)
	_, _ = s.AddCorpus(ctx, "short", strings.NewReader("abc"))
	_, _ = s.RecordRun(ctx, Run{Corpus: "fish", WindowLength: 2})
	_, _ = s.RecordRun(ctx, Run{Corpus: "fish", WindowLength: 3})

	stats, err := s.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if stats.Corpora != 2 {
		t.Errorf("expected 2 corpora, got %d", stats.Corpora)
	}
	if stats.TotalChars != int64(info.Chars+3) {
		t.Errorf("expected %d total characters, got %d", info.Chars+3, stats.TotalChars)
	}
	if stats.Runs != 2 || stats.RunsPerCorpus["fish"] != 2 || stats.RunsPerCorpus["short"] != 0 {
		t.Errorf("unexpected run stats: %+v", stats)
	}
}

func TestGetStatsEmpty(t *testing.T) {
	_, s := setupTestDB(t)
	stats, err := s.GetStats(t.Context())
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if stats.Corpora != 0 || stats.TotalChars != 0 || stats.Runs != 0 || len(stats.RunsPerCorpus) != 0 {
		t.Errorf("expected empty stats, got %+v", stats)
	}
}
