package markov

import (
	"go/build"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// newTrainedModel creates a seeded model and trains it on corpus.
func newTrainedModel(t *testing.T, windowLength int, seed int64, corpus string) *Model {
	t.Helper()
	m, err := New(windowLength, WithSeed(seed))
	if err != nil {
		t.Fatalf("New(%d) error = %v", windowLength, err)
	}
	if err := m.TrainString(corpus); err != nil {
		t.Fatalf("setup: TrainString() failed: %v", err)
	}
	return m
}

// fixedSource replays a fixed list of draws, repeating the last one.
type fixedSource struct {
	draws []float64
	i     int
}

func (s *fixedSource) Float64() float64 {
	if s.i >= len(s.draws) {
		return s.draws[len(s.draws)-1]
	}
	d := s.draws[s.i]
	s.i++
	return d
}

const proseCorpus = "the quick brown fox jumps over the lazy dog. the dog sleeps, the fox runs. " +
	"then the fox thinks the dog is quite lazy and the dog thinks the fox is quick."

var (
	benchmarkCorpus string
	corpusOnce      sync.Once
)

// createBenchmarkCorpus reads Go source files to create a corpus for benchmarking.
func createBenchmarkCorpus() string {
	corpusOnce.Do(func() {
		var sb strings.Builder
		goRoot := build.Default.GOROOT
		filesToRead := []string{
			filepath.Join(goRoot, "src/net/http/server.go"),
			filepath.Join(goRoot, "src/go/parser/parser.go"),
			filepath.Join(goRoot, "src/encoding/json/encode.go"),
		}

		for _, file := range filesToRead {
			content, err := os.ReadFile(file)
			if err != nil {
				benchmarkCorpus = "this is a fallback corpus for benchmarking. it is not very long but will prevent a crash. "
				return
			}
			sb.Write(content)
			sb.WriteString("\n")
		}
		benchmarkCorpus = sb.String()
	})
	return benchmarkCorpus
}
