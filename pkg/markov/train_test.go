package markov

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"testing"
	"testing/iotest"
)

func TestTrain(t *testing.T) {
	m := newTrainedModel(t, 3, 42, "abcabcabcabc")

	testCases := []struct {
		window string
		char   rune
		count  int
	}{
		{window: "abc", char: 'a', count: 3},
		{window: "bca", char: 'b', count: 3},
		{window: "cab", char: 'c', count: 3},
	}

	if len(m.Windows()) != len(testCases) {
		t.Fatalf("expected %d windows, got %v", len(testCases), m.Windows())
	}
	for _, tc := range testCases {
		table, ok := m.Table(tc.window)
		if !ok {
			t.Errorf("window %q was not trained", tc.window)
			continue
		}
		if table.Len() != 1 || table.Count(tc.char) != tc.count {
			t.Errorf("window %q = %s, want only %q x%d", tc.window, table, tc.char, tc.count)
		}
		if e := table.Entries()[0]; e.P != 1 || e.CP != 1 {
			t.Errorf("window %q entry = %+v, want p=1 cp=1", tc.window, e)
		}
	}
}

func TestTrainSingleCharacterWindow(t *testing.T) {
	m := newTrainedModel(t, 1, 7, "aaaa")
	table, ok := m.Table("a")
	if !ok {
		t.Fatal("window \"a\" was not trained")
	}
	if table.Len() != 1 || table.Count('a') != 3 {
		t.Errorf("window \"a\" = %s, want only 'a' x3", table)
	}
}

func TestTrainCountsSumToObservations(t *testing.T) {
	m := newTrainedModel(t, 2, 1, proseCorpus)

	// Every character after the first window is one observation.
	want := len([]rune(proseCorpus)) - 2
	if got := m.Stats().Observations; got != want {
		t.Errorf("Observations = %d, want %d", got, want)
	}

	for _, window := range m.Windows() {
		if n := len([]rune(window)); n != 2 {
			t.Errorf("window %q has %d characters, want 2", window, n)
		}
		table, _ := m.Table(window)
		var sum float64
		entries := table.Entries()
		for _, e := range entries {
			sum += e.P
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("window %q: sum of P = %v", window, sum)
		}
		if last := entries[len(entries)-1].CP; math.Abs(last-1) > 1e-9 {
			t.Errorf("window %q: last CP = %v", window, last)
		}
	}
}

func TestTrainUnicode(t *testing.T) {
	m := newTrainedModel(t, 2, 1, "héllo héllo")
	table, ok := m.Table("hé")
	if !ok {
		t.Fatalf("expected window \"hé\", got %v", m.Windows())
	}
	if table.Count('l') != 2 {
		t.Errorf("window \"hé\" = %s, want 'l' x2", table)
	}
}

func TestTrainInsufficientData(t *testing.T) {
	testCases := []struct {
		name   string
		window int
		corpus string
	}{
		{name: "Empty corpus", window: 1, corpus: ""},
		{name: "Shorter than window", window: 5, corpus: "abcd"},
		{name: "Multibyte shorter than window", window: 3, corpus: "éé"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, _ := New(tc.window)
			err := m.TrainString(tc.corpus)
			if !errors.Is(err, ErrInsufficientData) {
				t.Errorf("expected ErrInsufficientData, got %v", err)
			}
		})
	}
}

func TestTrainExactlyWindowLength(t *testing.T) {
	m := newTrainedModel(t, 3, 1, "abc")
	if len(m.Windows()) != 0 {
		t.Errorf("expected no windows for a corpus of exactly one window, got %v", m.Windows())
	}
}

func TestTrainReplacesPreviousTraining(t *testing.T) {
	m := newTrainedModel(t, 1, 1, "abab")
	if err := m.TrainString("xyxy"); err != nil {
		t.Fatalf("second TrainString() failed: %v", err)
	}
	if _, ok := m.Table("a"); ok {
		t.Error("expected windows from the first corpus to be discarded")
	}
	if _, ok := m.Table("x"); !ok {
		t.Error("expected windows from the second corpus")
	}

	// A failed training keeps the current tables.
	if err := m.TrainString(""); err == nil {
		t.Fatal("expected an error for an empty corpus")
	}
	if _, ok := m.Table("x"); !ok {
		t.Error("failed training should not discard the previous model")
	}
}

func TestTrainReader(t *testing.T) {
	ctx := context.Background()
	m, _ := New(3, WithSeed(1))
	// OneByteReader splits multibyte characters across reads.
	r := iotest.OneByteReader(strings.NewReader("ünïcödé ünïcödé"))
	if err := m.Train(ctx, r); err != nil {
		t.Fatalf("Train() failed: %v", err)
	}
	if table, ok := m.Table("ünï"); !ok || table.Count('c') != 2 {
		t.Errorf("expected window \"ünï\" -> 'c' x2, got %v", m.Windows())
	}
}

func TestTrainReaderError(t *testing.T) {
	m, _ := New(2)
	readErr := errors.New("disk on fire")
	r := io.MultiReader(strings.NewReader("abcdef"), iotest.ErrReader(readErr))
	if err := m.Train(context.Background(), r); !errors.Is(err, readErr) {
		t.Errorf("expected wrapped reader error, got %v", err)
	}
}

func TestTrainCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m, _ := New(2)
	corpus := strings.Repeat("abcdefgh", 2048)
	if err := m.Train(ctx, strings.NewReader(corpus)); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if len(m.Windows()) != 0 {
		t.Error("cancelled training should not populate the model")
	}
}

func BenchmarkTrain(b *testing.B) {
	corpus := createBenchmarkCorpus()
	ctx := context.Background()

	for _, window := range []int{1, 2, 4, 8} {
		b.Run(fmt.Sprintf("Window%d", window), func(b *testing.B) {
			m, err := New(window, WithSeed(1))
			if err != nil {
				b.Fatalf("New() failed: %v", err)
			}

			b.SetBytes(int64(len(corpus)))
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if err := m.Train(ctx, strings.NewReader(corpus)); err != nil {
					b.Fatalf("Train() failed: %v", err)
				}
			}
		})
	}
}
