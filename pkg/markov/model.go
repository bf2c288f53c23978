package markov

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"
)

// Source is a uniform random source on [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Model is a character-level Markov model of a fixed window length. It maps
// every window seen during training to the FrequencyTable of characters that
// followed it.
type Model struct {
	windowLength int
	tables       map[string]*FrequencyTable
	source       Source
	logger       *slog.Logger
}

// Option configures a Model at construction.
type Option func(*Model)

// WithSeed makes generation reproducible: two models built with the same
// seed, window length and corpus generate identical text.
func WithSeed(seed int64) Option {
	return func(m *Model) {
		m.source = rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
	}
}

// WithSource sets the random source used for sampling. A nil source is ignored.
func WithSource(src Source) Option {
	return func(m *Model) {
		if src != nil {
			m.source = src
		}
	}
}

// WithLogger sets the logger. By default, all logs are discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// New creates an untrained model with the given window length. Without
// WithSeed or WithSource the model draws from a randomly seeded source.
func New(windowLength int, opts ...Option) (*Model, error) {
	if windowLength < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWindow, windowLength)
	}
	m := &Model{
		windowLength: windowLength,
		tables:       make(map[string]*FrequencyTable),
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.source == nil {
		m.source = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return m, nil
}

// SetLogger sets the logger for the Model. A nil logger is ignored.
func (m *Model) SetLogger(logger *slog.Logger) {
	if logger != nil {
		m.logger = logger
	}
}

// WindowLength returns the number of characters of context per prediction.
func (m *Model) WindowLength() int {
	return m.windowLength
}

// Table returns the frequency table for a window, if it was seen in training.
func (m *Model) Table(window string) (*FrequencyTable, bool) {
	t, ok := m.tables[window]
	return t, ok
}

// Windows returns every trained window in sorted order.
func (m *Model) Windows() []string {
	windows := make([]string, 0, len(m.tables))
	for w := range m.tables {
		windows = append(windows, w)
	}
	slices.Sort(windows)
	return windows
}

// Dump writes one line per window, in sorted order, listing the window and
// its (char count p cp) tuples. It is meant for inspection, not persistence.
func (m *Model) Dump(w io.Writer) error {
	var b strings.Builder
	for _, window := range m.Windows() {
		b.Reset()
		b.WriteString(strconv.Quote(window))
		b.WriteString(" : ")
		b.WriteString(m.tables[window].String())
		b.WriteByte('\n')
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}

// String returns the Dump output as a string.
func (m *Model) String() string {
	var b strings.Builder
	_ = m.Dump(&b)
	return b.String()
}
