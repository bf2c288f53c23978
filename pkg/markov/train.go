package markov

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"unicode/utf8"
)

// Train reads the whole corpus from r and rebuilds the model from it. Any
// previous training is discarded, and it is left untouched if training fails.
func (m *Model) Train(ctx context.Context, r io.Reader) error {
	return m.TrainStream(ctx, NewReaderStream(r))
}

// TrainString is Train over an in-memory corpus.
func (m *Model) TrainString(corpus string) error {
	return m.TrainStream(context.Background(), NewStringStream(corpus))
}

// TrainStream consumes stream to the end and rebuilds the model from it.
// The corpus must hold at least WindowLength characters.
func (m *Model) TrainStream(ctx context.Context, stream CharStream) error {
	// ctxCheckInterval bounds how many characters are read between checks for cancellation.
	const ctxCheckInterval = 4096

	w := m.windowLength

	// The window is a ring buffer; start marks its oldest character.
	ring := make([]rune, w)
	for i := 0; i < w; i++ {
		ch, err := stream.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("%w: read %d characters, window length is %d", ErrInsufficientData, i, w)
			}
			return fmt.Errorf("corpus read error: %w", err)
		}
		ring[i] = ch
	}
	start := 0

	tables := make(map[string]*FrequencyTable)
	keyBuf := make([]byte, 0, w*utf8.UTFMax)
	var observations int64

	for {
		ch, err := stream.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("corpus read error: %w", err)
		}

		keyBuf = keyBuf[:0]
		for i := 0; i < w; i++ {
			keyBuf = utf8.AppendRune(keyBuf, ring[(start+i)%w])
		}
		table, ok := tables[string(keyBuf)]
		if !ok {
			table = NewFrequencyTable()
			tables[string(keyBuf)] = table
		}
		table.Record(ch)

		ring[start] = ch
		start = (start + 1) % w

		observations++
		if observations%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
	}

	for window, table := range tables {
		if err := table.Normalize(); err != nil {
			return fmt.Errorf("failed to normalize window %q: %w", window, err)
		}
	}

	m.tables = tables

	m.logger.InfoContext(ctx, "Training completed",
		slog.Int("window_length", w),
		slog.Int("windows", len(tables)),
		slog.Int64("observations", observations),
	)

	return nil
}
