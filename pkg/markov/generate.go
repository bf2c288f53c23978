package markov

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"
)

// Generate extends seedText one character at a time and returns the result.
//
// The trailing WindowLength characters of seedText form the first window.
// Generation stops once the output holds targetLength+WindowLength
// characters, or earlier when the current window was never seen in
// training. A seed shorter than the window is returned unchanged.
//
// The only error is ErrEmptyDistribution, which a trained model never
// produces.
func (m *Model) Generate(seedText string, targetLength int) (string, error) {
	return m.GenerateContext(context.Background(), seedText, targetLength)
}

// GenerateContext is Generate with a context. The context carries the
// generation logs and is checked for cancellation while generating; on
// cancellation the text produced so far is returned with the context error.
func (m *Model) GenerateContext(ctx context.Context, seedText string, targetLength int) (string, error) {
	// ctxCheckInterval bounds how many characters are generated between checks for cancellation.
	const ctxCheckInterval = 4096

	w := m.windowLength
	output := []rune(seedText)
	if len(output) < w {
		return seedText, nil
	}

	limit := targetLength + w
	keyBuf := make([]byte, 0, w*utf8.UTFMax)
	seedLength := len(output)

	for len(output) < limit {
		keyBuf = keyBuf[:0]
		for _, ch := range output[len(output)-w:] {
			keyBuf = utf8.AppendRune(keyBuf, ch)
		}

		table, ok := m.tables[string(keyBuf)]
		if !ok {
			m.logger.DebugContext(ctx, "Generation terminated due to unknown window",
				slog.String("window", string(keyBuf)),
				slog.Int("generated_length", len(output)-seedLength),
			)
			return string(output), nil
		}

		ch, err := table.Sample(m.source.Float64())
		if err != nil {
			return string(output), fmt.Errorf("failed to sample window %q: %w", keyBuf, err)
		}
		output = append(output, ch)

		if (len(output)-seedLength)%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return string(output), err
			}
		}
	}

	m.logger.DebugContext(ctx, "Generation terminated by reaching target length",
		slog.Int("target_length", targetLength),
		slog.Int("generated_length", len(output)-seedLength),
	)

	return string(output), nil
}
