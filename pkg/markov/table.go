package markov

import (
	"strconv"
	"strings"
)

// CharCount is one entry of a FrequencyTable: a character that followed a
// window, how many times it did, and the derived probability (P) and
// cumulative probability (CP) set by Normalize.
type CharCount struct {
	Char  rune
	Count int
	P     float64
	CP    float64
}

// String formats the entry as "(char count p cp)". The character is written
// as a Go rune literal so whitespace and control characters stay visible.
func (c CharCount) String() string {
	var b strings.Builder
	c.appendTo(&b)
	return b.String()
}

func (c CharCount) appendTo(b *strings.Builder) {
	b.WriteByte('(')
	b.WriteString(strconv.QuoteRune(c.Char))
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(c.Count))
	b.WriteByte(' ')
	b.WriteString(strconv.FormatFloat(c.P, 'g', -1, 64))
	b.WriteByte(' ')
	b.WriteString(strconv.FormatFloat(c.CP, 'g', -1, 64))
	b.WriteByte(')')
}

// FrequencyTable records which characters followed a single window and how
// often. Entries keep first-seen order, which is the order used for the
// cumulative probabilities and therefore for sampling.
type FrequencyTable struct {
	entries []CharCount
	index   map[rune]int
}

// NewFrequencyTable returns an empty table.
func NewFrequencyTable() *FrequencyTable {
	return &FrequencyTable{index: make(map[rune]int)}
}

// Record counts one occurrence of ch, appending a new entry on first sight.
func (t *FrequencyTable) Record(ch rune) {
	if i, ok := t.index[ch]; ok {
		t.entries[i].Count++
		return
	}
	t.index[ch] = len(t.entries)
	t.entries = append(t.entries, CharCount{Char: ch, Count: 1})
}

// Normalize sets P and CP on every entry from the current counts. It walks
// the entries in insertion order, so repeated calls give identical values.
func (t *FrequencyTable) Normalize() error {
	total := t.Total()
	if len(t.entries) == 0 || total == 0 {
		return ErrEmptyDistribution
	}

	var running float64
	for i := range t.entries {
		p := float64(t.entries[i].Count) / float64(total)
		t.entries[i].P = p
		t.entries[i].CP = running + p
		running = t.entries[i].CP
	}
	return nil
}

// Sample returns the character of the first entry whose cumulative
// probability exceeds u, where u is a uniform draw from [0, 1). If rounding
// leaves every CP at or below u, the last entry is returned.
func (t *FrequencyTable) Sample(u float64) (rune, error) {
	if len(t.entries) == 0 {
		return 0, ErrEmptyDistribution
	}
	for _, e := range t.entries {
		if e.CP > u {
			return e.Char, nil
		}
	}
	return t.entries[len(t.entries)-1].Char, nil
}

// Len returns the number of distinct characters in the table.
func (t *FrequencyTable) Len() int {
	return len(t.entries)
}

// Total returns the sum of all counts.
func (t *FrequencyTable) Total() int {
	total := 0
	for _, e := range t.entries {
		total += e.Count
	}
	return total
}

// Count returns how many times ch was recorded.
func (t *FrequencyTable) Count(ch rune) int {
	if i, ok := t.index[ch]; ok {
		return t.entries[i].Count
	}
	return 0
}

// Entries returns a copy of the entries in insertion order.
func (t *FrequencyTable) Entries() []CharCount {
	out := make([]CharCount, len(t.entries))
	copy(out, t.entries)
	return out
}

// String formats the table as space separated "(char count p cp)" tuples.
func (t *FrequencyTable) String() string {
	var b strings.Builder
	for i, e := range t.entries {
		if i > 0 {
			b.WriteByte(' ')
		}
		e.appendTo(&b)
	}
	return b.String()
}
