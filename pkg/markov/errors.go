package markov

import "errors"

var (
	// ErrInvalidWindow is returned by New when the window length is not positive.
	ErrInvalidWindow = errors.New("window length must be positive")
	// ErrInsufficientData is returned by Train when the corpus holds fewer
	// characters than the window length.
	ErrInsufficientData = errors.New("corpus shorter than window length")
	// ErrEmptyDistribution is returned when normalizing or sampling a table
	// that has no entries.
	ErrEmptyDistribution = errors.New("frequency table is empty")
)
