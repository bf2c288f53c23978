package markov

// ModelStats holds aggregated statistics for a trained Model.
type ModelStats struct {
	Windows      int // The number of distinct windows seen in training.
	Transitions  int // The number of distinct window->character links.
	Observations int // The sum of all counts; the total number of trained transitions.
}

// Stats returns a snapshot of the model's statistics.
func (m *Model) Stats() ModelStats {
	stats := ModelStats{Windows: len(m.tables)}
	for _, t := range m.tables {
		stats.Transitions += t.Len()
		stats.Observations += t.Total()
	}
	return stats
}
