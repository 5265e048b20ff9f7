package store

// NextID computes the next unique id for a table from its current records:
// 1 for an empty table, otherwise max(existing ids)+1. Records without an id
// and records whose id does not parse as an integer are excluded from the
// max, not treated as errors. Ids are never reclaimed after deletion, so
// gaps are expected.
func NextID(records []Record) int {
	max := 0
	for _, r := range records {
		if id, ok := r.ID(); ok && id > max {
			max = id
		}
	}
	return max + 1
}
