package pipeline

// RunStats tracks aggregate counters and byte totals across a batch run.
// Dry-run conversions are counted as Converted.
type RunStats struct {
	Total            int
	Current          int
	Converted        int
	Skipped          int
	Failed           int
	TotalInputBytes  int64
	TotalOutputBytes int64
}

