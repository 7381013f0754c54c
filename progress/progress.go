// Package progress tracks I/O progress and exposes it as stream values.
package progress

// Progress is a cumulative progress report for one operation.
type Progress struct {
	// Current is the number of bytes processed so far.
	Current int64 `json:"current"`
	// Total is the expected size, or -1 when unknown.
	Total int64 `json:"total"`
}

// Percent returns completion as a value in [0, 100], or -1 when the total
// is unknown or zero.
func (p Progress) Percent() float64 {
	if p.Total <= 0 {
		return -1
	}
	pct := float64(p.Current) / float64(p.Total) * 100
	if pct > 100 {
		pct = 100
	}
	return pct
}

// Done reports whether the operation has processed its expected size.
// Always false when the total is unknown.
func (p Progress) Done() bool {
	return p.Total > 0 && p.Current >= p.Total
}
