// internal/claw/score.go
//
// Probe scoring. A probe splits the remaining set into one bucket per
// possible shake count; both scores are computed from the bucket sizes and
// lower is better for both.

package claw

// Buckets partitions a remaining set by shake count against a probe.
// Index i holds the combinations that would answer the probe with i shakes.
type Buckets [MaxShakes + 1][]Combination

// Sizes returns the number of combinations in each bucket.
func (b Buckets) Sizes() [MaxShakes + 1]int {
	var out [MaxShakes + 1]int
	for i, bucket := range b {
		out[i] = len(bucket)
	}
	return out
}

// Breakdown partitions remaining by the number of matches against probe.
// Every combination lands in exactly one bucket, in input order.
func Breakdown(probe Combination, remaining []Combination) Buckets {
	var b Buckets
	for _, c := range remaining {
		m := Matches(probe, c)
		b[m] = append(b[m], c)
	}
	return b
}

// counts is Breakdown without the allocations, used on the selection hot path.
func counts(probe Combination, remaining []Combination) [MaxShakes + 1]int {
	var n [MaxShakes + 1]int
	for _, c := range remaining {
		n[Matches(probe, c)]++
	}
	return n
}

// WorstCaseScore is the size of the largest bucket: the most candidates
// that could survive the next feedback.
func WorstCaseScore(probe Combination, remaining []Combination) int {
	worst := 0
	for _, n := range counts(probe, remaining) {
		if n > worst {
			worst = n
		}
	}
	return worst
}

// ExpectedValueScore is the sum of squared bucket sizes, proportional to
// the expected number of survivors when the secret is uniform over remaining.
func ExpectedValueScore(probe Combination, remaining []Combination) int {
	sum := 0
	for _, n := range counts(probe, remaining) {
		sum += n * n
	}
	return sum
}
