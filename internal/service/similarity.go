package service

import "math"

// Jaccard returns the Jaccard index |A∩B| / |A∪B| of two tag sets.
// Duplicates and empty strings are ignored. An empty union scores 0,
// not 1: two users with no tags at all have nothing in common.
func Jaccard(a, b []string) float64 {
	const (
		inA = 1 << iota
		inB
	)

	membership := make(map[string]int, len(a)+len(b))
	for _, t := range a {
		if t != "" {
			membership[t] |= inA
		}
	}
	for _, t := range b {
		if t != "" {
			membership[t] |= inB
		}
	}

	if len(membership) == 0 {
		return 0
	}

	intersection := 0
	for _, m := range membership {
		if m == inA|inB {
			intersection++
		}
	}
	return float64(intersection) / float64(len(membership))
}

// NormalizedScoreSimilarity compares two scores on a shared scale:
// 1 - |a/max - b/max|. Equal scores yield 1.0, scores at opposite ends
// of the scale yield 0.0.
func NormalizedScoreSimilarity(a, b, scaleMax float64) float64 {
	if scaleMax <= 0 {
		return 0
	}
	return 1 - math.Abs(a/scaleMax-b/scaleMax)
}
