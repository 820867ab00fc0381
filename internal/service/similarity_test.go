package service

import (
	"math"
	"testing"
)

// ============================================================================
// Jaccard Tests
// ============================================================================

func TestJaccard_IdenticalSets_ReturnsOne(t *testing.T) {
	t.Parallel()

	result := Jaccard([]string{"hiking", "art"}, []string{"hiking", "art"})

	if result != 1.0 {
		t.Errorf("expected 1.0, got %f", result)
	}
}

func TestJaccard_DisjointSets_ReturnsZero(t *testing.T) {
	t.Parallel()

	result := Jaccard([]string{"hiking"}, []string{"cooking"})

	if result != 0 {
		t.Errorf("expected 0, got %f", result)
	}
}

func TestJaccard_BothEmpty_ReturnsZero(t *testing.T) {
	t.Parallel()

	// An empty union scores 0, not 1: no shared tags means no signal.
	if result := Jaccard(nil, nil); result != 0 {
		t.Errorf("expected 0 for nil sets, got %f", result)
	}
	if result := Jaccard([]string{}, []string{}); result != 0 {
		t.Errorf("expected 0 for empty sets, got %f", result)
	}
}

func TestJaccard_OneEmpty_ReturnsZero(t *testing.T) {
	t.Parallel()

	result := Jaccard([]string{"hiking"}, nil)

	if result != 0 {
		t.Errorf("expected 0, got %f", result)
	}
}

func TestJaccard_PartialOverlap(t *testing.T) {
	t.Parallel()

	// Intersection {hiking}, union {hiking, art, cooking} -> 1/3
	result := Jaccard([]string{"hiking", "art"}, []string{"hiking", "cooking"})

	if math.Abs(result-1.0/3.0) > 1e-9 {
		t.Errorf("expected 1/3, got %f", result)
	}
}

func TestJaccard_DuplicatesIgnored(t *testing.T) {
	t.Parallel()

	result := Jaccard([]string{"hiking", "hiking", "art"}, []string{"hiking", "art", "art"})

	if result != 1.0 {
		t.Errorf("duplicates should not change the score, got %f", result)
	}
}

func TestJaccard_EmptyStringsIgnored(t *testing.T) {
	t.Parallel()

	result := Jaccard([]string{"", "hiking"}, []string{"hiking", ""})

	if result != 1.0 {
		t.Errorf("empty strings should be ignored, got %f", result)
	}
}

func TestJaccard_Symmetric(t *testing.T) {
	t.Parallel()

	a := []string{"hiking", "art", "music"}
	b := []string{"hiking", "cooking"}

	if Jaccard(a, b) != Jaccard(b, a) {
		t.Error("Jaccard should be symmetric")
	}
}

// ============================================================================
// NormalizedScoreSimilarity Tests
// ============================================================================

func TestNormalizedScoreSimilarity_EqualScores_ReturnsOne(t *testing.T) {
	t.Parallel()

	result := NormalizedScoreSimilarity(12, 12, 27)

	if result != 1.0 {
		t.Errorf("expected 1.0, got %f", result)
	}
}

func TestNormalizedScoreSimilarity_OppositeEnds_ReturnsZero(t *testing.T) {
	t.Parallel()

	result := NormalizedScoreSimilarity(0, 27, 27)

	if result != 0 {
		t.Errorf("expected 0, got %f", result)
	}
}

func TestNormalizedScoreSimilarity_MidRange(t *testing.T) {
	t.Parallel()

	// |10/20 - 15/20| = 0.25 -> similarity 0.75
	result := NormalizedScoreSimilarity(10, 15, 20)

	if math.Abs(result-0.75) > 1e-9 {
		t.Errorf("expected 0.75, got %f", result)
	}
}

func TestNormalizedScoreSimilarity_FractionalMean(t *testing.T) {
	t.Parallel()

	// Group means are fractional after joins; the formula takes floats.
	result := NormalizedScoreSimilarity(10, 10.5, 27)

	expected := 1 - 0.5/27
	if math.Abs(result-expected) > 1e-9 {
		t.Errorf("expected %f, got %f", expected, result)
	}
}

func TestNormalizedScoreSimilarity_ZeroScale_ReturnsZero(t *testing.T) {
	t.Parallel()

	if result := NormalizedScoreSimilarity(1, 2, 0); result != 0 {
		t.Errorf("expected 0 for zero scale, got %f", result)
	}
}

func TestNormalizedScoreSimilarity_Symmetric(t *testing.T) {
	t.Parallel()

	if NormalizedScoreSimilarity(3, 18, 21) != NormalizedScoreSimilarity(18, 3, 21) {
		t.Error("similarity should be symmetric")
	}
}
