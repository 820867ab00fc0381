package service

import (
	"math"
	"testing"

	"github.com/havenhq/haven/api/internal/model"
)

func plannerUser() *model.UserProfile {
	return &model.UserProfile{
		ID:                "user:founder",
		ClinicalScores:    model.ClinicalScores{PHQ9: 10, GAD7: 8},
		Interests:         []string{"hiking", "art"},
		LifeTransitions:   []string{"new_parent"},
		Location:          model.Location{Lat: 40.7128, Lng: -74.0060},
		QuestionnaireDone: true,
	}
}

func plannerGroup(id string) *model.Group {
	return &model.Group{
		ID:      id,
		Members: []string{"user:a"},
		Profile: model.GroupProfile{
			AvgPHQ9:               10,
			AvgGAD7:               8,
			SharedInterests:       []string{"hiking", "art"},
			CommonLifeTransitions: []string{"new_parent"},
			Centroid:              model.Location{Lat: 40.7128, Lng: -74.0060},
		},
		Capacity: model.GroupCapacity{Current: 1, Max: 10, IsOpen: true},
	}
}

func defaultPlanner() *Planner {
	return NewPlanner(PlannerConfig{Weights: model.DefaultMatchWeights})
}

// ============================================================================
// ScoreGroup Tests
// ============================================================================

func TestScoreGroup_PerfectMatch_ReturnsOne(t *testing.T) {
	t.Parallel()
	planner := defaultPlanner()

	score := planner.ScoreGroup(plannerUser(), plannerGroup("support_group:g1"))

	if math.Abs(score-1.0) > 1e-9 {
		t.Errorf("expected 1.0 for identical profiles, got %f", score)
	}
}

func TestScoreGroup_NoOverlap_ReturnsZero(t *testing.T) {
	t.Parallel()
	planner := defaultPlanner()

	user := plannerUser()
	user.ClinicalScores = model.ClinicalScores{PHQ9: 0, GAD7: 0}
	user.Interests = []string{"chess"}
	user.LifeTransitions = []string{"retirement"}

	group := plannerGroup("support_group:g1")
	group.Profile.AvgPHQ9 = 27
	group.Profile.AvgGAD7 = 21

	score := planner.ScoreGroup(user, group)

	if score != 0 {
		t.Errorf("expected 0, got %f", score)
	}
}

func TestScoreGroup_WeightedComponents(t *testing.T) {
	t.Parallel()
	planner := defaultPlanner()

	// Clinical scores identical, interests half overlapping, transitions
	// disjoint: 0.3*1 + 0.2*1 + 0.3*0 + 0.2*0.5 = 0.6
	user := plannerUser()
	group := plannerGroup("support_group:g1")
	group.Profile.SharedInterests = []string{"hiking", "cooking", "art", "chess"}
	group.Profile.CommonLifeTransitions = []string{"divorce"}

	score := planner.ScoreGroup(user, group)

	if math.Abs(score-0.6) > 1e-9 {
		t.Errorf("expected 0.6, got %f", score)
	}
}

// ============================================================================
// BestMatch Tests
// ============================================================================

func TestBestMatch_NoCandidates_ReturnsNil(t *testing.T) {
	t.Parallel()
	planner := defaultPlanner()

	best, _ := planner.BestMatch(plannerUser(), nil)

	if best != nil {
		t.Errorf("expected nil, got %s", best.ID)
	}
}

func TestBestMatch_PerfectGroup_Selected(t *testing.T) {
	t.Parallel()
	planner := defaultPlanner()

	group := plannerGroup("support_group:g1")
	best, score := planner.BestMatch(plannerUser(), []*model.Group{group})

	if best == nil {
		t.Fatal("expected a match")
	}
	if best.ID != "support_group:g1" {
		t.Errorf("expected g1, got %s", best.ID)
	}
	if math.Abs(score-1.0) > 1e-9 {
		t.Errorf("expected score 1.0, got %f", score)
	}
}

func TestBestMatch_BelowThreshold_ReturnsNil(t *testing.T) {
	t.Parallel()
	planner := defaultPlanner()

	user := plannerUser()
	user.ClinicalScores = model.ClinicalScores{PHQ9: 0, GAD7: 0}
	user.Interests = []string{"chess"}
	user.LifeTransitions = []string{"retirement"}

	group := plannerGroup("support_group:g1")
	group.Profile.AvgPHQ9 = 27
	group.Profile.AvgGAD7 = 21

	best, _ := planner.BestMatch(user, []*model.Group{group})

	if best != nil {
		t.Errorf("group below threshold should not match, got %s", best.ID)
	}
}

func TestBestMatch_ExactlyAtThreshold_Selected(t *testing.T) {
	t.Parallel()
	planner := defaultPlanner()

	// GAD identical (0.2) + interests identical (0.2), PHQ at opposite
	// ends and transitions disjoint: score is exactly the 0.4 threshold.
	user := plannerUser()
	user.ClinicalScores = model.ClinicalScores{PHQ9: 0, GAD7: 8}
	user.LifeTransitions = []string{"retirement"}

	group := plannerGroup("support_group:g1")
	group.Profile.AvgPHQ9 = 27

	best, score := planner.BestMatch(user, []*model.Group{group})

	if best == nil {
		t.Fatalf("score %f at threshold should match", score)
	}
}

func TestBestMatch_HigherScoreWins(t *testing.T) {
	t.Parallel()
	planner := defaultPlanner()

	weaker := plannerGroup("support_group:weaker")
	weaker.Profile.SharedInterests = []string{"hiking"}

	stronger := plannerGroup("support_group:stronger")

	best, _ := planner.BestMatch(plannerUser(), []*model.Group{weaker, stronger})

	if best == nil {
		t.Fatal("expected a match")
	}
	if best.ID != "support_group:stronger" {
		t.Errorf("expected stronger group to win, got %s", best.ID)
	}
}

func TestBestMatch_Tie_FirstCandidateWins(t *testing.T) {
	t.Parallel()
	planner := defaultPlanner()

	first := plannerGroup("support_group:first")
	second := plannerGroup("support_group:second")

	best, _ := planner.BestMatch(plannerUser(), []*model.Group{first, second})

	if best == nil {
		t.Fatal("expected a match")
	}
	if best.ID != "support_group:first" {
		t.Errorf("ties should keep the first candidate, got %s", best.ID)
	}
}

func TestBestMatch_OutOfReach_Excluded(t *testing.T) {
	t.Parallel()
	planner := defaultPlanner()

	// Perfect profile but the centroid sits ~111km away, past the 50km
	// cutoff. Distance gates before scoring.
	group := plannerGroup("support_group:far")
	group.Profile.Centroid = model.Location{Lat: 41.7128, Lng: -74.0060}

	best, _ := planner.BestMatch(plannerUser(), []*model.Group{group})

	if best != nil {
		t.Errorf("out-of-reach group should be excluded, got %s", best.ID)
	}
}

func TestBestMatch_ClosedGroup_Skipped(t *testing.T) {
	t.Parallel()
	planner := defaultPlanner()

	closed := plannerGroup("support_group:closed")
	closed.Capacity = model.GroupCapacity{Current: 10, Max: 10, IsOpen: false}

	best, _ := planner.BestMatch(plannerUser(), []*model.Group{closed})

	if best != nil {
		t.Errorf("closed group should be skipped, got %s", best.ID)
	}
}

func TestBestMatch_FarButHighScore_LosesToNearMatch(t *testing.T) {
	t.Parallel()
	planner := defaultPlanner()

	far := plannerGroup("support_group:far")
	far.Profile.Centroid = model.Location{Lat: 34.0522, Lng: -118.2437}

	near := plannerGroup("support_group:near")
	near.Profile.SharedInterests = []string{"hiking"}

	best, _ := planner.BestMatch(plannerUser(), []*model.Group{far, near})

	if best == nil {
		t.Fatal("expected the near group to match")
	}
	if best.ID != "support_group:near" {
		t.Errorf("expected near group, got %s", best.ID)
	}
}

// ============================================================================
// NewPlanner Tests
// ============================================================================

func TestNewPlanner_ZeroConfig_UsesDefaults(t *testing.T) {
	t.Parallel()

	planner := NewPlanner(PlannerConfig{})

	if planner.weights != model.DefaultMatchWeights {
		t.Errorf("expected default weights, got %+v", planner.weights)
	}
	if planner.geo == nil {
		t.Error("expected a geo service")
	}
}

func TestNewPlanner_CustomWeights_Respected(t *testing.T) {
	t.Parallel()

	weights := model.MatchWeights{
		PHQWeight:         1,
		MatchingThreshold: 0.9,
		CutoffDistanceKm:  10,
	}
	planner := NewPlanner(PlannerConfig{Weights: weights})

	// Identical clinical scores, no tag overlap: score 1.0 under the
	// custom weights, and the 0.9 threshold still accepts it.
	user := plannerUser()
	user.Interests = nil
	user.LifeTransitions = nil

	group := plannerGroup("support_group:g1")

	best, score := planner.BestMatch(user, []*model.Group{group})

	if best == nil {
		t.Fatal("expected a match under custom weights")
	}
	if math.Abs(score-1.0) > 1e-9 {
		t.Errorf("expected score 1.0, got %f", score)
	}
}
