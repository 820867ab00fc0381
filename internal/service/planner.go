package service

import (
	"github.com/havenhq/haven/api/internal/model"
)

// Planner scores a user against open groups and picks the best placement.
//
// A group is a candidate when its centroid lies within the configured cutoff
// distance of the user. Candidates are scored as a weighted sum of clinical
// score similarity and tag overlap; the highest score at or above the
// matching threshold wins. Earlier candidates win ties, so with groups
// ordered oldest-first the oldest group takes precedence.
type Planner struct {
	geo     *GeoService
	weights model.MatchWeights
}

// PlannerConfig holds planner dependencies
type PlannerConfig struct {
	Geo     *GeoService
	Weights model.MatchWeights
}

// NewPlanner creates a new planner
func NewPlanner(cfg PlannerConfig) *Planner {
	geo := cfg.Geo
	if geo == nil {
		geo = NewGeoService()
	}
	weights := cfg.Weights
	if weights == (model.MatchWeights{}) {
		weights = model.DefaultMatchWeights
	}
	return &Planner{geo: geo, weights: weights}
}

// ScoreGroup returns the weighted affinity between a user and a group's
// aggregate profile. The distance gate is not part of the score; callers
// filter by reach first.
func (p *Planner) ScoreGroup(user *model.UserProfile, group *model.Group) float64 {
	phqSim := NormalizedScoreSimilarity(float64(user.ClinicalScores.PHQ9), group.Profile.AvgPHQ9, model.PHQ9Max)
	gadSim := NormalizedScoreSimilarity(float64(user.ClinicalScores.GAD7), group.Profile.AvgGAD7, model.GAD7Max)
	lifeSim := Jaccard(user.LifeTransitions, group.Profile.CommonLifeTransitions)
	interestSim := Jaccard(user.Interests, group.Profile.SharedInterests)

	return p.weights.PHQWeight*phqSim +
		p.weights.GADWeight*gadSim +
		p.weights.LifeWeight*lifeSim +
		p.weights.InterestWeight*interestSim
}

// WithinReach reports whether a group's centroid is within the cutoff
// distance of the user's location.
func (p *Planner) WithinReach(user *model.UserProfile, group *model.Group) bool {
	return p.geo.IsWithinRadius(
		user.Location.Lat, user.Location.Lng,
		group.Profile.Centroid.Lat, group.Profile.Centroid.Lng,
		p.weights.CutoffDistanceKm,
	)
}

// BestMatch scans the candidate groups and returns the best placement for
// the user, or nil when no group clears the threshold. A nil result means
// the caller should form a new group. Closed groups are skipped even if
// present in the candidate list.
func (p *Planner) BestMatch(user *model.UserProfile, groups []*model.Group) (*model.Group, float64) {
	var best *model.Group
	bestScore := 0.0

	for _, group := range groups {
		if !group.Capacity.IsOpen {
			continue
		}
		if !p.WithinReach(user, group) {
			continue
		}

		score := p.ScoreGroup(user, group)
		if score < p.weights.MatchingThreshold {
			continue
		}
		// Strictly greater keeps the first candidate on ties.
		if best == nil || score > bestScore {
			best = group
			bestScore = score
		}
	}

	if best == nil {
		return nil, 0
	}
	return best, bestScore
}
