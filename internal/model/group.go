package model

import "time"

// Group represents a small peer-support circle.
//
// Groups are created with exactly one member and grow one member at a time
// through the join protocol. They are never deleted and members never leave,
// so the tag-set fields of the profile are monotonically non-decreasing.
type Group struct {
	ID        string        `json:"id"`
	Members   []string      `json:"members"`
	Profile   GroupProfile  `json:"profile"`
	Capacity  GroupCapacity `json:"capacity"`
	CreatedOn time.Time     `json:"created_on"`
	UpdatedOn time.Time     `json:"updated_on"`
}

// GroupProfile is the rolling aggregate over the group's members: mean
// clinical scores, the union of member tags, and the centroid used for
// distance gating. The centroid is seeded from the founding member's
// location and is not recomputed as membership grows.
type GroupProfile struct {
	AvgPHQ9               float64  `json:"avg_phq9"`
	AvgGAD7               float64  `json:"avg_gad7"`
	SharedInterests       []string `json:"shared_interests,omitempty"`
	CommonLifeTransitions []string `json:"common_life_transitions,omitempty"`
	Centroid              Location `json:"centroid"`
}

// GroupCapacity tracks group size against its limit.
// Invariant: IsOpen == (Current < Max) and 0 <= Current <= Max.
type GroupCapacity struct {
	Current int  `json:"current"`
	Max     int  `json:"max"`
	IsOpen  bool `json:"is_open"`
}

// DefaultGroupMax is the membership limit for newly formed groups.
const DefaultGroupMax = 10

// NewGroupWithFounder builds the singleton group created when the planner
// finds no suitable match. The profile is seeded directly from the founder's
// own scores, tags and location; it only becomes a true aggregate once a
// second member joins.
func NewGroupWithFounder(id string, founder *UserProfile) *Group {
	return &Group{
		ID:      id,
		Members: []string{founder.ID},
		Profile: GroupProfile{
			AvgPHQ9:               float64(founder.ClinicalScores.PHQ9),
			AvgGAD7:               float64(founder.ClinicalScores.GAD7),
			SharedInterests:       UnionTags(nil, founder.Interests),
			CommonLifeTransitions: UnionTags(nil, founder.LifeTransitions),
			Centroid:              founder.Location,
		},
		Capacity: GroupCapacity{
			Current: 1,
			Max:     DefaultGroupMax,
			IsOpen:  DefaultGroupMax > 1,
		},
	}
}

// ApplyJoin returns the group state after admitting the given user, applying
// the incremental aggregate rule:
//
//	avg' = (avg*n + score) / (n+1)
//	tags' = tags ∪ user tags
//	current' = n+1; is_open' = (n+1 < max)
//
// It does not check capacity; callers revalidate the join precondition at
// commit time.
func (g *Group) ApplyJoin(user *UserProfile) Group {
	n := float64(g.Capacity.Current)
	newSize := g.Capacity.Current + 1

	joined := *g
	joined.Members = append(append([]string{}, g.Members...), user.ID)
	joined.Profile = GroupProfile{
		AvgPHQ9:               (g.Profile.AvgPHQ9*n + float64(user.ClinicalScores.PHQ9)) / float64(newSize),
		AvgGAD7:               (g.Profile.AvgGAD7*n + float64(user.ClinicalScores.GAD7)) / float64(newSize),
		SharedInterests:       UnionTags(g.Profile.SharedInterests, user.Interests),
		CommonLifeTransitions: UnionTags(g.Profile.CommonLifeTransitions, user.LifeTransitions),
		Centroid:              g.Profile.Centroid,
	}
	joined.Capacity = GroupCapacity{
		Current: newSize,
		Max:     g.Capacity.Max,
		IsOpen:  newSize < g.Capacity.Max,
	}
	return joined
}

// UnionTags merges two tag sets preserving first-seen order and dropping
// duplicates. A nil base is treated as empty.
func UnionTags(base, extra []string) []string {
	seen := make(map[string]bool, len(base)+len(extra))
	out := make([]string, 0, len(base)+len(extra))
	for _, t := range base {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	for _, t := range extra {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
